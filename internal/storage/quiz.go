package storage

import (
	"errors"
	"sync"

	"github.com/aliskhannn/sight-words-bot/internal/domain/entities"
)

var ErrChatNotAllowed = errors.New("quiz is bound to another chat")

// SessionStorage keeps the single quiz session in memory together with the
// chat it belongs to.
type SessionStorage struct {
	mu      sync.RWMutex
	chatID  int64
	session entities.QuizSession
	ok      bool
}

// NewSessionStorage creates a new SessionStorage. A non-zero chatID binds
// the storage to that chat up front; otherwise the first chat to claim it wins.
func NewSessionStorage(chatID int64) *SessionStorage {
	return &SessionStorage{chatID: chatID}
}

// Claim binds the storage to chatID if it is still free.
// It fails with ErrChatNotAllowed when another chat owns the quiz.
func (s *SessionStorage) Claim(chatID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.chatID == 0 {
		s.chatID = chatID
		return nil
	}
	if s.chatID != chatID {
		return ErrChatNotAllowed
	}
	return nil
}

// Owns reports whether chatID is the chat the quiz is bound to.
func (s *SessionStorage) Owns(chatID int64) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.chatID != 0 && s.chatID == chatID
}

// Get retrieves the current session.
func (s *SessionStorage) Get() (entities.QuizSession, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.session, s.ok
}

// Put replaces the current session.
func (s *SessionStorage) Put(session entities.QuizSession) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.session = session
	s.ok = true
}

// Reset drops the current session, keeping the chat binding.
func (s *SessionStorage) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.session = entities.QuizSession{}
	s.ok = false
}
