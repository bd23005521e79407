package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/aliskhannn/sight-words-bot/internal/domain/entities"
)

var (
	ErrNoActiveQuestion = errors.New("no active question")
	ErrAlreadyAnswered  = errors.New("question already answered")
	ErrInvalidOption    = errors.New("invalid option index")
	ErrUnknownLanguage  = errors.New("unknown language")
)

// Spoken feedback phrases.
const (
	PhraseCorrect   = "Yes, that's correct!"
	PhraseIncorrect = "Sorry, that's incorrect!"
)

// NextQuestion moves the session to a fresh question.
func NextQuestion(s entities.QuizSession, selector *QuestionSelector) (entities.QuizSession, error) {
	q, err := selector.Select(s.Words)
	if err != nil {
		return s, err
	}

	s.Question = &q
	s.Round++
	s.State = entities.QuizStateQuestionShown
	s.Message = ""

	return s, nil
}

// CheckAnswer compares the selected word with the current question.
// A correct answer counts towards both score and attempts, a wrong one
// only towards attempts. Each question can be answered once.
func CheckAnswer(s entities.QuizSession, selected entities.Word) (entities.QuizSession, entities.Answer, error) {
	switch {
	case s.Question == nil || s.State == entities.QuizStateIdle:
		return s, entities.Answer{}, ErrNoActiveQuestion
	case s.State == entities.QuizStateAnswered:
		return s, entities.Answer{}, ErrAlreadyAnswered
	}

	expected := s.Question.Target
	answer := entities.Answer{
		Selected: selected,
		Expected: expected,
		Correct:  selected.Equal(expected),
	}

	s.Attempts++
	if answer.Correct {
		s.Score++
		answer.Message = fmt.Sprintf("That's correct! \n\nDefinition: %s", expected.Definition)
	} else {
		answer.Message = fmt.Sprintf(
			"Sorry, that's incorrect. The correct answer was %s.\nDefinition: %s",
			expected.Text,
			expected.Definition,
		)
	}

	s.State = entities.QuizStateAnswered
	s.Message = answer.Message

	return s, answer, nil
}

// FeedbackPhrase returns the phrase spoken after an answer.
func FeedbackPhrase(correct bool) string {
	if correct {
		return PhraseCorrect
	}
	return PhraseIncorrect
}

// QuizService runs quiz sessions over the configured word source.
type QuizService struct {
	words    WordRepository
	selector *QuestionSelector
	logger   *zap.Logger
}

// NewQuizService creates a new QuizService.
func NewQuizService(words WordRepository, selector *QuestionSelector, logger *zap.Logger) *QuizService {
	return &QuizService{
		words:    words,
		selector: selector,
		logger:   logger,
	}
}

// Start loads the word list of the given language and returns a new
// session already showing its first question. Score and attempts start at zero.
func (s *QuizService) Start(ctx context.Context, languageCode string) (entities.QuizSession, error) {
	lang, ok := entities.LookupLanguage(languageCode)
	if !ok {
		return entities.QuizSession{}, fmt.Errorf("%w: %q", ErrUnknownLanguage, languageCode)
	}

	words, err := s.words.GetByLanguage(ctx, lang)
	if err != nil {
		return entities.QuizSession{}, fmt.Errorf("load words for %s: %w", lang.Code, err)
	}

	session, err := NextQuestion(entities.NewQuizSession(lang, words), s.selector)
	if err != nil {
		return entities.QuizSession{}, err
	}

	s.logger.Info("quiz session started",
		zap.String("session_id", session.ID.String()),
		zap.String("language", lang.Code),
		zap.Int("words", len(words)),
	)

	return session, nil
}

// Next shows a new question in the same session.
func (s *QuizService) Next(session entities.QuizSession) (entities.QuizSession, error) {
	next, err := NextQuestion(session, s.selector)
	if err != nil {
		return session, err
	}

	s.logger.Debug("question selected",
		zap.String("session_id", next.ID.String()),
		zap.Int("round", next.Round),
		zap.String("word", next.Question.Target.Text),
	)

	return next, nil
}

// Answer checks the option at optionIndex of the current question.
func (s *QuizService) Answer(session entities.QuizSession, optionIndex int) (entities.QuizSession, entities.Answer, error) {
	if session.Question == nil {
		return session, entities.Answer{}, ErrNoActiveQuestion
	}
	if optionIndex < 0 || optionIndex >= len(session.Question.Options) {
		return session, entities.Answer{}, fmt.Errorf("%w: %d", ErrInvalidOption, optionIndex)
	}

	next, answer, err := CheckAnswer(session, session.Question.Options[optionIndex])
	if err != nil {
		return session, entities.Answer{}, err
	}

	s.logger.Info("answer checked",
		zap.String("session_id", next.ID.String()),
		zap.Int("round", next.Round),
		zap.String("expected", answer.Expected.Text),
		zap.String("selected", answer.Selected.Text),
		zap.Bool("correct", answer.Correct),
		zap.Int("score", next.Score),
		zap.Int("attempts", next.Attempts),
	)

	return next, answer, nil
}
