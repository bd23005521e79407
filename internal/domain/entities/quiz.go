package entities

import (
	"github.com/google/uuid"
)

// QuizState is the phase of a quiz session.
type QuizState string

const (
	QuizStateIdle          QuizState = "idle"
	QuizStateQuestionShown QuizState = "question_shown"
	QuizStateAnswered      QuizState = "answered"
)

// QuizSession is the whole state of one learner's quiz.
// It is treated as a value: transitions return an updated copy.
type QuizSession struct {
	ID       uuid.UUID // changes whenever a fresh session is started
	Language Language  // language the word list was loaded for
	Words    []Word    // word list, shared and never modified
	Round    int       // number of questions shown so far
	Question *Question // current question, nil while idle
	Score    int       // correct answers
	Attempts int       // answered questions
	State    QuizState
	Message  string // feedback for the last answer
}

// NewQuizSession creates an idle session over the given word list.
func NewQuizSession(lang Language, words []Word) QuizSession {
	return QuizSession{
		ID:       uuid.New(),
		Language: lang,
		Words:    words,
		State:    QuizStateIdle,
	}
}

// Answered reports whether the current question already has an answer.
func (s QuizSession) Answered() bool {
	return s.State == QuizStateAnswered
}

// Answer is the outcome of checking one selection.
type Answer struct {
	Selected Word
	Expected Word
	Correct  bool
	Message  string
}
