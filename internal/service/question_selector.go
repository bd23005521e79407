package service

import (
	"errors"
	"math/rand"
	"time"

	"github.com/aliskhannn/sight-words-bot/internal/domain/entities"
)

// DefaultOptionsCount is the number of images shown per question.
const DefaultOptionsCount = 3

var ErrNoWords = errors.New("word list is empty")

// QuestionSelector picks quiz questions from a word list.
type QuestionSelector struct {
	optionsCount int
	rng          *rand.Rand
}

// NewQuestionSelector creates a new QuestionSelector.
// A zero seed seeds the generator from the clock; any other value makes
// the sequence of questions reproducible.
func NewQuestionSelector(optionsCount int, seed int64) *QuestionSelector {
	if optionsCount <= 0 {
		optionsCount = DefaultOptionsCount
	}
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	return &QuestionSelector{
		optionsCount: optionsCount,
		rng:          rand.New(rand.NewSource(seed)),
	}
}

// Select picks the next question.
func (s *QuestionSelector) Select(words []entities.Word) (entities.Question, error) {
	return SelectQuestion(words, s.optionsCount, s.rng)
}

// SelectQuestion chooses one word uniformly at random as the target and
// surrounds it with distractors up to count options. Fewer options are
// returned when the list does not hold enough distinct words.
func SelectQuestion(words []entities.Word, count int, rng *rand.Rand) (entities.Question, error) {
	if len(words) == 0 {
		return entities.Question{}, ErrNoWords
	}
	if count < 1 {
		count = 1
	}

	target := words[rng.Intn(len(words))]

	return entities.Question{
		Target:  target,
		Options: buildOptions(target, words, count, rng),
	}, nil
}
