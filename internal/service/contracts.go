package service

import (
	"context"

	"github.com/aliskhannn/sight-words-bot/internal/domain/entities"
)

// WordRepository loads the word list of a language.
type WordRepository interface {
	GetByLanguage(ctx context.Context, lang entities.Language) ([]entities.Word, error)
}

// Synthesizer turns text into MP3 audio.
type Synthesizer interface {
	Synthesize(ctx context.Context, text, languageCode string) ([]byte, error)
}
