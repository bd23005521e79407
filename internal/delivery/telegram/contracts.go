package telegram

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/aliskhannn/sight-words-bot/internal/domain/entities"
)

// Bot is the part of the Telegram API the handler talks to.
// *tgbotapi.BotAPI satisfies it.
type Bot interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
	SendMediaGroup(config tgbotapi.MediaGroupConfig) ([]tgbotapi.Message, error)
	GetUpdatesChan(config tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel
}

type QuizService interface {
	Start(ctx context.Context, languageCode string) (entities.QuizSession, error)
	Next(session entities.QuizSession) (entities.QuizSession, error)
	Answer(session entities.QuizSession, optionIndex int) (entities.QuizSession, entities.Answer, error)
}

type SoundService interface {
	ImagePath(w entities.Word) string
	EnsureWordSound(ctx context.Context, lang entities.Language, w entities.Word) (string, error)
	EnsurePhraseSound(ctx context.Context, lang entities.Language, text string) (string, error)
}

type SessionStorage interface {
	Claim(chatID int64) error
	Owns(chatID int64) bool
	Get() (entities.QuizSession, bool)
	Put(session entities.QuizSession)
}
