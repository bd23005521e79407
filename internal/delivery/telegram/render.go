package telegram

import (
	"context"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/aliskhannn/sight-words-bot/internal/domain/entities"
	"github.com/aliskhannn/sight-words-bot/internal/service"
)

// renderQuestion sends the option images followed by the word card.
func (h *Handler) renderQuestion(chatID int64, s entities.QuizSession) error {
	if s.Question == nil {
		return service.ErrNoActiveQuestion
	}

	if err := h.sendOptionImages(chatID, s.Question.Options); err != nil {
		return err
	}

	msg := newHTMLMessage(chatID, formatCard(s))
	msg.ReplyMarkup = buildQuestionKeyboard(s)

	if _, err := h.bot.Send(msg); err != nil {
		return fmt.Errorf("send word card: %w", err)
	}

	return nil
}

func (h *Handler) sendOptionImages(chatID int64, options []entities.Word) error {
	// Albums need at least two items.
	if len(options) == 1 {
		photo := tgbotapi.NewPhoto(chatID, tgbotapi.FilePath(h.soundService.ImagePath(options[0])))
		photo.Caption = optionLabel(0)
		if _, err := h.bot.Send(photo); err != nil {
			return fmt.Errorf("send option image: %w", err)
		}
		return nil
	}

	media := make([]interface{}, 0, len(options))
	for i, o := range options {
		photo := tgbotapi.NewInputMediaPhoto(tgbotapi.FilePath(h.soundService.ImagePath(o)))
		photo.Caption = optionLabel(i)
		media = append(media, photo)
	}

	if _, err := h.bot.SendMediaGroup(tgbotapi.NewMediaGroup(chatID, media)); err != nil {
		return fmt.Errorf("send option images: %w", err)
	}

	return nil
}

// renderAnswer updates the word card and sends the feedback for an answer.
func (h *Handler) renderAnswer(
	ctx context.Context,
	chatID int64,
	cardMessageID int,
	s entities.QuizSession,
	optionIndex int,
	answer entities.Answer,
) {
	kb := buildAnsweredKeyboard(s)
	h.send(newHTMLEdit(chatID, cardMessageID, formatAnsweredCard(s, optionIndex), &kb))

	msg := newHTMLMessage(chatID, formatAnswer(answer))
	msg.ReplyMarkup = buildNextKeyboard(s)
	h.send(msg)

	phrase := service.FeedbackPhrase(answer.Correct)
	path, err := h.soundService.EnsurePhraseSound(ctx, s.Language, phrase)
	if err != nil {
		h.logger.Warn("feedback sound unavailable",
			zap.String("phrase", phrase),
			zap.Error(err),
		)
		return
	}

	h.send(newAudio(chatID, path, phrase))
}
