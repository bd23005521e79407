package telegram

import (
	"context"
	"errors"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/aliskhannn/sight-words-bot/internal/domain/entities"
	"github.com/aliskhannn/sight-words-bot/internal/storage"
)

// handleStart binds the quiz to the chat and starts a fresh session,
// keeping the language of the previous one.
func (h *Handler) handleStart() HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		if err := h.sessions.Claim(chatID); err != nil {
			if errors.Is(err, storage.ErrChatNotAllowed) {
				h.logger.Warn("chat rejected", zap.Int64("chat_id", chatID))
				h.send(newHTMLMessage(chatID, msgChatNotAllowed))
				return nil
			}
			return err
		}

		languageCode := h.defaultLanguage
		if current, ok := h.sessions.Get(); ok {
			languageCode = current.Language.Code
		}

		session, err := h.quizService.Start(ctx, languageCode)
		if err != nil {
			return err
		}
		h.sessions.Put(session)

		h.send(newHTMLMessage(chatID, msgWelcome))
		return h.renderQuestion(chatID, session)
	}
}

// handleNext moves to the next question once the current one is answered.
func (h *Handler) handleNext() HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		current, ok := h.sessions.Get()
		if !ok {
			return h.handleStart()(ctx, chatID)
		}

		if current.State == entities.QuizStateQuestionShown {
			h.send(newHTMLMessage(chatID, msgAnswerFirst))
			return nil
		}

		session, err := h.quizService.Next(current)
		if err != nil {
			return err
		}
		h.sessions.Put(session)

		return h.renderQuestion(chatID, session)
	}
}

// handleLanguage shows the language picker.
func (h *Handler) handleLanguage() HandlerFunc {
	return func(_ context.Context, chatID int64) error {
		current := h.defaultLanguage
		if s, ok := h.sessions.Get(); ok {
			current = s.Language.Code
		}

		msg := newHTMLMessage(chatID, msgChooseLanguage)
		msg.ReplyMarkup = buildLanguageKeyboard(current)
		h.send(msg)

		return nil
	}
}

// handleScore shows the running score and attempt count.
func (h *Handler) handleScore() HandlerFunc {
	return func(_ context.Context, chatID int64) error {
		s, ok := h.sessions.Get()
		if !ok {
			h.send(newHTMLMessage(chatID, msgStartFirst))
			return nil
		}

		h.send(newHTMLMessage(chatID, formatScore(s)))
		return nil
	}
}

// handleFeedback records free-form feedback from the learner in the log.
func (h *Handler) handleFeedback(from *tgbotapi.User, text string) HandlerFunc {
	return func(_ context.Context, chatID int64) error {
		text = strings.TrimSpace(text)
		if text == "" {
			h.send(newHTMLMessage(chatID, msgFeedbackUsage))
			return nil
		}

		fields := []zap.Field{
			zap.Int64("chat_id", chatID),
			zap.String("feedback", text),
		}
		if from != nil {
			fields = append(fields, zap.Int64("user_id", from.ID), zap.String("username", from.UserName))
		}
		h.logger.Info("feedback received", fields...)

		h.send(newHTMLMessage(chatID, msgFeedbackThanks))
		return nil
	}
}
