package telegram

import (
	"context"
	"errors"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/aliskhannn/sight-words-bot/internal/domain/entities"
	"github.com/aliskhannn/sight-words-bot/internal/service"
)

func (h *Handler) handleCallback(ctx context.Context, cb *tgbotapi.CallbackQuery) {
	if cb.Message == nil {
		h.answerCallback(cb.ID, "")
		return
	}

	chatID := cb.Message.Chat.ID
	if !h.sessions.Owns(chatID) {
		h.answerCallback(cb.ID, msgStartFirst)
		return
	}

	data := decodeCallback(cb.Data)

	var (
		notice string
		err    error
	)

	switch data.Action {
	case actionAnswer:
		notice, err = h.handleAnswerCallback(ctx, cb, data)
	case actionAudio:
		notice, err = h.handleAudioCallback(ctx, cb, data)
	case actionNext:
		notice, err = h.handleNextCallback(ctx, cb, data)
	case actionLanguage:
		notice, err = h.handleLanguageCallback(ctx, cb, data)
	default:
		h.logger.Debug("unknown callback", zap.String("data", cb.Data))
	}

	if err != nil {
		h.logger.Error("handle callback",
			zap.Int64("chat_id", chatID),
			zap.String("data", cb.Data),
			zap.Error(err),
		)
		h.sendError(chatID, msgInternalError)
	}

	// Remove the user's "clock".
	h.answerCallback(cb.ID, notice)
}

func (h *Handler) answerCallback(id, text string) {
	if _, err := h.bot.Request(tgbotapi.NewCallback(id, text)); err != nil {
		h.logger.Warn("callback answer error", zap.Error(err))
	}
}

// currentFor returns the stored session when it still shows the referenced question.
func (h *Handler) currentFor(ref optionRef) (entities.QuizSession, bool) {
	s, ok := h.sessions.Get()
	if !ok || s.ID != ref.SessionID || s.Round != ref.Round {
		return entities.QuizSession{}, false
	}
	return s, true
}

func (h *Handler) handleAnswerCallback(ctx context.Context, cb *tgbotapi.CallbackQuery, data callbackData) (string, error) {
	ref, err := parseOptionRef(data.Params)
	if err != nil {
		return "", fmt.Errorf("%w: %s", err, data.Raw)
	}

	current, ok := h.currentFor(ref)
	if !ok {
		return msgQuestionExpired, nil
	}

	session, answer, err := h.quizService.Answer(current, ref.Index)
	switch {
	case errors.Is(err, service.ErrAlreadyAnswered):
		return msgAlreadyAnswered, nil
	case errors.Is(err, service.ErrInvalidOption):
		return msgQuestionExpired, nil
	case err != nil:
		return "", err
	}
	h.sessions.Put(session)

	h.renderAnswer(ctx, cb.Message.Chat.ID, cb.Message.MessageID, session, ref.Index, answer)

	return "", nil
}

func (h *Handler) handleAudioCallback(ctx context.Context, cb *tgbotapi.CallbackQuery, data callbackData) (string, error) {
	ref, err := parseOptionRef(data.Params)
	if err != nil {
		return "", fmt.Errorf("%w: %s", err, data.Raw)
	}

	current, ok := h.currentFor(ref)
	if !ok || ref.Index >= len(current.Question.Options) {
		return msgQuestionExpired, nil
	}

	word := current.Question.Options[ref.Index]
	path, err := h.soundService.EnsureWordSound(ctx, current.Language, word)
	if err != nil {
		h.logger.Warn("word sound unavailable",
			zap.String("word", word.Text),
			zap.Error(err),
		)
		return msgSoundUnavailable, nil
	}

	h.send(newAudio(cb.Message.Chat.ID, path, optionLabel(ref.Index)))

	return "", nil
}

func (h *Handler) handleNextCallback(ctx context.Context, cb *tgbotapi.CallbackQuery, data callbackData) (string, error) {
	sessionID, err := parseSessionID(data.Params)
	if err != nil {
		return "", fmt.Errorf("%w: %s", err, data.Raw)
	}

	current, ok := h.sessions.Get()
	if !ok || current.ID != sessionID {
		return msgQuestionExpired, nil
	}
	if current.State != entities.QuizStateAnswered {
		return msgAnswerFirst, nil
	}

	// Drop the button so the same feedback cannot skip twice.
	h.send(tgbotapi.NewEditMessageReplyMarkup(cb.Message.Chat.ID, cb.Message.MessageID,
		tgbotapi.InlineKeyboardMarkup{InlineKeyboard: [][]tgbotapi.InlineKeyboardButton{}}))

	return "", h.handleNext()(ctx, cb.Message.Chat.ID)
}

func (h *Handler) handleLanguageCallback(ctx context.Context, cb *tgbotapi.CallbackQuery, data callbackData) (string, error) {
	if len(data.Params) != 1 {
		return "", fmt.Errorf("%w: %s", errMalformedCallback, data.Raw)
	}

	lang, ok := entities.LookupLanguage(data.Params[0])
	if !ok {
		return "", fmt.Errorf("%w: %s", service.ErrUnknownLanguage, data.Params[0])
	}

	session, err := h.quizService.Start(ctx, lang.Code)
	if err != nil {
		return "", err
	}
	h.sessions.Put(session)

	chatID := cb.Message.Chat.ID
	h.send(newHTMLEdit(chatID, cb.Message.MessageID, formatLanguageChanged(lang), nil))

	return "", h.renderQuestion(chatID, session)
}
