package telegram

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

type Handler struct {
	bot             Bot
	logger          *zap.Logger
	quizService     QuizService
	soundService    SoundService
	sessions        SessionStorage
	defaultLanguage string
}

func NewHandler(
	bot Bot,
	logger *zap.Logger,
	quizService QuizService,
	soundService SoundService,
	sessions SessionStorage,
	defaultLanguage string,
) *Handler {
	return &Handler{
		bot:             bot,
		logger:          logger,
		quizService:     quizService,
		soundService:    soundService,
		sessions:        sessions,
		defaultLanguage: defaultLanguage,
	}
}

// Run consumes updates until ctx is cancelled. Updates are handled one at
// a time, in the order Telegram delivers them.
func (h *Handler) Run(ctx context.Context) error {
	h.logger.Info("telegram handler started")
	defer h.logger.Info("telegram handler stopped")

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := h.bot.GetUpdatesChan(u)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			h.handleUpdate(ctx, update)
		}
	}
}

func (h *Handler) handleUpdate(ctx context.Context, update tgbotapi.Update) {
	if update.CallbackQuery != nil {
		h.logger.Debug("callback received",
			zap.Int64("user_id", update.CallbackQuery.From.ID),
			zap.String("data", update.CallbackQuery.Data),
		)
		h.handleCallback(ctx, update.CallbackQuery)
		return
	}

	if update.Message == nil {
		h.logger.Debug("update without message and callback")
		return
	}

	h.logger.Debug("update received",
		zap.Int64("chat_id", update.Message.Chat.ID),
		zap.String("text", update.Message.Text),
	)

	chatID := update.Message.Chat.ID

	if !update.Message.IsCommand() {
		h.send(newHTMLMessage(chatID, msgUseButtons))
		return
	}

	switch update.Message.Command() {
	case "start":
		_ = h.withErrorHandling(h.handleStart())(ctx, chatID)

	case "next":
		_ = h.withErrorHandling(h.requireOwner(h.handleNext()))(ctx, chatID)

	case "language":
		_ = h.withErrorHandling(h.requireOwner(h.handleLanguage()))(ctx, chatID)

	case "score":
		_ = h.withErrorHandling(h.requireOwner(h.handleScore()))(ctx, chatID)

	case "feedback":
		_ = h.withErrorHandling(h.handleFeedback(update.Message.From, update.Message.CommandArguments()))(ctx, chatID)

	case "help":
		h.send(newHTMLMessage(chatID, msgHelp))

	default:
		h.send(newHTMLMessage(chatID, msgUnknownCommand))
	}
}

func (h *Handler) sendError(chatID int64, text string) {
	h.send(newHTMLMessage(chatID, text))
}

func (h *Handler) send(c tgbotapi.Chattable) {
	if _, err := h.bot.Send(c); err != nil {
		h.logger.Error("failed to send telegram message",
			zap.Error(err),
		)
	}
}
