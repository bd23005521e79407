package telegram

import (
	"context"

	"go.uber.org/zap"
)

type HandlerFunc func(ctx context.Context, chatID int64) error

func (h *Handler) withErrorHandling(fn HandlerFunc) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		if err := fn(ctx, chatID); err != nil {
			h.logger.Error("handle error",
				zap.Int64("chat_id", chatID),
				zap.Error(err),
			)
			h.sendError(chatID, msgInternalError)
			return nil
		}
		return nil
	}
}

// requireOwner lets only the chat the quiz is bound to through.
func (h *Handler) requireOwner(fn HandlerFunc) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		if !h.sessions.Owns(chatID) {
			h.send(newHTMLMessage(chatID, msgStartFirst))
			return nil
		}
		return fn(ctx, chatID)
	}
}
