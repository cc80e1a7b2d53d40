package handlers

import (
	"context"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// NewCallbackHandler returns the handler for inline button presses.
func NewCallbackHandler(deps HandlerDeps) bot.HandlerFunc {
	return callbackHandler{deps}.Handle
}

type callbackHandler struct {
	deps HandlerDeps
}

func (h callbackHandler) Handle(ctx context.Context, _ *bot.Bot, update *models.Update) {
	log := h.deps.Logger.With("handler", "callback")

	if update.CallbackQuery == nil {
		log.WarnContext(ctx, "Callback handler received update without callback query", "update_id", update.ID)
		return
	}

	ev := buttonPressEvent(update.CallbackQuery)
	if err := h.deps.Workflow.Handle(ctx, ev); err != nil {
		log.ErrorContext(ctx, "Failed to handle button press", "error", err, "user_id", ev.From.ID, "payload", ev.Payload)
	}
}
