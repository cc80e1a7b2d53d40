package handlers

import (
	"context"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// NewDefaultHandler returns the handler for updates no other handler matched.
// Such updates are ignored.
func NewDefaultHandler(deps HandlerDeps) bot.HandlerFunc {
	return func(ctx context.Context, _ *bot.Bot, update *models.Update) {
		deps.Logger.DebugContext(ctx, "Ignoring unmatched update", "update_id", update.ID)
	}
}
