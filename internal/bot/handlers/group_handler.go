package handlers

import (
	"context"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// NewGroupMessageHandler returns the handler for every message seen in a group.
// It binds the group and invites new members.
func NewGroupMessageHandler(deps HandlerDeps) bot.HandlerFunc {
	return groupMessageHandler{deps}.Handle
}

type groupMessageHandler struct {
	deps HandlerDeps
}

func (h groupMessageHandler) Handle(ctx context.Context, _ *bot.Bot, update *models.Update) {
	log := h.deps.Logger.With("handler", "group_message")

	if update.Message == nil {
		log.WarnContext(ctx, "Group handler received update without message", "update_id", update.ID)
		return
	}

	ev := groupMessageEvent(update.Message)
	if err := h.deps.Workflow.Handle(ctx, ev); err != nil {
		log.ErrorContext(ctx, "Failed to handle group message", "error", err, "chat_id", ev.ChatID, "new_members", len(ev.NewMembers))
	}
}
