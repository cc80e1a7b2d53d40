package handlers

import (
	"context"
	"strconv"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

const unboundGroupLabel = "not bound"

// NewStatsHandler returns the owner-only /stats handler reporting the group
// binding and the number of registered members.
func NewStatsHandler(deps HandlerDeps) bot.HandlerFunc {
	return statsHandler{deps}.Handle
}

type statsHandler struct {
	deps HandlerDeps
}

func (h statsHandler) Handle(ctx context.Context, b *bot.Bot, update *models.Update) {
	log := h.deps.Logger.With("handler", "stats")

	if update.Message == nil {
		log.WarnContext(ctx, "Stats handler received update without message", "update_id", update.ID)
		return
	}
	chatID := update.Message.Chat.ID

	text, err := h.report(ctx)
	if err != nil {
		log.ErrorContext(ctx, "Failed to build stats", "error", err, "chat_id", chatID)
		return
	}

	if _, err := b.SendMessage(ctx, &bot.SendMessageParams{ChatID: chatID, Text: text}); err != nil {
		log.ErrorContext(ctx, "Failed to send stats", "error", err, "chat_id", chatID)
	}
}

func (h statsHandler) report(ctx context.Context) (string, error) {
	groupID, bound, err := h.deps.Store.GetGroupID(ctx)
	if err != nil {
		return "", err
	}
	count, err := h.deps.Store.CountMembers(ctx)
	if err != nil {
		return "", err
	}

	group := unboundGroupLabel
	if bound {
		group = strconv.FormatInt(groupID, 10)
	}

	text := strings.ReplaceAll(h.deps.Config.Messages.Stats, "{group}", group)
	return strings.ReplaceAll(text, "{count}", strconv.FormatInt(count, 10)), nil
}
