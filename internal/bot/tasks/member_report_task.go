package tasks

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/go-telegram/bot"
)

// newMemberReportTask sends the owner the current number of registered members.
func newMemberReportTask(deps TaskDeps) ScheduledTaskFunc {
	log := deps.Logger.With("task", MemberReportTask)

	return func(ctx context.Context) error {
		count, err := deps.Store.CountMembers(ctx)
		if err != nil {
			return fmt.Errorf("failed to count members: %w", err)
		}

		ownerID := deps.Config.Telegram.OwnerID
		text := strings.ReplaceAll(deps.Config.Messages.MemberReport, "{count}", strconv.FormatInt(count, 10))

		if _, err := deps.Sender.SendMessage(ctx, &bot.SendMessageParams{ChatID: ownerID, Text: text}); err != nil {
			return fmt.Errorf("failed to send member report to owner: %w", err)
		}

		log.InfoContext(ctx, "Member report sent", "owner_id", ownerID, "members", count)
		return nil
	}
}
