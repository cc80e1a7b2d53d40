// Package tasks implements the scheduled tasks of the bot.
package tasks

import (
	"context"
	"log/slog"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/edgard/regbot/internal/config"
	"github.com/edgard/regbot/internal/store"
)

// Sender sends a chat message. *bot.Bot satisfies it.
type Sender interface {
	SendMessage(ctx context.Context, params *bot.SendMessageParams) (*models.Message, error)
}

// TaskDeps contains all dependencies required by scheduled tasks.
type TaskDeps struct {
	Logger *slog.Logger
	Store  store.Store
	Sender Sender
	Config *config.Config
}
