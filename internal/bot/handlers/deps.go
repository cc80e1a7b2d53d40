package handlers

import (
	"log/slog"

	"github.com/edgard/regbot/internal/config"
	"github.com/edgard/regbot/internal/registration"
	"github.com/edgard/regbot/internal/store"
)

// HandlerDeps provides dependencies for Telegram update handlers.
type HandlerDeps struct {
	Logger   *slog.Logger
	Config   *config.Config
	Store    store.Store
	Workflow *registration.Workflow
}
