package handlers

import (
	tgbot "github.com/go-telegram/bot"
)

// RegisteredHandler describes one update handler and how it is matched.
// Handlers are matched by MatchFunc so that no two of them claim the same update.
type RegisteredHandler struct {
	MatchFunc  tgbot.MatchFunc
	Handler    tgbot.HandlerFunc
	Middleware []tgbot.Middleware
}

// RegisterAllHandlers returns every handler of the bot keyed by name.
func RegisterAllHandlers(deps HandlerDeps) map[string]RegisteredHandler {
	handlers := make(map[string]RegisteredHandler)

	handlers["group_message"] = RegisteredHandler{
		MatchFunc: isGroupMessage,
		Handler:   NewGroupMessageHandler(deps),
	}
	handlers["callback"] = RegisteredHandler{
		MatchFunc: isCallback,
		Handler:   NewCallbackHandler(deps),
	}
	handlers["/start"] = RegisteredHandler{
		MatchFunc: isPrivateCommand("start"),
		Handler:   NewStartHandler(deps),
	}
	handlers["/stats"] = RegisteredHandler{
		MatchFunc:  isPrivateCommand("stats"),
		Handler:    NewStatsHandler(deps),
		Middleware: []tgbot.Middleware{OwnerOnly(deps)},
	}

	return handlers
}
