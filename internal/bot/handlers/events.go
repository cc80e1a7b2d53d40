package handlers

import (
	"strings"

	"github.com/go-telegram/bot/models"

	"github.com/edgard/regbot/internal/registration"
)

func isGroupMessage(update *models.Update) bool {
	return update.Message != nil && registration.IsGroupChat(update.Message.Chat.Type)
}

func isCallback(update *models.Update) bool {
	return update.CallbackQuery != nil
}

func isPrivateCommand(name string) func(update *models.Update) bool {
	return func(update *models.Update) bool {
		msg := update.Message
		return msg != nil && msg.Chat.Type == models.ChatTypePrivate && commandName(msg.Text) == name
	}
}

// commandName extracts "start" from "/start", "/start@some_bot" or
// "/start payload". It returns "" for text that is not a command.
func commandName(text string) string {
	if !strings.HasPrefix(text, "/") {
		return ""
	}
	fields := strings.Fields(text[1:])
	if len(fields) == 0 {
		return ""
	}
	name, _, _ := strings.Cut(fields[0], "@")
	return name
}

// groupMessageEvent converts a group message update.
func groupMessageEvent(msg *models.Message) registration.GroupMessage {
	ev := registration.GroupMessage{
		ChatID:   msg.Chat.ID,
		ChatType: msg.Chat.Type,
	}
	for _, u := range msg.NewChatMembers {
		ev.NewMembers = append(ev.NewMembers, registration.IdentityFromUser(u))
	}
	return ev
}

// buttonPressEvent converts a callback query. Chat and message ids stay zero
// when Telegram no longer exposes the message.
func buttonPressEvent(cb *models.CallbackQuery) registration.ButtonPress {
	ev := registration.ButtonPress{
		CallbackID: cb.ID,
		Payload:    cb.Data,
		From:       registration.IdentityFromUser(cb.From),
	}
	switch {
	case cb.Message.Message != nil:
		ev.ChatID = cb.Message.Message.Chat.ID
		ev.MessageID = cb.Message.Message.ID
	case cb.Message.InaccessibleMessage != nil:
		ev.ChatID = cb.Message.InaccessibleMessage.Chat.ID
	}
	return ev
}

// startCommandEvent converts a /start message. The caller ensures From is set.
func startCommandEvent(msg *models.Message) registration.StartCommand {
	return registration.StartCommand{
		ChatID:   msg.Chat.ID,
		ChatType: msg.Chat.Type,
		From:     registration.IdentityFromUser(*msg.From),
	}
}
