// Package registration implements the member registration workflow: group
// binding, invitation buttons, button presses and DM enablement.
package registration

import "github.com/go-telegram/bot/models"

// Event is one inbound chat event. The concrete types are GroupMessage,
// ButtonPress and StartCommand.
type Event interface {
	event()
}

// GroupMessage is any message observed in a group or supergroup, possibly
// announcing new members.
type GroupMessage struct {
	ChatID     int64
	ChatType   models.ChatType
	NewMembers []Identity
}

// ButtonPress is a callback from an inline button.
type ButtonPress struct {
	CallbackID string
	Payload    string
	From       Identity
	// ChatID and MessageID locate the message carrying the button. They are
	// zero when the message is inaccessible.
	ChatID    int64
	MessageID int
}

// HasMessage reports whether the pressed button's message can be edited.
func (p ButtonPress) HasMessage() bool {
	return p.ChatID != 0 && p.MessageID != 0
}

// StartCommand is a /start command.
type StartCommand struct {
	ChatID   int64
	ChatType models.ChatType
	From     Identity
}

func (GroupMessage) event() {}
func (ButtonPress) event()  {}
func (StartCommand) event() {}

// IsGroupChat reports whether the chat type is a group or supergroup.
func IsGroupChat(t models.ChatType) bool {
	return t == models.ChatTypeGroup || t == models.ChatTypeSupergroup
}
