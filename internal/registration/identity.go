package registration

import (
	"strconv"
	"strings"

	"github.com/go-telegram/bot/models"
)

// Identity is the part of a chat profile the workflow cares about.
type Identity struct {
	ID        int64
	FirstName string
	LastName  string
	Username  string
	IsBot     bool
}

// IdentityFromUser converts a Telegram user.
func IdentityFromUser(u models.User) Identity {
	return Identity{
		ID:        u.ID,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Username:  u.Username,
		IsBot:     u.IsBot,
	}
}

// FullName joins first and last name and trims the result.
func (i Identity) FullName() string {
	return strings.TrimSpace(i.FirstName + " " + i.LastName)
}

// Display returns the label used in messages: the full name, else
// @username, else the numeric id.
func (i Identity) Display() string {
	if name := i.FullName(); name != "" {
		return name
	}
	if i.Username != "" {
		return "@" + i.Username
	}
	return strconv.FormatInt(i.ID, 10)
}

// Profile returns the name/username pair stored in the member record.
// Either may be empty.
func (i Identity) Profile() (name, username string) {
	return i.FullName(), i.Username
}

// Contactable reports whether the profile exposes a real name or a username.
func (i Identity) Contactable() bool {
	return i.FullName() != "" || i.Username != ""
}
