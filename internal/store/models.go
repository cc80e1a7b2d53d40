package store

import "time"

// Member is the persisted registration record of one user.
type Member struct {
	ID           int64
	Name         string
	Username     string
	DMReady      bool
	RegisteredAt time.Time
}

// Status is the registration state of a user derived from the Membership Set
// and the DM-ready flag of the Member Record.
type Status int

const (
	StatusUnregistered Status = iota
	StatusRegisteredNoDM
	StatusRegisteredDMReady
)

func (s Status) String() string {
	switch s {
	case StatusUnregistered:
		return "unregistered"
	case StatusRegisteredNoDM:
		return "registered_no_dm"
	case StatusRegisteredDMReady:
		return "registered_dm_ready"
	default:
		return "unknown"
	}
}

// Registered reports whether the user is in the Membership Set.
func (s Status) Registered() bool {
	return s != StatusUnregistered
}

// Hash field names and flag values of a Member Record.
const (
	fieldID           = "id"
	fieldName         = "name"
	fieldUsername     = "username"
	fieldDMReady      = "dm_ready"
	fieldRegisteredAt = "registered_at"

	dmNotReady = "0"
	dmReady    = "1"
)
