// Package history keeps a trail of persisted preference changes so a user
// can see what was saved or cleared and when.
package history

import "time"

// Op is the kind of change that reached the preference store.
type Op string

const (
	OpSave   Op = "save"
	OpReset  Op = "reset"
	OpDelete Op = "delete"
)

// Entry is a single change record. Previous and Current are the stored
// preference before and after the change, rendered for display.
type Entry struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Op        Op        `json:"op"`
	Previous  string    `json:"previous"`
	Current   string    `json:"current"`
	Timestamp time.Time `json:"timestamp"`
}
