package models

import "time"

// AuditEntry is one entry in an expense's edit history. Entries are immutable
// once appended and are never removed.
type AuditEntry struct {
	// Actor is the user who made the change.
	Actor User `json:"actor"`

	// Action is the human-readable summary, e.g. "updated the amount".
	Action string `json:"action"`

	// Details optionally lists the concrete before/after values, one line
	// per changed value with blank lines between sections.
	Details string `json:"details,omitempty"`

	// Timestamp is when the change was recorded.
	Timestamp time.Time `json:"timestamp"`
}
