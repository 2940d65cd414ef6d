package model

import "time"

// MoveOperation records a single completed file move. Immutable once created
// and append-only within a session. The JSON tags form the wire format of the
// persisted session log.
type MoveOperation struct {
	Timestamp   time.Time `json:"timestamp"`
	Source      string    `json:"source"`
	Destination string    `json:"destination"`
	Category    string    `json:"category"`
	Reasoning   string    `json:"reasoning"`
}

// Session is one organize run's record of every move performed. It is mutable
// only while active; once completed it is read-only except for removal when an
// undo consumes it.
type Session struct {
	Timestamp       time.Time       `json:"timestamp"`
	ID              string          `json:"session_id"`
	SourceDirectory string          `json:"source_directory"`
	OutputDirectory string          `json:"output_directory"`
	Operations      []MoveOperation `json:"operations"`
	Completed       bool            `json:"completed"`
}
