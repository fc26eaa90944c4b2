package session

import "time"

// EventType identifies a session lifecycle transition
type EventType string

const (
	EventStarted            EventType = "started"
	EventTimedOut           EventType = "timedOut"
	EventTerminateRequested EventType = "terminateRequested"
	EventKilled             EventType = "killed"
	EventExited             EventType = "exited"
)

// Event describes a lifecycle transition of one session
type Event struct {
	Type     EventType `json:"type"`
	Pid      int       `json:"pid"`
	Command  string    `json:"command,omitempty"`
	ExitCode *int      `json:"exitCode,omitempty"`
	At       time.Time `json:"at"`
}
