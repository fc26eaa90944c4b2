// Package session defines the value types describing shell sessions as seen
// by callers: the result of an execute call, a live session snapshot and the
// immutable record kept once a process has exited.
package session

import (
	"fmt"
	"strconv"
	"time"
)

// Result is returned by an execute call. IsBlocked reports that the caller
// timeout fired before the process exited; the process keeps running.
type Result struct {
	Pid       int    `json:"pid"`
	Output    string `json:"output"`
	IsBlocked bool   `json:"isBlocked"`
}

// Active is a point-in-time view of a running session
type Active struct {
	Pid       int   `json:"pid"`
	IsBlocked bool  `json:"isBlocked"`
	RuntimeMs int64 `json:"runtimeMs"`
}

// Completed is created exactly once, when the process exits
type Completed struct {
	Pid       int       `json:"pid"`
	Output    string    `json:"output"`
	ExitCode  *int      `json:"exitCode"`
	StartTime time.Time `json:"startTime"`
	EndTime   time.Time `json:"endTime"`
}

// Runtime returns the elapsed wall time of the process
func (c *Completed) Runtime() time.Duration {
	return c.EndTime.Sub(c.StartTime)
}

// ExitCodeText returns the exit code or "null" when the process was killed by a signal
func (c *Completed) ExitCodeText() string {
	if c.ExitCode == nil {
		return "null"
	}
	return strconv.Itoa(*c.ExitCode)
}

// Summary renders the human-readable completion report returned by read-output
func (c *Completed) Summary() string {
	seconds := strconv.FormatFloat(c.Runtime().Seconds(), 'f', -1, 64)
	return fmt.Sprintf("Process completed with exit code %s\nRuntime: %ss\nFinal output:\n%s", c.ExitCodeText(), seconds, c.Output)
}
