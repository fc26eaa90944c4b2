package terminal

import "github.com/viant/commander/model/session"

// ExecuteInput represents a command to run
type ExecuteInput struct {
	Command   string `json:"command,omitempty" description:"shell command line to execute"`
	TimeoutMs int    `json:"timeoutMs,omitempty" yaml:"timeoutMs,omitempty" description:"max wait time before returning with the process still running"`
}

// ExecuteOutput represents the initial command result
type ExecuteOutput struct {
	Pid       int    `json:"pid,omitempty"`
	Output    string `json:"output,omitempty"`
	IsBlocked bool   `json:"isBlocked,omitempty"`
	Text      string `json:"text,omitempty"`
}

type PidInput struct {
	Pid int `json:"pid,omitempty" description:"process id returned by execute"`
}

type ReadOutputOutput struct {
	Output string `json:"output,omitempty"`
	Found  bool   `json:"found,omitempty"`
	Text   string `json:"text,omitempty"`
}

type ForceTerminateOutput struct {
	Terminated bool   `json:"terminated,omitempty"`
	Text       string `json:"text,omitempty"`
}

type ListInput struct{}

type ListSessionsOutput struct {
	Sessions []*session.Active `json:"sessions,omitempty"`
	Text     string            `json:"text,omitempty"`
}

type ListCompletedOutput struct {
	Sessions []*session.Completed `json:"sessions,omitempty"`
	Text     string               `json:"text,omitempty"`
}
