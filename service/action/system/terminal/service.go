package terminal

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/viant/commander/model/types"
	"github.com/viant/commander/policy"
	manager "github.com/viant/commander/service/terminal"
)

// Service exposes the session manager as an action service
type Service struct {
	manager *manager.Manager
	policy  *policy.Policy
}

// Execute validates the command against the blocklist and starts it
func (s *Service) Execute(ctx context.Context, input *ExecuteInput, output *ExecuteOutput) error {
	if strings.TrimSpace(input.Command) == "" {
		return fmt.Errorf("command was empty")
	}
	if !s.allowed(ctx, input.Command) {
		return types.NewBlockedCommandError(input.Command)
	}
	result, err := s.manager.Execute(ctx, input.Command, time.Duration(input.TimeoutMs)*time.Millisecond)
	if err != nil {
		return fmt.Errorf("failed to execute command: %w", err)
	}
	output.Pid = result.Pid
	output.Output = result.Output
	output.IsBlocked = result.IsBlocked
	output.Text = fmt.Sprintf("Command started with PID %d\nInitial output:\n%s", result.Pid, result.Output)
	if result.IsBlocked {
		output.Text += "\nCommand is still running. Use read_output to get more output."
	}
	return nil
}

func (s *Service) allowed(ctx context.Context, command string) bool {
	p := s.policy
	if p == nil {
		p = policy.FromContext(ctx)
	}
	return p == nil || p.Validate(command)
}

// ReadOutput returns new output or the completion report
func (s *Service) ReadOutput(_ context.Context, input *PidInput, output *ReadOutputOutput) error {
	text, found := s.manager.ReadOutput(input.Pid)
	output.Output = text
	output.Found = found
	switch {
	case !found:
		output.Text = fmt.Sprintf("No session found for PID %d", input.Pid)
	case text == "":
		output.Text = "No new output available"
	default:
		output.Text = text
	}
	return nil
}

// ForceTerminate requests termination of a running command
func (s *Service) ForceTerminate(_ context.Context, input *PidInput, output *ForceTerminateOutput) error {
	output.Terminated = s.manager.ForceTerminate(input.Pid)
	if output.Terminated {
		output.Text = fmt.Sprintf("Successfully initiated termination of session %d", input.Pid)
	} else {
		output.Text = fmt.Sprintf("No active session found for PID %d", input.Pid)
	}
	return nil
}

// ListSessions lists running commands
func (s *Service) ListSessions(_ context.Context, output *ListSessionsOutput) error {
	output.Sessions = s.manager.ListActive()
	if len(output.Sessions) == 0 {
		output.Text = "No active sessions"
		return nil
	}
	lines := make([]string, 0, len(output.Sessions))
	for _, item := range output.Sessions {
		lines = append(lines, fmt.Sprintf("PID: %d, Blocked: %v, Runtime: %ds", item.Pid, item.IsBlocked, item.RuntimeMs/1000))
	}
	output.Text = strings.Join(lines, "\n")
	return nil
}

// ListCompleted lists the completed history
func (s *Service) ListCompleted(_ context.Context, output *ListCompletedOutput) error {
	output.Sessions = s.manager.ListCompleted()
	if len(output.Sessions) == 0 {
		output.Text = "No completed sessions"
		return nil
	}
	lines := make([]string, 0, len(output.Sessions))
	for _, item := range output.Sessions {
		seconds := strconv.FormatFloat(item.Runtime().Seconds(), 'f', 1, 64)
		lines = append(lines, fmt.Sprintf("PID: %d, Exit code: %s, Runtime: %ss", item.Pid, item.ExitCodeText(), seconds))
	}
	output.Text = strings.Join(lines, "\n")
	return nil
}

// New creates a terminal action service. A nil policy falls back to the one
// carried by the context, if any.
func New(m *manager.Manager, p *policy.Policy) *Service {
	return &Service{manager: m, policy: p}
}
