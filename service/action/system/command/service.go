package command

import (
	"context"
	"fmt"
	"strings"

	"github.com/viant/commander/policy"
)

// Service manages the command blocklist
type Service struct {
	policy *policy.Policy
}

func (s *Service) Validate(_ context.Context, input *Input, output *ValidateOutput) error {
	output.Base = policy.BaseCommand(input.Command)
	output.Allowed = s.policy.Validate(input.Command)
	if output.Allowed {
		output.Text = fmt.Sprintf("Command allowed: %s", input.Command)
	} else {
		output.Text = fmt.Sprintf("Command not allowed: %s (%s is blocked)", input.Command, output.Base)
	}
	return nil
}

func (s *Service) Block(ctx context.Context, input *Input, output *ChangeOutput) error {
	output.Changed = s.policy.Block(ctx, input.Command)
	if output.Changed {
		output.Text = fmt.Sprintf("Command blocked: %s", input.Command)
	} else {
		output.Text = fmt.Sprintf("Command is already blocked: %s", input.Command)
	}
	return nil
}

func (s *Service) Unblock(ctx context.Context, input *Input, output *ChangeOutput) error {
	output.Changed = s.policy.Unblock(ctx, input.Command)
	if output.Changed {
		output.Text = fmt.Sprintf("Command unblocked: %s", input.Command)
	} else {
		output.Text = fmt.Sprintf("Command is not blocked or doesn't exist: %s", input.Command)
	}
	return nil
}

func (s *Service) List(_ context.Context, output *ListOutput) error {
	output.Commands = s.policy.List()
	if len(output.Commands) == 0 {
		output.Text = "No blocked commands"
		return nil
	}
	output.Text = strings.Join(output.Commands, "\n")
	return nil
}

// New creates a blocklist action service
func New(p *policy.Policy) *Service {
	return &Service{policy: p}
}
