package terminal

import (
	"context"
	"reflect"
	"strings"

	"github.com/viant/commander/model/types"
)

const Name = "system/terminal"

func (s *Service) Name() string {
	return Name
}

func (s *Service) Methods() types.Signatures {
	return []types.Signature{
		{
			Name: "execute",
			Description: `Executes a shell command on the local host and waits up to timeoutMs for it to finish.
When the timeout fires first the process keeps running in the background:
use readOutput with the returned pid to collect more output.`,
			Input:  reflect.TypeOf(&ExecuteInput{}),
			Output: reflect.TypeOf(&ExecuteOutput{}),
		},
		{
			Name:        "readOutput",
			Description: "Returns new output of a running command, or the final report of a completed one.",
			Input:       reflect.TypeOf(&PidInput{}),
			Output:      reflect.TypeOf(&ReadOutputOutput{}),
		},
		{
			Name:        "forceTerminate",
			Description: "Interrupts a running command; it is killed when still alive after the grace period.",
			Input:       reflect.TypeOf(&PidInput{}),
			Output:      reflect.TypeOf(&ForceTerminateOutput{}),
		},
		{
			Name:        "listSessions",
			Description: "Lists running commands.",
			Input:       reflect.TypeOf(&ListInput{}),
			Output:      reflect.TypeOf(&ListSessionsOutput{}),
		},
		{
			Name:        "listCompleted",
			Description: "Lists recently completed commands.",
			Input:       reflect.TypeOf(&ListInput{}),
			Output:      reflect.TypeOf(&ListCompletedOutput{}),
		},
	}
}

func (s *Service) execute(ctx context.Context, in, out interface{}) error {
	input, ok := in.(*ExecuteInput)
	if !ok {
		return types.NewInvalidInputError(in)
	}
	output, ok := out.(*ExecuteOutput)
	if !ok {
		return types.NewInvalidOutputError(out)
	}
	return s.Execute(ctx, input, output)
}

func (s *Service) readOutput(ctx context.Context, in, out interface{}) error {
	input, ok := in.(*PidInput)
	if !ok {
		return types.NewInvalidInputError(in)
	}
	output, ok := out.(*ReadOutputOutput)
	if !ok {
		return types.NewInvalidOutputError(out)
	}
	return s.ReadOutput(ctx, input, output)
}

func (s *Service) forceTerminate(ctx context.Context, in, out interface{}) error {
	input, ok := in.(*PidInput)
	if !ok {
		return types.NewInvalidInputError(in)
	}
	output, ok := out.(*ForceTerminateOutput)
	if !ok {
		return types.NewInvalidOutputError(out)
	}
	return s.ForceTerminate(ctx, input, output)
}

func (s *Service) listSessions(ctx context.Context, _, out interface{}) error {
	output, ok := out.(*ListSessionsOutput)
	if !ok {
		return types.NewInvalidOutputError(out)
	}
	return s.ListSessions(ctx, output)
}

func (s *Service) listCompleted(ctx context.Context, _, out interface{}) error {
	output, ok := out.(*ListCompletedOutput)
	if !ok {
		return types.NewInvalidOutputError(out)
	}
	return s.ListCompleted(ctx, output)
}

// Method returns method by Name
func (s *Service) Method(name string) (types.Executable, error) {
	switch strings.ToLower(name) {
	case "execute":
		return s.execute, nil
	case "readoutput":
		return s.readOutput, nil
	case "forceterminate":
		return s.forceTerminate, nil
	case "listsessions":
		return s.listSessions, nil
	case "listcompleted":
		return s.listCompleted, nil
	default:
		return nil, types.NewMethodNotFoundError(name)
	}
}
