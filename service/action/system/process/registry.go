package process

import (
	"context"
	"reflect"
	"strings"

	"github.com/viant/commander/model/types"
)

const Name = "system/process"

func (s *Service) Name() string {
	return Name
}

func (s *Service) Methods() types.Signatures {
	return []types.Signature{
		{
			Name:        "list",
			Description: "Lists processes running on the local host with their CPU and memory usage.",
			Input:       reflect.TypeOf(&ListInput{}),
			Output:      reflect.TypeOf(&ListOutput{}),
		},
		{
			Name:        "kill",
			Description: "Sends a signal (SIGTERM by default) to a process by pid.",
			Input:       reflect.TypeOf(&KillInput{}),
			Output:      reflect.TypeOf(&KillOutput{}),
		},
	}
}

func (s *Service) list(ctx context.Context, in, out interface{}) error {
	input, ok := in.(*ListInput)
	if !ok {
		return types.NewInvalidInputError(in)
	}
	output, ok := out.(*ListOutput)
	if !ok {
		return types.NewInvalidOutputError(out)
	}
	return s.List(ctx, input, output)
}

func (s *Service) kill(ctx context.Context, in, out interface{}) error {
	input, ok := in.(*KillInput)
	if !ok {
		return types.NewInvalidInputError(in)
	}
	output, ok := out.(*KillOutput)
	if !ok {
		return types.NewInvalidOutputError(out)
	}
	return s.Kill(ctx, input, output)
}

// Method returns method by Name
func (s *Service) Method(name string) (types.Executable, error) {
	switch strings.ToLower(name) {
	case "list":
		return s.list, nil
	case "kill":
		return s.kill, nil
	default:
		return nil, types.NewMethodNotFoundError(name)
	}
}
