package command

import (
	"context"
	"reflect"
	"strings"

	"github.com/viant/commander/model/types"
)

const Name = "system/command"

func (s *Service) Name() string {
	return Name
}

func (s *Service) Methods() types.Signatures {
	return []types.Signature{
		{
			Name:        "validate",
			Description: "Reports whether a command line is allowed; only its first token is checked.",
			Input:       reflect.TypeOf(&Input{}),
			Output:      reflect.TypeOf(&ValidateOutput{}),
		},
		{
			Name:        "block",
			Description: "Adds a base command to the blocklist.",
			Input:       reflect.TypeOf(&Input{}),
			Output:      reflect.TypeOf(&ChangeOutput{}),
		},
		{
			Name:        "unblock",
			Description: "Removes a base command from the blocklist.",
			Input:       reflect.TypeOf(&Input{}),
			Output:      reflect.TypeOf(&ChangeOutput{}),
		},
		{
			Name:        "list",
			Description: "Lists blocked commands in sorted order.",
			Input:       reflect.TypeOf(&ListInput{}),
			Output:      reflect.TypeOf(&ListOutput{}),
		},
	}
}

func (s *Service) validate(ctx context.Context, in, out interface{}) error {
	input, ok := in.(*Input)
	if !ok {
		return types.NewInvalidInputError(in)
	}
	output, ok := out.(*ValidateOutput)
	if !ok {
		return types.NewInvalidOutputError(out)
	}
	return s.Validate(ctx, input, output)
}

func (s *Service) block(ctx context.Context, in, out interface{}) error {
	input, ok := in.(*Input)
	if !ok {
		return types.NewInvalidInputError(in)
	}
	output, ok := out.(*ChangeOutput)
	if !ok {
		return types.NewInvalidOutputError(out)
	}
	return s.Block(ctx, input, output)
}

func (s *Service) unblock(ctx context.Context, in, out interface{}) error {
	input, ok := in.(*Input)
	if !ok {
		return types.NewInvalidInputError(in)
	}
	output, ok := out.(*ChangeOutput)
	if !ok {
		return types.NewInvalidOutputError(out)
	}
	return s.Unblock(ctx, input, output)
}

func (s *Service) list(ctx context.Context, _, out interface{}) error {
	output, ok := out.(*ListOutput)
	if !ok {
		return types.NewInvalidOutputError(out)
	}
	return s.List(ctx, output)
}

// Method returns method by Name
func (s *Service) Method(name string) (types.Executable, error) {
	switch strings.ToLower(name) {
	case "validate":
		return s.validate, nil
	case "block":
		return s.block, nil
	case "unblock":
		return s.unblock, nil
	case "list":
		return s.list, nil
	default:
		return nil, types.NewMethodNotFoundError(name)
	}
}
