package types

import (
	"errors"
	"fmt"
)

// ErrCommandBlocked is returned when a command line names a blocked base command.
var ErrCommandBlocked = errors.New("command blocked")

func NewMethodNotFoundError(name string) error {
	return fmt.Errorf("method %v not found", name)
}

func NewInvalidInputError(in interface{}) error {
	return fmt.Errorf("invalid input %T", in)
}

func NewInvalidOutputError(in interface{}) error {
	return fmt.Errorf("invalid output %T", in)
}

// NewBlockedCommandError wraps ErrCommandBlocked with the offending command line.
func NewBlockedCommandError(command string) error {
	return fmt.Errorf("%w: %q is not allowed", ErrCommandBlocked, command)
}
