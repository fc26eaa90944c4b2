package terminal

import "errors"

var (
	// ErrSpawn is returned when the shell process could not be started or
	// the platform did not report a process id.
	ErrSpawn = errors.New("terminal: failed to start process")

	// ErrDuplicatePid indicates the OS reported a pid that still names a live session.
	ErrDuplicatePid = errors.New("terminal: pid already registered")
)
