//go:build !unix

package process

import (
	"fmt"
	"os"
)

func sendSignal(pid int, name string) error {
	if name != "SIGTERM" && name != "SIGKILL" {
		return fmt.Errorf("unsupported signal: %v", name)
	}
	process, err := os.FindProcess(pid)
	if err != nil {
		return err
	}
	return process.Kill()
}
