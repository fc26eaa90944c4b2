package process

import (
	"context"
	"os/exec"
	"runtime"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	var testCases = []struct {
		description string
		input       string
		expect      []*Process
	}{
		{
			description: "header and rows",
			input: `  PID %CPU %MEM COMMAND
    1  0.0  0.1 init
  420 12.5  3.2 my server
`,
			expect: []*Process{
				{Pid: 1, CPU: 0, Memory: 0.1, Command: "init"},
				{Pid: 420, CPU: 12.5, Memory: 3.2, Command: "my server"},
			},
		},
		{
			description: "noise",
			input:       "bash: warning\n\n",
		},
	}
	for _, testCase := range testCases {
		assert.Equal(t, testCase.expect, parse(testCase.input), testCase.description)
	}
}

func TestFormat(t *testing.T) {
	text := format([]*Process{{Pid: 7, Command: "sh", CPU: 1.25, Memory: 0.5}})
	assert.Equal(t, "PID\tCOMMAND\tCPU\tMEMORY\n7\tsh\t1.2%\t0.5%", text)
	assert.Equal(t, "PID\tCOMMAND\tCPU\tMEMORY", format(nil))
}

func TestService_Kill(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("signals")
	}
	cmd := exec.Command("sleep", "30")
	require.NoError(t, cmd.Start())
	done := make(chan error, 1)
	go func() { done <- cmd.Wait() }()

	service := New()
	output := &KillOutput{}
	require.NoError(t, service.Kill(context.Background(), &KillInput{Pid: cmd.Process.Pid}, output))
	assert.Contains(t, output.Text, "SIGTERM")
	select {
	case err := <-done:
		assert.Error(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("process was not terminated")
	}

	assert.Error(t, service.Kill(context.Background(), &KillInput{Pid: 1}, &KillOutput{}))
	assert.Error(t, service.Kill(context.Background(), &KillInput{Pid: cmd.Process.Pid, Signal: "bogus"}, &KillOutput{}))
}

func TestService_List(t *testing.T) {
	if _, err := exec.LookPath("ps"); err != nil {
		t.Skip("ps not available")
	}
	service := New()
	defer service.Close()
	output := &ListOutput{}
	require.NoError(t, service.List(context.Background(), &ListInput{}, output))
	assert.NotEmpty(t, output.Processes)
	assert.Contains(t, output.Text, "PID")
}
