package session

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCompleted_Summary(t *testing.T) {
	start := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)
	zero := 0
	testCases := []struct {
		description string
		completed   *Completed
		expect      string
	}{
		{
			description: "exit code",
			completed:   &Completed{Pid: 10, Output: "hello\n", ExitCode: &zero, StartTime: start, EndTime: start.Add(1500 * time.Millisecond)},
			expect:      "Process completed with exit code 0\nRuntime: 1.5s\nFinal output:\nhello\n",
		},
		{
			description: "signal",
			completed:   &Completed{Pid: 11, Output: "", StartTime: start, EndTime: start.Add(2 * time.Second)},
			expect:      "Process completed with exit code null\nRuntime: 2s\nFinal output:\n",
		},
	}
	for _, testCase := range testCases {
		assert.Equal(t, testCase.expect, testCase.completed.Summary(), testCase.description)
	}
}
