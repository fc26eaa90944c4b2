package logger

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLogger_Levels(t *testing.T) {
	testCases := []struct {
		description string
		level       string
		log         func(l Logger)
		expect      []string
		notExpect   []string
	}{
		{
			description: "debug suppressed at info",
			level:       "info",
			log: func(l Logger) {
				l.Debug("hidden", "pid", 1)
				l.Info("visible", "pid", 2)
			},
			expect:    []string{"visible", "pid=2", "source=commander"},
			notExpect: []string{"hidden"},
		},
		{
			description: "error carries cause",
			level:       "error",
			log: func(l Logger) {
				l.Info("hidden")
				l.Error("persist failed", errors.New("disk full"), "url", "mem://localhost/a.json")
			},
			expect:    []string{"persist failed", "disk full"},
			notExpect: []string{"hidden"},
		},
		{
			description: "debug enabled",
			level:       "debug",
			log: func(l Logger) {
				l.Debug("no output found", "pid", 7)
			},
			expect: []string{"no output found", "pid=7"},
		},
	}
	for _, testCase := range testCases {
		buffer := &bytes.Buffer{}
		testCase.log(NewWithWriter(buffer, testCase.level, "text"))
		for _, fragment := range testCase.expect {
			assert.Contains(t, buffer.String(), fragment, testCase.description)
		}
		for _, fragment := range testCase.notExpect {
			assert.NotContains(t, buffer.String(), fragment, testCase.description)
		}
	}
}

func TestNop(t *testing.T) {
	l := Nop()
	assert.NotPanics(t, func() {
		l.Error("x", errors.New("y"))
		l.Info("x")
		l.Debug("x")
	})
}
