package terminal

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestConfig_Init(t *testing.T) {
	var testCases = []struct {
		description string
		config      Config
		expectIdle  time.Duration
		expectGrace time.Duration
	}{
		{description: "zero values use defaults", config: Config{}, expectIdle: time.Hour, expectGrace: time.Second},
		{description: "negative idle disables sweeping", config: Config{IdleTimeoutMs: -1}, expectIdle: 0, expectGrace: time.Second},
		{description: "explicit values", config: Config{IdleTimeoutMs: 500, GraceMs: 200}, expectIdle: 500 * time.Millisecond, expectGrace: 200 * time.Millisecond},
	}
	for _, testCase := range testCases {
		config := testCase.config
		config.Init()
		assert.NoError(t, config.Validate(), testCase.description)
		assert.Equal(t, testCase.expectIdle, config.idleTimeout(), testCase.description)
		assert.Equal(t, testCase.expectGrace, config.grace(), testCase.description)
		assert.Equal(t, defaultHistoryCapacity, config.HistoryCapacity, testCase.description)
		assert.NotEmpty(t, config.Shell, testCase.description)
	}
}
