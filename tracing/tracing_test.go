package tracing

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTracingFile(t *testing.T) {
	fname := filepath.Join(t.TempDir(), "span_test.txt")
	require.NoError(t, Init("commander", "0.0.1", fname))

	_, span := StartSpan(context.Background(), "terminal.execute")
	span.WithPid(101).WithAttributes(map[string]string{"command": "echo hello"})
	EndSpan(span, nil)

	_, failed := StartSpan(context.Background(), "terminal.forceTerminate")
	EndSpan(failed, errors.New("no such process"))

	data, err := os.ReadFile(fname)
	require.NoError(t, err)
	assert.Contains(t, string(data), "terminal.execute")
}

func TestNilSpan(t *testing.T) {
	var span *Span
	assert.NotPanics(t, func() {
		span.WithAttributes(map[string]string{"a": "b"})
		span.SetStatus(nil)
		EndSpan(span, nil)
	})
}
