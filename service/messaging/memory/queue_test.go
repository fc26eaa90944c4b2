package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/commander/service/messaging"
)

type testPayload struct {
	Pid  int
	Kind string
}

func TestQueue_PublishConsume(t *testing.T) {
	ctx := context.Background()
	queue := NewQueue[testPayload](DefaultConfig())

	require.NoError(t, queue.Publish(ctx, &testPayload{Pid: 1, Kind: "started"}))
	require.NoError(t, queue.Publish(ctx, &testPayload{Pid: 1, Kind: "exited"}))
	assert.Equal(t, 2, queue.Size())

	first, err := queue.Consume(ctx)
	require.NoError(t, err)
	assert.Equal(t, "started", first.T().Kind)
	assert.NoError(t, first.Ack())
	assert.Error(t, first.Ack())

	second, err := queue.Consume(ctx)
	require.NoError(t, err)
	assert.Equal(t, "exited", second.T().Kind)
	assert.Equal(t, 0, queue.Size())

	assert.Error(t, queue.Publish(ctx, nil))
}

func TestQueue_DropWhenFull(t *testing.T) {
	ctx := context.Background()
	queue := NewQueue[testPayload](Config{QueueBuffer: 1, DropWhenFull: true})
	require.NoError(t, queue.Publish(ctx, &testPayload{Pid: 1}))
	err := queue.Publish(ctx, &testPayload{Pid: 2})
	assert.ErrorIs(t, err, messaging.ErrQueueFull)
}

func TestQueue_BlockingPublishHonoursContext(t *testing.T) {
	queue := NewQueue[testPayload](Config{QueueBuffer: 1})
	require.NoError(t, queue.Publish(context.Background(), &testPayload{Pid: 1}))

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	err := queue.Publish(ctx, &testPayload{Pid: 2})
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestQueue_Nack(t *testing.T) {
	ctx := context.Background()
	queue := NewQueue[testPayload](Config{QueueBuffer: 4, DropWhenFull: true, MaxRetries: 1})
	require.NoError(t, queue.Publish(ctx, &testPayload{Pid: 3}))

	msg, err := queue.Consume(ctx)
	require.NoError(t, err)
	require.NoError(t, msg.Nack(errors.New("handler failed")))
	assert.Equal(t, 1, queue.Size())

	retried, err := queue.Consume(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, retried.T().Pid)
	require.NoError(t, retried.Nack(errors.New("handler failed")))
	assert.Equal(t, 0, queue.Size())
}

func TestQueue_ConsumeCancelled(t *testing.T) {
	queue := NewQueue[testPayload](DefaultConfig())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := queue.Consume(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
