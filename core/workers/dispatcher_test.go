package workers

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingLogger struct {
	mu       sync.Mutex
	messages []string
}

func (l *recordingLogger) record(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.messages = append(l.messages, msg)
}

func (l *recordingLogger) Messages() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]string(nil), l.messages...)
}

func (l *recordingLogger) Debug(msg string, fields map[string]interface{}) { l.record(msg) }
func (l *recordingLogger) Info(msg string, fields map[string]interface{})  { l.record(msg) }
func (l *recordingLogger) Warn(msg string, fields map[string]interface{})  { l.record(msg) }
func (l *recordingLogger) Error(msg string, fields map[string]interface{}) { l.record(msg) }

func TestNewDispatcher_AppliesDefaults(t *testing.T) {
	d := NewDispatcher(nil, Config{})

	assert.Equal(t, DefaultConfig().MaxWorkers, d.maxWorkers)
	assert.Equal(t, DefaultConfig().QueueSize, cap(d.jobQueue))
	assert.Equal(t, DefaultConfig().TaskTimeout, d.taskTimeout)
	assert.False(t, d.Running())
}

func TestSubmit_BeforeStart(t *testing.T) {
	d := NewDispatcher(nil, Config{})

	err := d.Submit("noop", func(ctx context.Context) error { return nil })
	assert.ErrorIs(t, err, ErrWorkerNotRunning)
}

func TestDispatcher_RunsSubmittedTasks(t *testing.T) {
	d := NewDispatcher(nil, Config{MaxWorkers: 3, QueueSize: 50})
	require.NoError(t, d.Start())

	var count int32
	for i := 0; i < 30; i++ {
		require.NoError(t, d.Submit("count", func(ctx context.Context) error {
			atomic.AddInt32(&count, 1)
			return nil
		}))
	}

	require.NoError(t, d.Stop())
	assert.Equal(t, int32(30), atomic.LoadInt32(&count), "stop drains queued tasks")
}

func TestSubmit_DropsWhenQueueFull(t *testing.T) {
	logger := &recordingLogger{}
	d := NewDispatcher(logger, Config{MaxWorkers: 1, QueueSize: 1})
	require.NoError(t, d.Start())

	release := make(chan struct{})
	started := make(chan struct{})
	require.NoError(t, d.Submit("block", func(ctx context.Context) error {
		close(started)
		<-release
		return nil
	}))
	<-started

	require.NoError(t, d.Submit("queued", func(ctx context.Context) error { return nil }))

	begin := time.Now()
	err := d.Submit("overflow", func(ctx context.Context) error { return nil })
	assert.ErrorIs(t, err, ErrQueueFull)
	assert.Less(t, time.Since(begin), 100*time.Millisecond, "submit never blocks")
	assert.Contains(t, logger.Messages(), "Dropping background task, queue full")

	close(release)
	require.NoError(t, d.Stop())
}

func TestDispatcher_RecoversPanicsAndLogsFailures(t *testing.T) {
	logger := &recordingLogger{}
	d := NewDispatcher(logger, Config{MaxWorkers: 1, QueueSize: 10})
	require.NoError(t, d.Start())

	var ran int32
	require.NoError(t, d.Submit("panics", func(ctx context.Context) error { panic("boom") }))
	require.NoError(t, d.Submit("fails", func(ctx context.Context) error { return errors.New("sink down") }))
	require.NoError(t, d.Submit("after", func(ctx context.Context) error {
		atomic.AddInt32(&ran, 1)
		return nil
	}))

	require.NoError(t, d.Stop())

	assert.Equal(t, int32(1), atomic.LoadInt32(&ran), "worker survives a panicking task")
	assert.Contains(t, logger.Messages(), "Background task panicked")
	assert.Contains(t, logger.Messages(), "Background task failed")
}

func TestDispatcher_TaskContextHasDeadline(t *testing.T) {
	d := NewDispatcher(nil, Config{MaxWorkers: 1, TaskTimeout: time.Second})
	require.NoError(t, d.Start())

	var hasDeadline atomic.Bool
	require.NoError(t, d.Submit("deadline", func(ctx context.Context) error {
		_, ok := ctx.Deadline()
		hasDeadline.Store(ok)
		return nil
	}))
	require.NoError(t, d.Stop())

	assert.True(t, hasDeadline.Load())
}

func TestDispatcher_StartStopIdempotent(t *testing.T) {
	d := NewDispatcher(nil, Config{})

	require.NoError(t, d.Stop())
	require.NoError(t, d.Start())
	require.NoError(t, d.Start())
	assert.True(t, d.Running())
	require.NoError(t, d.Stop())
	require.NoError(t, d.Stop())
	assert.False(t, d.Running())

	require.NoError(t, d.Start(), "a stopped dispatcher can be restarted")
	assert.NoError(t, d.Submit("noop", func(ctx context.Context) error { return nil }))
	require.NoError(t, d.Stop())
}
