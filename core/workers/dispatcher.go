// ABOUTME: Dispatcher runs fire-and-forget background tasks on a bounded worker pool
// ABOUTME: Used for analytics delivery so request handlers never wait on sinks

package workers

import (
	"context"
	"fmt"
	"sync"
	"time"

	"headlines-api/core/interfaces"
)

// Task is a unit of background work. The context is cancelled when the pool stops.
type Task func(ctx context.Context) error

// job pairs a task with a label for logging
type job struct {
	name string
	task Task
}

// Dispatcher manages a fixed set of workers draining a bounded queue
type Dispatcher struct {
	logger      interfaces.Logger
	jobQueue    chan job
	maxWorkers  int
	taskTimeout time.Duration
	wg          sync.WaitGroup
	ctx         context.Context
	cancel      context.CancelFunc
	mu          sync.RWMutex
	running     bool
}

// Config holds configuration for the dispatcher
type Config struct {
	MaxWorkers  int
	QueueSize   int
	TaskTimeout time.Duration
}

// DefaultConfig returns the default dispatcher configuration
func DefaultConfig() Config {
	return Config{
		MaxWorkers:  4,
		QueueSize:   256,
		TaskTimeout: 10 * time.Second,
	}
}

// NewDispatcher creates a new dispatcher. Call Start before submitting tasks.
func NewDispatcher(logger interfaces.Logger, config Config) *Dispatcher {
	defaults := DefaultConfig()
	if config.MaxWorkers <= 0 {
		config.MaxWorkers = defaults.MaxWorkers
	}
	if config.QueueSize <= 0 {
		config.QueueSize = defaults.QueueSize
	}
	if config.TaskTimeout <= 0 {
		config.TaskTimeout = defaults.TaskTimeout
	}
	if logger == nil {
		logger = interfaces.NopLogger{}
	}

	return &Dispatcher{
		logger:      logger,
		jobQueue:    make(chan job, config.QueueSize),
		maxWorkers:  config.MaxWorkers,
		taskTimeout: config.TaskTimeout,
	}
}

// Start starts the worker pool
func (d *Dispatcher) Start() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.running {
		return nil
	}

	d.ctx, d.cancel = context.WithCancel(context.Background())
	if d.jobQueue == nil {
		d.jobQueue = make(chan job, DefaultConfig().QueueSize)
	}

	for i := 0; i < d.maxWorkers; i++ {
		d.wg.Add(1)
		go d.run(i, d.jobQueue)
	}

	d.running = true
	return nil
}

// Stop drains queued tasks and waits for the workers to exit
func (d *Dispatcher) Stop() error {
	d.mu.Lock()
	if !d.running {
		d.mu.Unlock()
		return nil
	}
	d.running = false
	close(d.jobQueue)
	d.jobQueue = nil
	d.mu.Unlock()

	d.wg.Wait()
	d.cancel()
	return nil
}

// Submit queues a task without blocking. A full queue drops the task.
func (d *Dispatcher) Submit(name string, task Task) error {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if !d.running {
		return ErrWorkerNotRunning
	}

	select {
	case d.jobQueue <- job{name: name, task: task}:
		return nil
	default:
		d.logger.Warn("Dropping background task, queue full", map[string]interface{}{
			"task": name,
		})
		return ErrQueueFull
	}
}

// Running reports whether the pool accepts tasks
func (d *Dispatcher) Running() bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.running
}

// run is the main loop for each worker
func (d *Dispatcher) run(id int, queue <-chan job) {
	defer d.wg.Done()

	for j := range queue {
		d.process(id, j)
	}
}

// process executes one task, recovering panics so a worker never dies
func (d *Dispatcher) process(id int, j job) {
	ctx, cancel := context.WithTimeout(d.ctx, d.taskTimeout)
	defer cancel()

	defer func() {
		if r := recover(); r != nil {
			d.logger.Error("Background task panicked", map[string]interface{}{
				"task":   j.name,
				"worker": id,
				"panic":  fmt.Sprint(r),
			})
		}
	}()

	if err := j.task(ctx); err != nil {
		d.logger.Warn("Background task failed", map[string]interface{}{
			"task":   j.name,
			"worker": id,
			"error":  err.Error(),
		})
	}
}

// Error definitions
var (
	ErrWorkerNotRunning = &WorkerError{Message: "worker pool is not running"}
	ErrQueueFull        = &WorkerError{Message: "job queue is full"}
)

// WorkerError represents a worker-specific error
type WorkerError struct {
	Message string
}

func (e *WorkerError) Error() string {
	return e.Message
}
