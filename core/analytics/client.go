// ABOUTME: Analytics client fans product events out to pluggable sinks
// ABOUTME: Sink failures are logged and never reach the flow that produced the event

package analytics

import (
	"context"
	"errors"
	"sync"
	"time"

	"headlines-api/core/domain"
	"headlines-api/core/interfaces"
	"headlines-api/core/workers"
)

// Submitter schedules background work
type Submitter interface {
	Submit(name string, task workers.Task) error
}

// Client delivers events to every configured sink
type Client struct {
	mu         sync.RWMutex
	sinks      []interfaces.AnalyticsSink
	dispatcher Submitter
	logger     interfaces.Logger
	now        func() time.Time
}

// Option configures a Client
type Option func(*Client)

// WithDispatcher routes TrackAsync through a worker pool
func WithDispatcher(dispatcher Submitter) Option {
	return func(c *Client) {
		c.dispatcher = dispatcher
	}
}

// WithClock overrides the event timestamp source
func WithClock(now func() time.Time) Option {
	return func(c *Client) {
		c.now = now
	}
}

// NewClient creates an analytics client
func NewClient(logger interfaces.Logger, sinks []interfaces.AnalyticsSink, opts ...Option) *Client {
	if logger == nil {
		logger = interfaces.NopLogger{}
	}
	c := &Client{
		sinks:  append([]interfaces.AnalyticsSink(nil), sinks...),
		logger: logger,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SetSinks replaces the sinks used for subsequent events
func (c *Client) SetSinks(sinks []interfaces.AnalyticsSink) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sinks = append([]interfaces.AnalyticsSink(nil), sinks...)
}

// Track builds an event and waits until every sink has handled it
func (c *Client) Track(ctx context.Context, name domain.EventName, payload map[string]interface{}) {
	c.deliver(ctx, c.newEvent(name, payload))
}

// TrackAsync schedules delivery and returns immediately
func (c *Client) TrackAsync(name domain.EventName, payload map[string]interface{}) {
	event := c.newEvent(name, payload)

	if c.dispatcher != nil {
		err := c.dispatcher.Submit("analytics:"+string(name), func(ctx context.Context) error {
			c.deliver(ctx, event)
			return nil
		})
		if err == nil || errors.Is(err, workers.ErrQueueFull) {
			return
		}
		c.logger.Debug("Analytics dispatcher unavailable, delivering in background", map[string]interface{}{
			"event": string(name),
			"error": err.Error(),
		})
	}

	go c.deliver(context.Background(), event)
}

func (c *Client) newEvent(name domain.EventName, payload map[string]interface{}) domain.Event {
	if payload == nil {
		payload = map[string]interface{}{}
	}
	return domain.Event{
		Name:      name,
		Timestamp: c.now().UTC(),
		Payload:   payload,
	}
}

func (c *Client) deliver(ctx context.Context, event domain.Event) {
	c.mu.RLock()
	sinks := c.sinks
	c.mu.RUnlock()

	var wg sync.WaitGroup
	for _, sink := range sinks {
		wg.Add(1)
		go func(sink interfaces.AnalyticsSink) {
			defer wg.Done()
			defer func() {
				if r := recover(); r != nil {
					c.logger.Warn("Analytics sink panicked", map[string]interface{}{
						"event": string(event.Name),
					})
				}
			}()

			if err := sink.Track(ctx, event); err != nil {
				c.logger.Warn("Analytics sink failed", map[string]interface{}{
					"event": string(event.Name),
					"error": err.Error(),
				})
			}
		}(sink)
	}
	wg.Wait()
}
