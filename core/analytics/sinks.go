package analytics

import (
	"context"
	"encoding/json"
	"errors"
	"sync"

	"headlines-api/core/domain"
	"headlines-api/core/interfaces"
)

const (
	// BufferKey is the cache key holding buffered events
	BufferKey = "analytics.v1"

	// MaxBufferedEvents is how many of the most recent events BufferSink keeps
	MaxBufferedEvents = 200
)

// LogSink writes each event to the structured logger
type LogSink struct {
	logger interfaces.Logger
}

// NewLogSink creates a sink backed by logger
func NewLogSink(logger interfaces.Logger) *LogSink {
	if logger == nil {
		logger = interfaces.NopLogger{}
	}
	return &LogSink{logger: logger}
}

// Track logs the event
func (s *LogSink) Track(ctx context.Context, event domain.Event) error {
	fields := make(map[string]interface{}, len(event.Payload)+2)
	for k, v := range event.Payload {
		fields[k] = v
	}
	fields["event"] = string(event.Name)
	fields["timestamp"] = event.Timestamp

	s.logger.Info("[analytics] "+string(event.Name), fields)
	return nil
}

// BufferSink keeps the most recent events in the cache
type BufferSink struct {
	cache interfaces.Cache
	max   int
	mu    sync.Mutex
}

// NewBufferSink creates a buffer sink over cache
func NewBufferSink(cache interfaces.Cache) *BufferSink {
	return &BufferSink{cache: cache, max: MaxBufferedEvents}
}

// Track appends the event, trimming the buffer to the newest entries
func (s *BufferSink) Track(ctx context.Context, event domain.Event) error {
	if s.cache == nil {
		return errors.New("analytics buffer not configured")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	events, err := s.Events(ctx)
	if err != nil {
		return err
	}
	events = append(events, event)
	if len(events) > s.max {
		events = events[len(events)-s.max:]
	}

	data, err := json.Marshal(events)
	if err != nil {
		return err
	}
	return s.cache.Set(ctx, BufferKey, data, 0)
}

// Events returns the buffered events, oldest first. Unreadable buffers are empty.
func (s *BufferSink) Events(ctx context.Context) ([]domain.Event, error) {
	if s.cache == nil {
		return nil, errors.New("analytics buffer not configured")
	}

	data, err := s.cache.Get(ctx, BufferKey)
	if err != nil {
		if errors.Is(err, interfaces.ErrCacheMiss) {
			return []domain.Event{}, nil
		}
		return nil, err
	}

	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return []domain.Event{}, nil
	}

	events := make([]domain.Event, 0, len(raw))
	for _, item := range raw {
		var event domain.Event
		if err := json.Unmarshal(item, &event); err != nil || event.Name == "" {
			continue
		}
		events = append(events, event)
	}
	return events, nil
}
