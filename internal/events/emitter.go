package events

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/gregsantos/ip-derivative-agent/internal/domain"
	"github.com/gregsantos/ip-derivative-agent/internal/interfaces"
)

// Emitter fans events out to the structured log, the journal, and the
// queue publisher. The log sink is always on; journal and publisher are
// optional and skipped when nil. Sink failures are logged and swallowed: a
// confirmed operation is never rolled back because observation failed.
type Emitter struct {
	logger    *zap.Logger
	journal   interfaces.EventJournal
	publisher interfaces.EventPublisher
}

// NewEmitter creates an emitter. journal and publisher may be nil.
func NewEmitter(logger *zap.Logger, journal interfaces.EventJournal, publisher interfaces.EventPublisher) *Emitter {
	return &Emitter{
		logger:    logger,
		journal:   journal,
		publisher: publisher,
	}
}

// Emit builds the event record, logs it, and hands it to the configured
// sinks. The built event is returned for callers that surface it.
func (e *Emitter) Emit(ctx context.Context, eventType string, payload interface{}) domain.Event {
	event := domain.Event{
		ID:        uuid.New(),
		Type:      eventType,
		Timestamp: time.Now().UTC(),
		Payload:   payload,
	}

	e.logger.Info("agent event",
		zap.String("event_id", event.ID.String()),
		zap.String("event_type", event.Type),
		zap.Any("payload", event.Payload),
	)

	if e.journal != nil {
		if err := e.journal.Append(ctx, event); err != nil {
			e.logger.Error("failed to append event to journal",
				zap.String("event_id", event.ID.String()),
				zap.String("event_type", event.Type),
				zap.Error(err),
			)
		}
	}

	if e.publisher != nil {
		if err := e.publisher.Publish(ctx, event); err != nil {
			e.logger.Error("failed to publish event",
				zap.String("event_id", event.ID.String()),
				zap.String("event_type", event.Type),
				zap.Error(err),
			)
		}
	}

	return event
}

// MemoryJournal is the journal used when no database is configured. It keeps
// the most recent events in a bounded in-process buffer.
type MemoryJournal struct {
	mu       sync.RWMutex
	capacity int
	events   []domain.Event
}

// NewMemoryJournal creates a journal holding at most capacity events; zero or
// negative capacity falls back to 1024.
func NewMemoryJournal(capacity int) *MemoryJournal {
	if capacity <= 0 {
		capacity = 1024
	}
	return &MemoryJournal{capacity: capacity}
}

// Append records the event, evicting the oldest entry once full.
func (j *MemoryJournal) Append(_ context.Context, event domain.Event) error {
	j.mu.Lock()
	defer j.mu.Unlock()

	j.events = append(j.events, event)
	if len(j.events) > j.capacity {
		j.events = j.events[len(j.events)-j.capacity:]
	}
	return nil
}

// List returns events newest-first, optionally filtered by type.
func (j *MemoryJournal) List(_ context.Context, eventType string, limit, offset int) ([]domain.Event, error) {
	j.mu.RLock()
	defer j.mu.RUnlock()

	filtered := make([]domain.Event, 0, len(j.events))
	for i := len(j.events) - 1; i >= 0; i-- {
		if eventType != "" && j.events[i].Type != eventType {
			continue
		}
		filtered = append(filtered, j.events[i])
	}

	if offset >= len(filtered) {
		return []domain.Event{}, nil
	}
	end := len(filtered)
	if limit > 0 && offset+limit < end {
		end = offset + limit
	}
	return filtered[offset:end], nil
}
