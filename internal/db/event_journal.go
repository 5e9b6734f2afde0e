package db

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/gregsantos/ip-derivative-agent/internal/domain"
)

// EventJournal persists emitted agent events in Postgres for the audit listing.
type EventJournal struct {
	pool *pgxpool.Pool
}

// NewEventJournal creates a Postgres-backed event journal.
func NewEventJournal(pool *pgxpool.Pool) *EventJournal {
	return &EventJournal{pool: pool}
}

const insertEvent = `
INSERT INTO agent_events (id, event_type, payload, created_at)
VALUES ($1, $2, $3, $4)
`

const listEvents = `
SELECT id, event_type, payload, created_at
FROM agent_events
WHERE ($1::text = '' OR event_type = $1)
ORDER BY created_at DESC, id
LIMIT $2 OFFSET $3
`

// Append stores the event with its payload serialized as JSONB.
func (j *EventJournal) Append(ctx context.Context, event domain.Event) error {
	payload, err := json.Marshal(event.Payload)
	if err != nil {
		return fmt.Errorf("failed to marshal event payload: %w", err)
	}

	if _, err := j.pool.Exec(ctx, insertEvent, event.ID, event.Type, payload, event.Timestamp); err != nil {
		return fmt.Errorf("failed to insert event %s: %w", event.ID, err)
	}
	return nil
}

// List returns stored events newest first, optionally filtered by event type.
// A non-positive limit returns everything after the offset.
func (j *EventJournal) List(ctx context.Context, eventType string, limit, offset int) ([]domain.Event, error) {
	var queryLimit interface{}
	if limit > 0 {
		queryLimit = limit
	}
	if offset < 0 {
		offset = 0
	}

	rows, err := j.pool.Query(ctx, listEvents, eventType, queryLimit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}
	defer rows.Close()

	events := []domain.Event{}
	for rows.Next() {
		var (
			id      uuid.UUID
			payload []byte
			event   domain.Event
		)
		if err := rows.Scan(&id, &event.Type, &payload, &event.Timestamp); err != nil {
			return nil, fmt.Errorf("failed to scan event: %w", err)
		}
		event.ID = id
		event.Payload = json.RawMessage(payload)
		events = append(events, event)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate events: %w", err)
	}

	return events, nil
}
