package shared

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// ChangeLogEntry is one row of the append-only audit feed. Every aggregate
// save writes its pending domain events here in the same transaction, so the
// feed is an ordered record of what happened to the pipeline tables.
// Entries are never updated or deleted.
type ChangeLogEntry struct {
	ID            uuid.UUID
	EventID       uuid.UUID
	EventType     string
	AggregateID   uuid.UUID
	AggregateType string
	TableName     string
	Actor         string
	Payload       []byte
	CreatedAt     time.Time
}

// NewChangeLogEntry creates a change-log entry from a domain event
func NewChangeLogEntry(event DomainEvent, tableName, actor string) (*ChangeLogEntry, error) {
	payload, err := json.Marshal(event)
	if err != nil {
		return nil, err
	}
	return &ChangeLogEntry{
		ID:            uuid.New(),
		EventID:       event.EventID(),
		EventType:     event.EventType(),
		AggregateID:   event.AggregateID(),
		AggregateType: event.AggregateType(),
		TableName:     tableName,
		Actor:         actor,
		Payload:       payload,
		CreatedAt:     event.OccurredAt(),
	}, nil
}

// ChangeLogRepository reads the audit feed. Writes happen inside the
// aggregate repositories so the entry and the aggregate change commit
// together.
type ChangeLogRepository interface {
	// FindRecent returns the newest entries, newest first
	FindRecent(ctx context.Context, limit int) ([]ChangeLogEntry, error)

	// FindByAggregate returns entries for one aggregate, newest first
	FindByAggregate(ctx context.Context, aggregateID uuid.UUID, limit int) ([]ChangeLogEntry, error)
}
