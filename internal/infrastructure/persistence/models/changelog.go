package models

import (
	"time"

	"github.com/ginvoice/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// ChangeLogEntryModel is the persistence model for the append-only audit
// feed. Aggregate repositories insert rows in the same transaction as the
// aggregate change; rows are never updated or deleted.
type ChangeLogEntryModel struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey"`
	EventID       uuid.UUID `gorm:"type:uuid;not null;uniqueIndex"`
	EventType     string    `gorm:"type:varchar(255);not null"`
	AggregateID   uuid.UUID `gorm:"type:uuid;not null;index:idx_changelog_aggregate_created,priority:1"`
	AggregateType string    `gorm:"type:varchar(255);not null"`
	TableName_    string    `gorm:"column:table_name;type:varchar(100);not null"`
	Actor         string    `gorm:"type:varchar(100);not null"`
	Payload       []byte    `gorm:"type:jsonb;not null"`
	CreatedAt     time.Time `gorm:"not null;index;index:idx_changelog_aggregate_created,priority:2"`
}

// TableName returns the table name for GORM
func (ChangeLogEntryModel) TableName() string {
	return "change_log"
}

// ToDomain converts the persistence model to a domain ChangeLogEntry
func (m *ChangeLogEntryModel) ToDomain() *shared.ChangeLogEntry {
	return &shared.ChangeLogEntry{
		ID:            m.ID,
		EventID:       m.EventID,
		EventType:     m.EventType,
		AggregateID:   m.AggregateID,
		AggregateType: m.AggregateType,
		TableName:     m.TableName_,
		Actor:         m.Actor,
		Payload:       m.Payload,
		CreatedAt:     m.CreatedAt,
	}
}

// FromDomain populates the persistence model from a domain ChangeLogEntry
func (m *ChangeLogEntryModel) FromDomain(e *shared.ChangeLogEntry) {
	m.ID = e.ID
	m.EventID = e.EventID
	m.EventType = e.EventType
	m.AggregateID = e.AggregateID
	m.AggregateType = e.AggregateType
	m.TableName_ = e.TableName
	m.Actor = e.Actor
	m.Payload = e.Payload
	m.CreatedAt = e.CreatedAt
}

// ChangeLogEntryModelFromDomain creates a new persistence model from a domain ChangeLogEntry
func ChangeLogEntryModelFromDomain(e *shared.ChangeLogEntry) *ChangeLogEntryModel {
	m := &ChangeLogEntryModel{}
	m.FromDomain(e)
	return m
}
