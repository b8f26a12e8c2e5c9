package persistence

import (
	"context"

	"github.com/ginvoice/backend/internal/domain/shared"
	"github.com/ginvoice/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormChangeLogRepository reads the append-only audit feed. Writes happen
// inside the aggregate repositories so the entry and the aggregate change
// commit together; this repository never inserts.
type GormChangeLogRepository struct {
	db *gorm.DB
}

// NewGormChangeLogRepository creates a new GormChangeLogRepository
func NewGormChangeLogRepository(db *gorm.DB) *GormChangeLogRepository {
	return &GormChangeLogRepository{db: db}
}

// FindRecent returns the newest entries, newest first
func (r *GormChangeLogRepository) FindRecent(ctx context.Context, limit int) ([]shared.ChangeLogEntry, error) {
	if limit <= 0 {
		limit = 50
	}

	var rows []models.ChangeLogEntryModel
	if err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(limit).
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return toDomainChangeLogEntries(rows), nil
}

// FindByAggregate returns entries for one aggregate, newest first
func (r *GormChangeLogRepository) FindByAggregate(ctx context.Context, aggregateID uuid.UUID, limit int) ([]shared.ChangeLogEntry, error) {
	if limit <= 0 {
		limit = 50
	}

	var rows []models.ChangeLogEntryModel
	if err := r.db.WithContext(ctx).
		Where("aggregate_id = ?", aggregateID).
		Order("created_at DESC").
		Limit(limit).
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return toDomainChangeLogEntries(rows), nil
}

func toDomainChangeLogEntries(rows []models.ChangeLogEntryModel) []shared.ChangeLogEntry {
	entries := make([]shared.ChangeLogEntry, len(rows))
	for i := range rows {
		entries[i] = *rows[i].ToDomain()
	}
	return entries
}

// Ensure GormChangeLogRepository implements ChangeLogRepository
var _ shared.ChangeLogRepository = (*GormChangeLogRepository)(nil)
