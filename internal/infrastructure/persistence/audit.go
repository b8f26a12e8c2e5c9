package persistence

import (
	"context"

	"github.com/ginvoice/backend/internal/domain/shared"
	"github.com/ginvoice/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// appendChangeLog writes the aggregate's pending domain events to the
// change log inside the given transaction and clears them. Committing the
// entries together with the aggregate change keeps the audit feed an exact
// record of what happened to the pipeline tables.
func appendChangeLog(ctx context.Context, tx *gorm.DB, agg shared.AggregateRoot, tableName string) error {
	events := agg.GetDomainEvents()
	if len(events) == 0 {
		return nil
	}

	actor := shared.ActorFromContext(ctx)
	rows := make([]models.ChangeLogEntryModel, 0, len(events))
	for _, event := range events {
		entry, err := shared.NewChangeLogEntry(event, tableName, actor)
		if err != nil {
			return err
		}
		rows = append(rows, *models.ChangeLogEntryModelFromDomain(entry))
	}

	if err := tx.Create(&rows).Error; err != nil {
		return err
	}

	agg.ClearDomainEvents()
	return nil
}
