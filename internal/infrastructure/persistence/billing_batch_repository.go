package persistence

import (
	"context"
	"errors"

	"github.com/ginvoice/backend/internal/domain/billing"
	"github.com/ginvoice/backend/internal/domain/shared"
	"github.com/ginvoice/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// preIssuanceBatchStatuses are the batch statuses during which membership
// still binds an item: once a batch is issued its members are settled and an
// item discarded or transferred earlier is free again.
var preIssuanceBatchStatuses = []billing.BatchStatus{
	billing.BatchStatusPendingPartnerApproval,
	billing.BatchStatusReadyForSap,
	billing.BatchStatusInvoiceDraft,
}

// GormBillingBatchRepository implements BillingBatchRepository using GORM
type GormBillingBatchRepository struct {
	db *gorm.DB
}

// NewGormBillingBatchRepository creates a new GormBillingBatchRepository
func NewGormBillingBatchRepository(db *gorm.DB) *GormBillingBatchRepository {
	return &GormBillingBatchRepository{db: db}
}

// FindByID finds a batch by its ID, members included
func (r *GormBillingBatchRepository) FindByID(ctx context.Context, id uuid.UUID) (*billing.BillingBatch, error) {
	var model models.BillingBatchModel
	if err := r.db.WithContext(ctx).
		Preload("Items").
		First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll finds all batches matching the filter, members included
func (r *GormBillingBatchRepository) FindAll(ctx context.Context, filter shared.Filter) ([]billing.BillingBatch, error) {
	var rows []models.BillingBatchModel
	query := r.applyFilter(r.db.WithContext(ctx).Model(&models.BillingBatchModel{}).Preload("Items"), filter)

	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	return toDomainBatches(rows), nil
}

// FindByJob finds batches for a job, newest first
func (r *GormBillingBatchRepository) FindByJob(ctx context.Context, jobID uuid.UUID) ([]billing.BillingBatch, error) {
	var rows []models.BillingBatchModel
	if err := r.db.WithContext(ctx).
		Preload("Items").
		Where("job_id = ?", jobID).
		Order("created_at DESC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return toDomainBatches(rows), nil
}

// FindByStatuses finds batches in any of the given statuses, newest first
func (r *GormBillingBatchRepository) FindByStatuses(ctx context.Context, statuses ...billing.BatchStatus) ([]billing.BillingBatch, error) {
	if len(statuses) == 0 {
		return []billing.BillingBatch{}, nil
	}

	var rows []models.BillingBatchModel
	if err := r.db.WithContext(ctx).
		Preload("Items").
		Where("status IN ?", statuses).
		Order("created_at DESC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return toDomainBatches(rows), nil
}

// HasActiveMembership reports whether the item is an undecided or emit
// member of another, not-yet-issued batch. Transfer and discard members are
// free to join a new batch.
func (r *GormBillingBatchRepository) HasActiveMembership(ctx context.Context, intakeItemID, excludeBatchID uuid.UUID) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.BillingBatchItemModel{}).
		Joins("JOIN billing_batches ON billing_batches.id = billing_batch_items.batch_id").
		Where("billing_batch_items.intake_item_id = ?", intakeItemID).
		Where("billing_batch_items.batch_id <> ?", excludeBatchID).
		Where("billing_batch_items.decision IS NULL OR billing_batch_items.decision = ?", billing.DecisionEmit).
		Where("billing_batches.status IN ?", preIssuanceBatchStatuses).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Save creates or updates a batch together with its members
func (r *GormBillingBatchRepository) Save(ctx context.Context, batch *billing.BillingBatch) error {
	model := models.BillingBatchModelFromDomain(batch)
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Session(&gorm.Session{FullSaveAssociations: true}).Save(model).Error; err != nil {
			return err
		}
		return appendChangeLog(ctx, tx, batch, model.TableName())
	})
}

// SaveWithLock saves the batch, its members and its recomputed totals
// atomically, version-checked
func (r *GormBillingBatchRepository) SaveWithLock(ctx context.Context, batch *billing.BillingBatch) error {
	model := models.BillingBatchModelFromDomain(batch)
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := saveBatchWithLockTx(ctx, tx, batch); err != nil {
			return err
		}

		if len(model.Items) > 0 {
			if err := tx.Save(&model.Items).Error; err != nil {
				return err
			}
		}

		return nil
	})
}

// saveBatchWithLockTx applies the version-checked update of the batch row
// and writes its change-log entries. Shared with the invoice repository's
// CreateFromBatch.
func saveBatchWithLockTx(ctx context.Context, tx *gorm.DB, batch *billing.BillingBatch) error {
	result := tx.Model(&models.BillingBatchModel{}).
		Where("id = ? AND version = ?", batch.ID, batch.Version).
		Updates(map[string]interface{}{
			"status":            batch.Status,
			"total_amount":      batch.TotalAmount,
			"total_fees":        batch.TotalFees,
			"client_invoice_id": batch.ClientInvoiceID,
			"version":           batch.Version + 1,
			"updated_at":        batch.UpdatedAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.NewDomainError("OPTIMISTIC_LOCK_FAILED", "Billing batch was modified by another transaction")
	}
	batch.IncrementVersion()
	return appendChangeLog(ctx, tx, batch, models.BillingBatchModel{}.TableName())
}

// applyFilter applies filter options to the query
func (r *GormBillingBatchRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	for key, value := range filter.Filters {
		switch key {
		case "status":
			query = query.Where("status = ?", value)
		case "job_id":
			query = query.Where("job_id = ?", value)
		}
	}

	orderBy := ValidateSortField(filter.OrderBy, BillingBatchSortFields, "created_at")
	return query.Order(orderBy + " " + ValidateSortOrder(filter.OrderDir))
}

func toDomainBatches(rows []models.BillingBatchModel) []billing.BillingBatch {
	batches := make([]billing.BillingBatch, len(rows))
	for i := range rows {
		batches[i] = *rows[i].ToDomain()
	}
	return batches
}

// Ensure GormBillingBatchRepository implements BillingBatchRepository
var _ billing.BillingBatchRepository = (*GormBillingBatchRepository)(nil)
