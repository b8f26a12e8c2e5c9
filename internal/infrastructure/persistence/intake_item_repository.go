package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/ginvoice/backend/internal/domain/billing"
	"github.com/ginvoice/backend/internal/domain/compliance"
	"github.com/ginvoice/backend/internal/domain/shared"
	"github.com/ginvoice/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// activeIntakeStatuses are the statuses of items still moving through the
// pipeline: not rejected, not billed, not archived. Used by the snapshot
// count queries that feed the clearance guard.
var activeIntakeStatuses = []billing.IntakeStatus{
	billing.IntakeStatusDraft,
	billing.IntakeStatusSubmitted,
	billing.IntakeStatusNeedsInfo,
	billing.IntakeStatusPendingApproval,
	billing.IntakeStatusApproved,
	billing.IntakeStatusSentToAccounting,
	billing.IntakeStatusPosted,
	billing.IntakeStatusReadyToBill,
}

// GormIntakeItemRepository implements IntakeItemRepository using GORM
type GormIntakeItemRepository struct {
	db *gorm.DB
}

// NewGormIntakeItemRepository creates a new GormIntakeItemRepository
func NewGormIntakeItemRepository(db *gorm.DB) *GormIntakeItemRepository {
	return &GormIntakeItemRepository{db: db}
}

// FindByID finds an intake item by its ID
func (r *GormIntakeItemRepository) FindByID(ctx context.Context, id uuid.UUID) (*billing.IntakeItem, error) {
	var model models.IntakeItemModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByInvoiceNumber finds an intake item by its invoice number
func (r *GormIntakeItemRepository) FindByInvoiceNumber(ctx context.Context, invoiceNumber string) (*billing.IntakeItem, error) {
	var model models.IntakeItemModel
	if err := r.db.WithContext(ctx).First(&model, "invoice_number = ?", invoiceNumber).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll finds all intake items matching the filter
func (r *GormIntakeItemRepository) FindAll(ctx context.Context, filter shared.Filter) ([]billing.IntakeItem, error) {
	var rows []models.IntakeItemModel
	query := r.applyFilter(r.db.WithContext(ctx).Model(&models.IntakeItemModel{}), filter)

	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	return toDomainIntakeItems(rows), nil
}

// FindByStatuses finds items in any of the given statuses, newest first
func (r *GormIntakeItemRepository) FindByStatuses(ctx context.Context, statuses ...billing.IntakeStatus) ([]billing.IntakeItem, error) {
	if len(statuses) == 0 {
		return []billing.IntakeItem{}, nil
	}

	var rows []models.IntakeItemModel
	if err := r.db.WithContext(ctx).
		Where("status IN ?", statuses).
		Order("created_at DESC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return toDomainIntakeItems(rows), nil
}

// FindByJob finds items for a job
func (r *GormIntakeItemRepository) FindByJob(ctx context.Context, jobID uuid.UUID, filter shared.Filter) ([]billing.IntakeItem, error) {
	var rows []models.IntakeItemModel
	query := r.applyFilter(r.db.WithContext(ctx).Model(&models.IntakeItemModel{}).Where("job_id = ?", jobID), filter)

	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	return toDomainIntakeItems(rows), nil
}

// Save creates or updates an intake item
func (r *GormIntakeItemRepository) Save(ctx context.Context, item *billing.IntakeItem) error {
	model := models.IntakeItemModelFromDomain(item)
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(model).Error; err != nil {
			return err
		}
		return appendChangeLog(ctx, tx, item, model.TableName())
	})
}

// SaveWithLock saves with optimistic locking. The snapshot columns are not
// in the update set: they are frozen at creation for the record's lifetime.
func (r *GormIntakeItemRepository) SaveWithLock(ctx context.Context, item *billing.IntakeItem) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return r.saveWithLockTx(ctx, tx, item)
	})
}

// SaveWithPosting persists the status advance to posted and the new posting
// record in one transaction. The unique index on intake_item_id backs up the
// pre-check against a concurrent double post.
func (r *GormIntakeItemRepository) SaveWithPosting(ctx context.Context, item *billing.IntakeItem, posting *billing.AccountingPosting) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.AccountingPostingModel{}).
			Where("intake_item_id = ?", item.ID).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return shared.NewDomainError("ALREADY_EXISTS", "A posting already exists for this item")
		}

		if err := r.saveWithLockTx(ctx, tx, item); err != nil {
			return err
		}

		postingModel := &models.AccountingPostingModel{}
		postingModel.FromDomain(posting)
		return tx.Create(postingModel).Error
	})
}

// FindPosting finds the posting for an intake item, if any
func (r *GormIntakeItemRepository) FindPosting(ctx context.Context, intakeItemID uuid.UUID) (*billing.AccountingPosting, error) {
	var model models.AccountingPostingModel
	if err := r.db.WithContext(ctx).First(&model, "intake_item_id = ?", intakeItemID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// CountByStatuses counts items in any of the given statuses
func (r *GormIntakeItemRepository) CountByStatuses(ctx context.Context, statuses ...billing.IntakeStatus) (int64, error) {
	if len(statuses) == 0 {
		return 0, nil
	}

	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.IntakeItemModel{}).
		Where("status IN ?", statuses).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// CountActiveByClearanceSnapshot counts non-terminal, not-yet-billed items
// whose frozen UTTAI snapshot matches
func (r *GormIntakeItemRepository) CountActiveByClearanceSnapshot(ctx context.Context, clearance compliance.ClearanceStatus) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.IntakeItemModel{}).
		Where("uttai_status_snapshot = ? AND status IN ?", clearance, activeIntakeStatuses).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// CountActiveByVendorSnapshot counts non-terminal, not-yet-billed items
// whose frozen vendor compliance snapshot is one of the given statuses
func (r *GormIntakeItemRepository) CountActiveByVendorSnapshot(ctx context.Context, statuses ...compliance.VendorComplianceStatus) (int64, error) {
	if len(statuses) == 0 {
		return 0, nil
	}

	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.IntakeItemModel{}).
		Where("vendor_compliance_snapshot IN ? AND status IN ?", statuses, activeIntakeStatuses).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// CountSuccessors counts prior items whose invoice number is the original or
// one of its -Rn successors, to pick the next suffix
func (r *GormIntakeItemRepository) CountSuccessors(ctx context.Context, invoiceNumber string) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.IntakeItemModel{}).
		Where("invoice_number = ? OR invoice_number LIKE ?", invoiceNumber, invoiceNumber+"-R%").
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// ExistsByInvoiceNumber checks if an invoice number is already taken
func (r *GormIntakeItemRepository) ExistsByInvoiceNumber(ctx context.Context, invoiceNumber string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.IntakeItemModel{}).
		Where("invoice_number = ?", invoiceNumber).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *GormIntakeItemRepository) saveWithLockTx(ctx context.Context, tx *gorm.DB, item *billing.IntakeItem) error {
	result := tx.Model(&models.IntakeItemModel{}).
		Where("id = ? AND version = ?", item.ID, item.Version).
		Updates(map[string]interface{}{
			"status":            item.Status,
			"doc_ref":           item.DocRef,
			"submitted_at":      item.SubmittedAt,
			"approved_at":       item.ApprovedAt,
			"approved_by":       item.ApprovedBy,
			"rejected_at":       item.RejectedAt,
			"rejection_reason":  item.RejectionReason,
			"needs_info_note":   item.NeedsInfoNote,
			"billed_at":         item.BilledAt,
			"client_invoice_id": item.ClientInvoiceID,
			"version":           item.Version + 1,
			"updated_at":        item.UpdatedAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.NewDomainError("OPTIMISTIC_LOCK_FAILED", "Intake item was modified by another transaction")
	}
	item.IncrementVersion()
	return appendChangeLog(ctx, tx, item, models.IntakeItemModel{}.TableName())
}

// applyFilter applies filter options to the query
func (r *GormIntakeItemRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	orderBy := ValidateSortField(filter.OrderBy, IntakeItemSortFields, "created_at")
	query = query.Order(orderBy + " " + ValidateSortOrder(filter.OrderDir))

	return query
}

// applyFilterWithoutPagination applies filter options without pagination
func (r *GormIntakeItemRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		searchPattern := "%" + strings.TrimSpace(filter.Search) + "%"
		query = query.Where("invoice_number LIKE ? OR concept LIKE ?", searchPattern, searchPattern)
	}

	for key, value := range filter.Filters {
		switch key {
		case "status":
			query = query.Where("status = ?", value)
		case "type":
			query = query.Where("type = ?", value)
		case "job_id":
			query = query.Where("job_id = ?", value)
		case "vendor_id":
			query = query.Where("vendor_id = ?", value)
		}
	}

	return query
}

func toDomainIntakeItems(rows []models.IntakeItemModel) []billing.IntakeItem {
	items := make([]billing.IntakeItem, len(rows))
	for i := range rows {
		items[i] = *rows[i].ToDomain()
	}
	return items
}

// Ensure GormIntakeItemRepository implements IntakeItemRepository
var _ billing.IntakeItemRepository = (*GormIntakeItemRepository)(nil)
