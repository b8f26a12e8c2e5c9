package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/ginvoice/backend/internal/domain/billing"
	"github.com/ginvoice/backend/internal/domain/invoicing"
	"github.com/ginvoice/backend/internal/domain/shared"
	"github.com/ginvoice/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormClientInvoiceRepository implements ClientInvoiceRepository using GORM
type GormClientInvoiceRepository struct {
	db *gorm.DB
}

// NewGormClientInvoiceRepository creates a new GormClientInvoiceRepository
func NewGormClientInvoiceRepository(db *gorm.DB) *GormClientInvoiceRepository {
	return &GormClientInvoiceRepository{db: db}
}

// FindByID finds an invoice by its ID
func (r *GormClientInvoiceRepository) FindByID(ctx context.Context, id uuid.UUID) (*invoicing.ClientInvoice, error) {
	var model models.ClientInvoiceModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByExternalNumber finds an invoice by its external number
func (r *GormClientInvoiceRepository) FindByExternalNumber(ctx context.Context, externalInvoiceNumber string) (*invoicing.ClientInvoice, error) {
	var model models.ClientInvoiceModel
	if err := r.db.WithContext(ctx).First(&model, "external_invoice_number = ?", externalInvoiceNumber).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll finds all invoices matching the filter
func (r *GormClientInvoiceRepository) FindAll(ctx context.Context, filter shared.Filter) ([]invoicing.ClientInvoice, error) {
	var rows []models.ClientInvoiceModel
	query := r.applyFilter(r.db.WithContext(ctx).Model(&models.ClientInvoiceModel{}), filter)

	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	return toDomainInvoices(rows), nil
}

// FindByStatuses finds invoices in any of the given statuses, newest first
func (r *GormClientInvoiceRepository) FindByStatuses(ctx context.Context, statuses ...invoicing.InvoiceStatus) ([]invoicing.ClientInvoice, error) {
	if len(statuses) == 0 {
		return []invoicing.ClientInvoice{}, nil
	}

	var rows []models.ClientInvoiceModel
	if err := r.db.WithContext(ctx).
		Where("status IN ?", statuses).
		Order("created_at DESC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return toDomainInvoices(rows), nil
}

// FindMissingDocument finds invoices in the given statuses that have no
// attached document reference
func (r *GormClientInvoiceRepository) FindMissingDocument(ctx context.Context, statuses ...invoicing.InvoiceStatus) ([]invoicing.ClientInvoice, error) {
	if len(statuses) == 0 {
		return []invoicing.ClientInvoice{}, nil
	}

	var rows []models.ClientInvoiceModel
	if err := r.db.WithContext(ctx).
		Where("status IN ? AND (doc_ref IS NULL OR doc_ref = '')", statuses).
		Order("created_at DESC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return toDomainInvoices(rows), nil
}

// CountByStatuses counts invoices in any of the given statuses
func (r *GormClientInvoiceRepository) CountByStatuses(ctx context.Context, statuses ...invoicing.InvoiceStatus) (int64, error) {
	if len(statuses) == 0 {
		return 0, nil
	}

	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.ClientInvoiceModel{}).
		Where("status IN ?", statuses).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// CountIssuedBetween counts invoices whose issuance fell in [from, to)
func (r *GormClientInvoiceRepository) CountIssuedBetween(ctx context.Context, from, to time.Time) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.ClientInvoiceModel{}).
		Where("issued_at >= ? AND issued_at < ?", from, to).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// ExistsByExternalNumber checks if an external number is already taken
func (r *GormClientInvoiceRepository) ExistsByExternalNumber(ctx context.Context, externalInvoiceNumber string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.ClientInvoiceModel{}).
		Where("external_invoice_number = ?", externalInvoiceNumber).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Save creates or updates an invoice
func (r *GormClientInvoiceRepository) Save(ctx context.Context, invoice *invoicing.ClientInvoice) error {
	model := models.ClientInvoiceModelFromDomain(invoice)
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(model).Error; err != nil {
			return err
		}
		return appendChangeLog(ctx, tx, invoice, model.TableName())
	})
}

// SaveWithLock saves with optimistic locking (checks version)
func (r *GormClientInvoiceRepository) SaveWithLock(ctx context.Context, invoice *invoicing.ClientInvoice) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return saveInvoiceWithLockTx(ctx, tx, invoice)
	})
}

// CreateFromBatch persists the new invoice, the batch's advance to issued
// and the transition of every emit member to billed in one transaction.
// Non-emit members are not touched.
func (r *GormClientInvoiceRepository) CreateFromBatch(ctx context.Context, invoice *invoicing.ClientInvoice, batch *billing.BillingBatch, emitItems []billing.IntakeItem) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		model := models.ClientInvoiceModelFromDomain(invoice)
		if err := tx.Create(model).Error; err != nil {
			return err
		}
		if err := appendChangeLog(ctx, tx, invoice, model.TableName()); err != nil {
			return err
		}

		if err := saveBatchWithLockTx(ctx, tx, batch); err != nil {
			return err
		}

		for i := range emitItems {
			item := &emitItems[i]
			result := tx.Model(&models.IntakeItemModel{}).
				Where("id = ? AND version = ?", item.ID, item.Version).
				Updates(map[string]interface{}{
					"status":            item.Status,
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
			if err := appendChangeLog(ctx, tx, item, models.IntakeItemModel{}.TableName()); err != nil {
				return err
			}
		}

		return nil
	})
}

// saveInvoiceWithLockTx is the version-checked invoice update shared with the
// delivery and platform task repositories, which pair an invoice transition
// with their own aggregate in one transaction
func saveInvoiceWithLockTx(ctx context.Context, tx *gorm.DB, invoice *invoicing.ClientInvoice) error {
	result := tx.Model(&models.ClientInvoiceModel{}).
		Where("id = ? AND version = ?", invoice.ID, invoice.Version).
		Updates(map[string]interface{}{
			"status":     invoice.Status,
			"doc_ref":    invoice.DocRef,
			"issued_at":  invoice.IssuedAt,
			"version":    invoice.Version + 1,
			"updated_at": invoice.UpdatedAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.NewDomainError("OPTIMISTIC_LOCK_FAILED", "Client invoice was modified by another transaction")
	}
	invoice.IncrementVersion()
	return appendChangeLog(ctx, tx, invoice, models.ClientInvoiceModel{}.TableName())
}

// applyFilter applies filter options to the query
func (r *GormClientInvoiceRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		query = query.Where("external_invoice_number LIKE ?", "%"+filter.Search+"%")
	}

	for key, value := range filter.Filters {
		switch key {
		case "status":
			query = query.Where("status = ?", value)
		case "job_id":
			query = query.Where("job_id = ?", value)
		case "batch_id":
			query = query.Where("batch_id = ?", value)
		}
	}

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	orderBy := ValidateSortField(filter.OrderBy, ClientInvoiceSortFields, "created_at")
	return query.Order(orderBy + " " + ValidateSortOrder(filter.OrderDir))
}

func toDomainInvoices(rows []models.ClientInvoiceModel) []invoicing.ClientInvoice {
	invoices := make([]invoicing.ClientInvoice, len(rows))
	for i := range rows {
		invoices[i] = *rows[i].ToDomain()
	}
	return invoices
}

// Ensure GormClientInvoiceRepository implements ClientInvoiceRepository
var _ invoicing.ClientInvoiceRepository = (*GormClientInvoiceRepository)(nil)
