package persistence

import (
	"context"
	"errors"

	"github.com/ginvoice/backend/internal/domain/invoicing"
	"github.com/ginvoice/backend/internal/domain/shared"
	"github.com/ginvoice/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormDeliveryRepository implements DeliveryRepository using GORM
type GormDeliveryRepository struct {
	db *gorm.DB
}

// NewGormDeliveryRepository creates a new GormDeliveryRepository
func NewGormDeliveryRepository(db *gorm.DB) *GormDeliveryRepository {
	return &GormDeliveryRepository{db: db}
}

// FindByID finds a delivery by its ID
func (r *GormDeliveryRepository) FindByID(ctx context.Context, id uuid.UUID) (*invoicing.Delivery, error) {
	var model models.DeliveryModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByInvoice finds the deliveries of an invoice, newest first
func (r *GormDeliveryRepository) FindByInvoice(ctx context.Context, invoiceID uuid.UUID) ([]invoicing.Delivery, error) {
	var rows []models.DeliveryModel
	if err := r.db.WithContext(ctx).
		Where("invoice_id = ?", invoiceID).
		Order("created_at DESC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return toDomainDeliveries(rows), nil
}

// FindByStatus finds deliveries in the given status, newest first
func (r *GormDeliveryRepository) FindByStatus(ctx context.Context, status invoicing.DeliveryStatus) ([]invoicing.Delivery, error) {
	var rows []models.DeliveryModel
	if err := r.db.WithContext(ctx).
		Where("status = ?", status).
		Order("created_at DESC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return toDomainDeliveries(rows), nil
}

// CountByStatus counts deliveries in the given status
func (r *GormDeliveryRepository) CountByStatus(ctx context.Context, status invoicing.DeliveryStatus) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.DeliveryModel{}).
		Where("status = ?", status).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Save creates or updates a delivery
func (r *GormDeliveryRepository) Save(ctx context.Context, delivery *invoicing.Delivery) error {
	model := models.DeliveryModelFromDomain(delivery)
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(model).Error; err != nil {
			return err
		}
		return appendChangeLog(ctx, tx, delivery, model.TableName())
	})
}

// SaveWithLock saves with optimistic locking (checks version)
func (r *GormDeliveryRepository) SaveWithLock(ctx context.Context, delivery *invoicing.Delivery) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return saveDeliveryWithLockTx(ctx, tx, delivery)
	})
}

// SaveWithInvoice saves the delivery and its invoice in one transaction, both
// version-checked. A conflict on either side rolls back the other, so a sent
// delivery never coexists with an undelivered invoice.
func (r *GormDeliveryRepository) SaveWithInvoice(ctx context.Context, delivery *invoicing.Delivery, invoice *invoicing.ClientInvoice) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := saveDeliveryWithLockTx(ctx, tx, delivery); err != nil {
			return err
		}
		return saveInvoiceWithLockTx(ctx, tx, invoice)
	})
}

func saveDeliveryWithLockTx(ctx context.Context, tx *gorm.DB, delivery *invoicing.Delivery) error {
	result := tx.Model(&models.DeliveryModel{}).
		Where("id = ? AND version = ?", delivery.ID, delivery.Version).
		Updates(map[string]interface{}{
			"status":     delivery.Status,
			"sent_at":    delivery.SentAt,
			"sent_by":    delivery.SentBy,
			"version":    delivery.Version + 1,
			"updated_at": delivery.UpdatedAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.NewDomainError("OPTIMISTIC_LOCK_FAILED", "Delivery was modified by another transaction")
	}
	delivery.IncrementVersion()
	return appendChangeLog(ctx, tx, delivery, models.DeliveryModel{}.TableName())
}

func toDomainDeliveries(rows []models.DeliveryModel) []invoicing.Delivery {
	deliveries := make([]invoicing.Delivery, len(rows))
	for i := range rows {
		deliveries[i] = *rows[i].ToDomain()
	}
	return deliveries
}

// Ensure GormDeliveryRepository implements DeliveryRepository
var _ invoicing.DeliveryRepository = (*GormDeliveryRepository)(nil)
