package persistence

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/ginvoice/backend/internal/domain/compliance"
	"github.com/ginvoice/backend/internal/domain/shared"
	"github.com/ginvoice/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormVendorRepository implements VendorRepository using GORM
type GormVendorRepository struct {
	db *gorm.DB
}

// NewGormVendorRepository creates a new GormVendorRepository
func NewGormVendorRepository(db *gorm.DB) *GormVendorRepository {
	return &GormVendorRepository{db: db}
}

// FindByID finds a vendor by its ID, documents included
func (r *GormVendorRepository) FindByID(ctx context.Context, id uuid.UUID) (*compliance.Vendor, error) {
	var model models.VendorModel
	if err := r.db.WithContext(ctx).
		Preload("Documents").
		First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll finds all vendors matching the filter, documents included
func (r *GormVendorRepository) FindAll(ctx context.Context, filter shared.Filter) ([]compliance.Vendor, error) {
	var rows []models.VendorModel
	query := r.applyFilter(r.db.WithContext(ctx).Model(&models.VendorModel{}).Preload("Documents"), filter)

	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}

	vendors := make([]compliance.Vendor, len(rows))
	for i := range rows {
		vendors[i] = *rows[i].ToDomain()
	}
	return vendors, nil
}

// FindDocumentsExpiringWithin finds documents whose expiry falls inside the
// window starting now, soonest expiry first
func (r *GormVendorRepository) FindDocumentsExpiringWithin(ctx context.Context, days int) ([]compliance.VendorDocument, error) {
	now := time.Now()
	until := now.Add(time.Duration(days) * 24 * time.Hour)

	var rows []models.VendorDocumentModel
	if err := r.db.WithContext(ctx).
		Where("expires_at > ? AND expires_at <= ?", now, until).
		Order("expires_at ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}

	docs := make([]compliance.VendorDocument, len(rows))
	for i := range rows {
		docs[i] = *rows[i].ToDomain()
	}
	return docs, nil
}

// Save creates or updates a vendor together with its documents
func (r *GormVendorRepository) Save(ctx context.Context, vendor *compliance.Vendor) error {
	model := models.VendorModelFromDomain(vendor)
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Session(&gorm.Session{FullSaveAssociations: true}).Save(model).Error; err != nil {
			return err
		}
		return appendChangeLog(ctx, tx, vendor, model.TableName())
	})
}

// SaveWithLock saves with optimistic locking (checks version)
func (r *GormVendorRepository) SaveWithLock(ctx context.Context, vendor *compliance.Vendor) error {
	model := models.VendorModelFromDomain(vendor)
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&models.VendorModel{}).
			Where("id = ? AND version = ?", vendor.ID, vendor.Version).
			Updates(map[string]interface{}{
				"name":              vendor.Name,
				"tax_id":            vendor.TaxID,
				"compliance_status": vendor.ComplianceStatus,
				"version":           vendor.Version + 1,
				"updated_at":        vendor.UpdatedAt,
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.NewDomainError("OPTIMISTIC_LOCK_FAILED", "Vendor was modified by another transaction")
		}
		vendor.IncrementVersion()

		if len(model.Documents) > 0 {
			if err := tx.Save(&model.Documents).Error; err != nil {
				return err
			}
		}

		return appendChangeLog(ctx, tx, vendor, model.TableName())
	})
}

// Count counts vendors matching the filter
func (r *GormVendorRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilterWithoutPagination(r.db.WithContext(ctx).Model(&models.VendorModel{}), filter)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// applyFilter applies filter options to the query
func (r *GormVendorRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	orderBy := ValidateSortField(filter.OrderBy, VendorSortFields, "created_at")
	query = query.Order(orderBy + " " + ValidateSortOrder(filter.OrderDir))

	return query
}

// applyFilterWithoutPagination applies filter options without pagination
func (r *GormVendorRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		searchPattern := "%" + strings.TrimSpace(filter.Search) + "%"
		query = query.Where("name LIKE ? OR tax_id LIKE ?", searchPattern, searchPattern)
	}

	for key, value := range filter.Filters {
		switch key {
		case "compliance_status":
			query = query.Where("compliance_status = ?", value)
		}
	}

	return query
}

// Ensure GormVendorRepository implements VendorRepository
var _ compliance.VendorRepository = (*GormVendorRepository)(nil)
