package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/ginvoice/backend/internal/domain/compliance"
	"github.com/ginvoice/backend/internal/domain/shared"
	"github.com/ginvoice/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormJobRepository implements JobRepository using GORM
type GormJobRepository struct {
	db *gorm.DB
}

// NewGormJobRepository creates a new GormJobRepository
func NewGormJobRepository(db *gorm.DB) *GormJobRepository {
	return &GormJobRepository{db: db}
}

// FindByID finds a job by its ID
func (r *GormJobRepository) FindByID(ctx context.Context, id uuid.UUID) (*compliance.Job, error) {
	var model models.JobModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByCode finds a job by its code
func (r *GormJobRepository) FindByCode(ctx context.Context, code string) (*compliance.Job, error) {
	var model models.JobModel
	if err := r.db.WithContext(ctx).First(&model, "code = ?", code).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll finds all jobs matching the filter
func (r *GormJobRepository) FindAll(ctx context.Context, filter shared.Filter) ([]compliance.Job, error) {
	var rows []models.JobModel
	query := r.applyFilter(r.db.WithContext(ctx).Model(&models.JobModel{}), filter)

	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}

	jobs := make([]compliance.Job, len(rows))
	for i := range rows {
		jobs[i] = *rows[i].ToDomain()
	}
	return jobs, nil
}

// FindByClearance finds non-archived jobs in the given clearance statuses
func (r *GormJobRepository) FindByClearance(ctx context.Context, statuses ...compliance.ClearanceStatus) ([]compliance.Job, error) {
	if len(statuses) == 0 {
		return []compliance.Job{}, nil
	}

	var rows []models.JobModel
	if err := r.db.WithContext(ctx).
		Where("clearance IN ? AND archived = ?", statuses, false).
		Order("created_at DESC").
		Find(&rows).Error; err != nil {
		return nil, err
	}

	jobs := make([]compliance.Job, len(rows))
	for i := range rows {
		jobs[i] = *rows[i].ToDomain()
	}
	return jobs, nil
}

// Save creates or updates a job and writes its pending events to the change log
func (r *GormJobRepository) Save(ctx context.Context, job *compliance.Job) error {
	model := models.JobModelFromDomain(job)
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(model).Error; err != nil {
			return err
		}
		return appendChangeLog(ctx, tx, job, model.TableName())
	})
}

// SaveWithLock saves with optimistic locking: the update only lands when
// the row still carries the version the aggregate was loaded with.
func (r *GormJobRepository) SaveWithLock(ctx context.Context, job *compliance.Job) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&models.JobModel{}).
			Where("id = ? AND version = ?", job.ID, job.Version).
			Updates(map[string]interface{}{
				"clearance":              job.Clearance,
				"subject_to_withholding": job.SubjectToWithholding,
				"archived":               job.Archived,
				"version":                job.Version + 1,
				"updated_at":             job.UpdatedAt,
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.NewDomainError("OPTIMISTIC_LOCK_FAILED", "Job was modified by another transaction")
		}
		job.IncrementVersion()
		return appendChangeLog(ctx, tx, job, models.JobModel{}.TableName())
	})
}

// Count counts jobs matching the filter
func (r *GormJobRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilterWithoutPagination(r.db.WithContext(ctx).Model(&models.JobModel{}), filter)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// applyFilter applies filter options to the query
func (r *GormJobRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	orderBy := ValidateSortField(filter.OrderBy, JobSortFields, "created_at")
	query = query.Order(orderBy + " " + ValidateSortOrder(filter.OrderDir))

	return query
}

// applyFilterWithoutPagination applies filter options without pagination
func (r *GormJobRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		searchPattern := "%" + strings.TrimSpace(filter.Search) + "%"
		query = query.Where("code LIKE ? OR client_name LIKE ?", searchPattern, searchPattern)
	}

	for key, value := range filter.Filters {
		switch key {
		case "clearance":
			query = query.Where("clearance = ?", value)
		case "archived":
			query = query.Where("archived = ?", value)
		}
	}

	return query
}

// Ensure GormJobRepository implements JobRepository
var _ compliance.JobRepository = (*GormJobRepository)(nil)
