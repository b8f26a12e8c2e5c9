package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/ginvoice/backend/internal/domain/invoicing"
	"github.com/ginvoice/backend/internal/domain/shared"
	"github.com/ginvoice/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormPlatformTaskRepository implements PlatformTaskRepository using GORM.
// The overdue queries derive overdue from sla_due_at and the caller's clock;
// there is no overdue column to get out of sync.
type GormPlatformTaskRepository struct {
	db *gorm.DB
}

// NewGormPlatformTaskRepository creates a new GormPlatformTaskRepository
func NewGormPlatformTaskRepository(db *gorm.DB) *GormPlatformTaskRepository {
	return &GormPlatformTaskRepository{db: db}
}

// FindByID finds a task by its ID
func (r *GormPlatformTaskRepository) FindByID(ctx context.Context, id uuid.UUID) (*invoicing.PlatformTask, error) {
	var model models.PlatformTaskModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll finds all tasks matching the filter
func (r *GormPlatformTaskRepository) FindAll(ctx context.Context, filter shared.Filter) ([]invoicing.PlatformTask, error) {
	var rows []models.PlatformTaskModel
	query := r.applyFilter(r.db.WithContext(ctx).Model(&models.PlatformTaskModel{}), filter)

	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	return toDomainTasks(rows), nil
}

// FindByInvoice finds the tasks of an invoice, newest first
func (r *GormPlatformTaskRepository) FindByInvoice(ctx context.Context, invoiceID uuid.UUID) ([]invoicing.PlatformTask, error) {
	var rows []models.PlatformTaskModel
	if err := r.db.WithContext(ctx).
		Where("invoice_id = ?", invoiceID).
		Order("created_at DESC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return toDomainTasks(rows), nil
}

// FindOpen finds non-completed tasks, newest first
func (r *GormPlatformTaskRepository) FindOpen(ctx context.Context) ([]invoicing.PlatformTask, error) {
	var rows []models.PlatformTaskModel
	if err := r.db.WithContext(ctx).
		Where("status <> ?", invoicing.TaskStatusCompleted).
		Order("created_at DESC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return toDomainTasks(rows), nil
}

// FindOverdue finds non-completed tasks whose SLA deadline lies before the
// given instant, oldest deadline first
func (r *GormPlatformTaskRepository) FindOverdue(ctx context.Context, now time.Time) ([]invoicing.PlatformTask, error) {
	var rows []models.PlatformTaskModel
	if err := r.db.WithContext(ctx).
		Where("status <> ? AND sla_due_at < ?", invoicing.TaskStatusCompleted, now).
		Order("sla_due_at ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return toDomainTasks(rows), nil
}

// CountOverdue counts non-completed tasks past their SLA deadline
func (r *GormPlatformTaskRepository) CountOverdue(ctx context.Context, now time.Time) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.PlatformTaskModel{}).
		Where("status <> ? AND sla_due_at < ?", invoicing.TaskStatusCompleted, now).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Save creates or updates a task
func (r *GormPlatformTaskRepository) Save(ctx context.Context, task *invoicing.PlatformTask) error {
	model := models.PlatformTaskModelFromDomain(task)
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(model).Error; err != nil {
			return err
		}
		return appendChangeLog(ctx, tx, task, model.TableName())
	})
}

// SaveWithLock saves with optimistic locking (checks version)
func (r *GormPlatformTaskRepository) SaveWithLock(ctx context.Context, task *invoicing.PlatformTask) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return savePlatformTaskWithLockTx(ctx, tx, task)
	})
}

// CreateWithInvoice persists a new task together with the invoice's routing
// to the platform branch. A version conflict on the invoice rolls the task
// back, so an open task never outlives a failed invoice transition.
func (r *GormPlatformTaskRepository) CreateWithInvoice(ctx context.Context, task *invoicing.PlatformTask, invoice *invoicing.ClientInvoice) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		model := models.PlatformTaskModelFromDomain(task)
		if err := tx.Create(model).Error; err != nil {
			return err
		}
		if err := appendChangeLog(ctx, tx, task, model.TableName()); err != nil {
			return err
		}
		return saveInvoiceWithLockTx(ctx, tx, invoice)
	})
}

// SaveWithInvoice saves the task and its invoice in one transaction, both
// version-checked
func (r *GormPlatformTaskRepository) SaveWithInvoice(ctx context.Context, task *invoicing.PlatformTask, invoice *invoicing.ClientInvoice) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := savePlatformTaskWithLockTx(ctx, tx, task); err != nil {
			return err
		}
		return saveInvoiceWithLockTx(ctx, tx, invoice)
	})
}

func savePlatformTaskWithLockTx(ctx context.Context, tx *gorm.DB, task *invoicing.PlatformTask) error {
	result := tx.Model(&models.PlatformTaskModel{}).
		Where("id = ? AND version = ?", task.ID, task.Version).
		Updates(map[string]interface{}{
			"status":           task.Status,
			"notes":            task.Notes,
			"completed_at":     task.CompletedAt,
			"evidence_doc_ref": task.EvidenceDocRef,
			"version":          task.Version + 1,
			"updated_at":       task.UpdatedAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.NewDomainError("OPTIMISTIC_LOCK_FAILED", "Platform task was modified by another transaction")
	}
	task.IncrementVersion()
	return appendChangeLog(ctx, tx, task, models.PlatformTaskModel{}.TableName())
}

// applyFilter applies filter options to the query
func (r *GormPlatformTaskRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	for key, value := range filter.Filters {
		switch key {
		case "status":
			query = query.Where("status = ?", value)
		case "platform_name":
			query = query.Where("platform_name = ?", value)
		case "invoice_id":
			query = query.Where("invoice_id = ?", value)
		}
	}

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	orderBy := ValidateSortField(filter.OrderBy, PlatformTaskSortFields, "created_at")
	return query.Order(orderBy + " " + ValidateSortOrder(filter.OrderDir))
}

func toDomainTasks(rows []models.PlatformTaskModel) []invoicing.PlatformTask {
	tasks := make([]invoicing.PlatformTask, len(rows))
	for i := range rows {
		tasks[i] = *rows[i].ToDomain()
	}
	return tasks
}

// Ensure GormPlatformTaskRepository implements PlatformTaskRepository
var _ invoicing.PlatformTaskRepository = (*GormPlatformTaskRepository)(nil)
