package persistence

import (
	"context"
	"errors"

	"github.com/ginvoice/backend/internal/domain/compliance"
	"github.com/ginvoice/backend/internal/domain/shared"
	"github.com/ginvoice/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormComplianceRequestRepository implements ComplianceRequestRepository using GORM
type GormComplianceRequestRepository struct {
	db *gorm.DB
}

// NewGormComplianceRequestRepository creates a new GormComplianceRequestRepository
func NewGormComplianceRequestRepository(db *gorm.DB) *GormComplianceRequestRepository {
	return &GormComplianceRequestRepository{db: db}
}

// FindByID finds a compliance request by its ID
func (r *GormComplianceRequestRepository) FindByID(ctx context.Context, id uuid.UUID) (*compliance.ComplianceRequest, error) {
	var model models.ComplianceRequestModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByJob finds all requests for a job, newest first
func (r *GormComplianceRequestRepository) FindByJob(ctx context.Context, jobID uuid.UUID) ([]compliance.ComplianceRequest, error) {
	var rows []models.ComplianceRequestModel
	if err := r.db.WithContext(ctx).
		Where("job_id = ?", jobID).
		Order("created_at DESC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return toDomainRequests(rows), nil
}

// FindOpen finds all unresolved requests, newest first
func (r *GormComplianceRequestRepository) FindOpen(ctx context.Context) ([]compliance.ComplianceRequest, error) {
	var rows []models.ComplianceRequestModel
	if err := r.db.WithContext(ctx).
		Where("status <> ?", compliance.RequestResolved).
		Order("created_at DESC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return toDomainRequests(rows), nil
}

// Save creates or updates a compliance request
func (r *GormComplianceRequestRepository) Save(ctx context.Context, req *compliance.ComplianceRequest) error {
	model := models.ComplianceRequestModelFromDomain(req)
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(model).Error; err != nil {
			return err
		}
		return appendChangeLog(ctx, tx, req, model.TableName())
	})
}

// SaveWithLock saves with optimistic locking (checks version)
func (r *GormComplianceRequestRepository) SaveWithLock(ctx context.Context, req *compliance.ComplianceRequest) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return r.saveWithLockTx(ctx, tx, req)
	})
}

// ResolveWithJob persists the resolved request and the job clearance change
// in one transaction, both version-checked
func (r *GormComplianceRequestRepository) ResolveWithJob(ctx context.Context, req *compliance.ComplianceRequest, job *compliance.Job) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := r.saveWithLockTx(ctx, tx, req); err != nil {
			return err
		}

		result := tx.Model(&models.JobModel{}).
			Where("id = ? AND version = ?", job.ID, job.Version).
			Updates(map[string]interface{}{
				"clearance":  job.Clearance,
				"version":    job.Version + 1,
				"updated_at": job.UpdatedAt,
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

func (r *GormComplianceRequestRepository) saveWithLockTx(ctx context.Context, tx *gorm.DB, req *compliance.ComplianceRequest) error {
	result := tx.Model(&models.ComplianceRequestModel{}).
		Where("id = ? AND version = ?", req.ID, req.Version).
		Updates(map[string]interface{}{
			"status":          req.Status,
			"resolved_by":     req.ResolvedBy,
			"resolved_at":     req.ResolvedAt,
			"resolution_note": req.ResolutionNote,
			"version":         req.Version + 1,
			"updated_at":      req.UpdatedAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.NewDomainError("OPTIMISTIC_LOCK_FAILED", "Compliance request was modified by another transaction")
	}
	req.IncrementVersion()
	return appendChangeLog(ctx, tx, req, models.ComplianceRequestModel{}.TableName())
}

func toDomainRequests(rows []models.ComplianceRequestModel) []compliance.ComplianceRequest {
	requests := make([]compliance.ComplianceRequest, len(rows))
	for i := range rows {
		requests[i] = *rows[i].ToDomain()
	}
	return requests
}

// Ensure GormComplianceRequestRepository implements ComplianceRequestRepository
var _ compliance.ComplianceRequestRepository = (*GormComplianceRequestRepository)(nil)
