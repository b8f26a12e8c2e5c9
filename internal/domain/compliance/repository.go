package compliance

import (
	"context"

	"github.com/ginvoice/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// JobRepository defines the interface for job persistence
type JobRepository interface {
	// FindByID finds a job by ID
	FindByID(ctx context.Context, id uuid.UUID) (*Job, error)

	// FindByCode finds a job by its code
	FindByCode(ctx context.Context, code string) (*Job, error)

	// FindAll finds jobs with filtering
	FindAll(ctx context.Context, filter shared.Filter) ([]Job, error)

	// FindByClearance finds jobs in the given clearance statuses
	FindByClearance(ctx context.Context, statuses ...ClearanceStatus) ([]Job, error)

	// Save creates or updates a job
	Save(ctx context.Context, job *Job) error

	// SaveWithLock saves with optimistic locking (version check)
	SaveWithLock(ctx context.Context, job *Job) error

	// Count counts jobs matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)
}

// VendorRepository defines the interface for vendor persistence
type VendorRepository interface {
	// FindByID finds a vendor by ID, documents included
	FindByID(ctx context.Context, id uuid.UUID) (*Vendor, error)

	// FindAll finds vendors with filtering
	FindAll(ctx context.Context, filter shared.Filter) ([]Vendor, error)

	// FindDocumentsExpiringWithin finds documents whose expiry falls inside
	// the window, for dashboard alerting
	FindDocumentsExpiringWithin(ctx context.Context, days int) ([]VendorDocument, error)

	// Save creates or updates a vendor and its documents
	Save(ctx context.Context, vendor *Vendor) error

	// SaveWithLock saves with optimistic locking (version check)
	SaveWithLock(ctx context.Context, vendor *Vendor) error

	// Count counts vendors matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)
}

// ComplianceRequestRepository defines the interface for compliance request persistence
type ComplianceRequestRepository interface {
	// FindByID finds a compliance request by ID
	FindByID(ctx context.Context, id uuid.UUID) (*ComplianceRequest, error)

	// FindByJob finds all requests for a job, newest first
	FindByJob(ctx context.Context, jobID uuid.UUID) ([]ComplianceRequest, error)

	// FindOpen finds all unresolved requests
	FindOpen(ctx context.Context) ([]ComplianceRequest, error)

	// Save creates or updates a compliance request
	Save(ctx context.Context, req *ComplianceRequest) error

	// SaveWithLock saves with optimistic locking (version check)
	SaveWithLock(ctx context.Context, req *ComplianceRequest) error

	// ResolveWithJob persists the resolved request and the job clearance
	// change in one transaction, both version-checked
	ResolveWithJob(ctx context.Context, req *ComplianceRequest, job *Job) error
}
