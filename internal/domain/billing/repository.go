package billing

import (
	"context"

	"github.com/ginvoice/backend/internal/domain/compliance"
	"github.com/ginvoice/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// IntakeItemRepository defines the interface for intake item persistence
type IntakeItemRepository interface {
	// FindByID finds an intake item by ID
	FindByID(ctx context.Context, id uuid.UUID) (*IntakeItem, error)

	// FindByInvoiceNumber finds an intake item by invoice number
	FindByInvoiceNumber(ctx context.Context, invoiceNumber string) (*IntakeItem, error)

	// FindAll finds intake items with filtering
	FindAll(ctx context.Context, filter shared.Filter) ([]IntakeItem, error)

	// FindByStatuses finds items in any of the given statuses, newest first
	FindByStatuses(ctx context.Context, statuses ...IntakeStatus) ([]IntakeItem, error)

	// FindByJob finds items for a job
	FindByJob(ctx context.Context, jobID uuid.UUID, filter shared.Filter) ([]IntakeItem, error)

	// Save creates or updates an intake item
	Save(ctx context.Context, item *IntakeItem) error

	// SaveWithLock saves with optimistic locking (version check). Snapshot
	// columns are never part of the update set.
	SaveWithLock(ctx context.Context, item *IntakeItem) error

	// SaveWithPosting persists the status advance to posted and the new
	// posting record in one transaction, version-checked. Fails with a
	// conflict if a posting already exists for the item.
	SaveWithPosting(ctx context.Context, item *IntakeItem, posting *AccountingPosting) error

	// FindPosting finds the posting for an intake item, if any
	FindPosting(ctx context.Context, intakeItemID uuid.UUID) (*AccountingPosting, error)

	// CountByStatuses counts items in any of the given statuses
	CountByStatuses(ctx context.Context, statuses ...IntakeStatus) (int64, error)

	// CountActiveByClearanceSnapshot counts non-terminal, not-yet-billed
	// items whose frozen UTTAI snapshot matches
	CountActiveByClearanceSnapshot(ctx context.Context, clearance compliance.ClearanceStatus) (int64, error)

	// CountActiveByVendorSnapshot counts non-terminal, not-yet-billed items
	// whose frozen vendor compliance snapshot is one of the given statuses
	CountActiveByVendorSnapshot(ctx context.Context, statuses ...compliance.VendorComplianceStatus) (int64, error)

	// CountSuccessors counts prior items whose invoice number is the
	// original or one of its -Rn successors, to pick the next suffix
	CountSuccessors(ctx context.Context, invoiceNumber string) (int64, error)

	// ExistsByInvoiceNumber checks if an invoice number is already taken
	ExistsByInvoiceNumber(ctx context.Context, invoiceNumber string) (bool, error)
}

// BillingBatchRepository defines the interface for billing batch persistence
type BillingBatchRepository interface {
	// FindByID finds a batch by ID, members included
	FindByID(ctx context.Context, id uuid.UUID) (*BillingBatch, error)

	// FindAll finds batches with filtering
	FindAll(ctx context.Context, filter shared.Filter) ([]BillingBatch, error)

	// FindByJob finds batches for a job
	FindByJob(ctx context.Context, jobID uuid.UUID) ([]BillingBatch, error)

	// FindByStatuses finds batches in any of the given statuses, newest first
	FindByStatuses(ctx context.Context, statuses ...BatchStatus) ([]BillingBatch, error)

	// HasActiveMembership reports whether the item is an undecided or emit
	// member of a batch other than excludeBatch that has not been issued.
	// Transfer and discard members are free to join another batch.
	HasActiveMembership(ctx context.Context, intakeItemID, excludeBatchID uuid.UUID) (bool, error)

	// Save creates or updates a batch and its members
	Save(ctx context.Context, batch *BillingBatch) error

	// SaveWithLock saves the batch, its members and its recomputed totals
	// atomically, version-checked
	SaveWithLock(ctx context.Context, batch *BillingBatch) error
}
