package invoicing

import (
	"context"
	"time"

	"github.com/ginvoice/backend/internal/domain/billing"
	"github.com/ginvoice/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// ClientInvoiceRepository defines the interface for client invoice persistence
type ClientInvoiceRepository interface {
	// FindByID finds an invoice by ID
	FindByID(ctx context.Context, id uuid.UUID) (*ClientInvoice, error)

	// FindByExternalNumber finds an invoice by its external number
	FindByExternalNumber(ctx context.Context, externalInvoiceNumber string) (*ClientInvoice, error)

	// FindAll finds invoices with filtering
	FindAll(ctx context.Context, filter shared.Filter) ([]ClientInvoice, error)

	// FindByStatuses finds invoices in any of the given statuses, newest first
	FindByStatuses(ctx context.Context, statuses ...InvoiceStatus) ([]ClientInvoice, error)

	// FindMissingDocument finds invoices in the given statuses that have no
	// attached document reference
	FindMissingDocument(ctx context.Context, statuses ...InvoiceStatus) ([]ClientInvoice, error)

	// CountByStatuses counts invoices in any of the given statuses
	CountByStatuses(ctx context.Context, statuses ...InvoiceStatus) (int64, error)

	// CountIssuedBetween counts invoices whose issuance fell in [from, to)
	CountIssuedBetween(ctx context.Context, from, to time.Time) (int64, error)

	// ExistsByExternalNumber checks if an external number is already taken
	ExistsByExternalNumber(ctx context.Context, externalInvoiceNumber string) (bool, error)

	// Save creates or updates an invoice
	Save(ctx context.Context, invoice *ClientInvoice) error

	// SaveWithLock saves with optimistic locking (version check)
	SaveWithLock(ctx context.Context, invoice *ClientInvoice) error

	// CreateFromBatch persists the new invoice, the batch's advance to
	// issued and the transition of every emit member to billed in one
	// transaction, all version-checked. Non-emit members are not touched.
	CreateFromBatch(ctx context.Context, invoice *ClientInvoice, batch *billing.BillingBatch, emitItems []billing.IntakeItem) error
}

// DeliveryRepository defines the interface for delivery persistence
type DeliveryRepository interface {
	// FindByID finds a delivery by ID
	FindByID(ctx context.Context, id uuid.UUID) (*Delivery, error)

	// FindByInvoice finds the deliveries of an invoice
	FindByInvoice(ctx context.Context, invoiceID uuid.UUID) ([]Delivery, error)

	// FindByStatus finds deliveries in the given status, newest first
	FindByStatus(ctx context.Context, status DeliveryStatus) ([]Delivery, error)

	// CountByStatus counts deliveries in the given status
	CountByStatus(ctx context.Context, status DeliveryStatus) (int64, error)

	// Save creates or updates a delivery
	Save(ctx context.Context, delivery *Delivery) error

	// SaveWithLock saves with optimistic locking (version check)
	SaveWithLock(ctx context.Context, delivery *Delivery) error

	// SaveWithInvoice persists the delivery and its invoice in one
	// transaction, both version-checked
	SaveWithInvoice(ctx context.Context, delivery *Delivery, invoice *ClientInvoice) error
}

// PlatformTaskRepository defines the interface for platform task persistence
type PlatformTaskRepository interface {
	// FindByID finds a task by ID
	FindByID(ctx context.Context, id uuid.UUID) (*PlatformTask, error)

	// FindAll finds tasks with filtering
	FindAll(ctx context.Context, filter shared.Filter) ([]PlatformTask, error)

	// FindByInvoice finds the tasks of an invoice
	FindByInvoice(ctx context.Context, invoiceID uuid.UUID) ([]PlatformTask, error)

	// FindOpen finds non-completed tasks, newest first
	FindOpen(ctx context.Context) ([]PlatformTask, error)

	// FindOverdue finds non-completed tasks whose SLA deadline lies before
	// the given instant, oldest deadline first
	FindOverdue(ctx context.Context, now time.Time) ([]PlatformTask, error)

	// CountOverdue counts non-completed tasks past their SLA deadline
	CountOverdue(ctx context.Context, now time.Time) (int64, error)

	// Save creates or updates a task
	Save(ctx context.Context, task *PlatformTask) error

	// SaveWithLock saves with optimistic locking (version check)
	SaveWithLock(ctx context.Context, task *PlatformTask) error

	// CreateWithInvoice persists a new task and the invoice's routing to
	// the platform branch in one transaction. A version conflict on the
	// invoice rolls the task back.
	CreateWithInvoice(ctx context.Context, task *PlatformTask, invoice *ClientInvoice) error

	// SaveWithInvoice persists the task and its invoice in one
	// transaction, both version-checked
	SaveWithInvoice(ctx context.Context, task *PlatformTask, invoice *ClientInvoice) error
}
