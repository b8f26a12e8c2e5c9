package dashboard

import (
	"time"

	"github.com/google/uuid"
)

// Counts is the numeric tile row of the dashboard
type Counts struct {
	IntakeAwaitingReview   int64 `json:"intake_awaiting_review"`
	IntakeUttaiBlocked     int64 `json:"intake_uttai_blocked"`
	IntakeComplianceFlags  int64 `json:"intake_compliance_flags"`
	IntakeAccountingQueue  int64 `json:"intake_accounting_queue"`
	IntakeReadyToBill      int64 `json:"intake_ready_to_bill"`
	InvoicesReadyForSap    int64 `json:"invoices_ready_for_sap"`
	InvoicesIssuedToday    int64 `json:"invoices_issued_today"`
	PendingDeliveries      int64 `json:"pending_deliveries"`
	OverduePlatformTasks   int64 `json:"overdue_platform_tasks"`
	OpenComplianceRequests int64 `json:"open_compliance_requests"`
}

// Alert is one attention item on the dashboard
type Alert struct {
	Kind     string     `json:"kind"`
	Severity string     `json:"severity"`
	Message  string     `json:"message"`
	Link     string     `json:"link,omitempty"`
	EntityID *uuid.UUID `json:"entity_id,omitempty"`
}

// Alert kinds
const (
	AlertKindJobClearance         = "job_clearance"
	AlertKindVendorDocumentExpiry = "vendor_document_expiry"
	AlertKindInvoiceMissingDoc    = "invoice_missing_document"
	AlertKindOverduePlatformTasks = "overdue_platform_tasks"
	AlertKindPendingDeliveries    = "pending_deliveries"
)

// WorkQueueEntry is one actionable item in the global work queue, deep
// linked into the owning view
type WorkQueueEntry struct {
	Kind      string    `json:"kind"`
	EntityID  uuid.UUID `json:"entity_id"`
	Label     string    `json:"label"`
	Status    string    `json:"status"`
	Link      string    `json:"link"`
	CreatedAt time.Time `json:"created_at"`
}

// Work queue entry kinds
const (
	QueueKindIntakeItem   = "intake_item"
	QueueKindInvoice      = "invoice"
	QueueKindPlatformTask = "platform_task"
)

// RecentEvent is one change-log entry rendered for the dashboard feed
type RecentEvent struct {
	EventType     string    `json:"event_type"`
	AggregateType string    `json:"aggregate_type"`
	AggregateID   uuid.UUID `json:"aggregate_id"`
	Actor         string    `json:"actor,omitempty"`
	OccurredAt    time.Time `json:"occurred_at"`
}

// Snapshot is one full dashboard refresh. It is assembled from independent
// read queries and carries the time it was generated; it is never cached
// or persisted.
type Snapshot struct {
	GeneratedAt  time.Time        `json:"generated_at"`
	Counts       Counts           `json:"counts"`
	Alerts       []Alert          `json:"alerts"`
	WorkQueue    []WorkQueueEntry `json:"work_queue"`
	RecentEvents []RecentEvent    `json:"recent_events"`
}
