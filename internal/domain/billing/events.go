package billing

import (
	"github.com/ginvoice/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Aggregate type constants
const (
	AggregateTypeIntakeItem   = "IntakeItem"
	AggregateTypeBillingBatch = "BillingBatch"
)

// Event type constants
const (
	EventTypeIntakeItemCreated      = "IntakeItemCreated"
	EventTypeIntakeItemSubmitted    = "IntakeItemSubmitted"
	EventTypeIntakeItemApproved     = "IntakeItemApproved"
	EventTypeIntakeItemRejected     = "IntakeItemRejected"
	EventTypeIntakeItemPosted       = "IntakeItemPosted"
	EventTypeIntakeItemBilled       = "IntakeItemBilled"
	EventTypeBillingBatchCreated    = "BillingBatchCreated"
	EventTypeBatchMembershipChanged = "BatchMembershipChanged"
	EventTypeBatchDecisionSet       = "BatchDecisionSet"
	EventTypeBillingBatchApproved   = "BillingBatchApproved"
	EventTypeBillingBatchIssued     = "BillingBatchIssued"
)

// IntakeItemCreatedEvent is raised when a new intake item enters the pipeline
type IntakeItemCreatedEvent struct {
	shared.BaseDomainEvent
	ItemID        uuid.UUID       `json:"item_id"`
	JobID         uuid.UUID       `json:"job_id"`
	InvoiceNumber string          `json:"invoice_number"`
	ItemType      IntakeType      `json:"item_type"`
	Amount        decimal.Decimal `json:"amount"`
}

// NewIntakeItemCreatedEvent creates a new IntakeItemCreatedEvent
func NewIntakeItemCreatedEvent(item *IntakeItem) *IntakeItemCreatedEvent {
	return &IntakeItemCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeIntakeItemCreated, AggregateTypeIntakeItem, item.ID),
		ItemID:          item.ID,
		JobID:           item.JobID,
		InvoiceNumber:   item.InvoiceNumber,
		ItemType:        item.Type,
		Amount:          item.Amount,
	}
}

// EventType returns the event type name
func (e *IntakeItemCreatedEvent) EventType() string {
	return EventTypeIntakeItemCreated
}

// IntakeItemSubmittedEvent is raised when an item is submitted for review
type IntakeItemSubmittedEvent struct {
	shared.BaseDomainEvent
	ItemID        uuid.UUID `json:"item_id"`
	InvoiceNumber string    `json:"invoice_number"`
}

// NewIntakeItemSubmittedEvent creates a new IntakeItemSubmittedEvent
func NewIntakeItemSubmittedEvent(item *IntakeItem) *IntakeItemSubmittedEvent {
	return &IntakeItemSubmittedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeIntakeItemSubmitted, AggregateTypeIntakeItem, item.ID),
		ItemID:          item.ID,
		InvoiceNumber:   item.InvoiceNumber,
	}
}

// EventType returns the event type name
func (e *IntakeItemSubmittedEvent) EventType() string {
	return EventTypeIntakeItemSubmitted
}

// IntakeItemApprovedEvent is raised when a reviewer approves an item
type IntakeItemApprovedEvent struct {
	shared.BaseDomainEvent
	ItemID     uuid.UUID `json:"item_id"`
	ApprovedBy string    `json:"approved_by"`
}

// NewIntakeItemApprovedEvent creates a new IntakeItemApprovedEvent
func NewIntakeItemApprovedEvent(item *IntakeItem) *IntakeItemApprovedEvent {
	return &IntakeItemApprovedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeIntakeItemApproved, AggregateTypeIntakeItem, item.ID),
		ItemID:          item.ID,
		ApprovedBy:      item.ApprovedBy,
	}
}

// EventType returns the event type name
func (e *IntakeItemApprovedEvent) EventType() string {
	return EventTypeIntakeItemApproved
}

// IntakeItemRejectedEvent is raised when a reviewer rejects an item
type IntakeItemRejectedEvent struct {
	shared.BaseDomainEvent
	ItemID uuid.UUID `json:"item_id"`
	Reason string    `json:"reason"`
}

// NewIntakeItemRejectedEvent creates a new IntakeItemRejectedEvent
func NewIntakeItemRejectedEvent(item *IntakeItem) *IntakeItemRejectedEvent {
	return &IntakeItemRejectedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeIntakeItemRejected, AggregateTypeIntakeItem, item.ID),
		ItemID:          item.ID,
		Reason:          item.RejectionReason,
	}
}

// EventType returns the event type name
func (e *IntakeItemRejectedEvent) EventType() string {
	return EventTypeIntakeItemRejected
}

// IntakeItemPostedEvent is raised when the ledger posting is recorded
type IntakeItemPostedEvent struct {
	shared.BaseDomainEvent
	ItemID uuid.UUID `json:"item_id"`
}

// NewIntakeItemPostedEvent creates a new IntakeItemPostedEvent
func NewIntakeItemPostedEvent(item *IntakeItem) *IntakeItemPostedEvent {
	return &IntakeItemPostedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeIntakeItemPosted, AggregateTypeIntakeItem, item.ID),
		ItemID:          item.ID,
	}
}

// EventType returns the event type name
func (e *IntakeItemPostedEvent) EventType() string {
	return EventTypeIntakeItemPosted
}

// IntakeItemBilledEvent is raised when an item is billed through an invoice
type IntakeItemBilledEvent struct {
	shared.BaseDomainEvent
	ItemID          uuid.UUID  `json:"item_id"`
	ClientInvoiceID *uuid.UUID `json:"client_invoice_id"`
}

// NewIntakeItemBilledEvent creates a new IntakeItemBilledEvent
func NewIntakeItemBilledEvent(item *IntakeItem) *IntakeItemBilledEvent {
	return &IntakeItemBilledEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeIntakeItemBilled, AggregateTypeIntakeItem, item.ID),
		ItemID:          item.ID,
		ClientInvoiceID: item.ClientInvoiceID,
	}
}

// EventType returns the event type name
func (e *IntakeItemBilledEvent) EventType() string {
	return EventTypeIntakeItemBilled
}

// BillingBatchCreatedEvent is raised when a new batch is opened for a job
type BillingBatchCreatedEvent struct {
	shared.BaseDomainEvent
	BatchID uuid.UUID `json:"batch_id"`
	JobID   uuid.UUID `json:"job_id"`
}

// NewBillingBatchCreatedEvent creates a new BillingBatchCreatedEvent
func NewBillingBatchCreatedEvent(batch *BillingBatch) *BillingBatchCreatedEvent {
	return &BillingBatchCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeBillingBatchCreated, AggregateTypeBillingBatch, batch.ID),
		BatchID:         batch.ID,
		JobID:           batch.JobID,
	}
}

// EventType returns the event type name
func (e *BillingBatchCreatedEvent) EventType() string {
	return EventTypeBillingBatchCreated
}

// BatchMembershipChangedEvent is raised when an item joins a batch
type BatchMembershipChangedEvent struct {
	shared.BaseDomainEvent
	BatchID      uuid.UUID       `json:"batch_id"`
	IntakeItemID uuid.UUID       `json:"intake_item_id"`
	TotalAmount  decimal.Decimal `json:"total_amount"`
}

// NewBatchMembershipChangedEvent creates a new BatchMembershipChangedEvent
func NewBatchMembershipChangedEvent(batch *BillingBatch, intakeItemID uuid.UUID) *BatchMembershipChangedEvent {
	return &BatchMembershipChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeBatchMembershipChanged, AggregateTypeBillingBatch, batch.ID),
		BatchID:         batch.ID,
		IntakeItemID:    intakeItemID,
		TotalAmount:     batch.TotalAmount,
	}
}

// EventType returns the event type name
func (e *BatchMembershipChangedEvent) EventType() string {
	return EventTypeBatchMembershipChanged
}

// BatchDecisionSetEvent is raised when a member's disposition is recorded
type BatchDecisionSetEvent struct {
	shared.BaseDomainEvent
	BatchID      uuid.UUID       `json:"batch_id"`
	IntakeItemID uuid.UUID       `json:"intake_item_id"`
	Decision     BatchDecision   `json:"decision"`
	TotalAmount  decimal.Decimal `json:"total_amount"`
}

// NewBatchDecisionSetEvent creates a new BatchDecisionSetEvent
func NewBatchDecisionSetEvent(batch *BillingBatch, intakeItemID uuid.UUID, decision BatchDecision) *BatchDecisionSetEvent {
	return &BatchDecisionSetEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeBatchDecisionSet, AggregateTypeBillingBatch, batch.ID),
		BatchID:         batch.ID,
		IntakeItemID:    intakeItemID,
		Decision:        decision,
		TotalAmount:     batch.TotalAmount,
	}
}

// EventType returns the event type name
func (e *BatchDecisionSetEvent) EventType() string {
	return EventTypeBatchDecisionSet
}

// BillingBatchApprovedEvent is raised when a partner signs off the batch
type BillingBatchApprovedEvent struct {
	shared.BaseDomainEvent
	BatchID     uuid.UUID       `json:"batch_id"`
	TotalAmount decimal.Decimal `json:"total_amount"`
	TotalFees   decimal.Decimal `json:"total_fees"`
}

// NewBillingBatchApprovedEvent creates a new BillingBatchApprovedEvent
func NewBillingBatchApprovedEvent(batch *BillingBatch) *BillingBatchApprovedEvent {
	return &BillingBatchApprovedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeBillingBatchApproved, AggregateTypeBillingBatch, batch.ID),
		BatchID:         batch.ID,
		TotalAmount:     batch.TotalAmount,
		TotalFees:       batch.TotalFees,
	}
}

// EventType returns the event type name
func (e *BillingBatchApprovedEvent) EventType() string {
	return EventTypeBillingBatchApproved
}

// BillingBatchIssuedEvent is raised when the batch is materialized into a
// client invoice
type BillingBatchIssuedEvent struct {
	shared.BaseDomainEvent
	BatchID         uuid.UUID  `json:"batch_id"`
	ClientInvoiceID *uuid.UUID `json:"client_invoice_id"`
}

// NewBillingBatchIssuedEvent creates a new BillingBatchIssuedEvent
func NewBillingBatchIssuedEvent(batch *BillingBatch) *BillingBatchIssuedEvent {
	return &BillingBatchIssuedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeBillingBatchIssued, AggregateTypeBillingBatch, batch.ID),
		BatchID:         batch.ID,
		ClientInvoiceID: batch.ClientInvoiceID,
	}
}

// EventType returns the event type name
func (e *BillingBatchIssuedEvent) EventType() string {
	return EventTypeBillingBatchIssued
}
