package invoicing

import (
	"time"

	"github.com/ginvoice/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Aggregate type constants
const (
	AggregateTypeClientInvoice = "ClientInvoice"
	AggregateTypeDelivery      = "Delivery"
	AggregateTypePlatformTask  = "PlatformTask"
)

// Event type constants
const (
	EventTypeClientInvoiceCreated   = "ClientInvoiceCreated"
	EventTypeClientInvoiceIssued    = "ClientInvoiceIssued"
	EventTypeClientInvoiceDelivered = "ClientInvoiceDelivered"
	EventTypeDeliveryDispatched     = "DeliveryDispatched"
	EventTypeDeliverySent           = "DeliverySent"
	EventTypePlatformTaskCreated    = "PlatformTaskCreated"
	EventTypePlatformTaskCompleted  = "PlatformTaskCompleted"
)

// ClientInvoiceCreatedEvent is raised when a draft invoice is created
type ClientInvoiceCreatedEvent struct {
	shared.BaseDomainEvent
	InvoiceID             uuid.UUID       `json:"invoice_id"`
	BatchID               *uuid.UUID      `json:"batch_id"`
	ExternalInvoiceNumber string          `json:"external_invoice_number"`
	TotalAmount           decimal.Decimal `json:"total_amount"`
}

// NewClientInvoiceCreatedEvent creates a new ClientInvoiceCreatedEvent
func NewClientInvoiceCreatedEvent(invoice *ClientInvoice) *ClientInvoiceCreatedEvent {
	return &ClientInvoiceCreatedEvent{
		BaseDomainEvent:       shared.NewBaseDomainEvent(EventTypeClientInvoiceCreated, AggregateTypeClientInvoice, invoice.ID),
		InvoiceID:             invoice.ID,
		BatchID:               invoice.BatchID,
		ExternalInvoiceNumber: invoice.ExternalInvoiceNumber,
		TotalAmount:           invoice.TotalAmount,
	}
}

// EventType returns the event type name
func (e *ClientInvoiceCreatedEvent) EventType() string {
	return EventTypeClientInvoiceCreated
}

// ClientInvoiceIssuedEvent is raised when an invoice is formally issued
type ClientInvoiceIssuedEvent struct {
	shared.BaseDomainEvent
	InvoiceID             uuid.UUID  `json:"invoice_id"`
	ExternalInvoiceNumber string     `json:"external_invoice_number"`
	IssuedAt              *time.Time `json:"issued_at"`
}

// NewClientInvoiceIssuedEvent creates a new ClientInvoiceIssuedEvent
func NewClientInvoiceIssuedEvent(invoice *ClientInvoice) *ClientInvoiceIssuedEvent {
	return &ClientInvoiceIssuedEvent{
		BaseDomainEvent:       shared.NewBaseDomainEvent(EventTypeClientInvoiceIssued, AggregateTypeClientInvoice, invoice.ID),
		InvoiceID:             invoice.ID,
		ExternalInvoiceNumber: invoice.ExternalInvoiceNumber,
		IssuedAt:              invoice.IssuedAt,
	}
}

// EventType returns the event type name
func (e *ClientInvoiceIssuedEvent) EventType() string {
	return EventTypeClientInvoiceIssued
}

// ClientInvoiceDeliveredEvent is raised when the invoice reaches the client,
// whether by direct delivery or portal completion
type ClientInvoiceDeliveredEvent struct {
	shared.BaseDomainEvent
	InvoiceID uuid.UUID     `json:"invoice_id"`
	Status    InvoiceStatus `json:"status"`
}

// NewClientInvoiceDeliveredEvent creates a new ClientInvoiceDeliveredEvent
func NewClientInvoiceDeliveredEvent(invoice *ClientInvoice) *ClientInvoiceDeliveredEvent {
	return &ClientInvoiceDeliveredEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeClientInvoiceDelivered, AggregateTypeClientInvoice, invoice.ID),
		InvoiceID:       invoice.ID,
		Status:          invoice.Status,
	}
}

// EventType returns the event type name
func (e *ClientInvoiceDeliveredEvent) EventType() string {
	return EventTypeClientInvoiceDelivered
}

// DeliveryDispatchedEvent is raised when a delivery is created
type DeliveryDispatchedEvent struct {
	shared.BaseDomainEvent
	DeliveryID uuid.UUID    `json:"delivery_id"`
	InvoiceID  uuid.UUID    `json:"invoice_id"`
	Type       DeliveryType `json:"type"`
}

// NewDeliveryDispatchedEvent creates a new DeliveryDispatchedEvent
func NewDeliveryDispatchedEvent(delivery *Delivery) *DeliveryDispatchedEvent {
	return &DeliveryDispatchedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeDeliveryDispatched, AggregateTypeDelivery, delivery.ID),
		DeliveryID:      delivery.ID,
		InvoiceID:       delivery.InvoiceID,
		Type:            delivery.Type,
	}
}

// EventType returns the event type name
func (e *DeliveryDispatchedEvent) EventType() string {
	return EventTypeDeliveryDispatched
}

// DeliverySentEvent is raised when a delivery is confirmed sent
type DeliverySentEvent struct {
	shared.BaseDomainEvent
	DeliveryID uuid.UUID  `json:"delivery_id"`
	InvoiceID  uuid.UUID  `json:"invoice_id"`
	SentAt     *time.Time `json:"sent_at"`
	SentBy     string     `json:"sent_by"`
}

// NewDeliverySentEvent creates a new DeliverySentEvent
func NewDeliverySentEvent(delivery *Delivery) *DeliverySentEvent {
	return &DeliverySentEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeDeliverySent, AggregateTypeDelivery, delivery.ID),
		DeliveryID:      delivery.ID,
		InvoiceID:       delivery.InvoiceID,
		SentAt:          delivery.SentAt,
		SentBy:          delivery.SentBy,
	}
}

// EventType returns the event type name
func (e *DeliverySentEvent) EventType() string {
	return EventTypeDeliverySent
}

// PlatformTaskCreatedEvent is raised when a portal task is opened
type PlatformTaskCreatedEvent struct {
	shared.BaseDomainEvent
	TaskID       uuid.UUID  `json:"task_id"`
	InvoiceID    *uuid.UUID `json:"invoice_id"`
	PlatformName string     `json:"platform_name"`
	SlaDueAt     time.Time  `json:"sla_due_at"`
}

// NewPlatformTaskCreatedEvent creates a new PlatformTaskCreatedEvent
func NewPlatformTaskCreatedEvent(task *PlatformTask) *PlatformTaskCreatedEvent {
	return &PlatformTaskCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypePlatformTaskCreated, AggregateTypePlatformTask, task.ID),
		TaskID:          task.ID,
		InvoiceID:       task.InvoiceID,
		PlatformName:    task.PlatformName,
		SlaDueAt:        task.SlaDueAt,
	}
}

// EventType returns the event type name
func (e *PlatformTaskCreatedEvent) EventType() string {
	return EventTypePlatformTaskCreated
}

// PlatformTaskCompletedEvent is raised when a portal task is closed
type PlatformTaskCompletedEvent struct {
	shared.BaseDomainEvent
	TaskID      uuid.UUID  `json:"task_id"`
	InvoiceID   *uuid.UUID `json:"invoice_id"`
	CompletedAt *time.Time `json:"completed_at"`
}

// NewPlatformTaskCompletedEvent creates a new PlatformTaskCompletedEvent
func NewPlatformTaskCompletedEvent(task *PlatformTask) *PlatformTaskCompletedEvent {
	return &PlatformTaskCompletedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypePlatformTaskCompleted, AggregateTypePlatformTask, task.ID),
		TaskID:          task.ID,
		InvoiceID:       task.InvoiceID,
		CompletedAt:     task.CompletedAt,
	}
}

// EventType returns the event type name
func (e *PlatformTaskCompletedEvent) EventType() string {
	return EventTypePlatformTaskCompleted
}
