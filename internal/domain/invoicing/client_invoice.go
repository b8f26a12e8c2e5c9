package invoicing

import (
	"fmt"
	"time"

	"github.com/ginvoice/backend/internal/domain/shared"
	"github.com/ginvoice/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// InvoiceStatus represents the lifecycle status of a client invoice
type InvoiceStatus string

const (
	InvoiceStatusDraft             InvoiceStatus = "invoice_draft"
	InvoiceStatusReadyForSap       InvoiceStatus = "ready_for_sap"
	InvoiceStatusIssued            InvoiceStatus = "issued"
	InvoiceStatusDelivered         InvoiceStatus = "delivered"
	InvoiceStatusPlatformRequired  InvoiceStatus = "platform_required"
	InvoiceStatusPlatformCompleted InvoiceStatus = "platform_completed"
)

// IsValid checks if the status is a valid InvoiceStatus
func (s InvoiceStatus) IsValid() bool {
	switch s {
	case InvoiceStatusDraft, InvoiceStatusReadyForSap, InvoiceStatusIssued,
		InvoiceStatusDelivered, InvoiceStatusPlatformRequired, InvoiceStatusPlatformCompleted:
		return true
	}
	return false
}

// String returns the string representation of InvoiceStatus
func (s InvoiceStatus) String() string {
	return string(s)
}

// CanTransitionTo checks if the status can transition to the target status
func (s InvoiceStatus) CanTransitionTo(target InvoiceStatus) bool {
	switch s {
	case InvoiceStatusDraft:
		return target == InvoiceStatusReadyForSap
	case InvoiceStatusReadyForSap:
		return target == InvoiceStatusIssued
	case InvoiceStatusIssued:
		return target == InvoiceStatusDelivered || target == InvoiceStatusPlatformRequired
	case InvoiceStatusPlatformRequired:
		return target == InvoiceStatusPlatformCompleted
	case InvoiceStatusDelivered, InvoiceStatusPlatformCompleted:
		return false // terminal
	}
	return false
}

// IsIssued reports whether the invoice has been issued to the client
func (s InvoiceStatus) IsIssued() bool {
	return s == InvoiceStatusIssued || s == InvoiceStatusDelivered ||
		s == InvoiceStatusPlatformRequired || s == InvoiceStatusPlatformCompleted
}

// ClientInvoice is the outbound invoice to the firm's client. It is
// usually materialized from an approved billing batch, but manual and
// pro-bono invoices exist outside the batch flow, so the batch link is
// nullable. The external number and date come from the firm's numbering
// circle and are stored verbatim.
type ClientInvoice struct {
	shared.BaseAggregateRoot
	BatchID               *uuid.UUID
	JobID                 uuid.UUID
	ExternalInvoiceNumber string
	ExternalInvoiceDate   time.Time
	Status                InvoiceStatus
	Currency              valueobject.Currency
	TotalAmount           decimal.Decimal
	DocRef                string
	IssuedAt              *time.Time
}

// NewClientInvoice creates a draft invoice. batchID is nil for manual and
// pro-bono invoices.
func NewClientInvoice(batchID *uuid.UUID, jobID uuid.UUID, externalInvoiceNumber string, externalInvoiceDate time.Time, amount valueobject.Money) (*ClientInvoice, error) {
	if jobID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_JOB", "Job reference is required")
	}
	if externalInvoiceNumber == "" {
		return nil, shared.NewDomainError("INVALID_INVOICE_NUMBER", "External invoice number cannot be empty")
	}
	if externalInvoiceDate.IsZero() {
		return nil, shared.NewDomainError("INVALID_INVOICE_DATE", "External invoice date is required")
	}
	if !amount.Currency().IsValid() {
		return nil, shared.NewDomainError("INVALID_CURRENCY", fmt.Sprintf("Unsupported currency %q", amount.Currency()))
	}
	if amount.IsNegative() {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Invoice amount cannot be negative")
	}

	invoice := &ClientInvoice{
		BaseAggregateRoot:     shared.NewBaseAggregateRoot(),
		BatchID:               batchID,
		JobID:                 jobID,
		ExternalInvoiceNumber: externalInvoiceNumber,
		ExternalInvoiceDate:   externalInvoiceDate,
		Status:                InvoiceStatusDraft,
		Currency:              amount.Currency(),
		TotalAmount:           amount.Amount(),
	}

	invoice.AddDomainEvent(NewClientInvoiceCreatedEvent(invoice))

	return invoice, nil
}

// IsManual reports whether the invoice was raised outside the batch flow
func (i *ClientInvoice) IsManual() bool {
	return i.BatchID == nil
}

// MarkReadyForSap queues the draft for the accounting interface
func (i *ClientInvoice) MarkReadyForSap() error {
	if !i.Status.CanTransitionTo(InvoiceStatusReadyForSap) {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot ready invoice in %s status", i.Status))
	}
	i.Status = InvoiceStatusReadyForSap
	i.UpdatedAt = time.Now()
	return nil
}

// MarkIssued records the formal issuance of the invoice
func (i *ClientInvoice) MarkIssued() error {
	if !i.Status.CanTransitionTo(InvoiceStatusIssued) {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot issue invoice in %s status", i.Status))
	}
	now := time.Now()
	i.Status = InvoiceStatusIssued
	i.IssuedAt = &now
	i.UpdatedAt = now

	i.AddDomainEvent(NewClientInvoiceIssuedEvent(i))

	return nil
}

// MarkDelivered closes the invoice after direct delivery to the client
func (i *ClientInvoice) MarkDelivered() error {
	if !i.Status.CanTransitionTo(InvoiceStatusDelivered) {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot deliver invoice in %s status", i.Status))
	}
	i.Status = InvoiceStatusDelivered
	i.UpdatedAt = time.Now()

	i.AddDomainEvent(NewClientInvoiceDeliveredEvent(i))

	return nil
}

// RequirePlatform routes the issued invoice through a client portal
func (i *ClientInvoice) RequirePlatform() error {
	if !i.Status.CanTransitionTo(InvoiceStatusPlatformRequired) {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot require platform submission for invoice in %s status", i.Status))
	}
	i.Status = InvoiceStatusPlatformRequired
	i.UpdatedAt = time.Now()
	return nil
}

// CompletePlatform closes the invoice after portal submission
func (i *ClientInvoice) CompletePlatform() error {
	if !i.Status.CanTransitionTo(InvoiceStatusPlatformCompleted) {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot complete platform submission for invoice in %s status", i.Status))
	}
	i.Status = InvoiceStatusPlatformCompleted
	i.UpdatedAt = time.Now()

	i.AddDomainEvent(NewClientInvoiceDeliveredEvent(i))

	return nil
}

// AttachDocument stores the opaque storage reference of the invoice PDF
func (i *ClientInvoice) AttachDocument(docRef string) error {
	if docRef == "" {
		return shared.NewDomainError("INVALID_DOCUMENT", "Document reference cannot be empty")
	}
	i.DocRef = docRef
	i.UpdatedAt = time.Now()
	return nil
}

// HasDocument reports whether an invoice document is attached
func (i *ClientInvoice) HasDocument() bool {
	return i.DocRef != ""
}

// TotalAmountMoney returns the invoice total as Money
func (i *ClientInvoice) TotalAmountMoney() valueobject.Money {
	m, _ := valueobject.NewMoney(i.TotalAmount, i.Currency)
	return m
}
