package invoicing

import (
	"time"

	"github.com/ginvoice/backend/internal/domain/invoicing"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ==================== Client Invoice DTOs ====================

// IssueInvoiceRequest represents a request to issue a client invoice.
// BatchID is nil for manual and pro-bono invoices; those must carry their
// own job and amount.
type IssueInvoiceRequest struct {
	BatchID               *uuid.UUID      `json:"batch_id"`
	JobID                 *uuid.UUID      `json:"job_id"`
	ExternalInvoiceNumber string          `json:"external_invoice_number" binding:"required,min=1,max=100"`
	ExternalInvoiceDate   time.Time       `json:"external_invoice_date" binding:"required"`
	Amount                decimal.Decimal `json:"amount"`
	Currency              string          `json:"currency"`
}

// ClientInvoiceResponse represents a client invoice in API responses
type ClientInvoiceResponse struct {
	ID                    uuid.UUID       `json:"id"`
	BatchID               *uuid.UUID      `json:"batch_id,omitempty"`
	JobID                 uuid.UUID       `json:"job_id"`
	ExternalInvoiceNumber string          `json:"external_invoice_number"`
	ExternalInvoiceDate   time.Time       `json:"external_invoice_date"`
	Status                string          `json:"status"`
	Currency              string          `json:"currency"`
	TotalAmount           decimal.Decimal `json:"total_amount"`
	DocRef                string          `json:"doc_ref,omitempty"`
	IssuedAt              *time.Time      `json:"issued_at,omitempty"`
	Version               int             `json:"version"`
	CreatedAt             time.Time       `json:"created_at"`
	UpdatedAt             time.Time       `json:"updated_at"`
}

// ToClientInvoiceResponse converts a domain invoice to a response DTO
func ToClientInvoiceResponse(invoice *invoicing.ClientInvoice) ClientInvoiceResponse {
	return ClientInvoiceResponse{
		ID:                    invoice.ID,
		BatchID:               invoice.BatchID,
		JobID:                 invoice.JobID,
		ExternalInvoiceNumber: invoice.ExternalInvoiceNumber,
		ExternalInvoiceDate:   invoice.ExternalInvoiceDate,
		Status:                invoice.Status.String(),
		Currency:              string(invoice.Currency),
		TotalAmount:           invoice.TotalAmount,
		DocRef:                invoice.DocRef,
		IssuedAt:              invoice.IssuedAt,
		Version:               invoice.Version,
		CreatedAt:             invoice.CreatedAt,
		UpdatedAt:             invoice.UpdatedAt,
	}
}

// ==================== Delivery DTOs ====================

// DispatchDeliveryRequest represents a request to create a delivery
type DispatchDeliveryRequest struct {
	Type       string   `json:"type" binding:"required"`
	Recipients []string `json:"recipients"`
}

// MarkSentRequest represents a request to confirm a delivery
type MarkSentRequest struct {
	SentAt time.Time `json:"sent_at" binding:"required"`
}

// DeliveryResponse represents a delivery in API responses
type DeliveryResponse struct {
	ID         uuid.UUID  `json:"id"`
	InvoiceID  uuid.UUID  `json:"invoice_id"`
	Type       string     `json:"type"`
	Recipients []string   `json:"recipients"`
	Status     string     `json:"status"`
	SentAt     *time.Time `json:"sent_at,omitempty"`
	SentBy     string     `json:"sent_by,omitempty"`
	Version    int        `json:"version"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

// ToDeliveryResponse converts a domain delivery to a response DTO
func ToDeliveryResponse(delivery *invoicing.Delivery) DeliveryResponse {
	return DeliveryResponse{
		ID:         delivery.ID,
		InvoiceID:  delivery.InvoiceID,
		Type:       delivery.Type.String(),
		Recipients: delivery.Recipients,
		Status:     delivery.Status.String(),
		SentAt:     delivery.SentAt,
		SentBy:     delivery.SentBy,
		Version:    delivery.Version,
		CreatedAt:  delivery.CreatedAt,
		UpdatedAt:  delivery.UpdatedAt,
	}
}

// ==================== Platform Task DTOs ====================

// CreatePlatformTaskRequest represents a request to open a portal task
type CreatePlatformTaskRequest struct {
	InvoiceID    *uuid.UUID `json:"invoice_id"`
	PlatformName string     `json:"platform_name" binding:"required,min=1,max=200"`
	SlaDueAt     time.Time  `json:"sla_due_at" binding:"required"`
}

// BlockPlatformTaskRequest represents a request to block a task
type BlockPlatformTaskRequest struct {
	Note string `json:"note" binding:"required,min=1,max=2000"`
}

// CompletePlatformTaskRequest represents a request to complete a task
type CompletePlatformTaskRequest struct {
	CompletedAt    time.Time `json:"completed_at" binding:"required"`
	EvidenceDocRef string    `json:"evidence_doc_ref"`
}

// PlatformTaskResponse represents a platform task in API responses
type PlatformTaskResponse struct {
	ID             uuid.UUID  `json:"id"`
	InvoiceID      *uuid.UUID `json:"invoice_id,omitempty"`
	PlatformName   string     `json:"platform_name"`
	SlaDueAt       time.Time  `json:"sla_due_at"`
	Status         string     `json:"status"`
	Overdue        bool       `json:"overdue"`
	Notes          string     `json:"notes,omitempty"`
	CompletedAt    *time.Time `json:"completed_at,omitempty"`
	EvidenceDocRef string     `json:"evidence_doc_ref,omitempty"`
	Version        int        `json:"version"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

// ToPlatformTaskResponse converts a domain task to a response DTO. Overdue
// is derived against now at conversion time, never stored.
func ToPlatformTaskResponse(task *invoicing.PlatformTask, now time.Time) PlatformTaskResponse {
	return PlatformTaskResponse{
		ID:             task.ID,
		InvoiceID:      task.InvoiceID,
		PlatformName:   task.PlatformName,
		SlaDueAt:       task.SlaDueAt,
		Status:         task.Status.String(),
		Overdue:        task.IsOverdue(now),
		Notes:          task.Notes,
		CompletedAt:    task.CompletedAt,
		EvidenceDocRef: task.EvidenceDocRef,
		Version:        task.Version,
		CreatedAt:      task.CreatedAt,
		UpdatedAt:      task.UpdatedAt,
	}
}
