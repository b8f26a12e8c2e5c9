package billing

import (
	"time"

	"github.com/ginvoice/backend/internal/domain/billing"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ==================== Intake Item DTOs ====================

// CreateIntakeItemRequest represents a request to register a vendor invoice
// or official fee
type CreateIntakeItemRequest struct {
	Type          string          `json:"type" binding:"required"`
	JobID         uuid.UUID       `json:"job_id" binding:"required"`
	VendorID      *uuid.UUID      `json:"vendor_id"`
	InvoiceNumber string          `json:"invoice_number" binding:"required,min=1,max=100"`
	Amount        decimal.Decimal `json:"amount" binding:"required"`
	Currency      string          `json:"currency"`
	Concept       string          `json:"concept" binding:"required,min=1,max=2000"`
	DocRef        string          `json:"doc_ref"`
}

// RequestInfoRequest represents a reviewer's request for more information
type RequestInfoRequest struct {
	Note string `json:"note" binding:"required,min=1,max=2000"`
}

// RejectIntakeItemRequest represents a reviewer's rejection
type RejectIntakeItemRequest struct {
	Reason string `json:"reason" binding:"required,min=1,max=2000"`
}

// ResubmitAfterRejectionRequest creates the successor of a rejected item
type ResubmitAfterRejectionRequest struct {
	Concept string          `json:"concept"`
	Amount  decimal.Decimal `json:"amount"`
	DocRef  string          `json:"doc_ref"`
}

// AttachDocumentRequest carries the storage reference of a source document
type AttachDocumentRequest struct {
	DocRef string `json:"doc_ref" binding:"required,min=1,max=500"`
}

// IntakeItemResponse represents an intake item in API responses
type IntakeItemResponse struct {
	ID                       uuid.UUID       `json:"id"`
	Type                     string          `json:"type"`
	JobID                    uuid.UUID       `json:"job_id"`
	VendorID                 *uuid.UUID      `json:"vendor_id,omitempty"`
	InvoiceNumber            string          `json:"invoice_number"`
	Amount                   decimal.Decimal `json:"amount"`
	Currency                 string          `json:"currency"`
	Concept                  string          `json:"concept"`
	Status                   string          `json:"status"`
	UttaiStatusSnapshot      string          `json:"uttai_status_snapshot"`
	VendorComplianceSnapshot string          `json:"vendor_compliance_snapshot"`
	DocRef                   string          `json:"doc_ref,omitempty"`
	SubmittedAt              *time.Time      `json:"submitted_at,omitempty"`
	ApprovedAt               *time.Time      `json:"approved_at,omitempty"`
	ApprovedBy               string          `json:"approved_by,omitempty"`
	RejectedAt               *time.Time      `json:"rejected_at,omitempty"`
	RejectionReason          string          `json:"rejection_reason,omitempty"`
	NeedsInfoNote            string          `json:"needs_info_note,omitempty"`
	BilledAt                 *time.Time      `json:"billed_at,omitempty"`
	ClientInvoiceID          *uuid.UUID      `json:"client_invoice_id,omitempty"`
	Version                  int             `json:"version"`
	CreatedAt                time.Time       `json:"created_at"`
	UpdatedAt                time.Time       `json:"updated_at"`
}

// ToIntakeItemResponse converts a domain intake item to a response DTO
func ToIntakeItemResponse(item *billing.IntakeItem) IntakeItemResponse {
	return IntakeItemResponse{
		ID:                       item.ID,
		Type:                     item.Type.String(),
		JobID:                    item.JobID,
		VendorID:                 item.VendorID,
		InvoiceNumber:            item.InvoiceNumber,
		Amount:                   item.Amount,
		Currency:                 string(item.Currency),
		Concept:                  item.Concept,
		Status:                   item.Status.String(),
		UttaiStatusSnapshot:      item.UttaiStatusSnapshot.String(),
		VendorComplianceSnapshot: item.VendorComplianceSnapshot.String(),
		DocRef:                   item.DocRef,
		SubmittedAt:              item.SubmittedAt,
		ApprovedAt:               item.ApprovedAt,
		ApprovedBy:               item.ApprovedBy,
		RejectedAt:               item.RejectedAt,
		RejectionReason:          item.RejectionReason,
		NeedsInfoNote:            item.NeedsInfoNote,
		BilledAt:                 item.BilledAt,
		ClientInvoiceID:          item.ClientInvoiceID,
		Version:                  item.Version,
		CreatedAt:                item.CreatedAt,
		UpdatedAt:                item.UpdatedAt,
	}
}

// ==================== Accounting Posting DTOs ====================

// PostIntakeItemRequest represents a request to record the ledger posting
type PostIntakeItemRequest struct {
	LedgerReference string `json:"ledger_reference" binding:"required,min=1,max=100"`
}

// AccountingPostingResponse represents a posting in API responses
type AccountingPostingResponse struct {
	ID              uuid.UUID `json:"id"`
	IntakeItemID    uuid.UUID `json:"intake_item_id"`
	LedgerReference string    `json:"ledger_reference"`
	PostedBy        string    `json:"posted_by"`
	PostedAt        time.Time `json:"posted_at"`
}

// ToAccountingPostingResponse converts a domain posting to a response DTO
func ToAccountingPostingResponse(posting *billing.AccountingPosting) AccountingPostingResponse {
	return AccountingPostingResponse{
		ID:              posting.ID,
		IntakeItemID:    posting.IntakeItemID,
		LedgerReference: posting.LedgerReference,
		PostedBy:        posting.PostedBy,
		PostedAt:        posting.PostedAt,
	}
}

// ==================== Billing Batch DTOs ====================

// CreateBatchRequest represents a request to open a batch for a job
type CreateBatchRequest struct {
	JobID    uuid.UUID `json:"job_id" binding:"required"`
	Currency string    `json:"currency"`
}

// AddToBatchRequest represents a request to add an intake item to a batch
type AddToBatchRequest struct {
	IntakeItemID uuid.UUID `json:"intake_item_id" binding:"required"`
}

// SetDecisionRequest represents a request to record a member's disposition
type SetDecisionRequest struct {
	Decision string `json:"decision" binding:"required"`
}

// BatchItemResponse represents a batch member in API responses
type BatchItemResponse struct {
	ID           uuid.UUID       `json:"id"`
	IntakeItemID uuid.UUID       `json:"intake_item_id"`
	ItemType     string          `json:"item_type"`
	Amount       decimal.Decimal `json:"amount"`
	Decision     *string         `json:"decision"`
}

// BillingBatchResponse represents a batch in API responses
type BillingBatchResponse struct {
	ID              uuid.UUID           `json:"id"`
	JobID           uuid.UUID           `json:"job_id"`
	Status          string              `json:"status"`
	Currency        string              `json:"currency"`
	TotalAmount     decimal.Decimal     `json:"total_amount"`
	TotalFees       decimal.Decimal     `json:"total_fees"`
	Items           []BatchItemResponse `json:"items"`
	ClientInvoiceID *uuid.UUID          `json:"client_invoice_id,omitempty"`
	Version         int                 `json:"version"`
	CreatedAt       time.Time           `json:"created_at"`
	UpdatedAt       time.Time           `json:"updated_at"`
}

// ToBillingBatchResponse converts a domain batch to a response DTO
func ToBillingBatchResponse(batch *billing.BillingBatch) BillingBatchResponse {
	items := make([]BatchItemResponse, 0, len(batch.Items))
	for i := range batch.Items {
		member := &batch.Items[i]
		var decision *string
		if member.Decision != nil {
			d := member.Decision.String()
			decision = &d
		}
		items = append(items, BatchItemResponse{
			ID:           member.ID,
			IntakeItemID: member.IntakeItemID,
			ItemType:     member.ItemType.String(),
			Amount:       member.Amount,
			Decision:     decision,
		})
	}
	return BillingBatchResponse{
		ID:              batch.ID,
		JobID:           batch.JobID,
		Status:          batch.Status.String(),
		Currency:        string(batch.Currency),
		TotalAmount:     batch.TotalAmount,
		TotalFees:       batch.TotalFees,
		Items:           items,
		ClientInvoiceID: batch.ClientInvoiceID,
		Version:         batch.Version,
		CreatedAt:       batch.CreatedAt,
		UpdatedAt:       batch.UpdatedAt,
	}
}
