package billing

import (
	"fmt"
	"time"

	"github.com/ginvoice/backend/internal/domain/compliance"
	"github.com/ginvoice/backend/internal/domain/shared"
	"github.com/ginvoice/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// IntakeType distinguishes vendor invoices from official government fees
type IntakeType string

const (
	IntakeTypeVendorInvoice IntakeType = "vendor_invoice"
	IntakeTypeOfficialFee   IntakeType = "official_fee"
)

// IsValid checks if the type is a valid IntakeType
func (t IntakeType) IsValid() bool {
	switch t {
	case IntakeTypeVendorInvoice, IntakeTypeOfficialFee:
		return true
	}
	return false
}

// String returns the string representation of IntakeType
func (t IntakeType) String() string {
	return string(t)
}

// IntakeStatus represents the lifecycle status of an intake item
type IntakeStatus string

const (
	IntakeStatusDraft            IntakeStatus = "draft"
	IntakeStatusSubmitted        IntakeStatus = "submitted"
	IntakeStatusNeedsInfo        IntakeStatus = "needs_info"
	IntakeStatusPendingApproval  IntakeStatus = "pending_approval"
	IntakeStatusApproved         IntakeStatus = "approved"
	IntakeStatusRejected         IntakeStatus = "rejected"
	IntakeStatusSentToAccounting IntakeStatus = "sent_to_accounting"
	IntakeStatusPosted           IntakeStatus = "posted"
	IntakeStatusReadyToBill      IntakeStatus = "ready_to_bill"
	IntakeStatusBilled           IntakeStatus = "billed"
	IntakeStatusArchived         IntakeStatus = "archived"
)

// IsValid checks if the status is a valid IntakeStatus
func (s IntakeStatus) IsValid() bool {
	switch s {
	case IntakeStatusDraft, IntakeStatusSubmitted, IntakeStatusNeedsInfo,
		IntakeStatusPendingApproval, IntakeStatusApproved, IntakeStatusRejected,
		IntakeStatusSentToAccounting, IntakeStatusPosted, IntakeStatusReadyToBill,
		IntakeStatusBilled, IntakeStatusArchived:
		return true
	}
	return false
}

// String returns the string representation of IntakeStatus
func (s IntakeStatus) String() string {
	return string(s)
}

// CanTransitionTo checks if the status can transition to the target status
func (s IntakeStatus) CanTransitionTo(target IntakeStatus) bool {
	switch s {
	case IntakeStatusDraft:
		return target == IntakeStatusSubmitted
	case IntakeStatusSubmitted:
		return target == IntakeStatusNeedsInfo || target == IntakeStatusPendingApproval
	case IntakeStatusNeedsInfo:
		return target == IntakeStatusSubmitted
	case IntakeStatusPendingApproval:
		return target == IntakeStatusApproved || target == IntakeStatusRejected
	case IntakeStatusApproved:
		return target == IntakeStatusSentToAccounting
	case IntakeStatusSentToAccounting:
		return target == IntakeStatusPosted
	case IntakeStatusPosted:
		return target == IntakeStatusReadyToBill || target == IntakeStatusBilled
	case IntakeStatusReadyToBill:
		return target == IntakeStatusBilled
	case IntakeStatusBilled:
		return target == IntakeStatusArchived
	case IntakeStatusRejected, IntakeStatusArchived:
		return false // terminal
	}
	return false
}

// IsBillable reports whether the item may join a billing batch
func (s IntakeStatus) IsBillable() bool {
	return s == IntakeStatusPosted || s == IntakeStatusReadyToBill
}

// IsTerminal reports whether no further transition is possible
func (s IntakeStatus) IsTerminal() bool {
	return s == IntakeStatusRejected || s == IntakeStatusArchived
}

// IntakeItem is the core work unit of the pipeline: one vendor invoice or
// official fee moving from intake to billing. The two snapshot fields are
// copied from the job and vendor at creation and are read-only for the
// lifetime of the record; a later compliance change never rewrites them.
type IntakeItem struct {
	shared.BaseAggregateRoot
	Type          IntakeType
	JobID         uuid.UUID
	VendorID      *uuid.UUID
	InvoiceNumber string
	Amount        decimal.Decimal
	Currency      valueobject.Currency
	Concept       string
	Status        IntakeStatus

	// Point-in-time compliance snapshot, set once at creation
	UttaiStatusSnapshot      compliance.ClearanceStatus
	VendorComplianceSnapshot compliance.VendorComplianceStatus

	// DocRef is the opaque storage reference of the source document
	DocRef string

	SubmittedAt     *time.Time
	ApprovedAt      *time.Time
	ApprovedBy      string
	RejectedAt      *time.Time
	RejectionReason string
	NeedsInfoNote   string
	BilledAt        *time.Time
	// ClientInvoiceID is set when the item is billed through an issued invoice
	ClientInvoiceID *uuid.UUID
}

// NewIntakeItem creates a new intake item in draft status, freezing the
// compliance snapshot passed by the caller
func NewIntakeItem(itemType IntakeType, jobID uuid.UUID, vendorID *uuid.UUID, invoiceNumber string, amount valueobject.Money, concept string, snapshot compliance.Snapshot) (*IntakeItem, error) {
	if !itemType.IsValid() {
		return nil, shared.NewDomainError("INVALID_TYPE", fmt.Sprintf("Unknown intake type %q", itemType))
	}
	if jobID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_JOB", "Job reference is required")
	}
	if itemType == IntakeTypeVendorInvoice && vendorID == nil {
		return nil, shared.NewDomainError("INVALID_VENDOR", "Vendor reference is required for vendor invoices")
	}
	if invoiceNumber == "" {
		return nil, shared.NewDomainError("INVALID_INVOICE_NUMBER", "Invoice number cannot be empty")
	}
	if !amount.IsPositive() {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Amount must be positive")
	}
	if concept == "" {
		return nil, shared.NewDomainError("INVALID_CONCEPT", "Concept text cannot be empty")
	}
	if !snapshot.UttaiStatus.IsValid() || !snapshot.VendorCompliance.IsValid() {
		return nil, shared.NewDomainError("INVALID_SNAPSHOT", "Compliance snapshot is incomplete")
	}

	item := &IntakeItem{
		BaseAggregateRoot:        shared.NewBaseAggregateRoot(),
		Type:                     itemType,
		JobID:                    jobID,
		VendorID:                 vendorID,
		InvoiceNumber:            invoiceNumber,
		Amount:                   amount.Amount(),
		Currency:                 amount.Currency(),
		Concept:                  concept,
		Status:                   IntakeStatusDraft,
		UttaiStatusSnapshot:      snapshot.UttaiStatus,
		VendorComplianceSnapshot: snapshot.VendorCompliance,
	}

	item.AddDomainEvent(NewIntakeItemCreatedEvent(item))

	return item, nil
}

// SuccessorInvoiceNumber builds the invoice number for resubmitting a
// rejected item as a brand-new record: "INV-42" -> "INV-42-R1".
func SuccessorInvoiceNumber(original string, attempt int) string {
	return fmt.Sprintf("%s-R%d", original, attempt)
}

// transition applies a guarded status change
func (i *IntakeItem) transition(target IntakeStatus, action string) error {
	if !i.Status.CanTransitionTo(target) {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot %s: item is in %s status", action, i.Status))
	}
	i.Status = target
	i.UpdatedAt = time.Now()
	return nil
}

// Submit submits the draft item for review
func (i *IntakeItem) Submit() error {
	if err := i.transition(IntakeStatusSubmitted, "submit"); err != nil {
		return err
	}
	now := time.Now()
	i.SubmittedAt = &now

	i.AddDomainEvent(NewIntakeItemSubmittedEvent(i))

	return nil
}

// RequestInfo sends a submitted item back to the clerk with a note
func (i *IntakeItem) RequestInfo(note string) error {
	if note == "" {
		return shared.NewDomainError("INVALID_NOTE", "A note is required when requesting more information")
	}
	if err := i.transition(IntakeStatusNeedsInfo, "request information on"); err != nil {
		return err
	}
	i.NeedsInfoNote = note
	return nil
}

// Resubmit returns a needs_info item to the submitted state
func (i *IntakeItem) Resubmit() error {
	if err := i.transition(IntakeStatusSubmitted, "resubmit"); err != nil {
		return err
	}
	now := time.Now()
	i.SubmittedAt = &now
	i.NeedsInfoNote = ""
	return nil
}

// SendForApproval moves a submitted item into partner review
func (i *IntakeItem) SendForApproval() error {
	return i.transition(IntakeStatusPendingApproval, "send for approval")
}

// Approve approves the item for accounting
func (i *IntakeItem) Approve(approvedBy string) error {
	if approvedBy == "" {
		return shared.NewDomainError("INVALID_APPROVER", "Approver is required")
	}
	if err := i.transition(IntakeStatusApproved, "approve"); err != nil {
		return err
	}
	now := time.Now()
	i.ApprovedAt = &now
	i.ApprovedBy = approvedBy

	i.AddDomainEvent(NewIntakeItemApprovedEvent(i))

	return nil
}

// Reject rejects the item. Rejection is terminal and immutable history;
// resubmission happens as a new item with a successor invoice number.
func (i *IntakeItem) Reject(reason string) error {
	if reason == "" {
		return shared.NewDomainError("INVALID_REASON", "Rejection reason is required")
	}
	if err := i.transition(IntakeStatusRejected, "reject"); err != nil {
		return err
	}
	now := time.Now()
	i.RejectedAt = &now
	i.RejectionReason = reason

	i.AddDomainEvent(NewIntakeItemRejectedEvent(i))

	return nil
}

// SendToAccounting queues the approved item for ledger posting
func (i *IntakeItem) SendToAccounting() error {
	return i.transition(IntakeStatusSentToAccounting, "send to accounting")
}

// MarkPosted records that the ledger posting exists. Callers must create
// the AccountingPosting in the same transaction; the posting recorder is the
// only code path that may call this.
func (i *IntakeItem) MarkPosted() error {
	if err := i.transition(IntakeStatusPosted, "mark as posted"); err != nil {
		return err
	}

	i.AddDomainEvent(NewIntakeItemPostedEvent(i))

	return nil
}

// MarkReadyToBill flags a posted item as explicitly ready for batching.
// Posted items are billable either way; this is a bookkeeping step.
func (i *IntakeItem) MarkReadyToBill() error {
	return i.transition(IntakeStatusReadyToBill, "mark ready to bill")
}

// MarkBilled ties the item to the issued client invoice. Only reachable
// through invoice issuance for emit-decision batch members.
func (i *IntakeItem) MarkBilled(clientInvoiceID uuid.UUID) error {
	if clientInvoiceID == uuid.Nil {
		return shared.NewDomainError("INVALID_INVOICE", "Client invoice reference is required")
	}
	if err := i.transition(IntakeStatusBilled, "bill"); err != nil {
		return err
	}
	now := time.Now()
	i.BilledAt = &now
	i.ClientInvoiceID = &clientInvoiceID

	i.AddDomainEvent(NewIntakeItemBilledEvent(i))

	return nil
}

// Archive closes out a billed item
func (i *IntakeItem) Archive() error {
	return i.transition(IntakeStatusArchived, "archive")
}

// AttachDocument stores the opaque storage reference of the source document.
// The reference is never interpreted by the pipeline.
func (i *IntakeItem) AttachDocument(docRef string) error {
	if docRef == "" {
		return shared.NewDomainError("INVALID_DOCUMENT", "Document reference cannot be empty")
	}
	if i.Status.IsTerminal() {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot attach document: item is in %s status", i.Status))
	}
	i.DocRef = docRef
	i.UpdatedAt = time.Now()
	return nil
}

// AmountMoney returns the amount as a Money value object
func (i *IntakeItem) AmountMoney() valueobject.Money {
	m, _ := valueobject.NewMoney(i.Amount, i.Currency)
	return m
}

// IsBillable reports whether the item may join a billing batch
func (i *IntakeItem) IsBillable() bool {
	return i.Status.IsBillable()
}
