package billing

import (
	"fmt"
	"time"

	"github.com/ginvoice/backend/internal/domain/shared"
	"github.com/ginvoice/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// BatchDecision is the per-item disposition inside a billing batch.
// An item without a decision is awaiting partner review.
type BatchDecision string

const (
	DecisionEmit     BatchDecision = "emit"
	DecisionTransfer BatchDecision = "transfer"
	DecisionDiscard  BatchDecision = "discard"
)

// IsValid checks if the decision is a valid BatchDecision
func (d BatchDecision) IsValid() bool {
	switch d {
	case DecisionEmit, DecisionTransfer, DecisionDiscard:
		return true
	}
	return false
}

// String returns the string representation of BatchDecision
func (d BatchDecision) String() string {
	return string(d)
}

// BatchStatus represents the lifecycle status of a billing batch
type BatchStatus string

const (
	BatchStatusPendingPartnerApproval BatchStatus = "pending_partner_approval"
	BatchStatusReadyForSap            BatchStatus = "ready_for_sap"
	BatchStatusInvoiceDraft           BatchStatus = "invoice_draft"
	BatchStatusIssued                 BatchStatus = "issued"
	BatchStatusDelivered              BatchStatus = "delivered"
	BatchStatusPlatformRequired       BatchStatus = "platform_required"
	BatchStatusPlatformCompleted      BatchStatus = "platform_completed"
)

// IsValid checks if the status is a valid BatchStatus
func (s BatchStatus) IsValid() bool {
	switch s {
	case BatchStatusPendingPartnerApproval, BatchStatusReadyForSap,
		BatchStatusInvoiceDraft, BatchStatusIssued, BatchStatusDelivered,
		BatchStatusPlatformRequired, BatchStatusPlatformCompleted:
		return true
	}
	return false
}

// String returns the string representation of BatchStatus
func (s BatchStatus) String() string {
	return string(s)
}

// CanTransitionTo checks if the status can transition to the target status
func (s BatchStatus) CanTransitionTo(target BatchStatus) bool {
	switch s {
	case BatchStatusPendingPartnerApproval:
		return target == BatchStatusReadyForSap
	case BatchStatusReadyForSap:
		return target == BatchStatusInvoiceDraft
	case BatchStatusInvoiceDraft:
		return target == BatchStatusIssued
	case BatchStatusIssued:
		return target == BatchStatusDelivered || target == BatchStatusPlatformRequired
	case BatchStatusPlatformRequired:
		return target == BatchStatusPlatformCompleted
	case BatchStatusDelivered, BatchStatusPlatformCompleted:
		return false // terminal
	}
	return false
}

// IsPreIssuance reports whether membership and decisions may still change
func (s BatchStatus) IsPreIssuance() bool {
	return s == BatchStatusPendingPartnerApproval ||
		s == BatchStatusReadyForSap ||
		s == BatchStatusInvoiceDraft
}

// BillingBatchItem is the join row between a batch and an intake item. The
// amount and type are copied from the item at membership time so total
// recomputation is local to the aggregate.
type BillingBatchItem struct {
	ID           uuid.UUID
	BatchID      uuid.UUID
	IntakeItemID uuid.UUID
	ItemType     IntakeType
	Amount       decimal.Decimal
	Decision     *BatchDecision
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// IsEmit reports whether the item counts toward the batch totals
func (bi *BillingBatchItem) IsEmit() bool {
	return bi.Decision != nil && *bi.Decision == DecisionEmit
}

// IsUndecided reports whether the item still awaits partner review
func (bi *BillingBatchItem) IsUndecided() bool {
	return bi.Decision == nil
}

// BillingBatch groups billable intake items of one job for consolidation
// into a single client invoice. Its totals are derived, never authoritative:
// they always equal the emit-set sum and are recomputed in the same mutation
// that changes membership or decisions.
type BillingBatch struct {
	shared.BaseAggregateRoot
	JobID           uuid.UUID
	Status          BatchStatus
	Currency        valueobject.Currency
	TotalAmount     decimal.Decimal
	TotalFees       decimal.Decimal
	Items           []BillingBatchItem
	ClientInvoiceID *uuid.UUID
}

// NewBillingBatch creates an empty batch for a job awaiting partner review
func NewBillingBatch(jobID uuid.UUID, currency valueobject.Currency) (*BillingBatch, error) {
	if jobID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_JOB", "Job reference is required")
	}
	if !currency.IsValid() {
		return nil, shared.NewDomainError("INVALID_CURRENCY", fmt.Sprintf("Unsupported currency %q", currency))
	}

	batch := &BillingBatch{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		JobID:             jobID,
		Status:            BatchStatusPendingPartnerApproval,
		Currency:          currency,
		TotalAmount:       decimal.Zero,
		TotalFees:         decimal.Zero,
		Items:             make([]BillingBatchItem, 0),
	}

	batch.AddDomainEvent(NewBillingBatchCreatedEvent(batch))

	return batch, nil
}

// AddItem adds a billable intake item of the batch's job as an undecided
// member and recomputes the totals
func (b *BillingBatch) AddItem(item *IntakeItem) (*BillingBatchItem, error) {
	if !b.Status.IsPreIssuance() {
		return nil, shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot add items: batch is in %s status", b.Status))
	}
	if !item.IsBillable() {
		return nil, shared.NewDomainError("ITEM_NOT_BILLABLE", fmt.Sprintf("Cannot add item %s: status %s is not billable", item.InvoiceNumber, item.Status))
	}
	if item.JobID != b.JobID {
		return nil, shared.NewDomainError("JOB_MISMATCH", fmt.Sprintf("Cannot add item %s: it belongs to a different job", item.InvoiceNumber))
	}
	if item.Currency != b.Currency {
		return nil, shared.NewDomainError("CURRENCY_MISMATCH", fmt.Sprintf("Cannot add item %s: currency %s does not match batch currency %s", item.InvoiceNumber, item.Currency, b.Currency))
	}
	for idx := range b.Items {
		if b.Items[idx].IntakeItemID == item.ID {
			return nil, shared.NewDomainError("ALREADY_MEMBER", "Item is already a member of this batch")
		}
	}

	now := time.Now()
	member := BillingBatchItem{
		ID:           uuid.New(),
		BatchID:      b.ID,
		IntakeItemID: item.ID,
		ItemType:     item.Type,
		Amount:       item.Amount,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	b.Items = append(b.Items, member)
	b.RecomputeTotals()
	b.UpdatedAt = now

	b.AddDomainEvent(NewBatchMembershipChangedEvent(b, item.ID))

	return &b.Items[len(b.Items)-1], nil
}

// SetDecision records the disposition for one member and recomputes the
// totals in the same mutation
func (b *BillingBatch) SetDecision(batchItemID uuid.UUID, decision BatchDecision) error {
	if !b.Status.IsPreIssuance() {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot change decisions: batch is in %s status", b.Status))
	}
	if !decision.IsValid() {
		return shared.NewDomainError("INVALID_DECISION", fmt.Sprintf("Unknown decision %q", decision))
	}

	for idx := range b.Items {
		if b.Items[idx].ID == batchItemID {
			d := decision
			b.Items[idx].Decision = &d
			b.Items[idx].UpdatedAt = time.Now()
			b.RecomputeTotals()
			b.UpdatedAt = time.Now()

			b.AddDomainEvent(NewBatchDecisionSetEvent(b, b.Items[idx].IntakeItemID, decision))

			return nil
		}
	}

	return shared.NewDomainError("ITEM_NOT_FOUND", "Batch item not found")
}

// RecomputeTotals re-derives total_amount and total_fees from the emit set.
// Idempotent: calling it twice yields the same totals.
func (b *BillingBatch) RecomputeTotals() {
	total := decimal.Zero
	fees := decimal.Zero
	for idx := range b.Items {
		if !b.Items[idx].IsEmit() {
			continue
		}
		total = total.Add(b.Items[idx].Amount)
		if b.Items[idx].ItemType == IntakeTypeOfficialFee {
			fees = fees.Add(b.Items[idx].Amount)
		}
	}
	b.TotalAmount = total
	b.TotalFees = fees
}

// ApproveByPartner signs off the decisions and queues the batch for
// accounting. Requires every member decided and at least one emit.
func (b *BillingBatch) ApproveByPartner() error {
	if !b.Status.CanTransitionTo(BatchStatusReadyForSap) {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot approve batch in %s status", b.Status))
	}
	emits := 0
	for idx := range b.Items {
		if b.Items[idx].IsUndecided() {
			return shared.NewDomainError("UNDECIDED_ITEMS", "Cannot approve batch with undecided items")
		}
		if b.Items[idx].IsEmit() {
			emits++
		}
	}
	if emits == 0 {
		return shared.NewDomainError("NO_EMIT_ITEMS", "Cannot approve batch without emit items")
	}

	b.Status = BatchStatusReadyForSap
	b.UpdatedAt = time.Now()

	b.AddDomainEvent(NewBillingBatchApprovedEvent(b))

	return nil
}

// MarkInvoiceDraft readies the batch for invoice issuance
func (b *BillingBatch) MarkInvoiceDraft() error {
	if !b.Status.CanTransitionTo(BatchStatusInvoiceDraft) {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot draft invoice for batch in %s status", b.Status))
	}
	b.Status = BatchStatusInvoiceDraft
	b.UpdatedAt = time.Now()
	return nil
}

// MarkIssued links the batch to its client invoice. A batch is linked to at
// most one invoice at a time.
func (b *BillingBatch) MarkIssued(clientInvoiceID uuid.UUID) error {
	if b.ClientInvoiceID != nil {
		return shared.NewDomainError("ALREADY_INVOICED", "Batch is already linked to a client invoice")
	}
	if !b.Status.CanTransitionTo(BatchStatusIssued) {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot issue batch in %s status", b.Status))
	}
	if clientInvoiceID == uuid.Nil {
		return shared.NewDomainError("INVALID_INVOICE", "Client invoice reference is required")
	}

	b.Status = BatchStatusIssued
	b.ClientInvoiceID = &clientInvoiceID
	b.UpdatedAt = time.Now()

	b.AddDomainEvent(NewBillingBatchIssuedEvent(b))

	return nil
}

// MarkDelivered closes the batch after direct delivery
func (b *BillingBatch) MarkDelivered() error {
	if !b.Status.CanTransitionTo(BatchStatusDelivered) {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot deliver batch in %s status", b.Status))
	}
	b.Status = BatchStatusDelivered
	b.UpdatedAt = time.Now()
	return nil
}

// RequirePlatform routes the issued batch through a client portal instead
// of direct delivery
func (b *BillingBatch) RequirePlatform() error {
	if !b.Status.CanTransitionTo(BatchStatusPlatformRequired) {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot require platform submission for batch in %s status", b.Status))
	}
	b.Status = BatchStatusPlatformRequired
	b.UpdatedAt = time.Now()
	return nil
}

// CompletePlatform closes the batch after portal submission
func (b *BillingBatch) CompletePlatform() error {
	if !b.Status.CanTransitionTo(BatchStatusPlatformCompleted) {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot complete platform submission for batch in %s status", b.Status))
	}
	b.Status = BatchStatusPlatformCompleted
	b.UpdatedAt = time.Now()
	return nil
}

// EmitItemIDs returns the intake item IDs of the emit set
func (b *BillingBatch) EmitItemIDs() []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(b.Items))
	for idx := range b.Items {
		if b.Items[idx].IsEmit() {
			ids = append(ids, b.Items[idx].IntakeItemID)
		}
	}
	return ids
}

// GetItem returns a batch item by its ID
func (b *BillingBatch) GetItem(batchItemID uuid.UUID) *BillingBatchItem {
	for idx := range b.Items {
		if b.Items[idx].ID == batchItemID {
			return &b.Items[idx]
		}
	}
	return nil
}

// TotalAmountMoney returns the emit total as Money
func (b *BillingBatch) TotalAmountMoney() valueobject.Money {
	m, _ := valueobject.NewMoney(b.TotalAmount, b.Currency)
	return m
}

// TotalFeesMoney returns the official-fee emit total as Money
func (b *BillingBatch) TotalFeesMoney() valueobject.Money {
	m, _ := valueobject.NewMoney(b.TotalFees, b.Currency)
	return m
}
