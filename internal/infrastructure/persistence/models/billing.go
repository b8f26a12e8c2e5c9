package models

import (
	"time"

	"github.com/ginvoice/backend/internal/domain/billing"
	"github.com/ginvoice/backend/internal/domain/compliance"
	"github.com/ginvoice/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// IntakeItemModel is the persistence model for the IntakeItem domain entity.
// The two snapshot columns are written once at creation and excluded from
// every update set afterwards.
type IntakeItemModel struct {
	AggregateModel
	Type          billing.IntakeType   `gorm:"type:varchar(20);not null"`
	JobID         uuid.UUID            `gorm:"type:uuid;not null;index"`
	VendorID      *uuid.UUID           `gorm:"type:uuid;index"`
	InvoiceNumber string               `gorm:"type:varchar(100);not null;uniqueIndex"`
	Amount        decimal.Decimal      `gorm:"type:decimal(18,4);not null"`
	Currency      valueobject.Currency `gorm:"type:varchar(3);not null;default:'EUR'"`
	Concept       string               `gorm:"type:text;not null"`
	Status        billing.IntakeStatus `gorm:"type:varchar(30);not null;default:'draft';index"`

	UttaiStatusSnapshot      compliance.ClearanceStatus        `gorm:"type:varchar(20);not null"`
	VendorComplianceSnapshot compliance.VendorComplianceStatus `gorm:"type:varchar(20);not null"`

	DocRef string `gorm:"type:varchar(500)"`

	SubmittedAt     *time.Time
	ApprovedAt      *time.Time
	ApprovedBy      string `gorm:"type:varchar(100)"`
	RejectedAt      *time.Time
	RejectionReason string `gorm:"type:text"`
	NeedsInfoNote   string `gorm:"type:text"`
	BilledAt        *time.Time
	ClientInvoiceID *uuid.UUID `gorm:"type:uuid;index"`
}

// TableName returns the table name for GORM
func (IntakeItemModel) TableName() string {
	return "intake_items"
}

// ToDomain converts the persistence model to a domain IntakeItem entity.
func (m *IntakeItemModel) ToDomain() *billing.IntakeItem {
	return &billing.IntakeItem{
		BaseAggregateRoot:        m.ToDomainAggregateRoot(),
		Type:                     m.Type,
		JobID:                    m.JobID,
		VendorID:                 m.VendorID,
		InvoiceNumber:            m.InvoiceNumber,
		Amount:                   m.Amount,
		Currency:                 m.Currency,
		Concept:                  m.Concept,
		Status:                   m.Status,
		UttaiStatusSnapshot:      m.UttaiStatusSnapshot,
		VendorComplianceSnapshot: m.VendorComplianceSnapshot,
		DocRef:                   m.DocRef,
		SubmittedAt:              m.SubmittedAt,
		ApprovedAt:               m.ApprovedAt,
		ApprovedBy:               m.ApprovedBy,
		RejectedAt:               m.RejectedAt,
		RejectionReason:          m.RejectionReason,
		NeedsInfoNote:            m.NeedsInfoNote,
		BilledAt:                 m.BilledAt,
		ClientInvoiceID:          m.ClientInvoiceID,
	}
}

// FromDomain populates the persistence model from a domain IntakeItem entity.
func (m *IntakeItemModel) FromDomain(i *billing.IntakeItem) {
	m.FromDomainAggregateRoot(i.BaseAggregateRoot)
	m.Type = i.Type
	m.JobID = i.JobID
	m.VendorID = i.VendorID
	m.InvoiceNumber = i.InvoiceNumber
	m.Amount = i.Amount
	m.Currency = i.Currency
	m.Concept = i.Concept
	m.Status = i.Status
	m.UttaiStatusSnapshot = i.UttaiStatusSnapshot
	m.VendorComplianceSnapshot = i.VendorComplianceSnapshot
	m.DocRef = i.DocRef
	m.SubmittedAt = i.SubmittedAt
	m.ApprovedAt = i.ApprovedAt
	m.ApprovedBy = i.ApprovedBy
	m.RejectedAt = i.RejectedAt
	m.RejectionReason = i.RejectionReason
	m.NeedsInfoNote = i.NeedsInfoNote
	m.BilledAt = i.BilledAt
	m.ClientInvoiceID = i.ClientInvoiceID
}

// IntakeItemModelFromDomain creates a new persistence model from a domain IntakeItem entity.
func IntakeItemModelFromDomain(i *billing.IntakeItem) *IntakeItemModel {
	m := &IntakeItemModel{}
	m.FromDomain(i)
	return m
}

// AccountingPostingModel is the persistence model for an accounting posting.
// Rows are insert-only; the unique index on intake_item_id enforces the
// one-posting-per-item rule at the database level.
type AccountingPostingModel struct {
	ID              uuid.UUID `gorm:"type:uuid;primary_key"`
	IntakeItemID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex"`
	LedgerReference string    `gorm:"type:varchar(100);not null"`
	PostedBy        string    `gorm:"type:varchar(100);not null"`
	PostedAt        time.Time `gorm:"not null"`
	CreatedAt       time.Time `gorm:"not null"`
}

// TableName returns the table name for GORM
func (AccountingPostingModel) TableName() string {
	return "accounting_postings"
}

// ToDomain converts the persistence model to a domain AccountingPosting.
func (m *AccountingPostingModel) ToDomain() *billing.AccountingPosting {
	return &billing.AccountingPosting{
		ID:              m.ID,
		IntakeItemID:    m.IntakeItemID,
		LedgerReference: m.LedgerReference,
		PostedBy:        m.PostedBy,
		PostedAt:        m.PostedAt,
		CreatedAt:       m.CreatedAt,
	}
}

// FromDomain populates the persistence model from a domain AccountingPosting.
func (m *AccountingPostingModel) FromDomain(p *billing.AccountingPosting) {
	m.ID = p.ID
	m.IntakeItemID = p.IntakeItemID
	m.LedgerReference = p.LedgerReference
	m.PostedBy = p.PostedBy
	m.PostedAt = p.PostedAt
	m.CreatedAt = p.CreatedAt
}

// BillingBatchModel is the persistence model for the BillingBatch domain entity.
type BillingBatchModel struct {
	AggregateModel
	JobID           uuid.UUID               `gorm:"type:uuid;not null;index"`
	Status          billing.BatchStatus     `gorm:"type:varchar(30);not null;default:'pending_partner_approval';index"`
	Currency        valueobject.Currency    `gorm:"type:varchar(3);not null;default:'EUR'"`
	TotalAmount     decimal.Decimal         `gorm:"type:decimal(18,4);not null;default:0"`
	TotalFees       decimal.Decimal         `gorm:"type:decimal(18,4);not null;default:0"`
	Items           []BillingBatchItemModel `gorm:"foreignKey:BatchID;references:ID"`
	ClientInvoiceID *uuid.UUID              `gorm:"type:uuid;index"`
}

// TableName returns the table name for GORM
func (BillingBatchModel) TableName() string {
	return "billing_batches"
}

// ToDomain converts the persistence model to a domain BillingBatch entity.
func (m *BillingBatchModel) ToDomain() *billing.BillingBatch {
	items := make([]billing.BillingBatchItem, len(m.Items))
	for i := range m.Items {
		items[i] = *m.Items[i].ToDomain()
	}
	return &billing.BillingBatch{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		JobID:             m.JobID,
		Status:            m.Status,
		Currency:          m.Currency,
		TotalAmount:       m.TotalAmount,
		TotalFees:         m.TotalFees,
		Items:             items,
		ClientInvoiceID:   m.ClientInvoiceID,
	}
}

// FromDomain populates the persistence model from a domain BillingBatch entity.
func (m *BillingBatchModel) FromDomain(b *billing.BillingBatch) {
	m.FromDomainAggregateRoot(b.BaseAggregateRoot)
	m.JobID = b.JobID
	m.Status = b.Status
	m.Currency = b.Currency
	m.TotalAmount = b.TotalAmount
	m.TotalFees = b.TotalFees
	m.ClientInvoiceID = b.ClientInvoiceID
	m.Items = make([]BillingBatchItemModel, len(b.Items))
	for i := range b.Items {
		m.Items[i].FromDomain(&b.Items[i])
	}
}

// BillingBatchModelFromDomain creates a new persistence model from a domain BillingBatch entity.
func BillingBatchModelFromDomain(b *billing.BillingBatch) *BillingBatchModel {
	m := &BillingBatchModel{}
	m.FromDomain(b)
	return m
}

// BillingBatchItemModel is the persistence model for a batch membership row.
type BillingBatchItemModel struct {
	ID           uuid.UUID              `gorm:"type:uuid;primary_key"`
	BatchID      uuid.UUID              `gorm:"type:uuid;not null;index;uniqueIndex:idx_batch_member,priority:1"`
	IntakeItemID uuid.UUID              `gorm:"type:uuid;not null;index;uniqueIndex:idx_batch_member,priority:2"`
	ItemType     billing.IntakeType     `gorm:"type:varchar(20);not null"`
	Amount       decimal.Decimal        `gorm:"type:decimal(18,4);not null"`
	Decision     *billing.BatchDecision `gorm:"type:varchar(20)"`
	CreatedAt    time.Time              `gorm:"not null"`
	UpdatedAt    time.Time              `gorm:"not null"`
}

// TableName returns the table name for GORM
func (BillingBatchItemModel) TableName() string {
	return "billing_batch_items"
}

// ToDomain converts the persistence model to a domain BillingBatchItem.
func (m *BillingBatchItemModel) ToDomain() *billing.BillingBatchItem {
	return &billing.BillingBatchItem{
		ID:           m.ID,
		BatchID:      m.BatchID,
		IntakeItemID: m.IntakeItemID,
		ItemType:     m.ItemType,
		Amount:       m.Amount,
		Decision:     m.Decision,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}

// FromDomain populates the persistence model from a domain BillingBatchItem.
func (m *BillingBatchItemModel) FromDomain(bi *billing.BillingBatchItem) {
	m.ID = bi.ID
	m.BatchID = bi.BatchID
	m.IntakeItemID = bi.IntakeItemID
	m.ItemType = bi.ItemType
	m.Amount = bi.Amount
	m.Decision = bi.Decision
	m.CreatedAt = bi.CreatedAt
	m.UpdatedAt = bi.UpdatedAt
}
