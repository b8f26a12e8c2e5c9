package models

import (
	"time"

	"github.com/ginvoice/backend/internal/domain/invoicing"
	"github.com/ginvoice/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ClientInvoiceModel is the persistence model for the ClientInvoice domain entity.
type ClientInvoiceModel struct {
	AggregateModel
	BatchID               *uuid.UUID              `gorm:"type:uuid;index"`
	JobID                 uuid.UUID               `gorm:"type:uuid;not null;index"`
	ExternalInvoiceNumber string                  `gorm:"type:varchar(100);not null;uniqueIndex"`
	ExternalInvoiceDate   time.Time               `gorm:"not null"`
	Status                invoicing.InvoiceStatus `gorm:"type:varchar(30);not null;default:'invoice_draft';index"`
	Currency              valueobject.Currency    `gorm:"type:varchar(3);not null;default:'EUR'"`
	TotalAmount           decimal.Decimal         `gorm:"type:decimal(18,4);not null;default:0"`
	DocRef                string                  `gorm:"type:varchar(500)"`
	IssuedAt              *time.Time              `gorm:"index"`
}

// TableName returns the table name for GORM
func (ClientInvoiceModel) TableName() string {
	return "client_invoices"
}

// ToDomain converts the persistence model to a domain ClientInvoice entity.
func (m *ClientInvoiceModel) ToDomain() *invoicing.ClientInvoice {
	return &invoicing.ClientInvoice{
		BaseAggregateRoot:     m.ToDomainAggregateRoot(),
		BatchID:               m.BatchID,
		JobID:                 m.JobID,
		ExternalInvoiceNumber: m.ExternalInvoiceNumber,
		ExternalInvoiceDate:   m.ExternalInvoiceDate,
		Status:                m.Status,
		Currency:              m.Currency,
		TotalAmount:           m.TotalAmount,
		DocRef:                m.DocRef,
		IssuedAt:              m.IssuedAt,
	}
}

// FromDomain populates the persistence model from a domain ClientInvoice entity.
func (m *ClientInvoiceModel) FromDomain(i *invoicing.ClientInvoice) {
	m.FromDomainAggregateRoot(i.BaseAggregateRoot)
	m.BatchID = i.BatchID
	m.JobID = i.JobID
	m.ExternalInvoiceNumber = i.ExternalInvoiceNumber
	m.ExternalInvoiceDate = i.ExternalInvoiceDate
	m.Status = i.Status
	m.Currency = i.Currency
	m.TotalAmount = i.TotalAmount
	m.DocRef = i.DocRef
	m.IssuedAt = i.IssuedAt
}

// ClientInvoiceModelFromDomain creates a new persistence model from a domain ClientInvoice entity.
func ClientInvoiceModelFromDomain(i *invoicing.ClientInvoice) *ClientInvoiceModel {
	m := &ClientInvoiceModel{}
	m.FromDomain(i)
	return m
}

// DeliveryModel is the persistence model for the Delivery domain entity.
// Recipients are stored as a JSON array.
type DeliveryModel struct {
	AggregateModel
	InvoiceID  uuid.UUID                `gorm:"type:uuid;not null;index"`
	Type       invoicing.DeliveryType   `gorm:"type:varchar(20);not null"`
	Recipients []string                 `gorm:"serializer:json;type:jsonb"`
	Status     invoicing.DeliveryStatus `gorm:"type:varchar(20);not null;default:'pending';index"`
	SentAt     *time.Time
	SentBy     string `gorm:"type:varchar(100)"`
}

// TableName returns the table name for GORM
func (DeliveryModel) TableName() string {
	return "deliveries"
}

// ToDomain converts the persistence model to a domain Delivery entity.
func (m *DeliveryModel) ToDomain() *invoicing.Delivery {
	return &invoicing.Delivery{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		InvoiceID:         m.InvoiceID,
		Type:              m.Type,
		Recipients:        m.Recipients,
		Status:            m.Status,
		SentAt:            m.SentAt,
		SentBy:            m.SentBy,
	}
}

// FromDomain populates the persistence model from a domain Delivery entity.
func (m *DeliveryModel) FromDomain(d *invoicing.Delivery) {
	m.FromDomainAggregateRoot(d.BaseAggregateRoot)
	m.InvoiceID = d.InvoiceID
	m.Type = d.Type
	m.Recipients = d.Recipients
	m.Status = d.Status
	m.SentAt = d.SentAt
	m.SentBy = d.SentBy
}

// DeliveryModelFromDomain creates a new persistence model from a domain Delivery entity.
func DeliveryModelFromDomain(d *invoicing.Delivery) *DeliveryModel {
	m := &DeliveryModel{}
	m.FromDomain(d)
	return m
}

// PlatformTaskModel is the persistence model for the PlatformTask domain
// entity. There is no overdue column on purpose: overdue is derived from
// sla_due_at at query time.
type PlatformTaskModel struct {
	AggregateModel
	InvoiceID      *uuid.UUID           `gorm:"type:uuid;index"`
	PlatformName   string               `gorm:"type:varchar(200);not null"`
	SlaDueAt       time.Time            `gorm:"not null;index"`
	Status         invoicing.TaskStatus `gorm:"type:varchar(20);not null;default:'pending';index"`
	Notes          string               `gorm:"type:text"`
	CompletedAt    *time.Time
	EvidenceDocRef string `gorm:"type:varchar(500)"`
}

// TableName returns the table name for GORM
func (PlatformTaskModel) TableName() string {
	return "platform_tasks"
}

// ToDomain converts the persistence model to a domain PlatformTask entity.
func (m *PlatformTaskModel) ToDomain() *invoicing.PlatformTask {
	return &invoicing.PlatformTask{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		InvoiceID:         m.InvoiceID,
		PlatformName:      m.PlatformName,
		SlaDueAt:          m.SlaDueAt,
		Status:            m.Status,
		Notes:             m.Notes,
		CompletedAt:       m.CompletedAt,
		EvidenceDocRef:    m.EvidenceDocRef,
	}
}

// FromDomain populates the persistence model from a domain PlatformTask entity.
func (m *PlatformTaskModel) FromDomain(t *invoicing.PlatformTask) {
	m.FromDomainAggregateRoot(t.BaseAggregateRoot)
	m.InvoiceID = t.InvoiceID
	m.PlatformName = t.PlatformName
	m.SlaDueAt = t.SlaDueAt
	m.Status = t.Status
	m.Notes = t.Notes
	m.CompletedAt = t.CompletedAt
	m.EvidenceDocRef = t.EvidenceDocRef
}

// PlatformTaskModelFromDomain creates a new persistence model from a domain PlatformTask entity.
func PlatformTaskModelFromDomain(t *invoicing.PlatformTask) *PlatformTaskModel {
	m := &PlatformTaskModel{}
	m.FromDomain(t)
	return m
}
