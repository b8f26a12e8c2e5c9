package models

import (
	"time"

	"github.com/ginvoice/backend/internal/domain/compliance"
	"github.com/google/uuid"
)

// JobModel is the persistence model for the Job domain entity.
type JobModel struct {
	AggregateModel
	Code                 string                     `gorm:"type:varchar(50);not null;uniqueIndex"`
	ClientName           string                     `gorm:"type:varchar(200);not null"`
	Clearance            compliance.ClearanceStatus `gorm:"type:varchar(20);not null;default:'clear';index"`
	SubjectToWithholding *bool
	Archived             bool `gorm:"not null;default:false;index"`
}

// TableName returns the table name for GORM
func (JobModel) TableName() string {
	return "jobs"
}

// ToDomain converts the persistence model to a domain Job entity.
func (m *JobModel) ToDomain() *compliance.Job {
	return &compliance.Job{
		BaseAggregateRoot:    m.ToDomainAggregateRoot(),
		Code:                 m.Code,
		ClientName:           m.ClientName,
		Clearance:            m.Clearance,
		SubjectToWithholding: m.SubjectToWithholding,
		Archived:             m.Archived,
	}
}

// FromDomain populates the persistence model from a domain Job entity.
func (m *JobModel) FromDomain(j *compliance.Job) {
	m.FromDomainAggregateRoot(j.BaseAggregateRoot)
	m.Code = j.Code
	m.ClientName = j.ClientName
	m.Clearance = j.Clearance
	m.SubjectToWithholding = j.SubjectToWithholding
	m.Archived = j.Archived
}

// JobModelFromDomain creates a new persistence model from a domain Job entity.
func JobModelFromDomain(j *compliance.Job) *JobModel {
	m := &JobModel{}
	m.FromDomain(j)
	return m
}

// VendorModel is the persistence model for the Vendor domain entity.
type VendorModel struct {
	AggregateModel
	Name             string                            `gorm:"type:varchar(200);not null"`
	TaxID            string                            `gorm:"type:varchar(50)"`
	ComplianceStatus compliance.VendorComplianceStatus `gorm:"type:varchar(20);not null;default:'non_compliant';index"`
	Documents        []VendorDocumentModel             `gorm:"foreignKey:VendorID;references:ID"`
}

// TableName returns the table name for GORM
func (VendorModel) TableName() string {
	return "vendors"
}

// ToDomain converts the persistence model to a domain Vendor entity.
func (m *VendorModel) ToDomain() *compliance.Vendor {
	docs := make([]compliance.VendorDocument, len(m.Documents))
	for i := range m.Documents {
		docs[i] = *m.Documents[i].ToDomain()
	}
	return &compliance.Vendor{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		Name:              m.Name,
		TaxID:             m.TaxID,
		ComplianceStatus:  m.ComplianceStatus,
		Documents:         docs,
	}
}

// FromDomain populates the persistence model from a domain Vendor entity.
func (m *VendorModel) FromDomain(v *compliance.Vendor) {
	m.FromDomainAggregateRoot(v.BaseAggregateRoot)
	m.Name = v.Name
	m.TaxID = v.TaxID
	m.ComplianceStatus = v.ComplianceStatus
	m.Documents = make([]VendorDocumentModel, len(v.Documents))
	for i := range v.Documents {
		m.Documents[i].FromDomain(&v.Documents[i])
	}
}

// VendorModelFromDomain creates a new persistence model from a domain Vendor entity.
func VendorModelFromDomain(v *compliance.Vendor) *VendorModel {
	m := &VendorModel{}
	m.FromDomain(v)
	return m
}

// VendorDocumentModel is the persistence model for a vendor certification document.
type VendorDocumentModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key"`
	VendorID  uuid.UUID `gorm:"type:uuid;not null;index"`
	Name      string    `gorm:"type:varchar(200);not null"`
	DocRef    string    `gorm:"type:varchar(500)"`
	IssuedAt  time.Time `gorm:"not null"`
	ExpiresAt time.Time `gorm:"not null;index"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

// TableName returns the table name for GORM
func (VendorDocumentModel) TableName() string {
	return "vendor_documents"
}

// ToDomain converts the persistence model to a domain VendorDocument.
func (m *VendorDocumentModel) ToDomain() *compliance.VendorDocument {
	return &compliance.VendorDocument{
		ID:        m.ID,
		VendorID:  m.VendorID,
		Name:      m.Name,
		DocRef:    m.DocRef,
		IssuedAt:  m.IssuedAt,
		ExpiresAt: m.ExpiresAt,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

// FromDomain populates the persistence model from a domain VendorDocument.
func (m *VendorDocumentModel) FromDomain(d *compliance.VendorDocument) {
	m.ID = d.ID
	m.VendorID = d.VendorID
	m.Name = d.Name
	m.DocRef = d.DocRef
	m.IssuedAt = d.IssuedAt
	m.ExpiresAt = d.ExpiresAt
	m.CreatedAt = d.CreatedAt
	m.UpdatedAt = d.UpdatedAt
}

// ComplianceRequestModel is the persistence model for the ComplianceRequest domain entity.
type ComplianceRequestModel struct {
	AggregateModel
	JobID          uuid.UUID                `gorm:"type:uuid;not null;index"`
	Status         compliance.RequestStatus `gorm:"type:varchar(20);not null;default:'pending';index"`
	RequestedBy    string                   `gorm:"type:varchar(100);not null"`
	Note           string                   `gorm:"type:text"`
	ResolvedBy     string                   `gorm:"type:varchar(100)"`
	ResolvedAt     *time.Time
	ResolutionNote string `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (ComplianceRequestModel) TableName() string {
	return "compliance_requests"
}

// ToDomain converts the persistence model to a domain ComplianceRequest entity.
func (m *ComplianceRequestModel) ToDomain() *compliance.ComplianceRequest {
	return &compliance.ComplianceRequest{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		JobID:             m.JobID,
		Status:            m.Status,
		RequestedBy:       m.RequestedBy,
		Note:              m.Note,
		ResolvedBy:        m.ResolvedBy,
		ResolvedAt:        m.ResolvedAt,
		ResolutionNote:    m.ResolutionNote,
	}
}

// FromDomain populates the persistence model from a domain ComplianceRequest entity.
func (m *ComplianceRequestModel) FromDomain(r *compliance.ComplianceRequest) {
	m.FromDomainAggregateRoot(r.BaseAggregateRoot)
	m.JobID = r.JobID
	m.Status = r.Status
	m.RequestedBy = r.RequestedBy
	m.Note = r.Note
	m.ResolvedBy = r.ResolvedBy
	m.ResolvedAt = r.ResolvedAt
	m.ResolutionNote = r.ResolutionNote
}

// ComplianceRequestModelFromDomain creates a new persistence model from a domain ComplianceRequest entity.
func ComplianceRequestModelFromDomain(r *compliance.ComplianceRequest) *ComplianceRequestModel {
	m := &ComplianceRequestModel{}
	m.FromDomain(r)
	return m
}
