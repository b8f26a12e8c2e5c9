package compliance

import (
	"time"

	"github.com/ginvoice/backend/internal/domain/compliance"
	"github.com/google/uuid"
)

// ==================== Job DTOs ====================

// CreateJobRequest represents a request to create a job
type CreateJobRequest struct {
	Code                 string `json:"code" binding:"required,min=1,max=50"`
	ClientName           string `json:"client_name" binding:"required,min=1,max=200"`
	SubjectToWithholding *bool  `json:"subject_to_withholding"`
}

// JobResponse represents a job in API responses
type JobResponse struct {
	ID                   uuid.UUID `json:"id"`
	Code                 string    `json:"code"`
	ClientName           string    `json:"client_name"`
	Clearance            string    `json:"clearance"`
	SubjectToWithholding *bool     `json:"subject_to_withholding"`
	Archived             bool      `json:"archived"`
	Version              int       `json:"version"`
	CreatedAt            time.Time `json:"created_at"`
	UpdatedAt            time.Time `json:"updated_at"`
}

// ToJobResponse converts a domain job to a response DTO
func ToJobResponse(job *compliance.Job) JobResponse {
	return JobResponse{
		ID:                   job.ID,
		Code:                 job.Code,
		ClientName:           job.ClientName,
		Clearance:            job.Clearance.String(),
		SubjectToWithholding: job.SubjectToWithholding,
		Archived:             job.Archived,
		Version:              job.Version,
		CreatedAt:            job.CreatedAt,
		UpdatedAt:            job.UpdatedAt,
	}
}

// ==================== Vendor DTOs ====================

// CreateVendorRequest represents a request to create a vendor
type CreateVendorRequest struct {
	Name  string `json:"name" binding:"required,min=1,max=200"`
	TaxID string `json:"tax_id" binding:"max=50"`
}

// AddVendorDocumentRequest represents a request to attach a certification
// document to a vendor
type AddVendorDocumentRequest struct {
	Name      string    `json:"name" binding:"required,min=1,max=200"`
	DocRef    string    `json:"doc_ref"`
	IssuedAt  time.Time `json:"issued_at" binding:"required"`
	ExpiresAt time.Time `json:"expires_at" binding:"required"`
}

// VendorDocumentResponse represents a vendor document in API responses
type VendorDocumentResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	DocRef    string    `json:"doc_ref,omitempty"`
	IssuedAt  time.Time `json:"issued_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// VendorResponse represents a vendor in API responses
type VendorResponse struct {
	ID               uuid.UUID                `json:"id"`
	Name             string                   `json:"name"`
	TaxID            string                   `json:"tax_id,omitempty"`
	ComplianceStatus string                   `json:"compliance_status"`
	Documents        []VendorDocumentResponse `json:"documents"`
	Version          int                      `json:"version"`
	CreatedAt        time.Time                `json:"created_at"`
	UpdatedAt        time.Time                `json:"updated_at"`
}

// ToVendorResponse converts a domain vendor to a response DTO
func ToVendorResponse(vendor *compliance.Vendor) VendorResponse {
	docs := make([]VendorDocumentResponse, 0, len(vendor.Documents))
	for i := range vendor.Documents {
		d := &vendor.Documents[i]
		docs = append(docs, VendorDocumentResponse{
			ID:        d.ID,
			Name:      d.Name,
			DocRef:    d.DocRef,
			IssuedAt:  d.IssuedAt,
			ExpiresAt: d.ExpiresAt,
		})
	}
	return VendorResponse{
		ID:               vendor.ID,
		Name:             vendor.Name,
		TaxID:            vendor.TaxID,
		ComplianceStatus: vendor.ComplianceStatus.String(),
		Documents:        docs,
		Version:          vendor.Version,
		CreatedAt:        vendor.CreatedAt,
		UpdatedAt:        vendor.UpdatedAt,
	}
}

// ==================== Compliance Request DTOs ====================

// OpenRequestRequest represents a request to open a compliance request
type OpenRequestRequest struct {
	JobID uuid.UUID `json:"job_id" binding:"required"`
	Note  string    `json:"note" binding:"max=2000"`
}

// ResolveRequestRequest represents a request to resolve a compliance request
type ResolveRequestRequest struct {
	Clearance      string `json:"clearance" binding:"required"`
	ResolutionNote string `json:"resolution_note" binding:"required,min=1,max=2000"`
}

// ComplianceRequestResponse represents a compliance request in API responses
type ComplianceRequestResponse struct {
	ID             uuid.UUID  `json:"id"`
	JobID          uuid.UUID  `json:"job_id"`
	Status         string     `json:"status"`
	RequestedBy    string     `json:"requested_by"`
	Note           string     `json:"note,omitempty"`
	ResolvedBy     string     `json:"resolved_by,omitempty"`
	ResolvedAt     *time.Time `json:"resolved_at,omitempty"`
	ResolutionNote string     `json:"resolution_note,omitempty"`
	Version        int        `json:"version"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

// ToComplianceRequestResponse converts a domain request to a response DTO
func ToComplianceRequestResponse(req *compliance.ComplianceRequest) ComplianceRequestResponse {
	return ComplianceRequestResponse{
		ID:             req.ID,
		JobID:          req.JobID,
		Status:         req.Status.String(),
		RequestedBy:    req.RequestedBy,
		Note:           req.Note,
		ResolvedBy:     req.ResolvedBy,
		ResolvedAt:     req.ResolvedAt,
		ResolutionNote: req.ResolutionNote,
		Version:        req.Version,
		CreatedAt:      req.CreatedAt,
		UpdatedAt:      req.UpdatedAt,
	}
}
