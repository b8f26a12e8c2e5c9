package compliance

import (
	"context"
	"fmt"

	"github.com/ginvoice/backend/internal/application/capability"
	"github.com/ginvoice/backend/internal/domain/compliance"
	"github.com/ginvoice/backend/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Service handles compliance master data and the UTTAI clearance workflow.
// Job clearance only changes through resolved compliance requests; vendor
// compliance only changes through document derivation.
type Service struct {
	jobs     compliance.JobRepository
	vendors  compliance.VendorRepository
	requests compliance.ComplianceRequestRepository
	logger   *zap.Logger
}

// NewService creates a new compliance Service
func NewService(jobs compliance.JobRepository, vendors compliance.VendorRepository, requests compliance.ComplianceRequestRepository, logger *zap.Logger) *Service {
	return &Service{
		jobs:     jobs,
		vendors:  vendors,
		requests: requests,
		logger:   logger,
	}
}

// CreateJob creates a new job in clear status
func (s *Service) CreateJob(ctx context.Context, actor capability.Actor, req CreateJobRequest) (*JobResponse, error) {
	if err := capability.Require(actor, capability.IntakeWrite); err != nil {
		return nil, err
	}

	if existing, err := s.jobs.FindByCode(ctx, req.Code); err == nil && existing != nil {
		return nil, shared.NewDomainError("ALREADY_EXISTS", fmt.Sprintf("Job code %s is already in use", req.Code))
	}

	job, err := compliance.NewJob(req.Code, req.ClientName)
	if err != nil {
		return nil, err
	}
	if req.SubjectToWithholding != nil {
		job.SetSubjectToWithholding(*req.SubjectToWithholding)
	}

	if err := s.jobs.Save(ctx, job); err != nil {
		return nil, err
	}

	s.logger.Info("job created",
		zap.String("job_id", job.ID.String()),
		zap.String("code", job.Code),
		zap.String("actor", actor.Name))

	response := ToJobResponse(job)
	return &response, nil
}

// GetJob retrieves a job by ID
func (s *Service) GetJob(ctx context.Context, jobID uuid.UUID) (*JobResponse, error) {
	job, err := s.jobs.FindByID(ctx, jobID)
	if err != nil {
		return nil, err
	}
	response := ToJobResponse(job)
	return &response, nil
}

// ListJobs lists jobs with filtering
func (s *Service) ListJobs(ctx context.Context, filter shared.Filter) (*shared.Paginated[JobResponse], error) {
	jobs, err := s.jobs.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.jobs.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	responses := make([]JobResponse, 0, len(jobs))
	for i := range jobs {
		responses = append(responses, ToJobResponse(&jobs[i]))
	}
	result := shared.NewPaginated(responses, total, filter.Page, filter.PageSize)
	return &result, nil
}

// ArchiveJob archives a job; archived jobs accept no further changes
func (s *Service) ArchiveJob(ctx context.Context, actor capability.Actor, jobID uuid.UUID) error {
	if err := capability.Require(actor, capability.IntakeWrite); err != nil {
		return err
	}

	job, err := s.jobs.FindByID(ctx, jobID)
	if err != nil {
		return err
	}
	if err := job.Archive(); err != nil {
		return err
	}
	return s.jobs.SaveWithLock(ctx, job)
}

// CreateVendor creates a new vendor; without documents it is non-compliant
func (s *Service) CreateVendor(ctx context.Context, actor capability.Actor, req CreateVendorRequest) (*VendorResponse, error) {
	if err := capability.Require(actor, capability.IntakeWrite); err != nil {
		return nil, err
	}

	vendor, err := compliance.NewVendor(req.Name, req.TaxID)
	if err != nil {
		return nil, err
	}
	if err := s.vendors.Save(ctx, vendor); err != nil {
		return nil, err
	}

	s.logger.Info("vendor created",
		zap.String("vendor_id", vendor.ID.String()),
		zap.String("actor", actor.Name))

	response := ToVendorResponse(vendor)
	return &response, nil
}

// GetVendor retrieves a vendor by ID, documents included
func (s *Service) GetVendor(ctx context.Context, vendorID uuid.UUID) (*VendorResponse, error) {
	vendor, err := s.vendors.FindByID(ctx, vendorID)
	if err != nil {
		return nil, err
	}
	response := ToVendorResponse(vendor)
	return &response, nil
}

// ListVendors lists vendors with filtering
func (s *Service) ListVendors(ctx context.Context, filter shared.Filter) (*shared.Paginated[VendorResponse], error) {
	vendors, err := s.vendors.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.vendors.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	responses := make([]VendorResponse, 0, len(vendors))
	for i := range vendors {
		responses = append(responses, ToVendorResponse(&vendors[i]))
	}
	result := shared.NewPaginated(responses, total, filter.Page, filter.PageSize)
	return &result, nil
}

// AddVendorDocument attaches a certification document and re-derives the
// vendor's compliance status. Existing intake snapshots are unaffected.
func (s *Service) AddVendorDocument(ctx context.Context, actor capability.Actor, vendorID uuid.UUID, req AddVendorDocumentRequest) (*VendorResponse, error) {
	if err := capability.Require(actor, capability.IntakeWrite); err != nil {
		return nil, err
	}

	vendor, err := s.vendors.FindByID(ctx, vendorID)
	if err != nil {
		return nil, err
	}
	if _, err := vendor.AddDocument(req.Name, req.DocRef, req.IssuedAt, req.ExpiresAt); err != nil {
		return nil, err
	}
	if err := s.vendors.SaveWithLock(ctx, vendor); err != nil {
		return nil, err
	}

	s.logger.Info("vendor document added",
		zap.String("vendor_id", vendor.ID.String()),
		zap.String("compliance_status", vendor.ComplianceStatus.String()),
		zap.String("actor", actor.Name))

	response := ToVendorResponse(vendor)
	return &response, nil
}

// OpenRequest opens a UTTAI compliance request for a job and flags the job
// as pending review
func (s *Service) OpenRequest(ctx context.Context, actor capability.Actor, req OpenRequestRequest) (*ComplianceRequestResponse, error) {
	if err := capability.Require(actor, capability.IntakeWrite); err != nil {
		return nil, err
	}

	job, err := s.jobs.FindByID(ctx, req.JobID)
	if err != nil {
		return nil, err
	}

	request, err := compliance.NewComplianceRequest(job.ID, actor.Name, req.Note)
	if err != nil {
		return nil, err
	}
	if err := job.SetClearance(compliance.ClearancePendingReview); err != nil {
		return nil, err
	}

	if err := s.requests.Save(ctx, request); err != nil {
		return nil, err
	}
	if err := s.jobs.SaveWithLock(ctx, job); err != nil {
		return nil, err
	}

	s.logger.Info("compliance request opened",
		zap.String("request_id", request.ID.String()),
		zap.String("job_id", job.ID.String()),
		zap.String("actor", actor.Name))

	response := ToComplianceRequestResponse(request)
	return &response, nil
}

// StartRequest moves a pending request into review
func (s *Service) StartRequest(ctx context.Context, actor capability.Actor, requestID uuid.UUID) (*ComplianceRequestResponse, error) {
	if err := capability.Require(actor, capability.ComplianceResolve); err != nil {
		return nil, err
	}

	request, err := s.requests.FindByID(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if err := request.Start(); err != nil {
		return nil, err
	}
	if err := s.requests.SaveWithLock(ctx, request); err != nil {
		return nil, err
	}

	response := ToComplianceRequestResponse(request)
	return &response, nil
}

// ResolveRequest closes the request and applies the resulting clearance to
// the job, both in one transaction. Snapshots taken earlier stay frozen.
func (s *Service) ResolveRequest(ctx context.Context, actor capability.Actor, requestID uuid.UUID, req ResolveRequestRequest) (*ComplianceRequestResponse, error) {
	if err := capability.Require(actor, capability.ComplianceResolve); err != nil {
		return nil, err
	}

	clearance := compliance.ClearanceStatus(req.Clearance)
	if !clearance.IsValid() {
		return nil, shared.NewDomainError("INVALID_CLEARANCE", fmt.Sprintf("Unknown clearance status %q", req.Clearance))
	}

	request, err := s.requests.FindByID(ctx, requestID)
	if err != nil {
		return nil, err
	}
	job, err := s.jobs.FindByID(ctx, request.JobID)
	if err != nil {
		return nil, err
	}

	if err := request.Resolve(actor.Name, req.ResolutionNote); err != nil {
		return nil, err
	}
	if err := job.SetClearance(clearance); err != nil {
		return nil, err
	}

	if err := s.requests.ResolveWithJob(ctx, request, job); err != nil {
		return nil, err
	}

	s.logger.Info("compliance request resolved",
		zap.String("request_id", request.ID.String()),
		zap.String("job_id", job.ID.String()),
		zap.String("clearance", clearance.String()),
		zap.String("actor", actor.Name))

	response := ToComplianceRequestResponse(request)
	return &response, nil
}

// ListOpenRequests lists unresolved compliance requests
func (s *Service) ListOpenRequests(ctx context.Context) ([]ComplianceRequestResponse, error) {
	requests, err := s.requests.FindOpen(ctx)
	if err != nil {
		return nil, err
	}
	responses := make([]ComplianceRequestResponse, 0, len(requests))
	for i := range requests {
		responses = append(responses, ToComplianceRequestResponse(&requests[i]))
	}
	return responses, nil
}
