package compliance

import (
	"fmt"
	"time"

	"github.com/ginvoice/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// RequestStatus is the lifecycle status of a compliance (UTTAI) request
type RequestStatus string

const (
	RequestPending    RequestStatus = "pending"
	RequestInProgress RequestStatus = "in_progress"
	RequestResolved   RequestStatus = "resolved"
)

// IsValid checks if the status is a valid RequestStatus
func (s RequestStatus) IsValid() bool {
	switch s {
	case RequestPending, RequestInProgress, RequestResolved:
		return true
	}
	return false
}

// String returns the string representation of RequestStatus
func (s RequestStatus) String() string {
	return string(s)
}

// CanTransitionTo checks if the status can transition to the target status
func (s RequestStatus) CanTransitionTo(target RequestStatus) bool {
	switch s {
	case RequestPending:
		return target == RequestInProgress
	case RequestInProgress:
		return target == RequestResolved
	case RequestResolved:
		return false // terminal
	}
	return false
}

// ComplianceRequest tracks one UTTAI clearance review for a job. Resolving
// a request updates the job's clearance going forward; intake snapshots
// taken before resolution stay as they were.
type ComplianceRequest struct {
	shared.BaseAggregateRoot
	JobID          uuid.UUID
	Status         RequestStatus
	RequestedBy    string
	Note           string
	ResolvedBy     string
	ResolvedAt     *time.Time
	ResolutionNote string
}

// NewComplianceRequest opens a compliance request for a job
func NewComplianceRequest(jobID uuid.UUID, requestedBy, note string) (*ComplianceRequest, error) {
	if jobID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_JOB", "Job ID cannot be empty")
	}
	if requestedBy == "" {
		return nil, shared.NewDomainError("INVALID_REQUESTER", "Requester cannot be empty")
	}

	req := &ComplianceRequest{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		JobID:             jobID,
		Status:            RequestPending,
		RequestedBy:       requestedBy,
		Note:              note,
	}

	req.AddDomainEvent(NewComplianceRequestOpenedEvent(req))

	return req, nil
}

// Start moves the request into review
func (r *ComplianceRequest) Start() error {
	if !r.Status.CanTransitionTo(RequestInProgress) {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot start compliance request in %s status", r.Status))
	}

	r.Status = RequestInProgress
	r.UpdatedAt = time.Now()

	return nil
}

// Resolve closes the request with a resolver and a resolution note, both required
func (r *ComplianceRequest) Resolve(resolvedBy, resolutionNote string) error {
	if !r.Status.CanTransitionTo(RequestResolved) {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot resolve compliance request in %s status", r.Status))
	}
	if resolvedBy == "" {
		return shared.NewDomainError("INVALID_RESOLVER", "Resolver is required to resolve a compliance request")
	}
	if resolutionNote == "" {
		return shared.NewDomainError("INVALID_RESOLUTION", "Resolution note is required to resolve a compliance request")
	}

	now := time.Now()
	r.Status = RequestResolved
	r.ResolvedBy = resolvedBy
	r.ResolvedAt = &now
	r.ResolutionNote = resolutionNote
	r.UpdatedAt = now

	r.AddDomainEvent(NewComplianceRequestResolvedEvent(r))

	return nil
}

// IsResolved returns true if the request is resolved
func (r *ComplianceRequest) IsResolved() bool {
	return r.Status == RequestResolved
}
