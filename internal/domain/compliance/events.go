package compliance

import (
	"github.com/ginvoice/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Aggregate type constants
const (
	AggregateTypeJob               = "Job"
	AggregateTypeVendor            = "Vendor"
	AggregateTypeComplianceRequest = "ComplianceRequest"
)

// Event type constants
const (
	EventTypeJobCreated                = "JobCreated"
	EventTypeJobClearanceChanged       = "JobClearanceChanged"
	EventTypeVendorCreated             = "VendorCreated"
	EventTypeVendorComplianceChanged   = "VendorComplianceChanged"
	EventTypeComplianceRequestOpened   = "ComplianceRequestOpened"
	EventTypeComplianceRequestResolved = "ComplianceRequestResolved"
)

// JobCreatedEvent is raised when a new job is created
type JobCreatedEvent struct {
	shared.BaseDomainEvent
	JobID      uuid.UUID `json:"job_id"`
	Code       string    `json:"code"`
	ClientName string    `json:"client_name"`
}

// NewJobCreatedEvent creates a new JobCreatedEvent
func NewJobCreatedEvent(job *Job) *JobCreatedEvent {
	return &JobCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeJobCreated, AggregateTypeJob, job.ID),
		JobID:           job.ID,
		Code:            job.Code,
		ClientName:      job.ClientName,
	}
}

// EventType returns the event type name
func (e *JobCreatedEvent) EventType() string {
	return EventTypeJobCreated
}

// JobClearanceChangedEvent is raised when a job's UTTAI clearance changes
type JobClearanceChangedEvent struct {
	shared.BaseDomainEvent
	JobID             uuid.UUID       `json:"job_id"`
	PreviousClearance ClearanceStatus `json:"previous_clearance"`
	Clearance         ClearanceStatus `json:"clearance"`
}

// NewJobClearanceChangedEvent creates a new JobClearanceChangedEvent
func NewJobClearanceChangedEvent(job *Job, previous ClearanceStatus) *JobClearanceChangedEvent {
	return &JobClearanceChangedEvent{
		BaseDomainEvent:   shared.NewBaseDomainEvent(EventTypeJobClearanceChanged, AggregateTypeJob, job.ID),
		JobID:             job.ID,
		PreviousClearance: previous,
		Clearance:         job.Clearance,
	}
}

// EventType returns the event type name
func (e *JobClearanceChangedEvent) EventType() string {
	return EventTypeJobClearanceChanged
}

// VendorCreatedEvent is raised when a new vendor is registered
type VendorCreatedEvent struct {
	shared.BaseDomainEvent
	VendorID uuid.UUID `json:"vendor_id"`
	Name     string    `json:"name"`
}

// NewVendorCreatedEvent creates a new VendorCreatedEvent
func NewVendorCreatedEvent(vendor *Vendor) *VendorCreatedEvent {
	return &VendorCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeVendorCreated, AggregateTypeVendor, vendor.ID),
		VendorID:        vendor.ID,
		Name:            vendor.Name,
	}
}

// EventType returns the event type name
func (e *VendorCreatedEvent) EventType() string {
	return EventTypeVendorCreated
}

// VendorComplianceChangedEvent is raised when the derived vendor compliance
// status changes
type VendorComplianceChangedEvent struct {
	shared.BaseDomainEvent
	VendorID         uuid.UUID              `json:"vendor_id"`
	PreviousStatus   VendorComplianceStatus `json:"previous_status"`
	ComplianceStatus VendorComplianceStatus `json:"compliance_status"`
}

// NewVendorComplianceChangedEvent creates a new VendorComplianceChangedEvent
func NewVendorComplianceChangedEvent(vendor *Vendor, previous VendorComplianceStatus) *VendorComplianceChangedEvent {
	return &VendorComplianceChangedEvent{
		BaseDomainEvent:  shared.NewBaseDomainEvent(EventTypeVendorComplianceChanged, AggregateTypeVendor, vendor.ID),
		VendorID:         vendor.ID,
		PreviousStatus:   previous,
		ComplianceStatus: vendor.ComplianceStatus,
	}
}

// EventType returns the event type name
func (e *VendorComplianceChangedEvent) EventType() string {
	return EventTypeVendorComplianceChanged
}

// ComplianceRequestOpenedEvent is raised when a UTTAI request is opened
type ComplianceRequestOpenedEvent struct {
	shared.BaseDomainEvent
	RequestID   uuid.UUID `json:"request_id"`
	JobID       uuid.UUID `json:"job_id"`
	RequestedBy string    `json:"requested_by"`
}

// NewComplianceRequestOpenedEvent creates a new ComplianceRequestOpenedEvent
func NewComplianceRequestOpenedEvent(req *ComplianceRequest) *ComplianceRequestOpenedEvent {
	return &ComplianceRequestOpenedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeComplianceRequestOpened, AggregateTypeComplianceRequest, req.ID),
		RequestID:       req.ID,
		JobID:           req.JobID,
		RequestedBy:     req.RequestedBy,
	}
}

// EventType returns the event type name
func (e *ComplianceRequestOpenedEvent) EventType() string {
	return EventTypeComplianceRequestOpened
}

// ComplianceRequestResolvedEvent is raised when a UTTAI request is resolved
type ComplianceRequestResolvedEvent struct {
	shared.BaseDomainEvent
	RequestID  uuid.UUID `json:"request_id"`
	JobID      uuid.UUID `json:"job_id"`
	ResolvedBy string    `json:"resolved_by"`
}

// NewComplianceRequestResolvedEvent creates a new ComplianceRequestResolvedEvent
func NewComplianceRequestResolvedEvent(req *ComplianceRequest) *ComplianceRequestResolvedEvent {
	return &ComplianceRequestResolvedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeComplianceRequestResolved, AggregateTypeComplianceRequest, req.ID),
		RequestID:       req.ID,
		JobID:           req.JobID,
		ResolvedBy:      req.ResolvedBy,
	}
}

// EventType returns the event type name
func (e *ComplianceRequestResolvedEvent) EventType() string {
	return EventTypeComplianceRequestResolved
}
