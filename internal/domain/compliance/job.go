package compliance

import (
	"fmt"
	"time"

	"github.com/ginvoice/backend/internal/domain/shared"
)

// ClearanceStatus is the UTTAI withholding-tax clearance status of a job
type ClearanceStatus string

const (
	ClearanceClear         ClearanceStatus = "clear"
	ClearanceBlocked       ClearanceStatus = "blocked"
	ClearancePendingReview ClearanceStatus = "pending_review"
)

// IsValid checks if the status is a valid ClearanceStatus
func (s ClearanceStatus) IsValid() bool {
	switch s {
	case ClearanceClear, ClearanceBlocked, ClearancePendingReview:
		return true
	}
	return false
}

// String returns the string representation of ClearanceStatus
func (s ClearanceStatus) String() string {
	return string(s)
}

// RequiresAttention reports whether the clearance should raise a dashboard alert
func (s ClearanceStatus) RequiresAttention() bool {
	return s == ClearanceBlocked || s == ClearancePendingReview
}

// Job represents a client engagement. Its clearance status is mutated only
// through the compliance-request workflow; jobs are archived, never deleted,
// because every related row is audit trail.
type Job struct {
	shared.BaseAggregateRoot
	Code                 string
	ClientName           string
	Clearance            ClearanceStatus
	SubjectToWithholding *bool
	Archived             bool
}

// NewJob creates a new job in clear status
func NewJob(code, clientName string) (*Job, error) {
	if code == "" {
		return nil, shared.NewDomainError("INVALID_JOB_CODE", "Job code cannot be empty")
	}
	if clientName == "" {
		return nil, shared.NewDomainError("INVALID_CLIENT_NAME", "Client name cannot be empty")
	}

	job := &Job{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Code:              code,
		ClientName:        clientName,
		Clearance:         ClearanceClear,
	}

	job.AddDomainEvent(NewJobCreatedEvent(job))

	return job, nil
}

// SetClearance updates the clearance status. Only the compliance-request
// workflow calls this; intake snapshots taken earlier are unaffected.
func (j *Job) SetClearance(status ClearanceStatus) error {
	if !status.IsValid() {
		return shared.NewDomainError("INVALID_CLEARANCE", fmt.Sprintf("Unknown clearance status %q", status))
	}
	if j.Archived {
		return shared.NewDomainError("INVALID_STATE", "Cannot change clearance of an archived job")
	}

	previous := j.Clearance
	j.Clearance = status
	j.UpdatedAt = time.Now()

	j.AddDomainEvent(NewJobClearanceChangedEvent(j, previous))

	return nil
}

// SetSubjectToWithholding flags the job as subject to withholding tax
func (j *Job) SetSubjectToWithholding(subject bool) {
	j.SubjectToWithholding = &subject
	j.UpdatedAt = time.Now()
}

// Archive marks the job as archived; archived jobs accept no further changes
func (j *Job) Archive() error {
	if j.Archived {
		return shared.NewDomainError("INVALID_STATE", "Job is already archived")
	}
	j.Archived = true
	j.UpdatedAt = time.Now()
	return nil
}
