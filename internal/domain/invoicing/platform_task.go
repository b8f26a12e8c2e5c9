package invoicing

import (
	"fmt"
	"time"

	"github.com/ginvoice/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// TaskStatus represents the lifecycle status of a platform task
type TaskStatus string

const (
	TaskStatusPending    TaskStatus = "pending"
	TaskStatusInProgress TaskStatus = "in_progress"
	TaskStatusBlocked    TaskStatus = "blocked"
	TaskStatusCompleted  TaskStatus = "completed"
)

// IsValid checks if the status is a valid TaskStatus
func (s TaskStatus) IsValid() bool {
	switch s {
	case TaskStatusPending, TaskStatusInProgress, TaskStatusBlocked, TaskStatusCompleted:
		return true
	}
	return false
}

// String returns the string representation of TaskStatus
func (s TaskStatus) String() string {
	return string(s)
}

// CanTransitionTo checks if the status can transition to the target status
func (s TaskStatus) CanTransitionTo(target TaskStatus) bool {
	switch s {
	case TaskStatusPending:
		return target == TaskStatusInProgress
	case TaskStatusInProgress:
		return target == TaskStatusCompleted || target == TaskStatusBlocked
	case TaskStatusBlocked:
		return target == TaskStatusInProgress // retry
	case TaskStatusCompleted:
		return false // terminal
	}
	return false
}

// PlatformTask tracks one deadline-bound submission through a client's
// billing portal. Overdue is never stored: it is derived from the SLA
// deadline and the wall clock at read time, so completing a task flips the
// derived flag with nothing to keep in sync.
type PlatformTask struct {
	shared.BaseAggregateRoot
	InvoiceID      *uuid.UUID
	PlatformName   string
	SlaDueAt       time.Time
	Status         TaskStatus
	Notes          string
	CompletedAt    *time.Time
	EvidenceDocRef string
}

// NewPlatformTask creates a pending portal task. invoiceID is nil for
// submissions tracked before the invoice exists.
func NewPlatformTask(invoiceID *uuid.UUID, platformName string, slaDueAt time.Time) (*PlatformTask, error) {
	if platformName == "" {
		return nil, shared.NewDomainError("INVALID_PLATFORM", "Platform name cannot be empty")
	}
	if slaDueAt.IsZero() {
		return nil, shared.NewDomainError("INVALID_SLA", "SLA deadline is required")
	}

	task := &PlatformTask{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		InvoiceID:         invoiceID,
		PlatformName:      platformName,
		SlaDueAt:          slaDueAt,
		Status:            TaskStatusPending,
	}

	task.AddDomainEvent(NewPlatformTaskCreatedEvent(task))

	return task, nil
}

// IsOverdue reports whether the task has missed its SLA deadline as of the
// given instant. Pure derivation, no state is touched.
func (t *PlatformTask) IsOverdue(now time.Time) bool {
	return t.Status != TaskStatusCompleted && now.After(t.SlaDueAt)
}

// Start moves the task into active work
func (t *PlatformTask) Start() error {
	return t.transition(TaskStatusInProgress, "start")
}

// Block parks the task on an exception; the note explains what is stuck
func (t *PlatformTask) Block(note string) error {
	if note == "" {
		return shared.NewDomainError("INVALID_NOTE", "Blocking a task requires an exception note")
	}
	if err := t.transition(TaskStatusBlocked, "block"); err != nil {
		return err
	}
	t.Notes = note
	return nil
}

// Retry resumes a blocked task
func (t *PlatformTask) Retry() error {
	if t.Status != TaskStatusBlocked {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot retry task in %s status", t.Status))
	}
	return t.transition(TaskStatusInProgress, "retry")
}

// Complete closes the task. The completion timestamp is mandatory, the
// evidence document reference is not.
func (t *PlatformTask) Complete(completedAt time.Time, evidenceDocRef string) error {
	if completedAt.IsZero() {
		return shared.NewDomainError("INVALID_TIMESTAMP", "Completion timestamp is required")
	}
	if err := t.transition(TaskStatusCompleted, "complete"); err != nil {
		return err
	}
	t.CompletedAt = &completedAt
	t.EvidenceDocRef = evidenceDocRef

	t.AddDomainEvent(NewPlatformTaskCompletedEvent(t))

	return nil
}

// AddNote appends a free-text exception note
func (t *PlatformTask) AddNote(note string) error {
	if note == "" {
		return shared.NewDomainError("INVALID_NOTE", "Note cannot be empty")
	}
	if t.Status == TaskStatusCompleted {
		return shared.NewDomainError("INVALID_STATE", "Cannot annotate a completed task")
	}
	if t.Notes == "" {
		t.Notes = note
	} else {
		t.Notes = t.Notes + "\n" + note
	}
	t.UpdatedAt = time.Now()
	return nil
}

func (t *PlatformTask) transition(target TaskStatus, action string) error {
	if !t.Status.CanTransitionTo(target) {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot %s task in %s status", action, t.Status))
	}
	t.Status = target
	t.UpdatedAt = time.Now()
	return nil
}
