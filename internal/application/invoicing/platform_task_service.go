package invoicing

import (
	"context"
	"time"

	"github.com/ginvoice/backend/internal/application/capability"
	"github.com/ginvoice/backend/internal/domain/invoicing"
	"github.com/ginvoice/backend/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// PlatformTaskService tracks portal submissions. Creating a task for an
// invoice routes that invoice through the platform branch; completing it
// closes the invoice. Overdue is always derived against the wall clock.
type PlatformTaskService struct {
	tasks      invoicing.PlatformTaskRepository
	invoices   invoicing.ClientInvoiceRepository
	deliveries invoicing.DeliveryRepository
	logger     *zap.Logger
}

// NewPlatformTaskService creates a new PlatformTaskService
func NewPlatformTaskService(tasks invoicing.PlatformTaskRepository, invoices invoicing.ClientInvoiceRepository, deliveries invoicing.DeliveryRepository, logger *zap.Logger) *PlatformTaskService {
	return &PlatformTaskService{
		tasks:      tasks,
		invoices:   invoices,
		deliveries: deliveries,
		logger:     logger,
	}
}

// Create opens a portal task. When linked to an invoice, the invoice is
// routed to platform_required and must not already have an email delivery;
// the two confirmation routes are exclusive.
func (s *PlatformTaskService) Create(ctx context.Context, actor capability.Actor, req CreatePlatformTaskRequest) (*PlatformTaskResponse, error) {
	if err := capability.Require(actor, capability.PlatformTrack); err != nil {
		return nil, err
	}

	if req.InvoiceID != nil {
		invoice, err := s.invoices.FindByID(ctx, *req.InvoiceID)
		if err != nil {
			return nil, err
		}

		deliveries, err := s.deliveries.FindByInvoice(ctx, invoice.ID)
		if err != nil {
			return nil, err
		}
		for i := range deliveries {
			if deliveries[i].Type == invoicing.DeliveryTypeEmail {
				return nil, shared.NewDomainError("INVALID_STATE", "Invoice already has a direct delivery; platform tracking is not available")
			}
		}

		if err := invoice.RequirePlatform(); err != nil {
			return nil, err
		}

		task, err := invoicing.NewPlatformTask(req.InvoiceID, req.PlatformName, req.SlaDueAt)
		if err != nil {
			return nil, err
		}

		// One transaction: a conflict on the invoice must not leave an
		// orphan open task behind, which would block direct delivery
		if err := s.tasks.CreateWithInvoice(ctx, task, invoice); err != nil {
			return nil, err
		}

		s.logger.Info("platform task created",
			zap.String("task_id", task.ID.String()),
			zap.String("invoice_id", invoice.ID.String()),
			zap.Time("sla_due_at", task.SlaDueAt),
			zap.String("actor", actor.Name))

		response := ToPlatformTaskResponse(task, time.Now())
		return &response, nil
	}

	task, err := invoicing.NewPlatformTask(nil, req.PlatformName, req.SlaDueAt)
	if err != nil {
		return nil, err
	}
	if err := s.tasks.Save(ctx, task); err != nil {
		return nil, err
	}

	response := ToPlatformTaskResponse(task, time.Now())
	return &response, nil
}

// GetByID retrieves a task by ID
func (s *PlatformTaskService) GetByID(ctx context.Context, taskID uuid.UUID) (*PlatformTaskResponse, error) {
	task, err := s.tasks.FindByID(ctx, taskID)
	if err != nil {
		return nil, err
	}
	response := ToPlatformTaskResponse(task, time.Now())
	return &response, nil
}

// List lists tasks with filtering
func (s *PlatformTaskService) List(ctx context.Context, filter shared.Filter) ([]PlatformTaskResponse, error) {
	tasks, err := s.tasks.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	responses := make([]PlatformTaskResponse, 0, len(tasks))
	for i := range tasks {
		responses = append(responses, ToPlatformTaskResponse(&tasks[i], now))
	}
	return responses, nil
}

// ListOverdue lists non-completed tasks past their SLA deadline
func (s *PlatformTaskService) ListOverdue(ctx context.Context) ([]PlatformTaskResponse, error) {
	now := time.Now()
	tasks, err := s.tasks.FindOverdue(ctx, now)
	if err != nil {
		return nil, err
	}
	responses := make([]PlatformTaskResponse, 0, len(tasks))
	for i := range tasks {
		responses = append(responses, ToPlatformTaskResponse(&tasks[i], now))
	}
	return responses, nil
}

// Start moves a pending task into active work
func (s *PlatformTaskService) Start(ctx context.Context, actor capability.Actor, taskID uuid.UUID) (*PlatformTaskResponse, error) {
	return s.mutate(ctx, actor, taskID, "started", func(task *invoicing.PlatformTask) error {
		return task.Start()
	})
}

// Block parks the task on an exception
func (s *PlatformTaskService) Block(ctx context.Context, actor capability.Actor, taskID uuid.UUID, req BlockPlatformTaskRequest) (*PlatformTaskResponse, error) {
	return s.mutate(ctx, actor, taskID, "blocked", func(task *invoicing.PlatformTask) error {
		return task.Block(req.Note)
	})
}

// Retry resumes a blocked task
func (s *PlatformTaskService) Retry(ctx context.Context, actor capability.Actor, taskID uuid.UUID) (*PlatformTaskResponse, error) {
	return s.mutate(ctx, actor, taskID, "retried", func(task *invoicing.PlatformTask) error {
		return task.Retry()
	})
}

// Complete closes the task and, when linked, completes the invoice's
// platform branch
func (s *PlatformTaskService) Complete(ctx context.Context, actor capability.Actor, taskID uuid.UUID, req CompletePlatformTaskRequest) (*PlatformTaskResponse, error) {
	if err := capability.Require(actor, capability.PlatformTrack); err != nil {
		return nil, err
	}

	task, err := s.tasks.FindByID(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if err := task.Complete(req.CompletedAt, req.EvidenceDocRef); err != nil {
		return nil, err
	}

	if task.InvoiceID != nil {
		invoice, err := s.invoices.FindByID(ctx, *task.InvoiceID)
		if err != nil {
			return nil, err
		}
		if err := invoice.CompletePlatform(); err != nil {
			return nil, err
		}
		// Task completion and the invoice's platform close commit together
		if err := s.tasks.SaveWithInvoice(ctx, task, invoice); err != nil {
			return nil, err
		}
	} else if err := s.tasks.SaveWithLock(ctx, task); err != nil {
		return nil, err
	}

	s.logger.Info("platform task completed",
		zap.String("task_id", task.ID.String()),
		zap.String("actor", actor.Name))

	response := ToPlatformTaskResponse(task, time.Now())
	return &response, nil
}

func (s *PlatformTaskService) mutate(ctx context.Context, actor capability.Actor, taskID uuid.UUID, action string, op func(*invoicing.PlatformTask) error) (*PlatformTaskResponse, error) {
	if err := capability.Require(actor, capability.PlatformTrack); err != nil {
		return nil, err
	}

	task, err := s.tasks.FindByID(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if err := op(task); err != nil {
		return nil, err
	}
	if err := s.tasks.SaveWithLock(ctx, task); err != nil {
		return nil, err
	}

	s.logger.Info("platform task "+action,
		zap.String("task_id", task.ID.String()),
		zap.String("status", task.Status.String()),
		zap.String("actor", actor.Name))

	response := ToPlatformTaskResponse(task, time.Now())
	return &response, nil
}
