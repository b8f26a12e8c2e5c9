package dashboard

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/ginvoice/backend/internal/application/capability"
	"github.com/ginvoice/backend/internal/domain/billing"
	"github.com/ginvoice/backend/internal/domain/compliance"
	"github.com/ginvoice/backend/internal/domain/invoicing"
	"github.com/ginvoice/backend/internal/domain/shared"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// DefaultQueueSize bounds the global work queue
const DefaultQueueSize = 20

// expiryAlertWindowDays mirrors the vendor document warning window
const expiryAlertWindowDays = 30

// Service is the read-only dashboard aggregator. It owns no state: every
// Refresh derives the snapshot from the live tables through independent
// queries that run concurrently without a shared transaction. Two refreshes
// with no writes in between return the same snapshot.
type Service struct {
	jobs       compliance.JobRepository
	vendors    compliance.VendorRepository
	requests   compliance.ComplianceRequestRepository
	items      billing.IntakeItemRepository
	invoices   invoicing.ClientInvoiceRepository
	deliveries invoicing.DeliveryRepository
	tasks      invoicing.PlatformTaskRepository
	changeLog  shared.ChangeLogRepository
	queueSize  int
	logger     *zap.Logger
}

// NewService creates a new dashboard Service. queueSize <= 0 falls back to
// DefaultQueueSize.
func NewService(
	jobs compliance.JobRepository,
	vendors compliance.VendorRepository,
	requests compliance.ComplianceRequestRepository,
	items billing.IntakeItemRepository,
	invoices invoicing.ClientInvoiceRepository,
	deliveries invoicing.DeliveryRepository,
	tasks invoicing.PlatformTaskRepository,
	changeLog shared.ChangeLogRepository,
	queueSize int,
	logger *zap.Logger,
) *Service {
	if queueSize <= 0 {
		queueSize = DefaultQueueSize
	}
	return &Service{
		jobs:       jobs,
		vendors:    vendors,
		requests:   requests,
		items:      items,
		invoices:   invoices,
		deliveries: deliveries,
		tasks:      tasks,
		changeLog:  changeLog,
		queueSize:  queueSize,
		logger:     logger,
	}
}

// Refresh assembles a full dashboard snapshot as of now. Side-effect free
// and idempotent; the queries fan out concurrently.
func (s *Service) Refresh(ctx context.Context, actor capability.Actor) (*Snapshot, error) {
	if err := capability.Require(actor, capability.DashboardRead); err != nil {
		return nil, err
	}

	now := time.Now()
	snapshot := &Snapshot{GeneratedAt: now}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		counts, err := s.collectCounts(gctx, now)
		if err != nil {
			return err
		}
		snapshot.Counts = counts
		return nil
	})
	g.Go(func() error {
		alerts, err := s.collectAlerts(gctx, now)
		if err != nil {
			return err
		}
		snapshot.Alerts = alerts
		return nil
	})
	g.Go(func() error {
		queue, err := s.collectWorkQueue(gctx)
		if err != nil {
			return err
		}
		snapshot.WorkQueue = queue
		return nil
	})
	g.Go(func() error {
		events, err := s.collectRecentEvents(gctx)
		if err != nil {
			return err
		}
		snapshot.RecentEvents = events
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	s.logger.Debug("dashboard refreshed",
		zap.Int("alerts", len(snapshot.Alerts)),
		zap.Int("work_queue", len(snapshot.WorkQueue)),
		zap.String("actor", actor.Name))

	return snapshot, nil
}

func (s *Service) collectCounts(ctx context.Context, now time.Time) (Counts, error) {
	var counts Counts

	g, gctx := errgroup.WithContext(ctx)

	count := func(dst *int64, query func(context.Context) (int64, error)) {
		g.Go(func() error {
			n, err := query(gctx)
			if err != nil {
				return err
			}
			*dst = n
			return nil
		})
	}

	count(&counts.IntakeAwaitingReview, func(ctx context.Context) (int64, error) {
		return s.items.CountByStatuses(ctx,
			billing.IntakeStatusDraft, billing.IntakeStatusSubmitted,
			billing.IntakeStatusNeedsInfo, billing.IntakeStatusPendingApproval)
	})
	count(&counts.IntakeUttaiBlocked, func(ctx context.Context) (int64, error) {
		return s.items.CountActiveByClearanceSnapshot(ctx, compliance.ClearanceBlocked)
	})
	count(&counts.IntakeComplianceFlags, func(ctx context.Context) (int64, error) {
		return s.items.CountActiveByVendorSnapshot(ctx, compliance.VendorExpiringSoon, compliance.VendorNonCompliant)
	})
	count(&counts.IntakeAccountingQueue, func(ctx context.Context) (int64, error) {
		return s.items.CountByStatuses(ctx, billing.IntakeStatusSentToAccounting)
	})
	count(&counts.IntakeReadyToBill, func(ctx context.Context) (int64, error) {
		return s.items.CountByStatuses(ctx, billing.IntakeStatusPosted, billing.IntakeStatusReadyToBill)
	})
	count(&counts.InvoicesReadyForSap, func(ctx context.Context) (int64, error) {
		return s.invoices.CountByStatuses(ctx, invoicing.InvoiceStatusReadyForSap)
	})
	count(&counts.InvoicesIssuedToday, func(ctx context.Context) (int64, error) {
		from := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
		return s.invoices.CountIssuedBetween(ctx, from, from.Add(24*time.Hour))
	})
	count(&counts.PendingDeliveries, func(ctx context.Context) (int64, error) {
		return s.deliveries.CountByStatus(ctx, invoicing.DeliveryStatusPending)
	})
	count(&counts.OverduePlatformTasks, func(ctx context.Context) (int64, error) {
		return s.tasks.CountOverdue(ctx, now)
	})
	count(&counts.OpenComplianceRequests, func(ctx context.Context) (int64, error) {
		open, err := s.requests.FindOpen(ctx)
		if err != nil {
			return 0, err
		}
		return int64(len(open)), nil
	})

	if err := g.Wait(); err != nil {
		return Counts{}, err
	}
	return counts, nil
}

func (s *Service) collectAlerts(ctx context.Context, now time.Time) ([]Alert, error) {
	alerts := make([]Alert, 0)

	jobs, err := s.jobs.FindByClearance(ctx, compliance.ClearanceBlocked, compliance.ClearancePendingReview)
	if err != nil {
		return nil, err
	}
	for i := range jobs {
		job := &jobs[i]
		severity := "warning"
		if job.Clearance == compliance.ClearanceBlocked {
			severity = "critical"
		}
		id := job.ID
		alerts = append(alerts, Alert{
			Kind:     AlertKindJobClearance,
			Severity: severity,
			Message:  fmt.Sprintf("Job %s (%s) clearance is %s", job.Code, job.ClientName, job.Clearance),
			EntityID: &id,
		})
	}

	docs, err := s.vendors.FindDocumentsExpiringWithin(ctx, expiryAlertWindowDays)
	if err != nil {
		return nil, err
	}
	for i := range docs {
		doc := &docs[i]
		id := doc.VendorID
		alerts = append(alerts, Alert{
			Kind:     AlertKindVendorDocumentExpiry,
			Severity: "warning",
			Message:  fmt.Sprintf("Vendor document %s expires %s", doc.Name, doc.ExpiresAt.Format("2006-01-02")),
			EntityID: &id,
		})
	}

	invoices, err := s.invoices.FindMissingDocument(ctx, invoicing.InvoiceStatusDraft, invoicing.InvoiceStatusReadyForSap)
	if err != nil {
		return nil, err
	}
	for i := range invoices {
		invoice := &invoices[i]
		id := invoice.ID
		alerts = append(alerts, Alert{
			Kind:     AlertKindInvoiceMissingDoc,
			Severity: "warning",
			Message:  fmt.Sprintf("Invoice %s has no attached document", invoice.ExternalInvoiceNumber),
			Link:     fmt.Sprintf("/invoices/%s", invoice.ID),
			EntityID: &id,
		})
	}

	overdue, err := s.tasks.CountOverdue(ctx, now)
	if err != nil {
		return nil, err
	}
	if overdue > 0 {
		alerts = append(alerts, Alert{
			Kind:     AlertKindOverduePlatformTasks,
			Severity: "critical",
			Message:  fmt.Sprintf("%d platform tasks are past their SLA deadline", overdue),
		})
	}

	pending, err := s.deliveries.CountByStatus(ctx, invoicing.DeliveryStatusPending)
	if err != nil {
		return nil, err
	}
	if pending > 0 {
		alerts = append(alerts, Alert{
			Kind:     AlertKindPendingDeliveries,
			Severity: "info",
			Message:  fmt.Sprintf("%d deliveries are waiting to be sent", pending),
		})
	}

	return alerts, nil
}

func (s *Service) collectWorkQueue(ctx context.Context) ([]WorkQueueEntry, error) {
	queue := make([]WorkQueueEntry, 0)

	items, err := s.items.FindByStatuses(ctx,
		billing.IntakeStatusSubmitted, billing.IntakeStatusNeedsInfo,
		billing.IntakeStatusPendingApproval, billing.IntakeStatusSentToAccounting,
		billing.IntakeStatusPosted)
	if err != nil {
		return nil, err
	}
	for i := range items {
		item := &items[i]
		queue = append(queue, WorkQueueEntry{
			Kind:      QueueKindIntakeItem,
			EntityID:  item.ID,
			Label:     fmt.Sprintf("%s — %s", item.InvoiceNumber, item.Concept),
			Status:    item.Status.String(),
			Link:      fmt.Sprintf("/intake/%s", item.ID),
			CreatedAt: item.CreatedAt,
		})
	}

	invoices, err := s.invoices.FindByStatuses(ctx, invoicing.InvoiceStatusDraft, invoicing.InvoiceStatusReadyForSap)
	if err != nil {
		return nil, err
	}
	for i := range invoices {
		invoice := &invoices[i]
		queue = append(queue, WorkQueueEntry{
			Kind:      QueueKindInvoice,
			EntityID:  invoice.ID,
			Label:     fmt.Sprintf("Invoice %s", invoice.ExternalInvoiceNumber),
			Status:    invoice.Status.String(),
			Link:      fmt.Sprintf("/invoices/%s", invoice.ID),
			CreatedAt: invoice.CreatedAt,
		})
	}

	tasks, err := s.tasks.FindOpen(ctx)
	if err != nil {
		return nil, err
	}
	for i := range tasks {
		task := &tasks[i]
		queue = append(queue, WorkQueueEntry{
			Kind:      QueueKindPlatformTask,
			EntityID:  task.ID,
			Label:     fmt.Sprintf("%s submission due %s", task.PlatformName, task.SlaDueAt.Format("2006-01-02")),
			Status:    task.Status.String(),
			Link:      fmt.Sprintf("/platform-tasks/%s", task.ID),
			CreatedAt: task.CreatedAt,
		})
	}

	// Global order: newest first, then truncate
	sort.Slice(queue, func(i, j int) bool {
		return queue[i].CreatedAt.After(queue[j].CreatedAt)
	})
	if len(queue) > s.queueSize {
		queue = queue[:s.queueSize]
	}

	return queue, nil
}

func (s *Service) collectRecentEvents(ctx context.Context) ([]RecentEvent, error) {
	entries, err := s.changeLog.FindRecent(ctx, s.queueSize)
	if err != nil {
		return nil, err
	}
	events := make([]RecentEvent, 0, len(entries))
	for i := range entries {
		entry := &entries[i]
		events = append(events, RecentEvent{
			EventType:     entry.EventType,
			AggregateType: entry.AggregateType,
			AggregateID:   entry.AggregateID,
			Actor:         entry.Actor,
			OccurredAt:    entry.CreatedAt,
		})
	}
	return events, nil
}
