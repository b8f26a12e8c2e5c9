package billing

import (
	"context"
	"fmt"

	"github.com/ginvoice/backend/internal/application/capability"
	"github.com/ginvoice/backend/internal/domain/billing"
	"github.com/ginvoice/backend/internal/domain/shared"
	"github.com/ginvoice/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// BatchService handles billing batch aggregation: membership, per-item
// dispositions and partner approval. Totals are recomputed inside the
// aggregate; this service only guards cross-aggregate rules.
type BatchService struct {
	batches billing.BillingBatchRepository
	items   billing.IntakeItemRepository
	logger  *zap.Logger
}

// NewBatchService creates a new BatchService
func NewBatchService(batches billing.BillingBatchRepository, items billing.IntakeItemRepository, logger *zap.Logger) *BatchService {
	return &BatchService{
		batches: batches,
		items:   items,
		logger:  logger,
	}
}

// Create opens an empty batch for a job
func (s *BatchService) Create(ctx context.Context, actor capability.Actor, req CreateBatchRequest) (*BillingBatchResponse, error) {
	if err := capability.Require(actor, capability.BillingDecide); err != nil {
		return nil, err
	}

	currency := valueobject.Currency(req.Currency)
	if req.Currency == "" {
		currency = valueobject.DefaultCurrency
	}

	batch, err := billing.NewBillingBatch(req.JobID, currency)
	if err != nil {
		return nil, err
	}
	if err := s.batches.Save(ctx, batch); err != nil {
		return nil, err
	}

	s.logger.Info("billing batch created",
		zap.String("batch_id", batch.ID.String()),
		zap.String("job_id", batch.JobID.String()),
		zap.String("actor", actor.Name))

	response := ToBillingBatchResponse(batch)
	return &response, nil
}

// GetByID retrieves a batch by ID, members included
func (s *BatchService) GetByID(ctx context.Context, batchID uuid.UUID) (*BillingBatchResponse, error) {
	batch, err := s.batches.FindByID(ctx, batchID)
	if err != nil {
		return nil, err
	}
	response := ToBillingBatchResponse(batch)
	return &response, nil
}

// List lists batches with filtering
func (s *BatchService) List(ctx context.Context, filter shared.Filter) ([]BillingBatchResponse, error) {
	batches, err := s.batches.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	responses := make([]BillingBatchResponse, 0, len(batches))
	for i := range batches {
		responses = append(responses, ToBillingBatchResponse(&batches[i]))
	}
	return responses, nil
}

// AddToBatch adds a billable intake item as an undecided member. An item
// that is an emit or undecided member of another live batch cannot join;
// transfer and discard members can.
func (s *BatchService) AddToBatch(ctx context.Context, actor capability.Actor, batchID uuid.UUID, req AddToBatchRequest) (*BillingBatchResponse, error) {
	if err := capability.Require(actor, capability.BillingDecide); err != nil {
		return nil, err
	}

	batch, err := s.batches.FindByID(ctx, batchID)
	if err != nil {
		return nil, err
	}
	item, err := s.items.FindByID(ctx, req.IntakeItemID)
	if err != nil {
		return nil, err
	}

	active, err := s.batches.HasActiveMembership(ctx, item.ID, batch.ID)
	if err != nil {
		return nil, err
	}
	if active {
		return nil, shared.NewDomainError("ALREADY_MEMBER", fmt.Sprintf("Item %s is already an active member of another batch", item.InvoiceNumber))
	}

	if _, err := batch.AddItem(item); err != nil {
		return nil, err
	}
	if err := s.batches.SaveWithLock(ctx, batch); err != nil {
		return nil, err
	}

	s.logger.Info("item added to billing batch",
		zap.String("batch_id", batch.ID.String()),
		zap.String("item_id", item.ID.String()),
		zap.String("actor", actor.Name))

	response := ToBillingBatchResponse(batch)
	return &response, nil
}

// SetDecision records a member's disposition and persists the recomputed
// totals atomically with it
func (s *BatchService) SetDecision(ctx context.Context, actor capability.Actor, batchID, batchItemID uuid.UUID, req SetDecisionRequest) (*BillingBatchResponse, error) {
	if err := capability.Require(actor, capability.BillingDecide); err != nil {
		return nil, err
	}

	batch, err := s.batches.FindByID(ctx, batchID)
	if err != nil {
		return nil, err
	}
	if err := batch.SetDecision(batchItemID, billing.BatchDecision(req.Decision)); err != nil {
		return nil, err
	}
	if err := s.batches.SaveWithLock(ctx, batch); err != nil {
		return nil, err
	}

	s.logger.Info("batch decision set",
		zap.String("batch_id", batch.ID.String()),
		zap.String("batch_item_id", batchItemID.String()),
		zap.String("decision", req.Decision),
		zap.String("total_amount", batch.TotalAmount.String()),
		zap.String("actor", actor.Name))

	response := ToBillingBatchResponse(batch)
	return &response, nil
}

// ApproveByPartner signs off the decisions and queues the batch for the
// accounting interface
func (s *BatchService) ApproveByPartner(ctx context.Context, actor capability.Actor, batchID uuid.UUID) (*BillingBatchResponse, error) {
	if err := capability.Require(actor, capability.BillingDecide); err != nil {
		return nil, err
	}

	batch, err := s.batches.FindByID(ctx, batchID)
	if err != nil {
		return nil, err
	}
	if err := batch.ApproveByPartner(); err != nil {
		return nil, err
	}
	if err := s.batches.SaveWithLock(ctx, batch); err != nil {
		return nil, err
	}

	s.logger.Info("billing batch approved",
		zap.String("batch_id", batch.ID.String()),
		zap.String("total_amount", batch.TotalAmount.String()),
		zap.String("actor", actor.Name))

	response := ToBillingBatchResponse(batch)
	return &response, nil
}

// MarkInvoiceDraft readies an approved batch for invoice issuance
func (s *BatchService) MarkInvoiceDraft(ctx context.Context, actor capability.Actor, batchID uuid.UUID) (*BillingBatchResponse, error) {
	if err := capability.Require(actor, capability.BillingDecide); err != nil {
		return nil, err
	}

	batch, err := s.batches.FindByID(ctx, batchID)
	if err != nil {
		return nil, err
	}
	if err := batch.MarkInvoiceDraft(); err != nil {
		return nil, err
	}
	if err := s.batches.SaveWithLock(ctx, batch); err != nil {
		return nil, err
	}

	response := ToBillingBatchResponse(batch)
	return &response, nil
}
