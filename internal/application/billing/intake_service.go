package billing

import (
	"context"
	"fmt"

	"github.com/ginvoice/backend/internal/application/capability"
	"github.com/ginvoice/backend/internal/domain/billing"
	"github.com/ginvoice/backend/internal/domain/compliance"
	"github.com/ginvoice/backend/internal/domain/shared"
	"github.com/ginvoice/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// IntakeService handles the intake item ledger: registration, review, the
// needs-info loop and approval. The compliance snapshot is captured here,
// once, at creation.
type IntakeService struct {
	items     billing.IntakeItemRepository
	snapshots *compliance.SnapshotService
	logger    *zap.Logger
}

// NewIntakeService creates a new IntakeService
func NewIntakeService(items billing.IntakeItemRepository, snapshots *compliance.SnapshotService, logger *zap.Logger) *IntakeService {
	return &IntakeService{
		items:     items,
		snapshots: snapshots,
		logger:    logger,
	}
}

// Create registers a new intake item in draft status. The compliance
// snapshot is read from the current job and vendor state and frozen onto
// the record.
func (s *IntakeService) Create(ctx context.Context, actor capability.Actor, req CreateIntakeItemRequest) (*IntakeItemResponse, error) {
	if err := capability.Require(actor, capability.IntakeWrite); err != nil {
		return nil, err
	}

	taken, err := s.items.ExistsByInvoiceNumber(ctx, req.InvoiceNumber)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, shared.NewDomainError("ALREADY_EXISTS", fmt.Sprintf("Invoice number %s is already registered", req.InvoiceNumber))
	}

	snapshot, err := s.snapshots.Capture(ctx, req.JobID, req.VendorID)
	if err != nil {
		return nil, err
	}

	currency := valueobject.Currency(req.Currency)
	if req.Currency == "" {
		currency = valueobject.DefaultCurrency
	}
	amount, err := valueobject.NewMoney(req.Amount, currency)
	if err != nil {
		return nil, shared.NewDomainError("INVALID_CURRENCY", err.Error())
	}

	item, err := billing.NewIntakeItem(billing.IntakeType(req.Type), req.JobID, req.VendorID, req.InvoiceNumber, amount, req.Concept, snapshot)
	if err != nil {
		return nil, err
	}
	if req.DocRef != "" {
		if err := item.AttachDocument(req.DocRef); err != nil {
			return nil, err
		}
	}

	if err := s.items.Save(ctx, item); err != nil {
		return nil, err
	}

	s.logger.Info("intake item created",
		zap.String("item_id", item.ID.String()),
		zap.String("invoice_number", item.InvoiceNumber),
		zap.String("uttai_snapshot", item.UttaiStatusSnapshot.String()),
		zap.String("vendor_snapshot", item.VendorComplianceSnapshot.String()),
		zap.String("actor", actor.Name))

	response := ToIntakeItemResponse(item)
	return &response, nil
}

// GetByID retrieves an intake item by ID
func (s *IntakeService) GetByID(ctx context.Context, itemID uuid.UUID) (*IntakeItemResponse, error) {
	item, err := s.items.FindByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	response := ToIntakeItemResponse(item)
	return &response, nil
}

// List lists intake items with filtering
func (s *IntakeService) List(ctx context.Context, filter shared.Filter) ([]IntakeItemResponse, error) {
	items, err := s.items.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	responses := make([]IntakeItemResponse, 0, len(items))
	for i := range items {
		responses = append(responses, ToIntakeItemResponse(&items[i]))
	}
	return responses, nil
}

// Submit submits a draft item for review
func (s *IntakeService) Submit(ctx context.Context, actor capability.Actor, itemID uuid.UUID) (*IntakeItemResponse, error) {
	return s.mutate(ctx, actor, capability.IntakeWrite, itemID, "submitted", func(item *billing.IntakeItem) error {
		return item.Submit()
	})
}

// RequestInfo sends a submitted item back to the clerk with a note
func (s *IntakeService) RequestInfo(ctx context.Context, actor capability.Actor, itemID uuid.UUID, req RequestInfoRequest) (*IntakeItemResponse, error) {
	return s.mutate(ctx, actor, capability.IntakeReview, itemID, "sent back for information", func(item *billing.IntakeItem) error {
		return item.RequestInfo(req.Note)
	})
}

// Resubmit returns a needs_info item to review
func (s *IntakeService) Resubmit(ctx context.Context, actor capability.Actor, itemID uuid.UUID) (*IntakeItemResponse, error) {
	return s.mutate(ctx, actor, capability.IntakeWrite, itemID, "resubmitted", func(item *billing.IntakeItem) error {
		return item.Resubmit()
	})
}

// SendForApproval moves a submitted item into partner review
func (s *IntakeService) SendForApproval(ctx context.Context, actor capability.Actor, itemID uuid.UUID) (*IntakeItemResponse, error) {
	return s.mutate(ctx, actor, capability.IntakeReview, itemID, "sent for approval", func(item *billing.IntakeItem) error {
		return item.SendForApproval()
	})
}

// Approve approves the item for accounting
func (s *IntakeService) Approve(ctx context.Context, actor capability.Actor, itemID uuid.UUID) (*IntakeItemResponse, error) {
	return s.mutate(ctx, actor, capability.IntakeReview, itemID, "approved", func(item *billing.IntakeItem) error {
		return item.Approve(actor.Name)
	})
}

// Reject rejects the item terminally
func (s *IntakeService) Reject(ctx context.Context, actor capability.Actor, itemID uuid.UUID, req RejectIntakeItemRequest) (*IntakeItemResponse, error) {
	return s.mutate(ctx, actor, capability.IntakeReview, itemID, "rejected", func(item *billing.IntakeItem) error {
		return item.Reject(req.Reason)
	})
}

// ResubmitAfterRejection creates a brand-new intake item as the successor of
// a rejected one, with a -Rn suffixed invoice number. The rejected original
// is untouched; it stays in the ledger as immutable history.
func (s *IntakeService) ResubmitAfterRejection(ctx context.Context, actor capability.Actor, rejectedItemID uuid.UUID, req ResubmitAfterRejectionRequest) (*IntakeItemResponse, error) {
	if err := capability.Require(actor, capability.IntakeWrite); err != nil {
		return nil, err
	}

	original, err := s.items.FindByID(ctx, rejectedItemID)
	if err != nil {
		return nil, err
	}
	if original.Status != billing.IntakeStatusRejected {
		return nil, shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Only rejected items can be resubmitted as successors; item is in %s status", original.Status))
	}

	successors, err := s.items.CountSuccessors(ctx, original.InvoiceNumber)
	if err != nil {
		return nil, err
	}
	invoiceNumber := billing.SuccessorInvoiceNumber(original.InvoiceNumber, int(successors)+1)

	snapshot, err := s.snapshots.Capture(ctx, original.JobID, original.VendorID)
	if err != nil {
		return nil, err
	}

	amount := original.AmountMoney()
	if !req.Amount.IsZero() {
		amount, err = valueobject.NewMoney(req.Amount, original.Currency)
		if err != nil {
			return nil, shared.NewDomainError("INVALID_AMOUNT", err.Error())
		}
	}
	concept := original.Concept
	if req.Concept != "" {
		concept = req.Concept
	}

	successor, err := billing.NewIntakeItem(original.Type, original.JobID, original.VendorID, invoiceNumber, amount, concept, snapshot)
	if err != nil {
		return nil, err
	}
	if req.DocRef != "" {
		if err := successor.AttachDocument(req.DocRef); err != nil {
			return nil, err
		}
	}

	if err := s.items.Save(ctx, successor); err != nil {
		return nil, err
	}

	s.logger.Info("rejected item resubmitted as successor",
		zap.String("original_id", original.ID.String()),
		zap.String("successor_id", successor.ID.String()),
		zap.String("invoice_number", invoiceNumber),
		zap.String("actor", actor.Name))

	response := ToIntakeItemResponse(successor)
	return &response, nil
}

// SendToAccounting queues an approved item for ledger posting
func (s *IntakeService) SendToAccounting(ctx context.Context, actor capability.Actor, itemID uuid.UUID) (*IntakeItemResponse, error) {
	return s.mutate(ctx, actor, capability.IntakeReview, itemID, "sent to accounting", func(item *billing.IntakeItem) error {
		return item.SendToAccounting()
	})
}

// MarkReadyToBill flags a posted item as explicitly ready for batching
func (s *IntakeService) MarkReadyToBill(ctx context.Context, actor capability.Actor, itemID uuid.UUID) (*IntakeItemResponse, error) {
	return s.mutate(ctx, actor, capability.BillingDecide, itemID, "marked ready to bill", func(item *billing.IntakeItem) error {
		return item.MarkReadyToBill()
	})
}

// Archive closes out a billed item
func (s *IntakeService) Archive(ctx context.Context, actor capability.Actor, itemID uuid.UUID) (*IntakeItemResponse, error) {
	return s.mutate(ctx, actor, capability.IntakeWrite, itemID, "archived", func(item *billing.IntakeItem) error {
		return item.Archive()
	})
}

// AttachDocument stores the storage reference of the source document
func (s *IntakeService) AttachDocument(ctx context.Context, actor capability.Actor, itemID uuid.UUID, req AttachDocumentRequest) (*IntakeItemResponse, error) {
	return s.mutate(ctx, actor, capability.IntakeWrite, itemID, "document attached", func(item *billing.IntakeItem) error {
		return item.AttachDocument(req.DocRef)
	})
}

// mutate loads the item, applies the domain operation and saves under the
// optimistic lock. A version conflict surfaces as CONCURRENCY_CONFLICT.
func (s *IntakeService) mutate(ctx context.Context, actor capability.Actor, required capability.Capability, itemID uuid.UUID, action string, op func(*billing.IntakeItem) error) (*IntakeItemResponse, error) {
	if err := capability.Require(actor, required); err != nil {
		return nil, err
	}

	item, err := s.items.FindByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if err := op(item); err != nil {
		return nil, err
	}
	if err := s.items.SaveWithLock(ctx, item); err != nil {
		return nil, err
	}

	s.logger.Info("intake item "+action,
		zap.String("item_id", item.ID.String()),
		zap.String("status", item.Status.String()),
		zap.String("actor", actor.Name))

	response := ToIntakeItemResponse(item)
	return &response, nil
}
