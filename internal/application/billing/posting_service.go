package billing

import (
	"context"
	"errors"

	"github.com/ginvoice/backend/internal/application/capability"
	"github.com/ginvoice/backend/internal/domain/billing"
	"github.com/ginvoice/backend/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// PostingService records ledger postings. One posting per item, created
// exactly once; the item's advance to posted and the posting row are
// written in the same transaction.
type PostingService struct {
	items  billing.IntakeItemRepository
	logger *zap.Logger
}

// NewPostingService creates a new PostingService
func NewPostingService(items billing.IntakeItemRepository, logger *zap.Logger) *PostingService {
	return &PostingService{
		items:  items,
		logger: logger,
	}
}

// Post records that the intake item was transmitted to the general ledger
// and advances it to posted. Fails if the item is not in sent_to_accounting
// or a posting already exists.
func (s *PostingService) Post(ctx context.Context, actor capability.Actor, itemID uuid.UUID, req PostIntakeItemRequest) (*AccountingPostingResponse, error) {
	if err := capability.Require(actor, capability.AccountingPost); err != nil {
		return nil, err
	}

	item, err := s.items.FindByID(ctx, itemID)
	if err != nil {
		return nil, err
	}

	existing, err := s.items.FindPosting(ctx, itemID)
	if err != nil && !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "A posting already exists for this item")
	}

	posting, err := billing.NewAccountingPosting(item.ID, req.LedgerReference, actor.Name)
	if err != nil {
		return nil, err
	}
	if err := item.MarkPosted(); err != nil {
		return nil, err
	}

	if err := s.items.SaveWithPosting(ctx, item, posting); err != nil {
		return nil, err
	}

	s.logger.Info("intake item posted to ledger",
		zap.String("item_id", item.ID.String()),
		zap.String("ledger_reference", posting.LedgerReference),
		zap.String("actor", actor.Name))

	response := ToAccountingPostingResponse(posting)
	return &response, nil
}

// GetPosting retrieves the posting of an intake item
func (s *PostingService) GetPosting(ctx context.Context, itemID uuid.UUID) (*AccountingPostingResponse, error) {
	posting, err := s.items.FindPosting(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if posting == nil {
		return nil, shared.ErrNotFound
	}
	response := ToAccountingPostingResponse(posting)
	return &response, nil
}
