package invoicing

import (
	"context"
	"fmt"

	"github.com/ginvoice/backend/internal/application/capability"
	"github.com/ginvoice/backend/internal/domain/billing"
	"github.com/ginvoice/backend/internal/domain/invoicing"
	"github.com/ginvoice/backend/internal/domain/shared"
	"github.com/ginvoice/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// InvoiceService issues client invoices. Batch issuance is the only code
// path that moves intake items to billed: the new invoice, the batch's
// advance to issued and every emit member's transition are one transaction.
type InvoiceService struct {
	invoices invoicing.ClientInvoiceRepository
	batches  billing.BillingBatchRepository
	items    billing.IntakeItemRepository
	logger   *zap.Logger
}

// NewInvoiceService creates a new InvoiceService
func NewInvoiceService(invoices invoicing.ClientInvoiceRepository, batches billing.BillingBatchRepository, items billing.IntakeItemRepository, logger *zap.Logger) *InvoiceService {
	return &InvoiceService{
		invoices: invoices,
		batches:  batches,
		items:    items,
		logger:   logger,
	}
}

// Issue creates a client invoice. With a batch, the batch must be in
// invoice_draft readiness and not already linked to another invoice; its
// emit members move to billed and transfer/discard members are untouched.
// Without a batch this is a manual or pro-bono invoice.
func (s *InvoiceService) Issue(ctx context.Context, actor capability.Actor, req IssueInvoiceRequest) (*ClientInvoiceResponse, error) {
	if err := capability.Require(actor, capability.InvoiceIssue); err != nil {
		return nil, err
	}

	taken, err := s.invoices.ExistsByExternalNumber(ctx, req.ExternalInvoiceNumber)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, shared.NewDomainError("ALREADY_EXISTS", fmt.Sprintf("External invoice number %s is already in use", req.ExternalInvoiceNumber))
	}

	if req.BatchID != nil {
		return s.issueFromBatch(ctx, actor, req)
	}
	return s.issueManual(ctx, actor, req)
}

func (s *InvoiceService) issueFromBatch(ctx context.Context, actor capability.Actor, req IssueInvoiceRequest) (*ClientInvoiceResponse, error) {
	batch, err := s.batches.FindByID(ctx, *req.BatchID)
	if err != nil {
		return nil, err
	}

	invoice, err := invoicing.NewClientInvoice(&batch.ID, batch.JobID, req.ExternalInvoiceNumber, req.ExternalInvoiceDate, batch.TotalAmountMoney())
	if err != nil {
		return nil, err
	}

	// batch.MarkIssued guards the invoice_draft readiness and the
	// one-invoice-per-batch rule
	if err := batch.MarkIssued(invoice.ID); err != nil {
		return nil, err
	}

	emitIDs := batch.EmitItemIDs()
	emitItems := make([]billing.IntakeItem, 0, len(emitIDs))
	for _, itemID := range emitIDs {
		item, err := s.items.FindByID(ctx, itemID)
		if err != nil {
			return nil, err
		}
		if err := item.MarkBilled(invoice.ID); err != nil {
			return nil, err
		}
		emitItems = append(emitItems, *item)
	}

	if err := s.invoices.CreateFromBatch(ctx, invoice, batch, emitItems); err != nil {
		return nil, err
	}

	s.logger.Info("client invoice issued from batch",
		zap.String("invoice_id", invoice.ID.String()),
		zap.String("batch_id", batch.ID.String()),
		zap.Int("billed_items", len(emitItems)),
		zap.String("actor", actor.Name))

	response := ToClientInvoiceResponse(invoice)
	return &response, nil
}

func (s *InvoiceService) issueManual(ctx context.Context, actor capability.Actor, req IssueInvoiceRequest) (*ClientInvoiceResponse, error) {
	if req.JobID == nil {
		return nil, shared.NewDomainError("INVALID_JOB", "Manual invoices require a job reference")
	}

	currency := valueobject.Currency(req.Currency)
	if req.Currency == "" {
		currency = valueobject.DefaultCurrency
	}
	amount, err := valueobject.NewMoney(req.Amount, currency)
	if err != nil {
		return nil, shared.NewDomainError("INVALID_CURRENCY", err.Error())
	}

	invoice, err := invoicing.NewClientInvoice(nil, *req.JobID, req.ExternalInvoiceNumber, req.ExternalInvoiceDate, amount)
	if err != nil {
		return nil, err
	}
	if err := s.invoices.Save(ctx, invoice); err != nil {
		return nil, err
	}

	s.logger.Info("manual client invoice created",
		zap.String("invoice_id", invoice.ID.String()),
		zap.String("external_number", invoice.ExternalInvoiceNumber),
		zap.String("actor", actor.Name))

	response := ToClientInvoiceResponse(invoice)
	return &response, nil
}

// GetByID retrieves a client invoice by ID
func (s *InvoiceService) GetByID(ctx context.Context, invoiceID uuid.UUID) (*ClientInvoiceResponse, error) {
	invoice, err := s.invoices.FindByID(ctx, invoiceID)
	if err != nil {
		return nil, err
	}
	response := ToClientInvoiceResponse(invoice)
	return &response, nil
}

// List lists client invoices with filtering
func (s *InvoiceService) List(ctx context.Context, filter shared.Filter) ([]ClientInvoiceResponse, error) {
	invoices, err := s.invoices.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	responses := make([]ClientInvoiceResponse, 0, len(invoices))
	for i := range invoices {
		responses = append(responses, ToClientInvoiceResponse(&invoices[i]))
	}
	return responses, nil
}

// MarkReadyForSap queues the draft invoice for the accounting interface
func (s *InvoiceService) MarkReadyForSap(ctx context.Context, actor capability.Actor, invoiceID uuid.UUID) (*ClientInvoiceResponse, error) {
	return s.mutate(ctx, actor, invoiceID, "ready for sap", func(invoice *invoicing.ClientInvoice) error {
		return invoice.MarkReadyForSap()
	})
}

// MarkIssued records the formal issuance, stamping the issued time
func (s *InvoiceService) MarkIssued(ctx context.Context, actor capability.Actor, invoiceID uuid.UUID) (*ClientInvoiceResponse, error) {
	return s.mutate(ctx, actor, invoiceID, "issued", func(invoice *invoicing.ClientInvoice) error {
		return invoice.MarkIssued()
	})
}

// AttachDocument stores the storage reference of the invoice document
func (s *InvoiceService) AttachDocument(ctx context.Context, actor capability.Actor, invoiceID uuid.UUID, docRef string) (*ClientInvoiceResponse, error) {
	return s.mutate(ctx, actor, invoiceID, "document attached", func(invoice *invoicing.ClientInvoice) error {
		return invoice.AttachDocument(docRef)
	})
}

func (s *InvoiceService) mutate(ctx context.Context, actor capability.Actor, invoiceID uuid.UUID, action string, op func(*invoicing.ClientInvoice) error) (*ClientInvoiceResponse, error) {
	if err := capability.Require(actor, capability.InvoiceIssue); err != nil {
		return nil, err
	}

	invoice, err := s.invoices.FindByID(ctx, invoiceID)
	if err != nil {
		return nil, err
	}
	if err := op(invoice); err != nil {
		return nil, err
	}
	if err := s.invoices.SaveWithLock(ctx, invoice); err != nil {
		return nil, err
	}

	s.logger.Info("client invoice "+action,
		zap.String("invoice_id", invoice.ID.String()),
		zap.String("status", invoice.Status.String()),
		zap.String("actor", actor.Name))

	response := ToClientInvoiceResponse(invoice)
	return &response, nil
}
