package invoicing

import (
	"context"

	"github.com/ginvoice/backend/internal/application/capability"
	"github.com/ginvoice/backend/internal/domain/invoicing"
	"github.com/ginvoice/backend/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// DeliveryService records invoice transmission. A direct delivery and an
// open platform task are alternative confirmations for the same invoice;
// this service enforces the exclusivity the schema leaves open.
type DeliveryService struct {
	deliveries invoicing.DeliveryRepository
	invoices   invoicing.ClientInvoiceRepository
	tasks      invoicing.PlatformTaskRepository
	logger     *zap.Logger
}

// NewDeliveryService creates a new DeliveryService
func NewDeliveryService(deliveries invoicing.DeliveryRepository, invoices invoicing.ClientInvoiceRepository, tasks invoicing.PlatformTaskRepository, logger *zap.Logger) *DeliveryService {
	return &DeliveryService{
		deliveries: deliveries,
		invoices:   invoices,
		tasks:      tasks,
		logger:     logger,
	}
}

// Dispatch creates a pending delivery for an issued invoice. Rejected when
// the invoice already has an open platform task: portal submission and
// direct delivery are exclusive routes.
func (s *DeliveryService) Dispatch(ctx context.Context, actor capability.Actor, invoiceID uuid.UUID, req DispatchDeliveryRequest) (*DeliveryResponse, error) {
	if err := capability.Require(actor, capability.InvoiceDeliver); err != nil {
		return nil, err
	}

	invoice, err := s.invoices.FindByID(ctx, invoiceID)
	if err != nil {
		return nil, err
	}
	if !invoice.Status.IsIssued() {
		return nil, shared.NewDomainError("INVALID_STATE", "Only issued invoices can be delivered")
	}

	tasks, err := s.tasks.FindByInvoice(ctx, invoice.ID)
	if err != nil {
		return nil, err
	}
	for i := range tasks {
		if tasks[i].Status != invoicing.TaskStatusCompleted {
			return nil, shared.NewDomainError("INVALID_STATE", "Invoice has an open platform task; direct delivery is not available")
		}
	}

	delivery, err := invoicing.NewDelivery(invoice.ID, invoicing.DeliveryType(req.Type), req.Recipients)
	if err != nil {
		return nil, err
	}
	if err := s.deliveries.Save(ctx, delivery); err != nil {
		return nil, err
	}

	s.logger.Info("delivery dispatched",
		zap.String("delivery_id", delivery.ID.String()),
		zap.String("invoice_id", invoice.ID.String()),
		zap.String("type", delivery.Type.String()),
		zap.String("actor", actor.Name))

	response := ToDeliveryResponse(delivery)
	return &response, nil
}

// MarkSent confirms the transmission and, for email deliveries, closes the
// invoice as delivered
func (s *DeliveryService) MarkSent(ctx context.Context, actor capability.Actor, deliveryID uuid.UUID, req MarkSentRequest) (*DeliveryResponse, error) {
	if err := capability.Require(actor, capability.InvoiceDeliver); err != nil {
		return nil, err
	}

	delivery, err := s.deliveries.FindByID(ctx, deliveryID)
	if err != nil {
		return nil, err
	}
	if err := delivery.MarkSent(req.SentAt, actor.Name); err != nil {
		return nil, err
	}

	if delivery.Type == invoicing.DeliveryTypeEmail {
		invoice, err := s.invoices.FindByID(ctx, delivery.InvoiceID)
		if err != nil {
			return nil, err
		}
		if err := invoice.MarkDelivered(); err != nil {
			return nil, err
		}
		// The sent confirmation and the invoice close commit together; a
		// conflict on either side must not leave a sent delivery against
		// an undelivered invoice
		if err := s.deliveries.SaveWithInvoice(ctx, delivery, invoice); err != nil {
			return nil, err
		}
	} else if err := s.deliveries.SaveWithLock(ctx, delivery); err != nil {
		return nil, err
	}

	s.logger.Info("delivery sent",
		zap.String("delivery_id", delivery.ID.String()),
		zap.String("invoice_id", delivery.InvoiceID.String()),
		zap.String("actor", actor.Name))

	response := ToDeliveryResponse(delivery)
	return &response, nil
}

// GetByID retrieves a delivery by ID
func (s *DeliveryService) GetByID(ctx context.Context, deliveryID uuid.UUID) (*DeliveryResponse, error) {
	delivery, err := s.deliveries.FindByID(ctx, deliveryID)
	if err != nil {
		return nil, err
	}
	response := ToDeliveryResponse(delivery)
	return &response, nil
}

// ListByInvoice lists the deliveries of an invoice
func (s *DeliveryService) ListByInvoice(ctx context.Context, invoiceID uuid.UUID) ([]DeliveryResponse, error) {
	deliveries, err := s.deliveries.FindByInvoice(ctx, invoiceID)
	if err != nil {
		return nil, err
	}
	responses := make([]DeliveryResponse, 0, len(deliveries))
	for i := range deliveries {
		responses = append(responses, ToDeliveryResponse(&deliveries[i]))
	}
	return responses, nil
}
