package invoicing

import (
	"fmt"
	"strings"
	"time"

	"github.com/ginvoice/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// DeliveryType distinguishes direct transmission from portal hand-off
type DeliveryType string

const (
	DeliveryTypeEmail    DeliveryType = "email"
	DeliveryTypePlatform DeliveryType = "platform"
)

// IsValid checks if the type is a valid DeliveryType
func (t DeliveryType) IsValid() bool {
	return t == DeliveryTypeEmail || t == DeliveryTypePlatform
}

// String returns the string representation of DeliveryType
func (t DeliveryType) String() string {
	return string(t)
}

// DeliveryStatus represents the lifecycle status of a delivery
type DeliveryStatus string

const (
	DeliveryStatusPending DeliveryStatus = "pending"
	DeliveryStatusSent    DeliveryStatus = "sent"
)

// IsValid checks if the status is a valid DeliveryStatus
func (s DeliveryStatus) IsValid() bool {
	return s == DeliveryStatusPending || s == DeliveryStatusSent
}

// String returns the string representation of DeliveryStatus
func (s DeliveryStatus) String() string {
	return string(s)
}

// Delivery records how one client invoice was transmitted. A platform
// delivery is a hand-off marker only; the portal work itself is tracked by
// a PlatformTask, and an invoice carries one or the other, never both.
type Delivery struct {
	shared.BaseAggregateRoot
	InvoiceID  uuid.UUID
	Type       DeliveryType
	Recipients []string
	Status     DeliveryStatus
	SentAt     *time.Time
	SentBy     string
}

// NewDelivery creates a pending delivery for an invoice
func NewDelivery(invoiceID uuid.UUID, deliveryType DeliveryType, recipients []string) (*Delivery, error) {
	if invoiceID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_INVOICE", "Invoice reference is required")
	}
	if !deliveryType.IsValid() {
		return nil, shared.NewDomainError("INVALID_DELIVERY_TYPE", fmt.Sprintf("Unknown delivery type %q", deliveryType))
	}
	cleaned := make([]string, 0, len(recipients))
	for _, r := range recipients {
		r = strings.TrimSpace(r)
		if r != "" {
			cleaned = append(cleaned, r)
		}
	}
	if deliveryType == DeliveryTypeEmail && len(cleaned) == 0 {
		return nil, shared.NewDomainError("INVALID_RECIPIENTS", "Email delivery requires at least one recipient")
	}

	delivery := &Delivery{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		InvoiceID:         invoiceID,
		Type:              deliveryType,
		Recipients:        cleaned,
		Status:            DeliveryStatusPending,
	}

	delivery.AddDomainEvent(NewDeliveryDispatchedEvent(delivery))

	return delivery, nil
}

// MarkSent records the transmission. Sent is terminal.
func (d *Delivery) MarkSent(sentAt time.Time, actor string) error {
	if d.Status == DeliveryStatusSent {
		return shared.NewDomainError("INVALID_STATE", "Delivery has already been sent")
	}
	if sentAt.IsZero() {
		return shared.NewDomainError("INVALID_TIMESTAMP", "Sent timestamp is required")
	}
	if actor == "" {
		return shared.NewDomainError("INVALID_ACTOR", "Sending actor is required")
	}

	d.Status = DeliveryStatusSent
	d.SentAt = &sentAt
	d.SentBy = actor
	d.UpdatedAt = time.Now()

	d.AddDomainEvent(NewDeliverySentEvent(d))

	return nil
}
