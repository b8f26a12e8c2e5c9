package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/ginvoice/backend/internal/domain/invoicing"
	"github.com/ginvoice/backend/internal/domain/shared"
	"github.com/ginvoice/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeliveryRepository_SaveAndFind(t *testing.T) {
	db := setupPipelineDB(t)
	repo := NewGormDeliveryRepository(db)
	ctx := context.Background()
	invoiceID := uuid.New()

	t.Run("round-trips the recipient list", func(t *testing.T) {
		delivery, err := invoicing.NewDelivery(invoiceID, invoicing.DeliveryTypeEmail, []string{"a@client.example", "b@client.example"})
		require.NoError(t, err)
		require.NoError(t, repo.Save(ctx, delivery))

		found, err := repo.FindByID(ctx, delivery.ID)
		require.NoError(t, err)
		assert.Equal(t, invoicing.DeliveryStatusPending, found.Status)
		assert.Equal(t, []string{"a@client.example", "b@client.example"}, found.Recipients)
	})

	t.Run("finds by invoice", func(t *testing.T) {
		deliveries, err := repo.FindByInvoice(ctx, invoiceID)
		require.NoError(t, err)
		assert.NotEmpty(t, deliveries)
	})

	t.Run("counts by status", func(t *testing.T) {
		count, err := repo.CountByStatus(ctx, invoicing.DeliveryStatusPending)
		require.NoError(t, err)
		assert.Equal(t, int64(1), count)

		count, err = repo.CountByStatus(ctx, invoicing.DeliveryStatusSent)
		require.NoError(t, err)
		assert.Equal(t, int64(0), count)
	})
}

func TestDeliveryRepository_SaveWithLock(t *testing.T) {
	db := setupPipelineDB(t)
	repo := NewGormDeliveryRepository(db)
	ctx := context.Background()

	t.Run("persists the sent transition", func(t *testing.T) {
		delivery, err := invoicing.NewDelivery(uuid.New(), invoicing.DeliveryTypePlatform, []string{"portal"})
		require.NoError(t, err)
		require.NoError(t, repo.Save(ctx, delivery))

		require.NoError(t, delivery.MarkSent(time.Now(), "billing@firm.example"))
		require.NoError(t, repo.SaveWithLock(ctx, delivery))

		found, err := repo.FindByID(ctx, delivery.ID)
		require.NoError(t, err)
		assert.Equal(t, invoicing.DeliveryStatusSent, found.Status)
		assert.Equal(t, "billing@firm.example", found.SentBy)
		require.NotNil(t, found.SentAt)
		assert.Equal(t, 2, found.Version)
	})

	t.Run("rejects a stale version", func(t *testing.T) {
		delivery, err := invoicing.NewDelivery(uuid.New(), invoicing.DeliveryTypeEmail, []string{"a@client.example"})
		require.NoError(t, err)
		require.NoError(t, repo.Save(ctx, delivery))

		stale, err := repo.FindByID(ctx, delivery.ID)
		require.NoError(t, err)

		require.NoError(t, delivery.MarkSent(time.Now(), "billing@firm.example"))
		require.NoError(t, repo.SaveWithLock(ctx, delivery))

		require.NoError(t, stale.MarkSent(time.Now(), "someone@firm.example"))
		err = repo.SaveWithLock(ctx, stale)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "OPTIMISTIC_LOCK_FAILED", domainErr.Code)
	})
}

func TestDeliveryRepository_SaveWithInvoice(t *testing.T) {
	db := setupPipelineDB(t)
	repo := NewGormDeliveryRepository(db)
	invoices := NewGormClientInvoiceRepository(db)
	ctx := context.Background()

	issuedInvoice := func(t *testing.T, number string) *invoicing.ClientInvoice {
		t.Helper()
		invoice, err := invoicing.NewClientInvoice(nil, uuid.New(), number, time.Now(), valueobject.NewMoneyEURFromFloat(500))
		require.NoError(t, err)
		require.NoError(t, invoice.MarkReadyForSap())
		require.NoError(t, invoice.MarkIssued())
		require.NoError(t, invoices.Save(ctx, invoice))
		return invoice
	}

	t.Run("commits the sent confirmation and the invoice close together", func(t *testing.T) {
		invoice := issuedInvoice(t, "2026-0401")
		delivery, err := invoicing.NewDelivery(invoice.ID, invoicing.DeliveryTypeEmail, []string{"billing@client.example"})
		require.NoError(t, err)
		require.NoError(t, repo.Save(ctx, delivery))

		require.NoError(t, delivery.MarkSent(time.Now(), "a.fischer"))
		require.NoError(t, invoice.MarkDelivered())
		require.NoError(t, repo.SaveWithInvoice(ctx, delivery, invoice))

		foundDelivery, err := repo.FindByID(ctx, delivery.ID)
		require.NoError(t, err)
		assert.Equal(t, invoicing.DeliveryStatusSent, foundDelivery.Status)

		foundInvoice, err := invoices.FindByID(ctx, invoice.ID)
		require.NoError(t, err)
		assert.Equal(t, invoicing.InvoiceStatusDelivered, foundInvoice.Status)
	})

	t.Run("an invoice conflict rolls the sent confirmation back", func(t *testing.T) {
		invoice := issuedInvoice(t, "2026-0402")
		delivery, err := invoicing.NewDelivery(invoice.ID, invoicing.DeliveryTypeEmail, []string{"billing@client.example"})
		require.NoError(t, err)
		require.NoError(t, repo.Save(ctx, delivery))

		stale, err := invoices.FindByID(ctx, invoice.ID)
		require.NoError(t, err)

		require.NoError(t, invoice.MarkDelivered())
		require.NoError(t, invoices.SaveWithLock(ctx, invoice))

		require.NoError(t, delivery.MarkSent(time.Now(), "a.fischer"))
		require.NoError(t, stale.MarkDelivered())
		err = repo.SaveWithInvoice(ctx, delivery, stale)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "OPTIMISTIC_LOCK_FAILED", domainErr.Code)

		found, err := repo.FindByID(ctx, delivery.ID)
		require.NoError(t, err)
		assert.Equal(t, invoicing.DeliveryStatusPending, found.Status, "rolled back with the invoice")
	})
}
