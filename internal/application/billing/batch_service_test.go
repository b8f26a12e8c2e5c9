package billing

import (
	"context"
	"testing"

	"github.com/ginvoice/backend/internal/application/capability"
	"github.com/ginvoice/backend/internal/domain/billing"
	"github.com/ginvoice/backend/internal/domain/compliance"
	"github.com/ginvoice/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func billerActor() capability.Actor {
	return capability.Actor{
		UserID:       uuid.New(),
		Name:         "k.brandt",
		Capabilities: []capability.Capability{capability.BillingDecide},
	}
}

func postedItem(t *testing.T, jobID uuid.UUID, amount float64) *billing.IntakeItem {
	t.Helper()
	vendorID := uuid.New()
	item, err := billing.NewIntakeItem(
		billing.IntakeTypeVendorInvoice, jobID, &vendorID, "INV-"+uuid.NewString()[:8],
		valueobject.NewMoneyEURFromFloat(amount), "associate fees",
		compliance.Snapshot{UttaiStatus: compliance.ClearanceClear, VendorCompliance: compliance.VendorCompliant})
	require.NoError(t, err)
	require.NoError(t, item.Submit())
	require.NoError(t, item.SendForApproval())
	require.NoError(t, item.Approve("p.winter"))
	require.NoError(t, item.SendToAccounting())
	require.NoError(t, item.MarkPosted())
	return item
}

func TestBatchService_AddToBatch(t *testing.T) {
	ctx := context.Background()
	jobID := uuid.New()

	newFixture := func(t *testing.T) (*BatchService, *MockBillingBatchRepository, *MockIntakeItemRepository) {
		batches := new(MockBillingBatchRepository)
		items := new(MockIntakeItemRepository)
		return NewBatchService(batches, items, zap.NewNop()), batches, items
	}

	t.Run("adds billable item", func(t *testing.T) {
		service, batches, items := newFixture(t)
		batch, err := billing.NewBillingBatch(jobID, valueobject.EUR)
		require.NoError(t, err)
		item := postedItem(t, jobID, 1000)

		batches.On("FindByID", ctx, batch.ID).Return(batch, nil)
		items.On("FindByID", ctx, item.ID).Return(item, nil)
		batches.On("HasActiveMembership", ctx, item.ID, batch.ID).Return(false, nil)
		batches.On("SaveWithLock", ctx, batch).Return(nil)

		resp, err := service.AddToBatch(ctx, billerActor(), batch.ID, AddToBatchRequest{IntakeItemID: item.ID})
		require.NoError(t, err)
		require.Len(t, resp.Items, 1)
		assert.Nil(t, resp.Items[0].Decision)
	})

	t.Run("rejects item with a live membership elsewhere", func(t *testing.T) {
		service, batches, items := newFixture(t)
		batch, err := billing.NewBillingBatch(jobID, valueobject.EUR)
		require.NoError(t, err)
		item := postedItem(t, jobID, 1000)

		batches.On("FindByID", ctx, batch.ID).Return(batch, nil)
		items.On("FindByID", ctx, item.ID).Return(item, nil)
		batches.On("HasActiveMembership", ctx, item.ID, batch.ID).Return(true, nil)

		_, err = service.AddToBatch(ctx, billerActor(), batch.ID, AddToBatchRequest{IntakeItemID: item.ID})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "another batch")
		batches.AssertNotCalled(t, "SaveWithLock", ctx, batch)
	})

	t.Run("requires billing:decide", func(t *testing.T) {
		service, _, _ := newFixture(t)
		_, err := service.AddToBatch(ctx, clerkActor(), uuid.New(), AddToBatchRequest{IntakeItemID: uuid.New()})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "billing:decide")
	})
}

func TestBatchService_SetDecision(t *testing.T) {
	ctx := context.Background()
	jobID := uuid.New()

	t.Run("persisted response carries the recomputed totals", func(t *testing.T) {
		batches := new(MockBillingBatchRepository)
		items := new(MockIntakeItemRepository)
		service := NewBatchService(batches, items, zap.NewNop())

		batch, err := billing.NewBillingBatch(jobID, valueobject.EUR)
		require.NoError(t, err)
		i1 := postedItem(t, jobID, 1000)
		i2 := postedItem(t, jobID, 500)
		m1, err := batch.AddItem(i1)
		require.NoError(t, err)
		m2, err := batch.AddItem(i2)
		require.NoError(t, err)
		require.NoError(t, batch.SetDecision(m1.ID, billing.DecisionEmit))
		require.NoError(t, batch.SetDecision(m2.ID, billing.DecisionTransfer))

		batches.On("FindByID", ctx, batch.ID).Return(batch, nil)
		batches.On("SaveWithLock", ctx, batch).Return(nil)

		resp, err := service.SetDecision(ctx, billerActor(), batch.ID, m2.ID, SetDecisionRequest{Decision: "emit"})
		require.NoError(t, err)
		assert.True(t, resp.TotalAmount.Equal(decimal.NewFromInt(1500)))
	})
}
