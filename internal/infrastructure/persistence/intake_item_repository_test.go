package persistence

import (
	"context"
	"testing"

	"github.com/ginvoice/backend/internal/domain/billing"
	"github.com/ginvoice/backend/internal/domain/compliance"
	"github.com/ginvoice/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIntakeItemRepository_SaveAndFind(t *testing.T) {
	db := setupPipelineDB(t)
	repo := NewGormIntakeItemRepository(db)
	ctx := context.Background()
	jobID := uuid.New()

	t.Run("saves and finds by invoice number", func(t *testing.T) {
		item := newTestIntakeItem(t, jobID, "INV-1001")
		require.NoError(t, repo.Save(ctx, item))

		found, err := repo.FindByInvoiceNumber(ctx, "INV-1001")
		require.NoError(t, err)
		assert.Equal(t, item.ID, found.ID)
		assert.Equal(t, billing.IntakeStatusDraft, found.Status)
		assert.Equal(t, compliance.ClearanceClear, found.UttaiStatusSnapshot)
		assert.True(t, found.Amount.Equal(item.Amount))
	})

	t.Run("exists by invoice number", func(t *testing.T) {
		exists, err := repo.ExistsByInvoiceNumber(ctx, "INV-1001")
		require.NoError(t, err)
		assert.True(t, exists)

		exists, err = repo.ExistsByInvoiceNumber(ctx, "INV-9999")
		require.NoError(t, err)
		assert.False(t, exists)
	})
}

func TestIntakeItemRepository_SaveWithLock(t *testing.T) {
	db := setupPipelineDB(t)
	repo := NewGormIntakeItemRepository(db)
	ctx := context.Background()
	jobID := uuid.New()

	t.Run("persists lifecycle fields and increments version", func(t *testing.T) {
		item := newTestIntakeItem(t, jobID, "INV-2001")
		require.NoError(t, repo.Save(ctx, item))

		require.NoError(t, item.Submit())
		require.NoError(t, repo.SaveWithLock(ctx, item))

		found, err := repo.FindByID(ctx, item.ID)
		require.NoError(t, err)
		assert.Equal(t, billing.IntakeStatusSubmitted, found.Status)
		assert.NotNil(t, found.SubmittedAt)
		assert.Equal(t, 2, found.Version)
	})

	t.Run("never rewrites the frozen compliance snapshot", func(t *testing.T) {
		item := newTestIntakeItem(t, jobID, "INV-2002")
		require.NoError(t, repo.Save(ctx, item))

		// A later job clearance change must not leak into the stored snapshot
		item.UttaiStatusSnapshot = compliance.ClearanceBlocked
		require.NoError(t, item.Submit())
		require.NoError(t, repo.SaveWithLock(ctx, item))

		found, err := repo.FindByID(ctx, item.ID)
		require.NoError(t, err)
		assert.Equal(t, compliance.ClearanceClear, found.UttaiStatusSnapshot)
	})

	t.Run("rejects a stale version", func(t *testing.T) {
		item := newTestIntakeItem(t, jobID, "INV-2003")
		require.NoError(t, repo.Save(ctx, item))

		stale, err := repo.FindByID(ctx, item.ID)
		require.NoError(t, err)

		require.NoError(t, item.Submit())
		require.NoError(t, repo.SaveWithLock(ctx, item))

		require.NoError(t, stale.Submit())
		err = repo.SaveWithLock(ctx, stale)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "OPTIMISTIC_LOCK_FAILED", domainErr.Code)
	})
}

func TestIntakeItemRepository_SaveWithPosting(t *testing.T) {
	db := setupPipelineDB(t)
	repo := NewGormIntakeItemRepository(db)
	ctx := context.Background()
	jobID := uuid.New()

	newPostableItem := func(t *testing.T, invoiceNumber string) *billing.IntakeItem {
		item := newTestIntakeItem(t, jobID, invoiceNumber)
		require.NoError(t, item.Submit())
		require.NoError(t, item.SendForApproval())
		require.NoError(t, item.Approve("partner@firm.example"))
		require.NoError(t, item.SendToAccounting())
		require.NoError(t, repo.Save(ctx, item))
		return item
	}

	t.Run("advances the item and records the posting atomically", func(t *testing.T) {
		item := newPostableItem(t, "INV-3001")

		require.NoError(t, item.MarkPosted())
		posting, err := billing.NewAccountingPosting(item.ID, "SAP-DOC-42", "accounting@firm.example")
		require.NoError(t, err)
		require.NoError(t, repo.SaveWithPosting(ctx, item, posting))

		found, err := repo.FindByID(ctx, item.ID)
		require.NoError(t, err)
		assert.Equal(t, billing.IntakeStatusPosted, found.Status)

		stored, err := repo.FindPosting(ctx, item.ID)
		require.NoError(t, err)
		assert.Equal(t, "SAP-DOC-42", stored.LedgerReference)
	})

	t.Run("rejects a second posting for the same item", func(t *testing.T) {
		item := newPostableItem(t, "INV-3002")

		require.NoError(t, item.MarkPosted())
		first, err := billing.NewAccountingPosting(item.ID, "SAP-DOC-43", "accounting@firm.example")
		require.NoError(t, err)
		require.NoError(t, repo.SaveWithPosting(ctx, item, first))

		second, err := billing.NewAccountingPosting(item.ID, "SAP-DOC-44", "accounting@firm.example")
		require.NoError(t, err)
		err = repo.SaveWithPosting(ctx, item, second)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "ALREADY_EXISTS", domainErr.Code)
	})

	t.Run("find posting returns not found when absent", func(t *testing.T) {
		_, err := repo.FindPosting(ctx, uuid.New())
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestIntakeItemRepository_SnapshotCounts(t *testing.T) {
	db := setupPipelineDB(t)
	repo := NewGormIntakeItemRepository(db)
	ctx := context.Background()
	jobID := uuid.New()

	active := newTestIntakeItem(t, jobID, "INV-4001")
	active.UttaiStatusSnapshot = compliance.ClearanceBlocked
	active.VendorComplianceSnapshot = compliance.VendorExpiringSoon
	require.NoError(t, repo.Save(ctx, active))

	rejected := newTestIntakeItem(t, jobID, "INV-4002")
	rejected.UttaiStatusSnapshot = compliance.ClearanceBlocked
	require.NoError(t, rejected.Submit())
	require.NoError(t, rejected.SendForApproval())
	require.NoError(t, rejected.Reject("Wrong amount"))
	require.NoError(t, repo.Save(ctx, rejected))

	t.Run("counts only live items by clearance snapshot", func(t *testing.T) {
		count, err := repo.CountActiveByClearanceSnapshot(ctx, compliance.ClearanceBlocked)
		require.NoError(t, err)
		assert.Equal(t, int64(1), count)
	})

	t.Run("counts only live items by vendor snapshot", func(t *testing.T) {
		count, err := repo.CountActiveByVendorSnapshot(ctx, compliance.VendorExpiringSoon, compliance.VendorNonCompliant)
		require.NoError(t, err)
		assert.Equal(t, int64(1), count)
	})
}

func TestIntakeItemRepository_CountSuccessors(t *testing.T) {
	db := setupPipelineDB(t)
	repo := NewGormIntakeItemRepository(db)
	ctx := context.Background()
	jobID := uuid.New()

	require.NoError(t, repo.Save(ctx, newTestIntakeItem(t, jobID, "INV-5001")))
	require.NoError(t, repo.Save(ctx, newTestIntakeItem(t, jobID, billing.SuccessorInvoiceNumber("INV-5001", 1))))
	require.NoError(t, repo.Save(ctx, newTestIntakeItem(t, jobID, "INV-50010")))

	count, err := repo.CountSuccessors(ctx, "INV-5001")
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
}
