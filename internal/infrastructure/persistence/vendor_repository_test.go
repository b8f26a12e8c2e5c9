package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/ginvoice/backend/internal/domain/compliance"
	"github.com/ginvoice/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVendorRepository_SaveAndFind(t *testing.T) {
	db := setupPipelineDB(t)
	repo := NewGormVendorRepository(db)
	ctx := context.Background()

	t.Run("saves vendor with documents and loads them back", func(t *testing.T) {
		vendor := newTestVendorWithDocument(t, time.Now().AddDate(1, 0, 0))
		require.NoError(t, repo.Save(ctx, vendor))

		found, err := repo.FindByID(ctx, vendor.ID)
		require.NoError(t, err)
		assert.Equal(t, "Translations SL", found.Name)
		assert.Equal(t, compliance.VendorCompliant, found.ComplianceStatus)
		require.Len(t, found.Documents, 1)
		assert.Equal(t, "Tax residency certificate", found.Documents[0].Name)
	})

	t.Run("vendor without documents stays non-compliant", func(t *testing.T) {
		vendor, err := compliance.NewVendor("No Docs Ltd", "")
		require.NoError(t, err)
		require.NoError(t, repo.Save(ctx, vendor))

		found, err := repo.FindByID(ctx, vendor.ID)
		require.NoError(t, err)
		assert.Equal(t, compliance.VendorNonCompliant, found.ComplianceStatus)
		assert.Empty(t, found.Documents)
	})
}

func TestVendorRepository_FindDocumentsExpiringWithin(t *testing.T) {
	db := setupPipelineDB(t)
	repo := NewGormVendorRepository(db)
	ctx := context.Background()

	expiringSoon := newTestVendorWithDocument(t, time.Now().Add(10*24*time.Hour))
	require.NoError(t, repo.Save(ctx, expiringSoon))

	farOut := newTestVendorWithDocument(t, time.Now().AddDate(1, 0, 0))
	require.NoError(t, repo.Save(ctx, farOut))

	expired := newTestVendorWithDocument(t, time.Now().Add(-24*time.Hour))
	require.NoError(t, repo.Save(ctx, expired))

	t.Run("returns only documents inside the window, soonest first", func(t *testing.T) {
		docs, err := repo.FindDocumentsExpiringWithin(ctx, 30)
		require.NoError(t, err)
		require.Len(t, docs, 1)
		assert.Equal(t, expiringSoon.ID, docs[0].VendorID)
	})

	t.Run("already expired documents are not expiring", func(t *testing.T) {
		docs, err := repo.FindDocumentsExpiringWithin(ctx, 365)
		require.NoError(t, err)
		for _, d := range docs {
			assert.NotEqual(t, expired.ID, d.VendorID)
		}
	})
}

func TestVendorRepository_SaveWithLock(t *testing.T) {
	db := setupPipelineDB(t)
	repo := NewGormVendorRepository(db)
	ctx := context.Background()

	t.Run("persists a re-derived compliance status", func(t *testing.T) {
		vendor := newTestVendorWithDocument(t, time.Now().Add(10*24*time.Hour))
		require.NoError(t, repo.Save(ctx, vendor))

		vendor.RefreshCompliance(time.Now())
		require.NoError(t, repo.SaveWithLock(ctx, vendor))

		found, err := repo.FindByID(ctx, vendor.ID)
		require.NoError(t, err)
		assert.Equal(t, compliance.VendorExpiringSoon, found.ComplianceStatus)
		assert.Equal(t, 2, found.Version)
	})

	t.Run("rejects a stale version", func(t *testing.T) {
		vendor := newTestVendorWithDocument(t, time.Now().AddDate(1, 0, 0))
		require.NoError(t, repo.Save(ctx, vendor))

		stale, err := repo.FindByID(ctx, vendor.ID)
		require.NoError(t, err)

		require.NoError(t, repo.SaveWithLock(ctx, vendor))

		err = repo.SaveWithLock(ctx, stale)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "OPTIMISTIC_LOCK_FAILED", domainErr.Code)
	})
}
