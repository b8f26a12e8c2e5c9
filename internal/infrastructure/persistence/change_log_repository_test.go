package persistence

import (
	"context"
	"testing"

	"github.com/ginvoice/backend/internal/domain/compliance"
	"github.com/ginvoice/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChangeLog_WrittenWithAggregateSave(t *testing.T) {
	db := setupPipelineDB(t)
	jobs := NewGormJobRepository(db)
	feed := NewGormChangeLogRepository(db)

	t.Run("save writes the pending events with the context actor", func(t *testing.T) {
		ctx := shared.WithActor(context.Background(), "billing@firm.example")

		job := newTestJob(t, "JOB-LOG1")
		require.NoError(t, jobs.Save(ctx, job))
		assert.Empty(t, job.GetDomainEvents())

		entries, err := feed.FindByAggregate(ctx, job.ID, 10)
		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.Equal(t, "jobs", entries[0].TableName)
		assert.Equal(t, "billing@firm.example", entries[0].Actor)
		assert.Equal(t, job.ID, entries[0].AggregateID)
		assert.NotEmpty(t, entries[0].Payload)
	})

	t.Run("actor defaults to system without context", func(t *testing.T) {
		ctx := context.Background()

		job := newTestJob(t, "JOB-LOG2")
		require.NoError(t, jobs.Save(ctx, job))

		entries, err := feed.FindByAggregate(ctx, job.ID, 10)
		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.Equal(t, "system", entries[0].Actor)
	})

	t.Run("locked saves append further entries", func(t *testing.T) {
		ctx := shared.WithActor(context.Background(), "compliance@firm.example")

		job := newTestJob(t, "JOB-LOG3")
		require.NoError(t, jobs.Save(ctx, job))

		require.NoError(t, job.SetClearance(compliance.ClearanceBlocked))
		require.NoError(t, jobs.SaveWithLock(ctx, job))

		entries, err := feed.FindByAggregate(ctx, job.ID, 10)
		require.NoError(t, err)
		assert.Len(t, entries, 2)
	})
}

func TestChangeLogRepository_FindRecent(t *testing.T) {
	db := setupPipelineDB(t)
	jobs := NewGormJobRepository(db)
	feed := NewGormChangeLogRepository(db)
	ctx := context.Background()

	for _, code := range []string{"JOB-R1", "JOB-R2", "JOB-R3"} {
		require.NoError(t, jobs.Save(ctx, newTestJob(t, code)))
	}

	t.Run("honors the limit", func(t *testing.T) {
		entries, err := feed.FindRecent(ctx, 2)
		require.NoError(t, err)
		assert.Len(t, entries, 2)
	})

	t.Run("defaults the limit when not positive", func(t *testing.T) {
		entries, err := feed.FindRecent(ctx, 0)
		require.NoError(t, err)
		assert.Len(t, entries, 3)
	})
}
