package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/GatherNode_Go/internal/domain"
)

var epoch = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

func record(x, y int, by string, respawnIn time.Duration) domain.DepletionRecord {
	return domain.DepletionRecord{
		Key:          domain.NewNodeKey(x, y),
		ResourceType: "ore_copper",
		DepletedAt:   epoch,
		DepletedBy:   by,
		RespawnAt:    epoch.Add(respawnIn),
	}
}

func TestDepletionRepository_FirstSaveWins(t *testing.T) {
	ctx := context.Background()
	repo := NewDepletionRepository()

	stored, err := repo.SaveDepletion(ctx, record(1, 1, "alice", time.Minute))
	require.NoError(t, err)
	assert.True(t, stored)

	stored, err = repo.SaveDepletion(ctx, record(1, 1, "bob", time.Minute))
	require.NoError(t, err)
	assert.False(t, stored)

	got, err := repo.GetDepletion(ctx, domain.NewNodeKey(1, 1))
	require.NoError(t, err)
	assert.Equal(t, "alice", got.DepletedBy)

	_, err = repo.GetDepletion(ctx, domain.NewNodeKey(9, 9))
	assert.ErrorIs(t, err, domain.ErrNotDepleted)
}

func TestDepletionRepository_DeleteMatchesDepletedAt(t *testing.T) {
	ctx := context.Background()
	repo := NewDepletionRepository()
	rec := record(2, 2, "alice", time.Minute)
	_, _ = repo.SaveDepletion(ctx, rec)

	deleted, err := repo.DeleteDepletion(ctx, rec.Key, epoch.Add(-time.Second))
	require.NoError(t, err)
	assert.False(t, deleted, "stale timers never clear a newer record")

	deleted, err = repo.DeleteDepletion(ctx, rec.Key, rec.DepletedAt)
	require.NoError(t, err)
	assert.True(t, deleted)

	deleted, err = repo.DeleteDepletion(ctx, rec.Key, time.Time{})
	require.NoError(t, err)
	assert.False(t, deleted)
}

func TestDepletionRepository_Lists(t *testing.T) {
	ctx := context.Background()
	repo := NewDepletionRepository()
	for _, rec := range []domain.DepletionRecord{
		record(3, 0, "alice", 3*time.Minute),
		record(1, 0, "bob", time.Minute),
		record(2, 0, "carol", 2*time.Minute),
	} {
		_, err := repo.SaveDepletion(ctx, rec)
		require.NoError(t, err)
	}

	all, err := repo.ListDepletions(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, []string{"bob", "carol", "alice"}, []string{all[0].DepletedBy, all[1].DepletedBy, all[2].DepletedBy})

	due, err := repo.ListDueDepletions(ctx, epoch.Add(2*time.Minute))
	require.NoError(t, err)
	require.Len(t, due, 2)
	assert.Equal(t, "bob", due[0].DepletedBy)
	assert.Equal(t, "carol", due[1].DepletedBy)
}
