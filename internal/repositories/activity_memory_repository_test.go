package repositories

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMemoryRepositoryReturnsCopies(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryActivityRepository()

	a := newActivity(t, "original", "food")
	require.NoError(t, repo.CreateActivity(ctx, a))

	a.Title = "mutated after create"
	a.Labels[2] = 'X'

	stored, err := repo.GetActivityByID(ctx, a.ID)
	require.NoError(t, err)
	require.Equal(t, "original", stored.Title)
	require.JSONEq(t, `["food"]`, string(stored.Labels))
}

func TestMemoryRepositoryHonoursCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	repo := NewMemoryActivityRepository()
	require.ErrorIs(t, repo.CreateActivity(ctx, newActivity(t, "x")), context.Canceled)
	_, err := repo.ListActivities(ctx)
	require.ErrorIs(t, err, context.Canceled)
}
