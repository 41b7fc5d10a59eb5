package mem

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestTTLStoreExpiry(t *testing.T) {
	now := time.Date(2026, time.October, 17, 12, 0, 0, 0, time.UTC)
	store := NewTTLStore[string]().WithClock(func() time.Time { return now })

	store.Set("a", "alpha", time.Minute)
	v, ok := store.Peek("a")
	require.True(t, ok)
	require.Equal(t, "alpha", v)

	now = now.Add(2 * time.Minute)
	_, ok = store.Peek("a")
	require.False(t, ok)
	require.Equal(t, 1, store.Sweep())
	require.Equal(t, 0, store.Sweep())
}

func TestTTLStoreUpdateRefreshesTTL(t *testing.T) {
	now := time.Date(2026, time.October, 17, 12, 0, 0, 0, time.UTC)
	store := NewTTLStore[int]().WithClock(func() time.Time { return now })
	store.Set("n", 1, time.Minute)

	now = now.Add(50 * time.Second)
	got, err := store.Update("n", time.Minute, func(v int) (int, error) { return v + 1, nil })
	require.NoError(t, err)
	require.Equal(t, 2, got)

	now = now.Add(50 * time.Second)
	v, ok := store.Peek("n")
	require.True(t, ok)
	require.Equal(t, 2, v)
}

func TestTTLStoreUpdateErrors(t *testing.T) {
	store := NewTTLStore[int]()
	_, err := store.Update("missing", time.Minute, func(v int) (int, error) { return v, nil })
	require.ErrorIs(t, err, ErrKeyNotFound)

	store.Set("n", 1, time.Minute)
	boom := errors.New("boom")
	_, err = store.Update("n", time.Minute, func(v int) (int, error) { return 99, boom })
	require.ErrorIs(t, err, boom)
	v, _ := store.Peek("n")
	require.Equal(t, 1, v)
}
