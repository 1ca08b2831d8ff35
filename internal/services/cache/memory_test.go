package cache

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemory_SetGet(t *testing.T) {
	m := NewMemory(1)
	defer m.Stop()
	ctx := context.Background()

	require.NoError(t, m.Set(ctx, "news:uk", []byte(`{"stories":[]}`), time.Minute))

	got, ok := m.Get(ctx, "news:uk")
	assert.True(t, ok)
	assert.Equal(t, []byte(`{"stories":[]}`), got)

	_, ok = m.Get(ctx, "missing")
	assert.False(t, ok)

	stats := m.Stats()
	assert.Equal(t, int64(1), stats.Hits)
	assert.Equal(t, int64(1), stats.Misses)
	assert.Equal(t, int64(1), stats.Sets)
}

func TestMemory_Expiry(t *testing.T) {
	m := NewMemory(1)
	defer m.Stop()
	ctx := context.Background()

	require.NoError(t, m.Set(ctx, "k", []byte("v"), 10*time.Millisecond))
	time.Sleep(20 * time.Millisecond)

	_, ok := m.Get(ctx, "k")
	assert.False(t, ok)
}

func TestMemory_DeleteAndClear(t *testing.T) {
	m := NewMemory(1)
	defer m.Stop()
	ctx := context.Background()

	require.NoError(t, m.Set(ctx, "a", []byte("1"), time.Minute))
	require.NoError(t, m.Set(ctx, "b", []byte("2"), time.Minute))

	require.NoError(t, m.Delete(ctx, "a"))
	_, ok := m.Get(ctx, "a")
	assert.False(t, ok)

	require.NoError(t, m.Clear(ctx))
	_, ok = m.Get(ctx, "b")
	assert.False(t, ok)
	assert.Zero(t, m.Stats().Size)
}

func TestMemory_EvictsUnderPressure(t *testing.T) {
	// 1MB cap, entries of ~200KB each
	m := NewMemory(1)
	defer m.Stop()
	ctx := context.Background()

	payload := make([]byte, 200*1024)
	for i := 0; i < 10; i++ {
		require.NoError(t, m.Set(ctx, fmt.Sprintf("key-%d", i), payload, time.Minute))
	}

	stats := m.Stats()
	assert.LessOrEqual(t, stats.Size, stats.MaxSize)
	assert.Greater(t, stats.Evictions, int64(0))
}

func TestMemory_ReplaceAdjustsSize(t *testing.T) {
	m := NewMemory(1)
	defer m.Stop()
	ctx := context.Background()

	require.NoError(t, m.Set(ctx, "k", make([]byte, 1000), time.Minute))
	require.NoError(t, m.Set(ctx, "k", make([]byte, 10), time.Minute))

	assert.Equal(t, int64(len("k")+10), m.Stats().Size)
}
