package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestMemory(cfg Config, now *time.Time) *Memory {
	m := NewMemory(cfg)
	m.now = func() time.Time { return *now }
	return m
}

func TestMemory_AllowsUpToBurst(t *testing.T) {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	m := newTestMemory(Config{Requests: 3, Window: time.Minute}, &now)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		allowed, _, err := m.Allow(ctx, "login:1.2.3.4")
		require.NoError(t, err)
		assert.True(t, allowed, "request %d should be allowed", i+1)
	}

	allowed, retryAfter, err := m.Allow(ctx, "login:1.2.3.4")
	require.NoError(t, err)
	assert.False(t, allowed)
	assert.InDelta(t, float64(20*time.Second), float64(retryAfter), float64(time.Millisecond))
}

func TestMemory_KeysAreIndependent(t *testing.T) {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	m := newTestMemory(Config{Requests: 1, Window: time.Minute}, &now)
	ctx := context.Background()

	allowed, _, _ := m.Allow(ctx, "login:a")
	assert.True(t, allowed)
	allowed, _, _ = m.Allow(ctx, "login:a")
	assert.False(t, allowed)

	allowed, _, _ = m.Allow(ctx, "login:b")
	assert.True(t, allowed)
}

func TestMemory_RefillsOverTime(t *testing.T) {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	m := newTestMemory(Config{Requests: 2, Window: time.Minute}, &now)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		allowed, _, _ := m.Allow(ctx, "k")
		require.True(t, allowed)
	}
	allowed, _, _ := m.Allow(ctx, "k")
	require.False(t, allowed)

	now = now.Add(31 * time.Second)

	allowed, _, _ = m.Allow(ctx, "k")
	assert.True(t, allowed)
}

func TestMemory_RejectedRequestDoesNotConsumeToken(t *testing.T) {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	m := newTestMemory(Config{Requests: 1, Window: time.Minute}, &now)
	ctx := context.Background()

	allowed, _, _ := m.Allow(ctx, "k")
	require.True(t, allowed)

	// Hammering while limited must not push the next token further out
	for i := 0; i < 5; i++ {
		allowed, _, _ = m.Allow(ctx, "k")
		require.False(t, allowed)
	}

	now = now.Add(61 * time.Second)
	allowed, _, _ = m.Allow(ctx, "k")
	assert.True(t, allowed)
}

func TestMemory_SweepDropsIdleBuckets(t *testing.T) {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	m := newTestMemory(Config{Requests: 5, Window: time.Minute}, &now)

	_, _, _ = m.Allow(context.Background(), "old")
	require.Equal(t, 1, m.Len())

	now = now.Add(2 * time.Minute)
	m.mu.Lock()
	m.sweep(now)
	m.mu.Unlock()

	assert.Equal(t, 0, m.Len())
}
