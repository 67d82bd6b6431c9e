package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCooldownStore(t *testing.T, store CooldownStore) {
	ctx := context.Background()
	start := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	remaining, err := store.Reserve(ctx, "1.2.3.4", start)
	require.NoError(t, err)
	assert.Zero(t, remaining)

	remaining, err = store.Reserve(ctx, "1.2.3.4", start.Add(15*time.Second))
	require.NoError(t, err)
	assert.Equal(t, 45*time.Second, remaining)

	remaining, err = store.Reserve(ctx, "5.6.7.8", start.Add(15*time.Second))
	require.NoError(t, err)
	assert.Zero(t, remaining, "other clients are unaffected")

	remaining, err = store.Reserve(ctx, "1.2.3.4", start.Add(ContactCooldown))
	require.NoError(t, err)
	assert.Zero(t, remaining, "a stale anchor is taken over")

	remaining, err = store.Reserve(ctx, "1.2.3.4", start.Add(ContactCooldown+time.Second))
	require.NoError(t, err)
	assert.Equal(t, 59*time.Second, remaining)
}

func testCooldownRelease(t *testing.T, store CooldownStore) {
	ctx := context.Background()
	start := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	_, err := store.Reserve(ctx, "9.9.9.9", start)
	require.NoError(t, err)
	require.NoError(t, store.Release(ctx, "9.9.9.9", start.Add(time.Second)), "a different reservation is left alone")

	remaining, err := store.Reserve(ctx, "9.9.9.9", start.Add(2*time.Second))
	require.NoError(t, err)
	assert.Equal(t, 58*time.Second, remaining)

	require.NoError(t, store.Release(ctx, "9.9.9.9", start))
	remaining, err = store.Reserve(ctx, "9.9.9.9", start.Add(3*time.Second))
	require.NoError(t, err)
	assert.Zero(t, remaining)
}

func testCooldownConcurrentReserve(t *testing.T, store CooldownStore) {
	ctx := context.Background()
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		claimed int
	)
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			remaining, err := store.Reserve(ctx, "4.4.4.4", now)
			assert.NoError(t, err)
			if remaining == 0 {
				mu.Lock()
				claimed++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, 1, claimed)
}

func TestMemoryCooldown(t *testing.T) {
	testCooldownStore(t, NewMemoryCooldown(ContactCooldown))
	testCooldownRelease(t, NewMemoryCooldown(ContactCooldown))
	testCooldownConcurrentReserve(t, NewMemoryCooldown(ContactCooldown))
}

func TestMemoryCooldownDropsExpiredAnchors(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryCooldown(time.Minute)
	start := time.Now()

	_, err := store.Reserve(ctx, "a", start)
	require.NoError(t, err)
	_, err = store.Reserve(ctx, "b", start.Add(2*time.Minute))
	require.NoError(t, err)

	assert.Len(t, store.last, 1)
}

func TestRedisCooldown(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	store := NewRedisCooldown(client, ContactCooldown)
	testCooldownStore(t, store)
	testCooldownRelease(t, store)
	testCooldownConcurrentReserve(t, store)

	ttl := mr.TTL(contactCooldownKey + ":1.2.3.4")
	assert.Equal(t, ContactCooldown, ttl)

	mr.FastForward(ContactCooldown)
	assert.False(t, mr.Exists(contactCooldownKey+":1.2.3.4"))
}

func TestNewCooldownStore(t *testing.T) {
	store, closeFn, err := NewCooldownStore("", ContactCooldown)
	require.NoError(t, err)
	assert.IsType(t, &MemoryCooldown{}, store)
	assert.NoError(t, closeFn())

	mr := miniredis.RunT(t)
	store, closeFn, err = NewCooldownStore("redis://"+mr.Addr(), ContactCooldown)
	require.NoError(t, err)
	assert.IsType(t, &RedisCooldown{}, store)
	assert.NoError(t, closeFn())

	_, _, err = NewCooldownStore("not-a-url", ContactCooldown)
	assert.Error(t, err)
}
