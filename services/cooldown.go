package services

import (
	"context"
	"errors"
	"strconv"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	ContactCooldown    = 60 * time.Second
	contactCooldownKey = "contact_form_last_submit"
)

// CooldownStore remembers when a client last submitted.
type CooldownStore interface {
	// Reserve claims the window for client starting at now and returns zero.
	// While the client is still cooling down nothing changes and the wait is
	// returned. Check and claim are one atomic step.
	Reserve(ctx context.Context, client string, now time.Time) (time.Duration, error)
	// Release drops the reservation made at the given time, for submissions
	// that were never stored. A newer reservation is left alone.
	Release(ctx context.Context, client string, at time.Time) error
}

func remainingFrom(last, now time.Time, window time.Duration) time.Duration {
	elapsed := now.Sub(last)
	if elapsed < 0 || elapsed >= window {
		return 0
	}
	return window - elapsed
}

// MemoryCooldown keeps anchors in process. Expired anchors are dropped when
// the map is next written.
type MemoryCooldown struct {
	window time.Duration

	mu   sync.Mutex
	last map[string]time.Time
}

func NewMemoryCooldown(window time.Duration) *MemoryCooldown {
	return &MemoryCooldown{window: window, last: make(map[string]time.Time)}
}

func (c *MemoryCooldown) Reserve(_ context.Context, client string, now time.Time) (time.Duration, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if last, ok := c.last[client]; ok {
		if remaining := remainingFrom(last, now, c.window); remaining > 0 {
			return remaining, nil
		}
	}
	for key, at := range c.last {
		if now.Sub(at) >= c.window {
			delete(c.last, key)
		}
	}
	c.last[client] = now
	return 0, nil
}

func (c *MemoryCooldown) Release(_ context.Context, client string, at time.Time) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if last, ok := c.last[client]; ok && last.Equal(at) {
		delete(c.last, client)
	}
	return nil
}

// RedisCooldown shares anchors between instances. Each anchor is stored as
// unix milliseconds with a TTL of one window.
type RedisCooldown struct {
	client redis.Cmdable
	window time.Duration
}

func NewRedisCooldown(client redis.Cmdable, window time.Duration) *RedisCooldown {
	return &RedisCooldown{client: client, window: window}
}

func (c *RedisCooldown) key(client string) string {
	return contactCooldownKey + ":" + client
}

// releaseScript deletes the anchor only while it still holds our value.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

var errCooldownChurn = errors.New("cooldown anchor expired while being read")

func (c *RedisCooldown) Reserve(ctx context.Context, client string, now time.Time) (time.Duration, error) {
	key := c.key(client)
	value := strconv.FormatInt(now.UnixMilli(), 10)

	for attempt := 0; attempt < 2; attempt++ {
		claimed, err := c.client.SetNX(ctx, key, value, c.window).Result()
		if err != nil {
			return 0, err
		}
		if claimed {
			return 0, nil
		}

		raw, err := c.client.Get(ctx, key).Result()
		if errors.Is(err, redis.Nil) {
			continue
		}
		if err != nil {
			return 0, err
		}
		if ms, err := strconv.ParseInt(raw, 10, 64); err == nil {
			if remaining := remainingFrom(time.UnixMilli(ms), now, c.window); remaining > 0 {
				return remaining, nil
			}
		}
		// stale or unreadable anchor
		return 0, c.client.Set(ctx, key, value, c.window).Err()
	}
	return 0, errCooldownChurn
}

func (c *RedisCooldown) Release(ctx context.Context, client string, at time.Time) error {
	value := strconv.FormatInt(at.UnixMilli(), 10)
	return releaseScript.Run(ctx, c.client, []string{c.key(client)}, value).Err()
}

// NewCooldownStore picks Redis when redisURL is set and in-process otherwise.
func NewCooldownStore(redisURL string, window time.Duration) (CooldownStore, func() error, error) {
	if redisURL == "" {
		return NewMemoryCooldown(window), func() error { return nil }, nil
	}
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, nil, err
	}
	client := redis.NewClient(opts)
	return NewRedisCooldown(client, window), client.Close, nil
}
