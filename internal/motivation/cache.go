package motivation

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/stridehq/stride-api/internal/domain"
)

// DefaultCacheTTL is the maximum age of a cached message when no TTL is
// configured.
const DefaultCacheTTL = 15 * time.Minute

// cacheEntry holds one generated message together with a snapshot of the
// stats it was generated from. The snapshot is compared on lookup to detect
// that the month's underlying data changed since caching.
type cacheEntry struct {
	stats     domain.ActivityStats
	message   domain.MotivationalMessage
	createdAt time.Time
}

// messageCache stores the most recent generated message per user per
// calendar month. Entries are deleted lazily when found stale or via clear;
// there is no periodic sweep and no size-based eviction, since cardinality
// is bounded at one entry per active user per month.
//
// The map is guarded by a single mutex. Two concurrent generations for the
// same key race between lookup-miss and store with last-writer-wins
// semantics, which is acceptable; unguarded map mutation is not.
type messageCache struct {
	mu      sync.Mutex
	entries map[string]*cacheEntry
	ttl     time.Duration
	now     func() time.Time
}

// newMessageCache creates an empty cache with the given TTL. Non-positive
// TTLs fall back to DefaultCacheTTL.
func newMessageCache(ttl time.Duration) *messageCache {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return &messageCache{
		entries: make(map[string]*cacheEntry),
		ttl:     ttl,
		now:     time.Now,
	}
}

// cacheKey derives the cache key from the user and the stats period. The
// month is zero-padded so keys are unambiguous and prefix-scannable.
func cacheKey(userID uuid.UUID, year, month int) string {
	return fmt.Sprintf("%s:%d-%02d", userID, year, month)
}

// lookup returns the cached message for (userID, stats period) with Cached
// forced to true. It reports a miss, deleting the entry, when the entry
// is older than the TTL or when the current stats' activity count or total
// distance differ from the snapshot (a cheap proxy for "something material
// changed this month"; other fields are not compared).
func (c *messageCache) lookup(userID uuid.UUID, stats domain.ActivityStats) (domain.MotivationalMessage, bool) {
	key := cacheKey(userID, stats.Year, stats.Month)

	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.entries[key]
	if !ok {
		return domain.MotivationalMessage{}, false
	}

	if c.now().Sub(entry.createdAt) > c.ttl {
		delete(c.entries, key)
		return domain.MotivationalMessage{}, false
	}

	if entry.stats.TotalActivities != stats.TotalActivities ||
		entry.stats.TotalDistanceMeters != stats.TotalDistanceMeters {
		delete(c.entries, key)
		return domain.MotivationalMessage{}, false
	}

	message := entry.message
	message.Cached = true
	return message, true
}

// store unconditionally overwrites the entry for (userID, stats period) with
// the given message, a snapshot copy of the stats and a fresh timestamp. The
// message is stored with Cached=false; the true flag is set only on copies
// returned by lookup.
func (c *messageCache) store(userID uuid.UUID, stats domain.ActivityStats, message domain.MotivationalMessage) {
	message.Cached = false

	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[cacheKey(userID, stats.Year, stats.Month)] = &cacheEntry{
		stats:     stats.Clone(),
		message:   message,
		createdAt: c.now(),
	}
}

// clear removes every entry belonging to the given user, across all months.
func (c *messageCache) clear(userID uuid.UUID) {
	prefix := userID.String() + ":"

	c.mu.Lock()
	defer c.mu.Unlock()

	for key := range c.entries {
		if strings.HasPrefix(key, prefix) {
			delete(c.entries, key)
		}
	}
}
