// Package cache provides a small in-process TTL cache used in front of
// frequently-read store objects such as categories and workspace settings.
package cache

import (
	"sync"
	"time"
)

// Config controls cache behavior.
type Config struct {
	// DefaultTTL is applied to entries set without an explicit TTL.
	DefaultTTL time.Duration
	// CleanupInterval is how often expired entries are purged. Zero disables
	// the background janitor.
	CleanupInterval time.Duration
	// MaxItems bounds the cache size. When full, the entry closest to expiry
	// is evicted. Zero means unbounded.
	MaxItems int
	// OnEviction, if set, is called for every evicted or expired entry.
	OnEviction func(key string, value any)
}

type entry struct {
	value     any
	expiresAt time.Time
}

// Cache is a thread-safe string-keyed TTL cache.
type Cache struct {
	mu      sync.RWMutex
	config  Config
	entries map[string]entry
	done    chan struct{}
	once    sync.Once
}

// New creates a cache and starts its cleanup janitor if configured.
func New(config Config) *Cache {
	c := &Cache{
		config:  config,
		entries: make(map[string]entry),
		done:    make(chan struct{}),
	}
	if config.CleanupInterval > 0 {
		go c.janitor()
	}
	return c
}

// Get returns the value for key if present and not expired.
func (c *Cache) Get(key string) (any, bool) {
	c.mu.RLock()
	e, ok := c.entries[key]
	c.mu.RUnlock()
	if !ok {
		return nil, false
	}
	if time.Now().After(e.expiresAt) {
		c.Delete(key)
		return nil, false
	}
	return e.value, true
}

// Set stores value under key with the default TTL.
func (c *Cache) Set(key string, value any) {
	c.SetWithTTL(key, value, c.config.DefaultTTL)
}

// SetWithTTL stores value under key with an explicit TTL.
func (c *Cache) SetWithTTL(key string, value any, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.config.MaxItems > 0 && len(c.entries) >= c.config.MaxItems {
		if _, exists := c.entries[key]; !exists {
			c.evictSoonestLocked()
		}
	}
	c.entries[key] = entry{value: value, expiresAt: time.Now().Add(ttl)}
}

// Delete removes key from the cache.
func (c *Cache) Delete(key string) {
	c.mu.Lock()
	e, ok := c.entries[key]
	delete(c.entries, key)
	c.mu.Unlock()
	if ok && c.config.OnEviction != nil {
		c.config.OnEviction(key, e.value)
	}
}

// Clear removes all entries.
func (c *Cache) Clear() {
	c.mu.Lock()
	old := c.entries
	c.entries = make(map[string]entry)
	c.mu.Unlock()
	if c.config.OnEviction != nil {
		for k, e := range old {
			c.config.OnEviction(k, e.value)
		}
	}
}

// Len returns the number of entries, including not-yet-purged expired ones.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Close stops the cleanup janitor.
func (c *Cache) Close() {
	c.once.Do(func() { close(c.done) })
}

func (c *Cache) janitor() {
	ticker := time.NewTicker(c.config.CleanupInterval)
	defer ticker.Stop()
	for {
		select {
		case <-c.done:
			return
		case <-ticker.C:
			c.purgeExpired()
		}
	}
}

func (c *Cache) purgeExpired() {
	now := time.Now()
	c.mu.Lock()
	var evicted []struct {
		key   string
		value any
	}
	for k, e := range c.entries {
		if now.After(e.expiresAt) {
			delete(c.entries, k)
			if c.config.OnEviction != nil {
				evicted = append(evicted, struct {
					key   string
					value any
				}{k, e.value})
			}
		}
	}
	c.mu.Unlock()
	for _, e := range evicted {
		c.config.OnEviction(e.key, e.value)
	}
}

// evictSoonestLocked drops the entry with the earliest expiry. Caller holds
// the write lock.
func (c *Cache) evictSoonestLocked() {
	var victim string
	var soonest time.Time
	first := true
	for k, e := range c.entries {
		if first || e.expiresAt.Before(soonest) {
			victim, soonest, first = k, e.expiresAt, false
		}
	}
	if !first {
		e := c.entries[victim]
		delete(c.entries, victim)
		if c.config.OnEviction != nil {
			c.config.OnEviction(victim, e.value)
		}
	}
}
