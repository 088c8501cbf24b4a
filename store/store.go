package store

import (
	"time"

	"github.com/opotrack/opotrack/internal/profile"
	"github.com/opotrack/opotrack/store/cache"
)

// Store provides database access to all raw objects.
type Store struct {
	profile *profile.Profile
	driver  Driver

	// Cache settings
	cacheConfig cache.Config

	// Caches
	settingCache  *cache.Cache // cache for workspace settings
	categoryCache *cache.Cache // cache for category lists, keyed by folder scope
}

// New creates a new instance of Store.
func New(driver Driver, profile *profile.Profile) *Store {
	cacheConfig := cache.Config{
		DefaultTTL:      10 * time.Minute,
		CleanupInterval: 5 * time.Minute,
		MaxItems:        1000,
	}

	return &Store{
		driver:        driver,
		profile:       profile,
		cacheConfig:   cacheConfig,
		settingCache:  cache.New(cacheConfig),
		categoryCache: cache.New(cacheConfig),
	}
}

func (s *Store) GetDriver() Driver {
	return s.driver
}

func (s *Store) Close() error {
	s.settingCache.Close()
	s.categoryCache.Close()

	return s.driver.Close()
}
