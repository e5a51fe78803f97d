package service

import (
	"github.com/dataset-catalog-api/internal/cache"
	"github.com/rs/zerolog"
)

// cacheService exposes operator-triggered cache control
type cacheService struct {
	lookup *cache.Lookup
	log    zerolog.Logger
}

// newCacheService creates a new CacheService
func newCacheService(lookup *cache.Lookup, log zerolog.Logger) *cacheService {
	return &cacheService{
		lookup: lookup,
		log:    log.With().Str("service", "cache").Logger(),
	}
}

// Refresh drops every cached lookup table; the next access reloads from
// the backing store.
func (s *cacheService) Refresh() {
	s.lookup.Invalidate()
	s.log.Info().Msg("Lookup caches cleared")
}
