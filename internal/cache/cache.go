// Package cache holds process-local, TTL-bounded copies of the auxiliary
// reference tables (categories, content hubs, AI comments, divisions).
package cache

import (
	"context"
	"sync"
	"time"

	"github.com/dataset-catalog-api/internal/airtable"
	"github.com/rs/zerolog"
)

// Fetcher loads every record of an upstream table.
type Fetcher interface {
	FetchAll(ctx context.Context, table string) ([]airtable.Record, error)
}

// Tables names the four cached upstream tables.
type Tables struct {
	Categories  string
	ContentHubs string
	Comments    string
	Divisions   string
}

// Fields maps a record id to that record's field set.
type Fields map[string]map[string]interface{}

// Lookup caches the four reference tables behind a single shared freshness
// timestamp: reloading any one sub-cache renews the TTL for all four. That
// one-clock-for-four behavior is load-bearing for downstream consumers and
// must not be "fixed" into per-table clocks.
type Lookup struct {
	fetcher Fetcher
	tables  Tables
	ttl     time.Duration
	now     func() time.Time
	log     zerolog.Logger

	mu         sync.Mutex
	loadedAt   time.Time
	categories Fields
	hubs       Fields
	comments   Fields
	divisions  Fields
}

// New creates a lookup cache over the given fetcher
func New(fetcher Fetcher, tables Tables, ttl time.Duration, log zerolog.Logger) *Lookup {
	return &Lookup{
		fetcher: fetcher,
		tables:  tables,
		ttl:     ttl,
		now:     time.Now,
		log:     log.With().Str("component", "lookup-cache").Logger(),
	}
}

// SetClock replaces the freshness clock. Tests use this to control TTL
// expiry deterministically.
func (l *Lookup) SetClock(now func() time.Time) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.now = now
}

// Categories returns the category sub-cache, reloading it when stale.
func (l *Lookup) Categories(ctx context.Context) (Fields, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.categories != nil && l.fresh() {
		return l.categories, nil
	}
	loaded, err := l.load(ctx, l.tables.Categories)
	if err != nil {
		return nil, err
	}
	l.categories = loaded
	l.loadedAt = l.now()
	return l.categories, nil
}

// ContentHubs returns the content-hub sub-cache, reloading it when stale.
func (l *Lookup) ContentHubs(ctx context.Context) (Fields, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.hubs != nil && l.fresh() {
		return l.hubs, nil
	}
	loaded, err := l.load(ctx, l.tables.ContentHubs)
	if err != nil {
		return nil, err
	}
	l.hubs = loaded
	l.loadedAt = l.now()
	return l.hubs, nil
}

// Comments returns the AI-comment sub-cache, reloading it when stale.
func (l *Lookup) Comments(ctx context.Context) (Fields, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.comments != nil && l.fresh() {
		return l.comments, nil
	}
	loaded, err := l.load(ctx, l.tables.Comments)
	if err != nil {
		return nil, err
	}
	l.comments = loaded
	l.loadedAt = l.now()
	return l.comments, nil
}

// Divisions returns the division sub-cache. Unlike the other three, a
// failed load degrades to an empty mapping: division-dependent features
// then behave as if no divisions exist.
func (l *Lookup) Divisions(ctx context.Context) Fields {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.divisions != nil && l.fresh() {
		return l.divisions
	}
	loaded, err := l.load(ctx, l.tables.Divisions)
	if err != nil {
		l.log.Warn().Err(err).Msg("Divisions load failed, degrading to empty mapping")
		loaded = Fields{}
	}
	l.divisions = loaded
	l.loadedAt = l.now()
	return l.divisions
}

// Invalidate drops all four sub-caches and the freshness timestamp. The
// next access to any of them performs a full synchronous reload.
func (l *Lookup) Invalidate() {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.categories = nil
	l.hubs = nil
	l.comments = nil
	l.divisions = nil
	l.loadedAt = time.Time{}
	l.log.Info().Msg("Lookup cache invalidated")
}

// fresh reports whether the shared timestamp is within the TTL. Callers
// must hold the mutex.
func (l *Lookup) fresh() bool {
	if l.loadedAt.IsZero() {
		return false
	}
	return l.now().Sub(l.loadedAt) < l.ttl
}

// load builds a fresh replacement map for one table. Callers must hold the
// mutex; reloads are full-replace, never a partial merge.
func (l *Lookup) load(ctx context.Context, table string) (Fields, error) {
	records, err := l.fetcher.FetchAll(ctx, table)
	if err != nil {
		return nil, err
	}

	loaded := make(Fields, len(records))
	for _, rec := range records {
		loaded[rec.ID] = rec.Fields
	}
	l.log.Debug().Str("table", table).Int("count", len(loaded)).Msg("Sub-cache loaded")
	return loaded, nil
}
