// Package cache serves the public catalog views from memory, reading through
// to the catalog source once per freshness window.
//
// The catalog snapshot and the category index derived from it are replaced
// wholesale on refresh and are never patched. A failed refresh leaves the
// stored state untouched. Invalidate resets both views so the next read
// queries the source again.
package cache

import (
	"context"
	"strconv"
	"sync"
	"time"

	"portfolio/internal"
	"portfolio/internal/stats"
	cl "portfolio/pkg/catalog"

	"github.com/pkg/errors"
	"github.com/twitsprout/tools"
	"github.com/twitsprout/tools/clock"
	"golang.org/x/sync/singleflight"
)

const (
	// CatalogWindow is how long a catalog snapshot is served without
	// querying the source.
	CatalogWindow = time.Hour
	// CategoryIndexWindow is how long a category index is served before it
	// is derived again from the catalog.
	CategoryIndexWindow = 6 * time.Hour
)

const (
	viewCatalog    = "catalog"
	viewCategories = "categories"
)

var _ internal.CatalogCache = (*Cache)(nil)

// snapshot is one successful read of the catalog source.
type snapshot struct {
	entries   []cl.Entry // display order
	byTitle   cl.Catalog
	fetchedAt time.Time
}

// State describes what the cache currently holds.
type State struct {
	Generation             uint64
	Albums                 int
	CatalogFetchedAt       time.Time
	CategoryIndexFetchedAt time.Time
}

// Cache holds the process-wide catalog snapshot and category index.
type Cache struct {
	source       internal.CatalogSource
	logger       tools.Logger
	clock        clock.Clock
	stats        tools.StatsClient
	staleOnError bool
	sf           singleflight.Group

	mu      sync.RWMutex
	gen     uint64
	catalog snapshot
	index   cl.CategoryIndex
	indexAt time.Time
}

// New returns an empty Cache reading from source.
func New(source internal.CatalogSource, logger tools.Logger, ops ...Option) *Cache {
	o := defaultOptions()
	for _, op := range ops {
		op(&o)
	}
	return &Cache{
		source:       source,
		logger:       logger,
		clock:        o.clock,
		stats:        o.stats,
		staleOnError: o.staleOnError,
	}
}

// Catalog returns published albums keyed by title. When the source cannot be
// read the error is returned along with an empty catalog, or the previous
// snapshot if WithStaleOnError was given.
func (c *Cache) Catalog(ctx context.Context) (cl.Catalog, error) {
	snap, err := c.loadCatalog(ctx)
	if snap.byTitle == nil {
		return cl.Catalog{}, err
	}
	return snap.byTitle, err
}

// CategoryIndex returns albums with at least one image grouped by category.
// It fails the same way Catalog does.
func (c *Cache) CategoryIndex(ctx context.Context) (cl.CategoryIndex, error) {
	v, err := memoize(ctx, viewCategories, func() (interface{}, error) {
		idx, err := c.categoryIndex(ctx)
		return idx, err
	})
	idx, _ := v.(cl.CategoryIndex)
	if idx == nil {
		return cl.CategoryIndex{}, err
	}
	return idx, err
}

// Invalidate drops both views. Reads that started before the call never
// store their result.
func (c *Cache) Invalidate() {
	c.mu.Lock()
	c.gen++
	gen := c.gen
	c.catalog = snapshot{}
	c.index = nil
	c.indexAt = time.Time{}
	c.mu.Unlock()

	c.logger.Info("catalog cache invalidated",
		"generation", gen,
	)
}

// State returns the current generation and snapshot timestamps.
func (c *Cache) State() State {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return State{
		Generation:             c.gen,
		Albums:                 len(c.catalog.entries),
		CatalogFetchedAt:       c.catalog.fetchedAt,
		CategoryIndexFetchedAt: c.indexAt,
	}
}

func (c *Cache) loadCatalog(ctx context.Context) (snapshot, error) {
	v, err := memoize(ctx, viewCatalog, func() (interface{}, error) {
		snap, err := c.getCatalog(ctx)
		return snap, err
	})
	snap, _ := v.(snapshot)
	return snap, err
}

func (c *Cache) getCatalog(ctx context.Context) (snapshot, error) {
	c.mu.RLock()
	prev, gen := c.catalog, c.gen
	c.mu.RUnlock()

	if c.isFresh(prev.fetchedAt, CatalogWindow) {
		c.countLookup(viewCatalog, "hit")
		return prev, nil
	}
	c.countLookup(viewCatalog, "miss")

	// Concurrent misses of the same generation share one source query. The
	// query outlives the caller that started it, so one cancelled request
	// does not fail the others; the store bounds it with its own timeout.
	flightCtx := context.WithoutCancel(ctx)
	chRes := c.sf.DoChan("catalog:"+strconv.FormatUint(gen, 10), func() (interface{}, error) {
		return c.refresh(flightCtx, gen)
	})

	var err error
	select {
	case <-ctx.Done():
		err = errors.Wrap(ctx.Err(), "wait for catalog refresh")
	case res := <-chRes:
		if res.Err == nil {
			return res.Val.(snapshot), nil
		}
		err = res.Err
	}

	c.countLookup(viewCatalog, "error")
	if c.staleOnError && !prev.fetchedAt.IsZero() {
		return prev, err
	}
	return snapshot{}, err
}

func (c *Cache) refresh(ctx context.Context, gen uint64) (snapshot, error) {
	// A flight for this generation may have completed since our lookup.
	c.mu.RLock()
	cur, curGen := c.catalog, c.gen
	c.mu.RUnlock()
	if curGen == gen && c.isFresh(cur.fetchedAt, CatalogWindow) {
		return cur, nil
	}

	albums, err := c.source.ListPublishedAlbums(ctx)
	if err != nil {
		c.logger.Error("failed to refresh catalog",
			"generation", gen,
			"details", err.Error(),
		)
		c.stats.Count(stats.SourceRefreshes, 1, []string{"error"})
		return snapshot{}, sourceError{err: err}
	}
	c.stats.Count(stats.SourceRefreshes, 1, []string{"ok"})

	snap := c.newSnapshot(albums)

	c.mu.Lock()
	stored := c.gen == gen
	if stored {
		c.catalog = snap
	}
	c.mu.Unlock()

	if stored {
		c.stats.Gauge(stats.CatalogAlbums, float64(len(snap.entries)), nil)
	}
	c.logger.Debug("catalog refreshed",
		"generation", gen,
		"albums", len(snap.entries),
		"stored", stored,
	)
	return snap, nil
}

func (c *Cache) newSnapshot(albums []cl.Album) snapshot {
	snap := snapshot{
		entries:   make([]cl.Entry, 0, len(albums)),
		byTitle:   make(cl.Catalog, len(albums)),
		fetchedAt: c.clock.Now(),
	}
	for _, a := range albums {
		if !a.Published {
			continue
		}
		e := cl.NewEntry(a)
		if _, ok := snap.byTitle[e.Title]; ok {
			c.logger.Warn("duplicate album title in catalog, keeping the later album",
				"title", e.Title,
				"album_id", e.ID,
			)
		}
		snap.entries = append(snap.entries, e)
		snap.byTitle[e.Title] = e
	}
	return snap
}

func (c *Cache) categoryIndex(ctx context.Context) (cl.CategoryIndex, error) {
	c.mu.RLock()
	prev, prevAt, gen := c.index, c.indexAt, c.gen
	c.mu.RUnlock()

	if prev != nil && c.isFresh(prevAt, CategoryIndexWindow) {
		c.countLookup(viewCategories, "hit")
		return prev, nil
	}
	c.countLookup(viewCategories, "miss")

	snap, err := c.loadCatalog(ctx)
	if err != nil {
		c.countLookup(viewCategories, "error")
		if c.staleOnError && prev != nil {
			return prev, err
		}
		// Only a stale snapshot can be non-empty here; it is never stored.
		return cl.BuildCategoryIndex(snap.entries), err
	}

	idx := cl.BuildCategoryIndex(snap.entries)

	c.mu.Lock()
	if c.gen == gen {
		c.index = idx
		c.indexAt = c.clock.Now()
	}
	c.mu.Unlock()
	return idx, nil
}

func (c *Cache) isFresh(at time.Time, window time.Duration) bool {
	return !at.IsZero() && c.clock.Now().Sub(at) < window
}

func (c *Cache) countLookup(view, outcome string) {
	c.stats.Count(stats.CacheLookups, 1, []string{view, outcome})
}

// sourceError reports a failed source query. It matches
// cl.ErrSourceUnavailable and unwraps to the query error.
type sourceError struct {
	err error
}

func (e sourceError) Error() string {
	return cl.ErrSourceUnavailable.Error() + ": " + e.err.Error()
}

func (e sourceError) Is(target error) bool {
	return target == cl.ErrSourceUnavailable
}

func (e sourceError) Unwrap() error {
	return e.err
}
