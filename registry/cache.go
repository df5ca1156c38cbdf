package registry

import (
	"path/filepath"
	"strings"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/QLYYLQ/iostub/errors"
)

const (
	// DefaultExpiration bounds how long a resolved handler stays cached.
	DefaultExpiration = 10 * time.Minute
	// DefaultCleanupInterval is how often expired entries are swept.
	DefaultCleanupInterval = 30 * time.Minute
)

// lookupCache memoizes suffix -> handler resolution. Registration
// mutators flush it wholesale; resolution is cheap enough that a full
// flush beats tracking per-entry dependencies.
type lookupCache struct {
	cache *gocache.Cache
}

func newLookupCache() *lookupCache {
	return &lookupCache{
		cache: gocache.New(DefaultExpiration, DefaultCleanupInterval),
	}
}

// cacheKey joins modality and suffix. Modality may be empty for
// auto-detect lookups.
func cacheKey(modality, suffix string) string {
	return modality + "/" + suffix
}

func (c *lookupCache) get(modality, suffix string) (Handler, bool) {
	v, found := c.cache.Get(cacheKey(modality, suffix))
	if !found {
		return nil, false
	}
	h, ok := v.(Handler)
	if !ok {
		return nil, false
	}
	return h, true
}

func (c *lookupCache) set(modality, suffix string, h Handler) {
	c.cache.SetDefault(cacheKey(modality, suffix), h)
}

// flushLocked drops every cached entry. Named for its calling context:
// registry mutators invoke it while holding the registry lock.
func (c *lookupCache) flushLocked() {
	c.cache.Flush()
}

// Lookup resolves the handler for a path's suffix. With a modality the
// search is confined to that modality's record (override first, then
// base); without one, modalities are scanned in registration order and
// the last match wins, mirroring the flattened suffix table the stub
// generator emits. The resolved handler is cached; no load logic runs.
func (r *Registry) Lookup(path, modality string) (Handler, error) {
	suffix := NormalizeSuffix(filepath.Ext(path))
	if suffix == "" {
		return nil, errors.NewNotFoundError("path %q has no suffix", path)
	}

	if h, ok := r.lookupCache.get(modality, suffix); ok {
		return h, nil
	}

	r.mu.RLock()
	h := r.resolveLocked(modality, suffix)
	r.mu.RUnlock()

	if h == nil {
		if modality != "" {
			return nil, errors.NewNotFoundError("no handler for suffix %q under modality %q", suffix, modality)
		}
		return nil, errors.NewNotFoundError("no handler for suffix %q", suffix)
	}

	r.lookupCache.set(modality, suffix, h)
	return h, nil
}

// resolveLocked finds the handler for a normalized suffix.
// Caller must hold r.mu (read or write).
func (r *Registry) resolveLocked(modality, suffix string) Handler {
	if modality != "" {
		state, ok := r.records[modality]
		if !ok {
			return nil
		}
		return resolveInState(state, suffix)
	}

	var resolved Handler
	for _, name := range r.order {
		if h := resolveInState(r.records[name], suffix); h != nil {
			resolved = h
		}
	}
	return resolved
}

func resolveInState(state *modalityState, suffix string) Handler {
	if h, ok := state.overrides[suffix]; ok && h != nil {
		return h
	}
	if state.base != nil {
		if _, ok := state.baseSuffixes[suffix]; ok {
			return state.base
		}
	}
	return nil
}

// InvalidateCache drops cached lookups for one suffix across all
// modalities.
func (r *Registry) InvalidateCache(suffix string) {
	norm := NormalizeSuffix(suffix)
	if norm == "" {
		return
	}
	for key := range r.lookupCache.cache.Items() {
		if strings.HasSuffix(key, "/"+norm) {
			r.lookupCache.cache.Delete(key)
		}
	}
}

// FlushCache drops every cached lookup.
func (r *Registry) FlushCache() {
	r.lookupCache.cache.Flush()
}
