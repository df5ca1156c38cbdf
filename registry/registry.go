// Package registry holds the modality/suffix handler registry consumed by
// the stub generation pipeline.
//
// A Registry maps modality names (Image, Text, Video, ...) to records of
// handlers: an optional base handler covering a set of base suffixes, plus
// per-suffix overrides that supersede the base within the modality. A
// process-wide collision set tracks suffixes registered under more than one
// modality; it is informational only and never changes resolution.
//
// Modality insertion order is preserved. The generation pipeline resolves
// suffixes modality by modality in that order, so when two modalities claim
// the same suffix the later registration wins in the flattened table. That
// order dependence is observable behavior the generated stub relies on, so
// it is kept explicit here rather than left to map iteration.
package registry

import (
	"sort"
	"strings"
	"sync"

	"github.com/QLYYLQ/iostub/errors"
)

// NormalizeSuffix lower-cases a suffix and strips any leading dots.
// Every suffix is passed through here before storage or lookup; it is the
// single normalization point for the whole module.
func NormalizeSuffix(s string) string {
	return strings.ToLower(strings.TrimLeft(s, "."))
}

// ModalityRecord describes the handlers registered under one modality.
type ModalityRecord struct {
	// Base handles every suffix in BaseSuffixes unless an override
	// claims the suffix. May be nil for override-only modalities.
	Base Handler

	// BaseSuffixes are the suffixes the base handler covers.
	BaseSuffixes []string

	// Overrides maps suffix -> handler, superseding Base within this
	// modality. A nil handler value is tolerated and skipped during
	// resolution.
	Overrides map[string]Handler
}

// modalityState is the registry's internal, normalized copy of a record.
type modalityState struct {
	base         Handler
	baseSuffixes map[string]struct{}
	overrides    map[string]Handler
}

// Registry is a mutex-guarded handler registry. Population happens up
// front (see Default); the generation pipeline reads an immutable
// Snapshot and never mutates the registry.
type Registry struct {
	mu      sync.RWMutex
	order   []string
	records map[string]*modalityState

	// suffixModalities tracks which modalities registered each suffix,
	// feeding the collision set.
	suffixModalities map[string]map[string]struct{}

	lookupCache *lookupCache
}

// New creates an empty registry.
func New() *Registry {
	return &Registry{
		records:          make(map[string]*modalityState),
		suffixModalities: make(map[string]map[string]struct{}),
		lookupCache:      newLookupCache(),
	}
}

// AddModality registers a modality record. The record's suffixes are
// normalized on the way in. Registering the same modality twice is a
// caller bug and returns ErrInvalidRequest.
func (r *Registry) AddModality(name string, rec ModalityRecord) error {
	if name == "" {
		return errors.NewInvalidRequestError("modality name must not be empty")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.records[name]; exists {
		return errors.NewInvalidRequestError("modality %q already registered", name)
	}

	state := &modalityState{
		base:         rec.Base,
		baseSuffixes: make(map[string]struct{}, len(rec.BaseSuffixes)),
		overrides:    make(map[string]Handler, len(rec.Overrides)),
	}
	for _, s := range rec.BaseSuffixes {
		norm := NormalizeSuffix(s)
		if norm == "" {
			continue
		}
		state.baseSuffixes[norm] = struct{}{}
		r.trackSuffix(norm, name)
	}
	for s, h := range rec.Overrides {
		norm := NormalizeSuffix(s)
		if norm == "" {
			continue
		}
		state.overrides[norm] = h
		r.trackSuffix(norm, name)
	}

	r.records[name] = state
	r.order = append(r.order, name)
	r.lookupCache.flushLocked()
	return nil
}

// SetBase sets or replaces the base handler for an existing modality.
func (r *Registry) SetBase(modality string, h Handler) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	state, ok := r.records[modality]
	if !ok {
		return errors.NewNotFoundError("modality %q not registered", modality)
	}
	state.base = h
	r.lookupCache.flushLocked()
	return nil
}

// AddBaseSuffixes adds base suffixes to an existing modality.
func (r *Registry) AddBaseSuffixes(modality string, suffixes ...string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	state, ok := r.records[modality]
	if !ok {
		return errors.NewNotFoundError("modality %q not registered", modality)
	}
	for _, s := range suffixes {
		norm := NormalizeSuffix(s)
		if norm == "" {
			continue
		}
		state.baseSuffixes[norm] = struct{}{}
		r.trackSuffix(norm, modality)
	}
	r.lookupCache.flushLocked()
	return nil
}

// SetOverride registers a per-suffix override handler under a modality,
// superseding the base handler for that suffix.
func (r *Registry) SetOverride(modality, suffix string, h Handler) error {
	if h == nil {
		return errors.NewInvalidRequestError("override handler for suffix %q must not be nil", suffix)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	state, ok := r.records[modality]
	if !ok {
		return errors.NewNotFoundError("modality %q not registered", modality)
	}
	norm := NormalizeSuffix(suffix)
	if norm == "" {
		return errors.NewInvalidRequestError("suffix must not be empty")
	}
	state.overrides[norm] = h
	r.trackSuffix(norm, modality)
	r.lookupCache.flushLocked()
	return nil
}

// trackSuffix records a registration site for the collision set.
// Caller must hold r.mu.
func (r *Registry) trackSuffix(suffix, modality string) {
	set, ok := r.suffixModalities[suffix]
	if !ok {
		set = make(map[string]struct{})
		r.suffixModalities[suffix] = set
	}
	set[modality] = struct{}{}
}

// Collisions returns the sorted set of suffixes registered under more
// than one modality. The flag is diagnostic only; it never changes which
// handler a suffix resolves to.
func (r *Registry) Collisions() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []string
	for suffix, modalities := range r.suffixModalities {
		if len(modalities) > 1 {
			out = append(out, suffix)
		}
	}
	sort.Strings(out)
	return out
}

// Modalities returns modality names in registration order.
func (r *Registry) Modalities() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

// ModalitySnapshot is an immutable view of one modality's record.
type ModalitySnapshot struct {
	Name         string
	Base         Handler
	BaseSuffixes []string           // normalized, sorted
	Overrides    map[string]Handler // normalized suffix -> handler
}

// Snapshot is the immutable registry view the generation pipeline reads.
type Snapshot struct {
	// Modalities preserves registration order.
	Modalities []ModalitySnapshot

	// Collisions holds normalized suffixes registered under more than
	// one modality.
	Collisions map[string]struct{}
}

// Snapshot copies the registry state. The pipeline operates entirely on
// the copy, so concurrent registration cannot skew a generation run.
func (r *Registry) Snapshot() Snapshot {
	r.mu.RLock()
	defer r.mu.RUnlock()

	snap := Snapshot{
		Modalities: make([]ModalitySnapshot, 0, len(r.order)),
		Collisions: make(map[string]struct{}),
	}

	for suffix, modalities := range r.suffixModalities {
		if len(modalities) > 1 {
			snap.Collisions[suffix] = struct{}{}
		}
	}

	for _, name := range r.order {
		state := r.records[name]

		suffixes := make([]string, 0, len(state.baseSuffixes))
		for s := range state.baseSuffixes {
			suffixes = append(suffixes, s)
		}
		sort.Strings(suffixes)

		overrides := make(map[string]Handler, len(state.overrides))
		for s, h := range state.overrides {
			overrides[s] = h
		}

		snap.Modalities = append(snap.Modalities, ModalitySnapshot{
			Name:         name,
			Base:         state.base,
			BaseSuffixes: suffixes,
			Overrides:    overrides,
		})
	}

	return snap
}
