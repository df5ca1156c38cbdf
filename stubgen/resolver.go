package stubgen

import (
	"sort"

	"github.com/QLYYLQ/iostub/registry"
)

// SuffixEntry is one row of the flattened suffix table.
type SuffixEntry struct {
	// Suffix is the normalized suffix the entry is keyed by.
	Suffix string

	// Handler describes the handler that won resolution for the suffix.
	Handler registry.Descriptor

	// Modality is the modality the winning handler belongs to.
	Modality string

	// ReturnType is the resolved return-type string.
	ReturnType string

	// IsCollision marks suffixes present in the registry collision set.
	// Informational only; it does not alter resolution.
	IsCollision bool
}

// Shadow records a cross-modality overwrite observed while flattening:
// the suffix was first resolved under Previous and then overwritten by a
// later modality record. Resolution keeps the later entry; the shadow is
// surfaced so the ambiguity is visible in diagnostics.
type Shadow struct {
	Suffix   string
	Previous string
	Current  string
}

// SuffixTable is the normalized suffix -> entry table built once per
// generation run and discarded after emission.
type SuffixTable struct {
	entries map[string]SuffixEntry
	shadows []Shadow
}

// ResolveSuffixes flattens a registry snapshot into the suffix table.
//
// Per modality, in registration order: base suffixes record the base
// handler unless the same modality overrides the suffix (an override
// entry suppresses the base even when its handler is nil); overrides
// record their handler unconditionally, nil handlers skipped. The table
// is keyed by suffix alone, so a later modality record overwrites an
// earlier one's claim to the same suffix.
//
// Nothing here fails: unresolvable handlers degrade through the config's
// fallback chain and absent suffixes are simply not in the table.
func ResolveSuffixes(cfg *Config, snap registry.Snapshot) *SuffixTable {
	table := &SuffixTable{
		entries: make(map[string]SuffixEntry),
	}

	for _, m := range snap.Modalities {
		if m.Base != nil {
			desc := registry.Describe(m.Base)
			for _, suffix := range m.BaseSuffixes {
				if _, overridden := m.Overrides[suffix]; overridden {
					continue
				}
				table.record(cfg, snap, suffix, desc, m.Name)
			}
		}

		overrideSuffixes := make([]string, 0, len(m.Overrides))
		for suffix := range m.Overrides {
			overrideSuffixes = append(overrideSuffixes, suffix)
		}
		sort.Strings(overrideSuffixes)

		for _, suffix := range overrideSuffixes {
			h := m.Overrides[suffix]
			if h == nil {
				continue
			}
			table.record(cfg, snap, suffix, registry.Describe(h), m.Name)
		}
	}

	return table
}

func (t *SuffixTable) record(cfg *Config, snap registry.Snapshot, suffix string, desc registry.Descriptor, modality string) {
	norm := registry.NormalizeSuffix(suffix)

	if prev, exists := t.entries[norm]; exists && prev.Modality != modality {
		t.shadows = append(t.shadows, Shadow{
			Suffix:   norm,
			Previous: prev.Modality,
			Current:  modality,
		})
	}

	_, collision := snap.Collisions[norm]
	t.entries[norm] = SuffixEntry{
		Suffix:      norm,
		Handler:     desc,
		Modality:    modality,
		ReturnType:  cfg.ResolveReturnType(desc),
		IsCollision: collision,
	}
}

// Get returns the entry for a suffix, normalizing the key first.
func (t *SuffixTable) Get(suffix string) (SuffixEntry, bool) {
	e, ok := t.entries[registry.NormalizeSuffix(suffix)]
	return e, ok
}

// Len returns the number of resolved suffixes.
func (t *SuffixTable) Len() int {
	return len(t.entries)
}

// Suffixes returns all resolved suffixes, sorted.
func (t *SuffixTable) Suffixes() []string {
	out := make([]string, 0, len(t.entries))
	for s := range t.entries {
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}

// Entries returns all entries in sorted suffix order.
func (t *SuffixTable) Entries() []SuffixEntry {
	out := make([]SuffixEntry, 0, len(t.entries))
	for _, s := range t.Suffixes() {
		out = append(out, t.entries[s])
	}
	return out
}

// CrossModalityShadows returns the overwrites observed during flattening,
// sorted by suffix. The slice is empty when no two modalities claimed the
// same suffix.
func (t *SuffixTable) CrossModalityShadows() []Shadow {
	out := make([]Shadow, len(t.shadows))
	copy(out, t.shadows)
	sort.Slice(out, func(i, j int) bool {
		if out[i].Suffix != out[j].Suffix {
			return out[i].Suffix < out[j].Suffix
		}
		return out[i].Current < out[j].Current
	})
	return out
}
