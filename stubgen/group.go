package stubgen

// TypeSet is a set of distinct return-type strings. Dedup is by string
// identity, not semantic equivalence.
type TypeSet map[string]struct{}

// GroupByModality accumulates resolved return types per modality.
// Iteration order over the table is irrelevant here; the sets are
// unordered and ordering decisions happen at emission.
func GroupByModality(table *SuffixTable) map[string]TypeSet {
	groups := make(map[string]TypeSet)

	for _, entry := range table.entries {
		set, ok := groups[entry.Modality]
		if !ok {
			set = make(TypeSet)
			groups[entry.Modality] = set
		}
		set[entry.ReturnType] = struct{}{}
	}

	return groups
}
