package stubgen

import (
	"sort"
	"strings"
)

// stubName returns the declaration-friendly spelling of a type: its
// registered alias if one exists, the type verbatim otherwise.
func (c *Config) stubName(returnType string) string {
	if alias, ok := c.Aliases[returnType]; ok {
		return alias
	}
	return returnType
}

// DisplayType collapses a modality's type set into a single type
// expression: the lone member for singleton sets, otherwise a Union of
// the alias-substituted members in lexicographic order. Sorting is what
// makes repeated runs over an unordered set byte-identical, which the
// checked-in artifact depends on. Same set in, same text out, always.
func (c *Config) DisplayType(types TypeSet) string {
	if len(types) == 0 {
		return GenericType
	}

	names := make([]string, 0, len(types))
	for t := range types {
		names = append(names, c.stubName(t))
	}
	if len(names) == 1 {
		return names[0]
	}

	sort.Strings(names)
	return "Union[" + strings.Join(names, ", ") + "]"
}
