package stubgen

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGroupByModality(t *testing.T) {
	table := ResolveSuffixes(DefaultConfig(), textRegistry().Snapshot())
	groups := GroupByModality(table)

	require.Len(t, groups, 1)
	// Three suffixes, but json and yaml share a type string: the set
	// dedups to two members.
	assert.Len(t, groups["Text"], 2)
	_, hasStr := groups["Text"]["str"]
	_, hasDict := groups["Text"]["dict[str, Any]"]
	assert.True(t, hasStr)
	assert.True(t, hasDict)
}

func TestDisplayType(t *testing.T) {
	cfg := DefaultConfig()

	tests := []struct {
		name  string
		types []string
		want  string
	}{
		{
			name:  "empty set degrades to generic",
			types: nil,
			want:  "Any",
		},
		{
			name:  "single aliased type",
			types: []string{"PIL.Image.Image"},
			want:  "PILImage",
		},
		{
			name:  "single unaliased type verbatim",
			types: []string{"str"},
			want:  "str",
		},
		{
			name:  "union sorted lexicographically",
			types: []string{"str", "dict[str, Any]"},
			want:  "Union[dict[str, Any], str]",
		},
		{
			name:  "union members alias-substituted",
			types: []string{"PIL.Image.Image", "torchvision.io.VideoReader"},
			want:  "Union[PILImage, VideoReader]",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			set := make(TypeSet, len(tt.types))
			for _, typ := range tt.types {
				set[typ] = struct{}{}
			}
			assert.Equal(t, tt.want, cfg.DisplayType(set))
		})
	}
}

func TestDisplayTypeReferentialTransparency(t *testing.T) {
	cfg := DefaultConfig()
	set := TypeSet{
		"str":                        {},
		"dict[str, Any]":             {},
		"PIL.Image.Image":            {},
		"torchvision.io.VideoReader": {},
	}

	first := cfg.DisplayType(set)
	for i := 0; i < 50; i++ {
		assert.Equal(t, first, cfg.DisplayType(set))
	}
}
