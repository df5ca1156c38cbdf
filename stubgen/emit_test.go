package stubgen

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/QLYYLQ/iostub/registry"
)

func defaultGroups() map[string]TypeSet {
	table := ResolveSuffixes(DefaultConfig(), registry.Default().Snapshot())
	return GroupByModality(table)
}

func TestRenderHeaderAndImports(t *testing.T) {
	out := DefaultConfig().Render(defaultGroups())

	assert.True(t, strings.HasPrefix(out, `"""`))
	assert.Contains(t, out, "Auto-generated stub file for IO.load() type hints.")
	assert.Contains(t, out, "from typing import overload, Union, Optional, Any, Literal")
	assert.Contains(t, out, "from os import PathLike")

	// Both mapped types are in play, so both import lines appear,
	// sorted: PIL before torchvision.
	pil := strings.Index(out, "from PIL.Image import Image as PILImage")
	tv := strings.Index(out, "from torchvision.io import VideoReader")
	require.GreaterOrEqual(t, pil, 0)
	require.GreaterOrEqual(t, tv, 0)
	assert.Less(t, pil, tv)
}

func TestRenderImportsDeduplicated(t *testing.T) {
	// Two modalities sharing a mapped type must not duplicate its import
	groups := map[string]TypeSet{
		"Image":     {"PIL.Image.Image": {}},
		"Thumbnail": {"PIL.Image.Image": {}},
	}
	out := DefaultConfig().Render(groups)

	assert.Equal(t, 1, strings.Count(out, "from PIL.Image import Image as PILImage"))
}

func TestRenderSingleTypeModalityUsesAlias(t *testing.T) {
	out := DefaultConfig().Render(defaultGroups())

	// Image has exactly one resolved type; the overload returns its
	// alias with no union wrapper.
	assert.Contains(t, out, `        modality: Literal["Image"],`)
	assert.Contains(t, out, ") -> PILImage: ...")
	assert.NotContains(t, out, "Union[PILImage")
}

func TestRenderUnionModality(t *testing.T) {
	out := DefaultConfig().Render(defaultGroups())

	// Text resolves to two distinct types, emitted once each in
	// lexicographic order.
	assert.Contains(t, out, ") -> Union[dict[str, Any], str]: ...")
	assert.Equal(t, 1, strings.Count(out, "Union[dict[str, Any], str]"))
}

func TestRenderModalityPriorityOrder(t *testing.T) {
	groups := defaultGroups()
	groups["Audio"] = TypeSet{"Any": {}}
	groups["Archive"] = TypeSet{"Any": {}}

	out := DefaultConfig().Render(groups)

	image := strings.Index(out, `# modality="Image"`)
	text := strings.Index(out, `# modality="Text"`)
	video := strings.Index(out, `# modality="Video"`)
	archive := strings.Index(out, `# modality="Archive"`)
	audio := strings.Index(out, `# modality="Audio"`)

	for _, idx := range []int{image, text, video, archive, audio} {
		require.GreaterOrEqual(t, idx, 0)
	}

	// Priority modalities first, remaining ones lexicographically
	assert.Less(t, image, text)
	assert.Less(t, text, video)
	assert.Less(t, video, archive)
	assert.Less(t, archive, audio)
}

func TestRenderFallbackAndAuxiliarySignatures(t *testing.T) {
	out := DefaultConfig().Render(defaultGroups())

	assert.Contains(t, out, "# Fallback when modality is not specified (auto-detection)")
	assert.Contains(t, out, "        modality: None = None,")
	assert.Contains(t, out, "# Implementation signature")
	assert.Contains(t, out, "def write(")
	assert.Contains(t, out, "def get_io(")
	assert.Contains(t, out, "def delete_cache(self, name: str) -> None: ...")
	assert.True(t, strings.HasSuffix(out, "...\n"))
}

func TestRenderDeterministic(t *testing.T) {
	cfg := DefaultConfig()
	gen := New(cfg, registry.Default())

	first := gen.Render()
	for i := 0; i < 20; i++ {
		assert.Equal(t, first, gen.Render())
	}
}
