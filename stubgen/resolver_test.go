package stubgen

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/QLYYLQ/iostub/registry"
)

func TestResolveSuffixesBaseAndOverrides(t *testing.T) {
	cfg := DefaultConfig()
	table := ResolveSuffixes(cfg, textRegistry().Snapshot())

	assert.Equal(t, 3, table.Len())
	assert.Equal(t, []string{"json", "txt", "yaml"}, table.Suffixes())

	txt, ok := table.Get("txt")
	require.True(t, ok)
	assert.Equal(t, "BaseText", txt.Handler.Name)
	assert.Equal(t, "Text", txt.Modality)
	assert.Equal(t, "str", txt.ReturnType)
	assert.False(t, txt.IsCollision)

	jsonEntry, ok := table.Get("json")
	require.True(t, ok)
	assert.Equal(t, "JsonText", jsonEntry.Handler.Name)
	assert.Equal(t, "dict[str, Any]", jsonEntry.ReturnType)
}

func TestResolveSuffixesOverridePrecedence(t *testing.T) {
	// "json" appears both as a base suffix and as an override within
	// the same modality; the override must win.
	r := registry.New()
	require.NoError(t, r.AddModality("Text", registry.ModalityRecord{
		Base:         fakeHandler{name: "BaseText"},
		BaseSuffixes: []string{"txt", "json"},
		Overrides: map[string]registry.Handler{
			"json": fakeHandler{name: "JsonText"},
		},
	}))

	table := ResolveSuffixes(DefaultConfig(), r.Snapshot())

	entry, ok := table.Get("json")
	require.True(t, ok)
	assert.Equal(t, "JsonText", entry.Handler.Name)
}

func TestResolveSuffixesNilOverrideSkipped(t *testing.T) {
	// A nil override suppresses the base entry but records nothing
	// itself, leaving the suffix unresolved.
	r := registry.New()
	require.NoError(t, r.AddModality("Text", registry.ModalityRecord{
		Base:         fakeHandler{name: "BaseText"},
		BaseSuffixes: []string{"txt", "csv"},
		Overrides: map[string]registry.Handler{
			"csv": nil,
		},
	}))

	table := ResolveSuffixes(DefaultConfig(), r.Snapshot())

	_, ok := table.Get("csv")
	assert.False(t, ok)
	_, ok = table.Get("txt")
	assert.True(t, ok)
}

func TestResolveSuffixesDeclaredReturnType(t *testing.T) {
	r := registry.New()
	require.NoError(t, r.AddModality("Array", registry.ModalityRecord{
		Base:         declaredHandler{name: "NpyArray", declared: "numpy.ndarray"},
		BaseSuffixes: []string{"npy"},
	}))

	table := ResolveSuffixes(DefaultConfig(), r.Snapshot())

	entry, ok := table.Get("npy")
	require.True(t, ok)
	assert.Equal(t, registry.SourceDeclared, entry.Handler.Source)
	assert.Equal(t, "numpy.ndarray", entry.ReturnType)
}

func TestResolveSuffixesUnknownHandlerFallsBack(t *testing.T) {
	r := registry.New()
	require.NoError(t, r.AddModality("Audio", registry.ModalityRecord{
		Base:         fakeHandler{name: "BaseAudio"},
		BaseSuffixes: []string{"wav"},
	}))

	table := ResolveSuffixes(DefaultConfig(), r.Snapshot())

	entry, ok := table.Get("wav")
	require.True(t, ok)
	assert.Equal(t, GenericType, entry.ReturnType)
}

func TestResolveSuffixesCollisionFlagIndependence(t *testing.T) {
	r := registry.New()
	require.NoError(t, r.AddModality("Image", registry.ModalityRecord{
		Base:         fakeHandler{name: "BaseImage"},
		BaseSuffixes: []string{"png", "dat"},
	}))
	require.NoError(t, r.AddModality("Video", registry.ModalityRecord{
		Base:         fakeHandler{name: "BaseVideo"},
		BaseSuffixes: []string{"mp4", "dat"},
	}))

	table := ResolveSuffixes(DefaultConfig(), r.Snapshot())

	entry, ok := table.Get("dat")
	require.True(t, ok)
	assert.True(t, entry.IsCollision)
	// The flag changes nothing about resolution: the entry resolves
	// normally to the last registration's handler and type.
	assert.Equal(t, "Video", entry.Modality)
	assert.Equal(t, "torchvision.io.VideoReader", entry.ReturnType)

	png, ok := table.Get("png")
	require.True(t, ok)
	assert.False(t, png.IsCollision)
}

func TestResolveSuffixesCrossModalityOverwrite(t *testing.T) {
	build := func(first, second string) *SuffixTable {
		handlers := map[string]registry.Handler{
			"Image": fakeHandler{name: "BaseImage"},
			"Video": fakeHandler{name: "BaseVideo"},
		}
		r := registry.New()
		require.NoError(t, r.AddModality(first, registry.ModalityRecord{
			Base:         handlers[first],
			BaseSuffixes: []string{"dat"},
		}))
		require.NoError(t, r.AddModality(second, registry.ModalityRecord{
			Base:         handlers[second],
			BaseSuffixes: []string{"dat"},
		}))
		return ResolveSuffixes(DefaultConfig(), r.Snapshot())
	}

	// Whichever modality registers last wins the flattened entry.
	table := build("Image", "Video")
	entry, ok := table.Get("dat")
	require.True(t, ok)
	assert.Equal(t, "Video", entry.Modality)

	table = build("Video", "Image")
	entry, ok = table.Get("dat")
	require.True(t, ok)
	assert.Equal(t, "Image", entry.Modality)

	// The overwrite is surfaced as a shadow
	shadows := table.CrossModalityShadows()
	require.Len(t, shadows, 1)
	assert.Equal(t, Shadow{Suffix: "dat", Previous: "Video", Current: "Image"}, shadows[0])
}

func TestResolveSuffixesNoShadowWithinModality(t *testing.T) {
	table := ResolveSuffixes(DefaultConfig(), textRegistry().Snapshot())
	assert.Empty(t, table.CrossModalityShadows())
}
