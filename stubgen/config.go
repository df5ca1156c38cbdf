package stubgen

import (
	"os"

	"github.com/pelletier/go-toml/v2"

	"github.com/QLYYLQ/iostub/errors"
	"github.com/QLYYLQ/iostub/registry"
)

// GenericType is the degradation target for every unresolvable case.
// Resolution never fails; it falls back to this instead.
const GenericType = "Any"

// DefaultStubName is the fixed filename of the generated declaration.
const DefaultStubName = "Mapping.pyi"

// Config carries the static lookup tables the pipeline resolves against.
// It is constructed once (DefaultConfig or LoadConfig) and passed by
// reference; nothing in the pipeline reads ambient global state.
type Config struct {
	// ReturnTypes maps handler name -> return-type string, consulted
	// when a handler does not declare its own return type.
	ReturnTypes map[string]string `toml:"return_types"`

	// Imports maps return-type string -> the import line the stub needs
	// for it. Types absent from the map need no import.
	Imports map[string]string `toml:"imports"`

	// Aliases maps return-type string -> the shorter name used in the
	// stub. Types absent from the map appear verbatim.
	Aliases map[string]string `toml:"aliases"`

	// ModalityOrder fixes the declaration order of the well-known
	// modalities. Modalities not listed render after these, in
	// lexicographic order.
	ModalityOrder []string `toml:"modality_order"`

	// StubName is the generated filename.
	StubName string `toml:"stub_name"`
}

// DefaultConfig returns the built-in tables for the CLTrainingFramework
// handler set.
func DefaultConfig() *Config {
	return &Config{
		ReturnTypes: map[string]string{
			"BaseImage": "PIL.Image.Image",
			"BaseText":  "str",
			"JsonText":  "dict[str, Any]",
			"YamlText":  "dict[str, Any]",
			"BaseVideo": "torchvision.io.VideoReader",
		},
		Imports: map[string]string{
			"PIL.Image.Image":            "from PIL.Image import Image as PILImage",
			"torchvision.io.VideoReader": "from torchvision.io import VideoReader",
		},
		Aliases: map[string]string{
			"PIL.Image.Image":            "PILImage",
			"torchvision.io.VideoReader": "VideoReader",
		},
		ModalityOrder: []string{"Image", "Text", "Video"},
		StubName:      DefaultStubName,
	}
}

// LoadConfig overlays a TOML file onto the defaults. Table entries merge
// key by key; scalar settings replace only when present. An empty path
// returns the defaults unchanged.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read config file %s", path)
	}

	var overlay Config
	if err := toml.Unmarshal(data, &overlay); err != nil {
		return nil, errors.Wrapf(err, "failed to parse config file %s", path)
	}

	for k, v := range overlay.ReturnTypes {
		cfg.ReturnTypes[k] = v
	}
	for k, v := range overlay.Imports {
		cfg.Imports[k] = v
	}
	for k, v := range overlay.Aliases {
		cfg.Aliases[k] = v
	}
	if len(overlay.ModalityOrder) > 0 {
		cfg.ModalityOrder = overlay.ModalityOrder
	}
	if overlay.StubName != "" {
		cfg.StubName = overlay.StubName
	}

	return cfg, nil
}

// ResolveReturnType maps a handler descriptor to its return-type string:
// the handler's own declaration verbatim, else the fallback table by
// name, else the generic type. Pure; never fails.
func (c *Config) ResolveReturnType(d registry.Descriptor) string {
	if d.Source == registry.SourceDeclared {
		return d.Declared
	}
	if t, ok := c.ReturnTypes[d.Name]; ok {
		return t
	}
	return GenericType
}
