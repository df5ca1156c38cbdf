package registry

// Built-in handler set of the CLTrainingFramework IO layer. These carry
// identity only; the actual read/write implementations are registered by
// the framework at runtime and are irrelevant to stub generation.

// BaseImage loads raster images.
type BaseImage struct{}

func (BaseImage) Name() string { return "BaseImage" }

// BaseText loads plain text files.
type BaseText struct{}

func (BaseText) Name() string { return "BaseText" }

// JsonText loads JSON documents as dictionaries.
type JsonText struct{}

func (JsonText) Name() string { return "JsonText" }

// YamlText loads YAML documents as dictionaries.
type YamlText struct{}

func (YamlText) Name() string { return "YamlText" }

// BaseVideo loads video streams.
type BaseVideo struct{}

func (BaseVideo) Name() string { return "BaseVideo" }

// Default builds the registry as the framework populates it: the three
// well-known modalities with their base handlers and the Text overrides
// for structured formats. Built by explicit construction so callers own
// the instance; nothing here runs at package init.
func Default() *Registry {
	r := New()

	// Errors are impossible here: fresh registry, distinct modalities.
	_ = r.AddModality("Image", ModalityRecord{
		Base:         BaseImage{},
		BaseSuffixes: []string{"png", "jpg", "jpeg", "bmp", "gif", "webp", "tiff"},
	})
	_ = r.AddModality("Text", ModalityRecord{
		Base:         BaseText{},
		BaseSuffixes: []string{"txt", "md", "log"},
		Overrides: map[string]Handler{
			"json": JsonText{},
			"yaml": YamlText{},
			"yml":  YamlText{},
		},
	})
	_ = r.AddModality("Video", ModalityRecord{
		Base:         BaseVideo{},
		BaseSuffixes: []string{"mp4", "avi", "mov", "mkv"},
	})

	return r
}
