package stubgen

import (
	"github.com/QLYYLQ/iostub/registry"
)

type fakeHandler struct {
	name string
}

func (h fakeHandler) Name() string { return h.name }

type declaredHandler struct {
	name     string
	declared string
}

func (h declaredHandler) Name() string               { return h.name }
func (h declaredHandler) DeclaredReturnType() string { return h.declared }

// textRegistry builds the Text modality used across tests: three
// suffixes resolving to str, dict[str, Any], dict[str, Any].
func textRegistry() *registry.Registry {
	r := registry.New()
	_ = r.AddModality("Text", registry.ModalityRecord{
		Base:         fakeHandler{name: "BaseText"},
		BaseSuffixes: []string{"txt"},
		Overrides: map[string]registry.Handler{
			"json": fakeHandler{name: "JsonText"},
			"yaml": fakeHandler{name: "YamlText"},
		},
	})
	return r
}
