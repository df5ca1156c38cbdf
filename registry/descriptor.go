package registry

// Handler is a unit of load/write logic registered for one or more
// suffixes under a modality. The registry only depends on its stable
// identifying name; the load/write implementations live elsewhere and
// are never executed here.
type Handler interface {
	Name() string
}

// ReturnTypeDeclarer is implemented by handlers that declare their own
// return type instead of relying on the generator's fallback table.
type ReturnTypeDeclarer interface {
	DeclaredReturnType() string
}

// TypeSource states where a handler's return type comes from.
type TypeSource int

const (
	// SourceInferred means the return type must be looked up in the
	// generator's fallback table (or degrade to the generic type).
	SourceInferred TypeSource = iota

	// SourceDeclared means the handler carries its own return type.
	SourceDeclared
)

// Descriptor identifies a handler for the generation pipeline.
// It is built once per handler by Describe and is immutable afterwards.
type Descriptor struct {
	// Name is the handler's stable identifying name.
	Name string

	// Source states whether Declared is meaningful.
	Source TypeSource

	// Declared is the handler's own return-type string, verbatim.
	// Only valid when Source == SourceDeclared.
	Declared string
}

// Describe resolves a handler into its Descriptor. The capability check
// happens exactly once here; downstream code switches on Source instead
// of probing the handler again.
func Describe(h Handler) Descriptor {
	if d, ok := h.(ReturnTypeDeclarer); ok {
		return Descriptor{
			Name:     h.Name(),
			Source:   SourceDeclared,
			Declared: d.DeclaredReturnType(),
		}
	}
	return Descriptor{Name: h.Name(), Source: SourceInferred}
}
