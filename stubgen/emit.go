package stubgen

import (
	"fmt"
	"sort"
	"strings"
)

// modalityRenderOrder fixes the declaration order: the configured
// priority list first, then any remaining modalities lexicographically.
// This governs only the order of declarations in the file, never
// resolution.
func (c *Config) modalityRenderOrder(groups map[string]TypeSet) []string {
	order := make([]string, 0, len(groups))
	seen := make(map[string]bool, len(groups))

	for _, modality := range c.ModalityOrder {
		if _, ok := groups[modality]; ok {
			order = append(order, modality)
			seen[modality] = true
		}
	}

	rest := make([]string, 0, len(groups))
	for modality := range groups {
		if !seen[modality] {
			rest = append(rest, modality)
		}
	}
	sort.Strings(rest)

	return append(order, rest...)
}

// Render produces the full declaration text for the grouped return
// types. Pure and stateless; the same groups always render to the same
// bytes.
func (c *Config) Render(groups map[string]TypeSet) string {
	var sb strings.Builder

	// Header docstring
	sb.WriteString(`"""
Auto-generated stub file for IO.load() type hints.

Generated by: iostub
Do not edit manually - regenerate after registering new handlers.

Usage:
    image = IO.load("test.png", modality="Image")  # -> PILImage
    text = IO.load("file.txt", modality="Text")    # -> str
    data = IO.load("config.json", modality="Text") # -> Union[str, dict]
    video = IO.load("clip.mp4", modality="Video")  # -> VideoReader
"""

from typing import overload, Union, Optional, Any, Literal
from os import PathLike
`)

	// Imports for every non-primitive type appearing in any group,
	// sorted and deduplicated. Unmapped types need no import line.
	importsNeeded := make(map[string]struct{})
	for _, types := range groups {
		for t := range types {
			if imp, ok := c.Imports[t]; ok {
				importsNeeded[imp] = struct{}{}
			}
		}
	}
	imports := make([]string, 0, len(importsNeeded))
	for imp := range importsNeeded {
		imports = append(imports, imp)
	}
	sort.Strings(imports)
	for _, imp := range imports {
		sb.WriteString(imp)
		sb.WriteString("\n")
	}

	sb.WriteString(`

class IO:
    """
    IO Router with type inference based on modality parameter.

    When modality is specified, returns the corresponding type.
    Without modality, returns Any (suffix-based auto-detection at runtime).
    """

    def __init__(self, modality: Optional[str] = None) -> None: ...

`)

	// One overload per modality, priority order first
	for _, modality := range c.modalityRenderOrder(groups) {
		c.renderOverload(&sb, modality, groups[modality])
	}

	sb.WriteString(`    # Fallback when modality is not specified (auto-detection)
    @overload
    def load(
        self,
        path: Union[str, PathLike[str]],
        modality: None = None,
        collision_dict: Optional[dict[str, str]] = None,
        **kwargs: Any,
    ) -> Any: ...

    # Implementation signature
    def load(
        self,
        path: Union[str, PathLike[str]],
        modality: Optional[str] = None,
        collision_dict: Optional[dict[str, str]] = None,
        **kwargs: Any,
    ) -> Any: ...

    def write(
        self,
        path: Union[str, PathLike[str]],
        data: Any,
        modality: Optional[str] = None,
        collision_dict: Optional[dict[str, str]] = None,
        **kwargs: Any,
    ) -> None: ...

    def get_io(
        self,
        path: Union[str, PathLike[str]],
        modality: Optional[str] = None,
        collision_dict: Optional[dict[str, str]] = None,
    ) -> Any: ...

    def delete_cache(self, name: str) -> None: ...
`)

	return sb.String()
}

// renderOverload writes the @overload block binding the modality
// parameter to its literal name and the return type to the modality's
// display type.
func (c *Config) renderOverload(sb *strings.Builder, modality string, types TypeSet) {
	sb.WriteString(fmt.Sprintf("    # modality=%q\n", modality))
	sb.WriteString("    @overload\n")
	sb.WriteString("    def load(\n")
	sb.WriteString("        self,\n")
	sb.WriteString("        path: Union[str, PathLike[str]],\n")
	sb.WriteString(fmt.Sprintf("        modality: Literal[%q],\n", modality))
	sb.WriteString("        collision_dict: Optional[dict[str, str]] = None,\n")
	sb.WriteString("        **kwargs: Any,\n")
	sb.WriteString(fmt.Sprintf("    ) -> %s: ...\n", c.DisplayType(types)))
	sb.WriteString("\n")
}
