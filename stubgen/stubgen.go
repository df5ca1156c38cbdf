// Package stubgen turns a populated handler registry into the Python
// type-stub declaration for IO.load().
//
// The pipeline is a single pass over an immutable registry snapshot:
// flatten to a normalized suffix table (ResolveSuffixes), resolve
// handler return types against the config tables, group them per
// modality (GroupByModality), collapse each group to one type
// expression (Config.DisplayType) and render the declaration text
// (Config.Render). Every step is pure; the only failure surface is the
// final file write.
package stubgen

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pterm/pterm"

	"github.com/QLYYLQ/iostub/errors"
	"github.com/QLYYLQ/iostub/logger"
	"github.com/QLYYLQ/iostub/registry"
)

// Generator binds a config and a registry for one or more generation
// runs. It holds no state between runs; every run reads a fresh
// snapshot.
type Generator struct {
	cfg *Config
	reg *registry.Registry
}

// New creates a generator over the given config and registry.
func New(cfg *Config, reg *registry.Registry) *Generator {
	return &Generator{cfg: cfg, reg: reg}
}

// Render computes the full declaration text in memory.
func (g *Generator) Render() string {
	snap := g.reg.Snapshot()
	table := ResolveSuffixes(g.cfg, snap)
	groups := GroupByModality(table)
	return g.cfg.Render(groups)
}

// Generate renders the declaration and writes it as a single whole-file
// write into outputDir (the working directory when empty). Returns the
// written path. A failed write is the pipeline's only fatal error and
// propagates to the caller.
func (g *Generator) Generate(outputDir string) (string, error) {
	if outputDir == "" {
		outputDir = "."
	}

	content := g.Render()
	outputPath := filepath.Join(outputDir, g.cfg.StubName)

	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return "", errors.Wrap(err, "failed to create output directory")
	}
	if err := os.WriteFile(outputPath, []byte(content), 0644); err != nil {
		return "", errors.Wrapf(err, "failed to write %s", outputPath)
	}

	logger.Logger.Debugw("Stub file written",
		logger.FieldStubFile, outputPath,
		logger.FieldCount, len(content))

	return outputPath, nil
}

// PrintSummary prints the human-readable registry summary: suffix count
// and resolved return types per modality, plus flagged collisions and
// any cross-modality shadowing observed while flattening.
func (g *Generator) PrintSummary() {
	snap := g.reg.Snapshot()
	table := ResolveSuffixes(g.cfg, snap)
	groups := GroupByModality(table)

	suffixCounts := make(map[string]int)
	for _, entry := range table.Entries() {
		suffixCounts[entry.Modality]++
	}

	pterm.DefaultSection.Println("IO registry summary")
	for _, modality := range g.cfg.modalityRenderOrder(groups) {
		types := make([]string, 0, len(groups[modality]))
		for t := range groups[modality] {
			types = append(types, t)
		}
		sort.Strings(types)

		pterm.Info.Printf("%s: %d suffixes\n", modality, suffixCounts[modality])
		pterm.Printf("  Return types: %s\n", strings.Join(types, ", "))
	}

	var collisions []string
	for suffix := range snap.Collisions {
		collisions = append(collisions, suffix)
	}
	sort.Strings(collisions)
	if len(collisions) > 0 {
		pterm.Warning.Printf("Collision suffixes: %s\n", strings.Join(collisions, ", "))
	}

	for _, shadow := range table.CrossModalityShadows() {
		pterm.Warning.Printf("Suffix %q claimed by %s and %s; %s wins by registration order\n",
			shadow.Suffix, shadow.Previous, shadow.Current, shadow.Current)
	}
}

// SummaryString returns the summary as plain text, used when styled
// terminal output is unwanted (JSON log mode).
func (g *Generator) SummaryString() string {
	snap := g.reg.Snapshot()
	table := ResolveSuffixes(g.cfg, snap)
	groups := GroupByModality(table)

	suffixCounts := make(map[string]int)
	for _, entry := range table.Entries() {
		suffixCounts[entry.Modality]++
	}

	var sb strings.Builder
	sb.WriteString("IO registry summary\n")
	for _, modality := range g.cfg.modalityRenderOrder(groups) {
		types := make([]string, 0, len(groups[modality]))
		for t := range groups[modality] {
			types = append(types, t)
		}
		sort.Strings(types)

		sb.WriteString(fmt.Sprintf("  %s: %d suffixes\n", modality, suffixCounts[modality]))
		sb.WriteString(fmt.Sprintf("    Return types: %s\n", strings.Join(types, ", ")))
	}

	var collisions []string
	for suffix := range snap.Collisions {
		collisions = append(collisions, suffix)
	}
	sort.Strings(collisions)
	if len(collisions) > 0 {
		sb.WriteString(fmt.Sprintf("  Collision suffixes: %s\n", strings.Join(collisions, ", ")))
	}

	return sb.String()
}
