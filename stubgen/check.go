package stubgen

import (
	"os"
	"path/filepath"

	"github.com/sergi/go-diff/diffmatchpatch"

	"github.com/QLYYLQ/iostub/errors"
)

// CheckResult holds the outcome of a staleness check against the
// checked-in stub file.
type CheckResult struct {
	// UpToDate is true when the existing stub matches a fresh render
	// byte for byte.
	UpToDate bool

	// Path is the stub file that was compared.
	Path string

	// Missing is true when no stub file exists yet.
	Missing bool

	// Diff is a terminal-renderable diff from the existing content to
	// the fresh render. Empty when UpToDate.
	Diff string
}

// Check regenerates the declaration in memory and compares it with the
// stub on disk. No file is written. A missing stub counts as stale.
func (g *Generator) Check(outputDir string) (*CheckResult, error) {
	if outputDir == "" {
		outputDir = "."
	}
	path := filepath.Join(outputDir, g.cfg.StubName)
	want := g.Render()

	existing, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &CheckResult{Path: path, Missing: true}, nil
		}
		return nil, errors.Wrapf(err, "failed to read %s", path)
	}

	if string(existing) == want {
		return &CheckResult{UpToDate: true, Path: path}, nil
	}

	dmp := diffmatchpatch.New()
	diffs := dmp.DiffMain(string(existing), want, false)
	diffs = dmp.DiffCleanupSemantic(diffs)

	return &CheckResult{
		Path: path,
		Diff: dmp.DiffPrettyText(diffs),
	}, nil
}
