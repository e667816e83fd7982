package pipeline

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/ppiankov/gfconv/internal/model"
)

// ErrInvalidSource indicates the source path resolved to no input files.
var ErrInvalidSource = errors.New("no input files match source path")

// ResolveSources expands the user-supplied path into the list of source
// files: a readable regular file resolves to itself, a directory to
// every regular file matching the glob pattern directly beneath it.
func ResolveSources(path, glob string) ([]string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}

	if !info.IsDir() {
		if !info.Mode().IsRegular() {
			return nil, fmt.Errorf("%w: %s is not a regular file", ErrInvalidSource, path)
		}
		return []string{path}, nil
	}

	matches, err := filepath.Glob(filepath.Join(path, glob))
	if err != nil {
		return nil, fmt.Errorf("glob %q: %w", glob, err)
	}

	var files []string
	for _, m := range matches {
		if fi, err := os.Stat(m); err == nil && fi.Mode().IsRegular() {
			files = append(files, m)
		}
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("%w: no %q files under %s", ErrInvalidSource, glob, path)
	}

	sort.Strings(files)
	return files, nil
}

// Run converts the given sources sequentially, collecting one outcome
// per file. A failure in any file never stops the rest of the batch.
func (p *Pipeline) Run(sources []string) []*model.Outcome {
	outcomes := make([]*model.Outcome, 0, len(sources))
	for _, src := range sources {
		outcomes = append(outcomes, p.ConvertFile(src))
	}
	return outcomes
}
