package app

import (
	"fmt"

	"github.com/spf13/afero"
)

// Executor removes directories marked for deletion. It only ever receives
// paths produced by discovery; nothing here constructs a target path on its
// own, so the cache root and package directories are never candidates.
type Executor struct {
	fs     afero.Fs
	dryRun bool
}

func NewExecutor(fs afero.Fs, dryRun bool) *Executor {
	return &Executor{fs: fs, dryRun: dryRun}
}

// DeleteResult is the outcome for a single delete-set path. In dry-run mode
// Deleted stays false and Err is nil: the path was recorded, not removed.
type DeleteResult struct {
	Path    string
	Deleted bool
	Err     error
}

// RemoveAll processes every path, continuing past individual failures so a
// run always visits its whole delete set.
func (e *Executor) RemoveAll(paths []string) []DeleteResult {
	results := make([]DeleteResult, 0, len(paths))
	for _, p := range paths {
		if e.dryRun {
			results = append(results, DeleteResult{Path: p})
			continue
		}
		if err := e.fs.RemoveAll(p); err != nil {
			results = append(results, DeleteResult{Path: p, Err: fmt.Errorf("delete %s: %w", p, err)})
			continue
		}
		results = append(results, DeleteResult{Path: p, Deleted: true})
	}
	return results
}
