package fsutil

import (
	"errors"
	"fmt"
	"os"

	"github.com/pmezard/go-difflib/difflib"
)

// Change is the difference between a file on disk and its new content.
type Change struct {
	Path    string
	Missing bool
	Diff    string
}

// Compare diffs every file against the current content at its path. Files
// that are already up to date are omitted from the result.
func Compare(files []File) ([]Change, error) {
	var changes []Change
	for _, f := range files {
		old, err := os.ReadFile(f.Path)
		missing := errors.Is(err, os.ErrNotExist)
		if err != nil && !missing {
			return nil, fmt.Errorf("fsutil: read %s: %w", f.Path, err)
		}
		if !missing && string(old) == string(f.Content) {
			continue
		}

		diff, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
			A:        difflib.SplitLines(string(old)),
			B:        difflib.SplitLines(string(f.Content)),
			FromFile: f.Path,
			ToFile:   f.Path + " (generated)",
			Context:  3,
		})
		if err != nil {
			return nil, fmt.Errorf("fsutil: diff %s: %w", f.Path, err)
		}
		changes = append(changes, Change{Path: f.Path, Missing: missing, Diff: diff})
	}
	return changes, nil
}
