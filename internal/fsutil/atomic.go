package fsutil

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// File is one path and the content it should hold.
type File struct {
	Path    string
	Content []byte
}

// staged tracks a file through the commit.
type staged struct {
	target    string
	temp      string
	backup    string
	committed bool
}

// WriteAll replaces every target with its content, or leaves every target
// as it was. Content is staged to temporary files next to each target and
// only renamed into place once all of them were written; a failed rename
// rolls the already replaced targets back.
func WriteAll(files []File) error {
	stages := make([]*staged, 0, len(files))
	cleanup := func() {
		for _, s := range stages {
			if s.temp != "" {
				_ = os.Remove(s.temp)
			}
		}
	}

	for _, f := range files {
		tmp, err := stage(f)
		if err != nil {
			cleanup()
			return err
		}
		stages = append(stages, &staged{target: f.Path, temp: tmp})
	}

	for i, s := range stages {
		if err := commit(s); err != nil {
			rollback(stages[:i+1])
			cleanup()
			return err
		}
	}

	for _, s := range stages {
		if s.backup != "" {
			_ = os.Remove(s.backup)
		}
	}
	return nil
}

func stage(f File) (string, error) {
	dir := filepath.Dir(f.Path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("fsutil: create dir for %s: %w", f.Path, err)
	}

	tmp, err := os.CreateTemp(dir, ".xspecgen-*.tmp")
	if err != nil {
		return "", fmt.Errorf("fsutil: create temp file for %s: %w", f.Path, err)
	}
	name := tmp.Name()

	if _, err := tmp.Write(f.Content); err != nil {
		_ = tmp.Close()
		_ = os.Remove(name)
		return "", fmt.Errorf("fsutil: write temp file for %s: %w", f.Path, err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(name)
		return "", fmt.Errorf("fsutil: close temp file for %s: %w", f.Path, err)
	}
	if err := os.Chmod(name, 0o644); err != nil {
		_ = os.Remove(name)
		return "", fmt.Errorf("fsutil: chmod temp file for %s: %w", f.Path, err)
	}
	return name, nil
}

// commit moves an existing target aside and renames the staged file in.
func commit(s *staged) error {
	info, err := os.Stat(s.target)
	switch {
	case err == nil:
		if info.IsDir() {
			return fmt.Errorf("fsutil: %s is a directory", s.target)
		}
		s.backup = s.temp + ".bak"
		if err := os.Rename(s.target, s.backup); err != nil {
			s.backup = ""
			return fmt.Errorf("fsutil: back up %s: %w", s.target, err)
		}
	case !errors.Is(err, os.ErrNotExist):
		return fmt.Errorf("fsutil: stat %s: %w", s.target, err)
	}

	if err := os.Rename(s.temp, s.target); err != nil {
		return fmt.Errorf("fsutil: rename temp file to %s: %w", s.target, err)
	}
	s.temp = ""
	s.committed = true
	return nil
}

// rollback restores targets in reverse order.
func rollback(stages []*staged) {
	for i := len(stages) - 1; i >= 0; i-- {
		s := stages[i]
		if s.committed {
			_ = os.Remove(s.target)
		}
		if s.backup != "" {
			_ = os.Rename(s.backup, s.target)
		}
	}
}
