// Package report writes a YAML summary of a generator run.
package report

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/vk/xspecgen/internal/classify"
	"github.com/vk/xspecgen/internal/fsutil"
)

// Run is the summary of one generator invocation.
type Run struct {
	Input    string             `yaml:"input"`
	Mode     string             `yaml:"mode"`
	Module   string             `yaml:"module"`
	Counts   Counts             `yaml:"counts"`
	Accepted []string           `yaml:"accepted"`
	Skipped  []classify.Skipped `yaml:"skipped"`
	Warnings []string           `yaml:"warnings,omitempty"`
	Notes    []string           `yaml:"notes,omitempty"`
	// Outputs are the files written, or in check mode the files that
	// differ from the generated content.
	Outputs []string `yaml:"outputs"`
}

// Counts summarises the classification.
type Counts struct {
	Entries  int `yaml:"entries"`
	Accepted int `yaml:"accepted"`
	Skipped  int `yaml:"skipped"`
}

// New builds a Run from a classification report.
func New(input, mode, module string, rep *classify.Report) *Run {
	r := &Run{Input: input, Mode: mode, Module: module}
	if rep != nil {
		r.Accepted = rep.Accepted
		r.Skipped = rep.Skipped
		r.Warnings = rep.Warnings
	}
	r.Counts = Counts{
		Entries:  len(r.Accepted) + len(r.Skipped),
		Accepted: len(r.Accepted),
		Skipped:  len(r.Skipped),
	}
	return r
}

// Marshal renders the run as YAML.
func (r *Run) Marshal() ([]byte, error) {
	data, err := yaml.Marshal(r)
	if err != nil {
		return nil, fmt.Errorf("marshaling report: %w", err)
	}
	return data, nil
}

// File renders the run as a file to be written at path, for callers that
// commit the report together with other files.
func (r *Run) File(path string) (fsutil.File, error) {
	data, err := r.Marshal()
	if err != nil {
		return fsutil.File{}, err
	}
	return fsutil.File{Path: path, Content: data}, nil
}

// Write stores the run at path, replacing any previous report.
func (r *Run) Write(path string) error {
	f, err := r.File(path)
	if err != nil {
		return err
	}
	return fsutil.WriteAll([]fsutil.File{f})
}
