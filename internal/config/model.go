package config

import (
	"github.com/vk/xspecgen/internal/model"
)

// Default locations of the generated sections in insert mode, relative to
// the repository root.
const (
	DefaultPythonFile = "sherpa/astro/xspec/__init__.py"
	DefaultCFile      = "sherpa/astro/xspec/src/_xspec.cc"
)

// Model is the unified representation of a generator configuration file.
type Model struct {
	Generator Generator
	// SkipModels are excluded by name regardless of their type.
	SkipModels []string
	// Renames is keyed by model name, then by original parameter name.
	Renames map[string]map[string]string
	Norm    NormOverride
	Insert  Insert
}

// Generator holds the naming and classification settings. Nil fields were
// not set in the file and leave the caller's value in place.
type Generator struct {
	Module           *string
	ClassPrefix      *string
	AllowPerSpectrum *bool
	AllowConvolution *bool
	ReservedWords    []string
}

// NormOverride replaces individual values of the implicit norm parameter
// of additive models. Hard limits are not overridable: basic parameters are
// always emitted with open ended hard limits.
type NormOverride struct {
	Default *float64
	SoftMin *float64
	SoftMax *float64
	Delta   *float64
}

// IsZero reports whether no value is overridden.
func (n NormOverride) IsZero() bool {
	return n.Default == nil && n.SoftMin == nil && n.SoftMax == nil && n.Delta == nil
}

// Apply writes the overridden values onto p and clamps the default into
// the resulting soft range. A negative delta freezes the parameter, the same
// as in a model file.
func (n NormOverride) Apply(p *model.Parameter) {
	if n.Default != nil {
		p.Default = *n.Default
	}
	if n.SoftMin != nil {
		p.SoftMin = model.Float(*n.SoftMin)
	}
	if n.SoftMax != nil {
		p.SoftMax = model.Float(*n.SoftMax)
	}
	if n.Delta != nil {
		d := *n.Delta
		if d < 0 {
			p.Frozen = true
			d = -d
		}
		p.Delta = model.Float(d)
	}
	switch {
	case p.SoftMin != nil && p.Default < *p.SoftMin:
		p.Default = *p.SoftMin
	case p.SoftMax != nil && p.Default > *p.SoftMax:
		p.Default = *p.SoftMax
	}
}

// Insert holds the insert mode targets, relative to the repository root.
type Insert struct {
	PythonFile string
	CFile      string
}

// Default returns the configuration used when no file is given.
func Default() *Model {
	return &Model{
		Renames: map[string]map[string]string{},
		Insert: Insert{
			PythonFile: DefaultPythonFile,
			CFile:      DefaultCFile,
		},
	}
}
