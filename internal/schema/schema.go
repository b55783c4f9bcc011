// Package schema holds the HCL decoding targets for a generator
// configuration file.
package schema

import (
	"github.com/hashicorp/hcl/v2"
)

// Generator represents the `generator` block. Pointer fields stay nil when
// the attribute is omitted.
type Generator struct {
	Module           *string  `hcl:"module,optional"`
	ClassPrefix      *string  `hcl:"class_prefix,optional"`
	AllowPerSpectrum *bool    `hcl:"allow_per_spectrum,optional"`
	AllowConvolution *bool    `hcl:"allow_convolution,optional"`
	ReservedWords    []string `hcl:"reserved_words,optional"`
}

// Skip represents a `skip` block listing model names to exclude.
type Skip struct {
	Models []string `hcl:"models"`
}

// Rename represents a `rename "<model>"` block overriding the Python name
// of one parameter.
type Rename struct {
	Model     string `hcl:"model,label"`
	Parameter string `hcl:"parameter"`
	To        string `hcl:"to"`
}

// Norm represents the `norm` block. Its attributes are expressions that
// are evaluated to numbers after decoding.
type Norm struct {
	Body hcl.Body `hcl:",remain"`
}

// Insert represents the `insert` block naming the files that hold the
// generated sections.
type Insert struct {
	PythonFile string `hcl:"python_file,optional"`
	CFile      string `hcl:"c_file,optional"`
}

// GeneratorConfig represents the top-level structure of a configuration
// file.
type GeneratorConfig struct {
	Generator *Generator `hcl:"generator,block"`
	Skip      []*Skip    `hcl:"skip,block"`
	Renames   []*Rename  `hcl:"rename,block"`
	Norm      *Norm      `hcl:"norm,block"`
	Insert    *Insert    `hcl:"insert,block"`
	Body      hcl.Body   `hcl:",remain"`
}
