package app

import (
	"errors"
	"fmt"
)

// Output modes.
const (
	ModeTest   = "test"
	ModeInsert = "insert"
)

// Built-in defaults, used when neither the command line nor the
// configuration file sets a value.
const (
	DefaultOutPrefix   = "test"
	DefaultModule      = "xspec"
	DefaultClassPrefix = "XS"
)

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	ModelFile  string // model.dat
	ConfigFile string // optional hcl file

	OutPrefix string
	Mode      string
	RepoRoot  string

	// Module and ClassPrefix win over the configuration file when not
	// empty.
	Module      string
	ClassPrefix string
	// The allow switches can only enable a rule relaxation; the
	// configuration file may enable it as well.
	AllowPerSpectrum bool
	AllowConvolution bool

	Check      bool
	Color      bool
	ReportFile string

	LogFormat string
	LogLevel  string
}

func NewConfig(cfg Config) (*Config, error) {
	if cfg.ModelFile == "" {
		return nil, errors.New("ModelFile is a required configuration field and cannot be empty")
	}
	if cfg.Mode == "" {
		cfg.Mode = ModeTest
	}
	switch cfg.Mode {
	case ModeTest, ModeInsert:
	default:
		return nil, fmt.Errorf("invalid mode %q: must be %q or %q", cfg.Mode, ModeTest, ModeInsert)
	}
	if cfg.OutPrefix == "" {
		cfg.OutPrefix = DefaultOutPrefix
	}
	if cfg.RepoRoot == "" {
		cfg.RepoRoot = "."
	}
	return &cfg, nil
}
