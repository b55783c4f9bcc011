package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/vk/xspecgen/internal/classify"
	"github.com/vk/xspecgen/internal/config"
	"github.com/vk/xspecgen/internal/ctxlog"
	"github.com/vk/xspecgen/internal/emit"
	"github.com/vk/xspecgen/internal/modeldat"
	"github.com/vk/xspecgen/internal/registry"
	"github.com/vk/xspecgen/internal/report"
)

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW     io.Writer
	logger   *slog.Logger
	cfg      *Config
	config   *config.Model
	registry *registry.Registry

	module      string
	classPrefix string
	rules       classify.Rules

	summary *report.Run
}

// NewApp is the constructor for the main application. Diffs and other
// user-facing output go to outW; logs go to logW. A nil reg selects the
// built-in conventions.
func NewApp(outW, logW io.Writer, cfg *Config, loader config.Loader, reg *registry.Registry) (*App, error) {
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, logW)
	ctx := ctxlog.WithLogger(context.Background(), logger)
	logger.Debug("Logger configured successfully.")

	cfgModel, err := loader.Load(ctx, cfg.ConfigFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	logger.Debug("Configuration loaded.", "path", cfg.ConfigFile)

	if reg == nil {
		reg = emit.DefaultRegistry()
	}
	if err := reg.Validate(ctx); err != nil {
		return nil, fmt.Errorf("invalid convention registry: %w", err)
	}
	logger.Debug("Registry validation passed.", "conventions", reg.Len())

	a := &App{
		outW:     outW,
		logger:   logger,
		cfg:      cfg,
		config:   cfgModel,
		registry: reg,
	}
	a.resolveSettings()

	if err := modeldat.ValidateNameFunc(modeldat.PrefixNamer(a.classPrefix)); err != nil {
		return nil, fmt.Errorf("invalid class prefix %q: %w", a.classPrefix, err)
	}
	return a, nil
}

// resolveSettings layers command line values over the configuration file
// over the built-in defaults.
func (a *App) resolveSettings() {
	gen := a.config.Generator

	a.module = DefaultModule
	if gen.Module != nil {
		a.module = *gen.Module
	}
	if a.cfg.Module != "" {
		a.module = a.cfg.Module
	}

	a.classPrefix = DefaultClassPrefix
	if gen.ClassPrefix != nil {
		a.classPrefix = *gen.ClassPrefix
	}
	if a.cfg.ClassPrefix != "" {
		a.classPrefix = a.cfg.ClassPrefix
	}

	a.rules = classify.Rules{
		AllowPerSpectrum: a.cfg.AllowPerSpectrum || (gen.AllowPerSpectrum != nil && *gen.AllowPerSpectrum),
		AllowConvolution: a.cfg.AllowConvolution || (gen.AllowConvolution != nil && *gen.AllowConvolution),
		SkipModels:       a.config.SkipModels,
	}
}

// readerOptions builds the model file options from the resolved settings.
func (a *App) readerOptions() modeldat.Options {
	opts := modeldat.Options{
		NameFunc:      modeldat.PrefixNamer(a.classPrefix),
		ReservedWords: a.config.Generator.ReservedWords,
		Renames:       a.config.Renames,
	}
	if !a.config.Norm.IsZero() {
		opts.Norm = a.config.Norm.Apply
	}
	return opts
}

// Registry returns the application's registry. This is primarily for testing.
func (a *App) Registry() *registry.Registry {
	return a.registry
}

// Summary returns the report of the last Run, or nil before the first one.
func (a *App) Summary() *report.Run {
	return a.summary
}
