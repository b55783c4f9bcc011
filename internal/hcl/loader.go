package hcl

import (
	"context"
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/vk/xspecgen/internal/config"
	"github.com/vk/xspecgen/internal/ctxlog"
	"github.com/vk/xspecgen/internal/schema"
)

// Loader is the HCL-specific implementation of the config.Loader interface.
type Loader struct {
	conv *Converter
}

// NewLoader creates a new HCL configuration loader.
func NewLoader() *Loader {
	return &Loader{conv: NewConverter()}
}

// Load parses the file at path and translates it into a config.Model. An
// empty path returns config.Default().
func (l *Loader) Load(ctx context.Context, path string) (*config.Model, error) {
	logger := ctxlog.FromContext(ctx)
	if path == "" {
		logger.Debug("No configuration file given, using defaults.")
		return config.Default(), nil
	}
	logger.Debug("HCL loader started.", "path", path)

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file %s: %w", path, diags)
	}
	return l.decode(ctx, file)
}

// LoadBytes is Load for in-memory content; filename is used in diagnostics.
func (l *Loader) LoadBytes(ctx context.Context, src []byte, filename string) (*config.Model, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file %s: %w", filename, diags)
	}
	return l.decode(ctx, file)
}

func (l *Loader) decode(ctx context.Context, file *hcl.File) (*config.Model, error) {
	logger := ctxlog.FromContext(ctx)

	var root schema.GeneratorConfig
	diags := gohcl.DecodeBody(file.Body, nil, &root)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL file: %w", diags)
	}
	if err := checkNoExtraContent(root.Body); err != nil {
		return nil, err
	}

	m := config.Default()
	l.translateGenerator(m, root.Generator)
	for _, s := range root.Skip {
		m.SkipModels = append(m.SkipModels, s.Models...)
	}
	if err := l.translateRenames(m, root.Renames); err != nil {
		return nil, err
	}
	if root.Norm != nil {
		norm, err := l.translateNorm(ctx, root.Norm)
		if err != nil {
			return nil, err
		}
		m.Norm = norm
	}
	translateInsert(m, root.Insert)

	logger.Debug("HCL loading complete.",
		"skip_models", len(m.SkipModels),
		"renamed_models", len(m.Renames),
		"norm_override", !m.Norm.IsZero(),
	)
	return m, nil
}

// checkNoExtraContent rejects blocks and attributes the schema does not
// know about, which gohcl leaves in the remain body.
func checkNoExtraContent(body hcl.Body) error {
	if body == nil {
		return nil
	}
	_, diags := body.Content(&hcl.BodySchema{})
	if diags.HasErrors() {
		return fmt.Errorf("unsupported configuration: %w", diags)
	}
	return nil
}
