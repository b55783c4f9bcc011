package hcl

import (
	"context"
	"fmt"
	"regexp"
	"sort"

	"github.com/hashicorp/hcl/v2"
	"github.com/vk/xspecgen/internal/config"
	"github.com/vk/xspecgen/internal/ctxlog"
	"github.com/vk/xspecgen/internal/schema"
)

// translateGenerator copies the generator block into the model.
func (l *Loader) translateGenerator(m *config.Model, g *schema.Generator) {
	if g == nil {
		return
	}
	m.Generator = config.Generator{
		Module:           g.Module,
		ClassPrefix:      g.ClassPrefix,
		AllowPerSpectrum: g.AllowPerSpectrum,
		AllowConvolution: g.AllowConvolution,
		ReservedWords:    g.ReservedWords,
	}
}

var identifier = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// translateRenames groups rename blocks by model. A parameter renamed twice
// within one model, or renamed to something that is not a Python
// identifier, is an error.
func (l *Loader) translateRenames(m *config.Model, renames []*schema.Rename) error {
	for _, r := range renames {
		if r.Parameter == "" || r.To == "" {
			return fmt.Errorf("rename %q: parameter and to must not be empty", r.Model)
		}
		if !identifier.MatchString(r.To) {
			return fmt.Errorf("rename %q: %q is not a valid identifier", r.Model, r.To)
		}
		byParam, ok := m.Renames[r.Model]
		if !ok {
			byParam = make(map[string]string)
			m.Renames[r.Model] = byParam
		}
		if prev, dup := byParam[r.Parameter]; dup {
			return fmt.Errorf("rename %q: parameter %q already renamed to %q", r.Model, r.Parameter, prev)
		}
		byParam[r.Parameter] = r.To
	}
	return nil
}

// translateNorm evaluates the attributes of the norm block.
func (l *Loader) translateNorm(ctx context.Context, n *schema.Norm) (config.NormOverride, error) {
	logger := ctxlog.FromContext(ctx)

	var out config.NormOverride
	attrs, diags := n.Body.JustAttributes()
	if diags.HasErrors() {
		return out, fmt.Errorf("failed to read norm block: %w", diags)
	}

	targets := map[string]**float64{
		"default":  &out.Default,
		"soft_min": &out.SoftMin,
		"soft_max": &out.SoftMax,
		"delta":    &out.Delta,
	}
	fixed := map[string]bool{"hard_min": true, "hard_max": true}

	// Sorted for deterministic error reporting.
	names := make([]string, 0, len(attrs))
	for name := range attrs {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		if fixed[name] {
			return out, fmt.Errorf("norm: attribute %q cannot be overridden, hard limits are fixed", name)
		}
		target, ok := targets[name]
		if !ok {
			return out, fmt.Errorf("norm: unsupported attribute %q", name)
		}
		v, err := l.conv.Float(ctx, attrs[name].Expr, evalContext())
		if err != nil {
			return out, fmt.Errorf("norm: attribute %q: %w", name, err)
		}
		logger.Debug("Norm override decoded.", "attribute", name, "value", v)
		*target = &v
	}
	return out, nil
}

// translateInsert fills in the insert targets that were set.
func translateInsert(m *config.Model, in *schema.Insert) {
	if in == nil {
		return
	}
	if in.PythonFile != "" {
		m.Insert.PythonFile = in.PythonFile
	}
	if in.CFile != "" {
		m.Insert.CFile = in.CFile
	}
}

// evalContext exposes a few numeric functions to norm expressions.
func evalContext() *hcl.EvalContext {
	return &hcl.EvalContext{Functions: numericFunctions}
}
