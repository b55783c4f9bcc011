package emit

import (
	"context"
	"fmt"
	"strings"
	"text/template"

	"github.com/vk/xspecgen/internal/ctxlog"
	"github.com/vk/xspecgen/internal/fsutil"
	"github.com/vk/xspecgen/internal/model"
	"github.com/vk/xspecgen/internal/registry"
)

// Artifact suffixes, appended to the output prefix.
const (
	SuffixPython    = ".py.incl"
	SuffixDeclare   = ".declare.incl"
	SuffixMethodDef = ".methoddef.incl"
)

// Fragment is the rendered output for a single entry.
type Fragment struct {
	Model     string
	Python    string
	Declare   string
	MethodDef string
}

// Artifacts accumulates the three fragment streams in entry order.
type Artifacts struct {
	Fragments []Fragment
	// Notes are non-fatal observations, e.g. a class shadowing the module.
	Notes []string

	python    strings.Builder
	declare   strings.Builder
	methodDef strings.Builder
}

func (a *Artifacts) add(f Fragment) {
	a.Fragments = append(a.Fragments, f)
	a.python.WriteString(f.Python)
	a.declare.WriteString(f.Declare)
	a.methodDef.WriteString(f.MethodDef)
}

// Python is the content of the .py.incl artifact.
func (a *Artifacts) Python() string { return a.python.String() }

// Declare is the content of the .declare.incl artifact.
func (a *Artifacts) Declare() string { return a.declare.String() }

// MethodDef is the content of the .methoddef.incl artifact.
func (a *Artifacts) MethodDef() string { return a.methodDef.String() }

// Outputs returns the three artifacts named after prefix, always in the
// order python, declare, methoddef.
func (a *Artifacts) Outputs(prefix string) []fsutil.File {
	return []fsutil.File{
		{Path: prefix + SuffixPython, Content: []byte(a.Python())},
		{Path: prefix + SuffixDeclare, Content: []byte(a.Declare())},
		{Path: prefix + SuffixMethodDef, Content: []byte(a.MethodDef())},
	}
}

// Emitter renders entries for one Python module.
type Emitter struct {
	module   string
	registry *registry.Registry
	tmpl     *template.Template
}

// New creates an Emitter for the named module.
func New(module string, reg *registry.Registry) (*Emitter, error) {
	if module == "" {
		return nil, fmt.Errorf("module name cannot be empty")
	}
	if reg == nil {
		reg = DefaultRegistry()
	}
	tmpl, err := template.New("python").Parse(pythonTemplate)
	if err != nil {
		return nil, fmt.Errorf("failed to parse python template: %w", err)
	}
	return &Emitter{module: module, registry: reg, tmpl: tmpl}, nil
}

// Emit renders every entry. All conventions are looked up first; an
// unregistered one fails the call before any fragment exists.
func (em *Emitter) Emit(ctx context.Context, entries []*model.Entry) (*Artifacts, error) {
	logger := ctxlog.FromContext(ctx)

	convs := make([]registry.Convention, len(entries))
	for i, e := range entries {
		c, err := em.registry.Lookup(e)
		if err != nil {
			return nil, err
		}
		convs[i] = c
	}

	out := &Artifacts{}
	for i, e := range entries {
		logger.Debug("Rendering model.", "model", e.Name, "interface", convs[i].Language().String())

		if strings.ToLower(e.ClassName) == em.module {
			out.Notes = append(out.Notes, fmt.Sprintf("model class %s has the same name as the module, which may cause problems", e.ClassName))
		}

		py, err := em.renderPython(e)
		if err != nil {
			return nil, err
		}
		out.add(Fragment{
			Model:     e.Name,
			Python:    py,
			Declare:   convs[i].Declare(e),
			MethodDef: convs[i].MethodDef(e),
		})
	}

	logger.Debug("Rendering complete.", "fragments", len(out.Fragments))
	return out, nil
}

func (em *Emitter) renderPython(e *model.Entry) (string, error) {
	pc, err := newPythonClass(em.module, e)
	if err != nil {
		return "", err
	}
	var sb strings.Builder
	if err := em.tmpl.Execute(&sb, pc); err != nil {
		return "", fmt.Errorf("model %s: failed to render python class: %w", e.Name, err)
	}
	return sb.String(), nil
}
