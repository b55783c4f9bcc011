package registry

import (
	"fmt"
	"log/slog"

	"github.com/vk/xspecgen/internal/model"
)

// Convention renders the two C-side fragments for one calling convention.
type Convention interface {
	// Language is the convention this variant implements.
	Language() model.Language
	// Declare returns the extern declaration of the routine, newline
	// terminated.
	Declare(e *model.Entry) string
	// MethodDef returns the dispatch-table entry, newline terminated.
	MethodDef(e *model.Entry) string
}

// UnsupportedInterfaceError is returned when an entry uses a convention
// that has no registered Convention.
type UnsupportedInterfaceError struct {
	Model    string
	Language model.Language
}

// Error implements the error interface for UnsupportedInterfaceError.
func (e *UnsupportedInterfaceError) Error() string {
	if e.Model == "" {
		return fmt.Sprintf("no emitter template registered for interface %q", e.Language)
	}
	return fmt.Sprintf("model %s: no emitter template registered for interface %q", e.Model, e.Language)
}

// Registry holds the registered conventions for a single generator run.
type Registry struct {
	conventions map[model.Language]Convention
}

// New creates and initializes a new Registry instance.
func New() *Registry {
	return &Registry{
		conventions: make(map[model.Language]Convention),
	}
}

// Register adds a convention. Registering the same language twice is a
// programmer error.
func (r *Registry) Register(c Convention) {
	lang := c.Language()
	if _, exists := r.conventions[lang]; exists {
		panic(fmt.Sprintf("convention for interface '%s' already registered", lang))
	}
	slog.Debug("Registering convention.", "interface", lang.String())
	r.conventions[lang] = c
}

// Lookup returns the convention for an entry.
func (r *Registry) Lookup(e *model.Entry) (Convention, error) {
	c, ok := r.conventions[e.Language]
	if !ok {
		return nil, &UnsupportedInterfaceError{Model: e.Name, Language: e.Language}
	}
	return c, nil
}

// Len is the number of registered conventions.
func (r *Registry) Len() int {
	return len(r.conventions)
}
