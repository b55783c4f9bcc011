package registry

import (
	"context"
	"errors"

	"github.com/vk/xspecgen/internal/ctxlog"
	"github.com/vk/xspecgen/internal/model"
)

// Validate checks that every convention the reader can produce has a
// registered Convention.
func (r *Registry) Validate(ctx context.Context) error {
	logger := ctxlog.FromContext(ctx)

	var errs []error
	for _, lang := range model.Languages {
		if _, ok := r.conventions[lang]; !ok {
			errs = append(errs, &UnsupportedInterfaceError{Language: lang})
		}
	}
	if len(errs) > 0 {
		return errors.Join(errs...)
	}

	logger.Debug("Convention registry validated.", "count", len(r.conventions))
	return nil
}
