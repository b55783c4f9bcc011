package classify

import (
	"fmt"

	"github.com/vk/xspecgen/internal/model"
)

// Skip reasons shared with tests and the run report.
const (
	ReasonPerSpectrum   = "needs per-spectrum re-evaluation"
	ReasonConvolution   = "model type requires unsupported convolution semantics"
	ReasonConfigured    = "excluded by configuration"
	ReasonNoParameters  = "model has no parameters"
	reasonUnsupportedFm = "model type %s is unsupported"
	reasonSharedFm      = "calls %s which is used by %d different models"
)

// Disposition is the verdict for one entry. A zero Reason means Accept.
type Disposition struct {
	Reason string
}

// Accept is the disposition of a bindable entry.
var Accept = Disposition{}

// Skip builds a disposition excluding an entry.
func Skip(reason string) Disposition {
	return Disposition{Reason: reason}
}

// Accepted reports whether the entry should be emitted.
func (d Disposition) Accepted() bool {
	return d.Reason == ""
}

// Rules toggles the optional classification rules.
type Rules struct {
	AllowPerSpectrum bool
	AllowConvolution bool
	// SkipModels lists model names excluded regardless of their type.
	SkipModels []string
}

// Classifier applies Rules to entries.
type Classifier struct {
	rules Rules
	skip  map[string]struct{}
}

// New builds a Classifier.
func New(rules Rules) *Classifier {
	c := &Classifier{rules: rules, skip: make(map[string]struct{}, len(rules.SkipModels))}
	for _, name := range rules.SkipModels {
		c.skip[name] = struct{}{}
	}
	return c
}

// Classify judges a single entry in isolation.
func (c *Classifier) Classify(entry *model.Entry) Disposition {
	if _, ok := c.skip[entry.Name]; ok {
		return Skip(ReasonConfigured)
	}

	switch entry.Category {
	case model.CategoryMixing, model.CategoryPileup, model.CategoryMixingPileup:
		return Skip(fmt.Sprintf(reasonUnsupportedFm, entry.Category.Label()))
	case model.CategoryConvolution:
		if !c.rules.AllowConvolution {
			return Skip(ReasonConvolution)
		}
	}

	if entry.Flags.PerSpectrum && !c.rules.AllowPerSpectrum {
		return Skip(ReasonPerSpectrum)
	}

	// The generated classes pass a non-empty parameter tuple.
	if entry.NumParams() == 0 {
		return Skip(ReasonNoParameters)
	}
	return Accept
}

// ClassifyAll judges a whole file. Entries whose routine is shared with
// another entry are skipped first, since the wrappers fix the parameter
// count per routine. The accepted entries keep their input order.
func (c *Classifier) ClassifyAll(entries []*model.Entry) ([]*model.Entry, *Report) {
	report := &Report{}

	uses := make(map[string]int, len(entries))
	for _, e := range entries {
		uses[e.Routine]++
	}

	accepted := make([]*model.Entry, 0, len(entries))
	for _, e := range entries {
		d := c.Classify(e)
		if n := uses[e.Routine]; n > 1 {
			d = Skip(fmt.Sprintf(reasonSharedFm, e.Routine, n))
		}

		if !d.Accepted() {
			report.Skipped = append(report.Skipped, Skipped{Name: e.Name, Reason: d.Reason})
			continue
		}

		accepted = append(accepted, e)
		report.Accepted = append(report.Accepted, e.Name)

		if e.Flags.Error {
			report.Warnings = append(report.Warnings, fmt.Sprintf("model %s calculates model variances; this is untested/unsupported", e.Name))
		}
		if e.Flags.PerSpectrum {
			report.Warnings = append(report.Warnings, fmt.Sprintf("model %s needs to be re-calculated per spectrum; this is untested", e.Name))
		}
	}
	return accepted, report
}
