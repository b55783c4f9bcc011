package modeldat

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/vk/xspecgen/internal/model"
)

// NormDefinition is the parameter line used for the implicit norm of
// additive models.
const NormDefinition = `norm " " 1.0 0.0 0.0 1.0e24 1.0e24 0.1`

// parseParameter converts one parameter line of the given model.
func (r *Reader) parseParameter(line, modelName string) (model.Parameter, error) {
	line = strings.TrimSpace(line)
	if strings.HasSuffix(line, "P") {
		return model.Parameter{}, fmt.Errorf("periodic parameters are unsupported")
	}

	toks, err := tokenize(line)
	if err != nil {
		return model.Parameter{}, fmt.Errorf("unable to parse units: %w", err)
	}
	if len(toks) == 0 {
		return model.Parameter{}, fmt.Errorf("empty parameter definition")
	}

	orig := toks[0].text
	toks = toks[1:]

	switch {
	case strings.HasPrefix(orig, "$"):
		p, err := parseSwitch(toks)
		if err != nil {
			return p, err
		}
		p.Original = orig
		p.Name = r.translate(modelName, orig)
		return p, nil

	case strings.HasPrefix(orig, "*"):
		p, err := parseScale(toks)
		if err != nil {
			return p, err
		}
		p.Original = orig
		p.Name = r.translate(modelName, orig)
		return p, nil
	}

	if len(toks) != 7 {
		return model.Parameter{}, fmt.Errorf("expected units and 6 values after the name, found %d fields", len(toks))
	}
	vals, err := parseFloats(texts(toks[1:]))
	if err != nil {
		return model.Parameter{}, err
	}
	p := newBasic(vals[0], vals[1], vals[2], vals[3], vals[4], vals[5])
	p.Original = orig
	p.Name = r.translate(modelName, orig)
	p.Units = cleanUnits(toks[0].text)
	return p, nil
}

// newBasic applies the basic parameter rules: the default is clamped into
// the soft range and a negative delta marks the parameter frozen.
func newBasic(def, hardMin, softMin, softMax, hardMax, delta float64) model.Parameter {
	p := model.Parameter{
		Kind:    model.ParamBasic,
		SoftMin: model.Float(softMin),
		SoftMax: model.Float(softMax),
		HardMin: model.Float(hardMin),
		HardMax: model.Float(hardMax),
	}
	switch {
	case def < softMin:
		p.Default = softMin
	case def > softMax:
		p.Default = softMax
	default:
		p.Default = def
	}
	if delta < 0 {
		p.Frozen = true
	}
	p.Delta = model.Float(math.Abs(delta))
	return p
}

// parseSwitch handles the forms seen for $name parameters:
//
//	$switch 1
//	$model  " " 0
//	$switch 1 0 0 1 1 -1
//	$method " " 1 1 1 3 3 -0.01
func parseSwitch(toks []token) (model.Parameter, error) {
	p := model.Parameter{Kind: model.ParamSwitch, Frozen: true}
	fields := texts(toks)

	switch n := len(fields); {
	case n == 1:
		def, err := parseInt(fields[0])
		if err != nil {
			return p, err
		}
		p.Default = def
		return p, nil

	case n == 2:
		def, err := parseInt(fields[1])
		if err != nil {
			return p, err
		}
		p.Units = cleanUnits(fields[0])
		p.Default = def
		return p, nil

	case n >= 6:
		// Units, when present, precede the six trailing values.
		tail := fields[n-6:]
		def, err := parseInt(tail[0])
		if err != nil {
			return p, err
		}
		vals, err := parseFloats(tail[1:])
		if err != nil {
			return p, err
		}
		p.Default = def
		p.HardMin = model.Float(vals[0])
		p.SoftMin = model.Float(vals[1])
		p.SoftMax = model.Float(vals[2])
		p.HardMax = model.Float(vals[3])
		p.Delta = model.Float(math.Abs(vals[4]))
		return p, nil
	}
	return p, fmt.Errorf("unsupported switch parameter layout with %d fields", len(fields))
}

// parseScale handles *name parameters: units, a default and up to five
// optional limits in the order hardmin softmin softmax hardmax delta.
func parseScale(toks []token) (model.Parameter, error) {
	p := model.Parameter{Kind: model.ParamScale, Frozen: true}
	if len(toks) < 2 {
		return p, fmt.Errorf("scale parameter needs units and a default value")
	}
	if len(toks) > 7 {
		return p, fmt.Errorf("scale parameter has %d fields, expected at most 7", len(toks))
	}
	p.Units = cleanUnits(toks[0].text)

	vals, err := parseFloats(texts(toks[1:]))
	if err != nil {
		return p, err
	}
	p.Default = vals[0]
	targets := []**float64{&p.HardMin, &p.SoftMin, &p.SoftMax, &p.HardMax, &p.Delta}
	for i, v := range vals[1:] {
		*targets[i] = model.Float(v)
	}
	if p.Delta != nil {
		p.Delta = model.Float(math.Abs(*p.Delta))
	}
	return p, nil
}

func parseFloats(fields []string) ([]float64, error) {
	out := make([]float64, len(fields))
	for i, f := range fields {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return nil, fmt.Errorf("non-numeric value %q", f)
		}
		out[i] = v
	}
	return out, nil
}

// parseInt accepts integral numbers, including forms such as "1." that
// Fortran-era files use.
func parseInt(f string) (float64, error) {
	v, err := strconv.ParseFloat(f, 64)
	if err != nil || v != math.Trunc(v) {
		return 0, fmt.Errorf("non-integer value %q", f)
	}
	return v, nil
}
