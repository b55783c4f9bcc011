package hcl

import (
	"context"
	"fmt"
	"math"

	"github.com/hashicorp/hcl/v2"
	"github.com/vk/xspecgen/internal/ctxlog"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
	"github.com/zclconf/go-cty/cty/function"
	"github.com/zclconf/go-cty/cty/function/stdlib"
	"github.com/zclconf/go-cty/cty/gocty"
)

var numericFunctions = map[string]function.Function{
	"min": stdlib.MinFunc,
	"max": stdlib.MaxFunc,
	"pow": stdlib.PowFunc,
}

// Converter evaluates HCL expressions into Go values.
type Converter struct{}

// NewConverter creates a new HCL converter.
func NewConverter() *Converter {
	return &Converter{}
}

// Float evaluates expr and converts the result to a finite float64. Strings
// holding numbers are accepted, the same way cty converts them.
func (c *Converter) Float(ctx context.Context, expr hcl.Expression, evalCtx *hcl.EvalContext) (float64, error) {
	logger := ctxlog.FromContext(ctx)

	val, diags := expr.Value(evalCtx)
	if diags.HasErrors() {
		return 0, diags
	}
	if !val.IsKnown() || val.IsNull() {
		return 0, fmt.Errorf("value must not be null")
	}

	if val.Type() != cty.Number {
		logger.Debug("Converting attribute to number.", "from", val.Type().FriendlyName())
		converted, err := convert.Convert(val, cty.Number)
		if err != nil {
			return 0, fmt.Errorf("cannot convert value of type %s to number: %w", val.Type().FriendlyName(), err)
		}
		val = converted
	}

	var out float64
	if err := gocty.FromCtyValue(val, &out); err != nil {
		return 0, err
	}
	if math.IsInf(out, 0) || math.IsNaN(out) {
		return 0, fmt.Errorf("value must be finite")
	}
	return out, nil
}
