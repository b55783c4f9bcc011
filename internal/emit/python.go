package emit

import (
	"fmt"
	"strings"

	"github.com/vk/xspecgen/internal/model"
)

const pythonTemplate = `class {{.ClassName}}(XS{{.Parent}}):
    """The Xspec model {{.Name}}"""
    _calc = _{{.Module}}.{{.Routine}}

    def __init__(self, name='{{.Name}}'):
{{- range .Params}}
        self.{{.Name}} = {{.Ctor}}
{{- end}}
{{- range .Warnings}}
        warnings.warn('{{.}}')
{{- end}}
        XS{{.Parent}}.__init__(self, name, {{.Tuple}})


`

type pythonParam struct {
	Name string
	Ctor string
}

type pythonClass struct {
	ClassName string
	Parent    string
	Name      string
	Module    string
	Routine   string
	Params    []pythonParam
	Warnings  []string
	Tuple     string
}

func parentClass(c model.Category) (string, error) {
	switch c {
	case model.CategoryAdditive:
		return "AdditiveModel", nil
	case model.CategoryMultiplicative:
		return "MultiplicativeModel", nil
	case model.CategoryConvolution:
		return "ConvolutionKernel", nil
	}
	return "", fmt.Errorf("no wrapper for model type %s", c.Label())
}

func newPythonClass(module string, e *model.Entry) (*pythonClass, error) {
	parent, err := parentClass(e.Category)
	if err != nil {
		return nil, fmt.Errorf("model %s: %w", e.Name, err)
	}
	if e.NumParams() == 0 {
		return nil, fmt.Errorf("model %s: expected at least 1 parameter", e.Name)
	}

	pc := &pythonClass{
		ClassName: e.ClassName,
		Parent:    parent,
		Name:      e.Name,
		Module:    module,
		Routine:   e.Routine,
	}

	refs := make([]string, 0, e.NumParams())
	for _, p := range e.Params {
		pc.Params = append(pc.Params, pythonParam{Name: p.Name, Ctor: paramString(p)})
		refs = append(refs, "self."+p.Name)
	}
	if len(refs) == 1 {
		pc.Tuple = "(" + refs[0] + ",)"
	} else {
		pc.Tuple = "(" + strings.Join(refs, ",") + ")"
	}

	lname := strings.ToLower(e.ClassName)
	if e.Flags.Error {
		pc.Warnings = append(pc.Warnings, fmt.Sprintf("support for models like %s (variances are calculated by the model) is untested.", lname))
	}
	if e.Flags.PerSpectrum {
		pc.Warnings = append(pc.Warnings, fmt.Sprintf("support for models like %s (recalculated per spectrum) is untested.", lname))
	}
	return pc, nil
}
