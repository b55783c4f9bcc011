package emit

import (
	"fmt"
	"strings"

	"github.com/vk/xspecgen/internal/model"
	"github.com/vk/xspecgen/internal/registry"
)

var (
	fortranSingleArgs = strings.Join([]string{
		"float* ear", "int* ne", "float* param", "int* ifl", "float* photar", "float* photer",
	}, ", ")

	fortranDoubleArgs = strings.Join([]string{
		"double* ear", "int* ne", "double* param", "int* ifl", "double* photar", "double* photer",
	}, ", ")

	cArgs = strings.Join([]string{
		"const Real* energy", "int Nflux", "const Real* parameter", "int spectrum",
		"Real *flux", "Real *fluxError", "const char* init",
	}, ", ")
)

// FortranConvention is the legacy interface: a trailing underscore on the
// symbol and pointer arguments of one precision.
type FortranConvention struct {
	Double bool
}

func (f FortranConvention) Language() model.Language {
	if f.Double {
		return model.LanguageFortranDouble
	}
	return model.LanguageFortranSingle
}

func (f FortranConvention) Declare(e *model.Entry) string {
	args := fortranSingleArgs
	if f.Double {
		args = fortranDoubleArgs
	}
	return fmt.Sprintf("void %s_(%s);\n", e.Routine, args)
}

func (f FortranConvention) MethodDef(e *model.Entry) string {
	return methodDef(e)
}

// CConvention is the C interface with an explicit spectrum index and init
// string. C++ routines are bound through their C entry point as well.
type CConvention struct {
	CPP bool
}

func (c CConvention) Language() model.Language {
	if c.CPP {
		return model.LanguageCPP
	}
	return model.LanguageC
}

func (c CConvention) Declare(e *model.Entry) string {
	return fmt.Sprintf("void %s(%s);\n", e.Routine, cArgs)
}

func (c CConvention) MethodDef(e *model.Entry) string {
	return methodDef(e)
}

// methodDef picks the wrapper macro: _C for the C interface (and for all
// convolution models) and _NORM for additive models.
func methodDef(e *model.Entry) string {
	macro := "XSPECMODELFCT"
	switch e.Category {
	case model.CategoryConvolution:
		macro += "_C"
	default:
		if !e.Language.IsLegacy() {
			macro += "_C"
		}
		if e.Category.IsNormed() {
			macro += "_NORM"
		}
	}
	return fmt.Sprintf("    %s( %s, %d ),\n", macro, e.Routine, e.NumParams())
}

// DefaultRegistry registers a convention for every model.Language.
func DefaultRegistry() *registry.Registry {
	r := registry.New()
	r.Register(FortranConvention{})
	r.Register(FortranConvention{Double: true})
	r.Register(CConvention{})
	r.Register(CConvention{CPP: true})
	return r
}
