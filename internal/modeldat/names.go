package modeldat

import (
	"fmt"
	"strings"
	"unicode"
)

// DefaultReservedWords are parameter names that clash with Python keywords
// or builtins used by the generated classes.
var DefaultReservedWords = []string{"break", "lambda", "type"}

// NameFunc maps a model name to the class name used for its wrapper.
type NameFunc func(model string) string

// PrefixNamer returns a NameFunc that prepends prefix. With an empty prefix
// the model name is capitalised instead, so the result still starts with an
// upper-case letter.
func PrefixNamer(prefix string) NameFunc {
	if prefix == "" {
		return capitalize
	}
	return func(model string) string {
		return prefix + model
	}
}

// ValidateNameFunc fails when fn does not produce a capitalised class name.
func ValidateNameFunc(fn NameFunc) error {
	in := "bob"
	out := fn(in)
	if out == "" || !unicode.IsUpper([]rune(out)[0]) {
		return fmt.Errorf("the class name function does not capitalize its result: %q -> %q", in, out)
	}
	return nil
}

// capitalize upper-cases the first rune and lower-cases the rest.
func capitalize(s string) string {
	if s == "" {
		return s
	}
	r := []rune(strings.ToLower(s))
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}

// Translator converts XSPEC parameter names into Python identifiers.
type Translator struct {
	reserved map[string]struct{}
	// renames is keyed by model name, then by the original parameter name.
	renames map[string]map[string]string
}

// NewTranslator builds a Translator. A nil reserved list selects
// DefaultReservedWords.
func NewTranslator(reserved []string, renames map[string]map[string]string) *Translator {
	if reserved == nil {
		reserved = DefaultReservedWords
	}
	t := &Translator{
		reserved: make(map[string]struct{}, len(reserved)),
		renames:  renames,
	}
	for _, w := range reserved {
		t.reserved[w] = struct{}{}
	}
	return t
}

// Translate returns the identifier for parameter par of model.
//
//	<kT>       -> kT_ave
//	T@1keV     -> TAt1keV
//	Fe(solar)  -> Fe_solar
//	E-cut      -> E_cut
//	lambda     -> lambda_
func (t *Translator) Translate(model, par string) string {
	if byModel, ok := t.renames[model]; ok {
		if to, ok := byModel[par]; ok {
			return to
		}
	}

	name := par
	if strings.HasPrefix(name, "<") && strings.HasSuffix(name, ">") && len(name) > 1 {
		name = name[1:len(name)-1] + "_ave"
	}

	name = strings.ReplaceAll(name, "@", "At")

	// foo(bar) -> foo_bar, before the character sweep below turns it
	// into foo_bar_.
	if strings.HasSuffix(name, ")") {
		if lpos := strings.LastIndexByte(name, '('); lpos != -1 {
			name = name[:lpos] + "_" + name[lpos+1:len(name)-1]
		}
	}

	name = strings.Map(func(r rune) rune {
		if r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_') {
			return r
		}
		return '_'
	}, name)

	if _, ok := t.reserved[name]; ok {
		name += "_"
	}
	return name
}
