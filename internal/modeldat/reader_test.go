package modeldat

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/xspecgen/internal/ctxlog"
	"github.com/vk/xspecgen/internal/model"
)

const apecDat = `
apec           3  0.         1.e20           C_apec    add  0
kT      keV     1.    0.008   0.008   64.0      64.0      .01
Abundanc " "    1.    0.      0.      5.        5.        -0.001
redshift " "    0.   -0.999  -0.999   10.       10.       -0.01

phabs          1   0.03       1.e20          xsphab    mul 0
nH     10^22 1.   0.0   0.0   1.E5  1.E6  1.E-3
`

func readAll(t *testing.T, src string, opts Options) ([]*model.Entry, error) {
	t.Helper()
	r, err := NewReader(ctxlog.Discard(context.Background()), "model.dat", strings.NewReader(src), opts)
	require.NoError(t, err)

	var out []*model.Entry
	for entry, err := range r.All() {
		if err != nil {
			return out, err
		}
		out = append(out, entry)
	}
	return out, nil
}

func TestReader_Apec(t *testing.T) {
	entries, err := readAll(t, apecDat, Options{})
	require.NoError(t, err)
	require.Len(t, entries, 2)

	apec := entries[0]
	assert.Equal(t, "apec", apec.Name)
	assert.Equal(t, "XSapec", apec.ClassName)
	assert.Equal(t, "C_apec", apec.Routine)
	assert.Equal(t, model.LanguageCPP, apec.Language)
	assert.Equal(t, model.CategoryAdditive, apec.Category)
	assert.Equal(t, 0.0, apec.EnergyLow)
	assert.Equal(t, 1e20, apec.EnergyHigh)
	assert.Equal(t, 2, apec.Source.Line)
	assert.False(t, apec.Flags.Error)
	assert.False(t, apec.Flags.PerSpectrum)

	assert.Equal(t, []string{"kT", "Abundanc", "redshift", "norm"}, apec.ParamNames())
	assert.Equal(t, 4, apec.NumParams())

	kT := apec.Params[0]
	assert.Equal(t, model.ParamBasic, kT.Kind)
	assert.Equal(t, "keV", kT.Units)
	assert.Equal(t, 1.0, kT.Default)
	assert.Equal(t, 0.008, *kT.SoftMin)
	assert.Equal(t, 64.0, *kT.SoftMax)
	assert.False(t, kT.Frozen)

	abund := apec.Params[1]
	assert.Equal(t, "", abund.Units)
	assert.True(t, abund.Frozen)
	assert.Equal(t, 0.001, *abund.Delta)

	norm := apec.Params[3]
	assert.Equal(t, 1.0, norm.Default)
	assert.Equal(t, 1e24, *norm.SoftMax)

	phabs := entries[1]
	assert.Equal(t, model.LanguageFortranSingle, phabs.Language)
	assert.Equal(t, model.CategoryMultiplicative, phabs.Category)
	assert.Equal(t, []string{"nH"}, phabs.ParamNames())
	assert.Equal(t, "10^22", phabs.Params[0].Units)
}

func TestReader_NextReturnsEOF(t *testing.T) {
	r, err := NewReader(context.Background(), "", strings.NewReader("\n\n   \n"), Options{})
	require.NoError(t, err)

	_, err = r.Next()
	assert.True(t, errors.Is(err, io.EOF))
}

func TestReader_FlagsAndInitString(t *testing.T) {
	src := `
smaug  1 0. 1.e20 C_xsmaug add 1 1 setup.dat
a " " 1 0 0 1 1 0.1
plain  0 0. 1.e20 c_plain mul 0 0
`
	entries, err := readAll(t, src, Options{})
	require.NoError(t, err)
	require.Len(t, entries, 2)

	assert.True(t, entries[0].Flags.Error)
	assert.True(t, entries[0].Flags.PerSpectrum)
	assert.Equal(t, "setup.dat", entries[0].InitString)
	assert.Equal(t, model.LanguageC, entries[1].Language)
	assert.Empty(t, entries[1].Params)
}

func TestReader_SwitchAndScaleParameters(t *testing.T) {
	src := `
vmcflow 4 0.01 100. C_vmcflow add 0
$switch    1     0       0     1      1       -1
$method   " "   1       1       1       3       3       -0.01
$model    " "     0
*redshift " " 0.1
`
	entries, err := readAll(t, src, Options{})
	require.NoError(t, err)
	require.Len(t, entries, 1)

	p := entries[0].Params
	require.Len(t, p, 5)

	assert.Equal(t, model.ParamSwitch, p[0].Kind)
	assert.Equal(t, "_switch", p[0].Name)
	assert.Equal(t, "$switch", p[0].Original)
	assert.Equal(t, 1.0, p[0].Default)
	assert.Equal(t, 1.0, *p[0].HardMax)
	assert.True(t, p[0].Frozen)

	assert.Equal(t, "_method", p[1].Name)
	assert.Equal(t, 1.0, p[1].Default)
	assert.Equal(t, 3.0, *p[1].SoftMax)

	assert.Equal(t, "_model", p[2].Name)
	assert.Equal(t, 0.0, p[2].Default)
	assert.Nil(t, p[2].SoftMin)

	assert.Equal(t, model.ParamScale, p[3].Kind)
	assert.Equal(t, "_redshift", p[3].Name)
	assert.Equal(t, 0.1, p[3].Default)
	assert.Nil(t, p[3].HardMin)
}

func TestReader_DefaultClampedToSoftRange(t *testing.T) {
	src := `
clamp 2 0. 1.e20 xsclamp mul 0
lo " " -5. -10. 0. 1. 10. 0.1
hi " " 50. -10. 0. 1. 10. 0.1
`
	entries, err := readAll(t, src, Options{})
	require.NoError(t, err)
	assert.Equal(t, 0.0, entries[0].Params[0].Default)
	assert.Equal(t, 1.0, entries[0].Params[1].Default)
}

func TestReader_QuotedUnitsWithSpaces(t *testing.T) {
	src := `
dens 1 0. 1.e20 xsdens mul 0
n "10^22 atoms" 1. 0. 0. 10. 10. 0.1
`
	entries, err := readAll(t, src, Options{})
	require.NoError(t, err)
	assert.Equal(t, "10^22 atoms", entries[0].Params[0].Units)
}

func TestReader_Options(t *testing.T) {
	src := `
apec 1 0. 1.e20 C_apec add 0
Abundanc " " 1. 0. 0. 5. 5. -0.001
`
	entries, err := readAll(t, src, Options{
		NameFunc: PrefixNamer(""),
		Renames:  map[string]map[string]string{"apec": {"Abundanc": "Abundance"}},
		Norm: func(p *model.Parameter) {
			p.Default = 2
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "Apec", entries[0].ClassName)
	assert.Equal(t, []string{"Abundance", "norm"}, entries[0].ParamNames())
	assert.Equal(t, 2.0, entries[0].Params[1].Default)
}

func TestReader_InvalidNameFunc(t *testing.T) {
	_, err := NewReader(context.Background(), "", strings.NewReader(""), Options{
		NameFunc: func(s string) string { return "xs" + s },
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "capitalize")
}

func TestReader_Errors(t *testing.T) {
	testCases := []struct {
		name       string
		src        string
		expectLine int
		expectMsg  string
	}{
		{
			name:       "header with too few fields",
			src:        "apec 3 0. 1.e20 C_apec add\n",
			expectLine: 1,
			expectMsg:  "expected: modelname",
		},
		{
			name:       "non-numeric parameter count",
			src:        "apec three 0. 1.e20 C_apec add 0\n",
			expectLine: 1,
			expectMsg:  "non-numeric parameter count",
		},
		{
			name:       "negative parameter count",
			src:        "apec -1 0. 1.e20 C_apec add 0\n",
			expectLine: 1,
			expectMsg:  "number of parameters is -1",
		},
		{
			name:       "unknown model type",
			src:        "apec 0 0. 1.e20 C_apec foo 0\n",
			expectLine: 1,
			expectMsg:  "invalid model type",
		},
		{
			name:       "non-numeric bound",
			src:        "apec 1 0. 1.e20 C_apec add 0\n\nkT keV 1. 0.008 low 64.0 64.0 .01\n",
			expectLine: 3,
			expectMsg:  `non-numeric value "low"`,
		},
		{
			name:       "wrong parameter field count",
			src:        "apec 1 0. 1.e20 C_apec add 0\nkT keV 1. 0.008 64.0 64.0 .01\n",
			expectLine: 2,
			expectMsg:  "expected units and 6 values",
		},
		{
			name:       "periodic parameter",
			src:        "apec 1 0. 1.e20 C_apec add 0\nphi deg 0. 0. 0. 360. 360. 1. P\n",
			expectLine: 2,
			expectMsg:  "periodic",
		},
		{
			name:       "unterminated units",
			src:        "apec 1 0. 1.e20 C_apec add 0\nkT \"keV 1. 0.008 0.008 64.0 64.0 .01\n",
			expectLine: 2,
			expectMsg:  "unable to parse units",
		},
		{
			name:       "premature end of file",
			src:        "apec 2 0. 1.e20 C_apec add 0\nkT keV 1. 0.008 0.008 64.0 64.0 .01\n",
			expectLine: 2,
			expectMsg:  "read 1 of 2 parameters",
		},
		{
			name:       "duplicate model name",
			src:        "a 0 0. 1. xsa mul 0\nb 0 0. 1. xsb mul 0\na 0 0. 1. xsc mul 0\n",
			expectLine: 3,
			expectMsg:  `duplicate model name "a" (first defined on line 1)`,
		},
		{
			name:       "clashing parameter names",
			src:        "a 2 0. 1. xsa mul 0\nkT keV 1. 0. 0. 1. 1. .1\nKT keV 1. 0. 0. 1. 1. .1\n",
			expectLine: 1,
			expectMsg:  "kT and KT",
		},
		{
			name:       "norm clash on additive model",
			src:        "a 1 0. 1. xsa add 0\nNorm \" \" 1. 0. 0. 1. 1. .1\n",
			expectLine: 1,
			expectMsg:  "Norm and norm",
		},
		{
			name:       "non-integer flag",
			src:        "a 0 0. 1. xsa mul x\n",
			expectLine: 1,
			expectMsg:  "non-integer flag",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := readAll(t, tc.src, Options{})
			require.Error(t, err)

			var perr *ParseError
			require.True(t, errors.As(err, &perr), "expected a ParseError, got %T", err)
			assert.Equal(t, tc.expectLine, perr.Line)
			assert.Equal(t, "model.dat", perr.File)
			assert.Contains(t, err.Error(), tc.expectMsg)
		})
	}
}

func TestReader_StopsAtFirstError(t *testing.T) {
	src := "a 0 0. 1. xsa mul 0\nb 0 0. 1. xsb bad 0\nc 0 0. 1. xsc mul 0\n"
	entries, err := readAll(t, src, Options{})
	require.Error(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "a", entries[0].Name)
}

func TestParseFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "model.dat")
	require.NoError(t, os.WriteFile(path, []byte(apecDat), 0o644))

	entries, err := ParseFile(context.Background(), path, Options{})
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, path, entries[0].Source.FilePath)

	_, err = ParseFile(context.Background(), filepath.Join(t.TempDir(), "missing.dat"), Options{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}
