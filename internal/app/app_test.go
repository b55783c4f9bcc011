package app_test

import (
	"context"
	"errors"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/xspecgen/internal/app"
	"github.com/vk/xspecgen/internal/classify"
	"github.com/vk/xspecgen/internal/emit"
	"github.com/vk/xspecgen/internal/fsutil"
	"github.com/vk/xspecgen/internal/modeldat"
	"github.com/vk/xspecgen/internal/registry"
	"github.com/vk/xspecgen/internal/testutil"
)

func sampleFiles() map[string]string {
	return map[string]string{"model.dat": testutil.SampleModelDat}
}

func TestRun_TestMode(t *testing.T) {
	res := testutil.RunGenerator(t, sampleFiles(), app.Config{ModelFile: "model.dat"})
	require.NoError(t, res.Err)

	py := testutil.ReadFile(t, res, "test.py.incl")
	declare := testutil.ReadFile(t, res, "test.declare.incl")
	methods := testutil.ReadFile(t, res, "test.methoddef.incl")

	// apec and phabs are accepted; gsmooth and smaug are not.
	assert.Equal(t, 2, strings.Count(py, "class XS"))
	assert.Equal(t, 2, strings.Count(declare, ";\n"))
	assert.Equal(t, 2, strings.Count(methods, "),\n"))

	assert.Equal(t,
		"void C_apec(const Real* energy, int Nflux, const Real* parameter, int spectrum, Real *flux, Real *fluxError, const char* init);\n"+
			"void xsphab_(float* ear, int* ne, float* param, int* ifl, float* photar, float* photer);\n",
		declare)
	assert.Equal(t,
		"    XSPECMODELFCT_C_NORM( C_apec, 4 ),\n"+
			"    XSPECMODELFCT( xsphab, 1 ),\n",
		methods)
	assert.Contains(t, py, "self.norm = Parameter(name, 'norm', 1.0, min=0.0, max=1e+24, hard_min=0.0, hard_max=hugeval)")
	assert.NotContains(t, py, "gsmooth")
	assert.NotContains(t, py, "smaug")

	testutil.AssertSkipLogged(t, res, "gsmooth")
	testutil.AssertSkipLogged(t, res, "smaug")

	summary := res.App.Summary()
	require.NotNil(t, summary)
	assert.Equal(t, []string{"apec", "phabs"}, summary.Accepted)
	assert.Equal(t, []classify.Skipped{
		{Name: "gsmooth", Reason: classify.ReasonConvolution},
		{Name: "smaug", Reason: classify.ReasonPerSpectrum},
	}, summary.Skipped)
	assert.Len(t, summary.Outputs, 3)
}

func TestRun_Idempotent(t *testing.T) {
	files := sampleFiles()
	first := testutil.RunGenerator(t, files, app.Config{ModelFile: "model.dat"})
	require.NoError(t, first.Err)
	second := testutil.RunGenerator(t, files, app.Config{ModelFile: "model.dat"})
	require.NoError(t, second.Err)

	for _, name := range []string{"test.py.incl", "test.declare.incl", "test.methoddef.incl"} {
		assert.Equal(t, testutil.ReadFile(t, first, name), testutil.ReadFile(t, second, name), name)
	}
}

func TestRun_AllowFlags(t *testing.T) {
	res := testutil.RunGenerator(t, sampleFiles(), app.Config{
		ModelFile:        "model.dat",
		AllowConvolution: true,
		AllowPerSpectrum: true,
	})
	require.NoError(t, res.Err)

	methods := testutil.ReadFile(t, res, "test.methoddef.incl")
	assert.Contains(t, methods, "    XSPECMODELFCT_C( C_gsmooth, 2 ),\n")
	assert.Contains(t, methods, "    XSPECMODELFCT_C_NORM( C_xsmaug, 3 ),\n")
	assert.Contains(t, res.App.Summary().Warnings, "model smaug needs to be re-calculated per spectrum; this is untested")
}

func TestRun_ParseErrorWritesNothing(t *testing.T) {
	files := map[string]string{"model.dat": `
apec 1 0. 1.e20 C_apec add 0
kT keV 1. 0.008 0.008 sixty-four 64.0 .01
`}
	res := testutil.RunGenerator(t, files, app.Config{ModelFile: "model.dat", ReportFile: "report.yaml"})
	require.Error(t, res.Err)

	var perr *modeldat.ParseError
	require.True(t, errors.As(res.Err, &perr))
	assert.Equal(t, 3, perr.Line)
	assert.Contains(t, perr.Error(), `non-numeric value "sixty-four"`)

	testutil.AssertNotExist(t, res, "test.py.incl")
	testutil.AssertNotExist(t, res, "test.declare.incl")
	testutil.AssertNotExist(t, res, "test.methoddef.incl")
	testutil.AssertNotExist(t, res, "report.yaml")
}

func TestRun_EmptyInput(t *testing.T) {
	res := testutil.RunGenerator(t, map[string]string{"model.dat": "\n\n"}, app.Config{ModelFile: "model.dat"})
	require.ErrorIs(t, res.Err, app.ErrNoModels)
	testutil.AssertNotExist(t, res, "test.py.incl")
}

func TestRun_NothingAccepted(t *testing.T) {
	files := map[string]string{"model.dat": `
gsmooth        2   0.         1.e20          C_gsmooth    con 0
Sig@6keV keV    1.00  0.0   0.0    10.   20.  .05
Index    " "    0.00 -1.0  -1.0    1.0   1.0  -0.01
`}
	res := testutil.RunGenerator(t, files, app.Config{ModelFile: "model.dat"})
	require.ErrorIs(t, res.Err, app.ErrNothingAccepted)
	testutil.AssertSkipLogged(t, res, "gsmooth")
	testutil.AssertNotExist(t, res, "test.py.incl")
}

func TestRun_UnsupportedInterface(t *testing.T) {
	reg := registry.New()
	reg.Register(emit.CConvention{CPP: true})

	res := testutil.RunGeneratorWithContext(context.Background(), t, sampleFiles(), app.Config{ModelFile: "model.dat"}, reg)
	require.Error(t, res.Err)
	assert.Nil(t, res.App)

	var uerr *registry.UnsupportedInterfaceError
	require.True(t, errors.As(res.Err, &uerr))
	testutil.AssertNotExist(t, res, "test.py.incl")
}

func TestRun_ConfigFile(t *testing.T) {
	files := sampleFiles()
	files["gen.hcl"] = `
generator {
  module       = "xs"
  class_prefix = "Xs"
}

skip {
  models = ["phabs"]
}

rename "apec" {
  parameter = "Abundanc"
  to        = "Abundance"
}

norm {
  soft_max = 1e10
}
`
	res := testutil.RunGenerator(t, files, app.Config{ModelFile: "model.dat", ConfigFile: "gen.hcl"})
	require.NoError(t, res.Err)

	py := testutil.ReadFile(t, res, "test.py.incl")
	assert.Contains(t, py, "class Xsapec(XSAdditiveModel):")
	assert.Contains(t, py, "_calc = _xs.C_apec")
	assert.Contains(t, py, "self.Abundance = Parameter(name, 'Abundance', 1.0,")
	assert.Contains(t, py, "self.norm = Parameter(name, 'norm', 1.0, min=0.0, max=10000000000.0,")
	assert.NotContains(t, py, "phabs")

	skipped := res.App.Summary().Skipped
	require.NotEmpty(t, skipped)
	assert.Equal(t, classify.Skipped{Name: "phabs", Reason: classify.ReasonConfigured}, skipped[0])
}

func TestRun_CommandLineWinsOverConfigFile(t *testing.T) {
	files := sampleFiles()
	files["gen.hcl"] = `
generator {
  module = "xs"
}
`
	res := testutil.RunGenerator(t, files, app.Config{ModelFile: "model.dat", ConfigFile: "gen.hcl", Module: "other"})
	require.NoError(t, res.Err)
	assert.Equal(t, "other", res.App.Summary().Module)
	assert.Contains(t, testutil.ReadFile(t, res, "test.py.incl"), "_calc = _other.C_apec")
}

func TestRun_InvalidClassPrefix(t *testing.T) {
	res := testutil.RunGenerator(t, sampleFiles(), app.Config{ModelFile: "model.dat", ClassPrefix: "xs"})
	require.Error(t, res.Err)
	assert.Contains(t, res.Err.Error(), "invalid class prefix")
	assert.Nil(t, res.App)
}

func TestRun_InsertMode(t *testing.T) {
	files := sampleFiles()
	files["sherpa/astro/xspec/__init__.py"] = testutil.SamplePythonFile
	files["sherpa/astro/xspec/src/_xspec.cc"] = testutil.SampleCFile

	res := testutil.RunGenerator(t, files, app.Config{ModelFile: "model.dat", Mode: app.ModeInsert})
	require.NoError(t, res.Err)

	py := testutil.ReadFile(t, res, "sherpa/astro/xspec/__init__.py")
	assert.True(t, strings.HasPrefix(py, "from sherpa.astro.xspec.utils import XSAdditiveModel, XSMultiplicativeModel\n\n# BEGIN GENERATED MODELS\nclass XSapec(XSAdditiveModel):\n"))
	assert.True(t, strings.HasSuffix(py, "# END GENERATED MODELS\n\n__all__ = ()\n"))

	cc := testutil.ReadFile(t, res, "sherpa/astro/xspec/src/_xspec.cc")
	assert.Contains(t, cc, "// BEGIN GENERATED DECLARATIONS\nvoid C_apec(")
	assert.Contains(t, cc, "  // BEGIN GENERATED METHODDEFS\n    XSPECMODELFCT_C_NORM( C_apec, 4 ),\n    XSPECMODELFCT( xsphab, 1 ),\n  // END GENERATED METHODDEFS\n")

	testutil.AssertNotExist(t, res, "test.py.incl")

	// A second run leaves the files unchanged.
	again, err := fsutil.Compare([]fsutil.File{
		{Path: res.Path("sherpa/astro/xspec/__init__.py"), Content: []byte(py)},
		{Path: res.Path("sherpa/astro/xspec/src/_xspec.cc"), Content: []byte(cc)},
	})
	require.NoError(t, err)
	assert.Empty(t, again)
	require.NoError(t, res.App.Run(context.Background()))
	assert.Equal(t, py, testutil.ReadFile(t, res, "sherpa/astro/xspec/__init__.py"))
	assert.Equal(t, cc, testutil.ReadFile(t, res, "sherpa/astro/xspec/src/_xspec.cc"))
}

func TestRun_InsertModeMissingMarkers(t *testing.T) {
	files := sampleFiles()
	files["sherpa/astro/xspec/__init__.py"] = testutil.SamplePythonFile
	files["sherpa/astro/xspec/src/_xspec.cc"] = "int main() { return 0; }\n"

	res := testutil.RunGenerator(t, files, app.Config{ModelFile: "model.dat", Mode: app.ModeInsert})
	require.ErrorIs(t, res.Err, fsutil.ErrMarkerNotFound)

	// The python target is untouched even though its own splice succeeded.
	assert.Equal(t, testutil.SamplePythonFile, testutil.ReadFile(t, res, "sherpa/astro/xspec/__init__.py"))
}

func TestRun_Check(t *testing.T) {
	files := sampleFiles()
	res := testutil.RunGenerator(t, files, app.Config{ModelFile: "model.dat", Check: true, ReportFile: "report.yaml"})
	require.ErrorIs(t, res.Err, app.ErrOutOfDate)
	assert.Contains(t, res.Err.Error(), "3 of 3 files differ")
	assert.Contains(t, res.Output, "+class XSapec(XSAdditiveModel):\n")
	assert.Contains(t, res.Output, "(generated)")

	// Check mode writes no artifact, only the report.
	testutil.AssertNotExist(t, res, "test.py.incl")
	report := testutil.ReadFile(t, res, "report.yaml")
	assert.Contains(t, report, "mode: test\n")
	assert.Contains(t, report, res.Path("test.py.incl"))
}

func TestRun_CheckUpToDate(t *testing.T) {
	first := testutil.RunGenerator(t, sampleFiles(), app.Config{ModelFile: "model.dat"})
	require.NoError(t, first.Err)

	files := sampleFiles()
	for _, name := range []string{"test.py.incl", "test.declare.incl", "test.methoddef.incl"} {
		files[name] = testutil.ReadFile(t, first, name)
	}
	res := testutil.RunGenerator(t, files, app.Config{ModelFile: "model.dat", Check: true})
	require.NoError(t, res.Err)
	assert.Empty(t, res.Output)
}

func TestRun_CheckColor(t *testing.T) {
	res := testutil.RunGenerator(t, sampleFiles(), app.Config{ModelFile: "model.dat", Check: true, Color: true})
	require.ErrorIs(t, res.Err, app.ErrOutOfDate)
	assert.Contains(t, res.Output, "\x1b[")
}

func TestRun_Report(t *testing.T) {
	res := testutil.RunGenerator(t, sampleFiles(), app.Config{ModelFile: "model.dat", ReportFile: "out/report.yaml"})
	require.NoError(t, res.Err)

	report := testutil.ReadFile(t, res, "out/report.yaml")
	assert.Contains(t, report, "accepted:\n    - apec\n    - phabs\n")
	assert.Contains(t, report, "reason: "+classify.ReasonConvolution)
	assert.Contains(t, report, "entries: 4\n")
}

func TestRun_FailedWriteKeepsPreviousArtifacts(t *testing.T) {
	files := sampleFiles()
	files["test.py.incl"] = "previous python\n"
	res := testutil.RunGenerator(t, files, app.Config{ModelFile: "model.dat"})
	require.NoError(t, res.Err)

	// Replace one target with a directory so the commit of the triple fails.
	require.NoError(t, os.Remove(res.Path("test.methoddef.incl")))
	require.NoError(t, os.Mkdir(res.Path("test.methoddef.incl"), 0o755))
	require.NoError(t, os.WriteFile(res.Path("test.py.incl"), []byte("previous python\n"), 0o644))

	err := res.App.Run(context.Background())
	require.Error(t, err)
	assert.Equal(t, "previous python\n", testutil.ReadFile(t, res, "test.py.incl"))
}

func TestRun_ReportFailureKeepsPreviousArtifacts(t *testing.T) {
	files := sampleFiles()
	files["test.py.incl"] = "OLD\n"
	// A regular file where the report directory should be.
	files["blocker"] = "not a directory\n"

	res := testutil.RunGenerator(t, files, app.Config{ModelFile: "model.dat", ReportFile: "blocker/report.yaml"})
	require.Error(t, res.Err)
	assert.Equal(t, "OLD\n", testutil.ReadFile(t, res, "test.py.incl"))
	testutil.AssertNotExist(t, res, "test.declare.incl")
	testutil.AssertNotExist(t, res, "test.methoddef.incl")
}

func TestNewConfig(t *testing.T) {
	_, err := app.NewConfig(app.Config{})
	require.Error(t, err)

	_, err = app.NewConfig(app.Config{ModelFile: "model.dat", Mode: "replace"})
	require.Error(t, err)

	cfg, err := app.NewConfig(app.Config{ModelFile: "model.dat"})
	require.NoError(t, err)
	assert.Equal(t, app.ModeTest, cfg.Mode)
	assert.Equal(t, app.DefaultOutPrefix, cfg.OutPrefix)
	assert.Equal(t, ".", cfg.RepoRoot)
}
