package testutil

// SampleModelDat covers every disposition the generator makes: two
// accepted entries, a convolution model and a per-spectrum model.
const SampleModelDat = `
apec           3  0.         1.e20           C_apec    add  0
kT      keV     1.    0.008   0.008   64.0      64.0      .01
Abundanc " "    1.    0.      0.      5.        5.        -0.001
redshift " "    0.   -0.999  -0.999   10.       10.       -0.01

phabs          1   0.03       1.e20          xsphab    mul 0
nH     10^22 1.   0.0   0.0   1.E5  1.E6  1.E-3

gsmooth        2   0.         1.e20          C_gsmooth    con 0
Sig@6keV keV    1.00  0.0   0.0    10.   20.  .05
Index    " "    0.00 -1.0  -1.0    1.0   1.0  -0.01

smaug          2   0.         1.e20          C_xsmaug     add  0 1
kTcin   keV  1.0 0.08 0.08 100 100 0.01
kTcout  keV  1.0 0.08 0.08 100 100 0.01
`

// SamplePythonFile is an insert mode target holding the MODELS section.
const SamplePythonFile = `from sherpa.astro.xspec.utils import XSAdditiveModel, XSMultiplicativeModel

# BEGIN GENERATED MODELS
# END GENERATED MODELS

__all__ = ()
`

// SampleCFile is an insert mode target holding the DECLARATIONS and
// METHODDEFS sections.
const SampleCFile = `#include "sherpa/astro/xspec_extension.hh"

extern "C" {
// BEGIN GENERATED DECLARATIONS
// END GENERATED DECLARATIONS
}

static PyMethodDef XSpecMethods[] = {
  // BEGIN GENERATED METHODDEFS
  // END GENERATED METHODDEFS
  { NULL, NULL, 0, NULL }
};
`
