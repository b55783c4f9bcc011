// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// This file defines Parameter, one fit parameter of a model entry.
package model

import (
	"math"
	"strconv"
	"strings"
)

// ParamKind distinguishes the three parameter flavours of the description
// file.
type ParamKind int

const (
	// ParamBasic is a regular, fittable parameter with soft and hard limits.
	ParamBasic ParamKind = iota
	// ParamSwitch is a `$name` parameter selecting a code path; always frozen.
	ParamSwitch
	// ParamScale is a `*name` parameter; always frozen.
	ParamScale
)

func (k ParamKind) String() string {
	switch k {
	case ParamSwitch:
		return "switch"
	case ParamScale:
		return "scale"
	default:
		return "basic"
	}
}

// Parameter is a single model parameter. Limits and delta are optional for
// switch and scale parameters, hence the pointers.
type Parameter struct {
	Name     string // Python-safe identifier
	Original string // as written in the description file
	Kind     ParamKind
	Default  float64
	Units    string
	SoftMin  *float64
	SoftMax  *float64
	HardMin  *float64
	HardMax  *float64
	Delta    *float64
	Frozen   bool
}

// Float returns a pointer to v, for building optional limits.
func Float(v float64) *float64 {
	return &v
}

// FormatFloat renders v the way Python's float repr does: integral values
// keep a trailing ".0" and exponents below -4 or above 15 use e-notation.
func FormatFloat(v float64) string {
	switch {
	case math.IsInf(v, 1):
		return "inf"
	case math.IsInf(v, -1):
		return "-inf"
	case math.IsNaN(v):
		return "nan"
	}

	if v != 0 {
		exp := int(math.Floor(math.Log10(math.Abs(v))))
		// Log10 can be off by one around exact powers of ten; the 'e'
		// formatting gives the authoritative exponent.
		es := strconv.FormatFloat(v, 'e', -1, 64)
		if i := strings.IndexByte(es, 'e'); i >= 0 {
			if n, err := strconv.Atoi(es[i+1:]); err == nil {
				exp = n
			}
		}
		if exp < -4 || exp >= 16 {
			return es
		}
	}

	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.ContainsAny(s, ".") {
		s += ".0"
	}
	return s
}
