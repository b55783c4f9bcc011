// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// This file defines Entry, a single model definition from the description
// file.
package model

// Flags are the optional integer switches following the model type on a
// header line.
type Flags struct {
	// Error is set when the routine calculates model variances.
	Error bool
	// PerSpectrum is set when the model must be re-evaluated for every
	// spectrum being fit.
	PerSpectrum bool
}

// Entry is the format-agnostic representation of one model definition.
type Entry struct {
	Name       string
	ClassName  string
	Routine    string
	Language   Language
	Category   Category
	Flags      Flags
	InitString string
	EnergyLow  float64
	EnergyHigh float64
	Params     []Parameter
	Source     Source
}

// NumParams is the parameter count passed to the dispatch wrappers. It
// includes the implicit norm of additive models.
func (e *Entry) NumParams() int {
	return len(e.Params)
}

// ParamNames returns the translated parameter names in declaration order.
func (e *Entry) ParamNames() []string {
	names := make([]string, len(e.Params))
	for i, p := range e.Params {
		names[i] = p.Name
	}
	return names
}
