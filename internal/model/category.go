// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// This file defines Category, the XSPEC model type column of a header line.
package model

import "fmt"

// Category is the model type: additive, multiplicative, convolution, or one
// of the mixing / pile-up types that cannot be bound.
type Category string

const (
	CategoryAdditive       Category = "add"
	CategoryMultiplicative Category = "mul"
	CategoryConvolution    Category = "con"
	CategoryMixing         Category = "mix"
	CategoryPileup         Category = "acn"
	CategoryMixingPileup   Category = "amx"
)

// ParseCategory validates the model type token of a header line.
func ParseCategory(tok string) (Category, error) {
	switch c := Category(tok); c {
	case CategoryAdditive, CategoryMultiplicative, CategoryConvolution,
		CategoryMixing, CategoryPileup, CategoryMixingPileup:
		return c, nil
	}
	return "", fmt.Errorf("unexpected model type %q", tok)
}

// IsNormed reports whether the routine output is scaled by a norm parameter.
func (c Category) IsNormed() bool {
	return c == CategoryAdditive
}

// Label is the capitalised form used in log messages, e.g. "Add".
func (c Category) Label() string {
	switch c {
	case CategoryAdditive:
		return "Add"
	case CategoryMultiplicative:
		return "Mul"
	case CategoryConvolution:
		return "Con"
	case CategoryMixing:
		return "Mix"
	case CategoryPileup:
		return "Acn"
	case CategoryMixingPileup:
		return "Amx"
	default:
		return string(c)
	}
}
