// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// This file defines Language, the calling convention of a model routine.
//
// The convention is not written explicitly in the description file. It is
// encoded in the routine name prefix:
//
//	F_name  Fortran, double precision
//	c_name  C
//	C_name  C++
//	name    Fortran, single precision
package model

import "strings"

// Language identifies the calling convention of a model routine.
type Language int

const (
	// LanguageUnknown is the zero value and never produced by LanguageOf.
	LanguageUnknown Language = iota
	LanguageFortranSingle
	LanguageFortranDouble
	LanguageC
	LanguageCPP
)

// Languages lists every convention the reader can produce, in a fixed order.
var Languages = []Language{
	LanguageFortranSingle,
	LanguageFortranDouble,
	LanguageC,
	LanguageCPP,
}

// LanguageOf derives the convention from a routine name.
func LanguageOf(routine string) Language {
	switch {
	case strings.HasPrefix(routine, "F_"):
		return LanguageFortranDouble
	case strings.HasPrefix(routine, "c_"):
		return LanguageC
	case strings.HasPrefix(routine, "C_"):
		return LanguageCPP
	default:
		return LanguageFortranSingle
	}
}

// IsLegacy reports whether the routine uses the Fortran (legacy) interface.
func (l Language) IsLegacy() bool {
	return l == LanguageFortranSingle || l == LanguageFortranDouble
}

func (l Language) String() string {
	switch l {
	case LanguageFortranSingle:
		return "Fortran - single precision"
	case LanguageFortranDouble:
		return "Fortran - double precision"
	case LanguageC:
		return "C"
	case LanguageCPP:
		return "C++"
	default:
		return "unknown"
	}
}
