// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// This file defines Source, the location an entry was read from.
package model

import "fmt"

// Source links a parsed entry back to its file and header line.
type Source struct {
	FilePath string
	Line     int
}

func NewSource(filePath string, line int) Source {
	return Source{
		FilePath: filePath,
		Line:     line,
	}
}

// String renders the location as file:line.
func (s Source) String() string {
	if s.FilePath == "" {
		return fmt.Sprintf("line %d", s.Line)
	}
	return fmt.Sprintf("%s:%d", s.FilePath, s.Line)
}
