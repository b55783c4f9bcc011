package modeldat

import "fmt"

// ParseError describes a malformed record. It is always fatal for a
// generation run.
type ParseError struct {
	File   string
	Line   int
	Reason string
	Err    error
}

// Error implements the error interface for ParseError.
func (e *ParseError) Error() string {
	loc := e.File
	if loc == "" {
		loc = "<input>"
	}
	if e.Err != nil {
		return fmt.Sprintf("%s:%d: %s: %v", loc, e.Line, e.Reason, e.Err)
	}
	return fmt.Sprintf("%s:%d: %s", loc, e.Line, e.Reason)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
