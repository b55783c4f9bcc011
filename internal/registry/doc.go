// Package registry maps each calling convention (model.Language) to the
// Convention that renders its foreign-function declaration and dispatch
// entry.
//
// The Registry is populated at startup and then validated, so that a
// convention the reader can produce but nobody registered is reported
// before any file is parsed rather than half-way through a run.
package registry
