package app

import "errors"

var (
	// ErrNoModels is returned when the model file holds no entries.
	ErrNoModels = errors.New("no models found in the model description file")
	// ErrNothingAccepted is returned when every entry was skipped.
	ErrNothingAccepted = errors.New("no models can be wrapped")
	// ErrOutOfDate is returned by a check run when generated content
	// differs from the files on disk.
	ErrOutOfDate = errors.New("generated files are out of date")
)
