package repository

import "errors"

// Sentinel kinds for table loading errors.
var (
	ErrOpen          = errors.New("cannot open data file")
	ErrNoHeader      = errors.New("data file has no header")
	ErrMissingColumn = errors.New("required column missing")
	ErrMalformed     = errors.New("malformed data file")
)
