package repository

import (
	"time"

	"github.com/okian/courtside/pkg/logger"
)

// Option applies a configuration option to the CSVStore.
type Option func(*CSVStore)

// WithLogger sets the logger used for load events.
func WithLogger(l logger.Logger) Option {
	return func(s *CSVStore) {
		if l != nil {
			s.log = l
		}
	}
}

// WithClock overrides the time source used to stamp loads.
func WithClock(now func() time.Time) Option {
	return func(s *CSVStore) {
		if now != nil {
			s.now = now
		}
	}
}

// WithDelimiter forces the field delimiter instead of guessing it from the
// file extension.
func WithDelimiter(r rune) Option {
	return func(s *CSVStore) {
		if r != 0 && r != '\n' && r != '\r' && r != '"' {
			s.comma = r
		}
	}
}
