package stats

import (
	"errors"
	"fmt"
)

// Sentinel kinds for stats errors.
var (
	ErrUnknownMetric = errors.New("unknown metric")
	ErrUnknownColumn = errors.New("unknown sort column")
)

func newKind(op string, kind error, subject string) error {
	return fmt.Errorf("%s: %w: %q", op, kind, subject)
}
