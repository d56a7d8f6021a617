// Package repository loads the player statistics table and memoizes it.
package repository

import (
	"context"

	"github.com/okian/courtside/internal/domain/stats"
)

// Source provides read access to the current player table.
type Source interface {
	// Current returns the table for the configured file. Implementations may
	// return a cached snapshot as long as the file is unchanged.
	// The returned table is shared and must not be mutated.
	Current(ctx context.Context) (*stats.Table, error)
}
