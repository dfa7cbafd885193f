// Package seeder installs baseline rows once migrations have run. Every
// seeder is idempotent so repeated boots are safe.
package seeder

import (
	"context"

	"talentsift/internal/database"
)

// Seeder fills one table with its baseline rows.
type Seeder interface {
	Name() string
	Run(ctx context.Context, db database.DB) error
}
