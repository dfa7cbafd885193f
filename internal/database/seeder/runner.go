package seeder

import (
	"context"
	"errors"
	"fmt"

	"talentsift/internal/database"
)

// Run applies each seeder in order and stops at the first failure. Order
// matters: later seeders may rely on rows installed by earlier ones.
func Run(ctx context.Context, db database.DB, seeders ...Seeder) error {
	if db == nil {
		return errors.New("seeder: nil db")
	}
	for _, s := range seeders {
		if s == nil {
			continue
		}
		if err := s.Run(ctx, db); err != nil {
			return fmt.Errorf("seed %s: %w", s.Name(), err)
		}
	}
	return nil
}
