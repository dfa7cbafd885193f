package seeder

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"talentsift/internal/database"
)

// EnsureTableColumns verifies the target table carries every column the
// seeder is about to write. A drifted schema fails here with the full list
// of missing columns instead of dying mid-insert.
func EnsureTableColumns(ctx context.Context, db database.DB, table string, columns ...string) error {
	if db == nil {
		return errors.New("seeder: nil db")
	}
	if table == "" {
		return errors.New("seeder: empty table name")
	}

	rows, err := db.Query(ctx,
		`SELECT column_name FROM information_schema.columns WHERE table_schema = 'public' AND table_name = $1`,
		table)
	if err != nil {
		return fmt.Errorf("describe %s: %w", table, err)
	}
	defer rows.Close()

	present := make(map[string]bool)
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return err
		}
		present[name] = true
	}
	if err := rows.Err(); err != nil {
		return err
	}
	if len(present) == 0 {
		return fmt.Errorf("table %s does not exist", table)
	}

	var missing []string
	for _, col := range columns {
		if col == "" {
			return errors.New("seeder: empty column name")
		}
		if !present[col] {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("table %s is missing columns %s", table, strings.Join(missing, ", "))
	}
	return nil
}
