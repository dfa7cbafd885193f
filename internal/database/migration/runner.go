// Package migration brings the schema up to date on boot. Scripts are
// plain SQL files named V<version>__<name>.sql, applied in version order
// inside a transaction each, and pinned by checksum in schema_migrations:
// editing an already applied file is an error, not a re-run.
package migration

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// Arbitrary but stable. Every instance takes this advisory lock before
// touching the ledger so concurrently booting replicas queue up instead
// of racing.
const bootLockKey = 274019750

var scriptNameRe = regexp.MustCompile(`^V(\d+)__([\w.-]+)\.sql$`)

type Runner struct {
	// Dir holds the migration scripts. Empty means a migrations/
	// directory next to the executable.
	Dir string
}

type script struct {
	version  int64
	name     string
	file     string
	body     string
	checksum string
}

func (r Runner) Run(ctx context.Context, db *sql.DB) error {
	if db == nil {
		return errors.New("migration: nil db")
	}

	scripts, err := r.readScripts()
	if err != nil {
		return err
	}
	if len(scripts) == 0 {
		return nil
	}

	if err := ensureLedger(ctx, db); err != nil {
		return err
	}

	if _, err := db.ExecContext(ctx, `SELECT pg_advisory_lock($1)`, bootLockKey); err != nil {
		return fmt.Errorf("migration: acquire boot lock: %w", err)
	}
	defer func() {
		_, _ = db.ExecContext(context.Background(), `SELECT pg_advisory_unlock($1)`, bootLockKey)
	}()

	applied, err := appliedChecksums(ctx, db)
	if err != nil {
		return err
	}

	for _, s := range scripts {
		if sum, ok := applied[s.version]; ok {
			if sum != s.checksum {
				return fmt.Errorf("migration: %s changed after being applied", s.file)
			}
			continue
		}
		if err := runScript(ctx, db, s); err != nil {
			return err
		}
	}
	return nil
}

func (r Runner) readScripts() ([]script, error) {
	dir := strings.TrimSpace(r.Dir)
	if dir == "" {
		exe, err := os.Executable()
		if err != nil {
			return nil, err
		}
		dir = filepath.Join(filepath.Dir(exe), "migrations")
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		// No directory at all is a valid zero-migration deployment.
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}

	out := make([]script, 0, len(entries))
	seen := make(map[int64]string, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		m := scriptNameRe.FindStringSubmatch(e.Name())
		if m == nil {
			continue
		}
		version, err := strconv.ParseInt(m[1], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("migration: bad version in %s", e.Name())
		}
		if prev, dup := seen[version]; dup {
			return nil, fmt.Errorf("migration: version %d claimed by both %s and %s", version, prev, e.Name())
		}
		seen[version] = e.Name()

		body, err := os.ReadFile(filepath.Join(dir, e.Name()))
		if err != nil {
			return nil, err
		}
		if strings.TrimSpace(string(body)) == "" {
			return nil, fmt.Errorf("migration: %s is empty", e.Name())
		}

		sum := sha256.Sum256(body)
		out = append(out, script{
			version:  version,
			name:     m[2],
			file:     e.Name(),
			body:     string(body),
			checksum: hex.EncodeToString(sum[:]),
		})
	}

	sort.Slice(out, func(i, j int) bool { return out[i].version < out[j].version })
	return out, nil
}

func ensureLedger(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, `
CREATE TABLE IF NOT EXISTS schema_migrations (
	version BIGINT PRIMARY KEY,
	name TEXT NOT NULL,
	checksum TEXT NOT NULL,
	applied_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`)
	if err != nil {
		return fmt.Errorf("migration: ensure ledger: %w", err)
	}
	return nil
}

func appliedChecksums(ctx context.Context, db *sql.DB) (map[int64]string, error) {
	rows, err := db.QueryContext(ctx, `SELECT version, checksum FROM schema_migrations`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := map[int64]string{}
	for rows.Next() {
		var version int64
		var sum string
		if err := rows.Scan(&version, &sum); err != nil {
			return nil, err
		}
		out[version] = sum
	}
	return out, rows.Err()
}

func runScript(ctx context.Context, db *sql.DB, s script) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, s.body); err != nil {
		return fmt.Errorf("migration: apply %s: %w", s.file, err)
	}

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO schema_migrations (version, name, checksum) VALUES ($1, $2, $3)`,
		s.version, s.name, s.checksum,
	); err != nil {
		return fmt.Errorf("migration: record %s: %w", s.file, err)
	}

	return tx.Commit()
}
