// Package postgres backs the database.DB contract with a pgx connection
// pool. The same pool is exposed through database/sql for the migration
// runner, so the app holds exactly one set of connections.
package postgres

import (
	"context"
	"database/sql"
	"net"
	"net/url"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"

	"talentsift/internal/config"
	"talentsift/internal/database"
)

// Connect opens the pool described by cfg, pings it once and returns it
// behind the database.DB interface. A failed ping closes the pool and
// surfaces the error instead of handing out a dead handle.
func Connect(ctx context.Context, cfg config.DatabaseConfig) (database.DB, error) {
	pcfg, err := pgxpool.ParseConfig(dsn(cfg))
	if err != nil {
		return nil, err
	}
	tune(pcfg, cfg)

	p, err := pgxpool.NewWithConfig(ctx, pcfg)
	if err != nil {
		return nil, err
	}

	pingCtx := ctx
	if _, hasDeadline := ctx.Deadline(); !hasDeadline {
		var cancel context.CancelFunc
		pingCtx, cancel = context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
	}
	if err := p.Ping(pingCtx); err != nil {
		p.Close()
		return nil, err
	}

	return &pool{pgx: p, sqlDB: stdlib.OpenDBFromPool(p)}, nil
}

// dsn builds a postgres URL. Credentials go through url escaping so
// passwords with reserved characters survive intact.
func dsn(cfg config.DatabaseConfig) string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(cfg.DBUser, cfg.DBPassword),
		Host:     net.JoinHostPort(cfg.DBHost, cfg.DBPort),
		Path:     "/" + cfg.DBName,
		RawQuery: url.Values{"sslmode": []string{cfg.DBSSLMode}}.Encode(),
	}
	return u.String()
}

func tune(pcfg *pgxpool.Config, cfg config.DatabaseConfig) {
	if cfg.ConnectTimeout > 0 {
		pcfg.ConnConfig.ConnectTimeout = cfg.ConnectTimeout
	}
	if cfg.PoolMaxConns > 0 {
		pcfg.MaxConns = cfg.PoolMaxConns
	}
	if cfg.PoolMinConns > 0 {
		pcfg.MinConns = cfg.PoolMinConns
	}
	if cfg.PoolMaxConnLifetime > 0 {
		pcfg.MaxConnLifetime = cfg.PoolMaxConnLifetime
	}
	if cfg.PoolMaxConnIdleTime > 0 {
		pcfg.MaxConnIdleTime = cfg.PoolMaxConnIdleTime
	}
	if cfg.PoolHealthCheckPeriod > 0 {
		pcfg.HealthCheckPeriod = cfg.PoolHealthCheckPeriod
	}
}

type pool struct {
	pgx   *pgxpool.Pool
	sqlDB *sql.DB
}

func (p *pool) Ping(ctx context.Context) error {
	return p.pgx.Ping(ctx)
}

// Close tears down both handles. The stdlib wrapper goes first since it
// borrows connections from the pgx pool.
func (p *pool) Close() error {
	err := p.sqlDB.Close()
	p.pgx.Close()
	return err
}

func (p *pool) Exec(ctx context.Context, query string, args ...any) (int64, error) {
	tag, err := p.pgx.Exec(ctx, query, args...)
	return tag.RowsAffected(), err
}

func (p *pool) Query(ctx context.Context, query string, args ...any) (database.Rows, error) {
	r, err := p.pgx.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	return poolRows{r}, nil
}

func (p *pool) QueryRow(ctx context.Context, query string, args ...any) database.Row {
	return p.pgx.QueryRow(ctx, query, args...)
}

func (p *pool) SQLDB() *sql.DB {
	return p.sqlDB
}

type poolRows struct {
	rows pgx.Rows
}

func (r poolRows) Close()               { r.rows.Close() }
func (r poolRows) Next() bool           { return r.rows.Next() }
func (r poolRows) Scan(dest ...any) error { return r.rows.Scan(dest...) }
func (r poolRows) Err() error           { return r.rows.Err() }
