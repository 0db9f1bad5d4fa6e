package infra

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/orlando572/sumaq-seguros-sub000/config"
	"github.com/orlando572/sumaq-seguros-sub000/db"
)

// ConfiguredDSN returns the database url the API itself would use
// (SUMAQ_DATABASE_URL, DATABASE_URL or the SUMAQ_CONFIG file).
func ConfiguredDSN() (string, bool) {
	cfg, err := config.Load()
	if err != nil || cfg.Database.URL == "" {
		return "", false
	}
	return cfg.Database.URL, true
}

// ApplyMigrations runs the embedded migrations against dsn and returns a pool
// on the migrated schema. When isolate is true the migrations land in a fresh
// per-run schema that the returned teardown drops.
func ApplyMigrations(ctx context.Context, dsn string, isolate bool) (*pgxpool.Pool, func(context.Context) error, error) {
	cleanup := func(context.Context) error { return nil }
	target := dsn

	if isolate {
		schema := fmt.Sprintf("it_run_%d", time.Now().UnixNano())
		ident := pgx.Identifier{schema}.Sanitize()

		var err error
		target, err = WithSearchPath(dsn, schema)
		if err != nil {
			return nil, nil, err
		}

		if err := execAdmin(ctx, dsn, "CREATE SCHEMA "+ident); err != nil {
			return nil, nil, fmt.Errorf("infra: create schema %s: %w", schema, err)
		}
		cleanup = func(ctx context.Context) error {
			return execAdmin(ctx, dsn, "DROP SCHEMA IF EXISTS "+ident+" CASCADE")
		}
	}

	if err := db.RunMigrations(target); err != nil {
		_ = cleanup(ctx)
		return nil, nil, err
	}

	pool, err := db.NewPool(ctx, target)
	if err != nil {
		_ = cleanup(ctx)
		return nil, nil, err
	}
	return pool, cleanup, nil
}

// WithSearchPath pins every connection opened from dsn to schema. Both pgx and
// the migrate driver forward unknown url parameters as session settings.
func WithSearchPath(dsn, schema string) (string, error) {
	u, err := url.Parse(dsn)
	if err != nil || u.Scheme == "" {
		return "", fmt.Errorf("infra: dsn must be a postgres url")
	}
	q := u.Query()
	q.Set("search_path", schema)
	u.RawQuery = q.Encode()
	return u.String(), nil
}

func execAdmin(ctx context.Context, dsn, stmt string) error {
	conn, err := pgx.Connect(ctx, dsn)
	if err != nil {
		return err
	}
	defer conn.Close(ctx)
	_, err = conn.Exec(ctx, stmt)
	return err
}
