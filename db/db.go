// Package db handles database connection pools, extensions, and schema migrations.
//
// Two pgx pools are created from the same database settings: the app pool serves HTTP
// requests, the import pool serves dataset imports, so a long import never starves the API.
package db

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres" // registers the postgres:// migrate driver
	_ "github.com/golang-migrate/migrate/v4/source/file"       // registers the file:// migration source
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/lib/pq" // database/sql driver used underneath the migrate postgres driver

	"github.com/user/unidirectory-go/apperror"
	"github.com/user/unidirectory-go/config"
	"github.com/user/unidirectory-go/logging"
)

const (
	maxConnIdleTime = 10 * time.Minute
	maxConnLifetime = 30 * time.Minute
	connectTimeout  = 10 * time.Second
	pingTimeout     = 5 * time.Second
)

// UniqueViolation is the PostgreSQL error code for unique_violation.
const UniqueViolation = "23505"

// DBTX is the query surface shared by *pgxpool.Pool, *pgxpool.Conn and pgx.Tx.
// Repositories depend on it rather than on a concrete pool.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	SendBatch(ctx context.Context, b *pgx.Batch) pgx.BatchResults
}

// Pinger reports database reachability.
type Pinger interface {
	Ping(ctx context.Context) error
}

// NewDBPools creates the app and import pools. On failure, nothing is left open.
func NewDBPools(ctx context.Context, cfg *config.DatabasePools) (*pgxpool.Pool, *pgxpool.Pool, error) {
	appPool, err := createPgxPool(ctx, cfg.AppPool)
	if err != nil {
		return nil, nil, apperror.NewDatabaseError("failed to create application pool", err)
	}

	importPool, err := createPgxPool(ctx, cfg.ImportPool)
	if err != nil {
		appPool.Close()
		return nil, nil, apperror.NewDatabaseError("failed to create import pool", err)
	}

	return appPool, importPool, nil
}

func createPgxPool(ctx context.Context, cfg *config.PoolConfig) (*pgxpool.Pool, error) {
	poolConfig, err := pgxpool.ParseConfig(DSN(cfg, "postgres"))
	if err != nil {
		return nil, fmt.Errorf("error parsing DSN for database %s: %w", cfg.DBName, err)
	}
	poolConfig.MaxConns = int32(cfg.MaxSize)
	poolConfig.MaxConnIdleTime = maxConnIdleTime
	poolConfig.MaxConnLifetime = maxConnLifetime

	connectCtx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	pool, err := pgxpool.NewWithConfig(connectCtx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("error creating pgxpool for database %s: %w", cfg.DBName, err)
	}

	pingCtx, pingCancel := context.WithTimeout(ctx, pingTimeout)
	defer pingCancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("error connecting to database %s: %w", cfg.DBName, err)
	}

	return pool, nil
}

// DSN builds a connection URL for cfg with the given scheme ("postgres" for pgx and migrate).
// Credentials are escaped, so passwords may contain any character.
func DSN(cfg *config.PoolConfig, scheme string) string {
	sslMode := cfg.SSLMode
	if sslMode == "" {
		sslMode = "disable"
	}
	u := url.URL{
		Scheme:   scheme,
		User:     url.UserPassword(cfg.User, cfg.Password),
		Host:     cfg.Host + ":" + strconv.Itoa(cfg.Port),
		Path:     "/" + cfg.DBName,
		RawQuery: url.Values{"sslmode": {sslMode}}.Encode(),
	}
	return u.String()
}

// EnableExtensions creates the extensions the schema relies on. pg_trgm backs the
// trigram indexes used by case-insensitive substring search.
func EnableExtensions(ctx context.Context, pool DBTX) error {
	for _, ext := range []string{"pg_trgm"} {
		execCtx, cancel := context.WithTimeout(ctx, pingTimeout)
		_, err := pool.Exec(execCtx, fmt.Sprintf("CREATE EXTENSION IF NOT EXISTS %s", ext))
		cancel()
		if err != nil {
			return apperror.NewDatabaseError(fmt.Sprintf("failed to create extension %s", ext), err)
		}
	}
	return nil
}

func newMigrator(cfg *config.PoolConfig, migrationsPath string) (*migrate.Migrate, error) {
	m, err := migrate.New("file://"+migrationsPath, DSN(cfg, "postgres"))
	if err != nil {
		return nil, apperror.NewMigrationError("failed to create migrator", err)
	}
	return m, nil
}

func closeMigrator(ctx context.Context, m *migrate.Migrate) {
	srcErr, dbErr := m.Close()
	if err := errors.Join(srcErr, dbErr); err != nil {
		logging.FromContext(ctx).Warn("error closing migrator", logging.Fields{"error": err.Error()})
	}
}

// RunMigrations applies all pending up migrations.
func RunMigrations(ctx context.Context, cfg *config.PoolConfig, migrationsPath string) error {
	m, err := newMigrator(cfg, migrationsPath)
	if err != nil {
		return err
	}
	defer closeMigrator(ctx, m)

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return apperror.NewMigrationError("failed to run migrations", err)
	}
	version, dirty, _ := m.Version()
	logging.FromContext(ctx).Info("migrations applied", logging.Fields{"version": version, "dirty": dirty})
	return nil
}

// RollbackMigration reverts the most recent migration.
func RollbackMigration(ctx context.Context, cfg *config.PoolConfig, migrationsPath string) error {
	m, err := newMigrator(cfg, migrationsPath)
	if err != nil {
		return err
	}
	defer closeMigrator(ctx, m)

	if err := m.Steps(-1); err != nil {
		return apperror.NewMigrationError("failed to roll back migration", err)
	}
	logging.FromContext(ctx).Info("rolled back one migration", nil)
	return nil
}

// IsUniqueViolation reports whether err is a PostgreSQL unique_violation.
func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == UniqueViolation
}
