package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database"
	migratepgx "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	migratesqlite "github.com/golang-migrate/migrate/v4/database/sqlite3"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "github.com/jackc/pgx/v5/stdlib"
	_ "github.com/mattn/go-sqlite3"
	"github.com/sirupsen/logrus"

	"github.com/rhinowatch/rhino-watch-sa/internal/config"
	"github.com/rhinowatch/rhino-watch-sa/migrations"
)

// Store is the open database handle together with the dialect it was opened
// under. The dialect decision is made exactly once, here.
type Store struct {
	DB      *sql.DB
	Dialect Dialect
}

// Open connects to the configured engine. With DATABASE_URL set it tries
// PostgreSQL first and falls back to the embedded SQLite database for the
// remainder of the process if the connection fails, logging the reason.
// Without DATABASE_URL it opens SQLite directly.
func Open(ctx context.Context, cfg *config.Config, log *logrus.Logger) (*Store, error) {
	if cfg.DatabaseURL != "" {
		db, err := openAndPing(ctx, Postgres(), cfg.DatabaseURL)
		if err == nil {
			return &Store{DB: db, Dialect: Postgres()}, nil
		}
		log.WithError(err).Warn("PostgreSQL connection failed, falling back to SQLite")
	}

	db, err := openAndPing(ctx, SQLite(), cfg.SQLitePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}
	return &Store{DB: db, Dialect: SQLite()}, nil
}

func openAndPing(ctx context.Context, d Dialect, dsn string) (*sql.DB, error) {
	db, err := sql.Open(d.DriverName(), dsn)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", d.Name(), err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping %s: %w", d.Name(), err)
	}
	return db, nil
}

// Migrate applies the embedded schema migrations for the active dialect.
// Running it against an up-to-date database is a no-op.
func (s *Store) Migrate() error {
	src, err := iofs.New(migrations.FS, s.Dialect.MigrationsDir())
	if err != nil {
		return fmt.Errorf("could not load embedded migrations: %w", err)
	}

	var drv database.Driver
	switch s.Dialect.Name() {
	case "postgresql":
		drv, err = migratepgx.WithInstance(s.DB, &migratepgx.Config{})
	default:
		drv, err = migratesqlite.WithInstance(s.DB, &migratesqlite.Config{})
	}
	if err != nil {
		return fmt.Errorf("could not create migration driver: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", src, s.Dialect.Name(), drv)
	if err != nil {
		return fmt.Errorf("could not create migrate instance: %w", err)
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	return nil
}

func (s *Store) Close() error {
	return s.DB.Close()
}
