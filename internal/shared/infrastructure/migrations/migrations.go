// Package migrations owns the schema for both backends and applies it with goose.
package migrations

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"sync"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"github.com/felixgeelhaar/slotswap/internal/shared/infrastructure/database"
)

//go:embed postgres/*.sql sqlite/*.sql
var embedded embed.FS

// goose keeps dialect, filesystem and logger in package globals.
var gooseMu sync.Mutex

// Migrator applies the embedded migrations for one connection.
type Migrator struct {
	db      *sql.DB
	dialect string
	dir     string
	ownsDB  bool
	logger  *slog.Logger
}

// NewMigrator prepares a migrator for conn's backend.
func NewMigrator(conn database.Connection, logger *slog.Logger) (*Migrator, error) {
	if logger == nil {
		logger = slog.Default()
	}

	switch conn.Driver() {
	case database.DriverPostgres:
		pooled, ok := conn.(interface{ Pool() *pgxpool.Pool })
		if !ok {
			return nil, fmt.Errorf("migrations: postgres connection %T does not expose its pool", conn)
		}
		return &Migrator{
			db:      stdlib.OpenDBFromPool(pooled.Pool()),
			dialect: "postgres",
			dir:     "postgres",
			ownsDB:  true,
			logger:  logger,
		}, nil
	case database.DriverSQLite:
		handle, ok := conn.(interface{ DB() *sql.DB })
		if !ok {
			return nil, fmt.Errorf("migrations: sqlite connection %T does not expose its handle", conn)
		}
		return &Migrator{
			db:      handle.DB(),
			dialect: "sqlite3",
			dir:     "sqlite",
			logger:  logger,
		}, nil
	default:
		return nil, fmt.Errorf("migrations: unsupported driver %s", conn.Driver())
	}
}

// Up applies every pending migration.
func (m *Migrator) Up(ctx context.Context) error {
	gooseMu.Lock()
	defer gooseMu.Unlock()

	if err := m.configure(); err != nil {
		return err
	}
	if err := goose.UpContext(ctx, m.db, m.dir); err != nil {
		return fmt.Errorf("apply migrations: %w", err)
	}

	m.logger.Info("database migrations applied", "dialect", m.dialect)
	return nil
}

// Version reports the last applied migration.
func (m *Migrator) Version(ctx context.Context) (int64, error) {
	gooseMu.Lock()
	defer gooseMu.Unlock()

	if err := m.configure(); err != nil {
		return 0, err
	}
	version, err := goose.GetDBVersionContext(ctx, m.db)
	if err != nil {
		return 0, fmt.Errorf("get migration version: %w", err)
	}
	return version, nil
}

// Close releases the handle opened over a Postgres pool. The pool itself stays open.
func (m *Migrator) Close() error {
	if m.ownsDB {
		return m.db.Close()
	}
	return nil
}

func (m *Migrator) configure() error {
	goose.SetBaseFS(embedded)
	goose.SetLogger(gooseLogger{logger: m.logger})
	if err := goose.SetDialect(m.dialect); err != nil {
		return fmt.Errorf("set goose dialect: %w", err)
	}
	return nil
}

// Up is a shortcut for opening a migrator, applying, and closing it.
func Up(ctx context.Context, conn database.Connection, logger *slog.Logger) error {
	m, err := NewMigrator(conn, logger)
	if err != nil {
		return err
	}
	defer m.Close()
	return m.Up(ctx)
}

type gooseLogger struct {
	logger *slog.Logger
}

func (l gooseLogger) Printf(format string, v ...any) {
	l.logger.Debug(strings.TrimSpace(fmt.Sprintf(format, v...)), "component", "goose")
}

func (l gooseLogger) Fatalf(format string, v ...any) {
	l.logger.Error(strings.TrimSpace(fmt.Sprintf(format, v...)), "component", "goose")
	os.Exit(1)
}
