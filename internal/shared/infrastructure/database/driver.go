package database

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Driver names a storage backend.
type Driver string

const (
	DriverPostgres Driver = "postgres"
	DriverSQLite   Driver = "sqlite"
)

func (d Driver) String() string { return string(d) }

// IsValid reports whether d is a supported backend.
func (d Driver) IsValid() bool {
	return d == DriverPostgres || d == DriverSQLite
}

// DetectDriver picks a backend from a connection string.
// An empty string selects SQLite so the CLI works without any setup.
func DetectDriver(url string) Driver {
	switch {
	case url == "":
		return DriverSQLite
	case strings.HasPrefix(url, "postgres://"), strings.HasPrefix(url, "postgresql://"):
		return DriverPostgres
	case strings.HasPrefix(url, "sqlite://"), strings.HasPrefix(url, "file:"):
		return DriverSQLite
	case strings.HasSuffix(url, ".db"), strings.HasSuffix(url, ".sqlite"), strings.HasSuffix(url, ".sqlite3"):
		return DriverSQLite
	default:
		return DriverPostgres
	}
}

// Config selects and sizes the store.
type Config struct {
	// Driver forces a backend. Empty means detect from URL.
	Driver Driver
	// URL is a Postgres DSN, or a SQLite path in one of the forms DetectDriver accepts.
	URL string
	// SQLitePath is used when URL does not name a SQLite file. Defaults to ~/.slotswap/data.db.
	SQLitePath string
	// MaxConns caps the Postgres pool.
	MaxConns int
}

// ResolveSQLitePath returns the file a SQLite connection should open.
func (c Config) ResolveSQLitePath() string {
	if c.URL != "" && DetectDriver(c.URL) == DriverSQLite {
		path := strings.TrimPrefix(c.URL, "sqlite://")
		return strings.TrimPrefix(path, "file:")
	}
	if c.SQLitePath != "" {
		return c.SQLitePath
	}
	return DefaultSQLitePath()
}

// DefaultSQLitePath is the per-user database file for local mode.
func DefaultSQLitePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return filepath.Join(home, ".slotswap", "data.db")
}

// EnsureDirectory creates the parent directory of path.
func EnsureDirectory(path string) error {
	return os.MkdirAll(filepath.Dir(path), 0o755)
}

type opener func(ctx context.Context, cfg Config) (Connection, error)

var openers = map[Driver]opener{}

// RegisterDriver installs the constructor for a backend.
// The postgres and sqlite subpackages call it from init, so importing them is enough.
func RegisterDriver(d Driver, fn func(ctx context.Context, cfg Config) (Connection, error)) {
	openers[d] = fn
}

// NewConnection opens the backend selected by cfg.
func NewConnection(ctx context.Context, cfg Config) (Connection, error) {
	driver := cfg.Driver
	if driver == "" || driver == "auto" {
		driver = DetectDriver(cfg.URL)
	}
	if !driver.IsValid() {
		return nil, fmt.Errorf("unsupported database driver: %s", driver)
	}

	open, ok := openers[driver]
	if !ok {
		return nil, fmt.Errorf("database driver %s is not registered", driver)
	}
	return open(ctx, cfg)
}
