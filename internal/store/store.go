// Package store provides the company memory interface and its file, SQLite and
// Postgres implementations.
package store

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// ErrEmptyName is returned when a blank company name is appended.
var ErrEmptyName = errors.New("company name is required")

// Store is the append-only record of companies already investigated.
type Store interface {
	// ReadAll returns every stored name in append order. A store that has
	// never been written reads as empty.
	ReadAll(ctx context.Context) ([]string, error)

	// Append records a name. Duplicates are kept.
	Append(ctx context.Context, name string) error

	// Reset irreversibly drops every record.
	Reset(ctx context.Context) error

	// Close closes the store.
	Close() error
}

// Driver names accepted by Open.
const (
	DriverFile     = "file"
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Options selects and configures a backend.
type Options struct {
	Driver string
	Path   string // file and sqlite
	DSN    string // postgres
}

// Open returns the backend named by opts.Driver. An empty driver means file.
func Open(opts Options) (Store, error) {
	switch opts.Driver {
	case "", DriverFile:
		return NewFileStore(opts.Path), nil
	case DriverSQLite:
		return NewSQLiteStore(opts.Path)
	case DriverPostgres:
		return NewPostgresStore(opts.DSN)
	default:
		return nil, fmt.Errorf("unknown store driver %q", opts.Driver)
	}
}

func cleanName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", ErrEmptyName
	}
	return name, nil
}
