package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// Client represents a connection to the local sqlite draw cache
type Client struct {
	db   *sql.DB
	path string
}

// NewClient opens (and creates if needed) the sqlite database at path
func NewClient(ctx context.Context, path string) (*Client, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create db directory: %w", err)
		}
	}

	// modernc.org/sqlite pragmas are passed as _pragma query parameters
	dsn := fmt.Sprintf("%s?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)&_pragma=foreign_keys(1)", path)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &Client{db: db, path: path}, nil
}

// DB returns the underlying connection pool
func (c *Client) DB() *sql.DB {
	return c.db
}

// Path returns the database file location
func (c *Client) Path() string {
	return c.path
}

// Close closes the database
func (c *Client) Close() error {
	return c.db.Close()
}
