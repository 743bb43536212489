// Package db opens the application database.
package db

import (
	"database/sql"
	"fmt"
	"strings"
	"time"
)

// Open connects to Postgres when the URL carries a postgres scheme, otherwise
// it treats the value as a SQLite file path. The calling binary must import
// the matching driver.
func Open(databaseURL string) (*sql.DB, error) {
	driver := "sqlite"
	if strings.HasPrefix(databaseURL, "postgres://") || strings.HasPrefix(databaseURL, "postgresql://") {
		driver = "pgx"
	}

	conn, err := sql.Open(driver, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("open database: driver %s: %w", driver, err)
	}

	if driver == "pgx" {
		conn.SetMaxOpenConns(10)
		conn.SetMaxIdleConns(10)
		conn.SetConnMaxLifetime(30 * time.Minute)
	} else {
		// A single connection keeps SQLite clear of write-lock errors.
		conn.SetMaxOpenConns(1)
	}

	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("open database: verify connection: %w", err)
	}

	return conn, nil
}
