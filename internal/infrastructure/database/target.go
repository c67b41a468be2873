package database

import (
	"fmt"
	"net/url"
	"strings"
)

// Backend names a supported SQL engine.
type Backend string

const (
	BackendPostgres Backend = "postgres"
	BackendSQLite   Backend = "sqlite"
)

// Target is a parsed DATABASE_URL: which engine to use and the driver DSN.
type Target struct {
	Backend Backend
	DSN     string
}

// ParseURL maps a database URL onto a backend. PostgreSQL URLs are passed
// through; SQLite URLs become modernc file DSNs with foreign keys enabled.
func ParseURL(raw string) (Target, error) {
	raw = strings.TrimSpace(raw)
	switch {
	case strings.HasPrefix(raw, "postgres://"), strings.HasPrefix(raw, "postgresql://"):
		return Target{Backend: BackendPostgres, DSN: raw}, nil
	case strings.HasPrefix(raw, "sqlite://"):
		return sqliteTarget(strings.TrimPrefix(raw, "sqlite://"))
	case strings.HasPrefix(raw, "sqlite:"):
		return sqliteTarget(strings.TrimPrefix(raw, "sqlite:"))
	case strings.HasPrefix(raw, "file:"):
		return sqliteTarget(strings.TrimPrefix(raw, "file:"))
	}
	return Target{}, fmt.Errorf("unsupported database url scheme: %q", raw)
}

func sqliteTarget(rest string) (Target, error) {
	path, rawQuery, _ := strings.Cut(rest, "?")
	if path == "" {
		return Target{}, fmt.Errorf("sqlite database url has no path")
	}
	query, err := url.ParseQuery(rawQuery)
	if err != nil {
		return Target{}, fmt.Errorf("parse sqlite url query: %w", err)
	}
	query.Add("_pragma", "foreign_keys(1)")
	query.Add("_pragma", "busy_timeout(5000)")
	query.Set("_time_format", "sqlite")
	return Target{Backend: BackendSQLite, DSN: "file:" + path + "?" + query.Encode()}, nil
}
