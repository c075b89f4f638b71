package models

import (
	"time"
)

// Dialect identifies one of the supported database backends
type Dialect int

const (
	DialectUnknown Dialect = iota
	DialectPostgres
	DialectMySQL
	DialectSQLite
)

func (d Dialect) String() string {
	switch d {
	case DialectPostgres:
		return "PostgreSQL"
	case DialectMySQL:
		return "MySQL"
	case DialectSQLite:
		return "SQLite"
	default:
		return "Unknown"
	}
}

// ConnectionConfig is a recognized connection string
type ConnectionConfig struct {
	Dialect Dialect
	// URL is the effective connection string, e.g. "sqlite://test.db" for "test.db"
	URL string
	// DisplayName is derived from URL with credentials stripped
	DisplayName string
}

// ConnectionHistoryEntry represents a saved connection from history
type ConnectionHistoryEntry struct {
	ID          string    `yaml:"id"`
	DisplayName string    `yaml:"display_name"`
	// URL has its password removed; the password lives in the keyring
	URL         string    `yaml:"url"`
	HasSecret   bool      `yaml:"has_secret,omitempty"`
	LastUsed    time.Time `yaml:"last_used"`
	UsageCount  int       `yaml:"usage_count"`
	CreatedAt   time.Time `yaml:"created_at"`
}
