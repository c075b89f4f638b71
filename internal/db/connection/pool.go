package connection

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	_ "modernc.org/sqlite"

	"github.com/rebeliceyang/crux/internal/models"
)

// sqliteDriver is modernc.org/sqlite, which hands back the stored text of
// DATE and DATETIME columns it cannot parse instead of a zero time.
const sqliteDriver = "sqlite"

// Options tunes the pools opened by Open
type Options struct {
	MaxConns       int32
	ConnectTimeout time.Duration
}

// DefaultOptions mirrors the performance section defaults of the config
func DefaultOptions() Options {
	return Options{
		MaxConns:       5,
		ConnectTimeout: 10 * time.Second,
	}
}

// Connection is an open pool for exactly one dialect. PostgreSQL connections
// hold a pgxpool.Pool; MySQL and SQLite hold a database/sql pool.
type Connection struct {
	Config      models.ConnectionConfig
	ConnectedAt time.Time

	pg *pgxpool.Pool
	db *sql.DB
}

// Open connects to the database described by config and verifies it with a ping
func Open(ctx context.Context, config models.ConnectionConfig, opts Options) (*Connection, error) {
	if opts.ConnectTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opts.ConnectTimeout)
		defer cancel()
	}

	switch config.Dialect {
	case models.DialectPostgres:
		pool, err := newPgPool(ctx, config.URL, opts)
		if err != nil {
			return nil, err
		}
		return &Connection{Config: config, ConnectedAt: time.Now(), pg: pool}, nil

	case models.DialectMySQL:
		dsn, err := mysqlDSN(config.URL, opts.ConnectTimeout)
		if err != nil {
			return nil, err
		}
		return openSQL(ctx, config, "mysql", dsn, opts)

	case models.DialectSQLite:
		return openSQL(ctx, config, sqliteDriver, sqliteDSN(config.URL), opts)

	default:
		return nil, ErrUnsupportedConnectionString
	}
}

func newPgPool(ctx context.Context, connStr string, opts Options) (*pgxpool.Pool, error) {
	poolConfig, err := pgxpool.ParseConfig(connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to parse connection config: %w", err)
	}

	if opts.MaxConns > 0 {
		poolConfig.MaxConns = opts.MaxConns
	}
	poolConfig.MinConns = 1
	poolConfig.MaxConnLifetime = time.Hour
	poolConfig.MaxConnIdleTime = 30 * time.Minute
	poolConfig.HealthCheckPeriod = time.Minute
	if opts.ConnectTimeout > 0 {
		poolConfig.ConnConfig.ConnectTimeout = opts.ConnectTimeout
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return pool, nil
}

func openSQL(ctx context.Context, config models.ConnectionConfig, driverName, dsn string, opts Options) (*Connection, error) {
	db, err := sql.Open(driverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s database: %w", config.Dialect, err)
	}

	if opts.MaxConns > 0 {
		db.SetMaxOpenConns(int(opts.MaxConns))
	}
	db.SetConnMaxLifetime(time.Hour)
	db.SetConnMaxIdleTime(30 * time.Minute)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &Connection{Config: config, ConnectedAt: time.Now(), db: db}, nil
}

// NewSQL wraps an already open database/sql pool of a MySQL or SQLite database
func NewSQL(config models.ConnectionConfig, db *sql.DB) *Connection {
	return &Connection{Config: config, ConnectedAt: time.Now(), db: db}
}

// Dialect returns the backend kind of the connection
func (c *Connection) Dialect() models.Dialect {
	return c.Config.Dialect
}

// Postgres returns the pgx pool; nil for other dialects
func (c *Connection) Postgres() *pgxpool.Pool {
	return c.pg
}

// SQL returns the database/sql pool; nil for PostgreSQL
func (c *Connection) SQL() *sql.DB {
	return c.db
}

// Ping tests the connection
func (c *Connection) Ping(ctx context.Context) error {
	switch {
	case c.pg != nil:
		return c.pg.Ping(ctx)
	case c.db != nil:
		return c.db.PingContext(ctx)
	default:
		return fmt.Errorf("connection pool not initialized")
	}
}

// Close releases the pool
func (c *Connection) Close() error {
	if c.pg != nil {
		c.pg.Close()
		return nil
	}
	if c.db != nil {
		return c.db.Close()
	}
	return nil
}
