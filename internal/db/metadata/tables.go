package metadata

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/rebeliceyang/crux/internal/db/connection"
	"github.com/rebeliceyang/crux/internal/models"
)

// SQLiteSchema is the schema name reported for every SQLite table
const SQLiteSchema = "main"

const (
	postgresTablesQuery = `
		SELECT table_schema, table_name
		FROM information_schema.tables
		WHERE table_schema NOT IN ('pg_catalog', 'information_schema')
		ORDER BY table_schema, table_name`

	mysqlTablesQuery = `
		SELECT table_schema, table_name
		FROM information_schema.tables
		WHERE table_schema NOT IN ('mysql', 'information_schema', 'performance_schema', 'sys')
		ORDER BY table_schema, table_name`

	sqliteTablesQuery = `
		SELECT name
		FROM sqlite_master
		WHERE type = 'table' AND name NOT LIKE 'sqlite_%'
		ORDER BY name`
)

// ListTables returns every user table of the connected database ordered by
// schema, then name. System schemas are excluded.
func ListTables(ctx context.Context, conn *connection.Connection) ([]models.TableRef, error) {
	if conn == nil {
		return nil, connection.ErrNoActiveConnection
	}

	var (
		tables []models.TableRef
		err    error
	)
	switch conn.Dialect() {
	case models.DialectPostgres:
		pool := conn.Postgres()
		if pool == nil {
			return nil, connection.ErrNoActiveConnection
		}
		tables, err = listPostgresTables(ctx, pool)
	case models.DialectMySQL:
		tables, err = listSchemaTables(ctx, conn.SQL(), mysqlTablesQuery)
	case models.DialectSQLite:
		tables, err = listSQLiteTables(ctx, conn.SQL())
	default:
		err = fmt.Errorf("cannot list tables of %s connection", conn.Dialect())
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load tables: %w", err)
	}
	return tables, nil
}

type pgQuerier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

func listPostgresTables(ctx context.Context, q pgQuerier) ([]models.TableRef, error) {
	if q == nil {
		return nil, connection.ErrNoActiveConnection
	}

	rows, err := q.Query(ctx, postgresTablesQuery)
	if err != nil {
		return nil, err
	}

	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.TableRef, error) {
		var t models.TableRef
		err := row.Scan(&t.Schema, &t.Name)
		return t, err
	})
}

func listSchemaTables(ctx context.Context, db *sql.DB, query string) ([]models.TableRef, error) {
	if db == nil {
		return nil, connection.ErrNoActiveConnection
	}

	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tables := make([]models.TableRef, 0)
	for rows.Next() {
		var t models.TableRef
		if err := rows.Scan(&t.Schema, &t.Name); err != nil {
			return nil, err
		}
		tables = append(tables, t)
	}
	return tables, rows.Err()
}

func listSQLiteTables(ctx context.Context, db *sql.DB) ([]models.TableRef, error) {
	if db == nil {
		return nil, connection.ErrNoActiveConnection
	}

	rows, err := db.QueryContext(ctx, sqliteTablesQuery)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tables := make([]models.TableRef, 0)
	for rows.Next() {
		t := models.TableRef{Schema: SQLiteSchema}
		if err := rows.Scan(&t.Name); err != nil {
			return nil, err
		}
		tables = append(tables, t)
	}
	return tables, rows.Err()
}
