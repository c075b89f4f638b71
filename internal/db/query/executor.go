package query

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/rebeliceyang/crux/internal/db/connection"
	"github.com/rebeliceyang/crux/internal/db/values"
	"github.com/rebeliceyang/crux/internal/models"
)

// Execute runs stmt on the connection and returns its rows normalized to
// strings. A statement that yields no rows returns an empty result.
// RowsAffected is the number of rows returned.
func Execute(ctx context.Context, conn *connection.Connection, stmt string) (models.QueryResult, error) {
	if conn == nil {
		return models.QueryResult{}, connection.ErrNoActiveConnection
	}

	start := time.Now()

	var (
		result models.QueryResult
		err    error
	)
	switch conn.Dialect() {
	case models.DialectPostgres:
		pool := conn.Postgres()
		if pool == nil {
			return models.QueryResult{}, connection.ErrNoActiveConnection
		}
		result, err = executePostgres(ctx, pool, stmt)
	case models.DialectMySQL, models.DialectSQLite:
		result, err = executeSQL(ctx, conn.Dialect(), conn.SQL(), stmt)
	default:
		err = fmt.Errorf("cannot execute on %s connection", conn.Dialect())
	}
	if err != nil {
		return models.QueryResult{}, err
	}

	result.Duration = time.Since(start)
	return result, nil
}

// pgQuerier is implemented by pgxpool.Pool, pgx.Conn and pgx.Tx
type pgQuerier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

func executePostgres(ctx context.Context, q pgQuerier, stmt string) (models.QueryResult, error) {
	if q == nil {
		return models.QueryResult{}, connection.ErrNoActiveConnection
	}

	rows, err := q.Query(ctx, stmt)
	if err != nil {
		return models.QueryResult{}, err
	}
	defer rows.Close()

	fieldDescs := rows.FieldDescriptions()
	columns := make([]string, len(fieldDescs))
	typeNames := make([]string, len(fieldDescs))

	typeMap := pgtype.NewMap()
	if c := rows.Conn(); c != nil {
		typeMap = c.TypeMap()
	}
	for i, fd := range fieldDescs {
		columns[i] = fd.Name
		typeNames[i] = pgTypeName(typeMap, fd.DataTypeOID)
	}

	var data [][]string
	for rows.Next() {
		raw, err := rows.Values()
		if err != nil {
			return models.QueryResult{}, err
		}

		row := make([]string, len(raw))
		for i, v := range raw {
			row[i] = values.Normalize(models.DialectPostgres, typeNames[i], v)
		}
		data = append(data, row)
	}

	if err := rows.Err(); err != nil {
		return models.QueryResult{}, err
	}

	return buildResult(columns, data), nil
}

// pgTypeName resolves an OID to its catalog name; unknown OIDs (enums,
// extension types) resolve to "".
func pgTypeName(m *pgtype.Map, oid uint32) string {
	if t, ok := m.TypeForOID(oid); ok {
		return t.Name
	}
	return ""
}

func executeSQL(ctx context.Context, dialect models.Dialect, db *sql.DB, stmt string) (models.QueryResult, error) {
	if db == nil {
		return models.QueryResult{}, connection.ErrNoActiveConnection
	}

	rows, err := db.QueryContext(ctx, stmt)
	if err != nil {
		return models.QueryResult{}, err
	}
	defer rows.Close()

	colTypes, err := rows.ColumnTypes()
	if err != nil {
		return models.QueryResult{}, fmt.Errorf("failed to read column types: %w", err)
	}

	columns := make([]string, len(colTypes))
	typeNames := make([]string, len(colTypes))
	for i, ct := range colTypes {
		columns[i] = ct.Name()
		typeNames[i] = ct.DatabaseTypeName()
	}

	raw := make([]any, len(columns))
	dest := make([]any, len(columns))
	for i := range raw {
		dest[i] = &raw[i]
	}

	var data [][]string
	for rows.Next() {
		if err := rows.Scan(dest...); err != nil {
			return models.QueryResult{}, err
		}

		row := make([]string, len(raw))
		for i, v := range raw {
			row[i] = values.Normalize(dialect, typeNames[i], v)
		}
		data = append(data, row)
	}

	if err := rows.Err(); err != nil {
		return models.QueryResult{}, err
	}

	return buildResult(columns, data), nil
}

func buildResult(columns []string, data [][]string) models.QueryResult {
	if len(data) == 0 {
		return models.EmptyResult()
	}
	return models.QueryResult{
		Columns:      columns,
		Rows:         data,
		RowsAffected: uint64(len(data)),
	}
}

// Run executes stmt and folds a failure into the one-row Error result, so
// callers can always hand the outcome to the grid.
func Run(ctx context.Context, conn *connection.Connection, stmt string) (models.QueryResult, error) {
	result, err := Execute(ctx, conn, stmt)
	if err != nil {
		return models.ErrorResult(err), err
	}
	return result, nil
}
