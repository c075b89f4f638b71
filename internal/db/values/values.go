// Package values converts raw driver values into the display strings shown in
// the result grid.
//
// Every dialect has its own type-name table. Values whose type name is not in
// the table go through a fixed chain of typed extractions (string, int64,
// int32, float64, bool) and end as "NULL" when nothing matches, so Normalize
// never fails and never panics.
package values

import (
	"database/sql/driver"
	"encoding/hex"
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/rebeliceyang/crux/internal/models"
)

// Null is the rendering of a SQL NULL
const Null = "NULL"

// Normalize renders value as reported by a driver of the given dialect.
// typeName is the column type label as the driver reports it; case and a
// trailing length or precision modifier are ignored.
func Normalize(dialect models.Dialect, typeName string, value any) string {
	if value == nil {
		return Null
	}

	switch dialect {
	case models.DialectPostgres:
		return postgresValue(typeName, value)
	case models.DialectMySQL:
		return mysqlValue(typeName, value)
	case models.DialectSQLite:
		return sqliteValue(typeName, value)
	default:
		return fallback(value)
	}
}

// canonicalType upper-cases a type label and strips "(n)" modifiers and the
// UNSIGNED qualifier.
func canonicalType(name string) string {
	name = strings.ToUpper(strings.TrimSpace(name))
	if i := strings.IndexByte(name, '('); i >= 0 {
		name = strings.TrimSpace(name[:i])
	}
	name = strings.TrimPrefix(name, "UNSIGNED ")
	name = strings.TrimSuffix(name, " UNSIGNED")
	return name
}

// fallback runs the extraction chain used for unrecognized type names
func fallback(value any) string {
	if s, ok := asString(value); ok {
		return s
	}
	if n, ok := asInt64(value); ok {
		return strconv.FormatInt(n, 10)
	}
	if n, ok := asInt32(value); ok {
		return strconv.FormatInt(int64(n), 10)
	}
	if f, ok := asFloat64(value); ok {
		return formatFloat(f, 64)
	}
	if b, ok := asBool(value); ok {
		return strconv.FormatBool(b)
	}
	return Null
}

func asString(value any) (string, bool) {
	switch v := value.(type) {
	case string:
		return v, true
	case []byte:
		if utf8.Valid(v) {
			return string(v), true
		}
	case fmt.Stringer:
		return v.String(), true
	case driver.Valuer:
		if dv, err := v.Value(); err == nil {
			if s, ok := dv.(string); ok {
				return s, true
			}
		}
	}
	return "", false
}

func asInt64(value any) (int64, bool) {
	switch v := value.(type) {
	case int64:
		return v, true
	case int:
		return int64(v), true
	case int32:
		return int64(v), true
	case int16:
		return int64(v), true
	case int8:
		return int64(v), true
	case uint8:
		return int64(v), true
	case uint16:
		return int64(v), true
	case uint32:
		return int64(v), true
	case uint64:
		if v <= math.MaxInt64 {
			return int64(v), true
		}
	case []byte:
		return parseInt(string(v))
	case string:
		return parseInt(v)
	}
	return 0, false
}

func parseInt(s string) (int64, bool) {
	n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	return n, err == nil
}

func asInt32(value any) (int32, bool) {
	switch v := value.(type) {
	case int32:
		return v, true
	case int16:
		return int32(v), true
	case int8:
		return int32(v), true
	}
	return 0, false
}

func asFloat64(value any) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case []byte:
		return parseFloat(string(v))
	case string:
		return parseFloat(v)
	}
	return 0, false
}

func parseFloat(s string) (float64, bool) {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	return f, err == nil
}

func asBool(value any) (bool, bool) {
	switch v := value.(type) {
	case bool:
		return v, true
	case int64:
		return v != 0, true
	case []byte:
		return parseBool(string(v))
	case string:
		return parseBool(v)
	}
	return false, false
}

func parseBool(s string) (bool, bool) {
	b, err := strconv.ParseBool(strings.TrimSpace(s))
	return b, err == nil
}

// formatFloat prints the shortest decimal form that round-trips at bitSize
func formatFloat(f float64, bitSize int) string {
	return strconv.FormatFloat(f, 'f', -1, bitSize)
}

// renderFloat formats single-precision values without widening noise
func renderFloat(value any) (string, bool) {
	if f, ok := value.(float32); ok {
		return formatFloat(float64(f), 32), true
	}
	if f, ok := asFloat64(value); ok {
		return formatFloat(f, 64), true
	}
	return "", false
}

// renderInt formats any integer value in base 10
func renderInt(value any) (string, bool) {
	if n, ok := asInt64(value); ok {
		return strconv.FormatInt(n, 10), true
	}
	return "", false
}

func renderBool(value any) (string, bool) {
	if b, ok := asBool(value); ok {
		return strconv.FormatBool(b), true
	}
	return "", false
}

// renderDecimal prefers the exact textual form of arbitrary-precision values
func renderDecimal(value any) (string, bool) {
	switch v := value.(type) {
	case string:
		return v, true
	case []byte:
		return string(v), true
	case driver.Valuer:
		if s, ok := asString(v); ok {
			return s, true
		}
	}
	return renderFloat(value)
}

func hexBlob(prefix, suffix string) func([]byte) string {
	return func(b []byte) string {
		return prefix + hex.EncodeToString(b) + suffix
	}
}
