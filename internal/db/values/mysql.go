package values

import "github.com/rebeliceyang/crux/internal/jsonb"

var mysqlBlob = hexBlob("0x", "")

// mysqlValue renders values scanned through go-sql-driver/mysql. The text
// protocol delivers most columns as []byte, so typed branches parse text.
// The driver reports BOOL columns as TINYINT, so they print as 0 and 1.
func mysqlValue(typeName string, value any) string {
	var (
		out string
		ok  bool
	)

	switch canonicalType(typeName) {
	case "TINYINT", "SMALLINT", "MEDIUMINT", "INT", "INTEGER", "BIGINT", "YEAR":
		out, ok = renderInt(value)
	case "FLOAT", "DOUBLE", "REAL":
		out, ok = renderFloat(value)
	case "DECIMAL", "NUMERIC":
		out, ok = renderDecimal(value)
	case "VARCHAR", "CHAR", "TEXT", "TINYTEXT", "MEDIUMTEXT", "LONGTEXT", "ENUM", "SET":
		out, ok = asString(value)
	case "DATE":
		out, ok = renderTemporal(kindDate, value)
	case "TIME":
		out, ok = renderTemporal(kindTime, value)
	case "DATETIME", "TIMESTAMP":
		out, ok = renderTemporal(kindTimestamp, value)
	case "JSON":
		if s, err := jsonb.Compact(value); err == nil {
			out, ok = s, true
		}
	case "BLOB", "TINYBLOB", "MEDIUMBLOB", "LONGBLOB", "BINARY", "VARBINARY":
		if b, isBytes := value.([]byte); isBytes {
			out, ok = mysqlBlob(b), true
		}
	}

	if ok {
		return out
	}
	return fallback(value)
}
