package values

var sqliteBlob = hexBlob("X'", "'")

// sqliteValue renders values scanned through modernc.org/sqlite. Type names
// are declared column types; expressions report an empty name. The driver
// returns []byte only for the BLOB storage class, so byte slices are always
// hex encoded whatever the column declares.
func sqliteValue(typeName string, value any) string {
	if b, isBytes := value.([]byte); isBytes {
		return sqliteBlob(b)
	}

	var (
		out string
		ok  bool
	)

	switch canonicalType(typeName) {
	case "INTEGER", "INT", "BIGINT", "SMALLINT", "TINYINT":
		out, ok = renderInt(value)
	case "REAL", "FLOAT", "DOUBLE":
		out, ok = renderFloat(value)
	case "NUMERIC", "DECIMAL":
		out, ok = renderDecimal(value)
	case "TEXT", "VARCHAR", "CHAR", "CLOB":
		out, ok = asString(value)
	case "BOOLEAN", "BOOL":
		out, ok = renderBool(value)
	case "DATE":
		out, ok = renderTemporal(kindDate, value)
	case "DATETIME", "TIMESTAMP":
		out, ok = renderTemporal(kindTimestamp, value)
	}

	if ok {
		return out
	}
	return fallback(value)
}
