package values

import (
	"net/netip"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/rebeliceyang/crux/internal/jsonb"
)

var pgBytea = hexBlob(`\x`, "")

// postgresValue renders values decoded by pgx. Type names are the PostgreSQL
// catalog names pgx reports (int4, timestamptz, ...) or their SQL spellings.
func postgresValue(typeName string, value any) string {
	var (
		out string
		ok  bool
	)

	switch canonicalType(typeName) {
	case "BOOL", "BOOLEAN":
		out, ok = renderBool(value)
	case "INT2", "SMALLINT", "SMALLSERIAL",
		"INT4", "INT", "INTEGER", "SERIAL",
		"INT8", "BIGINT", "BIGSERIAL", "OID":
		out, ok = renderInt(value)
	case "FLOAT4", "REAL", "FLOAT8", "DOUBLE PRECISION":
		out, ok = renderFloat(value)
	case "NUMERIC", "DECIMAL":
		if n, isNumeric := value.(pgtype.Numeric); isNumeric {
			out, ok = numericText(n)
		} else {
			out, ok = renderDecimal(value)
		}
	case "TEXT", "VARCHAR", "CHARACTER VARYING", "CHAR", "CHARACTER", "BPCHAR", "NAME", "CITEXT":
		out, ok = asString(value)
	case "UUID":
		out, ok = renderUUID(value)
	case "DATE":
		out, ok = renderTemporal(kindDate, value)
	case "TIME", "TIMETZ":
		out, ok = renderTemporal(kindTime, value)
	case "TIMESTAMP":
		out, ok = renderTemporal(kindTimestamp, value)
	case "TIMESTAMPTZ":
		out, ok = renderTemporal(kindTimestampTZ, value)
	case "JSON", "JSONB":
		out, ok = renderJSON(value)
	case "BYTEA":
		if b, isBytes := value.([]byte); isBytes {
			out, ok = pgBytea(b), true
		}
	case "INET", "CIDR":
		out, ok = renderNetwork(canonicalType(typeName) == "INET", value)
	}

	if ok {
		return out
	}
	return fallback(value)
}

// numericText renders the exact decimal digits of a numeric, keeping its scale
func numericText(n pgtype.Numeric) (string, bool) {
	switch {
	case !n.Valid:
		return "", false
	case n.NaN:
		return "NaN", true
	case n.InfinityModifier == pgtype.Infinity:
		return "Infinity", true
	case n.InfinityModifier == pgtype.NegativeInfinity:
		return "-Infinity", true
	case n.Int == nil:
		return "0", true
	}

	digits := n.Int.String()
	sign := ""
	if strings.HasPrefix(digits, "-") {
		sign, digits = "-", digits[1:]
	}

	exp := int(n.Exp)
	switch {
	case exp >= 0:
		return sign + digits + strings.Repeat("0", exp), true
	case len(digits) <= -exp:
		return sign + "0." + strings.Repeat("0", -exp-len(digits)) + digits, true
	default:
		point := len(digits) + exp
		return sign + digits[:point] + "." + digits[point:], true
	}
}

func renderUUID(value any) (string, bool) {
	switch v := value.(type) {
	case [16]byte:
		return uuid.UUID(v).String(), true
	case pgtype.UUID:
		if v.Valid {
			return uuid.UUID(v.Bytes).String(), true
		}
	case string:
		return v, true
	}
	return "", false
}

// renderNetwork prints inet host addresses without the /32 or /128 suffix,
// as PostgreSQL does; cidr values always keep their mask.
func renderNetwork(host bool, value any) (string, bool) {
	switch v := value.(type) {
	case netip.Prefix:
		if host && v.IsSingleIP() {
			return v.Addr().String(), true
		}
		return v.String(), true
	case netip.Addr:
		return v.String(), true
	}
	return asString(value)
}

// renderJSON encodes values pgx decoded from json/jsonb; decoded string
// scalars are printed quoted, as the server would.
func renderJSON(value any) (string, bool) {
	var (
		out string
		err error
	)
	if s, isString := value.(string); isString {
		out, err = jsonb.Encode(s)
	} else {
		out, err = jsonb.Compact(value)
	}
	if err != nil {
		return "", false
	}
	return out, true
}
