package values

import (
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgtype"
)

type temporalKind int

const (
	kindDate temporalKind = iota
	kindTime
	kindTimestamp
	kindTimestampTZ
)

// Canonical renderings; fractional seconds are printed only when present.
const (
	DateLayout        = "2006-01-02"
	TimeLayout        = "15:04:05.999999"
	TimestampLayout   = "2006-01-02 15:04:05.999999"
	TimestampTZLayout = "2006-01-02 15:04:05.999999Z07:00"
)

// Layouts tried when a temporal value arrives as text. Fractional seconds are
// accepted by time.Parse without being spelled out.
var parseLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05Z07:00",
	"2006-01-02 15:04:05-07",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02",
	"15:04:05",
}

func (k temporalKind) format(t time.Time) string {
	switch k {
	case kindDate:
		return t.Format(DateLayout)
	case kindTime:
		return t.Format(TimeLayout)
	case kindTimestampTZ:
		return t.UTC().Format(TimestampTZLayout)
	default:
		return t.Format(TimestampLayout)
	}
}

// renderTemporal formats typed time values, re-formats parseable text and
// returns unparseable text unchanged.
func renderTemporal(kind temporalKind, value any) (string, bool) {
	switch v := value.(type) {
	case time.Time:
		return kind.format(v), true
	case pgtype.Time:
		if !v.Valid {
			return "", false
		}
		midnight := time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)
		return kindTime.format(midnight.Add(time.Duration(v.Microseconds) * time.Microsecond)), true
	case []byte:
		return renderTemporalText(kind, string(v)), true
	case string:
		return renderTemporalText(kind, v), true
	}
	return "", false
}

func renderTemporalText(kind temporalKind, raw string) string {
	text := strings.TrimSpace(raw)
	for _, layout := range parseLayouts {
		if t, err := time.Parse(layout, text); err == nil {
			return kind.format(t)
		}
	}
	return raw
}
