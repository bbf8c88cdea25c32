package i18n

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// Style is a formatting style for number and date arguments. Named styles
// such as "percent" resolve to Style{"style": "percent"}.
type Style map[string]any

// Name returns the "style" entry, if any.
func (s Style) Name() string {
	if s == nil {
		return ""
	}
	name, _ := s["style"].(string)
	return name
}

func (s Style) String(key string) (string, bool) {
	if s == nil {
		return "", false
	}
	value, ok := s[key].(string)
	return value, ok
}

func (s Style) Int(key string) (int, bool) {
	if s == nil {
		return 0, false
	}
	value, ok := toFloat(s[key])
	if !ok {
		return 0, false
	}
	return int(value), true
}

// FormatFunc renders value for locale using style. style is nil when the
// argument carries no style.
type FormatFunc func(locale string, value any, style Style) string

const (
	FormatTypeNumber = "number"
	FormatTypeDate   = "date"
)

// identityFormat is used when no formatter is wired for a type.
func identityFormat(_ string, value any, _ Style) string {
	return stringify(value)
}

func stringify(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(v), 'f', -1, 32)
	case fmt.Stringer:
		return v.String()
	default:
		return fmt.Sprint(v)
	}
}

// toFloat converts numeric params, including numeric strings.
func toFloat(value any) (float64, bool) {
	switch v := value.(type) {
	case int:
		return float64(v), true
	case int8:
		return float64(v), true
	case int16:
		return float64(v), true
	case int32:
		return float64(v), true
	case int64:
		return float64(v), true
	case uint:
		return float64(v), true
	case uint8:
		return float64(v), true
	case uint16:
		return float64(v), true
	case uint32:
		return float64(v), true
	case uint64:
		return float64(v), true
	case float32:
		return float64(v), true
	case float64:
		if math.IsNaN(v) {
			return 0, false
		}
		return v, true
	case json.Number:
		f, err := v.Float64()
		return f, err == nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		return f, err == nil
	default:
		return 0, false
	}
}

// toTime accepts time.Time, *time.Time, RFC 3339 strings and unix seconds.
func toTime(value any) (time.Time, bool) {
	switch v := value.(type) {
	case time.Time:
		return v, true
	case *time.Time:
		if v == nil {
			return time.Time{}, false
		}
		return *v, true
	case string:
		for _, layout := range []string{time.RFC3339, time.DateOnly, time.DateTime} {
			if t, err := time.Parse(layout, v); err == nil {
				return t, true
			}
		}
		return time.Time{}, false
	default:
		if seconds, ok := toFloat(v); ok {
			return time.Unix(int64(seconds), 0).UTC(), true
		}
		return time.Time{}, false
	}
}

// FormatNumber renders value with a fixed number of decimals and no
// grouping. A negative decimals keeps the shortest representation.
func FormatNumber(value float64, decimals int) string {
	prec := decimals
	if prec < 0 {
		prec = -1
	}
	return strconv.FormatFloat(value, 'f', prec, 64)
}

// FormatDate renders an ISO date.
func FormatDate(t time.Time) string {
	return t.Format(time.DateOnly)
}

func plainNumberFormat(_ string, value any, style Style) string {
	n, ok := toFloat(value)
	if !ok {
		return stringify(value)
	}
	decimals := -1
	if max, ok := style.Int("maximumFractionDigits"); ok {
		decimals = max
	}
	switch style.Name() {
	case "percent":
		return FormatNumber(n*100, decimals) + "%"
	case "integer":
		return FormatNumber(math.Round(n), 0)
	}
	return FormatNumber(n, decimals)
}

func plainDateFormat(_ string, value any, _ Style) string {
	t, ok := toTime(value)
	if !ok {
		return stringify(value)
	}
	return FormatDate(t)
}
