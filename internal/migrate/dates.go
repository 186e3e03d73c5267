package migrate

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
	"time"
)

// secondsCutoff separates epoch seconds from epoch milliseconds. Millisecond
// values pass it in early 1973.
const secondsCutoff = 1e11

var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05",
	time.DateOnly,
}

// userKeyed subtrees hold keys chosen by the user. Their values are never
// dates, whatever the key looks like.
var userKeyed = map[string]bool{
	"intake": true,
}

// normalizeDates rewrites every date-like value under v to epoch
// milliseconds in place.
func normalizeDates(v any) any {
	switch t := v.(type) {
	case map[string]any:
		for key, value := range t {
			switch {
			case userKeyed[key]:
				continue
			case isDateKey(key):
				t[key] = epochMillis(value)
			case isDateContainer(key):
				if obj, ok := value.(map[string]any); ok {
					for k, inner := range obj {
						obj[k] = epochMillis(inner)
					}
				}
			default:
				t[key] = normalizeDates(value)
			}
		}
		return t
	case []any:
		for i := range t {
			t[i] = normalizeDates(t[i])
		}
		return t
	default:
		return v
	}
}

func isDateKey(key string) bool {
	return strings.HasSuffix(key, "At") || strings.HasSuffix(key, "Time") || key == "timestamp"
}

func isDateContainer(key string) bool {
	return key == "unlockTimes"
}

// epochMillis coerces a stored date into epoch milliseconds. Unreadable
// values become nil.
func epochMillis(v any) any {
	switch t := v.(type) {
	case nil:
		return nil
	case float64:
		return millisFromNumber(t)
	case int:
		return millisFromNumber(float64(t))
	case int64:
		return millisFromNumber(float64(t))
	case json.Number:
		f, err := t.Float64()
		if err != nil {
			return nil
		}
		return millisFromNumber(f)
	case string:
		return millisFromString(t)
	case map[string]any:
		if inner, ok := t["$date"]; ok {
			return epochMillis(inner)
		}
		return nil
	default:
		return nil
	}
}

func millisFromNumber(f float64) any {
	if f <= 0 || math.IsNaN(f) || math.IsInf(f, 0) {
		return nil
	}
	if f < secondsCutoff {
		f *= 1000
	}
	return int64(math.Round(f))
}

func millisFromString(raw string) any {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	if f, err := strconv.ParseFloat(raw, 64); err == nil {
		return millisFromNumber(f)
	}
	for _, layout := range dateLayouts {
		if parsed, err := time.Parse(layout, raw); err == nil {
			return parsed.UnixMilli()
		}
	}
	return nil
}
