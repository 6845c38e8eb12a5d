// Package expiry evaluates pending-transaction deadlines.
//
// Deadlines arrive from the document store in one of three shapes: an RFC3339
// string, a value that can convert itself to a time.Time, or an epoch-seconds
// wrapper object. Normalization happens here, once, at the boundary; callers
// only ever see a time.Time or a Remaining value.
package expiry

import (
	"encoding/json"
	"time"
)

// Remaining is the whole-unit breakdown of the time left until a deadline.
// Each unit is truncated, never rounded: 1.9s remaining reports as 0h 0m 1s.
type Remaining struct {
	Hours   int  `json:"hours"`
	Minutes int  `json:"minutes"`
	Seconds int  `json:"seconds"`
	Expired bool `json:"isExpired"`
}

// TimeConvertible is implemented by deadline values that carry their own
// conversion, e.g. SDK timestamp wrappers.
type TimeConvertible interface {
	Time() time.Time
}

var expired = Remaining{Expired: true}

// Until computes the remaining time between now and the given deadline value.
// A deadline that cannot be normalized is treated as already expired: an
// unreadable deadline must never keep a transaction alive. The boundary is
// inclusive, so deadline == now is expired.
func Until(deadline any, now time.Time) Remaining {
	at, ok := ParseDeadline(deadline)
	if !ok {
		return expired
	}
	if !at.After(now) {
		return expired
	}

	secs := int(at.Sub(now) / time.Second)
	return Remaining{
		Hours:   secs / 3600,
		Minutes: (secs % 3600) / 60,
		Seconds: secs % 60,
	}
}

// ParseDeadline normalizes a polymorphic deadline value to an instant.
// It reports false for absent or unrecognized values.
func ParseDeadline(v any) (time.Time, bool) {
	switch d := v.(type) {
	case time.Time:
		return d, true
	case *time.Time:
		if d == nil {
			return time.Time{}, false
		}
		return *d, true
	case string:
		return parseTimestampString(d)
	case TimeConvertible:
		return d.Time(), true
	case map[string]any:
		return parseEpochWrapper(d)
	default:
		return time.Time{}, false
	}
}

func parseTimestampString(s string) (time.Time, bool) {
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339, "2006-01-02T15:04:05"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// parseEpochWrapper handles the Firestore-style {seconds, nanoseconds} object,
// which generic JSON or attributevalue decoding yields as a map.
func parseEpochWrapper(m map[string]any) (time.Time, bool) {
	secs, ok := numericField(m, "seconds", "_seconds")
	if !ok {
		return time.Time{}, false
	}
	nanos, _ := numericField(m, "nanoseconds", "_nanoseconds", "nanos")
	return time.Unix(secs, nanos), true
}

func numericField(m map[string]any, keys ...string) (int64, bool) {
	for _, key := range keys {
		raw, ok := m[key]
		if !ok {
			continue
		}
		switch n := raw.(type) {
		case float64:
			return int64(n), true
		case int:
			return int64(n), true
		case int64:
			return n, true
		case json.Number:
			if v, err := n.Int64(); err == nil {
				return v, true
			}
		}
	}
	return 0, false
}
