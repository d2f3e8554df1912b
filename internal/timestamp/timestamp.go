// Package timestamp converts the timestamp encodings the backends emit into
// one canonical string form. Local records written by older tooling carry
// epoch-seconds objects, the remote API emits ISO-8601 strings, and either
// may omit the field entirely; every read path funnels through Normalize so
// callers only ever see the canonical shape.
package timestamp

import (
	"encoding/json"
	"time"
)

// Layout is the canonical timestamp form: UTC, millisecond precision.
const Layout = "2006-01-02T15:04:05.000Z"

// Canonical renders t in the canonical form.
func Canonical(t time.Time) string {
	return t.UTC().Format(Layout)
}

// Now returns the current time in the canonical form.
func Now() string {
	return Canonical(time.Now())
}

// Normalize converts a raw timestamp value into the canonical form.
// It is total: absent or unrecognizable input yields "" rather than an
// error, so a malformed field can never abort a listing.
//
// Accepted shapes:
//   - a string already in (or parseable as) RFC3339, re-rendered canonical
//   - a map carrying an epoch-seconds field ("seconds" or "_seconds"),
//     converted via milliseconds
//   - anything else, including nil, yields ""
func Normalize(raw any) string {
	switch v := raw.(type) {
	case nil:
		return ""
	case string:
		if v == "" {
			return ""
		}
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return ""
		}
		return Canonical(t)
	case map[string]any:
		secs, ok := epochSeconds(v)
		if !ok {
			return ""
		}
		return Canonical(time.UnixMilli(secs * 1000))
	default:
		return ""
	}
}

func epochSeconds(m map[string]any) (int64, bool) {
	for _, key := range []string{"seconds", "_seconds"} {
		raw, ok := m[key]
		if !ok {
			continue
		}
		switch n := raw.(type) {
		case int:
			return int64(n), true
		case int64:
			return n, true
		case float64:
			return int64(n), true
		case json.Number:
			i, err := n.Int64()
			if err != nil {
				return 0, false
			}
			return i, true
		}
	}
	return 0, false
}
