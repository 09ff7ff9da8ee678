package util

import (
    "strconv"
    "time"
)

// RecordTimeLayout is the exchange-local layout used in output rows.
const RecordTimeLayout = "2006-01-02 15:04:05"

// ParseTime tries RFC3339, RFC3339Nano, and unix seconds. Returns (t, true) if any worked.
func ParseTime(s string) (time.Time, bool) {
    if s == "" {
        return time.Time{}, false
    }
    if t, err := time.Parse(time.RFC3339, s); err == nil {
        return t, true
    }
    if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
        return t, true
    }
    if ts, err := strconv.ParseInt(s, 10, 64); err == nil && ts > 0 {
        return time.Unix(ts, 0), true
    }
    return time.Time{}, false
}

// ParseTimeDefault parses time or returns default if empty/invalid.
func ParseTimeDefault(s string, def time.Time) time.Time {
    if t, ok := ParseTime(s); ok {
        return t
    }
    return def
}

// FormatRecordTime renders t in loc using the output row layout.
func FormatRecordTime(t time.Time, loc *time.Location) string {
    if loc != nil {
        t = t.In(loc)
    }
    return t.Format(RecordTimeLayout)
}

// LocalMidnight returns 00:00:00 of t's day in loc.
func LocalMidnight(t time.Time, loc *time.Location) time.Time {
    if loc != nil {
        t = t.In(loc)
    }
    return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
