package util

import (
    "sort"
    "strconv"
    "strings"
)

// ParseIntDefault parses string to int or returns default if empty/invalid.
func ParseIntDefault(s string, def int) int {
    if s == "" {
        return def
    }
    v, err := strconv.Atoi(s)
    if err != nil {
        return def
    }
    return v
}

// SplitTickers splits a comma-joined ticker list, trimming blanks.
func SplitTickers(s string) []string {
    parts := strings.Split(s, ",")
    out := make([]string, 0, len(parts))
    for _, p := range parts {
        p = strings.TrimSpace(p)
        if p != "" {
            out = append(out, p)
        }
    }
    return out
}

// JoinTickers deduplicates, sorts, and comma-joins ticker symbols.
func JoinTickers(tickers []string) string {
    seen := make(map[string]struct{}, len(tickers))
    uniq := make([]string, 0, len(tickers))
    for _, t := range tickers {
        t = strings.TrimSpace(t)
        if t == "" {
            continue
        }
        if _, ok := seen[t]; ok {
            continue
        }
        seen[t] = struct{}{}
        uniq = append(uniq, t)
    }
    sort.Strings(uniq)
    return strings.Join(uniq, ",")
}
