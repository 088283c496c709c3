package library

import (
	"encoding/json"
	"fmt"
	"strings"
)

// setPath writes v at the dot-separated path, creating intermediate maps for
// missing segments.
func setPath(rec Record, path string, v any) {
	segs := strings.Split(path, ".")
	cur := rec
	for _, seg := range segs[:len(segs)-1] {
		next, ok := cur[seg].(map[string]any)
		if !ok {
			if r, isRec := cur[seg].(Record); isRec {
				next = map[string]any(r)
			} else {
				next = make(map[string]any)
				cur[seg] = next
			}
		}
		cur = next
	}
	cur[segs[len(segs)-1]] = v
}

// getPath resolves the dot-separated path. A missing segment is an error:
// listings assume well-formed existing records, so the failure propagates.
func getPath(rec Record, path string) (any, error) {
	segs := strings.Split(path, ".")
	var cur any = map[string]any(rec)
	for _, seg := range segs {
		m, ok := cur.(map[string]any)
		if !ok {
			if r, isRec := cur.(Record); isRec {
				m = map[string]any(r)
			} else {
				return nil, fmt.Errorf("segmento %q de %q no es un mapa", seg, path)
			}
		}
		cur, ok = m[seg]
		if !ok {
			return nil, fmt.Errorf("campo %q ausente en %q", seg, path)
		}
	}
	return cur, nil
}

// stringAt returns the string at path, or "" when absent or of another type.
func stringAt(rec Record, path string) string {
	v, err := getPath(rec, path)
	if err != nil {
		return ""
	}
	s, _ := v.(string)
	return s
}

// intAt returns the integer at path, coercing the numeric representations a
// JSON round trip can produce. Absent or non-numeric values yield def.
func intAt(rec Record, path string, def int64) int64 {
	v, err := getPath(rec, path)
	if err != nil {
		return def
	}
	switch n := v.(type) {
	case int64:
		return n
	case int:
		return int64(n)
	case float64:
		return int64(n)
	case json.Number:
		i, err := n.Int64()
		if err != nil {
			return def
		}
		return i
	default:
		return def
	}
}

// boolAt returns the boolean at path, or def when absent or of another type.
func boolAt(rec Record, path string, def bool) bool {
	v, err := getPath(rec, path)
	if err != nil {
		return def
	}
	b, ok := v.(bool)
	if !ok {
		return def
	}
	return b
}

// splitAuthors breaks a comma-separated author list into the fixed 3-slot
// structure: blank entries dropped, names trimmed, everything beyond the
// third silently discarded, missing slots left empty.
func splitAuthors(s string) [3]string {
	var out [3]string
	i := 0
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if i == 3 {
			break
		}
		out[i] = part
		i++
	}
	return out
}
