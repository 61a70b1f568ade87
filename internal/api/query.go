package api

import (
	"net/http"
	"strconv"
)

// Query holds the optional query-string parameters shared by list endpoints.
// Values that are absent or unusable are left nil.
type Query struct {
	Count *int
}

// ParseQuery never fails: a count that is not a positive integer is ignored.
func ParseQuery(r *http.Request) Query {
	var q Query
	if raw := r.URL.Query().Get("count"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			q.Count = &n
		}
	}
	return q
}

// CountOr returns the requested count or def.
func (q Query) CountOr(def int) int {
	if q.Count == nil {
		return def
	}
	return *q.Count
}
