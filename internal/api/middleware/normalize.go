package middleware

import (
	"net/http"
	"strings"
)

// NormalizePath collapses repeated slashes and appends a trailing slash, so
// "/med", "//med" and "/med//" all route as "/med/".
func NormalizePath(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		p := normalize(r.URL.Path)
		if p != r.URL.Path {
			r2 := r.Clone(r.Context())
			r2.URL.Path = p
			r2.URL.RawPath = ""
			r = r2
		}
		next.ServeHTTP(w, r)
	})
}

func normalize(p string) string {
	var b strings.Builder
	b.Grow(len(p) + 2)
	b.WriteByte('/')
	prevSlash := true
	for i := 0; i < len(p); i++ {
		c := p[i]
		if c == '/' {
			if prevSlash {
				continue
			}
			prevSlash = true
		} else {
			prevSlash = false
		}
		b.WriteByte(c)
	}
	if !prevSlash {
		b.WriteByte('/')
	}
	return b.String()
}
