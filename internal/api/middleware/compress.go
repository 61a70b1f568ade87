package middleware

import (
	"net/http"

	"github.com/klauspost/compress/gzhttp"
)

// Compress gzips responses for clients that accept it. Bodies below
// gzhttp's default minimum size are sent as-is.
func Compress(next http.Handler) http.Handler {
	return gzhttp.GzipHandler(next)
}
