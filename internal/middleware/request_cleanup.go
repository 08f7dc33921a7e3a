package middleware

import (
	"io"
	"net/http"
)

// Leftover body bytes discarded after the handler. Anything bigger and the
// server closes the connection instead of reading it.
const maxDrainBytes = 64 << 10

// LimitRequestBody caps the request body at maxBytes, reads past the cap fail with
// *http.MaxBytesError. Once the handler is done the unread rest of the body is
// discarded and the body closed.
func LimitRequestBody(maxBytes int64) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Body == nil || r.Body == http.NoBody {
				next.ServeHTTP(w, r)
				return
			}

			body := http.MaxBytesReader(w, r.Body, maxBytes)
			r.Body = body
			defer func() {
				_, _ = io.CopyN(io.Discard, body, maxDrainBytes)
				_ = body.Close()
			}()

			next.ServeHTTP(w, r)
		})
	}
}
