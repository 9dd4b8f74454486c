package middleware

import (
	"fmt"
	"net/http"
	"time"

	chimiddleware "github.com/go-chi/chi/v5/middleware"
)

// Logger logs one line per request with status, size and latency
func Logger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()

		defer func() {
			reqID := chimiddleware.GetReqID(r.Context())
			fmt.Printf("[HTTP] %s %s %d %dB %v req=%s\n",
				r.Method, r.URL.RequestURI(), ww.Status(), ww.BytesWritten(), time.Since(start).Round(time.Microsecond), reqID)
		}()

		next.ServeHTTP(ww, r)
	})
}
