package web

import (
	"log/slog"
	"net/http"
	"time"
)

// responseRecorder remembers what a handler sent so the access log can
// report it.
type responseRecorder struct {
	http.ResponseWriter
	status int
	bytes  int
}

func (rr *responseRecorder) WriteHeader(code int) {
	rr.status = code
	rr.ResponseWriter.WriteHeader(code)
}

func (rr *responseRecorder) Write(b []byte) (int, error) {
	n, err := rr.ResponseWriter.Write(b)
	rr.bytes += n
	return n, err
}

func (rr *responseRecorder) Unwrap() http.ResponseWriter {
	return rr.ResponseWriter
}

// requestLogger writes one access line per request. Lookups carry the
// station as typed so rejected input shows up in the log; server errors are
// logged at error level.
func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		rr := &responseRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rr, r)

		attrs := []slog.Attr{
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.Int("status", rr.status),
			slog.Int("bytes", rr.bytes),
			slog.Int64("duration_ms", time.Since(start).Milliseconds()),
		}
		// Only read the form a handler already parsed.
		if r.Form != nil {
			if input := stationInput(r); input != "" {
				attrs = append(attrs, slog.String("station", input))
			}
		}

		level := slog.LevelInfo
		if rr.status >= http.StatusInternalServerError {
			level = slog.LevelError
		}
		slog.LogAttrs(r.Context(), level, "http request", attrs...)
	})
}
