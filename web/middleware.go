package web

import (
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/drimcity/drimcity-go/apperror"
)

// RequestLogger returns middleware that attaches the logger to the request
// context and logs one structured line per request with the request id, so
// problem-details traceIds can be correlated to server logs.
func RequestLogger(logger zerolog.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()

			ctx := logger.WithContext(r.Context())
			next.ServeHTTP(ww, r.WithContext(ctx))

			logger.Info().
				Str("request_id", middleware.GetReqID(r.Context())).
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Int("status", ww.Status()).
				Int("bytes", ww.BytesWritten()).
				Dur("duration", time.Since(start)).
				Msg("request")
		})
	}
}

// Recoverer converts panics into a problem-details 500 response instead of a
// dropped connection.
func Recoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rvr := recover(); rvr != nil {
				zerolog.Ctx(r.Context()).Error().
					Interface("panic", rvr).
					Str("path", r.URL.Path).
					Msg("panic recovered")
				RespondError(w, r, apperror.NewInternalError("panic recovered", fmt.Errorf("%v", rvr)))
			}
		}()
		next.ServeHTTP(w, r)
	})
}
