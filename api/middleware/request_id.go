package middleware

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/alunakitchen/pickup-backend/pkg/logger"
)

const requestIDHeader = "X-Request-Id"

// RequestID ensures every request carries an identifier, echoing it back in
// the response and stamping it on the context for log correlation.
func RequestID(logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			requestID := r.Header.Get(requestIDHeader)
			if requestID == "" {
				requestID = uuid.NewString()
			}

			w.Header().Set(requestIDHeader, requestID)
			ctx := logg.WithRequestID(r.Context(), requestID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
