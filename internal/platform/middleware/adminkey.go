package middleware

import (
	"log/slog"
	"net/http"

	"golang.org/x/crypto/bcrypt"

	"kyc-gateway/pkg/requestcontext"
)

const adminKeyHeader = "X-Admin-Key"

// RequireAdminKey gates provider intake endpoints behind the shared operator
// key. The configured value is a bcrypt hash, so a leaked config never yields
// the key itself. An empty hash disables the endpoints entirely rather than
// leaving them open.
func RequireAdminKey(keyHash string, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if keyHash == "" {
				unauthorized(w)
				return
			}
			key := r.Header.Get(adminKeyHeader)
			if key == "" {
				unauthorized(w)
				return
			}
			if err := bcrypt.CompareHashAndPassword([]byte(keyHash), []byte(key)); err != nil {
				logger.WarnContext(r.Context(), "admin key rejected",
					"request_id", requestcontext.RequestID(r.Context()),
				)
				unauthorized(w)
				return
			}
			next.ServeHTTP(w, r.WithContext(requestcontext.WithAdmin(r.Context())))
		})
	}
}
