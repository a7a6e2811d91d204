package gateway

import "strings"

// FormatBearerToken normalizes a stored auth token for an Authorization
// header. Idempotent: tokens already carrying the scheme pass through.
func FormatBearerToken(token string) string {
	if token == "" {
		return ""
	}
	if strings.HasPrefix(token, "Bearer ") {
		return token
	}
	return "Bearer " + token
}
