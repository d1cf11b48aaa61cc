package middleware

import (
	"net/http"
	"strings"

	"github.com/mockaps/mockaps/pkg/httputil"
	"github.com/mockaps/mockaps/pkg/state"
)

// TokenEndpointPath is exempt from authentication so clients can obtain a
// token in the first place.
const TokenEndpointPath = "/authentication/v2/token"

// authExemptPaths are served without a bearer token.
var authExemptPaths = map[string]bool{
	TokenEndpointPath: true,
	"/metrics":        true,
}

// AuthMiddleware validates Bearer tokens on every request except the token
// endpoint. auth may be nil (stateless mode), in which case any bearer
// token is accepted.
type AuthMiddleware struct {
	auth *state.AuthStore
}

// NewAuthMiddleware creates the authentication gate. Pass nil for
// stateless mode.
func NewAuthMiddleware(auth *state.AuthStore) *AuthMiddleware {
	return &AuthMiddleware{auth: auth}
}

// Handler wraps an HTTP handler with the bearer-token check.
func (m *AuthMiddleware) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if authExemptPaths[r.URL.Path] {
			next.ServeHTTP(w, r)
			return
		}

		token, ok := bearerToken(r)
		if !ok {
			httputil.WriteAuthError(w, "Missing or malformed Authorization header. Expected: Bearer <token>")
			return
		}

		if m.auth != nil && !m.auth.ValidateToken(token) {
			httputil.WriteAuthError(w, "The access token provided is invalid or has expired.")
			return
		}

		next.ServeHTTP(w, r)
	})
}

// bearerToken extracts the token from an "Authorization: Bearer <token>"
// header.
func bearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	token, found := strings.CutPrefix(header, "Bearer ")
	if !found {
		return "", false
	}
	return token, true
}
