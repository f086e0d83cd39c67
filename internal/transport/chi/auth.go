package chi

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/kailas-cloud/shopsense/internal/logger"
)

const (
	bearerPrefix  = "Bearer "
	catalogPath   = "/api/products"
	authChallenge = `Bearer realm="shopsense"`
)

// operationalPaths never require a key.
var operationalPaths = map[string]struct{}{
	"/health":  {},
	"/metrics": {},
}

// AuthConfig controls API key protection.
type AuthConfig struct {
	// APIKeys are the accepted bearer tokens. None disables authentication.
	APIKeys []string
	// PublicCatalog leaves catalog reads (GET /api/products...) open to
	// storefront clients; search, recommendations, tracking and chat still need a key.
	PublicCatalog bool
}

// BearerAuth returns a middleware that validates Bearer tokens.
// CORS preflight requests pass through unauthenticated.
func BearerAuth(cfg AuthConfig) func(http.Handler) http.Handler {
	keys := make([][]byte, 0, len(cfg.APIKeys))
	for _, k := range cfg.APIKeys {
		if k != "" {
			keys = append(keys, []byte(k))
		}
	}

	return func(next http.Handler) http.Handler {
		if len(keys) == 0 {
			return next
		}

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if isPublic(r, cfg.PublicCatalog) {
				next.ServeHTTP(w, r)
				return
			}

			auth := r.Header.Get("Authorization")
			switch {
			case auth == "":
				reject(w, r, "missing authorization header")
			case !strings.HasPrefix(auth, bearerPrefix):
				reject(w, r, "authorization header must use Bearer scheme")
			case !knownKey(keys, []byte(auth[len(bearerPrefix):])):
				reject(w, r, "invalid api key")
			default:
				next.ServeHTTP(w, r)
			}
		})
	}
}

func isPublic(r *http.Request, publicCatalog bool) bool {
	if r.Method == http.MethodOptions {
		return true
	}
	if _, ok := operationalPaths[r.URL.Path]; ok {
		return true
	}
	if !publicCatalog || (r.Method != http.MethodGet && r.Method != http.MethodHead) {
		return false
	}
	return r.URL.Path == catalogPath || strings.HasPrefix(r.URL.Path, catalogPath+"/")
}

// knownKey compares token against every key in constant time.
func knownKey(keys [][]byte, token []byte) bool {
	found := 0
	for _, k := range keys {
		found |= subtle.ConstantTimeCompare(k, token)
	}
	return found == 1
}

func reject(w http.ResponseWriter, r *http.Request, reason string) {
	logger.FromContext(r.Context()).Debug("API request rejected",
		zap.String("reason", reason),
		zap.String("path", r.URL.Path),
	)
	w.Header().Set("WWW-Authenticate", authChallenge)
	writeError(w, http.StatusUnauthorized, CodeUnauthorized, reason)
}
