package chi

import (
	"net/http"
	"strings"
)

// publicPaths bypass authentication so probes and scrapers need no key.
var publicPaths = map[string]struct{}{
	"/healthz": {},
	"/metrics": {},
}

// APIKeyMiddleware requires "Authorization: Bearer <key>" on catalog routes.
// With no non-empty keys configured the catalog stays public and the middleware is a no-op.
func APIKeyMiddleware(apiKeys []string) func(http.Handler) http.Handler {
	keys := make(map[string]struct{}, len(apiKeys))
	for _, k := range apiKeys {
		if k != "" {
			keys[k] = struct{}{}
		}
	}

	return func(next http.Handler) http.Handler {
		if len(keys) == 0 {
			return next
		}

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if _, ok := publicPaths[r.URL.Path]; ok {
				next.ServeHTTP(w, r)
				return
			}

			token, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
			if !ok || token == "" {
				writeError(w, http.StatusUnauthorized, ErrorCodeUnauthorized, "missing bearer token")
				return
			}
			if _, ok := keys[token]; !ok {
				writeError(w, http.StatusUnauthorized, ErrorCodeUnauthorized, "invalid api key")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
