package server

import (
	"crypto/subtle"
	"fmt"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"github.com/assetdesk/assetdesk/internal/config"
	"github.com/assetdesk/assetdesk/internal/server/dto"
	"github.com/assetdesk/assetdesk/internal/server/ratelimit"
	"github.com/assetdesk/assetdesk/internal/utils"
)

// publicEndpoints are reachable without a bearer token. The health probe and
// the public contact form stay open; everything else under /api/ is gated.
func isPublic(r *http.Request) bool {
	if !strings.HasPrefix(r.URL.Path, "/api/") {
		return true
	}
	if r.URL.Path == "/api/health" {
		return true
	}
	if r.URL.Path == "/api/contact" && r.Method == http.MethodPost {
		return true
	}
	return false
}

// AuthMiddleware validates the Authorization bearer credential. A request is
// accepted with either a configured API token or an HMAC JWT signed with the
// gate secret.
func AuthMiddleware(cfg *config.Config) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if isPublic(r) {
				next.ServeHTTP(w, r)
				return
			}

			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				utils.RespondError(w, dto.Unauthorized())
				return
			}

			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || parts[0] != "Bearer" {
				utils.RespondError(w, dto.Unauthorized())
				return
			}

			credential := parts[1]
			for _, token := range cfg.APITokens {
				if subtle.ConstantTimeCompare([]byte(credential), []byte(token)) == 1 {
					next.ServeHTTP(w, r)
					return
				}
			}

			token, err := jwt.Parse(credential, func(token *jwt.Token) (any, error) {
				if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
				}
				return cfg.GateSecret, nil
			})
			if err != nil || !token.Valid {
				utils.RespondError(w, dto.Unauthorized())
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// RateLimitMiddleware limits mutating requests per client address. Reads are
// never limited.
func RateLimitMiddleware(limiter *ratelimit.Limiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			switch r.Method {
			case http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodPatch:
			default:
				next.ServeHTTP(w, r)
				return
			}

			result := limiter.Allow(clientIP(r))
			ratelimit.WriteHeaders(w, result)
			if !result.Allowed {
				utils.RespondError(w, dto.RateLimitExceeded(int(result.RetryAfter.Seconds())))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
