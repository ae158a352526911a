package middleware

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

// Auth guards ops endpoints with a bearer token signed with the shared
// secret. When no secret is configured the guard is a pass-through so local
// runs need no token plumbing.
func (m *Middleware) Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if m.jwtSecret == "" {
			next.ServeHTTP(w, r)
			return
		}

		header := r.Header.Get("Authorization")
		if header == "" {
			unauthorizedResponse(w, "missing authorization header")
			return
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			unauthorizedResponse(w, "invalid authorization header format")
			return
		}

		token, err := jwt.Parse(parts[1], func(t *jwt.Token) (any, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
			}
			return []byte(m.jwtSecret), nil
		})
		if err != nil || !token.Valid {
			m.log.Warn(r.Context(), "rejected ops request with invalid token", "path", r.URL.Path)
			unauthorizedResponse(w, "invalid or expired token")
			return
		}

		next.ServeHTTP(w, r)
	})
}
