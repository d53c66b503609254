package middleware

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// AdminClaims extends RegisteredClaims with the role claim the admin
// surface requires.
type AdminClaims struct {
	Role string `json:"role,omitempty"`
	jwt.RegisteredClaims
}

// AdminAuth returns a middleware that validates HMAC-signed bearer tokens
// for the admin endpoints. It checks the signing method, the token
// expiration and issuer (`iss`), and requires the admin role claim.
func AdminAuth(secret []byte, expectedIssuer string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			auth := r.Header.Get("Authorization")
			if auth == "" {
				writeUnauthorized(w, "missing Authorization header")
				return
			}
			parts := strings.Fields(auth)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
				writeUnauthorized(w, "invalid Authorization header format")
				return
			}
			tokenStr := parts[1]

			var claims AdminClaims
			token, err := jwt.ParseWithClaims(tokenStr, &claims, func(t *jwt.Token) (interface{}, error) {
				// enforce HMAC
				if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
				}
				return secret, nil
			})
			if err != nil {
				writeUnauthorized(w, "invalid token")
				return
			}
			if !token.Valid {
				writeUnauthorized(w, "invalid token")
				return
			}

			if claims.ExpiresAt == nil {
				writeUnauthorized(w, "token missing exp claim")
				return
			}
			if time.Now().After(claims.ExpiresAt.Time) {
				writeUnauthorized(w, "token is expired")
				return
			}
			if expectedIssuer != "" && claims.Issuer != expectedIssuer {
				writeUnauthorized(w, "invalid token issuer")
				return
			}
			if claims.Role != "admin" {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusForbidden)
				_ = json.NewEncoder(w).Encode(map[string]string{"error": "admin role required"})
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func writeUnauthorized(w http.ResponseWriter, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
