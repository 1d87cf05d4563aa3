package auth

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"github.com/drimcity/drimcity-go/apperror"
	"github.com/drimcity/drimcity-go/config"
	"github.com/drimcity/drimcity-go/web"
)

// Identity is the authenticated caller extracted from a verified bearer token.
type Identity struct {
	AccountID int
	Login     string
}

type contextKey string

const identityContextKey contextKey = "auth_identity"

// IdentityFromContext retrieves the authenticated identity placed in the
// request context by Middleware.
func IdentityFromContext(ctx context.Context) (Identity, bool) {
	identity, ok := ctx.Value(identityContextKey).(Identity)
	return identity, ok
}

// Middleware verifies the Authorization bearer token and places the caller's
// identity in the request context. Issuer, audience, lifetime and signature
// are all validated; any failure yields 401 with no further detail.
func Middleware(cfg *config.AuthConfig) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				web.RespondError(w, r, apperror.NewUnauthorizedError("Authorization header is missing", nil))
				return
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				web.RespondError(w, r, apperror.NewUnauthorizedError("Authorization header format must be Bearer {token}", nil))
				return
			}

			claims := &Claims{}
			token, err := jwt.ParseWithClaims(parts[1], claims,
				func(token *jwt.Token) (interface{}, error) {
					return []byte(cfg.JWTKey), nil
				},
				jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
				jwt.WithIssuer(cfg.JWTIssuer),
				jwt.WithAudience(cfg.JWTAudience),
				jwt.WithExpirationRequired(),
			)
			if err != nil || !token.Valid {
				web.RespondError(w, r, apperror.NewUnauthorizedError("Invalid token", err))
				return
			}

			accountID, err := strconv.Atoi(claims.Subject)
			if err != nil || accountID <= 0 || claims.Login == "" {
				web.RespondError(w, r, apperror.NewUnauthorizedError("Invalid identity claims", err))
				return
			}

			identity := Identity{AccountID: accountID, Login: claims.Login}
			ctx := context.WithValue(r.Context(), identityContextKey, identity)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
