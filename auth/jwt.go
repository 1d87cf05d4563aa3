package auth

import (
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/drimcity/drimcity-go/config"
)

// Claims is the JWT payload carried by bearer tokens: the registered claims
// plus the account's login.
type Claims struct {
	Login string `json:"login"`
	jwt.RegisteredClaims
}

// JwtIssuer builds and signs time-bounded bearer tokens carrying account
// identity claims. Configuration is immutable after construction.
type JwtIssuer struct {
	cfg config.AuthConfig
}

// NewJwtIssuer creates a JwtIssuer. Key, issuer, audience and expiration are
// validated by config loading before this is ever called.
func NewJwtIssuer(cfg config.AuthConfig) *JwtIssuer {
	return &JwtIssuer{cfg: cfg}
}

// Generate signs an HS256 token for the given account. The subject claim is
// the account id, the login claim its login; issued-at is now and expiry is
// now plus the configured duration.
func (i *JwtIssuer) Generate(accountID int, login string) (string, error) {
	now := time.Now()
	claims := &Claims{
		Login: login,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.Itoa(accountID),
			Issuer:    i.cfg.JWTIssuer,
			Audience:  jwt.ClaimStrings{i.cfg.JWTAudience},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(i.cfg.JWTExpiration)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(i.cfg.JWTKey))
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}
