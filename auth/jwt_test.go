package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/drimcity/drimcity-go/config"
)

func testAuthConfig() config.AuthConfig {
	return config.AuthConfig{
		JWTKey:        "test-signing-key-with-enough-entropy",
		JWTIssuer:     "drimcity",
		JWTAudience:   "drimcity-api",
		JWTExpiration: time.Hour,
	}
}

func parseClaims(t *testing.T, cfg config.AuthConfig, signed string) *Claims {
	t.Helper()
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(signed, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte(cfg.JWTKey), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	require.NoError(t, err)
	require.True(t, token.Valid)
	return claims
}

func TestGenerateCarriesIdentityClaims(t *testing.T) {
	cfg := testAuthConfig()
	issuer := NewJwtIssuer(cfg)

	signed, err := issuer.Generate(42, "sam")
	require.NoError(t, err)

	claims := parseClaims(t, cfg, signed)
	assert.Equal(t, "42", claims.Subject)
	assert.Equal(t, "sam", claims.Login)
	assert.Equal(t, "drimcity", claims.Issuer)
	assert.Equal(t, jwt.ClaimStrings{"drimcity-api"}, claims.Audience)
}

func TestGenerateBoundsTokenLifetime(t *testing.T) {
	cfg := testAuthConfig()
	issuer := NewJwtIssuer(cfg)

	before := time.Now().Add(-time.Second)
	signed, err := issuer.Generate(1, "sam")
	require.NoError(t, err)
	after := time.Now().Add(time.Second)

	claims := parseClaims(t, cfg, signed)
	require.NotNil(t, claims.IssuedAt)
	require.NotNil(t, claims.ExpiresAt)
	assert.True(t, claims.IssuedAt.After(before))
	assert.True(t, claims.IssuedAt.Before(after))
	assert.Equal(t, time.Hour, claims.ExpiresAt.Sub(claims.IssuedAt.Time))
}

func TestGenerateRejectsTamperedSignature(t *testing.T) {
	cfg := testAuthConfig()
	issuer := NewJwtIssuer(cfg)

	signed, err := issuer.Generate(1, "sam")
	require.NoError(t, err)

	tampered := signed + "x"
	_, err = jwt.ParseWithClaims(tampered, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		return []byte(cfg.JWTKey), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	assert.Error(t, err)
}

func protectedHandler(t *testing.T, cfg config.AuthConfig) http.Handler {
	t.Helper()
	return Middleware(&cfg)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		identity, ok := IdentityFromContext(r.Context())
		require.True(t, ok)
		w.Header().Set("X-Account-Id", identity.Login)
		w.WriteHeader(http.StatusNoContent)
	}))
}

func TestMiddlewareAcceptsIssuedToken(t *testing.T) {
	cfg := testAuthConfig()
	signed, err := NewJwtIssuer(cfg).Generate(7, "sam")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/posts", nil)
	req.Header.Set("Authorization", "Bearer "+signed)
	rec := httptest.NewRecorder()
	protectedHandler(t, cfg).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "sam", rec.Header().Get("X-Account-Id"))
}

func TestMiddlewareRejectsBadTokens(t *testing.T) {
	cfg := testAuthConfig()
	signed, err := NewJwtIssuer(cfg).Generate(7, "sam")
	require.NoError(t, err)

	otherIssuer := testAuthConfig()
	otherIssuer.JWTIssuer = "someone-else"
	wrongIssuer, err := NewJwtIssuer(otherIssuer).Generate(7, "sam")
	require.NoError(t, err)

	expiredCfg := testAuthConfig()
	expiredCfg.JWTExpiration = -time.Hour
	expired, err := NewJwtIssuer(expiredCfg).Generate(7, "sam")
	require.NoError(t, err)

	wrongKeyCfg := testAuthConfig()
	wrongKeyCfg.JWTKey = "some-other-signing-key"
	wrongKey, err := NewJwtIssuer(wrongKeyCfg).Generate(7, "sam")
	require.NoError(t, err)

	cases := []struct {
		name   string
		header string
	}{
		{"missing header", ""},
		{"not bearer", "Basic " + signed},
		{"garbage token", "Bearer not.a.token"},
		{"tampered", "Bearer " + signed + "x"},
		{"wrong issuer", "Bearer " + wrongIssuer},
		{"expired", "Bearer " + expired},
		{"wrong key", "Bearer " + wrongKey},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/posts", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			rec := httptest.NewRecorder()
			protectedHandler(t, cfg).ServeHTTP(rec, req)

			assert.Equal(t, http.StatusUnauthorized, rec.Code)
		})
	}
}
