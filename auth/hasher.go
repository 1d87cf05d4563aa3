// Package auth implements password hashing, token issuance and bearer-token
// verification, plus the account creation and authentication endpoints.
package auth

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"fmt"
	"strings"

	"golang.org/x/crypto/argon2"

	"github.com/drimcity/drimcity-go/config"
)

// PasswordHasher derives and verifies salted Argon2id password hashes. It
// holds only immutable cost parameters after construction; all per-call state
// is local, so a single instance is safe for concurrent use.
type PasswordHasher struct {
	cfg config.PasswordHashConfig
}

// NewPasswordHasher creates a PasswordHasher with the given cost parameters.
func NewPasswordHasher(cfg config.PasswordHashConfig) *PasswordHasher {
	return &PasswordHasher{cfg: cfg}
}

// Hash derives a hash of password with a fresh random salt and returns it in
// the standard encoded form:
//
//	$argon2id$v=19$m=65536,t=4,p=4$<base64 salt>$<base64 hash>
//
// The encoding is self-describing: Verify needs nothing beyond this string and
// the plaintext password. Hashing the same password twice yields different
// encodings because the salt is drawn anew on every call.
func (h *PasswordHasher) Hash(password string) (string, error) {
	salt := make([]byte, h.cfg.SaltLength)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("failed to draw salt: %w", err)
	}

	key := argon2.IDKey(
		[]byte(password),
		salt,
		uint32(h.cfg.TimeCost),
		uint32(h.cfg.MemoryCost),
		uint8(h.cfg.Parallelism),
		uint32(h.cfg.HashLength),
	)

	encoded := fmt.Sprintf(
		"$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version,
		h.cfg.MemoryCost,
		h.cfg.TimeCost,
		h.cfg.Parallelism,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(key),
	)

	return encoded, nil
}

// Verify reports whether password matches the encoded hash. It re-derives the
// key using the cost parameters embedded in the encoding and compares in
// constant time. Verification fails closed: a malformed encoding, a wrong
// password or a tampered hash all return false.
func (h *PasswordHasher) Verify(password, encoded string) bool {
	salt, key, timeCost, memoryCost, parallelism, ok := decodeHash(encoded)
	if !ok {
		return false
	}

	derived := argon2.IDKey([]byte(password), salt, timeCost, memoryCost, parallelism, uint32(len(key)))

	return subtle.ConstantTimeCompare(key, derived) == 1
}

// decodeHash parses the 6-part encoded form. The leading '$' yields an empty
// first segment, so a well-formed encoding splits into exactly 6 parts.
func decodeHash(encoded string) (salt, key []byte, timeCost, memoryCost uint32, parallelism uint8, ok bool) {
	parts := strings.Split(encoded, "$")
	if len(parts) != 6 || parts[0] != "" || parts[1] != "argon2id" {
		return nil, nil, 0, 0, 0, false
	}

	var version int
	if _, err := fmt.Sscanf(parts[2], "v=%d", &version); err != nil || version != argon2.Version {
		return nil, nil, 0, 0, 0, false
	}

	var m, t, p uint32
	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &m, &t, &p); err != nil {
		return nil, nil, 0, 0, 0, false
	}
	if t == 0 || m == 0 || p == 0 || p > 255 {
		return nil, nil, 0, 0, 0, false
	}

	salt, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		return nil, nil, 0, 0, 0, false
	}
	key, err = base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil || len(key) == 0 {
		return nil, nil, 0, 0, 0, false
	}

	return salt, key, t, m, uint8(p), true
}
