package auth

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/drimcity/drimcity-go/config"
)

// Low cost parameters keep the tests fast; the encoding and verification
// logic is independent of the cost.
func testHasher() *PasswordHasher {
	return NewPasswordHasher(config.PasswordHashConfig{
		HashLength:  32,
		SaltLength:  16,
		TimeCost:    1,
		MemoryCost:  8 * 1024,
		Parallelism: 1,
	})
}

func TestHashVerifyRoundTrip(t *testing.T) {
	h := testHasher()

	encoded, err := h.Hash("Str0ng!Password")
	require.NoError(t, err)

	assert.True(t, h.Verify("Str0ng!Password", encoded))
}

func TestVerifyRejectsWrongPassword(t *testing.T) {
	h := testHasher()

	encoded, err := h.Hash("Str0ng!Password")
	require.NoError(t, err)

	assert.False(t, h.Verify("Wr0ng!Password", encoded))
	assert.False(t, h.Verify("", encoded))
}

func TestHashEncodedForm(t *testing.T) {
	h := testHasher()

	encoded, err := h.Hash("Str0ng!Password")
	require.NoError(t, err)

	parts := strings.Split(encoded, "$")
	require.Len(t, parts, 6)
	assert.Empty(t, parts[0])
	assert.Equal(t, "argon2id", parts[1])
	assert.Equal(t, "v=19", parts[2])
	assert.Equal(t, "m=8192,t=1,p=1", parts[3])
	assert.NotEmpty(t, parts[4])
	assert.NotEmpty(t, parts[5])
}

func TestHashSaltsEveryCall(t *testing.T) {
	h := testHasher()

	first, err := h.Hash("Str0ng!Password")
	require.NoError(t, err)
	second, err := h.Hash("Str0ng!Password")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
	assert.True(t, h.Verify("Str0ng!Password", first))
	assert.True(t, h.Verify("Str0ng!Password", second))
}

func TestVerifyUsesEmbeddedParameters(t *testing.T) {
	expensive := NewPasswordHasher(config.PasswordHashConfig{
		HashLength:  32,
		SaltLength:  16,
		TimeCost:    2,
		MemoryCost:  16 * 1024,
		Parallelism: 2,
	})

	encoded, err := expensive.Hash("Str0ng!Password")
	require.NoError(t, err)

	// A hasher configured differently still verifies the encoding because
	// the cost parameters travel inside it.
	assert.True(t, testHasher().Verify("Str0ng!Password", encoded))
}

func TestVerifyFailsClosedOnMalformedEncodings(t *testing.T) {
	h := testHasher()

	encoded, err := h.Hash("Str0ng!Password")
	require.NoError(t, err)
	parts := strings.Split(encoded, "$")

	malformed := []struct {
		name    string
		encoded string
	}{
		{"empty", ""},
		{"not a hash", "hunter2"},
		{"wrong algorithm", strings.Replace(encoded, "argon2id", "argon2i", 1)},
		{"wrong version", strings.Replace(encoded, "v=19", "v=18", 1)},
		{"missing segment", strings.Join(parts[:5], "$")},
		{"extra segment", encoded + "$extra"},
		{"bad parameters", strings.Replace(encoded, parts[3], "m=oops", 1)},
		{"zero time cost", strings.Replace(encoded, parts[3], "m=8192,t=0,p=1", 1)},
		{"bad salt base64", strings.Replace(encoded, parts[4], "!!!!", 1)},
		{"bad key base64", strings.Replace(encoded, parts[5], "!!!!", 1)},
	}
	for _, tc := range malformed {
		t.Run(tc.name, func(t *testing.T) {
			assert.False(t, h.Verify("Str0ng!Password", tc.encoded))
		})
	}
}
