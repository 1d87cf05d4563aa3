package posts

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"github.com/gosimple/slug"
)

// ErrEmptySlugText is returned when the slug source text is empty or
// whitespace-only.
var ErrEmptySlugText = errors.New("slug text must not be empty")

// CreateSlug derives a URL-safe identifier from free text: the text is
// transliterated and normalized to a lowercase hyphen-separated ASCII token,
// then an 8-hex-character random suffix is appended. The suffix makes two
// calls with identical text produce different slugs, so no deduplication
// against the datastore is needed; a 32-bit collision within one title is
// accepted as astronomically unlikely.
func CreateSlug(text string) (string, error) {
	if strings.TrimSpace(text) == "" {
		return "", ErrEmptySlugText
	}

	suffix := make([]byte, 4)
	if _, err := rand.Read(suffix); err != nil {
		return "", fmt.Errorf("failed to draw slug suffix: %w", err)
	}

	return slug.Make(text) + "-" + hex.EncodeToString(suffix), nil
}
