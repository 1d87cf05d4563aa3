package posts

import (
	"encoding/base64"
	"errors"

	"google.golang.org/protobuf/encoding/protowire"
)

// PageCursor is the opaque pagination cursor handed to clients as a string
// token. It currently carries a single record offset; the wire encoding is
// field-tagged, so fields can be added without breaking outstanding tokens.
type PageCursor struct {
	Skip int
}

// cursorSkipField is the wire tag for Skip. Tags are never reused.
const cursorSkipField = 1

// ErrMalformedToken is returned when a page token cannot be decoded.
var ErrMalformedToken = errors.New("malformed page token")

// EncodeCursor serializes the cursor to protobuf wire format and wraps it in
// unpadded base64url for transport as a query parameter.
func EncodeCursor(c PageCursor) string {
	var buf []byte
	buf = protowire.AppendTag(buf, cursorSkipField, protowire.VarintType)
	buf = protowire.AppendVarint(buf, uint64(c.Skip))
	return base64.RawURLEncoding.EncodeToString(buf)
}

// DecodeCursor reverses EncodeCursor. Unknown fields are skipped so newer
// tokens still decode; invalid base64 or wire data yields ErrMalformedToken.
func DecodeCursor(token string) (PageCursor, error) {
	raw, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil {
		return PageCursor{}, ErrMalformedToken
	}

	var c PageCursor
	for len(raw) > 0 {
		num, typ, n := protowire.ConsumeTag(raw)
		if n < 0 {
			return PageCursor{}, ErrMalformedToken
		}
		raw = raw[n:]

		if num == cursorSkipField && typ == protowire.VarintType {
			v, n := protowire.ConsumeVarint(raw)
			if n < 0 {
				return PageCursor{}, ErrMalformedToken
			}
			c.Skip = int(v)
			raw = raw[n:]
			continue
		}

		n = protowire.ConsumeFieldValue(num, typ, raw)
		if n < 0 {
			return PageCursor{}, ErrMalformedToken
		}
		raw = raw[n:]
	}

	if c.Skip < 0 {
		return PageCursor{}, ErrMalformedToken
	}
	return c, nil
}
