// Package accounts holds the account domain model, its datastore access and
// the public account profile endpoint.
package accounts

import "time"

// Login and password bounds enforced by request validation.
const (
	LoginMinLength    = 3
	LoginMaxLength    = 32
	PasswordMinLength = 8
	PasswordMaxLength = 512
)

// Account is an identity with a unique, case-insensitive login. The login is
// normalized to lowercase before any comparison or storage; the password hash
// is an opaque encoded string owned by the auth package. Accounts are
// immutable after creation.
type Account struct {
	ID           int       `json:"id"`
	Login        string    `json:"login"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
}
