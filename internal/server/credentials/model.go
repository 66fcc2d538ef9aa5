// Package credentials stores the durable email → credential record mapping
// behind a small repository interface with interchangeable drivers.
package credentials

import "time"

// Credential is the stored association between an email and a password hash.
// Records are created once on signup and never mutated or deleted.
type Credential struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"password_hash"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
