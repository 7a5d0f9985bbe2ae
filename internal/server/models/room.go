// Package models defines server-side data models persisted in the table store.
package models

import "time"

// Room is a password-protected space files are shared in. Name is the
// lookup key; passwords are stored as produced by the configured
// auth.PasswordChecker (plaintext by default).
type Room struct {
	ID             string
	Name           string
	AccessPassword string
	DeletePassword string
	CreatedAt      time.Time
}
