// Package auth contains room password checks and the signed session token.
package auth

import (
	"crypto/subtle"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// PasswordChecker turns an entered password into its stored form and
// compares a candidate against a stored value. It is the only place room
// and delete passwords are compared.
type PasswordChecker interface {
	Prepare(password string) (string, error)
	Check(stored, candidate string) bool
}

// PlainChecker stores passwords as entered and compares them in constant
// time. Stored values are readable by anyone with table access.
type PlainChecker struct{}

func (PlainChecker) Prepare(password string) (string, error) { return password, nil }

func (PlainChecker) Check(stored, candidate string) bool {
	return subtle.ConstantTimeCompare([]byte(stored), []byte(candidate)) == 1
}

// BcryptChecker stores bcrypt hashes.
type BcryptChecker struct {
	Cost int
}

func (c BcryptChecker) Prepare(password string) (string, error) {
	cost := c.Cost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

func (BcryptChecker) Check(stored, candidate string) bool {
	return bcrypt.CompareHashAndPassword([]byte(stored), []byte(candidate)) == nil
}

// NewPasswordChecker returns the checker for a config password scheme.
func NewPasswordChecker(scheme string) (PasswordChecker, error) {
	switch scheme {
	case "", "plain":
		return PlainChecker{}, nil
	case "bcrypt":
		return BcryptChecker{}, nil
	default:
		return nil, fmt.Errorf("unknown password scheme %q", scheme)
	}
}
