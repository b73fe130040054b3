package auth

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

const (
	maxBcryptCost = 14
	// bcrypt only reads the first 72 bytes of its input.
	maxPasswordBytes = 72
)

// ErrPasswordTooLong is returned by Hash when the password and pepper exceed
// what bcrypt can hash.
var ErrPasswordTooLong = errors.New("password too long")

// Passwords hashes and verifies user passwords with bcrypt and an optional
// global pepper.
type Passwords struct {
	cost   int
	pepper string
}

// NewPasswords validates cost and returns a Passwords.
func NewPasswords(cost int, pepper string) (*Passwords, error) {
	if cost < bcrypt.MinCost || cost > maxBcryptCost {
		return nil, fmt.Errorf("bcrypt cost out of range: %d (must be %d-%d)", cost, bcrypt.MinCost, maxBcryptCost)
	}
	return &Passwords{cost: cost, pepper: pepper}, nil
}

// MaxPasswordBytes is the longest password, in bytes, Hash accepts.
func (p *Passwords) MaxPasswordBytes() int {
	return maxPasswordBytes - len(p.pepper)
}

// Hash returns the bcrypt hash of pw.
func (p *Passwords) Hash(pw string) (string, error) {
	if len(pw) > p.MaxPasswordBytes() {
		return "", fmt.Errorf("%w: at most %d bytes", ErrPasswordTooLong, p.MaxPasswordBytes())
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(pw+p.pepper), p.cost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

// Verify reports whether pw matches storedHash.
func (p *Passwords) Verify(pw, storedHash string) bool {
	if storedHash == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(storedHash), []byte(pw+p.pepper)) == nil
}
