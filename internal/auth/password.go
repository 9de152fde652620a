// Package auth provides credential handling for the booking API: bcrypt
// password hashing and JWT session tokens.
//
// The registration endpoint stores only a bcrypt hash; never the plaintext.
// bcrypt generates a random salt per hash and embeds it in the output, so no
// separate salt column is needed, and CompareHashAndPassword verifies in
// constant time, so login timing does not leak which byte of the password was
// wrong.
package auth

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// defaultCost is the bcrypt work factor. Cost 12 takes roughly 250ms on a
// modern server; negligible for a login, expensive for a brute-forcer.
const defaultCost = 12

// PasswordService provides bcrypt hashing and verification.
//
// It's a struct (not free functions) so the cost can be injected in tests;
// cost 4 (the library minimum) makes each hash take microseconds instead of
// ~250ms without changing the logic under test.
type PasswordService struct {
	cost int
}

// NewPasswordService creates a PasswordService with the default cost (12).
func NewPasswordService() *PasswordService {
	return &PasswordService{cost: defaultCost}
}

// newPasswordServiceWithCost creates a PasswordService with a custom cost.
// Unexported helper used by the tests in this package.
func newPasswordServiceWithCost(cost int) *PasswordService {
	return &PasswordService{cost: cost}
}

// NewPasswordServiceForTest creates a PasswordService with a low bcrypt cost
// for use in tests in other packages. Do NOT use in production.
func NewPasswordServiceForTest(cost int) *PasswordService {
	return &PasswordService{cost: cost}
}

// Hash hashes the given plaintext password with bcrypt.
//
// The output is self-contained ($2a$12$<salt><hash>) and is stored directly
// in the users table. Returns an error for plaintext longer than 72 bytes;
// bcrypt silently truncates beyond that, so we reject instead of surprising
// the caller.
func (p *PasswordService) Hash(plaintext string) (string, error) {
	if len(plaintext) > 72 {
		return "", fmt.Errorf("auth: password must be 72 bytes or fewer")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(plaintext), p.cost)
	if err != nil {
		return "", fmt.Errorf("auth: hashing password: %w", err)
	}

	return string(hashed), nil
}

// Verify checks whether a plaintext password matches a stored bcrypt hash.
// Returns nil on match. The comparison is constant-time.
func (p *PasswordService) Verify(hash, plaintext string) error {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(plaintext))
	if err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return fmt.Errorf("auth: invalid password")
		}
		return fmt.Errorf("auth: comparing password hash: %w", err)
	}
	return nil
}

// DummyVerify burns one bcrypt comparison against a throwaway hash.
//
// Called on login when the username does not exist, so that unknown-user and
// wrong-password failures take the same time. Without this, an attacker could
// enumerate usernames by measuring response latency.
func (p *PasswordService) DummyVerify() {
	// Hash of "dummy" at cost 12. The result is always a mismatch; only the
	// time spent matters.
	const dummyHash = "$2a$12$R9h/cIPz0gi.URNNX3kh2OPST9/PgBkqquzi.Ss7KIUgO2t0jWMUW"
	_ = bcrypt.CompareHashAndPassword([]byte(dummyHash), []byte("burn-time"))
}
