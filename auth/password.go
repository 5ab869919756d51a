package auth

import "golang.org/x/crypto/bcrypt"

// DefaultCost matches the work factor accounts are created with.
const DefaultCost = 10

// bcrypt only reads the first 72 bytes of a password.
const maxPasswordBytes = 72

// PasswordHasher hashes and verifies passwords one way.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash, password string) error
}

type BcryptHasher struct {
	Cost int
}

func NewBcryptHasher(cost int) *BcryptHasher {
	return &BcryptHasher{Cost: cost}
}

func (h *BcryptHasher) Hash(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword(truncate(password), h.Cost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// Compare returns nil on a match.
func (h *BcryptHasher) Compare(hash, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), truncate(password))
}

// truncate keeps passwords longer than 72 bytes usable; GenerateFromPassword
// rejects them instead of ignoring the tail.
func truncate(password string) []byte {
	b := []byte(password)
	if len(b) > maxPasswordBytes {
		b = b[:maxPasswordBytes]
	}
	return b
}
