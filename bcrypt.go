package accounts

import (
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// MinHashCost and MaxHashCost bound the configurable bcrypt work factor.
const (
	MinHashCost = bcrypt.MinCost
	MaxHashCost = bcrypt.MaxCost
)

// HashPassword generates a salted hash of password using the package
// cost constant. Each call produces a different hash for the same input.
func HashPassword(password string) (string, error) {
	return HashPasswordWithCost(password, passwordHashCost())
}

// HashPasswordWithCost is HashPassword with an explicit work factor.
func HashPasswordWithCost(password string, cost int) (string, error) {
	if password == "" {
		return "", ErrNoEmptyPassword
	}

	h, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	return string(h), err
}

// ComparePasswordAndHash validates that the given cleartext password
// matches the hashed password. Malformed hashes report a mismatch, they
// never panic.
func ComparePasswordAndHash(password, hash string) error {
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		return ErrMismatchedHashAndPassword
	}
	return nil
}

// RandomPasswordHash returns the hash of a random throwaway password,
// useful for seeding accounts that must not be signed into yet.
func RandomPasswordHash() string {
	pwd := uuid.New()

	h, err := HashPassword(pwd.String())
	if err != nil {
		return RandomPasswordHash()
	}

	return h
}
