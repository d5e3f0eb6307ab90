package credentials

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// HashVersionBcrypt tags stored hashes so the scheme can be migrated
// later without guessing from the hash format.
const HashVersionBcrypt = "bcrypt"

const minPasswordLength = 8

// HashPassword hashes a plaintext password with bcrypt at default cost.
func HashPassword(password string) (hash string, version string, err error) {
	if len(password) < minPasswordLength {
		return "", "", errors.New("password too short")
	}

	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", "", err
	}

	return string(bytes), HashVersionBcrypt, nil
}

// VerifyPassword compares a plaintext password with the stored hash.
func VerifyPassword(hash string, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
}
