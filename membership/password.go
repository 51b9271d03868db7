package membership

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"

	"golang.org/x/crypto/argon2"
)

const (
	argonTime    = 1
	argonMemory  = 64 * 1024
	argonThreads = 4
	argonKeyLen  = 32
	saltLen      = 16
)

// NewSalt returns a fresh random salt for runtime registrations. Seed
// accounts use fixed salts instead so the generated dataset stays
// reproducible.
func NewSalt() ([]byte, error) {
	salt := make([]byte, saltLen)
	if _, err := rand.Read(salt); err != nil {
		return nil, fmt.Errorf("generate salt: %w", err)
	}
	return salt, nil
}

// HashPassword derives a base64-encoded Argon2id hash of password under
// salt.
func HashPassword(password string, salt []byte) string {
	hash := argon2.IDKey([]byte(password), salt, argonTime, argonMemory, argonThreads, argonKeyLen)
	return base64.StdEncoding.EncodeToString(hash)
}

// EncodeSalt renders a salt in the form it is stored in.
func EncodeSalt(salt []byte) string {
	return base64.StdEncoding.EncodeToString(salt)
}

// VerifyPassword re-derives the hash for password under the stored salt and
// compares it with the stored hash.
func VerifyPassword(password, encodedSalt, encodedHash string) (bool, error) {
	salt, err := base64.StdEncoding.DecodeString(encodedSalt)
	if err != nil {
		return false, fmt.Errorf("decode salt: %w", err)
	}
	return HashPassword(password, salt) == encodedHash, nil
}
