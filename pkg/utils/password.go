package utils

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"strings"

	"golang.org/x/crypto/argon2"
)

var ErrPasswordMismatch = errors.New("password does not match")

// PasswordHasher abstracts the stored digest format so call sites never
// depend on the concrete scheme.
type PasswordHasher interface {
	Hash(plain string) (string, error)
	Verify(plain, digest string) error
}

// Argon2Hasher produces argon2id digests encoded as base64(salt).base64(hash).
type Argon2Hasher struct{}

var DefaultHasher PasswordHasher = Argon2Hasher{}

func (Argon2Hasher) Hash(plain string) (string, error) {
	salt := make([]byte, 16)
	if _, err := rand.Read(salt); err != nil {
		return "", ErrorHandler(err, "failed to generate salt")
	}

	hash := argon2.IDKey([]byte(plain), salt, 1, 64*1024, 4, 32)

	saltBase64 := base64.StdEncoding.EncodeToString(salt)
	hashBase64 := base64.StdEncoding.EncodeToString(hash)

	return saltBase64 + "." + hashBase64, nil
}

func (Argon2Hasher) Verify(plain, digest string) error {
	parts := strings.Split(digest, ".")
	if len(parts) != 2 {
		return errors.New("invalid encoded hash format")
	}

	salt, err := base64.StdEncoding.DecodeString(parts[0])
	if err != nil {
		return errors.New("failed to decode salt")
	}

	stored, err := base64.StdEncoding.DecodeString(parts[1])
	if err != nil {
		return errors.New("failed to decode hashed password")
	}

	hash := argon2.IDKey([]byte(plain), salt, 1, 64*1024, 4, 32)
	if len(hash) != len(stored) {
		return ErrPasswordMismatch
	}
	if subtle.ConstantTimeCompare(hash, stored) != 1 {
		return ErrPasswordMismatch
	}
	return nil
}

func HashPassword(plain string) (string, error) {
	return DefaultHasher.Hash(plain)
}

func VerifyPassword(plain, digest string) error {
	return DefaultHasher.Verify(plain, digest)
}
