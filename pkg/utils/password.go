package utils

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"sync"

	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/bcrypt"
)

// ErrMalformedHash is returned when a stored hash cannot be decoded.
// It points at corrupted data or a misconfiguration, never at a wrong password.
var ErrMalformedHash = errors.New("malformed password hash")

// HashParams are the argon2id cost parameters embedded in every hash.
type HashParams struct {
	Memory      uint32
	Iterations  uint32
	Parallelism uint8
	SaltLength  uint32
	KeyLength   uint32
}

// DefaultHashParams follows the RFC 9106 second recommended option.
var DefaultHashParams = HashParams{
	Memory:      64 * 1024,
	Iterations:  3,
	Parallelism: 2,
	SaltLength:  16,
	KeyLength:   32,
}

// PasswordHasher produces argon2id hashes in PHC string format:
//
//	$argon2id$v=19$m=65536,t=3,p=2$<salt>$<key>
//
// Bcrypt hashes ($2a$, $2b$, $2y$) are still accepted by Verify.
type PasswordHasher struct {
	params HashParams

	dummyOnce sync.Once
	dummy     string
}

// NewPasswordHasher returns a hasher using p; zero fields fall back to DefaultHashParams.
func NewPasswordHasher(p HashParams) *PasswordHasher {
	if p.Memory == 0 {
		p.Memory = DefaultHashParams.Memory
	}
	if p.Iterations == 0 {
		p.Iterations = DefaultHashParams.Iterations
	}
	if p.Parallelism == 0 {
		p.Parallelism = DefaultHashParams.Parallelism
	}
	if p.SaltLength == 0 {
		p.SaltLength = DefaultHashParams.SaltLength
	}
	if p.KeyLength == 0 {
		p.KeyLength = DefaultHashParams.KeyLength
	}
	return &PasswordHasher{params: p}
}

// Hash derives a new salted hash for plain.
func (h *PasswordHasher) Hash(plain string) (string, error) {
	salt := make([]byte, h.params.SaltLength)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("generate salt: %w", err)
	}
	key := argon2.IDKey(
		[]byte(plain),
		salt,
		h.params.Iterations,
		h.params.Memory,
		h.params.Parallelism,
		h.params.KeyLength,
	)
	return fmt.Sprintf(
		"$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version,
		h.params.Memory,
		h.params.Iterations,
		h.params.Parallelism,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(key),
	), nil
}

// Verify reports whether plain matches encoded. A mismatch is (false, nil);
// an undecodable hash is (false, ErrMalformedHash).
func (h *PasswordHasher) Verify(plain, encoded string) (bool, error) {
	if isBcrypt(encoded) {
		err := bcrypt.CompareHashAndPassword([]byte(encoded), []byte(plain))
		switch {
		case err == nil:
			return true, nil
		case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
			return false, nil
		default:
			return false, fmt.Errorf("%w: %v", ErrMalformedHash, err)
		}
	}

	p, salt, key, err := decodeArgon2id(encoded)
	if err != nil {
		return false, err
	}
	other := argon2.IDKey([]byte(plain), salt, p.Iterations, p.Memory, p.Parallelism, p.KeyLength)
	return subtle.ConstantTimeCompare(key, other) == 1, nil
}

// VerifyDummy burns the same work as a real verification. Login calls it when
// the identity does not exist so response time does not reveal accounts.
func (h *PasswordHasher) VerifyDummy(plain string) {
	h.dummyOnce.Do(func() {
		h.dummy, _ = h.Hash("fintrack-dummy-password")
	})
	_, _ = h.Verify(plain, h.dummy)
}

func isBcrypt(encoded string) bool {
	return strings.HasPrefix(encoded, "$2a$") ||
		strings.HasPrefix(encoded, "$2b$") ||
		strings.HasPrefix(encoded, "$2y$")
}

func decodeArgon2id(encoded string) (HashParams, []byte, []byte, error) {
	var p HashParams
	parts := strings.Split(encoded, "$")
	if len(parts) != 6 || parts[0] != "" || parts[1] != "argon2id" {
		return p, nil, nil, ErrMalformedHash
	}

	var version int
	if _, err := fmt.Sscanf(parts[2], "v=%d", &version); err != nil {
		return p, nil, nil, fmt.Errorf("%w: %v", ErrMalformedHash, err)
	}
	if version != argon2.Version {
		return p, nil, nil, fmt.Errorf("%w: unsupported argon2 version %d", ErrMalformedHash, version)
	}

	if _, err := fmt.Sscanf(
		parts[3], "m=%d,t=%d,p=%d", &p.Memory, &p.Iterations, &p.Parallelism,
	); err != nil {
		return p, nil, nil, fmt.Errorf("%w: %v", ErrMalformedHash, err)
	}
	if p.Memory == 0 || p.Iterations == 0 || p.Parallelism == 0 {
		return p, nil, nil, fmt.Errorf("%w: zero cost parameter", ErrMalformedHash)
	}

	salt, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		return p, nil, nil, fmt.Errorf("%w: salt: %v", ErrMalformedHash, err)
	}
	key, err := base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil || len(key) == 0 {
		return p, nil, nil, fmt.Errorf("%w: key: %v", ErrMalformedHash, err)
	}
	p.SaltLength = uint32(len(salt))
	p.KeyLength = uint32(len(key))
	return p, salt, key, nil
}
