package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

// cheap parameters keep the suite fast; production costs come from config
var testParams = HashParams{Memory: 1024, Iterations: 1, Parallelism: 1}

func TestPasswordHasher_HashAndVerify(t *testing.T) {
	t.Parallel()
	h := NewPasswordHasher(testParams)

	hash, err := h.Hash("p")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(hash, "$argon2id$v=19$m=1024,t=1,p=1$"))

	ok, err := h.Verify("p", hash)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = h.Verify("wrong", hash)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestPasswordHasher_SaltedHashesDiffer(t *testing.T) {
	t.Parallel()
	h := NewPasswordHasher(testParams)

	first, err := h.Hash("same-password")
	require.NoError(t, err)
	second, err := h.Hash("same-password")
	require.NoError(t, err)
	assert.NotEqual(t, first, second)
}

func TestPasswordHasher_VerifyUsesEmbeddedParams(t *testing.T) {
	t.Parallel()
	old := NewPasswordHasher(HashParams{Memory: 2048, Iterations: 2, Parallelism: 1, KeyLength: 16})
	hash, err := old.Hash("rotate-me")
	require.NoError(t, err)

	current := NewPasswordHasher(testParams)
	ok, err := current.Verify("rotate-me", hash)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestPasswordHasher_VerifyBcrypt(t *testing.T) {
	t.Parallel()
	legacy, err := bcrypt.GenerateFromPassword([]byte("legacy"), bcrypt.MinCost)
	require.NoError(t, err)

	h := NewPasswordHasher(testParams)
	ok, err := h.Verify("legacy", string(legacy))
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = h.Verify("nope", string(legacy))
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestPasswordHasher_MalformedHash(t *testing.T) {
	t.Parallel()
	h := NewPasswordHasher(testParams)

	cases := []string{
		"",
		"plaintext",
		"$argon2i$v=19$m=1024,t=1,p=1$c2FsdA$a2V5",
		"$argon2id$v=18$m=1024,t=1,p=1$c2FsdA$a2V5",
		"$argon2id$v=19$m=x,t=1,p=1$c2FsdA$a2V5",
		"$argon2id$v=19$m=1024,t=1,p=1$!!!$a2V5",
		"$argon2id$v=19$m=1024,t=1,p=1$c2FsdA$",
		"$2b$10$short",
	}
	for _, encoded := range cases {
		ok, err := h.Verify("p", encoded)
		assert.False(t, ok, encoded)
		assert.ErrorIs(t, err, ErrMalformedHash, encoded)
	}
}

func TestPasswordHasher_VerifyDummy(t *testing.T) {
	t.Parallel()
	h := NewPasswordHasher(testParams)
	assert.NotPanics(t, func() {
		h.VerifyDummy("anything")
		h.VerifyDummy("again")
	})
	assert.NotEmpty(t, h.dummy)
}

func TestNewPasswordHasher_Defaults(t *testing.T) {
	t.Parallel()
	h := NewPasswordHasher(HashParams{})
	assert.Equal(t, DefaultHashParams, h.params)
}
