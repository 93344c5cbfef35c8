package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("AUTH_JWT_SECRET", "super-secret-value")
	unsetEnv(t, "AUTH_JWT_EXPIRY", "AUTH_JWT_ALGORITHM", "API_PREFIX", "PAGINATION_DEFAULT_LIMIT",
		"PAGINATION_MAX_LIMIT", "AUTH_HASH_MEMORY")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "super-secret-value", cfg.Auth.Jwt.Secret)
	assert.Equal(t, 30*time.Minute, cfg.Auth.Jwt.Expiry)
	assert.Equal(t, "HS256", cfg.Auth.Jwt.Algorithm)
	assert.Equal(t, "/api/v1", cfg.APIPrefix)
	assert.Equal(t, 100, cfg.Pagination.DefaultLimit)
	assert.Equal(t, 500, cfg.Pagination.MaxLimit)
	assert.EqualValues(t, 65536, cfg.Auth.Hash.Memory)
}

func TestLoad_MissingSecret(t *testing.T) {
	t.Setenv("AUTH_JWT_SECRET", "")

	_, err := Load()
	require.Error(t, err)
}

func TestLoad_UnsupportedAlgorithm(t *testing.T) {
	t.Setenv("AUTH_JWT_SECRET", "super-secret-value")
	t.Setenv("AUTH_JWT_ALGORITHM", "RS256")
	unsetEnv(t, "AUTH_JWT_EXPIRY")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "RS256")
}

func TestLoad_FromEnvFile(t *testing.T) {
	dir := t.TempDir()
	content := "AUTH_JWT_SECRET=file-secret-value\nAUTH_JWT_EXPIRY=15m\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env.fintrack-test"), []byte(content), 0o600))

	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	// godotenv never overrides variables that are already set
	unsetEnv(t, "AUTH_JWT_SECRET", "AUTH_JWT_EXPIRY", "AUTH_JWT_ALGORITHM")

	cfg, err := Load(".env.fintrack-test")
	require.NoError(t, err)
	assert.Equal(t, "file-secret-value", cfg.Auth.Jwt.Secret)
	assert.Equal(t, 15*time.Minute, cfg.Auth.Jwt.Expiry)
}

func TestLoad_FindsEnvFileInParentDirectory(t *testing.T) {
	dir := t.TempDir()
	content := "AUTH_JWT_SECRET=parent-secret-value\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env.fintrack-parent"), []byte(content), 0o600))
	child := filepath.Join(dir, "cmd")
	require.NoError(t, os.Mkdir(child, 0o755))

	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(child))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	unsetEnv(t, "AUTH_JWT_SECRET", "AUTH_JWT_EXPIRY", "AUTH_JWT_ALGORITHM")

	cfg, err := Load(".env.fintrack-missing", ".env.fintrack-parent")
	require.NoError(t, err)
	assert.Equal(t, "parent-secret-value", cfg.Auth.Jwt.Secret)
}

func TestFindEnvFile_NotFound(t *testing.T) {
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	_, err = FindEnvFile(".env.fintrack-does-not-exist")
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestMaskValue(t *testing.T) {
	assert.Equal(t, "", maskValue(""))
	assert.Equal(t, "****", maskValue("short"))
	assert.Equal(t, "po****5432", maskValue("postgres://localhost:5432"))
}

// unsetEnv removes keys for the duration of the test and restores them afterwards.
func unsetEnv(t *testing.T, keys ...string) {
	t.Helper()
	for _, key := range keys {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}
}
