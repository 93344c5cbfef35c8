package cache

import (
	"testing"
	"time"

	"github.com/amirasaad/fintrack/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRedisStorage_InvalidURL(t *testing.T) {
	_, err := NewRedisStorage(&config.Redis{URL: "://not-a-url"}, nil)
	require.Error(t, err)
}

func TestRedisStorage_EmptyKeysAreNoops(t *testing.T) {
	storage, err := NewRedisStorage(&config.Redis{
		URL:         "redis://127.0.0.1:1/0",
		DialTimeout: 50 * time.Millisecond,
	}, nil)
	require.NoError(t, err)
	defer storage.Close() //nolint: errcheck

	val, err := storage.Get("")
	require.NoError(t, err)
	assert.Nil(t, val)
	assert.NoError(t, storage.Set("", []byte("x"), time.Minute))
	assert.NoError(t, storage.Set("k", nil, time.Minute))
	assert.NoError(t, storage.Delete(""))
}

func TestRedisStorage_UnreachableServer(t *testing.T) {
	storage, err := NewRedisStorage(&config.Redis{
		URL:         "redis://127.0.0.1:1/0",
		KeyPrefix:   "test:",
		DialTimeout: 50 * time.Millisecond,
	}, nil)
	require.NoError(t, err)
	defer storage.Close() //nolint: errcheck

	_, err = storage.Get("limiter")
	assert.Error(t, err)
	assert.Equal(t, "test:limiter", storage.key("limiter"))
}
