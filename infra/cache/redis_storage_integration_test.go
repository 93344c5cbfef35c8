//go:build integration

package cache

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/amirasaad/fintrack/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

func TestRedisStorage_RoundTrip(t *testing.T) {
	ctx := context.Background()
	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "redis:7-alpine",
			ExposedPorts: []string{"6379/tcp"},
			WaitingFor:   wait.ForLog("Ready to accept connections"),
		},
		Started: true,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = container.Terminate(ctx) })

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, "6379")
	require.NoError(t, err)

	storage, err := NewRedisStorage(&config.Redis{
		URL:         fmt.Sprintf("redis://%s:%s/0", host, port.Port()),
		KeyPrefix:   "it:",
		PoolSize:    2,
		DialTimeout: time.Second,
	}, nil)
	require.NoError(t, err)
	defer storage.Close() //nolint: errcheck
	require.NoError(t, storage.Ping(ctx))

	require.NoError(t, storage.Set("a", []byte("1"), time.Minute))
	val, err := storage.Get("a")
	require.NoError(t, err)
	assert.Equal(t, []byte("1"), val)

	require.NoError(t, storage.Delete("a"))
	val, err = storage.Get("a")
	require.NoError(t, err)
	assert.Nil(t, val)

	require.NoError(t, storage.Set("b", []byte("2"), time.Minute))
	require.NoError(t, storage.Reset())
	val, err = storage.Get("b")
	require.NoError(t, err)
	assert.Nil(t, val)
}
