package redis

import (
	"context"
	"strconv"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitAndClose(t *testing.T) {
	mr := miniredis.RunT(t)

	cfg := DefaultConfig()
	cfg.Host = mr.Host()
	cfg.Port = mustPort(t, mr.Port())
	require.NoError(t, Init(cfg))

	assert.NotNil(t, GetClient())
	assert.True(t, IsHealthy(context.Background()))

	require.NoError(t, Close())
	assert.Nil(t, GetClient())
	assert.False(t, IsHealthy(context.Background()))
	assert.NoError(t, Close())
}

func TestInitUnreachable(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Host = "127.0.0.1"
	cfg.Port = 1
	cfg.MaxRetries = -1
	assert.Error(t, Init(cfg))
}

func TestGetKeyWithPrefix(t *testing.T) {
	assert.Equal(t, "k", GetKeyWithPrefix("", "k"))
	assert.Equal(t, "p:k", GetKeyWithPrefix("p", "k"))
}

func mustPort(t *testing.T, s string) int {
	t.Helper()
	port, err := strconv.Atoi(s)
	require.NoError(t, err)
	return port
}
