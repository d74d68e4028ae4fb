package redis_config

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"unmute-configurator-golang/internal/domain/unmute"
)

func newTestStore(t *testing.T, config map[string]interface{}) (*RedisConfigStore, *miniredis.Miniredis) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	store, err := NewRedisConfigStoreWithClient(client, config)
	require.NoError(t, err)
	return store, mr
}

func TestRedisStoreCRUD(t *testing.T) {
	ctx := context.Background()
	store, mr := newTestStore(t, map[string]interface{}{"key_prefix": "test"})

	_, ok, err := store.GetConfig(ctx, "s1")
	require.NoError(t, err)
	assert.False(t, ok)

	cfg := unmute.UnmuteConfig{
		Instructions: unmute.Preset(unmute.InstructionsSanofiPharma, unmute.LanguageEn),
		Voice:        "unmute-prod-website/developer-1.mp3",
		VoiceName:    "Male",
	}
	require.NoError(t, store.SetConfig(ctx, "s1", cfg))
	assert.True(t, mr.Exists("test:unmute:config:s1"))

	got, ok, err := store.GetConfig(ctx, "s1")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, cfg, got)

	require.NoError(t, store.DeleteConfig(ctx, "s1"))
	_, ok, err = store.GetConfig(ctx, "s1")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRedisStoreTTL(t *testing.T) {
	ctx := context.Background()
	store, mr := newTestStore(t, map[string]interface{}{"ttl_seconds": 60, "key_prefix": ""})

	require.NoError(t, store.SetConfig(ctx, "s1", unmute.DefaultUnmuteConfig()))
	assert.Equal(t, 60*time.Second, mr.TTL("unmute:config:s1"))

	mr.FastForward(61 * time.Second)
	_, ok, err := store.GetConfig(ctx, "s1")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRedisStoreCorruptValue(t *testing.T) {
	store, mr := newTestStore(t, map[string]interface{}{"key_prefix": ""})
	require.NoError(t, mr.Set("unmute:config:bad", `{"instructions":{"type":"karaoke"},"voice":"a"}`))

	_, _, err := store.GetConfig(context.Background(), "bad")
	assert.ErrorIs(t, err, unmute.ErrUnknownInstructionsType)
}

func TestRedisStoreNoClient(t *testing.T) {
	_, err := NewRedisConfigStoreWithClient(nil, nil)
	assert.ErrorIs(t, err, ErrNoClient)
}
