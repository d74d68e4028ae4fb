package session_config

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"unmute-configurator-golang/internal/domain/config/memory"
	"unmute-configurator-golang/internal/domain/unmute"
)

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()

	store, err := GetConfigStore("memory", map[string]interface{}{
		"max_entries": 10,
	})
	require.NoError(t, err)
	defer store.Close()

	sessionID := "test_session_123"

	_, ok, err := store.GetConfig(ctx, sessionID)
	require.NoError(t, err)
	assert.False(t, ok)

	cfg := unmute.UnmuteConfig{
		Instructions:         unmute.Constant("测试系统提示", unmute.LanguageFr),
		Voice:                "custom.wav",
		VoiceName:            "Custom",
		IsCustomInstructions: true,
	}
	require.NoError(t, store.SetConfig(ctx, sessionID, cfg))

	got, ok, err := store.GetConfig(ctx, sessionID)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, cfg, got)

	require.NoError(t, store.DeleteConfig(ctx, sessionID))
	_, ok, err = store.GetConfig(ctx, sessionID)
	require.NoError(t, err)
	assert.False(t, ok)

	// 删除不存在的会话不报错
	assert.NoError(t, store.DeleteConfig(ctx, "missing"))
}

func TestMemoryStoreCapacity(t *testing.T) {
	ctx := context.Background()

	store, err := GetConfigStore("memory", map[string]interface{}{
		"max_entries": 2.0,
	})
	require.NoError(t, err)

	cfg := unmute.DefaultUnmuteConfig()
	require.NoError(t, store.SetConfig(ctx, "a", cfg))
	require.NoError(t, store.SetConfig(ctx, "b", cfg))
	err = store.SetConfig(ctx, "c", cfg)
	assert.ErrorIs(t, err, memory.ErrStoreFull)

	// 已存在的会话仍可更新
	assert.NoError(t, store.SetConfig(ctx, "a", cfg))
}

func TestMemoryStoreRejectsInvalid(t *testing.T) {
	store, err := GetConfigStore("memory", nil)
	require.NoError(t, err)

	err = store.SetConfig(context.Background(), "a", unmute.UnmuteConfig{
		Instructions: unmute.Instructions{Type: "bogus"},
		Voice:        "a.wav",
	})
	assert.ErrorIs(t, err, unmute.ErrInvalidConfig)
}

func TestGetOrDefault(t *testing.T) {
	ctx := context.Background()
	store, err := GetConfigStore("memory", nil)
	require.NoError(t, err)

	cfg, err := GetOrDefault(ctx, store, "fresh")
	require.NoError(t, err)
	assert.Equal(t, unmute.DefaultUnmuteConfig(), cfg)
}

func TestUnsupportedStore(t *testing.T) {
	_, err := GetConfigStore("file", nil)
	assert.Error(t, err)

	_, err = GetConfigStore("memory", map[string]interface{}{"max_entries": "many"})
	assert.Error(t, err)
}

func TestDefaultConfig(t *testing.T) {
	assert.Equal(t, memory.DefaultMaxEntries, DefaultConfig("memory")["max_entries"])
	assert.Contains(t, DefaultConfig("redis"), "ttl_seconds")
	assert.Empty(t, DefaultConfig("unknown"))
}
