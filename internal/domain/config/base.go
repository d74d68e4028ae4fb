package session_config

import (
	"context"
	"fmt"

	"unmute-configurator-golang/constants"
	"unmute-configurator-golang/internal/domain/config/memory"
	redis_config "unmute-configurator-golang/internal/domain/config/redis"
	"unmute-configurator-golang/internal/domain/unmute"
)

// GetConfigStore 创建会话配置存储
// storeType: 存储类型, 支持 "memory", "redis"
// config: 存储相关参数
func GetConfigStore(storeType string, config map[string]interface{}) (ConfigStore, error) {
	if config == nil {
		config = make(map[string]interface{})
	}

	switch storeType {
	case constants.ConfigStoreTypeMemory:
		store, err := memory.NewMemoryConfigStore(config)
		if err != nil {
			return nil, fmt.Errorf("创建内存配置存储失败: %w", err)
		}
		return store, nil
	case constants.ConfigStoreTypeRedis:
		store, err := redis_config.NewRedisConfigStore(config)
		if err != nil {
			return nil, fmt.Errorf("创建Redis配置存储失败: %w", err)
		}
		return store, nil
	default:
		return nil, fmt.Errorf("不支持的配置存储类型: %s", storeType)
	}
}

// DefaultConfig 返回各存储类型的默认参数
func DefaultConfig(storeType string) map[string]interface{} {
	switch storeType {
	case constants.ConfigStoreTypeMemory:
		return map[string]interface{}{
			"max_entries": memory.DefaultMaxEntries,
		}
	case constants.ConfigStoreTypeRedis:
		return map[string]interface{}{
			"ttl_seconds": redis_config.DefaultTTLSeconds,
		}
	default:
		return map[string]interface{}{}
	}
}

// GetOrDefault 读取会话配置, 不存在时返回占位默认配置
func GetOrDefault(ctx context.Context, store ConfigStore, sessionID string) (unmute.UnmuteConfig, error) {
	cfg, ok, err := store.GetConfig(ctx, sessionID)
	if err != nil {
		return unmute.UnmuteConfig{}, err
	}
	if !ok {
		return unmute.DefaultUnmuteConfig(), nil
	}
	return cfg, nil
}
