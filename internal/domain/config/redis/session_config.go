package redis_config

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	i_redis "unmute-configurator-golang/internal/db/redis"
	"unmute-configurator-golang/internal/domain/unmute"
	log "unmute-configurator-golang/logger"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/cast"
	"github.com/spf13/viper"
)

// 0 表示不过期
const DefaultTTLSeconds = 24 * 3600

var ErrNoClient = errors.New("redis client not initialized")

// RedisConfigStore 每个会话一个 JSON 字符串键
type RedisConfigStore struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

// NewRedisConfigStore config 中可选 ttl_seconds, key_prefix
// 使用 internal/db/redis 初始化的全局客户端
func NewRedisConfigStore(config map[string]interface{}) (*RedisConfigStore, error) {
	return NewRedisConfigStoreWithClient(i_redis.GetClient(), config)
}

func NewRedisConfigStoreWithClient(client *redis.Client, config map[string]interface{}) (*RedisConfigStore, error) {
	if client == nil {
		return nil, ErrNoClient
	}

	ttlSeconds := DefaultTTLSeconds
	if v, ok := config["ttl_seconds"]; ok {
		n, err := cast.ToIntE(v)
		if err != nil {
			return nil, fmt.Errorf("invalid ttl_seconds %v: %w", v, err)
		}
		ttlSeconds = n
	}
	prefix := viper.GetString("redis.key_prefix")
	if v, ok := config["key_prefix"].(string); ok {
		prefix = v
	}

	store := &RedisConfigStore{
		client: client,
		prefix: prefix,
		ttl:    time.Duration(ttlSeconds) * time.Second,
	}
	log.Log().Infof("Redis配置存储初始化成功, prefix: %q, ttl: %s", prefix, store.ttl)
	return store, nil
}

// ConfigKey 会话配置的键名
func (r *RedisConfigStore) ConfigKey(sessionID string) string {
	return i_redis.GetKeyWithPrefix(r.prefix, "unmute:config:"+sessionID)
}

func (r *RedisConfigStore) GetConfig(ctx context.Context, sessionID string) (unmute.UnmuteConfig, bool, error) {
	data, err := r.client.Get(ctx, r.ConfigKey(sessionID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return unmute.UnmuteConfig{}, false, nil
	}
	if err != nil {
		return unmute.UnmuteConfig{}, false, err
	}

	cfg, err := unmute.DecodeConfig(data)
	if err != nil {
		log.Session(sessionID).Errorf("redis config unmarshal error: %+v", err)
		return unmute.UnmuteConfig{}, false, err
	}
	return cfg, true, nil
}

func (r *RedisConfigStore) SetConfig(ctx context.Context, sessionID string, config unmute.UnmuteConfig) error {
	if err := config.Validate(); err != nil {
		return err
	}
	data, err := json.Marshal(config)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, r.ConfigKey(sessionID), data, r.ttl).Err()
}

func (r *RedisConfigStore) DeleteConfig(ctx context.Context, sessionID string) error {
	return r.client.Del(ctx, r.ConfigKey(sessionID)).Err()
}

// Close 全局客户端由 internal/db/redis 负责关闭
func (r *RedisConfigStore) Close() error {
	return nil
}
