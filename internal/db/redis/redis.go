package redis

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	log "unmute-configurator-golang/logger"
)

var (
	globalClient *redis.Client
	mu           sync.RWMutex
)

// Config Redis配置结构体
type Config struct {
	Host     string `mapstructure:"host" json:"host"`
	Port     int    `mapstructure:"port" json:"port"`
	Password string `mapstructure:"password" json:"password"`
	DB       int    `mapstructure:"db" json:"db"`
	// -1 表示不重试
	MaxRetries  int           `mapstructure:"max_retries" json:"max_retries"`
	DialTimeout time.Duration `mapstructure:"dial_timeout" json:"dial_timeout"`
}

// DefaultConfig 返回默认配置
func DefaultConfig() *Config {
	return &Config{
		Host:        "localhost",
		Port:        6379,
		MaxRetries:  3,
		DialTimeout: 5 * time.Second,
	}
}

// Init 初始化全局Redis客户端, 重复调用会替换旧客户端
func Init(config *Config) error {
	if config == nil {
		config = DefaultConfig()
	}

	client := redis.NewClient(&redis.Options{
		Addr:        fmt.Sprintf("%s:%d", config.Host, config.Port),
		Password:    config.Password,
		DB:          config.DB,
		MaxRetries:  config.MaxRetries,
		DialTimeout: config.DialTimeout,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return fmt.Errorf("failed to connect to redis: %w", err)
	}

	mu.Lock()
	old := globalClient
	globalClient = client
	mu.Unlock()
	if old != nil {
		_ = old.Close()
	}

	log.Log().Infof("Redis客户端初始化成功: %s:%d", config.Host, config.Port)
	return nil
}

// GetClient 获取Redis客户端实例, 未初始化时返回 nil
func GetClient() *redis.Client {
	mu.RLock()
	defer mu.RUnlock()

	if globalClient == nil {
		log.Log().Warn("Redis客户端未初始化")
	}
	return globalClient
}

// IsHealthy 检查Redis连接健康状态
func IsHealthy(ctx context.Context) bool {
	mu.RLock()
	client := globalClient
	mu.RUnlock()
	if client == nil {
		return false
	}

	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	return client.Ping(ctx).Err() == nil
}

// Close 关闭Redis客户端连接
func Close() error {
	mu.Lock()
	defer mu.Unlock()

	if globalClient == nil {
		return nil
	}
	err := globalClient.Close()
	globalClient = nil
	if err != nil {
		log.Log().Errorf("关闭Redis连接失败: %v", err)
		return err
	}
	log.Log().Info("Redis连接已关闭")
	return nil
}

// GetKeyWithPrefix 获取带前缀的键名
func GetKeyWithPrefix(prefix, key string) string {
	if prefix == "" {
		return key
	}
	return fmt.Sprintf("%s:%s", prefix, key)
}
