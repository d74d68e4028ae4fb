package memory

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"unmute-configurator-golang/internal/domain/unmute"
	log "unmute-configurator-golang/logger"

	"github.com/spf13/cast"
)

const DefaultMaxEntries = 1000

var ErrStoreFull = errors.New("memory config store is full")

// MemoryConfigStore 内存会话配置存储
// 重启后数据丢失, 适用于单实例部署或测试
type MemoryConfigStore struct {
	mu         sync.RWMutex
	configs    map[string]unmute.UnmuteConfig
	maxEntries int
}

// NewMemoryConfigStore config 中可选 max_entries
func NewMemoryConfigStore(config map[string]interface{}) (*MemoryConfigStore, error) {
	maxEntries := DefaultMaxEntries
	if v, ok := config["max_entries"]; ok {
		n, err := cast.ToIntE(v)
		if err != nil {
			return nil, fmt.Errorf("invalid max_entries %v: %w", v, err)
		}
		if n > 0 {
			maxEntries = n
		}
	}

	store := &MemoryConfigStore{
		configs:    make(map[string]unmute.UnmuteConfig),
		maxEntries: maxEntries,
	}

	log.Log().Infof("内存配置存储初始化成功，最大条目数: %d", maxEntries)
	return store, nil
}

func (m *MemoryConfigStore) GetConfig(ctx context.Context, sessionID string) (unmute.UnmuteConfig, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	cfg, ok := m.configs[sessionID]
	return cfg, ok, nil
}

func (m *MemoryConfigStore) SetConfig(ctx context.Context, sessionID string, config unmute.UnmuteConfig) error {
	if err := config.Validate(); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.configs[sessionID]; !exists && len(m.configs) >= m.maxEntries {
		return fmt.Errorf("%w: %d entries", ErrStoreFull, m.maxEntries)
	}
	m.configs[sessionID] = config
	log.Session(sessionID).Debugf("配置已更新 (内存存储): voice=%s", config.Voice)
	return nil
}

func (m *MemoryConfigStore) DeleteConfig(ctx context.Context, sessionID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.configs, sessionID)
	return nil
}

// Close 清空所有配置
func (m *MemoryConfigStore) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.configs = make(map[string]unmute.UnmuteConfig)
	return nil
}

// Len 当前存储的会话数
func (m *MemoryConfigStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.configs)
}
