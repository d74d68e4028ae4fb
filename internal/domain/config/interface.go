package session_config

import (
	"context"

	"unmute-configurator-golang/internal/domain/unmute"
)

// ConfigStore 会话配置的持有方
// 只有持有方可以修改配置, Configurator 通过 setter 请求修改
type ConfigStore interface {
	// GetConfig 返回会话当前配置, 第二个返回值表示是否存在
	GetConfig(ctx context.Context, sessionID string) (unmute.UnmuteConfig, bool, error)
	// SetConfig 整体替换会话配置
	SetConfig(ctx context.Context, sessionID string, config unmute.UnmuteConfig) error
	DeleteConfig(ctx context.Context, sessionID string) error
	Close() error
}
