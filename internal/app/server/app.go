package server

import (
	"context"
	"fmt"

	"unmute-configurator-golang/internal/app/server/websocket"
	session_config "unmute-configurator-golang/internal/domain/config"
	"unmute-configurator-golang/internal/domain/preset"
	log "unmute-configurator-golang/logger"

	"github.com/spf13/viper"
)

// App 持有会话配置存储并运行 configurator 服务
type App struct {
	store    session_config.ConfigStore
	wsServer *websocket.WebSocketServer
}

func NewApp() (*App, error) {
	storeType := viper.GetString("config_store.type")
	storeConfig := session_config.DefaultConfig(storeType)
	for k, v := range viper.GetStringMap("config_store." + storeType) {
		storeConfig[k] = v
	}
	store, err := session_config.GetConfigStore(storeType, storeConfig)
	if err != nil {
		return nil, err
	}

	p, err := preset.Lookup(preset.ID(viper.GetString("configurator.preset")))
	if err != nil {
		store.Close()
		return nil, fmt.Errorf("configurator.preset: %w", err)
	}

	wsServer, err := websocket.NewWebSocketServer(
		viper.GetInt("server.port"),
		websocket.WithConfigStore(store),
		websocket.WithPreset(p),
		websocket.WithReadTimeout(viper.GetDuration("server.read_timeout")),
		websocket.WithReleaseOnClose(viper.GetBool("config_store.release_on_close")),
		websocket.WithBroadcastWorkers(viper.GetInt("server.broadcast_workers")),
	)
	if err != nil {
		store.Close()
		return nil, err
	}

	log.Infof("配置存储: %s, 预置: %s", storeType, p.ID)
	return &App{store: store, wsServer: wsServer}, nil
}

// Run 阻塞直到 ctx 结束或服务器退出
func (a *App) Run(ctx context.Context) error {
	defer a.store.Close()
	return a.wsServer.Start(ctx)
}
