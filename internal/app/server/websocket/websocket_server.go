package websocket

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	session_config "unmute-configurator-golang/internal/domain/config"
	"unmute-configurator-golang/internal/domain/preset"
	log "unmute-configurator-golang/logger"
)

const DefaultReadTimeout = 120 * time.Second

// WebSocketServer 承载 Configurator 会话和只读 HTTP 接口
type WebSocketServer struct {
	upgrader websocket.Upgrader
	store    session_config.ConfigStore
	preset   preset.Preset
	registry *SessionRegistry
	mux      *http.ServeMux
	port     int

	readTimeout time.Duration
	// 会话最后一个连接断开时删除其配置
	releaseOnClose bool
	// 广播配置变化时的并发数
	broadcastWorkers int
}

// WebSocketServerOption 用于配置 WebSocketServer 的可选参数
type WebSocketServerOption func(*WebSocketServer)

func WithConfigStore(store session_config.ConfigStore) WebSocketServerOption {
	return func(s *WebSocketServer) {
		s.store = store
	}
}

func WithPreset(p preset.Preset) WebSocketServerOption {
	return func(s *WebSocketServer) {
		s.preset = p
	}
}

func WithReadTimeout(d time.Duration) WebSocketServerOption {
	return func(s *WebSocketServer) {
		s.readTimeout = d
	}
}

func WithReleaseOnClose(release bool) WebSocketServerOption {
	return func(s *WebSocketServer) {
		s.releaseOnClose = release
	}
}

func WithBroadcastWorkers(n int) WebSocketServerOption {
	return func(s *WebSocketServer) {
		s.broadcastWorkers = n
	}
}

// NewWebSocketServer 未指定存储时使用内存存储, 未指定预置时使用默认预置
func NewWebSocketServer(port int, opts ...WebSocketServerOption) (*WebSocketServer, error) {
	s := &WebSocketServer{
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return true // 前端与后端可能不同源
			},
		},
		registry:         NewSessionRegistry(),
		mux:              http.NewServeMux(),
		port:             port,
		readTimeout:      DefaultReadTimeout,
		releaseOnClose:   true,
		broadcastWorkers: 4,
	}
	for _, opt := range opts {
		opt(s)
	}

	if s.store == nil {
		store, err := session_config.GetConfigStore("memory", nil)
		if err != nil {
			return nil, err
		}
		s.store = store
	}
	if s.preset.ID == "" {
		p, err := preset.Lookup(preset.Default)
		if err != nil {
			return nil, err
		}
		s.preset = p
	}

	s.mux.HandleFunc("/unmute/v1/configurator", s.handleConfigurator)
	s.mux.HandleFunc("/unmute/api/header", s.handleHeader)
	s.mux.HandleFunc("/unmute/api/presets", s.handlePresets)
	s.mux.HandleFunc("/unmute/api/config", s.handleConfig)
	s.mux.HandleFunc("/unmute/api/health", s.handleHealth)
	return s, nil
}

// Handler 返回全部路由, 便于嵌入其他 http.Server 或测试
func (s *WebSocketServer) Handler() http.Handler {
	return s.mux
}

// Start 阻塞运行直到 ctx 结束
func (s *WebSocketServer) Start(ctx context.Context) error {
	listenAddr := fmt.Sprintf("0.0.0.0:%d", s.port)
	srv := &http.Server{
		Addr:    listenAddr,
		Handler: s.mux,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	log.Infof("WebSocket 服务器启动在 ws://%s/unmute/v1/configurator", listenAddr)
	log.Infof("HTTP API 端点: http://%s/unmute/api/{header,presets,config,health}", listenAddr)
	log.Infof("使用预置: %s (%s)", s.preset.ID, s.preset.VoiceName)

	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Errorf("WebSocket 服务器启动失败: %v", err)
		return err
	}
	return nil
}

func (s *WebSocketServer) handleConfigurator(w http.ResponseWriter, r *http.Request) {
	sessionID := r.URL.Query().Get("session_id")
	if sessionID == "" {
		sessionID = uuid.New().String()
	}

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Errorf("WebSocket 升级失败: %v", err)
		return
	}

	sessionConn := NewSessionConn(conn, sessionID, uuid.New().String(), s.readTimeout)
	sessionConn.OnClose(s.onConnClose)
	s.registry.Add(sessionConn)
	sessionConn.Start()

	log.Session(sessionID).Infof("新的 configurator 连接: %s", sessionConn.ConnID())
	newSession(s, sessionConn).run()
}

func (s *WebSocketServer) onConnClose(conn *SessionConn) {
	empty := s.registry.Remove(conn)
	log.Session(conn.SessionID()).Infof("configurator 连接断开: %s", conn.ConnID())
	if !empty || !s.releaseOnClose {
		return
	}
	if err := s.store.DeleteConfig(context.Background(), conn.SessionID()); err != nil {
		log.Session(conn.SessionID()).Errorf("删除会话配置失败: %v", err)
	}
}
