package websocket

import (
	"context"
	"encoding/json"
	"fmt"

	"unmute-configurator-golang/constants"
	session_config "unmute-configurator-golang/internal/domain/config"
	"unmute-configurator-golang/internal/domain/configurator"
	"unmute-configurator-golang/internal/domain/unmute"
	"unmute-configurator-golang/internal/util/workqueue"
	log "unmute-configurator-golang/logger"
)

// session 串行处理一个连接上的消息, 相当于前端的渲染循环
type session struct {
	server       *WebSocketServer
	conn         *SessionConn
	configurator *configurator.Configurator
	// setter 最近一次写入失败的原因, 由 handleRender 取走
	setErr error
}

func newSession(server *WebSocketServer, conn *SessionConn) *session {
	return &session{
		server:       server,
		conn:         conn,
		configurator: configurator.New(server.preset),
	}
}

func (s *session) ctx() context.Context {
	return s.conn.ctx
}

func (s *session) run() {
	defer s.conn.Close()

	cfg, err := s.reserve()
	if err != nil {
		log.Session(s.conn.SessionID()).Errorf("会话挂载失败: %v", err)
		_ = s.conn.SendJSON(ErrorMessage{Type: constants.MessageTypeError, Message: err.Error()})
		return
	}
	if err := s.conn.SendJSON(HelloMessage{
		Type:      constants.MessageTypeHello,
		SessionID: s.conn.SessionID(),
		Config:    cfg,
	}); err != nil {
		return
	}

	for {
		data, err := s.conn.RecvCmd()
		if err != nil {
			return
		}
		if err := s.handleMessage(data); err != nil {
			log.Session(s.conn.SessionID()).Warnf("处理消息失败: %v", err)
			if sendErr := s.conn.SendJSON(ErrorMessage{Type: constants.MessageTypeError, Message: err.Error()}); sendErr != nil {
				return
			}
		}
	}
}

// reserve 挂载时为新会话写入占位配置
// 存储无法接收该会话时直接拒绝, 之后预置写入只会更新已有条目
func (s *session) reserve() (unmute.UnmuteConfig, error) {
	cfg, ok, err := s.server.store.GetConfig(s.ctx(), s.conn.SessionID())
	if err != nil {
		return unmute.UnmuteConfig{}, fmt.Errorf("load config: %w", err)
	}
	if ok {
		return cfg, nil
	}
	cfg = unmute.DefaultUnmuteConfig()
	if err := s.server.store.SetConfig(s.ctx(), s.conn.SessionID(), cfg); err != nil {
		return unmute.UnmuteConfig{}, fmt.Errorf("reserve config: %w", err)
	}
	return cfg, nil
}

func (s *session) handleMessage(data []byte) error {
	var msg ClientMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return fmt.Errorf("invalid message: %w", err)
	}

	switch msg.Type {
	case constants.MessageTypeRender:
		return s.handleRender(msg)
	case constants.MessageTypeSetConfig:
		return s.handleSetConfig(msg)
	default:
		return fmt.Errorf("unknown message type: %q", msg.Type)
	}
}

func (s *session) currentConfig() (unmute.UnmuteConfig, error) {
	return session_config.GetOrDefault(s.ctx(), s.server.store, s.conn.SessionID())
}

func (s *session) handleRender(msg ClientMessage) error {
	cfg, err := s.currentConfig()
	if err != nil {
		return err
	}

	view := s.configurator.Render(configurator.Props{
		Config:           cfg,
		BackendServerURL: msg.BackendServerURL,
		SetConfig:        s.setConfig,
		VoiceCloningUp:   msg.VoiceCloningUp,
	})
	if s.setErr != nil {
		err := s.setErr
		s.setErr = nil
		return fmt.Errorf("apply preset %s: %w", s.server.preset.ID, err)
	}

	cfg, err = s.currentConfig()
	if err != nil {
		return err
	}
	return s.conn.SendJSON(ViewMessage{
		Type:   constants.MessageTypeView,
		View:   view,
		Config: cfg,
	})
}

// handleSetConfig 持有方直接替换配置, 例如用户自定义 instructions
func (s *session) handleSetConfig(msg ClientMessage) error {
	if len(msg.Config) == 0 {
		return fmt.Errorf("set_config without config")
	}
	cfg, err := unmute.DecodeConfig(msg.Config)
	if err != nil {
		return err
	}
	return s.server.storeAndBroadcast(s.conn.SessionID(), cfg)
}

// setConfig 交给 Configurator 的 setter, 在 handleRender 内同步执行
// 失败原因记在 setErr 上, 由 handleRender 回给客户端
func (s *session) setConfig(cfg unmute.UnmuteConfig) {
	if err := s.server.storeAndBroadcast(s.conn.SessionID(), cfg); err != nil {
		log.Session(s.conn.SessionID()).Errorf("写入预置配置失败: %v", err)
		s.setErr = err
		return
	}
	log.Session(s.conn.SessionID()).Infof("已应用预置 %s: voice=%s", s.server.preset.ID, cfg.Voice)
}

// storeAndBroadcast 保存配置并推送给该会话的所有连接
func (s *WebSocketServer) storeAndBroadcast(sessionID string, cfg unmute.UnmuteConfig) error {
	ctx := context.Background()
	if err := s.store.SetConfig(ctx, sessionID, cfg); err != nil {
		return err
	}

	msg := ConfigMessage{Type: constants.MessageTypeConfig, Config: cfg}
	failed := workqueue.FanOut(ctx, s.broadcastWorkers, s.registry.Conns(sessionID), func(c *SessionConn) error {
		return c.SendJSON(msg)
	})
	for _, c := range failed {
		log.Session(sessionID).Warnf("推送配置失败, 关闭连接 %s", c.ConnID())
		c.Close()
	}
	return nil
}
