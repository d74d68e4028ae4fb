package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	log "unmute-configurator-golang/logger"

	"github.com/gorilla/websocket"
)

var ErrConnClosed = errors.New("connection is closed")

// SessionConn 一个 websocket 连接, 对应一次 Configurator 挂载
type SessionConn struct {
	ctx    context.Context
	cancel context.CancelFunc

	onCloseCbList []func(conn *SessionConn)

	conn      *websocket.Conn
	sessionID string
	connID    string

	recvCmdChan chan []byte
	readTimeout time.Duration

	started  bool
	isClosed bool
	sync.RWMutex
}

// NewSessionConn 创建连接, 需先注册 OnClose 回调再调用 Start
// readTimeout 内没有消息则断开
func NewSessionConn(conn *websocket.Conn, sessionID, connID string, readTimeout time.Duration) *SessionConn {
	ctx, cancel := context.WithCancel(context.Background())
	instance := &SessionConn{
		ctx:         ctx,
		cancel:      cancel,
		conn:        conn,
		sessionID:   sessionID,
		connID:      connID,
		recvCmdChan: make(chan []byte, 100),
		readTimeout: readTimeout,
	}
	return instance
}

// Start 启动读循环, 重复调用无效
func (c *SessionConn) Start() {
	c.Lock()
	if c.started || c.isClosed {
		c.Unlock()
		return
	}
	c.started = true
	c.Unlock()

	go c.readLoop()
}

func (c *SessionConn) readLoop() {
	defer c.Close()
	for {
		if c.readTimeout > 0 {
			c.conn.SetReadDeadline(time.Now().Add(c.readTimeout))
		}
		msgType, data, err := c.conn.ReadMessage()
		if err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.Session(c.sessionID).Debugf("read message error: %v", err)
			}
			return
		}
		if msgType != websocket.TextMessage {
			log.Session(c.sessionID).Warnf("ignore non-text message type %d", msgType)
			continue
		}
		select {
		case c.recvCmdChan <- data:
		case <-c.ctx.Done():
			return
		default:
			log.Session(c.sessionID).Errorf("recv cmd channel is full")
		}
	}
}

// SendJSON 序列化并发送一条文本消息
func (c *SessionConn) SendJSON(msg interface{}) error {
	data, err := json.Marshal(msg)
	if err != nil {
		return err
	}

	c.Lock()
	defer c.Unlock()
	if c.isClosed {
		return ErrConnClosed
	}
	if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
		log.Session(c.sessionID).Errorf("send cmd error: %v", err)
		return err
	}
	return nil
}

// RecvCmd 阻塞直到收到一条消息或连接关闭
func (c *SessionConn) RecvCmd() ([]byte, error) {
	select {
	case msg := <-c.recvCmdChan:
		return msg, nil
	case <-c.ctx.Done():
		return nil, ErrConnClosed
	}
}

func (c *SessionConn) Close() error {
	c.Lock()
	if c.isClosed {
		c.Unlock()
		return nil
	}
	c.isClosed = true
	c.cancel()
	c.conn.Close()
	callbacks := c.onCloseCbList
	c.Unlock()

	for _, cb := range callbacks {
		if cb != nil {
			cb(c)
		}
	}
	return nil
}

func (c *SessionConn) OnClose(cb func(conn *SessionConn)) {
	c.Lock()
	defer c.Unlock()
	c.onCloseCbList = append(c.onCloseCbList, cb)
}

func (c *SessionConn) Done() <-chan struct{} {
	return c.ctx.Done()
}

func (c *SessionConn) SessionID() string {
	return c.sessionID
}

func (c *SessionConn) ConnID() string {
	return c.connID
}
