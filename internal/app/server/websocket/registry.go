package websocket

import (
	cmap "github.com/orcaman/concurrent-map/v2"
)

// SessionRegistry 会话ID到其所有连接的映射
type SessionRegistry struct {
	sessions cmap.ConcurrentMap[string, []*SessionConn]
}

func NewSessionRegistry() *SessionRegistry {
	return &SessionRegistry{
		sessions: cmap.New[[]*SessionConn](),
	}
}

func (r *SessionRegistry) Add(conn *SessionConn) {
	r.sessions.Upsert(conn.SessionID(), nil, func(exist bool, valueInMap []*SessionConn, _ []*SessionConn) []*SessionConn {
		return append(append([]*SessionConn(nil), valueInMap...), conn)
	})
}

// Remove 移除连接, 返回该会话是否已经没有连接
func (r *SessionRegistry) Remove(conn *SessionConn) bool {
	left := r.sessions.Upsert(conn.SessionID(), nil, func(exist bool, valueInMap []*SessionConn, _ []*SessionConn) []*SessionConn {
		var left []*SessionConn
		for _, c := range valueInMap {
			if c != conn {
				left = append(left, c)
			}
		}
		return left
	})
	if len(left) > 0 {
		return false
	}
	// 期间可能有新连接加入, 只删除仍为空的条目
	return r.sessions.RemoveCb(conn.SessionID(), func(key string, conns []*SessionConn, exists bool) bool {
		return len(conns) == 0
	})
}

// Conns 返回会话当前连接的快照
func (r *SessionRegistry) Conns(sessionID string) []*SessionConn {
	conns, _ := r.sessions.Get(sessionID)
	return conns
}

func (r *SessionRegistry) SessionCount() int {
	return r.sessions.Count()
}
