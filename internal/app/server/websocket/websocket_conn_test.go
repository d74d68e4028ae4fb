package websocket

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 对端在读循环启动前就已断开, 关闭回调仍然必须执行
func TestSessionConnCloseBeforeStart(t *testing.T) {
	clientClosed := make(chan struct{})
	closedConns := make(chan *SessionConn, 1)

	upgrader := websocket.Upgrader{}
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		<-clientClosed

		sc := NewSessionConn(conn, "early", "c1", time.Second)
		sc.OnClose(func(c *SessionConn) {
			closedConns <- c
		})
		sc.Start()
		sc.Start()
		<-sc.Done()
	}))
	defer ts.Close()

	client, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(ts.URL, "http"), nil)
	require.NoError(t, err)
	client.Close()
	close(clientClosed)

	select {
	case c := <-closedConns:
		assert.Equal(t, "early", c.SessionID())
		assert.Equal(t, "c1", c.ConnID())
	case <-time.After(3 * time.Second):
		t.Fatal("close callback was not called")
	}

	// 只回调一次
	select {
	case <-closedConns:
		t.Fatal("close callback called twice")
	case <-time.After(100 * time.Millisecond):
	}
}

func TestSessionConnStartAfterClose(t *testing.T) {
	started := make(chan *SessionConn, 1)
	upgrader := websocket.Upgrader{}
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		sc := NewSessionConn(conn, "s", "c", 0)
		assert.NoError(t, sc.Close())
		sc.Start()
		started <- sc
	}))
	defer ts.Close()

	client, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(ts.URL, "http"), nil)
	require.NoError(t, err)
	defer client.Close()

	sc := <-started
	assert.ErrorIs(t, sc.SendJSON(map[string]string{"type": "x"}), ErrConnClosed)
	_, err = sc.RecvCmd()
	assert.ErrorIs(t, err, ErrConnClosed)
}
