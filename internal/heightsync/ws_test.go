package heightsync

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dialTestHandler(t *testing.T) *websocket.Conn {
	t.Helper()
	h := NewHandler(50*time.Millisecond, nil, nil)
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func readMessage(t *testing.T, conn *websocket.Conn) Message {
	t.Helper()
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var msg Message
	require.NoError(t, conn.ReadJSON(&msg))
	return msg
}

func TestBridgeLoadReportsHeight(t *testing.T) {
	conn := dialTestHandler(t)

	require.NoError(t, conn.WriteJSON(Event{
		Action:         "load",
		Width:          375,
		Height:         700,
		DocumentHeight: 1240,
	}))

	msg := readMessage(t, conn)
	assert.Equal(t, ActionSendHeight, msg.Action)
	assert.Equal(t, 1240, msg.IframeHeight)
}

func TestBridgeGetHeightRequest(t *testing.T) {
	conn := dialTestHandler(t)

	require.NoError(t, conn.WriteJSON(Event{
		Action:         "load",
		Width:          375,
		DocumentHeight: 900,
	}))
	readMessage(t, conn)

	require.NoError(t, conn.WriteJSON(Event{Action: ActionGetHeight, DocumentHeight: 960}))

	msg := readMessage(t, conn)
	assert.Equal(t, 960, msg.IframeHeight)
}

func TestBridgeResizeDebounced(t *testing.T) {
	conn := dialTestHandler(t)

	require.NoError(t, conn.WriteJSON(Event{
		Action:         "load",
		Width:          375,
		DocumentHeight: 900,
	}))
	readMessage(t, conn)

	require.NoError(t, conn.WriteJSON(Event{Action: "resize", Width: 400, DocumentHeight: 980}))
	require.NoError(t, conn.WriteJSON(Event{Action: "resize", Width: 420, DocumentHeight: 1000}))

	msg := readMessage(t, conn)
	assert.Equal(t, 1000, msg.IframeHeight, "debounced report uses the latest measurement")
}

func TestBridgeTransitionEndFilter(t *testing.T) {
	conn := dialTestHandler(t)

	require.NoError(t, conn.WriteJSON(Event{Action: "transitionEnd", Property: "padding-bottom", DocumentHeight: 500}))
	require.NoError(t, conn.WriteJSON(Event{Action: "transitionEnd", Property: "padding-top", DocumentHeight: 520}))

	msg := readMessage(t, conn)
	assert.Equal(t, 520, msg.IframeHeight, "padding-bottom transition must not report")
}
