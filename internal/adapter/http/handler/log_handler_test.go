package handler

import (
	"bufio"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"multiwallet-trader/internal/core/domain"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogs_RecentAndEmit(t *testing.T) {
	d := setupRouter(t)
	for i := 0; i < 5; i++ {
		d.events.Publish(domain.CategoryNet, "tick", nil)
	}

	w := d.do(http.MethodPost, "/api/v1/logs", map[string]interface{}{"message": "operator <note>"})
	require.Equal(t, http.StatusCreated, w.Code)
	data := envelope(t, w)
	assert.Equal(t, domain.CategoryUI, data["category"])
	assert.Equal(t, "operator &lt;note&gt;", data["message"])

	w = d.do(http.MethodGet, "/api/v1/logs?limit=3", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		Data []domain.LogEntry `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Data, 3)
	assert.Equal(t, domain.CategoryUI, resp.Data[2].Category)

	assert.Equal(t, http.StatusBadRequest, d.do(http.MethodGet, "/api/v1/logs?limit=zero", nil).Code)
	assert.Equal(t, http.StatusBadRequest, d.do(http.MethodPost, "/api/v1/logs", map[string]string{}).Code)
}

// readEvent scans SSE lines until an event of the wanted name arrives and returns its data.
func readEvent(t *testing.T, r *bufio.Reader, want string) string {
	t.Helper()
	var event string
	for {
		line, err := r.ReadString('\n')
		require.NoError(t, err)
		line = strings.TrimRight(line, "\n")
		switch {
		case strings.HasPrefix(line, "event:"):
			event = strings.TrimPrefix(line, "event:")
		case strings.HasPrefix(line, "data:") && event == want:
			return strings.TrimPrefix(line, "data:")
		}
	}
}

func TestLogs_StreamSSE(t *testing.T) {
	d := setupRouter(t)
	d.events.Publish(domain.CategoryBuy, "before connect", nil)

	srv := httptest.NewServer(d.router)
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, srv.URL+"/api/v1/logs/stream", nil)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, "text/event-stream", resp.Header.Get("Content-Type"))
	r := bufio.NewReader(resp.Body)

	var replay []domain.LogEntry
	require.NoError(t, json.Unmarshal([]byte(readEvent(t, r, "init")), &replay))
	require.Len(t, replay, 1)
	assert.Equal(t, "before connect", replay[0].Message)

	d.events.Publish(domain.CategorySell, "after connect", nil)
	var live domain.LogEntry
	require.NoError(t, json.Unmarshal([]byte(readEvent(t, r, "log")), &live))
	assert.Equal(t, "after connect", live.Message)

	assert.NotEmpty(t, readEvent(t, r, "heartbeat"))
}

func TestLogs_StreamWebSocket(t *testing.T) {
	d := setupRouter(t)
	d.events.Publish(domain.CategoryBuy, "before connect", nil)

	srv := httptest.NewServer(d.router)
	defer srv.Close()

	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http")+"/api/v1/logs/ws", nil)
	require.NoError(t, err)
	defer conn.Close()
	_ = conn.SetReadDeadline(time.Now().Add(5 * time.Second))

	var msg wsMessage
	require.NoError(t, conn.ReadJSON(&msg))
	assert.Equal(t, "init", msg.Type)
	require.Len(t, msg.Entries, 1)

	d.events.Publish(domain.CategorySell, "after connect", nil)
	for {
		msg = wsMessage{}
		require.NoError(t, conn.ReadJSON(&msg))
		if msg.Type == "log" {
			break
		}
		assert.Equal(t, "heartbeat", msg.Type)
	}
	require.NotNil(t, msg.Entry)
	assert.Equal(t, "after connect", msg.Entry.Message)
}

func TestTail(t *testing.T) {
	entries := make([]domain.LogEntry, 5)
	for i := range entries {
		entries[i].ID = uint64(i + 1)
	}
	got := tail(entries, 2)
	require.Len(t, got, 2)
	assert.Equal(t, uint64(4), got[0].ID)
	assert.Len(t, tail(entries, 10), 5)
	assert.NotNil(t, tail(nil, 3))
}
