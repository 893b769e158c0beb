package handler

import (
	"io"
	"strconv"
	"time"

	"multiwallet-trader/internal/adapter/http/dto"
	"multiwallet-trader/internal/core/domain"
	"multiwallet-trader/internal/core/ports"
	"multiwallet-trader/pkg/apperror"
	"multiwallet-trader/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
)

const (
	defaultLogLimit = 200
	maxLogLimit     = 1000
	// streamReplay is how many buffered entries a new stream subscriber receives first.
	streamReplay     = 200
	streamBuffer     = 256
	defaultHeartbeat = 15 * time.Second
	wsWriteTimeout   = 10 * time.Second
)

// LogHandler exposes the operational event log: recent entries, live streams
// over SSE and WebSocket, and operator emission.
type LogHandler struct {
	events    ports.EventStream
	heartbeat time.Duration
	upgrader  websocket.Upgrader
	log       zerolog.Logger
}

// NewLogHandler creates a new LogHandler. heartbeat <= 0 uses 15s.
func NewLogHandler(events ports.EventStream, heartbeat time.Duration, log zerolog.Logger) *LogHandler {
	if heartbeat <= 0 {
		heartbeat = defaultHeartbeat
	}
	return &LogHandler{
		events:    events,
		heartbeat: heartbeat,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
		},
		log: log,
	}
}

// Recent handles GET /api/v1/logs?limit=.
func (h *LogHandler) Recent(c *gin.Context) {
	limit := defaultLogLimit
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			response.Error(c, apperror.Validation("limit must be a positive integer"))
			return
		}
		limit = min(n, maxLogLimit)
	}
	response.OK(c, h.events.Recent(limit))
}

// Emit handles POST /api/v1/logs.
func (h *LogHandler) Emit(c *gin.Context) {
	var req dto.EmitLogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}
	dto.SanitizeStruct(&req)

	category := req.Category
	if category == "" {
		category = domain.CategoryUI
	}
	response.Created(c, h.events.Publish(category, req.Message, req.Data))
}

// Stream handles GET /api/v1/logs/stream as Server-Sent Events: one "init" event
// with the recent history, then a "log" event per entry and periodic heartbeats.
func (h *LogHandler) Stream(c *gin.Context) {
	replay, live, unsubscribe := h.events.Subscribe(streamBuffer)
	defer unsubscribe()

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")

	c.SSEvent("init", tail(replay, streamReplay))
	c.Writer.Flush()

	ticker := time.NewTicker(h.heartbeat)
	defer ticker.Stop()

	ctx := c.Request.Context()
	c.Stream(func(w io.Writer) bool {
		select {
		case <-ctx.Done():
			return false
		case entry, ok := <-live:
			if !ok {
				return false
			}
			c.SSEvent("log", entry)
			return true
		case t := <-ticker.C:
			c.SSEvent("heartbeat", t.Unix())
			return true
		}
	})
}

// wsMessage is one frame of the WebSocket log stream.
type wsMessage struct {
	Type    string            `json:"type"` // init, log, heartbeat
	Entries []domain.LogEntry `json:"entries,omitempty"`
	Entry   *domain.LogEntry  `json:"entry,omitempty"`
	Time    int64             `json:"ts,omitempty"`
}

// WebSocket handles GET /api/v1/logs/ws with the same frames as the SSE stream.
func (h *LogHandler) WebSocket(c *gin.Context) {
	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		// Upgrade already wrote the HTTP error.
		h.log.Debug().Err(err).Msg("websocket upgrade failed")
		return
	}
	defer conn.Close()

	replay, live, unsubscribe := h.events.Subscribe(streamBuffer)
	defer unsubscribe()

	// The client never sends data frames; reading only detects the close.
	closed := make(chan struct{})
	go func() {
		defer close(closed)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	write := func(m wsMessage) bool {
		_ = conn.SetWriteDeadline(time.Now().Add(wsWriteTimeout))
		if err := conn.WriteJSON(m); err != nil {
			h.log.Debug().Err(err).Msg("websocket write failed")
			return false
		}
		return true
	}

	if !write(wsMessage{Type: "init", Entries: tail(replay, streamReplay)}) {
		return
	}

	ticker := time.NewTicker(h.heartbeat)
	defer ticker.Stop()

	for {
		select {
		case <-closed:
			return
		case entry, ok := <-live:
			if !ok {
				_ = conn.WriteControl(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseGoingAway, ""), time.Now().Add(time.Second))
				return
			}
			if !write(wsMessage{Type: "log", Entry: &entry}) {
				return
			}
		case t := <-ticker.C:
			if !write(wsMessage{Type: "heartbeat", Time: t.Unix()}) {
				return
			}
		}
	}
}

func tail(entries []domain.LogEntry, n int) []domain.LogEntry {
	if entries == nil {
		return []domain.LogEntry{}
	}
	if len(entries) > n {
		return entries[len(entries)-n:]
	}
	return entries
}
