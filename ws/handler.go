package ws

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/Hemachand25/FreshGrocery/pkg/resp"
	"github.com/Hemachand25/FreshGrocery/services"
	"github.com/Hemachand25/FreshGrocery/utils"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

const (
	writeWait      = 10 * time.Second
	maxMessageSize = 512
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// Handler exposes hub subscriptions over websocket and server-sent events.
type Handler struct {
	Hub          *Hub
	Log          *slog.Logger
	PingInterval time.Duration
}

func NewHandler(hub *Hub, log *slog.Logger, ping time.Duration) *Handler {
	if ping <= 0 {
		ping = 30 * time.Second
	}
	return &Handler{Hub: hub, Log: log, PingInterval: ping}
}

func (h *Handler) channel(c *gin.Context) (string, bool) {
	key, err := services.SubscriptionChannel(utils.CurrentPrincipal(c), c.Query("channel"))
	switch {
	case err == nil:
		return key, true
	case errors.Is(err, services.ErrUnauthenticated):
		resp.Unauthorized(c, err.Error())
	case errors.Is(err, services.ErrInvalidInput):
		resp.BadRequest(c, err.Error())
	default:
		resp.Forbidden(c, err.Error())
	}
	return "", false
}

// GET /notifications/ws
func (h *Handler) ServeWS(c *gin.Context) {
	key, ok := h.channel(c)
	if !ok {
		return
	}

	// subscribe before the handshake completes so no event is missed
	sub, err := h.Hub.Subscribe(key)
	if err != nil {
		resp.Fail(c, http.StatusServiceUnavailable, err.Error())
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		sub.Close()
		h.Log.Warn("ws upgrade failed", slog.Any("err", err))
		return
	}

	go h.readPump(conn, sub)
	h.writePump(conn, sub)
}

// readPump only watches for the client going away; inbound messages are ignored.
func (h *Handler) readPump(conn *websocket.Conn, sub *Subscription) {
	defer sub.Close()

	conn.SetReadLimit(maxMessageSize)
	_ = conn.SetReadDeadline(time.Now().Add(2 * h.PingInterval))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(2 * h.PingInterval))
	})
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.Log.Debug("ws read", slog.String("channel", sub.Key()), slog.Any("err", err))
			}
			return
		}
	}
}

func (h *Handler) writePump(conn *websocket.Conn, sub *Subscription) {
	ticker := time.NewTicker(h.PingInterval)
	defer func() {
		ticker.Stop()
		sub.Close()
		conn.Close()
	}()

	for {
		select {
		case evt := <-sub.Events():
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteJSON(evt); err != nil {
				h.Log.Warn("ws write failed", slog.String("channel", sub.Key()), slog.Any("err", err))
				return
			}
		case <-ticker.C:
			if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait)); err != nil {
				return
			}
		case <-sub.Done():
			_ = conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), time.Now().Add(writeWait))
			return
		}
	}
}

// GET /notifications/sse
func (h *Handler) ServeSSE(c *gin.Context) {
	key, ok := h.channel(c)
	if !ok {
		return
	}

	sub, err := h.Hub.Subscribe(key)
	if err != nil {
		resp.Fail(c, http.StatusServiceUnavailable, err.Error())
		return
	}
	defer sub.Close()

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")

	ticker := time.NewTicker(h.PingInterval)
	defer ticker.Stop()

	ctx := c.Request.Context()
	c.SSEvent("ready", gin.H{"channel": key})
	c.Writer.Flush()

	c.Stream(func(w io.Writer) bool {
		select {
		case <-ctx.Done():
			return false
		case <-sub.Done():
			return false
		case evt := <-sub.Events():
			c.SSEvent(evt.Name, evt)
			return true
		case <-ticker.C:
			c.SSEvent("ping", gin.H{"at": time.Now().UTC()})
			return true
		}
	})
}
