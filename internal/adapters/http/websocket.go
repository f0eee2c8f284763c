package http

import (
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"github.com/nats-io/nats.go"

	natsadapter "github.com/samirrijal/crestfield/internal/adapters/nats"
	"github.com/samirrijal/crestfield/internal/mapview"
	"github.com/samirrijal/crestfield/internal/pkg/metrics"
)

const (
	wsPingInterval = 30 * time.Second
	wsWriteTimeout = 5 * time.Second
)

// wsSnapshot is the first message on every connection.
type wsSnapshot struct {
	Type string       `json:"type"`
	View mapview.View `json:"view"`
}

// MapEventsUpgrade rejects non-WebSocket requests and unknown sessions before upgrading.
func MapEventsUpgrade(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !websocket.IsWebSocketUpgrade(c) {
			return fiber.ErrUpgradeRequired
		}
		if _, err := deps.Maps.Get(c.Params("id")); err != nil {
			return errFromDomain(c, err)
		}
		return c.Next()
	}
}

// MapEventsHandler streams a map session's events to the browser. Events are
// relayed from NATS when a connection is available, otherwise the session is
// subscribed to directly.
func MapEventsHandler(deps *Dependencies) func(*websocket.Conn) {
	return func(c *websocket.Conn) {
		defer c.Close()

		id := c.Params("id")
		s, err := deps.Maps.Get(id)
		if err != nil {
			return
		}

		metrics.ActiveWebSockets.Inc()
		defer metrics.ActiveWebSockets.Dec()
		slog.Debug("map events client connected", "session_id", id, "remote", c.RemoteAddr().String())

		var mu sync.Mutex
		write := func(messageType int, data []byte) error {
			mu.Lock()
			defer mu.Unlock()
			_ = c.SetWriteDeadline(time.Now().Add(wsWriteTimeout))
			return c.WriteMessage(messageType, data)
		}
		writeJSON := func(v any) error {
			data, err := json.Marshal(v)
			if err != nil {
				return err
			}
			return write(websocket.TextMessage, data)
		}

		if err := writeJSON(wsSnapshot{Type: "snapshot", View: s.View()}); err != nil {
			return
		}

		var unsubscribe func()
		if deps.NATS != nil {
			sub, err := deps.NATS.Subscribe(natsadapter.MapSessionSubject(id), func(msg *nats.Msg) {
				_ = write(websocket.TextMessage, msg.Data)
			})
			if err != nil {
				slog.Warn("map events subscribe failed", "session_id", id, "error", err)
				return
			}
			unsubscribe = func() { _ = sub.Unsubscribe() }
		} else {
			unsubscribe = s.Subscribe(func(ev mapview.Event) {
				_ = writeJSON(ev)
			})
		}
		defer unsubscribe()

		done := make(chan struct{})
		defer close(done)
		go func() {
			ticker := time.NewTicker(wsPingInterval)
			defer ticker.Stop()
			for {
				select {
				case <-ticker.C:
					if err := write(websocket.PingMessage, nil); err != nil {
						return
					}
				case <-done:
					return
				}
			}
		}()

		// Client messages are ignored; reading detects the disconnect.
		for {
			if _, _, err := c.ReadMessage(); err != nil {
				break
			}
		}
		slog.Debug("map events client disconnected", "session_id", id)
	}
}
