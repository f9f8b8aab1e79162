package http

import (
	"errors"
	"net/http"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
	"marketplace/internal/realtime"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = pongWait * 9 / 10
	maxMessageSize = 512
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 4096,
	CheckOrigin: func(*http.Request) bool {
		return true
	},
}

// StreamOrders handles GET /api/orders/realtime.
func (s *Server) StreamOrders(c echo.Context) error {
	return s.stream(c, realtime.OrdersTopic)
}

// StreamShopOrders handles GET /api/orders/shop/realtime/:shopId.
func (s *Server) StreamShopOrders(c echo.Context) error {
	raw, err := pathParam(c, "shopId")
	if err != nil {
		return err
	}
	shopID, err := kernel.UUIDFromString(raw)
	if err != nil {
		return errs.NewValueIsInvalidErrorWithCause("shopId", err)
	}
	return s.stream(c, realtime.ShopTopic(shopID.String()))
}

// stream subscribes before upgrading, so a full hub is reported as a plain
// HTTP error. The subscription ends when the client goes away or the hub closes.
func (s *Server) stream(c echo.Context, topic realtime.Topic) error {
	sub, err := s.hub.Subscribe(c.Request().Context(), topic)
	if err != nil {
		if errors.Is(err, realtime.ErrTooManySubscribers) || errors.Is(err, realtime.ErrHubClosed) {
			return echo.NewHTTPError(http.StatusServiceUnavailable, err.Error())
		}
		return err
	}
	defer sub.Close()

	conn, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		// The upgrader has already replied.
		s.logger.Debug("websocket upgrade failed", "topic", topic, "error", err)
		return nil
	}
	defer conn.Close()

	s.logger.Debug("websocket subscribed", "topic", topic)

	gone := make(chan struct{})
	go readUntilClosed(conn, gone)
	writeFrames(conn, sub, gone)

	s.logger.Debug("websocket unsubscribed", "topic", topic)
	return nil
}

// readUntilClosed discards client messages and answers pongs; it closes gone on
// the first read error, which is how a client disconnect surfaces.
func readUntilClosed(conn *websocket.Conn, gone chan<- struct{}) {
	defer close(gone)

	conn.SetReadLimit(maxMessageSize)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

func writeFrames(conn *websocket.Conn, sub *realtime.Subscription, gone <-chan struct{}) {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case frame, ok := <-sub.Frames():
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = conn.WriteMessage(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down"))
				return
			}
			if err := conn.WriteMessage(websocket.TextMessage, frame); err != nil {
				return
			}
		case <-ticker.C:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case <-gone:
			return
		}
	}
}
