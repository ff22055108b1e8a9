package app

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"fitness_chat_service/internal/chat/domain"
	errprocess "fitness_chat_service/pkg/err"
	"fitness_chat_service/pkg/logger"
	"fitness_chat_service/pkg/middlewares"

	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// DefaultPingInterval how often the server pings an idle socket
const DefaultPingInterval = 30 * time.Second

// ChatWebsocketHandler socket channel entry, one HandleConnection per connection
type ChatWebsocketHandler struct {
	relay        *RelayUseCase
	pingInterval time.Duration
}

// NewChatWebsocketHandler create ChatWebsocketHandler, pingInterval <= 0 uses DefaultPingInterval
func NewChatWebsocketHandler(relay *RelayUseCase, pingInterval time.Duration) *ChatWebsocketHandler {
	if pingInterval <= 0 {
		pingInterval = DefaultPingInterval
	}
	return &ChatWebsocketHandler{
		relay:        relay,
		pingInterval: pingInterval,
	}
}

// wsClient serializes writes; the pub/sub goroutine, the ping goroutine and
// the read loop all write to the same connection.
type wsClient struct {
	conn *websocket.Conn
	mu   sync.Mutex
}

func (c *wsClient) write(messageType int, data []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn.WriteMessage(messageType, data)
}

func (c *wsClient) writeControl(messageType int, data []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn.WriteControl(messageType, data, time.Now().Add(time.Second))
}

// HandleConnection read loop of one socket until the client leaves or ctx is done
func (h *ChatWebsocketHandler) HandleConnection(ctx context.Context, conn *websocket.Conn) {
	memberID, _ := conn.Locals(middlewares.TokenMemberID).(string)
	if memberID == "" {
		closeWebSocketConnection(conn, websocket.ClosePolicyViolation, "unauthorized")
		return
	}

	connID := uuid.NewString()
	client := &wsClient{conn: conn}
	logger.Log.Info("websocket open", zap.String("member_id", memberID), zap.String("conn_id", connID))

	ticker := time.NewTicker(h.pingInterval)
	ctxClose, cancel := context.WithCancel(ctx)

	defer func() {
		ticker.Stop()
		cancel()
		h.relay.Disconnect(context.Background(), memberID, connID)
		conn.Close()
		logger.Log.Info("websocket close", zap.String("member_id", memberID), zap.String("conn_id", connID))
	}()

	conn.SetCloseHandler(func(code int, text string) error {
		logger.Log.Debug("websocket closed by client", zap.Int("code", code), zap.String("text", text))
		return nil
	})

	conn.SetPongHandler(func(appData string) error {
		h.relay.KeepAlive(ctxClose, memberID)
		return nil
	})

	conn.SetPingHandler(func(appData string) error {
		h.relay.KeepAlive(ctxClose, memberID)
		return client.writeControl(websocket.PongMessage, []byte(appData))
	})

	err := h.relay.Connect(ctxClose, memberID, connID, func(payload []byte) {
		if err := client.write(websocket.TextMessage, payload); err != nil {
			logger.Log.Error("websocket deliver", zap.String("member_id", memberID), zap.Error(err))
		}
	})
	if err != nil {
		logger.Log.Error("websocket subscribe", zap.String("member_id", memberID), zap.Error(err))
		h.sendError(client, "subscribe failed")
		return
	}

	go func() {
		for {
			select {
			case <-ticker.C:
				if err := client.write(websocket.PingMessage, []byte("ping")); err != nil {
					logger.Log.Debug("ping", zap.String("member_id", memberID), zap.Error(err))
					return
				}
			case <-ctxClose.Done():
				return
			}
		}
	}()

	for {
		mt, message, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsCloseError(err,
				websocket.CloseNormalClosure,
				websocket.CloseGoingAway,
				websocket.CloseNoStatusReceived,
			) {
				logger.Log.Debug("connection closed", zap.String("member_id", memberID))
			} else {
				logger.Log.Warn("websocket read", zap.String("member_id", memberID), zap.Error(err))
			}
			return
		}
		h.execWebsocketAction(ctxClose, client, memberID, mt, message)
	}
}

func (h *ChatWebsocketHandler) execWebsocketAction(ctx context.Context, client *wsClient, memberID string, mt int, msg []byte) {
	switch mt {
	case websocket.TextMessage:
		h.textMessageAction(ctx, client, memberID, msg)
	default:
		h.sendError(client, "unsupported message type")
	}
}

func (h *ChatWebsocketHandler) textMessageAction(ctx context.Context, client *wsClient, memberID string, msg []byte) {
	var ev domain.SocketEvent
	if err := json.Unmarshal(msg, &ev); err != nil {
		h.sendError(client, "invalid event")
		return
	}

	switch ev.Event {
	case domain.SendMessage:
		var req domain.SendMessagePayload
		if err := json.Unmarshal(ev.Data, &req); err != nil {
			h.sendError(client, "invalid sendMessage payload")
			return
		}
		if _, err := h.relay.Relay(ctx, memberID, req); err != nil {
			_, message := errprocess.Status(err)
			h.sendError(client, message)
		}
	default:
		h.sendError(client, "unknown event "+string(ev.Event))
	}
}

func (h *ChatWebsocketHandler) sendError(client *wsClient, errorMsg string) {
	ev, err := domain.NewSocketEvent(domain.SocketError, domain.SocketErrorPayload{Message: errorMsg})
	if err != nil {
		return
	}
	b, _ := json.Marshal(ev)
	if err := client.write(websocket.TextMessage, b); err != nil {
		logger.Log.Error("write message error", zap.Error(err))
	}
}

func closeWebSocketConnection(conn *websocket.Conn, code int, reason string) {
	if err := conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(code, reason)); err != nil {
		logger.Log.Error("send close message", zap.Error(err))
	}
	conn.Close()
}
