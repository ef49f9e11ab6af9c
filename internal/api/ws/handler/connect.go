package wsHandler

import (
	"context"

	"quiz-service/domain"

	"github.com/gofiber/contrib/websocket"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

type Hub interface {
	RegisterClient(client *domain.Client)
}

type ConnectConfig struct {
	MessagesPerSecond float64
	Burst             int
	SendBuffer        int
}

// WebSocketConnectHandler registers each new connection with the hub and
// holds the upgrade handler open until the hub lets the client go.
type WebSocketConnectHandler struct {
	hub    Hub
	config ConnectConfig
}

type WebSocketConnectRequest struct{}

func NewWebSocketConnectHandler(hub Hub, config ConnectConfig) *WebSocketConnectHandler {
	if config.SendBuffer <= 0 {
		config.SendBuffer = 256
	}
	return &WebSocketConnectHandler{
		hub:    hub,
		config: config,
	}
}

func (h *WebSocketConnectHandler) newLimiter() *rate.Limiter {
	if h.config.MessagesPerSecond <= 0 {
		return nil
	}
	burst := h.config.Burst
	if burst <= 0 {
		burst = 1
	}
	return rate.NewLimiter(rate.Limit(h.config.MessagesPerSecond), burst)
}

func (h *WebSocketConnectHandler) HandleWS(c *websocket.Conn, ctx context.Context, req *WebSocketConnectRequest) {
	client := domain.NewClient(uuid.NewString(), c, h.config.SendBuffer, h.newLimiter())
	zap.L().Debug("websocket connected", zap.String("client", client.ID))

	h.hub.RegisterClient(client)

	select {
	case <-client.Done:
	case <-ctx.Done():
	}
}
