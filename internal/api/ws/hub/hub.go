package hub

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"quiz-service/domain"

	"github.com/gofiber/contrib/websocket"
	"go.uber.org/zap"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 4096
)

// EventHandler consumes decoded inbound frames. HandleEvent runs on the
// client's read goroutine, so frames of one connection are handled in order.
type EventHandler interface {
	HandleEvent(ctx context.Context, client *domain.Client, env domain.Envelope)
	Disconnect(ctx context.Context, clientID string)
}

// Hub tracks connections by id and their room channels by room code.
type Hub struct {
	clients map[string]*domain.Client
	rooms   map[string]map[string]struct{}

	register   chan *domain.Client
	unregister chan *domain.Client

	handler EventHandler
	ctx     context.Context

	mutex sync.RWMutex
}

func NewHub() *Hub {
	return &Hub{
		clients:    make(map[string]*domain.Client),
		rooms:      make(map[string]map[string]struct{}),
		register:   make(chan *domain.Client),
		unregister: make(chan *domain.Client, 64),
		ctx:        context.Background(),
	}
}

// SetEventHandler must be called before Run.
func (h *Hub) SetEventHandler(handler EventHandler) {
	h.handler = handler
}

// Run serves register and unregister requests until ctx is done.
func (h *Hub) Run(ctx context.Context) {
	h.ctx = ctx
	for {
		select {
		case client := <-h.register:
			h.registerClient(client)
			go h.readPump(client)
			go h.writePump(client)
		case client := <-h.unregister:
			h.unregisterClient(client)
		case <-ctx.Done():
			h.closeAll()
			return
		}
	}
}

func (h *Hub) RegisterClient(client *domain.Client) {
	h.register <- client
}

func (h *Hub) requestUnregister(client *domain.Client) {
	select {
	case h.unregister <- client:
	case <-h.ctx.Done():
	}
}

func (h *Hub) registerClient(client *domain.Client) {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	h.clients[client.ID] = client
	zap.L().Debug("client registered", zap.String("client", client.ID), zap.Int("clients", len(h.clients)))
}

// unregisterClient drops the client and its room memberships. The disconnect
// callback runs after the hub lock is released because it reaches into rooms,
// which call back into the hub.
func (h *Hub) unregisterClient(client *domain.Client) {
	h.mutex.Lock()
	current, ok := h.clients[client.ID]
	if !ok || current != client {
		h.mutex.Unlock()
		return
	}
	delete(h.clients, client.ID)
	for code, members := range h.rooms {
		delete(members, client.ID)
		if len(members) == 0 {
			delete(h.rooms, code)
		}
	}
	remaining := len(h.clients)
	h.mutex.Unlock()

	client.Close()
	zap.L().Debug("client unregistered", zap.String("client", client.ID), zap.Int("clients", remaining))

	if h.handler != nil {
		go h.handler.Disconnect(h.ctx, client.ID)
	}
}

func (h *Hub) closeAll() {
	h.mutex.Lock()
	clients := make([]*domain.Client, 0, len(h.clients))
	for _, c := range h.clients {
		clients = append(clients, c)
	}
	h.clients = make(map[string]*domain.Client)
	h.rooms = make(map[string]map[string]struct{})
	h.mutex.Unlock()

	for _, c := range clients {
		c.Close()
	}
}

// JoinRoom subscribes clientID to the room channel.
func (h *Hub) JoinRoom(roomCode, clientID string) {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	members, ok := h.rooms[roomCode]
	if !ok {
		members = make(map[string]struct{})
		h.rooms[roomCode] = members
	}
	members[clientID] = struct{}{}
}

// CloseRoom drops the room channel. Connections stay open.
func (h *Hub) CloseRoom(roomCode string) {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	delete(h.rooms, roomCode)
}

func (h *Hub) SendToClient(clientID string, msg *domain.Message) {
	messageBytes, err := json.Marshal(msg)
	if err != nil {
		zap.L().Error("Failed to marshal message", zap.String("type", msg.Type), zap.Error(err))
		return
	}

	h.mutex.RLock()
	defer h.mutex.RUnlock()

	client, ok := h.clients[clientID]
	if !ok {
		return
	}
	h.enqueue(client, messageBytes)
}

func (h *Hub) BroadcastToRoom(roomCode string, msg *domain.Message) {
	messageBytes, err := json.Marshal(msg)
	if err != nil {
		zap.L().Error("Failed to marshal message", zap.String("type", msg.Type), zap.Error(err))
		return
	}

	h.mutex.RLock()
	defer h.mutex.RUnlock()

	for clientID := range h.rooms[roomCode] {
		if client, ok := h.clients[clientID]; ok {
			h.enqueue(client, messageBytes)
		}
	}
}

// enqueue never blocks. Caller holds the read lock, so client.Send is open.
func (h *Hub) enqueue(client *domain.Client, payload []byte) {
	select {
	case client.Send <- payload:
	default:
		zap.L().Warn("send channel full, dropping message", zap.String("client", client.ID))
	}
}

// SendError sends an error frame with a human readable reason.
func (h *Hub) SendError(clientID, reason string) {
	h.SendToClient(clientID, &domain.Message{Type: domain.EventError, Content: reason})
}

// readPump decodes frames from the connection and hands them to the event
// handler.
func (h *Hub) readPump(client *domain.Client) {
	defer func() {
		h.requestUnregister(client)
		client.Conn.Close()
	}()

	client.Conn.SetReadLimit(maxMessageSize)
	client.Conn.SetReadDeadline(time.Now().Add(pongWait))
	client.Conn.SetPongHandler(func(string) error {
		return client.Conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, payload, err := client.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				zap.L().Warn("Client read error", zap.String("client", client.ID), zap.Error(err))
			}
			return
		}

		if client.Limiter != nil && !client.Limiter.Allow() {
			h.SendError(client.ID, "too many messages")
			continue
		}

		env, err := decodeEnvelope(payload)
		if err != nil {
			h.SendError(client.ID, "invalid message")
			continue
		}
		if h.handler != nil {
			h.handler.HandleEvent(h.ctx, client, env)
		}
	}
}

func decodeEnvelope(payload []byte) (domain.Envelope, error) {
	var env domain.Envelope
	if err := json.Unmarshal(payload, &env); err != nil {
		return env, fmt.Errorf("failed to unmarshal message: %w", err)
	}
	if env.Type == "" {
		return env, fmt.Errorf("message without type")
	}
	return env, nil
}

// writePump drains client.Send to the connection and keeps it alive with pings.
func (h *Hub) writePump(client *domain.Client) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		client.Conn.Close()
		h.requestUnregister(client)
	}()

	for {
		select {
		case msg, ok := <-client.Send:
			if !ok {
				client.WriteLock.Lock()
				client.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				client.WriteLock.Unlock()
				return
			}

			client.WriteLock.Lock()
			client.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			err := client.Conn.WriteMessage(websocket.TextMessage, msg)
			client.WriteLock.Unlock()
			if err != nil {
				zap.L().Warn("WebSocket write error", zap.String("client", client.ID), zap.Error(err))
				return
			}

		case <-ticker.C:
			client.WriteLock.Lock()
			client.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			err := client.Conn.WriteMessage(websocket.PingMessage, nil)
			client.WriteLock.Unlock()
			if err != nil {
				return
			}

		case <-client.Done:
			return
		}
	}
}
