package game

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"quiz-service/domain"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	maxCodeAttempts = 16
	publishTimeout  = 5 * time.Second
)

// RoomManager is the registry of active rooms, keyed by room code.
type RoomManager struct {
	rooms map[string]*Room

	store     QuestionStore
	notifier  Notifier
	events    EventPublisher
	scheduler Scheduler
	settings  Settings
	newCode   func(length int) string
	newToken  func() string
	now       func() time.Time

	mu sync.RWMutex

	// publishing tracks in-flight lifecycle events; stopped is set by Shutdown.
	pubMu      sync.Mutex
	publishing sync.WaitGroup
	stopped    bool
}

type Option func(*RoomManager)

func WithEventPublisher(events EventPublisher) Option {
	return func(rm *RoomManager) {
		if events != nil {
			rm.events = events
		}
	}
}

func WithScheduler(s Scheduler) Option {
	return func(rm *RoomManager) { rm.scheduler = s }
}

// WithCodeGenerator replaces the random room code source.
func WithCodeGenerator(gen func(length int) string) Option {
	return func(rm *RoomManager) { rm.newCode = gen }
}

func WithClock(now func() time.Time) Option {
	return func(rm *RoomManager) { rm.now = now }
}

func NewRoomManager(store QuestionStore, notifier Notifier, settings Settings, opts ...Option) *RoomManager {
	rm := &RoomManager{
		rooms:     make(map[string]*Room),
		store:     store,
		notifier:  notifier,
		events:    NoopPublisher(),
		scheduler: RealScheduler(),
		settings:  settings.withDefaults(),
		newCode:   generateRoomCode,
		newToken:  uuid.NewString,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(rm)
	}
	return rm
}

// CreateRoom loads the category's questions, freezes a shuffled copy and
// registers the room under a fresh code.
func (rm *RoomManager) CreateRoom(ctx context.Context, teacherID, category string) (*Room, error) {
	questions, err := rm.store.GetQuestionsByCategory(ctx, category)
	if err != nil {
		return nil, fmt.Errorf("failed to load questions for %q: %w", category, err)
	}
	if len(questions) == 0 {
		return nil, domain.ErrNoQuestions
	}

	snapshot := slices.Clone(questions)
	shuffleQuestions(snapshot)

	rm.mu.Lock()
	defer rm.mu.Unlock()

	if rm.playerRoomLocked(teacherID) != nil {
		return nil, domain.ErrAlreadyInRoom
	}

	code := ""
	for attempt := 0; attempt < maxCodeAttempts; attempt++ {
		candidate := rm.newCode(rm.settings.CodeLength)
		if _, taken := rm.rooms[candidate]; !taken {
			code = candidate
			break
		}
	}
	if code == "" {
		return nil, domain.ErrCodeSpaceExhausted
	}

	now := rm.now()
	room := &Room{
		Code:       code,
		TeacherID:  teacherID,
		Category:   category,
		CreatedAt:  now,
		ownerToken: rm.newToken(),
		questions:  snapshot,
		status:     StatusWaiting,
		byID:       make(map[string]*Player),
		settling:   make(map[string]*pendingAnswer),
		deadlines:  make(map[string]*deadline),
		lastActive: now,
		settings:   rm.settings,
		notifier:   rm.notifier,
		scheduler:  rm.scheduler,
		now:        rm.now,
	}
	room.publish = func(msgType string, content interface{}) {
		rm.publish(code, msgType, content)
	}
	rm.rooms[code] = room
	rm.notifier.JoinRoom(code, teacherID)
	// the owner token stays private to the teacher connection
	rm.publish(code, domain.EventRoomCreated, map[string]interface{}{
		"category": category,
		"total":    len(snapshot),
	})

	zap.L().Info("room created",
		zap.String("room", code),
		zap.String("category", category),
		zap.Int("questions", len(snapshot)))
	return room, nil
}

// GetRoom returns nil for unknown codes.
func (rm *RoomManager) GetRoom(code string) *Room {
	rm.mu.RLock()
	defer rm.mu.RUnlock()
	return rm.rooms[code]
}

// JoinRoom adds clientID as a player of the room. A client belongs to at most
// one room, as teacher or player.
func (rm *RoomManager) JoinRoom(code, clientID, name string) error {
	rm.mu.Lock()
	defer rm.mu.Unlock()

	room, ok := rm.rooms[code]
	if !ok {
		return domain.ErrRoomNotFound
	}
	for _, other := range rm.rooms {
		if other != room && other.HasClient(clientID) {
			return domain.ErrAlreadyInRoom
		}
	}
	return room.Join(clientID, name)
}

// playerRoomLocked returns the room clientID plays in. Caller holds rm.mu.
func (rm *RoomManager) playerRoomLocked(clientID string) *Room {
	for _, room := range rm.rooms {
		if _, ok := room.Player(clientID); ok {
			return room
		}
	}
	return nil
}

// DeleteRoom unregisters the room and cancels its timers.
func (rm *RoomManager) DeleteRoom(code string) {
	rm.mu.Lock()
	room, ok := rm.rooms[code]
	delete(rm.rooms, code)
	rm.mu.Unlock()

	if ok {
		room.Close()
		zap.L().Info("room deleted", zap.String("room", code))
	}
}

// FindRoomByClientID returns the room clientID teaches or plays in.
func (rm *RoomManager) FindRoomByClientID(clientID string) *Room {
	rm.mu.RLock()
	defer rm.mu.RUnlock()
	for _, room := range rm.rooms {
		if room.HasClient(clientID) {
			return room
		}
	}
	return nil
}

func (rm *RoomManager) Count() int {
	rm.mu.RLock()
	defer rm.mu.RUnlock()
	return len(rm.rooms)
}

// ReapIdle deletes rooms without activity for longer than ttl and returns how
// many were removed.
func (rm *RoomManager) ReapIdle(ttl time.Duration) int {
	cutoff := rm.now().Add(-ttl)

	rm.mu.RLock()
	var idle []string
	for code, room := range rm.rooms {
		if room.LastActivity().Before(cutoff) {
			idle = append(idle, code)
		}
	}
	rm.mu.RUnlock()

	for _, code := range idle {
		rm.DeleteRoom(code)
	}
	return len(idle)
}

// StartCleanupJob reaps idle rooms every interval until ctx is done.
func (rm *RoomManager) StartCleanupJob(ctx context.Context, interval, ttl time.Duration) {
	if interval <= 0 || ttl <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if n := rm.ReapIdle(ttl); n > 0 {
				zap.L().Info("idle rooms reaped", zap.Int("count", n))
			}
		case <-ctx.Done():
			return
		}
	}
}

func (rm *RoomManager) publish(roomCode, msgType string, content interface{}) {
	rm.pubMu.Lock()
	defer rm.pubMu.Unlock()
	if rm.stopped {
		zap.L().Debug("event dropped after shutdown", zap.String("room", roomCode), zap.String("type", msgType))
		return
	}

	rm.publishing.Add(1)
	go func() {
		defer rm.publishing.Done()
		ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
		defer cancel()
		rm.events.PublishMessage(ctx, roomCode, msgType, content)
	}()
}

// Shutdown closes every room and waits for the lifecycle events already
// handed to the publisher. Later events are dropped.
func (rm *RoomManager) Shutdown() {
	rm.mu.RLock()
	codes := make([]string, 0, len(rm.rooms))
	for code := range rm.rooms {
		codes = append(codes, code)
	}
	rm.mu.RUnlock()

	for _, code := range codes {
		rm.DeleteRoom(code)
	}

	rm.pubMu.Lock()
	rm.stopped = true
	rm.pubMu.Unlock()
	rm.publishing.Wait()
}
