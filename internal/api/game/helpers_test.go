package game

import (
	"context"
	"sync"
	"testing"
	"time"

	"quiz-service/domain"
)

type sentMessage struct {
	to  string
	msg *domain.Message
}

type recordingNotifier struct {
	mu        sync.Mutex
	direct    []sentMessage
	broadcast []sentMessage
	members   map[string]map[string]bool
	closed    []string
}

func newRecordingNotifier() *recordingNotifier {
	return &recordingNotifier{members: make(map[string]map[string]bool)}
}

func (n *recordingNotifier) SendToClient(clientID string, msg *domain.Message) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.direct = append(n.direct, sentMessage{to: clientID, msg: msg})
}

func (n *recordingNotifier) BroadcastToRoom(roomCode string, msg *domain.Message) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.broadcast = append(n.broadcast, sentMessage{to: roomCode, msg: msg})
}

func (n *recordingNotifier) JoinRoom(roomCode, clientID string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.members[roomCode] == nil {
		n.members[roomCode] = make(map[string]bool)
	}
	n.members[roomCode][clientID] = true
}

func (n *recordingNotifier) CloseRoom(roomCode string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.closed = append(n.closed, roomCode)
	delete(n.members, roomCode)
}

// to returns the messages of type msgType sent to clientID, oldest first.
func (n *recordingNotifier) to(clientID, msgType string) []*domain.Message {
	n.mu.Lock()
	defer n.mu.Unlock()
	var out []*domain.Message
	for _, m := range n.direct {
		if m.to == clientID && m.msg.Type == msgType {
			out = append(out, m.msg)
		}
	}
	return out
}

func (n *recordingNotifier) last(clientID, msgType string) *domain.Message {
	msgs := n.to(clientID, msgType)
	if len(msgs) == 0 {
		return nil
	}
	return msgs[len(msgs)-1]
}

func (n *recordingNotifier) broadcasts(roomCode, msgType string) []*domain.Message {
	n.mu.Lock()
	defer n.mu.Unlock()
	var out []*domain.Message
	for _, m := range n.broadcast {
		if m.to == roomCode && m.msg.Type == msgType {
			out = append(out, m.msg)
		}
	}
	return out
}

type manualTimer struct {
	delay   time.Duration
	fn      func()
	stopped bool
	fired   bool
}

func (t *manualTimer) Stop() bool {
	wasActive := !t.stopped && !t.fired
	t.stopped = true
	return wasActive
}

// manualScheduler only runs callbacks when the test says so.
type manualScheduler struct {
	mu     sync.Mutex
	timers []*manualTimer
}

func (s *manualScheduler) AfterFunc(d time.Duration, f func()) Timer {
	s.mu.Lock()
	defer s.mu.Unlock()
	t := &manualTimer{delay: d, fn: f}
	s.timers = append(s.timers, t)
	return t
}

// pending returns the active timers created with delay d.
func (s *manualScheduler) pending(d time.Duration) []*manualTimer {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*manualTimer
	for _, t := range s.timers {
		if t.delay == d && !t.stopped && !t.fired {
			out = append(out, t)
		}
	}
	return out
}

// fire runs every active timer with delay d that exists right now.
func (s *manualScheduler) fire(d time.Duration) int {
	timers := s.pending(d)
	for _, t := range timers {
		s.mu.Lock()
		t.fired = true
		s.mu.Unlock()
		t.fn()
	}
	return len(timers)
}

type staticStore struct {
	questions map[string][]domain.Question
	err       error
}

func (s *staticStore) GetQuestionsByCategory(_ context.Context, category string) ([]domain.Question, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.questions[category], nil
}

func scienceQuestions() []domain.Question {
	return []domain.Question{
		{ID: 1, Category: "Science", Text: "Which animal produces milk?", OptionA: "Chicken", OptionB: "Cow", OptionC: "Cat", OptionD: "Fish", CorrectAnswer: "b"},
		{ID: 2, Category: "Science", Text: "Which animal roars?", OptionA: "Elephant", OptionB: "Giraffe", OptionC: "Lion", OptionD: "Zebra", CorrectAnswer: "c"},
	}
}

type fixture struct {
	manager   *RoomManager
	notifier  *recordingNotifier
	scheduler *manualScheduler
	settings  Settings
}

func newFixture(t *testing.T, settings Settings) *fixture {
	t.Helper()
	f := &fixture{
		notifier:  newRecordingNotifier(),
		scheduler: &manualScheduler{},
		settings:  settings.withDefaults(),
	}
	store := &staticStore{questions: map[string][]domain.Question{"Science": scienceQuestions()}}
	f.manager = NewRoomManager(store, f.notifier, settings, WithScheduler(f.scheduler))
	return f
}

func (f *fixture) createRoom(t *testing.T) *Room {
	t.Helper()
	room, err := f.manager.CreateRoom(context.Background(), "teacher", "Science")
	if err != nil {
		t.Fatalf("CreateRoom: %v", err)
	}
	return room
}

// correctTag returns the right answer for the player's current question.
func correctTag(t *testing.T, room *Room, playerID string) string {
	t.Helper()
	p, ok := room.Player(playerID)
	if !ok {
		t.Fatalf("player %s not in room", playerID)
	}
	return room.questions[p.CurrentQIndex].CorrectAnswer
}

func wrongTag(t *testing.T, room *Room, playerID string) string {
	t.Helper()
	for _, tag := range []string{"a", "b", "c", "d"} {
		if tag != correctTag(t, room, playerID) {
			return tag
		}
	}
	return ""
}
