package game

import (
	"crypto/subtle"
	"slices"
	"sync"
	"time"

	"quiz-service/domain"

	"go.uber.org/zap"
)

// Room statuses. A room is finished once every joined player has answered the
// whole snapshot; until then each player finishes on their own.
const (
	StatusWaiting  = "waiting"
	StatusPlaying  = "playing"
	StatusFinished = "finished"
)

// Player is a student in a room.
type Player struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Score         int       `json:"score"`
	CurrentQIndex int       `json:"currentQIndex"`
	CorrectCount  int       `json:"correctCount"`
	WrongCount    int       `json:"wrongCount"`
	Online        bool      `json:"online"`
	JoinedAt      time.Time `json:"joinedAt"`
}

// pendingAnswer is an answer shown to the player but not yet committed.
type pendingAnswer struct {
	index   int
	correct bool
	timer   Timer
}

type deadline struct {
	index int
	timer Timer
}

// Room is one teacher-led quiz session. All state is guarded by mu, including
// the timer callbacks, and frames are emitted while holding it so a player's
// events leave in order.
type Room struct {
	Code      string
	TeacherID string
	Category  string
	CreatedAt time.Time

	ownerToken string
	questions  []domain.Question
	status     string
	players    []*Player // join order
	byID       map[string]*Player
	settling   map[string]*pendingAnswer
	deadlines  map[string]*deadline
	lastActive time.Time
	closed     bool

	settings  Settings
	notifier  Notifier
	publish   func(msgType string, content interface{})
	scheduler Scheduler
	now       func() time.Time

	mu sync.Mutex
}

// OwnerToken is the capability required to start the room.
func (r *Room) OwnerToken() string {
	return r.ownerToken
}

func (r *Room) Status() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.status
}

// QuestionCount is the length of the frozen snapshot.
func (r *Room) QuestionCount() int {
	return len(r.questions)
}

func (r *Room) LastActivity() time.Time {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.lastActive
}

// Players returns copies in join order.
func (r *Room) Players() []Player {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.playersLocked()
}

// Leaderboard returns copies ranked by score.
func (r *Room) Leaderboard() []Player {
	r.mu.Lock()
	defer r.mu.Unlock()
	return Rank(r.playersLocked())
}

func (r *Room) Player(playerID string) (Player, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.byID[playerID]
	if !ok {
		return Player{}, false
	}
	return *p, true
}

// HasClient reports whether clientID is the teacher or a player of the room.
func (r *Room) HasClient(clientID string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.TeacherID == clientID {
		return true
	}
	_, ok := r.byID[clientID]
	return ok
}

// Join adds a player while the room is waiting.
func (r *Room) Join(playerID, name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed || r.status != StatusWaiting {
		return domain.ErrRoomNotJoinable
	}
	if playerID == r.TeacherID {
		return domain.ErrAlreadyJoined
	}
	if _, exists := r.byID[playerID]; exists {
		return domain.ErrAlreadyJoined
	}

	p := &Player{
		ID:       playerID,
		Name:     name,
		Online:   true,
		JoinedAt: r.now(),
	}
	r.players = append(r.players, p)
	r.byID[playerID] = p
	r.touchLocked()

	r.notifier.JoinRoom(r.Code, playerID)
	r.notifier.SendToClient(playerID, &domain.Message{
		Type:    domain.EventJoinSuccess,
		Content: JoinSuccessContent{RoomCode: r.Code, Category: r.Category},
	})
	r.sendPlayerListLocked()

	zap.L().Info("player joined room",
		zap.String("room", r.Code),
		zap.String("player", playerID),
		zap.Int("players", len(r.players)))
	return nil
}

// Start moves the room to playing and sends every player their first question.
func (r *Room) Start(token string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return domain.ErrRoomNotFound
	}
	if subtle.ConstantTimeCompare([]byte(token), []byte(r.ownerToken)) != 1 {
		return domain.ErrInvalidOwnerToken
	}
	if r.status != StatusWaiting {
		return domain.ErrAlreadyStarted
	}

	r.status = StatusPlaying
	r.touchLocked()
	for _, p := range r.players {
		r.dispatchLocked(p)
	}

	started := GameStartedContent{RoomCode: r.Code, Total: len(r.questions), Players: len(r.players)}
	r.notifier.SendToClient(r.TeacherID, &domain.Message{
		Type:    domain.EventGameStartedTeacher,
		Content: started,
	})
	r.broadcastLeaderboardLocked()
	r.publish(domain.EventGameStarted, started)

	zap.L().Info("game started", zap.String("room", r.Code), zap.Int("players", len(r.players)))
	return nil
}

// SubmitAnswer shows the player whether answer is right and schedules the
// commit after the settle delay.
func (r *Room) SubmitAnswer(playerID, answer string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return domain.ErrRoomNotFound
	}
	p, ok := r.byID[playerID]
	if !ok {
		return domain.ErrPlayerNotFound
	}
	if r.status == StatusWaiting {
		return domain.ErrGameNotStarted
	}
	if p.CurrentQIndex >= len(r.questions) {
		return domain.ErrPlayerFinished
	}
	if _, pending := r.settling[playerID]; pending {
		return domain.ErrAnswerPending
	}

	r.answerLocked(p, answer, false)
	return nil
}

// Leave handles a dropped connection. Waiting rooms forget the player; started
// rooms keep them on the leaderboard.
func (r *Room) Leave(clientID string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed || clientID == r.TeacherID {
		return
	}
	p, ok := r.byID[clientID]
	if !ok {
		return
	}

	if r.status != StatusWaiting {
		p.Online = false
		return
	}

	r.stopPlayerTimersLocked(clientID)
	delete(r.byID, clientID)
	r.players = slices.DeleteFunc(r.players, func(x *Player) bool { return x.ID == clientID })
	r.touchLocked()
	r.sendPlayerListLocked()

	zap.L().Info("player left room", zap.String("room", r.Code), zap.String("player", clientID))
}

// Close cancels every outstanding timer. Callbacks that already fired see the
// closed flag and return.
func (r *Room) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return
	}
	r.closed = true
	for id := range r.byID {
		r.stopPlayerTimersLocked(id)
	}
	r.notifier.CloseRoom(r.Code)
	r.publish(domain.EventRoomClosed, Report(r.playersLocked()))
}

func (r *Room) answerLocked(p *Player, answer string, timedOut bool) {
	index := p.CurrentQIndex
	correct := r.questions[index].IsCorrect(answer)

	if d, ok := r.deadlines[p.ID]; ok {
		d.timer.Stop()
		delete(r.deadlines, p.ID)
	}

	r.touchLocked()
	r.notifier.SendToClient(p.ID, &domain.Message{
		Type:    domain.EventAnswerResult,
		Content: AnswerResultContent{IsCorrect: correct, YourAnswer: answer, TimedOut: timedOut},
	})

	playerID := p.ID
	pending := &pendingAnswer{index: index, correct: correct}
	pending.timer = r.scheduler.AfterFunc(r.settings.SettleDelay, func() {
		r.settle(playerID, index)
	})
	r.settling[playerID] = pending
}

// settle commits the pending answer for question index.
func (r *Room) settle(playerID string, index int) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return
	}
	pending, ok := r.settling[playerID]
	if !ok || pending.index != index {
		return
	}
	delete(r.settling, playerID)

	p, ok := r.byID[playerID]
	if !ok || p.CurrentQIndex != index {
		return
	}

	if pending.correct {
		p.Score += r.settings.AnswerPoints
		p.CorrectCount++
	} else {
		p.WrongCount++
	}
	p.CurrentQIndex++
	r.touchLocked()

	r.broadcastLeaderboardLocked()

	if p.CurrentQIndex < len(r.questions) {
		r.dispatchLocked(p)
		return
	}
	r.finishLocked(p)
}

// expire fires when a player stayed silent for the whole question timeout.
func (r *Room) expire(playerID string, index int) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return
	}
	d, ok := r.deadlines[playerID]
	if !ok || d.index != index {
		return
	}
	delete(r.deadlines, playerID)

	p, ok := r.byID[playerID]
	if !ok || p.CurrentQIndex != index {
		return
	}
	if _, pending := r.settling[playerID]; pending {
		return
	}

	zap.L().Debug("question timed out",
		zap.String("room", r.Code),
		zap.String("player", playerID),
		zap.Int("index", index))
	r.answerLocked(p, "", true)
}

func (r *Room) dispatchLocked(p *Player) {
	index := p.CurrentQIndex
	q := r.questions[index]

	r.notifier.SendToClient(p.ID, &domain.Message{
		Type: domain.EventNewQuestion,
		Content: QuestionContent{
			Index:   index + 1,
			Total:   len(r.questions),
			Prompt:  q.Text,
			Image:   q.ImagePath,
			Options: q.Options(),
		},
	})

	if r.settings.QuestionTimeout > 0 {
		playerID := p.ID
		r.deadlines[playerID] = &deadline{
			index: index,
			timer: r.scheduler.AfterFunc(r.settings.QuestionTimeout, func() {
				r.expire(playerID, index)
			}),
		}
	}
}

func (r *Room) finishLocked(p *Player) {
	ranked := Rank(r.playersLocked())
	rank := RankOf(ranked, p.ID)

	r.notifier.SendToClient(p.ID, &domain.Message{
		Type: domain.EventGameFinished,
		Content: GameFinishedContent{
			Score:   p.Score,
			Correct: p.CorrectCount,
			Wrong:   p.WrongCount,
			Rank:    rank,
		},
	})
	r.publish(domain.EventPlayerFinished, PlayerFinishedEvent{
		PlayerID: p.ID,
		Name:     p.Name,
		Score:    p.Score,
		Rank:     rank,
	})

	zap.L().Info("player finished",
		zap.String("room", r.Code),
		zap.String("player", p.ID),
		zap.Int("score", p.Score),
		zap.Int("rank", rank))

	if r.status == StatusPlaying && r.allFinishedLocked() {
		r.status = StatusFinished
		r.publish(domain.EventRoomFinished, Report(ranked))
		zap.L().Info("room finished", zap.String("room", r.Code))
	}
}

func (r *Room) allFinishedLocked() bool {
	if len(r.players) == 0 {
		return false
	}
	for _, p := range r.players {
		if p.CurrentQIndex < len(r.questions) {
			return false
		}
	}
	return true
}

func (r *Room) broadcastLeaderboardLocked() {
	ranked := Rank(r.playersLocked())
	r.notifier.SendToClient(r.TeacherID, &domain.Message{
		Type:    domain.EventLiveUpdate,
		Content: PlayerListContent{Players: ranked},
	})
	r.notifier.BroadcastToRoom(r.Code, &domain.Message{
		Type:    domain.EventLeaderboardUpdate,
		Content: ranked,
	})
}

func (r *Room) sendPlayerListLocked() {
	r.notifier.SendToClient(r.TeacherID, &domain.Message{
		Type:    domain.EventUpdatePlayerList,
		Content: PlayerListContent{Players: r.playersLocked()},
	})
}

func (r *Room) stopPlayerTimersLocked(playerID string) {
	if pending, ok := r.settling[playerID]; ok {
		pending.timer.Stop()
		delete(r.settling, playerID)
	}
	if d, ok := r.deadlines[playerID]; ok {
		d.timer.Stop()
		delete(r.deadlines, playerID)
	}
}

func (r *Room) playersLocked() []Player {
	out := make([]Player, 0, len(r.players))
	for _, p := range r.players {
		out = append(out, *p)
	}
	return out
}

func (r *Room) touchLocked() {
	r.lastActive = r.now()
}
