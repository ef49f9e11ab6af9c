package wsHandler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"quiz-service/domain"
)

type call struct {
	method string
	args   []string
}

type fakeQuiz struct {
	calls []call
	err   error
}

func (f *fakeQuiz) record(method string, args ...string) error {
	f.calls = append(f.calls, call{method: method, args: args})
	return f.err
}

func (f *fakeQuiz) CreateRoom(_ context.Context, clientID, category string) error {
	return f.record("CreateRoom", clientID, category)
}

func (f *fakeQuiz) JoinRoom(_ context.Context, clientID, roomCode, name string) error {
	return f.record("JoinRoom", clientID, roomCode, name)
}

func (f *fakeQuiz) StartGame(_ context.Context, clientID, roomCode, ownerToken string) error {
	return f.record("StartGame", clientID, roomCode, ownerToken)
}

func (f *fakeQuiz) SubmitAnswer(_ context.Context, clientID, roomCode, answer string) error {
	return f.record("SubmitAnswer", clientID, roomCode, answer)
}

func (f *fakeQuiz) Disconnect(_ context.Context, clientID string) {
	f.record("Disconnect", clientID)
}

type fakeErrors struct {
	sent []string
}

func (f *fakeErrors) SendError(clientID, reason string) {
	f.sent = append(f.sent, reason)
}

func envelope(t *testing.T, msgType string, content interface{}) domain.Envelope {
	t.Helper()
	raw, err := json.Marshal(content)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	return domain.Envelope{Type: msgType, Content: raw}
}

func TestEventRouterDispatch(t *testing.T) {
	tests := []struct {
		name string
		env  func(t *testing.T) domain.Envelope
		want call
	}{
		{
			name: "create room",
			env: func(t *testing.T) domain.Envelope {
				return envelope(t, domain.EventCreateRoom, map[string]string{"category": "Science"})
			},
			want: call{"CreateRoom", []string{"c1", "Science"}},
		},
		{
			name: "join room",
			env: func(t *testing.T) domain.Envelope {
				return envelope(t, domain.EventJoinRoom, map[string]string{"roomCode": "ab3cd", "name": "Ana"})
			},
			want: call{"JoinRoom", []string{"c1", "ab3cd", "Ana"}},
		},
		{
			name: "start game",
			env: func(t *testing.T) domain.Envelope {
				return envelope(t, domain.EventStartGame, map[string]string{"roomCode": "AB3CD", "ownerToken": "tok"})
			},
			want: call{"StartGame", []string{"c1", "AB3CD", "tok"}},
		},
		{
			name: "submit answer",
			env: func(t *testing.T) domain.Envelope {
				return envelope(t, domain.EventSubmitAnswer, map[string]string{"roomCode": "AB3CD", "answer": "b"})
			},
			want: call{"SubmitAnswer", []string{"c1", "AB3CD", "b"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			quiz := &fakeQuiz{}
			errs := &fakeErrors{}
			router := NewEventRouter(quiz, errs)

			router.HandleEvent(context.Background(), &domain.Client{ID: "c1"}, tt.env(t))

			if len(errs.sent) != 0 {
				t.Fatalf("unexpected errors %v", errs.sent)
			}
			if len(quiz.calls) != 1 {
				t.Fatalf("calls = %+v", quiz.calls)
			}
			got := quiz.calls[0]
			if got.method != tt.want.method || fmt.Sprint(got.args) != fmt.Sprint(tt.want.args) {
				t.Fatalf("call = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestEventRouterRejectsBadPayloads(t *testing.T) {
	tests := []struct {
		name string
		env  domain.Envelope
		want string
	}{
		{"unknown type", domain.Envelope{Type: "draw_data", Content: json.RawMessage(`{}`)}, msgUnknownEvent},
		{"missing content", domain.Envelope{Type: domain.EventCreateRoom}, msgInvalidFormat},
		{"not an object", domain.Envelope{Type: domain.EventJoinRoom, Content: json.RawMessage(`"ABCDE"`)}, msgInvalidFormat},
		{"missing name", domain.Envelope{Type: domain.EventJoinRoom, Content: json.RawMessage(`{"roomCode":"ABCDE"}`)}, msgInvalidFormat},
		{"bad code", domain.Envelope{Type: domain.EventSubmitAnswer, Content: json.RawMessage(`{"roomCode":"AB-CD","answer":"a"}`)}, msgInvalidFormat},
		{"answer not a tag", domain.Envelope{Type: domain.EventSubmitAnswer, Content: json.RawMessage(`{"roomCode":"ABCDE","answer":"e"}`)}, msgInvalidFormat},
		{"upper case tag", domain.Envelope{Type: domain.EventSubmitAnswer, Content: json.RawMessage(`{"roomCode":"ABCDE","answer":"A"}`)}, msgInvalidFormat},
		{"missing token", domain.Envelope{Type: domain.EventStartGame, Content: json.RawMessage(`{"roomCode":"ABCDE"}`)}, msgInvalidFormat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			quiz := &fakeQuiz{}
			errs := &fakeErrors{}
			NewEventRouter(quiz, errs).HandleEvent(context.Background(), &domain.Client{ID: "c1"}, tt.env)

			if len(quiz.calls) != 0 {
				t.Fatalf("use case called: %+v", quiz.calls)
			}
			if len(errs.sent) != 1 || errs.sent[0] != tt.want {
				t.Fatalf("errors = %v, want [%s]", errs.sent, tt.want)
			}
		})
	}
}

func TestEventRouterErrorFrames(t *testing.T) {
	tests := []struct {
		name string
		env  domain.Envelope
		err  error
		want string
	}{
		{"unknown room on join", domain.Envelope{Type: domain.EventJoinRoom, Content: json.RawMessage(`{"roomCode":"ZZZZZ","name":"Ana"}`)}, domain.ErrRoomNotFound, msgInvalidRoom},
		{"started room on join", domain.Envelope{Type: domain.EventJoinRoom, Content: json.RawMessage(`{"roomCode":"ABCDE","name":"Ana"}`)}, domain.ErrRoomNotJoinable, msgInvalidRoom},
		{"player of another room", domain.Envelope{Type: domain.EventJoinRoom, Content: json.RawMessage(`{"roomCode":"ABCDE","name":"Ana"}`)}, domain.ErrAlreadyInRoom, domain.ErrAlreadyInRoom.Error()},
		{"empty category", domain.Envelope{Type: domain.EventCreateRoom, Content: json.RawMessage(`{"category":"History"}`)}, domain.ErrNoQuestions, msgNoQuestions},
		{"wrong token", domain.Envelope{Type: domain.EventStartGame, Content: json.RawMessage(`{"roomCode":"ABCDE","ownerToken":"x"}`)}, domain.ErrInvalidOwnerToken, domain.ErrInvalidOwnerToken.Error()},
		{"pending answer", domain.Envelope{Type: domain.EventSubmitAnswer, Content: json.RawMessage(`{"roomCode":"ABCDE","answer":"a"}`)}, domain.ErrAnswerPending, domain.ErrAnswerPending.Error()},
		{"store failure", domain.Envelope{Type: domain.EventCreateRoom, Content: json.RawMessage(`{"category":"Science"}`)}, errors.New("connection refused"), msgInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			quiz := &fakeQuiz{err: tt.err}
			errs := &fakeErrors{}
			NewEventRouter(quiz, errs).HandleEvent(context.Background(), &domain.Client{ID: "c1"}, tt.env)

			if len(errs.sent) != 1 || errs.sent[0] != tt.want {
				t.Fatalf("errors = %v, want [%s]", errs.sent, tt.want)
			}
		})
	}
}

func TestEventRouterDisconnect(t *testing.T) {
	quiz := &fakeQuiz{}
	NewEventRouter(quiz, &fakeErrors{}).Disconnect(context.Background(), "c1")
	if len(quiz.calls) != 1 || quiz.calls[0].method != "Disconnect" {
		t.Fatalf("calls = %+v", quiz.calls)
	}
}
