package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"trivia-service/internal/app"
	"trivia-service/internal/catalog"
	"trivia-service/internal/domain"
	"trivia-service/internal/infra/memory"
)

type message struct {
	Type    string         `json:"type"`
	Payload map[string]any `json:"payload"`
}

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	repo := memory.NewQuestionRepository(memory.NewStaticQuestionLoader(sampleQuestions()), time.Minute)
	source := catalog.NewSource(repo)
	hub := memory.NewTransport(app.DefaultMaxPlayers)

	factory := func(req app.OpenRequest) *app.Engine {
		return app.NewEngine(app.Config{
			Questions:     source,
			Transport:     hub,
			Entitlements:  req.Entitlements,
			ParticipantID: req.ParticipantID,
			DisplayName:   req.DisplayName,
			TickInterval:  time.Hour,
			Shuffle:       func([]domain.Question) {},
		})
	}
	service := app.NewGameService(memory.NewEngineStore(), factory, hub, nil)
	wsHandler := NewWSHandler(service, nil)

	mux := http.NewServeMux()
	mux.HandleFunc("/ws", wsHandler.ServeWS)
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

func dial(t *testing.T, server *httptest.Server, query string) *websocket.Conn {
	t.Helper()
	u := "ws" + strings.TrimPrefix(server.URL, "http") + "/ws?" + query
	conn, _, err := websocket.DefaultDialer.Dial(u, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

func TestWebSocketSinglePlayerFlow(t *testing.T) {
	server := newTestServer(t)
	conn := dial(t, server, "userId=u1&name=Phoebe")

	initial := readUntil(t, conn, func(m message) bool { return m.Type == "snapshot" })
	if initial.Payload["state"] != string(domain.StateNotStarted) {
		t.Fatalf("expected notStarted, got %v", initial.Payload["state"])
	}
	if initial.Payload["participantId"] != "u1" {
		t.Fatalf("expected participant u1, got %v", initial.Payload["participantId"])
	}

	send(t, conn, "start", map[string]any{"mode": "single"})
	playing := readUntil(t, conn, stateIs(domain.StatePlaying))
	question, ok := playing.Payload["question"].(map[string]any)
	if !ok || question["id"] != "q1" {
		t.Fatalf("expected first question q1, got %v", playing.Payload["question"])
	}

	send(t, conn, "answer", map[string]any{"optionIndex": 1})
	answered := readUntil(t, conn, func(m message) bool {
		return m.Type == "snapshot" && m.Payload["selected"] != nil
	})
	if answered.Payload["score"] != float64(300) {
		t.Fatalf("expected score 300, got %v", answered.Payload["score"])
	}

	send(t, conn, "next", nil)
	next := readUntil(t, conn, func(m message) bool {
		return m.Type == "snapshot" && m.Payload["position"] == float64(1)
	})
	if next.Payload["state"] != string(domain.StatePlaying) {
		t.Fatalf("expected playing, got %v", next.Payload["state"])
	}
}

func TestWebSocketRejectsBadCommands(t *testing.T) {
	server := newTestServer(t)
	conn := dial(t, server, "name=Joey")
	readUntil(t, conn, func(m message) bool { return m.Type == "snapshot" })

	tests := []struct {
		typ     string
		payload any
		want    string
	}{
		{typ: "dance", want: "unsupported message type"},
		{typ: "start", payload: map[string]any{"mode": "battle"}, want: "unknown session mode"},
		{typ: "selectCategory", payload: map[string]any{"category": "Sandwiches"}, want: "unknown category"},
		{typ: "answer", payload: map[string]any{}, want: "invalid payload"},
		{typ: "join", payload: map[string]any{"code": "000000"}, want: "join code not found"},
	}
	for _, tt := range tests {
		send(t, conn, tt.typ, tt.payload)
		msg := readUntil(t, conn, func(m message) bool { return m.Type == "error" })
		got, _ := msg.Payload["message"].(string)
		if !strings.Contains(got, tt.want) {
			t.Fatalf("%s: expected error containing %q, got %q", tt.typ, tt.want, got)
		}
	}
}

func TestWebSocketMultiplayerJoin(t *testing.T) {
	server := newTestServer(t)

	host := dial(t, server, "userId=host&name=Monica")
	readUntil(t, host, func(m message) bool { return m.Type == "snapshot" })
	send(t, host, "start", map[string]any{"mode": "multiplayer"})
	started := readUntil(t, host, stateIs(domain.StatePlaying))
	code, _ := started.Payload["joinCode"].(string)
	if len(code) != 6 {
		t.Fatalf("expected six-digit join code, got %q", code)
	}

	guest := dial(t, server, "name=Chandler")
	readUntil(t, guest, func(m message) bool { return m.Type == "snapshot" })
	send(t, guest, "join", map[string]any{"code": code})
	joined := readUntil(t, guest, func(m message) bool {
		return m.Type == "snapshot" && m.Payload["joinCode"] == code
	})
	if joined.Payload["mode"] != string(domain.ModeMultiplayer) {
		t.Fatalf("expected multiplayer mode, got %v", joined.Payload["mode"])
	}

	roster := readUntil(t, host, func(m message) bool {
		players, _ := m.Payload["players"].([]any)
		return m.Type == "snapshot" && len(players) == 2
	})
	players := roster.Payload["players"].([]any)
	if players[1].(map[string]any)["name"] != "Chandler" {
		t.Fatalf("expected Chandler on host roster, got %v", players[1])
	}
}

func stateIs(s domain.State) func(message) bool {
	return func(m message) bool {
		return m.Type == "snapshot" && m.Payload["state"] == string(s)
	}
}

func send(t *testing.T, conn *websocket.Conn, typ string, payload any) {
	t.Helper()
	msg := map[string]any{"type": typ}
	if payload != nil {
		msg["payload"] = payload
	}
	if err := conn.WriteJSON(msg); err != nil {
		t.Fatalf("write %s: %v", typ, err)
	}
}

func readUntil(t *testing.T, conn *websocket.Conn, match func(message) bool) message {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	for ctx.Err() == nil {
		var msg message
		_ = conn.SetReadDeadline(time.Now().Add(5 * time.Second))
		if err := conn.ReadJSON(&msg); err != nil {
			t.Fatalf("read json: %v", err)
		}
		if match(msg) {
			return msg
		}
	}
	t.Fatalf("no matching message before deadline")
	return message{}
}

func sampleQuestions() []domain.Question {
	return []domain.Question{
		{
			ID:           "q1",
			Category:     domain.CategoryCareer,
			Prompt:       "What does Chandler do for a living at first?",
			Options:      []string{"Chef", "Statistical analysis and data reconfiguration", "Paleontologist"},
			CorrectIndex: 1,
			Difficulty:   domain.DifficultyMedium,
		},
		{
			ID:           "q2",
			Category:     domain.CategoryPersonal,
			Prompt:       "What is Chandler's middle name?",
			Options:      []string{"Muriel", "Francis", "Eustace"},
			CorrectIndex: 0,
			Difficulty:   domain.DifficultyHard,
		},
	}
}
