package memory

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"trivia-service/internal/domain"
)

func TestTransportJoinRespectsRosterLimit(t *testing.T) {
	ctx := context.Background()
	hub := NewTransport(3)

	code, err := hub.CreateSession(ctx, domain.ModeMultiplayer)
	if err != nil {
		t.Fatalf("create session: %v", err)
	}
	if !regexp.MustCompile(`^\d{6}$`).MatchString(code) {
		t.Fatalf("expected six-digit code, got %q", code)
	}

	for i := 0; i < 2; i++ {
		if _, err := hub.JoinSession(ctx, code); err != nil {
			t.Fatalf("join %d: %v", i, err)
		}
	}
	if _, err := hub.JoinSession(ctx, code); !errors.Is(err, domain.ErrSessionFull) {
		t.Fatalf("expected ErrSessionFull, got %v", err)
	}
	if _, err := hub.JoinSession(ctx, "000000"); !errors.Is(err, domain.ErrJoinCodeNotFound) {
		t.Fatalf("expected ErrJoinCodeNotFound, got %v", err)
	}
}

func TestTransportPublishesDecks(t *testing.T) {
	ctx := context.Background()
	hub := NewTransport(4)
	code, _ := hub.CreateSession(ctx, domain.ModeMultiplayer)

	if _, err := hub.Deck(ctx, code); !errors.Is(err, domain.ErrDeckNotReady) {
		t.Fatalf("expected ErrDeckNotReady, got %v", err)
	}
	if _, err := hub.PublishDeck(ctx, "000000", []string{"q1"}); !errors.Is(err, domain.ErrJoinCodeNotFound) {
		t.Fatalf("expected ErrJoinCodeNotFound, got %v", err)
	}

	ids := []string{"q3", "q1"}
	first, err := hub.PublishDeck(ctx, code, ids)
	if err != nil {
		t.Fatalf("publish: %v", err)
	}
	ids[0] = "mutated"
	second, err := hub.PublishDeck(ctx, code, []string{"q2"})
	if err != nil {
		t.Fatalf("publish rematch: %v", err)
	}
	if first.Seq != 1 || second.Seq != 2 {
		t.Fatalf("expected sequences 1 and 2, got %d and %d", first.Seq, second.Seq)
	}

	deck, err := hub.Deck(ctx, code)
	if err != nil {
		t.Fatalf("deck: %v", err)
	}
	if deck.Seq != 2 || len(deck.QuestionIDs) != 1 || deck.QuestionIDs[0] != "q2" {
		t.Fatalf("expected latest deck, got %+v", deck)
	}
	if first.QuestionIDs[0] != "q3" {
		t.Fatalf("published deck shares caller slice: %+v", first)
	}
}

func TestTransportFansOutOutcomes(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	hub := NewTransport(4)

	code, _ := hub.CreateSession(ctx, domain.ModeMultiplayer)
	guest, err := hub.JoinSession(ctx, code)
	if err != nil {
		t.Fatalf("join: %v", err)
	}

	hostCh, err := hub.SubscribeOutcomes(ctx, code, "host")
	if err != nil {
		t.Fatalf("subscribe host: %v", err)
	}
	guestCh, err := hub.SubscribeOutcomes(ctx, code, guest)
	if err != nil {
		t.Fatalf("subscribe guest: %v", err)
	}

	want := domain.Outcome{JoinCode: code, QuestionID: "q1", ParticipantID: "host", ChosenIndex: 2, IsCorrect: true, ScoreAfter: 300}
	if err := hub.BroadcastOutcome(ctx, want); err != nil {
		t.Fatalf("broadcast: %v", err)
	}

	select {
	case got := <-guestCh:
		if got != want {
			t.Fatalf("unexpected outcome %+v", got)
		}
	case <-time.After(time.Second):
		t.Fatalf("guest did not receive outcome")
	}

	select {
	case got := <-hostCh:
		t.Fatalf("sender received its own outcome: %+v", got)
	default:
	}

	cancel()
	select {
	case _, open := <-guestCh:
		if open {
			t.Fatalf("expected channel closed after cancel")
		}
	case <-time.After(time.Second):
		t.Fatalf("subscription was not closed")
	}
}

func TestTransportBroadcastUnknownCode(t *testing.T) {
	hub := NewTransport(4)
	err := hub.BroadcastOutcome(context.Background(), domain.Outcome{JoinCode: "123456"})
	if !errors.Is(err, domain.ErrJoinCodeNotFound) {
		t.Fatalf("expected ErrJoinCodeNotFound, got %v", err)
	}
}

func TestAchievementBoardKeepsBest(t *testing.T) {
	ctx := context.Background()
	board := NewAchievementBoard()
	sink := board.For("u1")

	_ = sink.ReportProgress(ctx, "question_master", 40)
	_ = sink.ReportProgress(ctx, "question_master", 10)
	_ = sink.SubmitScore(ctx, 900)
	_ = sink.SubmitScore(ctx, 400)

	if got := board.Progress("u1")["question_master"]; got != 40 {
		t.Fatalf("expected progress 40, got %v", got)
	}
	if best, ok := board.BestScore("u1"); !ok || best != 900 {
		t.Fatalf("expected best 900, got %d", best)
	}
	if _, ok := board.BestScore("u2"); ok {
		t.Fatalf("expected no score for unknown player")
	}
}
