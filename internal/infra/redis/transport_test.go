package redis

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"trivia-service/internal/domain"
)

func newTransport(t *testing.T, maxPlayers int) *Transport {
	t.Helper()
	_, client := newClient(t)
	return NewTransport(TransportConfig{
		Redis:      client,
		Prefix:     testPrefix,
		TTL:        time.Hour,
		MaxPlayers: maxPlayers,
	})
}

func TestTransportCreateAndJoin(t *testing.T) {
	ctx := context.Background()
	tr := newTransport(t, 3)

	code, err := tr.CreateSession(ctx, domain.ModeMultiplayer)
	if err != nil {
		t.Fatalf("create session: %v", err)
	}
	if !regexp.MustCompile(`^\d{6}$`).MatchString(code) {
		t.Fatalf("expected six-digit code, got %q", code)
	}

	first, err := tr.JoinSession(ctx, code)
	if err != nil {
		t.Fatalf("join: %v", err)
	}
	second, err := tr.JoinSession(ctx, code)
	if err != nil {
		t.Fatalf("join 2: %v", err)
	}
	if _, err := tr.JoinSession(ctx, code); !errors.Is(err, domain.ErrSessionFull) {
		t.Fatalf("expected ErrSessionFull, got %v", err)
	}

	roster, err := tr.Roster(ctx, code)
	if err != nil {
		t.Fatalf("roster: %v", err)
	}
	if len(roster) != 2 || roster[0] != first || roster[1] != second {
		t.Fatalf("unexpected roster %v", roster)
	}

	if _, err := tr.JoinSession(ctx, "000000"); !errors.Is(err, domain.ErrJoinCodeNotFound) {
		t.Fatalf("expected ErrJoinCodeNotFound, got %v", err)
	}
}

func TestTransportDecks(t *testing.T) {
	ctx := context.Background()
	tr := newTransport(t, 4)

	code, err := tr.CreateSession(ctx, domain.ModeMultiplayer)
	if err != nil {
		t.Fatalf("create session: %v", err)
	}
	if _, err := tr.Deck(ctx, code); !errors.Is(err, domain.ErrDeckNotReady) {
		t.Fatalf("expected ErrDeckNotReady, got %v", err)
	}
	if _, err := tr.Deck(ctx, "000000"); !errors.Is(err, domain.ErrJoinCodeNotFound) {
		t.Fatalf("expected ErrJoinCodeNotFound, got %v", err)
	}
	if _, err := tr.PublishDeck(ctx, "000000", []string{"q1"}); !errors.Is(err, domain.ErrJoinCodeNotFound) {
		t.Fatalf("expected ErrJoinCodeNotFound on publish, got %v", err)
	}

	first, err := tr.PublishDeck(ctx, code, []string{"q3", "q1", "q2"})
	if err != nil {
		t.Fatalf("publish: %v", err)
	}
	if first.Seq != 1 {
		t.Fatalf("expected seq 1, got %d", first.Seq)
	}
	got, err := tr.Deck(ctx, code)
	if err != nil {
		t.Fatalf("deck: %v", err)
	}
	if got.Seq != 1 || len(got.QuestionIDs) != 3 || got.QuestionIDs[0] != "q3" || got.QuestionIDs[2] != "q2" {
		t.Fatalf("unexpected deck %+v", got)
	}

	if _, err := tr.PublishDeck(ctx, code, []string{"q2"}); err != nil {
		t.Fatalf("publish rematch: %v", err)
	}
	got, err = tr.Deck(ctx, code)
	if err != nil {
		t.Fatalf("deck after rematch: %v", err)
	}
	if got.Seq != 2 || len(got.QuestionIDs) != 1 || got.QuestionIDs[0] != "q2" {
		t.Fatalf("expected rematch deck, got %+v", got)
	}
}

func TestTransportPublishesOutcomesToOtherParticipants(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	tr := newTransport(t, 4)

	code, err := tr.CreateSession(ctx, domain.ModeMultiplayer)
	if err != nil {
		t.Fatalf("create session: %v", err)
	}
	guest, err := tr.JoinSession(ctx, code)
	if err != nil {
		t.Fatalf("join: %v", err)
	}

	hostCh, err := tr.SubscribeOutcomes(ctx, code, "host")
	if err != nil {
		t.Fatalf("subscribe host: %v", err)
	}
	guestCh, err := tr.SubscribeOutcomes(ctx, code, guest)
	if err != nil {
		t.Fatalf("subscribe guest: %v", err)
	}

	want := domain.Outcome{JoinCode: code, QuestionID: "q7", ParticipantID: guest, ChosenIndex: 1, IsCorrect: true, ScoreAfter: 275}
	if err := tr.BroadcastOutcome(ctx, want); err != nil {
		t.Fatalf("broadcast: %v", err)
	}

	select {
	case got := <-hostCh:
		if got != want {
			t.Fatalf("unexpected outcome %+v", got)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("host did not receive outcome")
	}

	select {
	case got := <-guestCh:
		t.Fatalf("sender received its own outcome: %+v", got)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestTransportSubscriptionEndsWithContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	tr := newTransport(t, 4)

	code, _ := tr.CreateSession(context.Background(), domain.ModeMultiplayer)
	ch, err := tr.SubscribeOutcomes(ctx, code, "host")
	if err != nil {
		t.Fatalf("subscribe: %v", err)
	}

	cancel()
	select {
	case _, open := <-ch:
		if open {
			t.Fatalf("expected closed channel")
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("subscription was not closed")
	}
}
