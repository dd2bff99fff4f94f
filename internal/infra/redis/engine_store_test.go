package redis

import (
	"testing"
	"time"

	"trivia-service/internal/app"
)

func TestEngineStoreSetsAndClearsKeys(t *testing.T) {
	mr, client := newClient(t)
	store := NewEngineStore(client, testPrefix, time.Minute)

	e := app.NewEngine(app.Config{})
	defer e.Close()

	store.Put("s1", e)
	if !mr.Exists("trivia:engine:s1") {
		t.Fatalf("expected redis key to be set")
	}
	if got, ok := store.Get("s1"); !ok || got != e {
		t.Fatalf("expected engine present")
	}

	store.Delete("s1")
	if mr.Exists("trivia:engine:s1") {
		t.Fatalf("expected redis key to be removed")
	}
	if _, ok := store.Get("s1"); ok {
		t.Fatalf("expected engine removed")
	}
}
