package document

import (
	"strings"
	"testing"
	"time"
)

func testPlaceholders() []Placeholder {
	return []Placeholder{
		{ID: "placeholder_a", Key: "[Amount]", Type: Named, Question: `What is the "Amount"?`},
		{ID: "placeholder_b", Key: "$[____]", Type: Generic, Context: "Pay $[____] today."},
	}
}

func TestStoreCreateAndGet(t *testing.T) {
	store := NewStore(time.Hour)

	session := store.Create(testPlaceholders(), []byte("container-bytes"))
	if !strings.HasPrefix(session.ID, "session_") {
		t.Fatalf("unexpected session id format: %s", session.ID)
	}

	got, ok := store.Get(session.ID)
	if !ok {
		t.Fatal("expected session to be retrievable")
	}
	if len(got.Placeholders) != 2 {
		t.Fatalf("unexpected placeholder count: %d", len(got.Placeholders))
	}
	if string(got.OriginalFile) != "container-bytes" {
		t.Fatalf("unexpected original file: %q", got.OriginalFile)
	}
}

func TestStoreCreateCopiesFileBytes(t *testing.T) {
	store := NewStore(time.Hour)
	file := []byte("original")

	session := store.Create(testPlaceholders(), file)
	file[0] = 'X'

	got, _ := store.Get(session.ID)
	if string(got.OriginalFile) != "original" {
		t.Fatalf("stored bytes were mutated through the caller's slice: %q", got.OriginalFile)
	}
}

func TestStoreGetUnknown(t *testing.T) {
	store := NewStore(time.Hour)
	if _, ok := store.Get("session_missing"); ok {
		t.Fatal("expected absent session")
	}
}

func TestStoreDelete(t *testing.T) {
	store := NewStore(time.Hour)
	session := store.Create(testPlaceholders(), nil)

	store.Delete(session.ID)
	if _, ok := store.Get(session.ID); ok {
		t.Fatal("expected session to be deleted")
	}

	// Deleting again is a no-op.
	store.Delete(session.ID)
}

func TestStoreExpiry(t *testing.T) {
	store := NewStore(time.Hour)
	current := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return current }

	session := store.Create(testPlaceholders(), nil)

	if _, ok := store.Get(session.ID); !ok {
		t.Fatal("fresh session should be live")
	}

	current = current.Add(2 * time.Hour)
	if _, ok := store.Get(session.ID); ok {
		t.Fatal("expired session should read as absent")
	}

	if removed := store.Sweep(current); removed != 1 {
		t.Fatalf("expected sweep to remove 1 session, got %d", removed)
	}
	if store.Len() != 0 {
		t.Fatalf("expected empty store after sweep, got %d", store.Len())
	}
}

func TestStoreSweepKeepsLiveSessions(t *testing.T) {
	store := NewStore(time.Hour)
	session := store.Create(testPlaceholders(), nil)

	if removed := store.Sweep(time.Now()); removed != 0 {
		t.Fatalf("expected no removals, got %d", removed)
	}
	if _, ok := store.Get(session.ID); !ok {
		t.Fatal("live session should survive the sweep")
	}
}
