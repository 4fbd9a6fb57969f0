package transcriptcache

import (
	"context"
	"path/filepath"
	"testing"

	"subtext/internal/captions"
)

func openStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "cache.db"))
	if err != nil {
		t.Fatalf("Open returned error: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestGetMiss(t *testing.T) {
	store := openStore(t)
	_, ok, err := store.Get(context.Background(), "vid", "en", false)
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if ok {
		t.Fatal("expected a miss on an empty cache")
	}
}

func TestPutGetRoundTrip(t *testing.T) {
	store := openStore(t)
	segments := []captions.Segment{
		{Start: 0, Duration: 1.5, Text: "hello"},
		{Start: 1.5, Duration: 2, Text: "world"},
	}
	entry := Entry{
		VideoID: "vid", LanguageCode: "en", AutoGenerated: true,
		Source: "innertube", Segments: segments,
	}
	if err := store.Put(context.Background(), entry); err != nil {
		t.Fatalf("Put returned error: %v", err)
	}

	cached, ok, err := store.Get(context.Background(), "vid", "en", true)
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if !ok {
		t.Fatal("expected a hit")
	}
	if len(cached.Segments) != 2 || cached.Segments[1].Text != "world" {
		t.Fatalf("unexpected segments %+v", cached.Segments)
	}
	if cached.Source != "innertube" {
		t.Fatalf("unexpected source %q", cached.Source)
	}
	if cached.FetchedAt.IsZero() {
		t.Fatal("expected fetched_at to be populated")
	}

	// The manual/auto variants are distinct keys.
	_, ok, err = store.Get(context.Background(), "vid", "en", false)
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if ok {
		t.Fatal("manual variant must not hit the auto entry")
	}
}

func TestPutReplaces(t *testing.T) {
	store := openStore(t)
	entry := Entry{VideoID: "vid", LanguageCode: "en", Source: "watchpage",
		Segments: []captions.Segment{{Text: "old"}}}
	if err := store.Put(context.Background(), entry); err != nil {
		t.Fatalf("Put returned error: %v", err)
	}
	entry.Segments = []captions.Segment{{Text: "new"}}
	if err := store.Put(context.Background(), entry); err != nil {
		t.Fatalf("second Put returned error: %v", err)
	}
	cached, ok, _ := store.Get(context.Background(), "vid", "en", false)
	if !ok || cached.Segments[0].Text != "new" {
		t.Fatalf("expected replacement, got %+v ok=%v", cached.Segments, ok)
	}
}

func TestPurge(t *testing.T) {
	store := openStore(t)
	for _, id := range []string{"a", "b"} {
		entry := Entry{VideoID: id, LanguageCode: "en", Source: "innertube",
			Segments: []captions.Segment{{Text: id}}}
		if err := store.Put(context.Background(), entry); err != nil {
			t.Fatalf("Put returned error: %v", err)
		}
	}
	deleted, err := store.Purge(context.Background())
	if err != nil {
		t.Fatalf("Purge returned error: %v", err)
	}
	if deleted != 2 {
		t.Fatalf("expected 2 rows purged, got %d", deleted)
	}
}
