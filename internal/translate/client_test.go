package translate

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"subtext/internal/captions"
	"subtext/internal/services"
)

func segmentFixture() []captions.Segment {
	return []captions.Segment{
		{Start: 0, Duration: 2, Text: "Hello"},
		{Start: 2, Duration: 2, Text: "New Battery Pack"},
	}
}

func chatServer(t *testing.T, content string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
		payload := map[string]any{
			"choices": []any{
				map[string]any{"message": map[string]any{"content": content}},
			},
		}
		if err := json.NewEncoder(w).Encode(payload); err != nil {
			t.Fatalf("encode response: %v", err)
		}
	}))
}

func TestNewClientRequiresAPIKey(t *testing.T) {
	_, err := NewClient(Config{})
	if !errors.Is(err, services.ErrConfiguration) {
		t.Fatalf("expected ErrConfiguration, got %v", err)
	}
}

func TestTranslateSameLanguagePassThrough(t *testing.T) {
	client, err := NewClient(Config{APIKey: "test", BaseURL: "http://unused.invalid"})
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	out, err := client.Translate(context.Background(), segmentFixture(), "en", "en-US", map[string]string{"battery": "batterie"})
	if err != nil {
		t.Fatalf("Translate returned error: %v", err)
	}
	for i, seg := range out {
		if seg.TranslatedText != seg.OriginalText {
			t.Fatalf("expected identity at %d, got %+v", i, seg)
		}
	}
}

func TestTranslateJSONArrayReply(t *testing.T) {
	server := chatServer(t, `["Salut", "Nouveau bloc battery"]`)
	defer server.Close()

	client, err := NewClient(Config{APIKey: "test", BaseURL: server.URL})
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	out, err := client.Translate(context.Background(), segmentFixture(), "en", "fr", map[string]string{"battery": "batterie"})
	if err != nil {
		t.Fatalf("Translate returned error: %v", err)
	}
	if len(out) != 2 {
		t.Fatalf("expected 2 segments, got %d", len(out))
	}
	if out[0].TranslatedText != "Salut" {
		t.Fatalf("unexpected translation %q", out[0].TranslatedText)
	}
	if out[1].TranslatedText != "Nouveau bloc batterie" {
		t.Fatalf("expected dictionary enforcement, got %q", out[1].TranslatedText)
	}
	if out[1].OriginalText != "New Battery Pack" {
		t.Fatalf("original text lost: %q", out[1].OriginalText)
	}
}

func TestTranslateNumberedListReplyMatchesJSONReply(t *testing.T) {
	jsonServer := chatServer(t, `["Salut", "Bonjour"]`)
	defer jsonServer.Close()
	listServer := chatServer(t, "1. Salut\n2. Bonjour")
	defer listServer.Close()

	segments := []captions.Segment{{Text: "Hi"}, {Text: "Hello"}}

	jsonClient, _ := NewClient(Config{APIKey: "test", BaseURL: jsonServer.URL})
	listClient, _ := NewClient(Config{APIKey: "test", BaseURL: listServer.URL})

	fromJSON, err := jsonClient.Translate(context.Background(), segments, "en", "fr", nil)
	if err != nil {
		t.Fatalf("json Translate: %v", err)
	}
	fromList, err := listClient.Translate(context.Background(), segments, "en", "fr", nil)
	if err != nil {
		t.Fatalf("list Translate: %v", err)
	}
	for i := range fromJSON {
		if fromJSON[i].TranslatedText != fromList[i].TranslatedText {
			t.Fatalf("reply shapes disagree at %d: %q vs %q", i, fromJSON[i].TranslatedText, fromList[i].TranslatedText)
		}
	}
}

func TestTranslateUnparseableReplyKeepsLength(t *testing.T) {
	server := chatServer(t, "I cannot follow instructions today.")
	defer server.Close()

	client, _ := NewClient(Config{APIKey: "test", BaseURL: server.URL})
	out, err := client.Translate(context.Background(), segmentFixture(), "en", "fr", nil)
	if err != nil {
		t.Fatalf("Translate returned error: %v", err)
	}
	if len(out) != 2 {
		t.Fatalf("expected invariant length 2, got %d", len(out))
	}
	for _, seg := range out {
		if seg.Recovered {
			t.Fatalf("expected degraded slots to be marked, got %+v", seg)
		}
		if seg.TranslatedText == "" {
			t.Fatal("TranslatedText must never be empty")
		}
	}
}

func TestTranslateHTTPErrorCarriesUpstreamMessage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"error": map[string]any{"message": "rate limited"},
		})
	}))
	defer server.Close()

	client, _ := NewClient(Config{APIKey: "test", BaseURL: server.URL})
	_, err := client.Translate(context.Background(), segmentFixture(), "en", "fr", nil)
	if !errors.Is(err, services.ErrTranslation) {
		t.Fatalf("expected ErrTranslation, got %v", err)
	}
	if !strings.Contains(err.Error(), "rate limited") {
		t.Fatalf("expected upstream message in error, got %v", err)
	}
}

func TestTranslateEmptyResponse(t *testing.T) {
	server := chatServer(t, "")
	defer server.Close()

	client, _ := NewClient(Config{APIKey: "test", BaseURL: server.URL})
	_, err := client.Translate(context.Background(), segmentFixture(), "en", "fr", nil)
	if !errors.Is(err, services.ErrTranslation) {
		t.Fatalf("expected ErrTranslation for empty response, got %v", err)
	}
}
