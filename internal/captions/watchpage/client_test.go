package watchpage

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"subtext/internal/captions"
)

const transcriptXML = `<?xml version="1.0" encoding="utf-8"?>
<transcript>
  <text start="1.0" dur="3.0">Bonjour tout le monde</text>
</transcript>`

func newWatchServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	var server *httptest.Server
	mux.HandleFunc("/watch", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("User-Agent") == "" {
			http.Error(w, "missing user agent", http.StatusForbidden)
			return
		}
		if r.URL.Query().Get("v") == "" {
			http.Error(w, "missing video", http.StatusBadRequest)
			return
		}
		// Display name carries an upstream-style escape for ç.
		name := uescape("00e7")
		fmt.Fprintf(w, `<html><script>var ytInitialPlayerResponse = {"captionTracks":[{"baseUrl":"%s/api/timedtext?lang=fr","languageCode":"fr","name":{"simpleText":"Fran%sais"}},{"baseUrl":"%s/api/timedtext?lang=en","languageCode":"en","kind":"asr","name":{"simpleText":"English"}}],"other":true};</script></html>`,
			server.URL, name, server.URL)
	})
	mux.HandleFunc("/api/timedtext", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(transcriptXML))
	})
	server = httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

// uescape builds the six-character upstream escape sequence for a code point.
func uescape(hex string) string {
	return "\\" + "u" + hex
}

func TestListTracks(t *testing.T) {
	server := newWatchServer(t)
	client := NewClient(server.Client(), WithBaseURL(server.URL))

	tracks, err := client.ListTracks(context.Background(), "abc123")
	if err != nil {
		t.Fatalf("ListTracks returned error: %v", err)
	}
	if len(tracks) != 2 {
		t.Fatalf("expected 2 tracks, got %d", len(tracks))
	}
	if tracks[0].DisplayName != "Français" {
		t.Fatalf("unicode escape not decoded: %q", tracks[0].DisplayName)
	}
	if tracks[0].AutoGenerated || !tracks[1].AutoGenerated {
		t.Fatalf("kind mapping wrong: %+v", tracks)
	}
}

func TestListTracksPageWithoutCaptions(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html><body>no captions here</body></html>"))
	}))
	defer server.Close()

	client := NewClient(server.Client(), WithBaseURL(server.URL))
	tracks, err := client.ListTracks(context.Background(), "abc123")
	if err != nil {
		t.Fatalf("pages without the fragment must not error: %v", err)
	}
	if len(tracks) != 0 {
		t.Fatalf("expected no tracks, got %d", len(tracks))
	}
}

func TestFetchTranscript(t *testing.T) {
	server := newWatchServer(t)
	client := NewClient(server.Client(), WithBaseURL(server.URL))

	segments, err := client.FetchTranscript(context.Background(), "abc123", captions.Track{LanguageCode: "fr"})
	if err != nil {
		t.Fatalf("FetchTranscript returned error: %v", err)
	}
	if len(segments) != 1 {
		t.Fatalf("expected 1 segment, got %d", len(segments))
	}
	if segments[0].Text != "Bonjour tout le monde" {
		t.Fatalf("unexpected text %q", segments[0].Text)
	}
}

func TestFetchTranscriptUpstreamFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "blocked", http.StatusTooManyRequests)
	}))
	defer server.Close()

	client := NewClient(server.Client(), WithBaseURL(server.URL))
	_, err := client.FetchTranscript(context.Background(), "abc123", captions.Track{LanguageCode: "fr"})
	if err == nil || !strings.Contains(err.Error(), "429") {
		t.Fatalf("expected http 429 error, got %v", err)
	}
}

func TestDecodeUnicodeEscapes(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  string
	}{
		{"plain letter", "Fran" + uescape("00e7") + "ais", "Français"},
		{"quote stays escaped", "say " + uescape("0022") + "hi", "say " + uescape("0022") + "hi"},
		{"bracket stays escaped", "a" + uescape("005b") + "b", "a" + uescape("005b") + "b"},
		{"comma stays escaped", "a" + uescape("002c") + "b", "a" + uescape("002c") + "b"},
		{"control stays escaped", "a" + uescape("0000") + "b", "a" + uescape("0000") + "b"},
		{"no escapes", "plain", "plain"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := decodeUnicodeEscapes(tc.input); got != tc.want {
				t.Fatalf("decodeUnicodeEscapes(%q) = %q, want %q", tc.input, got, tc.want)
			}
		})
	}
}
