package innertube

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"subtext/internal/captions"
)

const playerBody = `{
  "captions": {
    "playerCaptionsTracklistRenderer": {
      "captionTracks": [
        {
          "baseUrl": "%s/api/timedtext?lang=en",
          "languageCode": "en",
          "name": {"simpleText": "English"}
        },
        {
          "baseUrl": "%s/api/timedtext?lang=fr",
          "languageCode": "fr",
          "kind": "asr",
          "name": {"runs": [{"text": "French"}, {"text": " (auto-generated)"}]}
        }
      ]
    }
  }
}`

const transcriptXML = `<?xml version="1.0" encoding="utf-8"?>
<transcript>
  <text start="0.5" dur="2.0">Hello there</text>
  <text start="2.5" dur="1.5">General greeting</text>
</transcript>`

func newFixtureServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	var server *httptest.Server
	mux.HandleFunc("/youtubei/v1/player", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "method", http.StatusMethodNotAllowed)
			return
		}
		var payload struct {
			Context struct {
				Client struct {
					ClientName    string `json:"clientName"`
					ClientVersion string `json:"clientVersion"`
				} `json:"client"`
			} `json:"context"`
			VideoID string `json:"videoId"`
		}
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		if payload.Context.Client.ClientName == "" || payload.VideoID == "" {
			http.Error(w, "missing client identification", http.StatusBadRequest)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintf(w, playerBody, server.URL, server.URL)
	})
	mux.HandleFunc("/api/timedtext", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(transcriptXML))
	})
	server = httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

func TestListTracks(t *testing.T) {
	server := newFixtureServer(t)
	client := NewClient(server.Client(), WithBaseURL(server.URL))

	tracks, err := client.ListTracks(context.Background(), "abc123")
	if err != nil {
		t.Fatalf("ListTracks returned error: %v", err)
	}
	if len(tracks) != 2 {
		t.Fatalf("expected 2 tracks, got %d", len(tracks))
	}
	if tracks[0].LanguageCode != "en" || tracks[0].AutoGenerated {
		t.Fatalf("unexpected first track %+v", tracks[0])
	}
	if tracks[0].DisplayName != "English" {
		t.Fatalf("unexpected display name %q", tracks[0].DisplayName)
	}
	if !tracks[1].AutoGenerated {
		t.Fatalf("asr kind should mark auto-generated: %+v", tracks[1])
	}
	if tracks[1].DisplayName != "French (auto-generated)" {
		t.Fatalf("runs should concatenate, got %q", tracks[1].DisplayName)
	}
}

func TestFetchTranscript(t *testing.T) {
	server := newFixtureServer(t)
	client := NewClient(server.Client(), WithBaseURL(server.URL))

	segments, err := client.FetchTranscript(context.Background(), "abc123", captions.Track{LanguageCode: "en"})
	if err != nil {
		t.Fatalf("FetchTranscript returned error: %v", err)
	}
	if len(segments) != 2 {
		t.Fatalf("expected 2 segments, got %d", len(segments))
	}
	if segments[0].Text != "Hello there" || segments[0].Start != 0.5 {
		t.Fatalf("unexpected first segment %+v", segments[0])
	}
}

func TestFetchTranscriptNoMatchingTrack(t *testing.T) {
	server := newFixtureServer(t)
	client := NewClient(server.Client(), WithBaseURL(server.URL))

	_, err := client.FetchTranscript(context.Background(), "abc123", captions.Track{LanguageCode: "de"})
	if err == nil {
		t.Fatal("expected error for unknown language")
	}
}

func TestListTracksUpstreamError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusServiceUnavailable)
	}))
	defer server.Close()

	client := NewClient(server.Client(), WithBaseURL(server.URL))
	if _, err := client.ListTracks(context.Background(), "abc123"); err == nil {
		t.Fatal("expected error for http 503")
	}
}

func TestListTracksNoCaptions(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"captions": {}}`))
	}))
	defer server.Close()

	client := NewClient(server.Client(), WithBaseURL(server.URL))
	tracks, err := client.ListTracks(context.Background(), "abc123")
	if err != nil {
		t.Fatalf("ListTracks returned error: %v", err)
	}
	if len(tracks) != 0 {
		t.Fatalf("expected empty listing, got %d", len(tracks))
	}
}
