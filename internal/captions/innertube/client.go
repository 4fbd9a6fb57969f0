package innertube

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"subtext/internal/captions"
	"subtext/internal/captions/timedtext"
)

const (
	defaultBaseURL = "https://www.youtube.com"
	playerPath     = "/youtubei/v1/player"

	clientName    = "ANDROID"
	clientVersion = "19.09.37"
)

// Client queries the structured player API for caption tracks. This is the
// first acquisition tier: a single POST with a client-identification payload,
// then a GET per track against the returned base URL.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// Option customizes the client.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithBaseURL overrides the default API base (useful for tests/mocks).
func WithBaseURL(base string) Option {
	return func(c *Client) {
		base = strings.TrimSpace(base)
		if base != "" {
			c.baseURL = strings.TrimRight(base, "/")
		}
	}
}

// NewClient constructs the structured API source.
func NewClient(httpClient *http.Client, opts ...Option) *Client {
	client := &Client{
		baseURL:    defaultBaseURL,
		httpClient: httpClient,
	}
	for _, opt := range opts {
		opt(client)
	}
	if client.httpClient == nil {
		client.httpClient = http.DefaultClient
	}
	return client
}

// Name identifies this source in resolver logs.
func (c *Client) Name() string { return "innertube" }

type playerRequest struct {
	Context playerContext `json:"context"`
	VideoID string        `json:"videoId"`
}

type playerContext struct {
	Client playerClient `json:"client"`
}

type playerClient struct {
	ClientName    string `json:"clientName"`
	ClientVersion string `json:"clientVersion"`
	HL            string `json:"hl"`
}

type playerResponse struct {
	Captions struct {
		Renderer struct {
			CaptionTracks []captionTrack `json:"captionTracks"`
		} `json:"playerCaptionsTracklistRenderer"`
	} `json:"captions"`
}

type captionTrack struct {
	BaseURL      string `json:"baseUrl"`
	LanguageCode string `json:"languageCode"`
	// Kind is absent for human-authored tracks and "asr" for auto-generated
	// ones.
	Kind string `json:"kind"`
	Name struct {
		SimpleText string `json:"simpleText"`
		Runs       []struct {
			Text string `json:"text"`
		} `json:"runs"`
	} `json:"name"`
}

func (t captionTrack) displayName() string {
	if t.Name.SimpleText != "" {
		return t.Name.SimpleText
	}
	var builder strings.Builder
	for _, run := range t.Name.Runs {
		builder.WriteString(run.Text)
	}
	return builder.String()
}

// ListTracks fetches the caption track listing for a video.
func (c *Client) ListTracks(ctx context.Context, videoID string) ([]captions.Track, error) {
	raw, err := c.playerTracks(ctx, videoID)
	if err != nil {
		return nil, err
	}
	tracks := make([]captions.Track, 0, len(raw))
	for _, track := range raw {
		tracks = append(tracks, captions.Track{
			LanguageCode:  track.LanguageCode,
			DisplayName:   track.displayName(),
			AutoGenerated: track.Kind == "asr",
		})
	}
	return tracks, nil
}

// FetchTranscript downloads and decodes the timed-text payload for a track.
func (c *Client) FetchTranscript(ctx context.Context, videoID string, track captions.Track) ([]captions.Segment, error) {
	raw, err := c.playerTracks(ctx, videoID)
	if err != nil {
		return nil, err
	}
	var transcriptURL string
	for _, candidate := range raw {
		if !strings.EqualFold(candidate.LanguageCode, track.LanguageCode) {
			continue
		}
		if (candidate.Kind == "asr") != track.AutoGenerated {
			continue
		}
		transcriptURL = candidate.BaseURL
		break
	}
	if transcriptURL == "" {
		return nil, fmt.Errorf("innertube: no transcript url for %s", track.LanguageCode)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, transcriptURL, nil)
	if err != nil {
		return nil, fmt.Errorf("innertube: transcript request: %w", err)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("innertube: transcript fetch: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("innertube: transcript fetch: http %d", resp.StatusCode)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("innertube: read transcript: %w", err)
	}
	return timedtext.Decode(body, timedtext.FormatXML)
}

func (c *Client) playerTracks(ctx context.Context, videoID string) ([]captionTrack, error) {
	payload := playerRequest{
		Context: playerContext{Client: playerClient{
			ClientName:    clientName,
			ClientVersion: clientVersion,
			HL:            "en",
		}},
		VideoID: videoID,
	}
	encoded, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("innertube: encode request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+playerPath, bytes.NewReader(encoded))
	if err != nil {
		return nil, fmt.Errorf("innertube: new request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("innertube: player request: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("innertube: player request: http %d", resp.StatusCode)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("innertube: read player response: %w", err)
	}
	var parsed playerResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("innertube: decode player response: %w", err)
	}
	return parsed.Captions.Renderer.CaptionTracks, nil
}
