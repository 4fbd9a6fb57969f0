package watchpage

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strconv"
	"strings"

	"subtext/internal/captions"
	"subtext/internal/captions/timedtext"
)

const (
	defaultBaseURL   = "https://www.youtube.com"
	defaultUserAgent = "Mozilla/5.0 (X11; Linux x86_64; rv:127.0) Gecko/20100101 Firefox/127.0"
)

var (
	captionTracksPattern = regexp.MustCompile(`"captionTracks":(\[.*?\])`)
	unicodeEscape        = regexp.MustCompile(`\\u[0-9a-fA-F]{4}`)
)

// Client scrapes the caption track listing out of the video's canonical watch
// page. This is the second acquisition tier, used when the structured API
// yields nothing.
type Client struct {
	baseURL    string
	userAgent  string
	httpClient *http.Client
}

// Option customizes the client.
type Option func(*Client)

// WithBaseURL overrides the watch page base (useful for tests/mocks).
func WithBaseURL(base string) Option {
	return func(c *Client) {
		base = strings.TrimSpace(base)
		if base != "" {
			c.baseURL = strings.TrimRight(base, "/")
		}
	}
}

// WithUserAgent overrides the browser identification header.
func WithUserAgent(agent string) Option {
	return func(c *Client) {
		if strings.TrimSpace(agent) != "" {
			c.userAgent = agent
		}
	}
}

// NewClient constructs the page-scrape source.
func NewClient(httpClient *http.Client, opts ...Option) *Client {
	client := &Client{
		baseURL:    defaultBaseURL,
		userAgent:  defaultUserAgent,
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
func (c *Client) Name() string { return "watchpage" }

type scrapedTrack struct {
	BaseURL      string `json:"baseUrl"`
	LanguageCode string `json:"languageCode"`
	Kind         string `json:"kind"`
	Name         struct {
		SimpleText string `json:"simpleText"`
	} `json:"name"`
}

// ListTracks extracts the caption track listing from the watch page body.
func (c *Client) ListTracks(ctx context.Context, videoID string) ([]captions.Track, error) {
	scraped, err := c.scrapeTracks(ctx, videoID)
	if err != nil {
		return nil, err
	}
	tracks := make([]captions.Track, 0, len(scraped))
	for _, track := range scraped {
		tracks = append(tracks, captions.Track{
			LanguageCode:  track.LanguageCode,
			DisplayName:   track.Name.SimpleText,
			AutoGenerated: track.Kind == "asr",
		})
	}
	return tracks, nil
}

// FetchTranscript downloads and decodes the timed-text payload for a track.
func (c *Client) FetchTranscript(ctx context.Context, videoID string, track captions.Track) ([]captions.Segment, error) {
	scraped, err := c.scrapeTracks(ctx, videoID)
	if err != nil {
		return nil, err
	}
	var transcriptURL string
	for _, candidate := range scraped {
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
		return nil, fmt.Errorf("watchpage: no transcript url for %s", track.LanguageCode)
	}
	body, err := c.get(ctx, transcriptURL)
	if err != nil {
		return nil, err
	}
	return timedtext.Decode(body, timedtext.FormatXML)
}

func (c *Client) scrapeTracks(ctx context.Context, videoID string) ([]scrapedTrack, error) {
	body, err := c.get(ctx, c.baseURL+"/watch?v="+videoID)
	if err != nil {
		return nil, err
	}
	match := captionTracksPattern.FindSubmatch(body)
	if match == nil {
		// Pages without captions simply lack the fragment.
		return nil, nil
	}
	fragment := decodeUnicodeEscapes(string(match[1]))
	var tracks []scrapedTrack
	if err := json.Unmarshal([]byte(fragment), &tracks); err != nil {
		return nil, fmt.Errorf("watchpage: parse captionTracks fragment: %w", err)
	}
	return tracks, nil
}

func (c *Client) get(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("watchpage: new request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("watchpage: fetch: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("watchpage: fetch: http %d", resp.StatusCode)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("watchpage: read body: %w", err)
	}
	return body, nil
}

// decodeUnicodeEscapes resolves \uXXXX sequences embedded in the scraped
// fragment before JSON parsing. Escapes that decode to JSON-significant
// characters are left alone so they cannot corrupt the fragment structure.
func decodeUnicodeEscapes(fragment string) string {
	return unicodeEscape.ReplaceAllStringFunc(fragment, func(escape string) string {
		value, err := strconv.ParseUint(escape[2:], 16, 32)
		if err != nil {
			return escape
		}
		r := rune(value)
		switch r {
		case '"', '\\', '{', '}', '[', ']', ',':
			return escape
		}
		if r < 0x20 {
			return escape
		}
		return string(r)
	})
}
