package translate

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"subtext/internal/captions"
	"subtext/internal/glossary"
	langpkg "subtext/internal/language"
	"subtext/internal/services"
)

const (
	defaultBaseURL     = "https://api.openai.com/v1"
	defaultModel       = "gpt-4o-mini"
	defaultHTTPTimeout = 60 * time.Second
)

// Config captures the runtime settings required to talk to the translation
// model.
type Config struct {
	APIKey         string
	BaseURL        string
	Model          string
	TimeoutSeconds int
}

// Client sends caption text to a chat-completion endpoint in one grouped
// request per Translate call. It never retries on its own; retries, if any,
// are the caller's responsibility.
type Client struct {
	cfg        Config
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

// NewClient constructs a translation client. Missing credentials fail here,
// before any network call.
func NewClient(cfg Config, opts ...Option) (*Client, error) {
	cfg.APIKey = strings.TrimSpace(cfg.APIKey)
	cfg.BaseURL = strings.TrimSpace(cfg.BaseURL)
	cfg.Model = strings.TrimSpace(cfg.Model)
	if cfg.APIKey == "" {
		return nil, services.Wrap(services.ErrConfiguration, "translate", "new client", "api key required", nil)
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}
	if cfg.Model == "" {
		cfg.Model = defaultModel
	}
	timeout := defaultHTTPTimeout
	if cfg.TimeoutSeconds > 0 {
		timeout = time.Duration(cfg.TimeoutSeconds) * time.Second
	}
	client := &Client{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: timeout},
	}
	for _, opt := range opts {
		opt(client)
	}
	return client, nil
}

type chatCompletionRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatCompletionResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
		// Some providers return the streaming schema even when
		// stream=false; tolerate it as a fallback.
		Delta struct {
			Content string `json:"content"`
		} `json:"delta"`
		Text string `json:"text"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

// Translate sends all segment texts in one grouped request and returns one
// TranslatedSegment per input segment, same length and order. A same-language
// call is a pass-through that never touches the network.
func (c *Client) Translate(ctx context.Context, segments []captions.Segment, sourceLang, targetLang string, dictionary map[string]string) ([]captions.TranslatedSegment, error) {
	if len(segments) == 0 {
		return []captions.TranslatedSegment{}, nil
	}
	if langpkg.Matches(sourceLang, targetLang) {
		return captions.PassThrough(segments), nil
	}

	content, err := c.complete(ctx,
		buildSystemPrompt(sourceLang, targetLang, dictionary),
		buildUserPrompt(segments),
	)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(content) == "" {
		return nil, services.Wrap(services.ErrTranslation, "translate", "batch", "empty model response", nil)
	}

	items, recovered := parseBatch(content, len(segments))

	out := make([]captions.TranslatedSegment, len(segments))
	for i, seg := range segments {
		translated := strings.TrimSpace(items[i])
		if translated == "" {
			translated = seg.Text
		}
		translated = glossary.Apply(dictionary, translated)
		out[i] = captions.TranslatedSegment{
			Start:          seg.Start,
			Duration:       seg.Duration,
			OriginalText:   seg.Text,
			TranslatedText: translated,
			Recovered:      recovered,
		}
	}
	return out, nil
}

func (c *Client) complete(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	endpoint, err := url.JoinPath(c.cfg.BaseURL, "/chat/completions")
	if err != nil {
		return "", services.Wrap(services.ErrTranslation, "translate", "build url", "", err)
	}
	payload := chatCompletionRequest{
		Model: c.cfg.Model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: userPrompt},
		},
		Temperature: 0,
	}
	encoded, err := json.Marshal(payload)
	if err != nil {
		return "", services.Wrap(services.ErrTranslation, "translate", "encode request", "", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(encoded))
	if err != nil {
		return "", services.Wrap(services.ErrTranslation, "translate", "new request", "", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", services.Wrap(services.ErrTranslation, "translate", "request", "", err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", services.Wrap(services.ErrTranslation, "translate", "read body", "", err)
	}
	if resp.StatusCode >= http.StatusMultipleChoices {
		return "", services.Wrap(services.ErrTranslation, "translate", "request", upstreamMessage(body, resp.StatusCode), nil)
	}
	var completion chatCompletionResponse
	if err := json.Unmarshal(body, &completion); err != nil {
		return "", services.Wrap(services.ErrTranslation, "translate", "decode response", "", err)
	}
	if completion.Error != nil {
		return "", services.Wrap(services.ErrTranslation, "translate", "request", strings.TrimSpace(completion.Error.Message), nil)
	}
	for _, choice := range completion.Choices {
		for _, candidate := range []string{choice.Message.Content, choice.Delta.Content, choice.Text} {
			if trimmed := strings.TrimSpace(candidate); trimmed != "" {
				return trimmed, nil
			}
		}
	}
	return "", nil
}

// upstreamMessage prefers the provider's error message; otherwise the HTTP
// status stands in.
func upstreamMessage(body []byte, status int) string {
	var payload struct {
		Error *struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.Unmarshal(body, &payload); err == nil && payload.Error != nil {
		if msg := strings.TrimSpace(payload.Error.Message); msg != "" {
			return msg
		}
	}
	return fmt.Sprintf("http %d", status)
}
