package ytdlp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"subtext/internal/captions"
	"subtext/internal/captions/timedtext"
)

const defaultBinary = "yt-dlp"

// Executor abstracts command execution for testability.
type Executor interface {
	Run(ctx context.Context, binary string, args []string) ([]byte, error)
}

type commandExecutor struct{}

func (commandExecutor) Run(ctx context.Context, binary string, args []string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, binary, args...) //nolint:gosec
	output, err := cmd.Output()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return nil, fmt.Errorf("%s: %w: %s", binary, err, strings.TrimSpace(string(exitErr.Stderr)))
		}
		return nil, fmt.Errorf("%s: %w", binary, err)
	}
	return output, nil
}

// Option configures the client.
type Option func(*Client)

// WithExecutor injects a custom executor (primarily for tests).
func WithExecutor(exec Executor) Option {
	return func(c *Client) {
		if exec != nil {
			c.exec = exec
		}
	}
}

// WithWorkDir overrides where subtitle payloads are written. Defaults to a
// fresh temporary directory per fetch.
func WithWorkDir(dir string) Option {
	return func(c *Client) {
		c.workDir = strings.TrimSpace(dir)
	}
}

// Client invokes the external downloader as a subprocess. This is the last
// acquisition tier, used when both HTTP tiers come up empty.
type Client struct {
	binary  string
	timeout time.Duration
	workDir string
	exec    Executor
}

// New constructs a downloader client.
func New(binary string, timeoutSeconds int, opts ...Option) *Client {
	binary = strings.TrimSpace(binary)
	if binary == "" {
		binary = defaultBinary
	}
	client := &Client{
		binary:  binary,
		timeout: time.Duration(timeoutSeconds) * time.Second,
		exec:    commandExecutor{},
	}
	for _, opt := range opts {
		opt(client)
	}
	return client
}

// Name identifies this source in resolver logs.
func (c *Client) Name() string { return "ytdlp" }

// Available reports whether the downloader binary is on the host.
func (c *Client) Available() bool {
	_, err := exec.LookPath(c.binary)
	return err == nil
}

type dumpPayload struct {
	Subtitles         map[string][]subtitleVariant `json:"subtitles"`
	AutomaticCaptions map[string][]subtitleVariant `json:"automatic_captions"`
}

type subtitleVariant struct {
	Ext  string `json:"ext"`
	URL  string `json:"url"`
	Name string `json:"name"`
}

// ListTracks queries the downloader for the subtitle listing via --dump-json.
// Manual tracks precede auto-generated ones; within a kind, languages are
// sorted for a deterministic listing since the JSON maps carry no order.
func (c *Client) ListTracks(ctx context.Context, videoID string) ([]captions.Track, error) {
	ctx, cancel := c.boundContext(ctx)
	defer cancel()

	output, err := c.exec.Run(ctx, c.binary, []string{
		"--dump-json",
		"--skip-download",
		"--no-warnings",
		videoURL(videoID),
	})
	if err != nil {
		return nil, fmt.Errorf("ytdlp: list tracks: %w", err)
	}
	var payload dumpPayload
	if err := json.Unmarshal(output, &payload); err != nil {
		return nil, fmt.Errorf("ytdlp: parse dump-json: %w", err)
	}

	tracks := make([]captions.Track, 0, len(payload.Subtitles)+len(payload.AutomaticCaptions))
	tracks = append(tracks, mapTracks(payload.Subtitles, false)...)
	tracks = append(tracks, mapTracks(payload.AutomaticCaptions, true)...)
	return tracks, nil
}

func mapTracks(variants map[string][]subtitleVariant, auto bool) []captions.Track {
	langs := make([]string, 0, len(variants))
	for lang := range variants {
		langs = append(langs, lang)
	}
	sort.Strings(langs)
	tracks := make([]captions.Track, 0, len(langs))
	for _, lang := range langs {
		name := lang
		if entries := variants[lang]; len(entries) > 0 && entries[0].Name != "" {
			name = entries[0].Name
		}
		tracks = append(tracks, captions.Track{
			LanguageCode:  lang,
			DisplayName:   name,
			AutoGenerated: auto,
		})
	}
	return tracks
}

// FetchTranscript asks the downloader to write the track's json3 payload into
// a working directory and decodes it.
func (c *Client) FetchTranscript(ctx context.Context, videoID string, track captions.Track) ([]captions.Segment, error) {
	ctx, cancel := c.boundContext(ctx)
	defer cancel()

	workDir := c.workDir
	if workDir == "" {
		tmp, err := os.MkdirTemp("", "subtext-ytdlp-")
		if err != nil {
			return nil, fmt.Errorf("ytdlp: temp dir: %w", err)
		}
		defer os.RemoveAll(tmp)
		workDir = tmp
	}

	args := []string{
		"--skip-download",
		"--no-warnings",
		"--sub-format", "json3",
		"--sub-langs", track.LanguageCode,
		"--output", filepath.Join(workDir, "transcript"),
	}
	if track.AutoGenerated {
		args = append(args, "--write-auto-subs")
	} else {
		args = append(args, "--write-subs")
	}
	args = append(args, videoURL(videoID))

	if _, err := c.exec.Run(ctx, c.binary, args); err != nil {
		return nil, fmt.Errorf("ytdlp: fetch transcript: %w", err)
	}

	payloadPath, err := findSubtitleFile(workDir)
	if err != nil {
		return nil, err
	}
	raw, err := os.ReadFile(payloadPath)
	if err != nil {
		return nil, fmt.Errorf("ytdlp: read subtitle payload: %w", err)
	}
	return timedtext.Decode(raw, timedtext.FormatJSON3)
}

func findSubtitleFile(dir string) (string, error) {
	matches, err := filepath.Glob(filepath.Join(dir, "*.json3"))
	if err != nil {
		return "", fmt.Errorf("ytdlp: scan work dir: %w", err)
	}
	if len(matches) == 0 {
		return "", errors.New("ytdlp: downloader wrote no subtitle payload")
	}
	sort.Strings(matches)
	return matches[0], nil
}

func (c *Client) boundContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if c.timeout > 0 {
		return context.WithTimeout(ctx, c.timeout)
	}
	return context.WithCancel(ctx)
}

func videoURL(videoID string) string {
	return "https://www.youtube.com/watch?v=" + videoID
}
