package main

import (
	"fmt"
	"io"
	"net/url"
	"os"
	"path"
	"strings"
)

// parseVideoID accepts either a bare video identifier or a watch URL in the
// common shapes (watch?v=, youtu.be/, shorts/, embed/, live/).
func parseVideoID(arg string) (string, error) {
	arg = strings.TrimSpace(arg)
	if arg == "" {
		return "", fmt.Errorf("video ID is required")
	}

	if !strings.Contains(arg, "/") && !strings.Contains(arg, "?") {
		return arg, nil
	}

	parsed, err := url.Parse(arg)
	if err != nil {
		return "", fmt.Errorf("parse video URL: %w", err)
	}

	if id := parsed.Query().Get("v"); id != "" {
		return id, nil
	}

	host := strings.TrimPrefix(parsed.Host, "www.")
	trimmed := strings.Trim(parsed.Path, "/")
	if host == "youtu.be" && trimmed != "" {
		return path.Base(trimmed), nil
	}
	for _, prefix := range []string{"shorts/", "embed/", "live/"} {
		if rest, ok := strings.CutPrefix(trimmed, prefix); ok && rest != "" {
			return path.Base(rest), nil
		}
	}

	return "", fmt.Errorf("could not extract a video ID from %q", arg)
}

// openOutput returns a writer for the rendered result. An empty path selects
// the command's stdout; the caller must invoke the returned closer.
func openOutput(cmdOut io.Writer, path string) (io.Writer, func() error, error) {
	if strings.TrimSpace(path) == "" {
		return cmdOut, func() error { return nil }, nil
	}
	file, err := os.Create(path)
	if err != nil {
		return nil, nil, fmt.Errorf("create output file: %w", err)
	}
	return file, file.Close, nil
}

func yesNo(value bool) string {
	if value {
		return "yes"
	}
	return "no"
}
