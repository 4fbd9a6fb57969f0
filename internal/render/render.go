package render

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"subtext/internal/captions"
)

// Format selects an output serialization.
type Format string

const (
	FormatText Format = "text"
	FormatSRT  Format = "srt"
	FormatVTT  Format = "vtt"
	FormatJSON Format = "json"
)

// ParseFormat validates a user-supplied format name.
func ParseFormat(value string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(value))) {
	case FormatText, "":
		return FormatText, nil
	case FormatSRT:
		return FormatSRT, nil
	case FormatVTT:
		return FormatVTT, nil
	case FormatJSON:
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("render: unsupported format %q", value)
	}
}

// Extension returns the file extension for a format.
func (f Format) Extension() string {
	switch f {
	case FormatSRT:
		return ".srt"
	case FormatVTT:
		return ".vtt"
	case FormatJSON:
		return ".json"
	default:
		return ".txt"
	}
}

// Write serializes the segments in the requested format.
func Write(w io.Writer, format Format, segments []captions.TranslatedSegment) error {
	switch format {
	case FormatSRT:
		return writeSRT(w, segments)
	case FormatVTT:
		return writeVTT(w, segments)
	case FormatJSON:
		return writeJSON(w, segments)
	default:
		return writeText(w, segments)
	}
}

func writeText(w io.Writer, segments []captions.TranslatedSegment) error {
	for _, seg := range segments {
		if _, err := fmt.Fprintln(w, seg.TranslatedText); err != nil {
			return err
		}
	}
	return nil
}

func writeSRT(w io.Writer, segments []captions.TranslatedSegment) error {
	for i, seg := range segments {
		_, err := fmt.Fprintf(w, "%d\n%s --> %s\n%s\n\n",
			i+1,
			srtTimestamp(seg.Start),
			srtTimestamp(seg.Start+seg.Duration),
			seg.TranslatedText,
		)
		if err != nil {
			return err
		}
	}
	return nil
}

func writeVTT(w io.Writer, segments []captions.TranslatedSegment) error {
	if _, err := fmt.Fprint(w, "WEBVTT\n\n"); err != nil {
		return err
	}
	for _, seg := range segments {
		_, err := fmt.Fprintf(w, "%s --> %s\n%s\n\n",
			vttTimestamp(seg.Start),
			vttTimestamp(seg.Start+seg.Duration),
			seg.TranslatedText,
		)
		if err != nil {
			return err
		}
	}
	return nil
}

func writeJSON(w io.Writer, segments []captions.TranslatedSegment) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(segments)
}

func srtTimestamp(seconds float64) string {
	h, m, s, ms := splitTimestamp(seconds)
	return fmt.Sprintf("%02d:%02d:%02d,%03d", h, m, s, ms)
}

func vttTimestamp(seconds float64) string {
	h, m, s, ms := splitTimestamp(seconds)
	return fmt.Sprintf("%02d:%02d:%02d.%03d", h, m, s, ms)
}

func splitTimestamp(seconds float64) (int, int, int, int) {
	if seconds < 0 {
		seconds = 0
	}
	millis := int(seconds*1000 + 0.5)
	return millis / 3600000, (millis % 3600000) / 60000, (millis % 60000) / 1000, millis % 1000
}
