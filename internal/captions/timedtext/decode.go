package timedtext

import (
	"encoding/json"
	"encoding/xml"
	"fmt"
	"html"
	"regexp"
	"strconv"
	"strings"

	"subtext/internal/captions"
)

// Format identifies the payload shape handed to Decode.
type Format string

const (
	// FormatXML is the timed-text markup served by the player transcript
	// endpoints: start offset and duration as attributes, entities and
	// inline markup in the body.
	FormatXML Format = "xml"
	// FormatJSON3 is the JSON event stream written by the external
	// downloader: millisecond timings and a list of text fragments.
	FormatJSON3 Format = "json3"
)

var inlineMarkup = regexp.MustCompile(`<[^>]*>`)

// Decode converts a raw transcript payload into ordered segments. It does no
// network I/O and fails only on structurally invalid input; a payload with no
// usable entries decodes to an empty slice.
func Decode(raw []byte, format Format) ([]captions.Segment, error) {
	switch format {
	case FormatXML:
		return decodeXML(raw)
	case FormatJSON3:
		return decodeJSON3(raw)
	default:
		return nil, fmt.Errorf("timedtext: unsupported format %q", format)
	}
}

type xmlTranscript struct {
	Entries []xmlEntry `xml:"text"`
}

type xmlEntry struct {
	Start string `xml:"start,attr"`
	Dur   string `xml:"dur,attr"`
	Body  string `xml:",innerxml"`
}

func decodeXML(raw []byte) ([]captions.Segment, error) {
	var doc xmlTranscript
	if err := xml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("timedtext: parse xml: %w", err)
	}
	segments := make([]captions.Segment, 0, len(doc.Entries))
	for _, entry := range doc.Entries {
		start, err := parseSeconds(entry.Start)
		if err != nil {
			return nil, fmt.Errorf("timedtext: start attribute: %w", err)
		}
		duration := 0.0
		if strings.TrimSpace(entry.Dur) != "" {
			duration, err = parseSeconds(entry.Dur)
			if err != nil {
				return nil, fmt.Errorf("timedtext: dur attribute: %w", err)
			}
		}
		text := CleanText(entry.Body)
		if text == "" {
			continue
		}
		segments = append(segments, captions.Segment{Start: start, Duration: duration, Text: text})
	}
	return segments, nil
}

type json3Payload struct {
	Events []json3Event `json:"events"`
}

type json3Event struct {
	StartMs    int64          `json:"tStartMs"`
	DurationMs int64          `json:"dDurationMs"`
	Segs       []json3Segment `json:"segs"`
}

type json3Segment struct {
	UTF8 string `json:"utf8"`
}

func decodeJSON3(raw []byte) ([]captions.Segment, error) {
	var payload json3Payload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, fmt.Errorf("timedtext: parse json3: %w", err)
	}
	segments := make([]captions.Segment, 0, len(payload.Events))
	for _, event := range payload.Events {
		var builder strings.Builder
		for _, seg := range event.Segs {
			builder.WriteString(seg.UTF8)
		}
		text := CleanText(builder.String())
		if text == "" {
			continue
		}
		segments = append(segments, captions.Segment{
			Start:    float64(event.StartMs) / 1000,
			Duration: float64(event.DurationMs) / 1000,
			Text:     text,
		})
	}
	return segments, nil
}

// CleanText strips inline markup, decodes character entities, collapses
// newlines to single spaces and trims surrounding whitespace.
func CleanText(text string) string {
	text = inlineMarkup.ReplaceAllString(text, "")
	text = html.UnescapeString(text)
	text = strings.Join(strings.Fields(text), " ")
	return text
}

func parseSeconds(value string) (float64, error) {
	parsed, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil {
		return 0, fmt.Errorf("invalid number %q", value)
	}
	return parsed, nil
}
