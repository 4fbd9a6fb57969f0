package captions

import (
	"strings"

	langpkg "subtext/internal/language"
)

// Track describes one available caption stream. A language may carry both a
// human-authored and an auto-generated track, so the catalog key is the
// (LanguageCode, AutoGenerated) pair.
type Track struct {
	LanguageCode  string
	DisplayName   string
	AutoGenerated bool
}

// Key returns the catalog identity of the track.
func (t Track) Key() string {
	suffix := "manual"
	if t.AutoGenerated {
		suffix = "asr"
	}
	return langpkg.Normalize(t.LanguageCode) + "/" + suffix
}

// Platform display names append a localized "(auto-generated)" marker to auto
// tracks. The catalog strips these so DisplayName is stable across locales.
var autoGeneratedMarkers = []string{
	"auto-generated",
	"automatic captions",
	"automatisch erzeugt",
	"générés automatiquement",
	"generado automáticamente",
	"gerado automaticamente",
	"generati automaticamente",
	"automatisch gegenereerd",
	"自動生成",
	"자동 생성",
}

// Normalize converts a raw upstream track listing into the uniform catalog:
// listing order is preserved, duplicate (language, kind) keys collapse keeping
// the first entry, display-name decorations are stripped and language codes
// canonicalized. An empty listing is a valid result, not an error.
func Normalize(tracks []Track) []Track {
	out := make([]Track, 0, len(tracks))
	seen := make(map[string]struct{}, len(tracks))
	for _, track := range tracks {
		track.LanguageCode = langpkg.Normalize(track.LanguageCode)
		track.DisplayName = stripAutoMarker(track.DisplayName)
		if track.LanguageCode == "" {
			continue
		}
		key := track.Key()
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, track)
	}
	return out
}

func stripAutoMarker(name string) string {
	name = strings.TrimSpace(name)
	open := strings.LastIndex(name, "(")
	if open < 0 || !strings.HasSuffix(name, ")") {
		return name
	}
	inner := strings.ToLower(name[open+1 : len(name)-1])
	for _, marker := range autoGeneratedMarkers {
		if strings.Contains(inner, marker) {
			return strings.TrimSpace(name[:open])
		}
	}
	return name
}
