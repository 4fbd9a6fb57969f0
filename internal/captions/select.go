package captions

import (
	"subtext/internal/services"

	langpkg "subtext/internal/language"
)

// SelectTrack applies the track selection policy to a normalized catalog.
//
// With a language code: prefer the exact (language, preferAuto) match, then
// any track with that language, else fail. Without one: the first track of
// the preferred kind, falling back to the first track in listing order.
func SelectTrack(tracks []Track, languageCode string, preferAuto bool) (Track, error) {
	if len(tracks) == 0 {
		return Track{}, services.Wrap(services.ErrNotFound, "catalog", "select track", "no caption tracks available", nil)
	}

	if languageCode != "" {
		var languageMatch *Track
		for i := range tracks {
			if !langpkg.Matches(tracks[i].LanguageCode, languageCode) {
				continue
			}
			if tracks[i].AutoGenerated == preferAuto {
				return tracks[i], nil
			}
			if languageMatch == nil {
				languageMatch = &tracks[i]
			}
		}
		if languageMatch != nil {
			return *languageMatch, nil
		}
		return Track{}, services.Wrap(services.ErrNotFound, "catalog", "select track", "no track for language "+languageCode, nil)
	}

	for _, track := range tracks {
		if track.AutoGenerated == preferAuto {
			return track, nil
		}
	}
	return tracks[0], nil
}
