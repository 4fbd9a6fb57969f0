package captions

// Segment is one timed caption cue. Segments are immutable once decoded;
// their index position is the only correlation key with any translated
// counterpart.
type Segment struct {
	Start    float64 `json:"start"`
	Duration float64 `json:"duration"`
	Text     string  `json:"text"`
}

// TranslatedSegment pairs a decoded segment with its translation.
// TranslatedText is never empty; it defaults to OriginalText when translation
// is skipped or a particular item could not be recovered from the model
// response. Recovered is false only for slots filled by the lossy
// shape-mismatch fallback, so callers can detect degraded translations.
type TranslatedSegment struct {
	Start          float64 `json:"start"`
	Duration       float64 `json:"duration"`
	OriginalText   string  `json:"original_text"`
	TranslatedText string  `json:"translated_text"`
	Recovered      bool    `json:"recovered"`
}

// PassThrough builds the identity translation for a segment list.
func PassThrough(segments []Segment) []TranslatedSegment {
	out := make([]TranslatedSegment, len(segments))
	for i, seg := range segments {
		out[i] = TranslatedSegment{
			Start:          seg.Start,
			Duration:       seg.Duration,
			OriginalText:   seg.Text,
			TranslatedText: seg.Text,
			Recovered:      true,
		}
	}
	return out
}
