package captions

import (
	"context"
	"log/slog"

	"subtext/internal/services"
)

// Source is one caption acquisition strategy. The resolver treats HTTP-based
// and subprocess-based sources identically through this interface.
type Source interface {
	Name() string
	ListTracks(ctx context.Context, videoID string) ([]Track, error)
	FetchTranscript(ctx context.Context, videoID string, track Track) ([]Segment, error)
}

// Catalog is a track listing together with the tier that produced it. The
// tier travels with the value so follow-up transcript downloads stick to the
// same source without any hidden resolver state.
type Catalog struct {
	Tracks []Track
	Tier   int
	Source string
}

// FetchResult is one resolved transcript download.
type FetchResult struct {
	Track    Track
	Segments []Segment
	Source   string
	// Escalated is set when the sticky tier decoded zero segments and a
	// lower-priority source served this fetch instead.
	Escalated bool
}

// Resolver tries ordered acquisition sources until one yields a usable
// catalog or transcript.
type Resolver struct {
	sources []Source
	logger  *slog.Logger
}

// NewResolver builds a resolver over the given sources, tried in order.
func NewResolver(logger *slog.Logger, sources ...Source) *Resolver {
	if logger == nil {
		logger = slog.Default()
	}
	return &Resolver{sources: sources, logger: logger}
}

// ListTracks walks the tiers in order until one returns a non-empty catalog.
// Tier failures are absorbed and logged; only full exhaustion surfaces as an
// error.
func (r *Resolver) ListTracks(ctx context.Context, videoID string) (Catalog, error) {
	for tier, source := range r.sources {
		tracks, err := source.ListTracks(ctx, videoID)
		if err != nil {
			r.logger.Debug("caption source failed, escalating",
				slog.String("source", source.Name()),
				slog.String("video_id", videoID),
				slog.Any("error", err))
			continue
		}
		normalized := Normalize(tracks)
		if len(normalized) == 0 {
			r.logger.Debug("caption source returned empty catalog, escalating",
				slog.String("source", source.Name()),
				slog.String("video_id", videoID))
			continue
		}
		return Catalog{Tracks: normalized, Tier: tier, Source: source.Name()}, nil
	}
	return Catalog{}, services.Wrap(services.ErrNotFound, "resolver", "list tracks", "no caption tracks for video "+videoID, nil)
}

// Fetch resolves a track for the given language preference and downloads its
// transcript, sticking to the tier that produced the catalog. If that tier
// decodes zero segments, untried lower-priority sources are consulted for
// this fetch only.
func (r *Resolver) Fetch(ctx context.Context, videoID, languageCode string, preferAuto bool) (FetchResult, error) {
	catalog, err := r.ListTracks(ctx, videoID)
	if err != nil {
		return FetchResult{}, err
	}
	track, err := SelectTrack(catalog.Tracks, languageCode, preferAuto)
	if err != nil {
		return FetchResult{}, err
	}
	return r.FetchTrack(ctx, videoID, catalog, track)
}

// FetchTrack downloads the transcript for an already-selected track from the
// catalog's sticky tier, escalating past empty transcripts.
func (r *Resolver) FetchTrack(ctx context.Context, videoID string, catalog Catalog, track Track) (FetchResult, error) {
	source := r.sources[catalog.Tier]
	segments, err := source.FetchTranscript(ctx, videoID, track)
	if err == nil && len(segments) > 0 {
		return FetchResult{Track: track, Segments: segments, Source: source.Name()}, nil
	}
	if err != nil {
		r.logger.Debug("transcript download failed on sticky tier",
			slog.String("source", source.Name()),
			slog.String("video_id", videoID),
			slog.Any("error", err))
	}

	// Known upstream quirk: a tier can list a track yet serve an empty
	// transcript. Try the remaining tiers for this fetch without promoting
	// them as the new default.
	for tier := catalog.Tier + 1; tier < len(r.sources); tier++ {
		fallback := r.sources[tier]
		tracks, listErr := fallback.ListTracks(ctx, videoID)
		if listErr != nil {
			continue
		}
		fallbackTrack, selErr := SelectTrack(Normalize(tracks), track.LanguageCode, track.AutoGenerated)
		if selErr != nil {
			continue
		}
		segments, fetchErr := fallback.FetchTranscript(ctx, videoID, fallbackTrack)
		if fetchErr != nil || len(segments) == 0 {
			continue
		}
		r.logger.Info("transcript served by fallback tier",
			slog.String("sticky_source", source.Name()),
			slog.String("source", fallback.Name()),
			slog.String("video_id", videoID))
		return FetchResult{Track: fallbackTrack, Segments: segments, Source: fallback.Name(), Escalated: true}, nil
	}

	if err != nil {
		return FetchResult{}, services.Wrap(services.ErrNotFound, "resolver", "fetch transcript", "all sources failed for "+track.LanguageCode, err)
	}
	return FetchResult{}, services.Wrap(services.ErrNotFound, "resolver", "fetch transcript", "empty transcript for "+track.LanguageCode, nil)
}
