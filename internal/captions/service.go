package captions

import (
	"context"
	"log/slog"
)

// TrackResult is the outcome of one track in a fetch-all run.
type TrackResult struct {
	Track    Track
	Segments []Segment
	Source   string
	Err      error
}

// FetchAll downloads the transcript for every track in the catalog,
// sequentially. A failure fetching one track is recorded and does not abort
// the remaining tracks.
func (r *Resolver) FetchAll(ctx context.Context, videoID string) ([]TrackResult, error) {
	catalog, err := r.ListTracks(ctx, videoID)
	if err != nil {
		return nil, err
	}
	results := make([]TrackResult, 0, len(catalog.Tracks))
	for _, track := range catalog.Tracks {
		fetched, err := r.FetchTrack(ctx, videoID, catalog, track)
		if err != nil {
			r.logger.Warn("track fetch failed, continuing",
				slog.String("video_id", videoID),
				slog.String("language", track.LanguageCode),
				slog.Bool("auto", track.AutoGenerated),
				slog.Any("error", err))
			results = append(results, TrackResult{Track: track, Err: err})
			continue
		}
		results = append(results, TrackResult{
			Track:    fetched.Track,
			Segments: fetched.Segments,
			Source:   fetched.Source,
		})
	}
	return results, nil
}
