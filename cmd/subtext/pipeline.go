package main

import (
	"context"
	"time"

	"subtext/internal/captions"
	"subtext/internal/language"
	"subtext/internal/transcriptcache"
)

// fetchOptions controls one transcript acquisition.
type fetchOptions struct {
	LanguageCode string
	PreferAuto   bool
	BypassCache  bool
}

// fetchTranscript resolves one transcript, consulting the cache before the
// tiered sources. Cache hits require an explicit language because the cache
// key is (video, language, auto); without one the catalog decides the track.
func (c *commandContext) fetchTranscript(ctx context.Context, videoID string, opts fetchOptions) (captions.Track, []captions.Segment, string, error) {
	lang := language.Normalize(opts.LanguageCode)

	var cache *transcriptcache.Store
	if !opts.BypassCache {
		store, err := c.openCache()
		if err != nil {
			return captions.Track{}, nil, "", err
		}
		cache = store
	}
	if cache != nil {
		defer cache.Close()
		if lang != "" {
			entry, ok, err := cache.Get(ctx, videoID, lang, opts.PreferAuto)
			if err != nil {
				return captions.Track{}, nil, "", err
			}
			if ok {
				track := captions.Track{
					LanguageCode:  entry.LanguageCode,
					AutoGenerated: entry.AutoGenerated,
				}
				return track, entry.Segments, "cache", nil
			}
		}
	}

	resolver, err := c.newResolver()
	if err != nil {
		return captions.Track{}, nil, "", err
	}
	result, err := resolver.Fetch(ctx, videoID, lang, opts.PreferAuto)
	if err != nil {
		return captions.Track{}, nil, "", err
	}

	if cache != nil {
		entry := transcriptcache.Entry{
			VideoID:       videoID,
			LanguageCode:  language.Normalize(result.Track.LanguageCode),
			AutoGenerated: result.Track.AutoGenerated,
			Source:        result.Source,
			Segments:      result.Segments,
			FetchedAt:     time.Now().UTC(),
		}
		if err := cache.Put(ctx, entry); err != nil {
			if logger, lerr := c.ensureLogger(); lerr == nil {
				logger.Warn("transcript cache write failed",
					"component", "cli",
					"video_id", videoID,
					"error", err)
			}
		}
	}

	return result.Track, result.Segments, result.Source, nil
}
