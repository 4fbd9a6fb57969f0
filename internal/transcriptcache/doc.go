// Package transcriptcache persists decoded transcripts in SQLite keyed by
// (videoID, languageCode, auto-generated) so repeated fetches skip the
// upstream tiers.
package transcriptcache
