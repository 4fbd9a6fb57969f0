// Package captions holds the caption data model, the track catalog, and the
// tiered resolver that walks acquisition sources until one yields a usable
// transcript. Individual sources live in subpackages (innertube, watchpage,
// ytdlp); decoding lives in timedtext.
package captions
