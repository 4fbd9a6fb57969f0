// Package timedtext decodes raw transcript payloads into ordered caption
// segments. Two shapes are supported: timed-text XML and the json3 event
// stream.
package timedtext
