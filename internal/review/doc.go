// Package review serializes translated segments into human-editable
// artifacts and merges reviewer edits back while preserving segment count,
// order and timings.
package review
