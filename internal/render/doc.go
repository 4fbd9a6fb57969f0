// Package render serializes translated segments to the supported output
// formats: plain text, SRT, WebVTT and JSON.
package render
