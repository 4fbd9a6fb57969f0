// Package services defines the shared error taxonomy used across the
// caption pipeline. Components tag failures with one of the sentinel errors
// so callers can classify outcomes without string matching.
package services
