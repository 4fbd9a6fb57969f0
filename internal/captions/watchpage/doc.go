// Package watchpage implements the page-scrape caption source, the second
// acquisition tier. The track listing is located by extracting the
// captionTracks JSON fragment from the watch page body.
package watchpage
