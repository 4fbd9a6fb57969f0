// Package innertube implements the structured-API caption source, the first
// acquisition tier.
package innertube
