// Package language normalizes caption language codes and resolves human
// readable names for translation prompts and track listings.
package language
