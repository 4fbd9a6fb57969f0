// Package glossary stores per-language-pair terminology dictionaries and
// enforces them over translated text. Enforcement runs after every
// translation batch regardless of how the model response was parsed.
package glossary
