package translate

import (
	"fmt"
	"sort"
	"strings"

	"subtext/internal/captions"
	langpkg "subtext/internal/language"
)

// buildSystemPrompt names the language pair and, when the dictionary is
// non-empty, lists the term overrides the model must honor.
func buildSystemPrompt(sourceLang, targetLang string, dictionary map[string]string) string {
	source := langpkg.DisplayName(sourceLang)
	target := langpkg.DisplayName(targetLang)

	var builder strings.Builder
	fmt.Fprintf(&builder, "You are a subtitle translator. Translate each numbered line from %s to %s.\n", source, target)
	builder.WriteString("Preserve the meaning and tone of spoken captions. Do not merge, split, or reorder lines.\n")
	builder.WriteString("Respond with a JSON array of translated strings, one per input line, in the same order.")

	if len(dictionary) > 0 {
		builder.WriteString("\n\nAlways use these terminology overrides:\n")
		terms := make([]string, 0, len(dictionary))
		for term := range dictionary {
			terms = append(terms, term)
		}
		sort.Strings(terms)
		for _, term := range terms {
			fmt.Fprintf(&builder, "%q -> %q\n", term, dictionary[term])
		}
	}
	return builder.String()
}

// buildUserPrompt numbers every segment text 1..N on its own line.
func buildUserPrompt(segments []captions.Segment) string {
	var builder strings.Builder
	for i, seg := range segments {
		fmt.Fprintf(&builder, "%d. %s\n", i+1, seg.Text)
	}
	return builder.String()
}
