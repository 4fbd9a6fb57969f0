package language

import (
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/language/display"
)

// Normalize canonicalizes a caption language code to its lowercase BCP-47
// form. Unparseable input is lowercased and trimmed but otherwise passed
// through so upstream codes never disappear.
func Normalize(code string) string {
	code = strings.TrimSpace(code)
	if code == "" {
		return ""
	}
	tag, err := language.Parse(code)
	if err != nil {
		return strings.ToLower(code)
	}
	return strings.ToLower(tag.String())
}

// Matches reports whether two caption language codes share the same base
// language, so a request for "en" accepts an "en-US" track and vice versa.
func Matches(a, b string) bool {
	a = strings.TrimSpace(a)
	b = strings.TrimSpace(b)
	if a == "" || b == "" {
		return false
	}
	if strings.EqualFold(a, b) {
		return true
	}
	tagA, errA := language.Parse(a)
	tagB, errB := language.Parse(b)
	if errA != nil || errB != nil {
		return false
	}
	baseA, confA := tagA.Base()
	baseB, confB := tagB.Base()
	if confA == language.No || confB == language.No {
		return false
	}
	return baseA == baseB
}

// DisplayName returns the English name of a language code for prompts and
// listings ("fr" -> "French"). Falls back to the raw code when unknown.
func DisplayName(code string) string {
	code = strings.TrimSpace(code)
	if code == "" {
		return ""
	}
	tag, err := language.Parse(code)
	if err != nil {
		return code
	}
	name := display.English.Tags().Name(tag)
	if name == "" {
		return code
	}
	return name
}
