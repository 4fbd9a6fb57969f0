package review

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"subtext/internal/captions"
	"subtext/internal/services"
)

const (
	originalFile   = "original.txt"
	translatedFile = "translated.txt"
	snapshotFile   = "segments.json"
	editableFile   = "review.txt"

	roleOriginal   = "ORIGINAL"
	roleTranslated = "TRANSLATED"
)

// EditableFileName is the name of the human-editable file inside an artifact
// directory.
const EditableFileName = editableFile

// ArtifactDir returns the directory holding the review artifacts for one
// (provider, videoID) pair.
func ArtifactDir(base, provider, videoID string) string {
	return filepath.Join(base, provider, videoID)
}

// Serialize writes the review artifacts: the full original text, the full
// translated text, a machine-readable snapshot of the segment list, and the
// human-editable review file. Each segment emits a timestamped ORIGINAL line
// and a timestamped TRANSLATED line; the role tag makes the merge assignment
// unambiguous even if a reviewer reorders lines.
func Serialize(dir string, translated []captions.TranslatedSegment) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("review: ensure directory: %w", err)
	}

	snapshot, err := json.MarshalIndent(translated, "", "  ")
	if err != nil {
		return fmt.Errorf("review: encode snapshot: %w", err)
	}
	if err := os.WriteFile(filepath.Join(dir, snapshotFile), snapshot, 0o644); err != nil {
		return fmt.Errorf("review: write snapshot: %w", err)
	}

	var original, translatedText, editable strings.Builder
	editable.WriteString("# Review file. Edit the TRANSLATED lines in place.\n")
	editable.WriteString("# Lines starting with '#' and blank lines are ignored on merge.\n\n")
	for _, seg := range translated {
		stamp := formatTimestamp(seg.Start)
		original.WriteString(seg.OriginalText)
		original.WriteByte('\n')
		translatedText.WriteString(seg.TranslatedText)
		translatedText.WriteByte('\n')
		fmt.Fprintf(&editable, "[%s] %s | %s\n", stamp, roleOriginal, seg.OriginalText)
		fmt.Fprintf(&editable, "[%s] %s | %s\n\n", stamp, roleTranslated, seg.TranslatedText)
	}

	files := map[string]string{
		originalFile:   original.String(),
		translatedFile: translatedText.String(),
		editableFile:   editable.String(),
	}
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
			return fmt.Errorf("review: write %s: %w", name, err)
		}
	}
	return nil
}

// Merge reads the snapshot for the authoritative segment count, order and
// timings, then assigns the n-th retained TRANSLATED line of the editable
// file to the n-th snapshot segment. ORIGINAL-tagged lines are skipped;
// untagged lines are accepted as translated text so hand-stripped files still
// merge. A retained-line count that differs from the snapshot proceeds by
// index up to the shorter length; segments beyond the edited count keep
// their prior text.
func Merge(dir string) ([]captions.TranslatedSegment, error) {
	snapshot, err := readSnapshot(dir)
	if err != nil {
		return nil, err
	}
	edits, err := readEditedLines(dir)
	if err != nil {
		return nil, err
	}
	for i := 0; i < len(snapshot) && i < len(edits); i++ {
		if text := strings.TrimSpace(edits[i]); text != "" {
			snapshot[i].TranslatedText = text
		}
	}
	return snapshot, nil
}

func readSnapshot(dir string) ([]captions.TranslatedSegment, error) {
	data, err := os.ReadFile(filepath.Join(dir, snapshotFile))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, services.Wrap(services.ErrReviewNotFound, "review", "merge",
				"segment snapshot missing in "+dir+"; run the review export step first", nil)
		}
		return nil, fmt.Errorf("review: read snapshot: %w", err)
	}
	var snapshot []captions.TranslatedSegment
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return nil, fmt.Errorf("review: parse snapshot: %w", err)
	}
	return snapshot, nil
}

func readEditedLines(dir string) ([]string, error) {
	data, err := os.ReadFile(filepath.Join(dir, editableFile))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, services.Wrap(services.ErrReviewNotFound, "review", "merge",
				"editable review file missing in "+dir+"; run the review export step first", nil)
		}
		return nil, fmt.Errorf("review: read editable file: %w", err)
	}

	var edits []string
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		line = stripTimestamp(line)
		role, text := splitRole(line)
		if role == roleOriginal {
			continue
		}
		edits = append(edits, text)
	}
	return edits, nil
}

// stripTimestamp removes a leading [mm:ss] or [hh:mm:ss] marker.
func stripTimestamp(line string) string {
	if !strings.HasPrefix(line, "[") {
		return line
	}
	end := strings.Index(line, "]")
	if end < 0 {
		return line
	}
	inner := line[1:end]
	parts := strings.Split(inner, ":")
	if len(parts) != 2 && len(parts) != 3 {
		return line
	}
	for _, part := range parts {
		if part == "" || strings.TrimLeft(part, "0123456789") != "" {
			return line
		}
	}
	return strings.TrimSpace(line[end+1:])
}

// splitRole separates an optional "ROLE |" discriminator from the line text.
func splitRole(line string) (string, string) {
	for _, role := range []string{roleOriginal, roleTranslated} {
		prefix := role + " |"
		if strings.HasPrefix(line, prefix) {
			return role, strings.TrimSpace(strings.TrimPrefix(line, prefix))
		}
	}
	return "", line
}

func formatTimestamp(seconds float64) string {
	if seconds < 0 {
		seconds = 0
	}
	total := int(seconds)
	hours := total / 3600
	minutes := (total % 3600) / 60
	secs := total % 60
	if hours > 0 {
		return fmt.Sprintf("%02d:%02d:%02d", hours, minutes, secs)
	}
	return fmt.Sprintf("%02d:%02d", minutes, secs)
}
