package main

import (
	"bytes"
	"strings"
	"testing"
)

func TestRenderTable(t *testing.T) {
	var buf bytes.Buffer
	out := renderTable(&buf, []string{"Language", "Auto"}, [][]string{
		{"en", "no"},
		{"fr", "yes"},
	})

	for _, want := range []string{"LANGUAGE", "AUTO", "en", "fr", "yes"} {
		if !strings.Contains(out, want) {
			t.Fatalf("table output missing %q:\n%s", want, out)
		}
	}
}

func TestRenderTablePadsShortRows(t *testing.T) {
	var buf bytes.Buffer
	out := renderTable(&buf, []string{"A", "B", "C"}, [][]string{{"only"}})
	if !strings.Contains(out, "only") {
		t.Fatalf("short row dropped:\n%s", out)
	}
}

func TestRenderTableEmptyHeaders(t *testing.T) {
	var buf bytes.Buffer
	if out := renderTable(&buf, nil, nil); out != "" {
		t.Fatalf("expected empty render, got %q", out)
	}
}
