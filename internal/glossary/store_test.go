package glossary

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
)

func TestStoreAddPersists(t *testing.T) {
	dir := t.TempDir()
	store, err := Open(dir, "en", "fr")
	if err != nil {
		t.Fatalf("Open returned error: %v", err)
	}
	if err := store.Add("Battery", "batterie"); err != nil {
		t.Fatalf("Add returned error: %v", err)
	}

	reloaded, err := Open(dir, "EN", "fr")
	if err != nil {
		t.Fatalf("reopen returned error: %v", err)
	}
	target, ok := reloaded.Lookup("battery")
	if !ok || target != "batterie" {
		t.Fatalf("expected lowercased key to survive reload, got %q ok=%v", target, ok)
	}
}

func TestStoreFilePerLanguagePair(t *testing.T) {
	dir := t.TempDir()
	store, err := Open(dir, "en", "de")
	if err != nil {
		t.Fatalf("Open returned error: %v", err)
	}
	if err := store.Add("screen", "Bildschirm"); err != nil {
		t.Fatalf("Add returned error: %v", err)
	}
	if filepath.Base(store.Path()) != "glossary_en_de.json" {
		t.Fatalf("unexpected file name %s", store.Path())
	}

	data, err := os.ReadFile(store.Path())
	if err != nil {
		t.Fatalf("read store file: %v", err)
	}
	var entries map[string]string
	if err := json.Unmarshal(data, &entries); err != nil {
		t.Fatalf("store file is not a JSON object: %v", err)
	}
	if entries["screen"] != "Bildschirm" {
		t.Fatalf("unexpected contents %v", entries)
	}
}

func TestStoreRemove(t *testing.T) {
	store, err := Open(t.TempDir(), "en", "fr")
	if err != nil {
		t.Fatalf("Open returned error: %v", err)
	}
	if err := store.Add("mouse", "souris"); err != nil {
		t.Fatalf("Add returned error: %v", err)
	}
	removed, err := store.Remove("MOUSE")
	if err != nil || !removed {
		t.Fatalf("Remove = %v, %v", removed, err)
	}
	removed, err = store.Remove("mouse")
	if err != nil || removed {
		t.Fatalf("second Remove = %v, %v", removed, err)
	}
}

func TestStoreImport(t *testing.T) {
	dir := t.TempDir()
	importPath := filepath.Join(dir, "terms.json")
	payload := []byte(`{"Battery":"batterie","  ":"skipped","empty":""}`)
	if err := os.WriteFile(importPath, payload, 0o644); err != nil {
		t.Fatalf("write import file: %v", err)
	}

	store, err := Open(dir, "en", "fr")
	if err != nil {
		t.Fatalf("Open returned error: %v", err)
	}
	count, err := store.Import(importPath)
	if err != nil {
		t.Fatalf("Import returned error: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected 1 imported term, got %d", count)
	}
	if _, ok := store.Lookup("battery"); !ok {
		t.Fatal("expected imported term to be present")
	}
}
