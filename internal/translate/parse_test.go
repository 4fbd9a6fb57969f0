package translate

import "testing"

func TestParseBatchJSONArray(t *testing.T) {
	items, recovered := parseBatch(`["Salut", "Bonjour"]`, 2)
	if !recovered {
		t.Fatal("expected faithful recovery")
	}
	if items[0] != "Salut" || items[1] != "Bonjour" {
		t.Fatalf("unexpected items %v", items)
	}
}

func TestParseBatchCodeFencedJSONArray(t *testing.T) {
	items, recovered := parseBatch("```json\n[\"Salut\", \"Bonjour\"]\n```", 2)
	if !recovered || items[0] != "Salut" {
		t.Fatalf("unexpected items %v recovered=%v", items, recovered)
	}
}

func TestParseBatchNumberedList(t *testing.T) {
	content := "1. Salut\n2. Bonjour\n"
	items, recovered := parseBatch(content, 2)
	if !recovered {
		t.Fatal("expected faithful recovery")
	}
	if items[0] != "Salut" || items[1] != "Bonjour" {
		t.Fatalf("unexpected items %v", items)
	}
}

func TestParseBatchJSONAndNumberedAgree(t *testing.T) {
	fromJSON, _ := parseBatch(`["one", "two"]`, 2)
	fromList, _ := parseBatch("1. one\n2. two", 2)
	for i := range fromJSON {
		if fromJSON[i] != fromList[i] {
			t.Fatalf("parse paths disagree at %d: %q vs %q", i, fromJSON[i], fromList[i])
		}
	}
}

func TestParseBatchSingleSlotMismatch(t *testing.T) {
	items, recovered := parseBatch("just some prose", 1)
	if !recovered {
		t.Fatal("single-slot fallback keeps the whole body")
	}
	if items[0] != "just some prose" {
		t.Fatalf("unexpected item %q", items[0])
	}
}

func TestParseBatchReplicatesOnMismatch(t *testing.T) {
	items, recovered := parseBatch("unstructured reply", 3)
	if recovered {
		t.Fatal("expected replicate fallback to be marked unrecovered")
	}
	if len(items) != 3 {
		t.Fatalf("expected 3 items, got %d", len(items))
	}
	for _, item := range items {
		if item != "unstructured reply" {
			t.Fatalf("unexpected item %q", item)
		}
	}
}

func TestParseBatchNumberedCountMismatch(t *testing.T) {
	items, recovered := parseBatch("1. only one line", 2)
	if recovered {
		t.Fatal("expected mismatch fallback")
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(items))
	}
}
