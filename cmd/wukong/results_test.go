package main

import (
	"testing"

	"github.com/wukongd/wukong/pkg/models"
)

func TestParseMarks(t *testing.T) {
	items, err := parseMarks([]string{
		"high:finding:handler panics on nil session",
		"low:note:checked the logs: nothing unusual",
	}, "nose_analyze")
	if err != nil {
		t.Fatalf("parseMarks failed: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("got %d items, want 2", len(items))
	}

	if items[0].Importance != models.ImportanceHigh {
		t.Errorf("importance = %q", items[0].Importance)
	}
	if items[0].Category != "finding" {
		t.Errorf("category = %q", items[0].Category)
	}
	// Source carries the producing node, not the task.
	if items[0].Source != "nose_analyze" {
		t.Errorf("source = %q, want the node id", items[0].Source)
	}

	// Colons after the first two belong to the content.
	if items[1].Content != "checked the logs: nothing unusual" {
		t.Errorf("content = %q", items[1].Content)
	}
}

func TestParseMarks_Invalid(t *testing.T) {
	if _, err := parseMarks([]string{"high:finding"}, "t"); err == nil {
		t.Error("expected an error for a two-part mark")
	}
	if _, err := parseMarks([]string{"urgent:finding:x"}, "t"); err == nil {
		t.Error("expected an error for an unknown importance")
	}
}

func TestParseMarks_Empty(t *testing.T) {
	items, err := parseMarks(nil, "t")
	if err != nil {
		t.Fatal(err)
	}
	if items != nil {
		t.Errorf("expected nil for no marks, got %v", items)
	}
}

func TestParseMeta(t *testing.T) {
	meta, err := parseMeta([]string{"origin=router", "branch=main"})
	if err != nil {
		t.Fatalf("parseMeta failed: %v", err)
	}
	if meta["origin"] != "router" || meta["branch"] != "main" {
		t.Errorf("meta = %v", meta)
	}
}

func TestParseMeta_Invalid(t *testing.T) {
	if _, err := parseMeta([]string{"no-equals"}); err == nil {
		t.Error("expected an error for a pair without =")
	}
	if _, err := parseMeta([]string{"=value"}); err == nil {
		t.Error("expected an error for an empty key")
	}
}
