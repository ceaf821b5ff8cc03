package aggregate

import (
	"strings"
	"testing"

	"github.com/wukongd/wukong/pkg/models"
)

func totalLen(items []models.MarkedContent) int {
	n := 0
	for _, item := range items {
		n += item.Len()
	}
	return n
}

func TestCompressByImportance_PriorityFirstFit(t *testing.T) {
	items := []models.MarkedContent{
		Mark("low item", models.ImportanceLow, "detail", "eye_explore"),
		Mark("high item", models.ImportanceHigh, "issue", "nose_analyze"),
		Mark("medium item", models.ImportanceMedium, "file", "eye_explore"),
	}

	got := CompressByImportance(items, 1000)
	if len(got) != 3 {
		t.Fatalf("expected all 3 items under a large budget, got %d", len(got))
	}
	if got[0].Importance != models.ImportanceHigh ||
		got[1].Importance != models.ImportanceMedium ||
		got[2].Importance != models.ImportanceLow {
		t.Errorf("items not ordered HIGH, MEDIUM, LOW: %+v", got)
	}
}

func TestCompressByImportance_HighOutlivesLow(t *testing.T) {
	// Scenario: budget fits exactly the HIGH item.
	items := []models.MarkedContent{
		Mark("A", models.ImportanceHigh, "issue", "nose_analyze"),
		Mark("B", models.ImportanceLow, "detail", "eye_explore"),
	}

	got := CompressByImportance(items, len("A"))
	if len(got) != 1 {
		t.Fatalf("expected exactly one admitted item, got %d", len(got))
	}
	if got[0].Content != "A" {
		t.Errorf("admitted item = %q, want the HIGH item", got[0].Content)
	}
}

func TestCompressByImportance_FirstFitStopsAtBudget(t *testing.T) {
	// Once an item does not fit, no later item is admitted, even a
	// shorter one that would.
	items := []models.MarkedContent{
		Mark("aaaa", models.ImportanceHigh, "issue", "n1"),
		Mark("bbbbbbbb", models.ImportanceHigh, "issue", "n2"),
		Mark("c", models.ImportanceHigh, "issue", "n3"),
	}

	got := CompressByImportance(items, 5)
	if len(got) != 1 {
		t.Fatalf("expected only the first item, got %d items", len(got))
	}
	if got[0].Content != "aaaa" {
		t.Errorf("admitted %q, want %q", got[0].Content, "aaaa")
	}
}

func TestCompressByImportance_BudgetInCharactersNotBytes(t *testing.T) {
	// Four characters, twelve bytes. A four-character budget admits it.
	items := []models.MarkedContent{
		Mark("修复崩溃", models.ImportanceHigh, "issue", "n1"),
	}

	got := CompressByImportance(items, 4)
	if len(got) != 1 {
		t.Fatalf("four-character multibyte item should fit a budget of 4, got %d items", len(got))
	}
}

func TestCompressByImportance_NeverExceedsBudget(t *testing.T) {
	items := []models.MarkedContent{
		Mark(strings.Repeat("h", 40), models.ImportanceHigh, "issue", "n1"),
		Mark(strings.Repeat("m", 30), models.ImportanceMedium, "file", "n2"),
		Mark(strings.Repeat("l", 20), models.ImportanceLow, "detail", "n3"),
		Mark(strings.Repeat("h", 10), models.ImportanceHigh, "issue", "n4"),
	}

	for _, budget := range []int{0, 1, 10, 45, 50, 80, 99, 100, 1000} {
		got := CompressByImportance(items, budget)
		if total := totalLen(got); total > budget {
			t.Errorf("budget %d: admitted total %d chars", budget, total)
		}
	}
}

func TestCompressByImportance_StableWithinBand(t *testing.T) {
	items := []models.MarkedContent{
		Mark("first", models.ImportanceHigh, "issue", "n1"),
		Mark("second", models.ImportanceHigh, "issue", "n2"),
		Mark("third", models.ImportanceHigh, "issue", "n3"),
	}

	got := CompressByImportance(items, 1000)
	want := []string{"first", "second", "third"}
	for i, item := range got {
		if item.Content != want[i] {
			t.Errorf("position %d = %q, want %q (ties must keep input order)", i, item.Content, want[i])
		}
	}
}

func TestFormatMarkedOutput_BandHeaders(t *testing.T) {
	items := []models.MarkedContent{
		Mark("critical finding", models.ImportanceHigh, "issue", "nose_analyze"),
		Mark("related file", models.ImportanceMedium, "file", "eye_explore"),
	}

	out := FormatMarkedOutput(items)

	if !strings.Contains(out, "### HIGH") {
		t.Error("missing HIGH header")
	}
	if !strings.Contains(out, "### MEDIUM") {
		t.Error("missing MEDIUM header")
	}
	if strings.Contains(out, "### LOW") {
		t.Error("LOW header must be omitted when the band is empty")
	}
	if !strings.Contains(out, "- [issue] (nose_analyze) critical finding") {
		t.Errorf("item line malformed:\n%s", out)
	}
}

func TestFormatMarkedOutput_Empty(t *testing.T) {
	if out := FormatMarkedOutput(nil); out != "" {
		t.Errorf("empty input should render empty output, got %q", out)
	}
}

func TestFormatMarkedOutput_HighBeforeMediumBeforeLow(t *testing.T) {
	items := []models.MarkedContent{
		Mark("l", models.ImportanceLow, "detail", "n"),
		Mark("h", models.ImportanceHigh, "issue", "n"),
		Mark("m", models.ImportanceMedium, "file", "n"),
	}

	out := FormatMarkedOutput(items)
	hi := strings.Index(out, "### HIGH")
	mi := strings.Index(out, "### MEDIUM")
	li := strings.Index(out, "### LOW")
	if !(hi < mi && mi < li) {
		t.Errorf("bands out of order:\n%s", out)
	}
}
