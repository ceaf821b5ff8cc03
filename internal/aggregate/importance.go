// Package aggregate collects per-task results from parallel nodes and
// compresses them into bounded-size summaries, keeping high-importance
// content ahead of everything else.
package aggregate

import (
	"fmt"
	"sort"
	"strings"

	"github.com/wukongd/wukong/pkg/models"
)

// Mark tags one atomic piece of content with an importance band, a
// category, and the node it came from.
func Mark(content string, importance models.Importance, category, source string) models.MarkedContent {
	return models.MarkedContent{
		Content:    content,
		Importance: importance,
		Category:   category,
		Source:     source,
	}
}

// CompressByImportance admits items in priority order until the
// character budget runs out. The sort is stable (HIGH, MEDIUM, LOW;
// ties keep input order) and admission is strict first-fit: once an
// item does not fit, no later item is admitted, even a shorter one
// that would. Compression therefore never drops a HIGH item while
// retaining a LOW one, and the admitted total never exceeds maxChars.
func CompressByImportance(items []models.MarkedContent, maxChars int) []models.MarkedContent {
	sorted := make([]models.MarkedContent, len(items))
	copy(sorted, items)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Importance.Rank() < sorted[j].Importance.Rank()
	})

	var result []models.MarkedContent
	total := 0
	for _, item := range sorted {
		if total+item.Len() > maxChars {
			break
		}
		result = append(result, item)
		total += item.Len()
	}
	return result
}

// bandHeaders maps importance bands to their section headers.
var bandHeaders = []struct {
	importance models.Importance
	header     string
}{
	{models.ImportanceHigh, "### HIGH"},
	{models.ImportanceMedium, "### MEDIUM"},
	{models.ImportanceLow, "### LOW"},
}

// FormatMarkedOutput groups items by importance band in HIGH, MEDIUM,
// LOW order. A band header appears only when the band is non-empty.
// Items outside the known bands are appended under their raw tag so a
// misbehaving node's output still surfaces.
func FormatMarkedOutput(items []models.MarkedContent) string {
	if len(items) == 0 {
		return ""
	}

	var b strings.Builder
	for _, band := range bandHeaders {
		wrote := false
		for _, item := range items {
			if item.Importance != band.importance {
				continue
			}
			if !wrote {
				b.WriteString(band.header)
				b.WriteString("\n")
				wrote = true
			}
			writeItem(&b, item)
		}
		if wrote {
			b.WriteString("\n")
		}
	}

	wroteUnknown := false
	for _, item := range items {
		if item.Importance.Valid() {
			continue
		}
		if !wroteUnknown {
			fmt.Fprintf(&b, "### UNKNOWN (%s)\n", item.Importance)
			wroteUnknown = true
		}
		writeItem(&b, item)
	}
	if wroteUnknown {
		b.WriteString("\n")
	}

	return strings.TrimRight(b.String(), "\n") + "\n"
}

func writeItem(b *strings.Builder, item models.MarkedContent) {
	fmt.Fprintf(b, "- [%s] (%s) %s\n", item.Category, item.Source, item.Content)
}
