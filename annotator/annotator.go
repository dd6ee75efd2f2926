// Package annotator maps classified deltas back onto paragraph anchors of
// the current document.
package annotator

import (
	"fmt"

	"reportdiff-backend/document"
	"reportdiff-backend/models"
)

// Build emits one annotation request per delta item, anchored at the item's
// paragraph clamped into [0, paragraphCount-1]. NoChange items are skipped
// when significantOnly is set.
func Build(items []models.DeltaItem, paragraphCount int, author, initials string, significantOnly bool) []document.Annotation {
	var anns []document.Annotation
	for _, item := range items {
		if significantOnly && item.Tag == models.TagNoChange {
			continue
		}
		anns = append(anns, document.Annotation{
			AnchorIndex: clamp(item.Anchor, paragraphCount),
			Author:      author,
			Initials:    initials,
			Text:        fmt.Sprintf("%s %s", item.Tag.Label(), item.Note),
		})
	}
	return anns
}

// Highlights selects the high-severity deltas (NoChange excluded) in
// assembled order, capped at limit
func Highlights(items []models.DeltaItem, limit int) []models.DeltaItem {
	var out []models.DeltaItem
	for _, item := range items {
		if item.Tag == models.TagNoChange || item.Severity < models.SeverityHigh {
			continue
		}
		out = append(out, item)
		if limit > 0 && len(out) >= limit {
			break
		}
	}
	return out
}

func clamp(anchor, paragraphCount int) int {
	if paragraphCount <= 0 {
		return 0
	}
	if anchor < 0 {
		return 0
	}
	if anchor >= paragraphCount {
		return paragraphCount - 1
	}
	return anchor
}
