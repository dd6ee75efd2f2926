package models

// SegmentationMode selects how raw paragraphs are cut into units
type SegmentationMode string

const (
	// ModeItems segments title+description pairs (project follow-up reports)
	ModeItems SegmentationMode = "items"
	// ModeBlocks segments blank-line separated paragraph blocks
	ModeBlocks SegmentationMode = "blocks"
)

// CompareOptions carries every tunable of a comparison run. A zero value is
// not usable directly; callers start from DefaultCompareOptions and override.
type CompareOptions struct {
	// Mode selects the segmentation strategy
	Mode SegmentationMode `json:"mode"`
	// MatchThreshold is the minimum composite score for pairing a current
	// unit with a baseline unit, in (0,1]
	MatchThreshold float64 `json:"match_threshold"`
	// TokenChangeThreshold is the minimum symmetric-difference ratio for the
	// token-level fallback rule to report an update
	TokenChangeThreshold float64 `json:"token_change_threshold"`
	// IncludeRemoved emits one Removed delta per unmatched baseline unit
	IncludeRemoved bool `json:"include_removed"`
	// NumericComparison enables the directional percentage/currency rule
	NumericComparison bool `json:"numeric_comparison"`
	// SignificantOnly skips NoChange deltas when annotating
	SignificantOnly bool `json:"significant_only"`
	// Highlights surfaces high-severity deltas as a capped top list
	Highlights bool `json:"highlights"`
	// HighlightLimit caps the highlight list
	HighlightLimit int `json:"highlight_limit"`
	// Author and Initials are stamped on every generated annotation
	Author   string `json:"author"`
	Initials string `json:"initials"`
}

// DefaultCompareOptions returns the documented defaults for a comparison run
func DefaultCompareOptions() CompareOptions {
	return CompareOptions{
		Mode:                 ModeItems,
		MatchThreshold:       0.35,
		TokenChangeThreshold: 0.35,
		IncludeRemoved:       false,
		NumericComparison:    true,
		SignificantOnly:      true,
		Highlights:           false,
		HighlightLimit:       12,
		Author:               "Comparador de Informes",
		Initials:             "CI",
	}
}
