// Package segmenter cuts an ordered paragraph sequence into comparable units.
package segmenter

import (
	"regexp"

	"reportdiff-backend/models"
)

// Segmenter turns the paragraphs of one document version into ordered units
type Segmenter interface {
	Segment(paragraphs []string) []models.Unit
}

var (
	riskMarkerRe = regexp.MustCompile(`(?i)(\[\s*riesgo\s*\]|\briesgos?\b)`)
	noChangeRe   = regexp.MustCompile(`(?i)\bsin\s+cambios\b`)
)

// detectFlags scans unit text for the risk marker and the fixed no-update
// phrase. Flag detection is diacritic-agnostic only where the markers are.
func detectFlags(text string) models.FlagSet {
	var flags models.FlagSet
	if riskMarkerRe.MatchString(text) {
		flags = flags.Set(models.FlagRisk)
	}
	if noChangeRe.MatchString(text) {
		flags = flags.Set(models.FlagNoChange)
	}
	return flags
}
