package segmenter

import (
	"regexp"
	"strings"

	"reportdiff-backend/models"
	"reportdiff-backend/textutil"
)

// ItemConfig tunes title+description segmentation
type ItemConfig struct {
	// HeadingPhrases are exact section headings (compared normalized)
	HeadingPhrases []string
	// HeadingPrefixes are section heading prefixes (compared normalized)
	HeadingPrefixes []string
	// MinTitleLen and MaxTitleLen bound accepted title lengths in runes
	MinTitleLen int
	MaxTitleLen int
	// DescriptionLookahead is how many paragraphs after a title are scanned
	// for its description
	DescriptionLookahead int
	// MinDescriptionLen is the minimum rune length of a qualifying description
	MinDescriptionLen int
	// PopulateAnchors records real paragraph indexes on emitted units. Only
	// the version being annotated needs them; the other side keeps 0.
	PopulateAnchors bool
}

// DefaultItemConfig returns the section headings used by follow-up reports
func DefaultItemConfig() ItemConfig {
	return ItemConfig{
		HeadingPhrases: []string{
			"resumen ejecutivo",
			"proyectos en curso",
			"riesgos",
			"proximos pasos",
			"notas generales",
			"conclusiones",
		},
		HeadingPrefixes: []string{
			"informe de",
			"estado de",
			"seccion",
			"semana del",
		},
		MinTitleLen:          12,
		MaxTitleLen:          220,
		DescriptionLookahead: 3,
		MinDescriptionLen:    80,
		PopulateAnchors:      true,
	}
}

// ItemSegmenter emits one unit per "Cliente - Proyecto" title paragraph that
// is followed by a qualifying description within the lookahead window.
// Titles without a description are discarded.
type ItemSegmenter struct {
	cfg ItemConfig
}

// NewItemSegmenter builds a segmenter from the given config
func NewItemSegmenter(cfg ItemConfig) *ItemSegmenter {
	if cfg.DescriptionLookahead <= 0 {
		cfg.DescriptionLookahead = 3
	}
	return &ItemSegmenter{cfg: cfg}
}

// dashVariants maps visually distinct dash runes onto plain ASCII '-'
var dashVariants = strings.NewReplacer(
	"‐", "-", // hyphen
	"‑", "-", // non-breaking hyphen
	"‒", "-", // figure dash
	"–", "-", // en dash
	"—", "-", // em dash
	"−", "-", // minus sign
)

var outlinePrefixRe = regexp.MustCompile(`^\d+(\.\d+)*[.)]?\s`)

// Segment scans the paragraph sequence for title+description pairs
func (s *ItemSegmenter) Segment(paragraphs []string) []models.Unit {
	var units []models.Unit
	for i, para := range paragraphs {
		title := collapseSpaces(para)
		if !s.isTitle(title) {
			continue
		}

		desc := s.findDescription(paragraphs, i)
		if desc == "" {
			continue
		}

		anchor := 0
		if s.cfg.PopulateAnchors {
			anchor = i
		}
		units = append(units, models.Unit{
			Key:    textutil.Normalize(title),
			Title:  title,
			Client: clientLabel(title),
			Body:   desc,
			Anchor: anchor,
			Flags:  detectFlags(desc),
		})
	}
	return units
}

func (s *ItemSegmenter) isTitle(title string) bool {
	if title == "" {
		return false
	}
	if s.isHeading(title) {
		return false
	}
	dashed := dashVariants.Replace(title)
	if !strings.Contains(dashed, " - ") {
		return false
	}
	n := len([]rune(title))
	if n < s.cfg.MinTitleLen || n > s.cfg.MaxTitleLen {
		return false
	}
	if outlinePrefixRe.MatchString(title) {
		return false
	}
	return true
}

// isHeading matches the denylist case-insensitively and diacritic-aware
func (s *ItemSegmenter) isHeading(para string) bool {
	norm := textutil.Normalize(para)
	if norm == "" {
		return false
	}
	for _, phrase := range s.cfg.HeadingPhrases {
		if norm == textutil.Normalize(phrase) {
			return true
		}
	}
	for _, prefix := range s.cfg.HeadingPrefixes {
		if strings.HasPrefix(norm, textutil.Normalize(prefix)) {
			return true
		}
	}
	return false
}

// findDescription returns the first qualifying description in the lookahead
// window after the title, or "". A section heading ends the search early.
func (s *ItemSegmenter) findDescription(paragraphs []string, titleIdx int) string {
	for j := titleIdx + 1; j <= titleIdx+s.cfg.DescriptionLookahead && j < len(paragraphs); j++ {
		candidate := strings.TrimSpace(paragraphs[j])
		if s.isHeading(candidate) {
			return ""
		}
		if len([]rune(candidate)) >= s.cfg.MinDescriptionLen && strings.Contains(candidate, " ") {
			return candidate
		}
	}
	return ""
}

// clientLabel extracts the text before the first dash separator
func clientLabel(title string) string {
	dashed := dashVariants.Replace(title)
	before, _, found := strings.Cut(dashed, " - ")
	if !found {
		return ""
	}
	return strings.TrimSpace(before)
}

func collapseSpaces(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
