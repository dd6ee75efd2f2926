package segmenter

import (
	"strings"

	"reportdiff-backend/models"
	"reportdiff-backend/textutil"
)

// BlockConfig tunes raw-block segmentation
type BlockConfig struct {
	// TitleKeywords are line prefixes that promote a line into the block
	// title guess (compared normalized)
	TitleKeywords []string
	// TitleScanLines bounds how many leading lines are scanned for keywords
	TitleScanLines int
}

// DefaultBlockConfig returns the heading keywords used by free-form reports
func DefaultBlockConfig() BlockConfig {
	return BlockConfig{
		TitleKeywords: []string{
			"proyecto",
			"cliente",
			"iniciativa",
			"tarea",
			"hito",
			"area",
		},
		TitleScanLines: 6,
	}
}

// BlockSegmenter emits one unit per maximal run of non-empty paragraphs.
// Blank paragraphs are run boundaries; a multi-line paragraph is one run.
type BlockSegmenter struct {
	cfg BlockConfig
}

// NewBlockSegmenter builds a segmenter from the given config
func NewBlockSegmenter(cfg BlockConfig) *BlockSegmenter {
	if cfg.TitleScanLines <= 0 {
		cfg.TitleScanLines = 6
	}
	return &BlockSegmenter{cfg: cfg}
}

// Segment groups paragraphs into blank-line separated blocks
func (s *BlockSegmenter) Segment(paragraphs []string) []models.Unit {
	var units []models.Unit
	var run []string
	runStart := 0

	flush := func() {
		if len(run) == 0 {
			return
		}
		units = append(units, s.buildUnit(run, runStart))
		run = nil
	}

	for i, para := range paragraphs {
		if strings.TrimSpace(para) == "" {
			flush()
			continue
		}
		if len(run) == 0 {
			runStart = i
		}
		run = append(run, para)
	}
	flush()
	return units
}

func (s *BlockSegmenter) buildUnit(run []string, anchor int) models.Unit {
	var lines []string
	for _, para := range run {
		for _, line := range strings.Split(para, "\n") {
			if strings.TrimSpace(line) != "" {
				lines = append(lines, collapseSpaces(line))
			}
		}
	}
	body := strings.Join(run, "\n")
	title := s.guessTitle(lines)
	return models.Unit{
		Key:    textutil.Normalize(title),
		Title:  title,
		Body:   body,
		Anchor: anchor,
		Flags:  detectFlags(body),
	}
}

// guessTitle joins the keyword-prefixed lines among the first few, falling
// back to the first non-empty line
func (s *BlockSegmenter) guessTitle(lines []string) string {
	var matched []string
	limit := s.cfg.TitleScanLines
	if limit > len(lines) {
		limit = len(lines)
	}
	for _, line := range lines[:limit] {
		norm := textutil.Normalize(line)
		for _, kw := range s.cfg.TitleKeywords {
			if strings.HasPrefix(norm, textutil.Normalize(kw)) {
				matched = append(matched, line)
				break
			}
		}
	}
	if len(matched) > 0 {
		return strings.Join(matched, " / ")
	}
	if len(lines) > 0 {
		return lines[0]
	}
	return ""
}
