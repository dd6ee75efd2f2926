package service

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"sort"

	"reportdiff-backend/annotator"
	"reportdiff-backend/classifier"
	"reportdiff-backend/document"
	"reportdiff-backend/matcher"
	"reportdiff-backend/models"
	"reportdiff-backend/repository"
	"reportdiff-backend/segmenter"
	"reportdiff-backend/storage"

	"github.com/google/uuid"
)

// CompareService runs the comparison pipeline: segment both versions, match
// units across them, classify each unit, assemble the ordered delta list and
// annotate the current document. Each call is a pure function of its inputs
// plus options; no state is shared between runs.
type CompareService struct {
	runRepo   *repository.ReportRunRepository
	storage   storage.Storage
	reader    document.Reader
	annotator document.Annotator
}

// CompareServiceOption is a functional option for CompareService
type CompareServiceOption func(*CompareService)

// CompareWithRunRepository sets the run history repository
func CompareWithRunRepository(repo *repository.ReportRunRepository) CompareServiceOption {
	return func(s *CompareService) {
		s.runRepo = repo
	}
}

// CompareWithStorage sets the archive storage for annotated outputs
func CompareWithStorage(st storage.Storage) CompareServiceOption {
	return func(s *CompareService) {
		s.storage = st
	}
}

// CompareWithDocumentReader sets the document reader
func CompareWithDocumentReader(r document.Reader) CompareServiceOption {
	return func(s *CompareService) {
		s.reader = r
	}
}

// CompareWithDocumentAnnotator sets the document annotator
func CompareWithDocumentAnnotator(a document.Annotator) CompareServiceOption {
	return func(s *CompareService) {
		s.annotator = a
	}
}

// NewCompareService creates a compare service. Reader and annotator default
// to the plain text implementation; repository and storage are optional and
// the pipeline works standalone without them.
func NewCompareService(opts ...CompareServiceOption) *CompareService {
	s := &CompareService{}
	for _, opt := range opts {
		opt(s)
	}
	if s.reader == nil {
		s.reader = document.NewPlainText()
	}
	if s.annotator == nil {
		s.annotator = document.NewPlainText()
	}
	return s
}

// CompareRequest carries the decoded documents and the run options
type CompareRequest struct {
	BaselineDoc []byte
	CurrentDoc  []byte
	Options     models.CompareOptions
}

// CompareResult is one completed comparison run
type CompareResult struct {
	RunID      uuid.UUID
	FileName   string
	Document   []byte
	Deltas     []models.DeltaItem
	Highlights []models.DeltaItem
	Summary    models.Summary
}

// Compare executes the full pipeline for one request
func (s *CompareService) Compare(ctx context.Context, req CompareRequest) (*CompareResult, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}
	opts := req.Options

	baseParagraphs, err := s.reader.Paragraphs(req.BaselineDoc)
	if err != nil {
		return nil, fmt.Errorf("baseline document: %w", err)
	}
	curParagraphs, err := s.reader.Paragraphs(req.CurrentDoc)
	if err != nil {
		return nil, fmt.Errorf("current document: %w", err)
	}

	baseUnits := buildSegmenter(opts.Mode, false).Segment(baseParagraphs)
	curUnits := buildSegmenter(opts.Mode, true).Segment(curParagraphs)

	match := matcher.Greedy(curUnits, baseUnits, opts.MatchThreshold)

	deltas := s.classify(curUnits, baseUnits, match, opts)
	sortDeltas(deltas)
	summary := models.Summarize(deltas)

	anns := annotator.Build(deltas, len(curParagraphs), opts.Author, opts.Initials, opts.SignificantOnly)
	docBytes, err := s.annotator.Annotate(req.CurrentDoc, anns)
	if err != nil {
		return nil, &InternalError{Stage: "annotate", Err: err}
	}

	var highlights []models.DeltaItem
	if opts.Highlights {
		highlights = annotator.Highlights(deltas, opts.HighlightLimit)
	}

	runID := uuid.New()
	result := &CompareResult{
		RunID:      runID,
		FileName:   fmt.Sprintf("informe-comparado-%s.txt", runID.String()[:8]),
		Document:   docBytes,
		Deltas:     deltas,
		Highlights: highlights,
		Summary:    summary,
	}

	s.archive(ctx, runID, result, opts)
	return result, nil
}

// classify produces one delta per current unit plus, when requested, one per
// unmatched baseline unit
func (s *CompareService) classify(curUnits, baseUnits []models.Unit, match matcher.Result, opts models.CompareOptions) []models.DeltaItem {
	cls := classifier.New(classifier.Config{
		TokenChangeThreshold: opts.TokenChangeThreshold,
		NumericComparison:    opts.NumericComparison,
		MaxDeltaTokens:       10,
	})

	deltas := make([]models.DeltaItem, 0, len(curUnits))
	for ci := range curUnits {
		cur := curUnits[ci]
		var prev *models.Unit
		if bi, ok := match.Matched(ci); ok {
			prevCopy := baseUnits[bi]
			prev = &prevCopy
		}
		out := cls.Classify(prev, cur)
		curCopy := cur
		deltas = append(deltas, models.DeltaItem{
			Key:      cur.Key,
			Title:    cur.Title,
			Tag:      out.Tag,
			Severity: out.Severity,
			Note:     out.Note,
			Anchor:   cur.Anchor,
			Previous: prev,
			Current:  &curCopy,
		})
	}

	if opts.IncludeRemoved {
		for _, bi := range match.UnmatchedBaseline(len(baseUnits)) {
			base := baseUnits[bi]
			out, anchor := cls.ClassifyRemoved(base, curUnits)
			baseCopy := base
			deltas = append(deltas, models.DeltaItem{
				Key:      base.Key,
				Title:    base.Title,
				Tag:      out.Tag,
				Severity: out.Severity,
				Note:     out.Note,
				Anchor:   anchor,
				Previous: &baseCopy,
			})
		}
	}
	return deltas
}

// sortDeltas orders by severity descending, then raw title ascending as a
// stable tie-break
func sortDeltas(deltas []models.DeltaItem) {
	sort.SliceStable(deltas, func(i, j int) bool {
		if deltas[i].Severity != deltas[j].Severity {
			return deltas[i].Severity > deltas[j].Severity
		}
		return deltas[i].Title < deltas[j].Title
	})
}

// archive persists the run record and uploads the annotated document.
// Both are best-effort adjuncts: the comparison result stands without them.
func (s *CompareService) archive(ctx context.Context, runID uuid.UUID, result *CompareResult, opts models.CompareOptions) {
	var storagePath *string
	if s.storage != nil {
		path, err := s.storage.Upload(ctx, runID, result.FileName, bytes.NewReader(result.Document))
		if err != nil {
			log.Printf("Warning: failed to archive annotated document for run %s: %v", runID, err)
		} else {
			storagePath = &path
		}
	}

	if s.runRepo != nil {
		run := &models.ReportRun{
			ID:          runID,
			FileName:    result.FileName,
			Mode:        string(opts.Mode),
			Options:     models.RunOptions(opts),
			Summary:     models.RunSummary(result.Summary),
			StoragePath: storagePath,
		}
		if err := s.runRepo.Create(ctx, run); err != nil {
			log.Printf("Warning: failed to persist run %s: %v", runID, err)
		}
	}
}

func buildSegmenter(mode models.SegmentationMode, populateAnchors bool) segmenter.Segmenter {
	switch mode {
	case models.ModeBlocks:
		return segmenter.NewBlockSegmenter(segmenter.DefaultBlockConfig())
	default:
		cfg := segmenter.DefaultItemConfig()
		cfg.PopulateAnchors = populateAnchors
		return segmenter.NewItemSegmenter(cfg)
	}
}

func validateRequest(req CompareRequest) error {
	if len(req.BaselineDoc) == 0 {
		return inputErrorf("baseline document is required")
	}
	if len(req.CurrentDoc) == 0 {
		return inputErrorf("current document is required")
	}
	if req.Options.MatchThreshold <= 0 || req.Options.MatchThreshold > 1 {
		return inputErrorf("match_threshold must be in (0,1], got %v", req.Options.MatchThreshold)
	}
	if req.Options.TokenChangeThreshold < 0 || req.Options.TokenChangeThreshold > 1 {
		return inputErrorf("token_change_threshold must be in [0,1], got %v", req.Options.TokenChangeThreshold)
	}
	switch req.Options.Mode {
	case models.ModeItems, models.ModeBlocks:
	default:
		return inputErrorf("unknown segmentation mode %q", req.Options.Mode)
	}
	return nil
}
