package document

import (
	"bytes"
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"
)

// PlainText reads and annotates plain UTF-8 text documents. Paragraphs are
// blank-line separated runs of lines; annotations are rendered as extra
// lines appended to their anchor paragraph, in the form
// "[id] (Author/IN) text".
type PlainText struct{}

// NewPlainText returns the plain text reader/annotator
func NewPlainText() *PlainText {
	return &PlainText{}
}

var annotationLineRe = regexp.MustCompile(`^\[\d+\]\s+\([^)]*\)\s`)

// Paragraphs splits the document on blank-line boundaries. Annotation lines
// from an earlier Annotate pass are not part of the document content and are
// dropped.
func (p *PlainText) Paragraphs(data []byte) ([]string, error) {
	if !utf8.Valid(data) {
		return nil, &FormatError{Reason: "not valid UTF-8 text"}
	}
	if bytes.ContainsRune(data, 0) {
		return nil, &FormatError{Reason: "binary content"}
	}

	text := strings.ReplaceAll(string(data), "\r\n", "\n")
	var paragraphs []string
	var run []string

	flush := func() {
		if len(run) > 0 {
			paragraphs = append(paragraphs, strings.Join(run, "\n"))
			run = nil
		}
	}

	for _, line := range strings.Split(text, "\n") {
		if strings.TrimSpace(line) == "" {
			flush()
			continue
		}
		if annotationLineRe.MatchString(line) {
			continue
		}
		run = append(run, line)
	}
	flush()
	return paragraphs, nil
}

// Annotate strips any pre-existing annotations and rewrites the document
// with the requested ones, ids assigned sequentially starting at 1. Anchors
// beyond the paragraph range clamp to the nearest valid paragraph.
func (p *PlainText) Annotate(base []byte, anns []Annotation) ([]byte, error) {
	paragraphs, err := p.Paragraphs(base)
	if err != nil {
		return nil, err
	}
	if len(paragraphs) == 0 {
		paragraphs = []string{""}
	}

	notes := make(map[int][]string, len(anns))
	for i, ann := range anns {
		anchor := ann.AnchorIndex
		if anchor < 0 {
			anchor = 0
		}
		if anchor >= len(paragraphs) {
			anchor = len(paragraphs) - 1
		}
		line := fmt.Sprintf("[%d] (%s/%s) %s", i+1, ann.Author, ann.Initials, ann.Text)
		notes[anchor] = append(notes[anchor], line)
	}

	var out []string
	for i, para := range paragraphs {
		block := para
		if extra := notes[i]; len(extra) > 0 {
			if block != "" {
				block += "\n"
			}
			block += strings.Join(extra, "\n")
		}
		out = append(out, block)
	}
	return []byte(strings.Join(out, "\n\n") + "\n"), nil
}
