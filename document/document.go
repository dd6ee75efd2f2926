// Package document is the boundary to packaged document formats. The
// comparison engine only sees ordered paragraph text and annotation
// requests; format internals stay behind these interfaces.
package document

import "fmt"

// FormatError reports bytes that do not parse as the expected document format
type FormatError struct {
	Reason string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("document format error: %s", e.Reason)
}

// Annotation is one annotation request anchored to a paragraph of the
// current document
type Annotation struct {
	// AnchorIndex is the 0-based paragraph the annotation attaches to,
	// clamped into range by the writer
	AnchorIndex int    `json:"anchor_index"`
	Author      string `json:"author"`
	Initials    string `json:"initials"`
	Text        string `json:"text"`
}

// Reader extracts the ordered paragraph texts of a document
type Reader interface {
	Paragraphs(data []byte) ([]string, error)
}

// Annotator rewrites a document with a fresh annotation set: pre-existing
// annotations are stripped, each request becomes one annotation with ids
// assigned sequentially from 1, and a document with zero paragraphs gets a
// single empty paragraph synthesized so anchoring cannot fail.
type Annotator interface {
	Annotate(base []byte, anns []Annotation) ([]byte, error)
}
