package document

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlainTextParagraphs(t *testing.T) {
	doc := []byte("Primer párrafo\n\nSegundo párrafo\ncon dos líneas\n\n\n\nTercer párrafo\n")

	paragraphs, err := NewPlainText().Paragraphs(doc)
	require.NoError(t, err)

	assert.Equal(t, []string{
		"Primer párrafo",
		"Segundo párrafo\ncon dos líneas",
		"Tercer párrafo",
	}, paragraphs)
}

func TestPlainTextParagraphsEmpty(t *testing.T) {
	paragraphs, err := NewPlainText().Paragraphs([]byte(""))
	require.NoError(t, err)
	assert.Empty(t, paragraphs)
}

func TestPlainTextParagraphsCRLF(t *testing.T) {
	paragraphs, err := NewPlainText().Paragraphs([]byte("uno\r\n\r\ndos\r\n"))
	require.NoError(t, err)
	assert.Equal(t, []string{"uno", "dos"}, paragraphs)
}

func TestPlainTextRejectsInvalidUTF8(t *testing.T) {
	_, err := NewPlainText().Paragraphs([]byte{0xff, 0xfe, 0x01})

	var formatErr *FormatError
	require.ErrorAs(t, err, &formatErr)
}

func TestPlainTextRejectsBinary(t *testing.T) {
	_, err := NewPlainText().Paragraphs([]byte("PK\x00\x00contenido"))

	var formatErr *FormatError
	require.ErrorAs(t, err, &formatErr)
}

func TestAnnotate(t *testing.T) {
	doc := []byte("Título\n\nCuerpo del informe\n")

	out, err := NewPlainText().Annotate(doc, []Annotation{
		{AnchorIndex: 1, Author: "Comparador", Initials: "CI", Text: "[ACTUALIZADO] cambio"},
	})
	require.NoError(t, err)

	text := string(out)
	assert.Contains(t, text, "Cuerpo del informe\n[1] (Comparador/CI) [ACTUALIZADO] cambio")
}

func TestAnnotateSequentialIDs(t *testing.T) {
	doc := []byte("uno\n\ndos\n")

	out, err := NewPlainText().Annotate(doc, []Annotation{
		{AnchorIndex: 0, Author: "A", Initials: "A", Text: "primera"},
		{AnchorIndex: 1, Author: "A", Initials: "A", Text: "segunda"},
		{AnchorIndex: 1, Author: "A", Initials: "A", Text: "tercera"},
	})
	require.NoError(t, err)

	text := string(out)
	assert.Contains(t, text, "[1] (A/A) primera")
	assert.Contains(t, text, "[2] (A/A) segunda")
	assert.Contains(t, text, "[3] (A/A) tercera")
}

func TestAnnotateStripsExistingAnnotations(t *testing.T) {
	p := NewPlainText()

	doc := []byte("uno\n\ndos\n")
	first, err := p.Annotate(doc, []Annotation{
		{AnchorIndex: 0, Author: "A", Initials: "A", Text: "vieja"},
	})
	require.NoError(t, err)
	require.Contains(t, string(first), "vieja")

	second, err := p.Annotate(first, []Annotation{
		{AnchorIndex: 1, Author: "A", Initials: "A", Text: "nueva"},
	})
	require.NoError(t, err)

	text := string(second)
	assert.NotContains(t, text, "vieja")
	assert.Contains(t, text, "[1] (A/A) nueva")
}

func TestAnnotateClampsAnchor(t *testing.T) {
	doc := []byte("único párrafo\n")

	out, err := NewPlainText().Annotate(doc, []Annotation{
		{AnchorIndex: 42, Author: "A", Initials: "A", Text: "al final"},
	})
	require.NoError(t, err)
	assert.Contains(t, string(out), "único párrafo\n[1] (A/A) al final")
}

func TestAnnotateEmptyDocumentSynthesizesParagraph(t *testing.T) {
	out, err := NewPlainText().Annotate([]byte(""), []Annotation{
		{AnchorIndex: 0, Author: "A", Initials: "A", Text: "nota"},
	})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(out), "[1] (A/A) nota"))
}
