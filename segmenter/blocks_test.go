package segmenter

import (
	"testing"

	"reportdiff-backend/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBlockSegmenterGroupsRuns(t *testing.T) {
	s := NewBlockSegmenter(DefaultBlockConfig())

	units := s.Segment([]string{
		"Proyecto Alfa",
		"Avance del sprint según lo previsto.",
		"",
		"Proyecto Beta",
		"Pendiente de validación del cliente.",
	})

	require.Len(t, units, 2)
	assert.Equal(t, 0, units[0].Anchor)
	assert.Equal(t, 3, units[1].Anchor)
	assert.Contains(t, units[0].Body, "Avance del sprint")
	assert.Contains(t, units[1].Body, "Pendiente de validación")
}

func TestBlockSegmenterMultilineParagraphIsOneRun(t *testing.T) {
	s := NewBlockSegmenter(DefaultBlockConfig())

	units := s.Segment([]string{
		"Proyecto Alfa\nEstado general correcto\nAvance del sprint según lo previsto.",
	})

	require.Len(t, units, 1)
	assert.Equal(t, 0, units[0].Anchor)
}

func TestBlockSegmenterTitleFromKeywords(t *testing.T) {
	s := NewBlockSegmenter(DefaultBlockConfig())

	units := s.Segment([]string{
		"Notas introductorias\nProyecto Alfa\nCliente Acme\nEl trabajo continúa sin incidencias.",
	})

	require.Len(t, units, 1)
	assert.Equal(t, "Proyecto Alfa / Cliente Acme", units[0].Title)
}

func TestBlockSegmenterTitleFallsBackToFirstLine(t *testing.T) {
	s := NewBlockSegmenter(DefaultBlockConfig())

	units := s.Segment([]string{
		"Notas de la reunión semanal\nEl trabajo continúa sin incidencias.",
	})

	require.Len(t, units, 1)
	assert.Equal(t, "Notas de la reunión semanal", units[0].Title)
}

func TestBlockSegmenterFlags(t *testing.T) {
	s := NewBlockSegmenter(DefaultBlockConfig())

	units := s.Segment([]string{
		"Proyecto Alfa\n[RIESGO] Retraso en la entrega del proveedor.",
		"",
		"Proyecto Beta\nSin cambios esta semana.",
		"",
		"Proyecto Gamma\nTodo avanza correctamente.",
	})

	require.Len(t, units, 3)
	assert.True(t, units[0].Flags.Has(models.FlagRisk))
	assert.True(t, units[1].Flags.Has(models.FlagNoChange))
	assert.False(t, units[2].Flags.Has(models.FlagRisk))
	assert.False(t, units[2].Flags.Has(models.FlagNoChange))
}

func TestBlockSegmenterBareRiskToken(t *testing.T) {
	s := NewBlockSegmenter(DefaultBlockConfig())

	units := s.Segment([]string{
		"Proyecto Alfa\nExiste un riesgo de desviación en el presupuesto.",
	})

	require.Len(t, units, 1)
	assert.True(t, units[0].Flags.Has(models.FlagRisk))
}

func TestBlockSegmenterEmptyInput(t *testing.T) {
	s := NewBlockSegmenter(DefaultBlockConfig())
	assert.Empty(t, s.Segment(nil))
	assert.Empty(t, s.Segment([]string{"", "   "}))
}
