package service

import (
	"context"
	"testing"

	"reportdiff-backend/document"
	"reportdiff-backend/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const baselineDoc = `Informe de seguimiento semanal

ClienteX - Renovación de contrato

La renovación de contrato avanza según lo previsto con un avance 40% y presupuesto de 2.500€ pendiente de visto bueno final por parte del comité de dirección.

ClienteY - Migración de plataforma

La migración de plataforma continúa en fase de pruebas de integración con el equipo técnico desplazado en las oficinas centrales durante todo el mes en curso.
`

const currentDoc = `Informe de seguimiento semanal

ClienteX - Renovación de contrato

La renovación de contrato avanza según lo previsto con un avance 55% y presupuesto de 2.500€ pendiente de visto bueno final por parte del comité de dirección.

ClienteZ - Implantación de CRM

La implantación de CRM arranca con la reunión de levantamiento de requisitos y la planificación detallada de todas las fases restantes del calendario previsto.
`

func defaultRequest(baseline, current string) CompareRequest {
	return CompareRequest{
		BaselineDoc: []byte(baseline),
		CurrentDoc:  []byte(current),
		Options:     models.DefaultCompareOptions(),
	}
}

func tagsByTitle(deltas []models.DeltaItem) map[string]models.ChangeTag {
	out := make(map[string]models.ChangeTag, len(deltas))
	for _, d := range deltas {
		out[d.Title] = d.Tag
	}
	return out
}

func TestCompareEndToEnd(t *testing.T) {
	s := NewCompareService()

	req := defaultRequest(baselineDoc, currentDoc)
	req.Options.IncludeRemoved = true

	result, err := s.Compare(context.Background(), req)
	require.NoError(t, err)

	tags := tagsByTitle(result.Deltas)
	assert.Equal(t, models.TagUpdated, tags["ClienteX - Renovación de contrato"])
	assert.Equal(t, models.TagNew, tags["ClienteZ - Implantación de CRM"])
	assert.Equal(t, models.TagRemoved, tags["ClienteY - Migración de plataforma"])
	assert.Len(t, result.Deltas, 3)

	assert.Equal(t, 3, result.Summary.Total)
	assert.Equal(t, 1, result.Summary.ByTag["updated"])
	assert.Equal(t, 1, result.Summary.ByTag["new"])
	assert.Equal(t, 1, result.Summary.ByTag["removed"])

	// the updated item carries the directional percentage message
	for _, d := range result.Deltas {
		if d.Tag == models.TagUpdated {
			assert.Equal(t, "porcentajes: 40% → 55%", d.Note)
		}
	}

	// annotations land in the current document bytes
	assert.Contains(t, string(result.Document), "[ACTUALIZADO] porcentajes: 40% → 55%")
	assert.NotEmpty(t, result.FileName)
}

func TestCompareWithoutRemovals(t *testing.T) {
	s := NewCompareService()

	result, err := s.Compare(context.Background(), defaultRequest(baselineDoc, currentDoc))
	require.NoError(t, err)

	require.Len(t, result.Deltas, 2)
	for _, d := range result.Deltas {
		assert.NotEqual(t, models.TagRemoved, d.Tag)
	}
}

func TestCompareSelfIsAllNoChange(t *testing.T) {
	s := NewCompareService()

	result, err := s.Compare(context.Background(), defaultRequest(currentDoc, currentDoc))
	require.NoError(t, err)

	require.NotEmpty(t, result.Deltas)
	for _, d := range result.Deltas {
		assert.Equal(t, models.TagNoChange, d.Tag, "self comparison must not report %s for %q", d.Tag, d.Title)
	}
	assert.Zero(t, result.Summary.ByTag["new"])
	assert.Zero(t, result.Summary.ByTag["removed"])
	assert.Zero(t, result.Summary.ByTag["new_risk"])
}

func TestCompareSelfWithRemovalsEnabled(t *testing.T) {
	s := NewCompareService()

	req := defaultRequest(currentDoc, currentDoc)
	req.Options.IncludeRemoved = true

	result, err := s.Compare(context.Background(), req)
	require.NoError(t, err)
	assert.Zero(t, result.Summary.ByTag["removed"])
}

func TestCompareOrdersBySeverityThenTitle(t *testing.T) {
	s := NewCompareService()

	req := defaultRequest(baselineDoc, currentDoc)
	req.Options.IncludeRemoved = true

	result, err := s.Compare(context.Background(), req)
	require.NoError(t, err)

	for i := 1; i < len(result.Deltas); i++ {
		prev, cur := result.Deltas[i-1], result.Deltas[i]
		if prev.Severity == cur.Severity {
			assert.LessOrEqual(t, prev.Title, cur.Title)
		} else {
			assert.Greater(t, prev.Severity, cur.Severity)
		}
	}
}

func TestCompareHighlights(t *testing.T) {
	s := NewCompareService()

	riskCurrent := `ClienteX - Renovación de contrato

Se ha detectado un [RIESGO] grave en la negociación que puede bloquear la firma del contrato durante las próximas semanas según el equipo comercial.
`
	req := defaultRequest(baselineDoc, riskCurrent)
	req.Options.Highlights = true

	result, err := s.Compare(context.Background(), req)
	require.NoError(t, err)

	require.NotEmpty(t, result.Highlights)
	assert.Equal(t, models.TagNewRisk, result.Highlights[0].Tag)
	assert.GreaterOrEqual(t, result.Highlights[0].Severity, models.SeverityHigh)
}

func TestCompareValidatesInput(t *testing.T) {
	s := NewCompareService()
	ctx := context.Background()

	var inputErr *InputError

	_, err := s.Compare(ctx, CompareRequest{CurrentDoc: []byte("x"), Options: models.DefaultCompareOptions()})
	require.ErrorAs(t, err, &inputErr)

	_, err = s.Compare(ctx, CompareRequest{BaselineDoc: []byte("x"), Options: models.DefaultCompareOptions()})
	require.ErrorAs(t, err, &inputErr)

	req := defaultRequest(baselineDoc, currentDoc)
	req.Options.MatchThreshold = 0
	_, err = s.Compare(ctx, req)
	require.ErrorAs(t, err, &inputErr)

	req = defaultRequest(baselineDoc, currentDoc)
	req.Options.MatchThreshold = 1.5
	_, err = s.Compare(ctx, req)
	require.ErrorAs(t, err, &inputErr)

	req = defaultRequest(baselineDoc, currentDoc)
	req.Options.Mode = "frases"
	_, err = s.Compare(ctx, req)
	require.ErrorAs(t, err, &inputErr)
}

func TestCompareReportsFormatError(t *testing.T) {
	s := NewCompareService()

	req := defaultRequest(baselineDoc, currentDoc)
	req.BaselineDoc = []byte{0xff, 0xfe}

	_, err := s.Compare(context.Background(), req)

	var formatErr *document.FormatError
	require.ErrorAs(t, err, &formatErr)
}

func TestCompareBlockMode(t *testing.T) {
	s := NewCompareService()

	baseline := "Proyecto Alfa\nAvance según lo previsto.\n\nProyecto Beta\nSin cambios esta semana.\n"
	current := "Proyecto Alfa\nAvance según lo previsto.\n\nProyecto Beta\nEntrega adelantada con [RIESGO] de calidad.\n"

	req := defaultRequest(baseline, current)
	req.Options.Mode = models.ModeBlocks
	req.Options.IncludeRemoved = true

	result, err := s.Compare(context.Background(), req)
	require.NoError(t, err)

	tags := tagsByTitle(result.Deltas)
	assert.Equal(t, models.TagNoChange, tags["Proyecto Alfa"])
	assert.Equal(t, models.TagNewRisk, tags["Proyecto Beta"])
}
