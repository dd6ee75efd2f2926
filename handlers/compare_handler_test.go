package handlers

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"reportdiff-backend/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testBaseline = `ClienteX - Renovación de contrato

La renovación de contrato avanza según lo previsto con un avance 40% pendiente del visto bueno final por parte del comité de dirección del cliente.
`

const testCurrent = `ClienteX - Renovación de contrato

La renovación de contrato avanza según lo previsto con un avance 55% pendiente del visto bueno final por parte del comité de dirección del cliente.
`

func setupRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewCompareHandler(service.NewCompareService())
	r.POST("/api/compare", h.CompareReports)
	return r
}

func doCompare(t *testing.T, body map[string]interface{}) *httptest.ResponseRecorder {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/compare", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	setupRouter().ServeHTTP(w, req)
	return w
}

func b64(s string) string {
	return base64.StdEncoding.EncodeToString([]byte(s))
}

func TestCompareReportsSuccess(t *testing.T) {
	w := doCompare(t, map[string]interface{}{
		"baseline_doc": b64(testBaseline),
		"current_doc":  b64(testCurrent),
	})

	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Success bool `json:"success"`
		Data    struct {
			RunID    string `json:"run_id"`
			FileName string `json:"file_name"`
			Document string `json:"document"`
			Summary  struct {
				Total int            `json:"total"`
				ByTag map[string]int `json:"by_tag"`
			} `json:"summary"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	assert.True(t, resp.Success)
	assert.NotEmpty(t, resp.Data.RunID)
	assert.NotEmpty(t, resp.Data.FileName)
	assert.Equal(t, 1, resp.Data.Summary.Total)
	assert.Equal(t, 1, resp.Data.Summary.ByTag["updated"])

	doc, err := base64.StdEncoding.DecodeString(resp.Data.Document)
	require.NoError(t, err)
	assert.Contains(t, string(doc), "porcentajes: 40% → 55%")
}

func TestCompareReportsDocumentFormat(t *testing.T) {
	w := doCompare(t, map[string]interface{}{
		"baseline_doc":    b64(testBaseline),
		"current_doc":     b64(testCurrent),
		"response_format": "document",
	})

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Disposition"), "attachment")
	assert.Contains(t, w.Body.String(), "[ACTUALIZADO]")
}

func TestCompareReportsMissingField(t *testing.T) {
	w := doCompare(t, map[string]interface{}{
		"baseline_doc": b64(testBaseline),
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "INVALID_REQUEST")
}

func TestCompareReportsMalformedBase64(t *testing.T) {
	w := doCompare(t, map[string]interface{}{
		"baseline_doc": "not base64!!!",
		"current_doc":  b64(testCurrent),
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "INVALID_BASELINE_DOC")
}

func TestCompareReportsBadThreshold(t *testing.T) {
	w := doCompare(t, map[string]interface{}{
		"baseline_doc":    b64(testBaseline),
		"current_doc":     b64(testCurrent),
		"match_threshold": 2.0,
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "INVALID_INPUT")
}

func TestCompareReportsBinaryDocument(t *testing.T) {
	w := doCompare(t, map[string]interface{}{
		"baseline_doc": base64.StdEncoding.EncodeToString([]byte{0xff, 0xfe, 0x00}),
		"current_doc":  b64(testCurrent),
	})

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, w.Body.String(), "DOCUMENT_FORMAT_ERROR")
}
