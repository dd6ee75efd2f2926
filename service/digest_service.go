package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"reportdiff-backend/models"
	"reportdiff-backend/repository"

	"github.com/google/generative-ai-go/genai"
	"github.com/google/uuid"
)

// DigestService generates a short prose digest of a stored comparison run.
// It is an optional feature gated on a configured Gemini client; the
// comparison engine never depends on it.
type DigestService struct {
	runRepo      *repository.ReportRunRepository
	geminiClient *genai.Client
	model        string
}

// DigestServiceOption is a functional option for DigestService
type DigestServiceOption func(*DigestService)

// DigestWithRunRepository sets the run history repository
func DigestWithRunRepository(repo *repository.ReportRunRepository) DigestServiceOption {
	return func(s *DigestService) {
		s.runRepo = repo
	}
}

// DigestWithGeminiClient sets the Gemini client
func DigestWithGeminiClient(client *genai.Client) DigestServiceOption {
	return func(s *DigestService) {
		s.geminiClient = client
	}
}

// DigestWithModel overrides the generation model
func DigestWithModel(model string) DigestServiceOption {
	return func(s *DigestService) {
		s.model = model
	}
}

// NewDigestService creates a new digest service
func NewDigestService(opts ...DigestServiceOption) *DigestService {
	s := &DigestService{model: "gemini-2.0-flash"}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

var (
	ErrRunNotFound       = errors.New("comparison run not found")
	ErrDigestUnavailable = errors.New("digest generation not configured")
)

// GenerateDigestRequest identifies the run to digest
type GenerateDigestRequest struct {
	RunID uuid.UUID
}

// GenerateDigestResult carries the generated digest
type GenerateDigestResult struct {
	Digest string
}

// GenerateDigest loads the run, prompts the model with its summary and
// stores the digest back on the run record
func (s *DigestService) GenerateDigest(ctx context.Context, req GenerateDigestRequest) (*GenerateDigestResult, error) {
	if s.runRepo == nil {
		return nil, errors.New("run repository not set")
	}
	if s.geminiClient == nil {
		return nil, ErrDigestUnavailable
	}

	run, err := s.runRepo.GetByID(ctx, req.RunID)
	if err != nil {
		return nil, ErrRunNotFound
	}

	model := s.geminiClient.GenerativeModel(s.model)
	resp, err := model.GenerateContent(ctx, genai.Text(buildDigestPrompt(run)))
	if err != nil {
		return nil, fmt.Errorf("digest generation failed: %w", err)
	}

	digest := extractText(resp)
	if digest == "" {
		return nil, errors.New("digest generation returned no text")
	}

	if err := s.runRepo.UpdateDigest(ctx, run.ID, digest); err != nil {
		return nil, fmt.Errorf("failed to store digest: %w", err)
	}
	return &GenerateDigestResult{Digest: digest}, nil
}

func buildDigestPrompt(run *models.ReportRun) string {
	var b strings.Builder
	b.WriteString("Redacta un resumen ejecutivo breve (3-4 frases, en español) de la comparación de informes de seguimiento con estos recuentos de cambios.\n\n")
	fmt.Fprintf(&b, "Total de elementos: %d\n", run.Summary.Total)
	b.WriteString("Por tipo de cambio:\n")
	for _, k := range sortedKeys(run.Summary.ByTag) {
		fmt.Fprintf(&b, "- %s: %d\n", k, run.Summary.ByTag[k])
	}
	b.WriteString("Por severidad:\n")
	for _, k := range sortedKeys(run.Summary.BySeverity) {
		fmt.Fprintf(&b, "- %s: %d\n", k, run.Summary.BySeverity[k])
	}
	return b.String()
}

func sortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func extractText(resp *genai.GenerateContentResponse) string {
	var b strings.Builder
	for _, cand := range resp.Candidates {
		if cand.Content == nil {
			continue
		}
		for _, part := range cand.Content.Parts {
			if text, ok := part.(genai.Text); ok {
				b.WriteString(string(text))
			}
		}
	}
	return strings.TrimSpace(b.String())
}
