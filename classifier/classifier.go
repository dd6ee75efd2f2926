// Package classifier decides a change tag, severity and rationale for each
// matched or unmatched unit. Classification is an ordered chain of
// (predicate, outcome) rules; the first rule that fires wins.
package classifier

import (
	"fmt"
	"regexp"
	"strings"

	"reportdiff-backend/models"
	"reportdiff-backend/textutil"
)

// Config tunes the rule chain for one comparison run
type Config struct {
	// TokenChangeThreshold is the minimum symmetric-difference ratio for the
	// token fallback rule to report an update
	TokenChangeThreshold float64
	// NumericComparison enables the directional percentage/currency rule
	NumericComparison bool
	// MaxDeltaTokens caps the tokens listed per side in token-delta notes
	MaxDeltaTokens int
}

// DefaultConfig returns the documented rule-chain defaults
func DefaultConfig() Config {
	return Config{
		TokenChangeThreshold: 0.35,
		NumericComparison:    true,
		MaxDeltaTokens:       10,
	}
}

// Outcome is the decision for one unit
type Outcome struct {
	Tag      models.ChangeTag
	Severity models.Severity
	Note     string
}

// Rule is one step of the chain. Evaluate returns false when the rule does
// not apply and the chain moves on.
type Rule struct {
	Name     string
	Evaluate func(prev *models.Unit, cur models.Unit) (Outcome, bool)
}

// Classifier evaluates the rule chain in fixed priority order. Given the
// same previous/current pair it always returns the same outcome.
type Classifier struct {
	cfg   Config
	rules []Rule
}

var confirmationRe = regexp.MustCompile(`(?i)\b(confirmad[oa]s?|se confirma|queda confirmado|aprobad[oa]s?|firmad[oa]s?|validad[oa]s?|acordad[oa]s?)\b`)

// New builds a classifier with the full rule chain
func New(cfg Config) *Classifier {
	if cfg.MaxDeltaTokens <= 0 {
		cfg.MaxDeltaTokens = 10
	}
	c := &Classifier{cfg: cfg}
	c.rules = []Rule{
		{Name: "new-item", Evaluate: ruleNewItem},
		{Name: "new-risk", Evaluate: ruleNewRisk},
		{Name: "no-change-lifted", Evaluate: ruleNoChangeLifted},
		{Name: "confirmation-language", Evaluate: ruleConfirmation},
		{Name: "numeric-delta", Evaluate: c.ruleNumericDelta},
		{Name: "token-delta", Evaluate: c.ruleTokenDelta},
		{Name: "no-change", Evaluate: ruleNoChange},
	}
	return c
}

// Rules exposes the chain in evaluation order, for auditing
func (c *Classifier) Rules() []Rule {
	return c.rules
}

// Classify runs the chain for one current unit and its matched baseline
// unit, which may be nil when the unit is new.
func (c *Classifier) Classify(prev *models.Unit, cur models.Unit) Outcome {
	for _, rule := range c.rules {
		if out, ok := rule.Evaluate(prev, cur); ok {
			return out
		}
	}
	// unreachable: the terminal rule always fires
	return Outcome{Tag: models.TagNoChange, Severity: models.SeverityLow, Note: "sin cambios relevantes"}
}

// ClassifyRemoved builds the outcome for a baseline unit no current unit
// matched. The anchor resolves to a current unit sharing the same normalized
// client label, defaulting to 0.
func (c *Classifier) ClassifyRemoved(base models.Unit, current []models.Unit) (Outcome, int) {
	anchor := 0
	if client := textutil.Normalize(base.Client); client != "" {
		for _, cu := range current {
			if textutil.Normalize(cu.Client) == client {
				anchor = cu.Anchor
				break
			}
		}
	}
	out := Outcome{
		Tag:      models.TagRemoved,
		Severity: models.SeverityMedium,
		Note:     "el elemento del informe anterior ya no aparece en la versión actual",
	}
	return out, anchor
}

func ruleNewItem(prev *models.Unit, cur models.Unit) (Outcome, bool) {
	if prev != nil {
		return Outcome{}, false
	}
	return Outcome{
		Tag:      models.TagNew,
		Severity: models.SeverityMedium,
		Note:     "elemento nuevo, sin versión anterior con la que comparar",
	}, true
}

func ruleNewRisk(prev *models.Unit, cur models.Unit) (Outcome, bool) {
	if prev == nil || prev.Flags.Has(models.FlagRisk) || !cur.Flags.Has(models.FlagRisk) {
		return Outcome{}, false
	}
	return Outcome{
		Tag:      models.TagNewRisk,
		Severity: models.SeverityHigh,
		Note:     "aparece un marcador de riesgo que la versión anterior no tenía",
	}, true
}

func ruleNoChangeLifted(prev *models.Unit, cur models.Unit) (Outcome, bool) {
	if prev == nil || !prev.Flags.Has(models.FlagNoChange) || cur.Flags.Has(models.FlagNoChange) {
		return Outcome{}, false
	}
	return Outcome{
		Tag:      models.TagUpdated,
		Severity: riskSeverity(cur, models.SeverityHigh, models.SeverityMedium),
		Note:     "estaba marcado sin cambios y ahora presenta novedades",
	}, true
}

func ruleConfirmation(prev *models.Unit, cur models.Unit) (Outcome, bool) {
	if prev == nil {
		return Outcome{}, false
	}
	if !confirmationRe.MatchString(cur.Body) || confirmationRe.MatchString(prev.Body) {
		return Outcome{}, false
	}
	return Outcome{
		Tag:      models.TagUpdated,
		Severity: riskSeverity(cur, models.SeverityHigh, models.SeverityMedium),
		Note:     fmt.Sprintf("lenguaje de confirmación nuevo: %q", strings.TrimSpace(confirmationRe.FindString(cur.Body))),
	}, true
}

func (c *Classifier) ruleNumericDelta(prev *models.Unit, cur models.Unit) (Outcome, bool) {
	if prev == nil || !c.cfg.NumericComparison {
		return Outcome{}, false
	}
	msgs := numericMessages(prev.Body, cur.Body)
	if len(msgs) == 0 {
		return Outcome{}, false
	}
	return Outcome{
		Tag:      models.TagUpdated,
		Severity: riskSeverity(cur, models.SeverityHigh, models.SeverityMedium),
		Note:     strings.Join(msgs, "; "),
	}, true
}

func (c *Classifier) ruleTokenDelta(prev *models.Unit, cur models.Unit) (Outcome, bool) {
	if prev == nil {
		return Outcome{}, false
	}
	delta := diffTokens(prev.Body, cur.Body)
	if delta.ratio < c.cfg.TokenChangeThreshold {
		return Outcome{}, false
	}
	return Outcome{
		Tag:      models.TagUpdated,
		Severity: riskSeverity(cur, models.SeverityMedium, models.SeverityLow),
		Note:     delta.note(c.cfg.MaxDeltaTokens),
	}, true
}

func ruleNoChange(prev *models.Unit, cur models.Unit) (Outcome, bool) {
	return Outcome{
		Tag:      models.TagNoChange,
		Severity: models.SeverityLow,
		Note:     "sin cambios relevantes",
	}, true
}

func riskSeverity(cur models.Unit, withRisk, withoutRisk models.Severity) models.Severity {
	if cur.Flags.Has(models.FlagRisk) {
		return withRisk
	}
	return withoutRisk
}
