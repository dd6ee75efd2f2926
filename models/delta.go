package models

// ChangeTag classifies the kind of difference detected for a unit
type ChangeTag string

const (
	TagNew      ChangeTag = "new"
	TagRemoved  ChangeTag = "removed"
	TagUpdated  ChangeTag = "updated"
	TagNewRisk  ChangeTag = "new_risk"
	TagNoChange ChangeTag = "no_change"
)

// Label returns the Spanish display label used in annotation text
func (t ChangeTag) Label() string {
	switch t {
	case TagNew:
		return "[NUEVO]"
	case TagRemoved:
		return "[ELIMINADO]"
	case TagUpdated:
		return "[ACTUALIZADO]"
	case TagNewRisk:
		return "[NUEVO RIESGO]"
	case TagNoChange:
		return "[SIN CAMBIOS]"
	default:
		return "[CAMBIO]"
	}
}

// Severity is the ordinal importance of a change, used for sorting and
// highlight selection
type Severity int

const (
	SeverityLow Severity = iota
	SeverityMedium
	SeverityHigh
	SeverityCritical
)

// String returns the wire name of the severity
func (s Severity) String() string {
	switch s {
	case SeverityLow:
		return "low"
	case SeverityMedium:
		return "medium"
	case SeverityHigh:
		return "high"
	case SeverityCritical:
		return "critical"
	default:
		return "unknown"
	}
}

// MarshalText implements encoding.TextMarshaler so severities serialize by name
func (s Severity) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// DeltaItem is one classified difference between the baseline and current
// versions of a report. Exactly one is produced per current unit, plus one
// per unmatched baseline unit when removals are requested.
type DeltaItem struct {
	Key      string    `json:"key"`
	Title    string    `json:"title"`
	Tag      ChangeTag `json:"tag"`
	Severity Severity  `json:"severity"`
	Note     string    `json:"note"`
	Anchor   int       `json:"anchor"`
	Previous *Unit     `json:"previous,omitempty"`
	Current  *Unit     `json:"current,omitempty"`
}

// Summary aggregates a delta list by tag and severity. It is derived from a
// final list and recomputed from scratch on every run.
type Summary struct {
	Total      int               `json:"total"`
	ByTag      map[string]int    `json:"by_tag"`
	BySeverity map[string]int    `json:"by_severity"`
}

// Summarize counts tags and severities over a final delta list
func Summarize(items []DeltaItem) Summary {
	s := Summary{
		Total:      len(items),
		ByTag:      make(map[string]int),
		BySeverity: make(map[string]int),
	}
	for _, item := range items {
		s.ByTag[string(item.Tag)]++
		s.BySeverity[item.Severity.String()]++
	}
	return s
}
