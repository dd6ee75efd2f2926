package classifier

import (
	"fmt"
	"sort"
	"strings"

	"reportdiff-backend/textutil"
)

// tokenDelta captures the symmetric difference between two token sets
type tokenDelta struct {
	added   []string
	removed []string
	// ratio is (|added|+|removed|) / |union|
	ratio float64
}

// diffTokens computes the symmetric-difference ratio of the two bodies'
// token sets. Token order in the reported lists is sorted for stable output.
func diffTokens(prevBody, curBody string) tokenDelta {
	prev := textutil.Tokenize(prevBody)
	cur := textutil.Tokenize(curBody)

	var d tokenDelta
	union := make(map[string]struct{}, len(prev)+len(cur))
	for tok := range prev {
		union[tok] = struct{}{}
		if !cur.Contains(tok) {
			d.removed = append(d.removed, tok)
		}
	}
	for tok := range cur {
		union[tok] = struct{}{}
		if !prev.Contains(tok) {
			d.added = append(d.added, tok)
		}
	}
	sort.Strings(d.added)
	sort.Strings(d.removed)
	if len(union) > 0 {
		d.ratio = float64(len(d.added)+len(d.removed)) / float64(len(union))
	}
	return d
}

// note renders the delta with at most maxTokens tokens per side
func (d tokenDelta) note(maxTokens int) string {
	var parts []string
	if len(d.added) > 0 {
		parts = append(parts, fmt.Sprintf("añadido: %s", strings.Join(capTokens(d.added, maxTokens), ", ")))
	}
	if len(d.removed) > 0 {
		parts = append(parts, fmt.Sprintf("eliminado: %s", strings.Join(capTokens(d.removed, maxTokens), ", ")))
	}
	if len(parts) == 0 {
		return "contenido modificado"
	}
	return strings.Join(parts, "; ")
}

func capTokens(tokens []string, max int) []string {
	if max > 0 && len(tokens) > max {
		return tokens[:max]
	}
	return tokens
}
