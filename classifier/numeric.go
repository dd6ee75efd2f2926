package classifier

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

var (
	percentRe = regexp.MustCompile(`\d{1,3}\s*%`)
	// currency tokens: thousand-grouped or plain numbers followed by a
	// currency symbol/word or a "k" suffix
	currencyRe = regexp.MustCompile(`(?i)(?:\d{1,3}(?:\.\d{3})+(?:,\d+)?|\d+(?:,\d+)?)\s*(?:€|eur(?:os)?\b|k\b)`)

	emptySetMark = "—"
)

// numericMessages compares the percentage and currency figures of the two
// bodies and returns one directional message per dimension that changed.
// Identical extracted sets produce no message.
func numericMessages(prevBody, curBody string) []string {
	var msgs []string
	if msg, changed := dimensionMessage("porcentajes", extractPercents(prevBody), extractPercents(curBody)); changed {
		msgs = append(msgs, msg)
	}
	if msg, changed := dimensionMessage("importes", extractCurrency(prevBody), extractCurrency(curBody)); changed {
		msgs = append(msgs, msg)
	}
	return msgs
}

func dimensionMessage(label string, prev, cur []string) (string, bool) {
	if equalLists(prev, cur) {
		return "", false
	}
	return fmt.Sprintf("%s: %s → %s", label, joinOrMark(prev), joinOrMark(cur)), true
}

func joinOrMark(vals []string) string {
	if len(vals) == 0 {
		return emptySetMark
	}
	return strings.Join(vals, ", ")
}

func equalLists(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func extractPercents(body string) []string {
	return canonicalize(percentRe.FindAllString(body, -1))
}

func extractCurrency(body string) []string {
	return canonicalize(currencyRe.FindAllString(body, -1))
}

// canonicalize strips internal spacing, deduplicates and sorts ascending by
// numeric value (lexicographic as a stable fallback)
func canonicalize(tokens []string) []string {
	seen := make(map[string]bool, len(tokens))
	var out []string
	for _, tok := range tokens {
		c := strings.ToLower(strings.Join(strings.Fields(tok), ""))
		if !seen[c] {
			seen[c] = true
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		vi, vj := numericValue(out[i]), numericValue(out[j])
		if vi != vj {
			return vi < vj
		}
		return out[i] < out[j]
	})
	return out
}

// numericValue parses the leading figure of a canonical token. Spanish
// grouping: '.' groups thousands, ',' marks decimals.
func numericValue(tok string) float64 {
	digits := strings.TrimRightFunc(tok, func(r rune) bool {
		return !('0' <= r && r <= '9')
	})
	digits = strings.ReplaceAll(digits, ".", "")
	digits = strings.ReplaceAll(digits, ",", ".")
	v, err := strconv.ParseFloat(digits, 64)
	if err != nil {
		return 0
	}
	return v
}
