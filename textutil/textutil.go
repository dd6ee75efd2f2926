// Package textutil canonicalizes free report text into comparable token sets.
package textutil

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// minTokenLen drops short function words before stopword filtering
const minTokenLen = 4

// stopwords holds Spanish function words plus domain-generic report nouns
// that carry no comparison signal
var stopwords = map[string]bool{
	"para": true, "como": true, "pero": true, "donde": true, "cuando": true,
	"entre": true, "desde": true, "hasta": true, "sobre": true, "porque": true,
	"aunque": true, "tambien": true, "segun": true, "durante": true,
	"contra": true, "hacia": true, "mientras": true, "esta": true,
	"este": true, "estos": true, "estas": true, "esos": true, "esas": true,
	"todos": true, "todas": true, "cada": true, "unos": true, "unas": true,
	"otro": true, "otra": true, "otros": true, "otras": true, "tiene": true,
	"tienen": true, "sido": true, "siendo": true, "sera": true, "seran": true,
	// domain-generic nouns
	"proyecto": true, "proyectos": true, "estado": true, "cliente": true,
	"informe": true, "seguimiento": true, "semana": true, "actual": true,
}

// StripDiacritics removes combining marks so "renovación" and "renovacion"
// normalize identically
func StripDiacritics(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}

// Normalize lower-cases, strips diacritics, replaces every non
// letter/digit/whitespace rune with a space and collapses whitespace runs.
func Normalize(text string) string {
	lowered := strings.ToLower(StripDiacritics(text))
	var b strings.Builder
	b.Grow(len(lowered))
	for _, r := range lowered {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsSpace(r) {
			b.WriteRune(r)
		} else {
			b.WriteRune(' ')
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

// TokenSet is a set of normalized comparison tokens
type TokenSet map[string]struct{}

// Contains reports set membership
func (s TokenSet) Contains(tok string) bool {
	_, ok := s[tok]
	return ok
}

// Tokenize normalizes text, splits on whitespace and drops short tokens and
// Spanish stopwords. Duplicates collapse; order is irrelevant.
func Tokenize(text string) TokenSet {
	set := make(TokenSet)
	for _, tok := range strings.Fields(Normalize(text)) {
		if len([]rune(tok)) < minTokenLen {
			continue
		}
		if stopwords[tok] {
			continue
		}
		set[tok] = struct{}{}
	}
	return set
}

// Jaccard computes intersection-over-union similarity of the two texts'
// token sets. Two empty sets compare as 1.0 (identical, no signal); exactly
// one empty set compares as 0.0.
func Jaccard(a, b string) float64 {
	return JaccardSets(Tokenize(a), Tokenize(b))
}

// JaccardSets computes intersection-over-union over prebuilt token sets
func JaccardSets(a, b TokenSet) float64 {
	if len(a) == 0 && len(b) == 0 {
		return 1.0
	}
	if len(a) == 0 || len(b) == 0 {
		return 0.0
	}
	inter := 0
	for tok := range a {
		if _, ok := b[tok]; ok {
			inter++
		}
	}
	union := len(a) + len(b) - inter
	return float64(inter) / float64(union)
}
