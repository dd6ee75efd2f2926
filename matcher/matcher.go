// Package matcher pairs current-version units with baseline units by
// content similarity.
package matcher

import (
	"reportdiff-backend/models"
	"reportdiff-backend/textutil"
)

const (
	titleWeight     = 0.75
	signatureWeight = 0.25
	// clientBonus rewards an exact normalized client-label match
	clientBonus = 0.08
)

// Result is an injective partial mapping from current unit indexes to
// baseline unit indexes. Each baseline unit is used at most once.
type Result struct {
	// Pairs maps current index -> baseline index
	Pairs map[int]int
	// Scores maps current index -> committed composite score
	Scores map[int]float64
}

// Matched reports the baseline index paired with the current index, if any
func (r Result) Matched(currentIdx int) (int, bool) {
	baseIdx, ok := r.Pairs[currentIdx]
	return baseIdx, ok
}

// UnmatchedBaseline returns the baseline indexes no current unit claimed,
// in baseline order
func (r Result) UnmatchedBaseline(baselineLen int) []int {
	used := make(map[int]bool, len(r.Pairs))
	for _, baseIdx := range r.Pairs {
		used[baseIdx] = true
	}
	var out []int
	for i := 0; i < baselineLen; i++ {
		if !used[i] {
			out = append(out, i)
		}
	}
	return out
}

// unitProfile caches the token sets a unit is scored on
type unitProfile struct {
	title     textutil.TokenSet
	signature textutil.TokenSet
	client    string
}

func profile(u models.Unit) unitProfile {
	return unitProfile{
		title: textutil.Tokenize(u.Title),
		// the signature widens identity with the client label so near-equal
		// titles for different clients score apart
		signature: textutil.Tokenize(u.Client + " " + u.Title),
		client:    textutil.Normalize(u.Client),
	}
}

func score(cur, base unitProfile) float64 {
	s := titleWeight*textutil.JaccardSets(cur.title, base.title) +
		signatureWeight*textutil.JaccardSets(cur.signature, base.signature)
	if cur.client != "" && cur.client == base.client {
		s += clientBonus
	}
	return s
}

// Greedy assigns each current unit, in input order, to the not-yet-used
// baseline unit with the strictly highest composite score, committing the
// pair when the score reaches the threshold. First current wins; ties break
// toward the first-encountered baseline unit; there is no backtracking.
func Greedy(current, baseline []models.Unit, threshold float64) Result {
	res := Result{
		Pairs:  make(map[int]int),
		Scores: make(map[int]float64),
	}

	baseProfiles := make([]unitProfile, len(baseline))
	for i, u := range baseline {
		baseProfiles[i] = profile(u)
	}

	used := make(map[int]bool, len(baseline))
	for ci, cu := range current {
		cp := profile(cu)
		bestIdx := -1
		bestScore := 0.0
		for bi := range baseline {
			if used[bi] {
				continue
			}
			if s := score(cp, baseProfiles[bi]); s > bestScore {
				bestScore = s
				bestIdx = bi
			}
		}
		if bestIdx >= 0 && bestScore >= threshold {
			used[bestIdx] = true
			res.Pairs[ci] = bestIdx
			res.Scores[ci] = bestScore
		}
	}
	return res
}
