// Package match implements Greedy String Tiling: the core algorithm that
// finds every non-overlapping maximal common subsequence between two token
// lists, and the base-code pass that runs it against a shared starting-point
// submission.
package match

import (
	"github.com/codetile/simtok/config"
	"github.com/codetile/simtok/hashing"
	"github.com/codetile/simtok/token"
)

// Matcher runs Greedy String Tiling comparisons at a fixed minimum tile
// length.
type Matcher struct {
	minMatch int
	hasher   *hashing.Hasher
}

// New returns a Matcher configured from cfg, clamping MinimumTokenMatch as
// config.Options.Normalize does.
func New(cfg config.Options) *Matcher {
	cfg, _ = cfg.Normalize()
	return &Matcher{minMatch: cfg.MinimumTokenMatch, hasher: hashing.New(cfg.MinimumTokenMatch)}
}

// Compare runs a pairwise comparison between a and b. Matches are reported
// in terms of a as "first" and b as "second" regardless of which is
// internally shorter. Tokens previously flagged BaseCode are treated as
// already marked, so base code never appears inside a reported match.
func (m *Matcher) Compare(a, b *token.List) *token.Comparison {
	return m.run(a, b, false, nil, nil)
}

// run performs the tiling loop described in the component design: the
// shorter list (or, when base is non-nil, the list that is not base)
// becomes "first" internally for the pivot-safety and back-scan
// bookkeeping, but results are always reported in the caller's (a, b)
// order. base, when non-nil, identifies which of a or b is the base
// code (as opposed to the submission being marked), so commit knows which
// side's tokens gain the BaseCode flag. reuseIndex, when non-nil, is a
// pre-built HashIndex for base, avoiding re-hashing it on every call.
func (m *Matcher) run(a, b *token.List, isBaseCode bool, base *token.List, reuseIndex *hashing.Index) *token.Comparison {
	comparison := &token.Comparison{FirstSize: a.Len(), SecondSize: b.Len()}

	first, second, swapped := a, b, false
	switch {
	case base != nil:
		// The base side is always indexed (as "second"), regardless of
		// which of a/b is longer, so a prebuilt index is actually reusable
		// across every submission checked against the same base.
		if a == base {
			first, second, swapped = b, a, true
		}
	case first.Len() > second.Len():
		first, second = second, first
		swapped = true
	}
	if first.Len() <= m.minMatch || second.Len() <= m.minMatch {
		return comparison
	}

	markInitial(first.Tokens(), isBaseCode)
	markInitial(second.Tokens(), isBaseCode)

	m.hasher.Hash(first.Tokens())
	var index *hashing.Index
	if reuseIndex != nil && second == base {
		index = reuseIndex
	} else {
		index = hashing.Build(m.hasher, second.Tokens())
	}

	submissionIsFirst := base != nil && first != base
	firstTokens, secondTokens := first.Tokens(), second.Tokens()

	for {
		maxMatch := m.minMatch
		var tiles []token.Match

		for x := 0; x < first.Len()-maxMatch; x++ {
			fx := firstTokens[x]
			if fx.Marked() || fx.Hash() == token.NoHash {
				continue
			}
			for _, y := range index.Positions(fx.Hash()) {
				if secondTokens[y].Marked() || maxMatch >= second.Len()-y {
					continue
				}

				mismatch := false
				for j := maxMatch - 1; j >= 0; j-- {
					ft, st := firstTokens[x+j], secondTokens[y+j]
					if ft.Type != st.Type || ft.Marked() || st.Marked() {
						mismatch = true
						break
					}
				}
				if mismatch {
					continue
				}

				length := maxMatch
				for x+length < first.Len() && y+length < second.Len() {
					ft, st := firstTokens[x+length], secondTokens[y+length]
					if ft.Type != st.Type || ft.Marked() || st.Marked() {
						break
					}
					length++
				}

				if (!isBaseCode && length > maxMatch) || (isBaseCode && length != maxMatch) {
					tiles = nil
					maxMatch = length
				}
				tiles = addMatchIfNotOverlapping(tiles, x, y, length)
			}
		}

		for i := len(tiles) - 1; i >= 0; i-- {
			t := tiles[i]
			commit(firstTokens, secondTokens, t, isBaseCode, submissionIsFirst)
			comparison.AddMatch(reportOrder(t, swapped))
		}

		if maxMatch == m.minMatch {
			break
		}
	}

	return comparison
}

// reportOrder maps an internal (first, second) tile back to the caller's
// (a, b) order.
func reportOrder(t token.Match, swapped bool) token.Match {
	if !swapped {
		return t
	}
	return token.Match{StartInFirst: t.StartInSecond, StartInSecond: t.StartInFirst, Length: t.Length}
}

// commit marks every token of tile as consumed on both sides. When
// isBaseCode, only the submission's tokens (the side that isn't base code)
// additionally gain the BaseCode flag, per the base-code pass contract.
func commit(firstTokens, secondTokens []*token.Token, t token.Match, isBaseCode, submissionIsFirst bool) {
	for i := 0; i < t.Length; i++ {
		ft := firstTokens[t.StartInFirst+i]
		st := secondTokens[t.StartInSecond+i]
		ft.SetMarked(true)
		st.SetMarked(true)
		if isBaseCode {
			if submissionIsFirst {
				ft.SetBaseCode(true)
			} else {
				st.SetBaseCode(true)
			}
		}
	}
}

// addMatchIfNotOverlapping appends (x, y, length) to tiles unless it
// overlaps an already-recorded tile on either side.
func addMatchIfNotOverlapping(tiles []token.Match, x, y, length int) []token.Match {
	candidate := token.Match{StartInFirst: x, StartInSecond: y, Length: length}
	for _, existing := range tiles {
		if candidate.Overlaps(existing) {
			return tiles
		}
	}
	return append(tiles, candidate)
}

// markInitial resets every token's Marked flag: sentinels are always
// marked; base-code-flagged tokens are additionally marked unless this run
// is itself a base-code pass (isBaseCode), which must be free to match
// against base code tokens in order to find them.
func markInitial(tokens []*token.Token, isBaseCode bool) {
	for _, t := range tokens {
		switch {
		case t.Type == token.FileEnd || t.Type == token.Separator:
			t.SetMarked(true)
		case !isBaseCode && t.BaseCode():
			t.SetMarked(true)
		default:
			t.SetMarked(false)
		}
	}
}
