package submission

import (
	"context"
	"testing"

	"github.com/codetile/simtok/config"
	"github.com/codetile/simtok/token"
	"github.com/stretchr/testify/assert"
)

func sub(id string, types ...token.Type) *Submission {
	return &Submission{ID: id, Root: id, List: list(types...)}
}

func TestCompareAll_PairsEveryDistinctCombination(t *testing.T) {
	subs := []*Submission{
		sub("a", "IF_BEGIN", "ASSIGN", "RETURN", token.FileEnd),
		sub("b", "IF_BEGIN", "ASSIGN", "RETURN", token.FileEnd),
		sub("c", "FOR_BEGIN", "RETURN", token.FileEnd),
	}

	results, err := CompareAll(context.Background(), subs, config.Options{MinimumTokenMatch: 1}, 2)
	assert.NoError(t, err)
	assert.Len(t, results, 3)

	pairs := map[string]bool{}
	for _, r := range results {
		pairs[r.First+"/"+r.Second] = true
	}
	assert.True(t, pairs["a/b"])
	assert.True(t, pairs["a/c"])
	assert.True(t, pairs["b/c"])
}

func TestCompareAll_IdenticalFingerprintShortCircuitsToFullMatch(t *testing.T) {
	subs := []*Submission{
		sub("a", "IF_BEGIN", "ASSIGN", "RETURN", token.FileEnd),
		sub("b", "IF_BEGIN", "ASSIGN", "RETURN", token.FileEnd),
	}

	results, err := CompareAll(context.Background(), subs, config.Options{MinimumTokenMatch: 1}, 1)
	assert.NoError(t, err)
	assert.Len(t, results, 1)
	assert.Equal(t, 3, results[0].Comparison.MatchedTokenCount())
}

func TestCompareAll_DefaultsWorkersToOne(t *testing.T) {
	subs := []*Submission{
		sub("a", "IF_BEGIN", token.FileEnd),
		sub("b", "RETURN", token.FileEnd),
	}

	results, err := CompareAll(context.Background(), subs, config.Options{MinimumTokenMatch: 1}, 0)
	assert.NoError(t, err)
	assert.Len(t, results, 1)
}

// TestCompareAll_LeavesSharedSubmissionTokensUntouched pins the fix for the
// data race a concurrent CompareAll used to have: subs[0] is compared
// against two others in the same run, so if a worker ever mutated the
// shared List's tokens in place instead of a private clone, the second job
// to touch subs[0] would see leftover Marked/BaseCode state from the first.
func TestCompareAll_LeavesSharedSubmissionTokensUntouched(t *testing.T) {
	subs := []*Submission{
		sub("a", "IF_BEGIN", "ASSIGN", "RETURN", token.FileEnd),
		sub("b", "IF_BEGIN", "ASSIGN", token.FileEnd),
		sub("c", "ASSIGN", "RETURN", token.FileEnd),
	}

	_, err := CompareAll(context.Background(), subs, config.Options{MinimumTokenMatch: 1}, 4)
	assert.NoError(t, err)

	for i := 0; i < subs[0].List.Len(); i++ {
		tok := subs[0].List.At(i)
		assert.False(t, tok.Marked(), "token %d of shared submission was mutated", i)
		assert.False(t, tok.BaseCode())
	}
}

func TestFullMatch_SplitsOnSeparatorAndFileEnd(t *testing.T) {
	a := list("A", "B", token.Separator, "C", "D", token.FileEnd)
	b := list("A", "B", token.Separator, "C", "D", token.FileEnd)

	cmp := fullMatch(a, b)

	assert.Equal(t, 4, cmp.MatchedTokenCount())
	for _, m := range cmp.Matches {
		for i := m.StartInFirst; i < m.EndInFirst(); i++ {
			ty := a.At(i).Type
			assert.NotEqual(t, token.Separator, ty)
			assert.NotEqual(t, token.FileEnd, ty)
		}
	}
}

func TestFullMatch_SingleRunHasNoSeparators(t *testing.T) {
	a := list("A", "B", "C", token.FileEnd)
	b := list("A", "B", "C", token.FileEnd)

	cmp := fullMatch(a, b)

	assert.Equal(t, 3, cmp.MatchedTokenCount())
	assert.Len(t, cmp.Matches, 1)
}
