package token

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComparison_MatchedTokenCountAndSimilarity(t *testing.T) {
	c := &Comparison{FirstSize: 20, SecondSize: 10}
	c.AddMatch(Match{StartInFirst: 0, StartInSecond: 0, Length: 4})
	c.AddMatch(Match{StartInFirst: 5, StartInSecond: 5, Length: 3})

	assert.Equal(t, 7, c.MatchedTokenCount())
	assert.InDelta(t, 0.7, c.Similarity(), 1e-9)
}

func TestComparison_SimilarityOfEmptyComparison(t *testing.T) {
	c := &Comparison{}
	assert.Equal(t, float64(0), c.Similarity())
}
