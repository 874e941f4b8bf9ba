package normalize

import "github.com/codetile/simtok/token"

// Line is a TokenLine: every token from one source line, with a semantics
// annotation merged across them (union of reads/writes, sum of depth
// changes, disjunction of significance flags).
type Line struct {
	// LineNumber is the original source line these tokens came from, used
	// as the normalizer's tie-breaker.
	LineNumber int
	Tokens     []*token.Token

	Reads                          []*token.Variable
	Writes                         []*token.Variable
	BidirectionalBlockDepthChange  int
	HasFullPositionSignificance    bool
	HasPartialPositionSignificance bool
}

// groupLines partitions tokens into Lines by contiguous run of Line, in
// source order, merging each token's semantics into the line's.
func groupLines(tokens []*token.Token) []*Line {
	var lines []*Line
	var current *Line
	for _, t := range tokens {
		if current == nil || current.LineNumber != t.Line {
			current = &Line{LineNumber: t.Line}
			lines = append(lines, current)
		}
		current.Tokens = append(current.Tokens, t)
		if t.Semantics == nil {
			continue
		}
		current.Reads = append(current.Reads, t.Semantics.Reads...)
		current.Writes = append(current.Writes, t.Semantics.Writes...)
		current.BidirectionalBlockDepthChange += t.Semantics.BidirectionalBlockDepthChange
		current.HasFullPositionSignificance = current.HasFullPositionSignificance || t.Semantics.HasFullPositionSignificance
		current.HasPartialPositionSignificance = current.HasPartialPositionSignificance || t.Semantics.HasPartialPositionSignificance
	}
	return lines
}
