package normalize

import (
	"errors"
	"sort"

	"github.com/codetile/simtok/token"
)

// ErrCycle is returned when the hard-edge subgraph (every edge type except
// a reverse-flow-only edge) contains a cycle. This is always a contract
// violation of whatever produced the token semantics, never a condition the
// walk can recover from, so it is surfaced rather than silently deadlocked.
var ErrCycle = errors.New("normalize: cycle detected in normalization graph")

// Order returns a topological walk of g's Lines: at each step, among lines
// with no remaining hard predecessor, the one with the smallest original
// LineNumber is emitted next. Lines whose only incoming edges are
// VarReverseFlow are always ready regardless of whether their source has
// been emitted, since such dependences may be reordered within a
// bidirectional block.
func (g *Graph) Order() ([]*Line, error) {
	hardIn := make(map[*Line]int, len(g.Lines))
	for _, l := range g.Lines {
		hardIn[l] = 0
	}
	for _, outgoing := range g.out {
		for _, e := range outgoing {
			if e.hard() {
				hardIn[e.To]++
			}
		}
	}

	ready := make([]*Line, 0, len(g.Lines))
	for _, l := range g.Lines {
		if hardIn[l] == 0 {
			ready = insertByLine(ready, l)
		}
	}

	order := make([]*Line, 0, len(g.Lines))
	for len(ready) > 0 {
		next := ready[0]
		ready = ready[1:]
		order = append(order, next)

		for _, e := range g.Out(next) {
			if !e.hard() {
				continue
			}
			hardIn[e.To]--
			if hardIn[e.To] == 0 {
				ready = insertByLine(ready, e.To)
			}
		}
	}

	if len(order) != len(g.Lines) {
		return nil, ErrCycle
	}
	return order, nil
}

// insertByLine inserts l into lines, which is kept sorted by LineNumber, so
// the ready set always yields its smallest-line-number member first.
func insertByLine(lines []*Line, l *Line) []*Line {
	i := sort.Search(len(lines), func(i int) bool { return lines[i].LineNumber >= l.LineNumber })
	lines = append(lines, nil)
	copy(lines[i+1:], lines[i:])
	lines[i] = l
	return lines
}

// Normalize reorders tokens by the graph walk of Order: it groups them
// into Lines, builds the dependency graph, walks it deterministically, and
// flattens the result back to a token stream. Within a Line, tokens keep
// their original order. A token stream with no semantic annotations
// normalizes to itself, since the walk then has no edges to order by other
// than each line's own original position.
func Normalize(tokens []*token.Token) ([]*token.Token, error) {
	if len(tokens) == 0 {
		return tokens, nil
	}
	g := Build(tokens)
	order, err := g.Order()
	if err != nil {
		return nil, err
	}
	result := make([]*token.Token, 0, len(tokens))
	for _, l := range order {
		result = append(result, l.Tokens...)
	}
	return result, nil
}
