// Package normalize builds a dependency graph over a token stream's source
// lines and emits an ordering of those lines that respects every hard edge,
// breaking ties by original line number. Every edge Build adds points
// forward in source order, so a stream whose line numbers increase keeps its
// original line order: independent lines that two streams place in
// different orders are not brought into a common order.
package normalize

import "github.com/codetile/simtok/token"

// EdgeType is a bitset: a single Edge may carry more than one type between
// the same pair of Lines.
type EdgeType uint8

const (
	PositionFull EdgeType = 1 << iota
	PositionPartial
	VarFlow
	VarReverseFlow
	VarOrder
)

// Edge is the (possibly merged) set of dependency types from one Line to
// another, plus the Variable that caused each variable-flow type, if any.
type Edge struct {
	From, To *Line
	Types    EdgeType
	Causes   map[EdgeType]*token.Variable
}

// HasType reports whether the edge carries et.
func (e *Edge) HasType(et EdgeType) bool { return e.Types&et != 0 }

// hard reports whether the edge has at least one type other than
// VarReverseFlow; reverse-flow-only edges represent dependences that a
// bidirectional block may legitimately reorder, so they never gate
// readiness during the topological walk.
func (e *Edge) hard() bool { return e.Types & ^VarReverseFlow != 0 }

// Graph is a directed multigraph over TokenLines.
type Graph struct {
	Lines []*Line
	out   map[*Line]map[*Line]*Edge
}

func (g *Graph) addEdge(from, to *Line, et EdgeType, v *token.Variable) {
	if from == to {
		return
	}
	m := g.out[from]
	if m == nil {
		m = map[*Line]*Edge{}
		g.out[from] = m
	}
	e := m[to]
	if e == nil {
		e = &Edge{From: from, To: to, Causes: map[EdgeType]*token.Variable{}}
		m[to] = e
	}
	e.Types |= et
	if v != nil {
		e.Causes[et] = v
	}
}

// Out returns every outgoing edge of l, in no particular order.
func (g *Graph) Out(l *Line) []*Edge {
	edges := make([]*Edge, 0, len(g.out[l]))
	for _, e := range g.out[l] {
		edges = append(edges, e)
	}
	return edges
}

// Build groups tokens into Lines in source order and wires the edges
// described by the component design: bidirectional-block tracking, then
// full and partial positional significance, then variable flow.
func Build(tokens []*token.Token) *Graph {
	lines := groupLines(tokens)
	g := &Graph{Lines: lines, out: map[*Line]map[*Line]*Edge{}}

	depth := 0
	inBlock := map[*Line]bool{}
	var pendingFull []*Line
	var lastFull *Line
	var lastPartial *Line
	reads := map[*token.Variable][]*Line{}
	writes := map[*token.Variable][]*Line{}

	for _, l := range lines {
		// Bidirectional block tracking.
		depth += l.BidirectionalBlockDepthChange
		if depth > 0 {
			inBlock[l] = true
		} else {
			inBlock = map[*Line]bool{}
		}

		// Full positional significance.
		if l.HasFullPositionSignificance {
			for _, n := range pendingFull {
				g.addEdge(n, l, PositionFull, nil)
			}
			pendingFull = nil
			lastFull = l
		} else if lastFull != nil {
			g.addEdge(lastFull, l, PositionFull, nil)
		}
		pendingFull = append(pendingFull, l)

		// Partial positional significance.
		if l.HasPartialPositionSignificance {
			if lastPartial != nil {
				g.addEdge(lastPartial, l, PositionPartial, nil)
			}
			lastPartial = l
		}

		// Variable flow: reads.
		for _, v := range l.Reads {
			for _, n := range writes[v] {
				g.addEdge(n, l, VarFlow, v)
			}
		}

		// Variable flow: writes.
		for _, v := range l.Writes {
			for _, n := range writes[v] {
				g.addEdge(n, l, VarOrder, v)
			}
			for _, n := range reads[v] {
				if inBlock[n] {
					g.addEdge(n, l, VarReverseFlow, v)
				} else {
					g.addEdge(n, l, VarOrder, v)
				}
			}
			writes[v] = append(writes[v], l)
		}

		for _, v := range l.Reads {
			reads[v] = append(reads[v], l)
		}
	}

	return g
}
