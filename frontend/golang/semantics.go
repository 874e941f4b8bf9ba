package golang

import (
	sitter "github.com/smacker/go-tree-sitter"

	"github.com/codetile/simtok/token"
)

// scope resolves identifiers to a stable *token.Variable, so two references
// to the same name within the same function share identity
// (token.Variable's reference-equality contract). A name declared with ":="
// belongs to its function's scope, so the same such name in a different
// function is a different Variable; any other name (parameters included)
// resolves to one Variable in the root scope, shared by every function.
type scope struct {
	vars   map[string]*token.Variable
	parent *scope
}

func newScope(parent *scope) *scope {
	return &scope{vars: map[string]*token.Variable{}, parent: parent}
}

// resolve walks outward from s and returns an existing Variable for name, or
// nil if none has been declared yet in any enclosing scope.
func (s *scope) resolve(name string) *token.Variable {
	for cur := s; cur != nil; cur = cur.parent {
		if v, ok := cur.vars[name]; ok {
			return v
		}
	}
	return nil
}

// declare creates a fresh Variable for name in s, shadowing any outer
// variable of the same name.
func (s *scope) declare(name string) *token.Variable {
	v := &token.Variable{Name: name}
	s.vars[name] = v
	return v
}

// writeTarget returns the Variable a plain (non-":=") write to name refers
// to: the nearest enclosing declaration if one exists, otherwise a new
// package-level variable declared in the root scope.
func (s *scope) writeTarget(name string) *token.Variable {
	if v := s.resolve(name); v != nil {
		return v
	}
	root := s
	for root.parent != nil {
		root = root.parent
	}
	return root.declare(name)
}

// lineAccum carries the accumulated Semantics of every source line while
// walking, keyed by line number; applyLineSemantics attaches each to the
// first token on its line.
type lineAccum struct {
	byLine map[int]*token.Semantics
}

func (a *lineAccum) of(line int) *token.Semantics {
	s, ok := a.byLine[line]
	if !ok {
		s = &token.Semantics{}
		a.byLine[line] = s
	}
	return s
}

// annotate walks root and populates Semantics on exactly one token per
// affected source line (groupLines merges every token with non-nil
// Semantics on a line, so attaching once per line is sufficient and avoids
// double-counting reads/writes).
func annotate(root *sitter.Node, src []byte, tokens []*token.Token) {
	acc := &lineAccum{byLine: map[int]*token.Semantics{}}
	walkSemantics(root, src, newScope(nil), acc)
	applyLineSemantics(tokens, acc)
}

func applyLineSemantics(tokens []*token.Token, acc *lineAccum) {
	seen := map[int]bool{}
	for _, t := range tokens {
		if seen[t.Line] {
			continue
		}
		if sem, ok := acc.byLine[t.Line]; ok {
			t.Semantics = sem
			seen[t.Line] = true
		}
	}
}

func walkSemantics(n *sitter.Node, src []byte, sc *scope, acc *lineAccum) {
	switch n.Type() {
	case "function_declaration", "method_declaration", "func_literal":
		sc = newScope(sc)
	case "short_var_declaration":
		annotateAssignment(n, src, sc, acc, true)
	case "assignment_statement":
		annotateAssignment(n, src, sc, acc, false)
	case "for_statement":
		annotateFor(n, acc)
	case "return_statement":
		line := int(n.StartPoint().Row) + 1
		acc.of(line).HasFullPositionSignificance = true
	case "expression_case", "default_case", "communication_case":
		line := int(n.StartPoint().Row) + 1
		acc.of(line).HasFullPositionSignificance = true
	case "break_statement", "continue_statement", "goto_statement":
		line := int(n.StartPoint().Row) + 1
		acc.of(line).HasPartialPositionSignificance = true
	}

	for i := 0; i < int(n.ChildCount()); i++ {
		walkSemantics(n.Child(i), src, sc, acc)
	}
}

// annotateAssignment records writes for every identifier on the left side
// and reads for every identifier on the right, on the statement's own line.
// declareNew is true for ":=", where left-side identifiers are fresh
// declarations rather than references to an outer variable.
func annotateAssignment(n *sitter.Node, src []byte, sc *scope, acc *lineAccum, declareNew bool) {
	left := n.ChildByFieldName("left")
	right := n.ChildByFieldName("right")
	line := int(n.StartPoint().Row) + 1
	sem := acc.of(line)

	if left != nil {
		for _, name := range identifierNames(left, src) {
			var v *token.Variable
			if declareNew {
				v = sc.declare(name)
			} else {
				v = sc.writeTarget(name)
			}
			sem.Writes = append(sem.Writes, v)
		}
	}
	if right != nil {
		for _, name := range identifierNames(right, src) {
			v := sc.resolve(name)
			if v == nil {
				v = sc.writeTarget(name)
			}
			sem.Reads = append(sem.Reads, v)
		}
	}
}

// annotateFor marks the for keyword's line as entering a bidirectional
// block and its body's closing line as leaving one.
func annotateFor(n *sitter.Node, acc *lineAccum) {
	startLine := int(n.StartPoint().Row) + 1
	acc.of(startLine).BidirectionalBlockDepthChange++

	body := n.ChildByFieldName("body")
	if body == nil {
		return
	}
	endLine := int(body.EndPoint().Row) + 1
	if endLine == startLine {
		// Single-line for loop body: net effect on this line is zero, so
		// don't record a spurious +1/-1 pair that would never close.
		acc.of(startLine).BidirectionalBlockDepthChange--
		return
	}
	acc.of(endLine).BidirectionalBlockDepthChange--
}

// identifierNames collects every plain "identifier" leaf under n, in source
// order. Field/type/package identifiers are excluded: they name struct
// members, types, and imported packages, none of which are Variables.
func identifierNames(n *sitter.Node, src []byte) []string {
	var names []string
	var walk func(n *sitter.Node)
	walk = func(n *sitter.Node) {
		if n.Type() == "identifier" {
			names = append(names, n.Content(src))
			return
		}
		for i := 0; i < int(n.ChildCount()); i++ {
			walk(n.Child(i))
		}
	}
	walk(n)
	return names
}
