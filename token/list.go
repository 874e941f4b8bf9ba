package token

import "errors"

// ErrMissingFileEnd is returned by NewList when the supplied tokens do not
// end in a FileEnd sentinel, violating the TokenList pivot contract that the
// Matcher's forward-extend loop relies on to never read past the end of a
// file's tokens.
var ErrMissingFileEnd = errors.New("token: list does not end with FILE_END")

// List is an ordered sequence of Tokens belonging to one submission. Its
// last token must be a FileEnd token, and files concatenated into one List
// are joined by Separator tokens; the Matcher treats both as implicit
// mismatch boundaries by pre-marking them.
type List struct {
	tokens []*Token
}

// NewList builds a List from a fully materialized token sequence. It returns
// ErrMissingFileEnd if tokens is empty or does not end with a FileEnd token.
func NewList(tokens []*Token) (*List, error) {
	if len(tokens) == 0 || tokens[len(tokens)-1].Type != FileEnd {
		return nil, ErrMissingFileEnd
	}
	return &List{tokens: tokens}, nil
}

// Len returns the number of tokens in the list.
func (l *List) Len() int { return len(l.tokens) }

// At returns the token at index i.
func (l *List) At(i int) *Token { return l.tokens[i] }

// Tokens returns the underlying token slice. Callers must not mutate its
// length; per-token mutable state (hash/marked/basecode) may be changed
// in place.
func (l *List) Tokens() []*Token { return l.tokens }

// ResetMarks clears Marked and BaseCode on every token, leaving hashes
// intact. Used between repeated comparisons against the same List.
func (l *List) ResetMarks() {
	for _, t := range l.tokens {
		t.SetMarked(false)
		t.SetBaseCode(false)
	}
}

// Clone returns a List over fresh Token values carrying the same
// Type/Line/Semantics as the receiver, but none of its mutable hash/marked/
// basecode state. The Matcher mutates that state in place, so two
// comparisons that might run concurrently against the same underlying
// submission must each run against their own clone rather than share l.
func (l *List) Clone() *List {
	tokens := make([]*Token, len(l.tokens))
	for i, t := range l.tokens {
		tokens[i] = &Token{Type: t.Type, Line: t.Line, Semantics: t.Semantics}
	}
	return &List{tokens: tokens}
}

