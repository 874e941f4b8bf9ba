// Package token holds the value model shared by the hashing, match and
// normalize packages: tokens, their per-line semantics, and the variable
// identity used to build data-flow edges between lines.
package token

// Type identifies the lexical/syntactic category a Token was produced for by
// a frontend (e.g. "ASSIGN", "IF_BEGIN", "METHOD_CALL"). Two tokens match the
// Matcher's type-equality test when they carry the same Type.
type Type string

// Well-known sentinel types: every TokenList ends in one FileEnd, and files
// concatenated into one TokenList are joined by a Separator.
const (
	// FileEnd marks the end of a token stream. A TokenList is malformed if
	// it does not end in FileEnd.
	FileEnd Type = "FILE_END"
	// Separator marks the boundary between two files concatenated into one
	// submission; it must never be absorbed into a match.
	Separator Type = "SEPARATOR_TOKEN"
)

// Variable is an opaque identity for a variable, field, or other storage
// location referenced by a token's Semantics. Identity is reference equality:
// two Variables are "the same" variable iff they are the same pointer. Two
// distinct *Variable values with identical Name represent different storage
// locations (e.g. same-named locals in different scopes).
type Variable struct {
	Name string
}

// Semantics carries the normalization-relevant facts about the source line a
// token belongs to. A Token that does not participate in normalization
// (because its frontend does not track data flow) simply carries a nil
// Semantics.
type Semantics struct {
	// Reads lists variables read on this token's line.
	Reads []*Variable
	// Writes lists variables written on this token's line.
	Writes []*Variable
	// BidirectionalBlockDepthChange is +1 entering a loop header, -1 leaving
	// one, 0 otherwise. "Bidirectional" because control can re-enter a loop
	// body from its own end, making reverse data flow (a later line feeding
	// an earlier one on the next iteration) legitimate inside it.
	BidirectionalBlockDepthChange int
	// HasFullPositionSignificance marks a line whose position relative to
	// every other full-significance line must be preserved exactly (e.g. a
	// case label, a return statement).
	HasFullPositionSignificance bool
	// HasPartialPositionSignificance marks a line whose position relative to
	// the nearest preceding partial-significance line must be preserved
	// (e.g. consecutive statements within one block where only relative
	// local order, not the absolute position, matters).
	HasPartialPositionSignificance bool
}

// Token is one element of a TokenList: a lexical unit plus the information
// the Matcher and Normalizer need to operate on it.
type Token struct {
	Type Type
	// Line is the 1-based source line the token was produced from.
	Line int
	// Semantics is non-nil only for tokens a normalizing frontend annotated.
	Semantics *Semantics

	// hash is the rolling hash of the window starting at this token, or
	// NoHash if that window crosses a marked token. Populated by
	// hashing.Hasher, which leaves tokens too close to the end of the list
	// to start a full window unchanged.
	hash int64
	// marked is true once this token has been consumed by a committed
	// match, or was pre-marked as a sentinel/base-code token.
	marked bool
	// basecode is true once this token has been attributed to base code.
	basecode bool
}

// NoHash is the sentinel hash value for a token whose rolling-hash window
// could not be fully computed.
const NoHash int64 = -1

// Hash returns the token's rolling hash as last set by SetHash; a token that
// was never hashed returns 0.
func (t *Token) Hash() int64 { return t.hash }

// SetHash sets the token's rolling hash.
func (t *Token) SetHash(h int64) { t.hash = h }

// Marked reports whether the token has been consumed by a match or
// pre-marked as unmatchable.
func (t *Token) Marked() bool { return t.marked }

// SetMarked marks or unmarks the token.
func (t *Token) SetMarked(m bool) { t.marked = m }

// BaseCode reports whether the token has been attributed to base code.
func (t *Token) BaseCode() bool { return t.basecode }

// SetBaseCode marks the token as base code.
func (t *Token) SetBaseCode(b bool) { t.basecode = b }
