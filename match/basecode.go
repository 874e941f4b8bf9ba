package match

import (
	"github.com/codetile/simtok/config"
	"github.com/codetile/simtok/hashing"
	"github.com/codetile/simtok/token"
)

// BaseCode bundles a pre-hashed base submission so MarkBaseCodeOn can reuse
// its hash index across every submission it is checked against, instead of
// rebuilding it per call.
type BaseCode struct {
	list   *token.List
	hasher *hashing.Hasher
	index  *hashing.Index
}

// PreprocessBaseCode flags every token of base as base code (trivially true
// by definition: everything in the base submission is base code) and
// pre-hashes it at the configured window so later base-code comparisons
// skip rehashing it.
func PreprocessBaseCode(base *token.List, cfg config.Options) *BaseCode {
	cfg, _ = cfg.Normalize()
	for _, t := range base.Tokens() {
		t.SetBaseCode(true)
	}
	hasher := hashing.New(cfg.MinimumTokenMatch)
	// Sentinels must be marked before hashing so windows crossing them are
	// correctly excluded from the index, matching the marking the matcher
	// itself performs at the start of every comparison.
	for _, t := range base.Tokens() {
		if t.Type == token.FileEnd || t.Type == token.Separator {
			t.SetMarked(true)
		}
	}
	index := hashing.Build(hasher, base.Tokens())
	return &BaseCode{list: base, hasher: hasher, index: index}
}

// MarkBaseCodeOn compares submission against the preprocessed base code and
// sets BaseCode on every token of submission that falls inside a matched
// tile. It reports no matches; the flags are the only observable effect.
func MarkBaseCodeOn(submission *token.List, base *BaseCode, cfg config.Options) {
	m := New(cfg)
	if m.hasher.Window() == base.hasher.Window() {
		m.run(submission, base.list, true, base.list, base.index)
		return
	}
	m.run(submission, base.list, true, base.list, nil)
}
