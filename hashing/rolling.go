// Package hashing implements the fixed-window Karp-Rabin rolling hash the
// Matcher uses to find candidate tile starts in O(1) amortized per position,
// and the bucket index built on top of it.
package hashing

import (
	"hash/fnv"

	"github.com/codetile/simtok/token"
)

const (
	// MinWindow and MaxWindow bound the token window a Hasher can be
	// configured with; configuration outside this range is clamped, never
	// rejected.
	MinWindow = 1
	MaxWindow = 25

	mod = 63
)

// Hasher computes the rolling hash of every fixed-size window of a token
// list, skipping (and marking NoHash) any window that contains a marked
// token less than Window positions back.
type Hasher struct {
	window int
	factor int64
}

// New returns a Hasher for the given window size, clamped to
// [MinWindow, MaxWindow].
func New(window int) *Hasher {
	if window < MinWindow {
		window = MinWindow
	}
	if window > MaxWindow {
		window = MaxWindow
	}
	factor := int64(1)
	if window != 1 {
		factor = int64(1) << uint(window-1)
	}
	return &Hasher{window: window, factor: factor}
}

// Window returns the hasher's (already clamped) window size.
func (h *Hasher) Window() int { return h.window }

// typeCode maps a token.Type to a deterministic integer (its 32-bit FNV-1a
// hash); equal types always produce equal codes. Hash keeps only the low six
// bits, so distinct types can share a code.
func typeCode(t token.Type) int64 {
	sum := fnv.New32a()
	_, _ = sum.Write([]byte(t))
	return int64(sum.Sum32())
}

// Hash computes the rolling hash over every window of h.Window() tokens in
// tokens, storing each result (or token.NoHash) via Token.SetHash on the
// window's first token. The last h.Window()-1 tokens start no full window
// and are left unchanged. A window's hash is
// valid only if none of its tokens are marked; marking state is read from
// each token's current Marked() flag, so callers must mark sentinel/base
// tokens before calling Hash.
func (h *Hasher) Hash(tokens []*token.Token) {
	w := h.window
	n := len(tokens)
	var hash int64
	unmarkedRun := 0
	for i := 0; i < n; i++ {
		t := tokens[i]
		if t.Marked() {
			unmarkedRun = 0
		} else {
			unmarkedRun++
		}
		code := typeCode(t.Type) & mod
		if i < w {
			hash = hash*2 + code
		} else {
			outCode := typeCode(tokens[i-w].Type) & mod
			hash = 2*(hash-h.factor*outCode) + code
		}
		if i >= w-1 {
			pos := i - w + 1
			if unmarkedRun >= w {
				tokens[pos].SetHash(hash)
			} else {
				tokens[pos].SetHash(token.NoHash)
			}
		}
	}
}
