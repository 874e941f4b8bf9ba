package hashing

import "github.com/codetile/simtok/token"

// Index is a multimap from rolling hash value to every token position in one
// list whose window starts there and was fully computed (the window fits in
// the list and contains no marked token). The Matcher uses it to find, for a given
// position in the first list, every candidate position in the second list
// whose window might tile against it.
type Index struct {
	buckets map[int64][]int
}

// Build computes tokens' rolling hashes with hasher and indexes every
// position whose window fits in tokens and has a non-sentinel hash.
func Build(hasher *Hasher, tokens []*token.Token) *Index {
	hasher.Hash(tokens)
	buckets := make(map[int64][]int)
	for i := 0; i+hasher.Window() <= len(tokens); i++ {
		if h := tokens[i].Hash(); h != token.NoHash {
			buckets[h] = append(buckets[h], i)
		}
	}
	return &Index{buckets: buckets}
}

// Positions returns every indexed position whose window hash equals h.
func (idx *Index) Positions(h int64) []int {
	if idx == nil {
		return nil
	}
	return idx.buckets[h]
}
