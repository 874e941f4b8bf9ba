package token

// Match is a single tile: Length consecutive tokens starting at
// StartInFirst in the first list equal, type-for-type, Length consecutive
// tokens starting at StartInSecond in the second list.
type Match struct {
	StartInFirst  int
	StartInSecond int
	Length        int
}

// EndInFirst returns the index one past the last token of the match in the
// first list.
func (m Match) EndInFirst() int { return m.StartInFirst + m.Length }

// EndInSecond returns the index one past the last token of the match in the
// second list.
func (m Match) EndInSecond() int { return m.StartInSecond + m.Length }

// Overlaps reports whether m and other share any token position in either
// list.
func (m Match) Overlaps(other Match) bool {
	firstOverlap := m.StartInFirst < other.EndInFirst() && other.StartInFirst < m.EndInFirst()
	secondOverlap := m.StartInSecond < other.EndInSecond() && other.StartInSecond < m.EndInSecond()
	return firstOverlap || secondOverlap
}
