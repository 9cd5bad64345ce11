package game

// Project derives the full re-render payload from s: every cell of every row up
// to the current one, in row-major order. It does no diffing.
func Project(s *GuessStore) []CellUpdate {
	out := make([]CellUpdate, 0, s.Len()*s.Cols())
	for r := 0; r < s.Len(); r++ {
		g := s.guesses[r]
		var marks []Mark
		if s.Submitted(r) {
			marks = s.marks[r]
		}
		for c := 0; c < s.Cols(); c++ {
			cell := CellUpdate{Row: r, Col: c}
			if c < len(g) {
				cell.Letter = string(g[c])
			}
			if c < len(marks) {
				cell.Mark = marks[c]
			}
			out = append(out, cell)
		}
	}
	return out
}

// Keyboard returns the strongest mark seen for each letter across submitted
// rows (correct > present > absent). Letters never submitted are absent from
// the map.
func Keyboard(s *GuessStore) map[byte]Mark {
	out := make(map[byte]Mark)
	for r := 0; r < len(s.marks); r++ {
		g := s.guesses[r]
		for c, m := range s.marks[r] {
			if c >= len(g) {
				break
			}
			if m.rank() > out[g[c]].rank() {
				out[g[c]] = m
			}
		}
	}
	return out
}
