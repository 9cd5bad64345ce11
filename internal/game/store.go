package game

// GuessRow pairs a guess with its row index. Marks is nil until the row is submitted.
type GuessRow struct {
	Index   int    `json:"index"`
	Letters string `json:"letters"`
	Marks   []Mark `json:"marks,omitempty"`
}

// GuessStore holds the guesses made so far and the row under edit.
//
// Invariants:
//   - len(guesses) == current+1
//   - current < rows
//   - len(guesses[current]) <= cols
//   - len(marks) is the number of submitted rows; it is current, or current+1
//     once the game has ended on the current row.
type GuessStore struct {
	rows    int
	cols    int
	guesses [][]byte
	marks   [][]Mark
	current int
}

// NewGuessStore returns a store with one empty guess at row 0.
func NewGuessStore(rows, cols int) *GuessStore {
	return &GuessStore{
		rows:    rows,
		cols:    cols,
		guesses: [][]byte{make([]byte, 0, cols)},
	}
}

func (s *GuessStore) Rows() int    { return s.rows }
func (s *GuessStore) Cols() int    { return s.cols }
func (s *GuessStore) Current() int { return s.current }
func (s *GuessStore) Len() int     { return len(s.guesses) }

// Active returns the guess at the current row.
func (s *GuessStore) Active() string { return string(s.guesses[s.current]) }

// Submitted reports whether row i has been scored.
func (s *GuessStore) Submitted(i int) bool { return i >= 0 && i < len(s.marks) }

// Row returns a copy of row i. ok is false for rows that do not exist yet.
func (s *GuessStore) Row(i int) (row GuessRow, ok bool) {
	if i < 0 || i >= len(s.guesses) {
		return GuessRow{}, false
	}
	row = GuessRow{Index: i, Letters: string(s.guesses[i])}
	if s.Submitted(i) {
		row.Marks = append([]Mark(nil), s.marks[i]...)
	}
	return row, true
}

// GuessRows returns copies of every row in order.
func (s *GuessStore) GuessRows() []GuessRow {
	out := make([]GuessRow, 0, len(s.guesses))
	for i := range s.guesses {
		r, _ := s.Row(i)
		out = append(out, r)
	}
	return out
}

func (s *GuessStore) push(letter byte) bool {
	g := s.guesses[s.current]
	if len(g) >= s.cols {
		return false
	}
	s.guesses[s.current] = append(g, letter)
	return true
}

func (s *GuessStore) pop() bool {
	g := s.guesses[s.current]
	if len(g) == 0 {
		return false
	}
	s.guesses[s.current] = g[:len(g)-1]
	return true
}

// score records marks for the current row.
func (s *GuessStore) score(m []Mark) {
	s.marks = append(s.marks, m)
}

// advance opens a new empty guess on the next row. It refuses to go past the
// last row.
func (s *GuessStore) advance() bool {
	if s.current+1 >= s.rows {
		return false
	}
	s.guesses = append(s.guesses, make([]byte, 0, s.cols))
	s.current++
	return true
}
