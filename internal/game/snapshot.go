package game

import (
	"errors"
	"fmt"
	"strings"
)

// Snapshot is the serialisable form of an engine, used by session stores.
type Snapshot struct {
	ID      string   `json:"id"`
	Mode    string   `json:"mode,omitempty"`
	Target  string   `json:"target"`
	Rows    int      `json:"rows"`
	Cols    int      `json:"cols"`
	Guesses []string `json:"guesses"`
	Marks   [][]Mark `json:"marks"`
	State   RunState `json:"state"`
}

var ErrBadSnapshot = errors.New("bad snapshot")

// Snapshot captures the engine state. ID and Mode are left for the caller.
func (e *Engine) Snapshot() Snapshot {
	s := Snapshot{
		Target:  e.target,
		Rows:    e.rows,
		Cols:    e.cols,
		Guesses: make([]string, 0, e.store.Len()),
		Marks:   make([][]Mark, 0, len(e.store.marks)),
		State:   e.run.state,
	}
	for _, r := range e.store.GuessRows() {
		s.Guesses = append(s.Guesses, r.Letters)
		if r.Marks != nil {
			s.Marks = append(s.Marks, r.Marks)
		}
	}
	return s
}

// Restore rebuilds an engine from a snapshot. Marks are recomputed from the
// target and compared, so a tampered or stale snapshot is refused rather than
// producing an inconsistent store.
func Restore(s Snapshot) (*Engine, error) {
	e, err := New(s.Target, WithBoard(s.Cols, s.Rows))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadSnapshot, err)
	}
	if s.Rows != e.rows || s.Cols != e.cols {
		return nil, fmt.Errorf("%w: board %dx%d", ErrBadSnapshot, s.Cols, s.Rows)
	}
	n := len(s.Guesses)
	if n == 0 || n > e.rows {
		return nil, fmt.Errorf("%w: %d rows", ErrBadSnapshot, n)
	}

	st := &GuessStore{rows: e.rows, cols: e.cols, current: n - 1}
	guesses := make([]string, 0, n)
	for i, g := range s.Guesses {
		if i < n-1 || s.State.Finished() {
			w, err := NormalizeWord(g, e.cols)
			if err != nil {
				return nil, fmt.Errorf("%w: row %d: %v", ErrBadSnapshot, i, err)
			}
			g = w
		} else {
			g = strings.ToLower(g)
			if len(g) > e.cols {
				return nil, fmt.Errorf("%w: row %d too long", ErrBadSnapshot, i)
			}
			for j := 0; j < len(g); j++ {
				if !isLetter(g[j]) {
					return nil, fmt.Errorf("%w: row %d: %v", ErrBadSnapshot, i, ErrInvalidLetter)
				}
			}
		}
		guesses = append(guesses, g)
		st.guesses = append(st.guesses, []byte(g))
	}

	submitted := n - 1
	if s.State.Finished() {
		submitted = n
	}
	if len(s.Marks) != submitted {
		return nil, fmt.Errorf("%w: %d scored rows for %d guesses", ErrBadSnapshot, len(s.Marks), n)
	}
	for i := 0; i < submitted; i++ {
		want := Evaluate(guesses[i], e.target)
		if !equalMarks(want, s.Marks[i]) {
			return nil, fmt.Errorf("%w: row %d marks do not match target", ErrBadSnapshot, i)
		}
		if i < n-1 && allCorrect(want) {
			return nil, fmt.Errorf("%w: row %d solved but game continued", ErrBadSnapshot, i)
		}
		st.marks = append(st.marks, want)
	}

	r := newRun()
	switch s.State {
	case StatePlaying:
	case StateWon:
		if !allCorrect(st.marks[n-1]) {
			return nil, fmt.Errorf("%w: won without a correct row", ErrBadSnapshot)
		}
		r.state = StateWon
	case StateLost:
		if n != e.rows || allCorrect(st.marks[n-1]) {
			return nil, fmt.Errorf("%w: lost with rows left", ErrBadSnapshot)
		}
		r.state = StateLost
	default:
		return nil, fmt.Errorf("%w: state %q", ErrBadSnapshot, s.State)
	}

	e.store = st
	e.run = r
	return e, nil
}

func equalMarks(a, b []Mark) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
