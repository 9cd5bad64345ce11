// internal/game/engine.go
//
// Guess engine for a single game.
// Responsibilities:
//   - Own the GuessStore, the target word and the run state.
//   - Apply decoded actions one at a time (append, delete, submit).
//   - Score submitted guesses with Evaluate and drive playing → won/lost.
//   - Reset to a fresh board for a new target.
//
// Notes:
//   - Every Apply is atomic: a rejected action leaves nothing changed.
//   - The engine is not safe for concurrent use; callers serialise actions.

package game

import (
	"fmt"
	"strings"
)

const (
	DefaultRows = 6
	DefaultCols = 5
)

// Engine applies input actions to one game.
type Engine struct {
	rows   int
	cols   int
	target string
	store  *GuessStore
	run    run
}

// Option configures an Engine.
type Option func(*Engine)

// WithBoard sets the board dimensions: cols is the word length, rows the
// number of attempts. Non-positive values keep the defaults.
func WithBoard(cols, rows int) Option {
	return func(e *Engine) {
		if cols > 0 {
			e.cols = cols
		}
		if rows > 0 {
			e.rows = rows
		}
	}
}

// New constructs an engine for target. The target must have exactly as many
// letters as the board has columns.
func New(target string, opts ...Option) (*Engine, error) {
	e := &Engine{rows: DefaultRows, cols: DefaultCols}
	for _, opt := range opts {
		opt(e)
	}
	if err := e.Reset(target); err != nil {
		return nil, err
	}
	return e, nil
}

// Reset starts a new game for target: one empty guess at row 0, no feedback,
// state Playing. The engine is unchanged if target is invalid.
func (e *Engine) Reset(target string) error {
	t, err := NormalizeWord(target, e.cols)
	if err != nil {
		return fmt.Errorf("target: %w", err)
	}
	e.target = t
	e.store = NewGuessStore(e.rows, e.cols)
	e.run = newRun()
	return nil
}

// Apply processes one action and reports what happened.
func (e *Engine) Apply(a Action) Result {
	row := e.store.Current()
	if !e.run.playing() {
		return e.reject(ErrNotPlaying, "")
	}

	switch a.Kind {
	case ActionAppend:
		if !isLetter(a.Letter) {
			return e.reject(ErrInvalidLetter, "")
		}
		if !e.store.push(a.Letter) {
			return e.reject(ErrGuessFull, "")
		}
		return e.applied(row, nil)

	case ActionDelete:
		if !e.store.pop() {
			return e.reject(ErrGuessEmpty, "")
		}
		return e.applied(row, nil)

	case ActionSubmit:
		guess := e.store.Active()
		if len(guess) != e.cols {
			return e.reject(ErrGuessLength, fmt.Sprintf("%d characters required to submit guess", e.cols))
		}
		marks := Evaluate(guess, e.target)
		e.store.score(marks)
		if e.run.conclude(marks, row+1 < e.rows) {
			return Result{Outcome: OutcomeGameEnded, Row: row, Marks: marks, State: e.run.state}
		}
		e.store.advance()
		return e.applied(row, marks)
	}
	return e.reject(fmt.Errorf("unknown action %d", a.Kind), "")
}

func (e *Engine) applied(row int, marks []Mark) Result {
	return Result{Outcome: OutcomeApplied, Row: row, Marks: marks, State: e.run.state}
}

func (e *Engine) reject(err error, msg string) Result {
	return Result{Outcome: OutcomeRejected, Err: err, Message: msg, Row: e.store.Current(), State: e.run.state}
}

// State reports the current run state.
func (e *Engine) State() RunState { return e.run.state }

// Target returns the target word (lowercase).
func (e *Engine) Target() string { return e.target }

// Rows and Cols report the board dimensions.
func (e *Engine) Rows() int { return e.rows }
func (e *Engine) Cols() int { return e.cols }

// Store exposes the guess store for read-only use (projection, rendering).
func (e *Engine) Store() *GuessStore { return e.store }

// Project returns the full board projection of the current state.
func (e *Engine) Project() []CellUpdate { return Project(e.store) }

// NormalizeWord lowercases w and checks it is exactly n letters a–z.
func NormalizeWord(w string, n int) (string, error) {
	w = strings.ToLower(strings.TrimSpace(w))
	if len(w) != n {
		return "", fmt.Errorf("%q: want %d letters, got %d", w, n, len(w))
	}
	for i := 0; i < len(w); i++ {
		if !isLetter(w[i]) {
			return "", fmt.Errorf("%q: %w", w, ErrInvalidLetter)
		}
	}
	return w, nil
}
