// internal/game/types.go
//
// Core type definitions for the guess engine.
// Defines:
//   - Mark: per-letter feedback for a submitted guess (correct/present/absent).
//   - RunState: overall phase of a game (playing/won/lost).
//   - Outcome/Result: what a single applied action produced.
//   - CellUpdate: one cell of the board projection handed to renderers.

package game

import "errors"

// Mark represents the evaluation result for a single letter in a guess.
// Possible values:
//   - "correct": letter is in the target at this position.
//   - "present": letter is in the target at another position (and not yet claimed).
//   - "absent":  letter is not in the remaining pool of target letters.
//
// The zero value (MarkNone) is used for cells of rows that are not submitted yet.
type Mark string

const (
	MarkNone    Mark = ""
	MarkCorrect Mark = "correct"
	MarkPresent Mark = "present"
	MarkAbsent  Mark = "absent"
)

// rank orders marks for keyboard hints: a stronger mark replaces a weaker one.
func (m Mark) rank() int {
	switch m {
	case MarkCorrect:
		return 3
	case MarkPresent:
		return 2
	case MarkAbsent:
		return 1
	}
	return 0
}

// RunState is the phase of a game. Won and Lost are terminal until Reset.
type RunState string

const (
	StatePlaying RunState = "playing"
	StateWon     RunState = "won"
	StateLost    RunState = "lost"
)

// Finished reports whether the state is terminal.
func (s RunState) Finished() bool { return s == StateWon || s == StateLost }

// Outcome classifies what Apply did with an action.
type Outcome string

const (
	OutcomeApplied   Outcome = "applied"
	OutcomeRejected  Outcome = "rejected"
	OutcomeGameEnded Outcome = "game_ended"
)

// Rejection reasons. All of them leave the engine state untouched.
var (
	ErrGuessFull     = errors.New("guess already full")
	ErrGuessEmpty    = errors.New("guess is empty")
	ErrGuessLength   = errors.New("guess has wrong length")
	ErrNotPlaying    = errors.New("game is not in progress")
	ErrInvalidLetter = errors.New("not a letter")
)

// Result is returned by every Engine.Apply call.
type Result struct {
	Outcome Outcome  `json:"outcome"`
	Err     error    `json:"-"`                 // set when Outcome == OutcomeRejected
	Message string   `json:"message,omitempty"` // user-visible text, only for submit rejections
	Row     int      `json:"row"`               // row the action touched
	Marks   []Mark   `json:"marks,omitempty"`   // feedback of a submitted row
	State   RunState `json:"state"`             // state after the action
}

// Rejected reports whether the action was refused.
func (r Result) Rejected() bool { return r.Outcome == OutcomeRejected }

// CellUpdate is one cell of the board as a renderer should draw it.
// Letter is empty for blank cells; Mark is empty for rows not yet submitted.
type CellUpdate struct {
	Row    int    `json:"row"`
	Col    int    `json:"col"`
	Letter string `json:"letter"`
	Mark   Mark   `json:"mark,omitempty"`
}
