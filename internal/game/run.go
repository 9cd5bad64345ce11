package game

// run tracks the game phase. The only ways out of Playing are win and lose;
// the only way back is reset.
type run struct {
	state RunState
}

func newRun() run { return run{state: StatePlaying} }

func (r *run) playing() bool { return r.state == StatePlaying }

// conclude moves Playing to Won or Lost after a submission. It reports whether
// the game ended.
func (r *run) conclude(marks []Mark, rowsLeft bool) bool {
	if !r.playing() {
		return false
	}
	switch {
	case allCorrect(marks):
		r.state = StateWon
	case !rowsLeft:
		r.state = StateLost
	default:
		return false
	}
	return true
}

func (r *run) reset() { r.state = StatePlaying }
