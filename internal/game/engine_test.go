package game

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newEngine(t *testing.T, target string) *Engine {
	t.Helper()
	e, err := New(target)
	require.NoError(t, err)
	return e
}

// typeWord feeds raw keys for each letter of w.
func typeWord(e *Engine, w string) {
	for i := 0; i < len(w); i++ {
		e.Apply(Decode(strings.ToUpper(w[i : i+1])))
	}
}

func submitWord(t *testing.T, e *Engine, w string) Result {
	t.Helper()
	typeWord(e, w)
	return e.Apply(Decode(KeyEnter))
}

func assertInvariants(t *testing.T, e *Engine) {
	t.Helper()
	s := e.Store()
	assert.Less(t, s.Current(), e.Rows())
	assert.Equal(t, s.Current()+1, s.Len())
	assert.LessOrEqual(t, len(s.Active()), e.Cols())
}

func TestNew_ValidatesTarget(t *testing.T) {
	_, err := New("cran")
	assert.Error(t, err)
	_, err = New("cr4ne")
	assert.ErrorIs(t, err, ErrInvalidLetter)

	e, err := New("CRANE")
	require.NoError(t, err)
	assert.Equal(t, "crane", e.Target())
	assert.Equal(t, StatePlaying, e.State())
	assert.Equal(t, 0, e.Store().Current())
	assert.Equal(t, "", e.Store().Active())
}

func TestApply_AppendAndDelete(t *testing.T) {
	e := newEngine(t, "crane")

	r := e.Apply(Append('c'))
	assert.Equal(t, OutcomeApplied, r.Outcome)
	typeWord(e, "rane")
	assert.Equal(t, "crane", e.Store().Active())

	r = e.Apply(Append('x'))
	assert.True(t, r.Rejected())
	assert.ErrorIs(t, r.Err, ErrGuessFull)
	assert.Empty(t, r.Message)
	assert.Equal(t, "crane", e.Store().Active())

	r = e.Apply(Decode(KeyBackspace))
	assert.Equal(t, OutcomeApplied, r.Outcome)
	assert.Equal(t, "cran", e.Store().Active())
	assertInvariants(t, e)
}

func TestApply_DeleteOnEmptyIsIdempotent(t *testing.T) {
	e := newEngine(t, "crane")
	before := e.Snapshot()
	for i := 0; i < 3; i++ {
		r := e.Apply(Delete())
		assert.ErrorIs(t, r.Err, ErrGuessEmpty)
	}
	assert.Equal(t, before, e.Snapshot())
}

func TestApply_NonLetterIgnored(t *testing.T) {
	e := newEngine(t, "crane")
	r := e.Apply(Decode("7"))
	assert.ErrorIs(t, r.Err, ErrInvalidLetter)
	assert.Equal(t, "", e.Store().Active())
}

func TestApply_SubmitWrongLength(t *testing.T) {
	e := newEngine(t, "crane")
	typeWord(e, "cran")

	r := e.Apply(Submit())
	assert.True(t, r.Rejected())
	assert.ErrorIs(t, r.Err, ErrGuessLength)
	assert.Equal(t, "5 characters required to submit guess", r.Message)
	assert.Equal(t, 0, e.Store().Current())
	assert.Equal(t, "cran", e.Store().Active())
	assert.False(t, e.Store().Submitted(0))

	// The rejection does not block further editing.
	r = e.Apply(Append('e'))
	assert.Equal(t, OutcomeApplied, r.Outcome)
	assert.Equal(t, "crane", e.Store().Active())
}

func TestApply_SubmitAdvances(t *testing.T) {
	e := newEngine(t, "crane")
	r := submitWord(t, e, "slate")
	assert.Equal(t, OutcomeApplied, r.Outcome)
	assert.Equal(t, 0, r.Row)
	assert.Equal(t, []Mark{A, A, C, A, C}, r.Marks)
	assert.Equal(t, 1, e.Store().Current())
	assert.Equal(t, "", e.Store().Active())
	assert.True(t, e.Store().Submitted(0))
	assert.False(t, e.Store().Submitted(1))
	assertInvariants(t, e)
}

func TestApply_WinOnLastRow(t *testing.T) {
	e := newEngine(t, "crane")
	for _, w := range []string{"slate", "ghost", "pious", "dumpy", "brick"} {
		r := submitWord(t, e, w)
		require.Equal(t, OutcomeApplied, r.Outcome)
		assertInvariants(t, e)
	}
	r := submitWord(t, e, "crane")
	assert.Equal(t, OutcomeGameEnded, r.Outcome)
	assert.Equal(t, StateWon, r.State)
	assert.Equal(t, 5, r.Row)
	assert.Equal(t, []Mark{C, C, C, C, C}, r.Marks)
	assert.Equal(t, StateWon, e.State())
	assert.Equal(t, 6, e.Store().Len())
	assertInvariants(t, e)
}

func TestApply_WinEarlyCreatesNoMoreRows(t *testing.T) {
	e := newEngine(t, "crane")
	submitWord(t, e, "slate")
	r := submitWord(t, e, "crane")
	assert.Equal(t, StateWon, r.State)
	assert.Equal(t, 2, e.Store().Len())
	assert.Equal(t, 1, e.Store().Current())
}

func TestApply_LossAfterSixMisses(t *testing.T) {
	e := newEngine(t, "crane")
	words := []string{"slate", "ghost", "pious", "dumpy", "brick", "fjord"}
	var r Result
	for _, w := range words {
		r = submitWord(t, e, w)
	}
	assert.Equal(t, OutcomeGameEnded, r.Outcome)
	assert.Equal(t, StateLost, r.State)
	assert.Equal(t, StateLost, e.State())
	assert.Equal(t, 6, e.Store().Len())

	before := e.Snapshot()
	r = e.Apply(Append('a'))
	assert.ErrorIs(t, r.Err, ErrNotPlaying)
	assert.Equal(t, before, e.Snapshot())
	assertInvariants(t, e)
}

func TestApply_IgnoredAfterWin(t *testing.T) {
	e := newEngine(t, "crane")
	submitWord(t, e, "crane")
	for _, a := range []Action{Append('a'), Delete(), Submit()} {
		r := e.Apply(a)
		assert.ErrorIs(t, r.Err, ErrNotPlaying)
		assert.Equal(t, StateWon, r.State)
	}
}

func TestReset(t *testing.T) {
	e := newEngine(t, "crane")
	submitWord(t, e, "crane")
	require.Equal(t, StateWon, e.State())

	require.Error(t, e.Reset("xx"))
	assert.Equal(t, StateWon, e.State())

	require.NoError(t, e.Reset("Ghost"))
	assert.Equal(t, StatePlaying, e.State())
	assert.Equal(t, "ghost", e.Target())
	assert.Equal(t, 1, e.Store().Len())
	assert.Equal(t, 0, e.Store().Current())
	assert.False(t, e.Store().Submitted(0))
}

func TestWithBoard(t *testing.T) {
	e, err := New("cat", WithBoard(3, 2))
	require.NoError(t, err)
	r := submitWord(t, e, "dog")
	assert.Equal(t, OutcomeApplied, r.Outcome)
	r = submitWord(t, e, "cut")
	assert.Equal(t, StateLost, r.State)

	e, err = New("cat", WithBoard(3, 2))
	require.NoError(t, err)
	typeWord(e, "ca")
	r = e.Apply(Submit())
	assert.Equal(t, "3 characters required to submit guess", r.Message)
}

func TestApply_InvariantsUnderRandomInput(t *testing.T) {
	e := newEngine(t, "allow")
	keys := []string{"L", "L", "A", "<-", "ENTER", "M", "A", "ENTER", "Q", "Q", "Q", "ENTER",
		"<-", "<-", "<-", "<-", "<-", "<-", "W", "O", "R", "L", "D", "X", "ENTER"}
	for i := 0; i < 4; i++ {
		for _, k := range keys {
			e.Apply(Decode(k))
			assertInvariants(t, e)
		}
	}
}
