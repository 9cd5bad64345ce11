package httpserver

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/wordle/apps/go-engine/internal/game"
	"github.com/robalobadob/wordle/apps/go-engine/internal/metrics"
	"github.com/robalobadob/wordle/apps/go-engine/internal/store"
	"github.com/robalobadob/wordle/apps/go-engine/internal/words"
)

var testNow = time.Date(2025, 3, 14, 12, 0, 0, 0, time.UTC)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	list, err := words.Load("", 5)
	require.NoError(t, err)
	reg := prometheus.NewRegistry()
	s := New(store.NewMemoryStore(time.Hour), Options{
		Cols:      5,
		Rows:      6,
		Secret:    []byte("test-secret"),
		TokenTTL:  time.Hour,
		DailySalt: "salt",
		Words:     list,
		Metrics:   metrics.New(reg),
		Gatherer:  reg,
		Now:       func() time.Time { return testNow },
	})
	return s
}

func do(t *testing.T, s *Server, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func startGame(t *testing.T, s *Server, answer string) newGameRes {
	t.Helper()
	rec := do(t, s, http.MethodPost, "/game/new", "", map[string]string{"answer": answer})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	return decode[newGameRes](t, rec)
}

func press(t *testing.T, s *Server, token, key string) keyRes {
	t.Helper()
	rec := do(t, s, http.MethodPost, "/game/key", token, map[string]string{"key": key})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	return decode[keyRes](t, rec)
}

func guess(t *testing.T, s *Server, token, word string) keyRes {
	t.Helper()
	for _, r := range word {
		press(t, s, token, string(r))
	}
	return press(t, s, token, game.KeyEnter)
}

func TestHealthAndNotFound(t *testing.T) {
	s := newTestServer(t)

	rec := do(t, s, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"ok":true}`, rec.Body.String())

	rec = do(t, s, http.MethodGet, "/nope", "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"error":"not_found"}`, rec.Body.String())
}

func TestNewGame(t *testing.T) {
	s := newTestServer(t)

	res := startGame(t, s, "crane")
	assert.NotEmpty(t, res.GameID)
	assert.NotEmpty(t, res.Token)
	assert.Equal(t, ModeFixed, res.Mode)
	assert.Equal(t, game.StatePlaying, res.State)
	assert.Equal(t, 6, res.Rows)
	assert.Equal(t, 5, res.Cols)
	assert.Empty(t, res.Answer)

	rec := do(t, s, http.MethodPost, "/game/new", "", map[string]string{"answer": "cr4ne"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, s, http.MethodPost, "/game/new", "", map[string]string{"mode": "weekly"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, s, http.MethodPost, "/game/new", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, ModeRandom, decode[newGameRes](t, rec).Mode)
}

func TestDailyIsDeterministic(t *testing.T) {
	s := newTestServer(t)
	var answers []string
	for i := 0; i < 2; i++ {
		rec := do(t, s, http.MethodPost, "/game/new", "", map[string]string{"mode": "daily"})
		require.Equal(t, http.StatusOK, rec.Code)
		res := decode[newGameRes](t, rec)
		assert.Equal(t, "2025-03-14", res.Date)

		// Lose the game to reveal the answer.
		var last keyRes
		for row := 0; row < 6; row++ {
			last = guess(t, s, res.Token, "zzzzz")
		}
		require.Equal(t, game.StateLost, last.State)
		answers = append(answers, last.Answer)
	}
	assert.Equal(t, answers[0], answers[1])
	assert.NotEmpty(t, answers[0])
}

func TestKeyFlowToWin(t *testing.T) {
	s := newTestServer(t)
	g := startGame(t, s, "crane")

	r := press(t, s, g.Token, "s")
	assert.Equal(t, game.OutcomeApplied, r.Outcome)
	assert.Equal(t, []game.CellUpdate{{Row: 0, Col: 0, Letter: "s"}}, r.Board[:1])

	press(t, s, g.Token, game.KeyBackspace)
	r = guess(t, s, g.Token, "slate")
	assert.Equal(t, game.OutcomeApplied, r.Outcome)
	assert.Equal(t, 0, r.Row)
	assert.Equal(t, []game.Mark{game.MarkAbsent, game.MarkAbsent, game.MarkCorrect, game.MarkAbsent, game.MarkCorrect}, r.Marks)
	assert.Equal(t, game.MarkAbsent, r.Keyboard["S"])
	assert.Equal(t, game.MarkCorrect, r.Keyboard["E"])

	r = guess(t, s, g.Token, "crane")
	assert.Equal(t, game.OutcomeGameEnded, r.Outcome)
	assert.Equal(t, game.StateWon, r.State)
	assert.Equal(t, 1, r.Row)
	assert.Equal(t, "crane", r.Answer)

	r = press(t, s, g.Token, "a")
	assert.Equal(t, game.OutcomeRejected, r.Outcome)
	assert.Equal(t, game.ErrNotPlaying.Error(), r.Reason)

	rec := do(t, s, http.MethodGet, "/metrics", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `wordle_games_finished_total{state="won"} 1`)
}

func TestKeyFlowToLoss(t *testing.T) {
	s := newTestServer(t)
	g := startGame(t, s, "crane")

	var r keyRes
	for i := 0; i < 6; i++ {
		r = guess(t, s, g.Token, "ghost")
	}
	assert.Equal(t, game.OutcomeGameEnded, r.Outcome)
	assert.Equal(t, game.StateLost, r.State)
	assert.Equal(t, "crane", r.Answer)
	assert.Len(t, r.Board, 30)
}

func TestRejectedSubmitKeepsGuess(t *testing.T) {
	s := newTestServer(t)
	g := startGame(t, s, "crane")

	press(t, s, g.Token, "c")
	r := press(t, s, g.Token, game.KeyEnter)
	assert.Equal(t, game.OutcomeRejected, r.Outcome)
	assert.Equal(t, "5 characters required to submit guess", r.Message)
	assert.Equal(t, game.ErrGuessLength.Error(), r.Reason)

	rec := do(t, s, http.MethodGet, "/game/board", g.Token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	b := decode[boardView](t, rec)
	require.Len(t, b.Board, 5)
	assert.Equal(t, "c", b.Board[0].Letter)
	assert.Equal(t, game.MarkNone, b.Board[0].Mark)
	assert.Equal(t, "", b.Board[1].Letter)
}

func TestKeyValidation(t *testing.T) {
	s := newTestServer(t)
	g := startGame(t, s, "crane")

	rec := do(t, s, http.MethodPost, "/game/key", g.Token, map[string]string{"key": "7"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"error":"invalid_key"}`, rec.Body.String())

	req := httptest.NewRequest(http.MethodPost, "/game/key", strings.NewReader("{"))
	req.Header.Set("Authorization", "Bearer "+g.Token)
	rr := httptest.NewRecorder()
	s.Handler().ServeHTTP(rr, req)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestSessionRequired(t *testing.T) {
	s := newTestServer(t)

	rec := do(t, s, http.MethodPost, "/game/key", "", map[string]string{"key": "a"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = do(t, s, http.MethodGet, "/game/board", "not-a-token", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.JSONEq(t, `{"error":"Invalid token"}`, rec.Body.String())

	other := newTestServer(t)
	other.opts.Secret = []byte("other-secret")
	tok, err := other.signToken("abc")
	require.NoError(t, err)
	rec = do(t, s, http.MethodGet, "/game/board", tok, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	// Valid signature but unknown game.
	tok, err = s.signToken("missing")
	require.NoError(t, err)
	rec = do(t, s, http.MethodGet, "/game/board", tok, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestExpiredToken(t *testing.T) {
	s := newTestServer(t)
	g := startGame(t, s, "crane")

	s.opts.Now = func() time.Time { return testNow.Add(2 * time.Hour) }
	rec := do(t, s, http.MethodGet, "/game/board", g.Token, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestReset(t *testing.T) {
	s := newTestServer(t)
	g := startGame(t, s, "crane")
	guess(t, s, g.Token, "crane")

	rec := do(t, s, http.MethodPost, "/game/reset", g.Token, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	b := decode[boardView](t, rec)
	assert.Equal(t, game.StatePlaying, b.State)
	assert.Len(t, b.Board, 5)
	assert.Empty(t, b.Keyboard)
	assert.Empty(t, b.Answer)

	r := press(t, s, g.Token, "a")
	assert.Equal(t, game.OutcomeApplied, r.Outcome)

	rec = do(t, s, http.MethodPost, "/game/reset", g.Token, map[string]string{"mode": "weekly"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, s, http.MethodPost, "/game/reset", g.Token, map[string]string{"mode": "daily"})
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestCORSPreflight(t *testing.T) {
	s := newTestServer(t)
	rec := do(t, s, http.MethodOptions, "/game/key", "", nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "http://localhost:5173", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestGameLocksStayBounded(t *testing.T) {
	s := newTestServer(t)

	seen := make(map[*sync.Mutex]struct{})
	for i := 0; i < 2*lockStripes; i++ {
		g := startGame(t, s, "crane")
		press(t, s, g.Token, "a")

		mu := s.lock(g.GameID)
		assert.Same(t, mu, s.lock(g.GameID), "same game, same lock")
		seen[mu] = struct{}{}
	}
	assert.LessOrEqual(t, len(seen), lockStripes)
}
