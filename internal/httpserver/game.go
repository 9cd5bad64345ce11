// internal/httpserver/game.go
//
// Game handlers. Every request restores the engine from the store, applies
// at most one action and writes the snapshot back.

package httpserver

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordle/apps/go-engine/internal/daily"
	"github.com/robalobadob/wordle/apps/go-engine/internal/game"
	"github.com/robalobadob/wordle/apps/go-engine/internal/store"
	"github.com/robalobadob/wordle/apps/go-engine/internal/words"
)

// Game modes accepted by /game/new and /game/reset.
const (
	ModeRandom = "random"
	ModeDaily  = "daily"
	ModeFixed  = "fixed" // explicit answer, for testing
)

var errNoWords = errors.New("no answer list loaded")

// boardView is the read-only projection sent to clients.
type boardView struct {
	State    game.RunState        `json:"state"`
	Rows     int                  `json:"rows"`
	Cols     int                  `json:"cols"`
	Board    []game.CellUpdate    `json:"board"`
	Keyboard map[string]game.Mark `json:"keyboard"`
	Answer   string               `json:"answer,omitempty"` // only once the game has ended
}

func viewOf(e *game.Engine) boardView {
	kb := make(map[string]game.Mark)
	for letter, m := range game.Keyboard(e.Store()) {
		kb[strings.ToUpper(string(letter))] = m
	}
	v := boardView{
		State:    e.State(),
		Rows:     e.Rows(),
		Cols:     e.Cols(),
		Board:    e.Project(),
		Keyboard: kb,
	}
	if e.State().Finished() {
		v.Answer = e.Target()
	}
	return v
}

// pickTarget chooses the answer for a new game in mode.
func (s *Server) pickTarget(mode string) (string, error) {
	l := s.opts.Words
	if l == nil {
		l = words.Default()
	}
	if l == nil {
		return "", errNoWords
	}
	switch mode {
	case ModeDaily:
		return l.At(daily.WordIndex(s.opts.Now(), s.opts.DailySalt, l.Len())), nil
	case ModeRandom:
		return l.Random(), nil
	}
	return "", fmt.Errorf("unknown mode %q", mode)
}

func (s *Server) newEngine(target string) (*game.Engine, error) {
	return game.New(target, game.WithBoard(s.opts.Cols, s.opts.Rows))
}

// ------------------------------ /game/new ----------------------------------

// newGameReq/Res payloads for POST /game/new.
type newGameReq struct {
	Mode   string `json:"mode"`   // "random" (default) | "daily"
	Answer string `json:"answer"` // optional fixed answer (testing)
}
type newGameRes struct {
	GameID string `json:"gameId"`
	Token  string `json:"token"`
	Mode   string `json:"mode"`
	Date   string `json:"date,omitempty"`
	boardView
}

// handleNewGame creates a game, saves it and returns a session token for it.
func (s *Server) handleNewGame(w http.ResponseWriter, r *http.Request) {
	var req newGameReq
	if r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "bad_json")
			return
		}
	}

	mode := req.Mode
	var target string
	var err error
	switch {
	case req.Answer != "":
		mode, target = ModeFixed, req.Answer
	case mode == "":
		mode = ModeRandom
		fallthrough
	default:
		target, err = s.pickTarget(mode)
	}
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_mode")
		return
	}

	e, err := s.newEngine(target)
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_answer")
		return
	}

	snap := e.Snapshot()
	snap.ID = genID()
	snap.Mode = mode
	if err := s.store.Save(r.Context(), snap); err != nil {
		log.Error().Err(err).Msg("save game")
		writeError(w, http.StatusInternalServerError, "save_failed")
		return
	}
	tok, err := s.signToken(snap.ID)
	if err != nil {
		log.Error().Err(err).Msg("sign token")
		writeError(w, http.StatusInternalServerError, "sign_failed")
		return
	}
	s.opts.Metrics.Started(mode)
	log.Info().Str("gameId", snap.ID).Str("mode", mode).Msg("game started")

	res := newGameRes{GameID: snap.ID, Token: tok, Mode: mode, boardView: viewOf(e)}
	if mode == ModeDaily {
		res.Date = daily.DateKey(s.opts.Now())
	}
	writeJSON(w, http.StatusOK, res)
}

// ------------------------------ /game/key ----------------------------------

type keyReq struct {
	Key string `json:"key"`
}
type keyRes struct {
	Outcome game.Outcome `json:"outcome"`
	Reason  string       `json:"reason,omitempty"`
	Message string       `json:"message,omitempty"`
	Row     int          `json:"row"`
	Marks   []game.Mark  `json:"marks,omitempty"`
	boardView
}

// load restores the engine of the game in the request context. It writes
// the error response itself and returns ok=false on failure.
func (s *Server) load(w http.ResponseWriter, r *http.Request) (game.Snapshot, *game.Engine, bool) {
	id := gameID(r)
	snap, err := s.store.Get(r.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, "not_found")
		return snap, nil, false
	}
	if err != nil {
		log.Error().Err(err).Str("gameId", id).Msg("load game")
		writeError(w, http.StatusInternalServerError, "load_failed")
		return snap, nil, false
	}
	e, err := game.Restore(snap)
	if err != nil {
		log.Error().Err(err).Str("gameId", id).Msg("restore game")
		writeError(w, http.StatusInternalServerError, "corrupt_game")
		return snap, nil, false
	}
	return snap, e, true
}

func (s *Server) save(w http.ResponseWriter, r *http.Request, prev game.Snapshot, e *game.Engine) bool {
	snap := e.Snapshot()
	snap.ID, snap.Mode = prev.ID, prev.Mode
	if err := s.store.Save(r.Context(), snap); err != nil {
		log.Error().Err(err).Str("gameId", snap.ID).Msg("save game")
		writeError(w, http.StatusInternalServerError, "save_failed")
		return false
	}
	return true
}

// handleKey decodes one key and applies it to the caller's game.
func (s *Server) handleKey(w http.ResponseWriter, r *http.Request) {
	var req keyReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}
	action, err := game.ParseKey(req.Key)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_key")
		return
	}

	mu := s.lock(gameID(r))
	mu.Lock()
	defer mu.Unlock()

	prev, e, ok := s.load(w, r)
	if !ok {
		return
	}
	res := e.Apply(action)
	s.opts.Metrics.Observe(action, res)

	if !res.Rejected() {
		if !s.save(w, r, prev, e) {
			return
		}
	}
	if res.Outcome == game.OutcomeGameEnded {
		log.Info().Str("gameId", prev.ID).Str("state", string(res.State)).Int("rows", res.Row+1).Msg("game ended")
	}

	out := keyRes{
		Outcome:   res.Outcome,
		Message:   res.Message,
		Row:       res.Row,
		Marks:     res.Marks,
		boardView: viewOf(e),
	}
	if res.Err != nil {
		out.Reason = res.Err.Error()
	}
	writeJSON(w, http.StatusOK, out)
}

// ------------------------------ /game/board --------------------------------

func (s *Server) handleBoard(w http.ResponseWriter, r *http.Request) {
	_, e, ok := s.load(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, viewOf(e))
}

// ------------------------------ /game/reset --------------------------------

type resetReq struct {
	Mode string `json:"mode"`
}

// handleReset starts a new word on the same game ID and token.
func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	var req resetReq
	if r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "bad_json")
			return
		}
	}

	mu := s.lock(gameID(r))
	mu.Lock()
	defer mu.Unlock()

	prev, e, ok := s.load(w, r)
	if !ok {
		return
	}
	mode := req.Mode
	if mode == "" {
		mode = prev.Mode
	}
	if mode == ModeFixed {
		mode = ModeRandom
	}
	target, err := s.pickTarget(mode)
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_mode")
		return
	}
	if err := e.Reset(target); err != nil {
		log.Error().Err(err).Str("gameId", prev.ID).Msg("reset game")
		writeError(w, http.StatusInternalServerError, "reset_failed")
		return
	}
	prev.Mode = mode
	if !s.save(w, r, prev, e) {
		return
	}
	s.opts.Metrics.Started(mode)
	writeJSON(w, http.StatusOK, viewOf(e))
}
