package tui

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordle/apps/go-engine/internal/game"
	"github.com/robalobadob/wordle/apps/go-engine/internal/metrics"
)

// Session is one interactive player at a terminal: keys in, frames out.
type Session struct {
	engine  *game.Engine
	mode    string
	next    func() string
	render  *Renderer
	metrics *metrics.Metrics
	message string
}

// NewSession wires an engine to a renderer. next supplies the target for
// each new game after the first; mode labels those games in metrics.
func NewSession(e *game.Engine, mode string, next func() string, r *Renderer, m *metrics.Metrics) *Session {
	return &Session{engine: e, mode: mode, next: next, render: r, metrics: m}
}

// Frame builds the current frame from the engine projection.
func (s *Session) Frame() Frame {
	f := Frame{
		Cells:    s.engine.Project(),
		Keyboard: game.Keyboard(s.engine.Store()),
		State:    s.engine.State(),
		Message:  s.message,
	}
	if f.State.Finished() {
		f.Answer = s.engine.Target()
	}
	return f
}

// Press handles one key and redraws. It reports quit when the player asked
// to leave.
func (s *Session) Press(key string) (quit bool, err error) {
	if key == KeyQuit {
		return true, nil
	}

	if s.engine.State().Finished() && key == game.KeyEnter {
		if err := s.engine.Reset(s.next()); err != nil {
			return false, fmt.Errorf("new game: %w", err)
		}
		s.message = ""
		s.metrics.Started(s.mode)
		log.Debug().Msg("new game")
		return false, s.render.Draw(s.Frame())
	}

	a := game.Decode(key)
	res := s.engine.Apply(a)
	s.metrics.Observe(a, res)
	s.message = res.Message
	if res.Outcome == game.OutcomeGameEnded {
		log.Debug().Str("state", string(res.State)).Int("row", res.Row).Msg("game ended")
	}
	return false, s.render.Draw(s.Frame())
}

// Run draws the first frame, then reads key presses from in until quit,
// EOF or ctx is done. Reads happen on their own goroutine so cancelling ctx
// returns at once even while in is blocked; that goroutine exits after its
// next read completes.
func (s *Session) Run(ctx context.Context, in io.Reader) error {
	if err := s.render.Draw(s.Frame()); err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	type chunk struct {
		keys []string
		err  error
	}
	reads := make(chan chunk)
	go func() {
		buf := make([]byte, 16)
		for {
			n, err := in.Read(buf)
			select {
			case reads <- chunk{keys: MapBytes(buf[:n]), err: err}:
			case <-ctx.Done():
				return
			}
			if err != nil {
				return
			}
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case c := <-reads:
			for _, k := range c.keys {
				quit, err := s.Press(k)
				if err != nil {
					return err
				}
				if quit {
					return nil
				}
			}
			if errors.Is(c.err, io.EOF) {
				return nil
			}
			if c.err != nil {
				return c.err
			}
		}
	}
}
