package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/muesli/termenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/robalobadob/wordle/apps/go-engine/internal/daily"
	"github.com/robalobadob/wordle/apps/go-engine/internal/game"
	"github.com/robalobadob/wordle/apps/go-engine/internal/metrics"
	"github.com/robalobadob/wordle/apps/go-engine/internal/tui"
	"github.com/robalobadob/wordle/apps/go-engine/internal/words"
)

// Play modes, matching the labels the server uses.
const (
	modeRandom = "random"
	modeDaily  = "daily"
	modeFixed  = "fixed"
)

// nextTarget returns the target supplier for games after the first. Daily
// play keeps today's word (re-read each time so a session crossing midnight
// moves on); a fixed answer is only used for the first game.
func nextTarget(list *words.List, mode, salt string, now func() time.Time) (string, func() string) {
	if mode == modeDaily {
		return modeDaily, func() string {
			return list.At(daily.WordIndex(now(), salt, list.Len()))
		}
	}
	return modeRandom, list.Random
}

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play in the terminal",
	Long: `Starts an interactive game. Type letters, Backspace to delete, Enter to submit, Esc or Ctrl-C to quit.
After a game ends, Enter starts the next one: today's word again with --daily, otherwise a random word.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		// Logs go to stderr in human form so they do not tear the board.
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})

		if err := words.Init(cfg.WordsFile, cfg.Board.Cols); err != nil {
			return err
		}
		list := words.Default()

		mode := modeRandom
		if isDaily, _ := cmd.Flags().GetBool("daily"); isDaily {
			mode = modeDaily
		}
		nextMode, next := nextTarget(list, mode, cfg.DailySalt, time.Now)

		target, _ := cmd.Flags().GetString("answer")
		if target != "" {
			mode = modeFixed
			if !words.IsAnswer(target) {
				log.Warn().Str("answer", target).Msg("answer is not in the word list")
			}
		} else {
			target = next()
		}
		e, err := game.New(target, game.WithBoard(cfg.Board.Cols, cfg.Board.Rows))
		if err != nil {
			return err
		}

		reg := prometheus.NewRegistry()
		m := metrics.New(reg)
		m.Started(mode)

		out := termenv.NewOutput(os.Stdout)
		palette := tui.NewPalette(out.Profile, cfg.Theme)
		r := tui.NewRenderer(out, palette, cfg.Board.Cols, cfg.Board.Rows)
		s := tui.NewSession(e, nextMode, next, r, m)

		if err := runRaw(out, s); err != nil {
			return err
		}

		finished, err := metrics.Totals(reg, "wordle_games_finished_total", "state")
		if err != nil {
			return err
		}
		log.Info().
			Float64("won", finished[string(game.StateWon)]).
			Float64("lost", finished[string(game.StateLost)]).
			Msg("session over")
		return nil
	},
}

// runRaw runs s with the terminal in raw mode, restoring it before returning.
func runRaw(out *termenv.Output, s *tui.Session) error {
	fd := int(os.Stdin.Fd())
	if term.IsTerminal(fd) {
		old, err := term.MakeRaw(fd)
		if err != nil {
			return fmt.Errorf("raw mode: %w", err)
		}
		defer func() { _ = term.Restore(fd, old) }()
		out.HideCursor()
		defer out.ShowCursor()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return s.Run(ctx, os.Stdin)
}

func init() {
	rootCmd.AddCommand(playCmd)
	playCmd.Flags().Bool("daily", false, "Play today's word")
	playCmd.Flags().String("answer", "", "Play a fixed answer for the first game")
}
