package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/robalobadob/wordle/apps/go-engine/internal/game"
)

var tiles = map[game.Mark]string{
	game.MarkCorrect: "🟩",
	game.MarkPresent: "🟨",
	game.MarkAbsent:  "⬛",
}

var scoreCmd = &cobra.Command{
	Use:   "score GUESS ANSWER",
	Short: "Print the marks for a guess against an answer",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		n := len(strings.TrimSpace(args[1]))
		if n == 0 {
			return fmt.Errorf("answer is empty")
		}
		answer, err := game.NormalizeWord(args[1], n)
		if err != nil {
			return fmt.Errorf("answer: %w", err)
		}
		guess, err := game.NormalizeWord(args[0], len(answer))
		if err != nil {
			return fmt.Errorf("guess: %w", err)
		}

		marks := game.Evaluate(guess, answer)
		names := make([]string, len(marks))
		var row strings.Builder
		for i, m := range marks {
			names[i] = string(m)
			row.WriteString(tiles[m])
		}

		w := cmd.OutOrStdout()
		if asWords, _ := cmd.Flags().GetBool("words"); asWords {
			fmt.Fprintln(w, strings.Join(names, " "))
			return nil
		}
		fmt.Fprintf(w, "%s\n%s\n", strings.ToUpper(guess), row.String())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(scoreCmd)
	scoreCmd.Flags().Bool("words", false, "Print mark names instead of tiles")
}
