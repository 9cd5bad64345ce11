package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/robalobadob/wordle/apps/go-engine/internal/config"
)

// cfg is filled in by the root command before any subcommand runs.
var cfg config.Config

var rootCmd = &cobra.Command{
	Use:           "wordle",
	Short:         "Wordle guess engine",
	Long:          `Plays Wordle-style games over HTTP or in the terminal and scores guesses.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// .env is optional; real environment variables win over it.
		_ = godotenv.Load()

		path, _ := cmd.Flags().GetString("config")
		c, err := config.Load(path)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		if lvl, _ := cmd.Flags().GetString("log-level"); lvl != "" {
			c.LogLevel = lvl
		}
		lvl, err := zerolog.ParseLevel(strings.ToLower(c.LogLevel))
		if err != nil {
			return fmt.Errorf("log level %q: %w", c.LogLevel, err)
		}
		zerolog.SetGlobalLevel(lvl)
		cfg = c
		return nil
	},
}

// Execute adds all child commands to the root command and runs it.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		log.Error().Err(err).Msg("wordle exited")
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().String("config", "wordle.yaml", "YAML config file (missing file is ignored)")
	rootCmd.PersistentFlags().String("log-level", "", "Override log level (debug, info, warn, error)")
}
