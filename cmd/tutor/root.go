package main

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/artem13815/tutor/pkg/config"
	"github.com/artem13815/tutor/pkg/log"
)

var (
	debug bool
	cfg   config.Config
)

var rootCmd = &cobra.Command{
	Use:   "tutor",
	Short: "AI tutor backend",
	Long:  `Answers student questions and explains lecture slides using a primary AI provider with automatic fallback.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		cfg = config.Load()
	},
	SilenceUsage: true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	// Global flags available to all subcommands
	rootCmd.PersistentFlags().BoolVarP(&debug, "debug", "d", false, "enable debug logging")
}

func setupLogger(ctx context.Context) (context.Context, func()) {
	return log.NewContextWithLogger(ctx, debug || cfg.Debug)
}
