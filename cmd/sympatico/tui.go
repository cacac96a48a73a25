// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/pdiddy/sympatico/internal/tui"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Browse condition overviews in an interactive terminal UI",
	RunE: func(cmd *cobra.Command, args []string) error {
		if !term.IsTerminal(int(os.Stdout.Fd())) {
			return fmt.Errorf("tui needs an interactive terminal; use condition-overview instead")
		}
		modelFlag, _ := cmd.Flags().GetString("model")
		model, err := resolveModel(modelFlag, cfg)
		if err != nil {
			return err
		}
		// Console log lines would draw over the alternate screen.
		return tui.Run(cmd.Context(), buildPipeline(cfg, zap.NewNop()), model)
	},
}

func init() {
	tuiCmd.Flags().String("model", "", "model to use: gpt-4 or gpt-3.5-turbo (default from config)")

	rootCmd.AddCommand(tuiCmd)
}
