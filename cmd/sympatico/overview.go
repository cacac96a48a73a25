// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/pdiddy/sympatico/internal/pipeline"
)

var overviewCmd = &cobra.Command{
	Use:   "condition-overview <condition...>",
	Short: "Generate an overview of a paediatric condition with references",
	Long: `Condition-overview asks the configured language model for a structured
overview of the named condition and, at the same time, looks up the matching
RCH guideline and up to three PubMed citations.

The result is printed as Markdown (an Overview section followed by a
References section), JSON, or YAML. With --output the result is written to a
file instead; the format then follows the file extension unless --format is
given.`,
	Example: `  sympatico condition-overview bronchiolitis
  sympatico condition-overview --model gpt-3.5-turbo nephrotic syndrome
  sympatico condition-overview --format json croup
  sympatico condition-overview --output notes/croup.md croup`,
	RunE: runOverview,
}

func init() {
	overviewCmd.Flags().String("model", "", "model to use: gpt-4 or gpt-3.5-turbo (default from config)")
	overviewCmd.Flags().String("format", "", "output format: markdown, json, or yaml (default markdown)")
	overviewCmd.Flags().StringP("output", "o", "", "write the result to this file instead of stdout")

	rootCmd.AddCommand(overviewCmd)
}

func runOverview(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("provide a condition name, e.g. sympatico condition-overview bronchiolitis")
	}
	condition := strings.Join(args, " ")

	modelFlag, _ := cmd.Flags().GetString("model")
	model, err := resolveModel(modelFlag, cfg)
	if err != nil {
		return err
	}
	format, _ := cmd.Flags().GetString("format")
	output, _ := cmd.Flags().GetString("output")

	result := buildPipeline(cfg, logger).Run(cmd.Context(), condition, model)

	if output == "" {
		return pipeline.Format(result, format, cmd.OutOrStdout())
	}

	if err := pipeline.WriteFile(output, format, result); err != nil {
		return err
	}
	logger.Info("wrote condition overview", zap.String("path", output))
	return nil
}
