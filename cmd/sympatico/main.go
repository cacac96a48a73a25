// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the sympatico CLI.
package main

import (
	"context"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/pdiddy/sympatico/internal/logging"
	"github.com/pdiddy/sympatico/internal/secrets"
	"github.com/pdiddy/sympatico/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

var (
	// cfg is the resolved configuration, filled in by PersistentPreRunE.
	cfg types.Config

	// logger is the process logger, built from cfg.Log.
	logger = zap.NewNop()

	// loadedSecrets holds API keys loaded from .secrets/ at startup.
	loadedSecrets secrets.Store
)

// rootCmd is the base command for the sympatico CLI.
var rootCmd = &cobra.Command{
	Use:   "sympatico",
	Short: "Paediatric condition overviews with guideline and PubMed references",
	Long: `sympatico asks a language model for a structured overview of a paediatric
condition and gathers supporting references: the matching RCH clinical
guideline and a handful of PubMed citations.

Results are available from the command line (condition-overview), as an
HTTP JSON API (serve), or in an interactive terminal UI (tui).`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		envLoaded, err := loadDotEnv(dotEnvFile)
		if err != nil {
			return err
		}

		c, err := loadConfig(viper.GetViper())
		if err != nil {
			return err
		}

		log, err := logging.New(c.Log.Level, c.Log.Format)
		if err != nil {
			return err
		}

		if envLoaded {
			log.Debug("loaded environment file", zap.String("path", dotEnvFile))
		}

		s, err := secrets.Load(secrets.DefaultDir, log)
		if err != nil {
			return err
		}
		if len(s) > 0 {
			keys := make([]string, 0, len(s))
			for k := range s {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			log.Debug("loaded secrets", zap.Strings("keys", keys))
		}

		applySecrets(&c, s, log)

		cfg, logger, loadedSecrets = c, log, s
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./sympatico.yaml or ~/.config/sympatico/sympatico.yaml)")
	rootCmd.PersistentFlags().String("log-level", "", "log level: debug, info, warn, or error")
	_ = viper.BindPFlag("log.level", rootCmd.PersistentFlags().Lookup("log-level"))
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("sympatico")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "sympatico"))
		}
	}

	bindEnv(viper.GetViper())

	// A missing config file is fine; defaults and the environment still apply.
	_ = viper.ReadInConfig()
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}
