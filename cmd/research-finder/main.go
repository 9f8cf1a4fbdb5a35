// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the research-finder CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/research-finder/internal/secrets"
)

// version is set at build time via ldflags.
var version = "dev"

// loadedSecrets holds credentials loaded from .secrets/ at startup.
var loadedSecrets map[string]string

// secretDefault returns fallback when set, else the secret value for key.
func secretDefault(key, fallback string) string {
	if fallback != "" {
		return fallback
	}
	if v, ok := loadedSecrets[key]; ok {
		return v
	}
	return ""
}

// rootCmd is the base command for the research-finder CLI.
var rootCmd = &cobra.Command{
	Use:   "research-finder",
	Short: "Answer research questions from a local papers database",
	Long: `research-finder answers free-text research questions from a local papers
database built from the OpenCitations Meta CSV dump. Each question is
decomposed into structured predicates, compiled into one bounded SQL query,
and the matching papers are annotated with citation counts from a local
citation service or the public OpenCitations index.

Use query to ask a question and load to bulk-load CSV dumps into the
database.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		s, err := secrets.Load(".secrets/")
		if err != nil {
			return err
		}
		loadedSecrets = s
		if len(s) > 0 {
			keys := make([]string, 0, len(s))
			for k := range s {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			fmt.Fprintf(os.Stderr, "Loaded secrets: %v\n", keys)
		}
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./research-finder.yaml or ~/.config/research-finder/config.yaml)")
}

func initConfig() {
	// A .env file is optional; environment wins over it either way.
	_ = godotenv.Load(".env")

	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("research-finder")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "research-finder"))
		}
	}

	viper.SetEnvPrefix("RESEARCH_FINDER")
	viper.AutomaticEnv()

	// The DSN is left unset here so a papers-db-dsn secret can fill it;
	// the store falls back to a local papers.db file when nothing is set.
	viper.SetDefault("store.driver", "sqlite3")

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
