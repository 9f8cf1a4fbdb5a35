// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/research-finder/internal/citations"
	"github.com/pdiddy/research-finder/internal/pipeline"
	"github.com/pdiddy/research-finder/internal/sqlgen"
	"github.com/pdiddy/research-finder/internal/store"
	"github.com/pdiddy/research-finder/pkg/types"
)

const defaultRunTimeout = 60 * time.Second

var queryCmd = &cobra.Command{
	Use:   "query [question...]",
	Short: "Answer a free-text research question",
	Long: `Query decomposes a plain-English research question into structured
predicates, compiles them into one bounded SQL query against the papers
database, and annotates the matches with citation counts.

A query that matches nothing is a normal outcome, not an error. Citation
provider failures degrade to unranked results with a warning.

Examples:
  research-finder query find papers about machine learning from 2020
  research-finder query most cited neural network papers
  research-finder query "citations for 'Attention Is All You Need'"`,
	RunE: runQuery,
}

func init() {
	queryCmd.Flags().Bool("json", false, "output the full run as JSON")
	queryCmd.Flags().String("out", "", "save the run to a YAML result file")
	queryCmd.Flags().Duration("timeout", 0, "overall run deadline (default 60s)")

	rootCmd.AddCommand(queryCmd)
}

func runQuery(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("provide a research question, e.g.: research-finder query papers about robotics since 2020")
	}
	question := strings.Join(args, " ")

	timeout, _ := cmd.Flags().GetDuration("timeout")
	if timeout == 0 {
		timeout = defaultRunTimeout
	}

	storeCfg := storeConfig()
	st, err := store.Open(storeCfg)
	if err != nil {
		return err
	}
	defer st.Close()

	resolver := citations.NewResolver(citationConfig(), &http.Client{}, os.Stderr)

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	out := pipeline.Run(ctx, question, st, resolver, sqlgen.DialectForDriver(storeCfg.Driver), os.Stderr)

	if outPath, _ := cmd.Flags().GetString("out"); outPath != "" {
		if err := pipeline.WriteResultFile(outPath, out); err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "Saved run to %s\n", outPath)
	}

	if jsonOutput, _ := cmd.Flags().GetBool("json"); jsonOutput {
		return pipeline.FormatJSON(out, os.Stdout)
	}
	pipeline.FormatTable(out, os.Stdout)
	return nil
}

func storeConfig() types.StoreConfig {
	return types.StoreConfig{
		Driver: viper.GetString("store.driver"),
		DSN:    secretDefault("papers-db-dsn", viper.GetString("store.dsn")),
	}
}

func citationConfig() types.CitationConfig {
	return types.CitationConfig{
		LocalBaseURL:         viper.GetString("citations.local_base_url"),
		OpenCitationsBaseURL: viper.GetString("citations.opencitations_base_url"),
		AccessToken:          secretDefault("opencitations-access-token", viper.GetString("citations.access_token")),
		LocalTimeout:         viper.GetDuration("citations.local_timeout"),
		OpenCitationsTimeout: viper.GetDuration("citations.opencitations_timeout"),
		Workers:              viper.GetInt("citations.workers"),
		UserAgent:            "research-finder/" + version,
	}
}
