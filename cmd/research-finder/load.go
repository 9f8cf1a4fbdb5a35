package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/research-finder/internal/store"
)

var loadCmd = &cobra.Command{
	Use:   "load [csv-dir]",
	Short: "Bulk-load OpenCitations Meta CSV dumps into the papers database",
	Long: `Load creates the papers table if needed and ingests every *.csv file in
the given directory. Rows without an id and rows whose id already exists
are skipped, so re-running a load is safe.`,
	RunE: runLoad,
}

func init() {
	rootCmd.AddCommand(loadCmd)
}

func runLoad(cmd *cobra.Command, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("provide the directory containing the CSV dump files")
	}

	st, err := store.Open(storeConfig())
	if err != nil {
		return err
	}
	defer st.Close()

	ctx := context.Background()
	if err := st.CreateSchema(ctx); err != nil {
		return err
	}

	_, err = st.IngestDir(ctx, args[0], os.Stdout)
	return err
}
