package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/drebelsky/xdr-ls/index"
	"github.com/drebelsky/xdr-ls/store"
)

var (
	indexFormat string
	indexDB     string
)

var indexCmd = &cobra.Command{
	Use:   "index <dir>",
	Short: "Index a directory of XDR files",
	Long:  "Parse every XDR file under a directory and print a summary of the names found",
	Args:  cobra.ExactArgs(1),
	RunE:  runIndex,
}

func init() {
	indexCmd.Flags().StringVar(&indexFormat, "format", "human", "Output format: human, json")
	indexCmd.Flags().StringVar(&indexDB, "db", "", "Also save the index to this SQLite database")
	rootCmd.AddCommand(indexCmd)
}

func runIndex(cmd *cobra.Command, args []string) error {
	ix := index.New(indexOptions())

	startTime := time.Now()
	stats, err := ix.Build(args[0])
	if err != nil {
		return err
	}
	elapsed := time.Since(startTime)

	snap := ix.Snapshot()
	if indexDB != "" {
		st, err := store.Open(indexDB)
		if err != nil {
			return err
		}
		defer st.Close()
		if err := st.SaveSnapshot(snap); err != nil {
			return fmt.Errorf("saving index: %w", err)
		}
	}

	out := cmd.OutOrStdout()
	switch indexFormat {
	case "human":
		return writeHumanReport(out, stats, snap, elapsed)
	case "json":
		return writeJSONReport(out, stats, snap, elapsed)
	default:
		return fmt.Errorf("unknown format: %s (supported: human, json)", indexFormat)
	}
}
