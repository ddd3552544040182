package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/drebelsky/xdr-ls/index"
	"github.com/drebelsky/xdr-ls/store"
)

var (
	queryDB          string
	queryIncludeDecl bool
)

var queryCmd = &cobra.Command{
	Use:   "query [dir] <name>",
	Short: "Look up a name's definition and references",
	Long: `Look up where a name is defined and where it is used. With a directory
argument the index is built fresh from the sources; with --db the query
runs against a previously saved index instead. Querying a saved index
without a name lists every name it knows.`,
	Args: cobra.MaximumNArgs(2),
	RunE: runQuery,
}

func init() {
	queryCmd.Flags().StringVar(&queryDB, "db", "", "Query a saved SQLite index instead of parsing sources")
	queryCmd.Flags().BoolVar(&queryIncludeDecl, "include-declaration", false, "Count the definition among the references")
	rootCmd.AddCommand(queryCmd)
}

func runQuery(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	if queryDB != "" {
		if len(args) > 1 {
			return fmt.Errorf("with --db the only argument is the name to look up")
		}
		st, err := store.Open(queryDB)
		if err != nil {
			return err
		}
		defer st.Close()
		if len(args) == 0 {
			return listNames(out, st)
		}
		return queryStore(out, st, args[0])
	}

	if len(args) != 2 {
		return fmt.Errorf("usage: query <dir> <name>, or query --db <file> [name]")
	}

	ix := index.New(indexOptions())
	if _, err := ix.Build(args[0]); err != nil {
		return err
	}
	name := args[1]

	def, hasDef := ix.Definition(name)
	refs, hasRefs := ix.References(name, queryIncludeDecl)
	return writeQueryResult(out, name, def, hasDef, refs, hasRefs)
}

func queryStore(out io.Writer, st *store.Store, name string) error {
	def, hasDef, err := st.Definition(name)
	if err != nil {
		return err
	}
	refs, hasRefs, err := st.References(name, queryIncludeDecl)
	if err != nil {
		return err
	}
	return writeQueryResult(out, name, def, hasDef, refs, hasRefs)
}

func listNames(out io.Writer, st *store.Store) error {
	names, err := st.Names()
	if err != nil {
		return err
	}
	for _, name := range names {
		fmt.Fprintln(out, name)
	}
	return nil
}
