package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/drebelsky/xdr-ls/index"
	"github.com/drebelsky/xdr-ls/lsp"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run as a language server on stdio",
	Long: `Run xdr-ls as a Language Server Protocol server reading from stdin and
writing to stdout. The workspace sent in the initialize request is
indexed once, then definition and reference requests are answered from
the in-memory index until the client disconnects.`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGTERM, syscall.SIGINT)

	go func() {
		<-sigChan
		cancel()
	}()

	ix := index.New(indexOptions())
	srv := lsp.NewServer(ix, cmd.InOrStdin(), cmd.OutOrStdout(), version)
	srv.SetLogger(slog.Default())
	return srv.Run(ctx)
}
