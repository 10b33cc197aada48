package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "analyze",
		Short: "analyze extracts structured company information from a website",
		Long: `analyze fetches a company homepage and its about, services, products and
contact pages, extracts contact details, social profiles and company facts,
and prints the resulting analysis as JSON.

Usage:
  analyze run <url>
  analyze submit <url> --server http://localhost:8080 --wait`,
		SilenceUsage: true,
	}
	root.AddCommand(newRunCmd(), newSubmitCmd())
	return root
}

// Execute runs the root command.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		stop()
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
