package main

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"github.com/user/company-analyzer/pkg/client"
)

func newSubmitCmd() *cobra.Command {
	var (
		server   string
		wait     bool
		interval time.Duration
		timeout  time.Duration
	)

	cmd := &cobra.Command{
		Use:   "submit <url>",
		Short: "Submit a website to a running analysis server",
		Long: `Submit posts the URL to the server's /api/analyze endpoint and prints the
returned job. With --wait it polls /api/analysis/{id} until the job is
completed or failed.

Examples:
  analyze submit https://example.com
  analyze submit https://example.com --server http://analyzer:8080 --wait`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			c := client.New(server, nil)

			job, err := c.Submit(ctx, args[0])
			if err != nil {
				return err
			}
			if wait && !job.Status.IsTerminal() {
				if timeout > 0 {
					var cancel context.CancelFunc
					ctx, cancel = context.WithTimeout(ctx, timeout)
					defer cancel()
				}
				job, err = c.Wait(ctx, job.ID, interval)
				if err != nil {
					return err
				}
			}
			return printJSON(cmd.OutOrStdout(), job)
		},
	}

	cmd.Flags().StringVar(&server, "server", "http://localhost:8080", "Base URL of the analysis server")
	cmd.Flags().BoolVar(&wait, "wait", false, "Poll until the analysis finishes")
	cmd.Flags().DurationVar(&interval, "interval", client.DefaultPollInterval, "Polling interval with --wait")
	cmd.Flags().DurationVar(&timeout, "timeout", 5*time.Minute, "Give up waiting after this long (0 waits forever)")
	return cmd
}
