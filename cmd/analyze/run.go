package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/user/company-analyzer/internal/bootstrap"
	"github.com/user/company-analyzer/internal/entity"
	"github.com/user/company-analyzer/pkg/config"
	"github.com/user/company-analyzer/pkg/logger"
	"github.com/user/company-analyzer/pkg/utils"
)

func newRunCmd() *cobra.Command {
	var fetchMode string

	cmd := &cobra.Command{
		Use:   "run <url>",
		Short: "Analyze a website in-process and print the result",
		Long: `Run performs the whole analysis locally, without an API server. Settings
are read from the environment and .env like the server; results are kept in
memory only.

Examples:
  analyze run https://example.com
  analyze run https://example.com --fetch-mode headless`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := utils.ParseAbsoluteURL(args[0]); err != nil {
				return fmt.Errorf("invalid URL %s: %w", args[0], err)
			}

			cfg, err := config.Load()
			if err != nil {
				return err
			}
			cfg.JobStore = config.JobStoreMemory
			if fetchMode != "" {
				cfg.FetchMode = fetchMode
			}

			log, err := logger.New(cfg.LogLevel, cfg.LogFormat)
			if err != nil {
				return err
			}
			defer log.Sync()

			ctx := cmd.Context()
			app, err := bootstrap.New(ctx, cfg, log)
			if err != nil {
				return err
			}
			defer app.Close()

			job, err := app.Service.Analyze(ctx, args[0])
			if err != nil {
				return err
			}
			if job.Status == entity.StatusFailed {
				log.Warn("analysis failed", zap.String("url", job.URL))
			}
			return printJSON(cmd.OutOrStdout(), job)
		},
	}

	cmd.Flags().StringVar(&fetchMode, "fetch-mode", "", "Page fetcher: http or headless (default from FETCH_MODE)")
	return cmd
}
