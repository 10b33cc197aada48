// Package bootstrap builds the analysis service graph from configuration.
package bootstrap

import (
	"context"
	"fmt"
	"net/http"

	"github.com/chromedp/chromedp"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/user/company-analyzer/internal/adapter/chromedp_crawler"
	"github.com/user/company-analyzer/internal/adapter/httpfetch"
	"github.com/user/company-analyzer/internal/adapter/linkedin"
	"github.com/user/company-analyzer/internal/adapter/memory"
	"github.com/user/company-analyzer/internal/adapter/openai"
	"github.com/user/company-analyzer/internal/adapter/postgres"
	"github.com/user/company-analyzer/internal/adapter/proxy"
	redis_adapter "github.com/user/company-analyzer/internal/adapter/redis"
	"github.com/user/company-analyzer/internal/repository"
	"github.com/user/company-analyzer/internal/usecase"
	"github.com/user/company-analyzer/pkg/config"
)

// App is the assembled service with the resources it holds open.
type App struct {
	Service *usecase.AnalysisService
	// Store is nil when the job store has no server to check.
	Store repository.Pinger

	closers []func()
}

// Close releases resources in reverse order of acquisition.
func (a *App) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
}

// New wires fetcher, summarizer, enrichment and job store per cfg.
func New(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*App, error) {
	app := &App{}

	fetcher, closeFetcher, err := NewFetcher(cfg, logger)
	if err != nil {
		return nil, err
	}
	app.closers = append(app.closers, closeFetcher)

	repo, store, closeStore, err := NewJobRepository(ctx, cfg)
	if err != nil {
		app.Close()
		return nil, err
	}
	app.closers = append(app.closers, closeStore)
	app.Store = store

	generator := NewTextGenerator(cfg)
	if generator == nil {
		logger.Warn("no summarization API key configured, summaries are disabled")
	}

	pipeline := usecase.NewPipeline(
		fetcher,
		usecase.NewSummarizer(generator, cfg.SummarizerTimeout, logger),
		linkedin.NewProvider(),
		usecase.PipelineConfig{
			HomepageTimeout:    cfg.HomepageTimeout,
			SubpageTimeout:     cfg.SubpageTimeout,
			SubpageConcurrency: cfg.SubpageConcurrency,
		},
		logger,
	)
	app.Service = usecase.NewAnalysisService(repo, pipeline, logger)

	logger.Info("analysis service ready",
		zap.String("fetch_mode", cfg.FetchMode),
		zap.String("job_store", cfg.JobStore),
		zap.Int("subpage_concurrency", cfg.SubpageConcurrency),
	)
	return app, nil
}

// NewFetcher returns the page fetcher selected by FETCH_MODE and its cleanup.
func NewFetcher(cfg *config.Config, logger *zap.Logger) (repository.PageFetcher, func(), error) {
	proxies, err := proxy.NewRotator(cfg.FetchProxies)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid FETCH_PROXIES: %w", err)
	}

	switch cfg.FetchMode {
	case config.FetchModeHTTP:
		var client *http.Client
		if proxies.Len() > 0 {
			client = &http.Client{Transport: proxies.Transport()}
			logger.Info("routing page fetches through proxies", zap.Int("proxies", proxies.Len()))
		}
		return httpfetch.NewFetcher(client), func() {}, nil
	case config.FetchModeHeadless:
		var opts []chromedp.ExecAllocatorOption
		if p := proxies.Next(); p != nil {
			opts = append(opts, chromedp.ProxyServer(p.String()))
			logger.Info("routing browser through proxy", zap.String("proxy", p.Redacted()))
		}
		f := chromedp_crawler.NewFetcher(logger, opts...)
		return f, f.Close, nil
	default:
		return nil, nil, fmt.Errorf("unsupported fetch mode %q", cfg.FetchMode)
	}
}

// NewJobRepository connects the job store selected by JOB_STORE. The returned
// Pinger is nil for the in-memory store.
func NewJobRepository(ctx context.Context, cfg *config.Config) (repository.JobRepository, repository.Pinger, func(), error) {
	switch cfg.JobStore {
	case config.JobStoreMemory:
		return memory.NewJobRepo(), nil, func() {}, nil

	case config.JobStoreRedis:
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		if err := client.Ping(ctx).Err(); err != nil {
			client.Close()
			return nil, nil, nil, fmt.Errorf("unable to connect to redis: %w", err)
		}
		repo := redis_adapter.NewJobRepo(client, cfg.JobTTL)
		return repo, repo, func() { client.Close() }, nil

	case config.JobStorePostgres:
		pool, err := pgxpool.New(ctx, cfg.PostgresURL)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("unable to connect to database: %w", err)
		}
		repo := postgres.NewJobRepo(pool)
		if err := repo.EnsureSchema(ctx); err != nil {
			pool.Close()
			return nil, nil, nil, fmt.Errorf("failed to prepare analysis_results table: %w", err)
		}
		return repo, repo, pool.Close, nil

	default:
		return nil, nil, nil, fmt.Errorf("unsupported job store %q", cfg.JobStore)
	}
}

// NewTextGenerator returns the remote summarization backend, or nil when no
// credential is configured.
func NewTextGenerator(cfg *config.Config) repository.TextGenerator {
	key := cfg.SummarizerAPIKey()
	if key == "" {
		return nil
	}
	return openai.NewClient(key, cfg.SummarizerBaseURL, cfg.SummarizerModel, nil)
}
