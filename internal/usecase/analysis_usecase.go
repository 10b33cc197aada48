package usecase

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/user/company-analyzer/internal/entity"
	"github.com/user/company-analyzer/internal/repository"
	"github.com/user/company-analyzer/pkg/metrics"
)

// Analyzer runs the crawl and extraction for one site.
type Analyzer interface {
	Run(ctx context.Context, siteURL string) (*entity.WebsiteData, *entity.LinkedinData, error)
}

// AnalysisService owns the job lifecycle: it stores a pending job, runs the
// analysis in the background and records the terminal state.
type AnalysisService struct {
	repo     repository.JobRepository
	analyzer Analyzer
	logger   *zap.Logger

	now   func() time.Time
	newID func() string

	wg sync.WaitGroup
}

// Option customizes an AnalysisService.
type Option func(*AnalysisService)

// WithClock replaces time.Now for job timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *AnalysisService) { s.now = now }
}

// WithIDGenerator replaces the UUID generator for job ids.
func WithIDGenerator(newID func() string) Option {
	return func(s *AnalysisService) { s.newID = newID }
}

// NewAnalysisService creates a new AnalysisService.
func NewAnalysisService(repo repository.JobRepository, analyzer Analyzer, logger *zap.Logger, opts ...Option) *AnalysisService {
	s := &AnalysisService{
		repo:     repo,
		analyzer: analyzer,
		logger:   logger,
		now:      time.Now,
		newID:    uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Submit returns the completed job already stored for siteURL, or stores a
// new pending job and starts analyzing it in the background.
func (s *AnalysisService) Submit(ctx context.Context, siteURL string) (*entity.AnalysisJob, error) {
	job, err := s.createJob(ctx, siteURL)
	if err != nil || job.Status.IsTerminal() {
		return job, err
	}

	s.wg.Add(1)
	go func(job *entity.AnalysisJob) {
		defer s.wg.Done()
		s.process(context.Background(), job)
	}(job.Clone())

	return job, nil
}

// Analyze is the synchronous form of Submit: it returns once the job is terminal.
func (s *AnalysisService) Analyze(ctx context.Context, siteURL string) (*entity.AnalysisJob, error) {
	job, err := s.createJob(ctx, siteURL)
	if err != nil || job.Status.IsTerminal() {
		return job, err
	}
	s.process(ctx, job)
	return job, nil
}

// Get returns the job with the given id.
func (s *AnalysisService) Get(ctx context.Context, id string) (*entity.AnalysisJob, error) {
	return s.repo.FindByID(ctx, id)
}

// Wait blocks until every background analysis has finished or ctx is done.
func (s *AnalysisService) Wait(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *AnalysisService) createJob(ctx context.Context, siteURL string) (*entity.AnalysisJob, error) {
	existing, err := s.repo.FindByURL(ctx, siteURL)
	switch {
	case err == nil && existing.Status == entity.StatusCompleted:
		s.logger.Info("returning completed analysis", zap.String("job_id", existing.ID), zap.String("url", siteURL))
		return existing, nil
	case err != nil && !errors.Is(err, repository.ErrJobNotFound):
		return nil, fmt.Errorf("failed to look up analysis for %s: %w", siteURL, err)
	}

	job := entity.NewAnalysisJob(s.newID(), siteURL, s.now().UTC())
	if err := s.repo.Create(ctx, job); err != nil {
		return nil, fmt.Errorf("failed to create analysis job: %w", err)
	}
	s.logger.Info("analysis job created", zap.String("job_id", job.ID), zap.String("url", siteURL))
	return job, nil
}

// process runs the analyzer for job and stores the terminal state.
func (s *AnalysisService) process(ctx context.Context, job *entity.AnalysisJob) {
	logger := s.logger.With(zap.String("job_id", job.ID), zap.String("url", job.URL))
	metrics.AnalysisJobsInFlight.Inc()
	defer metrics.AnalysisJobsInFlight.Dec()
	start := time.Now()

	website, linkedin, err := s.run(ctx, job.URL)
	if err != nil {
		logger.Warn("analysis failed", zap.Error(err))
		_ = job.Fail(err.Error())
	} else {
		_ = job.Complete(website, linkedin)
	}

	metrics.AnalysisDuration.Observe(time.Since(start).Seconds())
	metrics.AnalysisJobsTotal.WithLabelValues(string(job.Status)).Inc()

	if err := s.repo.Update(ctx, job); err != nil {
		logger.Error("failed to store analysis result", zap.Error(err))
		return
	}
	logger.Info("analysis finished",
		zap.String("status", string(job.Status)),
		zap.Duration("elapsed", time.Since(start)),
	)
}

// run converts a panic in the analyzer into an error so the job still fails cleanly.
func (s *AnalysisService) run(ctx context.Context, siteURL string) (website *entity.WebsiteData, linkedin *entity.LinkedinData, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("analysis aborted: %v", r)
		}
	}()
	return s.analyzer.Run(ctx, siteURL)
}
