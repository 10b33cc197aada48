package repository

import (
	"context"
	"errors"

	"github.com/user/company-analyzer/internal/entity"
)

var (
	// ErrJobNotFound is returned when no analysis job matches the lookup.
	ErrJobNotFound = errors.New("analysis job not found")
	// ErrJobExists is returned by Create when the ID is already taken.
	ErrJobExists = errors.New("analysis job already exists")
)

// JobRepository defines the keyed store of analysis jobs.
type JobRepository interface {
	// Create stores a new job. The job ID must be set by the caller.
	Create(ctx context.Context, job *entity.AnalysisJob) error
	// FindByID returns the job with the given id or ErrJobNotFound.
	FindByID(ctx context.Context, id string) (*entity.AnalysisJob, error)
	// FindByURL returns the most recently created job for url or ErrJobNotFound.
	FindByURL(ctx context.Context, url string) (*entity.AnalysisJob, error)
	// Update replaces the stored record with the same ID.
	Update(ctx context.Context, job *entity.AnalysisJob) error
}

// Pinger is implemented by stores backed by an external server.
type Pinger interface {
	Ping(ctx context.Context) error
}
