// Package memory holds process-local repository implementations.
package memory

import (
	"context"
	"sync"

	"github.com/user/company-analyzer/internal/entity"
	"github.com/user/company-analyzer/internal/repository"
)

// JobRepoImpl keeps analysis jobs in maps guarded by a RWMutex.
// Records are copied on the way in and out.
type JobRepoImpl struct {
	mu     sync.RWMutex
	byID   map[string]*entity.AnalysisJob
	latest map[string]string
}

// NewJobRepo creates an empty in-memory job store.
func NewJobRepo() *JobRepoImpl {
	return &JobRepoImpl{
		byID:   make(map[string]*entity.AnalysisJob),
		latest: make(map[string]string),
	}
}

func (r *JobRepoImpl) Create(_ context.Context, job *entity.AnalysisJob) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[job.ID]; ok {
		return repository.ErrJobExists
	}
	r.byID[job.ID] = job.Clone()
	if prev, ok := r.byID[r.latest[job.URL]]; !ok || !job.CreatedAt.Before(prev.CreatedAt) {
		r.latest[job.URL] = job.ID
	}
	return nil
}

func (r *JobRepoImpl) FindByID(_ context.Context, id string) (*entity.AnalysisJob, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	job, ok := r.byID[id]
	if !ok {
		return nil, repository.ErrJobNotFound
	}
	return job.Clone(), nil
}

func (r *JobRepoImpl) FindByURL(ctx context.Context, url string) (*entity.AnalysisJob, error) {
	r.mu.RLock()
	id, ok := r.latest[url]
	r.mu.RUnlock()
	if !ok {
		return nil, repository.ErrJobNotFound
	}
	return r.FindByID(ctx, id)
}

func (r *JobRepoImpl) Update(_ context.Context, job *entity.AnalysisJob) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[job.ID]; !ok {
		return repository.ErrJobNotFound
	}
	r.byID[job.ID] = job.Clone()
	return nil
}
