package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/user/company-analyzer/internal/entity"
	"github.com/user/company-analyzer/internal/repository"
	"github.com/user/company-analyzer/pkg/utils"
)

const (
	jobKeyPrefix = "analysis:job:"
	urlKeyPrefix = "analysis:url:"
)

// JobRepoImpl stores analysis jobs as JSON strings. A sorted set per URL,
// scored by creation time, indexes the jobs submitted for that URL.
type JobRepoImpl struct {
	client *redis.Client
	ttl    time.Duration
}

// NewJobRepo creates a Redis backed job store. A zero ttl keeps records forever.
func NewJobRepo(client *redis.Client, ttl time.Duration) *JobRepoImpl {
	return &JobRepoImpl{client: client, ttl: ttl}
}

func jobKey(id string) string {
	return jobKeyPrefix + id
}

// urlKey hashes the URL so arbitrary input never ends up in a key name.
func urlKey(url string) string {
	return urlKeyPrefix + utils.HashURL(url)
}

func (r *JobRepoImpl) Create(ctx context.Context, job *entity.AnalysisJob) error {
	payload, err := json.Marshal(job)
	if err != nil {
		return fmt.Errorf("failed to encode job %s: %w", job.ID, err)
	}

	created, err := r.client.SetNX(ctx, jobKey(job.ID), payload, r.ttl).Result()
	if err != nil {
		return fmt.Errorf("failed to store job %s: %w", job.ID, err)
	}
	if !created {
		return repository.ErrJobExists
	}

	pipe := r.client.TxPipeline()
	pipe.ZAdd(ctx, urlKey(job.URL), redis.Z{
		Score:  float64(job.CreatedAt.UnixNano()),
		Member: job.ID,
	})
	if r.ttl > 0 {
		pipe.Expire(ctx, urlKey(job.URL), r.ttl)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to index job %s: %w", job.ID, err)
	}
	return nil
}

func (r *JobRepoImpl) FindByID(ctx context.Context, id string) (*entity.AnalysisJob, error) {
	payload, err := r.client.Get(ctx, jobKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, repository.ErrJobNotFound
		}
		return nil, fmt.Errorf("failed to load job %s: %w", id, err)
	}

	var job entity.AnalysisJob
	if err := json.Unmarshal(payload, &job); err != nil {
		return nil, fmt.Errorf("failed to decode job %s: %w", id, err)
	}
	return &job, nil
}

func (r *JobRepoImpl) FindByURL(ctx context.Context, url string) (*entity.AnalysisJob, error) {
	ids, err := r.client.ZRevRange(ctx, urlKey(url), 0, 0).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to look up jobs for %s: %w", url, err)
	}
	if len(ids) == 0 {
		return nil, repository.ErrJobNotFound
	}
	return r.FindByID(ctx, ids[0])
}

func (r *JobRepoImpl) Update(ctx context.Context, job *entity.AnalysisJob) error {
	payload, err := json.Marshal(job)
	if err != nil {
		return fmt.Errorf("failed to encode job %s: %w", job.ID, err)
	}

	updated, err := r.client.SetXX(ctx, jobKey(job.ID), payload, redis.KeepTTL).Result()
	if err != nil {
		return fmt.Errorf("failed to update job %s: %w", job.ID, err)
	}
	if !updated {
		return repository.ErrJobNotFound
	}
	return nil
}

func (r *JobRepoImpl) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}
