package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/user/company-analyzer/internal/entity"
	"github.com/user/company-analyzer/internal/repository"
)

const schema = `
CREATE TABLE IF NOT EXISTS analysis_results (
	id            TEXT PRIMARY KEY,
	url           TEXT NOT NULL,
	status        TEXT NOT NULL,
	website_data  JSONB,
	linkedin_data JSONB,
	error_message TEXT,
	created_at    TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS analysis_results_url_created_idx
	ON analysis_results (url, created_at DESC);
`

const uniqueViolation = "23505"

// JobRepoImpl stores analysis jobs in the analysis_results table, with the
// facet payloads kept as JSONB.
type JobRepoImpl struct {
	db *pgxpool.Pool
}

// NewJobRepo creates a new instance of JobRepoImpl.
func NewJobRepo(db *pgxpool.Pool) *JobRepoImpl {
	return &JobRepoImpl{db: db}
}

// EnsureSchema creates the table and index when they are missing.
func (r *JobRepoImpl) EnsureSchema(ctx context.Context) error {
	_, err := r.db.Exec(ctx, schema)
	return err
}

func (r *JobRepoImpl) Create(ctx context.Context, job *entity.AnalysisJob) error {
	websiteJSON, linkedinJSON, err := encodeFacets(job)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO analysis_results (id, url, status, website_data, linkedin_data, error_message, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7);
	`
	_, err = r.db.Exec(ctx, query,
		job.ID,
		job.URL,
		job.Status,
		websiteJSON,
		linkedinJSON,
		job.ErrorMessage,
		job.CreatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return repository.ErrJobExists
		}
		return fmt.Errorf("failed to insert job %s: %w", job.ID, err)
	}
	return nil
}

func (r *JobRepoImpl) FindByID(ctx context.Context, id string) (*entity.AnalysisJob, error) {
	query := `
		SELECT id, url, status, website_data, linkedin_data, error_message, created_at
		FROM analysis_results
		WHERE id = $1;
	`
	return r.scanJob(r.db.QueryRow(ctx, query, id))
}

func (r *JobRepoImpl) FindByURL(ctx context.Context, url string) (*entity.AnalysisJob, error) {
	query := `
		SELECT id, url, status, website_data, linkedin_data, error_message, created_at
		FROM analysis_results
		WHERE url = $1
		ORDER BY created_at DESC
		LIMIT 1;
	`
	return r.scanJob(r.db.QueryRow(ctx, query, url))
}

func (r *JobRepoImpl) Update(ctx context.Context, job *entity.AnalysisJob) error {
	websiteJSON, linkedinJSON, err := encodeFacets(job)
	if err != nil {
		return err
	}

	query := `
		UPDATE analysis_results
		SET status = $2, website_data = $3, linkedin_data = $4, error_message = $5
		WHERE id = $1;
	`
	tag, err := r.db.Exec(ctx, query,
		job.ID,
		job.Status,
		websiteJSON,
		linkedinJSON,
		job.ErrorMessage,
	)
	if err != nil {
		return fmt.Errorf("failed to update job %s: %w", job.ID, err)
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrJobNotFound
	}
	return nil
}

func (r *JobRepoImpl) Ping(ctx context.Context) error {
	return r.db.Ping(ctx)
}

func (r *JobRepoImpl) scanJob(row pgx.Row) (*entity.AnalysisJob, error) {
	var (
		job          entity.AnalysisJob
		websiteJSON  []byte
		linkedinJSON []byte
	)
	err := row.Scan(
		&job.ID,
		&job.URL,
		&job.Status,
		&websiteJSON,
		&linkedinJSON,
		&job.ErrorMessage,
		&job.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrJobNotFound
		}
		return nil, err
	}

	if websiteJSON != nil {
		if err := json.Unmarshal(websiteJSON, &job.WebsiteData); err != nil {
			return nil, fmt.Errorf("failed to decode website data of job %s: %w", job.ID, err)
		}
	}
	if linkedinJSON != nil {
		if err := json.Unmarshal(linkedinJSON, &job.LinkedinData); err != nil {
			return nil, fmt.Errorf("failed to decode linkedin data of job %s: %w", job.ID, err)
		}
	}
	return &job, nil
}

// encodeFacets marshals the optional payloads; absent data stays SQL NULL.
func encodeFacets(job *entity.AnalysisJob) (website, linkedin []byte, err error) {
	if job.WebsiteData != nil {
		if website, err = json.Marshal(job.WebsiteData); err != nil {
			return nil, nil, fmt.Errorf("failed to encode website data of job %s: %w", job.ID, err)
		}
	}
	if job.LinkedinData != nil {
		if linkedin, err = json.Marshal(job.LinkedinData); err != nil {
			return nil, nil, fmt.Errorf("failed to encode linkedin data of job %s: %w", job.ID, err)
		}
	}
	return website, linkedin, nil
}
