package repository

import (
	"context"

	"github.com/user/company-analyzer/internal/entity"
)

// EnrichmentProvider looks up the LinkedIn profile of a company.
// A nil result means no data is available.
type EnrichmentProvider interface {
	Enrich(ctx context.Context, linkedinURL string) (*entity.LinkedinData, error)
}

// TextGenerator sends a prompt to a remote text generation service.
type TextGenerator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}
