// Package linkedin is the LinkedIn enrichment provider. Profile scraping is
// not implemented, so every lookup reports that no data is available.
package linkedin

import (
	"context"

	"github.com/user/company-analyzer/internal/entity"
)

type Provider struct{}

func NewProvider() *Provider {
	return &Provider{}
}

// Enrich always returns no data and no error.
func (p *Provider) Enrich(_ context.Context, _ string) (*entity.LinkedinData, error) {
	return nil, nil
}
