package usecase

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/user/company-analyzer/internal/entity"
	"github.com/user/company-analyzer/internal/extractor"
	"github.com/user/company-analyzer/internal/repository"
	"github.com/user/company-analyzer/pkg/metrics"
	"github.com/user/company-analyzer/pkg/utils"
)

// minContentLength is the number of body text characters a subpage needs
// before it is worth extracting.
const minContentLength = 100

// candidatePaths are tried in order; a later page replaces the facet set by
// an earlier one (/about-us overrides /about).
var candidatePaths = []string{"/about", "/about-us", "/services", "/products", "/contact"}

// PipelineConfig holds the tunables of a Pipeline.
type PipelineConfig struct {
	HomepageTimeout    time.Duration
	SubpageTimeout     time.Duration
	SubpageConcurrency int
}

// Pipeline crawls a company site and assembles its WebsiteData.
type Pipeline struct {
	fetcher    repository.PageFetcher
	summarizer *Summarizer
	enricher   repository.EnrichmentProvider
	cfg        PipelineConfig
	logger     *zap.Logger
}

// NewPipeline creates a Pipeline. Non-positive settings fall back to 30s,
// 15s and sequential subpage fetching.
func NewPipeline(
	fetcher repository.PageFetcher,
	summarizer *Summarizer,
	enricher repository.EnrichmentProvider,
	cfg PipelineConfig,
	logger *zap.Logger,
) *Pipeline {
	if cfg.HomepageTimeout <= 0 {
		cfg.HomepageTimeout = 30 * time.Second
	}
	if cfg.SubpageTimeout <= 0 {
		cfg.SubpageTimeout = 15 * time.Second
	}
	if cfg.SubpageConcurrency <= 0 {
		cfg.SubpageConcurrency = 1
	}
	return &Pipeline{
		fetcher:    fetcher,
		summarizer: summarizer,
		enricher:   enricher,
		cfg:        cfg,
		logger:     logger,
	}
}

// Run analyzes siteURL. Only a homepage failure is returned as an error;
// subpages that cannot be loaded are skipped.
func (p *Pipeline) Run(ctx context.Context, siteURL string) (*entity.WebsiteData, *entity.LinkedinData, error) {
	base, err := utils.ParseAbsoluteURL(siteURL)
	if err != nil {
		return nil, nil, err
	}

	html, err := p.fetcher.Fetch(ctx, siteURL, p.cfg.HomepageTimeout)
	if err != nil {
		metrics.PageFetchesTotal.WithLabelValues("home", "error").Inc()
		return nil, nil, err
	}
	metrics.PageFetchesTotal.WithLabelValues("home", "ok").Inc()

	doc, err := extractor.NewDocument(html)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to parse homepage: %w", err)
	}

	home := extractor.Home(doc)
	home.Summary = p.summarizer.Summarize(ctx, doc.AnalysisText(), "homepage", home.PageTitle)

	website := &entity.WebsiteData{
		Home:        home,
		SocialMedia: extractor.SocialLinks(doc.Links()),
	}

	pages := p.fetchSubpages(ctx, base)
	for i, path := range candidatePaths {
		if pages[i] != nil {
			p.applySubpage(ctx, website, path, pages[i])
		}
	}

	linkedin, err := p.enrich(ctx, website.SocialMedia.LinkedinURL)
	if err != nil {
		p.logger.Warn("linkedin enrichment failed", zap.String("url", siteURL), zap.Error(err))
		linkedin = nil
	}
	return website, linkedin, nil
}

// fetchSubpages loads every candidate path, at most SubpageConcurrency at a
// time. The result is indexed like candidatePaths; nil marks a skipped page.
func (p *Pipeline) fetchSubpages(ctx context.Context, base *url.URL) []*extractor.Document {
	pages := make([]*extractor.Document, len(candidatePaths))

	var g errgroup.Group
	g.SetLimit(p.cfg.SubpageConcurrency)
	for i, path := range candidatePaths {
		i, path := i, path
		g.Go(func() error {
			pages[i] = p.fetchSubpage(ctx, base, path)
			return nil
		})
	}
	_ = g.Wait()

	return pages
}

func (p *Pipeline) fetchSubpage(ctx context.Context, base *url.URL, path string) *extractor.Document {
	page := strings.TrimPrefix(path, "/")
	pageURL, err := utils.ToAbsoluteURL(base, path)
	if err != nil {
		return nil
	}

	html, err := p.fetcher.Fetch(ctx, pageURL, p.cfg.SubpageTimeout)
	if err != nil {
		metrics.PageFetchesTotal.WithLabelValues(page, "error").Inc()
		p.logger.Debug("skipping subpage", zap.String("url", pageURL), zap.Error(err))
		return nil
	}

	doc, err := extractor.NewDocument(html)
	if err != nil || utils.CharCount(strings.TrimSpace(doc.AnalysisText())) <= minContentLength {
		metrics.PageFetchesTotal.WithLabelValues(page, "thin").Inc()
		p.logger.Debug("skipping subpage without content", zap.String("url", pageURL))
		return nil
	}

	metrics.PageFetchesTotal.WithLabelValues(page, "ok").Inc()
	return doc
}

func (p *Pipeline) applySubpage(ctx context.Context, website *entity.WebsiteData, path string, doc *extractor.Document) {
	switch {
	case strings.Contains(path, "about"):
		about := extractor.About(doc)
		about.AboutSummary = p.summarizer.Summarize(ctx, doc.AnalysisText(), "about", about.CompanyName)
		website.About = about
	case strings.Contains(path, "services"):
		services := extractor.Services(doc)
		services.ServicesSummary = p.summarizer.Summarize(ctx, doc.AnalysisText(), "services", doc.Title())
		website.Services = services
	case strings.Contains(path, "products"):
		products := extractor.Products(doc)
		products.ProductsSummary = p.summarizer.Summarize(ctx, doc.AnalysisText(), "products", doc.Title())
		website.Products = products
	case strings.Contains(path, "contact"):
		website.Contact = extractor.Contact(doc)
	}
}

func (p *Pipeline) enrich(ctx context.Context, linkedinURL string) (*entity.LinkedinData, error) {
	if linkedinURL == "" || p.enricher == nil {
		return nil, nil
	}
	return p.enricher.Enrich(ctx, linkedinURL)
}
