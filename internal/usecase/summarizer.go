package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/user/company-analyzer/internal/repository"
	"github.com/user/company-analyzer/pkg/metrics"
	"github.com/user/company-analyzer/pkg/utils"
)

const (
	maxPromptContent = 1500
	maxSummaryLength = 500
)

// Summarizer turns page text into a short business summary. It never fails:
// without a generator, or when the remote call goes wrong, it returns a
// templated sentence naming the page context.
type Summarizer struct {
	generator repository.TextGenerator
	timeout   time.Duration
	logger    *zap.Logger
}

// NewSummarizer creates a Summarizer. A nil generator means no credential is
// configured. A zero timeout leaves the caller's deadline in charge.
func NewSummarizer(generator repository.TextGenerator, timeout time.Duration, logger *zap.Logger) *Summarizer {
	return &Summarizer{
		generator: generator,
		timeout:   timeout,
		logger:    logger,
	}
}

// Summarize summarizes text taken from a page described by contextLabel
// ("homepage", "about", "services", ...). title names the company or page
// in fallback sentences and may be empty.
func (s *Summarizer) Summarize(ctx context.Context, text, contextLabel, title string) string {
	if s.generator == nil {
		metrics.SummariesTotal.WithLabelValues("disabled").Inc()
		return fmt.Sprintf("AI summary not available - API key required. This appears to be a %s with relevant business information.", contextLabel)
	}

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	summary, err := s.generator.Generate(ctx, buildPrompt(text, contextLabel))
	summary = strings.TrimSpace(summary)
	if err != nil || summary == "" {
		if err != nil {
			s.logger.Warn("summary generation failed", zap.String("context", contextLabel), zap.Error(err))
		}
		metrics.SummariesTotal.WithLabelValues("fallback").Inc()
		return fallbackSummary(contextLabel, title)
	}

	metrics.SummariesTotal.WithLabelValues("generated").Inc()
	return utils.Truncate(summary, maxSummaryLength)
}

func fallbackSummary(contextLabel, title string) string {
	if title == "" {
		return fmt.Sprintf("This %s contains business information.", contextLabel)
	}
	return fmt.Sprintf("This %s contains business information about %s.", contextLabel, title)
}

func buildPrompt(text, contextLabel string) string {
	content := utils.Truncate(text, maxPromptContent)
	switch contextLabel {
	case "homepage":
		return fmt.Sprintf(`Analyze this company homepage content and create a professional 2-3 sentence summary focusing on:
- What the company does
- Key services or products
- Target market or unique value proposition

Content: "%s"

Provide a clear, concise business summary:`, content)
	case "about":
		return fmt.Sprintf(`Analyze this company's About page and summarize in 2-3 sentences:
- Company mission and values
- History or founding story
- Key differentiators

Content: "%s"

Provide a professional summary:`, content)
	default:
		return fmt.Sprintf(`Summarize this %s page content in 2-3 sentences, focusing on key business information:

Content: "%s"

Summary:`, contextLabel, content)
	}
}
