package usecase

import (
	"context"
	"net/http"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/user/company-analyzer/internal/entity"
	"github.com/user/company-analyzer/internal/repository"
)

const filler = "Reliable freight partners across the region, moving goods on time and on budget for every customer we serve."

// page wraps body in a document whose text clears the substance threshold.
func page(title, body string) string {
	return "<html><head><title>" + title + "</title></head><body>" + body + "<p>" + filler + "</p></body></html>"
}

type fakeFetcher struct {
	mu    sync.Mutex
	pages map[string]string
	calls []string
}

func newFakeFetcher(pages map[string]string) *fakeFetcher {
	return &fakeFetcher{pages: pages}
}

func (f *fakeFetcher) Fetch(_ context.Context, url string, _ time.Duration) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, url)
	html, ok := f.pages[url]
	if !ok {
		return "", &repository.FetchError{URL: url, StatusCode: http.StatusNotFound}
	}
	return html, nil
}

func (f *fakeFetcher) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

type fakeGenerator struct {
	mu      sync.Mutex
	reply   string
	err     error
	prompts []string
}

func (g *fakeGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.prompts = append(g.prompts, prompt)
	return g.reply, g.err
}

func (g *fakeGenerator) Prompts() []string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return append([]string(nil), g.prompts...)
}

type blockingGenerator struct{}

func (blockingGenerator) Generate(ctx context.Context, _ string) (string, error) {
	<-ctx.Done()
	return "", ctx.Err()
}

type fakeEnricher struct {
	data  *entity.LinkedinData
	err   error
	calls atomic.Int32
	url   atomic.Value
}

func (e *fakeEnricher) Enrich(_ context.Context, linkedinURL string) (*entity.LinkedinData, error) {
	e.calls.Add(1)
	e.url.Store(linkedinURL)
	return e.data, e.err
}

type fakeAnalyzer struct {
	calls   atomic.Int32
	release chan struct{}
	run     func(siteURL string) (*entity.WebsiteData, *entity.LinkedinData, error)
}

func (a *fakeAnalyzer) Run(ctx context.Context, siteURL string) (*entity.WebsiteData, *entity.LinkedinData, error) {
	a.calls.Add(1)
	if a.release != nil {
		select {
		case <-a.release:
		case <-ctx.Done():
			return nil, nil, ctx.Err()
		}
	}
	if a.run != nil {
		return a.run(siteURL)
	}
	return &entity.WebsiteData{Home: &entity.HomeFacet{PageTitle: strings.TrimPrefix(siteURL, "https://")}}, nil, nil
}
