package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/user/company-analyzer/internal/entity"
	"github.com/user/company-analyzer/internal/repository"
)

const homepage = `<html><head><title>Acme Logistics</title>
<meta name="description" content="Freight made simple"></head>
<body>
<div class="hero">Ship anything, anywhere</div>
<h1>Acme Logistics</h1>
<h2>Freight</h2>
<a href="https://www.linkedin.com/company/acme">LinkedIn</a>
<a href="https://twitter.com/acme">Twitter</a>
<p>Freight freight freight logistics logistics shipping.</p>
</body></html>`

func newTestPipeline(fetcher repository.PageFetcher, enricher repository.EnrichmentProvider, concurrency int) *Pipeline {
	return NewPipeline(
		fetcher,
		NewSummarizer(nil, 0, zap.NewNop()),
		enricher,
		PipelineConfig{SubpageConcurrency: concurrency},
		zap.NewNop(),
	)
}

func TestPipeline_HomepageOnly(t *testing.T) {
	fetcher := newFakeFetcher(map[string]string{"https://acme.test": homepage})

	website, linkedin, err := newTestPipeline(fetcher, nil, 1).Run(context.Background(), "https://acme.test")

	require.NoError(t, err)
	assert.Nil(t, linkedin)
	require.NotNil(t, website.Home)
	assert.Equal(t, "Acme Logistics", website.Home.PageTitle)
	assert.Equal(t, "Freight made simple", website.Home.MetaDescription)
	assert.Equal(t, []string{"Acme Logistics", "Freight"}, website.Home.MainHeadings)
	assert.Equal(t, "Ship anything, anywhere", website.Home.HeroText)
	assert.Contains(t, website.Home.Summary, "homepage")
	assert.Equal(t, "freight", website.Home.Keywords[0])

	require.NotNil(t, website.SocialMedia)
	assert.Equal(t, "https://www.linkedin.com/company/acme", website.SocialMedia.LinkedinURL)
	assert.Equal(t, "https://twitter.com/acme", website.SocialMedia.TwitterURL)

	assert.Nil(t, website.About)
	assert.Nil(t, website.Services)
	assert.Nil(t, website.Products)
	assert.Nil(t, website.Contact)

	assert.Equal(t, []string{
		"https://acme.test",
		"https://acme.test/about",
		"https://acme.test/about-us",
		"https://acme.test/services",
		"https://acme.test/products",
		"https://acme.test/contact",
	}, fetcher.Calls())
}

func TestPipeline_HomepageFailure(t *testing.T) {
	fetcher := newFakeFetcher(nil)

	website, linkedin, err := newTestPipeline(fetcher, nil, 1).Run(context.Background(), "https://acme.test")

	var fetchErr *repository.FetchError
	require.True(t, errors.As(err, &fetchErr))
	assert.Equal(t, "HTTP 404: Not Found", err.Error())
	assert.Nil(t, website)
	assert.Nil(t, linkedin)
	assert.Len(t, fetcher.Calls(), 1)
}

func TestPipeline_Subpages(t *testing.T) {
	pages := map[string]string{
		"https://acme.test": homepage,
		"https://acme.test/about": page("About",
			`<h1>About Acme Logistics</h1><h2>Acme</h2><p>Founded in 1998, our mission is to simplify logistics.</p>`),
		"https://acme.test/services": page("Services",
			`<h3>Ocean freight</h3><p>Full container loads.</p><p>We serve retail and energy.</p>`),
		"https://acme.test/products": page("Products",
			`<div class="product">Tracker</div><p>Live shipment tracking.</p>`),
		"https://acme.test/contact": page("Contact",
			`<p>Email hello@acme.test or call (555) 123-4567.</p>`),
	}

	for _, concurrency := range []int{1, 5} {
		website, _, err := newTestPipeline(newFakeFetcher(pages), nil, concurrency).
			Run(context.Background(), "https://acme.test")
		require.NoError(t, err)

		require.NotNil(t, website.About)
		assert.Equal(t, "Acme", website.About.CompanyName)
		assert.Equal(t, "1998", website.About.FoundingYear)
		assert.Contains(t, website.About.MissionStatement, "simplify logistics")
		assert.Contains(t, website.About.AboutSummary, "about")

		require.NotNil(t, website.Services)
		require.NotEmpty(t, website.Services.ServicesList)
		assert.Equal(t, entity.Offering{Title: "Ocean freight", Description: "Full container loads."}, website.Services.ServicesList[0])
		assert.Equal(t, []string{"retail", "energy"}, website.Services.IndustriesServed)
		assert.Contains(t, website.Services.ServicesSummary, "services")

		require.NotNil(t, website.Products)
		assert.Equal(t, "Tracker", website.Products.ProductsList[0].Title)

		require.NotNil(t, website.Contact)
		assert.Equal(t, []string{"hello@acme.test"}, website.Contact.EmailAddresses)
		assert.Equal(t, []string{"(555) 123-4567"}, website.Contact.PhoneNumbers)
	}
}

func TestPipeline_LaterPathOverridesEarlier(t *testing.T) {
	pages := map[string]string{
		"https://acme.test":          homepage,
		"https://acme.test/about":    page("About", `<p>Established 1990.</p>`),
		"https://acme.test/about-us": page("About us", `<p>Established 2001.</p>`),
	}

	for _, concurrency := range []int{1, 5} {
		website, _, err := newTestPipeline(newFakeFetcher(pages), nil, concurrency).
			Run(context.Background(), "https://acme.test")
		require.NoError(t, err)
		require.NotNil(t, website.About)
		assert.Equal(t, "2001", website.About.FoundingYear)
	}
}

func TestPipeline_ThinSubpageSkipped(t *testing.T) {
	pages := map[string]string{
		"https://acme.test":       homepage,
		"https://acme.test/about": `<html><body><p>Founded in 1998.</p></body></html>`,
	}

	website, _, err := newTestPipeline(newFakeFetcher(pages), nil, 1).Run(context.Background(), "https://acme.test")

	require.NoError(t, err)
	assert.Nil(t, website.About)
}

func TestPipeline_Enrichment(t *testing.T) {
	fetcher := newFakeFetcher(map[string]string{"https://acme.test": homepage})

	t.Run("provider data is attached", func(t *testing.T) {
		data := &entity.LinkedinData{Home: &entity.LinkedinHome{}}
		enricher := &fakeEnricher{data: data}

		_, linkedin, err := newTestPipeline(fetcher, enricher, 1).Run(context.Background(), "https://acme.test")

		require.NoError(t, err)
		assert.Same(t, data, linkedin)
		assert.Equal(t, "https://www.linkedin.com/company/acme", enricher.url.Load())
	})

	t.Run("provider errors mean absent data", func(t *testing.T) {
		enricher := &fakeEnricher{err: errors.New("blocked")}

		website, linkedin, err := newTestPipeline(fetcher, enricher, 1).Run(context.Background(), "https://acme.test")

		require.NoError(t, err)
		assert.NotNil(t, website)
		assert.Nil(t, linkedin)
	})

	t.Run("not called without a linkedin link", func(t *testing.T) {
		enricher := &fakeEnricher{}
		plain := newFakeFetcher(map[string]string{"https://plain.test": page("Plain", "<h1>Plain</h1>")})

		_, linkedin, err := newTestPipeline(plain, enricher, 1).Run(context.Background(), "https://plain.test")

		require.NoError(t, err)
		assert.Nil(t, linkedin)
		assert.Zero(t, enricher.calls.Load())
	})
}

func TestPipeline_InvalidURL(t *testing.T) {
	_, _, err := newTestPipeline(newFakeFetcher(nil), nil, 1).Run(context.Background(), "not a url")
	assert.Error(t, err)
}
