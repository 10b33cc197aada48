package router

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/user/company-analyzer/internal/adapter/httpfetch"
	"github.com/user/company-analyzer/internal/adapter/linkedin"
	"github.com/user/company-analyzer/internal/adapter/memory"
	"github.com/user/company-analyzer/internal/delivery/http/handler"
	"github.com/user/company-analyzer/internal/entity"
	"github.com/user/company-analyzer/internal/usecase"
	"github.com/user/company-analyzer/pkg/config"
)

const aboutPage = `<html><head><title>About</title></head><body>
<h1>About Example</h1>
<p>Founded in 1998, our mission is to simplify logistics.</p>
<p>Our crews move freight for shippers of every size, with depots on both coasts and a fleet that runs day and night.</p>
</body></html>`

func newCompanySite(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/":
			w.Write([]byte(`<html><head><title>Example</title></head><body><h1>Example Logistics</h1>
				<a href="https://www.linkedin.com/company/example">LinkedIn</a></body></html>`))
		case "/about":
			w.Write([]byte(aboutPage))
		default:
			http.NotFound(w, r)
		}
	})
	site := httptest.NewServer(mux)
	t.Cleanup(site.Close)
	return site
}

func newAPI(t *testing.T, limit config.RateLimitConfig) *httptest.Server {
	t.Helper()
	logger := zap.NewNop()
	pipeline := usecase.NewPipeline(
		httpfetch.NewFetcher(nil),
		usecase.NewSummarizer(nil, 0, logger),
		linkedin.NewProvider(),
		usecase.PipelineConfig{},
		logger,
	)
	svc := usecase.NewAnalysisService(memory.NewJobRepo(), pipeline, logger)
	h := handler.NewHandler(svc, nil, logger)

	api := httptest.NewServer(New(h, Options{
		Logger:         logger,
		SubmitLimit:    limit,
		AllowedOrigins: []string{"https://ui.test"},
	}))
	t.Cleanup(api.Close)
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = svc.Wait(ctx)
	})
	return api
}

func submit(t *testing.T, api *httptest.Server, body string) (*http.Response, entity.AnalysisJob) {
	t.Helper()
	resp, err := http.Post(api.URL+"/api/analyze", "application/json", strings.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()

	var job entity.AnalysisJob
	if resp.StatusCode == http.StatusOK {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&job))
	}
	return resp, job
}

func getJob(t *testing.T, api *httptest.Server, id string) (int, entity.AnalysisJob) {
	t.Helper()
	resp, err := http.Get(api.URL + "/api/analysis/" + id)
	require.NoError(t, err)
	defer resp.Body.Close()

	var job entity.AnalysisJob
	if resp.StatusCode == http.StatusOK {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&job))
	}
	return resp.StatusCode, job
}

func TestRouter_AnalyzeEndToEnd(t *testing.T) {
	site := newCompanySite(t)
	api := newAPI(t, config.RateLimitConfig{})

	resp, job := submit(t, api, `{"url":"`+site.URL+`"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, entity.StatusPending, job.Status)
	assert.NotEmpty(t, job.ID)

	var final entity.AnalysisJob
	require.Eventually(t, func() bool {
		code, polled := getJob(t, api, job.ID)
		final = polled
		return code == http.StatusOK && polled.Status.IsTerminal()
	}, 10*time.Second, 50*time.Millisecond)

	assert.Equal(t, entity.StatusCompleted, final.Status)
	require.NotNil(t, final.WebsiteData)
	require.NotNil(t, final.WebsiteData.About)
	assert.Equal(t, "1998", final.WebsiteData.About.FoundingYear)
	assert.Contains(t, final.WebsiteData.About.MissionStatement, "simplify logistics")
	assert.Nil(t, final.WebsiteData.Services)
	assert.Nil(t, final.WebsiteData.Products)
	assert.Nil(t, final.WebsiteData.Contact)
	assert.Equal(t, "https://www.linkedin.com/company/example", final.WebsiteData.SocialMedia.LinkedinURL)
	assert.Nil(t, final.LinkedinData)

	// completed analyses are returned as-is
	resp, again := submit(t, api, `{"url":"`+site.URL+`"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, job.ID, again.ID)
	assert.Equal(t, entity.StatusCompleted, again.Status)
}

func TestRouter_Errors(t *testing.T) {
	api := newAPI(t, config.RateLimitConfig{})

	resp, _ := submit(t, api, `{"url":"not-a-url"}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	code, _ := getJob(t, api, "does-not-exist")
	assert.Equal(t, http.StatusNotFound, code)
}

func TestRouter_HomepageFailure(t *testing.T) {
	site := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer site.Close()
	api := newAPI(t, config.RateLimitConfig{})

	_, job := submit(t, api, `{"url":"`+site.URL+`"}`)
	require.Eventually(t, func() bool {
		_, polled := getJob(t, api, job.ID)
		return polled.Status.IsTerminal()
	}, 10*time.Second, 50*time.Millisecond)

	_, final := getJob(t, api, job.ID)
	assert.Equal(t, entity.StatusFailed, final.Status)
	require.NotNil(t, final.ErrorMessage)
	assert.Equal(t, "HTTP 500: Internal Server Error", *final.ErrorMessage)
	assert.Nil(t, final.WebsiteData)
}

func TestRouter_SubmitRateLimit(t *testing.T) {
	api := newAPI(t, config.RateLimitConfig{Requests: 1, Interval: time.Hour})

	resp, _ := submit(t, api, `{"url":"bad"}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, _ = submit(t, api, `{"url":"bad"}`)
	assert.Equal(t, http.StatusTooManyRequests, resp.StatusCode)

	code, _ := getJob(t, api, "anything")
	assert.Equal(t, http.StatusNotFound, code, "reads are not limited")
}

func TestRouter_CORSAndMetrics(t *testing.T) {
	api := newAPI(t, config.RateLimitConfig{})

	req, err := http.NewRequest(http.MethodOptions, api.URL+"/api/analyze", nil)
	require.NoError(t, err)
	req.Header.Set("Origin", "https://ui.test")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, "https://ui.test", resp.Header.Get("Access-Control-Allow-Origin"))

	resp, err = http.Get(api.URL + "/api/health")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err = http.Get(api.URL + "/metrics")
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	require.NoError(t, err)
	assert.Contains(t, string(body), "http_requests_total")
}
