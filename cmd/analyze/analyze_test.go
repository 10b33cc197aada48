package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/user/company-analyzer/internal/entity"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetErr(&bytes.Buffer{})
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestRunCommand(t *testing.T) {
	t.Setenv("LOG_LEVEL", "error")
	t.Setenv("FETCH_MODE", "http")
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("GOOGLE_API_KEY", "")

	filler := strings.Repeat("We build reliable industrial software for manufacturing teams. ", 3)
	site := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		fmt.Fprintf(w, `<html><head><title>Acme Corp</title></head><body>
<h1>Acme</h1><p>%s</p><p>Write to hello@acme.test</p>
</body></html>`, filler)
	}))
	defer site.Close()

	out, err := execute(t, "run", site.URL)
	require.NoError(t, err)

	var job entity.AnalysisJob
	require.NoError(t, json.Unmarshal([]byte(out), &job))
	assert.Equal(t, entity.StatusCompleted, job.Status)
	require.NotNil(t, job.WebsiteData)
	require.NotNil(t, job.WebsiteData.Home)
	assert.Equal(t, "Acme Corp", job.WebsiteData.Home.PageTitle)
}

func TestRunCommand_InvalidURL(t *testing.T) {
	_, err := execute(t, "run", "not-a-url")
	assert.ErrorContains(t, err, "invalid URL")
}

func TestSubmitCommand_Wait(t *testing.T) {
	var polls atomic.Int32
	api := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		job := entity.NewAnalysisJob("job-1", "https://acme.test", time.Now())
		switch {
		case r.Method == http.MethodPost && r.URL.Path == "/api/analyze":
		case r.Method == http.MethodGet && r.URL.Path == "/api/analysis/job-1":
			if polls.Add(1) >= 2 {
				require.NoError(t, job.Fail("HTTP 404: Not Found"))
			}
		default:
			http.NotFound(w, r)
			return
		}
		_ = json.NewEncoder(w).Encode(job)
	}))
	defer api.Close()

	out, err := execute(t, "submit", "https://acme.test", "--server", api.URL, "--wait", "--interval", "10ms")
	require.NoError(t, err)

	var job entity.AnalysisJob
	require.NoError(t, json.Unmarshal([]byte(out), &job))
	assert.Equal(t, entity.StatusFailed, job.Status)
	require.NotNil(t, job.ErrorMessage)
	assert.Equal(t, "HTTP 404: Not Found", *job.ErrorMessage)
}

func TestSubmitCommand_ServerError(t *testing.T) {
	api := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"message":"Invalid URL: url is required"}`))
	}))
	defer api.Close()

	_, err := execute(t, "submit", "https://acme.test", "--server", api.URL)
	assert.ErrorContains(t, err, "Invalid URL")
}
