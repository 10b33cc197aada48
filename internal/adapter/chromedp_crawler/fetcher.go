package chromedp_crawler

import (
	"context"
	"sync"
	"time"

	"github.com/chromedp/cdproto/network"
	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
	"go.uber.org/zap"

	"github.com/user/company-analyzer/internal/repository"
)

const networkIdleEvent = "networkIdle"

// Fetcher renders pages in headless Chrome and returns the resulting DOM.
type Fetcher struct {
	allocCtx context.Context
	cancel   context.CancelFunc
	logger   *zap.Logger
}

// NewFetcher creates a headless fetcher. Extra allocator options are appended
// to the defaults, e.g. chromedp.ExecPath.
func NewFetcher(logger *zap.Logger, opts ...chromedp.ExecAllocatorOption) *Fetcher {
	allocOpts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.UserAgent(repository.UserAgent),
	)
	allocOpts = append(allocOpts, opts...)

	allocCtx, cancel := chromedp.NewExecAllocator(context.Background(), allocOpts...)
	return &Fetcher{
		allocCtx: allocCtx,
		cancel:   cancel,
		logger:   logger,
	}
}

// Close shuts down the browser allocator.
func (f *Fetcher) Close() {
	f.cancel()
}

// Fetch navigates to url, waits until the network is idle and returns the
// outer HTML of the document.
func (f *Fetcher) Fetch(ctx context.Context, url string, timeout time.Duration) (string, error) {
	tabCtx, cancelTab := chromedp.NewContext(f.allocCtx, chromedp.WithLogf(f.logger.Sugar().Debugf))
	defer cancelTab()
	stop := context.AfterFunc(ctx, cancelTab)
	defer stop()

	tabCtx, cancelTimeout := context.WithTimeout(tabCtx, timeout)
	defer cancelTimeout()

	var (
		mu       sync.Mutex
		status   int64
		idleOnce sync.Once
	)
	idle := make(chan struct{})

	chromedp.ListenTarget(tabCtx, func(ev interface{}) {
		switch e := ev.(type) {
		case *network.EventResponseReceived:
			if e.Type != network.ResourceTypeDocument || e.Response == nil {
				return
			}
			mu.Lock()
			if status == 0 {
				status = e.Response.Status
			}
			mu.Unlock()
		case *page.EventLifecycleEvent:
			if e.Name != networkIdleEvent {
				return
			}
			mu.Lock()
			seen := status != 0
			mu.Unlock()
			// about:blank goes idle before navigation starts
			if seen {
				idleOnce.Do(func() { close(idle) })
			}
		}
	})

	start := time.Now()
	err := chromedp.Run(tabCtx,
		network.Enable(),
		page.SetLifecycleEventsEnabled(true),
		chromedp.Navigate(url),
	)
	if err != nil {
		return "", &repository.FetchError{URL: url, Err: err}
	}

	select {
	case <-idle:
	case <-tabCtx.Done():
		return "", &repository.FetchError{URL: url, Err: tabCtx.Err()}
	}

	mu.Lock()
	code := int(status)
	mu.Unlock()
	if code < 200 || code > 299 {
		return "", &repository.FetchError{URL: url, StatusCode: code}
	}

	var html string
	if err := chromedp.Run(tabCtx, chromedp.OuterHTML("html", &html, chromedp.ByQuery)); err != nil {
		return "", &repository.FetchError{URL: url, Err: err}
	}

	f.logger.Debug("rendered page",
		zap.String("url", url),
		zap.Int("status", code),
		zap.Duration("elapsed", time.Since(start)),
	)
	return html, nil
}
