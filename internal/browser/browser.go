// Package browser renders pages in headless Chrome when the site answers plain
// HTTP requests with an anti-bot challenge.
package browser

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Belphemur/AkwamProvider/internal/config"
	"github.com/Belphemur/AkwamProvider/internal/parser"

	"github.com/chromedp/chromedp"
)

// ErrStillChallenged is returned when the challenge did not clear before the timeout.
var ErrStillChallenged = errors.New("challenge still present after browser render")

// Renderer returns the fully rendered HTML of a page.
type Renderer interface {
	Render(ctx context.Context, url string) ([]byte, error)
	Close() error
}

// Options configures the Chrome instance.
type Options struct {
	ExecPath  string // empty lets chromedp find Chrome
	UserAgent string
	Proxy     string
	Timeout   time.Duration
	// PollInterval is how often the page is re-read while a challenge is showing.
	PollInterval time.Duration
}

// ChromeRenderer drives one shared headless Chrome process; every Render opens a tab.
type ChromeRenderer struct {
	allocCtx context.Context
	cancel   context.CancelFunc
	opts     Options
}

// NewChromeRenderer prepares the allocator. Chrome itself starts on the first Render.
func NewChromeRenderer(opts Options) *ChromeRenderer {
	if opts.Timeout <= 0 {
		opts.Timeout = 45 * time.Second
	}
	if opts.PollInterval <= 0 {
		opts.PollInterval = time.Second
	}

	allocOpts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.DisableGPU,
	)
	if opts.ExecPath != "" {
		allocOpts = append(allocOpts, chromedp.ExecPath(opts.ExecPath))
	}
	if opts.UserAgent != "" {
		allocOpts = append(allocOpts, chromedp.UserAgent(opts.UserAgent))
	}
	if opts.Proxy != "" {
		allocOpts = append(allocOpts, chromedp.ProxyServer(opts.Proxy))
	}

	allocCtx, cancel := chromedp.NewExecAllocator(context.Background(), allocOpts...)
	return &ChromeRenderer{allocCtx: allocCtx, cancel: cancel, opts: opts}
}

// Render navigates to url and waits until the page no longer looks like a challenge.
func (r *ChromeRenderer) Render(ctx context.Context, url string) ([]byte, error) {
	logger := config.GetLogger()

	tabCtx, cancelTab := chromedp.NewContext(r.allocCtx)
	defer cancelTab()
	taskCtx, cancelTask := context.WithTimeout(tabCtx, r.opts.Timeout)
	defer cancelTask()
	stop := context.AfterFunc(ctx, cancelTask)
	defer stop()

	if err := chromedp.Run(taskCtx,
		chromedp.Navigate(url),
		chromedp.WaitReady("body", chromedp.ByQuery),
	); err != nil {
		return nil, fmt.Errorf("failed to navigate to %s: %w", url, err)
	}

	var lastReason string
	for {
		var html string
		if err := chromedp.Run(taskCtx, chromedp.OuterHTML("html", &html, chromedp.ByQuery)); err != nil {
			switch {
			case ctx.Err() != nil:
				return nil, ctx.Err()
			case lastReason != "" && taskCtx.Err() != nil:
				return nil, fmt.Errorf("%w: %s", ErrStillChallenged, lastReason)
			}
			return nil, fmt.Errorf("failed to read rendered page %s: %w", url, err)
		}

		challenged, reason := parser.IsChallengePage([]byte(html))
		if !challenged {
			logger.Debug().Str("url", url).Int("bytes", len(html)).Msg("Browser rendered page")
			return []byte(html), nil
		}
		lastReason = reason
		logger.Debug().Str("url", url).Str("reason", reason).Msg("Challenge still showing, waiting")

		select {
		case <-taskCtx.Done():
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			return nil, fmt.Errorf("%w: %s", ErrStillChallenged, reason)
		case <-time.After(r.opts.PollInterval):
		}
	}
}

// Close shuts Chrome down.
func (r *ChromeRenderer) Close() error {
	r.cancel()
	return nil
}
