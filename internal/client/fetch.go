package client

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/Belphemur/AkwamProvider/internal/apperrors"
	"github.com/Belphemur/AkwamProvider/internal/config"
	"github.com/Belphemur/AkwamProvider/internal/metrics"
	"github.com/Belphemur/AkwamProvider/internal/parser"
)

// maxBodySize caps how much of a page is read. Akwam pages are well under 1 MiB.
const maxBodySize = 8 << 20

// fetch returns the UTF-8 body of url, serving and filling the page cache
func (c *Client) fetch(ctx context.Context, url string) ([]byte, error) {
	if body, ok := c.pages.Get(ctx, url); ok {
		logger := config.GetLogger()
		logger.Debug().Str("url", url).Msg("Page served from cache")
		return body, nil
	}

	body, err := c.fetchUncached(ctx, url)
	if err != nil {
		return nil, err
	}
	c.pages.Set(ctx, url, body)
	return body, nil
}

// fetchUncached GETs url. 404 maps to ErrNotFound; an anti-bot page is handed
// to the browser renderer when one is configured, otherwise it maps to ErrBlocked.
func (c *Client) fetchUncached(ctx context.Context, url string) ([]byte, error) {
	logger := config.GetLogger()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "ar,en-US;q=0.7,en;q=0.3")
	req.Header.Set("Referer", c.mainURL+"/")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		metrics.ObserveFetch("error", start)
		return nil, fmt.Errorf("failed to fetch %s: %w", url, err)
	}
	defer resp.Body.Close()
	metrics.ObserveFetch(strconv.Itoa(resp.StatusCode), start)

	logger.Debug().Str("url", url).Int("status", resp.StatusCode).Msg("Fetched page")

	if resp.StatusCode == http.StatusNotFound {
		return nil, apperrors.NewPageNotFoundError(url)
	}

	utf8Body, err := parser.NewUTF8Reader(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, fmt.Errorf("failed to decode body of %s: %w", url, err)
	}
	body, err := io.ReadAll(utf8Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read body of %s: %w", url, err)
	}

	if challenged, reason := parser.IsChallengePage(body); challenged {
		return c.bypassChallenge(ctx, url, reason)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, &statusError{StatusCode: resp.StatusCode}
	}
	return body, nil
}

func (c *Client) bypassChallenge(ctx context.Context, url, reason string) ([]byte, error) {
	logger := config.GetLogger()

	if c.renderer == nil {
		metrics.ChallengesTotal.WithLabelValues("blocked").Inc()
		logger.Warn().Str("url", url).Str("reason", reason).Msg("Anti-bot challenge detected and browser fallback disabled")
		return nil, apperrors.NewBlockedError(url, reason)
	}

	logger.Info().Str("url", url).Str("reason", reason).Msg("Anti-bot challenge detected, rendering in browser")
	body, err := c.renderer.Render(ctx, url)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		metrics.ChallengesTotal.WithLabelValues("blocked").Inc()
		logger.Warn().Err(err).Str("url", url).Msg("Browser could not clear the challenge")
		return nil, apperrors.NewBlockedError(url, reason)
	}

	metrics.ChallengesTotal.WithLabelValues("rendered").Inc()
	return body, nil
}
