package client

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/Belphemur/AkwamProvider/internal/apperrors"
	"github.com/Belphemur/AkwamProvider/internal/config"
	"github.com/Belphemur/AkwamProvider/internal/errorreport"
	"github.com/Belphemur/AkwamProvider/internal/metrics"
	"github.com/Belphemur/AkwamProvider/internal/models"
	"github.com/Belphemur/AkwamProvider/internal/provider"

	"golang.org/x/sync/errgroup"
)

// LoadLinks resolves every download candidate of the movie or episode page at
// data and pushes the direct links to callback. Subtitle tracks are pushed once
// each. It reports whether at least one link was delivered. Candidates that fail
// to resolve are logged and skipped; when every candidate was blocked the
// blocked signal is returned.
func (c *Client) LoadLinks(ctx context.Context, data string, isCasting bool, subtitleCallback provider.SubtitleCallback, callback provider.LinkCallback) (bool, error) {
	logger := config.GetLogger()

	body, err := c.fetch(ctx, data)
	if err != nil {
		return false, recordFailure("load_links", data, err)
	}

	page, err := c.linksParser.Parse(bytes.NewReader(body), data)
	if err != nil {
		return false, recordFailure("load_links", data, fmt.Errorf("failed to parse download page: %w", err))
	}

	logger.Info().
		Str("url", data).
		Bool("casting", isCasting).
		Int("candidates", len(page.Links)).
		Int("subtitles", len(page.Subtitles)).
		Msg("Resolving links")

	// callbacks are serialized so hosts need no locking of their own
	var emitMu sync.Mutex
	if subtitleCallback != nil {
		for _, sub := range page.Subtitles {
			subtitleCallback(sub)
		}
	}

	var (
		emitted    int
		blockedErr error
	)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.concurrency)
	for _, candidate := range page.Links {
		g.Go(func() error {
			direct, err := c.resolver.Resolve(gctx, candidate.URL)
			if err != nil {
				if ctx.Err() != nil {
					return ctx.Err()
				}
				logger.Warn().
					Err(err).
					Str("candidate", candidate.URL).
					Str("quality", candidate.Quality.String()).
					Msg("Skipping download candidate")
				emitMu.Lock()
				if blockedErr == nil && errors.Is(err, &apperrors.ErrBlocked{}) {
					blockedErr = err
				}
				emitMu.Unlock()
				errorreport.Capture(err, map[string]string{"operation": "load_links", "url": candidate.URL})
				return nil
			}

			link := models.ExtractorLink{
				Source:  models.ProviderName,
				Name:    models.ProviderName,
				URL:     direct,
				Referer: c.mainURL,
				Quality: candidate.Quality,
				IsM3u8:  strings.Contains(strings.ToLower(direct), ".m3u8"),
			}

			emitMu.Lock()
			defer emitMu.Unlock()
			if callback != nil {
				callback(link)
			}
			emitted++
			metrics.ExtractedLinksTotal.WithLabelValues(candidate.Quality.String()).Inc()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return emitted > 0, recordFailure("load_links", data, err)
	}

	if emitted == 0 && blockedErr != nil {
		return false, recordFailure("load_links", data, blockedErr)
	}

	logger.Info().Str("url", data).Int("links", emitted).Msg("Resolved links")
	recordSuccess("load_links", emitted == 0)
	return emitted > 0, nil
}
