package services

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/Belphemur/AkwamProvider/internal/apperrors"
	"github.com/Belphemur/AkwamProvider/internal/config"
	"github.com/Belphemur/AkwamProvider/internal/parser"

	lru "github.com/hashicorp/golang-lru/v2/expirable"
)

type resolvedEntry struct {
	directURL  string
	resolvedAt time.Time
}

// DefaultLinkResolver implements LinkResolver with an in-memory cache of resolved links
type DefaultLinkResolver struct {
	fetch    PageFetcher
	parser   *parser.UnlockParser
	resolved *lru.LRU[string, *resolvedEntry]
}

// NewLinkResolver creates a resolver that remembers up to 500 links for 30 minutes.
// Direct links carry signed tokens that expire, so the TTL is kept short.
func NewLinkResolver(fetch PageFetcher, baseURL string) *DefaultLinkResolver {
	return &DefaultLinkResolver{
		fetch:    fetch,
		parser:   parser.NewUnlockParser(baseURL),
		resolved: lru.NewLRU[string, *resolvedEntry](500, nil, 30*time.Minute),
	}
}

// Resolve follows the unlock page behind downloadURL
func (r *DefaultLinkResolver) Resolve(ctx context.Context, downloadURL string) (string, error) {
	logger := config.GetLogger()

	if cached, found := r.resolved.Get(downloadURL); found {
		logger.Debug().
			Str("url", downloadURL).
			Time("resolvedAt", cached.resolvedAt).
			Msg("Retrieved direct link from cache")
		return cached.directURL, nil
	}

	page, err := r.unlock(ctx, downloadURL)
	if err != nil {
		return "", err
	}

	if page.DirectURL == "" && page.NextURL != "" && page.NextURL != downloadURL {
		logger.Debug().
			Str("url", downloadURL).
			Str("next", page.NextURL).
			Msg("Following shortener hop")
		page, err = r.unlock(ctx, page.NextURL)
		if err != nil {
			return "", err
		}
	}

	if page.DirectURL == "" {
		return "", apperrors.NewNotFoundError("direct link", downloadURL)
	}

	r.resolved.Add(downloadURL, &resolvedEntry{directURL: page.DirectURL, resolvedAt: time.Now()})
	logger.Debug().
		Str("url", downloadURL).
		Str("direct", page.DirectURL).
		Msg("Resolved direct link")
	return page.DirectURL, nil
}

func (r *DefaultLinkResolver) unlock(ctx context.Context, url string) (*parser.UnlockPage, error) {
	body, err := r.fetch(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch unlock page %s: %w", url, err)
	}
	page, err := r.parser.ParseHtml(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to parse unlock page %s: %w", url, err)
	}
	return page, nil
}
