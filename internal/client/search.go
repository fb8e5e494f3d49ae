package client

import (
	"bytes"
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/Belphemur/AkwamProvider/internal/config"
	"github.com/Belphemur/AkwamProvider/internal/models"
)

// Search queries the site search page
func (c *Client) Search(ctx context.Context, query string) ([]models.SearchResponse, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return []models.SearchResponse{}, nil
	}
	searchURL := c.mainURL + "/search?q=" + url.QueryEscape(query)

	body, err := c.fetch(ctx, searchURL)
	if err != nil {
		return []models.SearchResponse{}, recordFailure("search", searchURL, err)
	}

	results, err := c.searchParser.ParseHtml(bytes.NewReader(body))
	if err != nil {
		return []models.SearchResponse{}, recordFailure("search", searchURL, fmt.Errorf("failed to parse search results: %w", err))
	}

	logger := config.GetLogger()
	logger.Info().Str("query", query).Int("results", len(results)).Msg("Search completed")

	recordSuccess("search", len(results) == 0)
	return results, nil
}
