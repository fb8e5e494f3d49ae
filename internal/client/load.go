package client

import (
	"bytes"
	"context"
	"fmt"

	"github.com/Belphemur/AkwamProvider/internal/config"
	"github.com/Belphemur/AkwamProvider/internal/models"
)

// Load fetches a movie or series detail page. Unlike the listing calls there is
// no empty answer for a detail page, so every failure is returned.
func (c *Client) Load(ctx context.Context, url string) (*models.LoadResponse, error) {
	body, err := c.fetch(ctx, url)
	if err != nil {
		if recordFailure("load", url, err) == nil {
			return nil, fmt.Errorf("failed to load %s: %w", url, err)
		}
		return nil, err
	}

	resp, err := c.detailParser.ParseHtml(bytes.NewReader(body))
	if err != nil {
		err = fmt.Errorf("failed to parse detail page %s: %w", url, err)
		_ = recordFailure("load", url, err)
		return nil, err
	}

	resp.URL = url
	if resp.IsMovie() {
		resp.DataURL = url
	}

	logger := config.GetLogger()
	logger.Info().
		Str("url", url).
		Str("name", resp.Name).
		Str("type", string(resp.Type)).
		Int("episodes", len(resp.Episodes)).
		Msg("Loaded detail page")

	recordSuccess("load", false)
	return resp, nil
}
