package client

import (
	"bytes"
	"context"
	"fmt"
	"strconv"

	"github.com/Belphemur/AkwamProvider/internal/config"
	"github.com/Belphemur/AkwamProvider/internal/models"
)

// GetMainPage fetches page number page of a main page section
func (c *Client) GetMainPage(ctx context.Context, page int, request models.MainPageRequest) (*models.HomePageResponse, error) {
	url := request.Data + strconv.Itoa(page)
	empty := &models.HomePageResponse{Name: request.Name, Items: []models.SearchResponse{}}

	body, err := c.fetch(ctx, url)
	if err != nil {
		return empty, recordFailure("main_page", url, err)
	}

	listing, err := c.listingParser.ParseListing(bytes.NewReader(body))
	if err != nil {
		return empty, recordFailure("main_page", url, fmt.Errorf("failed to parse listing: %w", err))
	}

	logger := config.GetLogger()
	logger.Info().
		Str("section", request.Name).
		Int("page", page).
		Int("items", len(listing.Items)).
		Msg("Loaded main page")

	recordSuccess("main_page", len(listing.Items) == 0)
	return &models.HomePageResponse{
		Name:    request.Name,
		Items:   listing.Items,
		HasNext: listing.HasNext,
	}, nil
}
