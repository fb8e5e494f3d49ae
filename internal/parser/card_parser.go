package parser

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/Belphemur/AkwamProvider/internal/config"
	"github.com/Belphemur/AkwamProvider/internal/models"

	"github.com/PuerkitoBio/goquery"
)

const (
	listingCardSelector = "div.col-lg-auto.col-md-4.col-6.mb-12"
	searchCardSelector  = "div.col-lg-auto"
)

// ListingPage is the result of parsing one page of a catalog section
type ListingPage struct {
	Items   []models.SearchResponse
	HasNext bool
}

// CardParser implements the Parser interface for Akwam listing and search cards
type CardParser struct {
	baseURL  string
	selector string
}

// NewListingParser creates a parser for the /movies, /series and /shows sections
func NewListingParser(baseURL string) *CardParser {
	return &CardParser{baseURL: baseURL, selector: listingCardSelector}
}

// NewSearchParser creates a parser for the /search results page
func NewSearchParser(baseURL string) *CardParser {
	return &CardParser{baseURL: baseURL, selector: searchCardSelector}
}

// ParseHtml parses the HTML response and extracts the cards
func (p *CardParser) ParseHtml(body io.Reader) ([]models.SearchResponse, error) {
	page, err := p.ParseListing(body)
	if err != nil {
		return nil, err
	}
	return page.Items, nil
}

// ParseListing extracts the cards and whether a next page exists
func (p *CardParser) ParseListing(body io.Reader) (*ListingPage, error) {
	logger := config.GetLogger()

	doc, err := goquery.NewDocumentFromReader(body)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to parse HTML document")
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}

	page := &ListingPage{Items: []models.SearchResponse{}}
	seen := make(map[string]struct{})

	doc.Find(p.selector).Each(func(i int, card *goquery.Selection) {
		item := p.extractCard(card)
		if item == nil {
			logger.Debug().Int("card", i).Msg("Skipping card")
			return
		}
		// nested wrappers match the loose search selector more than once
		if _, dup := seen[item.URL]; dup {
			return
		}
		seen[item.URL] = struct{}{}
		page.Items = append(page.Items, *item)
	})

	page.HasNext = doc.Find(`.pagination a[rel="next"]`).Length() > 0

	logger.Debug().
		Str("selector", p.selector).
		Int("items", len(page.Items)).
		Bool("has_next", page.HasNext).
		Msg("Parsed card listing")
	return page, nil
}

func (p *CardParser) extractCard(card *goquery.Selection) *models.SearchResponse {
	href := firstAttr(card.Find("a.box"), "href")
	if href == "" {
		return nil
	}
	if strings.Contains(href, "/games/") || strings.Contains(href, "/programs/") {
		logger := config.GetLogger()
		logger.Debug().Str("href", href).Msg("Ignoring non video card")
		return nil
	}

	img := card.Find("picture > img")
	title := strings.TrimSpace(img.First().AttrOr("alt", ""))
	if title == "" {
		title = joinedText(card.Find(".entry-title").First())
	}

	poster := firstAttr(img, "data-src")
	if poster == "" {
		poster = firstAttr(img, "src")
	}

	year := 0
	if badge := NormalizeText(card.Find(".badge-secondary").First().Text()); badge != "" {
		if y, err := strconv.Atoi(badge); err == nil {
			year = y
		}
	}

	url := FixURL(p.baseURL, href)
	return &models.SearchResponse{
		Name:      title,
		URL:       url,
		APIName:   models.ProviderName,
		Type:      TypeFromURL(url),
		PosterURL: FixURL(p.baseURL, poster),
		Year:      year,
	}
}

// TypeFromURL infers the content type from an Akwam URL path
func TypeFromURL(u string) models.TvType {
	if strings.Contains(u, "/movie/") {
		return models.TvTypeMovie
	}
	return models.TvTypeTvSeries
}
