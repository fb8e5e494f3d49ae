package parser

import (
	"fmt"
	"io"

	"github.com/Belphemur/AkwamProvider/internal/config"

	"github.com/PuerkitoBio/goquery"
)

// UnlockPage is the intermediate page between a quality tab and the file.
// DirectURL is the file itself; NextURL is the shortener hop shown when the
// page has not unlocked yet.
type UnlockPage struct {
	DirectURL string
	NextURL   string
}

// UnlockParser implements the SingleResultParser interface for download pages
type UnlockParser struct {
	baseURL string
}

// NewUnlockParser creates a new unlock page parser
func NewUnlockParser(baseURL string) *UnlockParser {
	return &UnlockParser{baseURL: baseURL}
}

// ParseHtml extracts the direct and next-hop links
func (p *UnlockParser) ParseHtml(body io.Reader) (*UnlockPage, error) {
	doc, err := goquery.NewDocumentFromReader(body)
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}

	page := &UnlockPage{
		DirectURL: FixURL(p.baseURL, doc.Find("div.btn-loader > a[href]").First().AttrOr("href", "")),
		NextURL:   FixURL(p.baseURL, firstAttr(doc.Find("a.download-link"), "href")),
	}
	logger := config.GetLogger()
	logger.Debug().
		Str("direct_url", page.DirectURL).
		Str("next_url", page.NextURL).
		Msg("Parsed unlock page")
	return page, nil
}
