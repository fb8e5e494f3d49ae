package parser

import (
	"fmt"
	"io"
	"strings"

	"github.com/Belphemur/AkwamProvider/internal/config"
	"github.com/Belphemur/AkwamProvider/internal/models"

	"github.com/PuerkitoBio/goquery"
)

const (
	infoLineSelector = "div.font-size-16.text-white.mt-2"
	yearLabel        = "السنة"
	durationLabel    = "مدة الفيلم"
)

// DetailParser implements the SingleResultParser interface for movie and series pages
type DetailParser struct {
	baseURL string
}

// NewDetailParser creates a new detail page parser
func NewDetailParser(baseURL string) *DetailParser {
	return &DetailParser{baseURL: baseURL}
}

// ParseHtml parses a detail page. URL and DataURL are left for the caller, who
// knows which address was fetched.
func (p *DetailParser) ParseHtml(body io.Reader) (*models.LoadResponse, error) {
	logger := config.GetLogger()

	doc, err := goquery.NewDocumentFromReader(body)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to parse HTML document")
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}

	resp := &models.LoadResponse{
		Name:      joinedText(doc.Find("h1.entry-title")),
		APIName:   models.ProviderName,
		Type:      models.TvTypeTvSeries,
		PosterURL: FixURL(p.baseURL, firstAttr(doc.Find("picture > img"), "src")),
		Plot:      joinedText(doc.Find("div.widget-body p:first-child")),
		Rating:    RatingFromText(joinedText(doc.Find("span.mx-2"))),
	}
	if doc.Find("#downloads > h2 > span").Length() > 0 {
		resp.Type = models.TvTypeMovie
	}

	if year, ok := p.infoLineInt(doc, yearLabel); ok {
		resp.Year = year
	}
	if duration, ok := p.infoLineInt(doc, durationLabel); ok {
		resp.Duration = duration
	}

	doc.Find("div.font-size-16.d-flex.align-items-center.mt-3 > a").Each(func(_ int, a *goquery.Selection) {
		if tag := strings.TrimSpace(a.Text()); tag != "" {
			resp.Tags = append(resp.Tags, tag)
		}
	})

	resp.Actors = p.extractActors(doc)
	resp.Recommendations = p.extractRecommendations(doc)
	if !resp.IsMovie() {
		resp.Episodes = p.extractEpisodes(doc)
	}

	logger.Debug().
		Str("name", resp.Name).
		Str("type", string(resp.Type)).
		Int("year", resp.Year).
		Int("actors", len(resp.Actors)).
		Int("recommendations", len(resp.Recommendations)).
		Int("episodes", len(resp.Episodes)).
		Msg("Parsed detail page")
	return resp, nil
}

func (p *DetailParser) infoLineInt(doc *goquery.Document, label string) (int, bool) {
	var text string
	doc.Find(infoLineSelector).EachWithBreak(func(_ int, s *goquery.Selection) bool {
		if t := s.Text(); strings.Contains(t, label) {
			text = t
			return false
		}
		return true
	})
	if text == "" {
		return 0, false
	}
	return IntFromText(text)
}

func (p *DetailParser) extractActors(doc *goquery.Document) []models.Actor {
	var actors []models.Actor
	doc.Find("div.widget-body > div > div.entry-box > a").Each(func(_ int, a *goquery.Selection) {
		nameSel := a.Find("div > .entry-title").First()
		imgSel := a.Find("div > img").First()
		if nameSel.Length() == 0 || imgSel.Length() == 0 {
			return
		}
		actors = append(actors, models.Actor{
			Name:     strings.TrimSpace(nameSel.Text()),
			ImageURL: FixURL(p.baseURL, imgSel.AttrOr("src", "")),
		})
	})
	return actors
}

func (p *DetailParser) extractRecommendations(doc *goquery.Document) []models.SearchResponse {
	var recs []models.SearchResponse
	doc.Find("div > div.widget-body > div.row > div > div.entry-box").Each(func(_ int, box *goquery.Selection) {
		title := box.Find("div.entry-body > .entry-title > .text-white").First()
		if title.Length() == 0 {
			return
		}
		href, ok := title.Attr("href")
		if !ok || strings.TrimSpace(href) == "" {
			return
		}
		poster, ok := box.Find(".entry-image > a > picture > img").First().Attr("data-src")
		if !ok {
			return
		}
		recs = append(recs, models.SearchResponse{
			Name:      strings.TrimSpace(title.Text()),
			URL:       FixURL(p.baseURL, href),
			APIName:   models.ProviderName,
			Type:      models.TvTypeMovie,
			PosterURL: FixURL(p.baseURL, poster),
		})
	})
	return recs
}

func (p *DetailParser) extractEpisodes(doc *goquery.Document) []models.Episode {
	logger := config.GetLogger()

	var episodes []models.Episode
	var numbered []bool
	doc.Find("div.bg-primary2.p-4.col-lg-4.col-md-6.col-12").Each(func(i int, box *goquery.Selection) {
		a := box.Find("a.text-white")
		href := firstAttr(a, "href")
		if href == "" {
			logger.Debug().Int("episode_box", i).Msg("Episode box without link")
			return
		}
		title := joinedText(a)
		number, ok := IntFromText(title)
		episodes = append(episodes, models.Episode{
			Name:      title,
			Data:      FixURL(p.baseURL, href),
			Episode:   number,
			PosterURL: FixURL(p.baseURL, firstAttr(box.Find("picture > img"), "src")),
			Date:      DateFromText(box.Find("p.entry-date").Text()),
		})
		numbered = append(numbered, ok)
	})

	if len(episodes) == 0 {
		return episodes
	}

	// The site lists newest first. Unknown numbers default to last=1, first=0 so
	// an unnumbered list keeps its order.
	last, first := 1, 0
	if numbered[len(numbered)-1] {
		last = episodes[len(episodes)-1].Episode
	}
	if numbered[0] {
		first = episodes[0].Episode
	}
	if last < first {
		for i, j := 0, len(episodes)-1; i < j; i, j = i+1, j-1 {
			episodes[i], episodes[j] = episodes[j], episodes[i]
		}
	}
	return episodes
}
