package parser

import (
	"fmt"
	"io"
	"strings"

	"github.com/Belphemur/AkwamProvider/internal/config"
	"github.com/Belphemur/AkwamProvider/internal/models"

	"github.com/PuerkitoBio/goquery"
)

const downloadLabel = "تحميل"

// DownloadPage holds everything LoadLinks needs from a movie or episode page
type DownloadPage struct {
	Links     []models.QualityLink
	Subtitles []models.SubtitleFile
}

// LinksParser extracts download candidates and subtitle tracks
type LinksParser struct {
	baseURL string
}

// NewLinksParser creates a new links parser
func NewLinksParser(baseURL string) *LinksParser {
	return &LinksParser{baseURL: baseURL}
}

// Parse reads the quality tabs of the page fetched from dataURL
func (p *LinksParser) Parse(body io.Reader, dataURL string) (*DownloadPage, error) {
	logger := config.GetLogger()

	doc, err := goquery.NewDocumentFromReader(body)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to parse HTML document")
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}

	page := &DownloadPage{}
	seen := make(map[string]struct{})

	doc.Find("div.tab-content.quality").Each(func(_ int, tab *goquery.Selection) {
		id, _ := IntFromText(tab.AttrOr("id", ""))
		quality := models.QualityFromID(id)

		tab.Find(".col-lg-6 > a").Each(func(_ int, a *goquery.Selection) {
			href := strings.TrimSpace(a.AttrOr("href", ""))
			if href == "" || !isDownloadAnchor(href, a.Text()) {
				return
			}
			u := BuildDownloadURL(p.baseURL, href, dataURL)
			if _, dup := seen[u]; dup {
				return
			}
			seen[u] = struct{}{}
			page.Links = append(page.Links, models.QualityLink{URL: u, Quality: quality})
			logger.Debug().Str("url", u).Str("quality", quality.String()).Msg("Found download candidate")
		})
	})

	page.Subtitles = p.extractSubtitles(doc)

	logger.Debug().
		Int("links", len(page.Links)).
		Int("subtitles", len(page.Subtitles)).
		Msg("Parsed download page")
	return page, nil
}

func isDownloadAnchor(href, text string) bool {
	lowerHref := strings.ToLower(href)
	lowerText := strings.ToLower(text)
	return strings.Contains(lowerHref, "download") ||
		strings.Contains(lowerHref, "/link/") ||
		strings.Contains(lowerText, "download") ||
		strings.Contains(text, downloadLabel)
}

// BuildDownloadURL turns a quality tab anchor into the unlock page address.
// Shortener hrefs (".../link/123") become "{base}/download/123/{last segment of dataURL}".
func BuildDownloadURL(baseURL, href, dataURL string) string {
	if strings.Contains(href, "/download/") {
		return FixURL(baseURL, href)
	}
	idx := strings.Index(href, "/link")
	if idx < 0 {
		return FixURL(baseURL, href)
	}
	path := href[idx+len("/link"):]
	trimmed := strings.TrimRight(dataURL, "/")
	contentID := trimmed[strings.LastIndex(trimmed, "/")+1:]
	return strings.TrimRight(baseURL, "/") + "/download" + path + "/" + contentID
}

func (p *LinksParser) extractSubtitles(doc *goquery.Document) []models.SubtitleFile {
	var subs []models.SubtitleFile
	seen := make(map[string]struct{})
	doc.Find("track[kind=subtitles]").Each(func(_ int, track *goquery.Selection) {
		src := FixURL(p.baseURL, track.AttrOr("src", ""))
		if src == "" {
			return
		}
		lang := strings.TrimSpace(track.AttrOr("srclang", ""))
		if lang == "" {
			lang = "ar"
		}
		key := lang + "|" + src
		if _, dup := seen[key]; dup {
			return
		}
		seen[key] = struct{}{}
		subs = append(subs, models.SubtitleFile{Lang: lang, URL: src})
	})
	return subs
}
