package testutil

import (
	"sync"

	"github.com/Belphemur/AkwamProvider/internal/models"
)

// LinkCollector records LoadLinks callbacks. Callbacks may be invoked from
// several goroutines. This is a test helper and should not be used in production code.
type LinkCollector struct {
	mu        sync.Mutex
	Links     []models.ExtractorLink
	Subtitles []models.SubtitleFile
}

// OnLink is a provider.LinkCallback
func (c *LinkCollector) OnLink(link models.ExtractorLink) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.Links = append(c.Links, link)
}

// OnSubtitle is a provider.SubtitleCallback
func (c *LinkCollector) OnSubtitle(sub models.SubtitleFile) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.Subtitles = append(c.Subtitles, sub)
}

// LinkURLs returns the URLs of the collected links keyed by URL
func (c *LinkCollector) LinkURLs() map[string]models.ExtractorLink {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make(map[string]models.ExtractorLink, len(c.Links))
	for _, l := range c.Links {
		out[l.URL] = l
	}
	return out
}
