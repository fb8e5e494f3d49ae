// Package provider defines the contract a media-aggregation host uses to talk to a
// content source. The shapes are dictated by the host; implementations only fill them.
package provider

import (
	"context"

	"github.com/Belphemur/AkwamProvider/internal/models"
)

// SubtitleCallback receives each subtitle track discovered while loading links.
type SubtitleCallback func(models.SubtitleFile)

// LinkCallback receives each playable link as soon as it is resolved.
type LinkCallback func(models.ExtractorLink)

// Metadata describes a provider to the host.
type Metadata struct {
	Name           string                   `json:"name"`
	Lang           string                   `json:"lang"`
	MainURL        string                   `json:"mainUrl"`
	HasMainPage    bool                     `json:"hasMainPage"`
	UsesWebView    bool                     `json:"usesWebView"`
	SupportedTypes []models.TvType          `json:"supportedTypes"`
	MainPage       []models.MainPageRequest `json:"mainPage"`
}

// Provider is the set of entry points the host invokes. Every call is independent;
// implementations hold no per-item state between calls.
type Provider interface {
	Info() Metadata

	// GetMainPage returns one page of the section described by request.
	GetMainPage(ctx context.Context, page int, request models.MainPageRequest) (*models.HomePageResponse, error)

	// Search returns the listing cards matching query.
	Search(ctx context.Context, query string) ([]models.SearchResponse, error)

	// Load returns the detail of the movie or series at url.
	Load(ctx context.Context, url string) (*models.LoadResponse, error)

	// LoadLinks resolves playable links for data (a movie or episode page URL) and
	// pushes them through the callbacks. It reports whether any link was delivered.
	LoadLinks(ctx context.Context, data string, isCasting bool, subtitleCallback SubtitleCallback, callback LinkCallback) (bool, error)

	// Close releases any resources held by the provider (cache connections, browser).
	Close() error
}

// MainPageOf builds the main page request list from (data, name) pairs, keeping their order.
func MainPageOf(pairs ...[2]string) []models.MainPageRequest {
	requests := make([]models.MainPageRequest, 0, len(pairs))
	for _, p := range pairs {
		requests = append(requests, models.MainPageRequest{Data: p[0], Name: p[1]})
	}
	return requests
}
