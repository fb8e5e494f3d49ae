package models

import "time"

// ProviderName is the API name stamped on every record produced for Akwam
const ProviderName = "Akwam"

// TvType is the kind of content a listing or detail page describes
type TvType string

const (
	TvTypeMovie    TvType = "Movie"
	TvTypeTvSeries TvType = "TvSeries"
	TvTypeAnime    TvType = "Anime"
	TvTypeCartoon  TvType = "Cartoon"
)

// SearchResponse is a single listing card: a search hit, a main page item or a recommendation
type SearchResponse struct {
	Name      string `json:"name"`
	URL       string `json:"url"`
	APIName   string `json:"apiName"`
	Type      TvType `json:"type"`
	PosterURL string `json:"posterUrl,omitempty"`
	Year      int    `json:"year,omitempty"` // 0 when the card has no year badge
}

// MainPageRequest names one main page section; Data is the URL prefix the page number is appended to
type MainPageRequest struct {
	Name string `json:"name"`
	Data string `json:"data"`
}

// HomePageResponse is one page of a main page section
type HomePageResponse struct {
	Name    string           `json:"name"`
	Items   []SearchResponse `json:"items"`
	HasNext bool             `json:"hasNext"`
}

// Episode is one entry of a series episode list
type Episode struct {
	Name      string    `json:"name"`
	Data      string    `json:"data"` // episode page URL, passed back to LoadLinks
	Episode   int       `json:"episode,omitempty"`
	PosterURL string    `json:"posterUrl,omitempty"`
	Date      time.Time `json:"date,omitzero"`
}

// Actor is a cast member shown on a detail page
type Actor struct {
	Name     string `json:"name"`
	ImageURL string `json:"imageUrl"`
}

// LoadResponse is the full detail of a movie or series
type LoadResponse struct {
	Name            string           `json:"name"`
	URL             string           `json:"url"`
	APIName         string           `json:"apiName"`
	Type            TvType           `json:"type"`
	DataURL         string           `json:"dataUrl,omitempty"` // movies only: the page LoadLinks resolves
	PosterURL       string           `json:"posterUrl,omitempty"`
	Year            int              `json:"year,omitempty"`
	Plot            string           `json:"plot,omitempty"`
	Rating          int              `json:"rating,omitempty"`   // score out of 10, multiplied by 1000
	Duration        int              `json:"duration,omitempty"` // minutes
	Tags            []string         `json:"tags,omitempty"`
	Actors          []Actor          `json:"actors,omitempty"`
	Recommendations []SearchResponse `json:"recommendations,omitempty"`
	Episodes        []Episode        `json:"episodes,omitempty"`
}

// IsMovie reports whether the response describes a single movie rather than a series
func (r *LoadResponse) IsMovie() bool {
	return r.Type == TvTypeMovie
}
