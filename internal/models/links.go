package models

// ExtractorLink is a playable (or directly downloadable) video URL handed to the host
type ExtractorLink struct {
	Source  string  `json:"source"`
	Name    string  `json:"name"`
	URL     string  `json:"url"`
	Referer string  `json:"referer"`
	Quality Quality `json:"quality"`
	IsM3u8  bool    `json:"isM3u8"`
}

// SubtitleFile is an external subtitle track for a video
type SubtitleFile struct {
	Lang string `json:"lang"`
	URL  string `json:"url"`
}

// QualityLink is a download candidate found on a detail page, before its unlock page is resolved
type QualityLink struct {
	URL     string
	Quality Quality
}
