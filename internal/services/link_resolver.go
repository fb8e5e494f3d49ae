package services

import "context"

// LinkResolver turns a download page address into the direct file URL
type LinkResolver interface {
	// Resolve follows the unlock page (and at most one shortener hop) behind downloadURL
	Resolve(ctx context.Context, downloadURL string) (string, error)
}

// PageFetcher returns the UTF-8 body of a page
type PageFetcher func(ctx context.Context, url string) ([]byte, error)
