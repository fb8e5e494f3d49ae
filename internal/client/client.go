package client

import (
	"errors"
	"net/http"
	"net/url"
	"time"

	"github.com/Belphemur/AkwamProvider/internal/browser"
	"github.com/Belphemur/AkwamProvider/internal/cache"
	"github.com/Belphemur/AkwamProvider/internal/config"
	"github.com/Belphemur/AkwamProvider/internal/models"
	"github.com/Belphemur/AkwamProvider/internal/parser"
	"github.com/Belphemur/AkwamProvider/internal/provider"
	"github.com/Belphemur/AkwamProvider/internal/services"
)

var _ provider.Provider = (*Client)(nil)

// Client implements provider.Provider for Akwam
type Client struct {
	httpClient  *http.Client
	mainURL     string
	userAgent   string
	concurrency int

	pages    cache.Cache
	renderer browser.Renderer // nil when the browser fallback is disabled
	resolver services.LinkResolver

	listingParser *parser.CardParser
	searchParser  *parser.CardParser
	detailParser  parser.SingleResultParser[models.LoadResponse]
	linksParser   *parser.LinksParser
}

// zerologCacheLogger adapts the application logger to cache.Logger
type zerologCacheLogger struct{}

func (zerologCacheLogger) Error(msg string, err error) {
	logger := config.GetLogger()
	logger.Error().Err(err).Msg(msg)
}

// NewClient creates a new client instance with proxy, compression, retry, page
// cache and optional browser fallback configured from cfg
func NewClient(cfg *config.Config) *Client {
	logger := config.GetLogger()

	timeout := config.ParseDuration("client_timeout", cfg.ClientTimeout, 30*time.Second)

	// Clone DefaultTransport to keep its pooling and HTTP/2 settings
	baseTransport := http.DefaultTransport.(*http.Transport).Clone()
	if cfg.ProxyConnectionString != "" {
		proxyURL, err := url.Parse(cfg.ProxyConnectionString)
		if err != nil {
			logger.Warn().Err(err).Str("proxy", cfg.ProxyConnectionString).Msg("Invalid proxy URL, continuing without proxy")
		} else {
			baseTransport.Proxy = http.ProxyURL(proxyURL)
		}
	}

	transport := newRetryTransport(
		newCompressionTransport(baseTransport),
		cfg.Retry.MaxAttempts,
		config.ParseDuration("retry.delay", cfg.Retry.Delay, 500*time.Millisecond),
		config.ParseDuration("retry.max_delay", cfg.Retry.MaxDelay, 5*time.Second),
	)

	pages, err := cache.FromConfig(cfg, cache.PagesGroup, zerologCacheLogger{})
	if err != nil {
		logger.Warn().Err(err).Str("provider", cfg.Cache.Provider).Msg("Failed to create page cache, falling back to memory")
		pages, err = cache.New("memory", cache.ProviderConfig{Size: 500, TTL: 10 * time.Minute, Group: cache.PagesGroup})
		if err != nil {
			logger.Fatal().Err(err).Msg("Failed to create memory page cache")
		}
	}

	var renderer browser.Renderer
	if cfg.Browser.Enabled {
		renderer = browser.NewChromeRenderer(browser.Options{
			ExecPath:  cfg.Browser.ExecPath,
			UserAgent: cfg.UserAgent,
			Proxy:     cfg.ProxyConnectionString,
			Timeout:   config.ParseDuration("browser.timeout", cfg.Browser.Timeout, 45*time.Second),
		})
	}

	return newClient(
		&http.Client{Timeout: timeout, Transport: transport},
		cfg.MainURL, cfg.UserAgent, cfg.Links.Concurrency, pages, renderer,
	)
}

func newClient(httpClient *http.Client, mainURL, userAgent string, concurrency int, pages cache.Cache, renderer browser.Renderer) *Client {
	if concurrency <= 0 {
		concurrency = 1
	}
	c := &Client{
		httpClient:    httpClient,
		mainURL:       mainURL,
		userAgent:     userAgent,
		concurrency:   concurrency,
		pages:         pages,
		renderer:      renderer,
		listingParser: parser.NewListingParser(mainURL),
		searchParser:  parser.NewSearchParser(mainURL),
		detailParser:  parser.NewDetailParser(mainURL),
		linksParser:   parser.NewLinksParser(mainURL),
	}
	c.resolver = services.NewLinkResolver(c.fetchUncached, mainURL)
	return c
}

// Info describes the provider to the host
func (c *Client) Info() provider.Metadata {
	return provider.Metadata{
		Name:        models.ProviderName,
		Lang:        "ar",
		MainURL:     c.mainURL,
		HasMainPage: true,
		UsesWebView: c.renderer != nil,
		SupportedTypes: []models.TvType{
			models.TvTypeTvSeries,
			models.TvTypeMovie,
			models.TvTypeAnime,
			models.TvTypeCartoon,
		},
		MainPage: provider.MainPageOf(
			[2]string{c.mainURL + "/movies?page=", "Movies"},
			[2]string{c.mainURL + "/series?page=", "Series"},
			[2]string{c.mainURL + "/shows?page=", "Shows"},
		),
	}
}

// Close releases the page cache and shuts down the browser
func (c *Client) Close() error {
	var rendererErr error
	if c.renderer != nil {
		rendererErr = c.renderer.Close()
	}
	return errors.Join(rendererErr, c.pages.Close())
}
