package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"sync"

	"github.com/Belphemur/AkwamProvider/internal/apperrors"
	"github.com/Belphemur/AkwamProvider/internal/client"
	"github.com/Belphemur/AkwamProvider/internal/config"
	"github.com/Belphemur/AkwamProvider/internal/models"
	"github.com/Belphemur/AkwamProvider/internal/provider"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const usage = `Usage: akwam [flags] <command> [args]

Commands:
  info                 print provider metadata
  main [section]       list a main page section (Movies, Series, Shows)
  search <query>       search the site
  load <url>           load a movie or series detail page
  links <url>          resolve playable links of a movie or episode page

Flags:
`

// flagBindings maps command line flags to configuration keys
var flagBindings = map[string]string{
	"main-url":       "main_url",
	"proxy":          "proxy_connection_string",
	"log-level":      "log_level",
	"timeout":        "client_timeout",
	"cache-provider": "cache.provider",
	"concurrency":    "links.concurrency",
	"browser":        "browser.enabled",
}

func newFlagSet(stderr io.Writer) *pflag.FlagSet {
	fs := pflag.NewFlagSet("akwam", pflag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.String("main-url", config.DefaultMainURL, "Akwam base URL")
	fs.String("proxy", "", "proxy connection string")
	fs.String("log-level", "warn", "log level")
	fs.String("timeout", "30s", "HTTP client timeout")
	fs.String("cache-provider", "memory", "page cache provider (memory or redis)")
	fs.Int("concurrency", 4, "concurrent link resolutions")
	fs.Bool("browser", false, "render anti-bot challenges in headless Chrome")
	fs.Int("page", 1, "page number for the main command")
	fs.Bool("casting", false, "request links for casting")
	fs.Usage = func() {
		fmt.Fprint(stderr, usage)
		fs.PrintDefaults()
	}
	return fs
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	fs := newFlagSet(stderr)
	if err := fs.Parse(args); err != nil {
		return err
	}

	// Only flags set explicitly override the config file and environment
	for flag, key := range flagBindings {
		if fs.Changed(flag) {
			if err := viper.BindPFlag(key, fs.Lookup(flag)); err != nil {
				return fmt.Errorf("failed to bind flag %s: %w", flag, err)
			}
		}
	}
	cfg, err := config.Reload()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	rest := fs.Args()
	if len(rest) == 0 {
		fs.Usage()
		return errors.New("missing command")
	}

	akwam := client.NewClient(cfg)
	defer akwam.Close()

	result, err := dispatch(ctx, akwam, fs, rest[0], rest[1:])
	if err != nil {
		return err
	}

	enc := json.NewEncoder(stdout)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(result)
}

func dispatch(ctx context.Context, p provider.Provider, fs *pflag.FlagSet, command string, args []string) (any, error) {
	switch command {
	case "info":
		return p.Info(), nil

	case "main":
		request, err := findSection(p.Info().MainPage, args)
		if err != nil {
			return nil, err
		}
		page, _ := fs.GetInt("page")
		return p.GetMainPage(ctx, page, request)

	case "search":
		if len(args) == 0 {
			return nil, errors.New("search needs a query")
		}
		return p.Search(ctx, strings.Join(args, " "))

	case "load":
		if len(args) != 1 {
			return nil, errors.New("load needs a url")
		}
		return p.Load(ctx, args[0])

	case "links":
		if len(args) != 1 {
			return nil, errors.New("links needs a url")
		}
		casting, _ := fs.GetBool("casting")
		return collectLinks(ctx, p, args[0], casting)

	default:
		return nil, fmt.Errorf("unknown command %q", command)
	}
}

func findSection(sections []models.MainPageRequest, args []string) (models.MainPageRequest, error) {
	if len(sections) == 0 {
		return models.MainPageRequest{}, errors.New("provider has no main page")
	}
	if len(args) == 0 {
		return sections[0], nil
	}
	for _, s := range sections {
		if strings.EqualFold(s.Name, args[0]) {
			return s, nil
		}
	}
	return models.MainPageRequest{}, fmt.Errorf("unknown section %q", args[0])
}

type linksResult struct {
	Found     bool                   `json:"found"`
	Links     []models.ExtractorLink `json:"links"`
	Subtitles []models.SubtitleFile  `json:"subtitles"`
}

func collectLinks(ctx context.Context, p provider.Provider, data string, casting bool) (*linksResult, error) {
	var mu sync.Mutex
	result := &linksResult{Links: []models.ExtractorLink{}, Subtitles: []models.SubtitleFile{}}
	found, err := p.LoadLinks(ctx, data, casting,
		func(sub models.SubtitleFile) {
			mu.Lock()
			defer mu.Unlock()
			result.Subtitles = append(result.Subtitles, sub)
		},
		func(link models.ExtractorLink) {
			mu.Lock()
			defer mu.Unlock()
			result.Links = append(result.Links, link)
		},
	)
	if err != nil {
		return nil, err
	}
	result.Found = found
	return result, nil
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return
		}
		if errors.Is(err, &apperrors.ErrBlocked{}) {
			fmt.Fprintln(os.Stderr, "akwam: blocked by an anti-bot challenge, retry with --browser")
		} else {
			fmt.Fprintln(os.Stderr, "akwam:", err)
		}
		stop()
		os.Exit(1)
	}
}
