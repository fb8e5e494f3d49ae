package testutil

import (
	"fmt"
	"strings"
)

// CardOptions contains options for generating a listing card
type CardOptions struct {
	URL       string // empty omits the a.box anchor
	Title     string
	PosterURL string
	Year      string // raw badge text, empty omits the badge
}

// ActorOptions contains options for generating a cast entry
type ActorOptions struct {
	Name     string
	ImageURL string
}

// EpisodeOptions contains options for generating an episode box
type EpisodeOptions struct {
	URL      string
	Title    string
	ThumbURL string
	Date     string
}

// QualityTabOptions contains options for generating a download quality tab
type QualityTabOptions struct {
	TabID string   // e.g. "tab-5"
	Links []string // hrefs of the download anchors
	Label string   // anchor text, defaults to "تحميل"
}

// SubtitleTrackOptions contains options for generating a subtitle <track>
type SubtitleTrackOptions struct {
	Lang string
	URL  string
}

// DetailPageOptions contains options for generating a movie or series detail page
type DetailPageOptions struct {
	Title           string
	PosterURL       string
	Movie           bool
	YearText        string // e.g. "السنة : 2021"
	DurationText    string // e.g. "مدة الفيلم : 118 دقيقة"
	Plot            string
	RatingText      string // e.g. "10 / 7.5"
	Tags            []string
	Actors          []ActorOptions
	Recommendations []CardOptions
	Episodes        []EpisodeOptions
	QualityTabs     []QualityTabOptions
	Subtitles       []SubtitleTrackOptions
}

func writeCard(sb *strings.Builder, class string, card CardOptions) {
	fmt.Fprintf(sb, `
	<div class="%s">
		<div class="entry-box entry-box-1">
			<div class="entry-image">`, class)
	if card.URL != "" {
		fmt.Fprintf(sb, `
				<a href="%s" class="box">
					<picture><img src="/style/assets/images/placeholder.png" data-src="%s" alt="%s" class="lazy img-fluid"></picture>
				</a>`, card.URL, card.PosterURL, card.Title)
	}
	fmt.Fprintf(sb, `
			</div>
			<div class="entry-body px-3 pb-3 text-center">
				<h3 class="entry-title font-size-14 m-0"><a href="%s" class="text-white">%s</a></h3>`, card.URL, card.Title)
	if card.Year != "" {
		fmt.Fprintf(sb, `
				<span class="badge badge-pill badge-secondary ml-1">%s</span>`, card.Year)
	}
	sb.WriteString(`
			</div>
		</div>
	</div>`)
}

// GenerateListingHTML generates a /movies, /series or /shows listing page
func GenerateListingHTML(cards []CardOptions, hasNext bool) string {
	var sb strings.Builder
	sb.WriteString(`<html dir="rtl" lang="ar">
<head><title>أكوام</title></head>
<body>
<div class="container">
<div class="row">`)
	for _, card := range cards {
		writeCard(&sb, "col-lg-auto col-md-4 col-6 mb-12", card)
	}
	sb.WriteString(`
</div>
<ul class="pagination justify-content-center">
	<li class="page-item active"><span class="page-link">1</span></li>`)
	if hasNext {
		sb.WriteString(`
	<li class="page-item"><a class="page-link" href="?page=2" rel="next">&rsaquo;</a></li>`)
	}
	sb.WriteString(`
</ul>
</div>
</body>
</html>`)
	return sb.String()
}

// GenerateSearchHTML generates a /search results page
func GenerateSearchHTML(cards []CardOptions) string {
	var sb strings.Builder
	sb.WriteString(`<html dir="rtl" lang="ar">
<head><title>بحث</title></head>
<body>
<div class="widget-body row flex-wrap">`)
	for _, card := range cards {
		writeCard(&sb, "col-lg-auto", card)
	}
	sb.WriteString(`
</div>
</body>
</html>`)
	return sb.String()
}

// GenerateDetailHTML generates a movie, series or episode page
func GenerateDetailHTML(opts DetailPageOptions) string {
	var sb strings.Builder
	sb.WriteString(`<html dir="rtl" lang="ar">
<head><title>أكوام</title></head>
<body>
<div class="movie-cover">
	<div class="container">
		<div class="row">
			<div class="col-lg-3 col-md-4 text-center mb-5 mb-md-0">
				<a href="#"><picture>`)
	fmt.Fprintf(&sb, `<img src="%s" class="img-fluid" alt="%s">`, opts.PosterURL, opts.Title)
	sb.WriteString(`</picture></a>
			</div>
			<div class="col-lg-7 pr-lg-4 col-md-5 col-sm-8 mb-4 mb-sm-0 px-4 px-sm-0">`)
	fmt.Fprintf(&sb, `
				<h1 class="entry-title font-size-28 font-weight-bold text-white mb-0">%s</h1>`, opts.Title)
	if opts.RatingText != "" {
		fmt.Fprintf(&sb, `
				<div class="font-size-16 text-white mt-2 d-flex align-items-center"><img src="/imdb.png"><span class="mx-2">%s</span></div>`, opts.RatingText)
	}
	if opts.YearText != "" {
		fmt.Fprintf(&sb, `
				<div class="font-size-16 text-white mt-2"><span>%s</span></div>`, opts.YearText)
	}
	if opts.DurationText != "" {
		fmt.Fprintf(&sb, `
				<div class="font-size-16 text-white mt-2"><span>%s</span></div>`, opts.DurationText)
	}
	sb.WriteString(`
				<div class="font-size-16 d-flex align-items-center mt-3">`)
	for _, tag := range opts.Tags {
		fmt.Fprintf(&sb, `<a href="/movies?category=1" class="badge badge-pill badge-light ml-2">%s</a>`, tag)
	}
	sb.WriteString(`</div>
			</div>
		</div>
	</div>
</div>`)

	if opts.Movie {
		sb.WriteString(`
<div class="widget" id="downloads">
	<h2 class="header-title"><span>روابط التحميل والمشاهدة</span></h2>`)
	}
	writeQualityTabs(&sb, opts.QualityTabs)
	if opts.Movie {
		sb.WriteString(`
</div>`)
	}

	fmt.Fprintf(&sb, `
<div class="widget">
	<div class="widget-body">
		<h2>قصة العرض</h2>
		<div class="text-white"><p>%s</p></div>
	</div>
</div>`, opts.Plot)

	if len(opts.Actors) > 0 {
		sb.WriteString(`
<div class="widget">
	<div class="widget-body">
		<div class="d-flex">`)
		for _, actor := range opts.Actors {
			fmt.Fprintf(&sb, `
			<div class="entry-box entry-box-3"><a href="/person/1"><div class="entry-image"><img src="%s" alt=""></div><div class="entry-body"><div class="entry-title">%s</div></div></a></div>`, actor.ImageURL, actor.Name)
		}
		sb.WriteString(`
		</div>
	</div>
</div>`)
	}

	if len(opts.Episodes) > 0 {
		sb.WriteString(`
<div class="widget" id="series-episodes">
	<div class="row">`)
		for _, ep := range opts.Episodes {
			fmt.Fprintf(&sb, `
		<div class="bg-primary2 p-4 col-lg-4 col-md-6 col-12">
			<div class="d-flex">
				<a href="%s"><picture><img src="%s" class="img-fluid"></picture></a>
				<div class="mr-3">
					<h2 class="font-size-18"><a href="%s" class="text-white">%s</a></h2>
					<p class="entry-date font-size-14 m-0">%s</p>
				</div>
			</div>
		</div>`, ep.URL, ep.ThumbURL, ep.URL, ep.Title, ep.Date)
		}
		sb.WriteString(`
	</div>
</div>`)
	}

	if len(opts.Recommendations) > 0 {
		sb.WriteString(`
<div class="widget">
	<div class="widget-body">
		<div class="row">`)
		for _, rec := range opts.Recommendations {
			fmt.Fprintf(&sb, `
			<div class="col-lg-auto col-md-4 col-6">
				<div class="entry-box entry-box-1">
					<div class="entry-image"><a href="%s" class="box"><picture><img src="/placeholder.png" data-src="%s" alt="%s"></picture></a></div>
					<div class="entry-body px-3 pb-3 text-center"><h3 class="entry-title font-size-14 m-0"><a href="%s" class="text-white">%s</a></h3></div>
				</div>
			</div>`, rec.URL, rec.PosterURL, rec.Title, rec.URL, rec.Title)
		}
		sb.WriteString(`
		</div>
	</div>
</div>`)
	}

	if len(opts.Subtitles) > 0 {
		sb.WriteString(`
<video id="player" controls>`)
		for _, sub := range opts.Subtitles {
			if sub.Lang == "" {
				fmt.Fprintf(&sb, `
	<track kind="subtitles" src="%s">`, sub.URL)
				continue
			}
			fmt.Fprintf(&sb, `
	<track kind="subtitles" src="%s" srclang="%s">`, sub.URL, sub.Lang)
		}
		sb.WriteString(`
</video>`)
	}

	sb.WriteString(`
</body>
</html>`)
	return sb.String()
}

func writeQualityTabs(sb *strings.Builder, tabs []QualityTabOptions) {
	for _, tab := range tabs {
		label := tab.Label
		if label == "" {
			label = "تحميل"
		}
		fmt.Fprintf(sb, `
	<div class="tab-content quality" id="%s">
		<div class="row">
			<div class="col-lg-6"><a href="https://ak.sv/watch/1" class="link-btn link-show">مشاهدة</a></div>`, tab.TabID)
		for _, href := range tab.Links {
			fmt.Fprintf(sb, `
			<div class="col-lg-6"><a href="%s" class="link-btn link-download">%s</a></div>`, href, label)
		}
		sb.WriteString(`
		</div>
	</div>`)
	}
}

// GenerateUnlockHTML generates the intermediate download page. An empty directURL
// omits the loader button, an empty nextURL omits the shortener link.
func GenerateUnlockHTML(directURL, nextURL string) string {
	var sb strings.Builder
	sb.WriteString(`<html dir="rtl" lang="ar">
<head><title>تحميل</title></head>
<body>
<div class="content">`)
	if nextURL != "" {
		fmt.Fprintf(&sb, `
	<a href="%s" class="download-link">اضغط هنا</a>`, nextURL)
	}
	if directURL != "" {
		fmt.Fprintf(&sb, `
	<div class="btn-loader"><a href="%s" class="link btn btn-light" download>تحميل الملف</a></div>`, directURL)
	}
	sb.WriteString(`
</div>
</body>
</html>`)
	return sb.String()
}

// GenerateChallengeHTML generates a Cloudflare style interstitial page
func GenerateChallengeHTML() string {
	return `<html>
<head><title>Just a moment...</title></head>
<body>
<div id="cf-wrapper">
	<form id="challenge-form" action="/?__cf_chl_f_tk=abc" method="POST"></form>
</div>
</body>
</html>`
}
