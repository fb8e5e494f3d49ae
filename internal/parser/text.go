package parser

import (
	"math"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	intRegex     = regexp.MustCompile(`\d+`)
	decimalRegex = regexp.MustCompile(`\d+(?:\.\d+)?`)
	dateRegex    = regexp.MustCompile(`(\d{1,4})[-/. ](\d{1,2})[-/. ](\d{1,4})`)
)

// asciiDigits maps Arabic-Indic and extended (Persian) digits to ASCII and the
// Arabic decimal separator to a dot.
func asciiDigits(r rune) rune {
	switch {
	case r >= '٠' && r <= '٩':
		return '0' + (r - '٠')
	case r >= '۰' && r <= '۹':
		return '0' + (r - '۰')
	case r == '٫':
		return '.'
	}
	return r
}

// NormalizeText applies NFKC, converts Arabic digits to ASCII and collapses whitespace.
func NormalizeText(s string) string {
	out, _, err := transform.String(transform.Chain(norm.NFKC, runes.Map(asciiDigits)), s)
	if err != nil {
		out = s
	}
	return strings.Join(strings.Fields(out), " ")
}

// IntFromText returns the first run of digits in s.
func IntFromText(s string) (int, bool) {
	match := intRegex.FindString(NormalizeText(s))
	if match == "" {
		return 0, false
	}
	n, err := strconv.Atoi(match)
	if err != nil {
		return 0, false
	}
	return n, true
}

// RatingFromText parses a "x / y" rating block. The last "/" separated part is
// the score; the result is score*1000, or 0 when no number is present.
func RatingFromText(s string) int {
	parts := strings.Split(NormalizeText(s), "/")
	match := decimalRegex.FindString(parts[len(parts)-1])
	if match == "" {
		return 0
	}
	score, err := strconv.ParseFloat(match, 64)
	if err != nil {
		return 0
	}
	return int(math.Round(score * 1000))
}

// DateFromText finds a numeric date in s. A four digit first field is read as
// year-month-day, anything else as day-month-year.
func DateFromText(s string) time.Time {
	m := dateRegex.FindStringSubmatch(NormalizeText(s))
	if m == nil {
		return time.Time{}
	}
	a, _ := strconv.Atoi(m[1])
	month, _ := strconv.Atoi(m[2])
	c, _ := strconv.Atoi(m[3])

	year, day := c, a
	if len(m[1]) == 4 {
		year, day = a, c
	}
	if year < 1900 || month < 1 || month > 12 || day < 1 || day > 31 {
		return time.Time{}
	}
	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if t.Day() != day {
		return time.Time{}
	}
	return t
}

// FixURL resolves href against base. Empty input stays empty and unparsable
// input is returned unchanged.
func FixURL(base, href string) string {
	href = strings.TrimSpace(href)
	if href == "" {
		return ""
	}
	ref, err := url.Parse(href)
	if err != nil {
		return href
	}
	if ref.IsAbs() {
		return href
	}
	baseURL, err := url.Parse(base)
	if err != nil {
		return href
	}
	return baseURL.ResolveReference(ref).String()
}

// firstAttr returns the attribute of the first element in sel that carries it.
func firstAttr(sel *goquery.Selection, attr string) string {
	var value string
	sel.EachWithBreak(func(_ int, s *goquery.Selection) bool {
		if v, ok := s.Attr(attr); ok && strings.TrimSpace(v) != "" {
			value = strings.TrimSpace(v)
			return false
		}
		return true
	})
	return value
}

// joinedText returns the trimmed text of every element in sel joined by a space.
func joinedText(sel *goquery.Selection) string {
	parts := make([]string, 0, sel.Length())
	sel.Each(func(_ int, s *goquery.Selection) {
		if t := strings.TrimSpace(s.Text()); t != "" {
			parts = append(parts, t)
		}
	})
	return strings.Join(strings.Fields(strings.Join(parts, " ")), " ")
}
