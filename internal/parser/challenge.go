package parser

import (
	"bytes"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// challengeMarkers are lowercase substrings every challenge page carries. A
// body without any of them cannot match DetectChallenge.
var challengeMarkers = [][]byte{
	[]byte("just a moment"),
	[]byte("captcha"),
	[]byte("cf-wrapper"),
	[]byte("challenge-form"),
}

var challengeSelectors = []string{
	"#cf-wrapper",
	"#challenge-form",
	".g-recaptcha",
	".h-captcha",
	`form[action*="captcha"]`,
	`iframe[src*="recaptcha"]`,
}

// DetectChallenge reports whether doc is an anti-bot interstitial instead of
// real content, with a short reason for logs.
func DetectChallenge(doc *goquery.Document) (bool, string) {
	title := strings.ToLower(strings.TrimSpace(doc.Find("title").First().Text()))
	if strings.Contains(title, "just a moment") || strings.Contains(title, "captcha") {
		return true, "title: " + title
	}
	for _, sel := range challengeSelectors {
		if doc.Find(sel).Length() > 0 {
			return true, sel
		}
	}
	return false, ""
}

// MayBeChallenge is a byte level precheck for IsChallengePage. It never misses
// a challenge but may report pages that only mention the markers.
func MayBeChallenge(body []byte) bool {
	lower := bytes.ToLower(body)
	for _, marker := range challengeMarkers {
		if bytes.Contains(lower, marker) {
			return true
		}
	}
	return false
}

// IsChallengePage is DetectChallenge over a raw UTF-8 body. Unparsable bodies
// are not challenges.
func IsChallengePage(body []byte) (bool, string) {
	if !MayBeChallenge(body) {
		return false, ""
	}
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return false, ""
	}
	return DetectChallenge(doc)
}
