package parser

import (
	"io"

	"golang.org/x/net/html/charset"
)

// NewUTF8Reader wraps body so that goquery always sees UTF-8. Akwam serves UTF-8
// today, but older mirrors and error pages have been seen declaring windows-1256.
//
// The encoding is sniffed from a BOM, a <meta charset> / http-equiv declaration,
// or heuristics, in that order. UTF-8 input passes through untouched.
func NewUTF8Reader(body io.Reader) (io.Reader, error) {
	return charset.NewReader(body, "")
}
