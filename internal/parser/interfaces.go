package parser

import "io"

// Parser defines a generic interface for parsing HTML content
type Parser[T any] interface {
	ParseHtml(body io.Reader) ([]T, error)
}

// SingleResultParser parses a page that describes exactly one record
type SingleResultParser[T any] interface {
	ParseHtml(body io.Reader) (*T, error)
}
