package client

import (
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/andybalholm/brotli"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zlib"
	"github.com/klauspost/compress/zstd"
)

const acceptEncoding = "gzip, deflate, br, zstd"

// compressionTransport advertises gzip, deflate, brotli and zstd and decodes
// the response body, including stacked encodings such as "gzip, br".
type compressionTransport struct {
	transport http.RoundTripper
}

func newCompressionTransport(base http.RoundTripper) http.RoundTripper {
	if base == nil {
		base = http.DefaultTransport
	}
	return &compressionTransport{transport: base}
}

func (t *compressionTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if req.Header.Get("Accept-Encoding") == "" {
		req = req.Clone(req.Context())
		req.Header.Set("Accept-Encoding", acceptEncoding)
	}

	resp, err := t.transport.RoundTrip(req)
	if err != nil {
		return nil, err
	}
	if resp.Body == nil || resp.Body == http.NoBody {
		return resp, nil
	}

	encodings := parseContentEncodings(resp.Header.Get("Content-Encoding"))
	if len(encodings) == 0 {
		return resp, nil
	}
	for _, enc := range encodings {
		if !supportedEncoding(enc) {
			return resp, nil
		}
	}

	body := &stackedReadCloser{closers: []io.Closer{resp.Body}}
	var reader io.Reader = resp.Body
	// encodings are listed in the order they were applied
	for i := len(encodings) - 1; i >= 0; i-- {
		next, closer, err := decoder(encodings[i], reader)
		if err != nil {
			_ = body.Close()
			return nil, err
		}
		if closer != nil {
			body.closers = append(body.closers, closer)
		}
		reader = next
	}
	body.reader = reader

	resp.Body = body
	resp.Header.Del("Content-Encoding")
	resp.Header.Del("Content-Length")
	resp.ContentLength = -1
	resp.Uncompressed = true

	return resp, nil
}

func supportedEncoding(enc string) bool {
	switch enc {
	case "gzip", "x-gzip", "deflate", "br", "zstd", "identity":
		return true
	}
	return false
}

func decoder(enc string, r io.Reader) (io.Reader, io.Closer, error) {
	switch enc {
	case "gzip", "x-gzip":
		gr, err := gzip.NewReader(r)
		if err != nil {
			return nil, nil, err
		}
		return gr, gr, nil
	case "deflate":
		zr, err := zlib.NewReader(r)
		if err != nil {
			return nil, nil, err
		}
		return zr, zr, nil
	case "br":
		return brotli.NewReader(r), nil, nil
	case "zstd":
		zr, err := zstd.NewReader(r)
		if err != nil {
			return nil, nil, err
		}
		rc := zr.IOReadCloser()
		return rc, rc, nil
	default:
		return r, nil, nil
	}
}

// stackedReadCloser reads from the innermost decoder and closes every layer.
type stackedReadCloser struct {
	reader  io.Reader
	closers []io.Closer
}

func (s *stackedReadCloser) Read(p []byte) (int, error) {
	return s.reader.Read(p)
}

func (s *stackedReadCloser) Close() error {
	var errs []error
	for i := len(s.closers) - 1; i >= 0; i-- {
		if err := s.closers[i].Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// parseContentEncodings splits a Content-Encoding header into lowercase tokens.
func parseContentEncodings(header string) []string {
	var out []string
	for _, part := range strings.Split(header, ",") {
		if enc := strings.ToLower(strings.TrimSpace(part)); enc != "" {
			out = append(out, enc)
		}
	}
	return out
}
