// Package fetch retrieves a log document over HTTP(S) and returns it as
// UTF-8 text.
package fetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"unicode/utf8"

	"github.com/dustin/go-humanize"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"go.uber.org/zap"
)

// DefaultUserAgent is sent when the Fetcher has none configured.
const DefaultUserAgent = "logreport"

// ErrStatus is wrapped by Fetch when the server answers outside 2xx.
var ErrStatus = errors.New("unexpected status")

// ErrNotUTF8 is wrapped by Fetch when the body is not valid UTF-8.
var ErrNotUTF8 = errors.New("body is not valid UTF-8")

// ProgressFunc is called as body bytes arrive. total is -1 when the server
// did not announce a length.
type ProgressFunc func(read, total int64)

// Fetcher downloads one document per call. The zero value uses
// http.DefaultClient, which has no timeout and no retry.
type Fetcher struct {
	Client     *http.Client
	UserAgent  string
	Logger     *zap.Logger
	OnProgress ProgressFunc
}

// Fetch issues a single GET for url and returns the decoded body. Every
// failure is returned; nothing is partially delivered.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	url = strings.TrimSpace(url)
	if url == "" {
		return "", errors.New("fetch: URL is empty")
	}
	logger := f.logger().With(zap.String("url", url))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("fetch: build request: %w", err)
	}
	ua := f.UserAgent
	if ua == "" {
		ua = DefaultUserAgent
	}
	req.Header.Set("User-Agent", ua)
	// Setting Accept-Encoding ourselves turns off the transport's implicit
	// gzip handling, so decode below covers every advertised encoding.
	req.Header.Set("Accept-Encoding", "gzip, zstd")

	logger.Debug("downloading log")

	client := f.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return "", fmt.Errorf("fetch: %w %s", ErrStatus, resp.Status)
	}

	var body io.Reader = resp.Body
	if f.OnProgress != nil {
		body = &progressReader{r: body, total: resp.ContentLength, fn: f.OnProgress}
	}

	encoding := strings.ToLower(strings.TrimSpace(resp.Header.Get("Content-Encoding")))
	data, err := decode(body, encoding)
	if err != nil {
		return "", fmt.Errorf("fetch: read body: %w", err)
	}
	if !utf8.Valid(data) {
		return "", fmt.Errorf("fetch: %w", ErrNotUTF8)
	}

	logger.Info("download complete",
		zap.String("size", humanize.Bytes(uint64(len(data)))),
		zap.Int("bytes", len(data)),
		zap.String("content_encoding", encoding),
	)
	return string(data), nil
}

func (f *Fetcher) logger() *zap.Logger {
	if f.Logger == nil {
		return zap.NewNop()
	}
	return f.Logger
}

func decode(r io.Reader, encoding string) ([]byte, error) {
	switch encoding {
	case "", "identity":
		return io.ReadAll(r)
	case "gzip", "x-gzip":
		zr, err := gzip.NewReader(r)
		if err != nil {
			return nil, fmt.Errorf("gzip: %w", err)
		}
		defer zr.Close()
		return io.ReadAll(zr)
	case "zstd":
		zr, err := zstd.NewReader(r)
		if err != nil {
			return nil, fmt.Errorf("zstd: %w", err)
		}
		defer zr.Close()
		return io.ReadAll(zr)
	default:
		return nil, fmt.Errorf("unsupported content encoding %q", encoding)
	}
}

type progressReader struct {
	r     io.Reader
	read  int64
	total int64
	fn    ProgressFunc
}

func (p *progressReader) Read(b []byte) (int, error) {
	n, err := p.r.Read(b)
	if n > 0 {
		p.read += int64(n)
		p.fn(p.read, p.total)
	}
	return n, err
}
