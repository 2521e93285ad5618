// Package fetcher downloads the speedtest configuration document.
package fetcher

import (
	"context"
	"errors"
	"io"
	"net"
	"net/http"
	"time"
	"unicode/utf8"

	"github.com/go-resty/resty/v2"

	speederrors "github.com/princespaghetti/speedcfg/internal/errors"
	"github.com/princespaghetti/speedcfg/internal/logging"
)

const (
	// DefaultConfigURL is the location of the speedtest configuration document.
	DefaultConfigURL = "https://www.speedtest.net/speedtest-config.php"

	// DefaultUserAgent is sent with every request. The endpoint rejects
	// clients that do not look like a browser.
	DefaultUserAgent = "Mozilla/5.0"

	// DefaultTimeout is the HTTP timeout used when none is configured.
	DefaultTimeout = 10 * time.Second
)

// Result is the raw outcome of a fetch. It is consumed by the extractor and
// not retained afterwards.
type Result struct {
	StatusCode int
	Header     http.Header
	Body       string
}

// Fetcher performs a single GET against the configuration endpoint.
type Fetcher struct {
	client    *resty.Client
	userAgent string
	logger    *logging.Logger
}

// NewClient returns a resty client with the given timeout applied to the
// transport. A zero timeout disables it.
func NewClient(timeout time.Duration, logger *logging.Logger) *resty.Client {
	return resty.New().
		SetTimeout(timeout).
		SetLogger(logging.NewRestyLogger(logger))
}

// NewFetcher creates a new Fetcher with the given HTTP client.
// If client is nil, a client with DefaultTimeout is used. An empty userAgent
// means DefaultUserAgent.
func NewFetcher(client *resty.Client, userAgent string, logger *logging.Logger) *Fetcher {
	if logger == nil {
		logger = logging.Default()
	}
	if client == nil {
		client = NewClient(DefaultTimeout, logger)
	}
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}
	return &Fetcher{
		client:    client,
		userAgent: userAgent,
		logger:    logger.WithComponent("fetcher"),
	}
}

// Fetch downloads url and returns its status, headers and body text.
// Network failures are reported as transport errors; failures reading the
// body or a body that is not valid UTF-8 are reported as I/O errors.
func (f *Fetcher) Fetch(ctx context.Context, url string) (*Result, error) {
	log := f.logger.WithRequest(http.MethodGet, url)

	// The body is read here rather than by resty so that read failures
	// surface separately from transport failures.
	resp, err := f.client.R().
		SetContext(ctx).
		SetHeader("User-Agent", f.userAgent).
		SetDoNotParseResponse(true).
		Get(url)
	if err != nil {
		return nil, speederrors.Transport("fetch config", err)
	}

	body := resp.RawBody()
	if body == nil {
		return nil, speederrors.IO("read response", io.ErrUnexpectedEOF)
	}
	defer func() { _ = body.Close() }() // Ignore close error - body already consumed

	log.Info("response received", "code", resp.StatusCode(), "headers", summarizeHeader(resp.Header()))
	if resp.StatusCode() < 200 || resp.StatusCode() > 299 {
		log.Warn("unexpected status", "status", resp.Status())
	}

	data, err := io.ReadAll(body)
	if err != nil {
		// The client timeout also bounds the body read.
		if isTimeout(err) {
			return nil, speederrors.Transport("read response", err)
		}
		return nil, speederrors.IO("read response", err)
	}
	if !utf8.Valid(data) {
		return nil, speederrors.IO("decode response", speederrors.ErrInvalidUTF8)
	}

	text := string(data)
	if f.logger.Level() >= logging.LevelDebug {
		log.Debug("response body", "body", text)
	}

	return &Result{
		StatusCode: resp.StatusCode(),
		Header:     resp.Header(),
		Body:       text,
	}, nil
}

// isTimeout reports whether err is a deadline or network timeout.
func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}

// summarizeHeader flattens multi-valued headers into a single map for logging.
func summarizeHeader(h http.Header) map[string]string {
	out := make(map[string]string, len(h))
	for k := range h {
		out[k] = h.Get(k)
	}
	return out
}
