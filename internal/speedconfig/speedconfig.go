// Package speedconfig fetches the speedtest configuration document and
// assembles the client, times, download and upload attribute groups.
package speedconfig

import (
	"context"
	"time"

	"github.com/princespaghetti/speedcfg/internal/fetcher"
	"github.com/princespaghetti/speedcfg/internal/logging"
	"github.com/princespaghetti/speedcfg/internal/xmlattr"
)

// Target element names, in lookup order.
const (
	ElementClient   = "client"
	ElementTimes    = "times"
	ElementDownload = "download"
	ElementUpload   = "upload"
)

// Elements lists the target elements in the fixed order they are looked up.
var Elements = []string{ElementClient, ElementTimes, ElementDownload, ElementUpload}

// Record is the extracted configuration. It is only ever built in full.
type Record struct {
	Client   xmlattr.Group `json:"client" yaml:"client"`
	Times    xmlattr.Group `json:"times" yaml:"times"`
	Download xmlattr.Group `json:"download" yaml:"download"`
	Upload   xmlattr.Group `json:"upload" yaml:"upload"`
}

// Group returns the group stored for one of the target element names.
func (r *Record) Group(element string) (xmlattr.Group, bool) {
	switch element {
	case ElementClient:
		return r.Client, true
	case ElementTimes:
		return r.Times, true
	case ElementDownload:
		return r.Download, true
	case ElementUpload:
		return r.Upload, true
	}
	return nil, false
}

// Fetcher is the part of fetcher.Fetcher the loader depends on.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (*fetcher.Result, error)
}

// Loader runs the fetch-and-extract pipeline.
type Loader struct {
	fetcher Fetcher
	finder  xmlattr.Finder
	url     string
	logger  *logging.Logger
}

// NewLoader creates a Loader. A nil finder means xmlattr.Default and an
// empty url means fetcher.DefaultConfigURL.
func NewLoader(f Fetcher, finder xmlattr.Finder, url string, logger *logging.Logger) *Loader {
	if finder == nil {
		finder = xmlattr.Default
	}
	if url == "" {
		url = fetcher.DefaultConfigURL
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &Loader{
		fetcher: f,
		finder:  finder,
		url:     url,
		logger:  logger.WithComponent("speedconfig"),
	}
}

// Load fetches the document once and extracts the four groups in order.
// The first failure is returned unchanged and no Record is built.
//
// Each lookup re-parses the document. Config payloads are small, and keeping
// the finder stateless lets lookups be tested and counted independently.
func (l *Loader) Load(ctx context.Context) (*Record, error) {
	res, err := l.fetcher.Fetch(ctx, l.url)
	if err != nil {
		return nil, err
	}

	groups := make([]xmlattr.Group, len(Elements))
	for i, name := range Elements {
		g, err := l.finder.FindAttributes(res.Body, name)
		if err != nil {
			return nil, err
		}
		l.logger.Debug("element found", "element", name, "attributes", len(g))
		groups[i] = g
	}

	return &Record{
		Client:   groups[0],
		Times:    groups[1],
		Download: groups[2],
		Upload:   groups[3],
	}, nil
}

// Options configures GetConfig. Zero values select the defaults.
type Options struct {
	URL       string
	UserAgent string
	Timeout   time.Duration
	Logger    *logging.Logger
}

// GetConfig builds a fetcher from opts and runs a Loader with the default
// finder. Timeout applies to the HTTP transport only.
func GetConfig(ctx context.Context, opts Options) (*Record, error) {
	logger := opts.Logger
	if logger == nil {
		logger = logging.Default()
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = fetcher.DefaultTimeout
	}

	f := fetcher.NewFetcher(fetcher.NewClient(timeout, logger), opts.UserAgent, logger)
	return NewLoader(f, nil, opts.URL, logger).Load(ctx)
}
