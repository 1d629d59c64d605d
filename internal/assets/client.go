// Package assets fetches the widget's remote resources: the shared title
// SVG, the per-clinic-type map SVG, and the per-clinic-type details JSON.
package assets

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"strings"
	"time"
)

const (
	defaultTimeout   = 10 * time.Second
	defaultUserAgent = "clinic-embed/0.1"

	// maxResourceBytes bounds how much of a resource body is read. The
	// largest real asset (a prefecture map SVG) is well under this.
	maxResourceBytes = 4 << 20
)

// Resource paths relative to the asset base URL. The title image is shared
// across clinic types; map and details are namespaced by type.
const (
	titlePath     = "clinic/title.svg"
	mapPathFormat = "clinic/%s/map.svg"
	detailsFormat = "clinic/%s/details.json"
)

// Config controls how the asset client behaves.
type Config struct {
	BaseURL    string
	Timeout    time.Duration
	HTTPClient *http.Client
	Logger     *slog.Logger
	UserAgent  string
}

// Client fetches widget resources over HTTP.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
	userAgent  string
}

// New creates a configured Client with sane defaults.
func New(cfg Config) (*Client, error) {
	baseURL := strings.TrimSpace(cfg.BaseURL)
	if baseURL == "" {
		return nil, errors.New("assets: base URL is required")
	}
	baseURL = strings.TrimRight(baseURL, "/")
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = defaultTimeout
		}
		httpClient = &http.Client{Timeout: timeout}
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	userAgent := strings.TrimSpace(cfg.UserAgent)
	if userAgent == "" {
		userAgent = defaultUserAgent
	}
	return &Client{
		baseURL:    baseURL,
		httpClient: httpClient,
		logger:     logger,
		userAgent:  userAgent,
	}, nil
}

// Resource is the outcome of a single fetch. Body and ContentType are only
// meaningful when the fetch succeeded at the HTTP level; content-type
// validation is the caller's concern.
type Resource struct {
	Body        []byte
	ContentType string
}

// Fetcher is the subset of Client the embedder depends on. The redis cache
// decorator implements it as well.
type Fetcher interface {
	Fetch(ctx context.Context, path string) (Resource, error)
}

// TitlePath returns the path of the shared title image.
func TitlePath() string { return titlePath }

// MapPath returns the path of the map image for a clinic type.
func MapPath(clinicType string) string {
	return fmt.Sprintf(mapPathFormat, clinicType)
}

// DetailsPath returns the path of the clinic-details data for a clinic type.
func DetailsPath(clinicType string) string {
	return fmt.Sprintf(detailsFormat, clinicType)
}

// Fetch retrieves one resource. A non-2xx status is an error; there are no
// retries, callers log and treat the resource as absent.
func (c *Client) Fetch(ctx context.Context, path string) (Resource, error) {
	url := c.baseURL + "/" + strings.TrimLeft(path, "/")
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return Resource{}, fmt.Errorf("assets: build request for %s: %w", path, err)
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Resource{}, fmt.Errorf("assets: fetch %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return Resource{}, fmt.Errorf("assets: fetch %s: unexpected status %d", path, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResourceBytes))
	if err != nil {
		return Resource{}, fmt.Errorf("assets: read %s: %w", path, err)
	}

	return Resource{
		Body:        body,
		ContentType: resp.Header.Get("Content-Type"),
	}, nil
}

// IsSVG reports whether a content type belongs to the SVG/XML family the
// title and map images are allowed to use.
func IsSVG(contentType string) bool {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false
	}
	switch mediaType {
	case "image/svg+xml", "text/xml", "application/xml":
		return true
	}
	return strings.HasSuffix(mediaType, "+xml")
}

// IsJSON reports whether a content type belongs to the JSON family the
// clinic-details data is allowed to use.
func IsJSON(contentType string) bool {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false
	}
	return mediaType == "application/json" || strings.HasSuffix(mediaType, "+json")
}
