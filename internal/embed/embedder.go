package embed

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/net/html"

	"github.com/wolfman30/clinic-embed/internal/assets"
	"github.com/wolfman30/clinic-embed/internal/observability/metrics"
	"github.com/wolfman30/clinic-embed/pkg/logging"
)

// Deps carries the embedder's collaborators. Fetcher is required.
type Deps struct {
	Fetcher assets.Fetcher
	Logger  *logging.Logger
	Metrics *metrics.EmbedMetrics
}

// slots records which widget sections the host page requested. Computed once
// at construction and never recomputed; the host document is assumed not to
// gain or lose marker elements during the instance's lifetime.
type slots struct {
	title   *html.Node
	mapArea *html.Node
	details *html.Node
}

// renderState holds the fetched resources for one embed instance. Mutated
// only by the fetch phase, read-only during render.
type renderState struct {
	titleMarkup string
	mapMarkup   string
	details     []AreaDetail
}

// Embedder renders one clinic-location widget instance into a host document.
type Embedder struct {
	cfg     Config
	colors  Colors
	doc     *html.Node
	fetcher assets.Fetcher
	logger  *logging.Logger
	metrics *metrics.EmbedMetrics

	slots slots
	state renderState
}

// New validates the configuration, probes the host document for section
// markers, and returns an embedder ready for Init. Construction is the only
// operation that fails hard: a missing or malformed parent selector or
// clinic type yields an error wrapping ErrInvalidArgument.
func New(cfg Config, doc *html.Node, deps Deps) (*Embedder, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, fmt.Errorf("%w: host document is required", ErrInvalidArgument)
	}
	if deps.Fetcher == nil {
		return nil, fmt.Errorf("%w: fetcher is required", ErrInvalidArgument)
	}
	logger := deps.Logger
	if logger == nil {
		logger = logging.Default()
	}

	e := &Embedder{
		cfg:     cfg,
		colors:  cfg.Colors.normalized(),
		doc:     doc,
		fetcher: deps.Fetcher,
		logger: logger.With(
			"embed_id", uuid.NewString(),
			"clinic_type", string(cfg.ClinicType),
			"parent", cfg.ParentSelector,
		),
		metrics: deps.Metrics,
	}

	// A host page without the parent element gets no sections rendered,
	// but construction still succeeds; Init degrades to style-only.
	if parent := findByID(doc, cfg.parentID()); parent != nil {
		e.slots.title = findByAttr(parent, markerTitle)
		e.slots.mapArea = findByAttr(parent, markerMap)
		e.slots.details = findByAttr(parent, markerDetails)
	} else {
		e.logger.Warn("parent element not found in host document")
	}

	return e, nil
}

// Init runs the embed pipeline: fetch the requested resources concurrently,
// validate them, render the sections whose markers are present, and append
// the scoped stylesheet. Init never fails; every fetch, parse, or render
// problem is logged and degrades to "section not rendered". Calling Init
// again re-fetches and re-renders, and appends another stylesheet (the
// accumulation is documented behavior, not deduplicated).
func (e *Embedder) Init(ctx context.Context) {
	e.fetchAll(ctx)
	e.renderTitle()
	e.renderMap()
	e.renderDetails()
	e.injectStyles()
}

// fetchAll fans out one fetch per requested section and waits for all of
// them to settle. A failure in one resource neither cancels nor blocks the
// others; sections without markers are never fetched.
func (e *Embedder) fetchAll(ctx context.Context) {
	var wg sync.WaitGroup

	if e.slots.title != nil {
		wg.Add(1)
		go func() {
			defer wg.Done()
			e.state.titleMarkup = e.fetchMarkup(ctx, "title", assets.TitlePath())
		}()
	}
	if e.slots.mapArea != nil {
		wg.Add(1)
		go func() {
			defer wg.Done()
			e.state.mapMarkup = e.fetchMarkup(ctx, "map", assets.MapPath(string(e.cfg.ClinicType)))
		}()
	}
	if e.slots.details != nil {
		wg.Add(1)
		go func() {
			defer wg.Done()
			e.state.details = e.fetchDetails(ctx)
		}()
	}

	wg.Wait()
}

// fetchMarkup retrieves an SVG resource. Any failure resolves to empty
// markup, which the render phase treats as "section absent".
func (e *Embedder) fetchMarkup(ctx context.Context, resource, path string) string {
	res, err := e.fetcher.Fetch(ctx, path)
	if err != nil {
		e.logger.Warn("resource fetch failed", "resource", resource, "path", path, "error", err)
		e.metrics.ObserveFetch(resource, "error")
		return ""
	}
	if !assets.IsSVG(res.ContentType) {
		e.logger.Warn("unexpected resource content type",
			"resource", resource, "path", path, "content_type", res.ContentType)
		e.metrics.ObserveFetch(resource, "invalid_content_type")
		return ""
	}
	e.metrics.ObserveFetch(resource, "ok")
	return string(res.Body)
}

// fetchDetails retrieves and decodes the clinic-details JSON. Any failure
// resolves to nil, which the render phase treats as "no accordion".
func (e *Embedder) fetchDetails(ctx context.Context) []AreaDetail {
	path := assets.DetailsPath(string(e.cfg.ClinicType))
	res, err := e.fetcher.Fetch(ctx, path)
	if err != nil {
		e.logger.Warn("resource fetch failed", "resource", "details", "path", path, "error", err)
		e.metrics.ObserveFetch("details", "error")
		return nil
	}
	if !assets.IsJSON(res.ContentType) {
		e.logger.Warn("unexpected resource content type",
			"resource", "details", "path", path, "content_type", res.ContentType)
		e.metrics.ObserveFetch("details", "invalid_content_type")
		return nil
	}
	var details []AreaDetail
	if err := json.Unmarshal(res.Body, &details); err != nil {
		e.logger.Warn("clinic details decode failed", "path", path, "error", err)
		e.metrics.ObserveFetch("details", "invalid_payload")
		return nil
	}
	e.metrics.ObserveFetch("details", "ok")
	return details
}

func (e *Embedder) renderTitle() {
	if e.slots.title == nil || e.state.titleMarkup == "" {
		return
	}
	e.renderMarkup(e.slots.title, e.state.titleMarkup, "title")
}

func (e *Embedder) renderMap() {
	if e.slots.mapArea == nil || e.state.mapMarkup == "" {
		return
	}
	e.renderMarkup(e.slots.mapArea, e.state.mapMarkup, "map")
}

func (e *Embedder) renderMarkup(slot *html.Node, markup, section string) {
	nodes, err := parseFragment(markup)
	if err != nil {
		e.logger.Warn("markup parse failed", "section", section, "error", err)
		return
	}
	replaceChildren(slot, nodes)
	e.metrics.ObserveRender(section)
}

func (e *Embedder) renderDetails() {
	if e.slots.details == nil || len(e.state.details) == 0 {
		return
	}
	markup, err := buildAccordion(e.cfg.parentID(), e.state.details)
	if err != nil {
		e.logger.Warn("accordion build failed", "error", err)
		return
	}
	e.renderMarkup(e.slots.details, markup, "details")
}

func (e *Embedder) injectStyles() {
	if !appendStyle(e.doc, stylesheet(e.cfg.ParentSelector, e.colors)) {
		e.logger.Warn("host document has no head, stylesheet not injected")
	}
}
