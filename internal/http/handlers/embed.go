package handlers

import (
	"io"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"golang.org/x/net/html"

	"github.com/wolfman30/clinic-embed/internal/assets"
	"github.com/wolfman30/clinic-embed/internal/embed"
	"github.com/wolfman30/clinic-embed/internal/observability/metrics"
	"github.com/wolfman30/clinic-embed/pkg/logging"
)

// maxHostPageBytes bounds the host page body accepted by the render
// endpoint.
const maxHostPageBytes = 2 << 20

// EmbedHandler serves the widget embedding endpoints: render a submitted
// host page, and a demo page exercising all three clinic types.
type EmbedHandler struct {
	fetcher assets.Fetcher
	logger  *logging.Logger
	metrics *metrics.EmbedMetrics
}

// NewEmbedHandler creates the embed HTTP handler.
func NewEmbedHandler(fetcher assets.Fetcher, logger *logging.Logger, m *metrics.EmbedMetrics) *EmbedHandler {
	if logger == nil {
		logger = logging.Default()
	}
	return &EmbedHandler{
		fetcher: fetcher,
		logger:  logger,
		metrics: m,
	}
}

// Routes returns a chi router with the embed routes.
func (h *EmbedHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Post("/render", h.Render)
	r.Get("/demo", h.Demo)
	return r
}

// Render embeds the widget into the host page supplied as the request body.
// POST /embed/render?clinicType=A&parentSelector=%23clinic-a&mainColor=&subColor=
//
// Invalid parameters are a 400; resource fetch or render degradation is not
// an error, the page comes back with whatever rendered.
func (h *EmbedHandler) Render(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	clinicType, err := embed.ParseClinicType(q.Get("clinicType"))
	if err != nil {
		http.Error(w, `{"error": "unknown or missing clinicType"}`, http.StatusBadRequest)
		return
	}

	cfg := embed.Config{
		ParentSelector: q.Get("parentSelector"),
		ClinicType:     clinicType,
		Colors: embed.Colors{
			Main: q.Get("mainColor"),
			Sub:  q.Get("subColor"),
		},
	}

	doc, err := html.Parse(io.LimitReader(r.Body, maxHostPageBytes))
	if err != nil {
		http.Error(w, `{"error": "invalid host page"}`, http.StatusBadRequest)
		return
	}

	embedder, err := embed.New(cfg, doc, embed.Deps{
		Fetcher: h.fetcher,
		Logger:  h.logger,
		Metrics: h.metrics,
	})
	if err != nil {
		h.logger.Warn("embed construction rejected", "error", err)
		http.Error(w, `{"error": "invalid embed parameters"}`, http.StatusBadRequest)
		return
	}

	embedder.Init(r.Context())

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := html.Render(w, doc); err != nil {
		h.logger.Error("failed to write rendered page", "error", err)
	}
}

// demoHost is the sample host page: three widget containers, each requesting
// all three sections, matching how the widget is deployed in production
// (one instance per clinic type on a single page).
const demoHost = `<!DOCTYPE html>
<html>
<head><meta charset="utf-8"><title>clinic widget demo</title></head>
<body>
<div id="clinic-a">
  <div data-clinic-title></div>
  <div data-clinic-map></div>
  <div data-clinic-details></div>
</div>
<div id="clinic-b">
  <div data-clinic-title></div>
  <div data-clinic-map></div>
  <div data-clinic-details></div>
</div>
<div id="clinic-c">
  <div data-clinic-title></div>
  <div data-clinic-map></div>
  <div data-clinic-details></div>
</div>
</body>
</html>`

// demoInstances mirrors the production bootstrap: three instances with
// per-type color schemes.
var demoInstances = []embed.Config{
	{ParentSelector: "#clinic-a", ClinicType: embed.ClinicTypeA, Colors: embed.Colors{Main: "1a6b54", Sub: "e8f4f0"}},
	{ParentSelector: "#clinic-b", ClinicType: embed.ClinicTypeB, Colors: embed.Colors{Main: "27408b", Sub: "e9edf8"}},
	{ParentSelector: "#clinic-c", ClinicType: embed.ClinicTypeC, Colors: embed.Colors{Main: "8b2742", Sub: "f8e9ee"}},
}

// Demo renders the sample page with all three clinic types embedded.
// GET /embed/demo
func (h *EmbedHandler) Demo(w http.ResponseWriter, r *http.Request) {
	doc, err := html.Parse(strings.NewReader(demoHost))
	if err != nil {
		h.logger.Error("demo page parse failed", "error", err)
		http.Error(w, `{"error": "internal server error"}`, http.StatusInternalServerError)
		return
	}

	for _, cfg := range demoInstances {
		embedder, err := embed.New(cfg, doc, embed.Deps{
			Fetcher: h.fetcher,
			Logger:  h.logger,
			Metrics: h.metrics,
		})
		if err != nil {
			h.logger.Error("demo embed construction failed", "parent", cfg.ParentSelector, "error", err)
			continue
		}
		embedder.Init(r.Context())
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := html.Render(w, doc); err != nil {
		h.logger.Error("failed to write demo page", "error", err)
	}
}
