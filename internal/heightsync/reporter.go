// Package heightsync keeps a parent frame informed of an embedded
// document's rendered height so the containing iframe can auto-size.
package heightsync

import (
	"errors"
	"sync"
	"time"

	"github.com/wolfman30/clinic-embed/internal/observability/metrics"
	"github.com/wolfman30/clinic-embed/pkg/logging"
)

const defaultDebounce = 200 * time.Millisecond

// Message actions of the height-sync protocol.
const (
	ActionSendHeight = "sendIframeHeight"
	ActionGetHeight  = "getHeight"
)

// Message is the wire envelope exchanged with the parent frame. No origin
// validation is performed on either direction.
type Message struct {
	Action       string `json:"action"`
	IframeHeight int    `json:"iframeHeight,omitempty"`
}

// Poster delivers outbound messages to the parent frame.
type Poster interface {
	Post(Message) error
}

// Viewport is the embedded document's viewport size at the time of an event.
type Viewport struct {
	Width  int
	Height int
}

// Config controls a Reporter.
type Config struct {
	// Measure returns the current content height. Required.
	Measure func() int
	// Poster receives the outbound height reports. Required.
	Poster Poster
	// Debounce is the settle window for resize events. Defaults to 200ms.
	Debounce time.Duration
	Logger   *logging.Logger
	Metrics  *metrics.EmbedMetrics
}

// Reporter measures the document height and reports it to the parent frame:
// immediately on start, on explicit parent request, on accordion toggles and
// padding-top transition ends, and debounced on viewport resizes that
// actually changed the width (height-only resizes, e.g. mobile browser
// chrome, are ignored).
type Reporter struct {
	measure  func() int
	poster   Poster
	debounce time.Duration
	logger   *logging.Logger
	metrics  *metrics.EmbedMetrics

	mu           sync.Mutex
	lastWidth    int
	pendingWidth int
	timer        *time.Timer
}

// New validates the configuration and returns a Reporter.
func New(cfg Config) (*Reporter, error) {
	if cfg.Measure == nil {
		return nil, errors.New("heightsync: measure function is required")
	}
	if cfg.Poster == nil {
		return nil, errors.New("heightsync: poster is required")
	}
	debounce := cfg.Debounce
	if debounce <= 0 {
		debounce = defaultDebounce
	}
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}
	return &Reporter{
		measure:  cfg.Measure,
		poster:   cfg.Poster,
		debounce: debounce,
		logger:   logger,
		metrics:  cfg.Metrics,
	}, nil
}

// Start records the initial viewport width and posts the first height
// report, mirroring the on-load behavior.
func (r *Reporter) Start(v Viewport) {
	r.mu.Lock()
	r.lastWidth = v.Width
	r.mu.Unlock()
	r.report()
}

// OnResize registers a viewport resize. Reports are debounced with a
// single-slot timer: a new resize cancels and replaces the pending one, and
// the report only fires if the latest width differs from the last reported
// one.
func (r *Reporter) OnResize(v Viewport) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.pendingWidth = v.Width
	if r.timer != nil {
		r.timer.Stop()
	}
	r.timer = time.AfterFunc(r.debounce, r.resizeSettled)
}

func (r *Reporter) resizeSettled() {
	r.mu.Lock()
	changed := r.pendingWidth != r.lastWidth
	if changed {
		r.lastWidth = r.pendingWidth
	}
	r.mu.Unlock()

	if changed {
		r.report()
	}
}

// HandleMessage processes an inbound parent message. A getHeight request
// triggers an immediate report, bypassing the debounce. Unknown actions are
// ignored.
func (r *Reporter) HandleMessage(msg Message) {
	if msg.Action == ActionGetHeight {
		r.report()
	}
}

// OnAccordionToggle reports after an accordion header click; open/close is
// assumed to change the document height.
func (r *Reporter) OnAccordionToggle() {
	r.report()
}

// OnTransitionEnd reports after a CSS transition settles. Only the
// padding-top transition counts, to avoid double-firing from paired padding
// transitions on the same element.
func (r *Reporter) OnTransitionEnd(property string) {
	if property == "padding-top" {
		r.report()
	}
}

// Stop cancels any pending debounced report.
func (r *Reporter) Stop() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.timer != nil {
		r.timer.Stop()
		r.timer = nil
	}
}

func (r *Reporter) report() {
	height := r.measure()
	msg := Message{Action: ActionSendHeight, IframeHeight: height}
	if err := r.poster.Post(msg); err != nil {
		r.logger.Warn("height report failed", "height", height, "error", err)
		return
	}
	r.metrics.ObserveHeightReport()
}
