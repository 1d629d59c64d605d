package heightsync

import (
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/wolfman30/clinic-embed/internal/observability/metrics"
	"github.com/wolfman30/clinic-embed/pkg/logging"
)

// Event is the inbound envelope from the embedded document's side of the
// bridge. Resize and load events carry the viewport size and the measured
// document height; transitionEnd carries the transitioned property.
type Event struct {
	Action         string `json:"action"`
	Width          int    `json:"width,omitempty"`
	Height         int    `json:"height,omitempty"`
	DocumentHeight int    `json:"documentHeight,omitempty"`
	Property       string `json:"property,omitempty"`
}

// Inbound event actions.
const (
	eventLoad            = "load"
	eventResize          = "resize"
	eventAccordionToggle = "accordionToggle"
	eventTransitionEnd   = "transitionEnd"
)

// Handler bridges the height-sync protocol over a websocket connection: the
// peer streams load/resize/toggle/transition events and getHeight requests,
// and receives sendIframeHeight reports back on the same connection.
type Handler struct {
	upgrader websocket.Upgrader
	debounce time.Duration
	logger   *logging.Logger
	metrics  *metrics.EmbedMetrics
}

// NewHandler creates the websocket bridge handler. Origin checks are
// disabled to match the protocol's any-origin posture.
func NewHandler(debounce time.Duration, logger *logging.Logger, m *metrics.EmbedMetrics) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{
		upgrader: websocket.Upgrader{
			CheckOrigin: func(*http.Request) bool { return true },
		},
		debounce: debounce,
		logger:   logger,
		metrics:  m,
	}
}

// connPoster serializes writes to one websocket connection.
type connPoster struct {
	mu   sync.Mutex
	conn *websocket.Conn
}

func (p *connPoster) Post(msg Message) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.conn.WriteJSON(msg)
}

// measuredHeight holds the latest document height reported by the peer.
type measuredHeight struct {
	mu sync.Mutex
	h  int
}

func (m *measuredHeight) set(h int) {
	m.mu.Lock()
	m.h = h
	m.mu.Unlock()
}

func (m *measuredHeight) get() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.h
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", "error", err)
		return
	}
	defer conn.Close()

	height := &measuredHeight{}
	reporter, err := New(Config{
		Measure:  height.get,
		Poster:   &connPoster{conn: conn},
		Debounce: h.debounce,
		Logger:   h.logger,
		Metrics:  h.metrics,
	})
	if err != nil {
		h.logger.Error("reporter setup failed", "error", err)
		return
	}
	defer reporter.Stop()

	for {
		var ev Event
		if err := conn.ReadJSON(&ev); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				h.logger.Warn("height-sync connection closed", "error", err)
			}
			return
		}
		if ev.DocumentHeight > 0 {
			height.set(ev.DocumentHeight)
		}

		switch ev.Action {
		case eventLoad:
			reporter.Start(Viewport{Width: ev.Width, Height: ev.Height})
		case eventResize:
			reporter.OnResize(Viewport{Width: ev.Width, Height: ev.Height})
		case ActionGetHeight:
			reporter.HandleMessage(Message{Action: ActionGetHeight})
		case eventAccordionToggle:
			reporter.OnAccordionToggle()
		case eventTransitionEnd:
			reporter.OnTransitionEnd(ev.Property)
		default:
			h.logger.Debug("ignoring unknown height-sync event", "action", ev.Action)
		}
	}
}
