package metrics

import "github.com/prometheus/client_golang/prometheus"

// EmbedMetrics exposes counters for the widget embed pipeline and the
// height-sync bridge.
type EmbedMetrics struct {
	fetchTotal    *prometheus.CounterVec
	renderTotal   *prometheus.CounterVec
	heightReports prometheus.Counter
}

func NewEmbedMetrics(reg prometheus.Registerer) *EmbedMetrics {
	m := &EmbedMetrics{
		fetchTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "clinicembed",
			Subsystem: "embed",
			Name:      "resource_fetch_total",
			Help:      "Widget resource fetch outcomes",
		}, []string{"resource", "status"}),
		renderTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "clinicembed",
			Subsystem: "embed",
			Name:      "section_render_total",
			Help:      "Widget sections rendered into host pages",
		}, []string{"section"}),
		heightReports: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "clinicembed",
			Subsystem: "heightsync",
			Name:      "reports_total",
			Help:      "Height reports posted to parent frames",
		}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.fetchTotal, m.renderTotal, m.heightReports)
	return m
}

// ObserveFetch records the outcome of one resource fetch. Status is one of
// "ok", "error", "invalid_content_type", "invalid_payload".
func (m *EmbedMetrics) ObserveFetch(resource, status string) {
	if m == nil {
		return
	}
	m.fetchTotal.WithLabelValues(resource, status).Inc()
}

// ObserveRender records that a widget section was rendered.
func (m *EmbedMetrics) ObserveRender(section string) {
	if m == nil {
		return
	}
	m.renderTotal.WithLabelValues(section).Inc()
}

// ObserveHeightReport records one posted height report.
func (m *EmbedMetrics) ObserveHeightReport() {
	if m == nil {
		return
	}
	m.heightReports.Inc()
}
