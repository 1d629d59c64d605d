package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

func TestEmbedMetricsObserve(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewEmbedMetrics(reg)
	m.ObserveFetch("details", "ok")
	m.ObserveFetch("details", "error")
	m.ObserveRender("title")
	m.ObserveHeightReport()

	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather: %v", err)
	}

	want := map[string]bool{
		"clinicembed_embed_resource_fetch_total": false,
		"clinicembed_embed_section_render_total": false,
		"clinicembed_heightsync_reports_total":   false,
	}
	for _, fam := range families {
		if _, ok := want[fam.GetName()]; ok {
			want[fam.GetName()] = true
		}
	}
	for name, seen := range want {
		if !seen {
			t.Errorf("metric family %s not registered", name)
		}
	}
}

func TestEmbedMetricsFetchCounts(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewEmbedMetrics(reg)
	m.ObserveFetch("map", "ok")
	m.ObserveFetch("map", "ok")

	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather: %v", err)
	}

	var fetchFam *dto.MetricFamily
	for _, fam := range families {
		if fam.GetName() == "clinicembed_embed_resource_fetch_total" {
			fetchFam = fam
		}
	}
	if fetchFam == nil {
		t.Fatal("fetch counter family missing")
	}
	if got := fetchFam.GetMetric()[0].GetCounter().GetValue(); got != 2 {
		t.Errorf("expected fetch count 2, got %v", got)
	}
}

func TestEmbedMetricsNilSafe(t *testing.T) {
	var m *EmbedMetrics
	m.ObserveFetch("title", "ok")
	m.ObserveRender("details")
	m.ObserveHeightReport()
}
