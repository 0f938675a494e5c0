package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector holds the engine's operational counters behind a private
// registry so the exposition endpoint only shows our own series.
type Collector struct {
	registry *prometheus.Registry

	PurchasesRecorded prometheus.Counter
	UsageRecorded     prometheus.Counter
	WasteRecorded     *prometheus.CounterVec
	LabelScans        *prometheus.CounterVec
	ReportsGenerated  prometheus.Counter
	BatchesCritical   prometheus.Gauge
}

// NewCollector creates and registers the engine's metrics.
func NewCollector() *Collector {
	c := &Collector{
		registry: prometheus.NewRegistry(),

		PurchasesRecorded: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "inventory_purchases_recorded_total",
			Help: "Purchase batches entered into inventory",
		}),
		UsageRecorded: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "inventory_usage_recorded_total",
			Help: "Usage records applied against inventory batches",
		}),
		WasteRecorded: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "inventory_waste_recorded_total",
			Help: "Waste records applied against inventory batches",
		}, []string{"category"}),
		LabelScans: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "label_scans_total",
			Help: "OCR label scans by outcome",
		}, []string{"outcome"}),
		ReportsGenerated: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "inventory_reports_generated_total",
			Help: "Inventory reports exported to object storage",
		}),
		BatchesCritical: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "inventory_items_critical",
			Help: "Item views currently in the critical freshness tier",
		}),
	}

	c.registry.MustRegister(
		c.PurchasesRecorded,
		c.UsageRecorded,
		c.WasteRecorded,
		c.LabelScans,
		c.ReportsGenerated,
		c.BatchesCritical,
	)

	return c
}

// Handler returns the exposition handler for the private registry.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}
