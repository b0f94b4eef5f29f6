package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/debashish-mukherjee/go-mib2zabbix/internal/mibtext"
	"github.com/debashish-mukherjee/go-mib2zabbix/internal/zabbix"
)

// Metrics holds the conversion collectors on a private registry so several
// converters never share counters.
type Metrics struct {
	registry *prometheus.Registry

	conversionsTotal *prometheus.CounterVec
	candidatesTotal  *prometheus.CounterVec
	objectsTotal     *prometheus.CounterVec
	droppedTotal     *prometheus.CounterVec
	itemsTotal       *prometheus.CounterVec
	duration         *prometheus.HistogramVec
}

func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		conversionsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "mib2zabbix_conversions_total",
				Help: "MIB file conversions by outcome",
			},
			[]string{"status"},
		),
		candidatesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "mib2zabbix_candidates_total",
				Help: "OBJECT-TYPE declarations seen",
			},
			[]string{"template"},
		),
		objectsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "mib2zabbix_objects_extracted_total",
				Help: "Objects extracted into template items",
			},
			[]string{"template"},
		),
		droppedTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "mib2zabbix_candidates_dropped_total",
				Help: "Declarations dropped for lacking an assignment clause",
			},
			[]string{"template"},
		),
		itemsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "mib2zabbix_items_total",
				Help: "Template items generated by value type",
			},
			[]string{"template", "value_type"},
		),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "mib2zabbix_conversion_seconds",
				Help:    "Time spent converting one MIB file",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"template"},
		),
	}

	m.registry.MustRegister(
		m.conversionsTotal,
		m.candidatesTotal,
		m.objectsTotal,
		m.droppedTotal,
		m.itemsTotal,
		m.duration,
	)
	return m
}

func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// RecordConversion records a successful conversion of one template.
func (m *Metrics) RecordConversion(template string, stats mibtext.Stats, doc *zabbix.Export, took time.Duration) {
	if m == nil {
		return
	}
	m.conversionsTotal.WithLabelValues("ok").Inc()
	m.candidatesTotal.WithLabelValues(template).Add(float64(stats.Candidates))
	m.objectsTotal.WithLabelValues(template).Add(float64(stats.Extracted))
	m.droppedTotal.WithLabelValues(template).Add(float64(stats.Dropped))
	m.duration.WithLabelValues(template).Observe(took.Seconds())

	if tmpl := doc.Template(); tmpl != nil {
		for _, item := range tmpl.Items {
			m.itemsTotal.WithLabelValues(template, item.ValueType.String()).Inc()
		}
	}
}

// RecordFailure records a conversion that did not produce output.
func (m *Metrics) RecordFailure() {
	if m == nil {
		return
	}
	m.conversionsTotal.WithLabelValues("failed").Inc()
}

// WriteTextfile writes the registry in the node exporter textfile format.
func (m *Metrics) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, m.registry)
}
