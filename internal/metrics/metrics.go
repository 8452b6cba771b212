// Package metrics описывает метрики Prometheus сервиса QR-кодов.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// CreateTotal — запросы на создание; result: created, existing, invalid, error.
	CreateTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "qrcodes_create_total",
		Help: "QR code create requests by result.",
	}, []string{"result"})

	RenderDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "qrcodes_render_duration_seconds",
		Help:    "Time spent rendering a QR code PNG.",
		Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25},
	})

	DeletedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "qrcodes_deleted_total",
		Help: "QR codes removed from the store.",
	})

	CorruptEntriesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "qrcodes_corrupt_entries_total",
		Help: "Stored entries whose filename could not be decoded while listing.",
	})

	StoredTotal = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "qrcodes_stored",
		Help: "Number of QR codes seen in the store on the last listing.",
	})
)
