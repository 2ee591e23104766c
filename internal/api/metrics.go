package api

import (
	"github.com/prometheus/client_golang/prometheus"
)

type metrics struct {
	documents *prometheus.CounterVec
	resize    prometheus.Histogram
}

func newMetrics(reg prometheus.Registerer) *metrics {
	m := &metrics{
		documents: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "siteedge",
			Name:      "documents_served_total",
			Help:      "Generated edge documents served, by document name.",
		}, []string{"document"}),
		resize: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "siteedge",
			Name:      "image_resize_seconds",
			Help:      "Time spent decoding, scaling and encoding images.",
			Buckets:   prometheus.DefBuckets,
		}),
	}
	reg.MustRegister(m.documents, m.resize)
	return m
}
