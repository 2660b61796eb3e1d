package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	ns  string = "nationalcolors"
	sub string = "api"
)

// Both histograms share the labels set by CollectRequestDuration. path is the
// chi route pattern, so every country lookup lands on one series.
var (
	RequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: ns,
		Subsystem: sub,
		Name:      "lookup_duration_milliseconds",
		Help:      "Time in milliseconds to answer a color lookup, measured from MarkRequestStart until the handler returns",
		Buckets:   []float64{0.5, 1, 2, 4, 8, 16, 32, 64, 128},
	}, []string{"path", "code", "apiversion", "method"})

	// A v1 answer for one country is well under 128 bytes, v2 adds the rgb
	// triples and the country list grows with the number of stored codes.
	PayloadBytes = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: ns,
		Subsystem: sub,
		Name:      "lookup_payload_bytes",
		Help:      "Size in bytes of color lookup and country list responses",
		Buckets:   []float64{0, 64, 128, 256, 512, 1024, 2048, 4096},
	}, []string{"path", "code", "apiversion", "method"})
)
