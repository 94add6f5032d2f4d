package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds Prometheus counters and gauges for the HDR sequencer.
type Metrics struct {
	registry            *prometheus.Registry
	requestsTotal       *prometheus.CounterVec
	errorsTotal         prometheus.Counter
	framesProcessed     prometheus.Counter
	framesRejected      *prometheus.CounterVec
	profileSwitches     prometheus.Counter
	exposureAdjustments prometheus.Counter
	configuredCameras   prometheus.Gauge
}

// New creates and registers Prometheus metrics for the sequencer.
func New() *Metrics {
	registry := prometheus.NewRegistry()

	requestsTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "hdr_requests_total",
		Help: "Total number of HTTP requests received, by route pattern",
	}, []string{"route"})
	errorsTotal := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "hdr_errors_total",
		Help: "Total number of HTTP responses with error status (4xx or 5xx)",
	})
	framesProcessed := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "hdr_frames_processed_total",
		Help: "Total number of frames assigned HDR metadata",
	})
	framesRejected := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "hdr_frames_rejected_total",
		Help: "Total number of frames rejected, by reason",
	}, []string{"reason"})
	profileSwitches := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "hdr_profile_switches_total",
		Help: "Total number of HDR profile switches observed in the frame stream",
	})
	exposureAdjustments := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "hdr_exposure_adjustments_total",
		Help: "Total number of profile 1 exposures moved to resolve a collision with profile 0",
	})
	configuredCameras := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "hdr_configured_cameras",
		Help: "Number of cameras with an exposure configuration",
	})

	registry.MustRegister(
		requestsTotal,
		errorsTotal,
		framesProcessed,
		framesRejected,
		profileSwitches,
		exposureAdjustments,
		configuredCameras,
	)

	return &Metrics{
		registry:            registry,
		requestsTotal:       requestsTotal,
		errorsTotal:         errorsTotal,
		framesProcessed:     framesProcessed,
		framesRejected:      framesRejected,
		profileSwitches:     profileSwitches,
		exposureAdjustments: exposureAdjustments,
		configuredCameras:   configuredCameras,
	}
}

// IncRequests increments the request counter for route.
func (m *Metrics) IncRequests(route string) {
	m.requestsTotal.WithLabelValues(route).Inc()
}

// IncErrors increments the errors counter.
func (m *Metrics) IncErrors() {
	m.errorsTotal.Inc()
}

// IncFramesProcessed increments the processed frames counter.
func (m *Metrics) IncFramesProcessed() {
	m.framesProcessed.Inc()
}

// IncFramesRejected increments the rejected frames counter for reason.
func (m *Metrics) IncFramesRejected(reason string) {
	m.framesRejected.WithLabelValues(reason).Inc()
}

// IncProfileSwitches increments the profile switch counter.
func (m *Metrics) IncProfileSwitches() {
	m.profileSwitches.Inc()
}

// IncExposureAdjustments increments the exposure adjustment counter.
func (m *Metrics) IncExposureAdjustments() {
	m.exposureAdjustments.Inc()
}

// SetConfiguredCameras sets the configured cameras gauge.
func (m *Metrics) SetConfiguredCameras(n int) {
	m.configuredCameras.Set(float64(n))
}

// Registry exposes the underlying registry, mainly for tests.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler returns an http.Handler that serves Prometheus metrics.
// updateGauges is called before each scrape to refresh gauge values.
func (m *Metrics) Handler(updateGauges func()) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if updateGauges != nil {
			updateGauges()
		}
		promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{}).ServeHTTP(w, r)
	})
}
