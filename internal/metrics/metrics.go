// Package metrics counts animation frames, picks and control events.
package metrics

import (
	"fmt"
	"io"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
)

// Pick results.
const (
	PickHit  = "hit"
	PickMiss = "miss"
)

// Collector holds the orrery's Prometheus collectors on a private registry.
type Collector struct {
	registry *prometheus.Registry

	framesTotal    *prometheus.CounterVec
	frameDuration  prometheus.Histogram
	picksTotal     *prometheus.CounterVec
	controlsTotal  *prometheus.CounterVec
	pointerEvents  prometheus.Counter
	planetsVisible prometheus.Gauge
}

// NewCollector creates and registers the collectors.
func NewCollector() *Collector {
	m := &Collector{
		registry: prometheus.NewRegistry(),
		framesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "orrery_frames_total",
				Help: "Frames rendered, by animation state",
			},
			[]string{"state"},
		),
		frameDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "orrery_frame_update_seconds",
				Help:    "Time spent advancing and picking one frame",
				Buckets: prometheus.ExponentialBuckets(0.00001, 4, 8),
			},
		),
		picksTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "orrery_picks_total",
				Help: "Pointer picks, by result",
			},
			[]string{"result"},
		),
		controlsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "orrery_control_events_total",
				Help: "Control panel events, by control",
			},
			[]string{"control"},
		),
		pointerEvents: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "orrery_pointer_events_total",
				Help: "Pointer-move events received",
			},
		),
		planetsVisible: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "orrery_planets_visible",
				Help: "Planets drawn inside the viewport on the last frame",
			},
		),
	}

	m.registry.MustRegister(
		m.framesTotal,
		m.frameDuration,
		m.picksTotal,
		m.controlsTotal,
		m.pointerEvents,
		m.planetsVisible,
	)

	return m
}

// Registry returns the registry the collectors live on.
func (m *Collector) Registry() *prometheus.Registry {
	return m.registry
}

// RecordFrame counts one animation frame and how long its update took.
func (m *Collector) RecordFrame(paused bool, duration time.Duration) {
	state := "running"
	if paused {
		state = "paused"
	}
	m.framesTotal.WithLabelValues(state).Inc()
	m.frameDuration.Observe(duration.Seconds())
}

// RecordPick counts one pick.
func (m *Collector) RecordPick(hit bool) {
	if hit {
		m.picksTotal.WithLabelValues(PickHit).Inc()
		return
	}
	m.picksTotal.WithLabelValues(PickMiss).Inc()
}

// ControlEvent counts one control panel event.
func (m *Collector) ControlEvent(control string) {
	m.controlsTotal.WithLabelValues(control).Inc()
}

// RecordPointerEvent counts one pointer-move event.
func (m *Collector) RecordPointerEvent() {
	m.pointerEvents.Inc()
}

// SetPlanetsVisible records how many planets the last frame drew.
func (m *Collector) SetPlanetsVisible(n int) {
	m.planetsVisible.Set(float64(n))
}

// WriteText writes every gathered metric family in the Prometheus text
// exposition format.
func (m *Collector) WriteText(w io.Writer) error {
	families, err := m.registry.Gather()
	if err != nil {
		return fmt.Errorf("gather metrics: %w", err)
	}
	for _, f := range families {
		if _, err := expfmt.MetricFamilyToText(w, f); err != nil {
			return fmt.Errorf("write %s: %w", f.GetName(), err)
		}
	}
	return nil
}
