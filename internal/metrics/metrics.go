// Package metrics exposes prometheus counters for mood ingestion and
// guidance calls.
package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"emotiguide/internal/model"
)

const namespace = "emotiguide"

// Recorder implements the observer hooks of the session, view and guidance
// packages.
type Recorder struct {
	moodsRecorded     *prometheus.CounterVec
	detectionsDropped *prometheus.CounterVec
	adviceDiscarded   prometheus.Counter
	guidanceRequests  *prometheus.CounterVec
	guidanceAttempts  *prometheus.HistogramVec
}

// New registers the collectors on reg.
func New(reg prometheus.Registerer) *Recorder {
	factory := promauto.With(reg)
	return &Recorder{
		moodsRecorded: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "session",
				Name:      "moods_recorded_total",
				Help:      "Mood entries appended to a history.",
			},
			[]string{"emotion"},
		),
		detectionsDropped: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "session",
				Name:      "detections_dropped_total",
				Help:      "Detections rejected before they were recorded.",
			},
			[]string{"reason"},
		),
		adviceDiscarded: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "view",
				Name:      "advice_discarded_total",
				Help:      "Career advice results dropped because a newer request or session superseded them.",
			},
		),
		guidanceRequests: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "guidance",
				Name:      "requests_total",
				Help:      "Guidance calls by operation and outcome.",
			},
			[]string{"op", "outcome"},
		),
		guidanceAttempts: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "guidance",
				Name:      "attempts",
				Help:      "Attempts needed per guidance call.",
				Buckets:   []float64{1, 2, 3, 4, 5},
			},
			[]string{"op"},
		),
	}
}

// MoodRecorded counts an appended entry.
func (r *Recorder) MoodRecorded(_ string, emotion model.Emotion) {
	r.moodsRecorded.WithLabelValues(string(emotion)).Inc()
}

// DetectionDiscarded counts a rejected detection.
func (r *Recorder) DetectionDiscarded(_ string, reason string) {
	r.detectionsDropped.WithLabelValues(reason).Inc()
}

// AdviceDiscarded counts a stale advice result.
func (r *Recorder) AdviceDiscarded(string) {
	r.adviceDiscarded.Inc()
}

// GuidanceCompleted counts a finished guidance call.
func (r *Recorder) GuidanceCompleted(op, outcome string, attempts int) {
	r.guidanceRequests.WithLabelValues(op, outcome).Inc()
	r.guidanceAttempts.WithLabelValues(op).Observe(float64(attempts))
}

// RegisterQueueDepth exposes the length reported by depth as a gauge.
func RegisterQueueDepth(reg prometheus.Registerer, capacity int, depth func() int) {
	promauto.With(reg).NewGaugeFunc(
		prometheus.GaugeOpts{
			Namespace:   namespace,
			Subsystem:   "capture",
			Name:        "queue_depth",
			Help:        "Detections waiting to be applied.",
			ConstLabels: prometheus.Labels{"capacity": strconv.Itoa(capacity)},
		},
		func() float64 { return float64(depth()) },
	)
}
