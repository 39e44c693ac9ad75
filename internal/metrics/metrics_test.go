package metrics

import (
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"emotiguide/internal/model"
)

func TestRecorder(t *testing.T) {
	reg := prometheus.NewRegistry()
	r := New(reg)

	r.MoodRecorded("default", model.EmotionHappy)
	r.MoodRecorded("default", model.EmotionHappy)
	r.MoodRecorded("kiosk", model.EmotionSad)
	r.DetectionDiscarded("default", "stale")
	r.AdviceDiscarded("default")
	r.GuidanceCompleted("chat", "success", 1)
	r.GuidanceCompleted("chat", "error", 3)

	assert.Equal(t, 2.0, testutil.ToFloat64(r.moodsRecorded.WithLabelValues("Happy")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.moodsRecorded.WithLabelValues("Sad")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.detectionsDropped.WithLabelValues("stale")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.adviceDiscarded))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.guidanceRequests.WithLabelValues("chat", "error")))
}

func TestRegisterQueueDepth(t *testing.T) {
	reg := prometheus.NewRegistry()
	depth := 7
	RegisterQueueDepth(reg, 256, func() int { return depth })

	expected := `
# HELP emotiguide_capture_queue_depth Detections waiting to be applied.
# TYPE emotiguide_capture_queue_depth gauge
emotiguide_capture_queue_depth{capacity="256"} 7
`
	require.NoError(t, testutil.GatherAndCompare(reg, strings.NewReader(expected), "emotiguide_capture_queue_depth"))
}
