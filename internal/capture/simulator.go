package capture

import (
	"context"
	"math/rand/v2"
	"time"

	"go.uber.org/zap"

	"emotiguide/internal/model"
)

// Submitter accepts detections.
type Submitter interface {
	Submit(ctx context.Context, det Detection) (bool, *model.MoodEntry, error)
}

// Simulator emits random detections for local development when no camera
// client is connected.
type Simulator struct {
	target   Submitter
	profile  string
	interval time.Duration
	rng      *rand.Rand
	log      *zap.SugaredLogger
}

// NewSimulator creates a simulator feeding profile every interval.
func NewSimulator(target Submitter, profile string, interval time.Duration, rng *rand.Rand, log *zap.SugaredLogger) *Simulator {
	if rng == nil {
		rng = rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), 0))
	}
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &Simulator{target: target, profile: profile, interval: interval, rng: rng, log: log}
}

// Next returns a random detection with confidence in [0.5, 1).
func (s *Simulator) Next() Detection {
	emotions := model.Emotions()
	return Detection{
		Profile:    s.profile,
		Emotion:    emotions[s.rng.IntN(len(emotions))],
		Confidence: 0.5 + s.rng.Float64()*0.5,
	}
}

// Run submits a detection every interval until ctx is done.
func (s *Simulator) Run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.log.Infow("capture simulator started", "profile", s.profile, "interval", s.interval)
	for {
		select {
		case <-ticker.C:
			det := s.Next()
			if _, _, err := s.target.Submit(ctx, det); err != nil {
				s.log.Debugw("simulated detection not applied", "error", err)
			}
		case <-ctx.Done():
			return
		}
	}
}
