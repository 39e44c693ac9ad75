// Package capture ingests detections from the mood capture loop and applies
// them to the session store of their profile.
package capture

import (
	"context"
	"errors"
	"sync"

	"go.uber.org/zap"

	apperrors "emotiguide/internal/errors"
	"emotiguide/internal/model"
	"emotiguide/internal/session"
)

// ErrClosed is returned by Submit after Close.
var ErrClosed = errors.New("capture dispatcher is closed")

// Detection is one reading posted by the capture loop.
type Detection struct {
	Profile    string
	SessionID  string
	Emotion    model.Emotion
	Confidence float64
	Note       string
}

// StoreResolver returns the session store of a profile.
type StoreResolver interface {
	Get(ctx context.Context, profile string) (*session.Store, error)
}

// Dispatcher applies detections in arrival order on a single worker.
type Dispatcher struct {
	stores StoreResolver
	queue  chan Detection
	log    *zap.SugaredLogger

	mu     sync.RWMutex
	closed bool
	wg     sync.WaitGroup
}

// NewDispatcher creates a dispatcher with a queue of size detections.
func NewDispatcher(stores StoreResolver, size int, log *zap.SugaredLogger) *Dispatcher {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &Dispatcher{
		stores: stores,
		queue:  make(chan Detection, size),
		log:    log,
	}
}

// Start runs the worker until Close is called or ctx is done.
func (d *Dispatcher) Start(ctx context.Context) {
	d.wg.Add(1)
	go d.worker(ctx)
}

func (d *Dispatcher) worker(ctx context.Context) {
	defer d.wg.Done()
	for {
		select {
		case det, ok := <-d.queue:
			if !ok {
				return
			}
			_, _ = d.apply(ctx, det)
		case <-ctx.Done():
			return
		}
	}
}

// Submit queues det. When the queue is full the detection is applied on the
// caller's goroutine instead and its outcome returned; queued reports which
// path was taken.
func (d *Dispatcher) Submit(ctx context.Context, det Detection) (queued bool, entry *model.MoodEntry, err error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.closed {
		return false, nil, ErrClosed
	}

	select {
	case d.queue <- det:
		return true, nil, nil
	default:
		d.log.Debugw("capture queue full, applying synchronously", "profile", det.Profile)
		entry, err := d.apply(ctx, det)
		return false, entry, err
	}
}

func (d *Dispatcher) apply(ctx context.Context, det Detection) (*model.MoodEntry, error) {
	store, err := d.stores.Get(ctx, det.Profile)
	if err != nil {
		d.log.Errorw("detection dropped, store unavailable", "profile", det.Profile, "error", err)
		return nil, err
	}

	entry, err := store.Record(ctx, session.Detection{
		Emotion:    det.Emotion,
		Confidence: det.Confidence,
		Note:       det.Note,
		SessionID:  det.SessionID,
	})
	if err != nil {
		var validationErr *apperrors.ValidationError
		switch {
		case errors.Is(err, apperrors.ErrStaleSession):
			d.log.Debugw("stale detection dropped", "profile", det.Profile, "session_id", det.SessionID)
		case errors.As(err, &validationErr):
			d.log.Warnw("invalid detection dropped", "profile", det.Profile, "error", err)
		default:
			d.log.Errorw("failed to record detection", "profile", det.Profile, "error", err)
		}
		return nil, err
	}
	return &entry, nil
}

// Len is the number of queued detections.
func (d *Dispatcher) Len() int {
	return len(d.queue)
}

// Close stops accepting detections and waits for the queue to drain.
func (d *Dispatcher) Close() {
	d.mu.Lock()
	if !d.closed {
		d.closed = true
		close(d.queue)
	}
	d.mu.Unlock()
	d.wg.Wait()
}
