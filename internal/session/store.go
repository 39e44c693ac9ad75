// Package session holds the current user and mood history of a profile and
// keeps them synchronized with the key-value store.
package session

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"

	apperrors "emotiguide/internal/errors"
	"emotiguide/internal/kv"
	"emotiguide/internal/model"
)

// Observer receives store events. Implementations must not block.
type Observer interface {
	MoodRecorded(profile string, emotion model.Emotion)
	DetectionDiscarded(profile, reason string)
}

type nopObserver struct{}

func (nopObserver) MoodRecorded(string, model.Emotion) {}
func (nopObserver) DetectionDiscarded(string, string)  {}

// Options configures a Store. Zero values fall back to real implementations.
type Options struct {
	Clock    Clock
	IDs      IDGenerator
	Logger   *zap.SugaredLogger
	Observer Observer
	// HistoryWarnThreshold logs a warning each time the history length
	// reaches a multiple of it. Zero disables the warning.
	HistoryWarnThreshold int
}

// Detection is a mood reading from the capture bridge. SessionID, when set,
// is the session identifier that was current when the reading was taken.
type Detection struct {
	Emotion    model.Emotion
	Confidence float64
	Note       string
	SessionID  string
}

// Snapshot is a consistent copy of the store state.
type Snapshot struct {
	User           *model.User       `json:"user,omitempty"`
	History        []model.MoodEntry `json:"history"`
	CurrentEmotion model.Emotion     `json:"current_emotion"`
	SessionID      string            `json:"session_id"`
	Warnings       []string          `json:"warnings"`
}

// Store is the session state of a single profile. All methods are safe for
// concurrent use; writers are serialized so each persist sees the full log.
type Store struct {
	mu sync.RWMutex

	kv      kv.Store
	profile string
	opts    Options
	log     *zap.SugaredLogger

	user     *model.User
	history  []model.MoodEntry
	current  model.Emotion
	warnings []string

	sessionCtx    context.Context
	sessionCancel context.CancelFunc
}

// NewStore creates an empty Store for profile. Call Load to read persisted state.
func NewStore(store kv.Store, profile string, opts Options) *Store {
	if opts.Clock == nil {
		opts.Clock = RealClock{}
	}
	if opts.IDs == nil {
		opts.IDs = UUIDGenerator{}
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop().Sugar()
	}
	if opts.Observer == nil {
		opts.Observer = nopObserver{}
	}

	s := &Store{
		kv:      store,
		profile: profile,
		opts:    opts,
		log:     opts.Logger.With("profile", profile),
		history: []model.MoodEntry{},
		current: model.EmotionNeutral,
	}
	s.startSessionLocked()
	return s
}

// Profile returns the profile this store belongs to.
func (s *Store) Profile() string { return s.profile }

// Load replaces the in-memory state with what is persisted. Missing keys
// yield no user and an empty history. A corrupt key is reset to empty, a
// warning is recorded and its DeserializationError is returned joined with
// any other failure; the store stays usable either way.
func (s *Store) Load(ctx context.Context) (*model.User, []model.MoodEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.warnings = nil
	var errs []error

	user, err := s.loadUserLocked(ctx)
	if err != nil {
		errs = append(errs, err)
	}
	history, err := s.loadHistoryLocked(ctx)
	if err != nil {
		errs = append(errs, err)
	}

	previous := s.sessionIDLocked()
	s.user = user
	s.history = history
	if s.sessionIDLocked() != previous {
		s.restartSessionLocked()
	}

	s.log.Infow("session loaded", "user_id", s.sessionIDLocked(), "entries", len(history))
	return cloneUser(s.user), cloneHistory(s.history), errors.Join(errs...)
}

func (s *Store) loadUserLocked(ctx context.Context) (*model.User, error) {
	key := UserKey(s.profile)
	raw, err := s.kv.Get(ctx, key)
	if err != nil {
		s.warnLocked(key, err)
		return nil, &apperrors.StorageError{Key: key, Err: err}
	}
	if raw == nil {
		return nil, nil
	}
	user, err := decodeUser(key, raw)
	if err != nil {
		s.warnLocked(key, err)
		return nil, err
	}
	return user, nil
}

func (s *Store) loadHistoryLocked(ctx context.Context) ([]model.MoodEntry, error) {
	key := HistoryKey(s.profile)
	raw, err := s.kv.Get(ctx, key)
	if err != nil {
		s.warnLocked(key, err)
		return []model.MoodEntry{}, &apperrors.StorageError{Key: key, Err: err}
	}
	if raw == nil {
		return []model.MoodEntry{}, nil
	}
	history, err := decodeHistory(key, raw)
	if err != nil {
		s.warnLocked(key, err)
		return []model.MoodEntry{}, err
	}
	return history, nil
}

func (s *Store) warnLocked(key string, err error) {
	s.log.Warnw("stored state reset to empty", "key", key, "error", err)
	s.warnings = append(s.warnings, fmt.Sprintf("Saved data for %s could not be read and was reset.", key))
}

// Login fabricates a user from cmd, persists it and starts a new session.
// The previous session context is cancelled.
func (s *Store) Login(ctx context.Context, cmd LoginCommand) (*model.User, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	user := &model.User{
		ID:        s.opts.IDs.New(),
		Username:  orDefault(cmd.Username, DefaultUsername),
		Email:     orDefault(cmd.Email, DefaultEmail),
		FullName:  orDefault(cmd.FullName, DefaultFullName),
		Major:     cmd.Major,
		CreatedAt: s.opts.Clock.Now().UTC(),
	}

	value, err := encode(user)
	if err != nil {
		return nil, fmt.Errorf("encode user: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	key := UserKey(s.profile)
	if err := s.kv.Set(ctx, key, value); err != nil {
		return nil, &apperrors.StorageError{Key: key, Err: err}
	}
	s.user = user
	s.restartSessionLocked()

	s.log.Infow("user logged in", "user_id", user.ID, "username", user.Username, "mode", cmd.Mode)
	return cloneUser(user), nil
}

// Logout clears the current user and its persisted key. History is kept.
// Logging out with no user is a no-op apart from the key removal.
func (s *Store) Logout(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := UserKey(s.profile)
	if err := s.kv.Delete(ctx, key); err != nil {
		return &apperrors.StorageError{Key: key, Err: err}
	}
	if s.user == nil {
		return nil
	}

	s.log.Infow("user logged out", "user_id", s.user.ID)
	s.user = nil
	s.restartSessionLocked()
	return nil
}

// RecordMood appends a reading for the current session and persists the log.
func (s *Store) RecordMood(ctx context.Context, emotion model.Emotion, confidence float64) (model.MoodEntry, error) {
	return s.Record(ctx, Detection{Emotion: emotion, Confidence: confidence})
}

// Record appends d to the history. A detection tagged with a session other
// than the current one is rejected with ErrStaleSession. If the write fails
// the append is rolled back.
func (s *Store) Record(ctx context.Context, d Detection) (model.MoodEntry, error) {
	if err := validateReading(d.Emotion, d.Confidence); err != nil {
		s.opts.Observer.DetectionDiscarded(s.profile, "invalid")
		return model.MoodEntry{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if d.SessionID != "" && d.SessionID != s.sessionIDLocked() {
		s.opts.Observer.DetectionDiscarded(s.profile, "stale")
		s.log.Debugw("stale detection discarded", "detection_session", d.SessionID, "current_session", s.sessionIDLocked())
		return model.MoodEntry{}, apperrors.ErrStaleSession
	}

	entry := model.MoodEntry{
		ID:         s.opts.IDs.New(),
		UserID:     s.sessionIDLocked(),
		Emotion:    d.Emotion,
		Timestamp:  s.opts.Clock.Now().UnixMilli(),
		Confidence: d.Confidence,
		Note:       d.Note,
	}

	n := len(s.history)
	s.history = append(s.history, entry)

	key := HistoryKey(s.profile)
	value, err := encode(s.history)
	if err == nil {
		err = s.kv.Set(ctx, key, value)
	}
	if err != nil {
		s.history = s.history[:n:n]
		s.log.Errorw("failed to persist mood history", "key", key, "error", err)
		return model.MoodEntry{}, &apperrors.StorageError{Key: key, Err: err}
	}

	s.current = d.Emotion
	if threshold := s.opts.HistoryWarnThreshold; threshold > 0 && len(s.history)%threshold == 0 {
		s.log.Warnw("mood history is growing large", "entries", len(s.history))
	}
	s.opts.Observer.MoodRecorded(s.profile, d.Emotion)
	return entry, nil
}

// PurgeHistory removes the persisted history and clears it in memory.
func (s *Store) PurgeHistory(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := HistoryKey(s.profile)
	if err := s.kv.Delete(ctx, key); err != nil {
		return &apperrors.StorageError{Key: key, Err: err}
	}
	s.log.Infow("mood history purged", "entries", len(s.history))
	s.history = []model.MoodEntry{}
	return nil
}

// User returns a copy of the current user, or nil.
func (s *Store) User() *model.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneUser(s.user)
}

// History returns a copy of the mood log, oldest first.
func (s *Store) History() []model.MoodEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneHistory(s.history)
}

// CurrentEmotion is the most recently recorded emotion, Neutral initially.
func (s *Store) CurrentEmotion() model.Emotion {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// SessionID is the current user id, or model.AnonymousUserID.
func (s *Store) SessionID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sessionIDLocked()
}

// SessionContext is cancelled when the current session ends.
func (s *Store) SessionContext() context.Context {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sessionCtx
}

// Warnings lists problems found by the last Load.
func (s *Store) Warnings() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]string(nil), s.warnings...)
}

// Snapshot returns all readable state under one lock.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	warnings := append([]string{}, s.warnings...)
	return Snapshot{
		User:           cloneUser(s.user),
		History:        cloneHistory(s.history),
		CurrentEmotion: s.current,
		SessionID:      s.sessionIDLocked(),
		Warnings:       warnings,
	}
}

// Close cancels the current session context.
func (s *Store) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessionCancel()
}

func (s *Store) sessionIDLocked() string {
	if s.user == nil {
		return model.AnonymousUserID
	}
	return s.user.ID
}

func (s *Store) startSessionLocked() {
	s.sessionCtx, s.sessionCancel = context.WithCancel(context.Background())
}

func (s *Store) restartSessionLocked() {
	s.sessionCancel()
	s.startSessionLocked()
}

func orDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}

func cloneUser(u *model.User) *model.User {
	if u == nil {
		return nil
	}
	c := *u
	return &c
}

func cloneHistory(h []model.MoodEntry) []model.MoodEntry {
	return append(make([]model.MoodEntry, 0, len(h)), h...)
}
