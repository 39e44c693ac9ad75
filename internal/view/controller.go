// Package view renders the dashboard panels of a profile and owns the state
// that only lives while a session lasts: the active panel, career advice and
// the chat conversation.
package view

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"emotiguide/internal/catalog"
	apperrors "emotiguide/internal/errors"
	"emotiguide/internal/guidance"
	"emotiguide/internal/model"
	"emotiguide/internal/session"
)

const retryHint = "The guidance service did not respond. Please try again in a moment."

// Observer is told when a background result is dropped because its
// request was superseded or its session ended.
type Observer interface {
	AdviceDiscarded(profile string)
}

type nopObserver struct{}

func (nopObserver) AdviceDiscarded(string) {}

// Options configures a Controller.
type Options struct {
	// DefaultAcademicContext is used when the user has no major.
	DefaultAcademicContext string
	Location               *time.Location
	Clock                  session.Clock
	Logger                 *zap.SugaredLogger
	Observer               Observer
}

type careerState struct {
	seq    uint64
	status CareerStatus
	advice *model.CareerAdvice
	err    string
}

// Controller is the view state of one profile.
type Controller struct {
	store    *session.Store
	guidance guidance.Client
	catalog  *catalog.Catalog
	opts     Options
	log      *zap.SugaredLogger

	wg sync.WaitGroup

	mu           sync.Mutex
	sessionID    string
	active       Panel
	settings     Settings
	career       careerState
	conversation []model.ChatMessage
}

// NewController creates a controller rendering store.
func NewController(store *session.Store, client guidance.Client, c *catalog.Catalog, opts Options) *Controller {
	if opts.DefaultAcademicContext == "" {
		opts.DefaultAcademicContext = "BCA Student"
	}
	if opts.Location == nil {
		opts.Location = time.Local
	}
	if opts.Clock == nil {
		opts.Clock = session.RealClock{}
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop().Sugar()
	}
	if opts.Observer == nil {
		opts.Observer = nopObserver{}
	}

	ctrl := &Controller{
		store:    store,
		guidance: client,
		catalog:  c,
		opts:     opts,
		log:      opts.Logger.With("profile", store.Profile()),
		settings: DefaultSettings(),
	}
	ctrl.resetLocked(store.SessionID())
	return ctrl
}

// syncLocked resets the per-session state when the store moved on to a
// different session since the last call.
func (c *Controller) syncLocked() {
	if sid := c.store.SessionID(); sid != c.sessionID {
		c.resetLocked(sid)
	}
}

func (c *Controller) resetLocked(sessionID string) {
	c.sessionID = sessionID
	c.active = PanelHome
	c.career = careerState{seq: c.career.seq, status: CareerIdle}
	c.conversation = nil
}

// Select makes panel the active one.
func (c *Controller) Select(panel Panel) error {
	if _, err := ParsePanel(string(panel)); err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.syncLocked()
	c.active = panel
	return nil
}

// Active returns the active panel.
func (c *Controller) Active() Panel {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.syncLocked()
	return c.active
}

// Render returns the active panel with its view model.
func (c *Controller) Render() Page {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.syncLocked()
	return Page{Active: c.active, Session: c.sessionID, Panel: c.renderLocked(c.active)}
}

// RenderPanel returns the view model of panel without switching to it.
func (c *Controller) RenderPanel(panel Panel) (any, error) {
	if _, err := ParsePanel(string(panel)); err != nil {
		return nil, err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.syncLocked()
	return c.renderLocked(panel), nil
}

func (c *Controller) renderLocked(panel Panel) any {
	switch panel {
	case PanelDashboard:
		return buildDashboard(c.store.History(), c.catalog)
	case PanelMusic:
		emotion := c.store.CurrentEmotion()
		return MusicView{CurrentEmotion: emotion, Color: c.catalog.Style(emotion).Color, Track: c.catalog.Track(emotion)}
	case PanelGames:
		return GamesView{Games: c.catalog.Games}
	case PanelChat:
		return ChatView{Messages: append([]model.ChatMessage{}, c.conversation...)}
	case PanelCareer:
		return c.careerViewLocked()
	default:
		return buildHome(c.store.Snapshot(), c.catalog, c.settings, c.opts.Location)
	}
}

// UpdateSettings stores the voice preferences.
func (c *Controller) UpdateSettings(voiceEnabled bool, voiceGender string) (Settings, error) {
	voiceGender = strings.ToLower(strings.TrimSpace(voiceGender))
	if voiceGender != "female" && voiceGender != "male" {
		return Settings{}, apperrors.NewValidationError("voice_gender", errors.New("must be female or male"))
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.settings = Settings{VoiceEnabled: voiceEnabled, VoiceGender: voiceGender}
	return c.settings, nil
}

// Settings returns the voice preferences.
func (c *Controller) Settings() Settings {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.settings
}

// RequestCareerAdvice switches to the career panel and fetches advice in
// the background. The fetch is bound to the current session; a result that
// arrives after a newer request or after the session ended is dropped.
func (c *Controller) RequestCareerAdvice() (CareerView, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.syncLocked()

	user := c.store.User()
	if user == nil {
		return CareerView{}, apperrors.ErrNotLoggedIn
	}

	c.active = PanelCareer
	c.career.seq++
	c.career.status = CareerLoading
	c.career.advice = nil
	c.career.err = ""

	seq, sessionID := c.career.seq, c.sessionID
	sessionCtx := c.store.SessionContext()
	emotion := c.store.CurrentEmotion()
	academic := c.academicContext(user)

	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		advice, err := c.guidance.FetchCareerAdvice(sessionCtx, emotion, academic)
		c.finishAdvice(seq, sessionID, advice, err)
	}()

	return c.careerViewLocked(), nil
}

func (c *Controller) finishAdvice(seq uint64, sessionID string, advice *model.CareerAdvice, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.syncLocked()

	if seq != c.career.seq || sessionID != c.sessionID {
		c.log.Debugw("stale career advice discarded", "seq", seq, "current_seq", c.career.seq)
		c.opts.Observer.AdviceDiscarded(c.store.Profile())
		return
	}
	if err != nil {
		c.log.Warnw("career advice failed", "error", err)
		c.career.status = CareerFailed
		c.career.err = "We could not generate career advice."
		return
	}
	c.career.status = CareerLoaded
	c.career.advice = advice
}

// CareerState returns the career panel without switching to it.
func (c *Controller) CareerState() CareerView {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.syncLocked()
	return c.careerViewLocked()
}

func (c *Controller) careerViewLocked() CareerView {
	view := CareerView{
		Status:          c.career.status,
		Advice:          c.career.advice,
		Error:           c.career.err,
		AcademicContext: c.academicContext(c.store.User()),
	}
	if view.Status == CareerFailed {
		view.RetryHint = retryHint
	}
	return view
}

func (c *Controller) academicContext(user *model.User) string {
	if user != nil && user.Major != "" {
		return user.Major
	}
	return c.opts.DefaultAcademicContext
}

// SendChat sends text to the guidance service and appends both sides of the
// exchange to the conversation. On failure the conversation is unchanged.
func (c *Controller) SendChat(ctx context.Context, text string) (*model.ChatMessage, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, apperrors.NewValidationError("text", apperrors.ErrRequired)
	}

	c.mu.Lock()
	c.syncLocked()
	if c.store.User() == nil {
		c.mu.Unlock()
		return nil, apperrors.ErrNotLoggedIn
	}
	c.active = PanelChat
	history := append([]model.ChatMessage{}, c.conversation...)
	sessionID := c.sessionID
	sessionCtx := c.store.SessionContext()
	c.mu.Unlock()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	stop := context.AfterFunc(sessionCtx, cancel)
	defer stop()

	sent := model.ChatMessage{Role: model.ChatRoleUser, Text: text, Timestamp: c.opts.Clock.Now().UnixMilli()}
	reply, err := c.guidance.SendChatMessage(ctx, history, text)
	if err != nil {
		if sessionCtx.Err() != nil {
			return nil, apperrors.ErrStaleSession
		}
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.syncLocked()
	if c.sessionID != sessionID {
		return nil, apperrors.ErrStaleSession
	}
	c.conversation = append(c.conversation, sent, *reply)
	return reply, nil
}

// Conversation returns the chat messages of the current session.
func (c *Controller) Conversation() []model.ChatMessage {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.syncLocked()
	return append([]model.ChatMessage{}, c.conversation...)
}

// Wait blocks until background advice fetches have finished.
func (c *Controller) Wait() {
	c.wg.Wait()
}
