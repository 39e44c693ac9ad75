package view

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"emotiguide/internal/catalog"
	apperrors "emotiguide/internal/errors"
	"emotiguide/internal/model"
	"emotiguide/internal/session"
)

// Panel identifies one tab of the dashboard.
type Panel string

const (
	PanelHome      Panel = "home"
	PanelDashboard Panel = "dashboard"
	PanelMusic     Panel = "music"
	PanelGames     Panel = "games"
	PanelChat      Panel = "chat"
	PanelCareer    Panel = "career"
)

// Panels lists every panel in navigation order.
func Panels() []Panel {
	return []Panel{PanelHome, PanelDashboard, PanelMusic, PanelGames, PanelChat, PanelCareer}
}

// ParsePanel validates a panel id.
func ParsePanel(s string) (Panel, error) {
	p := Panel(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Panels() {
		if p == known {
			return p, nil
		}
	}
	return "", apperrors.NewValidationError("panel", apperrors.ErrUnknownPanel)
}

// recentLimit is how many history entries the home panel shows.
const recentLimit = 4

const emptyHistoryMessage = "No mood detected yet."

// Settings are the voice feedback preferences of the capture view.
type Settings struct {
	VoiceEnabled bool   `json:"voice_enabled"`
	VoiceGender  string `json:"voice_gender"`
}

// DefaultSettings has voice feedback on with the female voice.
func DefaultSettings() Settings {
	return Settings{VoiceEnabled: true, VoiceGender: "female"}
}

// HistoryItem is one row of the recent history list.
type HistoryItem struct {
	ID         string        `json:"id"`
	Emotion    model.Emotion `json:"emotion"`
	Emoji      string        `json:"emoji"`
	Time       string        `json:"time"`
	Confidence float64       `json:"confidence"`
	Match      string        `json:"match"`
}

// HomeView is the landing panel.
type HomeView struct {
	User           *model.User           `json:"user,omitempty"`
	CurrentEmotion model.Emotion         `json:"current_emotion"`
	Prompt         string                `json:"prompt"`
	Color          string                `json:"color"`
	Recent         []HistoryItem         `json:"recent"`
	EmptyMessage   string                `json:"empty_message,omitempty"`
	QuickActions   []catalog.QuickAction `json:"quick_actions"`
	Settings       Settings              `json:"settings"`
	Warnings       []string              `json:"warnings"`
}

// EmotionStat is the share of one emotion in the history.
type EmotionStat struct {
	Emotion model.Emotion `json:"emotion"`
	Count   int           `json:"count"`
	Percent string        `json:"percent"`
	Color   string        `json:"color"`
}

// DashboardView summarizes the whole history.
type DashboardView struct {
	Total             int               `json:"total"`
	Emotions          []EmotionStat     `json:"emotions"`
	Dominant          *model.Emotion    `json:"dominant,omitempty"`
	AverageConfidence string            `json:"average_confidence"`
	Entries           []model.MoodEntry `json:"entries"`
}

// MusicView is the track suggested for the current emotion.
type MusicView struct {
	CurrentEmotion model.Emotion `json:"current_emotion"`
	Color          string        `json:"color"`
	Track          catalog.Track `json:"track"`
}

// GamesView lists stress-relief activities.
type GamesView struct {
	Games []catalog.Game `json:"games"`
}

// ChatView is the current conversation.
type ChatView struct {
	Messages []model.ChatMessage `json:"messages"`
}

// CareerStatus is the state of the latest advice request.
type CareerStatus string

const (
	CareerIdle    CareerStatus = "idle"
	CareerLoading CareerStatus = "loading"
	CareerLoaded  CareerStatus = "loaded"
	CareerFailed  CareerStatus = "failed"
)

// CareerView is the advice panel.
type CareerView struct {
	Status          CareerStatus        `json:"status"`
	Advice          *model.CareerAdvice `json:"advice,omitempty"`
	Error           string              `json:"error,omitempty"`
	RetryHint       string              `json:"retry_hint,omitempty"`
	AcademicContext string              `json:"academic_context"`
}

// Page is the active panel and its view model.
type Page struct {
	Active  Panel  `json:"active"`
	Session string `json:"session_id"`
	Panel   any    `json:"panel"`
}

func buildHome(snap session.Snapshot, c *catalog.Catalog, settings Settings, loc *time.Location) HomeView {
	recent := make([]HistoryItem, 0, recentLimit)
	for i := len(snap.History) - 1; i >= 0 && len(recent) < recentLimit; i-- {
		entry := snap.History[i]
		recent = append(recent, HistoryItem{
			ID:         entry.ID,
			Emotion:    entry.Emotion,
			Emoji:      c.Style(entry.Emotion).Emoji,
			Time:       time.UnixMilli(entry.Timestamp).In(loc).Format("15:04"),
			Confidence: entry.Confidence,
			Match:      matchLabel(entry.Confidence),
		})
	}

	home := HomeView{
		User:           snap.User,
		CurrentEmotion: snap.CurrentEmotion,
		Prompt:         fmt.Sprintf("Feeling %s?", snap.CurrentEmotion),
		Color:          c.Style(snap.CurrentEmotion).Color,
		Recent:         recent,
		QuickActions:   c.QuickActions,
		Settings:       settings,
		Warnings:       snap.Warnings,
	}
	if len(snap.History) == 0 {
		home.EmptyMessage = emptyHistoryMessage
	}
	return home
}

func buildDashboard(history []model.MoodEntry, c *catalog.Catalog) DashboardView {
	counts := make(map[model.Emotion]int, len(model.Emotions()))
	sum := decimal.Zero
	for _, entry := range history {
		counts[entry.Emotion]++
		sum = sum.Add(decimal.NewFromFloat(entry.Confidence))
	}

	total := len(history)
	view := DashboardView{
		Total:             total,
		Emotions:          make([]EmotionStat, 0, len(model.Emotions())),
		AverageConfidence: "0.00",
		Entries:           history,
	}

	best := 0
	for _, e := range model.Emotions() {
		count := counts[e]
		view.Emotions = append(view.Emotions, EmotionStat{
			Emotion: e,
			Count:   count,
			Percent: percent(count, total),
			Color:   c.Style(e).Color,
		})
		if count > best {
			best = count
			dominant := e
			view.Dominant = &dominant
		}
	}
	if total > 0 {
		view.AverageConfidence = sum.Div(decimal.NewFromInt(int64(total))).StringFixed(2)
	}
	return view
}

// matchLabel renders a confidence as a whole percentage, e.g. "87% Match".
func matchLabel(confidence float64) string {
	return decimal.NewFromFloat(confidence).Shift(2).Round(0).String() + "% Match"
}

func percent(count, total int) string {
	if total == 0 {
		return "0.0"
	}
	return decimal.NewFromInt(int64(count)).
		Shift(2).
		Div(decimal.NewFromInt(int64(total))).
		StringFixed(1)
}
