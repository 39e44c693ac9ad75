package model

import "strings"

// Emotion is one of the six classifications produced by the capture bridge.
type Emotion string

const (
	EmotionHappy     Emotion = "Happy"
	EmotionSad       Emotion = "Sad"
	EmotionAngry     Emotion = "Angry"
	EmotionNeutral   Emotion = "Neutral"
	EmotionSurprised Emotion = "Surprised"
	EmotionStressed  Emotion = "Stressed"
)

// Emotions returns the enumeration in display order.
func Emotions() []Emotion {
	return []Emotion{
		EmotionHappy,
		EmotionSad,
		EmotionAngry,
		EmotionNeutral,
		EmotionSurprised,
		EmotionStressed,
	}
}

// Valid reports whether e is part of the enumeration.
func (e Emotion) Valid() bool {
	for _, known := range Emotions() {
		if e == known {
			return true
		}
	}
	return false
}

// ParseEmotion matches s case-insensitively against the enumeration.
func ParseEmotion(s string) (Emotion, bool) {
	s = strings.TrimSpace(s)
	for _, known := range Emotions() {
		if strings.EqualFold(s, string(known)) {
			return known, true
		}
	}
	return "", false
}

// MoodEntry is one detection event. Entries are append-only.
type MoodEntry struct {
	ID         string  `json:"id"`
	UserID     string  `json:"userId"`
	Emotion    Emotion `json:"emotion"`
	Timestamp  int64   `json:"timestamp"` // epoch millis
	Confidence float64 `json:"confidence"`
	Note       string  `json:"note,omitempty"`
}
