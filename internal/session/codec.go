package session

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strings"

	apperrors "emotiguide/internal/errors"
	"emotiguide/internal/model"
)

const (
	userKeySuffix    = "emotiguide_user"
	historyKeySuffix = "emotiguide_history"

	// formatVersion is the envelope version written by this build.
	formatVersion = 1
)

// UserKey is the key holding the serialized current user of profile.
func UserKey(profile string) string { return profile + ":" + userKeySuffix }

// HistoryKey is the key holding the serialized mood history of profile.
func HistoryKey(profile string) string { return profile + ":" + historyKeySuffix }

// profileOf returns the profile a session key belongs to.
func profileOf(key string) (string, bool) {
	for _, suffix := range []string{userKeySuffix, historyKeySuffix} {
		if profile, ok := strings.CutSuffix(key, ":"+suffix); ok && profile != "" {
			return profile, true
		}
	}
	return "", false
}

type envelope struct {
	Version *int            `json:"version"`
	Data    json.RawMessage `json:"data"`
}

func encode(v any) ([]byte, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	version := formatVersion
	return json.Marshal(envelope{Version: &version, Data: data})
}

// unwrap returns the payload of a v1 envelope, or raw itself for the
// unversioned format older clients wrote.
func unwrap(raw []byte) (json.RawMessage, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return nil, errors.New("empty value")
	}
	if trimmed[0] != '{' {
		return trimmed, nil
	}

	var env envelope
	if err := json.Unmarshal(trimmed, &env); err != nil {
		return nil, err
	}
	if env.Version == nil {
		return trimmed, nil
	}
	if *env.Version != formatVersion {
		return nil, fmt.Errorf("unsupported format version %d", *env.Version)
	}
	return env.Data, nil
}

func decodeUser(key string, raw []byte) (*model.User, error) {
	payload, err := unwrap(raw)
	if err != nil {
		return nil, &apperrors.DeserializationError{Key: key, Err: err}
	}
	if bytes.Equal(bytes.TrimSpace(payload), []byte("null")) {
		return nil, nil
	}

	var user model.User
	if err := json.Unmarshal(payload, &user); err != nil {
		return nil, &apperrors.DeserializationError{Key: key, Err: err}
	}
	if user.ID == "" {
		return nil, &apperrors.DeserializationError{Key: key, Err: errors.New("user id is missing")}
	}
	return &user, nil
}

func decodeHistory(key string, raw []byte) ([]model.MoodEntry, error) {
	payload, err := unwrap(raw)
	if err != nil {
		return nil, &apperrors.DeserializationError{Key: key, Err: err}
	}

	var entries []model.MoodEntry
	if err := json.Unmarshal(payload, &entries); err != nil {
		return nil, &apperrors.DeserializationError{Key: key, Err: err}
	}
	for i, entry := range entries {
		if err := validateReading(entry.Emotion, entry.Confidence); err != nil {
			return nil, &apperrors.DeserializationError{Key: key, Err: fmt.Errorf("entry %d: %w", i, err)}
		}
	}
	if entries == nil {
		entries = []model.MoodEntry{}
	}
	return entries, nil
}

func validateReading(emotion model.Emotion, confidence float64) error {
	if !emotion.Valid() {
		return apperrors.NewValidationError("emotion", apperrors.ErrInvalidEmotion)
	}
	if math.IsNaN(confidence) || confidence < 0 || confidence > 1 {
		return apperrors.NewValidationError("confidence", apperrors.ErrConfidenceOutOfRange)
	}
	return nil
}
