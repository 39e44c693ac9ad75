package guidance

import (
	"encoding/json"
	"fmt"
	"strings"

	apperrors "emotiguide/internal/errors"
	"emotiguide/internal/model"
)

const careerSystemPrompt = `You are a career counsellor for university students.
Reply with a single JSON object and nothing else, using exactly these keys:
{"title": string, "description": string, "steps": [string, ...]}
Keep the description to two or three sentences and give three to five concrete steps.`

const chatSystemPrompt = `You are EmotiGuide, a warm and supportive companion for students.
Listen carefully, acknowledge feelings without judgement, and offer small practical suggestions
for stress, study habits and wellbeing. Keep replies short and conversational.
If someone mentions self-harm or crisis, encourage them to contact local emergency services
or a trusted person right away.`

func careerPrompt(emotion model.Emotion, academicContext string) string {
	return fmt.Sprintf(
		"I am a %s and I am currently feeling %s. Suggest a career direction that suits my studies "+
			"and an actionable roadmap I can start on this week, taking my current mood into account.",
		academicContext, emotion,
	)
}

// parseCareerAdvice decodes a JSON reply, tolerating a markdown code fence
// around it. Every field must be present.
func parseCareerAdvice(text string) (*model.CareerAdvice, error) {
	var advice model.CareerAdvice
	if err := json.Unmarshal([]byte(stripCodeFence(text)), &advice); err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrMalformedResponse, err)
	}

	advice.Title = strings.TrimSpace(advice.Title)
	advice.Description = strings.TrimSpace(advice.Description)
	steps := advice.Steps[:0]
	for _, step := range advice.Steps {
		if step = strings.TrimSpace(step); step != "" {
			steps = append(steps, step)
		}
	}
	advice.Steps = steps

	if advice.Title == "" || advice.Description == "" || len(advice.Steps) == 0 {
		return nil, fmt.Errorf("%w: advice is incomplete", apperrors.ErrMalformedResponse)
	}
	return &advice, nil
}

func stripCodeFence(text string) string {
	text = strings.TrimSpace(text)
	if !strings.HasPrefix(text, "```") {
		return text
	}
	if i := strings.IndexByte(text, '\n'); i >= 0 {
		text = text[i+1:]
	} else {
		text = strings.TrimPrefix(text, "```")
	}
	text = strings.TrimSuffix(strings.TrimSpace(text), "```")
	return strings.TrimSpace(text)
}
