package catalog

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"emotiguide/internal/model"
)

func TestDefaultCatalog(t *testing.T) {
	c := Default()

	for _, e := range model.Emotions() {
		style := c.Style(e)
		assert.NotEmpty(t, style.Color, e)
		assert.NotEmpty(t, style.Emoji, e)
		assert.NotEmpty(t, style.Track.URL, e)
	}

	assert.Equal(t, "😊", c.Style(model.EmotionHappy).Emoji)
	assert.Equal(t, "😐", c.Style(model.EmotionStressed).Emoji)
	assert.Equal(t, "Peaceful Meditation", c.Track(model.EmotionStressed).Title)
	assert.Equal(t, "#22c55e", c.Style(model.EmotionHappy).Color)

	require.Len(t, c.QuickActions, 4)
	assert.Equal(t, "career_advice", c.QuickActions[2].Action)
	assert.NotEmpty(t, c.Games)
}

func TestDecodeRejectsIncompleteCatalog(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		contains string
	}{
		{
			name:     "missing emotion",
			content:  "[emotions.Happy]\ncolor = \"#fff\"\n[emotions.Happy.track]\nurl = \"x\"\n",
			contains: "no entry for emotion Sad",
		},
		{
			name:     "unknown key",
			content:  "colour = \"red\"\n",
			contains: "unknown key colour",
		},
		{
			name:     "syntax error",
			content:  "[emotions\n",
			contains: "decode catalog",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(strings.NewReader(tt.content))
			assert.ErrorContains(t, err, tt.contains)
		})
	}
}
