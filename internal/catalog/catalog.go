// Package catalog holds the static content of the dashboard panels: the
// per-emotion colors, emoji and music track, the quick actions and the
// stress-relief games.
package catalog

import (
	"bytes"
	_ "embed"
	"fmt"
	"io"
	"sync"

	"github.com/BurntSushi/toml"

	"emotiguide/internal/model"
)

//go:embed catalog.toml
var embedded []byte

// Track is a music suggestion.
type Track struct {
	Title    string `toml:"title" json:"title"`
	Artist   string `toml:"artist" json:"artist"`
	URL      string `toml:"url" json:"url"`
	Category string `toml:"category" json:"category"`
}

// EmotionStyle is how an emotion is presented.
type EmotionStyle struct {
	Color string `toml:"color" json:"color"`
	Emoji string `toml:"emoji" json:"emoji,omitempty"`
	Track Track  `toml:"track" json:"track"`
}

// QuickAction is a home panel shortcut. Action, when set, names an
// operation to trigger instead of a plain panel switch.
type QuickAction struct {
	ID     string `toml:"id" json:"id"`
	Label  string `toml:"label" json:"label"`
	Icon   string `toml:"icon" json:"icon"`
	Panel  string `toml:"panel" json:"panel"`
	Action string `toml:"action" json:"action,omitempty"`
}

// Game is a stress-relief activity.
type Game struct {
	ID          string `toml:"id" json:"id"`
	Title       string `toml:"title" json:"title"`
	Description string `toml:"description" json:"description"`
	Minutes     int    `toml:"minutes" json:"minutes"`
}

// Catalog is the decoded content file.
type Catalog struct {
	DefaultEmoji string                  `toml:"default_emoji"`
	Emotions     map[string]EmotionStyle `toml:"emotions"`
	QuickActions []QuickAction           `toml:"quick_actions"`
	Games        []Game                  `toml:"games"`
}

// Decode reads a catalog from r and checks every emotion has a style.
func Decode(r io.Reader) (*Catalog, error) {
	var c Catalog
	md, err := toml.NewDecoder(r).Decode(&c)
	if err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("decode catalog: unknown key %s", undecoded[0])
	}
	for _, e := range model.Emotions() {
		style, ok := c.Emotions[string(e)]
		if !ok {
			return nil, fmt.Errorf("catalog: no entry for emotion %s", e)
		}
		if style.Track.URL == "" {
			return nil, fmt.Errorf("catalog: no track for emotion %s", e)
		}
	}
	return &c, nil
}

var loadDefault = sync.OnceValues(func() (*Catalog, error) {
	return Decode(bytes.NewReader(embedded))
})

// Default returns the embedded catalog. It panics if the embedded file is
// invalid, which is a build defect.
func Default() *Catalog {
	c, err := loadDefault()
	if err != nil {
		panic(err)
	}
	return c
}

// Style returns the presentation of e.
func (c *Catalog) Style(e model.Emotion) EmotionStyle {
	style := c.Emotions[string(e)]
	if style.Emoji == "" {
		style.Emoji = c.DefaultEmoji
	}
	return style
}

// Track returns the music suggestion for e.
func (c *Catalog) Track(e model.Emotion) Track {
	return c.Emotions[string(e)].Track
}
