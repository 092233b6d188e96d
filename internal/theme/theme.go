// Package theme implements the light/dark switch and its persisted preference.
package theme

import (
	"fmt"
	"image/color"
)

// Theme is the document-wide colour scheme.
type Theme string

const (
	Light Theme = "light"
	Dark  Theme = "dark"
)

// PreferenceKey is the key the choice is stored under.
const PreferenceKey = "theme"

// Valid reports whether t is one of the two legal values.
func (t Theme) Valid() bool { return t == Light || t == Dark }

// Opposite returns the other theme.
func (t Theme) Opposite() Theme {
	if t == Dark {
		return Light
	}
	return Dark
}

// Parse converts a stored string into a Theme.
func Parse(s string) (Theme, error) {
	t := Theme(s)
	if !t.Valid() {
		return "", fmt.Errorf("unknown theme %q", s)
	}
	return t, nil
}

// Resolve picks the starting theme: a saved "dark" wins, and with nothing
// saved the system preference decides. An empty saved value counts as
// nothing saved. Everything else is light.
func Resolve(saved string, hasSaved, systemPrefersDark bool) Theme {
	if saved == "" {
		hasSaved = false
	}
	if saved == string(Dark) || (!hasSaved && systemPrefersDark) {
		return Dark
	}
	return Light
}

// Palette is the set of colours the page is drawn with under one theme.
type Palette struct {
	Background color.RGBA
	Surface    color.RGBA
	Text       color.RGBA
	Muted      color.RGBA
	Accent     color.RGBA
	Header     color.RGBA
	HeaderOver color.RGBA // header once the page has scrolled
	Shadow     color.RGBA
}

var palettes = map[Theme]Palette{
	Light: {
		Background: color.RGBA{R: 248, G: 250, B: 252, A: 255},
		Surface:    color.RGBA{R: 255, G: 255, B: 255, A: 255},
		Text:       color.RGBA{R: 15, G: 23, B: 42, A: 255},
		Muted:      color.RGBA{R: 100, G: 116, B: 139, A: 255},
		Accent:     color.RGBA{R: 37, G: 99, B: 235, A: 255},
		Header:     color.RGBA{R: 255, G: 255, B: 255, A: 242},
		HeaderOver: color.RGBA{R: 255, G: 255, B: 255, A: 250},
		Shadow:     color.RGBA{R: 0, G: 0, B: 0, A: 26},
	},
	Dark: {
		Background: color.RGBA{R: 15, G: 23, B: 42, A: 255},
		Surface:    color.RGBA{R: 30, G: 41, B: 59, A: 255},
		Text:       color.RGBA{R: 226, G: 232, B: 240, A: 255},
		Muted:      color.RGBA{R: 148, G: 163, B: 184, A: 255},
		Accent:     color.RGBA{R: 16, G: 185, B: 129, A: 255},
		Header:     color.RGBA{R: 15, G: 23, B: 42, A: 242},
		HeaderOver: color.RGBA{R: 15, G: 23, B: 42, A: 250},
		Shadow:     color.RGBA{R: 0, G: 0, B: 0, A: 77},
	},
}

// PaletteFor returns the colours of t, falling back to light.
func PaletteFor(t Theme) Palette {
	if p, ok := palettes[t]; ok {
		return p
	}
	return palettes[Light]
}
