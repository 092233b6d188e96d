package game

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// wheelStep is how far one wheel notch scrolls, in pixels.
const wheelStep = 60.0

// input is what the player did during one refresh.
type input struct {
	X, Y    float64
	Moved   bool
	Clicked bool
	WheelY  float64
	Quit    bool
	Theme   bool
}

func (g *Game) readInput() input {
	x, y := ebiten.CursorPosition()
	in := input{
		X:     float64(x),
		Y:     float64(y),
		Moved: x != g.lastX || y != g.lastY,
	}
	g.lastX, g.lastY = x, y

	// A click fires on release, like a button.
	in.Clicked = inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft)
	_, in.WheelY = ebiten.Wheel()

	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyEscape), inpututil.IsKeyJustPressed(ebiten.KeyQ):
		in.Quit = true
	case inpututil.IsKeyJustPressed(ebiten.KeyPageDown), inpututil.IsKeyJustPressed(ebiten.KeySpace):
		in.WheelY = -float64(g.outerH) / wheelStep
	case inpututil.IsKeyJustPressed(ebiten.KeyPageUp):
		in.WheelY = float64(g.outerH) / wheelStep
	case inpututil.IsKeyJustPressed(ebiten.KeyT):
		in.Theme = true
	}
	return in
}
