package game

import (
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/iburimskiy/portfolio-backdrop/internal/config"
	"github.com/iburimskiy/portfolio-backdrop/internal/hover"
	"github.com/iburimskiy/portfolio-backdrop/internal/render"
	"github.com/iburimskiy/portfolio-backdrop/internal/reveal"
	"github.com/iburimskiy/portfolio-backdrop/internal/scroll"
	"github.com/iburimskiy/portfolio-backdrop/internal/theme"
)

func (g *Game) Draw(screen *ebiten.Image) {
	pal := theme.PaletteFor(g.state.Theme())
	screen.Fill(pal.Background)
	if g.page == nil {
		return
	}

	// The particle layer goes first so everything else covers it.
	g.drawParticles(screen)

	g.drawHero(screen, pal)
	g.drawAbout(screen, pal)
	g.drawSkills(screen, pal)
	g.drawVideos(screen, pal)
	g.drawContact(screen, pal)
	g.drawHeader(screen, pal)
	g.drawScrollTop(screen, pal)
	g.drawToast(screen)
}

func (g *Game) drawParticles(screen *ebiten.Image) {
	if g.field == nil {
		return
	}
	s, ok := g.field.Surface().(*render.ImageSurface)
	if !ok || s.Image() == nil {
		return
	}
	screen.DrawImage(s.Image(), nil)
}

// top converts a page y to a screen y.
func (g *Game) top(y float64) float32 {
	return float32(y - g.state.ScrollY())
}

// print draws text, on a dark pill under the light theme so the white debug
// font stays readable.
func (g *Game) print(screen *ebiten.Image, s string, x, y int, pal theme.Palette) {
	if g.state.Theme() == theme.Light {
		vector.DrawFilledRect(screen, float32(x-3), float32(y-1), float32(textWidth(s)+6), 18, pal.Text, false)
	}
	ebitenutil.DebugPrintAt(screen, s, x, y)
}

// shownSection reports whether a fade-in section has been revealed.
func (g *Game) shownSection(id string) bool {
	for _, f := range g.page.fadeIns {
		if f == id {
			return g.visible[id]
		}
	}
	return true
}

func (g *Game) drawHero(screen *ebiten.Image, pal theme.Palette) {
	hero := g.page.section("hero")
	shift := scroll.ParallaxOffset(g.state.ScrollY())
	y0 := float64(g.top(hero.Top)) - shift

	// Slow-moving translucent gradient behind the hero text.
	const band = 8
	for y := 0.0; y < hero.Height; y += band {
		ratio := y / hero.Height
		hue := 150 + 40*math.Sin(g.time*0.3+ratio*math.Pi)
		r, gv, b := hsvToRgb(hue, 0.6, 0.8)
		c := withAlpha(color.RGBA{R: r, G: gv, B: b, A: 255}, 0.12*(1-ratio))
		vector.DrawFilledRect(screen, 0, float32(y0+y), float32(g.page.width), band, c, false)
	}

	cy := int(y0 + hero.Height/2)
	g.print(screen, g.content.Name, pageMargin, cy-40, pal)
	if g.typer != nil {
		g.print(screen, g.typer.Visible(g.opts.Now())+"|", pageMargin, cy-10, pal)
	}
	for _, id := range []string{"btn-work", "btn-contact"} {
		if e, ok := g.page.find(id); ok {
			g.drawElement(screen, e, pal)
		}
	}
}

func (g *Game) drawSectionTitle(screen *ebiten.Image, id string, pal theme.Palette) section {
	s := g.page.section(id)
	g.print(screen, s.Title, pageMargin, int(g.top(s.Top+40)), pal)
	vector.DrawFilledRect(screen, pageMargin, g.top(s.Top+62), 40, 3, pal.Accent, false)
	return s
}

func (g *Game) drawAbout(screen *ebiten.Image, pal theme.Palette) {
	if !g.shownSection("about") {
		return
	}
	s := g.drawSectionTitle(screen, "about", pal)
	g.print(screen, g.content.About, pageMargin, int(g.top(s.Top+100)), pal)

	now := g.opts.Now()
	for _, st := range g.page.stats {
		y := g.top(st.Rect.Y)
		vector.DrawFilledRect(screen, float32(st.Rect.X), y, float32(st.Rect.W), float32(st.Rect.H), pal.Surface, false)
		vector.StrokeRect(screen, float32(st.Rect.X), y, float32(st.Rect.W), float32(st.Rect.H), 1, pal.Shadow, false)
		text := reveal.FormatCount(0, st.End)
		if c, ok := g.counters[st.ID]; ok {
			text = c.Text(now)
		}
		g.print(screen, text, int(st.Rect.X)+16, int(y)+30, pal)
		g.print(screen, st.Label, int(st.Rect.X)+16, int(y)+60, pal)
	}
}

func (g *Game) drawSkills(screen *ebiten.Image, pal theme.Palette) {
	g.drawSectionTitle(screen, "skills", pal)
	for i, bar := range g.page.skills {
		y := g.top(bar.Rect.Y)
		g.print(screen, bar.Name, int(bar.Rect.X), int(y)-20, pal)
		vector.DrawFilledRect(screen, float32(bar.Rect.X), y, float32(bar.Rect.W), float32(bar.Rect.H), pal.Shadow, false)
		if i < len(g.skillWidths) {
			fill := bar.Rect.W * float64(g.skillWidths[i]) / 100
			vector.DrawFilledRect(screen, float32(bar.Rect.X), y, float32(fill), float32(bar.Rect.H), pal.Accent, false)
		}
	}
	for _, tag := range g.page.skillTags {
		g.drawElement(screen, tag, pal)
	}
}

func (g *Game) drawVideos(screen *ebiten.Image, pal theme.Palette) {
	if !g.shownSection("videos") {
		return
	}
	g.drawSectionTitle(screen, "videos", pal)
	for _, e := range g.page.elements {
		if e.Action == actVideo {
			g.drawElement(screen, e, pal)
		}
	}
}

func (g *Game) drawContact(screen *ebiten.Image, pal theme.Palette) {
	if !g.shownSection("contact") {
		return
	}
	s := g.drawSectionTitle(screen, "contact", pal)
	g.print(screen, "Write to "+g.cfg.Contact.Recipient, pageMargin, int(g.top(s.Top+100)), pal)
	if e, ok := g.page.find("btn-send"); ok {
		e.Label = g.sender.ButtonLabel()
		g.drawElement(screen, e, pal)
	}
}

func (g *Game) drawHeader(screen *ebiten.Image, pal theme.Palette) {
	hh := float32(config.HeaderHeight)
	if g.header.Hidden {
		return
	}
	bg := pal.Header
	if g.header.Solid {
		bg = pal.HeaderOver
		vector.DrawFilledRect(screen, 0, hh, float32(g.page.width), 4, pal.Shadow, false)
	}
	vector.DrawFilledRect(screen, 0, 0, float32(g.page.width), hh, bg, false)
	g.print(screen, g.content.Name, pageMargin, 24, pal)

	menuOpen := g.state.MenuOpen()
	if g.page.mobile && menuOpen {
		n := float32(len(navSections))
		vector.DrawFilledRect(screen, 0, hh, float32(g.page.width), 44*n, pal.HeaderOver, false)
	}
	for _, e := range g.page.elements {
		if !e.Fixed || e.Action == actTop || !g.page.shown(e, menuOpen, false) {
			continue
		}
		if e.Action == actTheme {
			e.Label = "Dark"
			if g.state.Theme() == theme.Dark {
				e.Label = "Light"
			}
		}
		g.drawElement(screen, e, pal)
	}
}

func (g *Game) drawScrollTop(screen *ebiten.Image, pal theme.Palette) {
	if !scroll.ShowBackToTop(g.state.ScrollY()) {
		return
	}
	if e, ok := g.page.find("scroll-top"); ok {
		g.drawElement(screen, e, pal)
	}
}

// drawElement draws an interactive box with its hover transform applied.
func (g *Game) drawElement(screen *ebiten.Image, e element, pal theme.Palette) {
	r := g.page.screenRect(e, g.state.ScrollY())
	fx := g.hovers.Effect(e.ID)
	r.Y -= fx.LiftPx
	if fx.Scale != 1 && fx.Scale > 0 {
		dw, dh := r.W*(fx.Scale-1), r.H*(fx.Scale-1)
		r = reveal.Rect{X: r.X - dw/2, Y: r.Y - dh/2, W: r.W + dw, H: r.H + dh}
	}
	x, y, w, h := float32(r.X), float32(r.Y), float32(r.W), float32(r.H)

	switch e.Kind {
	case hover.Card:
		// Tilt reads as a shadow pushed away from the pointer.
		sx, sy := float32(-fx.RotateY*2), float32(fx.RotateX*2)
		vector.DrawFilledRect(screen, x+sx+4, y+sy+6, w, h, pal.Shadow, false)
		vector.DrawFilledRect(screen, x, y, w, h, pal.Surface, false)
		g.drawThumb(screen, e.ID, x+10, y+10, w-20, h-60, pal)
		if fx.Glow {
			vector.DrawFilledCircle(screen, x+float32(fx.GlowX), y+float32(fx.GlowY), 60, withAlpha(pal.Accent, 0.15), true)
		}
		g.print(screen, e.Label, int(x)+12, int(y+h)-36, pal)
	case hover.NavLink:
		if fx.LiftPx > 0 {
			vector.DrawFilledRect(screen, x, y+h-2, w, 2, pal.Accent, false)
		}
		g.print(screen, e.Label, int(x)+8, int(y)+8, pal)
	case hover.SkillTag:
		vector.DrawFilledRect(screen, x, y, w, h, withAlpha(pal.Accent, 0.2), false)
		vector.StrokeRect(screen, x, y, w, h, 1, pal.Accent, false)
		ebitenutil.DebugPrintAt(screen, e.Label, int(x)+12, int(y)+6)
	default:
		vector.DrawFilledRect(screen, x, y, w, h, pal.Accent, false)
		if fx.LiftPx > 0 {
			vector.StrokeRect(screen, x, y, w, h, 2, withAlpha(color.RGBA{R: 255, G: 255, B: 255, A: 255}, 0.6), false)
		}
		tx := int(x) + (int(w)-textWidth(e.Label))/2
		ty := int(y) + (int(h)-16)/2
		ebitenutil.DebugPrintAt(screen, e.Label, tx, ty)
	}
}

func (g *Game) drawThumb(screen *ebiten.Image, id string, x, y, w, h float32, pal theme.Palette) {
	it, ok := g.images.Get(id)
	if !ok || !it.Loaded || it.Value == nil {
		vector.DrawFilledRect(screen, x, y, w, h, pal.Shadow, false)
		return
	}
	b := it.Value.Bounds()
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(w)/float64(b.Dx()), float64(h)/float64(b.Dy()))
	op.GeoM.Translate(float64(x), float64(y))
	screen.DrawImage(it.Value, op)
}

func (g *Game) drawToast(screen *ebiten.Image) {
	t, offset, ok := g.toasts.Current()
	if !ok {
		return
	}
	w := float32(max(textWidth(t.Message)+40, 220))
	h := float32(48)
	x := float32(g.page.width) - w - 20 + (w+20)*float32(offset)
	y := float32(config.HeaderHeight) + 16
	vector.DrawFilledRect(screen, x, y, w, h, t.Kind.Color(), false)
	ebitenutil.DebugPrintAt(screen, t.Message, int(x)+20, int(y)+16)
}
