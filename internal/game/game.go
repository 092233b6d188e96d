// Package game is the window host: an ebiten Game that lays out the
// portfolio page, routes input through the event bus and keeps the particle
// background running beneath the content.
package game

import (
	"embed"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log"
	"math/rand"
	"os"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"

	"github.com/iburimskiy/portfolio-backdrop/internal/config"
	"github.com/iburimskiy/portfolio-backdrop/internal/contact"
	"github.com/iburimskiy/portfolio-backdrop/internal/event"
	"github.com/iburimskiy/portfolio-backdrop/internal/frame"
	"github.com/iburimskiy/portfolio-backdrop/internal/hover"
	"github.com/iburimskiy/portfolio-backdrop/internal/lazy"
	"github.com/iburimskiy/portfolio-backdrop/internal/notify"
	"github.com/iburimskiy/portfolio-backdrop/internal/particles"
	"github.com/iburimskiy/portfolio-backdrop/internal/render"
	"github.com/iburimskiy/portfolio-backdrop/internal/reveal"
	"github.com/iburimskiy/portfolio-backdrop/internal/scroll"
	"github.com/iburimskiy/portfolio-backdrop/internal/session"
	"github.com/iburimskiy/portfolio-backdrop/internal/theme"
)

// Options replaces the host's collaborators. Zero fields get the desktop
// implementations.
type Options struct {
	Logger     *log.Logger
	Store      theme.Store
	NewSurface particles.SurfaceFactory
	Prompt     Prompt
	Launch     contact.Launcher
	LoadImage  lazy.Loader[*ebiten.Image]
	Mirrors    []notify.Mirror
	Now        func() time.Time
}

// Game implements ebiten.Game for the portfolio page.
type Game struct {
	cfg     *config.Config
	logger  *log.Logger
	opts    Options
	content content

	sched    *frame.Scheduler
	bus      *event.Bus
	state    *session.State
	switcher *theme.Switcher
	toasts   *notify.Displayer
	sender   *contact.Submitter
	hovers   *hover.Tracker
	fades    *reveal.Observer
	skillObs *reveal.Observer
	images   *lazy.Set[*ebiten.Image]
	rng      *rand.Rand

	page        *page
	field       *particles.Field
	header      scroll.HeaderState
	smooth      scroll.Smooth
	counters    map[string]*reveal.Counter
	skillWidths []int
	typer       *reveal.Typewriter
	visible     map[string]bool
	hovered     string
	form        contact.Form
	prompting   bool

	outerW, outerH int
	lastX, lastY   int
	ready          bool
	closed         bool
	time           float64
	unsubscribe    []func()
}

// New builds the host. A theme store that cannot be read is logged and the
// system preference is used instead.
func New(cfg *config.Config, opts Options) (*Game, error) {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard, "", 0)
	}
	if opts.Store == nil {
		opts.Store = theme.NewFileStore(cfg.PrefsPath)
	}
	if opts.NewSurface == nil {
		opts.NewSurface = func(w, h int) particles.Surface { return render.NewImageSurface(w, h) }
	}
	if opts.Prompt == nil {
		opts.Prompt = zenityPrompt
	}
	if opts.Launch == nil {
		opts.Launch = openURL
	}
	if cfg.Contact.DryRun {
		logger := opts.Logger
		opts.Launch = func(url string) error {
			logger.Printf("dry run, not opening %s", url)
			return nil
		}
	}
	if opts.LoadImage == nil {
		opts.LoadImage = imageLoader(thumbFS(cfg.LazyImageDir))
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	g := &Game{
		cfg:      cfg,
		logger:   opts.Logger,
		opts:     opts,
		content:  defaultContent,
		sched:    frame.NewScheduler(),
		bus:      event.NewBus(opts.Logger),
		hovers:   hover.NewTracker(),
		skillObs: reveal.NewObserver(config.SkillsThreshold, config.RevealBottomInset),
		counters: map[string]*reveal.Counter{},
		visible:  map[string]bool{},
		outerW:   cfg.Window.Width,
		outerH:   cfg.Window.Height,
	}
	g.hovers.SetClock(opts.Now)

	sw, err := theme.NewSwitcher(opts.Store, cfg.PrefersDark)
	if err != nil {
		g.logger.Printf("reading theme preference: %v", err)
	}
	g.switcher = sw
	g.state = session.New(sw.Current(), cfg.Window.Width, cfg.Window.Height)

	mirrors := append([]notify.Mirror(nil), opts.Mirrors...)
	if cfg.Notify.Desktop {
		mirrors = append(mirrors, notify.NewDesktop(defaultContent.Name, g.logger))
	}
	if cfg.Notify.Sound {
		mirrors = append(mirrors, notify.NewChime(g.logger))
	}
	g.toasts = notify.NewDisplayer(mirrors...)
	g.toasts.SetClock(opts.Now)

	g.sender = &contact.Submitter{
		Recipient: cfg.Contact.Recipient,
		Delay:     time.Duration(cfg.Contact.SubmitDelayMs) * time.Millisecond,
		Launch:    opts.Launch,
		Notifier:  g.toasts,
		Post:      g.sched.Post,
		Logger:    g.logger,
		OnReset:   func() { g.form = contact.Form{} },
	}

	seed := cfg.Particles.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	g.rng = rand.New(rand.NewSource(seed))

	g.images = lazy.NewSet(opts.LoadImage, g.logger)

	g.subscribe()
	return g, nil
}

func (g *Game) subscribe() {
	on := func(name event.Name, fn event.Handler) {
		g.unsubscribe = append(g.unsubscribe, g.bus.Subscribe(name, fn))
	}
	on(event.Ready, g.onReady)
	on(event.Resize, g.onResize)
	on(event.Teardown, g.onTeardown)
	on(event.Scroll, g.onScroll)
	on(event.Click, g.onClick)
	on(event.PointerMove, g.onPointerMove)
	on(event.Submit, g.onSubmit)
	on(event.ThemeChanged, func(ev event.Event) {
		if g.cfg.VerboseLogger {
			g.logger.Printf("theme is now %s", ev.Value)
		}
	})
	on(event.MenuToggled, func(ev event.Event) {
		if g.cfg.VerboseLogger {
			g.logger.Printf("menu %s", ev.Value)
		}
	})
}

// Bus exposes the event bus so callers can observe page events.
func (g *Game) Bus() *event.Bus { return g.bus }

// Field is the running particle background, nil when there is none.
func (g *Game) Field() *particles.Field { return g.field }

// State is the UI session.
func (g *Game) State() *session.State { return g.state }

// Toasts is the notification displayer.
func (g *Game) Toasts() *notify.Displayer { return g.toasts }

func (g *Game) Update() error {
	if g.closed {
		return ebiten.Termination
	}
	return g.step(g.readInput())
}

// step advances the page by one refresh with the given input.
func (g *Game) step(in input) error {
	if !g.ready {
		g.ready = true
		g.bus.Publish(event.Event{Name: event.Ready, Width: g.outerW, Height: g.outerH})
	} else if w, h := g.state.Viewport(); w != g.outerW || h != g.outerH {
		g.bus.Publish(event.Event{Name: event.Resize, Width: g.outerW, Height: g.outerH})
	}

	if in.Quit {
		g.Close()
		return ebiten.Termination
	}

	if in.Theme {
		g.toggleTheme()
	}
	if in.WheelY != 0 {
		g.smooth.Cancel()
		g.scrollTo(g.state.ScrollY() - in.WheelY*wheelStep)
	}
	if g.smooth.Active() {
		y, _ := g.smooth.At(g.opts.Now())
		g.scrollTo(y)
	}
	if in.Moved {
		g.bus.Publish(event.Event{Name: event.PointerMove, X: in.X, Y: in.Y})
	}
	if in.Clicked {
		g.bus.Publish(event.Event{Name: event.Click, X: in.X, Y: in.Y})
	}

	g.time += 1.0 / 60.0
	g.sched.Pump()
	return nil
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth <= 0 || outsideHeight <= 0 {
		return max(g.outerW, 1), max(g.outerH, 1)
	}
	g.outerW, g.outerH = outsideWidth, outsideHeight
	return outsideWidth, outsideHeight
}

// Close tears the page down. It is safe to call more than once.
func (g *Game) Close() {
	if g.closed {
		return
	}
	g.bus.Publish(event.Event{Name: event.Teardown})
}

func (g *Game) onReady(ev event.Event) {
	g.state.Resize(ev.Width, ev.Height)
	g.relayout()
	g.typer = reveal.NewTypewriter(g.content.Tagline, g.opts.Now())
	g.startParticles()
	g.onScroll(event.Event{Name: event.Scroll, Y: g.state.ScrollY()})
	g.logger.Printf("page ready at %dx%d", ev.Width, ev.Height)
}

func (g *Game) onResize(ev event.Event) {
	if g.state.Resize(ev.Width, ev.Height) {
		g.bus.Publish(event.Event{Name: event.MenuToggled, Value: "closed"})
	}
	g.relayout()
	if g.field != nil {
		g.field.Resize(ev.Width, ev.Height)
	} else {
		g.startParticles()
	}
	g.scrollTo(g.state.ScrollY())
}

func (g *Game) onTeardown(event.Event) {
	if g.field != nil {
		g.field.Stop()
	}
	g.closed = true
	for _, u := range g.unsubscribe {
		u()
	}
	g.unsubscribe = nil
	g.logger.Printf("page closed")
}

// startParticles creates the background field when the viewport is wide
// enough and none exists yet.
func (g *Game) startParticles() {
	if !g.cfg.Particles.Enabled || g.field != nil || g.state.Mobile() {
		return
	}
	w, h := g.state.Viewport()
	f := particles.Initialize(w, h, g.rng, g.opts.NewSurface,
		particles.WithShrinkPolicy(g.cfg.Particles.ShrinkPolicy),
		particles.WithLogger(g.logger),
	)
	if f.Idle() {
		g.logger.Printf("particle field not started at %dx%d", w, h)
		return
	}
	f.Run(g.sched)
	g.field = f
}

// relayout recomputes the page for the current viewport and re-registers
// everything that depends on element positions.
func (g *Game) relayout() {
	w, h := g.state.Viewport()
	g.page = layoutPage(w, h, g.content)

	for _, e := range g.page.elements {
		if _, ok := g.hovers.Get(e.ID); !ok {
			g.hovers.Register(e.ID, e.Kind)
		}
	}
	if g.hovered != "" {
		if _, ok := g.page.find(g.hovered); !ok {
			g.hovered = ""
		}
	}

	g.fades = reveal.NewObserver(config.RevealThreshold, config.RevealBottomInset)
	for _, id := range g.page.fadeIns {
		if !g.visible[id] {
			g.fades.Observe(id, g.page.sectionRect(id), g.markVisible)
		}
	}
	for _, s := range g.page.stats {
		c, ok := g.counters[s.ID]
		if !ok {
			c = reveal.NewCounter(s.End)
			g.counters[s.ID] = c
		}
		if !c.Started() {
			g.fades.Observe(s.ID, s.Rect, g.startCounter)
		}
	}

	g.skillObs.ObserveEach("skills", g.page.sectionRect("skills"), g.fillSkills)

	for _, slot := range g.page.images {
		if it, ok := g.images.Get(slot.ID); ok && it.Loaded {
			continue
		}
		g.images.Add(slot.ID, slot.Rect, slot.Src)
	}
}

func (g *Game) markVisible(id string) { g.visible[id] = true }

func (g *Game) startCounter(id string) {
	if c, ok := g.counters[id]; ok {
		c.Start(g.opts.Now())
	}
}

// fillSkills rolls new bar widths each time the skills section comes into view.
func (g *Game) fillSkills(id string) {
	g.visible[id] = true
	g.skillWidths = reveal.SkillWidths(g.rng, len(g.page.skills), g.cfg.Skills.MinPercent, g.cfg.Skills.MaxPercent)
}

// scrollTo moves the page, clamped to its extent, and publishes the scroll.
func (g *Game) scrollTo(y float64) {
	if g.page != nil {
		y = min(y, g.page.maxScroll())
	}
	y = max(y, 0)
	if y == g.state.ScrollY() {
		return
	}
	g.state.ScrollTo(y)
	g.bus.Publish(event.Event{Name: event.Scroll, Y: y})
}

func (g *Game) onScroll(event.Event) {
	y := g.state.ScrollY()
	g.header = scroll.Header(g.header, g.state.LastScrollY(), y)
	_, h := g.state.Viewport()
	g.fades.Check(y, float64(h))
	g.skillObs.Check(y, float64(h))
	g.images.Check(y, float64(h))
}

// scrollToSection starts a smooth scroll that puts section id below the header.
func (g *Game) scrollToSection(id string) {
	target := scroll.AnchorTarget(g.page.section(id).Top, config.HeaderHeight)
	g.smooth.Start(g.state.ScrollY(), min(target, g.page.maxScroll()), g.opts.Now(), 0)
}

func (g *Game) onClick(ev event.Event) {
	menuOpen := g.state.MenuOpen()
	if g.state.ClickOutside(g.page.inNav(ev.X, ev.Y, menuOpen)) {
		g.bus.Publish(event.Event{Name: event.MenuToggled, Value: "closed"})
		return
	}
	e, ok := g.page.hit(ev.X, ev.Y, g.state.ScrollY(), menuOpen, scroll.ShowBackToTop(g.state.ScrollY()))
	if !ok {
		return
	}
	switch e.Action {
	case actAnchor:
		g.scrollToSection(e.Target)
		if g.state.CloseMenu() {
			g.bus.Publish(event.Event{Name: event.MenuToggled, Value: "closed"})
		}
	case actTheme:
		g.toggleTheme()
	case actMenu:
		state := "closed"
		if g.state.ToggleMenu() {
			state = "open"
		}
		g.bus.Publish(event.Event{Name: event.MenuToggled, Value: state})
	case actVideo:
		g.toasts.Show("Would open video: "+e.Target, notify.Info)
	case actContact:
		g.openContactForm()
	case actTop:
		g.smooth.Start(g.state.ScrollY(), 0, g.opts.Now(), 0)
	}
}

func (g *Game) onPointerMove(ev event.Event) {
	e, ok := g.page.hit(ev.X, ev.Y, g.state.ScrollY(), g.state.MenuOpen(), scroll.ShowBackToTop(g.state.ScrollY()))
	id := ""
	if ok {
		id = e.ID
	}
	if id != g.hovered {
		if g.hovered != "" {
			g.hovers.Leave(g.hovered)
		}
		if id != "" {
			g.hovers.Enter(id)
		}
		g.hovered = id
	}
	if ok && e.Kind == hover.Card {
		r := g.page.screenRect(e, g.state.ScrollY())
		g.hovers.Move(id, ev.X-r.X, ev.Y-r.Y, r.W, r.H)
	}
}

func (g *Game) toggleTheme() {
	t, err := g.switcher.Toggle()
	if err != nil {
		g.logger.Printf("saving theme preference: %v", err)
	}
	g.state.SetTheme(t)
	g.bus.Publish(event.Event{Name: event.ThemeChanged, Value: string(t)})
}

// openContactForm collects the form with blocking dialogs off the game
// goroutine and hands the result back through the scheduler.
func (g *Game) openContactForm() {
	if g.prompting || g.sender.State() == contact.Sending {
		return
	}
	g.prompting = true
	prev := g.form
	go func() {
		f, err := collectForm(g.opts.Prompt, prev)
		g.sched.Post(func() {
			g.prompting = false
			if err != nil {
				if !errors.Is(err, errCanceled) {
					g.logger.Printf("contact dialog: %v", err)
					g.toasts.Show("Could not open the contact form", notify.Error)
				}
				return
			}
			g.form = f
			g.bus.Publish(event.Event{Name: event.Submit})
		})
	}()
}

func (g *Game) onSubmit(event.Event) {
	if err := g.sender.Submit(g.form); err != nil && g.cfg.VerboseLogger {
		g.logger.Printf("contact form rejected: %v", err)
	}
}

//go:embed thumbs/*.png
var embeddedThumbs embed.FS

// thumbFS is where thumbnails are read from: dir when configured, otherwise
// the placeholders built into the binary.
func thumbFS(dir string) fs.FS {
	if dir != "" {
		return os.DirFS(dir)
	}
	sub, err := fs.Sub(embeddedThumbs, "thumbs")
	if err != nil {
		panic(err)
	}
	return sub
}

// imageLoader decodes thumbnails from fsys.
func imageLoader(fsys fs.FS) lazy.Loader[*ebiten.Image] {
	return func(src string) (*ebiten.Image, error) {
		img, _, err := ebitenutil.NewImageFromFileSystem(fsys, src)
		return img, err
	}
}
