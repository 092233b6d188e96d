package game

import (
	"fmt"

	"github.com/iburimskiy/portfolio-backdrop/internal/config"
	"github.com/iburimskiy/portfolio-backdrop/internal/hover"
	"github.com/iburimskiy/portfolio-backdrop/internal/reveal"
)

// action is what clicking an element does.
type action int

const (
	actNone action = iota
	actAnchor
	actTheme
	actMenu
	actVideo
	actContact
	actTop
)

// element is one interactive box on the page. Fixed elements are laid out in
// screen coordinates and do not scroll.
type element struct {
	ID     string
	Label  string
	Kind   hover.Kind
	Rect   reveal.Rect
	Fixed  bool
	Nav    bool
	Action action
	Target string
}

type section struct {
	ID     string
	Title  string
	Top    float64
	Height float64
}

type statBlock struct {
	ID    string
	Label string
	End   int
	Rect  reveal.Rect
}

type skillBar struct {
	Name string
	Rect reveal.Rect
}

type imageSlot struct {
	ID   string
	Src  string
	Rect reveal.Rect
}

// page is the laid-out document for one viewport size.
type page struct {
	width, height float64
	mobile        bool
	sections      []section
	elements      []element
	stats         []statBlock
	skills        []skillBar
	skillTags     []element
	images        []imageSlot
	fadeIns       []string
	contentHeight float64
}

// content is the static text of the portfolio.
type content struct {
	Name    string
	Tagline string
	About   string
	Stats   []struct {
		Label string
		End   int
	}
	Skills []string
	Tags   []string
	Videos []struct {
		Title string
		Thumb string
	}
}

var defaultContent = content{
	Name:    "Ajay Bhattarai",
	Tagline: "Video editor and motion designer",
	About:   "I cut stories out of raw footage for creators and brands.",
	Stats: []struct {
		Label string
		End   int
	}{
		{"Projects", 120},
		{"Clients", 45},
		{"Hours edited", 2500},
	},
	Skills: []string{"Premiere Pro", "After Effects", "DaVinci Resolve", "Color grading", "Sound design"},
	Tags:   []string{"Storytelling", "Motion graphics", "YouTube", "Reels", "Thumbnails", "Subtitles"},
	Videos: []struct {
		Title string
		Thumb string
	}{
		{"Travel vlog: Pokhara", "pokhara.png"},
		{"Product launch teaser", "teaser.png"},
		{"Wedding highlights", "wedding.png"},
	},
}

const (
	pageMargin   = 40.0
	navLinkWidth = 90.0
	buttonWidth  = 140.0
	buttonHeight = 40.0
	cardHeight   = 220.0
	cardGap      = 24.0
)

var navSections = []struct{ ID, Title string }{
	{"hero", "Home"},
	{"about", "About"},
	{"skills", "Skills"},
	{"videos", "Videos"},
	{"contact", "Contact"},
}

// layoutPage positions every section and element for a width x height
// viewport. Nav links go in the header on desktop and in a dropdown below it
// on mobile.
func layoutPage(width, height int, c content) *page {
	w, h := float64(width), float64(height)
	p := &page{width: w, height: h, mobile: width <= config.MobileBreakpoint}
	inner := max(w-2*pageMargin, 0)

	heights := map[string]float64{
		"hero":    max(h, 480),
		"about":   520,
		"skills":  560,
		"videos":  cardHeight*float64(rowsFor(len(c.Videos), p.mobile)) + 200,
		"contact": 420,
	}
	y := 0.0
	for _, s := range navSections {
		p.sections = append(p.sections, section{ID: s.ID, Title: s.Title, Top: y, Height: heights[s.ID]})
		y += heights[s.ID]
	}
	p.contentHeight = y

	hh := float64(config.HeaderHeight)
	for i, s := range navSections {
		var r reveal.Rect
		if p.mobile {
			r = reveal.Rect{X: 0, Y: hh + float64(i)*44, W: w, H: 44}
		} else {
			r = reveal.Rect{X: w - pageMargin - 60 - float64(len(navSections)-i)*navLinkWidth, Y: 16, W: navLinkWidth - 10, H: 32}
		}
		p.elements = append(p.elements, element{
			ID: "nav-" + s.ID, Label: s.Title, Kind: hover.NavLink,
			Rect: r, Fixed: true, Nav: true, Action: actAnchor, Target: s.ID,
		})
	}
	p.elements = append(p.elements, element{
		ID: "theme-toggle", Label: "Theme", Kind: hover.Button,
		Rect: reveal.Rect{X: w - pageMargin - 50, Y: 16, W: 50, H: 32}, Fixed: true, Nav: true, Action: actTheme,
	})
	if p.mobile {
		p.elements = append(p.elements, element{
			ID: "menu-toggle", Label: "Menu", Kind: hover.Button,
			Rect: reveal.Rect{X: w - pageMargin - 110, Y: 16, W: 50, H: 32}, Fixed: true, Nav: true, Action: actMenu,
		})
	}
	p.elements = append(p.elements, element{
		ID: "scroll-top", Label: "^", Kind: hover.Button,
		Rect: reveal.Rect{X: w - 70, Y: h - 70, W: 44, H: 44}, Fixed: true, Action: actTop,
	})

	hero := p.section("hero")
	cy := hero.Top + hero.Height/2
	p.elements = append(p.elements,
		element{ID: "btn-work", Label: "View my work", Kind: hover.Button,
			Rect: reveal.Rect{X: pageMargin, Y: cy + 60, W: buttonWidth, H: buttonHeight}, Action: actAnchor, Target: "videos"},
		element{ID: "btn-contact", Label: "Contact me", Kind: hover.Button,
			Rect: reveal.Rect{X: pageMargin + buttonWidth + 20, Y: cy + 60, W: buttonWidth, H: buttonHeight}, Action: actAnchor, Target: "contact"},
	)

	about := p.section("about")
	statW := inner / float64(max(len(c.Stats), 1))
	for i, s := range c.Stats {
		p.stats = append(p.stats, statBlock{
			ID: fmt.Sprintf("stat-%d", i), Label: s.Label, End: s.End,
			Rect: reveal.Rect{X: pageMargin + float64(i)*statW, Y: about.Top + 220, W: statW - 20, H: 100},
		})
	}

	skills := p.section("skills")
	for i, name := range c.Skills {
		p.skills = append(p.skills, skillBar{
			Name: name,
			Rect: reveal.Rect{X: pageMargin, Y: skills.Top + 100 + float64(i)*48, W: min(inner, 520), H: 12},
		})
	}
	tx, ty := pageMargin, skills.Top+120+float64(len(c.Skills))*48
	for i, tag := range c.Tags {
		tw := float64(len(tag))*7 + 24
		if tx+tw > w-pageMargin {
			tx, ty = pageMargin, ty+40
		}
		p.skillTags = append(p.skillTags, element{
			ID: fmt.Sprintf("tag-%d", i), Label: tag, Kind: hover.SkillTag,
			Rect: reveal.Rect{X: tx, Y: ty, W: tw, H: 28},
		})
		tx += tw + 10
	}
	p.elements = append(p.elements, p.skillTags...)

	videos := p.section("videos")
	cols := 3
	if p.mobile {
		cols = 1
	}
	cardW := (inner - cardGap*float64(cols-1)) / float64(cols)
	for i, v := range c.Videos {
		col, row := i%cols, i/cols
		r := reveal.Rect{
			X: pageMargin + float64(col)*(cardW+cardGap),
			Y: videos.Top + 100 + float64(row)*(cardHeight+cardGap),
			W: cardW, H: cardHeight,
		}
		id := fmt.Sprintf("video-%d", i)
		p.elements = append(p.elements, element{
			ID: id, Label: v.Title, Kind: hover.Card, Rect: r, Action: actVideo, Target: v.Title,
		})
		p.images = append(p.images, imageSlot{
			ID: id, Src: v.Thumb, Rect: reveal.Rect{X: r.X + 10, Y: r.Y + 10, W: r.W - 20, H: r.H - 60},
		})
	}

	contact := p.section("contact")
	p.elements = append(p.elements, element{
		ID: "btn-send", Label: "Send Message", Kind: hover.Button,
		Rect: reveal.Rect{X: pageMargin, Y: contact.Top + 200, W: buttonWidth + 20, H: buttonHeight}, Action: actContact,
	})

	for _, s := range p.sections {
		if s.ID != "hero" && s.ID != "skills" {
			p.fadeIns = append(p.fadeIns, s.ID)
		}
	}
	return p
}

func rowsFor(n int, mobile bool) int {
	cols := 3
	if mobile {
		cols = 1
	}
	return (n + cols - 1) / cols
}

// section returns the section with id, or the zero section.
func (p *page) section(id string) section {
	for _, s := range p.sections {
		if s.ID == id {
			return s
		}
	}
	return section{}
}

// find returns the element with id.
func (p *page) find(id string) (element, bool) {
	for _, e := range p.elements {
		if e.ID == id {
			return e, true
		}
	}
	return element{}, false
}

// sectionRect is the page-space box of a section.
func (p *page) sectionRect(id string) reveal.Rect {
	s := p.section(id)
	return reveal.Rect{X: 0, Y: s.Top, W: p.width, H: s.Height}
}

// maxScroll is the largest scroll offset that keeps the page filling the
// viewport.
func (p *page) maxScroll() float64 {
	return max(p.contentHeight-p.height, 0)
}

// hit returns the topmost element under the screen point (x, y) at scroll
// offset scrollY. Hidden elements are skipped.
func (p *page) hit(x, y, scrollY float64, menuOpen, showTop bool) (element, bool) {
	for i := len(p.elements) - 1; i >= 0; i-- {
		e := p.elements[i]
		if !p.shown(e, menuOpen, showTop) {
			continue
		}
		r := p.screenRect(e, scrollY)
		if x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H {
			return e, true
		}
	}
	return element{}, false
}

// shown reports whether e is currently on screen and clickable.
func (p *page) shown(e element, menuOpen, showTop bool) bool {
	switch {
	case e.Action == actTop:
		return showTop
	case p.mobile && e.Nav && e.Action == actAnchor:
		return menuOpen
	}
	return true
}

// screenRect converts e's box to screen coordinates.
func (p *page) screenRect(e element, scrollY float64) reveal.Rect {
	r := e.Rect
	if !e.Fixed {
		r.Y -= scrollY
	}
	return r
}

// inNav reports whether a screen point lands on the header or an open menu.
func (p *page) inNav(x, y float64, menuOpen bool) bool {
	if y < float64(config.HeaderHeight) {
		return true
	}
	if p.mobile && menuOpen {
		return y < float64(config.HeaderHeight)+float64(len(navSections))*44
	}
	return false
}
