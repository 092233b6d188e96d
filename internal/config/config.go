package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const (
	WindowWidth  = 1280
	WindowHeight = 800

	// Particle field
	MaxParticles       = 100
	DensityDivisor     = 20
	MinParticleRadius  = 0.5
	MaxParticleRadius  = 2.5
	MaxParticleSpeed   = 0.25
	MinParticleAlpha   = 0.1
	MaxParticleAlpha   = 0.4
	ProximityThreshold = 100.0
	BaseLineAlpha      = 0.1
	LineWidth          = 0.5

	// Particle hue, rgb(16, 185, 129)
	ParticleR = 16
	ParticleG = 185
	ParticleB = 129

	// Layout breakpoints
	MobileBreakpoint = 768
	HeaderHeight     = 64

	// Scroll thresholds
	HeaderSolidAfter   = 100
	HeaderHideAfter    = 200
	ScrollTopShowAfter = 500
	ParallaxRate       = -0.5

	// Hover
	HoverTiltDivisor  = 25.0
	HoverThrottleMs   = 50
	HoverLiftPx       = 10
	NavLinkLiftPx     = 3
	SkillTagLiftPx    = 4
	SkillTagScale     = 1.08
	ButtonLiftPx      = 3
	ButtonScale       = 1.05
	RevealThreshold   = 0.15
	RevealBottomInset = 50
	SkillsThreshold   = 0.5

	// Timing (milliseconds)
	CounterDurationMs   = 2000
	ToastVisibleMs      = 5000
	ToastSlideMs        = 300
	SubmitDelayMs       = 1500
	TypewriterDelayMs   = 1000
	TypewriterSpeedMs   = 50
	SmoothScrollMs      = 600
	DefaultSkillMinPct  = 70
	DefaultSkillMaxPct  = 100
	DefaultContactEmail = "ajaybhattarai986@gmail.com"
)

// ShrinkPolicy decides what happens to particles left outside the surface
// when the viewport shrinks.
type ShrinkPolicy string

const (
	ShrinkClamp ShrinkPolicy = "clamp"
	ShrinkKeep  ShrinkPolicy = "keep"
)

// Config holds the runtime settings, corresponding to portfolio.yml.
type Config struct {
	Window        WindowConfig   `yaml:"window" koanf:"window"`
	Particles     ParticleConfig `yaml:"particles" koanf:"particles"`
	Contact       ContactConfig  `yaml:"contact" koanf:"contact"`
	Notify        NotifyConfig   `yaml:"notify" koanf:"notify"`
	Skills        SkillConfig    `yaml:"skills" koanf:"skills"`
	PrefsPath     string         `yaml:"prefs_path" koanf:"prefs_path"`
	PrefersDark   bool           `yaml:"prefers_dark" koanf:"prefers_dark"`
	LazyImageDir  string         `yaml:"lazy_image_dir" koanf:"lazy_image_dir"`
	TickerFPS     int            `yaml:"ticker_fps" koanf:"ticker_fps"`
	VerboseLogger bool           `yaml:"verbose" koanf:"verbose"`
}

// WindowConfig sets the initial window size.
type WindowConfig struct {
	Width     int  `yaml:"width" koanf:"width"`
	Height    int  `yaml:"height" koanf:"height"`
	Resizable bool `yaml:"resizable" koanf:"resizable"`
}

// ParticleConfig holds the tunables of the background field that are allowed
// to vary at runtime.
type ParticleConfig struct {
	Enabled      bool         `yaml:"enabled" koanf:"enabled"`
	Seed         int64        `yaml:"seed" koanf:"seed"`
	ShrinkPolicy ShrinkPolicy `yaml:"shrink_policy" koanf:"shrink_policy"`
}

// ContactConfig controls the mail-compose action of the contact form.
type ContactConfig struct {
	Recipient     string `yaml:"recipient" koanf:"recipient"`
	SubmitDelayMs int    `yaml:"submit_delay_ms" koanf:"submit_delay_ms"`
	DryRun        bool   `yaml:"dry_run" koanf:"dry_run"`
}

// NotifyConfig toggles the toast mirrors.
type NotifyConfig struct {
	Desktop bool `yaml:"desktop" koanf:"desktop"`
	Sound   bool `yaml:"sound" koanf:"sound"`
}

// SkillConfig is the randomized width range for skill bars, in percent.
type SkillConfig struct {
	MinPercent int `yaml:"min_percent" koanf:"min_percent"`
	MaxPercent int `yaml:"max_percent" koanf:"max_percent"`
}

// DefaultConfig returns the settings used when no file or env override exists.
func DefaultConfig() *Config {
	return &Config{
		Window: WindowConfig{
			Width:     WindowWidth,
			Height:    WindowHeight,
			Resizable: true,
		},
		Particles: ParticleConfig{
			Enabled:      true,
			ShrinkPolicy: ShrinkClamp,
		},
		Contact: ContactConfig{
			Recipient:     DefaultContactEmail,
			SubmitDelayMs: SubmitDelayMs,
		},
		Notify: NotifyConfig{
			Sound: true,
		},
		Skills: SkillConfig{
			MinPercent: DefaultSkillMinPct,
			MaxPercent: DefaultSkillMaxPct,
		},
		PrefsPath: "portfolio-prefs.yml",
		TickerFPS: 60,
	}
}

// Load reads configuration from the given YAML file, then overlays
// environment variable overrides (PORTFOLIO_*). Nested keys use a double
// underscore, e.g. PORTFOLIO_WINDOW__WIDTH.
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	cfg := DefaultConfig()

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
				return nil, fmt.Errorf("reading config %s: %w", path, err)
			}
		} else if !os.IsNotExist(err) {
			return nil, fmt.Errorf("accessing config %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider("PORTFOLIO_", ".", func(s string) string {
		s = strings.ToLower(strings.TrimPrefix(s, "PORTFOLIO_"))
		return strings.ReplaceAll(s, "__", ".")
	}), nil); err != nil {
		return nil, fmt.Errorf("loading env overrides: %w", err)
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	return cfg, nil
}

// Validate checks that the configuration contains usable values.
func (c *Config) Validate() error {
	if c.Window.Width < 0 || c.Window.Height < 0 {
		return fmt.Errorf("window size must be non-negative, got %dx%d", c.Window.Width, c.Window.Height)
	}
	switch c.Particles.ShrinkPolicy {
	case ShrinkClamp, ShrinkKeep:
	default:
		return fmt.Errorf("invalid shrink_policy %q: must be one of clamp, keep", c.Particles.ShrinkPolicy)
	}
	if c.Contact.Recipient == "" {
		return fmt.Errorf("contact.recipient is required")
	}
	if c.Contact.SubmitDelayMs < 0 {
		return fmt.Errorf("contact.submit_delay_ms must be non-negative")
	}
	if c.Skills.MinPercent < 0 || c.Skills.MaxPercent > 100 || c.Skills.MinPercent > c.Skills.MaxPercent {
		return fmt.Errorf("invalid skills range %d-%d", c.Skills.MinPercent, c.Skills.MaxPercent)
	}
	if c.TickerFPS <= 0 {
		return fmt.Errorf("ticker_fps must be positive")
	}
	return nil
}
