package tui

import (
	"time"

	"github.com/atotto/clipboard"
	"github.com/cli/browser"

	"github.com/Veraticus/claimflow/internal/i18n"
	"github.com/Veraticus/claimflow/internal/tui/themes"
)

// Config holds TUI configuration.
type Config struct {
	Theme      themes.Theme
	Printer    *i18n.Printer
	Location   *time.Location
	Clipboard  func(string) error
	OpenURL    func(string) error
	WebBaseURL string
	Width      int
	Height     int
}

// Option is a functional option for configuring the TUI.
type Option func(*Config)

// defaultConfig returns the default configuration.
func defaultConfig() Config {
	return Config{
		Theme:     themes.Default,
		Printer:   i18n.New(i18n.English),
		Location:  time.Local,
		Clipboard: clipboard.WriteAll,
		OpenURL:   browser.OpenURL,
		Width:     100,
		Height:    32,
	}
}

// WithTheme sets the visual theme.
func WithTheme(theme themes.Theme) Option {
	return func(c *Config) {
		c.Theme = theme
	}
}

// WithPrinter sets the language the view is shown in.
func WithPrinter(p *i18n.Printer) Option {
	return func(c *Config) {
		if p != nil {
			c.Printer = p
		}
	}
}

// WithSize sets the initial terminal size.
func WithSize(width, height int) Option {
	return func(c *Config) {
		c.Width = width
		c.Height = height
	}
}

// WithWebBaseURL sets the base of the share links the view copies.
func WithWebBaseURL(base string) Option {
	return func(c *Config) {
		c.WebBaseURL = base
	}
}

// WithLocation sets the time zone dates are shown in.
func WithLocation(loc *time.Location) Option {
	return func(c *Config) {
		if loc != nil {
			c.Location = loc
		}
	}
}

// WithClipboard replaces the system clipboard writer.
func WithClipboard(fn func(string) error) Option {
	return func(c *Config) {
		if fn != nil {
			c.Clipboard = fn
		}
	}
}

// WithBrowser replaces the function used to open attachment links.
func WithBrowser(fn func(string) error) Option {
	return func(c *Config) {
		if fn != nil {
			c.OpenURL = fn
		}
	}
}
