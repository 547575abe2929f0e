package socialmanager

import (
	"time"

	"github.com/eringen/socialmanager/icons"
	"github.com/eringen/socialmanager/options"
	"github.com/eringen/socialmanager/pipeline"
	"github.com/eringen/socialmanager/share"
)

// SiteConfig holds all configuration for a site.
type SiteConfig struct {
	Name        string // Site name (default "Blog")
	URL         string // Canonical URL (default "http://localhost:3000")
	Description string // Site description for RSS and meta tags
	Author      string // Author name for JSON-LD

	Addr         string // Listen address (default ":3000")
	DatabasePath string // SQLite path (default "data/blog.db")

	AdminPassword string // Required: admin login password
	SessionSecret string // Required: session encryption secret
	CookieSecure  bool   // Set true for HTTPS

	PostCacheTTL time.Duration // Post cache TTL (default 5min)

	// OptionsFile is a YAML file with the share settings. When set it is
	// loaded at start, saved to the database, and reloaded on change.
	OptionsFile string

	// Theme declares the rendering mode and attribute prefix the templates
	// expect. Non-empty values win over the stored options.
	Theme options.ThemeSupports
}

func (c *SiteConfig) setDefaults() {
	if c.Name == "" {
		c.Name = "Blog"
	}
	if c.URL == "" {
		c.URL = "http://localhost:3000"
	}
	if c.Addr == "" {
		c.Addr = ":3000"
	}
	if c.DatabasePath == "" {
		c.DatabasePath = "data/blog.db"
	}
	if c.PostCacheTTL == 0 {
		c.PostCacheTTL = 5 * time.Minute
	}
}

// Option configures additional App behavior.
type Option func(*App)

// WithCustomRoutes registers additional routes on the Echo instance.
// The callback receives the App after the built-in routes are registered.
func WithCustomRoutes(fn func(*App)) Option {
	return func(a *App) {
		a.customRoutes = append(a.customRoutes, fn)
	}
}

// WithStaticDir sets the directory for user-owned static assets (default "public").
func WithStaticDir(dir string) Option {
	return func(a *App) {
		a.staticDir = dir
	}
}

// WithIcons replaces the icons of the given sites. An empty markup string
// hides the site's button.
func WithIcons(svgs map[share.Site]string) Option {
	return func(a *App) {
		if a.icons == nil {
			a.icons = icons.WithPrefix(options.AttrPrefix(a.Config.Theme))
		}
		for site, svg := range svgs {
			a.icons.Set(site, svg)
		}
	}
}

// WithStage adds a stage to the share pipeline right after the stage named
// after. An empty after runs it first.
func WithStage(after string, stage pipeline.Stage) Option {
	return func(a *App) {
		a.stages = append(a.stages, stageSpec{after: after, stage: stage})
	}
}
