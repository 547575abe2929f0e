// Package socialmanager is a publishing engine that adds social share buttons
// to every post it serves. It is built with Go, Echo, and templ.
//
// Posts are written in Markdown, rendered to HTML and then passed through a
// share button pipeline that inserts content buttons around the post body
// and image buttons on every picture. Buttons are either baked into the
// markup or rendered in the browser from JSON share data.
//
// Users provide their own templ templates via the ViewFuncs struct, and
// socialmanager handles the handler logic, middleware, and storage.
package socialmanager

import (
	"fmt"
	"io/fs"
	"log"
	"net/http"
	"os"
	"sync/atomic"
	"time"

	"github.com/a-h/templ"
	"github.com/labstack/echo/v4"

	"github.com/eringen/socialmanager/icons"
	"github.com/eringen/socialmanager/options"
	"github.com/eringen/socialmanager/pipeline"
)

// ViewFuncs holds user-provided templ components that the framework calls
// when rendering pages.
type ViewFuncs struct {
	Home           func(posts []BlogPost, activeTag string, tags []string, siteURL string) templ.Component
	Post           func(page PostPage) templ.Component
	AdminLogin     func(showError bool, csrfToken string) templ.Component
	AdminDashboard func(posts []BlogPost, message string, csrfToken string) templ.Component
	AdminForm      func(post BlogPost, csrfToken string) templ.Component
	AdminSettings  func(page SettingsPage) templ.Component
	NotFound       func() templ.Component
	ServerError    func() templ.Component
}

// App is the central application. It wires together the store, cache,
// share pipeline, handlers, middleware, and user-provided templates.
type App struct {
	Config  SiteConfig
	Echo    *echo.Echo
	Store   *Store
	Cache   *PostCache
	Views   ViewFuncs
	Metrics *Metrics

	pipeline     atomic.Pointer[pipeline.Pipeline]
	icons        *icons.Registry
	stages       []stageSpec
	loginLimiter *LoginLimiter
	watcher      *OptionsWatcher
	customRoutes []func(*App)
	staticDir    string
}

type stageSpec struct {
	after string
	stage pipeline.Stage
}

// New creates an App with the given configuration and view functions.
func New(cfg SiteConfig, views ViewFuncs, opts ...Option) *App {
	cfg.setDefaults()

	a := &App{
		Config:    cfg,
		Echo:      echo.New(),
		Views:     views,
		staticDir: "public",
	}

	for _, opt := range opts {
		opt(a)
	}

	return a
}

// Init opens the store, loads the share settings, and registers middleware
// and routes. Start calls it; tests call it directly and serve requests
// through a.Echo.
func (a *App) Init() error {
	if a.Config.AdminPassword == "" {
		return fmt.Errorf("socialmanager: AdminPassword is required")
	}
	if a.Config.SessionSecret == "" {
		return fmt.Errorf("socialmanager: SessionSecret is required")
	}

	store, err := NewStore(a.Config.DatabasePath)
	if err != nil {
		return fmt.Errorf("socialmanager: init store: %w", err)
	}
	a.Store = store

	a.Cache = NewPostCache(a.Store, a.Config.PostCacheTTL)
	a.loginLimiter = NewLoginLimiter(5, time.Minute)
	a.Metrics = NewMetrics()
	a.Metrics.Registry.MustRegister(&postCollector{store: a.Store})

	if a.icons == nil {
		a.icons = icons.WithPrefix(options.AttrPrefix(a.Config.Theme))
	}

	opts, err := a.loadOptions()
	if err != nil {
		return fmt.Errorf("socialmanager: load options: %w", err)
	}
	if err := a.applyOptions(opts); err != nil {
		return fmt.Errorf("socialmanager: apply options: %w", err)
	}

	a.setupMiddleware()
	a.setupRoutes()

	for _, fn := range a.customRoutes {
		fn(a)
	}
	return nil
}

// Start initializes the app, watches the options file, and starts the server.
func (a *App) Start() error {
	if err := a.Init(); err != nil {
		return err
	}

	if a.Config.OptionsFile != "" {
		w, err := a.WatchOptionsFile()
		if err != nil {
			return fmt.Errorf("socialmanager: watch options: %w", err)
		}
		a.watcher = w
		defer w.Close()
	}

	if err := a.Echo.Start(a.Config.Addr); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Pipeline returns the share button pipeline built from the current options.
func (a *App) Pipeline() *pipeline.Pipeline {
	return a.pipeline.Load()
}

// applyOptions rebuilds the share pipeline from opts. Requests already in
// flight keep the pipeline they started with.
func (a *App) applyOptions(opts options.Options) error {
	p := pipeline.New(pipeline.Config{
		Options: opts,
		Theme:   a.Config.Theme,
		Icons:   a.icons,
		SiteURL: a.Config.URL,
		Logger:  a.Echo.Logger,
	})
	for _, s := range a.stages {
		if err := p.Insert(s.after, s.stage); err != nil {
			return err
		}
	}
	a.pipeline.Store(p)
	return nil
}

func (a *App) setupRoutes() {
	e := a.Echo

	// Serve the embedded client script under /public/; everything else
	// falls through to the user's static dir.
	embeddedFS, _ := fs.Sub(EmbeddedAssets, "embedded")
	embeddedHandler := http.FileServer(http.FS(embeddedFS))
	e.GET("/public/"+ClientScript, echo.WrapHandler(http.StripPrefix("/public/", embeddedHandler)))

	e.Static("/public", a.staticDir)
	e.GET("/favicon.svg", a.handleFavicon)
	e.GET("/robots.txt", a.handleRobots)

	// Public routes
	e.GET("/sitemap.xml", a.handleSitemap)
	e.GET("/feed.xml", a.handleFeed)
	e.GET("/blog", handleBlogRedirect)
	e.GET("/", a.handleHome)
	e.GET("/blog/:slug/", a.handlePost)
	e.GET("/p/:id/", a.handleShortlink)
	e.GET("/api/buttons/:id/", a.handleButtonData)

	// Admin routes
	e.GET("/admin/", a.handleAdmin)
	e.POST("/admin/login/", a.handleAdminLogin)
	e.POST("/admin/logout/", handleAdminLogout)
	e.GET("/admin/post/:slug/", a.handleAdminPost)
	e.POST("/admin/save/", a.handleAdminSave)
	e.DELETE("/admin/post/:slug/", a.handleAdminDelete)
	e.POST("/admin/post/:slug/image/", a.handleFeaturedImage)
	e.GET("/admin/preview/:slug/", a.handleAdminPreview)
	e.GET("/admin/settings/", a.handleAdminSettings)
	e.POST("/admin/settings/", a.handleAdminSettingsSave)
	e.GET("/metrics", a.handleMetrics)
}

// Close cleans up resources. Call this when the app is shutting down.
func (a *App) Close() error {
	if a.watcher != nil {
		a.watcher.Close()
	}
	if a.Store != nil {
		a.Store.Close()
	}
	return nil
}

// EnvOr returns the value of the environment variable key, or fallback if empty.
func EnvOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// MustEnv returns the value of the environment variable key, or fatally exits if empty.
func MustEnv(key string) string {
	v := os.Getenv(key)
	if v == "" {
		log.Fatalf("socialmanager: required environment variable %s is not set", key)
	}
	return v
}
