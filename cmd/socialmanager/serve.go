package main

import (
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	sm "github.com/eringen/socialmanager"
	"github.com/eringen/socialmanager/options"
	"github.com/eringen/socialmanager/views"
)

func runServe(_ []string) error {
	cfg := sm.SiteConfig{
		Name:          sm.EnvOr("SITE_NAME", "Blog"),
		URL:           sm.EnvOr("SITE_URL", "http://localhost:3000"),
		Description:   os.Getenv("SITE_DESCRIPTION"),
		Author:        os.Getenv("SITE_AUTHOR"),
		Addr:          sm.EnvOr("ADDR", ":3000"),
		DatabasePath:  sm.EnvOr("DATABASE_PATH", "data/blog.db"),
		AdminPassword: sm.MustEnv("ADMIN_PASSWORD"),
		SessionSecret: sm.MustEnv("ADMIN_SESSION_SECRET"),
		CookieSecure:  os.Getenv("COOKIE_SECURE") == "true",
		OptionsFile:   os.Getenv("SHARE_OPTIONS_FILE"),
		Theme: options.ThemeSupports{
			ButtonsMode: os.Getenv("THEME_BUTTONS_MODE"),
			AttrPrefix:  os.Getenv("THEME_ATTR_PREFIX"),
		},
	}
	if ttl, err := strconv.Atoi(os.Getenv("POST_CACHE_TTL_SECONDS")); err == nil && ttl > 0 {
		cfg.PostCacheTTL = time.Duration(ttl) * time.Second
	}

	app := sm.New(cfg, views.Default(cfg), sm.WithStaticDir(sm.EnvOr("STATIC_DIR", "public")))
	defer app.Close()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sig
		app.Echo.Logger.Info("shutting down")
		app.Echo.Close()
	}()

	return app.Start()
}
