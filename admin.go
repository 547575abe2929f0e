package socialmanager

import (
	"crypto/subtle"
	"errors"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/eringen/socialmanager/options"
)

func (a *App) handleAdmin(c echo.Context) error {
	if !IsAdmin(c) {
		return Render(c, a.Views.AdminLogin(false, CsrfToken(c)))
	}
	return a.renderAdminDashboard(c, c.QueryParam("msg"))
}

func (a *App) handleAdminPost(c echo.Context) error {
	if !IsAdmin(c) {
		return c.Redirect(http.StatusSeeOther, "/admin/")
	}
	slug := c.Param("slug")
	post, err := a.Store.GetPostAny(slug)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return c.NoContent(http.StatusNotFound)
		}
		return err
	}
	return Render(c, a.Views.AdminForm(post, CsrfToken(c)))
}

// handleAdminPreview renders any post, draft or not, the way readers would
// see it. Drafts get no share buttons.
func (a *App) handleAdminPreview(c echo.Context) error {
	if !IsAdmin(c) {
		return c.Redirect(http.StatusSeeOther, "/admin/")
	}
	post, err := a.Store.GetPostAny(c.Param("slug"))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return RenderStatus(c, http.StatusNotFound, a.Views.NotFound())
		}
		return err
	}
	page, err := a.postPage(post, nil, true)
	if err != nil {
		return err
	}
	return Render(c, a.Views.Post(page))
}

func (a *App) handleAdminLogin(c echo.Context) error {
	ip := c.RealIP()
	if !a.loginLimiter.Check(ip) {
		return c.String(http.StatusTooManyRequests, "Too many login attempts. Try again later.")
	}
	pass := c.FormValue("password")
	if subtle.ConstantTimeCompare([]byte(pass), []byte(a.Config.AdminPassword)) == 1 {
		if err := setAdminSession(c); err != nil {
			return err
		}
		a.loginLimiter.Reset(ip)
		return c.Redirect(http.StatusSeeOther, "/admin/")
	}
	a.loginLimiter.Record(ip)
	c.Logger().Warnf("failed admin login from %s", ip)
	return Render(c, a.Views.AdminLogin(true, CsrfToken(c)))
}

func handleAdminLogout(c echo.Context) error {
	if err := clearAdminSession(c); err != nil {
		return err
	}
	return c.Redirect(http.StatusSeeOther, "/admin/")
}

func (a *App) handleAdminSave(c echo.Context) error {
	if !IsAdmin(c) {
		return c.Redirect(http.StatusSeeOther, "/admin/")
	}
	if err := c.Request().ParseForm(); err != nil {
		return err
	}
	title := strings.TrimSpace(c.FormValue("title"))
	slug := strings.TrimSpace(c.FormValue("slug"))
	if slug == "" {
		slug = Slugify(title)
	}
	if slug == "" {
		return c.Redirect(http.StatusSeeOther, "/admin/?msg=Slug+is+required.+Add+a+title+or+slug.")
	}
	date := strings.TrimSpace(c.FormValue("date"))
	if date == "" {
		date = time.Now().Format("2006-01-02")
	}
	if _, err := time.Parse("2006-01-02", date); err != nil {
		return c.Redirect(http.StatusSeeOther, "/admin/?msg=Invalid+date+format.+Use+YYYY-MM-DD.")
	}
	tags := strings.Split(c.FormValue("tags"), ",")
	for i := range tags {
		tags[i] = strings.TrimSpace(tags[i])
	}
	tags = FilterEmpty(tags)
	if _, err := a.Store.SavePost(BlogPost{
		Slug:           slug,
		Title:          title,
		Date:           date,
		Tags:           tags,
		Summary:        c.FormValue("summary"),
		Content:        c.FormValue("content"),
		Image:          strings.TrimSpace(c.FormValue("image")),
		Published:      c.FormValue("published") != "",
		ButtonsContent: parseOverride(c.FormValue("buttons_content")),
		ButtonsImage:   parseOverride(c.FormValue("buttons_image")),
	}); err != nil {
		return err
	}
	a.Cache.Invalidate()
	return a.renderAdminDashboard(c, "saved")
}

// parseOverride reads a per-post button override from a form select.
// Anything but "on" or "off" follows the site settings.
func parseOverride(v string) *bool {
	var b bool
	switch v {
	case "on":
		b = true
	case "off":
		b = false
	default:
		return nil
	}
	return &b
}

func (a *App) handleAdminDelete(c echo.Context) error {
	if !IsAdmin(c) {
		return c.Redirect(http.StatusSeeOther, "/admin/")
	}
	slug := c.Param("slug")
	if err := a.Store.DeletePost(slug); err != nil {
		return err
	}
	a.Cache.Invalidate()
	return a.renderAdminDashboard(c, "deleted")
}

func (a *App) renderAdminDashboard(c echo.Context, msg string) error {
	posts, err := a.Store.ListAllPosts()
	if err != nil {
		return err
	}
	return Render(c, a.Views.AdminDashboard(posts, msg, CsrfToken(c)))
}

func (a *App) handleAdminSettings(c echo.Context) error {
	if !IsAdmin(c) {
		return c.Redirect(http.StatusSeeOther, "/admin/")
	}
	opts, err := a.Store.GetOptions()
	if err != nil {
		return err
	}
	return a.renderSettings(c, http.StatusOK, opts, "", c.QueryParam("msg"))
}

// handleAdminSettingsSave stores share settings posted as YAML.
func (a *App) handleAdminSettingsSave(c echo.Context) error {
	if !IsAdmin(c) {
		return c.Redirect(http.StatusSeeOther, "/admin/")
	}
	raw := c.FormValue("options")
	opts, err := options.Parse([]byte(raw))
	if err != nil {
		current, _ := a.Store.GetOptions()
		return a.renderSettings(c, http.StatusUnprocessableEntity, current, raw, err.Error())
	}
	if err := a.Store.SaveOptions(opts); err != nil {
		return err
	}
	if err := a.applyOptions(opts); err != nil {
		return err
	}
	c.Logger().Infof("share settings updated from admin")
	return c.Redirect(http.StatusSeeOther, "/admin/settings/?msg="+url.QueryEscape("saved"))
}

func (a *App) renderSettings(c echo.Context, code int, opts options.Options, raw, msg string) error {
	if raw == "" {
		data, err := opts.Marshal()
		if err != nil {
			return err
		}
		raw = string(data)
	}
	return RenderStatus(c, code, a.Views.AdminSettings(SettingsPage{
		Options:   opts,
		YAML:      raw,
		Mode:      options.ResolveMode(opts, a.Config.Theme),
		Message:   msg,
		CSRFToken: CsrfToken(c),
	}))
}
