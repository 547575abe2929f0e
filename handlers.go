package socialmanager

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/eringen/socialmanager/markdown"
	"github.com/eringen/socialmanager/options"
	"github.com/eringen/socialmanager/pipeline"
)

func (a *App) handleHome(c echo.Context) error {
	tag := c.QueryParam("tag")
	posts, err := a.Cache.ListPosts(tag)
	if err != nil {
		return err
	}
	tags, err := a.Cache.ListTags()
	if err != nil {
		return err
	}
	return Render(c, a.Views.Home(posts, tag, tags, a.Config.URL))
}

func (a *App) handlePost(c echo.Context) error {
	slug := c.Param("slug")
	post, err := a.Cache.GetPost(slug)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return RenderStatus(c, http.StatusNotFound, a.Views.NotFound())
		}
		return err
	}
	posts, err := a.Cache.ListPosts("")
	if err != nil {
		return err
	}
	page, err := a.postPage(post, posts, false)
	if err != nil {
		return err
	}
	return Render(c, a.Views.Post(page))
}

// postPage renders post and inserts its share buttons.
func (a *App) postPage(post BlogPost, posts []BlogPost, preview bool) (PostPage, error) {
	body, err := markdown.ToHTML(post.Content)
	if err != nil {
		return PostPage{}, fmt.Errorf("render post %q: %w", post.Slug, err)
	}

	p := a.Pipeline()
	deferred := p.Mode() == options.ModeJSON
	rc := a.renderContext(post, body, false)
	rc.ScriptEnqueued = deferred

	res := p.Transform(rc, body)
	kind := "post"
	if preview {
		kind = "preview"
	}
	a.Metrics.Observe(kind, res)

	page := PostPage{
		Post:      post,
		Related:   FilterRelatedPosts(post, posts),
		SiteURL:   a.Config.URL,
		Body:      res.HTML,
		Container: pipeline.ContainerID(p.Prefix(), post.ID),
		Preview:   preview,
		Meta: PageMeta{
			Title:       post.Title,
			Description: post.Summary,
			URL:         rc.Post.Permalink,
			OGType:      "article",
			Image:       rc.Post.ImageURL,
		},
	}
	if deferred {
		page.Footer = p.Footer(rc, &pipeline.Page{})
		page.Script = "/public/" + ClientScript
		page.DataURL = "/api/buttons/" + strconv.FormatInt(post.ID, 10) + "/"
	}
	return page, nil
}

func (a *App) renderContext(post BlogPost, body string, feed bool) pipeline.RenderContext {
	return pipeline.RenderContext{
		Post:            SharePost(a.Config, post, body),
		PostType:        "post",
		Feed:            feed,
		ContentOverride: post.ButtonsContent,
		ImageOverride:   post.ButtonsImage,
	}
}

// handleShortlink redirects /p/:id/ to the post's permalink.
func (a *App) handleShortlink(c echo.Context) error {
	post, err := a.postByIDParam(c)
	if err != nil {
		return err
	}
	return c.Redirect(http.StatusMovedPermanently, BuildURL("/", "blog", post.Slug))
}

// handleButtonData serves the share data deferred buttons are rendered from.
func (a *App) handleButtonData(c echo.Context) error {
	post, err := a.postByIDParam(c)
	if err != nil {
		return err
	}
	body, err := markdown.ToHTML(post.Content)
	if err != nil {
		return fmt.Errorf("render post %q: %w", post.Slug, err)
	}
	return c.JSON(http.StatusOK, a.Pipeline().Data(a.renderContext(post, body, false)))
}

func (a *App) postByIDParam(c echo.Context) (BlogPost, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return BlogPost{}, echo.NewHTTPError(http.StatusNotFound)
	}
	post, err := a.Cache.GetPostByID(id)
	if errors.Is(err, ErrNotFound) {
		return BlogPost{}, echo.NewHTTPError(http.StatusNotFound)
	}
	return post, err
}

func (a *App) handleSitemap(c echo.Context) error {
	posts, err := a.Cache.ListPosts("")
	if err != nil {
		return err
	}
	return a.renderSitemap(c, posts)
}

func (a *App) handleFeed(c echo.Context) error {
	posts, err := a.Cache.ListPosts("")
	if err != nil {
		return err
	}
	return a.renderRSS(c, posts)
}

func handleBlogRedirect(c echo.Context) error {
	return c.Redirect(http.StatusMovedPermanently, "/")
}

func (a *App) handleFavicon(c echo.Context) error {
	return c.File(a.staticDir + "/favicon.svg")
}

func (a *App) handleRobots(c echo.Context) error {
	return c.File(a.staticDir + "/robots.txt")
}

func (a *App) httpErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	he, ok := err.(*echo.HTTPError)
	if ok && he.Code == http.StatusNotFound && a.Views.NotFound != nil {
		_ = RenderStatus(c, http.StatusNotFound, a.Views.NotFound())
		return
	}
	code := http.StatusInternalServerError
	if ok {
		code = he.Code
	}
	if code >= 500 && a.Views.ServerError != nil {
		c.Logger().Errorf("server error: %v", err)
		_ = RenderStatus(c, code, a.Views.ServerError())
		return
	}
	a.Echo.DefaultHTTPErrorHandler(err, c)
}
