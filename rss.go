package socialmanager

import (
	"net/http"
	"strings"
	"time"

	"github.com/beevik/etree"
	"github.com/labstack/echo/v4"

	"github.com/eringen/socialmanager/markdown"
)

const contentNS = "http://purl.org/rss/1.0/modules/content/"

// buildRSS returns the RSS 2.0 feed of posts. Each item carries the full post
// body, share buttons included, in content:encoded.
func (a *App) buildRSS(posts []BlogPost) *etree.Document {
	base := a.Config.URL
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)

	rss := doc.CreateElement("rss")
	rss.CreateAttr("version", "2.0")
	rss.CreateAttr("xmlns:content", contentNS)

	channel := rss.CreateElement("channel")
	channel.CreateElement("title").SetText(a.Config.Name)
	channel.CreateElement("link").SetText(base)
	channel.CreateElement("description").SetText(a.Config.Description)

	p := a.Pipeline()
	for _, post := range posts {
		postURL := BuildURL(base, "blog", post.Slug)
		item := channel.CreateElement("item")
		item.CreateElement("title").SetText(post.Title)
		item.CreateElement("link").SetText(postURL)
		item.CreateElement("description").SetText(post.Summary)
		if t, err := time.Parse("2006-01-02", post.Date); err == nil {
			item.CreateElement("pubDate").SetText(t.Format(time.RFC1123Z))
		}
		guid := item.CreateElement("guid")
		guid.CreateAttr("isPermaLink", "true")
		guid.SetText(postURL)

		body, err := markdown.ToHTML(post.Content)
		if err != nil {
			a.Echo.Logger.Warnf("feed: render post %q: %v", post.Slug, err)
			continue
		}
		res := p.Transform(a.renderContext(post, body, true), body)
		a.Metrics.Observe("feed", res)
		item.CreateElement("content:encoded").CreateCData(cdataSafe(res.HTML))
	}

	doc.Indent(2)
	return doc
}

// cdataSafe splits any "]]>" in s so it cannot end the CDATA section early.
func cdataSafe(s string) string {
	return strings.ReplaceAll(s, "]]>", "]]]]><![CDATA[>")
}

func (a *App) renderRSS(c echo.Context, posts []BlogPost) error {
	doc := a.buildRSS(posts)
	c.Response().Header().Set(echo.HeaderContentType, "application/rss+xml; charset=utf-8")
	c.Response().WriteHeader(http.StatusOK)
	_, err := doc.WriteTo(c.Response())
	return err
}
