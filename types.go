package socialmanager

import (
	"strings"

	"github.com/eringen/socialmanager/options"
	"github.com/eringen/socialmanager/share"
)

// BlogPost is the core content type stored in SQLite and rendered by templates.
type BlogPost struct {
	ID        int64
	Title     string
	Date      string
	Tags      []string
	Summary   string
	Link      string
	Slug      string
	Content   string // Markdown source
	Image     string // featured image, site-relative or absolute
	Published bool

	// Per-post share button overrides. nil follows the site settings.
	ButtonsContent *bool
	ButtonsImage   *bool
}

// PageMeta carries per-page OpenGraph and SEO metadata into the <head> template.
type PageMeta struct {
	Title       string
	Description string
	URL         string // canonical + og:url
	OGType      string // "website" or "article"
	Image       string // og:image
}

// PostPage is everything a post template needs.
type PostPage struct {
	Post    BlogPost
	Related []BlogPost
	Meta    PageMeta
	SiteURL string

	// Body is the rendered post content with share buttons inserted.
	Body string
	// Container is the id the template must give the element holding Body.
	Container string
	// Footer holds client templates for deferred buttons, if any.
	Footer string
	// Script is the URL of the client script in deferred mode, else "".
	Script string
	// DataURL is where the client script fetches share data from.
	DataURL string
	Preview bool
}

// SettingsPage is the share settings form.
type SettingsPage struct {
	Options   options.Options
	YAML      string
	Mode      string // mode in effect after theme overrides
	Message   string
	CSRFToken string
}

// Image describes an uploaded featured image after processing.
type Image struct {
	Filename     string
	OriginalName string
	Width        int
	Height       int
	Size         int
	UploadedAt   string
}

// SharePost converts p into the form the share pipeline reads. body is the
// rendered HTML of the post.
func SharePost(cfg SiteConfig, p BlogPost, body string) share.Post {
	status := "draft"
	if p.Published {
		status = share.StatusPublish
	}
	sp := share.Post{
		ID:        p.ID,
		Slug:      p.Slug,
		Title:     p.Title,
		Excerpt:   p.Summary,
		Content:   body,
		Permalink: BuildURL(cfg.URL, "blog", p.Slug),
		ImageURL:  absoluteURL(cfg.URL, p.Image),
		Status:    status,
	}
	if p.ID > 0 {
		sp.Shortlink = Shortlink(cfg.URL, p.ID)
	}
	return sp
}

func absoluteURL(base, ref string) string {
	if ref == "" || strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://") {
		return ref
	}
	return strings.TrimRight(base, "/") + "/" + strings.TrimLeft(ref, "/")
}
