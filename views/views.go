// Package views holds the default page templates. Sites that want their own
// look pass their own socialmanager.ViewFuncs instead.
package views

import (
	"strconv"

	"github.com/a-h/templ"

	sm "github.com/eringen/socialmanager"
)

// Default returns the default views for cfg.
func Default(cfg sm.SiteConfig) sm.ViewFuncs {
	v := &site{cfg: cfg}
	return sm.ViewFuncs{
		Home:           v.home,
		Post:           v.post,
		AdminLogin:     v.adminLogin,
		AdminDashboard: v.adminDashboard,
		AdminForm:      v.adminForm,
		AdminSettings:  v.adminSettings,
		NotFound:       v.notFound,
		ServerError:    v.serverError,
	}
}

type site struct {
	cfg sm.SiteConfig
}

func (v *site) head(b *builder, meta sm.PageMeta, jsonLD string) {
	title := v.cfg.Name
	if meta.Title != "" {
		title = meta.Title + " | " + v.cfg.Name
	}
	b.raw(`<!DOCTYPE html><html lang="en"><head><meta charset="utf-8">`,
		`<meta name="viewport" content="width=device-width, initial-scale=1">`,
		`<title>`, esc(title), `</title>`,
		`<link rel="stylesheet" href="/public/styles.css">`,
		`<link rel="icon" href="/favicon.svg">`,
		`<link rel="alternate" type="application/rss+xml" href="/feed.xml" title="`, esc(v.cfg.Name), `">`)
	if meta.Description != "" {
		b.raw(`<meta name="description" content="`, esc(meta.Description), `">`,
			`<meta property="og:description" content="`, esc(meta.Description), `">`)
	}
	if meta.URL != "" {
		b.raw(`<link rel="canonical" href="`, esc(meta.URL), `">`,
			`<meta property="og:url" content="`, esc(meta.URL), `">`)
	}
	if meta.OGType != "" {
		b.raw(`<meta property="og:type" content="`, esc(meta.OGType), `">`)
	}
	b.raw(`<meta property="og:title" content="`, esc(title), `">`)
	if meta.Image != "" {
		b.raw(`<meta property="og:image" content="`, esc(meta.Image), `">`,
			`<meta name="twitter:card" content="summary_large_image">`)
	}
	if jsonLD != "" {
		b.raw(`<script type="application/ld+json">`, jsonLD, `</script>`)
	}
	b.raw(`</head><body><header class="site-header"><a href="/">`, esc(v.cfg.Name), `</a></header><main>`)
}

func foot(b *builder) {
	b.raw(`</main></body></html>`)
}

func (v *site) home(posts []sm.BlogPost, activeTag string, tags []string, siteURL string) templ.Component {
	return component(func(b *builder) {
		v.head(b, sm.PageMeta{Description: v.cfg.Description, URL: sm.BuildURL(siteURL), OGType: "website"},
			sm.WebsiteJsonLD(v.cfg))
		if len(tags) > 0 {
			b.raw(`<nav class="tags">`)
			b.raw(`<a class="`, TagClass(activeTag == ""), `" href="/">all</a>`)
			for _, t := range tags {
				b.raw(`<a class="`, TagClass(t == activeTag), `" href="/?tag=`, esc(sm.PathEscape(t)), `">`, esc(t), `</a>`)
			}
			b.raw(`</nav>`)
		}
		b.raw(`<ul class="posts">`)
		for _, p := range posts {
			b.raw(`<li><a href="`, esc(sm.BuildURL("/", "blog", p.Slug)), `">`, esc(p.Title), `</a>`,
				` <time datetime="`, esc(p.Date), `">`, esc(p.Date), `</time>`)
			if p.Summary != "" {
				b.raw(`<p>`, esc(p.Summary), `</p>`)
			}
			b.raw(`</li>`)
		}
		if len(posts) == 0 {
			b.raw(`<li>No posts yet.</li>`)
		}
		b.raw(`</ul>`)
		foot(b)
	})
}

// post renders a post page. Body already carries the share buttons and
// must sit directly inside the Container element, which the client script
// looks up by id.
func (v *site) post(page sm.PostPage) templ.Component {
	return component(func(b *builder) {
		v.head(b, page.Meta, sm.BlogPostingJsonLD(page.Post, v.cfg))
		if page.Preview {
			b.raw(`<p class="notice">Preview. `, `<a href="`, esc(sm.BuildURL("/", "admin", "post", page.Post.Slug)), `">Back to editor</a></p>`)
		}
		b.raw(`<article><h1>`, esc(page.Post.Title), `</h1>`,
			`<p class="meta"><time datetime="`, esc(page.Post.Date), `">`, esc(page.Post.Date), `</time>`)
		if len(page.Post.Tags) > 0 {
			b.raw(` · `, esc(sm.JoinTags(page.Post.Tags)))
		}
		b.raw(`</p>`)
		b.raw(`<div class="content" id="`, esc(page.Container), `">`, page.Body, `</div></article>`)
		if len(page.Related) > 0 {
			b.raw(`<aside class="related"><h2>Related</h2><ul>`)
			for _, r := range page.Related {
				b.raw(`<li><a href="`, esc(sm.BuildURL("/", "blog", r.Slug)), `">`, esc(r.Title), `</a></li>`)
			}
			b.raw(`</ul></aside>`)
		}
		b.raw(page.Footer)
		if page.Script != "" {
			b.raw(`<script src="`, esc(page.Script), `" data-src="`, esc(page.DataURL), `" defer></script>`)
		}
		foot(b)
	})
}

func csrfField(b *builder, token string) {
	b.raw(`<input type="hidden" name="_csrf" value="`, esc(token), `">`)
}

func (v *site) adminHead(b *builder, title string) {
	v.head(b, sm.PageMeta{Title: title}, "")
	b.raw(`<nav class="admin-nav"><a href="/admin/">Posts</a> <a href="/admin/settings/">Share settings</a></nav>`)
}

func (v *site) adminLogin(showError bool, csrfToken string) templ.Component {
	return component(func(b *builder) {
		v.head(b, sm.PageMeta{Title: "Admin"}, "")
		b.raw(`<form method="post" action="/admin/login/" class="login">`)
		csrfField(b, csrfToken)
		if showError {
			b.raw(`<p class="error">Wrong password.</p>`)
		}
		b.raw(`<label>Password <input type="password" name="password" autofocus required></label>`,
			`<button type="submit">Log in</button></form>`)
		foot(b)
	})
}

func (v *site) adminDashboard(posts []sm.BlogPost, message string, csrfToken string) templ.Component {
	return component(func(b *builder) {
		v.adminHead(b, "Posts")
		if message != "" {
			b.raw(`<p class="notice">`, esc(message), `</p>`)
		}
		b.raw(`<table class="posts"><thead><tr><th>Title</th><th>Date</th><th>Status</th><th></th></tr></thead><tbody>`)
		for _, p := range posts {
			status := "draft"
			if p.Published {
				status = "published"
			}
			b.raw(`<tr><td><a href="`, esc(sm.BuildURL("/", "admin", "post", p.Slug)), `">`, esc(p.Title), `</a></td>`,
				`<td>`, esc(p.Date), `</td><td>`, status, `</td>`,
				`<td><a href="`, esc(sm.BuildURL("/", "admin", "preview", p.Slug)), `">preview</a>`,
				` <a href="`, esc(sm.Shortlink("/", p.ID)), `">#`, strconv.FormatInt(p.ID, 10), `</a></td></tr>`)
		}
		b.raw(`</tbody></table><h2>New post</h2>`)
		postForm(b, sm.BlogPost{}, csrfToken)
		b.raw(`<form method="post" action="/admin/logout/">`)
		csrfField(b, csrfToken)
		b.raw(`<button type="submit">Log out</button></form>`)
		foot(b)
	})
}

func (v *site) adminForm(post sm.BlogPost, csrfToken string) templ.Component {
	return component(func(b *builder) {
		v.adminHead(b, "Edit "+post.Title)
		postForm(b, post, csrfToken)
		if post.Slug != "" {
			b.raw(`<h2>Featured image</h2>`)
			if post.Image != "" {
				b.raw(`<img class="featured" src="`, esc(post.Image), `" alt="">`)
			}
			b.raw(`<form method="post" enctype="multipart/form-data" action="`,
				esc(sm.BuildURL("/", "admin", "post", post.Slug, "image")), `">`)
			csrfField(b, csrfToken)
			b.raw(`<input type="file" name="image" accept="image/*" required>`,
				`<button type="submit">Upload</button></form>`)
		}
		foot(b)
	})
}

func postForm(b *builder, post sm.BlogPost, csrfToken string) {
	b.raw(`<form method="post" action="/admin/save/" class="post-form">`)
	csrfField(b, csrfToken)
	field := func(label, name, value string) {
		b.raw(`<label>`, label, ` <input type="text" name="`, name, `" value="`, esc(value), `"></label>`)
	}
	field("Title", "title", post.Title)
	field("Slug", "slug", post.Slug)
	field("Date", "date", post.Date)
	field("Tags", "tags", sm.JoinTags(post.Tags))
	field("Image", "image", post.Image)
	b.raw(`<label>Summary <textarea name="summary" rows="2">`, esc(post.Summary), `</textarea></label>`,
		`<label>Content <textarea name="content" rows="20">`, esc(post.Content), `</textarea></label>`)
	override := func(label, name string, value *bool) {
		sel := Selected(value)
		b.raw(`<label>`, label, ` <select name="`, name, `">`)
		for _, opt := range []string{"default", "on", "off"} {
			b.raw(`<option value="`, opt, `"`)
			if opt == sel {
				b.raw(` selected`)
			}
			b.raw(`>`, opt, `</option>`)
		}
		b.raw(`</select></label>`)
	}
	override("Content buttons", "buttons_content", post.ButtonsContent)
	override("Image buttons", "buttons_image", post.ButtonsImage)
	b.raw(`<label><input type="checkbox" name="published" value="1"`)
	if post.Published || post.Slug == "" {
		b.raw(` checked`)
	}
	b.raw(`> Published</label><button type="submit">Save</button></form>`)
}

func (v *site) adminSettings(page sm.SettingsPage) templ.Component {
	return component(func(b *builder) {
		v.adminHead(b, "Share settings")
		if page.Message != "" {
			b.raw(`<p class="notice">`, esc(page.Message), `</p>`)
		}
		b.raw(`<p>Buttons are rendered in <strong>`, esc(page.Mode), `</strong> mode.</p>`,
			`<form method="post" action="/admin/settings/">`)
		csrfField(b, page.CSRFToken)
		b.raw(`<textarea name="options" rows="30" spellcheck="false">`, esc(page.YAML), `</textarea>`,
			`<button type="submit">Save</button></form>`)
		foot(b)
	})
}

func (v *site) notFound() templ.Component {
	return component(func(b *builder) {
		v.head(b, sm.PageMeta{Title: "Not found"}, "")
		b.raw(`<h1>Not found</h1><p><a href="/">Back to the front page</a></p>`)
		foot(b)
	})
}

func (v *site) serverError() templ.Component {
	return component(func(b *builder) {
		v.head(b, sm.PageMeta{Title: "Error"}, "")
		b.raw(`<h1>Something went wrong</h1>`)
		foot(b)
	})
}
