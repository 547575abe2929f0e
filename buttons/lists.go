package buttons

import (
	"html"
	"strconv"
	"strings"

	"github.com/eringen/socialmanager/icons"
	"github.com/eringen/socialmanager/share"
)

// Values of the data attribute the client script looks for.
const (
	AttrButtonsImage   = "ButtonsImage"
	AttrButtonsContent = "ButtonsContent"
)

// DataAttr is the name of the data attribute that marks button lists and
// content images for the client script.
func DataAttr(prefix string) string {
	return "data-" + html.EscapeString(prefix)
}

// ImageList renders the buttons attached to one image. Buttons follow the
// image catalog order and sites without an icon are skipped. It returns ""
// when no button could be rendered.
func ImageList(prefix string, view View, endpoints share.Endpoints, reg *icons.Registry) string {
	items := items(share.ContextImage, prefix, view, reg, func(site share.Site) (string, bool) {
		ep, ok := endpoints[site]
		return ep, ok && ep != ""
	}, Render)
	if items == "" {
		return ""
	}
	return imageWrapper(prefix, view, items)
}

func imageWrapper(prefix string, view View, items string) string {
	return `<span class="` + classes(prefix, "buttons__list", "buttons__list--"+string(view)) + `" ` +
		DataAttr(prefix) + `="` + AttrButtonsImage + `">` + items + `</span>`
}

// ContentConfig describes the content button block of a post.
type ContentConfig struct {
	Prefix    string
	View      View
	Heading   string
	PostID    int64
	Placement string
}

// ContentList renders the block of share buttons placed before or after the
// post content. It returns "" when no button could be rendered.
func ContentList(cfg ContentConfig, endpoints share.Endpoints, reg *icons.Registry) string {
	items := items(share.ContextContent, cfg.Prefix, cfg.View, reg, func(site share.Site) (string, bool) {
		ep, ok := endpoints[site]
		return ep, ok && ep != ""
	}, Render)
	if items == "" {
		return ""
	}
	return contentWrapper(cfg, items, true)
}

// ContentPlaceholder is the empty content block the client fills in when
// buttons are rendered in the browser.
func ContentPlaceholder(cfg ContentConfig) string {
	return contentWrapper(cfg, "", false)
}

func contentWrapper(cfg ContentConfig, items string, heading bool) string {
	var b strings.Builder
	b.WriteString(`<div class="`)
	b.WriteString(classes(cfg.Prefix, "buttons", "buttons--content", "buttons--content-"+cfg.Placement))
	b.WriteString(`" id="`)
	b.WriteString(ContentID(cfg.Prefix, cfg.PostID))
	b.WriteString(`">`)
	if heading && strings.TrimSpace(cfg.Heading) != "" {
		b.WriteString(`<h4 class="` + classes(cfg.Prefix, "buttons__heading") + `">`)
		b.WriteString(html.EscapeString(cfg.Heading))
		b.WriteString(`</h4>`)
	}
	b.WriteString(`<div class="` + classes(cfg.Prefix, "buttons__list", "buttons__list--"+string(cfg.View)) + `" `)
	b.WriteString(DataAttr(cfg.Prefix) + `="` + AttrButtonsContent + `">`)
	b.WriteString(items)
	b.WriteString(`</div></div>`)
	return b.String()
}

// ContentID is the element id of the content block of a post.
func ContentID(prefix string, postID int64) string {
	return html.EscapeString(prefix) + "-buttons-" + strconv.FormatInt(postID, 10)
}

// ImageTemplate renders the client template for image buttons.
func ImageTemplate(prefix string, view View, includes []share.Site, reg *icons.Registry) string {
	items := items(share.ContextImage, prefix, view, reg, included(includes), RenderTemplate)
	if items == "" {
		return ""
	}
	return script("tmpl-buttons-image", imageWrapper(prefix, view, items))
}

// ContentTemplate renders the client template for content buttons. The
// heading is left out; the client keeps the one from the page.
func ContentTemplate(prefix string, view View, includes []share.Site, reg *icons.Registry) string {
	items := items(share.ContextContent, prefix, view, reg, included(includes), RenderTemplate)
	if items == "" {
		return ""
	}
	list := `<div class="` + classes(prefix, "buttons__list", "buttons__list--"+string(view)) + `" ` +
		DataAttr(prefix) + `="` + AttrButtonsContent + `">` + items + `</div>`
	return script("tmpl-buttons-content", list)
}

func script(id, body string) string {
	return `<script type="text/html" id="` + id + `">` + body + `</script>`
}

func included(includes []share.Site) func(share.Site) (string, bool) {
	set := make(map[share.Site]bool, len(includes))
	for _, s := range includes {
		set[s] = true
	}
	return func(site share.Site) (string, bool) {
		return Placeholder(site), set[site]
	}
}

func items(ctx share.Context, prefix string, view View, reg *icons.Registry,
	endpoint func(share.Site) (string, bool), render func(View, Button) string) string {
	var b strings.Builder
	for _, site := range share.Sites(ctx) {
		ep, ok := endpoint(site)
		if !ok {
			continue
		}
		icon, ok := reg.Get(site)
		if !ok {
			continue
		}
		label, _ := share.Label(ctx, site)
		b.WriteString(render(view, Button{
			Prefix:   prefix,
			Site:     site,
			Icon:     icon,
			Label:    label,
			Endpoint: ep,
		}))
	}
	return b.String()
}
