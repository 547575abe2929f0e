// Package buttons renders share buttons and button lists as HTML fragments.
//
// All output goes through an allow-list sanitizer before it is returned, so
// callers can insert it into a page as is. Rendering never fails: a button
// that cannot be rendered comes back as an empty string.
package buttons

import (
	"html"
	"strings"

	"github.com/eringen/socialmanager/share"
)

// View is how a button presents itself.
type View string

const (
	ViewIcon     View = "icon"
	ViewText     View = "text"
	ViewIconText View = "icon-text"
)

// ParseView validates s as a View.
func ParseView(s string) (View, bool) {
	switch v := View(s); v {
	case ViewIcon, ViewText, ViewIconText:
		return v, true
	}
	return "", false
}

// Button holds everything needed to render one share button.
type Button struct {
	Prefix   string // attribute prefix for class names
	Site     share.Site
	Icon     string // SVG markup
	Label    string // plain text
	Endpoint string
}

func (b Button) complete() bool {
	return b.Prefix != "" && b.Site != "" && b.Icon != "" && b.Label != "" && b.Endpoint != ""
}

// Render returns the sanitized markup of b in the given view.
// It returns "" for an unknown view or an incomplete button.
func Render(view View, b Button) string {
	raw := markup(view, b)
	if raw == "" {
		return ""
	}
	return markupPolicy.Sanitize(raw)
}

// RenderTemplate renders b for a client-side template, where the endpoint is
// filled in by the client from the share data of the post.
func RenderTemplate(view View, b Button) string {
	b.Endpoint = Placeholder(b.Site)
	raw := markup(view, b)
	if raw == "" {
		return ""
	}
	return templatePolicy.Sanitize(raw)
}

// Placeholder is the template expression the client replaces with the
// endpoint of site.
func Placeholder(site share.Site) string {
	return "{{data.endpoints." + string(site) + "}}"
}

func markup(view View, b Button) string {
	if !b.complete() {
		return ""
	}
	prefix := html.EscapeString(b.Prefix)
	label := html.EscapeString(b.Label)

	open := `<a class="` + prefix + `-buttons__item item-` + html.EscapeString(string(b.Site)) +
		`" href="` + html.EscapeString(b.Endpoint) + `" target="_blank" rel="noopener noreferrer" role="button">`

	switch view {
	case ViewIcon:
		return open + b.Icon + `</a>`
	case ViewText:
		return open + label + `</a>`
	case ViewIconText:
		return open +
			`<span class="` + prefix + `-buttons__item-icon">` + b.Icon + `</span>` +
			`<span class="` + prefix + `-buttons__item-text">` + label + `</span></a>`
	}
	return ""
}

// classes joins "<prefix>-<suffix>" class names.
func classes(prefix string, suffixes ...string) string {
	names := make([]string, len(suffixes))
	for i, s := range suffixes {
		names[i] = prefix + "-" + s
	}
	return html.EscapeString(strings.Join(names, " "))
}
