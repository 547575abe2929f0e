package buttons

import (
	"regexp"

	"github.com/microcosm-cc/bluemonday"
)

var (
	// markupPolicy guards buttons baked into the served page.
	markupPolicy = newPolicy(true)
	// templatePolicy guards client templates, whose hrefs are placeholders
	// the client fills in and so cannot be validated as URLs.
	templatePolicy = newPolicy(false)
)

var (
	reTarget = regexp.MustCompile(`^_blank$`)
	reRole   = regexp.MustCompile(`^button$`)
)

func newPolicy(validateURLs bool) *bluemonday.Policy {
	p := bluemonday.NewPolicy()

	p.AllowElements("a", "span", "div", "p", "br", "h4",
		"b", "strong", "i", "em", "u", "small", "mark", "sub", "sup", "abbr")
	p.AllowAttrs("class", "id", "title").Globally()
	p.AllowDataAttributes()

	p.AllowAttrs("href").OnElements("a")
	p.AllowAttrs("target").Matching(reTarget).OnElements("a")
	p.AllowAttrs("role").Matching(reRole).OnElements("a")
	p.AllowAttrs("rel").OnElements("a")

	p.AllowElements("svg", "path", "use")
	p.AllowAttrs("xmlns", "viewbox").OnElements("svg")
	p.AllowAttrs("d", "fill-rule").OnElements("path")
	p.AllowAttrs("xlink:href").OnElements("use")

	if validateURLs {
		p.AllowURLSchemes("http", "https", "mailto")
		p.AllowRelativeURLs(true)
		p.RequireParseableURLs(true)
	}
	return p
}

// Sanitize filters markup through the button allow-list.
func Sanitize(markup string) string {
	return markupPolicy.Sanitize(markup)
}
