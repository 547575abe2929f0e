// Package share builds outbound share URLs for a post: one per social site,
// for the post as a whole or for each image in it.
package share

// Site identifies a social site a post can be shared to.
type Site string

const (
	Facebook   Site = "facebook"
	Twitter    Site = "twitter"
	GooglePlus Site = "googleplus"
	LinkedIn   Site = "linkedin"
	Pinterest  Site = "pinterest"
	Reddit     Site = "reddit"
	WhatsApp   Site = "whatsapp"
	Email      Site = "email"
)

// Context says whether buttons attach to the whole post or to its images.
type Context string

const (
	ContextContent Context = "content"
	ContextImage   Context = "image"
)

type catalogEntry struct {
	site  Site
	label string
	base  string
}

var contentCatalog = []catalogEntry{
	{Facebook, "Facebook", "https://www.facebook.com/sharer/sharer.php"},
	{Twitter, "Twitter", "https://twitter.com/intent/tweet"},
	{GooglePlus, "Google+", "https://plus.google.com/share"},
	{LinkedIn, "LinkedIn", "https://www.linkedin.com/shareArticle"},
	{Pinterest, "Pinterest", "https://www.pinterest.com/pin/create/bookmarklet/"},
	{Reddit, "Reddit", "https://www.reddit.com/submit"},
	{WhatsApp, "WhatsApp", "https://api.whatsapp.com/send"},
	{Email, "Email", "mailto:"},
}

var imageCatalog = []catalogEntry{
	{Pinterest, "Pinterest", "https://www.pinterest.com/pin/create/bookmarklet/"},
}

func catalog(ctx Context) []catalogEntry {
	switch ctx {
	case ContextContent:
		return contentCatalog
	case ContextImage:
		return imageCatalog
	}
	return nil
}

// Sites returns the sites available in ctx, in display order.
func Sites(ctx Context) []Site {
	entries := catalog(ctx)
	sites := make([]Site, len(entries))
	for i, e := range entries {
		sites[i] = e.site
	}
	return sites
}

// Known reports whether s is one of the fixed site identifiers.
func Known(s Site) bool {
	for _, e := range contentCatalog {
		if e.site == s {
			return true
		}
	}
	return false
}

// BaseURL returns the share endpoint of site in ctx.
func BaseURL(ctx Context, site Site) (string, bool) {
	for _, e := range catalog(ctx) {
		if e.site == site {
			return e.base, true
		}
	}
	return "", false
}

// Label returns the display name of site in ctx.
func Label(ctx Context, site Site) (string, bool) {
	for _, e := range catalog(ctx) {
		if e.site == site {
			return e.label, true
		}
	}
	return "", false
}
