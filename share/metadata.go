package share

import (
	"html"
	"strings"

	"github.com/eringen/socialmanager/htmldoc"
)

// StatusPublish is the status of a post visible to readers.
const StatusPublish = "publish"

// excerptWords is how many words of the body stand in for a missing excerpt.
const excerptWords = 55

// Post is a content item as the content store hands it over.
type Post struct {
	ID        int64
	Slug      string
	Title     string
	Excerpt   string
	Content   string // rendered HTML
	Permalink string
	Shortlink string
	ImageURL  string
	Status    string
}

// Published reports whether readers can see the post.
func (p Post) Published() bool {
	return p.Status == StatusPublish
}

// LinkMode selects which URL of a post gets shared.
type LinkMode string

const (
	LinkPermalink LinkMode = "permalink"
	LinkShortlink LinkMode = "shortlink"
)

// Metadata is the post data that goes into share URLs. Values are plain
// text; HTML entities have already been decoded.
type Metadata struct {
	Title       string
	Description string
	URL         string
	ImageURL    string
}

// Complete reports whether m has what every share URL needs.
func (m Metadata) Complete() bool {
	return m.Title != "" && m.URL != ""
}

// ReadMetadata extracts the share metadata of p.
func ReadMetadata(p Post, mode LinkMode) Metadata {
	desc := decode(p.Excerpt)
	if desc == "" {
		desc = Excerpt(p.Content, excerptWords)
	}
	link := p.Permalink
	if mode == LinkShortlink && p.Shortlink != "" {
		link = p.Shortlink
	}
	return Metadata{
		Title:       decode(p.Title),
		Description: desc,
		URL:         strings.TrimSpace(link),
		ImageURL:    strings.TrimSpace(p.ImageURL),
	}
}

// Excerpt returns the first n words of the text of an HTML fragment.
func Excerpt(fragment string, n int) string {
	if fragment == "" || n <= 0 {
		return ""
	}
	doc := htmldoc.Parse(fragment)
	doc.Selection().Find("script, style").Remove()
	words := strings.Fields(doc.Selection().Text())
	if len(words) > n {
		return strings.Join(words[:n], " ") + "…"
	}
	return strings.Join(words, " ")
}

func decode(s string) string {
	return strings.TrimSpace(html.UnescapeString(s))
}
