package share

import (
	"net/url"
	"strings"

	"github.com/eringen/socialmanager/htmldoc"
)

// Endpoints maps a site to its ready-to-open share URL.
type Endpoints map[Site]string

// ImageEndpoints are the share URLs of one image in a post.
type ImageEndpoints struct {
	Src       string    `json:"src"`
	Ordinal   int       `json:"ordinal"`
	Endpoints Endpoints `json:"endpoints"`
}

// Builder turns post metadata into share URLs. It holds no state between
// calls; every call builds its result from scratch.
type Builder struct {
	SiteURL    string // site root, sent to LinkedIn as the source
	TwitterVia string // handle credited in tweets, without the @
}

type param struct {
	key, val string
}

// Content returns the share URLs of the post for every included site that
// has a content endpoint. It returns an empty map when the title or URL is
// missing.
func (b Builder) Content(meta Metadata, includes []Site) Endpoints {
	endpoints := Endpoints{}
	if !meta.Complete() {
		return endpoints
	}
	for _, site := range unique(includes) {
		base, ok := BaseURL(ContextContent, site)
		if !ok {
			continue
		}
		params, ok := b.contentParams(site, meta)
		if !ok {
			continue
		}
		endpoints[site] = withQuery(base, params)
	}
	return endpoints
}

func (b Builder) contentParams(site Site, meta Metadata) ([]param, bool) {
	switch site {
	case Facebook:
		return []param{{"u", meta.URL}}, true
	case Twitter:
		params := []param{{"text", meta.Title}, {"url", meta.URL}}
		if via := strings.TrimPrefix(strings.TrimSpace(b.TwitterVia), "@"); via != "" {
			params = append(params, param{"via", via})
		}
		return params, true
	case GooglePlus:
		return []param{{"url", meta.URL}}, true
	case LinkedIn:
		return []param{
			{"mini", "true"},
			{"title", meta.Title},
			{"summary", meta.Description},
			{"url", meta.URL},
			{"source", b.SiteURL},
		}, true
	case Pinterest:
		return pinParams(meta, meta.ImageURL), true
	case Reddit:
		return []param{{"url", meta.URL}, {"post_title", meta.Title}}, true
	case WhatsApp:
		return []param{{"text", meta.Title + " (" + meta.URL + ")"}}, true
	case Email:
		return []param{{"subject", meta.Title}, {"body", meta.Description}}, true
	}
	return nil, false
}

// Image returns one record per image, in scan order. Each record holds the
// share URLs of the included sites that have an image endpoint; the image
// itself is the shared media. Relative sources resolve against the post URL.
func (b Builder) Image(meta Metadata, images []htmldoc.Image, includes []Site) []ImageEndpoints {
	if !meta.Complete() {
		return nil
	}
	var sites []Site
	for _, site := range unique(includes) {
		if _, ok := BaseURL(ContextImage, site); ok {
			sites = append(sites, site)
		}
	}

	out := make([]ImageEndpoints, 0, len(images))
	for _, img := range images {
		rec := ImageEndpoints{Src: img.Src, Ordinal: img.Ordinal, Endpoints: Endpoints{}}
		if media := resolve(meta.URL, img.Src); media != "" {
			for _, site := range sites {
				base, _ := BaseURL(ContextImage, site)
				if params, ok := imageParams(site, meta, media); ok {
					rec.Endpoints[site] = withQuery(base, params)
				}
			}
		}
		out = append(out, rec)
	}
	return out
}

func imageParams(site Site, meta Metadata, media string) ([]param, bool) {
	switch site {
	case Pinterest:
		return pinParams(meta, media), true
	}
	return nil, false
}

func pinParams(meta Metadata, media string) []param {
	params := []param{
		{"url", meta.URL},
		{"description", meta.Title},
		{"is_video", "false"},
	}
	if media != "" {
		params = append(params, param{"media", media})
	}
	return params
}

// Encode percent-encodes s the RFC 3986 way: a space becomes %20, not +.
func Encode(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}

func withQuery(base string, params []param) string {
	var b strings.Builder
	b.WriteString(base)
	sep := "?"
	if strings.Contains(base, "?") {
		sep = "&"
	}
	for _, p := range params {
		b.WriteString(sep)
		b.WriteString(p.key)
		b.WriteByte('=')
		b.WriteString(Encode(p.val))
		sep = "&"
	}
	return b.String()
}

func resolve(postURL, src string) string {
	src = strings.TrimSpace(src)
	if src == "" || strings.HasPrefix(src, "data:") {
		return ""
	}
	ref, err := url.Parse(src)
	if err != nil {
		return ""
	}
	if ref.IsAbs() {
		return src
	}
	base, err := url.Parse(postURL)
	if err != nil || !base.IsAbs() {
		return src
	}
	return base.ResolveReference(ref).String()
}

func unique(sites []Site) []Site {
	seen := make(map[Site]struct{}, len(sites))
	out := make([]Site, 0, len(sites))
	for _, s := range sites {
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}
