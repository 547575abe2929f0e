// Package icons holds the SVG icon shown on each share button.
package icons

import (
	"maps"

	"github.com/eringen/socialmanager/share"
)

// DefaultPrefix is the attribute prefix used by Default.
const DefaultPrefix = "social-manager"

// Registry maps a site to its icon markup.
type Registry struct {
	icons map[share.Site]string
}

// Default returns a registry with a sprite-backed icon for every site.
// Each icon references "#<prefix>-icon-<site>" in the page's SVG sprite.
func Default() *Registry {
	return WithPrefix(DefaultPrefix)
}

// WithPrefix returns the default icons for the given attribute prefix.
func WithPrefix(prefix string) *Registry {
	r := &Registry{icons: make(map[share.Site]string)}
	for _, site := range share.Sites(share.ContextContent) {
		r.icons[site] = sprite(prefix, site)
	}
	return r
}

func sprite(prefix string, site share.Site) string {
	return `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 24 24"><use xlink:href="#` +
		prefix + `-icon-` + string(site) + `"></use></svg>`
}

// Get returns the icon of site.
func (r *Registry) Get(site share.Site) (string, bool) {
	if r == nil {
		return "", false
	}
	svg, ok := r.icons[site]
	return svg, ok && svg != ""
}

// Set replaces the icon of site. An empty svg removes it, which hides the
// site's button.
func (r *Registry) Set(site share.Site, svg string) {
	if svg == "" {
		delete(r.icons, site)
		return
	}
	r.icons[site] = svg
}

// All returns a copy of every icon.
func (r *Registry) All() map[share.Site]string {
	return maps.Clone(r.icons)
}
