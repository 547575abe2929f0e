package views

import (
	"context"
	"io"
	"strings"

	"github.com/a-h/templ"
)

// TagClass returns CSS classes for a tag pill, with active variant.
func TagClass(active bool) string {
	base := "tag"
	if active {
		base += " tag--active"
	}
	return base
}

// Selected returns the option value that matches a per-post button override.
func Selected(override *bool) string {
	switch {
	case override == nil:
		return "default"
	case *override:
		return "on"
	default:
		return "off"
	}
}

// builder collects page markup. Text goes through esc; trusted markup is
// written as is.
type builder struct {
	strings.Builder
}

func (b *builder) raw(parts ...string) *builder {
	for _, p := range parts {
		b.WriteString(p)
	}
	return b
}

func esc(s string) string {
	return templ.EscapeString(s)
}

func component(fn func(b *builder)) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		var b builder
		fn(&b)
		_, err := io.WriteString(w, b.String())
		return err
	})
}
