package pipeline

import (
	"strconv"

	"github.com/eringen/socialmanager/buttons"
	"github.com/eringen/socialmanager/htmldoc"
	"github.com/eringen/socialmanager/options"
	"github.com/eringen/socialmanager/share"
)

// Page tracks what has been written into one page response. Use a fresh
// Page per request.
type Page struct {
	templates bool
}

// Footer returns the client templates the page needs in deferred mode. It
// returns them at most once per page, and only when the client script is
// on the page.
func (p *Pipeline) Footer(rc RenderContext, page *Page) string {
	if page == nil || page.templates || !rc.ScriptEnqueued || p.Mode() != options.ModeJSON {
		return ""
	}
	prefix := p.Prefix()

	var out string
	if p.contentEligible(rc, rc.Post.Content) {
		o := p.opts.ButtonsContent
		if view, ok := buttons.ParseView(o.View); ok {
			out += buttons.ContentTemplate(prefix, view, o.Includes, p.icons)
		}
	}
	if p.imageEligible(rc, rc.Post.Content) {
		o := p.opts.ButtonsImage
		if view, ok := buttons.ParseView(o.View); ok {
			out += buttons.ImageTemplate(prefix, view, o.Includes, p.icons)
		}
	}
	if out != "" {
		page.templates = true
	}
	return out
}

// Payload is the share data the client script renders deferred buttons
// from.
type Payload struct {
	ID         int64                  `json:"id"`
	AttrPrefix string                 `json:"attrPrefix"`
	Container  string                 `json:"container"`
	Content    share.Endpoints        `json:"content,omitempty"`
	Images     []share.ImageEndpoints `json:"images,omitempty"`
}

// Data returns the share data of the post in rc. Features that do not apply
// to the post are left empty.
func (p *Pipeline) Data(rc RenderContext) Payload {
	prefix := p.Prefix()
	payload := Payload{
		ID:         rc.Post.ID,
		AttrPrefix: prefix,
		Container:  ContainerID(prefix, rc.Post.ID),
	}
	meta := share.ReadMetadata(rc.Post, p.opts.Modes.LinkMode)
	if p.contentEligible(rc, rc.Post.Content) {
		payload.Content = p.builder.Content(meta, p.opts.ButtonsContent.Includes)
	}
	if p.imageEligible(rc, rc.Post.Content) {
		var images []share.ImageEndpoints
		for _, rec := range p.builder.Image(meta, htmldoc.ScanImages(rc.Post.Content), p.opts.ButtonsImage.Includes) {
			if len(rec.Endpoints) > 0 {
				images = append(images, rec)
			}
		}
		payload.Images = images
	}
	return payload
}

// ContainerID is the id of the element the host renders post content in.
// The client script finds deferred image targets inside it by ordinal.
func ContainerID(prefix string, postID int64) string {
	return prefix + "-content-" + strconv.FormatInt(postID, 10)
}
