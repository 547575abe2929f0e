// Package pipeline inserts share buttons into rendered post content.
//
// A Pipeline is built once from the site settings and then used for every
// render. Transform runs an ordered list of named stages over one parsed
// document. Nothing in the render path returns an error: a post that cannot
// get buttons comes back unchanged.
package pipeline

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/labstack/gommon/log"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/eringen/socialmanager/buttons"
	"github.com/eringen/socialmanager/htmldoc"
	"github.com/eringen/socialmanager/icons"
	"github.com/eringen/socialmanager/options"
	"github.com/eringen/socialmanager/share"
)

// Names of the built-in stages, in the order they run.
const (
	StageMarkImages     = "mark-images"
	StageImageButtons   = "image-buttons"
	StageContentButtons = "content-buttons"
)

// Logger is the subset of echo.Logger the pipeline writes to.
type Logger interface {
	Debugf(format string, args ...interface{})
	Warnf(format string, args ...interface{})
}

// Config holds what a Pipeline needs besides the post being rendered.
type Config struct {
	Options options.Options
	Theme   options.ThemeSupports
	Icons   *icons.Registry
	SiteURL string
	Logger  Logger
}

// RenderContext describes the page a post is rendered into.
type RenderContext struct {
	Post     share.Post
	PostType string // defaults to "post"

	Feed    bool
	Home    bool
	Archive bool
	AMP     bool

	// Per-post overrides. nil leaves the feature on.
	ContentOverride *bool
	ImageOverride   *bool

	// ScriptEnqueued is set when the page loads the client script that
	// renders deferred buttons.
	ScriptEnqueued bool
}

func (rc RenderContext) postType() string {
	if rc.PostType == "" {
		return "post"
	}
	return rc.PostType
}

// Result is the outcome of one Transform call.
type Result struct {
	HTML           string
	ContentButtons int
	ImageButtons   int
	Warnings       []string
}

// State is what stages share during one Transform call.
type State struct {
	Context  RenderContext
	Doc      *htmldoc.Document
	Meta     share.Metadata
	Mode     string
	Prefix   string
	Images   []htmldoc.Image
	Content  bool // content buttons apply to this render
	ImageBtn bool // image buttons apply to this render

	result *Result
}

// Stage is one named step of a Transform.
type Stage struct {
	Name  string
	Apply func(p *Pipeline, s *State)
}

// Pipeline inserts share buttons into post content.
type Pipeline struct {
	opts    options.Options
	theme   options.ThemeSupports
	icons   *icons.Registry
	builder share.Builder
	logger  Logger
	stages  []Stage
}

// New builds a Pipeline with the built-in stages.
func New(cfg Config) *Pipeline {
	reg := cfg.Icons
	if reg == nil {
		reg = icons.WithPrefix(options.AttrPrefix(cfg.Theme))
	}
	logger := cfg.Logger
	if logger == nil {
		l := log.New("socialmanager")
		l.SetLevel(log.WARN)
		logger = l
	}
	return &Pipeline{
		opts:  cfg.Options,
		theme: cfg.Theme,
		icons: reg,
		builder: share.Builder{
			SiteURL:    strings.TrimRight(cfg.SiteURL, "/"),
			TwitterVia: cfg.Options.Profiles.Twitter,
		},
		logger: logger,
		stages: []Stage{
			{Name: StageMarkImages, Apply: markImages},
			{Name: StageImageButtons, Apply: imageButtons},
			{Name: StageContentButtons, Apply: contentButtons},
		},
	}
}

// Options returns the settings the pipeline was built with.
func (p *Pipeline) Options() options.Options { return p.opts }

// Mode returns the buttons mode in effect.
func (p *Pipeline) Mode() string { return options.ResolveMode(p.opts, p.theme) }

// Prefix returns the attribute prefix in effect.
func (p *Pipeline) Prefix() string { return options.AttrPrefix(p.theme) }

// Stages returns the names of the stages in the order they run.
func (p *Pipeline) Stages() []string {
	names := make([]string, len(p.stages))
	for i, s := range p.stages {
		names[i] = s.Name
	}
	return names
}

// Insert adds stage right after the stage named after. An empty after puts
// it first. Stages only run for posts that get buttons.
func (p *Pipeline) Insert(after string, stage Stage) error {
	if stage.Name == "" || stage.Apply == nil {
		return fmt.Errorf("pipeline: stage needs a name and a func")
	}
	if slices.ContainsFunc(p.stages, func(s Stage) bool { return s.Name == stage.Name }) {
		return fmt.Errorf("pipeline: duplicate stage %q", stage.Name)
	}
	if after == "" {
		p.stages = slices.Insert(p.stages, 0, stage)
		return nil
	}
	i := slices.IndexFunc(p.stages, func(s Stage) bool { return s.Name == after })
	if i < 0 {
		return fmt.Errorf("pipeline: no stage %q", after)
	}
	p.stages = slices.Insert(p.stages, i+1, stage)
	return nil
}

// Transform returns content with share buttons inserted.
func (p *Pipeline) Transform(rc RenderContext, content string) (res Result) {
	res = Result{HTML: content}
	contentOn := p.contentEligible(rc, content)
	imageOn := p.imageEligible(rc, content)
	if !contentOn && !imageOn {
		return res
	}

	defer func() {
		if r := recover(); r != nil {
			p.logger.Warnf("socialmanager: post %d: render failed: %v", rc.Post.ID, r)
			res = Result{HTML: content}
		}
	}()

	s := &State{
		Context:  rc,
		Doc:      htmldoc.Parse(content),
		Meta:     share.ReadMetadata(rc.Post, p.opts.Modes.LinkMode),
		Mode:     p.Mode(),
		Prefix:   p.Prefix(),
		Content:  contentOn,
		ImageBtn: imageOn,
		result:   &res,
	}
	s.Images = s.Doc.Images()

	for _, stage := range p.stages {
		stage.Apply(p, s)
	}

	out := s.Doc.Render()
	res.HTML = out
	res.Warnings = s.Doc.Warnings
	for _, w := range res.Warnings {
		p.logger.Debugf("socialmanager: post %d: %s", rc.Post.ID, w)
	}
	return res
}

func (p *Pipeline) eligible(rc RenderContext, content string) bool {
	return strings.TrimSpace(content) != "" &&
		rc.Post.Published() &&
		!rc.Home && !rc.Archive && !rc.AMP
}

func (p *Pipeline) contentEligible(rc RenderContext, content string) bool {
	o := p.opts.ButtonsContent
	if !p.eligible(rc, content) || !enabled(rc.ContentOverride) || len(o.Includes) == 0 {
		return false
	}
	if rc.Feed && p.Mode() != options.ModeHTML {
		return false
	}
	return p.opts.ContentEnabledFor(rc.postType())
}

func (p *Pipeline) imageEligible(rc RenderContext, content string) bool {
	o := p.opts.ButtonsImage
	if rc.Feed || !p.eligible(rc, content) || !enabled(rc.ImageOverride) || len(o.Includes) == 0 {
		return false
	}
	return p.opts.ImageEnabledFor(rc.postType())
}

func enabled(override *bool) bool {
	return override == nil || *override
}

// ImageMarker is the data attribute value set on the images of a post.
func ImageMarker(postID int64) string {
	return "ContentImage-" + strconv.FormatInt(postID, 10)
}

func markImages(p *Pipeline, s *State) {
	if !s.ImageBtn || s.Mode != options.ModeHTML {
		return
	}
	attr := buttons.DataAttr(s.Prefix)
	for _, img := range s.Images {
		htmldoc.SetAttr(img.Node, attr, ImageMarker(s.Context.Post.ID))
	}
}

func imageButtons(p *Pipeline, s *State) {
	if !s.ImageBtn || s.Mode != options.ModeHTML {
		return
	}
	view, ok := buttons.ParseView(p.opts.ButtonsImage.View)
	if !ok {
		p.logger.Debugf("socialmanager: unknown image view %q", p.opts.ButtonsImage.View)
		return
	}
	id := s.Context.Post.ID
	wrapped := make(map[*html.Node]*html.Node)
	records := p.builder.Image(s.Meta, s.Images, p.opts.ButtonsImage.Includes)
	for i, rec := range records {
		if len(rec.Endpoints) == 0 {
			continue
		}
		list := buttons.ImageList(s.Prefix, view, rec.Endpoints, p.icons)
		if list == "" {
			continue
		}
		img := s.Images[i].Node
		target := img
		if img.Parent != nil && htmldoc.IsElement(img.Parent, atom.A) {
			target = img.Parent
		}
		// Several images in one link share the link's wrapper.
		wrapper, ok := wrapped[target]
		if !ok {
			wrapper = htmldoc.Element("span",
				"class", classes(s.Prefix, "buttons", "buttons--img", "buttons--"+strconv.FormatInt(id, 10)),
				"id", ImageWrapperID(s.Prefix, id, rec.Ordinal),
			)
			htmldoc.Wrap(target, wrapper)
			wrapped[target] = wrapper
		}
		s.Doc.AppendTo(wrapper, list)
		s.result.ImageButtons += countButtons(rec.Endpoints, p.icons)
	}
}

// ImageWrapperID is the id of the element wrapping the image at ordinal.
// The number in it is 1-based.
func ImageWrapperID(prefix string, postID int64, ordinal int) string {
	return prefix + "-buttons-" + strconv.FormatInt(postID, 10) + "-img-" + strconv.Itoa(ordinal+1)
}

func contentButtons(p *Pipeline, s *State) {
	if !s.Content {
		return
	}
	o := p.opts.ButtonsContent
	view, ok := buttons.ParseView(o.View)
	if !ok {
		p.logger.Debugf("socialmanager: unknown content view %q", o.View)
		return
	}
	cfg := buttons.ContentConfig{
		Prefix:    s.Prefix,
		View:      view,
		Heading:   o.Heading,
		PostID:    s.Context.Post.ID,
		Placement: o.Placement,
	}

	var block string
	if s.Mode == options.ModeHTML {
		endpoints := p.builder.Content(s.Meta, o.Includes)
		block = buttons.ContentList(cfg, endpoints, p.icons)
		s.result.ContentButtons = countButtons(endpoints, p.icons)
	} else {
		block = buttons.ContentPlaceholder(cfg)
	}
	if block == "" {
		return
	}
	if o.Placement == options.PlacementBefore {
		s.Doc.Prepend(block)
	} else {
		s.Doc.Append(block)
	}
}

func countButtons(endpoints share.Endpoints, reg *icons.Registry) int {
	n := 0
	for site, ep := range endpoints {
		if _, ok := reg.Get(site); ok && ep != "" {
			n++
		}
	}
	return n
}

func classes(prefix string, suffixes ...string) string {
	names := make([]string, len(suffixes))
	for i, s := range suffixes {
		names[i] = prefix + "-" + s
	}
	return strings.Join(names, " ")
}
