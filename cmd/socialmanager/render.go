package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/eringen/socialmanager/markdown"
	"github.com/eringen/socialmanager/options"
	"github.com/eringen/socialmanager/pipeline"
	"github.com/eringen/socialmanager/share"
)

// runRender passes one file through the share pipeline and writes the
// result to out. Markdown files (.md, .markdown) are converted to HTML first.
func runRender(args []string, out io.Writer) error {
	fs := flag.NewFlagSet("render", flag.ContinueOnError)
	in := fs.String("in", "", "input file (HTML or Markdown)")
	optsFile := fs.String("options", "", "share settings YAML (defaults when empty)")
	mode := fs.String("mode", "", "buttons mode: html or json (overrides the settings)")
	id := fs.Int64("id", 1, "post id")
	title := fs.String("title", "", "post title")
	postURL := fs.String("url", "", "post permalink")
	siteURL := fs.String("site", "", "site URL")
	image := fs.String("image", "", "featured image URL")
	images := fs.Bool("images", false, "enable image buttons")
	data := fs.Bool("data", false, "print the JSON share data instead of the markup")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *in == "" {
		return fmt.Errorf("render: -in is required")
	}

	raw, err := os.ReadFile(*in)
	if err != nil {
		return fmt.Errorf("render: %w", err)
	}
	body := string(raw)
	switch strings.ToLower(filepath.Ext(*in)) {
	case ".md", ".markdown":
		if body, err = markdown.ToHTML(body); err != nil {
			return fmt.Errorf("render: %w", err)
		}
	}

	opts := options.Default()
	if *optsFile != "" {
		if opts, err = options.Load(*optsFile); err != nil {
			return err
		}
	}
	if *images {
		opts.ButtonsImage.Enabled = true
	}
	switch *mode {
	case "", options.ModeHTML, options.ModeJSON:
	default:
		return fmt.Errorf("render: unknown mode %q", *mode)
	}

	p := pipeline.New(pipeline.Config{
		Options: opts,
		Theme:   options.ThemeSupports{ButtonsMode: *mode},
		SiteURL: *siteURL,
	})
	rc := pipeline.RenderContext{
		Post: share.Post{
			ID:        *id,
			Title:     *title,
			Content:   body,
			Permalink: *postURL,
			ImageURL:  *image,
			Status:    share.StatusPublish,
		},
		ScriptEnqueued: true,
	}

	if *data {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(p.Data(rc))
	}

	res := p.Transform(rc, body)
	for _, w := range res.Warnings {
		fmt.Fprintf(os.Stderr, "warning: %s\n", w)
	}
	if _, err := io.WriteString(out, res.HTML); err != nil {
		return err
	}
	_, err = io.WriteString(out, p.Footer(rc, &pipeline.Page{}))
	return err
}
