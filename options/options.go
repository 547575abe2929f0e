// Package options holds the share button settings of a site.
package options

import (
	"errors"
	"fmt"
	"os"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/eringen/socialmanager/share"
)

// Buttons modes.
const (
	ModeHTML = "html" // buttons are baked into the served markup
	ModeJSON = "json" // buttons are rendered in the browser from JSON data
)

// Content button placements.
const (
	PlacementBefore = "before"
	PlacementAfter  = "after"
)

// DefaultAttrPrefix prefixes every class, id and data attribute the buttons
// carry.
const DefaultAttrPrefix = "social-manager"

var views = []string{"icon", "text", "icon-text"}

// Options is the full settings document.
type Options struct {
	ButtonsContent ButtonsContent `yaml:"buttons_content" json:"buttons_content"`
	ButtonsImage   ButtonsImage   `yaml:"buttons_image" json:"buttons_image"`
	Profiles       Profiles       `yaml:"profiles" json:"profiles"`
	Modes          Modes          `yaml:"modes" json:"modes"`
}

// ButtonsContent configures the button block attached to a post.
type ButtonsContent struct {
	Enabled   bool         `yaml:"enabled" json:"enabled"`
	Includes  []share.Site `yaml:"includes" json:"includes"`
	View      string       `yaml:"view" json:"view"`
	Placement string       `yaml:"placement" json:"placement"`
	Heading   string       `yaml:"heading" json:"heading"`
	PostTypes []string     `yaml:"post_types" json:"post_types"`
}

// ButtonsImage configures the buttons attached to each image in a post.
type ButtonsImage struct {
	Enabled   bool         `yaml:"enabled" json:"enabled"`
	Includes  []share.Site `yaml:"includes" json:"includes"`
	View      string       `yaml:"view" json:"view"`
	PostTypes []string     `yaml:"post_types" json:"post_types"`
}

// Profiles are the site's own social accounts.
type Profiles struct {
	Twitter  string `yaml:"twitter" json:"twitter"`
	Facebook string `yaml:"facebook" json:"facebook"`
}

// Modes select how buttons reach the page and which link they share.
type Modes struct {
	ButtonsMode string         `yaml:"buttons_mode" json:"buttons_mode"`
	LinkMode    share.LinkMode `yaml:"link_mode" json:"link_mode"`
}

// Default returns the settings of a fresh install.
func Default() Options {
	return Options{
		ButtonsContent: ButtonsContent{
			Enabled:   true,
			Includes:  []share.Site{share.Facebook, share.Twitter, share.Pinterest, share.LinkedIn, share.Email},
			View:      "icon",
			Placement: PlacementAfter,
			Heading:   "Share on:",
			PostTypes: []string{"post"},
		},
		ButtonsImage: ButtonsImage{
			Enabled:   false,
			Includes:  []share.Site{share.Pinterest},
			View:      "icon",
			PostTypes: []string{"post"},
		},
		Modes: Modes{
			ButtonsMode: ModeHTML,
			LinkMode:    share.LinkPermalink,
		},
	}
}

// ValidationError reports one invalid setting.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error on field '%s': %s", e.Field, e.Message)
}

// IsValidation checks if err is, or wraps, a ValidationError.
func IsValidation(err error) bool {
	var validationErr *ValidationError
	return errors.As(err, &validationErr)
}

// Validate returns the first invalid setting it finds.
func (o Options) Validate() error {
	if err := validateIncludes("buttons_content.includes", o.ButtonsContent.Includes); err != nil {
		return err
	}
	if err := validateIncludes("buttons_image.includes", o.ButtonsImage.Includes); err != nil {
		return err
	}
	if !slices.Contains(views, o.ButtonsContent.View) {
		return &ValidationError{Field: "buttons_content.view", Message: fmt.Sprintf("unknown view %q", o.ButtonsContent.View)}
	}
	if !slices.Contains(views, o.ButtonsImage.View) {
		return &ValidationError{Field: "buttons_image.view", Message: fmt.Sprintf("unknown view %q", o.ButtonsImage.View)}
	}
	switch o.ButtonsContent.Placement {
	case PlacementBefore, PlacementAfter:
	default:
		return &ValidationError{Field: "buttons_content.placement", Message: fmt.Sprintf("unknown placement %q", o.ButtonsContent.Placement)}
	}
	switch o.Modes.ButtonsMode {
	case ModeHTML, ModeJSON:
	default:
		return &ValidationError{Field: "modes.buttons_mode", Message: fmt.Sprintf("unknown mode %q", o.Modes.ButtonsMode)}
	}
	switch o.Modes.LinkMode {
	case share.LinkPermalink, share.LinkShortlink:
	default:
		return &ValidationError{Field: "modes.link_mode", Message: fmt.Sprintf("unknown mode %q", o.Modes.LinkMode)}
	}
	if strings.HasPrefix(o.Profiles.Twitter, "@") {
		return &ValidationError{Field: "profiles.twitter", Message: "handle must not start with @"}
	}
	return nil
}

func validateIncludes(field string, sites []share.Site) error {
	for _, s := range sites {
		if !share.Known(s) {
			return &ValidationError{Field: field, Message: fmt.Sprintf("unknown site %q", s)}
		}
	}
	return nil
}

// Parse reads YAML settings on top of Default and validates the result.
// Keys missing from data keep their default value.
func Parse(data []byte) (Options, error) {
	o := Default()
	if err := yaml.Unmarshal(data, &o); err != nil {
		return Options{}, fmt.Errorf("parse options: %w", err)
	}
	if err := o.Validate(); err != nil {
		return Options{}, err
	}
	return o, nil
}

// Load reads the settings file at path.
func Load(path string) (Options, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Options{}, fmt.Errorf("read options: %w", err)
	}
	o, err := Parse(data)
	if err != nil {
		return Options{}, fmt.Errorf("%s: %w", path, err)
	}
	return o, nil
}

// Marshal encodes o as YAML.
func (o Options) Marshal() ([]byte, error) {
	data, err := yaml.Marshal(o)
	if err != nil {
		return nil, fmt.Errorf("marshal options: %w", err)
	}
	return data, nil
}

// ContentEnabledFor reports whether content buttons apply to postType.
func (o Options) ContentEnabledFor(postType string) bool {
	return o.ButtonsContent.Enabled && slices.Contains(o.ButtonsContent.PostTypes, postType)
}

// ImageEnabledFor reports whether image buttons apply to postType.
func (o Options) ImageEnabledFor(postType string) bool {
	return o.ButtonsImage.Enabled && slices.Contains(o.ButtonsImage.PostTypes, postType)
}

// ThemeSupports is what the active theme declares about share buttons.
// Non-empty fields take precedence over the stored options.
type ThemeSupports struct {
	ButtonsMode string `yaml:"buttons_mode" json:"buttons_mode"`
	AttrPrefix  string `yaml:"attr_prefix" json:"attr_prefix"`
}

// ResolveMode returns the buttons mode in effect.
func ResolveMode(o Options, theme ThemeSupports) string {
	switch theme.ButtonsMode {
	case ModeHTML, ModeJSON:
		return theme.ButtonsMode
	}
	if o.Modes.ButtonsMode == "" {
		return ModeHTML
	}
	return o.Modes.ButtonsMode
}

// AttrPrefix returns the attribute prefix in effect.
func AttrPrefix(theme ThemeSupports) string {
	if p := strings.TrimSpace(theme.AttrPrefix); p != "" {
		return p
	}
	return DefaultAttrPrefix
}
