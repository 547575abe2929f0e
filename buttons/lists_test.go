package buttons

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"

	"github.com/eringen/socialmanager/icons"
	"github.com/eringen/socialmanager/share"
)

const pinEndpoint = "https://www.pinterest.com/pin/create/bookmarklet/?url=https%3A%2F%2Fexample.com%2Fhello-world%2F&description=Hello%20World&is_video=false&media=https%3A%2F%2Fexample.com%2Fa.jpg"

func TestImageList(t *testing.T) {
	out := ImageList("social-manager", ViewIcon, share.Endpoints{share.Pinterest: pinEndpoint}, icons.Default())
	list := sel(t, out).Find("span.social-manager-buttons__list")
	if list.Length() != 1 {
		t.Fatalf("ImageList() = %q, want one list", out)
	}
	if !list.HasClass("social-manager-buttons__list--icon") {
		t.Errorf("list classes = %q", list.AttrOr("class", ""))
	}
	if got := list.AttrOr("data-social-manager", ""); got != AttrButtonsImage {
		t.Errorf("data-social-manager = %q, want %q", got, AttrButtonsImage)
	}
	if href := list.Find("a.item-pinterest").AttrOr("href", ""); href != pinEndpoint {
		t.Errorf("href = %q, want %q", href, pinEndpoint)
	}
}

func TestImageListEmpty(t *testing.T) {
	reg := icons.Default()
	if got := ImageList("social-manager", ViewIcon, share.Endpoints{}, reg); got != "" {
		t.Errorf("ImageList(no endpoints) = %q, want empty", got)
	}
	// Only pinterest has an image endpoint; other sites are ignored.
	if got := ImageList("social-manager", ViewIcon, share.Endpoints{share.Facebook: fbEndpoint}, reg); got != "" {
		t.Errorf("ImageList(facebook) = %q, want empty", got)
	}
	reg.Set(share.Pinterest, "")
	if got := ImageList("social-manager", ViewIcon, share.Endpoints{share.Pinterest: pinEndpoint}, reg); got != "" {
		t.Errorf("ImageList(no icon) = %q, want empty", got)
	}
}

func TestContentList(t *testing.T) {
	endpoints := share.Endpoints{
		share.Twitter:  "https://twitter.com/intent/tweet?text=Hello%20World&url=https%3A%2F%2Fexample.com%2Fhello-world%2F",
		share.Facebook: fbEndpoint,
	}
	cfg := ContentConfig{Prefix: "social-manager", View: ViewText, Heading: "Share on:", PostID: 42, Placement: "after"}
	out := ContentList(cfg, endpoints, icons.Default())

	block := sel(t, out).Find("div#social-manager-buttons-42")
	if block.Length() != 1 {
		t.Fatalf("ContentList() = %q, want the outer block", out)
	}
	for _, class := range []string{"social-manager-buttons", "social-manager-buttons--content", "social-manager-buttons--content-after"} {
		if !block.HasClass(class) {
			t.Errorf("outer block missing class %q", class)
		}
	}
	if got := block.Find("h4.social-manager-buttons__heading").Text(); got != "Share on:" {
		t.Errorf("heading = %q, want %q", got, "Share on:")
	}
	list := block.Find("div[data-social-manager=ButtonsContent]")
	if list.Length() != 1 {
		t.Fatal("missing inner list")
	}

	// Catalog order puts facebook before twitter.
	var sites []string
	list.Find("a").Each(func(_ int, a *goquery.Selection) {
		sites = append(sites, a.Text())
	})
	if strings.Join(sites, ",") != "Facebook,Twitter" {
		t.Errorf("buttons = %v, want [Facebook Twitter]", sites)
	}
}

func TestContentListNoHeading(t *testing.T) {
	cfg := ContentConfig{Prefix: "p", View: ViewIcon, PostID: 1, Placement: "before"}
	out := ContentList(cfg, share.Endpoints{share.Facebook: fbEndpoint}, icons.Default())
	if strings.Contains(out, "<h4") {
		t.Errorf("ContentList() = %q, want no heading", out)
	}
	if !strings.Contains(out, "p-buttons--content-before") {
		t.Errorf("ContentList() = %q, want before placement", out)
	}
	if got := ContentList(cfg, share.Endpoints{}, icons.Default()); got != "" {
		t.Errorf("ContentList(empty) = %q, want empty", got)
	}
}

func TestContentPlaceholder(t *testing.T) {
	out := ContentPlaceholder(ContentConfig{Prefix: "social-manager", View: ViewIcon, Heading: "Share on:", PostID: 9, Placement: "after"})
	block := sel(t, out).Find("#social-manager-buttons-9")
	if block.Length() != 1 {
		t.Fatalf("ContentPlaceholder() = %q", out)
	}
	if block.Find("a").Length() != 0 || block.Find("h4").Length() != 0 {
		t.Errorf("ContentPlaceholder() = %q, want an empty block", out)
	}
	if block.Find("[data-social-manager=ButtonsContent]").Length() != 1 {
		t.Errorf("ContentPlaceholder() = %q, want the list marker", out)
	}
}

func TestTemplates(t *testing.T) {
	reg := icons.Default()
	img := ImageTemplate("social-manager", ViewIcon, []share.Site{share.Pinterest, share.Facebook}, reg)
	if !strings.HasPrefix(img, `<script type="text/html" id="tmpl-buttons-image">`) {
		t.Errorf("ImageTemplate() = %q", img)
	}
	if !strings.Contains(img, "{{data.endpoints.pinterest}}") || strings.Contains(img, "endpoints.facebook") {
		t.Errorf("ImageTemplate() = %q, want only the pinterest placeholder", img)
	}

	content := ContentTemplate("social-manager", ViewIconText, []share.Site{share.Twitter, share.Email}, reg)
	if !strings.HasPrefix(content, `<script type="text/html" id="tmpl-buttons-content">`) {
		t.Errorf("ContentTemplate() = %q", content)
	}
	for _, want := range []string{"{{data.endpoints.twitter}}", "{{data.endpoints.email}}"} {
		if !strings.Contains(content, want) {
			t.Errorf("ContentTemplate() missing %q", want)
		}
	}

	if got := ImageTemplate("social-manager", ViewIcon, []share.Site{share.Facebook}, reg); got != "" {
		t.Errorf("ImageTemplate(no image sites) = %q, want empty", got)
	}
	if got := ContentTemplate("social-manager", ViewIcon, nil, reg); got != "" {
		t.Errorf("ContentTemplate(no includes) = %q, want empty", got)
	}
}
