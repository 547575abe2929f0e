package share

import (
	"strings"
	"testing"
)

func TestReadMetadataDecodesEntities(t *testing.T) {
	p := Post{
		Title:     "Tom &amp; Jerry &#8217;s",
		Excerpt:   "  &lt;Cats&gt; ",
		Permalink: "https://site.test/blog/tom/",
	}
	meta := ReadMetadata(p, LinkPermalink)
	if meta.Title != "Tom & Jerry ’s" {
		t.Errorf("Title = %q", meta.Title)
	}
	if meta.Description != "<Cats>" {
		t.Errorf("Description = %q, want %q", meta.Description, "<Cats>")
	}
}

func TestReadMetadataLinkMode(t *testing.T) {
	p := Post{Title: "T", Permalink: "https://site.test/blog/t/", Shortlink: "https://site.test/p/7/"}
	tests := []struct {
		name string
		post Post
		mode LinkMode
		want string
	}{
		{"permalink", p, LinkPermalink, p.Permalink},
		{"shortlink", p, LinkShortlink, p.Shortlink},
		{"shortlink missing", Post{Title: "T", Permalink: p.Permalink}, LinkShortlink, p.Permalink},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ReadMetadata(tt.post, tt.mode).URL; got != tt.want {
				t.Errorf("URL = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestReadMetadataExcerptFallback(t *testing.T) {
	body := "<p>" + strings.Repeat("word ", 60) + "</p><script>var x = 1;</script>"
	meta := ReadMetadata(Post{Title: "T", Content: body}, LinkPermalink)
	if !strings.HasSuffix(meta.Description, "…") {
		t.Errorf("Description = %q, want trimmed with ellipsis", meta.Description)
	}
	if n := len(strings.Fields(strings.TrimSuffix(meta.Description, "…"))); n != excerptWords {
		t.Errorf("Description has %d words, want %d", n, excerptWords)
	}
	if strings.Contains(meta.Description, "var x") {
		t.Errorf("Description = %q, should not include script text", meta.Description)
	}
}

func TestExcerptShortContent(t *testing.T) {
	if got := Excerpt("<p>Just <b>a</b> few</p>", 55); got != "Just a few" {
		t.Errorf("Excerpt() = %q, want %q", got, "Just a few")
	}
	if got := Excerpt("", 55); got != "" {
		t.Errorf("Excerpt(empty) = %q, want empty", got)
	}
}

func TestCatalog(t *testing.T) {
	if got := Sites(ContextImage); len(got) != 1 || got[0] != Pinterest {
		t.Errorf("Sites(image) = %v, want [pinterest]", got)
	}
	if len(Sites(ContextContent)) != 8 {
		t.Errorf("Sites(content) = %v, want 8 sites", Sites(ContextContent))
	}
	if _, ok := BaseURL(ContextImage, Facebook); ok {
		t.Error("facebook should have no image endpoint")
	}
	if label, ok := Label(ContextContent, GooglePlus); !ok || label != "Google+" {
		t.Errorf("Label(googleplus) = %q, %v", label, ok)
	}
	if Known("myspace") {
		t.Error("Known(myspace) = true, want false")
	}
}
