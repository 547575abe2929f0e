package markdown

import (
	"bytes"
	"context"
	"strings"
	"testing"
)

func TestToHTMLInline(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"**bold**", "<strong>bold</strong>"},
		{"__bold__", "<strong>bold</strong>"},
		{"*italic*", "<em>italic</em>"},
		{"`code`", "<code>code</code>"},
		{"~~gone~~", "<del>gone</del>"},
		{"[link](https://example.com)", `<a href="https://example.com">link</a>`},
	}
	for _, tt := range tests {
		got, err := ToHTML(tt.input)
		if err != nil {
			t.Fatalf("ToHTML(%q) error = %v", tt.input, err)
		}
		if !strings.Contains(got, tt.expected) {
			t.Errorf("ToHTML(%q) = %q, want it to contain %q", tt.input, got, tt.expected)
		}
	}
}

func TestToHTMLImage(t *testing.T) {
	got, err := ToHTML("![A cat](/public/uploads/cat.jpg)")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(got, `<img src="/public/uploads/cat.jpg" alt="A cat">`) {
		t.Errorf("ToHTML() = %q, want an img element", got)
	}
}

func TestToHTMLHeadingIDs(t *testing.T) {
	got, _ := ToHTML("## Getting Started")
	if !strings.Contains(got, `<h2 id="getting-started">Getting Started</h2>`) {
		t.Errorf("ToHTML() = %q, want a heading with an id", got)
	}
}

func TestToHTMLKeepsRawHTML(t *testing.T) {
	got, _ := ToHTML("<figure><img src=\"a.jpg\"></figure>\n")
	if !strings.Contains(got, `<figure><img src="a.jpg"></figure>`) {
		t.Errorf("ToHTML() = %q, want raw HTML kept", got)
	}
}

func TestToHTMLTable(t *testing.T) {
	got, _ := ToHTML("| a | b |\n|---|---|\n| 1 | 2 |\n")
	for _, want := range []string{"<table>", "<th>a</th>", "<td>2</td>"} {
		if !strings.Contains(got, want) {
			t.Errorf("ToHTML() = %q, want it to contain %q", got, want)
		}
	}
}

func TestMarkdownComponent(t *testing.T) {
	var buf bytes.Buffer
	if err := Markdown("# Title").Render(context.Background(), &buf); err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if !strings.Contains(buf.String(), ">Title</h1>") {
		t.Errorf("Render() = %q, want an h1", buf.String())
	}
}
