package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/eringen/socialmanager/pipeline"
)

func writeInput(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write input: %v", err)
	}
	return path
}

func TestRenderMarkdown(t *testing.T) {
	in := writeInput(t, "post.md", "# Hi\n\n![cat](https://cdn.test/cat.jpg)\n")
	var out strings.Builder
	err := runRender([]string{"-in", in, "-title", "Hi", "-url", "https://site.test/blog/hi/", "-images"}, &out)
	if err != nil {
		t.Fatalf("runRender failed: %v", err)
	}
	got := out.String()
	for _, want := range []string{
		`<h1 id="hi">Hi</h1>`,
		"facebook.com/sharer",
		"media=https%3A%2F%2Fcdn.test%2Fcat.jpg",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q\n%s", want, got)
		}
	}
}

func TestRenderDeferredData(t *testing.T) {
	in := writeInput(t, "post.html", `<p>text</p>`)
	var out strings.Builder
	err := runRender([]string{"-in", in, "-title", "Hi", "-url", "https://site.test/blog/hi/", "-id", "9", "-data"}, &out)
	if err != nil {
		t.Fatalf("runRender failed: %v", err)
	}
	var payload pipeline.Payload
	if err := json.Unmarshal([]byte(out.String()), &payload); err != nil {
		t.Fatalf("decode payload: %v\n%s", err, out.String())
	}
	if payload.ID != 9 {
		t.Errorf("ID = %d, want 9", payload.ID)
	}
	if len(payload.Content) == 0 {
		t.Errorf("Content endpoints empty")
	}
}

func TestRenderJSONModeEmitsTemplates(t *testing.T) {
	in := writeInput(t, "post.html", `<p>text</p>`)
	var out strings.Builder
	err := runRender([]string{"-in", in, "-title", "Hi", "-url", "https://site.test/blog/hi/", "-mode", "json"}, &out)
	if err != nil {
		t.Fatalf("runRender failed: %v", err)
	}
	if !strings.Contains(out.String(), `id="tmpl-buttons-content"`) {
		t.Errorf("json mode output should carry the content template\n%s", out.String())
	}
}

func TestRenderErrors(t *testing.T) {
	in := writeInput(t, "post.html", `<p>text</p>`)
	tests := []struct {
		name string
		args []string
	}{
		{"missing input flag", nil},
		{"missing file", []string{"-in", filepath.Join(t.TempDir(), "nope.html")}},
		{"bad mode", []string{"-in", in, "-mode", "xml"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := runRender(tt.args, &strings.Builder{}); err == nil {
				t.Errorf("runRender(%v) = nil, want error", tt.args)
			}
		})
	}
}
