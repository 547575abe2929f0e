package socialmanager

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/eringen/socialmanager/options"
)

func setupTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewStore(filepath.Join(t.TempDir(), "test_blog.db"))
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func mustSave(t *testing.T, s *Store, p BlogPost) int64 {
	t.Helper()
	id, err := s.SavePost(p)
	if err != nil {
		t.Fatalf("SavePost(%q) failed: %v", p.Slug, err)
	}
	return id
}

func boolPtr(b bool) *bool { return &b }

func TestSaveAndGetPost(t *testing.T) {
	s := setupTestStore(t)

	post := BlogPost{
		Slug:      "test-post",
		Title:     "Test Post",
		Date:      "2024-01-15",
		Tags:      []string{"Go", "testing"},
		Summary:   "A test post summary",
		Content:   "This is the content",
		Image:     "/public/uploads/cover.jpg",
		Published: true,
	}
	id := mustSave(t, s, post)
	if id <= 0 {
		t.Fatalf("SavePost id = %d, want > 0", id)
	}

	got, err := s.GetPost("test-post")
	if err != nil {
		t.Fatalf("GetPost failed: %v", err)
	}
	if got.ID != id {
		t.Errorf("ID = %d, want %d", got.ID, id)
	}
	if got.Title != post.Title {
		t.Errorf("Title = %q, want %q", got.Title, post.Title)
	}
	if got.Link != "/blog/test-post" {
		t.Errorf("Link = %q, want %q", got.Link, "/blog/test-post")
	}
	if got.Image != post.Image {
		t.Errorf("Image = %q, want %q", got.Image, post.Image)
	}
	if len(got.Tags) != 2 || got.Tags[0] != "go" || got.Tags[1] != "testing" {
		t.Errorf("Tags = %v, want [go testing]", got.Tags)
	}
	if got.ButtonsContent != nil || got.ButtonsImage != nil {
		t.Errorf("overrides = %v, %v, want nil", got.ButtonsContent, got.ButtonsImage)
	}

	byID, err := s.GetPostByID(id)
	if err != nil {
		t.Fatalf("GetPostByID failed: %v", err)
	}
	if byID.Slug != "test-post" {
		t.Errorf("GetPostByID slug = %q, want %q", byID.Slug, "test-post")
	}
}

func TestSavePostUpdateKeepsIDAndImage(t *testing.T) {
	s := setupTestStore(t)

	post := BlogPost{Slug: "update-test", Title: "Original", Date: "2024-01-01",
		Content: "c", Image: "/public/uploads/a.jpg", Published: true}
	first := mustSave(t, s, post)

	post.Title = "Updated"
	post.Image = ""
	second := mustSave(t, s, post)
	if first != second {
		t.Errorf("id after update = %d, want %d", second, first)
	}

	got, err := s.GetPost("update-test")
	if err != nil {
		t.Fatalf("GetPost failed: %v", err)
	}
	if got.Title != "Updated" {
		t.Errorf("Title = %q, want %q", got.Title, "Updated")
	}
	if got.Image != "/public/uploads/a.jpg" {
		t.Errorf("Image = %q, want the previous image kept", got.Image)
	}
}

func TestSavePostOverrides(t *testing.T) {
	s := setupTestStore(t)

	tests := []struct {
		name    string
		content *bool
		image   *bool
	}{
		{"unset", nil, nil},
		{"forced on", boolPtr(true), boolPtr(true)},
		{"forced off", boolPtr(false), boolPtr(false)},
		{"mixed", boolPtr(false), nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			slug := Slugify(tt.name)
			mustSave(t, s, BlogPost{Slug: slug, Title: tt.name, Date: "2024-01-01",
				Published: true, ButtonsContent: tt.content, ButtonsImage: tt.image})
			got, err := s.GetPost(slug)
			if err != nil {
				t.Fatalf("GetPost failed: %v", err)
			}
			if !sameOverride(got.ButtonsContent, tt.content) {
				t.Errorf("ButtonsContent = %v, want %v", got.ButtonsContent, tt.content)
			}
			if !sameOverride(got.ButtonsImage, tt.image) {
				t.Errorf("ButtonsImage = %v, want %v", got.ButtonsImage, tt.image)
			}
		})
	}
}

func sameOverride(a, b *bool) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

func TestGetPostNotFound(t *testing.T) {
	s := setupTestStore(t)

	if _, err := s.GetPost("nonexistent"); !errors.Is(err, ErrNotFound) {
		t.Errorf("GetPost err = %v, want ErrNotFound", err)
	}
	if _, err := s.GetPostByID(42); !errors.Is(err, ErrNotFound) {
		t.Errorf("GetPostByID err = %v, want ErrNotFound", err)
	}
}

func TestGetPostUnpublished(t *testing.T) {
	s := setupTestStore(t)

	id := mustSave(t, s, BlogPost{Slug: "draft", Title: "Draft", Date: "2024-01-01", Published: false})

	if _, err := s.GetPost("draft"); !errors.Is(err, ErrNotFound) {
		t.Errorf("GetPost should return ErrNotFound for drafts, got %v", err)
	}
	if _, err := s.GetPostByID(id); !errors.Is(err, ErrNotFound) {
		t.Errorf("GetPostByID should return ErrNotFound for drafts, got %v", err)
	}
	got, err := s.GetPostAny("draft")
	if err != nil {
		t.Fatalf("GetPostAny failed: %v", err)
	}
	if got.Published {
		t.Error("Published should be false")
	}
}

func TestListPosts(t *testing.T) {
	s := setupTestStore(t)

	for _, p := range []BlogPost{
		{Slug: "post-1", Title: "Post 1", Date: "2024-01-01", Tags: []string{"go"}, Published: true},
		{Slug: "post-2", Title: "Post 2", Date: "2024-01-02", Tags: []string{"go", "web"}, Published: true},
		{Slug: "post-3", Title: "Post 3", Date: "2024-01-03", Tags: []string{"rust"}, Published: true},
		{Slug: "post-4", Title: "Post 4", Date: "2024-01-04", Tags: []string{"go"}, Published: false},
	} {
		mustSave(t, s, p)
	}

	got, err := s.ListPosts("")
	if err != nil {
		t.Fatalf("ListPosts failed: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("ListPosts count = %d, want 3 (excluding unpublished)", len(got))
	}
	if got[0].Slug != "post-3" {
		t.Errorf("first post = %s, want post-3 (latest)", got[0].Slug)
	}

	tests := []struct {
		tag  string
		want int
	}{
		{"go", 2},
		{"GO", 2},
		{"rust", 1},
		{"nonexistent", 0},
	}
	for _, tt := range tests {
		got, err := s.ListPosts(tt.tag)
		if err != nil {
			t.Fatalf("ListPosts(%q) failed: %v", tt.tag, err)
		}
		if len(got) != tt.want {
			t.Errorf("ListPosts(%q) count = %d, want %d", tt.tag, len(got), tt.want)
		}
	}

	all, err := s.ListAllPosts()
	if err != nil {
		t.Fatalf("ListAllPosts failed: %v", err)
	}
	if len(all) != 4 {
		t.Errorf("ListAllPosts count = %d, want 4", len(all))
	}
}

func TestListTags(t *testing.T) {
	s := setupTestStore(t)

	for _, p := range []BlogPost{
		{Slug: "p1", Title: "P1", Date: "2024-01-01", Tags: []string{"Go", "Web"}, Published: true},
		{Slug: "p2", Title: "P2", Date: "2024-01-02", Tags: []string{"go", "api"}, Published: true},
		{Slug: "p3", Title: "P3", Date: "2024-01-03", Tags: []string{"rust"}, Published: false},
	} {
		mustSave(t, s, p)
	}

	got, err := s.ListTags()
	if err != nil {
		t.Fatalf("ListTags failed: %v", err)
	}
	want := []string{"api", "go", "web"}
	if len(got) != len(want) {
		t.Fatalf("ListTags = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("ListTags[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestCountPosts(t *testing.T) {
	s := setupTestStore(t)

	mustSave(t, s, BlogPost{Slug: "a", Title: "A", Date: "2024-01-01", Published: true})
	mustSave(t, s, BlogPost{Slug: "b", Title: "B", Date: "2024-01-01", Published: true})
	mustSave(t, s, BlogPost{Slug: "c", Title: "C", Date: "2024-01-01", Published: false})

	got, err := s.CountPosts()
	if err != nil {
		t.Fatalf("CountPosts failed: %v", err)
	}
	if got["published"] != 2 || got["draft"] != 1 {
		t.Errorf("CountPosts = %v, want published=2 draft=1", got)
	}
}

func TestSetPostImage(t *testing.T) {
	s := setupTestStore(t)
	mustSave(t, s, BlogPost{Slug: "pic", Title: "Pic", Date: "2024-01-01", Published: true})

	if err := s.SetPostImage("pic", "/public/uploads/pic.jpg"); err != nil {
		t.Fatalf("SetPostImage failed: %v", err)
	}
	got, err := s.GetPost("pic")
	if err != nil {
		t.Fatalf("GetPost failed: %v", err)
	}
	if got.Image != "/public/uploads/pic.jpg" {
		t.Errorf("Image = %q, want %q", got.Image, "/public/uploads/pic.jpg")
	}

	if err := s.SetPostImage("missing", "/x.jpg"); !errors.Is(err, ErrNotFound) {
		t.Errorf("SetPostImage on missing post err = %v, want ErrNotFound", err)
	}
}

func TestDeletePost(t *testing.T) {
	s := setupTestStore(t)
	mustSave(t, s, BlogPost{Slug: "to-delete", Title: "To Delete", Date: "2024-01-01", Published: true})

	if err := s.DeletePost("to-delete"); err != nil {
		t.Fatalf("DeletePost failed: %v", err)
	}
	if _, err := s.GetPost("to-delete"); !errors.Is(err, ErrNotFound) {
		t.Errorf("post should not exist after delete, got err: %v", err)
	}
	if err := s.DeletePost("nonexistent"); err != nil {
		t.Errorf("DeletePost on nonexistent should not error, got: %v", err)
	}
}

func TestOptionsDefaultsWhenUnset(t *testing.T) {
	s := setupTestStore(t)

	got, err := s.GetOptions()
	if err != nil {
		t.Fatalf("GetOptions failed: %v", err)
	}
	want := options.Default()
	if got.Modes.ButtonsMode != want.Modes.ButtonsMode {
		t.Errorf("ButtonsMode = %q, want %q", got.Modes.ButtonsMode, want.Modes.ButtonsMode)
	}
	if len(got.ButtonsContent.Includes) != len(want.ButtonsContent.Includes) {
		t.Errorf("content includes = %v, want %v", got.ButtonsContent.Includes, want.ButtonsContent.Includes)
	}
}

func TestSaveOptionsRoundTrip(t *testing.T) {
	s := setupTestStore(t)

	opts := options.Default()
	opts.Modes.ButtonsMode = options.ModeJSON
	opts.ButtonsImage.Enabled = true
	opts.Profiles.Twitter = "example"
	if err := s.SaveOptions(opts); err != nil {
		t.Fatalf("SaveOptions failed: %v", err)
	}

	got, err := s.GetOptions()
	if err != nil {
		t.Fatalf("GetOptions failed: %v", err)
	}
	if got.Modes.ButtonsMode != options.ModeJSON {
		t.Errorf("ButtonsMode = %q, want %q", got.Modes.ButtonsMode, options.ModeJSON)
	}
	if !got.ButtonsImage.Enabled {
		t.Error("ButtonsImage.Enabled should be true")
	}
	if got.Profiles.Twitter != "example" {
		t.Errorf("Profiles.Twitter = %q, want %q", got.Profiles.Twitter, "example")
	}
}

func TestSaveOptionsRejectsInvalid(t *testing.T) {
	s := setupTestStore(t)

	opts := options.Default()
	opts.ButtonsContent.View = "huge"
	err := s.SaveOptions(opts)
	if !options.IsValidation(err) {
		t.Fatalf("SaveOptions err = %v, want a validation error", err)
	}
	if _, err := s.GetSetting(optionsKey); !errors.Is(err, ErrNotFound) {
		t.Errorf("invalid options should not be stored, GetSetting err = %v", err)
	}
}

func TestParseTags(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{",go,web,", []string{"go", "web"}},
		{",", nil},
		{"", nil},
		{"go", []string{"go"}},
	}
	for _, tt := range tests {
		got := ParseTags(tt.in)
		if len(got) != len(tt.want) {
			t.Errorf("ParseTags(%q) = %v, want %v", tt.in, got, tt.want)
			continue
		}
		for i := range got {
			if got[i] != tt.want[i] {
				t.Errorf("ParseTags(%q)[%d] = %q, want %q", tt.in, i, got[i], tt.want[i])
			}
		}
	}
}
