package socialmanager

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	_ "modernc.org/sqlite"

	"github.com/eringen/socialmanager/options"
)

const optionsKey = "social_manager_options"

// Store wraps a SQLite database and provides CRUD operations for blog posts
// and the share settings.
type Store struct {
	db *sql.DB
}

// NewStore opens (or creates) the SQLite database at path, ensures the data
// directory exists, and runs schema migrations.
func NewStore(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// WAL lets readers run while the admin writes; the busy timeout makes
	// writers wait instead of failing with SQLITE_BUSY.
	if _, err := db.Exec(`
		PRAGMA journal_mode=WAL;
		PRAGMA busy_timeout=5000;
		PRAGMA synchronous=NORMAL;
		PRAGMA cache_size=-8000;
		PRAGMA mmap_size=268435456;
	`); err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(4)
	db.SetMaxIdleConns(4)
	s := &Store{db: db}
	if err := s.ensureSchema(); err != nil {
		return nil, err
	}
	return s, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) ensureSchema() error {
	_, err := s.db.Exec(`
CREATE TABLE IF NOT EXISTS posts (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    slug TEXT NOT NULL UNIQUE,
    title TEXT NOT NULL,
    date TEXT NOT NULL,
    tags TEXT NOT NULL,
    summary TEXT NOT NULL,
    content TEXT NOT NULL,
    image TEXT NOT NULL DEFAULT '',
    published INTEGER NOT NULL DEFAULT 1,
    buttons_content INTEGER,
    buttons_image INTEGER
);
CREATE TABLE IF NOT EXISTS settings (
    key TEXT PRIMARY KEY,
    value TEXT NOT NULL
);
`)
	return err
}

const postColumns = `id, slug, title, date, tags, summary, content, image, published, buttons_content, buttons_image`

type scanner interface {
	Scan(dest ...any) error
}

func scanPost(row scanner) (BlogPost, error) {
	var (
		p         BlogPost
		tags      string
		published int
		content   sql.NullBool
		image     sql.NullBool
	)
	if err := row.Scan(&p.ID, &p.Slug, &p.Title, &p.Date, &tags, &p.Summary, &p.Content,
		&p.Image, &published, &content, &image); err != nil {
		return BlogPost{}, err
	}
	p.Tags = ParseTags(tags)
	p.Link = "/blog/" + p.Slug
	p.Published = published == 1
	p.ButtonsContent = nullBool(content)
	p.ButtonsImage = nullBool(image)
	return p, nil
}

func nullBool(v sql.NullBool) *bool {
	if !v.Valid {
		return nil
	}
	b := v.Bool
	return &b
}

func toNullBool(b *bool) sql.NullBool {
	if b == nil {
		return sql.NullBool{}
	}
	return sql.NullBool{Bool: *b, Valid: true}
}

func (s *Store) queryPosts(query string, args ...any) ([]BlogPost, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var posts []BlogPost
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return nil, err
		}
		posts = append(posts, p)
	}
	return posts, rows.Err()
}

// ListPosts returns all published posts ordered by date descending.
// If tag is non-empty, results are filtered to posts containing that tag.
func (s *Store) ListPosts(tag string) ([]BlogPost, error) {
	if tag == "" {
		return s.queryPosts(`SELECT ` + postColumns + ` FROM posts WHERE published = 1 ORDER BY date DESC, id DESC`)
	}
	normalizedTag := strings.ToLower(strings.TrimSpace(tag))
	return s.queryPosts(`SELECT `+postColumns+` FROM posts WHERE published = 1 AND instr(lower(tags), ',' || ? || ',') > 0 ORDER BY date DESC, id DESC`, normalizedTag)
}

// ListTags returns a sorted, deduplicated slice of all tags from published posts.
func (s *Store) ListTags() ([]string, error) {
	rows, err := s.db.Query(`SELECT tags FROM posts WHERE published = 1`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	set := make(map[string]struct{})
	for rows.Next() {
		var tags string
		if err := rows.Scan(&tags); err != nil {
			return nil, err
		}
		for _, t := range ParseTags(tags) {
			set[strings.ToLower(t)] = struct{}{}
		}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	var result []string
	for t := range set {
		result = append(result, t)
	}
	sort.Strings(result)
	return result, nil
}

// GetPost returns a single published post by slug.
func (s *Store) GetPost(slug string) (BlogPost, error) {
	return scanPost(s.db.QueryRow(`SELECT `+postColumns+` FROM posts WHERE slug = ? AND published = 1`, slug))
}

// GetPostAny returns a post by slug regardless of published status (for admin).
func (s *Store) GetPostAny(slug string) (BlogPost, error) {
	return scanPost(s.db.QueryRow(`SELECT `+postColumns+` FROM posts WHERE slug = ?`, slug))
}

// GetPostByID returns a single published post by id.
func (s *Store) GetPostByID(id int64) (BlogPost, error) {
	return scanPost(s.db.QueryRow(`SELECT `+postColumns+` FROM posts WHERE id = ? AND published = 1`, id))
}

// ListAllPosts returns every post (published and drafts) ordered by date descending.
func (s *Store) ListAllPosts() ([]BlogPost, error) {
	return s.queryPosts(`SELECT ` + postColumns + ` FROM posts ORDER BY date DESC, id DESC`)
}

// SavePost upserts a blog post by slug and returns its id. Tags are
// normalized to lowercase. An existing post keeps its id, and its image
// when p.Image is empty.
func (s *Store) SavePost(p BlogPost) (int64, error) {
	normalizedTags := make([]string, len(p.Tags))
	for i, t := range p.Tags {
		normalizedTags[i] = strings.ToLower(strings.TrimSpace(t))
	}
	tagString := "," + strings.Join(normalizedTags, ",") + ","
	published := 0
	if p.Published {
		published = 1
	}
	var id int64
	err := s.db.QueryRow(`
INSERT INTO posts (slug, title, date, tags, summary, content, image, published, buttons_content, buttons_image)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(slug) DO UPDATE SET
    title = excluded.title,
    date = excluded.date,
    tags = excluded.tags,
    summary = excluded.summary,
    content = excluded.content,
    image = CASE WHEN excluded.image = '' THEN posts.image ELSE excluded.image END,
    published = excluded.published,
    buttons_content = excluded.buttons_content,
    buttons_image = excluded.buttons_image
RETURNING id`,
		p.Slug, p.Title, p.Date, tagString, p.Summary, p.Content, p.Image, published,
		toNullBool(p.ButtonsContent), toNullBool(p.ButtonsImage)).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("save post %q: %w", p.Slug, err)
	}
	return id, nil
}

// CountPosts returns how many posts are published and how many are drafts.
func (s *Store) CountPosts() (map[string]int, error) {
	rows, err := s.db.Query(`SELECT published, COUNT(*) FROM posts GROUP BY published`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := map[string]int{"published": 0, "draft": 0}
	for rows.Next() {
		var published, n int
		if err := rows.Scan(&published, &n); err != nil {
			return nil, err
		}
		if published == 1 {
			counts["published"] = n
		} else {
			counts["draft"] = n
		}
	}
	return counts, rows.Err()
}

// SetPostImage sets the featured image of a post.
func (s *Store) SetPostImage(slug, image string) error {
	res, err := s.db.Exec(`UPDATE posts SET image = ? WHERE slug = ?`, image, slug)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// DeletePost removes a post by slug.
func (s *Store) DeletePost(slug string) error {
	_, err := s.db.Exec(`DELETE FROM posts WHERE slug = ?`, slug)
	return err
}

// GetSetting returns the value stored under key.
func (s *Store) GetSetting(key string) (string, error) {
	var v string
	err := s.db.QueryRow(`SELECT value FROM settings WHERE key = ?`, key).Scan(&v)
	return v, err
}

// SetSetting stores value under key.
func (s *Store) SetSetting(key, value string) error {
	_, err := s.db.Exec(`INSERT INTO settings (key, value) VALUES (?, ?)
ON CONFLICT(key) DO UPDATE SET value = excluded.value`, key, value)
	return err
}

// GetOptions returns the stored share settings, or the defaults when none
// have been saved yet.
func (s *Store) GetOptions() (options.Options, error) {
	raw, err := s.GetSetting(optionsKey)
	if errors.Is(err, sql.ErrNoRows) {
		return options.Default(), nil
	}
	if err != nil {
		return options.Options{}, err
	}
	opts := options.Default()
	if err := json.Unmarshal([]byte(raw), &opts); err != nil {
		return options.Options{}, fmt.Errorf("decode options: %w", err)
	}
	return opts, nil
}

// SaveOptions validates and stores the share settings.
func (s *Store) SaveOptions(opts options.Options) error {
	if err := opts.Validate(); err != nil {
		return err
	}
	raw, err := json.Marshal(opts)
	if err != nil {
		return fmt.Errorf("encode options: %w", err)
	}
	return s.SetSetting(optionsKey, string(raw))
}

// ParseTags splits a comma-delimited tag string (e.g. ",go,web,") into a slice.
func ParseTags(tagString string) []string {
	tagString = strings.Trim(tagString, ",")
	if tagString == "" {
		return nil
	}
	parts := strings.Split(tagString, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}
