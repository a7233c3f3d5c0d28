// Package content loads the markdown knowledge base and serves it as
// rendered pages, category sections and search results.
package content

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"math"
	"path"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/RMahshie/rfdesk/pkg/models"
	"gopkg.in/yaml.v3"
)

const (
	defaultCategory = "uncategorized"
	defaultAuthor   = "RF Engineer"
	wordsPerMinute  = 200
	maxSearchHits   = 20
)

// ErrNotFound is returned for an unknown page slug
var ErrNotFound = errors.New("knowledge page not found")

var (
	openDelim    = []byte("---\n")
	closeDelim   = []byte("\n---")
	mdxStatement = regexp.MustCompile(`(?m)^(import|export)\s.*$`)
	excerptNoise = strings.NewReplacer("#", "", "*", "", "`", "")
)

type frontMatter struct {
	Title       string   `yaml:"title"`
	Description string   `yaml:"description"`
	Category    string   `yaml:"category"`
	Tags        []string `yaml:"tags"`
	Date        string   `yaml:"date"`
	ReadTime    string   `yaml:"readTime"`
	Author      string   `yaml:"author"`
	Draft       bool     `yaml:"draft"`
}

type page struct {
	detail models.KnowledgeDetail
	// lower-cased title, excerpt, category and body
	haystack string
}

// Library is an immutable, in-memory knowledge base. It is safe for concurrent use.
type Library struct {
	bySlug map[string]*page
	pages  []*page // newest first
}

// Empty returns a library without pages
func Empty() *Library {
	return &Library{bySlug: map[string]*page{}}
}

// Load reads every .md and .mdx file under fsys. The first directory of a
// file's path is its category unless the front matter names one.
func Load(fsys fs.FS) (*Library, error) {
	r := newRenderer()
	lib := &Library{bySlug: map[string]*page{}}

	err := fs.WalkDir(fsys, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		ext := path.Ext(p)
		if d.IsDir() || (ext != ".md" && ext != ".mdx") {
			return nil
		}

		raw, err := fs.ReadFile(fsys, p)
		if err != nil {
			return err
		}
		pg, err := parsePage(r, p, raw)
		if err != nil {
			return fmt.Errorf("%s: %w", p, err)
		}
		if pg == nil {
			return nil
		}
		if existing, dup := lib.bySlug[pg.detail.Slug]; dup {
			return fmt.Errorf("%s: slug %q already used by %q", p, pg.detail.Slug, existing.detail.Title)
		}
		lib.bySlug[pg.detail.Slug] = pg
		lib.pages = append(lib.pages, pg)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to load knowledge base: %w", err)
	}

	sort.SliceStable(lib.pages, func(i, j int) bool {
		return lib.pages[i].detail.Date.After(lib.pages[j].detail.Date)
	})
	return lib, nil
}

// parsePage returns nil for drafts
func parsePage(r *renderer, p string, raw []byte) (*page, error) {
	meta, body, err := splitFrontMatter(raw)
	if err != nil {
		return nil, err
	}
	if meta.Draft {
		return nil, nil
	}

	slug := strings.TrimSuffix(path.Base(p), path.Ext(p))
	body = mdxStatement.ReplaceAll(body, nil)

	s := models.KnowledgeSummary{
		Slug:        slug,
		Title:       meta.Title,
		Description: meta.Description,
		Category:    meta.Category,
		Tags:        meta.Tags,
		ReadTime:    meta.ReadTime,
		Author:      meta.Author,
	}
	if s.Title == "" {
		s.Title = slug
	}
	if s.Description == "" {
		s.Description = firstParagraph(body)
	}
	if s.Category == "" {
		s.Category = defaultCategory
		if dir := path.Dir(p); dir != "." {
			s.Category = strings.SplitN(dir, "/", 2)[0]
		}
	}
	if s.Tags == nil {
		s.Tags = []string{}
	}
	if s.ReadTime == "" {
		s.ReadTime = readTime(body)
	}
	if s.Author == "" {
		s.Author = defaultAuthor
	}
	if meta.Date != "" {
		if s.Date, err = parseDate(meta.Date); err != nil {
			return nil, err
		}
	}

	html, headings, err := r.render(body)
	if err != nil {
		return nil, err
	}

	haystack := strings.Join([]string{s.Title, s.Description, s.Category, string(body)}, "\n")
	return &page{
		detail:   models.KnowledgeDetail{KnowledgeSummary: s, HTML: html, Headings: headings},
		haystack: strings.ToLower(haystack),
	}, nil
}

// splitFrontMatter separates a leading "---" YAML block from the markdown body.
// Files without one have empty metadata.
func splitFrontMatter(raw []byte) (frontMatter, []byte, error) {
	var meta frontMatter

	raw = bytes.TrimPrefix(raw, []byte("\ufeff"))
	raw = bytes.ReplaceAll(raw, []byte("\r\n"), []byte("\n"))
	if !bytes.HasPrefix(raw, openDelim) {
		return meta, raw, nil
	}

	// prepend the newline so an empty block closes on the next line
	rest := raw[len(openDelim)-1:]
	end := bytes.Index(rest, closeDelim)
	if end < 0 {
		return meta, nil, errors.New("unterminated front matter")
	}
	block, body := rest[:end], rest[end+len(closeDelim):]
	body = bytes.TrimPrefix(body, []byte("\n"))

	if len(bytes.TrimSpace(block)) > 0 {
		dec := yaml.NewDecoder(bytes.NewReader(block))
		dec.KnownFields(true)
		if err := dec.Decode(&meta); err != nil {
			return meta, nil, fmt.Errorf("invalid front matter: %w", err)
		}
	}
	return meta, body, nil
}

func parseDate(s string) (time.Time, error) {
	for _, layout := range []string{"2006-01-02", time.RFC3339} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date %q, want YYYY-MM-DD", s)
}

func firstParagraph(body []byte) string {
	for _, para := range strings.Split(string(body), "\n\n") {
		if p := strings.TrimSpace(excerptNoise.Replace(para)); p != "" {
			return strings.Join(strings.Fields(p), " ")
		}
	}
	return ""
}

func readTime(body []byte) string {
	words := len(bytes.Fields(body))
	return fmt.Sprintf("%d min", int(math.Max(1, math.Ceil(float64(words)/wordsPerMinute))))
}

// Get returns the rendered page for slug
func (l *Library) Get(slug string) (*models.KnowledgeDetail, error) {
	pg, ok := l.bySlug[slug]
	if !ok {
		return nil, ErrNotFound
	}
	detail := pg.detail
	return &detail, nil
}

// List returns page summaries newest first, restricted to category when non-empty
func (l *Library) List(category string) []models.KnowledgeSummary {
	out := []models.KnowledgeSummary{}
	for _, pg := range l.pages {
		if category == "" || strings.EqualFold(pg.detail.Category, category) {
			out = append(out, pg.detail.KnowledgeSummary)
		}
	}
	return out
}

// Sections groups every page by category, categories in alphabetical order
func (l *Library) Sections() []models.KnowledgeSection {
	index := map[string]int{}
	sections := []models.KnowledgeSection{}
	for _, pg := range l.pages {
		cat := pg.detail.Category
		i, ok := index[cat]
		if !ok {
			i = len(sections)
			index[cat] = i
			sections = append(sections, models.KnowledgeSection{Category: cat})
		}
		sections[i].Pages = append(sections[i].Pages, pg.detail.KnowledgeSummary)
	}
	sort.Slice(sections, func(i, j int) bool {
		return sections[i].Category < sections[j].Category
	})
	return sections
}

// Search matches q case-insensitively against title, excerpt, category and
// body. Hits are newest first, at most 20.
func (l *Library) Search(q string) []models.KnowledgeSummary {
	out := []models.KnowledgeSummary{}
	term := strings.ToLower(strings.TrimSpace(q))
	if term == "" {
		return out
	}
	for _, pg := range l.pages {
		if strings.Contains(pg.haystack, term) {
			out = append(out, pg.detail.KnowledgeSummary)
			if len(out) == maxSearchHits {
				break
			}
		}
	}
	return out
}

// Len reports the number of published pages
func (l *Library) Len() int {
	return len(l.pages)
}
