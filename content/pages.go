package content

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/adrg/frontmatter"
	"github.com/yuin/goldmark"
	meta "github.com/yuin/goldmark-meta"
	"github.com/yuin/goldmark/parser"
)

// Page is one markdown document of the site, e.g. about.en.md.
type Page struct {
	Slug    string    `json:"slug"`
	Locale  Locale    `json:"locale"`
	Title   string    `json:"title"`
	Updated time.Time `json:"updated_at,omitempty"`
	Tags    []string  `json:"tags,omitempty"`
	HTML    string    `json:"html"`
}

type pageMeta struct {
	Title   string    `yaml:"title"`
	Updated time.Time `yaml:"updated_at"`
	Tags    []string  `yaml:"tags"`
}

var markdown = goldmark.New(
	goldmark.WithExtensions(meta.Meta),
	goldmark.WithParserOptions(parser.WithAutoHeadingID()),
)

// LoadPages reads every <slug>.<locale>.md in dir. Files that don't
// follow the naming scheme are skipped, files that fail to parse are a
// hard error: the site's own content is trusted input.
func LoadPages(dir string) ([]Page, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read pages dir: %w", err)
	}
	pages := []Page{}
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".md") {
			continue
		}
		parts := strings.Split(strings.TrimSuffix(entry.Name(), ".md"), ".")
		if len(parts) != 2 {
			continue
		}
		locale, err := ParseLocale(parts[1])
		if err != nil {
			continue
		}
		page, err := loadPage(filepath.Join(dir, entry.Name()), parts[0], locale)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", entry.Name(), err)
		}
		pages = append(pages, page)
	}
	return pages, nil
}

func loadPage(path, slug string, locale Locale) (Page, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Page{}, err
	}
	var fm pageMeta
	body, err := frontmatter.Parse(bytes.NewReader(raw), &fm)
	if err != nil {
		return Page{}, fmt.Errorf("frontmatter: %w", err)
	}
	var buf bytes.Buffer
	err = markdown.Convert(body, &buf)
	if err != nil {
		return Page{}, fmt.Errorf("markdown: %w", err)
	}
	title := fm.Title
	if title == "" {
		title = slug
	}
	return Page{
		Slug:    slug,
		Locale:  locale,
		Title:   title,
		Updated: fm.Updated,
		Tags:    fm.Tags,
		HTML:    buf.String(),
	}, nil
}

// FindPage returns the page for slug in locale, falling back to the
// default locale when the translation is missing.
func FindPage(pages []Page, slug string, locale Locale) (Page, bool) {
	var fallback Page
	var found bool
	for _, p := range pages {
		if p.Slug != slug {
			continue
		}
		if p.Locale == locale {
			return p, true
		}
		if p.Locale == DefaultLocale {
			fallback, found = p, true
		}
	}
	return fallback, found
}
