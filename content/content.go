// Package content loads the static site data: a typed site.yml with the
// bilingual copy and a directory of markdown pages with YAML
// frontmatter.
package content

import (
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"
)

type Locale string

const (
	LocaleES Locale = "es"
	LocaleEN Locale = "en"

	// DefaultLocale matches the site's primary audience.
	DefaultLocale = LocaleES
)

func ParseLocale(s string) (Locale, error) {
	switch Locale(s) {
	case LocaleES, LocaleEN:
		return Locale(s), nil
	}
	return "", fmt.Errorf("unsupported locale: %q", s)
}

type Site struct {
	Meta       Meta         `yaml:"site" json:"site"`
	Person     Person       `yaml:"person" json:"person"`
	Experience []Experience `yaml:"experience" json:"experience"`
	Projects   []Project    `yaml:"projects" json:"projects"`
	Research   []Research   `yaml:"research" json:"research"`
	Awards     []Award      `yaml:"awards" json:"awards"`
	Skills     []Skill      `yaml:"skills" json:"skills"`
}

type Meta struct {
	Title   string  `yaml:"title" json:"title"`
	BaseURL string  `yaml:"base_url" json:"base_url"`
	Routes  []Route `yaml:"routes" json:"routes"`
}

type Route struct {
	Path    string `yaml:"path" json:"path"`
	LabelES string `yaml:"label_es" json:"label_es"`
	LabelEN string `yaml:"label_en" json:"label_en"`
}

func (r Route) Label(locale Locale) string {
	if locale == LocaleEN {
		return r.LabelEN
	}
	return r.LabelES
}

type Person struct {
	Name       string  `yaml:"name" json:"name"`
	HeadlineES string  `yaml:"headline_es" json:"headline_es"`
	HeadlineEN string  `yaml:"headline_en" json:"headline_en"`
	Location   string  `yaml:"location" json:"location"`
	GitHubURL  string  `yaml:"github_url" json:"github_url"`
	Emails     []Email `yaml:"emails" json:"emails"`
}

type Email struct {
	Value   string `yaml:"value" json:"value"`
	Primary bool   `yaml:"primary" json:"primary"`
}

type Experience struct {
	Company    string   `yaml:"company" json:"company"`
	RoleES     string   `yaml:"role_es" json:"role_es"`
	RoleEN     string   `yaml:"role_en" json:"role_en"`
	Start      string   `yaml:"start" json:"start"` // YYYY-MM
	End        string   `yaml:"end" json:"end"`     // YYYY-MM, empty for current roles
	Highlights []string `yaml:"highlights" json:"highlights"`
}

type Project struct {
	Name          string   `yaml:"name" json:"name"`
	DescriptionES string   `yaml:"description_es" json:"description_es"`
	DescriptionEN string   `yaml:"description_en" json:"description_en"`
	URL           string   `yaml:"url" json:"url"`
	Featured      bool     `yaml:"featured" json:"featured"`
	Stack         []string `yaml:"stack" json:"stack"`
}

type Research struct {
	Title string `yaml:"title" json:"title"`
	Venue string `yaml:"venue" json:"venue"`
	Year  int    `yaml:"year" json:"year"`
	URL   string `yaml:"url" json:"url"`
}

type Award struct {
	Title string `yaml:"title" json:"title"`
	Year  int    `yaml:"year" json:"year"`
}

type Skill struct {
	Category string   `yaml:"category" json:"category"`
	Items    []string `yaml:"items" json:"items"`
}

func Load(path string) (*Site, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read site data: %w", err)
	}
	var site Site
	err = yaml.Unmarshal(raw, &site)
	if err != nil {
		return nil, fmt.Errorf("parse site data: %w", err)
	}
	return &site, nil
}

// ExperienceSorted orders roles most recent first: by end month
// descending with open-ended roles on top, then by start descending.
func (s *Site) ExperienceSorted() []Experience {
	out := make([]Experience, len(s.Experience))
	copy(out, s.Experience)
	sort.SliceStable(out, func(i, j int) bool {
		iEnd, jEnd := out[i].End, out[j].End
		if iEnd == "" {
			iEnd = "9999-12"
		}
		if jEnd == "" {
			jEnd = "9999-12"
		}
		if iEnd != jEnd {
			return iEnd > jEnd
		}
		return out[i].Start > out[j].Start
	})
	return out
}

func (s *Site) FeaturedProjects() []Project {
	out := []Project{}
	for _, p := range s.Projects {
		if p.Featured {
			out = append(out, p)
		}
	}
	return out
}

func (s *Site) PrimaryEmail() string {
	for _, e := range s.Person.Emails {
		if e.Primary {
			return e.Value
		}
	}
	if len(s.Person.Emails) > 0 {
		return s.Person.Emails[0].Value
	}
	return ""
}

type NavItem struct {
	Path  string `json:"path"`
	Label string `json:"label"`
}

func (s *Site) Nav(locale Locale) []NavItem {
	out := make([]NavItem, 0, len(s.Meta.Routes))
	for _, r := range s.Meta.Routes {
		out = append(out, NavItem{Path: r.Path, Label: r.Label(locale)})
	}
	return out
}
