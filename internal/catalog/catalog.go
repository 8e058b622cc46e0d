// Package catalog loads the board definition: pages of entries, optionally
// linking to other pages.
package catalog

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

var (
	// ErrNoPages is returned for a catalog without pages.
	ErrNoPages = errors.New("catalog: no pages defined")
	// ErrDuplicateID is returned when a page or entry id repeats.
	ErrDuplicateID = errors.New("catalog: duplicate id")
	// ErrUnknownTarget is returned when an entry links to a missing page.
	ErrUnknownTarget = errors.New("catalog: unknown target page")
	// ErrMissingID is returned for pages or entries without an id.
	ErrMissingID = errors.New("catalog: missing id")
)

// Entry is one row of a page.
type Entry struct {
	ID     string `yaml:"id"`
	Label  string `yaml:"label"`
	Detail string `yaml:"detail,omitempty"`
	Target string `yaml:"target,omitempty"`
}

// Page is an ordered list of entries.
type Page struct {
	ID      string  `yaml:"id"`
	Title   string  `yaml:"title"`
	Entries []Entry `yaml:"entries"`
}

// Catalog is the whole board definition. The first page is the root.
type Catalog struct {
	Title string `yaml:"title"`
	Pages []Page `yaml:"pages"`
}

// Load reads and validates the catalog at path.
func Load(path string) (Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Catalog{}, fmt.Errorf("read catalog: %w", err)
	}
	c, err := Parse(data)
	if err != nil {
		return Catalog{}, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

// Parse decodes and validates a YAML catalog.
func Parse(data []byte) (Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return Catalog{}, fmt.Errorf("decode catalog: %w", err)
	}
	c.normalise()
	if err := c.Validate(); err != nil {
		return Catalog{}, err
	}
	return c, nil
}

func (c *Catalog) normalise() {
	c.Title = strings.TrimSpace(c.Title)
	for i := range c.Pages {
		p := &c.Pages[i]
		p.ID = strings.TrimSpace(p.ID)
		if p.Title == "" {
			p.Title = p.ID
		}
		for j := range p.Entries {
			e := &p.Entries[j]
			e.ID = strings.TrimSpace(e.ID)
			e.Target = strings.TrimSpace(e.Target)
			if e.Label == "" {
				e.Label = e.ID
			}
		}
	}
}

// Validate checks id uniqueness and that every target names a page.
func (c Catalog) Validate() error {
	if len(c.Pages) == 0 {
		return ErrNoPages
	}
	pages := make(map[string]struct{}, len(c.Pages))
	for i, p := range c.Pages {
		if p.ID == "" {
			return fmt.Errorf("page %d: %w", i, ErrMissingID)
		}
		if _, dup := pages[p.ID]; dup {
			return fmt.Errorf("page %q: %w", p.ID, ErrDuplicateID)
		}
		pages[p.ID] = struct{}{}
	}
	for _, p := range c.Pages {
		seen := make(map[string]struct{}, len(p.Entries))
		for i, e := range p.Entries {
			if e.ID == "" {
				return fmt.Errorf("page %q entry %d: %w", p.ID, i, ErrMissingID)
			}
			if _, dup := seen[e.ID]; dup {
				return fmt.Errorf("page %q entry %q: %w", p.ID, e.ID, ErrDuplicateID)
			}
			seen[e.ID] = struct{}{}
			if e.Target == "" {
				continue
			}
			if _, ok := pages[e.Target]; !ok {
				return fmt.Errorf("page %q entry %q -> %q: %w", p.ID, e.ID, e.Target, ErrUnknownTarget)
			}
		}
	}
	return nil
}

// Page returns the page with id.
func (c Catalog) Page(id string) (Page, bool) {
	for _, p := range c.Pages {
		if p.ID == id {
			return p, true
		}
	}
	return Page{}, false
}

// Root returns the first page.
func (c Catalog) Root() (Page, bool) {
	if len(c.Pages) == 0 {
		return Page{}, false
	}
	return c.Pages[0], true
}

// Fingerprint hashes the canonical YAML encoding, so formatting-only edits
// of the file do not count as changes.
func (c Catalog) Fingerprint() string {
	data, err := yaml.Marshal(c)
	if err != nil {
		return ""
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:8])
}

// Default returns the built-in catalog used when no file is configured.
func Default() Catalog {
	return Catalog{
		Title: "blendboard",
		Pages: []Page{
			{
				ID:    "home",
				Title: "Home",
				Entries: []Entry{
					{ID: "inbox", Label: "Inbox", Detail: "incoming items", Target: "inbox"},
					{ID: "projects", Label: "Projects", Detail: "active work", Target: "projects"},
					{ID: "archive", Label: "Archive", Detail: "finished items", Target: "archive"},
				},
			},
			{
				ID:    "inbox",
				Title: "Inbox",
				Entries: []Entry{
					{ID: "review", Label: "Review pull request", Detail: "today"},
					{ID: "reply", Label: "Reply to thread", Detail: "today"},
					{ID: "triage", Label: "Triage new issues", Detail: "this week"},
				},
			},
			{
				ID:    "projects",
				Title: "Projects",
				Entries: []Entry{
					{ID: "board", Label: "Board", Detail: "in progress"},
					{ID: "docs", Label: "Documentation", Detail: "planned"},
				},
			},
			{
				ID:    "archive",
				Title: "Archive",
			},
		},
	}
}
