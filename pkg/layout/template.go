package layout

import (
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
)

// =============================================================================
// Curated Templates
// =============================================================================

// Slot is one authored placement in a curated template. Match is a filename
// suffix tested against item ids (ids have the form
// "<categoryFolder>-<fileName>", so matching the filename is enough).
type Slot struct {
	Match string `toml:"match" json:"match"`
	X     int    `toml:"x" json:"x"`
	Y     int    `toml:"y" json:"y"`
	W     int    `toml:"w" json:"w"`
	H     int    `toml:"h" json:"h"`
}

// matches reports whether the slot claims the given item id.
func (s Slot) matches(id string) bool {
	return strings.HasSuffix(id, s.Match)
}

// Template is a designer-authored arrangement for one category, valid only
// for the widest breakpoint tier.
type Template struct {
	Slots []Slot `toml:"slots" json:"slots"`
}

// Validate checks that every slot has a matcher and a sane rectangle.
// Templates are authored by hand, so this runs at load time.
func (t *Template) Validate() error {
	for i, s := range t.Slots {
		if s.Match == "" {
			return fmt.Errorf("slot %d: empty match", i)
		}
		if s.W < 1 || s.H < 1 {
			return fmt.Errorf("slot %d (%s): size %dx%d", i, s.Match, s.W, s.H)
		}
		if s.X < 0 || s.Y < 0 {
			return fmt.Errorf("slot %d (%s): negative position (%d,%d)", i, s.Match, s.X, s.Y)
		}
	}
	return nil
}

// maxExtent returns the row below the lowest slot. Uncurated leftovers are
// packed starting from this row.
func (t *Template) maxExtent() int {
	max := 0
	for _, s := range t.Slots {
		if s.Y+s.H > max {
			max = s.Y + s.H
		}
	}
	return max
}

// =============================================================================
// Registry
// =============================================================================

// Registry maps category names to curated templates.
type Registry struct {
	templates map[string]*Template
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{templates: make(map[string]*Template)}
}

// Add registers a template for a category, replacing any existing one.
func (r *Registry) Add(category string, t *Template) {
	r.templates[category] = t
}

// Template returns the curated template for a category, if one exists.
func (r *Registry) Template(category string) (*Template, bool) {
	t, ok := r.templates[category]
	return t, ok
}

// Categories returns the number of registered templates.
func (r *Registry) Categories() int { return len(r.templates) }

// BuiltinRegistry returns the templates that ship with the engine. The "all"
// category pins the executive dashboard and the sentiment distribution chart
// side by side at the top of the widest tier.
func BuiltinRegistry() *Registry {
	r := NewRegistry()
	r.Add("all", &Template{Slots: []Slot{
		{Match: "dashboard_ejecutivo.png", X: 0, Y: 0, W: 2, H: 2},
		{Match: "distribucion_sentimientos.png", X: 2, Y: 0, W: 2, H: 2},
	}})
	return r
}

// =============================================================================
// TOML Loading
// =============================================================================

// registryFile is the on-disk TOML shape:
//
//	[templates.all]
//	slots = [
//	  { match = "dashboard_ejecutivo.png", x = 0, y = 0, w = 2, h = 2 },
//	]
type registryFile struct {
	Templates map[string]*Template `toml:"templates"`
}

// LoadRegistry reads curated templates from a TOML file and validates them.
func LoadRegistry(path string) (*Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseRegistry(data)
}

// ParseRegistry parses and validates TOML template data.
func ParseRegistry(data []byte) (*Registry, error) {
	var file registryFile
	if err := toml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}

	r := NewRegistry()
	for category, t := range file.Templates {
		if err := t.Validate(); err != nil {
			return nil, fmt.Errorf("template %q: %w", category, err)
		}
		r.Add(category, t)
	}
	return r, nil
}
