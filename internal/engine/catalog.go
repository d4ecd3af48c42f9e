package engine

import (
	_ "embed"
	"fmt"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

// Template is a quest definition before it is handed to the player.
type Template struct {
	Title       string   `yaml:"title"`
	Description string   `yaml:"description"`
	Category    Category `yaml:"category"`
	Duration    int      `yaml:"duration"` // minutes
	Location    Location `yaml:"location"`
	XPReward    int      `yaml:"xp"`
}

func (t Template) validate() error {
	if strings.TrimSpace(t.Title) == "" {
		return fmt.Errorf("template title is required")
	}
	if !t.Category.IsValid() {
		return fmt.Errorf("template %q: invalid category %q", t.Title, t.Category)
	}
	if !t.Location.IsValid() {
		return fmt.Errorf("template %q: invalid location %q", t.Title, t.Location)
	}
	if t.Duration <= 0 {
		return fmt.Errorf("template %q: duration must be positive", t.Title)
	}
	if t.XPReward <= 0 {
		return fmt.Errorf("template %q: xp must be positive", t.Title)
	}
	return nil
}

//go:embed catalog.yaml
var catalogYAML []byte

type catalogDoc struct {
	Templates []Template `yaml:"templates"`
}

// ParseCatalog decodes and validates a YAML template list.
func ParseCatalog(data []byte) ([]Template, error) {
	var doc catalogDoc
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}
	if len(doc.Templates) == 0 {
		return nil, fmt.Errorf("parse catalog: no templates")
	}
	for _, t := range doc.Templates {
		if err := t.validate(); err != nil {
			return nil, fmt.Errorf("parse catalog: %w", err)
		}
	}
	return doc.Templates, nil
}

var builtinCatalog = sync.OnceValue(func() []Template {
	templates, err := ParseCatalog(catalogYAML)
	if err != nil {
		panic(err)
	}
	return templates
})

// Catalog returns a copy of the built-in templates.
func Catalog() []Template {
	src := builtinCatalog()
	out := make([]Template, len(src))
	copy(out, src)
	return out
}
