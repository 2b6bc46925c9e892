package catalog

import (
	_ "embed"
	"errors"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var embedded []byte

var ErrUnknownTemplate = errors.New("unknown template")

type Template struct {
	Name   string `yaml:"name" json:"name"`
	Label  string `yaml:"label" json:"label"`
	Markup string `yaml:"markup" json:"markup"`
}

type Prompt struct {
	ID          string `yaml:"id" json:"id"`
	Title       string `yaml:"title" json:"title"`
	Prompt      string `yaml:"prompt" json:"prompt"`
	Description string `yaml:"description,omitempty" json:"description,omitempty"`
}

type Category struct {
	ID      string   `yaml:"id" json:"id"`
	Name    string   `yaml:"name" json:"name"`
	Prompts []Prompt `yaml:"prompts" json:"prompts"`
}

type Feature struct {
	Included bool   `yaml:"included" json:"included"`
	Text     string `yaml:"text" json:"text"`
}

type Tier struct {
	Name        string    `yaml:"name" json:"name"`
	Price       string    `yaml:"price" json:"price"`
	Description string    `yaml:"description" json:"description"`
	Features    []Feature `yaml:"features" json:"features"`
	Highlighted bool      `yaml:"highlighted" json:"highlighted"`
	ButtonText  string    `yaml:"button_text" json:"button_text"`
	Badge       string    `yaml:"badge,omitempty" json:"badge,omitempty"`
}

type FAQ struct {
	Question string `yaml:"question" json:"question"`
	Answer   string `yaml:"answer" json:"answer"`
}

type Pricing struct {
	Tiers []Tier `yaml:"tiers" json:"tiers"`
	FAQ   []FAQ  `yaml:"faq" json:"faq"`
}

type document struct {
	DefaultDiagram string     `yaml:"default_diagram"`
	Templates      []Template `yaml:"templates"`
	ExamplePrompts []string   `yaml:"example_prompts"`
	Categories     []Category `yaml:"categories"`
	Pricing        Pricing    `yaml:"pricing"`
}

// Catalog is the static set of canned markup, prompt suggestions and pricing data.
// It is read-only after Parse and safe for concurrent use.
type Catalog struct {
	doc    document
	byName map[string]Template
}

// Default parses the catalog compiled into the binary.
func Default() (*Catalog, error) {
	return Parse(embedded)
}

// MustDefault is Default for wiring code that cannot continue without a catalog.
func MustDefault() *Catalog {
	c, err := Default()
	if err != nil {
		panic(err)
	}
	return c
}

func Parse(data []byte) (*Catalog, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}
	if strings.TrimSpace(doc.DefaultDiagram) == "" {
		return nil, fmt.Errorf("catalog: default_diagram is empty")
	}
	doc.DefaultDiagram = strings.TrimRight(doc.DefaultDiagram, "\n")

	byName := make(map[string]Template, len(doc.Templates))
	for _, t := range doc.Templates {
		if t.Name == "" || strings.TrimSpace(t.Markup) == "" {
			return nil, fmt.Errorf("catalog: template %q is incomplete", t.Name)
		}
		if _, dup := byName[t.Name]; dup {
			return nil, fmt.Errorf("catalog: duplicate template %q", t.Name)
		}
		byName[t.Name] = t
	}
	return &Catalog{doc: doc, byName: byName}, nil
}

// DefaultDiagram is the markup a fresh editor starts with.
func (c *Catalog) DefaultDiagram() string { return c.doc.DefaultDiagram }

// Template returns the named example markup.
func (c *Catalog) Template(name string) (Template, error) {
	t, ok := c.byName[name]
	if !ok {
		return Template{}, fmt.Errorf("%w: %s", ErrUnknownTemplate, name)
	}
	return t, nil
}

// Templates returns the examples in display order.
func (c *Catalog) Templates() []Template {
	return append([]Template(nil), c.doc.Templates...)
}

func (c *Catalog) Prompts() []string {
	return append([]string(nil), c.doc.ExamplePrompts...)
}

func (c *Catalog) Categories() []Category {
	return append([]Category(nil), c.doc.Categories...)
}

func (c *Catalog) Pricing() Pricing {
	return c.doc.Pricing
}
