// Package content supplies the static assessment catalog: diagnosis
// questions with their categories and owner-type weights, the owner-type
// result copy, and the seven tracker tasks. A default catalog ships embedded
// in the binary; operators may point config at an external YAML file and
// edit it live.
package content

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"structcheck/internal/classify"
)

//go:embed catalog.yaml
var defaultCatalog []byte

// Category groups related questions.
type Category struct {
	ID   string `yaml:"id"`
	Name string `yaml:"name"`
}

// Option is one selectable answer with its owner-type score contributions.
type Option struct {
	Text    string         `yaml:"text"`
	Weights map[string]int `yaml:"weights"`
}

// Question is one diagnosis question.
type Question struct {
	Category string   `yaml:"category"`
	Text     string   `yaml:"text"`
	Options  []Option `yaml:"options"`
}

// OwnerTypeContent is the result copy shown for one owner type.
type OwnerTypeContent struct {
	Name     string   `yaml:"name"`
	Subtitle string   `yaml:"subtitle"`
	Summary  string   `yaml:"summary"`
	Warning  string   `yaml:"warning"`
	CanDo    []string `yaml:"can_do"`
	CantDo   []string `yaml:"cant_do"`
	Tip      string   `yaml:"tip"`
}

// TrackerTask is one day's reflection prompt.
type TrackerTask struct {
	Title    string `yaml:"title"`
	Question string `yaml:"question"`
}

// Catalog is the full static content set.
type Catalog struct {
	Categories []Category                  `yaml:"categories"`
	Questions  []Question                  `yaml:"questions"`
	OwnerTypes map[string]OwnerTypeContent `yaml:"owner_types"`
	Tracker    []TrackerTask               `yaml:"tracker"`
}

// LoadDefault parses the embedded catalog.
func LoadDefault() (*Catalog, error) {
	return parse(defaultCatalog)
}

// LoadFile parses a catalog from an external YAML file.
func LoadFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog %s: %w", path, err)
	}
	return parse(data)
}

func parse(data []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("failed to parse catalog: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// Validate checks the structural contract the flow controllers and the
// scorer rely on: at least one question, every question attached to a known
// category with at least two options, weight labels from the closed
// owner-type set, result copy for every owner type, and exactly seven
// tracker tasks.
func (c *Catalog) Validate() error {
	if len(c.Questions) == 0 {
		return fmt.Errorf("catalog has no questions")
	}
	cats := make(map[string]bool, len(c.Categories))
	for _, cat := range c.Categories {
		if strings.TrimSpace(cat.ID) == "" || strings.TrimSpace(cat.Name) == "" {
			return fmt.Errorf("category %q must have id and name", cat.ID)
		}
		cats[cat.ID] = true
	}
	for i, q := range c.Questions {
		if strings.TrimSpace(q.Text) == "" {
			return fmt.Errorf("question %d has empty text", i)
		}
		if !cats[q.Category] {
			return fmt.Errorf("question %d references unknown category %q", i, q.Category)
		}
		if len(q.Options) < 2 {
			return fmt.Errorf("question %d needs at least 2 options, has %d", i, len(q.Options))
		}
		for j, opt := range q.Options {
			if strings.TrimSpace(opt.Text) == "" {
				return fmt.Errorf("question %d option %d has empty text", i, j)
			}
			for label := range opt.Weights {
				if !classify.ValidOwnerType(label) {
					return fmt.Errorf("question %d option %d weights unknown owner type %q", i, j, label)
				}
			}
		}
	}
	for _, t := range classify.OwnerTypes {
		oc, ok := c.OwnerTypes[string(t)]
		if !ok {
			return fmt.Errorf("missing owner type content for %q", t)
		}
		if strings.TrimSpace(oc.Name) == "" {
			return fmt.Errorf("owner type %q has empty name", t)
		}
	}
	if len(c.Tracker) != 7 {
		return fmt.Errorf("tracker must have exactly 7 tasks, has %d", len(c.Tracker))
	}
	for i, task := range c.Tracker {
		if strings.TrimSpace(task.Title) == "" || strings.TrimSpace(task.Question) == "" {
			return fmt.Errorf("tracker day %d must have title and question", i+1)
		}
	}
	return nil
}

// ScorerWeights converts the catalog's option weights into the table the
// owner-type scorer consumes.
func (c *Catalog) ScorerWeights() [][]classify.OptionWeights {
	weights := make([][]classify.OptionWeights, len(c.Questions))
	for i, q := range c.Questions {
		weights[i] = make([]classify.OptionWeights, len(q.Options))
		for j, opt := range q.Options {
			w := make(classify.OptionWeights, len(opt.Weights))
			for label, v := range opt.Weights {
				w[classify.OwnerType(label)] = v
			}
			weights[i][j] = w
		}
	}
	return weights
}
