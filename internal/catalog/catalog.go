// Package catalog loads the externally authored learning catalog: topics,
// content items, the level table and achievement definitions.
package catalog

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/vytor/learnloop/internal/gamification"
	"github.com/vytor/learnloop/internal/models"
)

//go:embed default_catalog.yaml
var defaultCatalog []byte

var ErrInvalid = errors.New("catalog: invalid definition")

type yamlCatalog struct {
	Topics       []yamlTopic          `yaml:"topics"`
	Items        []yamlItem           `yaml:"items"`
	Levels       []models.Level       `yaml:"levels"`
	Achievements []models.Achievement `yaml:"achievements"`
}

type yamlTopic struct {
	Slug        string `yaml:"slug"`
	Name        string `yaml:"name"`
	Pillar      string `yaml:"pillar"`
	UnlockLevel int    `yaml:"unlock_level"`
}

type yamlItem struct {
	Slug             string `yaml:"slug"`
	Topic            string `yaml:"topic"`
	Difficulty       int    `yaml:"difficulty"`
	EstimatedSeconds int    `yaml:"estimated_seconds"`
	XPValue          int    `yaml:"xp_value"`
	DisplayOrder     *int   `yaml:"display_order"`
}

// Catalog is the parsed, validated catalog. Items carry no ID until they are
// synced into the content store.
type Catalog struct {
	Topics  []models.Topic
	Items   []models.ContentItem
	Rewards *gamification.Catalog
}

// Default returns the catalog embedded in the binary.
func Default() (*Catalog, error) {
	return Parse(defaultCatalog)
}

// Load reads the catalog at path, or the embedded default when path is empty.
func Load(path string) (*Catalog, error) {
	if strings.TrimSpace(path) == "" {
		return Default()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog %s: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes and validates a YAML catalog document.
func Parse(data []byte) (*Catalog, error) {
	var doc yamlCatalog
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalid, err)
	}

	topics, err := buildTopics(doc.Topics)
	if err != nil {
		return nil, err
	}
	items, err := buildItems(doc.Items, topics)
	if err != nil {
		return nil, err
	}
	rewards, err := gamification.NewCatalog(doc.Levels, doc.Achievements)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalid, err)
	}

	out := &Catalog{Items: items, Rewards: rewards}
	for _, t := range doc.Topics {
		out.Topics = append(out.Topics, topics[t.Slug])
	}
	return out, nil
}

func buildTopics(defs []yamlTopic) (map[string]models.Topic, error) {
	if len(defs) == 0 {
		return nil, fmt.Errorf("%w: no topics defined", ErrInvalid)
	}
	topics := make(map[string]models.Topic, len(defs))
	for _, d := range defs {
		if d.Slug == "" || d.Pillar == "" {
			return nil, fmt.Errorf("%w: topic %q needs slug and pillar", ErrInvalid, d.Slug)
		}
		if _, dup := topics[d.Slug]; dup {
			return nil, fmt.Errorf("%w: duplicate topic %q", ErrInvalid, d.Slug)
		}
		name := d.Name
		if name == "" {
			name = d.Slug
		}
		unlock := d.UnlockLevel
		if unlock < 1 {
			unlock = 1
		}
		topics[d.Slug] = models.Topic{Slug: d.Slug, Name: name, Pillar: d.Pillar, UnlockLevel: unlock}
	}
	return topics, nil
}

// buildItems resolves each item's pillar from its topic. Without an explicit
// display_order, items are ordered by their position within the topic.
func buildItems(defs []yamlItem, topics map[string]models.Topic) ([]models.ContentItem, error) {
	seen := make(map[string]bool, len(defs))
	position := make(map[string]int, len(topics))
	items := make([]models.ContentItem, 0, len(defs))

	for _, d := range defs {
		switch {
		case d.Slug == "":
			return nil, fmt.Errorf("%w: item without slug", ErrInvalid)
		case seen[d.Slug]:
			return nil, fmt.Errorf("%w: duplicate item %q", ErrInvalid, d.Slug)
		case d.Difficulty < 1 || d.Difficulty > 5:
			return nil, fmt.Errorf("%w: item %q difficulty %d outside 1-5", ErrInvalid, d.Slug, d.Difficulty)
		case d.EstimatedSeconds <= 0:
			return nil, fmt.Errorf("%w: item %q needs estimated_seconds", ErrInvalid, d.Slug)
		case d.XPValue < 0:
			return nil, fmt.Errorf("%w: item %q has negative xp_value", ErrInvalid, d.Slug)
		}
		topic, ok := topics[d.Topic]
		if !ok {
			return nil, fmt.Errorf("%w: item %q references unknown topic %q", ErrInvalid, d.Slug, d.Topic)
		}
		seen[d.Slug] = true

		position[d.Topic]++
		order := position[d.Topic]
		if d.DisplayOrder != nil {
			order = *d.DisplayOrder
		}

		items = append(items, models.ContentItem{
			Slug:             d.Slug,
			TopicSlug:        topic.Slug,
			Pillar:           topic.Pillar,
			Difficulty:       d.Difficulty,
			EstimatedSeconds: d.EstimatedSeconds,
			XPValue:          d.XPValue,
			DisplayOrder:     order,
		})
	}
	return items, nil
}
