package config

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/alisever/join-the-siege/internal/models"
)

//go:embed classes.yaml
var defaultClassesYAML []byte

// ClassSet is the immutable, ordered list of document classes.
type ClassSet struct {
	classes []models.ClassDefinition
}

type classesFile struct {
	Classes []models.ClassDefinition `yaml:"classes"`
}

// DefaultClasses returns the built-in class definitions.
func DefaultClasses() *ClassSet {
	set, err := ParseClasses(defaultClassesYAML)
	if err != nil {
		panic(fmt.Sprintf("invalid embedded classes.yaml: %v", err))
	}
	return set
}

// LoadClasses reads class definitions from path, or the built-in set when path is empty.
func LoadClasses(path string) (*ClassSet, error) {
	if path == "" {
		return DefaultClasses(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read classes file: %w", err)
	}
	set, err := ParseClasses(data)
	if err != nil {
		return nil, fmt.Errorf("invalid classes file %s: %w", path, err)
	}
	return set, nil
}

// ParseClasses decodes and validates YAML class definitions. Keywords are
// lower-cased and trimmed; blank keywords are rejected.
func ParseClasses(data []byte) (*ClassSet, error) {
	var file classesFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to decode classes: %w", err)
	}
	return NewClassSet(file.Classes)
}

// NewClassSet validates defs and copies them into a ClassSet.
func NewClassSet(defs []models.ClassDefinition) (*ClassSet, error) {
	if len(defs) == 0 {
		return nil, fmt.Errorf("no classes defined")
	}

	seen := make(map[string]bool, len(defs))
	classes := make([]models.ClassDefinition, 0, len(defs))
	for i, def := range defs {
		name := strings.TrimSpace(def.Name)
		switch {
		case name == "":
			return nil, fmt.Errorf("class %d: empty name", i)
		case name == models.UnknownClass:
			return nil, fmt.Errorf("class %d: %q is reserved", i, name)
		case seen[name]:
			return nil, fmt.Errorf("class %d: duplicate name %q", i, name)
		case len(def.Keywords) == 0:
			return nil, fmt.Errorf("class %q: no keywords", name)
		}
		seen[name] = true

		keywords := make([]string, 0, len(def.Keywords))
		for _, kw := range def.Keywords {
			kw = strings.ToLower(strings.TrimSpace(kw))
			if kw == "" {
				return nil, fmt.Errorf("class %q: blank keyword", name)
			}
			keywords = append(keywords, kw)
		}
		classes = append(classes, models.ClassDefinition{Name: name, Keywords: keywords})
	}

	return &ClassSet{classes: classes}, nil
}

// Definitions returns a copy of the classes in configuration order.
func (s *ClassSet) Definitions() []models.ClassDefinition {
	out := make([]models.ClassDefinition, len(s.classes))
	for i, c := range s.classes {
		out[i] = models.ClassDefinition{
			Name:     c.Name,
			Keywords: append([]string(nil), c.Keywords...),
		}
	}
	return out
}

// Names returns the class names in configuration order.
func (s *ClassSet) Names() []string {
	names := make([]string, len(s.classes))
	for i, c := range s.classes {
		names[i] = c.Name
	}
	return names
}

func (s *ClassSet) Len() int {
	return len(s.classes)
}
