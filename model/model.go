package model

import (
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/vellumcad/vellum/geom"
	"github.com/vellumcad/vellum/paths"
)

// Model is a node in a drawing's composition tree. Every field is
// optional: a nil Origin composes as the zero point, empty Type and
// Units mean untagged, and nil maps mean no content at that level.
type Model struct {
	Origin *geom.Point           `json:"origin,omitempty" yaml:"origin,omitempty"`
	Type   string                `json:"type,omitempty" yaml:"type,omitempty"`
	Units  string                `json:"units,omitempty" yaml:"units,omitempty"`
	Paths  map[string]paths.Path `json:"paths,omitempty" yaml:"paths,omitempty"`
	Models map[string]*Model     `json:"models,omitempty" yaml:"models,omitempty"`
}

// New creates an empty model.
func New() *Model {
	return &Model{}
}

// AddPath stores a path under name, creating the path map on first use.
// Returns the model for chaining.
func (m *Model) AddPath(name string, p paths.Path) *Model {
	if m.Paths == nil {
		m.Paths = make(map[string]paths.Path)
	}
	m.Paths[name] = p
	return m
}

// AddModel stores a child model under name, creating the child map on
// first use. Returns the model for chaining.
func (m *Model) AddModel(name string, child *Model) *Model {
	if m.Models == nil {
		m.Models = make(map[string]*Model)
	}
	m.Models[name] = child
	return m
}

// Walk visits this node and every model beneath it, parents before
// children. The root is visited under the empty name; iteration order
// among siblings is unspecified.
func (m *Model) Walk(visit func(name string, node *Model)) {
	m.walk("", visit)
}

func (m *Model) walk(name string, visit func(string, *Model)) {
	visit(name, m)
	for childName, child := range m.Models {
		child.walk(childName, visit)
	}
}

// PathCount returns the number of paths in the subtree.
func (m *Model) PathCount() int {
	n := 0
	m.Walk(func(_ string, node *Model) { n += len(node.Paths) })
	return n
}

// ModelCount returns the number of models in the subtree, counting this
// node.
func (m *Model) ModelCount() int {
	n := 0
	m.Walk(func(_ string, _ *Model) { n++ })
	return n
}

// Depth returns the number of model levels in the subtree, counting
// this node.
func (m *Model) Depth() int {
	deepest := 0
	for _, child := range m.Models {
		if d := child.Depth(); d > deepest {
			deepest = d
		}
	}
	return deepest + 1
}

// UnmarshalJSON decodes a model, dispatching each entry in "paths" on
// its type tag.
func (m *Model) UnmarshalJSON(data []byte) error {
	var raw struct {
		Origin *geom.Point                `json:"origin"`
		Type   string                     `json:"type"`
		Units  string                     `json:"units"`
		Paths  map[string]json.RawMessage `json:"paths"`
		Models map[string]*Model          `json:"models"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("decoding model: %w", err)
	}

	m.Origin = raw.Origin
	m.Type = raw.Type
	m.Units = raw.Units
	m.Models = raw.Models

	m.Paths = nil
	if raw.Paths != nil {
		m.Paths = make(map[string]paths.Path, len(raw.Paths))
		for name, entry := range raw.Paths {
			p, err := paths.UnmarshalJSON(entry)
			if err != nil {
				return fmt.Errorf("path %q: %w", name, err)
			}
			m.Paths[name] = p
		}
	}
	return nil
}

// UnmarshalYAML decodes a model, dispatching each entry in "paths" on
// its type tag.
func (m *Model) UnmarshalYAML(node *yaml.Node) error {
	var raw struct {
		Origin *geom.Point          `yaml:"origin"`
		Type   string               `yaml:"type"`
		Units  string               `yaml:"units"`
		Paths  map[string]yaml.Node `yaml:"paths"`
		Models map[string]*Model    `yaml:"models"`
	}
	if err := node.Decode(&raw); err != nil {
		return fmt.Errorf("decoding model: %w", err)
	}

	m.Origin = raw.Origin
	m.Type = raw.Type
	m.Units = raw.Units
	m.Models = raw.Models

	m.Paths = nil
	if raw.Paths != nil {
		m.Paths = make(map[string]paths.Path, len(raw.Paths))
		for name, entry := range raw.Paths {
			pathNode := entry
			p, err := paths.UnmarshalYAML(&pathNode)
			if err != nil {
				return fmt.Errorf("path %q: %w", name, err)
			}
			m.Paths[name] = p
		}
	}
	return nil
}
