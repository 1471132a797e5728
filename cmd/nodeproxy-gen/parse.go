package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/nodeproxy/nodeproxy-go/pkg/model"
)

// RawSchema is the type schema loaded from YAML.
type RawSchema struct {
	Package   string       `yaml:"package"`
	Namespace string       `yaml:"namespace"`
	Types     []RawTypeDef `yaml:"types"`
}

// RawTypeDef represents one type definition.
type RawTypeDef struct {
	Name        string            `yaml:"name"`
	ID          uint32            `yaml:"id"`
	Class       string            `yaml:"class"`  // "Object", "Variable"
	Parent      string            `yaml:"parent"` // name of another type in the schema
	Abstract    bool              `yaml:"abstract"`
	Description string            `yaml:"description"`
	Attributes  []RawAttributeDef `yaml:"attributes"`
	Members     []RawMemberDef    `yaml:"members"`
}

// RawAttributeDef represents an attribute of a type.
//
// An intrinsic attribute is a node attribute named after its attribute id
// ("Value", "EventNotifier"). Any other attribute is backed by a property
// child with the attribute's name.
type RawAttributeDef struct {
	Name        string `yaml:"name"`
	Intrinsic   bool   `yaml:"intrinsic"`
	Namespace   string `yaml:"namespace"` // defaults to the schema namespace
	Type        string `yaml:"type"`      // "uint8", "string", "time", "qualifiedName", ...
	Rank        *int32 `yaml:"rank"`      // defaults to -1 (scalar)
	Access      string `yaml:"access"`    // "R", "RW"; defaults to "R"
	Optional    bool   `yaml:"optional"`
	Description string `yaml:"description"`
}

// RawMemberDef represents a typed child of a type.
type RawMemberDef struct {
	Name        string `yaml:"name"`
	Type        string `yaml:"type"` // name of another type in the schema
	Namespace   string `yaml:"namespace"`
	Optional    bool   `yaml:"optional"`
	Description string `yaml:"description"`
}

// ParseSchema parses a type schema from YAML bytes and validates it.
func ParseSchema(data []byte) (*RawSchema, error) {
	var s RawSchema
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parsing schema: %w", err)
	}
	if s.Package == "" {
		s.Package = "types"
	}
	if s.Namespace == "" {
		s.Namespace = model.NamespaceStandard
	}
	if err := s.validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// LoadSchema loads and parses a type schema from a file.
func LoadSchema(path string) (*RawSchema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return ParseSchema(data)
}

// Type returns the type with the given name.
func (s *RawSchema) Type(name string) (*RawTypeDef, bool) {
	for i := range s.Types {
		if s.Types[i].Name == name {
			return &s.Types[i], true
		}
	}
	return nil, false
}

func (s *RawSchema) validate() error {
	names := make(map[string]bool)
	ids := make(map[uint32]string)

	for _, t := range s.Types {
		if t.Name == "" {
			return fmt.Errorf("type with id %d missing name", t.ID)
		}
		if names[t.Name] {
			return fmt.Errorf("duplicate type %s", t.Name)
		}
		names[t.Name] = true
		if other, ok := ids[t.ID]; ok {
			return fmt.Errorf("types %s and %s share id %d", other, t.Name, t.ID)
		}
		ids[t.ID] = t.Name

		if _, err := model.ParseNodeClass(t.Class); err != nil {
			return fmt.Errorf("type %s: %w", t.Name, err)
		}
		for _, a := range t.Attributes {
			if err := validateAttribute(a); err != nil {
				return fmt.Errorf("type %s: %w", t.Name, err)
			}
		}
	}

	for _, t := range s.Types {
		if t.Parent != "" && !names[t.Parent] {
			return fmt.Errorf("type %s: unknown parent %s", t.Name, t.Parent)
		}
		for _, m := range t.Members {
			if m.Name == "" {
				return fmt.Errorf("type %s: member missing name", t.Name)
			}
			if !names[m.Type] {
				return fmt.Errorf("type %s: member %s has unknown type %s", t.Name, m.Name, m.Type)
			}
		}
	}

	// Parent chains must terminate.
	for _, t := range s.Types {
		seen := map[string]bool{t.Name: true}
		for p := t.Parent; p != ""; {
			if seen[p] {
				return fmt.Errorf("type %s: parent cycle through %s", t.Name, p)
			}
			seen[p] = true
			pt, _ := s.Type(p)
			p = pt.Parent
		}
	}
	return nil
}

func validateAttribute(a RawAttributeDef) error {
	if a.Name == "" {
		return fmt.Errorf("attribute missing name")
	}
	if a.Intrinsic {
		if _, ok := attributeIDConst(a.Name); !ok {
			return fmt.Errorf("unknown intrinsic attribute %s", a.Name)
		}
	}
	if _, err := model.ParseDataType(a.Type); err != nil {
		return fmt.Errorf("attribute %s: %w", a.Name, err)
	}
	if a.Access != "" {
		if _, err := model.ParseAccess(a.Access); err != nil {
			return fmt.Errorf("attribute %s: %w", a.Name, err)
		}
	}
	if a.Rank != nil && *a.Rank < model.ValueRankScalarOrOneDimension {
		return fmt.Errorf("attribute %s: invalid rank %d", a.Name, *a.Rank)
	}
	return nil
}
