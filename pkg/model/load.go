package model

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// ErrInvalidSpace is returned for malformed address space files.
var ErrInvalidSpace = errors.New("invalid address space definition")

// rawSpace is the YAML representation of an address space file.
type rawSpace struct {
	Namespace string    `yaml:"namespace"`
	Root      rawEntity `yaml:"root"`
}

type rawEntity struct {
	Ref            string      `yaml:"ref"`
	BrowseName     string      `yaml:"browseName"`
	Namespace      string      `yaml:"namespace"`
	DisplayName    string      `yaml:"displayName"`
	Description    string      `yaml:"description"`
	Class          string      `yaml:"class"`
	TypeDefinition string      `yaml:"typeDefinition"`
	DataType       string      `yaml:"dataType"`
	ValueRank      *int32      `yaml:"valueRank"`
	Access         string      `yaml:"access"`
	Value          any         `yaml:"value"`
	Children       []rawEntity `yaml:"children"`
}

// LoadSpaceFile reads an address space from a YAML file.
func LoadSpaceFile(path string) (*Space, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return LoadSpace(data)
}

// LoadSpace parses an address space from YAML.
func LoadSpace(data []byte) (*Space, error) {
	var raw rawSpace
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSpace, err)
	}

	root, err := buildEntity(raw.Namespace, raw.Root)
	if err != nil {
		return nil, err
	}
	space := NewSpace(root)

	if err := addChildren(space, root, raw.Namespace, raw.Root.Children); err != nil {
		return nil, err
	}
	return space, nil
}

func addChildren(space *Space, parent *Entity, ns string, children []rawEntity) error {
	for _, rc := range children {
		child, err := buildEntity(ns, rc)
		if err != nil {
			return err
		}
		if err := space.Add(parent, child); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidSpace, err)
		}
		if err := addChildren(space, child, ns, rc.Children); err != nil {
			return err
		}
	}
	return nil
}

func buildEntity(defaultNS string, r rawEntity) (*Entity, error) {
	if r.BrowseName == "" {
		return nil, fmt.Errorf("%w: entity without browseName", ErrInvalidSpace)
	}

	ref, err := parseRefIn(defaultNS, r.Ref)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidSpace, r.BrowseName, err)
	}

	class := NodeClassObject
	if r.Class != "" {
		if class, err = ParseNodeClass(r.Class); err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrInvalidSpace, r.BrowseName, err)
		}
	}

	var typeDef EntityRef
	if r.TypeDefinition != "" {
		if typeDef, err = ParseRef(r.TypeDefinition); err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrInvalidSpace, r.BrowseName, err)
		}
	}

	nameNS := r.Namespace
	if nameNS == "" {
		nameNS = NamespaceStandard
	}

	cfg := EntityConfig{
		Ref:         ref,
		Class:       class,
		BrowseName:  QualifiedName{Namespace: nameNS, Name: r.BrowseName},
		DisplayName: r.DisplayName,
		Description: r.Description,
		TypeDef:     typeDef,
		ValueRank:   ValueRankScalar,
		Access:      AccessRead,
	}

	if class == NodeClassVariable {
		if r.DataType != "" {
			if cfg.DataType, err = ParseDataType(r.DataType); err != nil {
				return nil, fmt.Errorf("%w: %s: %v", ErrInvalidSpace, r.BrowseName, err)
			}
		} else {
			cfg.DataType = DataTypeAny
		}
		if r.ValueRank != nil {
			cfg.ValueRank = *r.ValueRank
		}
		if r.Access != "" {
			if cfg.Access, err = ParseAccess(r.Access); err != nil {
				return nil, fmt.Errorf("%w: %s: %v", ErrInvalidSpace, r.BrowseName, err)
			}
		}
		if cfg.Value, err = coerceValue(r.Value, cfg.DataType); err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrInvalidSpace, r.BrowseName, err)
		}
		key := AttributeKey{Name: r.BrowseName, ID: AttrValue, DataType: cfg.DataType, ValueRank: cfg.ValueRank}
		if err := key.CheckValue(cfg.Value); err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrInvalidSpace, r.BrowseName, err)
		}
	}

	return NewEntity(cfg), nil
}

func parseRefIn(defaultNS, s string) (EntityRef, error) {
	if s == "" {
		return EntityRef{}, errors.New("missing ref")
	}
	ref, err := ParseRef(s)
	if err != nil {
		return EntityRef{}, err
	}
	if defaultNS != "" && !strings.HasPrefix(s, "nsu=") {
		ref.Namespace = defaultNS
	}
	return ref, nil
}

// coerceValue converts YAML scalars into the Go type of the declared
// DataType. Sequences are converted element-wise.
func coerceValue(v any, dt DataType) (any, error) {
	if v == nil {
		return nil, nil
	}
	if seq, ok := v.([]any); ok {
		out := make([]any, len(seq))
		for i, e := range seq {
			c, err := coerceValue(e, dt)
			if err != nil {
				return nil, err
			}
			out[i] = c
		}
		return out, nil
	}

	switch dt {
	case DataTypeInt8, DataTypeInt16, DataTypeInt32, DataTypeInt64:
		n, ok := v.(int)
		if !ok {
			return nil, fmt.Errorf("%w: expected integer, got %T", ErrValueType, v)
		}
		if err := checkIntRange(n, dt); err != nil {
			return nil, err
		}
		switch dt {
		case DataTypeInt8:
			return int8(n), nil
		case DataTypeInt16:
			return int16(n), nil
		case DataTypeInt32:
			return int32(n), nil
		}
		return int64(n), nil
	case DataTypeUint8, DataTypeUint16, DataTypeUint32, DataTypeUint64, DataTypeStatus:
		n, ok := v.(int)
		if !ok || n < 0 {
			return nil, fmt.Errorf("%w: expected unsigned integer, got %v", ErrValueType, v)
		}
		if err := checkIntRange(n, dt); err != nil {
			return nil, err
		}
		switch dt {
		case DataTypeUint8:
			return uint8(n), nil
		case DataTypeUint16:
			return uint16(n), nil
		case DataTypeUint32, DataTypeStatus:
			return uint32(n), nil
		}
		return uint64(n), nil
	case DataTypeFloat32, DataTypeFloat64:
		var f float64
		switch n := v.(type) {
		case int:
			f = float64(n)
		case float64:
			f = n
		default:
			return nil, fmt.Errorf("%w: expected float, got %T", ErrValueType, v)
		}
		if dt == DataTypeFloat32 {
			return float32(f), nil
		}
		return f, nil
	case DataTypeTime:
		switch t := v.(type) {
		case time.Time:
			return t, nil
		case string:
			return time.Parse(time.RFC3339, t)
		}
		return nil, fmt.Errorf("%w: expected time, got %T", ErrValueType, v)
	case DataTypeBytes:
		if s, ok := v.(string); ok {
			return []byte(s), nil
		}
	}
	return v, nil
}
