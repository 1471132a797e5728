package model

import (
	"errors"
	"fmt"
	"sync"
)

// Space errors.
var (
	ErrEntityNotFound    = errors.New("entity not found")
	ErrDuplicateEntity   = errors.New("duplicate entity reference")
	ErrDuplicateChild    = errors.New("duplicate child browse name")
	ErrAttributeNotFound = errors.New("attribute not found")
	ErrNotReadable       = errors.New("attribute is not readable")
	ErrNotWritable       = errors.New("attribute is not writable")
)

// Space is an in-memory address space: a tree of entities indexed by ref.
// It backs the server side of the protocol and test fixtures.
type Space struct {
	mu       sync.RWMutex
	root     *Entity
	entities map[EntityRef]*Entity
}

// NewSpace creates a space with the given root entity.
func NewSpace(root *Entity) *Space {
	s := &Space{
		root:     root,
		entities: make(map[EntityRef]*Entity),
	}
	s.index(root)
	return s
}

func (s *Space) index(e *Entity) {
	s.entities[e.ref] = e
	for _, c := range e.Children() {
		s.index(c)
	}
}

// Root returns the root entity.
func (s *Space) Root() *Entity {
	return s.root
}

// Add attaches child under parent and indexes it with its descendants.
func (s *Space) Add(parent, child *Entity) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.entities[child.ref]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateEntity, child.ref)
	}
	if err := parent.addChild(child); err != nil {
		return err
	}
	s.index(child)
	return nil
}

// Lookup returns the entity with the given ref.
func (s *Space) Lookup(ref EntityRef) (*Entity, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.entities[ref]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrEntityNotFound, ref)
	}
	return e, nil
}

// Len returns the number of indexed entities.
func (s *Space) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entities)
}

// Browse resolves a child of ref by selector. The boolean is false when no
// child matches.
func (s *Space) Browse(ref EntityRef, sel ChildSelector) (*Entity, bool, error) {
	e, err := s.Lookup(ref)
	if err != nil {
		return nil, false, err
	}
	c, ok := e.Child(sel)
	return c, ok, nil
}

// ReadAttribute reads an intrinsic attribute or a property value.
func (s *Space) ReadAttribute(ref EntityRef, key AttributeKey) (any, error) {
	e, err := s.Lookup(ref)
	if err != nil {
		return nil, err
	}
	if key.IsIntrinsic() {
		return e.ReadAttribute(key.ID)
	}
	prop, ok := e.Child(key.Selector())
	if !ok {
		return nil, fmt.Errorf("%w: %s on %s", ErrAttributeNotFound, key, ref)
	}
	return prop.ReadAttribute(AttrValue)
}

// WriteAttribute writes an intrinsic attribute or a property value.
func (s *Space) WriteAttribute(ref EntityRef, key AttributeKey, value any) error {
	e, err := s.Lookup(ref)
	if err != nil {
		return err
	}
	if key.IsIntrinsic() {
		return e.WriteAttribute(key.ID, value)
	}
	prop, ok := e.Child(key.Selector())
	if !ok {
		return fmt.Errorf("%w: %s on %s", ErrAttributeNotFound, key, ref)
	}
	return prop.WriteAttribute(AttrValue, value)
}

// ReadHook computes a value on read. It replaces the stored value.
type ReadHook func() any

// Entity is a node of a Space.
type Entity struct {
	mu sync.RWMutex

	ref         EntityRef
	class       NodeClass
	browseName  QualifiedName
	displayName string
	description string
	typeDef     EntityRef

	// Variable attributes.
	dataType  DataType
	valueRank int32
	access    Access
	value     any
	readHook  ReadHook

	parent   *Entity
	children []*Entity
	bySel    map[ChildSelector]*Entity
}

// EntityConfig holds the identity and variable attributes of a new entity.
type EntityConfig struct {
	Ref         EntityRef
	Class       NodeClass
	BrowseName  QualifiedName
	DisplayName string
	Description string
	TypeDef     EntityRef
	DataType    DataType
	ValueRank   int32
	Access      Access
	Value       any
}

// NewEntity creates an entity without children.
func NewEntity(cfg EntityConfig) *Entity {
	display := cfg.DisplayName
	if display == "" {
		display = cfg.BrowseName.Name
	}
	return &Entity{
		ref:         cfg.Ref,
		class:       cfg.Class,
		browseName:  cfg.BrowseName,
		displayName: display,
		description: cfg.Description,
		typeDef:     cfg.TypeDef,
		dataType:    cfg.DataType,
		valueRank:   cfg.ValueRank,
		access:      cfg.Access,
		value:       cfg.Value,
		bySel:       make(map[ChildSelector]*Entity),
	}
}

// Ref returns the entity reference.
func (e *Entity) Ref() EntityRef { return e.ref }

// Class returns the node class.
func (e *Entity) Class() NodeClass { return e.class }

// BrowseName returns the browse name.
func (e *Entity) BrowseName() QualifiedName { return e.browseName }

// TypeDefinition returns the ref of the declared type.
func (e *Entity) TypeDefinition() EntityRef { return e.typeDef }

// Parent returns the containing entity, or nil for the root.
func (e *Entity) Parent() *Entity { return e.parent }

// Base returns the identity attributes reported by browse.
func (e *Entity) Base() BaseAttributes {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return BaseAttributes{
		NodeClass:   e.class,
		BrowseName:  e.browseName,
		DisplayName: e.displayName,
	}
}

// SetReadHook installs a hook that computes the value on every read.
func (e *Entity) SetReadHook(h ReadHook) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.readHook = h
}

func (e *Entity) addChild(c *Entity) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	sel := ChildSelector{NamespaceURI: c.browseName.Namespace, Name: c.browseName.Name}
	if _, exists := e.bySel[sel]; exists {
		return fmt.Errorf("%w: %s under %s", ErrDuplicateChild, sel, e.ref)
	}
	c.parent = e
	e.children = append(e.children, c)
	e.bySel[sel] = c
	return nil
}

// Child returns the child with the given selector.
func (e *Entity) Child(sel ChildSelector) (*Entity, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	c, ok := e.bySel[sel]
	return c, ok
}

// Children returns the children in insertion order.
func (e *Entity) Children() []*Entity {
	e.mu.RLock()
	defer e.mu.RUnlock()

	result := make([]*Entity, len(e.children))
	copy(result, e.children)
	return result
}

// ReadAttribute reads an intrinsic attribute by ID.
func (e *Entity) ReadAttribute(id AttributeID) (any, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	switch id {
	case AttrNodeID:
		return e.ref, nil
	case AttrNodeClass:
		return uint8(e.class), nil
	case AttrBrowseName:
		return e.browseName, nil
	case AttrDisplayName:
		return e.displayName, nil
	case AttrDescription:
		return e.description, nil
	case AttrWriteMask, AttrUserWriteMask:
		return uint32(0), nil
	case AttrEventNotifier:
		if e.class != NodeClassObject {
			break
		}
		return uint8(0), nil
	}

	if e.class != NodeClassVariable {
		return nil, fmt.Errorf("%w: %s on %s", ErrAttributeNotFound, id, e.ref)
	}

	switch id {
	case AttrValue:
		if !e.access.CanRead() {
			return nil, fmt.Errorf("%w: %s", ErrNotReadable, e.ref)
		}
		if e.readHook != nil {
			return e.readHook(), nil
		}
		return e.value, nil
	case AttrDataType:
		return uint8(e.dataType), nil
	case AttrValueRank:
		return e.valueRank, nil
	case AttrAccessLevel, AttrUserAccessLevel:
		return uint8(e.access), nil
	case AttrMinimumSamplingInterval:
		return float64(0), nil
	case AttrHistorizing:
		return false, nil
	}
	return nil, fmt.Errorf("%w: %s on %s", ErrAttributeNotFound, id, e.ref)
}

// WriteAttribute writes an intrinsic attribute by ID. Only Value,
// DisplayName and Description are writable.
func (e *Entity) WriteAttribute(id AttributeID, value any) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	switch id {
	case AttrDisplayName, AttrDescription:
		s, ok := value.(string)
		if !ok {
			return fmt.Errorf("%w: expected string", ErrValueType)
		}
		if id == AttrDisplayName {
			e.displayName = s
		} else {
			e.description = s
		}
		return nil
	case AttrValue:
		if e.class != NodeClassVariable {
			return fmt.Errorf("%w: %s on %s", ErrAttributeNotFound, id, e.ref)
		}
		if !e.access.CanWrite() {
			return fmt.Errorf("%w: %s", ErrNotWritable, e.ref)
		}
		key := AttributeKey{Name: "Value", ID: AttrValue, DataType: e.dataType, ValueRank: e.valueRank}
		if err := key.CheckValue(value); err != nil {
			return err
		}
		e.value = value
		return nil
	}
	if _, known := attributeIDNames[id]; !known {
		return fmt.Errorf("%w: %d", ErrAttributeNotFound, uint32(id))
	}
	return fmt.Errorf("%w: %s on %s", ErrNotWritable, id, e.ref)
}

// SetValueInternal sets the value without checking write access.
// Used by servers to update read-only variables.
func (e *Entity) SetValueInternal(value any) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.value = value
}
