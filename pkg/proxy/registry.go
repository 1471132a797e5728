package proxy

import (
	"errors"
	"fmt"
	"sync"

	"github.com/nodeproxy/nodeproxy-go/pkg/model"
)

// Registry errors.
var (
	ErrDuplicateType = errors.New("type already registered")
	ErrInvalidType   = errors.New("invalid type definition")
)

// Constructor wraps a generic node in a typed view.
type Constructor func(n *Node) Proxy

// Well-known base types used as the parent of synthetic definitions.
var baseTypes = map[model.NodeClass]model.EntityRef{
	model.NodeClassObject:   model.StandardRef(58),
	model.NodeClassVariable: model.StandardRef(63),
}

type syntheticKey struct {
	declared model.EntityRef
	class    model.NodeClass
}

type registration struct {
	def  *model.TypeDefinition
	ctor Constructor
}

// Registry maps declared type references to type definitions and view
// constructors.
type Registry struct {
	mu        sync.RWMutex
	types     map[model.EntityRef]registration
	synthetic map[syntheticKey]*model.TypeDefinition
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		types:     make(map[model.EntityRef]registration),
		synthetic: make(map[syntheticKey]*model.TypeDefinition),
	}
}

// Register adds def. A nil ctor registers the generic *Node proxy.
func (r *Registry) Register(def *model.TypeDefinition, ctor Constructor) error {
	if def == nil || def.ID.IsNull() {
		return fmt.Errorf("%w: missing type id", ErrInvalidType)
	}
	if ctor == nil {
		ctor = func(n *Node) Proxy { return n }
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.types[def.ID]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateType, def)
	}
	r.types[def.ID] = registration{def: def, ctor: ctor}
	return nil
}

// MustRegister is like Register but panics on error.
func (r *Registry) MustRegister(def *model.TypeDefinition, ctor Constructor) {
	if err := r.Register(def, ctor); err != nil {
		panic(err)
	}
}

// Lookup returns the definition and constructor registered for ref.
func (r *Registry) Lookup(ref model.EntityRef) (*model.TypeDefinition, Constructor, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	reg, ok := r.types[ref]
	return reg.def, reg.ctor, ok
}

// Len returns the number of registered types.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.types)
}

// Definitions returns every registered definition.
func (r *Registry) Definitions() []*model.TypeDefinition {
	r.mu.RLock()
	defer r.mu.RUnlock()
	defs := make([]*model.TypeDefinition, 0, len(r.types))
	for _, reg := range r.types {
		defs = append(defs, reg.def)
	}
	return defs
}

// Resolve constructs the proxy for an entity whose declared type is
// declared. An unregistered declared type falls back to expected, and then
// to a generic *Node typed by a synthetic definition. Resolve never fails.
func (r *Registry) Resolve(space *AddressSpace, declared, ref model.EntityRef, base model.BaseAttributes, expected model.EntityRef) Proxy {
	if def, ctor, ok := r.Lookup(declared); ok {
		return ctor(newNode(space, ref, def, base))
	}
	if !expected.IsNull() {
		if def, ctor, ok := r.Lookup(expected); ok {
			return ctor(newNode(space, ref, def, base))
		}
	}
	return newNode(space, ref, r.syntheticFor(declared, base.NodeClass), base)
}

// syntheticFor returns a memberless definition for an unknown type, derived
// from the registered base type of its node class when there is one.
func (r *Registry) syntheticFor(declared model.EntityRef, class model.NodeClass) *model.TypeDefinition {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := syntheticKey{declared: declared, class: class}
	if def, ok := r.synthetic[key]; ok {
		return def
	}
	def := &model.TypeDefinition{
		ID:    declared,
		Name:  declared.String(),
		Class: class,
	}
	if declared.IsNull() {
		def.Name = "unknown"
	}
	if base, ok := baseTypes[class]; ok {
		if reg, ok := r.types[base]; ok {
			def.Parent = reg.def
		}
	}
	r.synthetic[key] = def
	return def
}
