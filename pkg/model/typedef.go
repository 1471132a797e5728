package model

import (
	"fmt"
	"sync"
)

// NodeClass is the class of an entity in the address space.
type NodeClass uint8

const (
	NodeClassUnspecified   NodeClass = 0
	NodeClassObject        NodeClass = 1
	NodeClassVariable      NodeClass = 2
	NodeClassMethod        NodeClass = 4
	NodeClassObjectType    NodeClass = 8
	NodeClassVariableType  NodeClass = 16
	NodeClassReferenceType NodeClass = 32
	NodeClassDataType      NodeClass = 64
	NodeClassView          NodeClass = 128
)

// String returns the node class name.
func (c NodeClass) String() string {
	switch c {
	case NodeClassObject:
		return "Object"
	case NodeClassVariable:
		return "Variable"
	case NodeClassMethod:
		return "Method"
	case NodeClassObjectType:
		return "ObjectType"
	case NodeClassVariableType:
		return "VariableType"
	case NodeClassReferenceType:
		return "ReferenceType"
	case NodeClassDataType:
		return "DataType"
	case NodeClassView:
		return "View"
	default:
		return "Unspecified"
	}
}

// ParseNodeClass returns the NodeClass with the given name.
func ParseNodeClass(s string) (NodeClass, error) {
	for _, c := range []NodeClass{
		NodeClassObject, NodeClassVariable, NodeClassMethod, NodeClassObjectType,
		NodeClassVariableType, NodeClassReferenceType, NodeClassDataType, NodeClassView,
	} {
		if c.String() == s {
			return c, nil
		}
	}
	return NodeClassUnspecified, fmt.Errorf("unknown node class %q", s)
}

// ChildSelector identifies a structurally contained child or property.
type ChildSelector struct {
	NamespaceURI string `cbor:"1,keyasint"`
	Name         string `cbor:"2,keyasint"`
}

// Selector returns a ChildSelector in the given namespace.
func Selector(namespaceURI, name string) ChildSelector {
	return ChildSelector{NamespaceURI: namespaceURI, Name: name}
}

// String returns "<uri>:<name>".
func (s ChildSelector) String() string {
	return s.NamespaceURI + ":" + s.Name
}

// Member is a child declared by a type definition.
// Expected is the type definition used when the browsed child reports an
// unregistered declared type.
type Member struct {
	Selector ChildSelector
	Expected EntityRef
	Optional bool
}

// BaseAttributes are the identity attributes known when a node is
// materialized, without a further read.
type BaseAttributes struct {
	NodeClass   NodeClass     `cbor:"1,keyasint"`
	BrowseName  QualifiedName `cbor:"2,keyasint"`
	DisplayName string        `cbor:"3,keyasint,omitempty"`
}

// TypeDefinition describes the attribute and member tables of a type.
// Ancestor tables are flattened on first use.
type TypeDefinition struct {
	ID         EntityRef
	Name       string
	Class      NodeClass
	Parent     *TypeDefinition
	Abstract   bool
	Attributes []AttributeKey
	Members    []Member

	once        sync.Once
	allAttrs    []AttributeKey
	allMembers  []Member
	attrByIdent map[AttributeIdent]AttributeKey
	memberBySel map[ChildSelector]Member
}

func (t *TypeDefinition) flatten() {
	t.once.Do(func() {
		var chain []*TypeDefinition
		for d := t; d != nil; d = d.Parent {
			chain = append(chain, d)
		}

		t.attrByIdent = make(map[AttributeIdent]AttributeKey)
		t.memberBySel = make(map[ChildSelector]Member)

		// Ancestors first; a subtype may redeclare a key with narrower hints.
		for i := len(chain) - 1; i >= 0; i-- {
			for _, k := range chain[i].Attributes {
				if _, seen := t.attrByIdent[k.Ident()]; !seen {
					t.allAttrs = append(t.allAttrs, k)
				} else {
					for j := range t.allAttrs {
						if t.allAttrs[j].Ident() == k.Ident() {
							t.allAttrs[j] = k
						}
					}
				}
				t.attrByIdent[k.Ident()] = k
			}
			for _, m := range chain[i].Members {
				if _, seen := t.memberBySel[m.Selector]; !seen {
					t.allMembers = append(t.allMembers, m)
				} else {
					for j := range t.allMembers {
						if t.allMembers[j].Selector == m.Selector {
							t.allMembers[j] = m
						}
					}
				}
				t.memberBySel[m.Selector] = m
			}
		}
	})
}

// AllAttributes returns the flattened attribute table, ancestors first.
func (t *TypeDefinition) AllAttributes() []AttributeKey {
	t.flatten()
	return t.allAttrs
}

// AllMembers returns the flattened member table, ancestors first.
func (t *TypeDefinition) AllMembers() []Member {
	t.flatten()
	return t.allMembers
}

// Attribute returns the declared key with the given identity.
func (t *TypeDefinition) Attribute(id AttributeIdent) (AttributeKey, bool) {
	t.flatten()
	k, ok := t.attrByIdent[id]
	return k, ok
}

// Member returns the declared member with the given selector.
func (t *TypeDefinition) Member(sel ChildSelector) (Member, bool) {
	t.flatten()
	m, ok := t.memberBySel[sel]
	return m, ok
}

// IsSubtypeOf reports whether t is other or derives from it.
func (t *TypeDefinition) IsSubtypeOf(other *TypeDefinition) bool {
	if other == nil {
		return false
	}
	for d := t; d != nil; d = d.Parent {
		if d.ID == other.ID {
			return true
		}
	}
	return false
}

// String returns the type name.
func (t *TypeDefinition) String() string {
	if t == nil {
		return "<nil>"
	}
	if t.Name != "" {
		return t.Name
	}
	return t.ID.String()
}
