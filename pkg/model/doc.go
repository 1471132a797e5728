// Package model defines the address space vocabulary shared by the proxy
// layer, the wire protocol and the in-memory server.
//
// # Addressing
//
// Every entity is identified by an EntityRef, a namespace URI plus a numeric
// or string identifier:
//
//	nsu=http://opcfoundation.org/UA/;i=2253
//	nsu=http://example/;s=Boiler1
//
// Children are addressed relative to their parent by a ChildSelector, the
// (namespace URI, browse name) pair.
//
// # Attributes
//
// An AttributeKey names either an intrinsic node attribute (empty namespace,
// addressed by AttributeID such as AttrValue) or a property child whose Value
// holds the attribute. Keys carry the declared DataType and ValueRank:
//
//	-3  scalar or one-dimensional array
//	-2  any shape
//	-1  scalar
//	 0  one or more dimensions
//	 n  exactly n dimensions
//
// # Types
//
// A TypeDefinition lists the attribute keys and members a type declares.
// Ancestor tables are flattened on first use, so a subtype answers for every
// attribute of its supertypes.
//
// # Space
//
// Space and Entity implement a small in-memory address space used by the
// server and by tests. LoadSpace builds one from YAML.
package model
