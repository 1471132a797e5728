package model

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"
)

// AttributeID is the numeric identifier of an intrinsic node attribute.
type AttributeID uint32

// Intrinsic node attribute IDs.
const (
	AttrNodeID                  AttributeID = 1
	AttrNodeClass               AttributeID = 2
	AttrBrowseName              AttributeID = 3
	AttrDisplayName             AttributeID = 4
	AttrDescription             AttributeID = 5
	AttrWriteMask               AttributeID = 6
	AttrUserWriteMask           AttributeID = 7
	AttrIsAbstract              AttributeID = 8
	AttrSymmetric               AttributeID = 9
	AttrInverseName             AttributeID = 10
	AttrContainsNoLoops         AttributeID = 11
	AttrEventNotifier           AttributeID = 12
	AttrValue                   AttributeID = 13
	AttrDataType                AttributeID = 14
	AttrValueRank               AttributeID = 15
	AttrArrayDimensions         AttributeID = 16
	AttrAccessLevel             AttributeID = 17
	AttrUserAccessLevel         AttributeID = 18
	AttrMinimumSamplingInterval AttributeID = 19
	AttrHistorizing             AttributeID = 20
	AttrExecutable              AttributeID = 21
	AttrUserExecutable          AttributeID = 22
	AttrDataTypeDefinition      AttributeID = 23
	AttrRolePermissions         AttributeID = 24
	AttrUserRolePermissions     AttributeID = 25
	AttrAccessRestrictions      AttributeID = 26
	AttrAccessLevelEx           AttributeID = 27
)

var attributeIDNames = map[AttributeID]string{
	AttrNodeID: "NodeId", AttrNodeClass: "NodeClass", AttrBrowseName: "BrowseName",
	AttrDisplayName: "DisplayName", AttrDescription: "Description", AttrWriteMask: "WriteMask",
	AttrUserWriteMask: "UserWriteMask", AttrIsAbstract: "IsAbstract", AttrSymmetric: "Symmetric",
	AttrInverseName: "InverseName", AttrContainsNoLoops: "ContainsNoLoops",
	AttrEventNotifier: "EventNotifier", AttrValue: "Value", AttrDataType: "DataType",
	AttrValueRank: "ValueRank", AttrArrayDimensions: "ArrayDimensions",
	AttrAccessLevel: "AccessLevel", AttrUserAccessLevel: "UserAccessLevel",
	AttrMinimumSamplingInterval: "MinimumSamplingInterval", AttrHistorizing: "Historizing",
	AttrExecutable: "Executable", AttrUserExecutable: "UserExecutable",
	AttrDataTypeDefinition: "DataTypeDefinition", AttrRolePermissions: "RolePermissions",
	AttrUserRolePermissions: "UserRolePermissions", AttrAccessRestrictions: "AccessRestrictions",
	AttrAccessLevelEx: "AccessLevelEx",
}

// String returns the attribute name.
func (id AttributeID) String() string {
	if name, ok := attributeIDNames[id]; ok {
		return name
	}
	return fmt.Sprintf("Attribute(%d)", uint32(id))
}

// Access flags for attributes.
type Access uint8

const (
	// AccessRead allows reading the attribute.
	AccessRead Access = 1 << iota

	// AccessWrite allows writing the attribute.
	AccessWrite

	// AccessReadWrite is read and write.
	AccessReadWrite = AccessRead | AccessWrite
)

// CanRead returns true if reading is allowed.
func (a Access) CanRead() bool { return a&AccessRead != 0 }

// CanWrite returns true if writing is allowed.
func (a Access) CanWrite() bool { return a&AccessWrite != 0 }

// String returns the access flags as a string.
func (a Access) String() string {
	var s string
	if a.CanRead() {
		s += "R"
	}
	if a.CanWrite() {
		s += "W"
	}
	if s == "" {
		return "-"
	}
	return s
}

// ParseAccess parses "R", "W", "RW" (case-insensitive).
func ParseAccess(s string) (Access, error) {
	var a Access
	for _, c := range strings.ToUpper(s) {
		switch c {
		case 'R':
			a |= AccessRead
		case 'W':
			a |= AccessWrite
		case '-':
		default:
			return 0, fmt.Errorf("invalid access %q", s)
		}
	}
	return a, nil
}

// DataType represents the declared type of an attribute value.
type DataType uint8

const (
	DataTypeUnknown DataType = iota
	DataTypeBool
	DataTypeInt8
	DataTypeInt16
	DataTypeInt32
	DataTypeInt64
	DataTypeUint8
	DataTypeUint16
	DataTypeUint32
	DataTypeUint64
	DataTypeFloat32
	DataTypeFloat64
	DataTypeString
	DataTypeBytes
	DataTypeTime
	DataTypeStatus
	DataTypeRef
	DataTypeQualifiedName
	DataTypeNodeClass
	DataTypeStruct
	DataTypeAny
)

var dataTypeNames = []string{
	"unknown", "bool", "int8", "int16", "int32", "int64",
	"uint8", "uint16", "uint32", "uint64", "float32", "float64",
	"string", "bytes", "time", "status", "ref", "qualifiedName",
	"nodeClass", "struct", "any",
}

// String returns the data type name.
func (d DataType) String() string {
	if int(d) < len(dataTypeNames) {
		return dataTypeNames[d]
	}
	return "unknown"
}

// ParseDataType returns the DataType with the given name.
func ParseDataType(s string) (DataType, error) {
	for i, name := range dataTypeNames {
		if strings.EqualFold(name, s) {
			return DataType(i), nil
		}
	}
	return DataTypeUnknown, fmt.Errorf("unknown data type %q", s)
}

// Value ranks.
const (
	// ValueRankScalarOrOneDimension accepts a scalar or a one-dimensional array.
	ValueRankScalarOrOneDimension int32 = -3

	// ValueRankAny accepts any shape.
	ValueRankAny int32 = -2

	// ValueRankScalar accepts only scalars.
	ValueRankScalar int32 = -1

	// ValueRankOneOrMoreDimensions accepts arrays of any rank.
	ValueRankOneOrMoreDimensions int32 = 0

	// ValueRankOneDimension accepts one-dimensional arrays.
	ValueRankOneDimension int32 = 1
)

// AttributeKey names an attribute of an entity.
//
// A key with an empty NamespaceURI is an intrinsic node attribute addressed
// by ID. Any other key names a property child (NamespaceURI, Name) whose
// Value holds the attribute; ID is then the numeric fallback identifier.
type AttributeKey struct {
	NamespaceURI string      `cbor:"1,keyasint,omitempty"`
	Name         string      `cbor:"2,keyasint"`
	ID           AttributeID `cbor:"3,keyasint"`
	DataType     DataType    `cbor:"4,keyasint,omitempty"`
	ValueRank    int32       `cbor:"5,keyasint,omitempty"`
	Access       Access      `cbor:"6,keyasint,omitempty"`
}

// AttributeIdent is the identity part of an AttributeKey.
type AttributeIdent struct {
	NamespaceURI string
	Name         string
	ID           AttributeID
}

// Ident returns the identity of the key. Type hints are not part of it.
func (k AttributeKey) Ident() AttributeIdent {
	return AttributeIdent{NamespaceURI: k.NamespaceURI, Name: k.Name, ID: k.ID}
}

// IsIntrinsic returns true for intrinsic node attributes.
func (k AttributeKey) IsIntrinsic() bool {
	return k.NamespaceURI == ""
}

// Selector returns the child selector of a property-backed key.
func (k AttributeKey) Selector() ChildSelector {
	return ChildSelector{NamespaceURI: k.NamespaceURI, Name: k.Name}
}

// String returns a human-readable form of the key.
func (k AttributeKey) String() string {
	if k.IsIntrinsic() {
		return k.ID.String()
	}
	return QualifiedName{Namespace: k.NamespaceURI, Name: k.Name}.String()
}

// Intrinsic returns the key of an intrinsic attribute with the given type hints.
func Intrinsic(id AttributeID, dt DataType, rank int32) AttributeKey {
	return AttributeKey{Name: id.String(), ID: id, DataType: dt, ValueRank: rank, Access: AccessRead}
}

// Intrinsic attribute keys shared by every node.
var (
	KeyNodeID          = Intrinsic(AttrNodeID, DataTypeRef, ValueRankScalar)
	KeyNodeClass       = Intrinsic(AttrNodeClass, DataTypeNodeClass, ValueRankScalar)
	KeyBrowseName      = Intrinsic(AttrBrowseName, DataTypeQualifiedName, ValueRankScalar)
	KeyDisplayName     = Intrinsic(AttrDisplayName, DataTypeString, ValueRankScalar)
	KeyDescription     = Intrinsic(AttrDescription, DataTypeString, ValueRankScalar)
	KeyWriteMask       = Intrinsic(AttrWriteMask, DataTypeUint32, ValueRankScalar)
	KeyUserWriteMask   = Intrinsic(AttrUserWriteMask, DataTypeUint32, ValueRankScalar)
	KeyEventNotifier   = Intrinsic(AttrEventNotifier, DataTypeUint8, ValueRankScalar)
	KeyValue           = AttributeKey{Name: "Value", ID: AttrValue, DataType: DataTypeAny, ValueRank: ValueRankAny, Access: AccessReadWrite}
	KeyDataType        = Intrinsic(AttrDataType, DataTypeUint8, ValueRankScalar)
	KeyValueRank       = Intrinsic(AttrValueRank, DataTypeInt32, ValueRankScalar)
	KeyAccessLevel     = Intrinsic(AttrAccessLevel, DataTypeUint8, ValueRankScalar)
	KeyUserAccessLevel = Intrinsic(AttrUserAccessLevel, DataTypeUint8, ValueRankScalar)
	KeyMinimumSampling = Intrinsic(AttrMinimumSamplingInterval, DataTypeFloat64, ValueRankScalar)
	KeyHistorizing     = Intrinsic(AttrHistorizing, DataTypeBool, ValueRankScalar)
)

// Value errors.
var (
	ErrInvalidShape = errors.New("invalid value shape")
	ErrValueType    = errors.New("invalid value type for attribute")
)

// CheckShape verifies that v has the array rank the key declares.
// A nil value is accepted for every rank.
func (k AttributeKey) CheckShape(v any) error {
	if v == nil {
		return nil
	}
	rank := rankOf(reflect.ValueOf(v), k.DataType)

	switch want := k.ValueRank; {
	case want == ValueRankAny:
		return nil
	case want == ValueRankScalar:
		if rank != 0 {
			return fmt.Errorf("%w: %s expects a scalar, got rank %d", ErrInvalidShape, k, rank)
		}
	case want == ValueRankScalarOrOneDimension:
		if rank > 1 {
			return fmt.Errorf("%w: %s expects a scalar or 1-d array, got rank %d", ErrInvalidShape, k, rank)
		}
	case want == ValueRankOneOrMoreDimensions:
		if rank < 1 {
			return fmt.Errorf("%w: %s expects an array", ErrInvalidShape, k)
		}
	case want >= 1:
		if rank != int(want) {
			return fmt.Errorf("%w: %s expects rank %d, got %d", ErrInvalidShape, k, want, rank)
		}
	}
	return nil
}

// rankOf counts array dimensions. A byte slice counts as a scalar for
// DataTypeBytes.
func rankOf(rv reflect.Value, dt DataType) int {
	rank := 0
	for {
		for rv.IsValid() && rv.Kind() == reflect.Interface {
			rv = rv.Elem()
		}
		if !rv.IsValid() {
			return rank
		}
		kind := rv.Kind()
		if kind != reflect.Slice && kind != reflect.Array {
			return rank
		}
		if dt == DataTypeBytes && rv.Type().Elem().Kind() == reflect.Uint8 {
			return rank
		}
		rank++
		if rv.Len() == 0 {
			return rank + staticRank(rv.Type().Elem(), dt)
		}
		rv = rv.Index(0)
	}
}

func staticRank(t reflect.Type, dt DataType) int {
	rank := 0
	for t.Kind() == reflect.Slice || t.Kind() == reflect.Array {
		if dt == DataTypeBytes && t.Elem().Kind() == reflect.Uint8 {
			break
		}
		rank++
		t = t.Elem()
	}
	return rank
}

// CheckValue verifies shape and, for scalars and array elements, the
// dynamic type of v against the declared DataType.
func (k AttributeKey) CheckValue(v any) error {
	if err := k.CheckShape(v); err != nil {
		return err
	}
	if v == nil {
		return nil
	}
	return checkElements(reflect.ValueOf(v), k.DataType)
}

func checkElements(rv reflect.Value, dt DataType) error {
	for rv.IsValid() && rv.Kind() == reflect.Interface {
		rv = rv.Elem()
	}
	if !rv.IsValid() {
		return nil
	}
	if (rv.Kind() == reflect.Slice || rv.Kind() == reflect.Array) &&
		!(dt == DataTypeBytes && rv.Type().Elem().Kind() == reflect.Uint8) {
		for i := 0; i < rv.Len(); i++ {
			if err := checkElements(rv.Index(i), dt); err != nil {
				return err
			}
		}
		return nil
	}
	return checkScalar(rv.Interface(), dt)
}

// checkScalar checks the dynamic type of a single value.
func checkScalar(value any, dt DataType) error {
	switch dt {
	case DataTypeBool:
		if _, ok := value.(bool); !ok {
			return fmt.Errorf("%w: expected bool", ErrValueType)
		}
	case DataTypeInt8, DataTypeInt16, DataTypeInt32, DataTypeInt64:
		if !isIntegerType(value) {
			return fmt.Errorf("%w: expected integer", ErrValueType)
		}
		if err := checkIntRange(value, dt); err != nil {
			return err
		}
	case DataTypeUint8, DataTypeUint16, DataTypeUint32, DataTypeUint64, DataTypeStatus, DataTypeNodeClass:
		if !isIntegerType(value) {
			return fmt.Errorf("%w: expected unsigned integer", ErrValueType)
		}
		if err := checkIntRange(value, dt); err != nil {
			return err
		}
	case DataTypeFloat32, DataTypeFloat64:
		if !isNumericType(value) {
			return fmt.Errorf("%w: expected float", ErrValueType)
		}
	case DataTypeString:
		if _, ok := value.(string); !ok {
			return fmt.Errorf("%w: expected string", ErrValueType)
		}
	case DataTypeBytes:
		if _, ok := value.([]byte); !ok {
			return fmt.Errorf("%w: expected bytes", ErrValueType)
		}
	case DataTypeTime:
		if _, ok := value.(time.Time); !ok {
			return fmt.Errorf("%w: expected time", ErrValueType)
		}
	}
	return nil
}

var intRanges = map[DataType][2]float64{
	DataTypeInt8:      {-1 << 7, 1<<7 - 1},
	DataTypeInt16:     {-1 << 15, 1<<15 - 1},
	DataTypeInt32:     {-1 << 31, 1<<31 - 1},
	DataTypeUint8:     {0, 1<<8 - 1},
	DataTypeUint16:    {0, 1<<16 - 1},
	DataTypeUint32:    {0, 1<<32 - 1},
	DataTypeStatus:    {0, 1<<32 - 1},
	DataTypeNodeClass: {0, 1<<8 - 1},
	DataTypeUint64:    {0, 1<<64 - 1},
}

func checkIntRange(value any, dt DataType) error {
	bounds, ok := intRanges[dt]
	if !ok {
		return nil
	}
	v, _ := toFloat64(value)
	if v < bounds[0] || v > bounds[1] {
		return fmt.Errorf("%w: %v out of range for %s", ErrValueType, value, dt)
	}
	return nil
}

// Helper functions for type checking.

func isIntegerType(v any) bool {
	switch v.(type) {
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return true
	default:
		return false
	}
}

func isNumericType(v any) bool {
	switch v.(type) {
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64, float32, float64:
		return true
	default:
		return false
	}
}

func toFloat64(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	case float32:
		return float64(n), true
	case float64:
		return n, true
	default:
		return 0, false
	}
}
