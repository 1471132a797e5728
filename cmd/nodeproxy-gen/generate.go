package main

import (
	"fmt"
	"strings"

	"github.com/nodeproxy/nodeproxy-go/pkg/model"
)

// reservedMethods are promoted from *proxy.Node and cannot be used as
// accessor names.
var reservedMethods = map[string]bool{
	"ProxyNode": true, "Ref": true, "TypeDefinition": true, "Space": true,
	"Attributes": true, "Children": true, "NodeClass": true, "BrowseName": true,
	"DisplayName": true, "Get": true, "Set": true, "Read": true, "ReadAsync": true,
	"Write": true, "WriteAsync": true, "Refresh": true, "Child": true,
	"ChildAsync": true, "Browse": true, "CachedChild": true, "String": true,
}

// GenerateType generates the Go source of one type: its keys, members,
// definition, view and accessors.
func GenerateType(def *RawTypeDef, schema *RawSchema) (string, error) {
	class, err := model.ParseNodeClass(def.Class)
	if err != nil {
		return "", err
	}

	data := typeData{
		Package:     schema.Package,
		Name:        def.Name,
		ID:          def.ID,
		ClassConst:  "model.NodeClass" + class.String(),
		Parent:      def.Parent,
		Abstract:    def.Abstract,
		Description: def.Description,
	}

	for _, a := range def.Attributes {
		ad, err := buildAttrData(def.Name, a, schema.Namespace)
		if err != nil {
			return "", fmt.Errorf("type %s: %w", def.Name, err)
		}
		data.Attributes = append(data.Attributes, ad)
	}
	for _, m := range def.Members {
		if reservedMethods[m.Name+"Node"] {
			return "", fmt.Errorf("type %s: member %s collides with a proxy method", def.Name, m.Name)
		}
		data.Members = append(data.Members, memberData{
			Name:          m.Name,
			VarName:       def.Name + m.Name + "Member",
			Type:          m.Type,
			NamespaceExpr: namespaceExpr(m.Namespace, schema.Namespace),
			Optional:      m.Optional,
			Description:   m.Description,
		})
	}

	var b strings.Builder
	renderTemplate(&b, "type", data)
	return b.String(), nil
}

// GenerateRegistry generates the registration table for every type.
func GenerateRegistry(schema *RawSchema) (string, error) {
	if len(schema.Types) == 0 {
		return "", fmt.Errorf("schema has no types")
	}
	var b strings.Builder
	renderTemplate(&b, "registry", registryData{
		Package:   schema.Package,
		Namespace: schema.Namespace,
		Types:     schema.Types,
	})
	return b.String(), nil
}

func buildAttrData(typeName string, a RawAttributeDef, schemaNS string) (attrData, error) {
	if reservedMethods[a.Name] {
		return attrData{}, fmt.Errorf("attribute %s collides with a proxy method", a.Name)
	}

	dt, err := model.ParseDataType(a.Type)
	if err != nil {
		return attrData{}, err
	}
	rank := model.ValueRankScalar
	if a.Rank != nil {
		rank = *a.Rank
	}
	access := model.AccessRead
	if a.Access != "" {
		if access, err = model.ParseAccess(a.Access); err != nil {
			return attrData{}, err
		}
	}

	ad := attrData{
		Name:          a.Name,
		VarName:       typeName + a.Name + "Key",
		GoType:        goTypeName(dt, rank),
		DataTypeConst: modelDataType(dt),
		RankExpr:      rankExpr(rank),
		AccessConst:   accessConst(access),
		Optional:      a.Optional,
		Description:   a.Description,
	}
	if a.Intrinsic {
		ad.IDConst, _ = attributeIDConst(a.Name)
	} else {
		ad.IDConst = "model.AttrValue"
		ad.NamespaceExpr = namespaceExpr(a.Namespace, schemaNS)
	}
	return ad, nil
}

// namespaceExpr refers to the generated Namespace constant unless ns names
// a different namespace.
func namespaceExpr(ns, schemaNS string) string {
	if ns == "" || ns == schemaNS {
		return "Namespace"
	}
	return fmt.Sprintf("%q", ns)
}

// goScalarTypes maps data types to the Go type of a scalar value.
var goScalarTypes = map[model.DataType]string{
	model.DataTypeBool:          "bool",
	model.DataTypeInt8:          "int8",
	model.DataTypeInt16:         "int16",
	model.DataTypeInt32:         "int32",
	model.DataTypeInt64:         "int64",
	model.DataTypeUint8:         "uint8",
	model.DataTypeUint16:        "uint16",
	model.DataTypeUint32:        "uint32",
	model.DataTypeUint64:        "uint64",
	model.DataTypeFloat32:       "float32",
	model.DataTypeFloat64:       "float64",
	model.DataTypeString:        "string",
	model.DataTypeBytes:         "[]byte",
	model.DataTypeTime:          "time.Time",
	model.DataTypeStatus:        "uint32",
	model.DataTypeRef:           "model.EntityRef",
	model.DataTypeQualifiedName: "model.QualifiedName",
	model.DataTypeNodeClass:     "model.NodeClass",
}

// goTypeName returns the Go type of a value with the given type and rank.
// Shapes that are not fixed by the rank map to any.
func goTypeName(dt model.DataType, rank int32) string {
	scalar, ok := goScalarTypes[dt]
	if !ok {
		scalar = "any"
	}
	switch {
	case rank == model.ValueRankScalar:
		return scalar
	case rank >= 1:
		return strings.Repeat("[]", int(rank)) + scalar
	default:
		return "any"
	}
}

// modelDataType converts "qualifiedName" to "model.DataTypeQualifiedName".
func modelDataType(dt model.DataType) string {
	name := dt.String()
	return "model.DataType" + strings.ToUpper(name[:1]) + name[1:]
}

func rankExpr(rank int32) string {
	switch rank {
	case model.ValueRankScalarOrOneDimension:
		return "model.ValueRankScalarOrOneDimension"
	case model.ValueRankAny:
		return "model.ValueRankAny"
	case model.ValueRankScalar:
		return "model.ValueRankScalar"
	case model.ValueRankOneOrMoreDimensions:
		return "model.ValueRankOneOrMoreDimensions"
	case model.ValueRankOneDimension:
		return "model.ValueRankOneDimension"
	default:
		return fmt.Sprint(rank)
	}
}

func accessConst(a model.Access) string {
	switch a {
	case model.AccessReadWrite:
		return "model.AccessReadWrite"
	case model.AccessWrite:
		return "model.AccessWrite"
	case model.AccessRead:
		return "model.AccessRead"
	default:
		return "0"
	}
}

// attributeIDConst returns the model constant of an intrinsic attribute.
func attributeIDConst(name string) (string, bool) {
	for id := model.AttrNodeID; id <= model.AttrAccessLevelEx; id++ {
		if id.String() != name {
			continue
		}
		if id == model.AttrNodeID {
			return "model.AttrNodeID", true
		}
		return "model.Attr" + name, true
	}
	return "", false
}

// article returns "an" for names starting with a vowel, "a" otherwise.
func article(s string) string {
	if s != "" && strings.ContainsRune("AEIOU", rune(s[0])) {
		return "an"
	}
	return "a"
}

// typeFileName converts "ServerStatusType" to "server_status_type".
func typeFileName(name string) string {
	var result strings.Builder
	for i, r := range name {
		if i > 0 && r >= 'A' && r <= 'Z' {
			result.WriteByte('_')
		}
		result.WriteRune(r)
	}
	return strings.ToLower(result.String())
}
