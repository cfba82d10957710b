package storage

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/zachzundel/zos/ast"
)

// arrayLengthPattern extracts the length segments out of a compiler array type
// identifier such as t_array$_t_uint256_$16_storage; the last segment is the
// outermost array's length.
var arrayLengthPattern = regexp.MustCompile(`_\$(\d+|dyn)_storage`)

// resolveType resolves a type name node to its canonical TypeInfo, registering it (and
// every type it transitively contains) into the type table. It dispatches on the
// node's kind; any kind outside the closed set of storage-relevant type constructs is
// a fatal UnknownNodeKindError.
func (r *layoutRun) resolveType(node ast.Node) (TypeInfo, error) {
	// A declaration can decode without a type name if the artifact is malformed; that
	// is a fatal input error, not a panic.
	if node == nil {
		return TypeInfo{}, fmt.Errorf("declaration has no type name node")
	}
	switch typeName := node.(type) {
	case *ast.ElementaryTypeName:
		return r.registerType(TypeInfo{
			Id:    normalizeTypeIdentifier(typeName.TypeDescriptions.TypeIdentifier),
			Kind:  TypeKindElementary,
			Label: typeName.TypeDescriptions.TypeString,
		}), nil

	case *ast.ArrayTypeName:
		return r.resolveArray(typeName)

	case *ast.Mapping:
		return r.resolveMapping(typeName)

	case *ast.UserDefinedTypeName:
		return r.resolveReference(typeName)

	default:
		return TypeInfo{}, &UnknownNodeKindError{NodeKind: node.Kind()}
	}
}

// resolveArray resolves an array type name. Arrays of the same element type with
// different lengths are distinct canonical types; dynamically-sized arrays carry the
// DynamicLength sentinel in their id and an empty length token in their label.
func (r *layoutRun) resolveArray(typeName *ast.ArrayTypeName) (TypeInfo, error) {
	elementType, err := r.resolveType(typeName.BaseType)
	if err != nil {
		return TypeInfo{}, err
	}
	length, err := arrayLength(typeName)
	if err != nil {
		return TypeInfo{}, err
	}
	labelLength := length
	if length == DynamicLength {
		labelLength = ""
	}
	return r.registerType(TypeInfo{
		Id:        fmt.Sprintf("t_array:%v<%v>", length, elementType.Id),
		Kind:      TypeKindArray,
		Label:     fmt.Sprintf("%v[%v]", elementType.Label, labelLength),
		Length:    length,
		ValueType: elementType.Id,
	}), nil
}

// arrayLength determines the declared length of an array type name. A missing length
// node means a dynamically-sized array. A length literal carries the length directly;
// any other length expression (e.g. an identifier naming a constant) is resolved
// through the compiler's type identifier, which encodes the evaluated constant length.
// A present length that cannot be determined either way must not be coerced to the
// dynamic sentinel, as that would merge a fixed-length array and a dynamic array onto
// one canonical id; it is a fatal error instead.
func arrayLength(typeName *ast.ArrayTypeName) (string, error) {
	if typeName.Length == nil {
		return DynamicLength, nil
	}
	if literal, ok := typeName.Length.(*ast.Literal); ok && literal.Value != "" {
		return literal.Value, nil
	}
	matches := arrayLengthPattern.FindAllStringSubmatch(typeName.TypeDescriptions.TypeIdentifier, -1)
	if len(matches) > 0 {
		return matches[len(matches)-1][1], nil
	}
	return "", &UnknownNodeKindError{NodeKind: typeName.Length.Kind()}
}

// resolveMapping resolves a mapping type name. Key types are ignored entirely: every
// mapping occupies a fixed, key-independent slot footprint, so the canonical id
// encodes only the value type. Nested mappings collapse to the innermost non-mapping
// value type for the same reason.
func (r *layoutRun) resolveMapping(typeName *ast.Mapping) (TypeInfo, error) {
	valueNode := typeName.ValueType
	for {
		nested, ok := valueNode.(*ast.Mapping)
		if !ok {
			break
		}
		valueNode = nested.ValueType
	}
	valueType, err := r.resolveType(valueNode)
	if err != nil {
		return TypeInfo{}, err
	}
	return r.registerType(TypeInfo{
		Id:        fmt.Sprintf("t_mapping<%v>", valueType.Id),
		Kind:      TypeKindMapping,
		Label:     fmt.Sprintf("mapping(key => %v)", valueType.Label),
		ValueType: valueType.Id,
	}), nil
}

// resolveReference resolves a user-defined type name by looking up the declaration it
// references in the node index and dispatching on the referenced declaration's kind.
func (r *layoutRun) resolveReference(typeName *ast.UserDefinedTypeName) (TypeInfo, error) {
	declaration, ok := r.nodes[typeName.ReferencedDeclaration]
	if !ok {
		return TypeInfo{}, &UnresolvableReferenceError{TypeString: typeName.TypeDescriptions.TypeString}
	}

	switch definition := declaration.(type) {
	case *ast.ContractDefinition:
		// A contract reference occupies one address-sized slot, which is the only fact
		// relevant to layout, so it resolves to the elementary address type.
		return r.registerType(TypeInfo{
			Id:    "t_address",
			Kind:  TypeKindElementary,
			Label: "address",
		}), nil

	case *ast.StructDefinition:
		return r.resolveStruct(definition)

	case *ast.EnumDefinition:
		return r.resolveEnum(definition)

	default:
		return TypeInfo{}, &UnresolvableReferenceError{TypeString: typeName.TypeDescriptions.TypeString}
	}
}

// resolveStruct resolves a struct definition into a canonical struct type. The id is
// qualified by the declaring contract's name, so same-named structs in different
// contracts stay distinct. Resolution is memoized through the type table, checked
// before recursing into members; the memo entry is registered up front so member
// resolution can never re-enter the same struct unboundedly.
func (r *layoutRun) resolveStruct(definition *ast.StructDefinition) (TypeInfo, error) {
	qualifiedName := definition.CanonicalName
	if qualifiedName == "" {
		qualifiedName = definition.Name
	}
	if contract, ok := r.nodes[definition.Scope].(*ast.ContractDefinition); ok {
		qualifiedName = fmt.Sprintf("%v.%v", contract.Name, definition.Name)
	}
	id := fmt.Sprintf("t_struct<%v>", qualifiedName)
	if cached, ok := r.types[id]; ok {
		return cached, nil
	}

	typeInfo := TypeInfo{
		Id:    id,
		Kind:  TypeKindStruct,
		Label: fmt.Sprintf("struct %v", qualifiedName),
	}
	r.types[id] = typeInfo

	members := make([]StorageInfo, 0, len(definition.Members))
	for _, node := range definition.Members {
		field, ok := node.(*ast.VariableDeclaration)
		if !ok {
			continue
		}
		fieldType, err := r.resolveType(field.TypeName)
		if err != nil {
			return TypeInfo{}, err
		}
		members = append(members, StorageInfo{
			Label: field.Name,
			AstId: field.ID(),
			Type:  fieldType.Id,
		})
	}
	typeInfo.Members = members
	return r.registerType(typeInfo), nil
}

// resolveEnum resolves an enum definition into a canonical enum type. The id is built
// from the enum's canonical name alone, with no declaring-scope qualifier beyond what
// the compiler put into the canonical name itself; two distinct enums sharing a
// canonical name in different scopes would collide onto one id.
func (r *layoutRun) resolveEnum(definition *ast.EnumDefinition) (TypeInfo, error) {
	qualifiedName := definition.CanonicalName
	if qualifiedName == "" {
		qualifiedName = definition.Name
	}
	values := make([]string, 0, len(definition.Members))
	for _, node := range definition.Members {
		if value, ok := node.(*ast.EnumValue); ok {
			values = append(values, value.Name)
		}
	}
	return r.registerType(TypeInfo{
		Id:         fmt.Sprintf("t_enum<%v>", qualifiedName),
		Kind:       TypeKindEnum,
		Label:      fmt.Sprintf("enum %v", qualifiedName),
		EnumValues: values,
	}), nil
}

// registerType records a resolved type into the type table and returns it.
func (r *layoutRun) registerType(typeInfo TypeInfo) TypeInfo {
	r.types[typeInfo.Id] = typeInfo
	return typeInfo
}

// normalizeTypeIdentifier canonicalizes a compiler type identifier. Every
// string-family identifier collapses to the single id t_string, since string encoding
// has uniform storage-slot behavior regardless of declared variant.
func normalizeTypeIdentifier(typeIdentifier string) string {
	if strings.HasPrefix(typeIdentifier, "t_string") {
		return "t_string"
	}
	return typeIdentifier
}
