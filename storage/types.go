package storage

// TypeKind represents the structural category of a resolved storage type.
type TypeKind string

const (
	// TypeKindElementary represents a value type with a compiler-defined layout (uint256, address, string, ...)
	TypeKindElementary TypeKind = "elementary"
	// TypeKindArray represents a fixed or dynamically sized array type
	TypeKindArray TypeKind = "array"
	// TypeKindMapping represents a mapping type
	TypeKindMapping TypeKind = "mapping"
	// TypeKindStruct represents a user-defined struct type
	TypeKindStruct TypeKind = "struct"
	// TypeKindEnum represents a user-defined enum type
	TypeKindEnum TypeKind = "enum"
)

// DynamicLength is the sentinel recorded as the length of dynamically-sized arrays.
const DynamicLength = "dyn"

// TypeInfo is the canonical descriptor of a resolved storage type. Its Id identifies
// the type by structure rather than by syntactic occurrence, so that two independently
// computed layouts can be joined on it.
type TypeInfo struct {
	// Id is the canonical identifier of the type, stable and unique per structural type.
	Id string `json:"id"`

	// Kind is the structural category of the type.
	Kind TypeKind `json:"kind"`

	// Label is a human-readable rendering of the type.
	Label string `json:"label"`

	// ValueType is the canonical id of the contained type, for array and mapping types.
	ValueType string `json:"valueType,omitempty"`

	// Length is the declared length of an array type, or DynamicLength when the array
	// is dynamically sized.
	Length string `json:"length,omitempty"`

	// Members lists a struct type's fields in declaration order.
	Members []StorageInfo `json:"members,omitempty"`

	// EnumValues lists an enum type's member names in declaration order.
	EnumValues []string `json:"values,omitempty"`
}

// StorageInfo describes one declared variable: a contract state variable or a struct
// field.
type StorageInfo struct {
	// Label is the declared name of the variable.
	Label string `json:"label"`

	// AstId is the node id of the variable's declaration.
	AstId int64 `json:"astId"`

	// Type is the canonical id of the variable's resolved type, resolvable through
	// Layout.Types.
	Type string `json:"type"`
}

// StorageEntry describes one state variable occupying contract storage, together with
// the contract in the inheritance linearization that declares it.
type StorageEntry struct {
	// Contract is the name of the declaring contract, which for inherited variables is
	// a base contract rather than the contract the layout was computed for.
	Contract string `json:"contract"`

	StorageInfo
}

// Layout is the computed storage layout descriptor of one contract: the catalogue of
// every type touched during resolution, plus the ordered list of storage entries.
// Entries are ordered base-most contract first, declaration order within a contract,
// matching the order the compiler assigns storage slots.
type Layout struct {
	// Types maps canonical type ids to their descriptors. Every type id referenced by
	// Storage, by an array or mapping value type, or by a struct member resolves here.
	Types map[string]TypeInfo `json:"types"`

	// Storage is the ordered list of the contract's storage entries.
	Storage []StorageEntry `json:"storage"`

	// CompilerVersion is the version of the compiler that produced the analyzed
	// artifact, if the artifact recorded one.
	CompilerVersion string `json:"compilerVersion,omitempty"`
}
