package ast

import (
	"encoding/json"
)

// NodeKind represents the node type tag of a solc AST node.
type NodeKind string

const (
	// NodeKindSourceUnit represents a source unit node, the root of a file's AST
	NodeKindSourceUnit NodeKind = "SourceUnit"
	// NodeKindImportDirective represents an import directive node
	NodeKindImportDirective NodeKind = "ImportDirective"
	// NodeKindContractDefinition represents a contract definition node
	NodeKindContractDefinition NodeKind = "ContractDefinition"
	// NodeKindVariableDeclaration represents a variable declaration node
	NodeKindVariableDeclaration NodeKind = "VariableDeclaration"
	// NodeKindElementaryTypeName represents an elementary type name node (e.g. uint256)
	NodeKindElementaryTypeName NodeKind = "ElementaryTypeName"
	// NodeKindArrayTypeName represents an array type name node
	NodeKindArrayTypeName NodeKind = "ArrayTypeName"
	// NodeKindMapping represents a mapping type name node
	NodeKindMapping NodeKind = "Mapping"
	// NodeKindUserDefinedTypeName represents a reference to a user-defined declaration
	NodeKindUserDefinedTypeName NodeKind = "UserDefinedTypeName"
	// NodeKindStructDefinition represents a struct definition node
	NodeKindStructDefinition NodeKind = "StructDefinition"
	// NodeKindEnumDefinition represents an enum definition node
	NodeKindEnumDefinition NodeKind = "EnumDefinition"
	// NodeKindEnumValue represents a single member of an enum definition
	NodeKindEnumValue NodeKind = "EnumValue"
	// NodeKindLiteral represents a literal expression node (e.g. an array length)
	NodeKindLiteral NodeKind = "Literal"
)

// ContractKind represents the kind of contract definition represented by an AST node
type ContractKind string

const (
	// ContractKindContract represents a contract node
	ContractKindContract ContractKind = "contract"
	// ContractKindLibrary represents a library node
	ContractKindLibrary ContractKind = "library"
	// ContractKindInterface represents an interface node
	ContractKindInterface ContractKind = "interface"
)

// Node interface represents a generic AST node
type Node interface {
	// ID returns the node identifier, unique and stable across a compilation.
	ID() int64
	// Kind returns the node type tag of the node.
	Kind() NodeKind
	// Children returns the child nodes of this node, if any.
	Children() []Node
}

// TypeDescriptions holds the rendered type information solc attaches to type name and
// expression nodes.
type TypeDescriptions struct {
	// TypeIdentifier is the compiler's canonical identifier for the type (e.g. t_uint256)
	TypeIdentifier string `json:"typeIdentifier"`
	// TypeString is the human-readable rendering of the type (e.g. uint256)
	TypeString string `json:"typeString"`
}

// SourceUnit is the root node of one source file's AST.
type SourceUnit struct {
	Id int64 `json:"id"`
	// AbsolutePath is the resolved path of the source file this unit was parsed from
	AbsolutePath string `json:"absolutePath,omitempty"`
	// Nodes is a list of the top-level nodes of the source unit
	Nodes []Node `json:"nodes"`
}

// ID implements the Node interface and returns the node identifier
func (s *SourceUnit) ID() int64 { return s.Id }

// Kind implements the Node interface and returns the node type tag
func (s *SourceUnit) Kind() NodeKind { return NodeKindSourceUnit }

// Children implements the Node interface and returns the top-level nodes
func (s *SourceUnit) Children() []Node { return s.Nodes }

// UnmarshalJSON unmarshals from JSON, deferring child node decoding to UnmarshalNode.
func (s *SourceUnit) UnmarshalJSON(data []byte) error {
	type alias SourceUnit
	aux := &struct {
		Nodes []json.RawMessage `json:"nodes"`
		*alias
	}{alias: (*alias)(s)}
	if err := json.Unmarshal(data, aux); err != nil {
		return err
	}
	nodes, err := unmarshalNodeList(aux.Nodes)
	if err != nil {
		return err
	}
	s.Nodes = nodes
	return nil
}

// ImportDirective is an import directive node at the top level of a source unit.
type ImportDirective struct {
	Id int64 `json:"id"`
	// AbsolutePath is the resolved absolute path of the imported source file
	AbsolutePath string `json:"absolutePath"`
}

func (i *ImportDirective) ID() int64        { return i.Id }
func (i *ImportDirective) Kind() NodeKind   { return NodeKindImportDirective }
func (i *ImportDirective) Children() []Node { return nil }

// ContractDefinition is the contract definition node
type ContractDefinition struct {
	Id int64 `json:"id"`
	// Name is the declared name of the contract
	Name string `json:"name"`
	// CanonicalName is the fully qualified name of the contract definition
	CanonicalName string `json:"canonicalName,omitempty"`
	// ContractKind represents what type of contract definition this is (contract, interface, or library)
	ContractKind ContractKind `json:"contractKind,omitempty"`
	// LinearizedBaseContracts lists the node ids of this contract and all its base
	// contracts in C3-linearized order, most-derived contract first.
	LinearizedBaseContracts []int64 `json:"linearizedBaseContracts"`
	// Nodes is a list of the contract's member nodes
	Nodes []Node `json:"nodes"`
}

func (c *ContractDefinition) ID() int64        { return c.Id }
func (c *ContractDefinition) Kind() NodeKind   { return NodeKindContractDefinition }
func (c *ContractDefinition) Children() []Node { return c.Nodes }

// UnmarshalJSON unmarshals from JSON, deferring child node decoding to UnmarshalNode.
func (c *ContractDefinition) UnmarshalJSON(data []byte) error {
	type alias ContractDefinition
	aux := &struct {
		Nodes []json.RawMessage `json:"nodes"`
		*alias
	}{alias: (*alias)(c)}
	if err := json.Unmarshal(data, aux); err != nil {
		return err
	}
	nodes, err := unmarshalNodeList(aux.Nodes)
	if err != nil {
		return err
	}
	c.Nodes = nodes
	return nil
}

// VariableDeclaration is a variable declaration node, covering state variables as well
// as struct members.
type VariableDeclaration struct {
	Id int64 `json:"id"`
	// Name is the declared name of the variable
	Name string `json:"name"`
	// StateVariable is true if the variable is a contract state variable
	StateVariable bool `json:"stateVariable"`
	// Constant is true if the variable is declared constant (occupies no storage slot)
	Constant bool `json:"constant"`
	// TypeName is the declared type name node of the variable
	TypeName Node `json:"-"`
	// TypeDescriptions holds the rendered type information of the declaration
	TypeDescriptions TypeDescriptions `json:"typeDescriptions"`
}

func (v *VariableDeclaration) ID() int64      { return v.Id }
func (v *VariableDeclaration) Kind() NodeKind { return NodeKindVariableDeclaration }

func (v *VariableDeclaration) Children() []Node {
	if v.TypeName == nil {
		return nil
	}
	return []Node{v.TypeName}
}

// UnmarshalJSON unmarshals from JSON, deferring the type name decoding to UnmarshalNode.
func (v *VariableDeclaration) UnmarshalJSON(data []byte) error {
	type alias VariableDeclaration
	aux := &struct {
		TypeName json.RawMessage `json:"typeName"`
		*alias
	}{alias: (*alias)(v)}
	if err := json.Unmarshal(data, aux); err != nil {
		return err
	}
	if len(aux.TypeName) > 0 && string(aux.TypeName) != "null" {
		typeName, err := UnmarshalNode(aux.TypeName)
		if err != nil {
			return err
		}
		v.TypeName = typeName
	}
	return nil
}

// ElementaryTypeName is an elementary type name node (e.g. uint256, address, string).
type ElementaryTypeName struct {
	Id               int64            `json:"id"`
	Name             string           `json:"name"`
	TypeDescriptions TypeDescriptions `json:"typeDescriptions"`
}

func (e *ElementaryTypeName) ID() int64        { return e.Id }
func (e *ElementaryTypeName) Kind() NodeKind   { return NodeKindElementaryTypeName }
func (e *ElementaryTypeName) Children() []Node { return nil }

// ArrayTypeName is an array type name node. Length is nil for dynamically-sized arrays.
type ArrayTypeName struct {
	Id               int64            `json:"id"`
	BaseType         Node             `json:"-"`
	Length           Node             `json:"-"`
	TypeDescriptions TypeDescriptions `json:"typeDescriptions"`
}

func (a *ArrayTypeName) ID() int64      { return a.Id }
func (a *ArrayTypeName) Kind() NodeKind { return NodeKindArrayTypeName }

func (a *ArrayTypeName) Children() []Node {
	children := make([]Node, 0, 2)
	if a.BaseType != nil {
		children = append(children, a.BaseType)
	}
	if a.Length != nil {
		children = append(children, a.Length)
	}
	return children
}

// UnmarshalJSON unmarshals from JSON, deferring base type and length decoding to UnmarshalNode.
func (a *ArrayTypeName) UnmarshalJSON(data []byte) error {
	type alias ArrayTypeName
	aux := &struct {
		BaseType json.RawMessage `json:"baseType"`
		Length   json.RawMessage `json:"length"`
		*alias
	}{alias: (*alias)(a)}
	if err := json.Unmarshal(data, aux); err != nil {
		return err
	}
	if len(aux.BaseType) > 0 && string(aux.BaseType) != "null" {
		baseType, err := UnmarshalNode(aux.BaseType)
		if err != nil {
			return err
		}
		a.BaseType = baseType
	}
	if len(aux.Length) > 0 && string(aux.Length) != "null" {
		length, err := UnmarshalNode(aux.Length)
		if err != nil {
			return err
		}
		a.Length = length
	}
	return nil
}

// Mapping is a mapping type name node.
type Mapping struct {
	Id               int64            `json:"id"`
	KeyType          Node             `json:"-"`
	ValueType        Node             `json:"-"`
	TypeDescriptions TypeDescriptions `json:"typeDescriptions"`
}

func (m *Mapping) ID() int64      { return m.Id }
func (m *Mapping) Kind() NodeKind { return NodeKindMapping }

func (m *Mapping) Children() []Node {
	children := make([]Node, 0, 2)
	if m.KeyType != nil {
		children = append(children, m.KeyType)
	}
	if m.ValueType != nil {
		children = append(children, m.ValueType)
	}
	return children
}

// UnmarshalJSON unmarshals from JSON, deferring key and value type decoding to UnmarshalNode.
func (m *Mapping) UnmarshalJSON(data []byte) error {
	type alias Mapping
	aux := &struct {
		KeyType   json.RawMessage `json:"keyType"`
		ValueType json.RawMessage `json:"valueType"`
		*alias
	}{alias: (*alias)(m)}
	if err := json.Unmarshal(data, aux); err != nil {
		return err
	}
	if len(aux.KeyType) > 0 && string(aux.KeyType) != "null" {
		keyType, err := UnmarshalNode(aux.KeyType)
		if err != nil {
			return err
		}
		m.KeyType = keyType
	}
	if len(aux.ValueType) > 0 && string(aux.ValueType) != "null" {
		valueType, err := UnmarshalNode(aux.ValueType)
		if err != nil {
			return err
		}
		m.ValueType = valueType
	}
	return nil
}

// UserDefinedTypeName is a reference to a user-defined declaration (a contract, struct,
// or enum), identified by the id of the declaration node it names.
type UserDefinedTypeName struct {
	Id                    int64            `json:"id"`
	Name                  string           `json:"name"`
	ReferencedDeclaration int64            `json:"referencedDeclaration"`
	TypeDescriptions      TypeDescriptions `json:"typeDescriptions"`
}

func (u *UserDefinedTypeName) ID() int64        { return u.Id }
func (u *UserDefinedTypeName) Kind() NodeKind   { return NodeKindUserDefinedTypeName }
func (u *UserDefinedTypeName) Children() []Node { return nil }

// StructDefinition is a struct definition node.
type StructDefinition struct {
	Id            int64  `json:"id"`
	Name          string `json:"name"`
	CanonicalName string `json:"canonicalName,omitempty"`
	// Scope is the node id of the scope (typically the contract) declaring this struct
	Scope int64 `json:"scope"`
	// Members is the ordered list of the struct's field declarations
	Members []Node `json:"-"`
}

func (s *StructDefinition) ID() int64        { return s.Id }
func (s *StructDefinition) Kind() NodeKind   { return NodeKindStructDefinition }
func (s *StructDefinition) Children() []Node { return s.Members }

// UnmarshalJSON unmarshals from JSON, deferring member decoding to UnmarshalNode.
func (s *StructDefinition) UnmarshalJSON(data []byte) error {
	type alias StructDefinition
	aux := &struct {
		Members []json.RawMessage `json:"members"`
		*alias
	}{alias: (*alias)(s)}
	if err := json.Unmarshal(data, aux); err != nil {
		return err
	}
	members, err := unmarshalNodeList(aux.Members)
	if err != nil {
		return err
	}
	s.Members = members
	return nil
}

// EnumDefinition is an enum definition node.
type EnumDefinition struct {
	Id            int64  `json:"id"`
	Name          string `json:"name"`
	CanonicalName string `json:"canonicalName,omitempty"`
	// Members is the ordered list of the enum's value declarations
	Members []Node `json:"-"`
}

func (e *EnumDefinition) ID() int64        { return e.Id }
func (e *EnumDefinition) Kind() NodeKind   { return NodeKindEnumDefinition }
func (e *EnumDefinition) Children() []Node { return e.Members }

// UnmarshalJSON unmarshals from JSON, deferring member decoding to UnmarshalNode.
func (e *EnumDefinition) UnmarshalJSON(data []byte) error {
	type alias EnumDefinition
	aux := &struct {
		Members []json.RawMessage `json:"members"`
		*alias
	}{alias: (*alias)(e)}
	if err := json.Unmarshal(data, aux); err != nil {
		return err
	}
	members, err := unmarshalNodeList(aux.Members)
	if err != nil {
		return err
	}
	e.Members = members
	return nil
}

// EnumValue is a single member of an enum definition.
type EnumValue struct {
	Id   int64  `json:"id"`
	Name string `json:"name"`
}

func (e *EnumValue) ID() int64        { return e.Id }
func (e *EnumValue) Kind() NodeKind   { return NodeKindEnumValue }
func (e *EnumValue) Children() []Node { return nil }

// Literal is a literal expression node. For array type names, the length expression is
// a literal whose Value carries the declared length.
type Literal struct {
	Id    int64  `json:"id"`
	Value string `json:"value"`
}

func (l *Literal) ID() int64        { return l.Id }
func (l *Literal) Kind() NodeKind   { return NodeKindLiteral }
func (l *Literal) Children() []Node { return nil }

// GenericNode represents any node kind the analysis has no dedicated representation
// for (function definitions, modifiers, pragma directives, ...). It retains the node's
// id, its original kind tag, and its child list so tree walks still reach every node id.
type GenericNode struct {
	Id       int64  `json:"id"`
	NodeType string `json:"nodeType"`
	Nodes    []Node `json:"-"`
}

func (g *GenericNode) ID() int64        { return g.Id }
func (g *GenericNode) Kind() NodeKind   { return NodeKind(g.NodeType) }
func (g *GenericNode) Children() []Node { return g.Nodes }

// UnmarshalJSON unmarshals from JSON, deferring child node decoding to UnmarshalNode.
func (g *GenericNode) UnmarshalJSON(data []byte) error {
	type alias GenericNode
	aux := &struct {
		Nodes []json.RawMessage `json:"nodes"`
		*alias
	}{alias: (*alias)(g)}
	if err := json.Unmarshal(data, aux); err != nil {
		return err
	}
	nodes, err := unmarshalNodeList(aux.Nodes)
	if err != nil {
		return err
	}
	g.Nodes = nodes
	return nil
}

// UnmarshalNode unmarshals a single AST node from JSON, dispatching on its nodeType tag.
// Node kinds outside the closed set decode to GenericNode so that the tree remains fully
// walkable.
func UnmarshalNode(data []byte) (Node, error) {
	// Unmarshal the node data to retrieve the node type
	var tag struct {
		NodeType string `json:"nodeType"`
	}
	if err := json.Unmarshal(data, &tag); err != nil {
		return nil, err
	}

	// Unmarshal the contents of the node based on the node type
	var node Node
	switch NodeKind(tag.NodeType) {
	case NodeKindSourceUnit:
		node = &SourceUnit{}
	case NodeKindImportDirective:
		node = &ImportDirective{}
	case NodeKindContractDefinition:
		node = &ContractDefinition{}
	case NodeKindVariableDeclaration:
		node = &VariableDeclaration{}
	case NodeKindElementaryTypeName:
		node = &ElementaryTypeName{}
	case NodeKindArrayTypeName:
		node = &ArrayTypeName{}
	case NodeKindMapping:
		node = &Mapping{}
	case NodeKindUserDefinedTypeName:
		node = &UserDefinedTypeName{}
	case NodeKindStructDefinition:
		node = &StructDefinition{}
	case NodeKindEnumDefinition:
		node = &EnumDefinition{}
	case NodeKindEnumValue:
		node = &EnumValue{}
	case NodeKindLiteral:
		node = &Literal{}
	default:
		node = &GenericNode{}
	}
	if err := json.Unmarshal(data, node); err != nil {
		return nil, err
	}
	return node, nil
}

// unmarshalNodeList unmarshals a list of raw AST nodes via UnmarshalNode.
func unmarshalNodeList(raw []json.RawMessage) ([]Node, error) {
	if raw == nil {
		return nil, nil
	}
	nodes := make([]Node, 0, len(raw))
	for _, nodeData := range raw {
		node, err := UnmarshalNode(nodeData)
		if err != nil {
			return nil, err
		}
		nodes = append(nodes, node)
	}
	return nodes, nil
}
