package storage

import (
	"fmt"

	"github.com/zachzundel/zos/ast"
)

// UnresolvableReferenceError indicates a user-defined type name referenced a
// declaration id that is absent from the node index, typically because of a missing
// import or an inconsistent artifact set.
type UnresolvableReferenceError struct {
	// TypeString is the rendered type string of the offending type reference.
	TypeString string
}

// Error returns the error message string, implementing the error interface.
func (e *UnresolvableReferenceError) Error() string {
	return fmt.Sprintf("could not resolve the referenced declaration for type %q", e.TypeString)
}

// UnknownNodeKindError indicates a type node's kind is outside the closed set the
// resolver understands, e.g. an unsupported or future language construct.
type UnknownNodeKindError struct {
	// NodeKind is the unrecognized node kind tag.
	NodeKind ast.NodeKind
}

// Error returns the error message string, implementing the error interface.
func (e *UnknownNodeKindError) Error() string {
	return fmt.Sprintf("unknown type node kind %q", e.NodeKind)
}

// ContractNotFoundError indicates the named contract has no matching definition node
// in its own AST, meaning the caller passed an inconsistent artifact/name pair.
type ContractNotFoundError struct {
	// ContractName is the contract name that could not be located.
	ContractName string
}

// Error returns the error message string, implementing the error interface.
func (e *ContractNotFoundError) Error() string {
	return fmt.Sprintf("contract %v has no definition node in its artifact's AST", e.ContractName)
}
