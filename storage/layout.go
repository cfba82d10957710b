// Package storage computes canonical, inheritance-aware storage layout descriptors for
// smart contracts from their compiler-produced ASTs. The resulting Layout pairs a
// catalogue of canonical type descriptors with the ordered list of storage entries, so
// that an upgrade-safety checker can compare layouts across contract versions.
package storage

import (
	"fmt"

	"github.com/zachzundel/zos/artifacts"
	"github.com/zachzundel/zos/ast"
	"golang.org/x/exp/slices"
)

// layoutRun holds the accumulating state of a single layout extraction: the set of
// visited import paths, the node index over every collected AST, the table of resolved
// types, and the storage entries gathered so far. A layoutRun is owned by exactly one
// ExtractLayout invocation and is discarded when it returns.
type layoutRun struct {
	// repository provides the ASTs of transitively imported source files.
	repository artifacts.Repository

	// imports is the set of source file paths already visited by import collection.
	// A path present here short-circuits further traversal, which is what makes a
	// cyclic import graph safe to walk.
	imports map[string]struct{}

	// nodes maps node ids to nodes across every collected AST. First-seen wins; an id
	// already present is never overwritten.
	nodes map[int64]ast.Node

	// types is the table of resolved types, keyed by canonical id. It doubles as the
	// struct resolution memo cache.
	types map[string]TypeInfo

	// storage is the ordered list of storage entries gathered so far.
	storage []StorageEntry
}

// ExtractLayout computes the storage layout descriptor for the contract the given
// artifact was produced for, resolving cross-file type references through the provided
// artifact repository. Returns an error if the contract definition cannot be located,
// if a type reference cannot be resolved, or if an unsupported type construct is
// encountered; any error means no layout could be safely computed and no partial
// result is returned.
func ExtractLayout(repository artifacts.Repository, artifact *artifacts.Artifact) (*Layout, error) {
	run := &layoutRun{
		repository: repository,
		imports:    make(map[string]struct{}),
		nodes:      make(map[int64]ast.Node),
		types:      make(map[string]TypeInfo),
		storage:    make([]StorageEntry, 0),
	}

	// Index the contract's own AST, then walk its transitive import closure so that
	// every cross-file reference is resolvable before type resolution begins.
	run.indexNode(artifact.AST)
	if err := run.collectImports(artifact.AST); err != nil {
		return nil, err
	}

	// Visit contracts base-most first so entry order matches slot assignment order.
	contracts, err := run.linearizedBaseContracts(artifact)
	if err != nil {
		return nil, err
	}
	for _, contract := range contracts {
		if err := run.visitContract(contract); err != nil {
			return nil, err
		}
	}

	layout := &Layout{
		Types:   run.types,
		Storage: run.storage,
	}
	if artifact.CompilerVersion != nil {
		layout.CompilerVersion = artifact.CompilerVersion.String()
	}
	return layout, nil
}

// collectImports scans the top-level nodes of a source unit for import directives and,
// for each source path not yet visited, indexes the ASTs of every artifact declared by
// that path and recurses into their imports. Already-visited paths are skipped, which
// both deduplicates shared imports and terminates cyclic import graphs.
func (r *layoutRun) collectImports(sourceUnit *ast.SourceUnit) error {
	for _, node := range sourceUnit.Nodes {
		importDirective, ok := node.(*ast.ImportDirective)
		if !ok {
			continue
		}
		if _, visited := r.imports[importDirective.AbsolutePath]; visited {
			continue
		}
		r.imports[importDirective.AbsolutePath] = struct{}{}

		imported, err := r.repository.GetArtifactsFromSourcePath(importDirective.AbsolutePath)
		if err != nil {
			return fmt.Errorf("could not fetch artifacts for imported source %v: %v", importDirective.AbsolutePath, err)
		}
		for _, importedArtifact := range imported {
			r.indexNode(importedArtifact.AST)
			if err := r.collectImports(importedArtifact.AST); err != nil {
				return err
			}
		}
	}
	return nil
}

// indexNode records a node and its entire subtree into the node index. A node id that
// is already present returns immediately, so re-indexing a shared or cyclically
// imported subtree is a no-op and recursion depth is bounded by actual tree depth.
func (r *layoutRun) indexNode(node ast.Node) {
	if _, indexed := r.nodes[node.ID()]; indexed {
		return
	}
	r.nodes[node.ID()] = node
	for _, child := range node.Children() {
		r.indexNode(child)
	}
}

// linearizedBaseContracts locates the artifact's contract definition by name among the
// top-level nodes of its own AST and returns its linearized base contracts in reversed
// order, most-base ancestor first. The compiler records the linearization most-derived
// first; storage slots are assigned in the opposite order.
func (r *layoutRun) linearizedBaseContracts(artifact *artifacts.Artifact) ([]*ast.ContractDefinition, error) {
	var definition *ast.ContractDefinition
	for _, node := range artifact.AST.Nodes {
		if contract, ok := node.(*ast.ContractDefinition); ok && contract.Name == artifact.ContractName {
			definition = contract
			break
		}
	}
	if definition == nil {
		return nil, &ContractNotFoundError{ContractName: artifact.ContractName}
	}

	contracts := make([]*ast.ContractDefinition, 0, len(definition.LinearizedBaseContracts))
	for _, baseId := range definition.LinearizedBaseContracts {
		base, ok := r.nodes[baseId].(*ast.ContractDefinition)
		if !ok {
			return nil, fmt.Errorf("base contract with id %v of contract %v is not present in the node index", baseId, artifact.ContractName)
		}
		contracts = append(contracts, base)
	}
	slices.Reverse(contracts)
	return contracts, nil
}

// visitContract appends a storage entry for each of the contract's non-constant state
// variables, in declaration order, resolving each variable's type and registering it
// into the type table.
func (r *layoutRun) visitContract(contract *ast.ContractDefinition) error {
	for _, node := range contract.Nodes {
		variable, ok := node.(*ast.VariableDeclaration)
		if !ok || !variable.StateVariable || variable.Constant {
			continue
		}
		typeInfo, err := r.resolveType(variable.TypeName)
		if err != nil {
			return err
		}
		r.storage = append(r.storage, StorageEntry{
			Contract: contract.Name,
			StorageInfo: StorageInfo{
				Label: variable.Name,
				AstId: variable.ID(),
				Type:  typeInfo.Id,
			},
		})
	}
	return nil
}
