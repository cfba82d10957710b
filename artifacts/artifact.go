package artifacts

import (
	"encoding/json"
	"fmt"
	"regexp"

	"github.com/Masterminds/semver"
	"github.com/zachzundel/zos/ast"
)

// MinimumCompilerVersion is the oldest solc release that emits the AST shape this
// analysis assumes (typed node ids, linearizedBaseContracts, typeDescriptions).
var MinimumCompilerVersion = semver.MustParse("0.5.0")

// versionPattern extracts the semantic version out of a solc long version string such
// as "0.8.19+commit.7dd6d404.Emscripten.clang".
var versionPattern = regexp.MustCompile(`\d+\.\d+\.\d+`)

// Artifact represents a single compiled contract unit read from a build artifact,
// carrying the parsed AST of the source file that declares it.
type Artifact struct {
	// ContractName is the name of the contract this artifact was produced for.
	ContractName string

	// SourcePath is the resolved path of the source file declaring the contract.
	SourcePath string

	// CompilerVersion is the version of the compiler that produced the artifact, if
	// the artifact recorded one.
	CompilerVersion *semver.Version

	// AST is the abstract syntax tree of the declaring source file.
	AST *ast.SourceUnit
}

// ParseArtifact parses a build artifact JSON document (truffle/hardhat artifact shape:
// contractName, sourcePath, ast, compiler.version) into an Artifact, or returns an
// error if one occurs. Artifacts produced by a compiler older than
// MinimumCompilerVersion are rejected, as their AST shape predates the fields this
// analysis depends on.
func ParseArtifact(data []byte) (*Artifact, error) {
	var raw struct {
		ContractName string          `json:"contractName"`
		SourcePath   string          `json:"sourcePath"`
		Ast          json.RawMessage `json:"ast"`
		Compiler     struct {
			Version string `json:"version"`
		} `json:"compiler"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	if raw.ContractName == "" || len(raw.Ast) == 0 {
		return nil, fmt.Errorf("artifact is missing a contract name or an AST")
	}

	// Decode the AST and verify its root is a source unit.
	node, err := ast.UnmarshalNode(raw.Ast)
	if err != nil {
		return nil, fmt.Errorf("could not decode AST for contract %v: %v", raw.ContractName, err)
	}
	sourceUnit, ok := node.(*ast.SourceUnit)
	if !ok {
		return nil, fmt.Errorf("artifact for contract %v does not have a source unit AST root (got %v)", raw.ContractName, node.Kind())
	}

	artifact := &Artifact{
		ContractName: raw.ContractName,
		SourcePath:   raw.SourcePath,
		AST:          sourceUnit,
	}
	if artifact.SourcePath == "" {
		artifact.SourcePath = sourceUnit.AbsolutePath
	}

	// Parse the compiler version out of the artifact's long version string, if any, and
	// enforce our minimum supported release.
	if raw.Compiler.Version != "" {
		versionStr := versionPattern.FindString(raw.Compiler.Version)
		if versionStr == "" {
			return nil, fmt.Errorf("could not parse compiler version %q for contract %v", raw.Compiler.Version, raw.ContractName)
		}
		version, err := semver.NewVersion(versionStr)
		if err != nil {
			return nil, err
		}
		if version.LessThan(MinimumCompilerVersion) {
			return nil, fmt.Errorf("contract %v was compiled with solc %v, below the minimum supported version %v", raw.ContractName, version, MinimumCompilerVersion)
		}
		artifact.CompilerVersion = version
	}
	return artifact, nil
}
