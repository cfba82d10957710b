package artifacts

import (
	"os"
	"path"
	"testing"

	"github.com/stretchr/testify/assert"
)

// tokenArtifact is a minimal truffle-shaped build artifact for a contract named Token.
const tokenArtifact = `{
	"contractName": "Token",
	"sourcePath": "contracts/Token.sol",
	"compiler": {"name": "solc", "version": "0.8.19+commit.7dd6d404.Emscripten.clang"},
	"ast": {
		"id": 1,
		"nodeType": "SourceUnit",
		"absolutePath": "contracts/Token.sol",
		"nodes": [
			{"id": 2, "nodeType": "ContractDefinition", "name": "Token", "linearizedBaseContracts": [2], "nodes": []}
		]
	}
}`

// ownableArtifact shares Token's source path, as one source file may declare several contracts.
const ownableArtifact = `{
	"contractName": "Ownable",
	"sourcePath": "contracts/Token.sol",
	"compiler": {"name": "solc", "version": "0.8.19+commit.7dd6d404.Emscripten.clang"},
	"ast": {
		"id": 10,
		"nodeType": "SourceUnit",
		"absolutePath": "contracts/Token.sol",
		"nodes": [
			{"id": 11, "nodeType": "ContractDefinition", "name": "Ownable", "linearizedBaseContracts": [11], "nodes": []}
		]
	}
}`

func TestParseArtifact(t *testing.T) {
	artifact, err := ParseArtifact([]byte(tokenArtifact))
	assert.Nil(t, err)
	assert.EqualValues(t, "Token", artifact.ContractName)
	assert.EqualValues(t, "contracts/Token.sol", artifact.SourcePath)
	assert.EqualValues(t, "0.8.19", artifact.CompilerVersion.String())
	assert.EqualValues(t, 1, len(artifact.AST.Nodes))
}

func TestParseArtifactRejectsOldCompiler(t *testing.T) {
	data := `{
		"contractName": "Legacy",
		"sourcePath": "contracts/Legacy.sol",
		"compiler": {"name": "solc", "version": "0.4.24+commit.e67f0147.Emscripten.clang"},
		"ast": {"id": 1, "nodeType": "SourceUnit", "nodes": []}
	}`
	artifact, err := ParseArtifact([]byte(data))
	assert.Nil(t, artifact)
	assert.NotNil(t, err)
}

func TestParseArtifactRequiresAst(t *testing.T) {
	artifact, err := ParseArtifact([]byte(`{"contractName": "Empty"}`))
	assert.Nil(t, artifact)
	assert.NotNil(t, err)
}

func TestDirRepository(t *testing.T) {
	// Write two artifacts sharing a source path, plus a non-artifact JSON file that
	// must be skipped, into a temporary build directory.
	directory := t.TempDir()
	assert.Nil(t, os.WriteFile(path.Join(directory, "Token.json"), []byte(tokenArtifact), 0644))
	assert.Nil(t, os.WriteFile(path.Join(directory, "Ownable.json"), []byte(ownableArtifact), 0644))
	assert.Nil(t, os.WriteFile(path.Join(directory, "build-info.json"), []byte(`{"format": "hh-sol-build-info-1"}`), 0644))

	repository, err := NewDirRepository(directory)
	assert.Nil(t, err)

	// Both contracts resolve through their shared source path.
	fromSource, err := repository.GetArtifactsFromSourcePath("contracts/Token.sol")
	assert.Nil(t, err)
	assert.EqualValues(t, 2, len(fromSource))

	// Unknown source paths resolve to no artifacts rather than an error.
	missing, err := repository.GetArtifactsFromSourcePath("contracts/Missing.sol")
	assert.Nil(t, err)
	assert.EqualValues(t, 0, len(missing))

	// Contract name lookups.
	token, err := repository.GetArtifact("Token")
	assert.Nil(t, err)
	assert.EqualValues(t, "Token", token.ContractName)
	_, err = repository.GetArtifact("Missing")
	assert.NotNil(t, err)
}
