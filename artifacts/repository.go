package artifacts

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/zachzundel/zos/logging"
)

// DefaultBuildDirectory describes the default build artifact directory to read when
// the caller does not supply one.
const DefaultBuildDirectory = "build/contracts"

// Repository describes a provider of parsed build artifacts, keyed by the source file
// path that declares them. A single source path may map to multiple artifacts, since
// one source file can declare several contracts.
type Repository interface {
	// GetArtifactsFromSourcePath returns every artifact declared by the source file at
	// the given resolved path, or an empty slice if the path is unknown. Returns an
	// error if artifact retrieval fails.
	GetArtifactsFromSourcePath(sourcePath string) ([]*Artifact, error)
}

// DirRepository is a Repository backed by a directory of per-contract JSON build
// artifacts, as produced by truffle/hardhat-style build pipelines. The directory is
// read and indexed once at construction; lookups afterwards are in-memory.
type DirRepository struct {
	// directory is the build directory this repository was constructed over.
	directory string

	// bySourcePath maps a resolved source file path to the artifacts it declares.
	bySourcePath map[string][]*Artifact

	// byContractName maps a contract name to its artifact.
	byContractName map[string]*Artifact

	// logger describes the DirRepository's log object that can be used to log messages
	logger *logging.Logger
}

// NewDirRepository reads every JSON build artifact under the provided directory and
// returns a DirRepository indexing them, or an error if one occurs. Files that are not
// parseable build artifacts are skipped with a debug log rather than failing the whole
// directory, as build directories routinely contain auxiliary JSON (debug files,
// build-info) alongside artifacts.
func NewDirRepository(directory string) (*DirRepository, error) {
	repository := &DirRepository{
		directory:      directory,
		bySourcePath:   make(map[string][]*Artifact),
		byContractName: make(map[string]*Artifact),
		logger:         logging.GlobalLogger.NewSubLogger("module", "artifacts"),
	}

	// Walk the build directory and parse every JSON file we encounter.
	err := filepath.WalkDir(directory, func(path string, entry os.DirEntry, err error) error {
		if err != nil {
			return errors.WithStack(err)
		}
		if entry.IsDir() || !strings.EqualFold(filepath.Ext(path), ".json") {
			return nil
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return errors.WithStack(err)
		}
		artifact, err := ParseArtifact(data)
		if err != nil {
			repository.logger.Debug("Skipping non-artifact JSON file: ", path, err)
			return nil
		}
		repository.add(artifact)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return repository, nil
}

// add indexes a parsed artifact by source path and contract name.
func (r *DirRepository) add(artifact *Artifact) {
	r.bySourcePath[artifact.SourcePath] = append(r.bySourcePath[artifact.SourcePath], artifact)
	r.byContractName[artifact.ContractName] = artifact
}

// GetArtifactsFromSourcePath implements the Repository interface, returning every
// indexed artifact declared by the source file at the given path.
func (r *DirRepository) GetArtifactsFromSourcePath(sourcePath string) ([]*Artifact, error) {
	return r.bySourcePath[sourcePath], nil
}

// GetArtifact returns the artifact for the named contract, or an error if no artifact
// for that contract exists in the build directory.
func (r *DirRepository) GetArtifact(contractName string) (*Artifact, error) {
	artifact, ok := r.byContractName[contractName]
	if !ok {
		return nil, fmt.Errorf("no build artifact found for contract %v in %v", contractName, r.directory)
	}
	return artifact, nil
}
