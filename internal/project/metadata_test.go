package project_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/releasekit/internal/project"
	"github.com/temirov/releasekit/internal/semver"
)

const (
	testMetadataFileNameConstant = "project.yaml"
	testMetadataContentConstant  = "name: demo-service\nversion: 1.2.3\n"
)

func TestReadVersionParsesMetadataFile(testInstance *testing.T) {
	metadataPath := filepath.Join(testInstance.TempDir(), testMetadataFileNameConstant)
	require.NoError(testInstance, os.WriteFile(metadataPath, []byte(testMetadataContentConstant), 0o644))

	metadataStore := project.NewMetadataStore(metadataPath)
	currentVersion, readError := metadataStore.ReadVersion()

	require.NoError(testInstance, readError)
	require.Equal(testInstance, semver.SemanticVersion{Major: 1, Minor: 2, Patch: 3}, currentVersion)
}

func TestReadVersionRejectsMissingVersionField(testInstance *testing.T) {
	metadataPath := filepath.Join(testInstance.TempDir(), testMetadataFileNameConstant)
	require.NoError(testInstance, os.WriteFile(metadataPath, []byte("name: demo-service\n"), 0o644))

	metadataStore := project.NewMetadataStore(metadataPath)
	_, readError := metadataStore.ReadVersion()

	missingVersionError := &project.MissingVersionError{}
	require.ErrorAs(testInstance, readError, &missingVersionError)
	require.Equal(testInstance, metadataPath, missingVersionError.Path)
}

func TestWriteVersionPreservesRemainingFields(testInstance *testing.T) {
	metadataPath := filepath.Join(testInstance.TempDir(), testMetadataFileNameConstant)
	require.NoError(testInstance, os.WriteFile(metadataPath, []byte(testMetadataContentConstant), 0o644))

	metadataStore := project.NewMetadataStore(metadataPath)
	require.NoError(testInstance, metadataStore.WriteVersion(semver.SemanticVersion{Major: 1, Minor: 3}))

	rewrittenContent, readError := os.ReadFile(metadataPath)
	require.NoError(testInstance, readError)
	require.Equal(testInstance, "name: demo-service\nversion: 1.3.0\n", string(rewrittenContent))

	currentVersion, versionError := metadataStore.ReadVersion()
	require.NoError(testInstance, versionError)
	require.Equal(testInstance, "1.3.0", currentVersion.String())
}

func TestWriteVersionCreatesMissingFile(testInstance *testing.T) {
	metadataPath := filepath.Join(testInstance.TempDir(), testMetadataFileNameConstant)

	metadataStore := project.NewMetadataStore(metadataPath)
	require.NoError(testInstance, metadataStore.WriteVersion(semver.SemanticVersion{Major: 0, Minor: 1}))

	currentVersion, readError := metadataStore.ReadVersion()
	require.NoError(testInstance, readError)
	require.Equal(testInstance, "0.1.0", currentVersion.String())
}
