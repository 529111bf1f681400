package project

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/temirov/releasekit/internal/semver"
)

const (
	metadataFilePermissionsConstant        = 0o644
	metadataReadFailureTemplateConstant    = "unable to read project metadata %s: %w"
	metadataDecodeFailureTemplateConstant  = "unable to decode project metadata %s: %w"
	metadataEncodeFailureTemplateConstant  = "unable to encode project metadata: %w"
	metadataWriteFailureTemplateConstant   = "unable to write project metadata %s: %w"
	metadataMissingVersionTemplateConstant = "project metadata %s carries no version"
)

// Metadata is the persisted project descriptor holding the released version.
type Metadata struct {
	Name    string `yaml:"name,omitempty"`
	Version string `yaml:"version"`
}

// MissingVersionError reports a metadata document without a version field.
type MissingVersionError struct {
	Path string
}

// Error describes the incomplete metadata document.
func (missingVersionError *MissingVersionError) Error() string {
	return fmt.Sprintf(metadataMissingVersionTemplateConstant, missingVersionError.Path)
}

// MetadataStore reads and writes the project metadata file.
type MetadataStore struct {
	path string
}

// NewMetadataStore constructs a store bound to the supplied file path.
func NewMetadataStore(metadataPath string) *MetadataStore {
	return &MetadataStore{path: metadataPath}
}

// Path returns the metadata file location.
func (metadataStore *MetadataStore) Path() string {
	return metadataStore.path
}

// ReadVersion loads the current semantic version from the metadata file.
func (metadataStore *MetadataStore) ReadVersion() (semver.SemanticVersion, error) {
	metadataContent, readError := os.ReadFile(metadataStore.path)
	if readError != nil {
		return semver.SemanticVersion{}, fmt.Errorf(metadataReadFailureTemplateConstant, metadataStore.path, readError)
	}

	parsedMetadata := Metadata{}
	if decodeError := yaml.Unmarshal(metadataContent, &parsedMetadata); decodeError != nil {
		return semver.SemanticVersion{}, fmt.Errorf(metadataDecodeFailureTemplateConstant, metadataStore.path, decodeError)
	}
	if parsedMetadata.Version == "" {
		return semver.SemanticVersion{}, &MissingVersionError{Path: metadataStore.path}
	}

	return semver.Parse(parsedMetadata.Version)
}

// WriteVersion persists the supplied version, keeping the remaining metadata
// fields intact.
func (metadataStore *MetadataStore) WriteVersion(newVersion semver.SemanticVersion) error {
	parsedMetadata := Metadata{}
	metadataContent, readError := os.ReadFile(metadataStore.path)
	if readError == nil {
		if decodeError := yaml.Unmarshal(metadataContent, &parsedMetadata); decodeError != nil {
			return fmt.Errorf(metadataDecodeFailureTemplateConstant, metadataStore.path, decodeError)
		}
	}

	parsedMetadata.Version = newVersion.String()
	encodedMetadata, encodeError := yaml.Marshal(parsedMetadata)
	if encodeError != nil {
		return fmt.Errorf(metadataEncodeFailureTemplateConstant, encodeError)
	}
	if writeError := os.WriteFile(metadataStore.path, encodedMetadata, metadataFilePermissionsConstant); writeError != nil {
		return fmt.Errorf(metadataWriteFailureTemplateConstant, metadataStore.path, writeError)
	}
	return nil
}
