package semver

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	versionComponentSeparatorConstant     = "."
	versionComponentCountConstant         = 3
	invalidVersionMessageTemplateConstant = "invalid semantic version %q"
)

// SemanticVersion is a MAJOR.MINOR.PATCH triple ordered lexicographically by
// its components.
type SemanticVersion struct {
	Major uint64
	Minor uint64
	Patch uint64
}

// InvalidVersionError reports a string that does not parse as MAJOR.MINOR.PATCH.
type InvalidVersionError struct {
	Value string
}

// Error describes the malformed version string.
func (invalidVersionError *InvalidVersionError) Error() string {
	return fmt.Sprintf(invalidVersionMessageTemplateConstant, invalidVersionError.Value)
}

// Parse converts a MAJOR.MINOR.PATCH string into a SemanticVersion.
func Parse(versionText string) (SemanticVersion, error) {
	versionComponents := strings.Split(strings.TrimSpace(versionText), versionComponentSeparatorConstant)
	if len(versionComponents) != versionComponentCountConstant {
		return SemanticVersion{}, &InvalidVersionError{Value: versionText}
	}

	parsedComponents := make([]uint64, 0, versionComponentCountConstant)
	for _, versionComponent := range versionComponents {
		parsedComponent, parseError := strconv.ParseUint(versionComponent, 10, 64)
		if parseError != nil {
			return SemanticVersion{}, &InvalidVersionError{Value: versionText}
		}
		parsedComponents = append(parsedComponents, parsedComponent)
	}

	return SemanticVersion{
		Major: parsedComponents[0],
		Minor: parsedComponents[1],
		Patch: parsedComponents[2],
	}, nil
}

// String renders the version as MAJOR.MINOR.PATCH.
func (semanticVersion SemanticVersion) String() string {
	return fmt.Sprintf("%d.%d.%d", semanticVersion.Major, semanticVersion.Minor, semanticVersion.Patch)
}

// Compare orders two versions lexicographically by (major, minor, patch) and
// returns -1, 0, or 1.
func (semanticVersion SemanticVersion) Compare(otherVersion SemanticVersion) int {
	if comparisonResult := compareComponents(semanticVersion.Major, otherVersion.Major); comparisonResult != 0 {
		return comparisonResult
	}
	if comparisonResult := compareComponents(semanticVersion.Minor, otherVersion.Minor); comparisonResult != 0 {
		return comparisonResult
	}
	return compareComponents(semanticVersion.Patch, otherVersion.Patch)
}

// Bump returns the version advanced by the named part. Lower-order components
// reset to zero, so the result is always strictly greater than the receiver.
func (semanticVersion SemanticVersion) Bump(bumpPart BumpPart) SemanticVersion {
	switch bumpPart {
	case BumpPartMajor:
		return SemanticVersion{Major: semanticVersion.Major + 1}
	case BumpPartMinor:
		return SemanticVersion{Major: semanticVersion.Major, Minor: semanticVersion.Minor + 1}
	default:
		return SemanticVersion{Major: semanticVersion.Major, Minor: semanticVersion.Minor, Patch: semanticVersion.Patch + 1}
	}
}

func compareComponents(firstComponent uint64, secondComponent uint64) int {
	switch {
	case firstComponent < secondComponent:
		return -1
	case firstComponent > secondComponent:
		return 1
	default:
		return 0
	}
}
