package semver

import (
	"errors"
	"fmt"

	"github.com/temirov/releasekit/internal/conventional"
)

const (
	nothingToReleaseMessageConstant           = "no commit requires a release"
	unknownBumpPartMessageTemplateConstant    = "unknown bump part %q"
	overrideNotGreaterMessageTemplateConstant = "override %s does not advance current version %s"
)

// BumpPart names the version component an explicit override advances.
type BumpPart string

// Supported override parts.
const (
	BumpPartMajor BumpPart = BumpPart("major")
	BumpPartMinor BumpPart = BumpPart("minor")
	BumpPartPatch BumpPart = BumpPart("patch")
)

// ErrNothingToRelease indicates that no inspected commit warrants a version
// change and no override was supplied.
var ErrNothingToRelease = errors.New(nothingToReleaseMessageConstant)

// UnknownBumpPartError reports an override value outside major, minor, patch.
type UnknownBumpPartError struct {
	Part BumpPart
}

// Error describes the unsupported bump part.
func (unknownBumpPartError *UnknownBumpPartError) Error() string {
	return fmt.Sprintf(unknownBumpPartMessageTemplateConstant, string(unknownBumpPartError.Part))
}

// NonMonotonicOverrideError reports an override whose result is not strictly
// greater than the current version.
type NonMonotonicOverrideError struct {
	Current  SemanticVersion
	Resolved SemanticVersion
}

// Error describes the rejected override.
func (nonMonotonicOverrideError *NonMonotonicOverrideError) Error() string {
	return fmt.Sprintf(
		overrideNotGreaterMessageTemplateConstant,
		nonMonotonicOverrideError.Resolved.String(),
		nonMonotonicOverrideError.Current.String(),
	)
}

// ParseBumpPart validates a textual override value.
func ParseBumpPart(bumpPartText string) (BumpPart, error) {
	candidateBumpPart := BumpPart(bumpPartText)
	switch candidateBumpPart {
	case BumpPartMajor, BumpPartMinor, BumpPartPatch:
		return candidateBumpPart, nil
	default:
		return BumpPart(""), &UnknownBumpPartError{Part: candidateBumpPart}
	}
}

// Resolver computes the next version implied by a set of parsed commits.
type Resolver struct{}

// NewResolver constructs a version resolver.
func NewResolver() Resolver {
	return Resolver{}
}

// Resolve returns the next version for the supplied commits. An explicit
// override takes precedence over the inferred rules and must produce a version
// strictly greater than the current one. Without an override, a breaking
// commit bumps major, a feature commit bumps minor, a fix or performance
// commit bumps patch, and anything else yields ErrNothingToRelease.
func (resolver Resolver) Resolve(currentVersion SemanticVersion, commitRecords []conventional.CommitRecord, overridePart *BumpPart) (SemanticVersion, error) {
	if overridePart != nil {
		if _, parseError := ParseBumpPart(string(*overridePart)); parseError != nil {
			return SemanticVersion{}, parseError
		}
		resolvedVersion := currentVersion.Bump(*overridePart)
		if resolvedVersion.Compare(currentVersion) <= 0 {
			return SemanticVersion{}, &NonMonotonicOverrideError{Current: currentVersion, Resolved: resolvedVersion}
		}
		return resolvedVersion, nil
	}

	inferredPart, inferenceSucceeded := inferBumpPart(commitRecords)
	if !inferenceSucceeded {
		return SemanticVersion{}, ErrNothingToRelease
	}
	return currentVersion.Bump(inferredPart), nil
}

func inferBumpPart(commitRecords []conventional.CommitRecord) (BumpPart, bool) {
	featureObserved := false
	patchObserved := false
	for _, commitRecord := range commitRecords {
		if commitRecord.Breaking {
			return BumpPartMajor, true
		}
		switch commitRecord.Type {
		case conventional.CommitTypeFeature:
			featureObserved = true
		case conventional.CommitTypeFix, conventional.CommitTypePerformance:
			patchObserved = true
		}
	}
	if featureObserved {
		return BumpPartMinor, true
	}
	if patchObserved {
		return BumpPartPatch, true
	}
	return BumpPart(""), false
}
