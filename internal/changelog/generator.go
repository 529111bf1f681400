package changelog

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/temirov/releasekit/internal/conventional"
	"github.com/temirov/releasekit/internal/semver"
)

const (
	documentTitleConstant                   = "# Changelog\n\n"
	sectionHeaderTemplateConstant           = "## [%s] - %s\n\n"
	sectionHeaderDateLayoutConstant         = "2006-01-02"
	sectionHeaderPatternConstant            = `^## \[(?P<version>\d+\.\d+\.\d+)\] - `
	bucketHeaderTemplateConstant            = "### %s"
	entryTemplateConstant                   = "- %s (%s)"
	emptySectionBodyConstant                = "- No user-facing changes\n\n"
	duplicateVersionMessageTemplateConstant = "changelog already begins with version %s"
)

var sectionHeaderExpression = regexp.MustCompile(sectionHeaderPatternConstant)

// Section is one dated release block awaiting rendering.
type Section struct {
	Version semver.SemanticVersion
	Date    time.Time
	Commits []conventional.CommitRecord
}

// DuplicateVersionError reports an attempt to render a section whose version
// already heads the existing document.
type DuplicateVersionError struct {
	Version semver.SemanticVersion
}

// Error describes the rejected duplicate section.
func (duplicateVersionError *DuplicateVersionError) Error() string {
	return fmt.Sprintf(duplicateVersionMessageTemplateConstant, duplicateVersionError.Version.String())
}

// Generator renders release sections into a most-recent-first changelog
// document.
type Generator struct{}

// NewGenerator constructs a changelog generator.
func NewGenerator() Generator {
	return Generator{}
}

// Render prepends the supplied section to the existing document. Commits are
// grouped into buckets following conventional.OrderedCommitTypes; empty
// buckets are omitted and within a bucket the incoming commit order is kept.
// Rendering is rejected when the document's topmost section already carries
// the section's version.
func (generator Generator) Render(existingDocument string, section Section) (string, error) {
	topmostVersion, topmostVersionFound := topmostDocumentVersion(existingDocument)
	if topmostVersionFound && topmostVersion == section.Version.String() {
		return "", &DuplicateVersionError{Version: section.Version}
	}

	renderedSection := renderSection(section)
	if strings.TrimSpace(existingDocument) == "" {
		return renderedSection + documentTitleConstant, nil
	}
	return renderedSection + existingDocument, nil
}

// LatestSection returns the version and body of the document's topmost
// section. The second return is false when no section header is present.
func (generator Generator) LatestSection(documentText string) (LatestSectionResult, bool) {
	documentLines := strings.Split(documentText, "\n")
	sectionStartIndex := -1
	sectionEndIndex := len(documentLines)
	latestVersionText := ""
	for lineIndex, documentLine := range documentLines {
		headerMatch := sectionHeaderExpression.FindStringSubmatch(strings.TrimSpace(documentLine))
		if headerMatch == nil {
			continue
		}
		if sectionStartIndex < 0 {
			sectionStartIndex = lineIndex
			latestVersionText = headerMatch[1]
			continue
		}
		sectionEndIndex = lineIndex
		break
	}
	if sectionStartIndex < 0 {
		return LatestSectionResult{}, false
	}

	bodyLines := documentLines[sectionStartIndex+1 : sectionEndIndex]
	return LatestSectionResult{
		VersionText: latestVersionText,
		Body:        strings.TrimSpace(strings.Join(bodyLines, "\n")),
	}, true
}

// LatestSectionResult carries the topmost section of a changelog document.
type LatestSectionResult struct {
	VersionText string
	Body        string
}

func renderSection(section Section) string {
	sectionBuilder := strings.Builder{}
	sectionBuilder.WriteString(fmt.Sprintf(
		sectionHeaderTemplateConstant,
		section.Version.String(),
		section.Date.Format(sectionHeaderDateLayoutConstant),
	))
	if len(section.Commits) == 0 {
		sectionBuilder.WriteString(emptySectionBodyConstant)
		return sectionBuilder.String()
	}

	for _, commitType := range conventional.OrderedCommitTypes {
		bucketLines := make([]string, 0, len(section.Commits))
		for _, commitRecord := range section.Commits {
			if commitRecord.Type != commitType {
				continue
			}
			bucketLines = append(bucketLines, fmt.Sprintf(entryTemplateConstant, commitRecord.Subject, commitRecord.Hash))
		}
		if len(bucketLines) == 0 {
			continue
		}
		sectionBuilder.WriteString(fmt.Sprintf(bucketHeaderTemplateConstant, string(commitType)))
		sectionBuilder.WriteString("\n")
		sectionBuilder.WriteString(strings.Join(bucketLines, "\n"))
		sectionBuilder.WriteString("\n\n")
	}
	return sectionBuilder.String()
}

func topmostDocumentVersion(documentText string) (string, bool) {
	for _, documentLine := range strings.Split(documentText, "\n") {
		headerMatch := sectionHeaderExpression.FindStringSubmatch(strings.TrimSpace(documentLine))
		if headerMatch != nil {
			return headerMatch[1], true
		}
	}
	return "", false
}
