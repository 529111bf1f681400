package branches

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
)

const (
	branchTagDelimiterConstant               = "/"
	branchTopicPatternConstant               = `^[A-Za-z0-9._\-][A-Za-z0-9._\-/]*$`
	missingDelimiterReasonTemplateConstant   = "name must take the form <tag>/<topic>"
	unknownTagReasonTemplateConstant         = "tag %q is not one of: %s"
	invalidTopicReasonConstant               = "topic contains invalid characters"
	invalidBranchNameMessageTemplateConstant = "invalid branch name %q: %s"
)

var branchTopicExpression = regexp.MustCompile(branchTopicPatternConstant)

var allowedBranchTags = map[string]struct{}{
	"feat":     {},
	"fix":      {},
	"docs":     {},
	"chore":    {},
	"refactor": {},
	"perf":     {},
	"test":     {},
	"build":    {},
	"ci":       {},
}

// BranchName is a validated feature branch name of the form tag/topic.
type BranchName struct {
	Tag   string
	Topic string
}

// String renders the branch name for git.
func (branchName BranchName) String() string {
	return branchName.Tag + branchTagDelimiterConstant + branchName.Topic
}

// InvalidBranchNameError reports a feature branch name outside the accepted
// form.
type InvalidBranchNameError struct {
	Name   string
	Reason string
}

// Error describes the rejected name.
func (invalidBranchNameError *InvalidBranchNameError) Error() string {
	return fmt.Sprintf(invalidBranchNameMessageTemplateConstant, invalidBranchNameError.Name, invalidBranchNameError.Reason)
}

// ParseBranchName validates a tag/topic feature branch name.
func ParseBranchName(candidateName string) (BranchName, error) {
	trimmedName := strings.TrimSpace(candidateName)
	branchTag, branchTopic, delimiterFound := strings.Cut(trimmedName, branchTagDelimiterConstant)
	if !delimiterFound {
		return BranchName{}, &InvalidBranchNameError{Name: trimmedName, Reason: missingDelimiterReasonTemplateConstant}
	}
	if _, tagAllowed := allowedBranchTags[branchTag]; !tagAllowed {
		return BranchName{}, &InvalidBranchNameError{
			Name:   trimmedName,
			Reason: fmt.Sprintf(unknownTagReasonTemplateConstant, branchTag, strings.Join(sortedBranchTags(), ", ")),
		}
	}
	if !branchTopicExpression.MatchString(branchTopic) {
		return BranchName{}, &InvalidBranchNameError{Name: trimmedName, Reason: invalidTopicReasonConstant}
	}
	return BranchName{Tag: branchTag, Topic: branchTopic}, nil
}

func sortedBranchTags() []string {
	tagNames := make([]string, 0, len(allowedBranchTags))
	for tagName := range allowedBranchTags {
		tagNames = append(tagNames, tagName)
	}
	sort.Strings(tagNames)
	return tagNames
}
