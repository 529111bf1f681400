package conventional

import (
	"regexp"
	"strings"
)

const (
	breakingChangeMarkerConstant = "BREAKING CHANGE:"
	breakingBangSuffixConstant   = "!"
	commitHeaderPatternConstant  = `^(?P<type>[a-zA-Z]+)(?:\((?P<scope>[^)]*)\))?(?P<bang>!)?:\s*(?P<subject>.+)$`
)

var commitHeaderExpression = regexp.MustCompile(commitHeaderPatternConstant)

var recognizedCommitTypes = map[string]CommitType{
	string(CommitTypeFeature):     CommitTypeFeature,
	string(CommitTypeFix):         CommitTypeFix,
	string(CommitTypeDocs):        CommitTypeDocs,
	string(CommitTypeRefactor):    CommitTypeRefactor,
	string(CommitTypePerformance): CommitTypePerformance,
	string(CommitTypeTest):        CommitTypeTest,
	string(CommitTypeBuild):       CommitTypeBuild,
	string(CommitTypeCI):          CommitTypeCI,
	string(CommitTypeChore):       CommitTypeChore,
	string(CommitTypeRevert):      CommitTypeRevert,
}

// RawCommit carries one commit as read from the repository log, newest first.
type RawCommit struct {
	Hash    string
	Message string
}

// Parser converts raw commit log entries into structured commit records.
type Parser struct{}

// NewParser constructs a commit parser.
func NewParser() Parser {
	return Parser{}
}

// ParseCommits converts the supplied raw commits into records, preserving order.
// Parsing never fails: malformed headers degrade to CommitTypeOther with the
// full header retained as the subject.
func (parser Parser) ParseCommits(rawCommits []RawCommit) []CommitRecord {
	records := make([]CommitRecord, 0, len(rawCommits))
	for _, rawCommit := range rawCommits {
		records = append(records, parser.ParseCommit(rawCommit))
	}
	return records
}

// ParseCommit converts a single raw commit into a structured record.
func (parser Parser) ParseCommit(rawCommit RawCommit) CommitRecord {
	headerLine, bodyText := splitHeaderAndBody(rawCommit.Message)

	record := CommitRecord{
		Hash:    strings.TrimSpace(rawCommit.Hash),
		Type:    CommitTypeOther,
		Subject: headerLine,
		Body:    bodyText,
	}

	headerMatch := commitHeaderExpression.FindStringSubmatch(headerLine)
	if headerMatch != nil {
		declaredType := strings.ToLower(headerMatch[1])
		if recognizedType, typeRecognized := recognizedCommitTypes[declaredType]; typeRecognized {
			record.Type = recognizedType
			record.Scope = strings.TrimSpace(headerMatch[2])
			record.Subject = strings.TrimSpace(headerMatch[4])
			if headerMatch[3] == breakingBangSuffixConstant {
				record.Breaking = true
			}
		}
	}

	if bodyContainsBreakingMarker(bodyText) {
		record.Breaking = true
	}

	return record
}

func splitHeaderAndBody(message string) (string, string) {
	normalizedMessage := strings.ReplaceAll(message, "\r\n", "\n")
	headerLine, bodyText, hasBody := strings.Cut(normalizedMessage, "\n")
	headerLine = strings.TrimSpace(headerLine)
	if !hasBody {
		return headerLine, ""
	}
	return headerLine, strings.TrimSpace(bodyText)
}

func bodyContainsBreakingMarker(bodyText string) bool {
	for _, bodyLine := range strings.Split(bodyText, "\n") {
		if strings.HasPrefix(strings.TrimSpace(bodyLine), breakingChangeMarkerConstant) {
			return true
		}
	}
	return false
}
