package conventional

// CommitType classifies a conventional commit header.
type CommitType string

// Recognized conventional commit types. Headers naming any other type, and
// headers that do not parse at all, are classified as CommitTypeOther.
const (
	CommitTypeFeature     CommitType = CommitType("feat")
	CommitTypeFix         CommitType = CommitType("fix")
	CommitTypeDocs        CommitType = CommitType("docs")
	CommitTypeRefactor    CommitType = CommitType("refactor")
	CommitTypePerformance CommitType = CommitType("perf")
	CommitTypeTest        CommitType = CommitType("test")
	CommitTypeBuild       CommitType = CommitType("build")
	CommitTypeCI          CommitType = CommitType("ci")
	CommitTypeChore       CommitType = CommitType("chore")
	CommitTypeRevert      CommitType = CommitType("revert")
	CommitTypeOther       CommitType = CommitType("other")
)

// OrderedCommitTypes lists every commit type in the canonical grouping order
// used by changelog rendering.
var OrderedCommitTypes = []CommitType{
	CommitTypeFeature,
	CommitTypeFix,
	CommitTypeDocs,
	CommitTypeRefactor,
	CommitTypePerformance,
	CommitTypeTest,
	CommitTypeBuild,
	CommitTypeCI,
	CommitTypeChore,
	CommitTypeRevert,
	CommitTypeOther,
}

// CommitRecord is the immutable parsed form of one commit message.
type CommitRecord struct {
	Hash     string
	Type     CommitType
	Scope    string
	Subject  string
	Body     string
	Breaking bool
}
