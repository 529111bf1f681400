package branches

import (
	"fmt"
	"strings"
)

const (
	dirtyTreeMessageTemplateConstant       = "working tree at %s has uncommitted changes"
	wrongBaseBranchMessageTemplateConstant = "current branch is %q; %s"
	staleBranchMessageTemplateConstant     = "branch %q is behind %q; rebase before finalizing"
	rebaseConflictMessageTemplateConstant  = "rebase onto %q stopped on conflicts in: %s"
	mergeConflictMessageTemplateConstant   = "merge of %q stopped on conflicts in: %s"
	conflictPathSeparatorConstant          = ", "
)

// DirtyTreeError reports uncommitted changes blocking a workflow transition.
type DirtyTreeError struct {
	RepositoryPath string
}

// Error describes the dirty working tree.
func (dirtyTreeError *DirtyTreeError) Error() string {
	return fmt.Sprintf(dirtyTreeMessageTemplateConstant, dirtyTreeError.RepositoryPath)
}

// WrongBaseBranchError reports a command issued from an unsupported branch.
type WrongBaseBranchError struct {
	CurrentBranch string
	Requirement   string
}

// Error describes the branch requirement that was not met.
func (wrongBaseBranchError *WrongBaseBranchError) Error() string {
	return fmt.Sprintf(wrongBaseBranchMessageTemplateConstant, wrongBaseBranchError.CurrentBranch, wrongBaseBranchError.Requirement)
}

// StaleBranchError reports a feature branch whose base no longer matches the
// release candidate tip.
type StaleBranchError struct {
	BranchName      string
	CandidateBranch string
}

// Error describes the staleness.
func (staleBranchError *StaleBranchError) Error() string {
	return fmt.Sprintf(staleBranchMessageTemplateConstant, staleBranchError.BranchName, staleBranchError.CandidateBranch)
}

// RebaseConflictError reports a rebase halted on conflicts. Git's conflict
// markers are left in place for manual resolution.
type RebaseConflictError struct {
	OntoBranch       string
	ConflictingPaths []string
}

// Error names the conflicting paths.
func (rebaseConflictError *RebaseConflictError) Error() string {
	return fmt.Sprintf(
		rebaseConflictMessageTemplateConstant,
		rebaseConflictError.OntoBranch,
		strings.Join(rebaseConflictError.ConflictingPaths, conflictPathSeparatorConstant),
	)
}

// MergeConflictError reports a merge halted on conflicts. Git's conflict
// markers are left in place for manual resolution.
type MergeConflictError struct {
	SourceBranch     string
	ConflictingPaths []string
}

// Error names the conflicting paths.
func (mergeConflictError *MergeConflictError) Error() string {
	return fmt.Sprintf(
		mergeConflictMessageTemplateConstant,
		mergeConflictError.SourceBranch,
		strings.Join(mergeConflictError.ConflictingPaths, conflictPathSeparatorConstant),
	)
}
