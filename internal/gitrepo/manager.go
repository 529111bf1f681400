package gitrepo

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/temirov/releasekit/internal/execshell"
)

const (
	requiredValueMessageConstant           = "value required"
	executorNotConfiguredMessageConstant   = "git executor not configured"
	statusSubcommandConstant               = "status"
	statusPorcelainFlagConstant            = "--porcelain"
	revParseSubcommandConstant             = "rev-parse"
	revParseAbbreviatedFlagConstant        = "--abbrev-ref"
	headReferenceConstant                  = "HEAD"
	remoteSubcommandConstant               = "remote"
	remoteGetURLSubcommandConstant         = "get-url"
	fetchSubcommandConstant                = "fetch"
	fetchAllFlagConstant                   = "--all"
	checkoutSubcommandConstant             = "checkout"
	checkoutResetBranchFlagConstant        = "-B"
	rebaseSubcommandConstant               = "rebase"
	mergeSubcommandConstant                = "merge"
	mergeNoFastForwardFlagConstant         = "--no-ff"
	mergeBaseSubcommandConstant            = "merge-base"
	diffSubcommandConstant                 = "diff"
	diffNameOnlyFlagConstant               = "--name-only"
	diffUnmergedFilterFlagConstant         = "--diff-filter=U"
	pushSubcommandConstant                 = "push"
	pushSetUpstreamFlagConstant            = "-u"
	addSubcommandConstant                  = "add"
	commitSubcommandConstant               = "commit"
	commitSkipHooksFlagConstant            = "--no-verify"
	messageFlagConstant                    = "-m"
	tagSubcommandConstant                  = "tag"
	tagAnnotateFlagConstant                = "-a"
	tagListFlagConstant                    = "-l"
	revListSubcommandConstant              = "rev-list"
	revListCountFlagConstant               = "--count"
	logSubcommandConstant                  = "log"
	logNoMergesFlagConstant                = "--no-merges"
	logPrettyFormatFlagConstant            = "--pretty=format:%h%x1f%B%x1e"
	commitRangeTemplateConstant            = "%s..%s"
	commitFieldSeparatorConstant           = "\x1f"
	commitRecordSeparatorConstant          = "\x1e"
	aheadCountParseFailureTemplateConstant = "unable to parse commit count %q: %w"
)

// ErrExecutorNotConfigured indicates the repository manager was constructed
// without a git executor.
var ErrExecutorNotConfigured = errors.New(executorNotConfiguredMessageConstant)

// GitExecutor exposes the subset of shell execution used by the repository
// manager.
type GitExecutor interface {
	ExecuteGit(executionContext context.Context, details execshell.CommandDetails) (execshell.ExecutionResult, error)
}

// CommitLogEntry is one commit read from the repository log, hash plus full
// message, newest first.
type CommitLogEntry struct {
	Hash    string
	Message string
}

// RepositoryManager performs git operations against a working tree through a
// shell executor.
type RepositoryManager struct {
	gitExecutor GitExecutor
}

// NewRepositoryManager constructs a repository manager.
func NewRepositoryManager(gitExecutor GitExecutor) (*RepositoryManager, error) {
	if gitExecutor == nil {
		return nil, ErrExecutorNotConfigured
	}
	return &RepositoryManager{gitExecutor: gitExecutor}, nil
}

// CheckCleanWorktree reports whether the working tree carries no uncommitted
// changes.
func (repositoryManager *RepositoryManager) CheckCleanWorktree(executionContext context.Context, repositoryPath string) (bool, error) {
	executionResult, executionError := repositoryManager.runGit(executionContext, repositoryPath, statusSubcommandConstant, statusPorcelainFlagConstant)
	if executionError != nil {
		return false, executionError
	}
	return strings.TrimSpace(executionResult.StandardOutput) == "", nil
}

// GetCurrentBranch returns the checked-out branch name.
func (repositoryManager *RepositoryManager) GetCurrentBranch(executionContext context.Context, repositoryPath string) (string, error) {
	executionResult, executionError := repositoryManager.runGit(executionContext, repositoryPath, revParseSubcommandConstant, revParseAbbreviatedFlagConstant, headReferenceConstant)
	if executionError != nil {
		return "", executionError
	}
	return strings.TrimSpace(executionResult.StandardOutput), nil
}

// GetRemoteURL returns the URL configured for the named remote.
func (repositoryManager *RepositoryManager) GetRemoteURL(executionContext context.Context, repositoryPath string, remoteName string) (string, error) {
	executionResult, executionError := repositoryManager.runGit(executionContext, repositoryPath, remoteSubcommandConstant, remoteGetURLSubcommandConstant, remoteName)
	if executionError != nil {
		return "", executionError
	}
	return strings.TrimSpace(executionResult.StandardOutput), nil
}

// FetchAllRemotes refreshes every configured remote.
func (repositoryManager *RepositoryManager) FetchAllRemotes(executionContext context.Context, repositoryPath string) error {
	_, executionError := repositoryManager.runGit(executionContext, repositoryPath, fetchSubcommandConstant, fetchAllFlagConstant)
	return executionError
}

// CheckoutBranch switches the working tree to an existing branch.
func (repositoryManager *RepositoryManager) CheckoutBranch(executionContext context.Context, repositoryPath string, branchName string) error {
	_, executionError := repositoryManager.runGit(executionContext, repositoryPath, checkoutSubcommandConstant, branchName)
	return executionError
}

// ResetBranchToBase creates or resets a branch at the supplied base and checks
// it out. An empty base resets the branch at the current HEAD.
func (repositoryManager *RepositoryManager) ResetBranchToBase(executionContext context.Context, repositoryPath string, branchName string, baseReference string) error {
	commandArguments := []string{checkoutSubcommandConstant, checkoutResetBranchFlagConstant, branchName}
	if baseReference != "" {
		commandArguments = append(commandArguments, baseReference)
	}
	_, executionError := repositoryManager.runGit(executionContext, repositoryPath, commandArguments...)
	return executionError
}

// ResolveReference returns the commit hash the supplied reference points at.
func (repositoryManager *RepositoryManager) ResolveReference(executionContext context.Context, repositoryPath string, referenceName string) (string, error) {
	executionResult, executionError := repositoryManager.runGit(executionContext, repositoryPath, revParseSubcommandConstant, referenceName)
	if executionError != nil {
		return "", executionError
	}
	return strings.TrimSpace(executionResult.StandardOutput), nil
}

// MergeBase returns the best common ancestor of the two references.
func (repositoryManager *RepositoryManager) MergeBase(executionContext context.Context, repositoryPath string, firstReference string, secondReference string) (string, error) {
	executionResult, executionError := repositoryManager.runGit(executionContext, repositoryPath, mergeBaseSubcommandConstant, firstReference, secondReference)
	if executionError != nil {
		return "", executionError
	}
	return strings.TrimSpace(executionResult.StandardOutput), nil
}

// Rebase replays the current branch onto the supplied reference.
func (repositoryManager *RepositoryManager) Rebase(executionContext context.Context, repositoryPath string, ontoReference string) error {
	_, executionError := repositoryManager.runGit(executionContext, repositoryPath, rebaseSubcommandConstant, ontoReference)
	return executionError
}

// MergeNoFastForward merges the named branch into the current branch with a
// merge commit.
func (repositoryManager *RepositoryManager) MergeNoFastForward(executionContext context.Context, repositoryPath string, branchName string) error {
	_, executionError := repositoryManager.runGit(executionContext, repositoryPath, mergeSubcommandConstant, mergeNoFastForwardFlagConstant, branchName)
	return executionError
}

// ListConflictingPaths returns the paths left unmerged by a failed rebase or
// merge.
func (repositoryManager *RepositoryManager) ListConflictingPaths(executionContext context.Context, repositoryPath string) ([]string, error) {
	executionResult, executionError := repositoryManager.runGit(executionContext, repositoryPath, diffSubcommandConstant, diffNameOnlyFlagConstant, diffUnmergedFilterFlagConstant)
	if executionError != nil {
		return nil, executionError
	}
	conflictingPaths := make([]string, 0)
	for _, outputLine := range strings.Split(executionResult.StandardOutput, "\n") {
		trimmedLine := strings.TrimSpace(outputLine)
		if trimmedLine != "" {
			conflictingPaths = append(conflictingPaths, trimmedLine)
		}
	}
	return conflictingPaths, nil
}

// Push pushes the current branch to its configured upstream.
func (repositoryManager *RepositoryManager) Push(executionContext context.Context, repositoryPath string) error {
	_, executionError := repositoryManager.runGit(executionContext, repositoryPath, pushSubcommandConstant)
	return executionError
}

// PushBranchWithUpstream pushes the named branch and records the remote as its
// upstream.
func (repositoryManager *RepositoryManager) PushBranchWithUpstream(executionContext context.Context, repositoryPath string, remoteName string, branchName string) error {
	_, executionError := repositoryManager.runGit(executionContext, repositoryPath, pushSubcommandConstant, pushSetUpstreamFlagConstant, remoteName, branchName)
	return executionError
}

// StagePaths adds the supplied paths to the index.
func (repositoryManager *RepositoryManager) StagePaths(executionContext context.Context, repositoryPath string, paths ...string) error {
	commandArguments := append([]string{addSubcommandConstant}, paths...)
	_, executionError := repositoryManager.runGit(executionContext, repositoryPath, commandArguments...)
	return executionError
}

// CreateCommit records the staged changes. Hook execution is skipped when
// requested so formatting hooks cannot fail a release commit.
func (repositoryManager *RepositoryManager) CreateCommit(executionContext context.Context, repositoryPath string, commitMessage string, skipHooks bool) error {
	commandArguments := []string{commitSubcommandConstant}
	if skipHooks {
		commandArguments = append(commandArguments, commitSkipHooksFlagConstant)
	}
	commandArguments = append(commandArguments, messageFlagConstant, commitMessage)
	_, executionError := repositoryManager.runGit(executionContext, repositoryPath, commandArguments...)
	return executionError
}

// CreateAnnotatedTag creates an annotated tag with the supplied message.
func (repositoryManager *RepositoryManager) CreateAnnotatedTag(executionContext context.Context, repositoryPath string, tagName string, tagMessage string) error {
	_, executionError := repositoryManager.runGit(executionContext, repositoryPath, tagSubcommandConstant, tagAnnotateFlagConstant, tagName, messageFlagConstant, tagMessage)
	return executionError
}

// TagExists reports whether the named tag is present in the repository.
func (repositoryManager *RepositoryManager) TagExists(executionContext context.Context, repositoryPath string, tagName string) (bool, error) {
	executionResult, executionError := repositoryManager.runGit(executionContext, repositoryPath, tagSubcommandConstant, tagListFlagConstant, tagName)
	if executionError != nil {
		return false, executionError
	}
	for _, outputLine := range strings.Split(executionResult.StandardOutput, "\n") {
		if strings.TrimSpace(outputLine) == tagName {
			return true, nil
		}
	}
	return false, nil
}

// CountCommitsAhead returns how many commits the head reference carries beyond
// the base reference.
func (repositoryManager *RepositoryManager) CountCommitsAhead(executionContext context.Context, repositoryPath string, baseReference string, headReference string) (int, error) {
	commitRange := fmt.Sprintf(commitRangeTemplateConstant, baseReference, headReference)
	executionResult, executionError := repositoryManager.runGit(executionContext, repositoryPath, revListSubcommandConstant, revListCountFlagConstant, commitRange)
	if executionError != nil {
		return 0, executionError
	}
	countText := strings.TrimSpace(executionResult.StandardOutput)
	aheadCount, parseError := strconv.Atoi(countText)
	if parseError != nil {
		return 0, fmt.Errorf(aheadCountParseFailureTemplateConstant, countText, parseError)
	}
	return aheadCount, nil
}

// ListCommitsSince returns the hash and full message of every non-merge commit
// after the supplied reference, newest first. An empty reference lists the
// whole history.
func (repositoryManager *RepositoryManager) ListCommitsSince(executionContext context.Context, repositoryPath string, sinceReference string) ([]CommitLogEntry, error) {
	commandArguments := []string{logSubcommandConstant, logPrettyFormatFlagConstant, logNoMergesFlagConstant}
	if sinceReference != "" {
		commandArguments = append(commandArguments, fmt.Sprintf(commitRangeTemplateConstant, sinceReference, headReferenceConstant))
	}
	executionResult, executionError := repositoryManager.runGit(executionContext, repositoryPath, commandArguments...)
	if executionError != nil {
		return nil, executionError
	}

	logEntries := make([]CommitLogEntry, 0)
	for _, commitBlock := range strings.Split(executionResult.StandardOutput, commitRecordSeparatorConstant) {
		trimmedBlock := strings.TrimSpace(commitBlock)
		if trimmedBlock == "" {
			continue
		}
		commitHash, commitMessage, separatorFound := strings.Cut(trimmedBlock, commitFieldSeparatorConstant)
		if !separatorFound {
			continue
		}
		logEntries = append(logEntries, CommitLogEntry{
			Hash:    strings.TrimSpace(commitHash),
			Message: strings.TrimSpace(commitMessage),
		})
	}
	return logEntries, nil
}

func (repositoryManager *RepositoryManager) runGit(executionContext context.Context, repositoryPath string, commandArguments ...string) (execshell.ExecutionResult, error) {
	commandDetails := execshell.CommandDetails{
		Arguments:        commandArguments,
		WorkingDirectory: repositoryPath,
	}
	return repositoryManager.gitExecutor.ExecuteGit(executionContext, commandDetails)
}
