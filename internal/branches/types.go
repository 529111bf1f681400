package branches

import (
	"context"
	"fmt"

	"github.com/temirov/releasekit/internal/execshell"
)

const (
	candidatePreparationMessageTemplateConstant = "unable to prepare branch %q from any base"
)

// GitExecutor exposes the subset of shell execution used by workflow services.
type GitExecutor interface {
	ExecuteGit(executionContext context.Context, details execshell.CommandDetails) (execshell.ExecutionResult, error)
	ExecuteGitHubCLI(executionContext context.Context, details execshell.CommandDetails) (execshell.ExecutionResult, error)
}

// RepositoryGateway exposes the repository operations workflow services rely
// on. It is satisfied by gitrepo.RepositoryManager.
type RepositoryGateway interface {
	CheckCleanWorktree(executionContext context.Context, repositoryPath string) (bool, error)
	GetCurrentBranch(executionContext context.Context, repositoryPath string) (string, error)
	GetRemoteURL(executionContext context.Context, repositoryPath string, remoteName string) (string, error)
	FetchAllRemotes(executionContext context.Context, repositoryPath string) error
	CheckoutBranch(executionContext context.Context, repositoryPath string, branchName string) error
	ResetBranchToBase(executionContext context.Context, repositoryPath string, branchName string, baseReference string) error
	ResolveReference(executionContext context.Context, repositoryPath string, referenceName string) (string, error)
	MergeBase(executionContext context.Context, repositoryPath string, firstReference string, secondReference string) (string, error)
	Rebase(executionContext context.Context, repositoryPath string, ontoReference string) error
	MergeNoFastForward(executionContext context.Context, repositoryPath string, branchName string) error
	ListConflictingPaths(executionContext context.Context, repositoryPath string) ([]string, error)
	Push(executionContext context.Context, repositoryPath string) error
	PushBranchWithUpstream(executionContext context.Context, repositoryPath string, remoteName string, branchName string) error
}

// CandidatePreparationError reports that the release-candidate branch could
// not be created or updated from any base.
type CandidatePreparationError struct {
	CandidateBranch string
}

// Error describes the failed preparation.
func (preparationError *CandidatePreparationError) Error() string {
	return fmt.Sprintf(candidatePreparationMessageTemplateConstant, preparationError.CandidateBranch)
}

// PrepareCandidateBranch checks out the release-candidate branch, creating or
// updating it from the best available base: the remote candidate, the remote
// main branch, then the local main branch. When no base resolves the branch is
// created at the current HEAD.
func PrepareCandidateBranch(executionContext context.Context, repositoryGateway RepositoryGateway, repositoryPath string, configuration WorkflowConfiguration) error {
	baseReferences := []string{
		configuration.RemoteName + "/" + configuration.CandidateBranch,
		configuration.RemoteName + "/" + configuration.MainBranch,
		configuration.MainBranch,
	}
	for _, baseReference := range baseReferences {
		resetError := repositoryGateway.ResetBranchToBase(executionContext, repositoryPath, configuration.CandidateBranch, baseReference)
		if resetError == nil {
			return nil
		}
	}
	if resetError := repositoryGateway.ResetBranchToBase(executionContext, repositoryPath, configuration.CandidateBranch, ""); resetError == nil {
		return nil
	}
	return &CandidatePreparationError{CandidateBranch: configuration.CandidateBranch}
}
