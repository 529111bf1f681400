package create

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/temirov/releasekit/internal/branches"
)

const (
	repositoryPathRequiredMessageConstant   = "repository path must be provided"
	repositoryGatewayMissingMessageConstant = "repository gateway not configured"
	cleanVerificationErrorTemplateConstant  = "failed to verify clean worktree: %w"
	branchCreationErrorTemplateConstant     = "failed to create branch %q: %w"
	candidateRequirementTemplateConstant    = "branch-create must run from %q"
	upstreamPushWarningMessageConstant      = "created branch locally; push it manually once a remote is reachable"
	branchNameFieldConstant                 = "branch"
)

// ErrRepositoryPathRequired indicates the repository path option was empty.
var ErrRepositoryPathRequired = errors.New(repositoryPathRequiredMessageConstant)

// ErrRepositoryGatewayNotConfigured indicates the gateway dependency was missing.
var ErrRepositoryGatewayNotConfigured = errors.New(repositoryGatewayMissingMessageConstant)

// Options configures a feature branch creation.
type Options struct {
	RepositoryPath string
	BranchName     string
	Configuration  branches.WorkflowConfiguration
}

// Result captures the observable outcome of a creation.
type Result struct {
	BranchName string
	Pushed     bool
}

// Service creates feature branches off the release candidate.
type Service struct {
	logger            *zap.Logger
	repositoryGateway branches.RepositoryGateway
}

// NewService constructs a branch creation service.
func NewService(logger *zap.Logger, repositoryGateway branches.RepositoryGateway) (*Service, error) {
	if repositoryGateway == nil {
		return nil, ErrRepositoryGatewayNotConfigured
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{logger: logger, repositoryGateway: repositoryGateway}, nil
}

// Create validates preconditions and checks out a new feature branch from the
// release candidate tip. The branch name must take the form tag/topic, the
// working tree must be clean, and the release candidate must be checked out;
// every precondition failure leaves the repository untouched.
func (service *Service) Create(executionContext context.Context, options Options) (Result, error) {
	trimmedRepositoryPath := strings.TrimSpace(options.RepositoryPath)
	if len(trimmedRepositoryPath) == 0 {
		return Result{}, ErrRepositoryPathRequired
	}

	branchName, nameError := branches.ParseBranchName(options.BranchName)
	if nameError != nil {
		return Result{}, nameError
	}

	cleanWorktree, cleanError := service.repositoryGateway.CheckCleanWorktree(executionContext, trimmedRepositoryPath)
	if cleanError != nil {
		return Result{}, fmt.Errorf(cleanVerificationErrorTemplateConstant, cleanError)
	}
	if !cleanWorktree {
		return Result{}, &branches.DirtyTreeError{RepositoryPath: trimmedRepositoryPath}
	}

	currentBranch, branchError := service.repositoryGateway.GetCurrentBranch(executionContext, trimmedRepositoryPath)
	if branchError != nil {
		return Result{}, branchError
	}
	if currentBranch != options.Configuration.CandidateBranch {
		return Result{}, &branches.WrongBaseBranchError{
			CurrentBranch: currentBranch,
			Requirement:   fmt.Sprintf(candidateRequirementTemplateConstant, options.Configuration.CandidateBranch),
		}
	}

	if creationError := service.repositoryGateway.ResetBranchToBase(executionContext, trimmedRepositoryPath, branchName.String(), options.Configuration.CandidateBranch); creationError != nil {
		return Result{}, fmt.Errorf(branchCreationErrorTemplateConstant, branchName.String(), creationError)
	}

	pushError := service.repositoryGateway.PushBranchWithUpstream(executionContext, trimmedRepositoryPath, options.Configuration.RemoteName, branchName.String())
	if pushError != nil {
		service.logger.Warn(upstreamPushWarningMessageConstant, zap.String(branchNameFieldConstant, branchName.String()), zap.Error(pushError))
		return Result{BranchName: branchName.String(), Pushed: false}, nil
	}

	return Result{BranchName: branchName.String(), Pushed: true}, nil
}
