package rebase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/temirov/releasekit/internal/branches"
)

const (
	repositoryPathRequiredMessageConstant    = "repository path must be provided"
	repositoryGatewayMissingMessageConstant  = "repository gateway not configured"
	featureBranchRequirementTemplateConstant = "branch-rebase must run from a feature branch, not %q or %q"
	checkoutReturnErrorTemplateConstant      = "failed to return to branch %q: %w"
	fetchWarningMessageConstant              = "remote fetch failed; continuing with local refs"
	forcePushAdviceMessageConstant           = "rebase pushed no changes upstream; push with --force-with-lease once reviewed"
	branchNameFieldConstant                  = "branch"
)

// ErrRepositoryPathRequired indicates the repository path option was empty.
var ErrRepositoryPathRequired = errors.New(repositoryPathRequiredMessageConstant)

// ErrRepositoryGatewayNotConfigured indicates the gateway dependency was missing.
var ErrRepositoryGatewayNotConfigured = errors.New(repositoryGatewayMissingMessageConstant)

// Options configures a feature branch rebase.
type Options struct {
	RepositoryPath string
	Configuration  branches.WorkflowConfiguration
}

// Result captures the observable outcome of a rebase.
type Result struct {
	BranchName string
	Pushed     bool
}

// Service rebases feature branches onto the release candidate.
type Service struct {
	logger            *zap.Logger
	repositoryGateway branches.RepositoryGateway
}

// NewService constructs a branch rebase service.
func NewService(logger *zap.Logger, repositoryGateway branches.RepositoryGateway) (*Service, error) {
	if repositoryGateway == nil {
		return nil, ErrRepositoryGatewayNotConfigured
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{logger: logger, repositoryGateway: repositoryGateway}, nil
}

// Rebase refreshes the release candidate from its best base and replays the
// current feature branch on top of it. A halted rebase surfaces the
// conflicting paths and leaves git's conflict state in place for manual
// resolution.
func (service *Service) Rebase(executionContext context.Context, options Options) (Result, error) {
	trimmedRepositoryPath := strings.TrimSpace(options.RepositoryPath)
	if len(trimmedRepositoryPath) == 0 {
		return Result{}, ErrRepositoryPathRequired
	}

	currentBranch, branchError := service.repositoryGateway.GetCurrentBranch(executionContext, trimmedRepositoryPath)
	if branchError != nil {
		return Result{}, branchError
	}
	if currentBranch == options.Configuration.MainBranch || currentBranch == options.Configuration.CandidateBranch {
		return Result{}, &branches.WrongBaseBranchError{
			CurrentBranch: currentBranch,
			Requirement: fmt.Sprintf(
				featureBranchRequirementTemplateConstant,
				options.Configuration.MainBranch,
				options.Configuration.CandidateBranch,
			),
		}
	}

	if fetchError := service.repositoryGateway.FetchAllRemotes(executionContext, trimmedRepositoryPath); fetchError != nil {
		service.logger.Warn(fetchWarningMessageConstant, zap.Error(fetchError))
	}

	if preparationError := branches.PrepareCandidateBranch(executionContext, service.repositoryGateway, trimmedRepositoryPath, options.Configuration); preparationError != nil {
		return Result{}, preparationError
	}

	if checkoutError := service.repositoryGateway.CheckoutBranch(executionContext, trimmedRepositoryPath, currentBranch); checkoutError != nil {
		return Result{}, fmt.Errorf(checkoutReturnErrorTemplateConstant, currentBranch, checkoutError)
	}

	if rebaseError := service.repositoryGateway.Rebase(executionContext, trimmedRepositoryPath, options.Configuration.CandidateBranch); rebaseError != nil {
		conflictingPaths, listError := service.repositoryGateway.ListConflictingPaths(executionContext, trimmedRepositoryPath)
		if listError != nil {
			return Result{}, rebaseError
		}
		return Result{}, &branches.RebaseConflictError{
			OntoBranch:       options.Configuration.CandidateBranch,
			ConflictingPaths: conflictingPaths,
		}
	}

	pushError := service.repositoryGateway.Push(executionContext, trimmedRepositoryPath)
	if pushError != nil {
		service.logger.Warn(forcePushAdviceMessageConstant, zap.String(branchNameFieldConstant, currentBranch), zap.Error(pushError))
		return Result{BranchName: currentBranch, Pushed: false}, nil
	}

	return Result{BranchName: currentBranch, Pushed: true}, nil
}
