package finalize

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
	featureBranchRequirementTemplateConstant = "branch-finalize must run from a feature branch, not %q"
	checkoutReturnWarningMessageConstant     = "unable to return to the feature branch; staying on the release candidate"
	fetchWarningMessageConstant              = "remote fetch failed; continuing with local refs"
	pushWarningMessageConstant               = "merged locally; push the release candidate manually"
	branchNameFieldConstant                  = "branch"
)

// ErrRepositoryPathRequired indicates the repository path option was empty.
var ErrRepositoryPathRequired = errors.New(repositoryPathRequiredMessageConstant)

// ErrRepositoryGatewayNotConfigured indicates the gateway dependency was missing.
var ErrRepositoryGatewayNotConfigured = errors.New(repositoryGatewayMissingMessageConstant)

// Options configures a branch finalization.
type Options struct {
	RepositoryPath string
	Configuration  branches.WorkflowConfiguration
}

// Result captures the observable outcome of a finalization.
type Result struct {
	BranchName string
	Pushed     bool
}

// Service merges finished feature branches into the release candidate.
type Service struct {
	logger            *zap.Logger
	repositoryGateway branches.RepositoryGateway
}

// NewService constructs a branch finalization service.
func NewService(logger *zap.Logger, repositoryGateway branches.RepositoryGateway) (*Service, error) {
	if repositoryGateway == nil {
		return nil, ErrRepositoryGatewayNotConfigured
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{logger: logger, repositoryGateway: repositoryGateway}, nil
}

// Finalize merges the current feature branch into the release candidate with
// an explicit merge commit and pushes the candidate. The branch must already
// sit on the candidate's current tip: a drifted candidate yields a
// StaleBranchError before anything is merged so the operator rebases first.
func (service *Service) Finalize(executionContext context.Context, options Options) (Result, error) {
	trimmedRepositoryPath := strings.TrimSpace(options.RepositoryPath)
	if len(trimmedRepositoryPath) == 0 {
		return Result{}, ErrRepositoryPathRequired
	}

	currentBranch, branchError := service.repositoryGateway.GetCurrentBranch(executionContext, trimmedRepositoryPath)
	if branchError != nil {
		return Result{}, branchError
	}
	if currentBranch == options.Configuration.CandidateBranch {
		return Result{}, &branches.WrongBaseBranchError{
			CurrentBranch: currentBranch,
			Requirement:   fmt.Sprintf(featureBranchRequirementTemplateConstant, options.Configuration.CandidateBranch),
		}
	}

	if fetchError := service.repositoryGateway.FetchAllRemotes(executionContext, trimmedRepositoryPath); fetchError != nil {
		service.logger.Warn(fetchWarningMessageConstant, zap.Error(fetchError))
	}

	if preparationError := branches.PrepareCandidateBranch(executionContext, service.repositoryGateway, trimmedRepositoryPath, options.Configuration); preparationError != nil {
		return Result{}, preparationError
	}

	staleBranch, stalenessError := service.branchIsStale(executionContext, trimmedRepositoryPath, currentBranch, options.Configuration.CandidateBranch)
	if stalenessError != nil {
		service.returnToBranch(executionContext, trimmedRepositoryPath, currentBranch)
		return Result{}, stalenessError
	}
	if staleBranch {
		service.returnToBranch(executionContext, trimmedRepositoryPath, currentBranch)
		return Result{}, &branches.StaleBranchError{
			BranchName:      currentBranch,
			CandidateBranch: options.Configuration.CandidateBranch,
		}
	}

	if mergeError := service.repositoryGateway.MergeNoFastForward(executionContext, trimmedRepositoryPath, currentBranch); mergeError != nil {
		conflictingPaths, listError := service.repositoryGateway.ListConflictingPaths(executionContext, trimmedRepositoryPath)
		if listError != nil {
			return Result{}, mergeError
		}
		return Result{}, &branches.MergeConflictError{
			SourceBranch:     currentBranch,
			ConflictingPaths: conflictingPaths,
		}
	}

	pushed := true
	pushError := service.repositoryGateway.PushBranchWithUpstream(executionContext, trimmedRepositoryPath, options.Configuration.RemoteName, options.Configuration.CandidateBranch)
	if pushError != nil {
		pushed = false
		service.logger.Warn(pushWarningMessageConstant, zap.String(branchNameFieldConstant, options.Configuration.CandidateBranch), zap.Error(pushError))
	}

	service.returnToBranch(executionContext, trimmedRepositoryPath, currentBranch)

	return Result{BranchName: currentBranch, Pushed: pushed}, nil
}

func (service *Service) branchIsStale(executionContext context.Context, repositoryPath string, branchName string, candidateBranch string) (bool, error) {
	commonAncestor, ancestorError := service.repositoryGateway.MergeBase(executionContext, repositoryPath, branchName, candidateBranch)
	if ancestorError != nil {
		return false, ancestorError
	}
	candidateTip, tipError := service.repositoryGateway.ResolveReference(executionContext, repositoryPath, candidateBranch)
	if tipError != nil {
		return false, tipError
	}
	return commonAncestor != candidateTip, nil
}

func (service *Service) returnToBranch(executionContext context.Context, repositoryPath string, branchName string) {
	if checkoutError := service.repositoryGateway.CheckoutBranch(executionContext, repositoryPath, branchName); checkoutError != nil {
		service.logger.Warn(checkoutReturnWarningMessageConstant, zap.String(branchNameFieldConstant, branchName), zap.Error(checkoutError))
	}
}
