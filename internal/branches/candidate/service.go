package candidate

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"

	"github.com/temirov/releasekit/internal/branches"
)

const (
	repositoryPathRequiredMessageConstant   = "repository path must be provided"
	repositoryGatewayMissingMessageConstant = "repository gateway not configured"
	fetchWarningMessageConstant             = "remote fetch failed; continuing with local refs"
	pushWarningMessageConstant              = "created the release candidate locally; set up a remote and push when ready"
)

// ErrRepositoryPathRequired indicates the repository path option was empty.
var ErrRepositoryPathRequired = errors.New(repositoryPathRequiredMessageConstant)

// ErrRepositoryGatewayNotConfigured indicates the gateway dependency was missing.
var ErrRepositoryGatewayNotConfigured = errors.New(repositoryGatewayMissingMessageConstant)

// Options configures a release candidate refresh.
type Options struct {
	RepositoryPath string
	Configuration  branches.WorkflowConfiguration
}

// Result captures the observable outcome of a candidate refresh.
type Result struct {
	CandidateBranch string
	Pushed          bool
}

// Service creates or updates the release candidate branch.
type Service struct {
	logger            *zap.Logger
	repositoryGateway branches.RepositoryGateway
}

// NewService constructs a release candidate service.
func NewService(logger *zap.Logger, repositoryGateway branches.RepositoryGateway) (*Service, error) {
	if repositoryGateway == nil {
		return nil, ErrRepositoryGatewayNotConfigured
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{logger: logger, repositoryGateway: repositoryGateway}, nil
}

// Refresh checks out the release candidate from its best available base and
// pushes it with an upstream.
func (service *Service) Refresh(executionContext context.Context, options Options) (Result, error) {
	trimmedRepositoryPath := strings.TrimSpace(options.RepositoryPath)
	if len(trimmedRepositoryPath) == 0 {
		return Result{}, ErrRepositoryPathRequired
	}

	if fetchError := service.repositoryGateway.FetchAllRemotes(executionContext, trimmedRepositoryPath); fetchError != nil {
		service.logger.Warn(fetchWarningMessageConstant, zap.Error(fetchError))
	}

	if preparationError := branches.PrepareCandidateBranch(executionContext, service.repositoryGateway, trimmedRepositoryPath, options.Configuration); preparationError != nil {
		return Result{}, preparationError
	}

	pushError := service.repositoryGateway.PushBranchWithUpstream(executionContext, trimmedRepositoryPath, options.Configuration.RemoteName, options.Configuration.CandidateBranch)
	if pushError != nil {
		service.logger.Warn(pushWarningMessageConstant, zap.Error(pushError))
		return Result{CandidateBranch: options.Configuration.CandidateBranch, Pushed: false}, nil
	}

	return Result{CandidateBranch: options.Configuration.CandidateBranch, Pushed: true}, nil
}
