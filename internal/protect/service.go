package protect

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/temirov/releasekit/internal/branches"
	"github.com/temirov/releasekit/internal/gitrepo"
)

const (
	repositoryPathRequiredMessageConstant   = "repository path must be provided"
	repositoryGatewayMissingMessageConstant = "repository gateway not configured"
	hostingClientMissingMessageConstant     = "hosting client not configured"
	remoteResolutionFailureTemplateConstant = "unable to resolve remote %q: %w"
	protectionAppliedMessageConstant        = "branch protection applied"
	ownerFieldNameConstant                  = "owner"
	repositoryFieldNameConstant             = "repository"
	branchFieldNameConstant                 = "branch"
)

// ErrRepositoryPathRequired indicates the repository path option was empty.
var ErrRepositoryPathRequired = errors.New(repositoryPathRequiredMessageConstant)

// ErrRepositoryGatewayNotConfigured indicates the gateway dependency was missing.
var ErrRepositoryGatewayNotConfigured = errors.New(repositoryGatewayMissingMessageConstant)

// ErrHostingClientNotConfigured indicates the hosting client dependency was missing.
var ErrHostingClientNotConfigured = errors.New(hostingClientMissingMessageConstant)

// RepositoryGateway exposes the git operation the protection service needs.
// It is satisfied by gitrepo.RepositoryManager.
type RepositoryGateway interface {
	GetRemoteURL(executionContext context.Context, repositoryPath string, remoteName string) (string, error)
}

// HostingClient exposes the hosting operation the service needs. It is
// satisfied by githubcli.Client.
type HostingClient interface {
	UpdateBranchProtection(executionContext context.Context, ownerName string, repositoryName string, branchName string) error
}

// Options configures a branch protection update.
type Options struct {
	RepositoryPath string
	Workflow       branches.WorkflowConfiguration
}

// Result captures the protected branch coordinates.
type Result struct {
	OwnerName       string
	RepositoryName  string
	ProtectedBranch string
}

// Service applies the release workflow's protection rules to the main branch.
type Service struct {
	logger            *zap.Logger
	repositoryGateway RepositoryGateway
	hostingClient     HostingClient
}

// NewService constructs a branch protection service.
func NewService(logger *zap.Logger, repositoryGateway RepositoryGateway, hostingClient HostingClient) (*Service, error) {
	if repositoryGateway == nil {
		return nil, ErrRepositoryGatewayNotConfigured
	}
	if hostingClient == nil {
		return nil, ErrHostingClientNotConfigured
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{logger: logger, repositoryGateway: repositoryGateway, hostingClient: hostingClient}, nil
}

// Protect resolves the repository's owner and name from the configured remote
// and enables pull-request review enforcement on the main branch.
func (service *Service) Protect(executionContext context.Context, options Options) (Result, error) {
	trimmedRepositoryPath := strings.TrimSpace(options.RepositoryPath)
	if len(trimmedRepositoryPath) == 0 {
		return Result{}, ErrRepositoryPathRequired
	}

	remoteURLText, remoteError := service.repositoryGateway.GetRemoteURL(executionContext, trimmedRepositoryPath, options.Workflow.RemoteName)
	if remoteError != nil {
		return Result{}, fmt.Errorf(remoteResolutionFailureTemplateConstant, options.Workflow.RemoteName, remoteError)
	}

	remoteURL, parseError := gitrepo.ParseRemoteURL(remoteURLText)
	if parseError != nil {
		return Result{}, parseError
	}

	protectionError := service.hostingClient.UpdateBranchProtection(executionContext, remoteURL.Owner, remoteURL.Repository, options.Workflow.MainBranch)
	if protectionError != nil {
		return Result{}, protectionError
	}

	service.logger.Info(protectionAppliedMessageConstant,
		zap.String(ownerFieldNameConstant, remoteURL.Owner),
		zap.String(repositoryFieldNameConstant, remoteURL.Repository),
		zap.String(branchFieldNameConstant, options.Workflow.MainBranch),
	)

	return Result{
		OwnerName:       remoteURL.Owner,
		RepositoryName:  remoteURL.Repository,
		ProtectedBranch: options.Workflow.MainBranch,
	}, nil
}
