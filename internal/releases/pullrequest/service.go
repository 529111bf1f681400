package pullrequest

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/temirov/releasekit/internal/branches"
	"github.com/temirov/releasekit/internal/changelog"
	"github.com/temirov/releasekit/internal/githubcli"
	"github.com/temirov/releasekit/internal/releases"
)

const (
	repositoryPathRequiredMessageConstant   = "repository path must be provided"
	repositoryGatewayMissingMessageConstant = "repository gateway not configured"
	hostingClientMissingMessageConstant     = "hosting client not configured"
	noDifferenceMessageConstant             = "release candidate has no commits beyond the main branch"
	candidateMissingMessageTemplateConstant = "branch %q not found locally; run release-rc first"
	changelogReadFailureTemplateConstant    = "unable to read changelog %s: %w"
	titleWithVersionTemplateConstant        = "Release %s%s"
	fallbackTitleConstant                   = "Release candidate to main"
	fallbackBodyConstant                    = "(No changelog entries found)"
)

// ErrRepositoryPathRequired indicates the repository path option was empty.
var ErrRepositoryPathRequired = errors.New(repositoryPathRequiredMessageConstant)

// ErrRepositoryGatewayNotConfigured indicates the gateway dependency was missing.
var ErrRepositoryGatewayNotConfigured = errors.New(repositoryGatewayMissingMessageConstant)

// ErrHostingClientNotConfigured indicates the hosting client dependency was missing.
var ErrHostingClientNotConfigured = errors.New(hostingClientMissingMessageConstant)

// ErrNoDifference indicates the release candidate carries nothing beyond the
// main branch; opening a pull request would be a no-op.
var ErrNoDifference = errors.New(noDifferenceMessageConstant)

// CandidateMissingError reports an absent release candidate branch.
type CandidateMissingError struct {
	CandidateBranch string
}

// Error names the missing branch.
func (candidateMissingError *CandidateMissingError) Error() string {
	return fmt.Sprintf(candidateMissingMessageTemplateConstant, candidateMissingError.CandidateBranch)
}

// RepositoryGateway exposes the git operations the pull request service
// needs. It is satisfied by gitrepo.RepositoryManager.
type RepositoryGateway interface {
	ResolveReference(executionContext context.Context, repositoryPath string, referenceName string) (string, error)
	CountCommitsAhead(executionContext context.Context, repositoryPath string, baseReference string, headReference string) (int, error)
}

// HostingClient exposes the hosting operation the service needs. It is
// satisfied by githubcli.Client.
type HostingClient interface {
	CreatePullRequest(executionContext context.Context, specification githubcli.PullRequestSpecification) (string, error)
}

// Options configures a release pull request.
type Options struct {
	RepositoryPath string
	Workflow       branches.WorkflowConfiguration
	Release        releases.Configuration
}

// Result captures the opened pull request.
type Result struct {
	Title          string
	PullRequestURL string
}

// Service opens the release pull request from the candidate to main.
type Service struct {
	logger             *zap.Logger
	repositoryGateway  RepositoryGateway
	hostingClient      HostingClient
	changelogGenerator changelog.Generator
}

// NewService constructs a release pull request service.
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
	return &Service{
		logger:             logger,
		repositoryGateway:  repositoryGateway,
		hostingClient:      hostingClient,
		changelogGenerator: changelog.NewGenerator(),
	}, nil
}

// Open verifies the candidate is ahead of main and opens a pull request whose
// title and body come from the changelog's topmost section. A candidate with
// no commits beyond main yields ErrNoDifference so callers can treat it as a
// no-op rather than a failure.
func (service *Service) Open(executionContext context.Context, options Options) (Result, error) {
	trimmedRepositoryPath := strings.TrimSpace(options.RepositoryPath)
	if len(trimmedRepositoryPath) == 0 {
		return Result{}, ErrRepositoryPathRequired
	}

	if _, resolveError := service.repositoryGateway.ResolveReference(executionContext, trimmedRepositoryPath, options.Workflow.CandidateBranch); resolveError != nil {
		return Result{}, &CandidateMissingError{CandidateBranch: options.Workflow.CandidateBranch}
	}

	aheadCount, countError := service.repositoryGateway.CountCommitsAhead(executionContext, trimmedRepositoryPath, options.Workflow.MainBranch, options.Workflow.CandidateBranch)
	if countError != nil {
		return Result{}, countError
	}
	if aheadCount == 0 {
		return Result{}, ErrNoDifference
	}

	pullRequestTitle, pullRequestBody, sectionError := service.describeRelease(trimmedRepositoryPath, options)
	if sectionError != nil {
		return Result{}, sectionError
	}

	pullRequestURL, createError := service.hostingClient.CreatePullRequest(executionContext, githubcli.PullRequestSpecification{
		BaseBranch: options.Workflow.MainBranch,
		HeadBranch: options.Workflow.CandidateBranch,
		Title:      pullRequestTitle,
		Body:       pullRequestBody,
	})
	if createError != nil {
		return Result{}, createError
	}

	return Result{Title: pullRequestTitle, PullRequestURL: pullRequestURL}, nil
}

func (service *Service) describeRelease(repositoryPath string, options Options) (string, string, error) {
	changelogPath := filepath.Join(repositoryPath, options.Release.ChangelogPath)
	changelogContent, readError := os.ReadFile(changelogPath)
	if readError != nil {
		if errors.Is(readError, os.ErrNotExist) {
			return fallbackTitleConstant, fallbackBodyConstant, nil
		}
		return "", "", fmt.Errorf(changelogReadFailureTemplateConstant, changelogPath, readError)
	}

	latestSection, sectionFound := service.changelogGenerator.LatestSection(string(changelogContent))
	if !sectionFound {
		return fallbackTitleConstant, fallbackBodyConstant, nil
	}

	pullRequestBody := latestSection.Body
	if len(pullRequestBody) == 0 {
		pullRequestBody = fallbackBodyConstant
	}
	return fmt.Sprintf(titleWithVersionTemplateConstant, options.Release.TagPrefix, latestSection.VersionText), pullRequestBody, nil
}
