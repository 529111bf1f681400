package releases

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/temirov/releasekit/internal/changelog"
	"github.com/temirov/releasekit/internal/conventional"
	"github.com/temirov/releasekit/internal/gitrepo"
	"github.com/temirov/releasekit/internal/project"
	"github.com/temirov/releasekit/internal/semver"
)

const (
	repositoryPathRequiredMessageConstant   = "repository path must be provided"
	repositoryGatewayMissingMessageConstant = "repository gateway not configured"
	changelogReadFailureTemplateConstant    = "unable to read changelog %s: %w"
	changelogWriteFailureTemplateConstant   = "unable to write changelog %s: %w"
	releaseCommitMessageTemplateConstant    = "chore(release): %s"
	tagMessageTemplateConstant              = "Release %s"
	changelogFilePermissionsConstant        = 0o644
	previousVersionFieldConstant            = "previous_version"
	newVersionFieldConstant                 = "new_version"
	tagNameFieldConstant                    = "tag"
	bumpCompletedMessageConstant            = "release committed and tagged; push separately"
)

// ErrRepositoryPathRequired indicates the repository path option was empty.
var ErrRepositoryPathRequired = errors.New(repositoryPathRequiredMessageConstant)

// ErrRepositoryGatewayNotConfigured indicates the gateway dependency was missing.
var ErrRepositoryGatewayNotConfigured = errors.New(repositoryGatewayMissingMessageConstant)

// RepositoryGateway exposes the git operations the release orchestrator
// needs. It is satisfied by gitrepo.RepositoryManager.
type RepositoryGateway interface {
	TagExists(executionContext context.Context, repositoryPath string, tagName string) (bool, error)
	ListCommitsSince(executionContext context.Context, repositoryPath string, sinceReference string) ([]gitrepo.CommitLogEntry, error)
	StagePaths(executionContext context.Context, repositoryPath string, paths ...string) error
	CreateCommit(executionContext context.Context, repositoryPath string, commitMessage string, skipHooks bool) error
	CreateAnnotatedTag(executionContext context.Context, repositoryPath string, tagName string, tagMessage string) error
}

// Clock abstracts time acquisition for deterministic changelog dates.
type Clock interface {
	Now() time.Time
}

// SystemClock implements Clock using the system time source.
type SystemClock struct{}

// Now returns the current system time.
func (SystemClock) Now() time.Time {
	return time.Now()
}

// BumpOptions configures a version bump.
type BumpOptions struct {
	RepositoryPath string
	OverridePart   *semver.BumpPart
	Configuration  Configuration
}

// BumpResult captures the outcome of a completed bump.
type BumpResult struct {
	PreviousVersion semver.SemanticVersion
	NewVersion      semver.SemanticVersion
	TagName         string
	CommitCount     int
}

// Service orchestrates version bumps: it resolves the next version from the
// commit history, rewrites the changelog and project metadata, and records
// the release commit and annotated tag. Pushing is always a separate step.
type Service struct {
	logger             *zap.Logger
	repositoryGateway  RepositoryGateway
	commitParser       conventional.Parser
	versionResolver    semver.Resolver
	changelogGenerator changelog.Generator
	clock              Clock
}

// NewService constructs a release orchestration service.
func NewService(logger *zap.Logger, repositoryGateway RepositoryGateway, clock Clock) (*Service, error) {
	if repositoryGateway == nil {
		return nil, ErrRepositoryGatewayNotConfigured
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if clock == nil {
		clock = SystemClock{}
	}
	return &Service{
		logger:             logger,
		repositoryGateway:  repositoryGateway,
		commitParser:       conventional.NewParser(),
		versionResolver:    semver.NewResolver(),
		changelogGenerator: changelog.NewGenerator(),
		clock:              clock,
	}, nil
}

// CurrentVersion reads the released version from the project metadata file.
func (service *Service) CurrentVersion(repositoryPath string, configuration Configuration) (semver.SemanticVersion, error) {
	trimmedRepositoryPath := strings.TrimSpace(repositoryPath)
	if len(trimmedRepositoryPath) == 0 {
		return semver.SemanticVersion{}, ErrRepositoryPathRequired
	}
	metadataStore := project.NewMetadataStore(filepath.Join(trimmedRepositoryPath, configuration.MetadataPath))
	return metadataStore.ReadVersion()
}

// Bump runs the release sequence. It aborts before any write when no commit
// warrants a release and no override was supplied, and it never pushes: the
// commit and tag stay local so a failed push can be retried on its own.
func (service *Service) Bump(executionContext context.Context, options BumpOptions) (BumpResult, error) {
	trimmedRepositoryPath := strings.TrimSpace(options.RepositoryPath)
	if len(trimmedRepositoryPath) == 0 {
		return BumpResult{}, ErrRepositoryPathRequired
	}

	metadataStore := project.NewMetadataStore(filepath.Join(trimmedRepositoryPath, options.Configuration.MetadataPath))
	currentVersion, versionError := metadataStore.ReadVersion()
	if versionError != nil {
		return BumpResult{}, versionError
	}

	commitRecords, collectionError := service.collectCommitsSinceRelease(executionContext, trimmedRepositoryPath, currentVersion, options.Configuration)
	if collectionError != nil {
		return BumpResult{}, collectionError
	}

	newVersion, resolveError := service.versionResolver.Resolve(currentVersion, commitRecords, options.OverridePart)
	if resolveError != nil {
		return BumpResult{}, resolveError
	}

	changelogPath := filepath.Join(trimmedRepositoryPath, options.Configuration.ChangelogPath)
	existingChangelog, readError := os.ReadFile(changelogPath)
	if readError != nil && !errors.Is(readError, os.ErrNotExist) {
		return BumpResult{}, fmt.Errorf(changelogReadFailureTemplateConstant, changelogPath, readError)
	}

	renderedChangelog, renderError := service.changelogGenerator.Render(string(existingChangelog), changelog.Section{
		Version: newVersion,
		Date:    service.clock.Now(),
		Commits: commitRecords,
	})
	if renderError != nil {
		return BumpResult{}, renderError
	}

	if writeError := os.WriteFile(changelogPath, []byte(renderedChangelog), changelogFilePermissionsConstant); writeError != nil {
		return BumpResult{}, fmt.Errorf(changelogWriteFailureTemplateConstant, changelogPath, writeError)
	}
	if metadataError := metadataStore.WriteVersion(newVersion); metadataError != nil {
		return BumpResult{}, metadataError
	}

	if stageError := service.repositoryGateway.StagePaths(executionContext, trimmedRepositoryPath, options.Configuration.MetadataPath, options.Configuration.ChangelogPath); stageError != nil {
		return BumpResult{}, stageError
	}

	tagName := options.Configuration.TagPrefix + newVersion.String()
	commitMessage := fmt.Sprintf(releaseCommitMessageTemplateConstant, tagName)
	if commitError := service.repositoryGateway.CreateCommit(executionContext, trimmedRepositoryPath, commitMessage, true); commitError != nil {
		return BumpResult{}, commitError
	}
	if tagError := service.repositoryGateway.CreateAnnotatedTag(executionContext, trimmedRepositoryPath, tagName, fmt.Sprintf(tagMessageTemplateConstant, tagName)); tagError != nil {
		return BumpResult{}, tagError
	}

	service.logger.Info(
		bumpCompletedMessageConstant,
		zap.String(previousVersionFieldConstant, currentVersion.String()),
		zap.String(newVersionFieldConstant, newVersion.String()),
		zap.String(tagNameFieldConstant, tagName),
	)

	return BumpResult{
		PreviousVersion: currentVersion,
		NewVersion:      newVersion,
		TagName:         tagName,
		CommitCount:     len(commitRecords),
	}, nil
}

func (service *Service) collectCommitsSinceRelease(executionContext context.Context, repositoryPath string, currentVersion semver.SemanticVersion, configuration Configuration) ([]conventional.CommitRecord, error) {
	previousTag := configuration.TagPrefix + currentVersion.String()
	sinceReference := ""
	tagPresent, tagError := service.repositoryGateway.TagExists(executionContext, repositoryPath, previousTag)
	if tagError != nil {
		return nil, tagError
	}
	if tagPresent {
		sinceReference = previousTag
	}

	logEntries, listError := service.repositoryGateway.ListCommitsSince(executionContext, repositoryPath, sinceReference)
	if listError != nil {
		return nil, listError
	}

	rawCommits := make([]conventional.RawCommit, 0, len(logEntries))
	for _, logEntry := range logEntries {
		rawCommits = append(rawCommits, conventional.RawCommit{Hash: logEntry.Hash, Message: logEntry.Message})
	}
	return service.commitParser.ParseCommits(rawCommits), nil
}
