package releases_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/temirov/releasekit/internal/gitrepo"
	"github.com/temirov/releasekit/internal/releases"
	"github.com/temirov/releasekit/internal/semver"
)

const (
	testMetadataContentConstant  = "name: demo-service\nversion: 1.2.3\n"
	testChangelogContentConstant = "## [1.2.3] - 2026-08-01\n\n### fix\n- earlier fix (8899aab)\n"
)

type gatewayStub struct {
	existingTags map[string]bool
	logEntries   []gitrepo.CommitLogEntry

	listedReferences []string
	stagedPaths      [][]string
	commitMessages   []string
	commitSkipHooks  []bool
	createdTags      [][2]string
}

func (stub *gatewayStub) TagExists(_ context.Context, _ string, tagName string) (bool, error) {
	return stub.existingTags[tagName], nil
}

func (stub *gatewayStub) ListCommitsSince(_ context.Context, _ string, sinceReference string) ([]gitrepo.CommitLogEntry, error) {
	stub.listedReferences = append(stub.listedReferences, sinceReference)
	return stub.logEntries, nil
}

func (stub *gatewayStub) StagePaths(_ context.Context, _ string, paths ...string) error {
	stub.stagedPaths = append(stub.stagedPaths, paths)
	return nil
}

func (stub *gatewayStub) CreateCommit(_ context.Context, _ string, commitMessage string, skipHooks bool) error {
	stub.commitMessages = append(stub.commitMessages, commitMessage)
	stub.commitSkipHooks = append(stub.commitSkipHooks, skipHooks)
	return nil
}

func (stub *gatewayStub) CreateAnnotatedTag(_ context.Context, _ string, tagName string, tagMessage string) error {
	stub.createdTags = append(stub.createdTags, [2]string{tagName, tagMessage})
	return nil
}

type fixedClock struct {
	instant time.Time
}

func (clock fixedClock) Now() time.Time {
	return clock.instant
}

func newRepository(testInstance *testing.T) string {
	repositoryPath := testInstance.TempDir()
	require.NoError(testInstance, os.WriteFile(filepath.Join(repositoryPath, "project.yaml"), []byte(testMetadataContentConstant), 0o644))
	require.NoError(testInstance, os.WriteFile(filepath.Join(repositoryPath, "CHANGELOG.md"), []byte(testChangelogContentConstant), 0o644))
	return repositoryPath
}

func newService(testInstance *testing.T, gateway releases.RepositoryGateway) *releases.Service {
	service, serviceError := releases.NewService(zap.NewNop(), gateway, fixedClock{instant: time.Date(2026, time.August, 30, 9, 0, 0, 0, time.UTC)})
	require.NoError(testInstance, serviceError)
	return service
}

func TestBumpResolvesVersionAndRecordsRelease(testInstance *testing.T) {
	repositoryPath := newRepository(testInstance)
	gateway := &gatewayStub{
		existingTags: map[string]bool{"v1.2.3": true},
		logEntries: []gitrepo.CommitLogEntry{
			{Hash: "abc1234", Message: "feat(table): add sorting"},
			{Hash: "def5678", Message: "fix: null check"},
		},
	}
	service := newService(testInstance, gateway)

	bumpResult, bumpError := service.Bump(context.Background(), releases.BumpOptions{
		RepositoryPath: repositoryPath,
		Configuration:  releases.DefaultConfiguration(),
	})

	require.NoError(testInstance, bumpError)
	require.Equal(testInstance, "1.2.3", bumpResult.PreviousVersion.String())
	require.Equal(testInstance, "1.3.0", bumpResult.NewVersion.String())
	require.Equal(testInstance, "v1.3.0", bumpResult.TagName)
	require.Equal(testInstance, []string{"v1.2.3"}, gateway.listedReferences)
	require.Equal(testInstance, [][]string{{"project.yaml", "CHANGELOG.md"}}, gateway.stagedPaths)
	require.Equal(testInstance, []string{"chore(release): v1.3.0"}, gateway.commitMessages)
	require.Equal(testInstance, []bool{true}, gateway.commitSkipHooks)
	require.Equal(testInstance, [][2]string{{"v1.3.0", "Release v1.3.0"}}, gateway.createdTags)

	rewrittenChangelog, readError := os.ReadFile(filepath.Join(repositoryPath, "CHANGELOG.md"))
	require.NoError(testInstance, readError)
	require.Equal(
		testInstance,
		"## [1.3.0] - 2026-08-30\n\n### feat\n- add sorting (abc1234)\n\n### fix\n- null check (def5678)\n\n"+testChangelogContentConstant,
		string(rewrittenChangelog),
	)

	currentVersion, versionError := service.CurrentVersion(repositoryPath, releases.DefaultConfiguration())
	require.NoError(testInstance, versionError)
	require.Equal(testInstance, "1.3.0", currentVersion.String())
}

func TestBumpListsFullHistoryWhenTagMissing(testInstance *testing.T) {
	repositoryPath := newRepository(testInstance)
	gateway := &gatewayStub{
		logEntries: []gitrepo.CommitLogEntry{{Hash: "abc1234", Message: "fix: null check"}},
	}
	service := newService(testInstance, gateway)

	_, bumpError := service.Bump(context.Background(), releases.BumpOptions{
		RepositoryPath: repositoryPath,
		Configuration:  releases.DefaultConfiguration(),
	})

	require.NoError(testInstance, bumpError)
	require.Equal(testInstance, []string{""}, gateway.listedReferences)
}

func TestBumpAbortsBeforeWritesWhenNothingToRelease(testInstance *testing.T) {
	repositoryPath := newRepository(testInstance)
	gateway := &gatewayStub{
		existingTags: map[string]bool{"v1.2.3": true},
		logEntries: []gitrepo.CommitLogEntry{
			{Hash: "abc1234", Message: "docs: clarify usage"},
			{Hash: "def5678", Message: "chore: tidy imports"},
		},
	}
	service := newService(testInstance, gateway)

	_, bumpError := service.Bump(context.Background(), releases.BumpOptions{
		RepositoryPath: repositoryPath,
		Configuration:  releases.DefaultConfiguration(),
	})

	require.ErrorIs(testInstance, bumpError, semver.ErrNothingToRelease)
	require.Empty(testInstance, gateway.stagedPaths)
	require.Empty(testInstance, gateway.commitMessages)

	untouchedChangelog, readError := os.ReadFile(filepath.Join(repositoryPath, "CHANGELOG.md"))
	require.NoError(testInstance, readError)
	require.Equal(testInstance, testChangelogContentConstant, string(untouchedChangelog))

	currentVersion, versionError := service.CurrentVersion(repositoryPath, releases.DefaultConfiguration())
	require.NoError(testInstance, versionError)
	require.Equal(testInstance, "1.2.3", currentVersion.String())
}

func TestBumpHonorsOverrideWithMaintenanceCommits(testInstance *testing.T) {
	repositoryPath := newRepository(testInstance)
	gateway := &gatewayStub{
		existingTags: map[string]bool{"v1.2.3": true},
		logEntries:   []gitrepo.CommitLogEntry{{Hash: "abc1234", Message: "chore: tidy imports"}},
	}
	service := newService(testInstance, gateway)
	overridePart := semver.BumpPartMajor

	bumpResult, bumpError := service.Bump(context.Background(), releases.BumpOptions{
		RepositoryPath: repositoryPath,
		OverridePart:   &overridePart,
		Configuration:  releases.DefaultConfiguration(),
	})

	require.NoError(testInstance, bumpError)
	require.Equal(testInstance, "2.0.0", bumpResult.NewVersion.String())
	require.Equal(testInstance, "v2.0.0", bumpResult.TagName)
}

func TestBumpRejectsDuplicateChangelogVersion(testInstance *testing.T) {
	repositoryPath := newRepository(testInstance)
	gateway := &gatewayStub{
		existingTags: map[string]bool{"v1.2.3": true},
		logEntries:   []gitrepo.CommitLogEntry{{Hash: "abc1234", Message: "fix: null check"}},
	}
	require.NoError(testInstance, os.WriteFile(
		filepath.Join(repositoryPath, "CHANGELOG.md"),
		[]byte("## [1.2.4] - 2026-08-29\n\n### fix\n- premature entry (0000000)\n"),
		0o644,
	))
	service := newService(testInstance, gateway)

	_, bumpError := service.Bump(context.Background(), releases.BumpOptions{
		RepositoryPath: repositoryPath,
		Configuration:  releases.DefaultConfiguration(),
	})

	require.Error(testInstance, bumpError)
	require.Empty(testInstance, gateway.commitMessages)

	currentVersion, versionError := service.CurrentVersion(repositoryPath, releases.DefaultConfiguration())
	require.NoError(testInstance, versionError)
	require.Equal(testInstance, "1.2.3", currentVersion.String())
}
