package gitrepo_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/releasekit/internal/execshell"
	"github.com/temirov/releasekit/internal/gitrepo"
)

const (
	testRepositoryPathConstant = "/workspace/repo"
)

type recordingGitExecutor struct {
	recordedDetails []execshell.CommandDetails
	queuedOutputs   []string
	queuedErrors    []error
}

func (executor *recordingGitExecutor) ExecuteGit(_ context.Context, details execshell.CommandDetails) (execshell.ExecutionResult, error) {
	executor.recordedDetails = append(executor.recordedDetails, details)
	invocationIndex := len(executor.recordedDetails) - 1
	var executionError error
	if invocationIndex < len(executor.queuedErrors) {
		executionError = executor.queuedErrors[invocationIndex]
	}
	standardOutput := ""
	if invocationIndex < len(executor.queuedOutputs) {
		standardOutput = executor.queuedOutputs[invocationIndex]
	}
	return execshell.ExecutionResult{StandardOutput: standardOutput}, executionError
}

func TestNewRepositoryManagerRequiresExecutor(testInstance *testing.T) {
	_, constructionError := gitrepo.NewRepositoryManager(nil)

	require.ErrorIs(testInstance, constructionError, gitrepo.ErrExecutorNotConfigured)
}

func TestCheckCleanWorktreeInterpretsPorcelainOutput(testInstance *testing.T) {
	testCases := []struct {
		name           string
		porcelainLines string
		expectedClean  bool
	}{
		{name: "clean_tree", porcelainLines: "\n", expectedClean: true},
		{name: "dirty_tree", porcelainLines: " M internal/service.go\n?? notes.txt\n", expectedClean: false},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			executor := &recordingGitExecutor{queuedOutputs: []string{testCase.porcelainLines}}
			repositoryManager, constructionError := gitrepo.NewRepositoryManager(executor)
			require.NoError(testInstance, constructionError)

			cleanWorktree, checkError := repositoryManager.CheckCleanWorktree(context.Background(), testRepositoryPathConstant)

			require.NoError(testInstance, checkError)
			require.Equal(testInstance, testCase.expectedClean, cleanWorktree)
			require.Equal(testInstance, []string{"status", "--porcelain"}, executor.recordedDetails[0].Arguments)
			require.Equal(testInstance, testRepositoryPathConstant, executor.recordedDetails[0].WorkingDirectory)
		})
	}
}

func TestRepositoryManagerBuildsExpectedArguments(testInstance *testing.T) {
	executor := &recordingGitExecutor{queuedOutputs: []string{"", "", "", "", "", ""}}
	repositoryManager, constructionError := gitrepo.NewRepositoryManager(executor)
	require.NoError(testInstance, constructionError)
	executionContext := context.Background()

	require.NoError(testInstance, repositoryManager.ResetBranchToBase(executionContext, testRepositoryPathConstant, "release-candidate", "origin/main"))
	require.NoError(testInstance, repositoryManager.MergeNoFastForward(executionContext, testRepositoryPathConstant, "feat/widget"))
	require.NoError(testInstance, repositoryManager.PushBranchWithUpstream(executionContext, testRepositoryPathConstant, "origin", "release-candidate"))
	require.NoError(testInstance, repositoryManager.CreateCommit(executionContext, testRepositoryPathConstant, "chore(release): v1.3.0", true))
	require.NoError(testInstance, repositoryManager.CreateAnnotatedTag(executionContext, testRepositoryPathConstant, "v1.3.0", "Release v1.3.0"))
	require.NoError(testInstance, repositoryManager.StagePaths(executionContext, testRepositoryPathConstant, "project.yaml", "CHANGELOG.md"))

	require.Equal(testInstance, []string{"checkout", "-B", "release-candidate", "origin/main"}, executor.recordedDetails[0].Arguments)
	require.Equal(testInstance, []string{"merge", "--no-ff", "feat/widget"}, executor.recordedDetails[1].Arguments)
	require.Equal(testInstance, []string{"push", "-u", "origin", "release-candidate"}, executor.recordedDetails[2].Arguments)
	require.Equal(testInstance, []string{"commit", "--no-verify", "-m", "chore(release): v1.3.0"}, executor.recordedDetails[3].Arguments)
	require.Equal(testInstance, []string{"tag", "-a", "v1.3.0", "-m", "Release v1.3.0"}, executor.recordedDetails[4].Arguments)
	require.Equal(testInstance, []string{"add", "project.yaml", "CHANGELOG.md"}, executor.recordedDetails[5].Arguments)
}

func TestListCommitsSinceSplitsLogRecords(testInstance *testing.T) {
	logOutput := "abc1234\x1ffeat(table): add sorting\x1e" +
		"def5678\x1ffix: null check\n\nBREAKING CHANGE: field renamed\x1e"
	executor := &recordingGitExecutor{queuedOutputs: []string{logOutput}}
	repositoryManager, constructionError := gitrepo.NewRepositoryManager(executor)
	require.NoError(testInstance, constructionError)

	logEntries, listError := repositoryManager.ListCommitsSince(context.Background(), testRepositoryPathConstant, "v1.2.3")

	require.NoError(testInstance, listError)
	require.Equal(testInstance, []gitrepo.CommitLogEntry{
		{Hash: "abc1234", Message: "feat(table): add sorting"},
		{Hash: "def5678", Message: "fix: null check\n\nBREAKING CHANGE: field renamed"},
	}, logEntries)
	require.Equal(
		testInstance,
		[]string{"log", "--pretty=format:%h%x1f%B%x1e", "--no-merges", "v1.2.3..HEAD"},
		executor.recordedDetails[0].Arguments,
	)
}

func TestListCommitsSinceOmitsRangeWithoutReference(testInstance *testing.T) {
	executor := &recordingGitExecutor{queuedOutputs: []string{""}}
	repositoryManager, constructionError := gitrepo.NewRepositoryManager(executor)
	require.NoError(testInstance, constructionError)

	logEntries, listError := repositoryManager.ListCommitsSince(context.Background(), testRepositoryPathConstant, "")

	require.NoError(testInstance, listError)
	require.Empty(testInstance, logEntries)
	require.Equal(testInstance, []string{"log", "--pretty=format:%h%x1f%B%x1e", "--no-merges"}, executor.recordedDetails[0].Arguments)
}

func TestTagExistsMatchesExactName(testInstance *testing.T) {
	executor := &recordingGitExecutor{queuedOutputs: []string{"v1.2.3\n"}}
	repositoryManager, constructionError := gitrepo.NewRepositoryManager(executor)
	require.NoError(testInstance, constructionError)

	tagPresent, existsError := repositoryManager.TagExists(context.Background(), testRepositoryPathConstant, "v1.2.3")

	require.NoError(testInstance, existsError)
	require.True(testInstance, tagPresent)
	require.Equal(testInstance, []string{"tag", "-l", "v1.2.3"}, executor.recordedDetails[0].Arguments)
}

func TestCountCommitsAheadParsesRevListOutput(testInstance *testing.T) {
	executor := &recordingGitExecutor{queuedOutputs: []string{" 4\n"}}
	repositoryManager, constructionError := gitrepo.NewRepositoryManager(executor)
	require.NoError(testInstance, constructionError)

	aheadCount, countError := repositoryManager.CountCommitsAhead(context.Background(), testRepositoryPathConstant, "origin/main", "release-candidate")

	require.NoError(testInstance, countError)
	require.Equal(testInstance, 4, aheadCount)
	require.Equal(testInstance, []string{"rev-list", "--count", "origin/main..release-candidate"}, executor.recordedDetails[0].Arguments)
}

func TestListConflictingPathsTrimsOutput(testInstance *testing.T) {
	executor := &recordingGitExecutor{queuedOutputs: []string{"internal/service.go\n\nREADME.md\n"}}
	repositoryManager, constructionError := gitrepo.NewRepositoryManager(executor)
	require.NoError(testInstance, constructionError)

	conflictingPaths, listError := repositoryManager.ListConflictingPaths(context.Background(), testRepositoryPathConstant)

	require.NoError(testInstance, listError)
	require.Equal(testInstance, []string{"internal/service.go", "README.md"}, conflictingPaths)
	require.Equal(testInstance, []string{"diff", "--name-only", "--diff-filter=U"}, executor.recordedDetails[0].Arguments)
}
