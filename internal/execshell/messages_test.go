package execshell

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBuildStartedMessageForRebaseNamesTargetBranch(t *testing.T) {
	formatter := CommandMessageFormatter{}
	command := ShellCommand{
		Name: CommandGit,
		Details: CommandDetails{
			Arguments:        []string{"rebase", "release-candidate"},
			WorkingDirectory: "/workspace/repo",
		},
	}

	message := formatter.BuildStartedMessage(command)

	require.Equal(t, "Rebasing onto release-candidate in /workspace/repo", message)
}

func TestBuildStartedMessageForFetchWithoutRemoteUsesAllRemotesLabel(t *testing.T) {
	formatter := CommandMessageFormatter{}
	command := ShellCommand{
		Name: CommandGit,
		Details: CommandDetails{
			Arguments:        []string{"fetch", "--all"},
			WorkingDirectory: "/workspace/repo",
		},
	}

	message := formatter.BuildStartedMessage(command)

	require.Equal(t, "Fetching from all remotes in /workspace/repo", message)
}

func TestBuildFailureMessageForMergeIncludesExitCodeAndStandardError(t *testing.T) {
	formatter := CommandMessageFormatter{}
	command := ShellCommand{
		Name: CommandGit,
		Details: CommandDetails{
			Arguments:        []string{"merge", "--no-ff", "feat/widget"},
			WorkingDirectory: "/workspace/repo",
		},
	}

	message := formatter.BuildFailureMessage(command, ExecutionResult{ExitCode: 1, StandardError: "merge conflict"})

	require.Equal(t, "Failed to merge feat/widget in /workspace/repo (exit code 1: merge conflict)", message)
}

func TestBuildStartedMessageForPullRequestCreateNamesBranches(t *testing.T) {
	formatter := CommandMessageFormatter{}
	command := ShellCommand{
		Name: CommandGitHub,
		Details: CommandDetails{
			Arguments: []string{"pr", "create", "--base", "main", "--head", "release-candidate", "--title", "Release v1.2.3"},
		},
	}

	message := formatter.BuildStartedMessage(command)

	require.Equal(t, "Opening pull request from release-candidate to main", message)
}

func TestBuildStartedMessageForTagSkipsMessageFlagValue(t *testing.T) {
	formatter := CommandMessageFormatter{}
	command := ShellCommand{
		Name: CommandGit,
		Details: CommandDetails{
			Arguments:        []string{"tag", "-a", "v1.2.3", "-m", "Release v1.2.3"},
			WorkingDirectory: "/workspace/repo",
		},
	}

	message := formatter.BuildStartedMessage(command)

	require.Equal(t, "Creating tag v1.2.3 in /workspace/repo", message)
}
