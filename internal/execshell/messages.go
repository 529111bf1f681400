package execshell

import (
	"fmt"
	"strings"
)

type messageStage int

const (
	messageStageStart messageStage = iota
	messageStageSuccess
	messageStageFailure
	messageStageExecutionFailure
)

const (
	genericStartTemplateConstant            = "Running %s"
	genericSuccessTemplateConstant          = "Completed %s"
	genericFailureTemplateConstant          = "%s failed with exit code %d%s"
	genericExecutionFailureTemplateConstant = "%s failed: %s"
	commandLabelTemplateConstant            = "%s%s"
	workingDirectorySuffixTemplateConstant  = " (in %s)"
	commandArgumentsJoinSeparatorConstant   = " "
	standardErrorSuffixTemplateConstant     = ": %s"
	unknownFailureMessageConstant           = "unknown error"
	emptyStringConstant                     = ""
	defaultWorkingDirectoryLabelConstant    = "current directory"
	fallbackUnknownValueLabelConstant       = "unknown"
)

const (
	gitStatusSubcommandNameConstant   = "status"
	gitCheckoutSubcommandNameConstant = "checkout"
	gitFetchSubcommandNameConstant    = "fetch"
	gitPushSubcommandNameConstant     = "push"
	gitRebaseSubcommandNameConstant   = "rebase"
	gitMergeSubcommandNameConstant    = "merge"
	gitTagSubcommandNameConstant      = "tag"
	gitCommitSubcommandNameConstant   = "commit"
	gitLogSubcommandNameConstant      = "log"
	gitMessageFlagConstant            = "-m"
	gitForceCheckoutFlagConstant      = "-B"
)

const (
	gitStatusStartTemplateConstant            = "Reviewing working tree status in %s"
	gitStatusSuccessTemplateConstant          = "Collected working tree status for %s"
	gitStatusFailureTemplateConstant          = "Failed to review working tree status in %s (exit code %d%s)"
	gitStatusExecutionFailureTemplateConstant = "Unable to review working tree status in %s: %s"

	gitCheckoutStartTemplateConstant            = "Switching %s to branch %s"
	gitCheckoutSuccessTemplateConstant          = "%s now on branch %s"
	gitCheckoutFailureTemplateConstant          = "Failed to switch %s to branch %s (exit code %d%s)"
	gitCheckoutExecutionFailureTemplateConstant = "Unable to switch %s to branch %s: %s"

	gitFetchStartTemplateConstant            = "Fetching from %s in %s"
	gitFetchSuccessTemplateConstant          = "Fetched from %s in %s"
	gitFetchFailureTemplateConstant          = "Failed to fetch from %s in %s (exit code %d%s)"
	gitFetchExecutionFailureTemplateConstant = "Unable to fetch from %s in %s: %s"
	gitFetchAllRemotesLabelConstant          = "all remotes"

	gitPushStartTemplateConstant            = "Pushing %s to %s from %s"
	gitPushSuccessTemplateConstant          = "Pushed %s to %s from %s"
	gitPushFailureTemplateConstant          = "Failed to push %s to %s from %s (exit code %d%s)"
	gitPushExecutionFailureTemplateConstant = "Unable to push %s to %s from %s: %s"

	gitRebaseStartTemplateConstant            = "Rebasing onto %s in %s"
	gitRebaseSuccessTemplateConstant          = "Rebased onto %s in %s"
	gitRebaseFailureTemplateConstant          = "Failed to rebase onto %s in %s (exit code %d%s)"
	gitRebaseExecutionFailureTemplateConstant = "Unable to rebase onto %s in %s: %s"

	gitMergeStartTemplateConstant            = "Merging %s in %s"
	gitMergeSuccessTemplateConstant          = "Merged %s in %s"
	gitMergeFailureTemplateConstant          = "Failed to merge %s in %s (exit code %d%s)"
	gitMergeExecutionFailureTemplateConstant = "Unable to merge %s in %s: %s"

	gitTagStartTemplateConstant            = "Creating tag %s in %s"
	gitTagSuccessTemplateConstant          = "Created tag %s in %s"
	gitTagFailureTemplateConstant          = "Failed to create tag %s in %s (exit code %d%s)"
	gitTagExecutionFailureTemplateConstant = "Unable to create tag %s in %s: %s"

	gitCommitStartTemplateConstant            = "Creating commit in %s with message %q"
	gitCommitSuccessTemplateConstant          = "Created commit in %s with message %q"
	gitCommitFailureTemplateConstant          = "Failed to create commit in %s with message %q (exit code %d%s)"
	gitCommitExecutionFailureTemplateConstant = "Unable to create commit in %s with message %q: %s"

	gitLogStartTemplateConstant            = "Collecting commit history in %s"
	gitLogSuccessTemplateConstant          = "Collected commit history in %s"
	gitLogFailureTemplateConstant          = "Failed to collect commit history in %s (exit code %d%s)"
	gitLogExecutionFailureTemplateConstant = "Unable to collect commit history in %s: %s"
)

const (
	githubPullRequestSubcommandNameConstant       = "pr"
	githubPullRequestCreateSubcommandNameConstant = "create"
	githubAPICommandNameConstant                  = "api"
	githubBaseFlagConstant                        = "--base"
	githubHeadFlagConstant                        = "--head"
	githubMethodFlagConstant                      = "-X"
	githubBranchesEndpointSubstringConstant       = "/branches/"
	githubProtectionEndpointSuffixConstant        = "/protection"
)

const (
	githubPullRequestCreateStartTemplateConstant            = "Opening pull request from %s to %s"
	githubPullRequestCreateSuccessTemplateConstant          = "Opened pull request from %s to %s"
	githubPullRequestCreateFailureTemplateConstant          = "Failed to open pull request from %s to %s (exit code %d%s)"
	githubPullRequestCreateExecutionFailureTemplateConstant = "Unable to open pull request from %s to %s: %s"

	githubBranchProtectionStartTemplateConstant            = "Updating branch protection for %s on %s"
	githubBranchProtectionSuccessTemplateConstant          = "Updated branch protection for %s on %s"
	githubBranchProtectionFailureTemplateConstant          = "Failed to update branch protection for %s on %s (exit code %d%s)"
	githubBranchProtectionExecutionFailureTemplateConstant = "Unable to update branch protection for %s on %s: %s"
)

// CommandMessageFormatter builds human-readable messages for command lifecycle events.
type CommandMessageFormatter struct{}

// BuildStartedMessage formats the message describing a command about to run.
func (formatter CommandMessageFormatter) BuildStartedMessage(command ShellCommand) string {
	return formatter.buildMessage(command, ExecutionResult{}, nil, messageStageStart)
}

// BuildSuccessMessage formats the message describing a completed command with a zero exit code.
func (formatter CommandMessageFormatter) BuildSuccessMessage(command ShellCommand) string {
	return formatter.buildMessage(command, ExecutionResult{}, nil, messageStageSuccess)
}

// BuildFailureMessage formats the message describing a command that returned a non-zero exit code.
func (formatter CommandMessageFormatter) BuildFailureMessage(command ShellCommand, result ExecutionResult) string {
	return formatter.buildMessage(command, result, nil, messageStageFailure)
}

// BuildExecutionFailureMessage formats the message describing an unexpected execution failure.
func (formatter CommandMessageFormatter) BuildExecutionFailureMessage(command ShellCommand, failure error) string {
	return formatter.buildMessage(command, ExecutionResult{}, failure, messageStageExecutionFailure)
}

func (formatter CommandMessageFormatter) buildMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	switch command.Name {
	case CommandGit:
		return formatter.describeGitMessage(command, result, failure, stage)
	case CommandGitHub:
		return formatter.describeGitHubMessage(command, result, failure, stage)
	default:
		return formatter.buildGenericMessage(command, result, failure, stage)
	}
}

func (formatter CommandMessageFormatter) describeGitMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	if len(command.Details.Arguments) == 0 {
		return formatter.buildGenericMessage(command, result, failure, stage)
	}

	subcommand := strings.TrimSpace(command.Details.Arguments[0])
	switch subcommand {
	case gitStatusSubcommandNameConstant:
		return formatter.describeSingleTargetMessage(command, result, failure, stage, singleTargetTemplates{
			start:            gitStatusStartTemplateConstant,
			success:          gitStatusSuccessTemplateConstant,
			failureTemplate:  gitStatusFailureTemplateConstant,
			executionFailure: gitStatusExecutionFailureTemplateConstant,
		}, emptyStringConstant)
	case gitCheckoutSubcommandNameConstant:
		return formatter.describeTargetedMessage(command, result, failure, stage, targetedTemplates{
			start:            gitCheckoutStartTemplateConstant,
			success:          gitCheckoutSuccessTemplateConstant,
			failureTemplate:  gitCheckoutFailureTemplateConstant,
			executionFailure: gitCheckoutExecutionFailureTemplateConstant,
		}, formatter.extractCheckoutBranch(command.Details.Arguments), true)
	case gitFetchSubcommandNameConstant:
		remoteName := formatter.extractFirstNonFlagArgument(command.Details.Arguments[1:])
		if len(remoteName) == 0 {
			remoteName = gitFetchAllRemotesLabelConstant
		}
		return formatter.describeTargetedMessage(command, result, failure, stage, targetedTemplates{
			start:            gitFetchStartTemplateConstant,
			success:          gitFetchSuccessTemplateConstant,
			failureTemplate:  gitFetchFailureTemplateConstant,
			executionFailure: gitFetchExecutionFailureTemplateConstant,
		}, remoteName, false)
	case gitPushSubcommandNameConstant:
		return formatter.describeGitPushMessage(command, result, failure, stage)
	case gitRebaseSubcommandNameConstant:
		return formatter.describeTargetedMessage(command, result, failure, stage, targetedTemplates{
			start:            gitRebaseStartTemplateConstant,
			success:          gitRebaseSuccessTemplateConstant,
			failureTemplate:  gitRebaseFailureTemplateConstant,
			executionFailure: gitRebaseExecutionFailureTemplateConstant,
		}, formatter.extractFirstNonFlagArgument(command.Details.Arguments[1:]), false)
	case gitMergeSubcommandNameConstant:
		return formatter.describeTargetedMessage(command, result, failure, stage, targetedTemplates{
			start:            gitMergeStartTemplateConstant,
			success:          gitMergeSuccessTemplateConstant,
			failureTemplate:  gitMergeFailureTemplateConstant,
			executionFailure: gitMergeExecutionFailureTemplateConstant,
		}, formatter.extractLastNonFlagArgument(command.Details.Arguments[1:]), false)
	case gitTagSubcommandNameConstant:
		return formatter.describeTargetedMessage(command, result, failure, stage, targetedTemplates{
			start:            gitTagStartTemplateConstant,
			success:          gitTagSuccessTemplateConstant,
			failureTemplate:  gitTagFailureTemplateConstant,
			executionFailure: gitTagExecutionFailureTemplateConstant,
		}, formatter.extractTagName(command.Details.Arguments), false)
	case gitCommitSubcommandNameConstant:
		return formatter.describeGitCommitMessage(command, result, failure, stage)
	case gitLogSubcommandNameConstant:
		return formatter.describeSingleTargetMessage(command, result, failure, stage, singleTargetTemplates{
			start:            gitLogStartTemplateConstant,
			success:          gitLogSuccessTemplateConstant,
			failureTemplate:  gitLogFailureTemplateConstant,
			executionFailure: gitLogExecutionFailureTemplateConstant,
		}, emptyStringConstant)
	default:
		return formatter.buildGenericMessage(command, result, failure, stage)
	}
}

type singleTargetTemplates struct {
	start            string
	success          string
	failureTemplate  string
	executionFailure string
}

func (formatter CommandMessageFormatter) describeSingleTargetMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage, templates singleTargetTemplates, _ string) string {
	workingDirectory := formatter.describeWorkingDirectory(command)
	switch stage {
	case messageStageStart:
		return fmt.Sprintf(templates.start, workingDirectory)
	case messageStageSuccess:
		return fmt.Sprintf(templates.success, workingDirectory)
	case messageStageFailure:
		return fmt.Sprintf(templates.failureTemplate, workingDirectory, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
	case messageStageExecutionFailure:
		return fmt.Sprintf(templates.executionFailure, workingDirectory, formatter.describeFailure(failure))
	default:
		return formatter.buildGenericMessage(command, result, failure, stage)
	}
}

type targetedTemplates struct {
	start            string
	success          string
	failureTemplate  string
	executionFailure string
}

func (formatter CommandMessageFormatter) describeTargetedMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage, templates targetedTemplates, target string, directoryFirst bool) string {
	workingDirectory := formatter.describeWorkingDirectory(command)
	targetLabel := formatter.ensureValue(target)

	first, second := targetLabel, workingDirectory
	if directoryFirst {
		first, second = workingDirectory, targetLabel
	}

	switch stage {
	case messageStageStart:
		return fmt.Sprintf(templates.start, first, second)
	case messageStageSuccess:
		return fmt.Sprintf(templates.success, first, second)
	case messageStageFailure:
		return fmt.Sprintf(templates.failureTemplate, first, second, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
	case messageStageExecutionFailure:
		return fmt.Sprintf(templates.executionFailure, first, second, formatter.describeFailure(failure))
	default:
		return formatter.buildGenericMessage(command, result, failure, stage)
	}
}

func (formatter CommandMessageFormatter) describeGitPushMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	workingDirectory := formatter.describeWorkingDirectory(command)
	arguments := command.Details.Arguments[1:]
	remoteName := formatter.ensureValue(formatter.extractFirstNonFlagArgument(arguments))
	branchReference := formatter.ensureValue(formatter.extractSecondNonFlagArgument(arguments))

	switch stage {
	case messageStageStart:
		return fmt.Sprintf(gitPushStartTemplateConstant, branchReference, remoteName, workingDirectory)
	case messageStageSuccess:
		return fmt.Sprintf(gitPushSuccessTemplateConstant, branchReference, remoteName, workingDirectory)
	case messageStageFailure:
		return fmt.Sprintf(gitPushFailureTemplateConstant, branchReference, remoteName, workingDirectory, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
	case messageStageExecutionFailure:
		return fmt.Sprintf(gitPushExecutionFailureTemplateConstant, branchReference, remoteName, workingDirectory, formatter.describeFailure(failure))
	default:
		return formatter.buildGenericMessage(command, result, failure, stage)
	}
}

func (formatter CommandMessageFormatter) describeGitCommitMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	workingDirectory := formatter.describeWorkingDirectory(command)
	commitMessage := formatter.extractFlagValue(command.Details.Arguments, gitMessageFlagConstant)
	if len(commitMessage) == 0 {
		commitMessage = fallbackUnknownValueLabelConstant
	}
	switch stage {
	case messageStageStart:
		return fmt.Sprintf(gitCommitStartTemplateConstant, workingDirectory, commitMessage)
	case messageStageSuccess:
		return fmt.Sprintf(gitCommitSuccessTemplateConstant, workingDirectory, commitMessage)
	case messageStageFailure:
		return fmt.Sprintf(gitCommitFailureTemplateConstant, workingDirectory, commitMessage, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
	case messageStageExecutionFailure:
		return fmt.Sprintf(gitCommitExecutionFailureTemplateConstant, workingDirectory, commitMessage, formatter.describeFailure(failure))
	default:
		return formatter.buildGenericMessage(command, result, failure, stage)
	}
}

func (formatter CommandMessageFormatter) describeGitHubMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	arguments := command.Details.Arguments
	if len(arguments) < 2 {
		return formatter.buildGenericMessage(command, result, failure, stage)
	}

	primaryArgument := strings.TrimSpace(arguments[0])
	secondaryArgument := strings.TrimSpace(arguments[1])

	if primaryArgument == githubPullRequestSubcommandNameConstant && secondaryArgument == githubPullRequestCreateSubcommandNameConstant {
		headBranch := formatter.ensureValue(formatter.extractFlagValue(arguments, githubHeadFlagConstant))
		baseBranch := formatter.ensureValue(formatter.extractFlagValue(arguments, githubBaseFlagConstant))
		switch stage {
		case messageStageStart:
			return fmt.Sprintf(githubPullRequestCreateStartTemplateConstant, headBranch, baseBranch)
		case messageStageSuccess:
			return fmt.Sprintf(githubPullRequestCreateSuccessTemplateConstant, headBranch, baseBranch)
		case messageStageFailure:
			return fmt.Sprintf(githubPullRequestCreateFailureTemplateConstant, headBranch, baseBranch, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
		case messageStageExecutionFailure:
			return fmt.Sprintf(githubPullRequestCreateExecutionFailureTemplateConstant, headBranch, baseBranch, formatter.describeFailure(failure))
		}
	}

	if primaryArgument == githubAPICommandNameConstant && strings.Contains(secondaryArgument, githubProtectionEndpointSuffixConstant) && strings.Contains(secondaryArgument, githubBranchesEndpointSubstringConstant) {
		repository, branch := formatter.extractRepositoryAndBranchFromProtectionEndpoint(secondaryArgument)
		switch stage {
		case messageStageStart:
			return fmt.Sprintf(githubBranchProtectionStartTemplateConstant, branch, repository)
		case messageStageSuccess:
			return fmt.Sprintf(githubBranchProtectionSuccessTemplateConstant, branch, repository)
		case messageStageFailure:
			return fmt.Sprintf(githubBranchProtectionFailureTemplateConstant, branch, repository, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
		case messageStageExecutionFailure:
			return fmt.Sprintf(githubBranchProtectionExecutionFailureTemplateConstant, branch, repository, formatter.describeFailure(failure))
		}
	}

	return formatter.buildGenericMessage(command, result, failure, stage)
}

func (formatter CommandMessageFormatter) buildGenericMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	commandLabel := formatter.formatCommandLabel(command)
	switch stage {
	case messageStageStart:
		return fmt.Sprintf(genericStartTemplateConstant, commandLabel)
	case messageStageSuccess:
		return fmt.Sprintf(genericSuccessTemplateConstant, commandLabel)
	case messageStageFailure:
		return fmt.Sprintf(genericFailureTemplateConstant, commandLabel, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
	case messageStageExecutionFailure:
		return fmt.Sprintf(genericExecutionFailureTemplateConstant, commandLabel, formatter.describeFailure(failure))
	default:
		return emptyStringConstant
	}
}

func (formatter CommandMessageFormatter) formatCommandLabel(command ShellCommand) string {
	commandLabel := string(command.Name)
	if len(command.Details.Arguments) > 0 {
		commandLabel = fmt.Sprintf("%s %s", commandLabel, strings.Join(command.Details.Arguments, commandArgumentsJoinSeparatorConstant))
	}
	workingDirectorySuffix := formatter.formatWorkingDirectorySuffix(command)
	return fmt.Sprintf(commandLabelTemplateConstant, commandLabel, workingDirectorySuffix)
}

func (formatter CommandMessageFormatter) formatWorkingDirectorySuffix(command ShellCommand) string {
	trimmedWorkingDirectory := strings.TrimSpace(command.Details.WorkingDirectory)
	if len(trimmedWorkingDirectory) == 0 {
		return emptyStringConstant
	}
	return fmt.Sprintf(workingDirectorySuffixTemplateConstant, trimmedWorkingDirectory)
}

func (formatter CommandMessageFormatter) formatStandardErrorSuffix(standardError string) string {
	trimmedStandardError := strings.TrimSpace(standardError)
	if len(trimmedStandardError) == 0 {
		return emptyStringConstant
	}
	return fmt.Sprintf(standardErrorSuffixTemplateConstant, trimmedStandardError)
}

func (formatter CommandMessageFormatter) describeWorkingDirectory(command ShellCommand) string {
	trimmedWorkingDirectory := strings.TrimSpace(command.Details.WorkingDirectory)
	if len(trimmedWorkingDirectory) == 0 {
		return defaultWorkingDirectoryLabelConstant
	}
	return trimmedWorkingDirectory
}

func (formatter CommandMessageFormatter) describeFailure(failure error) string {
	if failure == nil {
		return unknownFailureMessageConstant
	}
	return failure.Error()
}

func (formatter CommandMessageFormatter) ensureValue(value string) string {
	trimmed := strings.TrimSpace(value)
	if len(trimmed) == 0 {
		return fallbackUnknownValueLabelConstant
	}
	return trimmed
}

func (formatter CommandMessageFormatter) extractCheckoutBranch(arguments []string) string {
	remainder := arguments[1:]
	for argumentIndex := 0; argumentIndex < len(remainder); argumentIndex++ {
		trimmedArgument := strings.TrimSpace(remainder[argumentIndex])
		if len(trimmedArgument) == 0 || trimmedArgument == gitForceCheckoutFlagConstant {
			continue
		}
		if strings.HasPrefix(trimmedArgument, "-") {
			continue
		}
		return trimmedArgument
	}
	return emptyStringConstant
}

func (formatter CommandMessageFormatter) extractTagName(arguments []string) string {
	remainder := arguments[1:]
	for argumentIndex := 0; argumentIndex < len(remainder); argumentIndex++ {
		trimmedArgument := strings.TrimSpace(remainder[argumentIndex])
		if trimmedArgument == gitMessageFlagConstant {
			argumentIndex++
			continue
		}
		if len(trimmedArgument) == 0 || strings.HasPrefix(trimmedArgument, "-") {
			continue
		}
		return trimmedArgument
	}
	return emptyStringConstant
}

func (formatter CommandMessageFormatter) extractFirstNonFlagArgument(arguments []string) string {
	for _, argument := range arguments {
		trimmedArgument := strings.TrimSpace(argument)
		if len(trimmedArgument) == 0 || strings.HasPrefix(trimmedArgument, "-") {
			continue
		}
		return trimmedArgument
	}
	return emptyStringConstant
}

func (formatter CommandMessageFormatter) extractSecondNonFlagArgument(arguments []string) string {
	matchedFirst := false
	for _, argument := range arguments {
		trimmedArgument := strings.TrimSpace(argument)
		if len(trimmedArgument) == 0 || strings.HasPrefix(trimmedArgument, "-") {
			continue
		}
		if !matchedFirst {
			matchedFirst = true
			continue
		}
		return trimmedArgument
	}
	return emptyStringConstant
}

func (formatter CommandMessageFormatter) extractLastNonFlagArgument(arguments []string) string {
	for argumentIndex := len(arguments) - 1; argumentIndex >= 0; argumentIndex-- {
		trimmedArgument := strings.TrimSpace(arguments[argumentIndex])
		if len(trimmedArgument) == 0 || strings.HasPrefix(trimmedArgument, "-") {
			continue
		}
		return trimmedArgument
	}
	return emptyStringConstant
}

func (formatter CommandMessageFormatter) extractFlagValue(arguments []string, flag string) string {
	for argumentIndex := 0; argumentIndex < len(arguments); argumentIndex++ {
		if strings.TrimSpace(arguments[argumentIndex]) == flag && argumentIndex+1 < len(arguments) {
			return strings.TrimSpace(arguments[argumentIndex+1])
		}
	}
	return emptyStringConstant
}

func (formatter CommandMessageFormatter) extractRepositoryAndBranchFromProtectionEndpoint(endpoint string) (string, string) {
	trimmedEndpoint := strings.TrimPrefix(strings.TrimSpace(endpoint), "repos/")
	endpointParts := strings.Split(trimmedEndpoint, "/")
	if len(endpointParts) < 4 {
		return fallbackUnknownValueLabelConstant, fallbackUnknownValueLabelConstant
	}
	return strings.Join(endpointParts[:2], "/"), endpointParts[3]
}
