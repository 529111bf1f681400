package rebase

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/temirov/releasekit/internal/branches"
)

const (
	commandUseConstant                      = "branch-rebase"
	commandShortDescriptionConstant         = "Rebase the current branch onto the release candidate"
	commandLongDescriptionConstant          = "branch-rebase refreshes release-candidate from its best available base and replays the current feature branch on top of it, then pushes the result."
	commandExecutionErrorTemplateConstant   = "branch rebase failed: %w"
	rebasedMessageTemplateConstant          = "Rebased %q onto %s and pushed.\n"
	rebasedNotPushedMessageTemplateConstant = "Rebased %q onto %s. Push with: git push --force-with-lease\n"
)

// LoggerProvider yields a zap logger for command execution.
type LoggerProvider func() *zap.Logger

// CommandBuilder assembles the branch-rebase command.
type CommandBuilder struct {
	LoggerProvider               LoggerProvider
	GitExecutor                  branches.GitExecutor
	RepositoryGateway            branches.RepositoryGateway
	HumanReadableLoggingProvider func() bool
	ConfigurationProvider        func() branches.WorkflowConfiguration
	WorkingDirectory             string
}

// Build constructs the branch-rebase command.
func (builder *CommandBuilder) Build() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:   commandUseConstant,
		Short: commandShortDescriptionConstant,
		Long:  commandLongDescriptionConstant,
		Args:  cobra.NoArgs,
		RunE:  builder.run,
	}

	return command, nil
}

func (builder *CommandBuilder) run(command *cobra.Command, _ []string) error {
	configuration := builder.resolveConfiguration()
	logger := builder.resolveLogger()
	repositoryGateway, gatewayError := builder.resolveRepositoryGateway(logger)
	if gatewayError != nil {
		return gatewayError
	}

	service, serviceError := NewService(logger, repositoryGateway)
	if serviceError != nil {
		return serviceError
	}

	rebaseResult, rebaseError := service.Rebase(command.Context(), Options{
		RepositoryPath: builder.resolveWorkingDirectory(),
		Configuration:  configuration,
	})
	if rebaseError != nil {
		return fmt.Errorf(commandExecutionErrorTemplateConstant, rebaseError)
	}

	if rebaseResult.Pushed {
		fmt.Fprintf(command.OutOrStdout(), rebasedMessageTemplateConstant, rebaseResult.BranchName, configuration.CandidateBranch)
	} else {
		fmt.Fprintf(command.OutOrStdout(), rebasedNotPushedMessageTemplateConstant, rebaseResult.BranchName, configuration.CandidateBranch)
	}

	return nil
}

func (builder *CommandBuilder) resolveConfiguration() branches.WorkflowConfiguration {
	if builder.ConfigurationProvider == nil {
		return branches.DefaultWorkflowConfiguration()
	}
	return builder.ConfigurationProvider().Sanitize()
}

func (builder *CommandBuilder) resolveLogger() *zap.Logger {
	if builder.LoggerProvider == nil {
		return zap.NewNop()
	}
	logger := builder.LoggerProvider()
	if logger == nil {
		return zap.NewNop()
	}
	return logger
}

func (builder *CommandBuilder) resolveRepositoryGateway(logger *zap.Logger) (branches.RepositoryGateway, error) {
	humanReadableLogging := false
	if builder.HumanReadableLoggingProvider != nil {
		humanReadableLogging = builder.HumanReadableLoggingProvider()
	}
	gitExecutor, executorError := branches.ResolveGitExecutor(builder.GitExecutor, logger, humanReadableLogging)
	if executorError != nil {
		return nil, executorError
	}
	return branches.ResolveRepositoryGateway(builder.RepositoryGateway, gitExecutor)
}

func (builder *CommandBuilder) resolveWorkingDirectory() string {
	if len(builder.WorkingDirectory) > 0 {
		return builder.WorkingDirectory
	}
	if workingDirectory, workingDirectoryError := os.Getwd(); workingDirectoryError == nil {
		return workingDirectory
	}
	return "."
}
