package finalize

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/temirov/releasekit/internal/branches"
)

const (
	commandUseConstant                        = "branch-finalize"
	commandShortDescriptionConstant           = "Merge the current branch into the release candidate and push"
	commandLongDescriptionConstant            = "branch-finalize merges the current feature branch into release-candidate with a merge commit and pushes the candidate. The branch must already be rebased onto the candidate's tip."
	commandExecutionErrorTemplateConstant     = "branch finalization failed: %w"
	finalizedMessageTemplateConstant          = "Merged %q into %s and pushed.\n"
	finalizedNotPushedMessageTemplateConstant = "Merged %q into %s. Push with: git push -u %s %s\n"
)

// LoggerProvider yields a zap logger for command execution.
type LoggerProvider func() *zap.Logger

// CommandBuilder assembles the branch-finalize command.
type CommandBuilder struct {
	LoggerProvider               LoggerProvider
	GitExecutor                  branches.GitExecutor
	RepositoryGateway            branches.RepositoryGateway
	HumanReadableLoggingProvider func() bool
	ConfigurationProvider        func() branches.WorkflowConfiguration
	WorkingDirectory             string
}

// Build constructs the branch-finalize command.
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

	finalizeResult, finalizeError := service.Finalize(command.Context(), Options{
		RepositoryPath: builder.resolveWorkingDirectory(),
		Configuration:  configuration,
	})
	if finalizeError != nil {
		return fmt.Errorf(commandExecutionErrorTemplateConstant, finalizeError)
	}

	if finalizeResult.Pushed {
		fmt.Fprintf(command.OutOrStdout(), finalizedMessageTemplateConstant, finalizeResult.BranchName, configuration.CandidateBranch)
	} else {
		fmt.Fprintf(command.OutOrStdout(), finalizedNotPushedMessageTemplateConstant, finalizeResult.BranchName, configuration.CandidateBranch, configuration.RemoteName, configuration.CandidateBranch)
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
