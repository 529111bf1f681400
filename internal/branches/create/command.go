package create

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/temirov/releasekit/internal/branches"
)

const (
	commandUseConstant                    = "branch-create <tag/topic>"
	commandShortDescriptionConstant       = "Create a feature branch from the release candidate"
	commandLongDescriptionConstant        = "branch-create checks out a new tag/topic branch from the release-candidate tip and pushes it with an upstream. The working tree must be clean and release-candidate must be checked out."
	commandExecutionErrorTemplateConstant = "branch creation failed: %w"
	missingBranchArgumentMessageConstant  = "branch name required; supply one argument of the form <tag>/<topic>"
	createdMessageTemplateConstant        = "Created and pushed branch %q from %s.\n"
	createdLocallyMessageTemplateConstant = "Created branch %q from %s. Push manually with: git push -u %s %s\n"
)

// LoggerProvider yields a zap logger for command execution.
type LoggerProvider func() *zap.Logger

// CommandBuilder assembles the branch-create command.
type CommandBuilder struct {
	LoggerProvider               LoggerProvider
	GitExecutor                  branches.GitExecutor
	RepositoryGateway            branches.RepositoryGateway
	HumanReadableLoggingProvider func() bool
	ConfigurationProvider        func() branches.WorkflowConfiguration
	WorkingDirectory             string
}

// Build constructs the branch-create command.
func (builder *CommandBuilder) Build() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:   commandUseConstant,
		Short: commandShortDescriptionConstant,
		Long:  commandLongDescriptionConstant,
		Args:  cobra.MaximumNArgs(1),
		RunE:  builder.run,
	}

	return command, nil
}

func (builder *CommandBuilder) run(command *cobra.Command, arguments []string) error {
	if len(arguments) == 0 {
		return errors.New(missingBranchArgumentMessageConstant)
	}

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

	creationResult, creationError := service.Create(command.Context(), Options{
		RepositoryPath: builder.resolveWorkingDirectory(),
		BranchName:     arguments[0],
		Configuration:  configuration,
	})
	if creationError != nil {
		return fmt.Errorf(commandExecutionErrorTemplateConstant, creationError)
	}

	if creationResult.Pushed {
		fmt.Fprintf(command.OutOrStdout(), createdMessageTemplateConstant, creationResult.BranchName, configuration.CandidateBranch)
	} else {
		fmt.Fprintf(command.OutOrStdout(), createdLocallyMessageTemplateConstant, creationResult.BranchName, configuration.CandidateBranch, configuration.RemoteName, creationResult.BranchName)
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
