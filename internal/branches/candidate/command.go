package candidate

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/temirov/releasekit/internal/branches"
)

const (
	commandUseConstant                      = "release-rc"
	commandShortDescriptionConstant         = "Create or update the release candidate branch"
	commandLongDescriptionConstant          = "release-rc checks out the release-candidate branch from its best available base and pushes it with an upstream. Finalized feature branches aggregate here before a release."
	commandExecutionErrorTemplateConstant   = "release candidate refresh failed: %w"
	refreshedMessageTemplateConstant        = "Release candidate branch created and pushed: %s\n"
	refreshedLocallyMessageTemplateConstant = "Created local branch %q. Set up a remote and push when ready.\n"
)

// LoggerProvider yields a zap logger for command execution.
type LoggerProvider func() *zap.Logger

// CommandBuilder assembles the release-rc command.
type CommandBuilder struct {
	LoggerProvider               LoggerProvider
	GitExecutor                  branches.GitExecutor
	RepositoryGateway            branches.RepositoryGateway
	HumanReadableLoggingProvider func() bool
	ConfigurationProvider        func() branches.WorkflowConfiguration
	WorkingDirectory             string
}

// Build constructs the release-rc command.
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

	refreshResult, refreshError := service.Refresh(command.Context(), Options{
		RepositoryPath: builder.resolveWorkingDirectory(),
		Configuration:  configuration,
	})
	if refreshError != nil {
		return fmt.Errorf(commandExecutionErrorTemplateConstant, refreshError)
	}

	if refreshResult.Pushed {
		fmt.Fprintf(command.OutOrStdout(), refreshedMessageTemplateConstant, refreshResult.CandidateBranch)
	} else {
		fmt.Fprintf(command.OutOrStdout(), refreshedLocallyMessageTemplateConstant, refreshResult.CandidateBranch)
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
