package protect

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/temirov/releasekit/internal/branches"
	"github.com/temirov/releasekit/internal/githubcli"
	"github.com/temirov/releasekit/internal/gitrepo"
)

const (
	commandUseConstant                    = "protect-main"
	commandShortDescriptionConstant       = "Require pull request reviews on the main branch"
	commandLongDescriptionConstant        = "protect-main enables branch protection on the main branch of the repository's configured remote: admins included, one approving review required, direct pushes rejected."
	commandExecutionErrorTemplateConstant = "branch protection failed: %w"
	protectedMessageTemplateConstant      = "Protected %s on %s/%s\n"
)

// LoggerProvider yields a zap logger for command execution.
type LoggerProvider func() *zap.Logger

// CommandBuilder assembles the protect-main command.
type CommandBuilder struct {
	LoggerProvider                LoggerProvider
	GitExecutor                   branches.GitExecutor
	RepositoryGateway             RepositoryGateway
	HostingClient                 HostingClient
	HumanReadableLoggingProvider  func() bool
	WorkflowConfigurationProvider func() branches.WorkflowConfiguration
	WorkingDirectory              string
}

// Build constructs the protect-main command.
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
	logger := builder.resolveLogger()

	humanReadableLogging := false
	if builder.HumanReadableLoggingProvider != nil {
		humanReadableLogging = builder.HumanReadableLoggingProvider()
	}
	gitExecutor, executorError := branches.ResolveGitExecutor(builder.GitExecutor, logger, humanReadableLogging)
	if executorError != nil {
		return executorError
	}

	repositoryGateway := builder.RepositoryGateway
	if repositoryGateway == nil {
		repositoryManager, managerError := gitrepo.NewRepositoryManager(gitExecutor)
		if managerError != nil {
			return managerError
		}
		repositoryGateway = repositoryManager
	}

	hostingClient := builder.HostingClient
	if hostingClient == nil {
		hostingCLIClient, clientError := githubcli.NewClient(gitExecutor)
		if clientError != nil {
			return clientError
		}
		hostingClient = hostingCLIClient
	}

	service, serviceError := NewService(logger, repositoryGateway, hostingClient)
	if serviceError != nil {
		return serviceError
	}

	protectResult, protectError := service.Protect(command.Context(), Options{
		RepositoryPath: builder.resolveWorkingDirectory(),
		Workflow:       builder.resolveWorkflowConfiguration(),
	})
	if protectError != nil {
		return fmt.Errorf(commandExecutionErrorTemplateConstant, protectError)
	}

	fmt.Fprintf(command.OutOrStdout(), protectedMessageTemplateConstant, protectResult.ProtectedBranch, protectResult.OwnerName, protectResult.RepositoryName)
	return nil
}

func (builder *CommandBuilder) resolveWorkflowConfiguration() branches.WorkflowConfiguration {
	if builder.WorkflowConfigurationProvider == nil {
		return branches.DefaultWorkflowConfiguration()
	}
	return builder.WorkflowConfigurationProvider().Sanitize()
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

func (builder *CommandBuilder) resolveWorkingDirectory() string {
	if len(builder.WorkingDirectory) > 0 {
		return builder.WorkingDirectory
	}
	if workingDirectory, workingDirectoryError := os.Getwd(); workingDirectoryError == nil {
		return workingDirectory
	}
	return "."
}
