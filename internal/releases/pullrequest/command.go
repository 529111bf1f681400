package pullrequest

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/temirov/releasekit/internal/branches"
	"github.com/temirov/releasekit/internal/githubcli"
	"github.com/temirov/releasekit/internal/gitrepo"
	"github.com/temirov/releasekit/internal/releases"
)

const (
	commandUseConstant                    = "release-pr"
	commandShortDescriptionConstant       = "Open the release pull request from the candidate to main"
	commandLongDescriptionConstant        = "release-pr opens a pull request from release-candidate to main. The title and body come from the changelog's topmost section."
	commandExecutionErrorTemplateConstant = "release pull request failed: %w"
	openedMessageTemplateConstant         = "Opened %q: %s\n"
)

// LoggerProvider yields a zap logger for command execution.
type LoggerProvider func() *zap.Logger

// CommandBuilder assembles the release-pr command.
type CommandBuilder struct {
	LoggerProvider                LoggerProvider
	GitExecutor                   branches.GitExecutor
	RepositoryGateway             RepositoryGateway
	HostingClient                 HostingClient
	HumanReadableLoggingProvider  func() bool
	WorkflowConfigurationProvider func() branches.WorkflowConfiguration
	ReleaseConfigurationProvider  func() releases.Configuration
	WorkingDirectory              string
}

// Build constructs the release-pr command.
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

	openResult, openError := service.Open(command.Context(), Options{
		RepositoryPath: builder.resolveWorkingDirectory(),
		Workflow:       builder.resolveWorkflowConfiguration(),
		Release:        builder.resolveReleaseConfiguration(),
	})
	if openError != nil {
		return fmt.Errorf(commandExecutionErrorTemplateConstant, openError)
	}

	fmt.Fprintf(command.OutOrStdout(), openedMessageTemplateConstant, openResult.Title, openResult.PullRequestURL)
	return nil
}

func (builder *CommandBuilder) resolveWorkflowConfiguration() branches.WorkflowConfiguration {
	if builder.WorkflowConfigurationProvider == nil {
		return branches.DefaultWorkflowConfiguration()
	}
	return builder.WorkflowConfigurationProvider().Sanitize()
}

func (builder *CommandBuilder) resolveReleaseConfiguration() releases.Configuration {
	if builder.ReleaseConfigurationProvider == nil {
		return releases.DefaultConfiguration()
	}
	return builder.ReleaseConfigurationProvider().Sanitize()
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
