package releases

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/temirov/releasekit/internal/branches"
	"github.com/temirov/releasekit/internal/gitrepo"
	"github.com/temirov/releasekit/internal/semver"
)

const (
	commandUseConstant                    = "version"
	commandShortDescriptionConstant       = "Inspect and bump the project version"
	commandLongDescriptionConstant        = "version prints the released project version or runs the release sequence: resolve the next version from conventional commits, rewrite the changelog and metadata, and record the release commit and annotated tag."
	currentUseConstant                    = "current"
	currentShortDescriptionConstant       = "Print the current project version"
	bumpUseConstant                       = "bump [major|minor|patch]"
	bumpShortDescriptionConstant          = "Resolve and apply the next project version"
	commandExecutionErrorTemplateConstant = "version bump failed: %w"
	bumpSummaryMessageTemplateConstant    = "Bumped version: %s -> %s\n"
	bumpPushHintMessageTemplateConstant   = "Created tag %s. Push with: git push && git push --tags\n"
)

// LoggerProvider yields a zap logger for command execution.
type LoggerProvider func() *zap.Logger

// CommandBuilder assembles the version command tree.
type CommandBuilder struct {
	LoggerProvider               LoggerProvider
	GitExecutor                  branches.GitExecutor
	RepositoryGateway            RepositoryGateway
	HumanReadableLoggingProvider func() bool
	ConfigurationProvider        func() Configuration
	WorkingDirectory             string
	Clock                        Clock
}

// Build constructs the version command with its current and bump subcommands.
func (builder *CommandBuilder) Build() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:   commandUseConstant,
		Short: commandShortDescriptionConstant,
		Long:  commandLongDescriptionConstant,
	}

	currentCommand := &cobra.Command{
		Use:   currentUseConstant,
		Short: currentShortDescriptionConstant,
		Args:  cobra.NoArgs,
		RunE:  builder.runCurrent,
	}

	bumpCommand := &cobra.Command{
		Use:   bumpUseConstant,
		Short: bumpShortDescriptionConstant,
		Args:  cobra.MaximumNArgs(1),
		RunE:  builder.runBump,
	}

	command.AddCommand(currentCommand)
	command.AddCommand(bumpCommand)

	return command, nil
}

func (builder *CommandBuilder) runCurrent(command *cobra.Command, _ []string) error {
	service, serviceError := builder.buildService()
	if serviceError != nil {
		return serviceError
	}

	currentVersion, versionError := service.CurrentVersion(builder.resolveWorkingDirectory(), builder.resolveConfiguration())
	if versionError != nil {
		return versionError
	}

	fmt.Fprintln(command.OutOrStdout(), currentVersion.String())
	return nil
}

func (builder *CommandBuilder) runBump(command *cobra.Command, arguments []string) error {
	var overridePart *semver.BumpPart
	if len(arguments) > 0 {
		parsedPart, parseError := semver.ParseBumpPart(arguments[0])
		if parseError != nil {
			return parseError
		}
		overridePart = &parsedPart
	}

	service, serviceError := builder.buildService()
	if serviceError != nil {
		return serviceError
	}

	bumpResult, bumpError := service.Bump(command.Context(), BumpOptions{
		RepositoryPath: builder.resolveWorkingDirectory(),
		OverridePart:   overridePart,
		Configuration:  builder.resolveConfiguration(),
	})
	if bumpError != nil {
		return fmt.Errorf(commandExecutionErrorTemplateConstant, bumpError)
	}

	fmt.Fprintf(command.OutOrStdout(), bumpSummaryMessageTemplateConstant, bumpResult.PreviousVersion.String(), bumpResult.NewVersion.String())
	fmt.Fprintf(command.OutOrStdout(), bumpPushHintMessageTemplateConstant, bumpResult.TagName)
	return nil
}

func (builder *CommandBuilder) buildService() (*Service, error) {
	logger := builder.resolveLogger()
	repositoryGateway, gatewayError := builder.resolveRepositoryGateway(logger)
	if gatewayError != nil {
		return nil, gatewayError
	}
	return NewService(logger, repositoryGateway, builder.Clock)
}

func (builder *CommandBuilder) resolveConfiguration() Configuration {
	if builder.ConfigurationProvider == nil {
		return DefaultConfiguration()
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

func (builder *CommandBuilder) resolveRepositoryGateway(logger *zap.Logger) (RepositoryGateway, error) {
	if builder.RepositoryGateway != nil {
		return builder.RepositoryGateway, nil
	}

	humanReadableLogging := false
	if builder.HumanReadableLoggingProvider != nil {
		humanReadableLogging = builder.HumanReadableLoggingProvider()
	}
	gitExecutor, executorError := branches.ResolveGitExecutor(builder.GitExecutor, logger, humanReadableLogging)
	if executorError != nil {
		return nil, executorError
	}
	return gitrepo.NewRepositoryManager(gitExecutor)
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
