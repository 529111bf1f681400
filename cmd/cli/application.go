package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/temirov/releasekit/internal/branches"
	"github.com/temirov/releasekit/internal/branches/candidate"
	"github.com/temirov/releasekit/internal/branches/create"
	"github.com/temirov/releasekit/internal/branches/finalize"
	"github.com/temirov/releasekit/internal/branches/rebase"
	"github.com/temirov/releasekit/internal/protect"
	"github.com/temirov/releasekit/internal/releases"
	"github.com/temirov/releasekit/internal/releases/pullrequest"
	"github.com/temirov/releasekit/internal/utils"
)

const (
	applicationNameConstant                 = "releasekit"
	applicationShortDescriptionConstant     = "Command-line interface for release workflow automation"
	applicationLongDescriptionConstant      = "releasekit automates a trunk-adjacent release workflow: feature branches rebase onto and merge into a release-candidate branch, conventional commits drive semantic version bumps, and releases land as changelog sections, tags, and pull requests."
	configFileFlagNameConstant              = "config"
	configFileFlagUsageConstant             = "Optional path to a configuration file (YAML or JSON)."
	logLevelFlagNameConstant                = "log-level"
	logLevelFlagUsageConstant               = "Override the configured log level."
	logFormatFlagNameConstant               = "log-format"
	logFormatFlagUsageConstant              = "Override the configured log format (structured or console)."
	commonConfigurationKeyConstant          = "common"
	commonLogLevelConfigKeyConstant         = commonConfigurationKeyConstant + ".log_level"
	commonLogFormatConfigKeyConstant        = commonConfigurationKeyConstant + ".log_format"
	environmentPrefixConstant               = "RELEASEKIT"
	configurationNameConstant               = "config"
	configurationTypeConstant               = "yaml"
	configurationInitializedMessageConstant = "configuration initialized"
	configurationLogLevelFieldConstant      = "log_level"
	configurationLogFormatFieldConstant     = "log_format"
	configurationFileFieldConstant          = "config_file"
	configurationLoadErrorTemplateConstant  = "unable to load configuration: %w"
	loggerCreationErrorTemplateConstant     = "unable to create logger: %w"
	loggerSyncErrorTemplateConstant         = "unable to flush logger: %w"
	rootCommandInfoMessageConstant          = "releasekit CLI executed"
	rootCommandDebugMessageConstant         = "releasekit CLI diagnostics"
	logFieldCommandNameConstant             = "command_name"
	logFieldArgumentCountConstant           = "argument_count"
	logFieldArgumentsConstant               = "arguments"
	loggerNotInitializedMessageConstant     = "logger not initialized"
	defaultConfigurationSearchPathConstant  = "."
	toolsConfigurationKeyConstant           = "tools"
	workflowConfigurationKeyConstant        = toolsConfigurationKeyConstant + ".workflow"
	releaseConfigurationKeyConstant         = toolsConfigurationKeyConstant + ".release"
)

// ApplicationConfiguration describes the persisted configuration for the CLI entrypoint.
type ApplicationConfiguration struct {
	Common ApplicationCommonConfiguration `mapstructure:"common"`
	Tools  ApplicationToolsConfiguration  `mapstructure:"tools"`
}

// ApplicationCommonConfiguration stores logging configuration shared across commands.
type ApplicationCommonConfiguration struct {
	LogLevel  string `mapstructure:"log_level"`
	LogFormat string `mapstructure:"log_format"`
}

// ApplicationToolsConfiguration holds configuration for CLI subcommands grouped by tool family.
type ApplicationToolsConfiguration struct {
	Workflow branches.WorkflowConfiguration `mapstructure:"workflow"`
	Release  releases.Configuration         `mapstructure:"release"`
}

// Application wires the Cobra root command, configuration loader, and structured logger.
type Application struct {
	rootCommand            *cobra.Command
	configurationLoader    *utils.ConfigurationLoader
	loggerFactory          *utils.LoggerFactory
	logger                 *zap.Logger
	configuration          ApplicationConfiguration
	configurationMetadata  utils.LoadedConfiguration
	configurationFilePath  string
	logLevelFlagValue      string
	logFormatFlagValue     string
	commandContextAccessor utils.CommandContextAccessor
}

// NewApplication assembles a fully wired CLI application instance.
func NewApplication() *Application {
	configurationLoader := utils.NewConfigurationLoader(
		configurationNameConstant,
		configurationTypeConstant,
		environmentPrefixConstant,
		[]string{defaultConfigurationSearchPathConstant},
	)

	application := &Application{
		configurationLoader:    configurationLoader,
		loggerFactory:          utils.NewLoggerFactory(),
		logger:                 zap.NewNop(),
		commandContextAccessor: utils.NewCommandContextAccessor(),
	}

	cobraCommand := &cobra.Command{
		Use:           applicationNameConstant,
		Short:         applicationShortDescriptionConstant,
		Long:          applicationLongDescriptionConstant,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(command *cobra.Command, arguments []string) error {
			return application.initializeConfiguration(command)
		},
		RunE: func(command *cobra.Command, arguments []string) error {
			return application.runRootCommand(command, arguments)
		},
	}

	cobraCommand.SetContext(context.Background())
	cobraCommand.PersistentFlags().StringVar(&application.configurationFilePath, configFileFlagNameConstant, "", configFileFlagUsageConstant)
	cobraCommand.PersistentFlags().StringVar(&application.logLevelFlagValue, logLevelFlagNameConstant, "", logLevelFlagUsageConstant)
	cobraCommand.PersistentFlags().StringVar(&application.logFormatFlagValue, logFormatFlagNameConstant, "", logFormatFlagUsageConstant)

	workingDirectory := resolveWorkingDirectory()

	branchCreateBuilder := create.CommandBuilder{
		LoggerProvider:               application.loggerProvider,
		HumanReadableLoggingProvider: application.humanReadableLoggingEnabled,
		ConfigurationProvider:        application.workflowConfigurationProvider,
		WorkingDirectory:             workingDirectory,
	}
	if branchCreateCommand, buildError := branchCreateBuilder.Build(); buildError == nil {
		cobraCommand.AddCommand(branchCreateCommand)
	}

	branchRebaseBuilder := rebase.CommandBuilder{
		LoggerProvider:               application.loggerProvider,
		HumanReadableLoggingProvider: application.humanReadableLoggingEnabled,
		ConfigurationProvider:        application.workflowConfigurationProvider,
		WorkingDirectory:             workingDirectory,
	}
	if branchRebaseCommand, buildError := branchRebaseBuilder.Build(); buildError == nil {
		cobraCommand.AddCommand(branchRebaseCommand)
	}

	branchFinalizeBuilder := finalize.CommandBuilder{
		LoggerProvider:               application.loggerProvider,
		HumanReadableLoggingProvider: application.humanReadableLoggingEnabled,
		ConfigurationProvider:        application.workflowConfigurationProvider,
		WorkingDirectory:             workingDirectory,
	}
	if branchFinalizeCommand, buildError := branchFinalizeBuilder.Build(); buildError == nil {
		cobraCommand.AddCommand(branchFinalizeCommand)
	}

	releaseCandidateBuilder := candidate.CommandBuilder{
		LoggerProvider:               application.loggerProvider,
		HumanReadableLoggingProvider: application.humanReadableLoggingEnabled,
		ConfigurationProvider:        application.workflowConfigurationProvider,
		WorkingDirectory:             workingDirectory,
	}
	if releaseCandidateCommand, buildError := releaseCandidateBuilder.Build(); buildError == nil {
		cobraCommand.AddCommand(releaseCandidateCommand)
	}

	releasePullRequestBuilder := pullrequest.CommandBuilder{
		LoggerProvider:                application.loggerProvider,
		HumanReadableLoggingProvider:  application.humanReadableLoggingEnabled,
		WorkflowConfigurationProvider: application.workflowConfigurationProvider,
		ReleaseConfigurationProvider:  application.releaseConfigurationProvider,
		WorkingDirectory:              workingDirectory,
	}
	if releasePullRequestCommand, buildError := releasePullRequestBuilder.Build(); buildError == nil {
		cobraCommand.AddCommand(releasePullRequestCommand)
	}

	versionBuilder := releases.CommandBuilder{
		LoggerProvider:               application.loggerProvider,
		HumanReadableLoggingProvider: application.humanReadableLoggingEnabled,
		ConfigurationProvider:        application.releaseConfigurationProvider,
		WorkingDirectory:             workingDirectory,
	}
	if versionCommand, buildError := versionBuilder.Build(); buildError == nil {
		cobraCommand.AddCommand(versionCommand)
	}

	protectBuilder := protect.CommandBuilder{
		LoggerProvider:                application.loggerProvider,
		HumanReadableLoggingProvider:  application.humanReadableLoggingEnabled,
		WorkflowConfigurationProvider: application.workflowConfigurationProvider,
		WorkingDirectory:              workingDirectory,
	}
	if protectCommand, buildError := protectBuilder.Build(); buildError == nil {
		cobraCommand.AddCommand(protectCommand)
	}

	application.rootCommand = cobraCommand

	return application
}

// Execute runs the configured Cobra command hierarchy and ensures logger flushing.
func (application *Application) Execute() error {
	executionError := application.rootCommand.Execute()
	if syncError := application.flushLogger(); syncError != nil {
		return fmt.Errorf(loggerSyncErrorTemplateConstant, syncError)
	}
	return executionError
}

// Execute builds a fresh application instance and executes the root command hierarchy.
func Execute() error {
	return NewApplication().Execute()
}

// RootCommand exposes the assembled command hierarchy for integration tests.
func (application *Application) RootCommand() *cobra.Command {
	return application.rootCommand
}

func (application *Application) loggerProvider() *zap.Logger {
	return application.logger
}

func (application *Application) workflowConfigurationProvider() branches.WorkflowConfiguration {
	return application.configuration.Tools.Workflow
}

func (application *Application) releaseConfigurationProvider() releases.Configuration {
	return application.configuration.Tools.Release
}

func (application *Application) initializeConfiguration(command *cobra.Command) error {
	defaultValues := map[string]any{
		commonLogLevelConfigKeyConstant:  string(utils.LogLevelInfo),
		commonLogFormatConfigKeyConstant: string(utils.LogFormatStructured),
	}
	for configurationKey, configurationValue := range branches.DefaultConfigurationValues(workflowConfigurationKeyConstant) {
		defaultValues[configurationKey] = configurationValue
	}
	for configurationKey, configurationValue := range releases.DefaultConfigurationValues(releaseConfigurationKeyConstant) {
		defaultValues[configurationKey] = configurationValue
	}

	loadedConfiguration, loadError := application.configurationLoader.LoadConfiguration(application.configurationFilePath, defaultValues, &application.configuration)
	if loadError != nil {
		return fmt.Errorf(configurationLoadErrorTemplateConstant, loadError)
	}

	application.configurationMetadata = loadedConfiguration

	if application.persistentFlagChanged(command, logLevelFlagNameConstant) {
		application.configuration.Common.LogLevel = application.logLevelFlagValue
	}

	if application.persistentFlagChanged(command, logFormatFlagNameConstant) {
		application.configuration.Common.LogFormat = application.logFormatFlagValue
	}

	logger, loggerCreationError := application.loggerFactory.CreateLogger(
		utils.LogLevel(application.configuration.Common.LogLevel),
		utils.LogFormat(application.configuration.Common.LogFormat),
	)
	if loggerCreationError != nil {
		return fmt.Errorf(loggerCreationErrorTemplateConstant, loggerCreationError)
	}

	application.logger = logger

	application.logger.Info(
		configurationInitializedMessageConstant,
		zap.String(configurationLogLevelFieldConstant, application.configuration.Common.LogLevel),
		zap.String(configurationLogFormatFieldConstant, application.configuration.Common.LogFormat),
		zap.String(configurationFileFieldConstant, application.configurationMetadata.ConfigFileUsed),
	)

	if command != nil {
		updatedContext := application.commandContextAccessor.WithConfigurationFilePath(
			command.Context(),
			application.configurationMetadata.ConfigFileUsed,
		)
		command.SetContext(updatedContext)
		if rootCommand := command.Root(); rootCommand != nil {
			rootCommand.SetContext(updatedContext)
		}
	}

	return nil
}

func (application *Application) humanReadableLoggingEnabled() bool {
	logFormatValue := strings.TrimSpace(application.configuration.Common.LogFormat)
	return strings.EqualFold(logFormatValue, string(utils.LogFormatConsole))
}

func (application *Application) runRootCommand(command *cobra.Command, arguments []string) error {
	if application.logger == nil {
		return errors.New(loggerNotInitializedMessageConstant)
	}

	application.logger.Info(
		rootCommandInfoMessageConstant,
		zap.String(logFieldCommandNameConstant, command.Name()),
		zap.Int(logFieldArgumentCountConstant, len(arguments)),
	)

	application.logger.Debug(
		rootCommandDebugMessageConstant,
		zap.Strings(logFieldArgumentsConstant, arguments),
	)

	if len(arguments) == 0 {
		return command.Help()
	}

	return nil
}

func (application *Application) flushLogger() error {
	return application.syncLoggerInstance(application.logger)
}

func (application *Application) syncLoggerInstance(logger *zap.Logger) error {
	if logger == nil {
		return nil
	}

	syncError := logger.Sync()
	switch {
	case syncError == nil:
		return nil
	case errors.Is(syncError, syscall.ENOTSUP):
		return nil
	case errors.Is(syncError, syscall.EINVAL):
		return nil
	default:
		return syncError
	}
}

func (application *Application) persistentFlagChanged(command *cobra.Command, flagName string) bool {
	if command == nil {
		return false
	}

	flagSetsToInspect := []*pflag.FlagSet{
		command.PersistentFlags(),
		command.InheritedFlags(),
	}

	rootCommand := command.Root()
	if rootCommand != nil {
		flagSetsToInspect = append(flagSetsToInspect, rootCommand.PersistentFlags())
	}

	for _, flagSet := range flagSetsToInspect {
		if flagSet == nil {
			continue
		}

		if flagSet.Changed(flagName) {
			return true
		}
	}

	return false
}

func resolveWorkingDirectory() string {
	if workingDirectory, workingDirectoryError := os.Getwd(); workingDirectoryError == nil {
		return workingDirectory
	}
	return defaultConfigurationSearchPathConstant
}
