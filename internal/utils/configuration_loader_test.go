package utils_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/releasekit/internal/utils"
)

const (
	testConfigurationNameConstant     = "config"
	testConfigurationTypeConstant     = "yaml"
	testEnvironmentPrefixConstant     = "RELEASEKITTEST"
	testConfigurationContentConstant  = "common:\n  log_level: debug\n  log_format: console\n"
	testConfigurationFileNameConstant = "config.yaml"
	testDefaultLogLevelConstant       = "info"
)

type testConfiguration struct {
	Common struct {
		LogLevel  string `mapstructure:"log_level"`
		LogFormat string `mapstructure:"log_format"`
	} `mapstructure:"common"`
}

func TestLoadConfigurationAppliesDefaultsWhenFileMissing(testInstance *testing.T) {
	loader := utils.NewConfigurationLoader(
		testConfigurationNameConstant,
		testConfigurationTypeConstant,
		testEnvironmentPrefixConstant,
		[]string{testInstance.TempDir()},
	)

	var configuration testConfiguration
	loadedConfiguration, loadError := loader.LoadConfiguration("", map[string]any{"common.log_level": testDefaultLogLevelConstant}, &configuration)

	require.NoError(testInstance, loadError)
	require.Empty(testInstance, loadedConfiguration.ConfigFileUsed)
	require.Equal(testInstance, testDefaultLogLevelConstant, configuration.Common.LogLevel)
}

func TestLoadConfigurationReadsExplicitFile(testInstance *testing.T) {
	temporaryDirectory := testInstance.TempDir()
	configurationFilePath := filepath.Join(temporaryDirectory, testConfigurationFileNameConstant)
	require.NoError(testInstance, os.WriteFile(configurationFilePath, []byte(testConfigurationContentConstant), 0o644))

	loader := utils.NewConfigurationLoader(
		testConfigurationNameConstant,
		testConfigurationTypeConstant,
		testEnvironmentPrefixConstant,
		[]string{temporaryDirectory},
	)

	var configuration testConfiguration
	loadedConfiguration, loadError := loader.LoadConfiguration(configurationFilePath, nil, &configuration)

	require.NoError(testInstance, loadError)
	require.Equal(testInstance, configurationFilePath, loadedConfiguration.ConfigFileUsed)
	require.Equal(testInstance, "debug", configuration.Common.LogLevel)
	require.Equal(testInstance, "console", configuration.Common.LogFormat)
}

func TestLoadConfigurationHonorsEnvironmentOverrides(testInstance *testing.T) {
	testInstance.Setenv(testEnvironmentPrefixConstant+"_COMMON_LOG_LEVEL", "warn")

	loader := utils.NewConfigurationLoader(
		testConfigurationNameConstant,
		testConfigurationTypeConstant,
		testEnvironmentPrefixConstant,
		[]string{testInstance.TempDir()},
	)

	var configuration testConfiguration
	_, loadError := loader.LoadConfiguration("", map[string]any{"common.log_level": testDefaultLogLevelConstant}, &configuration)

	require.NoError(testInstance, loadError)
	require.Equal(testInstance, "warn", configuration.Common.LogLevel)
}
