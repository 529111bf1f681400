package cli_test

import (
	"bytes"
	"testing"

	mapstructure "github.com/go-viper/mapstructure/v2"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"

	"github.com/temirov/releasekit/cmd/cli"
	"github.com/temirov/releasekit/internal/branches"
	"github.com/temirov/releasekit/internal/releases"
)

var expectedCommandNames = []string{
	"branch-create",
	"branch-rebase",
	"branch-finalize",
	"release-rc",
	"release-pr",
	"version",
	"protect-main",
}

func TestNewApplicationRegistersWorkflowCommands(testInstance *testing.T) {
	application := cli.NewApplication()
	rootCommand := application.RootCommand()
	require.NotNil(testInstance, rootCommand)

	registeredCommandNames := map[string]bool{}
	for _, registeredCommand := range rootCommand.Commands() {
		registeredCommandNames[registeredCommand.Name()] = true
	}

	for _, expectedCommandName := range expectedCommandNames {
		require.Truef(testInstance, registeredCommandNames[expectedCommandName], "command %q not registered", expectedCommandName)
	}
}

func TestEmbeddedDefaultConfigurationMatchesPackageDefaults(testInstance *testing.T) {
	embeddedContent, embeddedType := cli.EmbeddedDefaultConfiguration()

	viperInstance := viper.New()
	viperInstance.SetConfigType(embeddedType)
	require.NoError(testInstance, viperInstance.ReadConfig(bytes.NewReader(embeddedContent)))

	var configuration cli.ApplicationConfiguration
	require.NoError(testInstance, mapstructure.Decode(viperInstance.AllSettings(), &configuration))

	require.Equal(testInstance, branches.DefaultWorkflowConfiguration(), configuration.Tools.Workflow)
	require.Equal(testInstance, releases.DefaultConfiguration(), configuration.Tools.Release)
	require.Equal(testInstance, "info", configuration.Common.LogLevel)
	require.Equal(testInstance, "structured", configuration.Common.LogFormat)
}
